package domain

import "sort"

// SelectionStrategy chooses which unspent outputs to consume to cover a
// target amount. Strategies are stateless policies: a returned subset is
// not guaranteed to meet the target unless the strategy documents so,
// callers must check the accumulated total themselves.
type SelectionStrategy interface {
	Select(available *UnspentSet, target uint64) []Output
}

// FifoStrategy accumulates outputs in insertion order and returns the
// minimal prefix whose total meets the target, or all outputs if the
// target cannot be met.
type FifoStrategy struct{}

// Select ...
func (FifoStrategy) Select(available *UnspentSet, target uint64) []Output {
	if target == 0 {
		return nil
	}
	return accumulate(available.Outputs(), target)
}

// LargestFirstStrategy accumulates outputs by descending amount, ties
// broken by insertion order. It minimizes the number of consumed outputs
// for right-skewed amount distributions.
type LargestFirstStrategy struct{}

// Select ...
func (LargestFirstStrategy) Select(available *UnspentSet, target uint64) []Output {
	if target == 0 {
		return nil
	}
	outputs := available.Outputs()
	sort.SliceStable(outputs, func(i, j int) bool {
		return outputs[i].Amount > outputs[j].Amount
	})
	return accumulate(outputs, target)
}

// SmallestFirstStrategy accumulates outputs by ascending amount, ties
// broken by insertion order. It consolidates low-value outputs first.
type SmallestFirstStrategy struct{}

// Select ...
func (SmallestFirstStrategy) Select(available *UnspentSet, target uint64) []Output {
	if target == 0 {
		return nil
	}
	outputs := available.Outputs()
	sort.SliceStable(outputs, func(i, j int) bool {
		return outputs[i].Amount < outputs[j].Amount
	})
	return accumulate(outputs, target)
}

// defaultMaxCombinationSize bounds the subset search of ExactMatchStrategy
// so it stays responsive on sets of hundreds of outputs.
const defaultMaxCombinationSize = 3

// ExactMatchStrategy seeks a subset summing exactly to the target,
// preferring the fewest outputs: singles first, then pairs, then larger
// combinations up to MaxCombinationSize. When no exact subset exists
// within the bound it delegates to the fallback strategy, whose result is
// returned as-is and may exceed the target.
type ExactMatchStrategy struct {
	// MaxCombinationSize caps the combination search, defaulting to 3.
	MaxCombinationSize int
	// Fallback is consulted when no exact subset is found, defaulting to
	// LargestFirstStrategy.
	Fallback SelectionStrategy
}

// Select ...
func (s ExactMatchStrategy) Select(available *UnspentSet, target uint64) []Output {
	if target == 0 {
		return nil
	}

	maxSize := s.MaxCombinationSize
	if maxSize <= 0 {
		maxSize = defaultMaxCombinationSize
	}

	outputs := available.Outputs()
	for size := 1; size <= maxSize && size <= len(outputs); size++ {
		if match := findExactCombination(outputs, target, size); match != nil {
			return match
		}
	}

	fallback := s.Fallback
	if fallback == nil {
		fallback = LargestFirstStrategy{}
	}
	return fallback.Select(available, target)
}

// accumulate returns the minimal prefix of outputs whose total meets the
// target, or all outputs if the target is unmet.
func accumulate(outputs []Output, target uint64) []Output {
	selected := make([]Output, 0, len(outputs))
	var total uint64
	for _, out := range outputs {
		selected = append(selected, out)
		total += out.Amount
		if total >= target {
			return selected
		}
	}
	return selected
}

// findExactCombination searches all combinations of exactly size outputs
// for one summing to the target.
func findExactCombination(outputs []Output, target uint64, size int) []Output {
	combination := make([]Output, 0, size)

	var search func(offset int, remaining uint64) []Output
	search = func(offset int, remaining uint64) []Output {
		if len(combination) == size {
			if remaining == 0 {
				return append([]Output(nil), combination...)
			}
			return nil
		}
		for i := offset; i <= len(outputs)-(size-len(combination)); i++ {
			out := outputs[i]
			if out.Amount > remaining {
				continue
			}
			combination = append(combination, out)
			if match := search(i+1, remaining-out.Amount); match != nil {
				return match
			}
			combination = combination[:len(combination)-1]
		}
		return nil
	}

	return search(0, target)
}
