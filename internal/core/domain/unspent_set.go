package domain

// UnspentSet is the insertion-ordered collection of currently spendable
// outputs, keyed by output id. Every deriving operation returns a new set
// and leaves the receiver untouched: outputs are immutable values, so
// derived sets share them with their parent instead of deep-cloning.
// Concurrent readers of a prior set are never affected by a later
// derivation.
type UnspentSet struct {
	outputs map[OutputID]Output
	order   []OutputID
}

// NewUnspentSet returns a set holding the given outputs in order. It fails
// with ErrDuplicateOutputID on id collisions.
func NewUnspentSet(outputs ...Output) (*UnspentSet, error) {
	s := &UnspentSet{
		outputs: make(map[OutputID]Output, len(outputs)),
		order:   make([]OutputID, 0, len(outputs)),
	}
	for _, out := range outputs {
		if _, ok := s.outputs[out.ID]; ok {
			return nil, ErrDuplicateOutputID
		}
		s.outputs[out.ID] = out
		s.order = append(s.order, out.ID)
	}
	return s, nil
}

// Contains returns whether an output with the given id is in the set.
func (s *UnspentSet) Contains(id OutputID) bool {
	_, ok := s.outputs[id]
	return ok
}

// Get returns the output with the given id, if present.
func (s *UnspentSet) Get(id OutputID) (Output, bool) {
	out, ok := s.outputs[id]
	return out, ok
}

// WithAdded returns a new set with the output appended. It fails with
// ErrDuplicateOutputID if the id is already present.
func (s *UnspentSet) WithAdded(out Output) (*UnspentSet, error) {
	if _, ok := s.outputs[out.ID]; ok {
		return nil, ErrDuplicateOutputID
	}
	next := s.fork(1)
	next.outputs[out.ID] = out
	next.order = append(next.order, out.ID)
	return next, nil
}

// WithRemoved returns a new set without the given id. It fails with
// ErrOutputNotFound if the id is absent.
func (s *UnspentSet) WithRemoved(id OutputID) (*UnspentSet, error) {
	if _, ok := s.outputs[id]; !ok {
		return nil, ErrOutputNotFound
	}
	next := &UnspentSet{
		outputs: make(map[OutputID]Output, len(s.outputs)-1),
		order:   make([]OutputID, 0, len(s.order)-1),
	}
	for _, outID := range s.order {
		if outID == id {
			continue
		}
		next.outputs[outID] = s.outputs[outID]
		next.order = append(next.order, outID)
	}
	return next, nil
}

// Count returns the number of outputs in the set.
func (s *UnspentSet) Count() int {
	return len(s.order)
}

// TotalAmount sums the amounts of all outputs in the set.
func (s *UnspentSet) TotalAmount() uint64 {
	var total uint64
	for _, out := range s.outputs {
		total += out.Amount
	}
	return total
}

// Filter returns a new set holding only the outputs matching the predicate,
// preserving insertion order.
func (s *UnspentSet) Filter(predicate func(Output) bool) *UnspentSet {
	next := &UnspentSet{
		outputs: make(map[OutputID]Output),
		order:   make([]OutputID, 0, len(s.order)),
	}
	for _, id := range s.order {
		out := s.outputs[id]
		if predicate(out) {
			next.outputs[id] = out
			next.order = append(next.order, id)
		}
	}
	return next
}

// OwnedBy returns the outputs whose lock has the given introspectable
// owner. Only meaningful for owner-like locks, wrappers delegate to their
// inner lock.
func (s *UnspentSet) OwnedBy(owner string) *UnspentSet {
	return s.Filter(func(out Output) bool {
		return out.Owner() == owner
	})
}

// TotalAmountOwnedBy sums the amounts of the outputs owned by the given
// identity.
func (s *UnspentSet) TotalAmountOwnedBy(owner string) uint64 {
	return s.OwnedBy(owner).TotalAmount()
}

// OutputIDs returns the ids in insertion order.
func (s *UnspentSet) OutputIDs() []OutputID {
	return append([]OutputID(nil), s.order...)
}

// Outputs returns the outputs in insertion order.
func (s *UnspentSet) Outputs() []Output {
	outputs := make([]Output, 0, len(s.order))
	for _, id := range s.order {
		outputs = append(outputs, s.outputs[id])
	}
	return outputs
}

// fork shallow-copies the set with headroom for extra entries. Output
// values are shared with the parent.
func (s *UnspentSet) fork(extra int) *UnspentSet {
	next := &UnspentSet{
		outputs: make(map[OutputID]Output, len(s.outputs)+extra),
		order:   make([]OutputID, len(s.order), len(s.order)+extra),
	}
	for id, out := range s.outputs {
		next.outputs[id] = out
	}
	copy(next.order, s.order)
	return next
}
