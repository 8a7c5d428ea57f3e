package domain

import "context"

// GenesisTxID is the reserved transaction id under which the provenance of
// founding outputs is recorded.
const GenesisTxID TxID = "genesis"

// Ledger is the aggregate state of the value-tracking engine: the unspent
// set, the ids of every applied transaction and coinbase, the per-tx fee,
// the cumulative minted amount and the set of every output id ever seen.
//
// A Ledger is an immutable value. Every state transition returns a new
// successor ledger and leaves the receiver untouched, so readers holding a
// prior ledger are never affected by a later Apply. Racing writers
// extending the same logical ledger must be serialized externally, the
// persistence adapter does so by versioned compare-and-swap.
type Ledger struct {
	unspent         *UnspentSet
	txFees          map[TxID]uint64
	coinbaseAmounts map[TxID]uint64
	seenOutputs     map[OutputID]struct{}
	totalMinted     uint64

	history  HistoryRepository
	strategy SelectionStrategy
	idgen    *IDGenerator
}

// NewLedger returns an empty ledger recording provenance on the given
// history repository and selecting inputs with LargestFirstStrategy.
func NewLedger(history HistoryRepository) *Ledger {
	unspent, _ := NewUnspentSet()
	return &Ledger{
		unspent:         unspent,
		txFees:          make(map[TxID]uint64),
		coinbaseAmounts: make(map[TxID]uint64),
		seenOutputs:     make(map[OutputID]struct{}),
		history:         history,
		strategy:        LargestFirstStrategy{},
		idgen:           NewIDGenerator(),
	}
}

// WithStrategy returns a copy of the ledger whose convenience operations
// select inputs with the given strategy.
func (l *Ledger) WithStrategy(strategy SelectionStrategy) *Ledger {
	next := *l
	next.strategy = strategy
	return &next
}

// Genesis seeds an empty ledger with its founding outputs and returns the
// successor. It fails with ErrGenesisNotAllowed on a ledger that has ever
// applied anything, and with ErrDuplicateOutputID on id collisions among
// the founding outputs.
func (l *Ledger) Genesis(ctx context.Context, outputs []Output) (*Ledger, error) {
	if !l.isEmpty() {
		return nil, ErrGenesisNotAllowed
	}
	if len(outputs) == 0 {
		return nil, ErrEmptyOutputs
	}

	unspent, err := NewUnspentSet(outputs...)
	if err != nil {
		return nil, err
	}

	next := l.fork()
	next.unspent = unspent
	for _, out := range outputs {
		next.seenOutputs[out.ID] = struct{}{}
	}

	if err := l.history.RecordOutputs(ctx, unspent.OutputIDs(), GenesisTxID); err != nil {
		return nil, err
	}
	return next, nil
}

// Apply validates the transaction against the current state and, if valid,
// returns the successor ledger with the spent outputs removed, the created
// outputs added and the fee recorded. The operation is all-or-nothing: on
// any error the receiver remains the current state and no successor
// exists.
func (l *Ledger) Apply(ctx context.Context, tx *Tx) (*Ledger, error) {
	fee, err := l.validate(tx)
	if err != nil {
		return nil, err
	}

	next := l.fork()
	unspent := next.unspent
	for _, spend := range tx.Spends {
		unspent, err = unspent.WithRemoved(spend)
		if err != nil {
			return nil, err
		}
	}
	for _, out := range tx.Outputs {
		unspent, err = unspent.WithAdded(out)
		if err != nil {
			return nil, err
		}
		next.seenOutputs[out.ID] = struct{}{}
	}
	next.unspent = unspent
	next.txFees[tx.ID] = fee

	if err := l.notifyApplied(ctx, tx, fee); err != nil {
		return nil, err
	}
	return next, nil
}

// CanApply runs the same validation as Apply without committing anything
// and without touching the history collaborator. A nil result means Apply
// would succeed against the current state.
func (l *Ledger) CanApply(tx *Tx) error {
	_, err := l.validate(tx)
	return err
}

// ApplyCoinbase mints the coinbase's outputs into the unspent set and
// returns the successor ledger. Replayed coinbase ids and output id
// collisions are rejected. There is no authorization check: minting is
// privileged by construction, callers control who may invoke it.
func (l *Ledger) ApplyCoinbase(ctx context.Context, cb *CoinbaseTx) (*Ledger, error) {
	if l.isTxIDKnown(cb.ID) {
		return nil, ErrDuplicateTx
	}
	for _, out := range cb.Outputs {
		if _, ok := l.seenOutputs[out.ID]; ok {
			return nil, ErrDuplicateOutputID
		}
	}

	next := l.fork()
	unspent := next.unspent
	var err error
	for _, out := range cb.Outputs {
		unspent, err = unspent.WithAdded(out)
		if err != nil {
			return nil, err
		}
		next.seenOutputs[out.ID] = struct{}{}
	}
	next.unspent = unspent
	next.coinbaseAmounts[cb.ID] = cb.TotalOutputAmount()
	next.totalMinted += cb.TotalOutputAmount()

	outputIDs := make([]OutputID, 0, len(cb.Outputs))
	for _, out := range cb.Outputs {
		outputIDs = append(outputIDs, out.ID)
	}
	if err := l.history.RecordTransaction(ctx, cb.ID, 0); err != nil {
		return nil, err
	}
	if err := l.history.RecordOutputs(ctx, outputIDs, cb.ID); err != nil {
		return nil, err
	}
	return next, nil
}

// Credit mints the given amount to an owner-locked output and returns the
// successor ledger.
func (l *Ledger) Credit(ctx context.Context, owner string, amount uint64) (*Ledger, error) {
	out, err := NewOutputForOwner(l.idgen.OutputID(amount), amount, owner)
	if err != nil {
		return nil, err
	}
	cb, err := NewCoinbaseTx(l.idgen.TxID(), []Output{out})
	if err != nil {
		return nil, err
	}
	return l.ApplyCoinbase(ctx, cb)
}

// Debit removes amount plus fee from the owner's balance: it selects
// owner-locked inputs covering amount+fee and returns the remainder to the
// owner as change. The debited amount and the fee together become the
// transaction's recorded fee.
func (l *Ledger) Debit(ctx context.Context, owner string, amount, fee uint64) (*Ledger, error) {
	tx, err := l.buildSpend(owner, amount+fee, nil)
	if err != nil {
		return nil, err
	}
	return l.Apply(ctx, tx)
}

// Transfer moves amount from one owner to another, paying fee on top. The
// recipient gets a fresh owner-locked output, any remainder returns to the
// sender as change.
func (l *Ledger) Transfer(ctx context.Context, from, to string, amount, fee uint64) (*Ledger, error) {
	recipient, err := NewOutputForOwner(l.idgen.OutputID(amount), amount, to)
	if err != nil {
		return nil, err
	}
	tx, err := l.buildSpend(from, amount+fee, []Output{recipient})
	if err != nil {
		return nil, err
	}
	return l.Apply(ctx, tx)
}

// buildSpend selects owner-locked inputs covering the drained amount,
// appends the extra outputs and a change output back to the spender, and
// signs the transaction with the spender's identity.
func (l *Ledger) buildSpend(owner string, drained uint64, extra []Output) (*Tx, error) {
	available := l.unspent.OwnedBy(owner)
	selected := l.strategy.Select(available, drained)

	var inputTotal uint64
	spends := make([]OutputID, 0, len(selected))
	for _, out := range selected {
		inputTotal += out.Amount
		spends = append(spends, out.ID)
	}
	if inputTotal < drained {
		return nil, ErrInsufficientInputs
	}

	outputs := append([]Output(nil), extra...)
	if change := inputTotal - drained; change > 0 {
		changeOut, err := NewOutputForOwner(l.idgen.OutputID(change), change, owner)
		if err != nil {
			return nil, err
		}
		outputs = append(outputs, changeOut)
	}

	return NewTx(l.idgen.TxID(), spends, outputs, owner)
}

// validate runs all of Apply's checks without committing. It returns the
// implied fee.
func (l *Ledger) validate(tx *Tx) (uint64, error) {
	if l.isTxIDKnown(tx.ID) {
		return 0, ErrDuplicateTx
	}

	// Duplicates are rejected at Tx construction already, but inputs are
	// resolved against live state here, so re-check.
	seenSpends := make(map[OutputID]struct{}, len(tx.Spends))
	inputs := make([]Output, 0, len(tx.Spends))
	var inputTotal uint64
	for _, spend := range tx.Spends {
		if _, ok := seenSpends[spend]; ok {
			return 0, ErrDuplicateSpend
		}
		seenSpends[spend] = struct{}{}

		input, ok := l.unspent.Get(spend)
		if !ok {
			return 0, ErrOutputAlreadySpentOrUnknown
		}
		inputs = append(inputs, input)
		inputTotal += input.Amount
	}

	for i, input := range inputs {
		if err := input.Lock.Validate(tx, i); err != nil {
			return 0, err
		}
	}

	// Id reuse after a spend is forbidden, history must stay unambiguous,
	// so new output ids are checked against every id ever seen.
	for _, out := range tx.Outputs {
		if _, ok := l.seenOutputs[out.ID]; ok {
			return 0, ErrDuplicateOutputID
		}
	}

	outputTotal := tx.TotalOutputAmount()
	if outputTotal > inputTotal {
		return 0, ErrInsufficientInputs
	}
	return inputTotal - outputTotal, nil
}

func (l *Ledger) notifyApplied(ctx context.Context, tx *Tx, fee uint64) error {
	if err := l.history.RecordTransaction(ctx, tx.ID, fee); err != nil {
		return err
	}
	for _, spend := range tx.Spends {
		if err := l.history.RecordSpend(ctx, spend, tx.ID); err != nil {
			return err
		}
	}
	for _, out := range tx.Outputs {
		if err := l.history.RecordOutput(ctx, out.ID, tx.ID); err != nil {
			return err
		}
	}
	return nil
}

// fork copies the mutable bookkeeping of the ledger. The unspent set is
// shared until the caller swaps in a derived one.
func (l *Ledger) fork() *Ledger {
	next := *l
	next.txFees = make(map[TxID]uint64, len(l.txFees)+1)
	for id, fee := range l.txFees {
		next.txFees[id] = fee
	}
	next.coinbaseAmounts = make(map[TxID]uint64, len(l.coinbaseAmounts)+1)
	for id, amount := range l.coinbaseAmounts {
		next.coinbaseAmounts[id] = amount
	}
	next.seenOutputs = make(map[OutputID]struct{}, len(l.seenOutputs)+1)
	for id := range l.seenOutputs {
		next.seenOutputs[id] = struct{}{}
	}
	return &next
}

func (l *Ledger) isEmpty() bool {
	return len(l.seenOutputs) == 0 &&
		len(l.txFees) == 0 &&
		len(l.coinbaseAmounts) == 0
}

func (l *Ledger) isTxIDKnown(id TxID) bool {
	if _, ok := l.txFees[id]; ok {
		return true
	}
	_, ok := l.coinbaseAmounts[id]
	return ok
}
