package domain

import "context"

// Unspents returns the current unspent set. The set is immutable, handing
// it out is safe.
func (l *Ledger) Unspents() *UnspentSet {
	return l.unspent
}

// TotalUnspentAmount sums the amounts of all currently unspent outputs.
func (l *Ledger) TotalUnspentAmount() uint64 {
	return l.unspent.TotalAmount()
}

// UnspentByOwner returns the unspent outputs whose lock has the given
// introspectable owner.
func (l *Ledger) UnspentByOwner(owner string) *UnspentSet {
	return l.unspent.OwnedBy(owner)
}

// TotalUnspentByOwner sums the unspent amounts owned by the given identity.
func (l *Ledger) TotalUnspentByOwner(owner string) uint64 {
	return l.unspent.TotalAmountOwnedBy(owner)
}

// IsTxApplied returns whether a spending transaction with the given id has
// been applied.
func (l *Ledger) IsTxApplied(id TxID) bool {
	_, ok := l.txFees[id]
	return ok
}

// FeeForTx returns the fee recorded for an applied transaction.
func (l *Ledger) FeeForTx(id TxID) (uint64, bool) {
	fee, ok := l.txFees[id]
	return fee, ok
}

// AllTxFees returns a copy of the fee recorded per applied transaction.
func (l *Ledger) AllTxFees() map[TxID]uint64 {
	fees := make(map[TxID]uint64, len(l.txFees))
	for id, fee := range l.txFees {
		fees[id] = fee
	}
	return fees
}

// TotalFeesCollected sums the fees of all applied transactions.
func (l *Ledger) TotalFeesCollected() uint64 {
	var total uint64
	for _, fee := range l.txFees {
		total += fee
	}
	return total
}

// TotalMinted returns the cumulative amount minted by all applied
// coinbases.
func (l *Ledger) TotalMinted() uint64 {
	return l.totalMinted
}

// IsCoinbase returns whether the given id belongs to an applied coinbase.
func (l *Ledger) IsCoinbase(id TxID) bool {
	_, ok := l.coinbaseAmounts[id]
	return ok
}

// CoinbaseAmount returns the amount minted by an applied coinbase.
func (l *Ledger) CoinbaseAmount(id TxID) (uint64, bool) {
	amount, ok := l.coinbaseAmounts[id]
	return amount, ok
}

// OutputExists returns whether an output id has ever existed on the
// ledger, spent or unspent.
func (l *Ledger) OutputExists(id OutputID) bool {
	_, ok := l.seenOutputs[id]
	return ok
}

// GetOutput returns the output with the given id if it is currently
// unspent.
func (l *Ledger) GetOutput(id OutputID) (Output, bool) {
	return l.unspent.Get(id)
}

// OutputCreatedBy returns the id of the transaction that created the
// output, per the recorded history.
func (l *Ledger) OutputCreatedBy(ctx context.Context, id OutputID) (TxID, error) {
	provenance, err := l.history.GetOutputHistory(ctx, id)
	if err != nil {
		return "", err
	}
	return provenance.CreatedBy, nil
}

// OutputSpentBy returns the id of the transaction that consumed the
// output, or an empty id while it is still unspent.
func (l *Ledger) OutputSpentBy(ctx context.Context, id OutputID) (TxID, error) {
	provenance, err := l.history.GetOutputHistory(ctx, id)
	if err != nil {
		return "", err
	}
	return provenance.SpentBy, nil
}

// OutputHistory returns the full recorded provenance of an output.
func (l *Ledger) OutputHistory(ctx context.Context, id OutputID) (*OutputProvenance, error) {
	return l.history.GetOutputHistory(ctx, id)
}
