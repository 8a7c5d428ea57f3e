package domain

import "context"

// OutputProvenance is the recorded trail of a single output: the
// transaction that created it and, once consumed, the one that spent it.
type OutputProvenance struct {
	OutputID  OutputID
	CreatedBy TxID
	SpentBy   TxID
}

// IsSpent returns whether the output has been consumed.
func (p OutputProvenance) IsSpent() bool {
	return p.SpentBy != ""
}

// HistoryRepository records creation and consumption provenance per output
// and per transaction. Implementations must be effectively append-only and
// queryable by output id.
type HistoryRepository interface {
	// RecordTransaction records an applied transaction id with its fee.
	RecordTransaction(ctx context.Context, txID TxID, fee uint64) error
	// RecordOutput records that an output was created by a transaction.
	RecordOutput(ctx context.Context, outputID OutputID, createdBy TxID) error
	// RecordOutputs is the bulk variant for genesis and coinbase batches.
	RecordOutputs(ctx context.Context, outputIDs []OutputID, createdBy TxID) error
	// RecordSpend records that an output was consumed by a transaction.
	RecordSpend(ctx context.Context, outputID OutputID, spentBy TxID) error
	// GetOutputHistory returns the provenance of an output, or
	// ErrOutputNotFound if the output was never recorded.
	GetOutputHistory(ctx context.Context, outputID OutputID) (*OutputProvenance, error)
	// GetTransactionFee returns the fee recorded for a transaction.
	GetTransactionFee(ctx context.Context, txID TxID) (uint64, error)
}
