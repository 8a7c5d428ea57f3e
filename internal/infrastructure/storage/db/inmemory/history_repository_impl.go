package inmemory

import (
	"context"
	"sync"

	"github.com/tally-network/tally-daemon/internal/core/domain"
)

// HistoryRepositoryImpl is an in memory, append-only provenance store.
type HistoryRepositoryImpl struct {
	outputs map[domain.OutputID]*domain.OutputProvenance
	fees    map[domain.TxID]uint64
	lock    *sync.RWMutex
}

// NewHistoryRepositoryImpl returns a new empty HistoryRepositoryImpl.
func NewHistoryRepositoryImpl() *HistoryRepositoryImpl {
	return &HistoryRepositoryImpl{
		outputs: map[domain.OutputID]*domain.OutputProvenance{},
		fees:    map[domain.TxID]uint64{},
		lock:    &sync.RWMutex{},
	}
}

// RecordTransaction records an applied transaction id with its fee.
func (r *HistoryRepositoryImpl) RecordTransaction(
	_ context.Context, txID domain.TxID, fee uint64,
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.fees[txID] = fee
	return nil
}

// RecordOutput records the creating transaction of an output.
func (r *HistoryRepositoryImpl) RecordOutput(
	_ context.Context, outputID domain.OutputID, createdBy domain.TxID,
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.recordOutput(outputID, createdBy)
	return nil
}

// RecordOutputs is the bulk variant of RecordOutput.
func (r *HistoryRepositoryImpl) RecordOutputs(
	_ context.Context, outputIDs []domain.OutputID, createdBy domain.TxID,
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	for _, outputID := range outputIDs {
		r.recordOutput(outputID, createdBy)
	}
	return nil
}

// RecordSpend records the consuming transaction of an output.
func (r *HistoryRepositoryImpl) RecordSpend(
	_ context.Context, outputID domain.OutputID, spentBy domain.TxID,
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	provenance, ok := r.outputs[outputID]
	if !ok {
		return domain.ErrOutputNotFound
	}
	provenance.SpentBy = spentBy
	return nil
}

// GetOutputHistory returns the provenance of an output.
func (r *HistoryRepositoryImpl) GetOutputHistory(
	_ context.Context, outputID domain.OutputID,
) (*domain.OutputProvenance, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	provenance, ok := r.outputs[outputID]
	if !ok {
		return nil, domain.ErrOutputNotFound
	}
	copied := *provenance
	return &copied, nil
}

// GetTransactionFee returns the fee recorded for a transaction.
func (r *HistoryRepositoryImpl) GetTransactionFee(
	_ context.Context, txID domain.TxID,
) (uint64, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	fee, ok := r.fees[txID]
	if !ok {
		return 0, domain.ErrOutputNotFound
	}
	return fee, nil
}

func (r *HistoryRepositoryImpl) recordOutput(
	outputID domain.OutputID, createdBy domain.TxID,
) {
	if _, ok := r.outputs[outputID]; ok {
		return
	}
	r.outputs[outputID] = &domain.OutputProvenance{
		OutputID:  outputID,
		CreatedBy: createdBy,
	}
}
