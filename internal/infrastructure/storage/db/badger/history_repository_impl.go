package dbbadger

import (
	"context"

	"github.com/timshannon/badgerhold/v4"

	"github.com/tally-network/tally-daemon/internal/core/domain"
)

type outputHistoryRecord struct {
	OutputID  string `badgerhold:"key"`
	CreatedBy string
	SpentBy   string
}

type txFeeRecord struct {
	TxID string `badgerhold:"key"`
	Fee  uint64
}

type historyRepositoryImpl struct {
	store *badgerhold.Store
}

func newHistoryRepositoryImpl(store *badgerhold.Store) *historyRepositoryImpl {
	return &historyRepositoryImpl{store: store}
}

func (r *historyRepositoryImpl) RecordTransaction(
	_ context.Context, txID domain.TxID, fee uint64,
) error {
	return r.store.Upsert(txID.String(), &txFeeRecord{
		TxID: txID.String(),
		Fee:  fee,
	})
}

func (r *historyRepositoryImpl) RecordOutput(
	_ context.Context, outputID domain.OutputID, createdBy domain.TxID,
) error {
	err := r.store.Insert(outputID.String(), &outputHistoryRecord{
		OutputID:  outputID.String(),
		CreatedBy: createdBy.String(),
	})
	// Provenance is append-only, an output is created exactly once.
	if err == badgerhold.ErrKeyExists {
		return nil
	}
	return err
}

func (r *historyRepositoryImpl) RecordOutputs(
	ctx context.Context, outputIDs []domain.OutputID, createdBy domain.TxID,
) error {
	for _, outputID := range outputIDs {
		if err := r.RecordOutput(ctx, outputID, createdBy); err != nil {
			return err
		}
	}
	return nil
}

func (r *historyRepositoryImpl) RecordSpend(
	_ context.Context, outputID domain.OutputID, spentBy domain.TxID,
) error {
	var record outputHistoryRecord
	if err := r.store.Get(outputID.String(), &record); err != nil {
		if err == badgerhold.ErrNotFound {
			return domain.ErrOutputNotFound
		}
		return err
	}
	record.SpentBy = spentBy.String()
	return r.store.Update(outputID.String(), &record)
}

func (r *historyRepositoryImpl) GetOutputHistory(
	_ context.Context, outputID domain.OutputID,
) (*domain.OutputProvenance, error) {
	var record outputHistoryRecord
	if err := r.store.Get(outputID.String(), &record); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, domain.ErrOutputNotFound
		}
		return nil, err
	}
	return &domain.OutputProvenance{
		OutputID:  domain.OutputID(record.OutputID),
		CreatedBy: domain.TxID(record.CreatedBy),
		SpentBy:   domain.TxID(record.SpentBy),
	}, nil
}

func (r *historyRepositoryImpl) GetTransactionFee(
	_ context.Context, txID domain.TxID,
) (uint64, error) {
	var record txFeeRecord
	if err := r.store.Get(txID.String(), &record); err != nil {
		if err == badgerhold.ErrNotFound {
			return 0, domain.ErrOutputNotFound
		}
		return 0, err
	}
	return record.Fee, nil
}
