package dbbadger

import (
	"context"
	"sync"

	"github.com/timshannon/badgerhold/v4"

	"github.com/tally-network/tally-daemon/internal/core/domain"
)

// ledgerRecord is the persisted shape of a ledger snapshot: the snapshot
// itself travels as JSON so lock maps survive the store encoding, the
// version is lifted out for the compare-and-swap check.
type ledgerRecord struct {
	Key     string `badgerhold:"key"`
	Data    []byte
	Version uint64
}

type ledgerRepositoryImpl struct {
	store *badgerhold.Store
	// save serializes the version check with the write.
	save *sync.Mutex
}

func newLedgerRepositoryImpl(store *badgerhold.Store) *ledgerRepositoryImpl {
	return &ledgerRepositoryImpl{
		store: store,
		save:  &sync.Mutex{},
	}
}

func (r *ledgerRepositoryImpl) GetLedger(
	_ context.Context, key string,
) (*domain.LedgerSnapshot, error) {
	var record ledgerRecord
	if err := r.store.Get(key, &record); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, domain.ErrLedgerNotFound
		}
		return nil, err
	}
	return domain.SnapshotFromJSON(record.Data)
}

func (r *ledgerRepositoryImpl) SaveLedger(
	_ context.Context, key string, snapshot *domain.LedgerSnapshot,
) error {
	r.save.Lock()
	defer r.save.Unlock()

	var storedVersion uint64
	var record ledgerRecord
	err := r.store.Get(key, &record)
	if err != nil && err != badgerhold.ErrNotFound {
		return err
	}
	if err == nil {
		storedVersion = record.Version
	}
	if snapshot.Version != storedVersion+1 {
		return domain.ErrLedgerVersionConflict
	}

	data, err := snapshot.JSON()
	if err != nil {
		return err
	}
	return r.store.Upsert(key, &ledgerRecord{
		Key:     key,
		Data:    data,
		Version: snapshot.Version,
	})
}

func (r *ledgerRepositoryImpl) ListLedgers(_ context.Context) ([]string, error) {
	var records []ledgerRecord
	if err := r.store.Find(&records, nil); err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(records))
	for _, record := range records {
		keys = append(keys, record.Key)
	}
	return keys, nil
}
