package inmemory

import (
	"context"
	"sync"

	"github.com/tally-network/tally-daemon/internal/core/domain"
)

// LedgerRepositoryImpl is an in memory ledger snapshot store, mainly for
// tests and ephemeral setups.
type LedgerRepositoryImpl struct {
	snapshots map[string]*domain.LedgerSnapshot
	lock      *sync.RWMutex
}

// NewLedgerRepositoryImpl returns a new empty LedgerRepositoryImpl.
func NewLedgerRepositoryImpl() *LedgerRepositoryImpl {
	return &LedgerRepositoryImpl{
		snapshots: map[string]*domain.LedgerSnapshot{},
		lock:      &sync.RWMutex{},
	}
}

// GetLedger returns a copy of the stored snapshot for the given key.
func (r *LedgerRepositoryImpl) GetLedger(
	_ context.Context, key string,
) (*domain.LedgerSnapshot, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	snapshot, ok := r.snapshots[key]
	if !ok {
		return nil, domain.ErrLedgerNotFound
	}
	return cloneSnapshot(snapshot), nil
}

// SaveLedger stores the snapshot, enforcing the compare-and-swap version
// discipline.
func (r *LedgerRepositoryImpl) SaveLedger(
	_ context.Context, key string, snapshot *domain.LedgerSnapshot,
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	var storedVersion uint64
	if stored, ok := r.snapshots[key]; ok {
		storedVersion = stored.Version
	}
	if snapshot.Version != storedVersion+1 {
		return domain.ErrLedgerVersionConflict
	}
	r.snapshots[key] = cloneSnapshot(snapshot)
	return nil
}

// ListLedgers returns the keys of all stored ledgers.
func (r *LedgerRepositoryImpl) ListLedgers(_ context.Context) ([]string, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	keys := make([]string, 0, len(r.snapshots))
	for key := range r.snapshots {
		keys = append(keys, key)
	}
	return keys, nil
}

// cloneSnapshot round-trips through JSON so callers never share maps with
// the store.
func cloneSnapshot(snapshot *domain.LedgerSnapshot) *domain.LedgerSnapshot {
	data, err := snapshot.JSON()
	if err != nil {
		return snapshot
	}
	clone, err := domain.SnapshotFromJSON(data)
	if err != nil {
		return snapshot
	}
	return clone
}
