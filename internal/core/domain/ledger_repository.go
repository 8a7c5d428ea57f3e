package domain

import "context"

// LedgerRepository persists ledger snapshots keyed by name. The snapshot
// carries a version counter: implementations must reject an update whose
// base version no longer matches the stored one with
// ErrLedgerVersionConflict, so racing writers are serialized by
// compare-and-swap instead of by the engine.
type LedgerRepository interface {
	// GetLedger returns the stored snapshot, or ErrLedgerNotFound.
	GetLedger(ctx context.Context, key string) (*LedgerSnapshot, error)
	// SaveLedger stores the snapshot, failing with
	// ErrLedgerVersionConflict if the stored version is not exactly one
	// behind the snapshot's.
	SaveLedger(ctx context.Context, key string, snapshot *LedgerSnapshot) error
	// ListLedgers returns the keys of all stored ledgers.
	ListLedgers(ctx context.Context) ([]string, error)
}
