package ports

import (
	"github.com/tally-network/tally-daemon/internal/core/domain"
)

// RepoManager gives access to all the repositories of a storage backend
// and manages their shared resources.
type RepoManager interface {
	LedgerRepository() domain.LedgerRepository
	HistoryRepository() domain.HistoryRepository

	// Close gracefully releases the underlying store.
	Close()
}
