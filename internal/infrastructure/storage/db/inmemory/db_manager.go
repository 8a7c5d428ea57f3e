package inmemory

import (
	"github.com/tally-network/tally-daemon/internal/core/domain"
	"github.com/tally-network/tally-daemon/internal/core/ports"
)

// RepoManager holds the in memory repositories in a single structure.
type RepoManager struct {
	ledgerRepository  *LedgerRepositoryImpl
	historyRepository *HistoryRepositoryImpl
}

// NewRepoManager returns a repo manager backed by in memory stores.
func NewRepoManager() ports.RepoManager {
	return &RepoManager{
		ledgerRepository:  NewLedgerRepositoryImpl(),
		historyRepository: NewHistoryRepositoryImpl(),
	}
}

// LedgerRepository ...
func (m *RepoManager) LedgerRepository() domain.LedgerRepository {
	return m.ledgerRepository
}

// HistoryRepository ...
func (m *RepoManager) HistoryRepository() domain.HistoryRepository {
	return m.historyRepository
}

// Close is a no-op for the in memory backend.
func (m *RepoManager) Close() {}
