package dbbadger

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/dgraph-io/badger/v3/options"
	log "github.com/sirupsen/logrus"
	"github.com/timshannon/badgerhold/v4"

	"github.com/tally-network/tally-daemon/internal/core/domain"
	"github.com/tally-network/tally-daemon/internal/core/ports"
)

// RepoManager holds the badgerhold stores in a single data structure.
type RepoManager struct {
	ledgerStore  *badgerhold.Store
	historyStore *badgerhold.Store

	ledgerRepository  *ledgerRepositoryImpl
	historyRepository *historyRepositoryImpl
}

// NewRepoManager opens (or creates if missing) the badger stores on disk.
// It expects a base data dir and an optional logger, and creates a
// dedicated directory for ledger and history. An empty base dir opens the
// stores in memory, for tests.
func NewRepoManager(baseDbDir string, logger badger.Logger) (ports.RepoManager, error) {
	var ledgerDir, historyDir string
	if len(baseDbDir) > 0 {
		ledgerDir = filepath.Join(baseDbDir, "ledger")
		historyDir = filepath.Join(baseDbDir, "history")
	}

	ledgerStore, err := createDb(ledgerDir, logger)
	if err != nil {
		return nil, fmt.Errorf("opening ledger db: %w", err)
	}
	historyStore, err := createDb(historyDir, logger)
	if err != nil {
		return nil, fmt.Errorf("opening history db: %w", err)
	}

	return &RepoManager{
		ledgerStore:       ledgerStore,
		historyStore:      historyStore,
		ledgerRepository:  newLedgerRepositoryImpl(ledgerStore),
		historyRepository: newHistoryRepositoryImpl(historyStore),
	}, nil
}

// LedgerRepository ...
func (m *RepoManager) LedgerRepository() domain.LedgerRepository {
	return m.ledgerRepository
}

// HistoryRepository ...
func (m *RepoManager) HistoryRepository() domain.HistoryRepository {
	return m.historyRepository
}

// Close ...
func (m *RepoManager) Close() {
	if err := m.ledgerStore.Close(); err != nil {
		log.WithError(err).Warn("error while closing ledger db")
	}
	if err := m.historyStore.Close(); err != nil {
		log.WithError(err).Warn("error while closing history db")
	}
}

func createDb(dbDir string, logger badger.Logger) (*badgerhold.Store, error) {
	isInMemory := len(dbDir) <= 0

	opts := badger.DefaultOptions(dbDir)
	opts.Logger = logger

	if isInMemory {
		opts.InMemory = true
	} else {
		opts.Compression = options.ZSTD
	}

	db, err := badgerhold.Open(badgerhold.Options{
		Encoder:          badgerhold.DefaultEncode,
		Decoder:          badgerhold.DefaultDecode,
		SequenceBandwith: 100,
		Options:          opts,
	})
	if err != nil {
		return nil, err
	}

	if !isInMemory {
		ticker := time.NewTicker(30 * time.Minute)

		go func() {
			for {
				<-ticker.C
				if err := db.Badger().RunValueLogGC(0.5); err != nil &&
					err != badger.ErrNoRewrite {
					log.Error(err)
				}
			}
		}()
	}

	return db, nil
}
