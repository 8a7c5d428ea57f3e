package application

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/tally-network/tally-daemon/internal/core/domain"
	"github.com/tally-network/tally-daemon/internal/core/ports"
)

// Topics published on the pubsub service whenever the ledger transitions.
const (
	TopicTransactionApplied = "TRANSACTION_APPLIED"
	TopicCoinbaseApplied    = "COINBASE_APPLIED"
)

// maxSaveAttempts bounds the retries on version conflicts when racing
// writers extend the same ledger.
const maxSaveAttempts = 3

// LedgerEvent is the JSON payload published for applied transitions.
type LedgerEvent struct {
	EventID   string `json:"event_id"`
	TxID      string `json:"tx_id"`
	Fee       uint64 `json:"fee,omitempty"`
	Minted    uint64 `json:"minted,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// LedgerService orchestrates the ledger engine against the persistence
// layer: it loads the current snapshot, runs the domain transition and
// stores the successor with a versioned compare-and-swap, retrying a few
// times when another writer got there first.
type LedgerService struct {
	repoManager ports.RepoManager
	pubsub      ports.SecurePubSub
	registry    *domain.LockRegistry
	ledgerKey   string
	strategy    domain.SelectionStrategy
}

// NewLedgerService returns a service operating on the ledger stored under
// ledgerKey. The pubsub service is optional, a nil one disables event
// publishing.
func NewLedgerService(
	repoManager ports.RepoManager,
	pubsub ports.SecurePubSub,
	registry *domain.LockRegistry,
	ledgerKey string,
	strategy domain.SelectionStrategy,
) (*LedgerService, error) {
	if repoManager == nil {
		return nil, ErrNullRepoManager
	}
	if registry == nil {
		registry = domain.NewLockRegistry()
	}
	if ledgerKey == "" {
		return nil, ErrMissingLedgerKey
	}
	if strategy == nil {
		strategy = domain.LargestFirstStrategy{}
	}
	return &LedgerService{
		repoManager: repoManager,
		pubsub:      pubsub,
		registry:    registry,
		ledgerKey:   ledgerKey,
		strategy:    strategy,
	}, nil
}

// InitLedger seeds a brand new ledger with its founding outputs.
func (s *LedgerService) InitLedger(ctx context.Context, outputs []domain.Output) error {
	_, err := s.repoManager.LedgerRepository().GetLedger(ctx, s.ledgerKey)
	if err == nil {
		return domain.ErrGenesisNotAllowed
	}
	if !errors.Is(err, domain.ErrLedgerNotFound) {
		return err
	}

	ledger := domain.NewLedger(s.repoManager.HistoryRepository()).
		WithStrategy(s.strategy)
	next, err := ledger.Genesis(ctx, outputs)
	if err != nil {
		return err
	}

	snapshot := next.Snapshot()
	snapshot.Version = 1
	if err := s.repoManager.LedgerRepository().SaveLedger(
		ctx, s.ledgerKey, snapshot,
	); err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"ledger":  s.ledgerKey,
		"outputs": len(outputs),
	}).Info("ledger initialized")
	return nil
}

// ApplyTransaction validates and commits a proposed transaction.
func (s *LedgerService) ApplyTransaction(ctx context.Context, tx *domain.Tx) error {
	var fee uint64
	if err := s.transition(ctx, func(ledger *domain.Ledger) (*domain.Ledger, error) {
		next, err := ledger.Apply(ctx, tx)
		if err != nil {
			return nil, err
		}
		fee, _ = next.FeeForTx(tx.ID)
		return next, nil
	}); err != nil {
		return err
	}

	txsAppliedCounter.Inc()
	feesCollectedCounter.Add(float64(fee))
	s.publish(TopicTransactionApplied, LedgerEvent{
		EventID:   uuid.NewString(),
		TxID:      tx.ID.String(),
		Fee:       fee,
		Timestamp: time.Now().Unix(),
	})
	log.WithFields(log.Fields{
		"tx":  tx.ID,
		"fee": fee,
	}).Info("transaction applied")
	return nil
}

// ApplyCoinbase mints the coinbase's outputs into the ledger.
func (s *LedgerService) ApplyCoinbase(ctx context.Context, cb *domain.CoinbaseTx) error {
	if err := s.transition(ctx, func(ledger *domain.Ledger) (*domain.Ledger, error) {
		return ledger.ApplyCoinbase(ctx, cb)
	}); err != nil {
		return err
	}

	minted := cb.TotalOutputAmount()
	coinbasesAppliedCounter.Inc()
	mintedCounter.Add(float64(minted))
	s.publish(TopicCoinbaseApplied, LedgerEvent{
		EventID:   uuid.NewString(),
		TxID:      cb.ID.String(),
		Minted:    minted,
		Timestamp: time.Now().Unix(),
	})
	log.WithFields(log.Fields{
		"coinbase": cb.ID,
		"minted":   minted,
	}).Info("coinbase applied")
	return nil
}

// Credit mints the given amount to the owner.
func (s *LedgerService) Credit(ctx context.Context, owner string, amount uint64) error {
	return s.transition(ctx, func(ledger *domain.Ledger) (*domain.Ledger, error) {
		return ledger.Credit(ctx, owner, amount)
	})
}

// Debit removes amount plus fee from the owner's balance.
func (s *LedgerService) Debit(ctx context.Context, owner string, amount, fee uint64) error {
	return s.transition(ctx, func(ledger *domain.Ledger) (*domain.Ledger, error) {
		return ledger.Debit(ctx, owner, amount, fee)
	})
}

// Transfer moves amount between owners, paying fee on top.
func (s *LedgerService) Transfer(
	ctx context.Context, from, to string, amount, fee uint64,
) error {
	return s.transition(ctx, func(ledger *domain.Ledger) (*domain.Ledger, error) {
		return ledger.Transfer(ctx, from, to, amount, fee)
	})
}

// transition loads the current ledger, runs the state transition and saves
// the successor, retrying on version conflicts.
func (s *LedgerService) transition(
	ctx context.Context,
	apply func(*domain.Ledger) (*domain.Ledger, error),
) error {
	var lastErr error
	for attempt := 0; attempt < maxSaveAttempts; attempt++ {
		ledger, version, err := s.loadLedger(ctx)
		if err != nil {
			return err
		}

		next, err := apply(ledger)
		if err != nil {
			return err
		}

		snapshot := next.Snapshot()
		snapshot.Version = version + 1
		err = s.repoManager.LedgerRepository().SaveLedger(ctx, s.ledgerKey, snapshot)
		if err == nil {
			return nil
		}
		if !errors.Is(err, domain.ErrLedgerVersionConflict) {
			return err
		}
		lastErr = err
		log.WithField("ledger", s.ledgerKey).Debug(
			"ledger version conflict, reloading",
		)
	}
	return lastErr
}

func (s *LedgerService) loadLedger(ctx context.Context) (*domain.Ledger, uint64, error) {
	snapshot, err := s.repoManager.LedgerRepository().GetLedger(ctx, s.ledgerKey)
	if err != nil {
		return nil, 0, err
	}
	ledger, err := domain.LedgerFromSnapshot(
		snapshot, s.registry, s.repoManager.HistoryRepository(),
	)
	if err != nil {
		return nil, 0, err
	}
	return ledger.WithStrategy(s.strategy), snapshot.Version, nil
}

func (s *LedgerService) publish(topic string, event LedgerEvent) {
	if s.pubsub == nil {
		return
	}
	payload, err := json.Marshal(event)
	if err != nil {
		log.WithError(err).Warn("failed to serialize ledger event")
		return
	}
	if err := s.pubsub.Publish(topic, string(payload)); err != nil {
		log.WithError(err).WithField("topic", topic).Warn(
			"failed to publish ledger event",
		)
	}
}
