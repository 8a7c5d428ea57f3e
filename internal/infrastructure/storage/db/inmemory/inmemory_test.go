package inmemory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tally-network/tally-daemon/internal/core/domain"
	"github.com/tally-network/tally-daemon/internal/infrastructure/storage/db/inmemory"
)

var ctx = context.Background()

func TestLedgerRepositorySaveAndGet(t *testing.T) {
	repo := inmemory.NewRepoManager().LedgerRepository()

	_, err := repo.GetLedger(ctx, "main")
	require.EqualError(t, err, domain.ErrLedgerNotFound.Error())

	snapshot := &domain.LedgerSnapshot{
		TxFees:      map[string]uint64{"tx_1": 10},
		TotalMinted: 50,
		Version:     1,
	}
	require.NoError(t, repo.SaveLedger(ctx, "main", snapshot))

	stored, err := repo.GetLedger(ctx, "main")
	require.NoError(t, err)
	require.Equal(t, uint64(1), stored.Version)
	require.Equal(t, uint64(50), stored.TotalMinted)

	// The store hands out copies, mutating them must not write through.
	stored.TxFees["tx_2"] = 99
	again, err := repo.GetLedger(ctx, "main")
	require.NoError(t, err)
	require.NotContains(t, again.TxFees, "tx_2")

	keys, err := repo.ListLedgers(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"main"}, keys)
}

func TestLedgerRepositoryVersionConflict(t *testing.T) {
	repo := inmemory.NewRepoManager().LedgerRepository()

	// First save must carry version 1.
	err := repo.SaveLedger(ctx, "main", &domain.LedgerSnapshot{Version: 2})
	require.EqualError(t, err, domain.ErrLedgerVersionConflict.Error())

	require.NoError(
		t, repo.SaveLedger(ctx, "main", &domain.LedgerSnapshot{Version: 1}),
	)

	// Saving the same version twice loses the race.
	err = repo.SaveLedger(ctx, "main", &domain.LedgerSnapshot{Version: 1})
	require.EqualError(t, err, domain.ErrLedgerVersionConflict.Error())

	require.NoError(
		t, repo.SaveLedger(ctx, "main", &domain.LedgerSnapshot{Version: 2}),
	)
}

func TestHistoryRepository(t *testing.T) {
	repo := inmemory.NewRepoManager().HistoryRepository()

	require.NoError(t, repo.RecordOutputs(
		ctx, []domain.OutputID{"out_1", "out_2"}, domain.GenesisTxID,
	))
	require.NoError(t, repo.RecordTransaction(ctx, "tx_1", 10))
	require.NoError(t, repo.RecordSpend(ctx, "out_1", "tx_1"))
	require.NoError(t, repo.RecordOutput(ctx, "out_3", "tx_1"))

	spent, err := repo.GetOutputHistory(ctx, "out_1")
	require.NoError(t, err)
	require.Equal(t, domain.GenesisTxID, spent.CreatedBy)
	require.Equal(t, domain.TxID("tx_1"), spent.SpentBy)
	require.True(t, spent.IsSpent())

	unspent, err := repo.GetOutputHistory(ctx, "out_2")
	require.NoError(t, err)
	require.False(t, unspent.IsSpent())

	// Provenance is append-only, re-recording a creation is a no-op.
	require.NoError(t, repo.RecordOutput(ctx, "out_1", "tx_other"))
	again, err := repo.GetOutputHistory(ctx, "out_1")
	require.NoError(t, err)
	require.Equal(t, domain.GenesisTxID, again.CreatedBy)

	fee, err := repo.GetTransactionFee(ctx, "tx_1")
	require.NoError(t, err)
	require.Equal(t, uint64(10), fee)

	_, err = repo.GetOutputHistory(ctx, "never_seen")
	require.EqualError(t, err, domain.ErrOutputNotFound.Error())
	require.EqualError(
		t,
		repo.RecordSpend(ctx, "never_seen", "tx_1"),
		domain.ErrOutputNotFound.Error(),
	)
}
