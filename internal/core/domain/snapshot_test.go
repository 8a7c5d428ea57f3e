package domain_test

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tally-network/tally-daemon/internal/core/domain"
)

func TestSnapshotRoundTrip(t *testing.T) {
	ctx := context.Background()
	history := newFakeHistory()

	pubkey, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	hash, err := domain.HashPreimage([]byte("secret"), domain.HashAlgorithmSHA256)
	require.NoError(t, err)
	innerLock, err := domain.NewOwnerLock("alice")
	require.NoError(t, err)
	hashLock, err := domain.NewHashLock(hash, domain.HashAlgorithmSHA256, innerLock)
	require.NoError(t, err)

	unlockedOut, err := domain.NewUnlockedOutput("out_none", 10)
	require.NoError(t, err)
	ownedOut, err := domain.NewOutputForOwner("out_owner", 20, "alice")
	require.NoError(t, err)
	keyedOut, err := domain.NewOutputWithPublicKey("out_pubkey", 30, pubkey)
	require.NoError(t, err)
	hashedOut, err := domain.NewOutput("out_hash", 40, hashLock)
	require.NoError(t, err)
	timedOut, err := domain.NewOutput(
		"out_time", 50, domain.NewTimeLock(time.Unix(1700000000, 0), hashLock),
	)
	require.NoError(t, err)
	multisigOut, err := domain.NewOutputWithMultisig(
		"out_multisig", 60, 1, map[string]ed25519.PublicKey{"alice": pubkey},
	)
	require.NoError(t, err)

	ledger, err := domain.NewLedger(history).Genesis(ctx, []domain.Output{
		unlockedOut, ownedOut, keyedOut, hashedOut, timedOut, multisigOut,
	})
	require.NoError(t, err)
	ledger, err = ledger.Credit(ctx, "miner", 25)
	require.NoError(t, err)
	ledger, err = ledger.Debit(ctx, "miner", 15, 5)
	require.NoError(t, err)

	data, err := ledger.Snapshot().JSON()
	require.NoError(t, err)
	decoded, err := domain.SnapshotFromJSON(data)
	require.NoError(t, err)

	restored, err := domain.LedgerFromSnapshot(
		decoded, domain.NewLockRegistry(), history,
	)
	require.NoError(t, err)

	require.Equal(t, ledger.TotalUnspentAmount(), restored.TotalUnspentAmount())
	require.Equal(t, ledger.TotalMinted(), restored.TotalMinted())
	require.Equal(t, ledger.TotalFeesCollected(), restored.TotalFeesCollected())
	require.Equal(t, ledger.AllTxFees(), restored.AllTxFees())
	require.ElementsMatch(
		t, ledger.Unspents().OutputIDs(), restored.Unspents().OutputIDs(),
	)
	require.Equal(
		t,
		ledger.TotalUnspentByOwner("alice"),
		restored.TotalUnspentByOwner("alice"),
	)

	// Locks survive with semantics intact: the restored hash-locked output
	// still demands its preimage.
	restoredOut, ok := restored.GetOutput("out_hash")
	require.True(t, ok)
	tx := newTestTx(t, "alice")
	require.ErrorIs(
		t, restoredOut.Lock.Validate(tx, 0), domain.ErrMissingProof,
	)
	require.NoError(
		t, restoredOut.Lock.Validate(tx.WithProof(0, []byte("secret")), 0),
	)

	// Seen output ids carry over, so spent ids stay burned after a reload.
	require.True(t, restored.OutputExists("out_owner"))
}

func TestSnapshotRestoredLedgerKeepsOperating(t *testing.T) {
	ctx := context.Background()
	history := newFakeHistory()
	ledger := newSeededLedger(t, history)

	restored, err := domain.LedgerFromSnapshot(
		ledger.Snapshot(), domain.NewLockRegistry(), history,
	)
	require.NoError(t, err)

	next, err := restored.Transfer(ctx, "alice", "bob", 600, 10)
	require.NoError(t, err)
	require.Equal(t, uint64(600), next.TotalUnspentByOwner("bob"))
	require.Equal(t, uint64(390), next.TotalUnspentByOwner("alice"))

	// Genesis is one-shot per logical ledger, restoring does not reset that.
	_, err = restored.Genesis(ctx, []domain.Output{
		mustOutputForOwner(t, "genesis_again", 1, "mallory"),
	})
	require.EqualError(t, err, domain.ErrGenesisNotAllowed.Error())
}

func TestFailingLedgerFromSnapshot(t *testing.T) {
	history := newFakeHistory()
	registry := domain.NewLockRegistry()

	_, err := domain.LedgerFromSnapshot(nil, registry, history)
	require.EqualError(t, err, domain.ErrMalformedSnapshot.Error())

	_, err = domain.LedgerFromSnapshot(&domain.LedgerSnapshot{}, nil, history)
	require.EqualError(t, err, domain.ErrMalformedSnapshot.Error())

	_, err = domain.LedgerFromSnapshot(&domain.LedgerSnapshot{
		Unspents: []domain.SnapshotOutput{{
			ID: "out_1", Amount: 10,
			Lock: map[string]interface{}{"type": "martian"},
		}},
	}, registry, history)
	require.ErrorIs(t, err, domain.ErrUnknownLockType)

	_, err = domain.SnapshotFromJSON([]byte("{not json"))
	require.EqualError(t, err, domain.ErrMalformedSnapshot.Error())
}
