package application_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tally-network/tally-daemon/internal/core/application"
	"github.com/tally-network/tally-daemon/internal/core/domain"
	"github.com/tally-network/tally-daemon/internal/core/ports"
	"github.com/tally-network/tally-daemon/internal/infrastructure/storage/db/inmemory"
)

var ctx = context.Background()

// fakePubSub captures published events in memory.
type fakePubSub struct {
	lock     sync.Mutex
	messages map[string][]string
}

func newFakePubSub() *fakePubSub {
	return &fakePubSub{messages: map[string][]string{}}
}

func (p *fakePubSub) Subscribe(topic, endpoint, secret string) (string, error) {
	return "", nil
}
func (p *fakePubSub) Unsubscribe(topic, id string) error { return nil }
func (p *fakePubSub) ListSubscriptionsForTopic(topic string) []ports.Subscription {
	return nil
}

func (p *fakePubSub) Publish(topic string, message string) error {
	p.lock.Lock()
	defer p.lock.Unlock()
	p.messages[topic] = append(p.messages[topic], message)
	return nil
}

func (p *fakePubSub) published(topic string) int {
	p.lock.Lock()
	defer p.lock.Unlock()
	return len(p.messages[topic])
}

func newTestService(t *testing.T) (*application.LedgerService, *fakePubSub) {
	t.Helper()
	pubsub := newFakePubSub()
	svc, err := application.NewLedgerService(
		inmemory.NewRepoManager(), pubsub, domain.NewLockRegistry(), "main", nil,
	)
	require.NoError(t, err)
	return svc, pubsub
}

func newSeededService(t *testing.T) (*application.LedgerService, *fakePubSub) {
	t.Helper()
	svc, pubsub := newTestService(t)
	out, err := domain.NewOutputForOwner("genesis_alice", 1000, "alice")
	require.NoError(t, err)
	require.NoError(t, svc.InitLedger(ctx, []domain.Output{out}))
	return svc, pubsub
}

func TestFailingNewLedgerService(t *testing.T) {
	_, err := application.NewLedgerService(
		nil, nil, nil, "main", nil,
	)
	require.EqualError(t, err, application.ErrNullRepoManager.Error())

	_, err = application.NewLedgerService(
		inmemory.NewRepoManager(), nil, nil, "", nil,
	)
	require.EqualError(t, err, application.ErrMissingLedgerKey.Error())
}

func TestInitLedger(t *testing.T) {
	svc, _ := newSeededService(t)

	balance, err := svc.GetBalance(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, uint64(1000), balance.TotalAmount)
	require.Equal(t, 1, balance.NumOutputs)

	// A second initialization must be refused.
	out, err := domain.NewOutputForOwner("genesis_again", 1, "mallory")
	require.NoError(t, err)
	err = svc.InitLedger(ctx, []domain.Output{out})
	require.EqualError(t, err, domain.ErrGenesisNotAllowed.Error())
}

func TestApplyTransaction(t *testing.T) {
	svc, pubsub := newSeededService(t)

	outBob, err := domain.NewOutputForOwner("out_bob", 600, "bob")
	require.NoError(t, err)
	outChange, err := domain.NewOutputForOwner("out_change", 390, "alice")
	require.NoError(t, err)
	tx, err := domain.NewTx(
		"tx_1", []domain.OutputID{"genesis_alice"},
		[]domain.Output{outBob, outChange}, "alice",
	)
	require.NoError(t, err)

	require.NoError(t, svc.CheckTransaction(ctx, tx))
	require.NoError(t, svc.ApplyTransaction(ctx, tx))
	require.Equal(t, 1, pubsub.published(application.TopicTransactionApplied))

	balance, err := svc.GetBalance(ctx, "bob")
	require.NoError(t, err)
	require.Equal(t, uint64(600), balance.TotalAmount)

	info, err := svc.GetLedgerInfo(ctx)
	require.NoError(t, err)
	require.Equal(t, uint64(10), info.TotalFeesCollected)
	require.Equal(t, uint64(990), info.TotalUnspentAmount)
	require.Equal(t, map[string]uint64{"tx_1": 10}, info.TxFees)

	// Replaying fails and publishes nothing further.
	require.EqualError(
		t, svc.ApplyTransaction(ctx, tx), domain.ErrDuplicateTx.Error(),
	)
	require.Equal(t, 1, pubsub.published(application.TopicTransactionApplied))
}

func TestApplyCoinbase(t *testing.T) {
	svc, pubsub := newSeededService(t)

	out, err := domain.NewOutputForOwner("minted_1", 50, "miner")
	require.NoError(t, err)
	cb, err := domain.NewCoinbaseTx("cb_1", []domain.Output{out})
	require.NoError(t, err)

	require.NoError(t, svc.ApplyCoinbase(ctx, cb))
	require.Equal(t, 1, pubsub.published(application.TopicCoinbaseApplied))

	info, err := svc.GetLedgerInfo(ctx)
	require.NoError(t, err)
	require.Equal(t, uint64(50), info.TotalMinted)
}

func TestCreditDebitTransfer(t *testing.T) {
	svc, _ := newSeededService(t)

	require.NoError(t, svc.Credit(ctx, "miner", 50))
	require.NoError(t, svc.Transfer(ctx, "alice", "bob", 600, 10))
	require.NoError(t, svc.Debit(ctx, "bob", 100, 5))

	for owner, expected := range map[string]uint64{
		"alice": 390, "bob": 495, "miner": 50,
	} {
		balance, err := svc.GetBalance(ctx, owner)
		require.NoError(t, err)
		require.Equal(t, expected, balance.TotalAmount, owner)
	}

	info, err := svc.GetLedgerInfo(ctx)
	require.NoError(t, err)
	require.Equal(t, uint64(115), info.TotalFeesCollected)
	require.Equal(t, uint64(50), info.TotalMinted)

	err = svc.Debit(ctx, "nobody", 1, 0)
	require.EqualError(t, err, domain.ErrInsufficientInputs.Error())
}

func TestListUnspents(t *testing.T) {
	svc, _ := newSeededService(t)

	unspents, err := svc.ListUnspents(ctx)
	require.NoError(t, err)
	require.Len(t, unspents, 1)
	require.Equal(t, "genesis_alice", unspents[0].ID)
	require.Equal(t, "alice", unspents[0].Owner)
	require.Equal(t, "owner", unspents[0].Lock)
}

func TestGetOutputHistory(t *testing.T) {
	svc, _ := newSeededService(t)

	require.NoError(t, svc.Transfer(ctx, "alice", "bob", 600, 0))

	provenance, err := svc.GetOutputHistory(ctx, "genesis_alice")
	require.NoError(t, err)
	require.Equal(t, domain.GenesisTxID, provenance.CreatedBy)
	require.True(t, provenance.IsSpent())

	_, err = svc.GetOutputHistory(ctx, "not an id")
	require.EqualError(t, err, domain.ErrInvalidIdentifier.Error())
}
