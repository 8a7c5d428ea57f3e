package domain_test

import (
	"crypto/ed25519"
	"crypto/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tally-network/tally-daemon/internal/core/domain"
)

func newTestTx(t *testing.T, signedBy string) *domain.Tx {
	t.Helper()
	out, err := domain.NewUnlockedOutput("change_1", 50)
	require.NoError(t, err)
	tx, err := domain.NewTx(
		"tx_1", []domain.OutputID{"spent_1"}, []domain.Output{out}, signedBy,
	)
	require.NoError(t, err)
	return tx
}

func TestNoLockValidate(t *testing.T) {
	tx := newTestTx(t, "")
	require.NoError(t, domain.NoLock{}.Validate(tx, 0))
}

func TestOwnerLockValidate(t *testing.T) {
	lock, err := domain.NewOwnerLock("alice")
	require.NoError(t, err)

	require.NoError(t, lock.Validate(newTestTx(t, "alice"), 0))

	err = lock.Validate(newTestTx(t, "mallory"), 0)
	var notAuthorized *domain.NotAuthorizedError
	require.ErrorAs(t, err, &notAuthorized)
	require.Equal(t, "alice", notAuthorized.Expected)
	require.Equal(t, "mallory", notAuthorized.Actual)

	err = lock.Validate(newTestTx(t, ""), 0)
	require.ErrorAs(t, err, &notAuthorized)
	require.Empty(t, notAuthorized.Actual)
}

func TestPublicKeyLockValidate(t *testing.T) {
	pubkey, privkey, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	lock, err := domain.NewPublicKeyLock(pubkey)
	require.NoError(t, err)

	tx := newTestTx(t, "")
	require.ErrorIs(t, lock.Validate(tx, 0), domain.ErrMissingProof)

	signed := tx.WithProof(0, domain.SignTx(privkey, tx))
	require.NoError(t, lock.Validate(signed, 0))

	garbage := tx.WithProof(0, []byte("not-a-signature"))
	require.ErrorIs(t, lock.Validate(garbage, 0), domain.ErrInvalidSignature)

	otherPubkey, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	otherLock, err := domain.NewPublicKeyLock(otherPubkey)
	require.NoError(t, err)
	require.ErrorIs(t, otherLock.Validate(signed, 0), domain.ErrInvalidSignature)
}

func TestHashLockValidate(t *testing.T) {
	preimage := []byte("open sesame")

	for _, algorithm := range []string{
		domain.HashAlgorithmSHA256,
		domain.HashAlgorithmSHA512,
		domain.HashAlgorithmRIPEMD160,
	} {
		t.Run(algorithm, func(t *testing.T) {
			hash, err := domain.HashPreimage(preimage, algorithm)
			require.NoError(t, err)
			lock, err := domain.NewHashLock(hash, algorithm, nil)
			require.NoError(t, err)

			tx := newTestTx(t, "")
			require.ErrorIs(t, lock.Validate(tx, 0), domain.ErrMissingProof)

			require.NoError(t, lock.Validate(tx.WithProof(0, preimage), 0))

			wrong := tx.WithProof(0, []byte("wrong"))
			require.ErrorIs(t, lock.Validate(wrong, 0), domain.ErrInvalidPreimage)
		})
	}
}

func TestHashLockWithInnerLock(t *testing.T) {
	preimage := []byte("open sesame")
	hash, err := domain.HashPreimage(preimage, domain.HashAlgorithmSHA256)
	require.NoError(t, err)

	innerLock, err := domain.NewOwnerLock("alice")
	require.NoError(t, err)
	lock, err := domain.NewHashLock(hash, domain.HashAlgorithmSHA256, innerLock)
	require.NoError(t, err)

	// Preimage alone is not enough, the inner lock must hold too.
	aliceTx := newTestTx(t, "alice").WithProof(0, preimage)
	require.NoError(t, lock.Validate(aliceTx, 0))

	malloryTx := newTestTx(t, "mallory").WithProof(0, preimage)
	var notAuthorized *domain.NotAuthorizedError
	require.ErrorAs(t, lock.Validate(malloryTx, 0), &notAuthorized)
}

func TestFailingNewHashLock(t *testing.T) {
	_, err := domain.NewHashLock([]byte{0x01}, "md5", nil)
	require.ErrorIs(t, err, domain.ErrUnknownHashAlgorithm)

	_, err = domain.NewHashLock(nil, domain.HashAlgorithmSHA256, nil)
	require.Error(t, err)
}

func TestTimeLockValidate(t *testing.T) {
	tx := newTestTx(t, "alice")

	expired := domain.NewTimeLock(time.Now().Add(-time.Hour), nil)
	require.NoError(t, expired.Validate(tx, 0))

	locked := domain.NewTimeLock(time.Now().Add(time.Hour), nil)
	require.ErrorIs(t, locked.Validate(tx, 0), domain.ErrTimeLocked)

	innerLock, err := domain.NewOwnerLock("bob")
	require.NoError(t, err)
	gated := domain.NewTimeLock(time.Now().Add(-time.Hour), innerLock)
	var notAuthorized *domain.NotAuthorizedError
	require.ErrorAs(t, gated.Validate(tx, 0), &notAuthorized)
}

func TestMultisigLockValidate(t *testing.T) {
	alicePub, alicePriv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	bobPub, bobPriv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	_, malloryPriv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	lock, err := domain.NewMultisigLock(2, map[string]ed25519.PublicKey{
		"alice": alicePub,
		"bob":   bobPub,
	})
	require.NoError(t, err)

	tx := newTestTx(t, "")
	require.ErrorIs(t, lock.Validate(tx, 0), domain.ErrMissingProof)

	bothSigned := tx.WithProof(0, domain.EncodeMultisigProof(map[string][]byte{
		"alice": domain.SignTx(alicePriv, tx),
		"bob":   domain.SignTx(bobPriv, tx),
	}))
	require.NoError(t, lock.Validate(bothSigned, 0))

	oneSigned := tx.WithProof(0, domain.EncodeMultisigProof(map[string][]byte{
		"alice": domain.SignTx(alicePriv, tx),
	}))
	require.ErrorIs(t, lock.Validate(oneSigned, 0), domain.ErrInsufficientSignatures)

	// A signature from an unknown signer does not count towards the
	// threshold, even if cryptographically valid.
	withStranger := tx.WithProof(0, domain.EncodeMultisigProof(map[string][]byte{
		"alice":   domain.SignTx(alicePriv, tx),
		"mallory": domain.SignTx(malloryPriv, tx),
	}))
	require.ErrorIs(t, lock.Validate(withStranger, 0), domain.ErrInsufficientSignatures)

	forged := tx.WithProof(0, domain.EncodeMultisigProof(map[string][]byte{
		"alice": domain.SignTx(alicePriv, tx),
		"bob":   domain.SignTx(malloryPriv, tx),
	}))
	require.ErrorIs(t, lock.Validate(forged, 0), domain.ErrInsufficientSignatures)
}

func TestFailingNewMultisigLock(t *testing.T) {
	pubkey, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	signers := map[string]ed25519.PublicKey{"alice": pubkey}

	tests := []struct {
		name          string
		threshold     int
		expectedError error
	}{
		{"zero_threshold", 0, domain.ErrInvalidThreshold},
		{"threshold_above_signers", 2, domain.ErrInvalidThreshold},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := domain.NewMultisigLock(tt.threshold, signers)
			require.EqualError(t, err, tt.expectedError.Error())
		})
	}
}

func TestLockRegistryRoundTrip(t *testing.T) {
	registry := domain.NewLockRegistry()

	pubkey, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	ownerLock, err := domain.NewOwnerLock("alice")
	require.NoError(t, err)
	pubkeyLock, err := domain.NewPublicKeyLock(pubkey)
	require.NoError(t, err)
	hash, err := domain.HashPreimage([]byte("x"), domain.HashAlgorithmSHA256)
	require.NoError(t, err)
	hashLock, err := domain.NewHashLock(hash, domain.HashAlgorithmSHA256, ownerLock)
	require.NoError(t, err)
	multisigLock, err := domain.NewMultisigLock(1, map[string]ed25519.PublicKey{
		"alice": pubkey,
	})
	require.NoError(t, err)

	locks := []domain.Lock{
		domain.NoLock{},
		ownerLock,
		pubkeyLock,
		hashLock,
		domain.NewTimeLock(time.Unix(1700000000, 0), hashLock),
		multisigLock,
	}

	for _, lock := range locks {
		t.Run(lock.Type(), func(t *testing.T) {
			restored, err := registry.Deserialize(lock.Serialize())
			require.NoError(t, err)
			require.Equal(t, lock.Serialize(), restored.Serialize())
		})
	}
}

type stampLock struct{}

func (stampLock) Type() string { return "stamp" }
func (stampLock) Validate(_ *domain.Tx, _ int) error { return nil }
func (stampLock) Serialize() map[string]interface{} {
	return map[string]interface{}{"type": "stamp"}
}

func TestLockRegistryCustomType(t *testing.T) {
	registry := domain.NewLockRegistry()

	_, err := registry.Deserialize(map[string]interface{}{"type": "stamp"})
	require.ErrorIs(t, err, domain.ErrUnknownLockType)

	registry.Register("stamp", func(
		_ map[string]interface{}, _ *domain.LockRegistry,
	) (domain.Lock, error) {
		return stampLock{}, nil
	})

	lock, err := registry.Deserialize(map[string]interface{}{"type": "stamp"})
	require.NoError(t, err)
	require.Equal(t, "stamp", lock.Type())
}
