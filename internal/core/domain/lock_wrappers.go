package domain

import (
	"crypto/sha256"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"time"

	"golang.org/x/crypto/ripemd160"
)

// Hash algorithms supported by HashLock.
const (
	HashAlgorithmSHA256    = "sha256"
	HashAlgorithmSHA512    = "sha512"
	HashAlgorithmRIPEMD160 = "ripemd160"
)

// HashLock requires the proof for the input to be a preimage of the lock's
// hash. It optionally wraps an inner lock that must validate as well, so
// locks compose into chains.
type HashLock struct {
	hash      []byte
	algorithm string
	inner     Lock
}

// NewHashLock ...
func NewHashLock(hash []byte, algorithm string, inner Lock) (HashLock, error) {
	if len(hash) == 0 {
		return HashLock{}, ErrInvalidPreimage
	}
	switch algorithm {
	case HashAlgorithmSHA256, HashAlgorithmSHA512, HashAlgorithmRIPEMD160:
	default:
		return HashLock{}, ErrUnknownHashAlgorithm
	}
	return HashLock{hash: hash, algorithm: algorithm, inner: inner}, nil
}

// HashPreimage hashes a preimage under the given algorithm, producing the
// digest a HashLock guarding it must be constructed with.
func HashPreimage(preimage []byte, algorithm string) ([]byte, error) {
	switch algorithm {
	case HashAlgorithmSHA256:
		digest := sha256.Sum256(preimage)
		return digest[:], nil
	case HashAlgorithmSHA512:
		digest := sha512.Sum512(preimage)
		return digest[:], nil
	case HashAlgorithmRIPEMD160:
		h := ripemd160.New()
		h.Write(preimage)
		return h.Sum(nil), nil
	default:
		return nil, ErrUnknownHashAlgorithm
	}
}

// Type ...
func (l HashLock) Type() string { return LockTypeHash }

// Inner returns the wrapped lock, or nil.
func (l HashLock) Inner() Lock { return l.inner }

// Owner delegates to the inner lock when it has a named owner.
func (l HashLock) Owner() string {
	if ow, ok := l.inner.(ownable); ok {
		return ow.Owner()
	}
	return ""
}

// Validate checks the proof against the hash in constant time, then
// recurses into the inner lock if present.
func (l HashLock) Validate(tx *Tx, inputIndex int) error {
	proof := tx.ProofAt(inputIndex)
	if len(proof) == 0 {
		return ErrMissingProof
	}
	digest, err := HashPreimage(proof, l.algorithm)
	if err != nil {
		return err
	}
	if subtle.ConstantTimeCompare(digest, l.hash) != 1 {
		return ErrInvalidPreimage
	}
	if l.inner != nil {
		return l.inner.Validate(tx, inputIndex)
	}
	return nil
}

// Serialize ...
func (l HashLock) Serialize() map[string]interface{} {
	data := map[string]interface{}{
		"type":      LockTypeHash,
		"hash":      hex.EncodeToString(l.hash),
		"algorithm": l.algorithm,
	}
	if l.inner != nil {
		data["inner"] = l.inner.Serialize()
	}
	return data
}

func deserializeHashLock(
	data map[string]interface{}, registry *LockRegistry,
) (Lock, error) {
	encoded, ok := data["hash"].(string)
	if !ok {
		return nil, ErrInvalidPreimage
	}
	hash, err := hex.DecodeString(encoded)
	if err != nil {
		return nil, ErrInvalidPreimage
	}
	algorithm, _ := data["algorithm"].(string)
	inner, err := registry.deserializeInner(data["inner"])
	if err != nil {
		return nil, err
	}
	return NewHashLock(hash, algorithm, inner)
}

// TimeLock gates spending until a point in time, optionally wrapping an
// inner lock that must validate as well.
type TimeLock struct {
	unlockAt time.Time
	inner    Lock
}

// NewTimeLock ...
func NewTimeLock(unlockAt time.Time, inner Lock) TimeLock {
	return TimeLock{unlockAt: unlockAt, inner: inner}
}

// Type ...
func (l TimeLock) Type() string { return LockTypeTime }

// UnlockAt ...
func (l TimeLock) UnlockAt() time.Time { return l.unlockAt }

// Inner returns the wrapped lock, or nil.
func (l TimeLock) Inner() Lock { return l.inner }

// Owner delegates to the inner lock when it has a named owner.
func (l TimeLock) Owner() string {
	if ow, ok := l.inner.(ownable); ok {
		return ow.Owner()
	}
	return ""
}

// Validate fails until the unlock time is reached, then recurses into the
// inner lock if present.
func (l TimeLock) Validate(tx *Tx, inputIndex int) error {
	if time.Now().Before(l.unlockAt) {
		return ErrTimeLocked
	}
	if l.inner != nil {
		return l.inner.Validate(tx, inputIndex)
	}
	return nil
}

// Serialize ...
func (l TimeLock) Serialize() map[string]interface{} {
	data := map[string]interface{}{
		"type":      LockTypeTime,
		"unlock_at": l.unlockAt.Unix(),
	}
	if l.inner != nil {
		data["inner"] = l.inner.Serialize()
	}
	return data
}

func deserializeTimeLock(
	data map[string]interface{}, registry *LockRegistry,
) (Lock, error) {
	unlockAt, ok := intFromSerialized(data["unlock_at"])
	if !ok {
		return nil, ErrMalformedSnapshot
	}
	inner, err := registry.deserializeInner(data["inner"])
	if err != nil {
		return nil, err
	}
	return NewTimeLock(time.Unix(unlockAt, 0), inner), nil
}
