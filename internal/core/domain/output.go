package domain

import (
	"crypto/ed25519"
	"time"
)

// Output is an immutable chunk of value bound to an id, a positive amount
// and an authorization lock. An output is never mutated after construction,
// it logically dies by being removed from the unspent set.
type Output struct {
	ID     OutputID
	Amount uint64
	Lock   Lock
}

// NewOutput returns a new output after validating its id and amount. A nil
// lock defaults to NoLock, making the output spendable by anyone.
func NewOutput(id OutputID, amount uint64, lock Lock) (Output, error) {
	if err := validateIdentifier(string(id)); err != nil {
		return Output{}, err
	}
	if amount == 0 {
		return Output{}, ErrInvalidAmount
	}
	if lock == nil {
		lock = NoLock{}
	}
	return Output{ID: id, Amount: amount, Lock: lock}, nil
}

// NewUnlockedOutput returns an output spendable by anyone.
func NewUnlockedOutput(id OutputID, amount uint64) (Output, error) {
	return NewOutput(id, amount, NoLock{})
}

// NewOutputForOwner returns an output spendable only by transactions signed
// by the named owner.
func NewOutputForOwner(id OutputID, amount uint64, owner string) (Output, error) {
	lock, err := NewOwnerLock(owner)
	if err != nil {
		return Output{}, err
	}
	return NewOutput(id, amount, lock)
}

// NewOutputWithPublicKey returns an output guarded by an ed25519 signature
// over the spending transaction.
func NewOutputWithPublicKey(
	id OutputID, amount uint64, pubkey ed25519.PublicKey,
) (Output, error) {
	lock, err := NewPublicKeyLock(pubkey)
	if err != nil {
		return Output{}, err
	}
	return NewOutput(id, amount, lock)
}

// NewOutputWithHashLock returns an output guarded by a hash preimage, with
// an optional inner lock that must validate as well.
func NewOutputWithHashLock(
	id OutputID, amount uint64, hash []byte, algorithm string, inner Lock,
) (Output, error) {
	lock, err := NewHashLock(hash, algorithm, inner)
	if err != nil {
		return Output{}, err
	}
	return NewOutput(id, amount, lock)
}

// NewOutputWithTimeLock returns an output spendable only from unlockAt on,
// with an optional inner lock that must validate as well.
func NewOutputWithTimeLock(
	id OutputID, amount uint64, unlockAt time.Time, inner Lock,
) (Output, error) {
	return NewOutput(id, amount, NewTimeLock(unlockAt, inner))
}

// NewOutputWithMultisig returns an output requiring at least threshold valid
// signatures among the given named signers.
func NewOutputWithMultisig(
	id OutputID, amount uint64, threshold int, signers map[string]ed25519.PublicKey,
) (Output, error) {
	lock, err := NewMultisigLock(threshold, signers)
	if err != nil {
		return Output{}, err
	}
	return NewOutput(id, amount, lock)
}

// Owner returns the introspectable owner of the output's lock, or an empty
// string for locks without a named owner.
func (o Output) Owner() string {
	if ow, ok := o.Lock.(ownable); ok {
		return ow.Owner()
	}
	return ""
}
