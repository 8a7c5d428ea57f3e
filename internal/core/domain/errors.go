package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidIdentifier is thrown when an output or transaction id is
	// empty, too long or contains disallowed characters.
	ErrInvalidIdentifier = errors.New(
		"identifier must be 1 to 64 characters of [A-Za-z0-9._:-]",
	)
	// ErrInvalidAmount is thrown when creating an output with a zero amount.
	ErrInvalidAmount = errors.New("output amount must be a positive integer")
	// ErrDuplicateOutputID is thrown when an output id collides with one
	// already known, either within a single transaction or ledger-wide.
	ErrDuplicateOutputID = errors.New("output id already exists")
	// ErrOutputNotFound ...
	ErrOutputNotFound = errors.New("output not found")
	// ErrEmptySpends ...
	ErrEmptySpends = errors.New("transaction must spend at least one output")
	// ErrEmptyOutputs ...
	ErrEmptyOutputs = errors.New("coinbase must create at least one output")
	// ErrDuplicateSpend ...
	ErrDuplicateSpend = errors.New("transaction spends the same output id twice")
	// ErrDuplicateTx is thrown when replaying an already applied transaction
	// or coinbase id.
	ErrDuplicateTx = errors.New("transaction id already applied")
	// ErrOutputAlreadySpentOrUnknown is thrown when a spend references an
	// output that is not in the unspent set.
	ErrOutputAlreadySpentOrUnknown = errors.New(
		"output is already spent or unknown",
	)
	// ErrGenesisNotAllowed ...
	ErrGenesisNotAllowed = errors.New("genesis requires an empty ledger")
	// ErrInsufficientInputs is thrown when the total output amount of a
	// transaction exceeds the total amount of its resolved inputs.
	ErrInsufficientInputs = errors.New(
		"total output amount exceeds total input amount",
	)
	// ErrMissingProof ...
	ErrMissingProof = errors.New("missing proof for input")
	// ErrInvalidSignature ...
	ErrInvalidSignature = errors.New("signature verification failed")
	// ErrInvalidPreimage ...
	ErrInvalidPreimage = errors.New("preimage does not match the lock hash")
	// ErrTimeLocked ...
	ErrTimeLocked = errors.New("output is time-locked")
	// ErrInsufficientSignatures ...
	ErrInsufficientSignatures = errors.New("not enough valid signatures")
	// ErrUnknownLockType is thrown when deserializing a lock whose type tag
	// is not registered.
	ErrUnknownLockType = errors.New("unknown lock type")
	// ErrUnknownHashAlgorithm ...
	ErrUnknownHashAlgorithm = errors.New("unknown hash algorithm")
	// ErrInvalidPublicKey ...
	ErrInvalidPublicKey = errors.New("public key must be 32 bytes of ed25519 data")
	// ErrInvalidThreshold ...
	ErrInvalidThreshold = errors.New(
		"multisig threshold must be between 1 and the number of signers",
	)
	// ErrMalformedSnapshot ...
	ErrMalformedSnapshot = errors.New("malformed ledger snapshot")
	// ErrLedgerNotFound ...
	ErrLedgerNotFound = errors.New("ledger not found")
	// ErrLedgerVersionConflict is thrown by repositories when a concurrent
	// writer updated the ledger since it was loaded.
	ErrLedgerVersionConflict = errors.New("ledger version conflict")
)

// NotAuthorizedError is returned by owner locks when the transaction is
// signed by the wrong identity, or not signed at all.
type NotAuthorizedError struct {
	Expected string
	Actual   string
}

func (e *NotAuthorizedError) Error() string {
	if e.Actual == "" {
		return fmt.Sprintf("not authorized: expected signer %q, tx is unsigned", e.Expected)
	}
	return fmt.Sprintf("not authorized: expected signer %q, got %q", e.Expected, e.Actual)
}
