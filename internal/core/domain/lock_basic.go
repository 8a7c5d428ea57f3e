package domain

// NoLock allows anyone to spend the output.
type NoLock struct{}

// Type ...
func (NoLock) Type() string { return LockTypeNone }

// Validate always succeeds.
func (NoLock) Validate(_ *Tx, _ int) error { return nil }

// Serialize ...
func (NoLock) Serialize() map[string]interface{} {
	return map[string]interface{}{"type": LockTypeNone}
}

func deserializeNoLock(_ map[string]interface{}, _ *LockRegistry) (Lock, error) {
	return NoLock{}, nil
}

// OwnerLock allows spending only by transactions signed by the named owner.
// The identity check is plain equality, there is no cryptography involved.
type OwnerLock struct {
	owner string
}

// NewOwnerLock ...
func NewOwnerLock(owner string) (OwnerLock, error) {
	if err := validateIdentifier(owner); err != nil {
		return OwnerLock{}, err
	}
	return OwnerLock{owner: owner}, nil
}

// Type ...
func (l OwnerLock) Type() string { return LockTypeOwner }

// Owner returns the identity allowed to spend.
func (l OwnerLock) Owner() string { return l.owner }

// Validate succeeds iff the transaction is signed by the lock's owner.
func (l OwnerLock) Validate(tx *Tx, _ int) error {
	if tx.SignedBy != l.owner {
		return &NotAuthorizedError{Expected: l.owner, Actual: tx.SignedBy}
	}
	return nil
}

// Serialize ...
func (l OwnerLock) Serialize() map[string]interface{} {
	return map[string]interface{}{
		"type":  LockTypeOwner,
		"owner": l.owner,
	}
}

func deserializeOwnerLock(
	data map[string]interface{}, _ *LockRegistry,
) (Lock, error) {
	owner, ok := data["owner"].(string)
	if !ok {
		return nil, ErrInvalidIdentifier
	}
	return NewOwnerLock(owner)
}
