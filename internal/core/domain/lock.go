package domain

import (
	"encoding/json"
	"fmt"
)

// Lock type tags used by serialization and by the lock registry.
const (
	LockTypeNone     = "none"
	LockTypeOwner    = "owner"
	LockTypePubKey   = "pubkey"
	LockTypeHash     = "hashlock"
	LockTypeTime     = "timelock"
	LockTypeMultisig = "multisig"
)

// Lock is an authorization predicate attached to an output. Validate is
// called against the transaction attempting to spend the output and the
// position of the spend within it.
type Lock interface {
	Type() string
	Validate(tx *Tx, inputIndex int) error
	Serialize() map[string]interface{}
}

// ownable is implemented by locks with an introspectable named owner.
// Wrapper locks delegate to their inner lock.
type ownable interface {
	Owner() string
}

// LockDeserializer rebuilds a lock from its serialized map. The registry is
// passed through so wrapper locks can deserialize their inner lock.
type LockDeserializer func(
	data map[string]interface{}, registry *LockRegistry,
) (Lock, error)

// LockRegistry maps lock type tags to deserializers. It is an explicitly
// constructed instance passed to whatever needs to rebuild locks, there is
// no process-wide registry. Custom lock types can be registered without
// touching the built-ins.
type LockRegistry struct {
	deserializers map[string]LockDeserializer
}

// NewLockRegistry returns a registry preloaded with all built-in lock types.
func NewLockRegistry() *LockRegistry {
	r := &LockRegistry{
		deserializers: make(map[string]LockDeserializer),
	}
	r.deserializers[LockTypeNone] = deserializeNoLock
	r.deserializers[LockTypeOwner] = deserializeOwnerLock
	r.deserializers[LockTypePubKey] = deserializePublicKeyLock
	r.deserializers[LockTypeHash] = deserializeHashLock
	r.deserializers[LockTypeTime] = deserializeTimeLock
	r.deserializers[LockTypeMultisig] = deserializeMultisigLock
	return r
}

// Register adds a deserializer for a custom lock type, overriding any
// previous registration for the same tag.
func (r *LockRegistry) Register(typeTag string, fn LockDeserializer) {
	r.deserializers[typeTag] = fn
}

// Deserialize rebuilds a lock from its {type, ...} map. An unknown type tag
// is a hard error, never a silent default.
func (r *LockRegistry) Deserialize(data map[string]interface{}) (Lock, error) {
	typeTag, ok := data["type"].(string)
	if !ok {
		return nil, fmt.Errorf("%w: missing type tag", ErrUnknownLockType)
	}
	fn, ok := r.deserializers[typeTag]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownLockType, typeTag)
	}
	return fn(data, r)
}

// deserializeInner rebuilds the optional inner lock of a wrapper from its
// serialized form. A nil or missing value means no inner lock.
func (r *LockRegistry) deserializeInner(v interface{}) (Lock, error) {
	if v == nil {
		return nil, nil
	}
	inner, ok := v.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: malformed inner lock", ErrUnknownLockType)
	}
	return r.Deserialize(inner)
}

func intFromSerialized(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case uint64:
		return int64(n), true
	case float64:
		return int64(n), true
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	default:
		return 0, false
	}
}
