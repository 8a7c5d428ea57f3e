package domain

import (
	"crypto/ed25519"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
)

// PublicKeyLock allows spending only with a valid ed25519 signature over the
// canonical signing message of the spending transaction. The proof for the
// input must carry the raw 64 byte signature.
type PublicKeyLock struct {
	pubkey ed25519.PublicKey
}

// NewPublicKeyLock ...
func NewPublicKeyLock(pubkey ed25519.PublicKey) (PublicKeyLock, error) {
	if len(pubkey) != ed25519.PublicKeySize {
		return PublicKeyLock{}, ErrInvalidPublicKey
	}
	return PublicKeyLock{pubkey: pubkey}, nil
}

// Type ...
func (l PublicKeyLock) Type() string { return LockTypePubKey }

// PublicKey returns the key the spending signature is verified against.
func (l PublicKeyLock) PublicKey() ed25519.PublicKey { return l.pubkey }

// Validate verifies the proof attached for the input as an ed25519
// signature over the transaction's signing message.
func (l PublicKeyLock) Validate(tx *Tx, inputIndex int) error {
	proof := tx.ProofAt(inputIndex)
	if len(proof) == 0 {
		return ErrMissingProof
	}
	if len(proof) != ed25519.SignatureSize ||
		!ed25519.Verify(l.pubkey, tx.SigningMessage(), proof) {
		return ErrInvalidSignature
	}
	return nil
}

// Serialize ...
func (l PublicKeyLock) Serialize() map[string]interface{} {
	return map[string]interface{}{
		"type":   LockTypePubKey,
		"pubkey": hex.EncodeToString(l.pubkey),
	}
}

func deserializePublicKeyLock(
	data map[string]interface{}, _ *LockRegistry,
) (Lock, error) {
	encoded, ok := data["pubkey"].(string)
	if !ok {
		return nil, ErrInvalidPublicKey
	}
	pubkey, err := hex.DecodeString(encoded)
	if err != nil {
		return nil, ErrInvalidPublicKey
	}
	return NewPublicKeyLock(pubkey)
}

// MultisigLock requires at least threshold distinct signers, among the named
// ones, to have attached a valid signature for the input. The proof format
// is the one produced by EncodeMultisigProof.
type MultisigLock struct {
	threshold int
	signers   map[string]ed25519.PublicKey
}

// NewMultisigLock ...
func NewMultisigLock(
	threshold int, signers map[string]ed25519.PublicKey,
) (MultisigLock, error) {
	if threshold < 1 || threshold > len(signers) {
		return MultisigLock{}, ErrInvalidThreshold
	}
	keys := make(map[string]ed25519.PublicKey, len(signers))
	for name, pubkey := range signers {
		if err := validateIdentifier(name); err != nil {
			return MultisigLock{}, err
		}
		if len(pubkey) != ed25519.PublicKeySize {
			return MultisigLock{}, ErrInvalidPublicKey
		}
		keys[name] = pubkey
	}
	return MultisigLock{threshold: threshold, signers: keys}, nil
}

// Type ...
func (l MultisigLock) Type() string { return LockTypeMultisig }

// Threshold ...
func (l MultisigLock) Threshold() int { return l.threshold }

// Validate counts the distinct named signers with a valid signature in the
// proof attached for the input and succeeds once the threshold is met.
func (l MultisigLock) Validate(tx *Tx, inputIndex int) error {
	proof := tx.ProofAt(inputIndex)
	if len(proof) == 0 {
		return ErrMissingProof
	}
	entries, err := DecodeMultisigProof(proof)
	if err != nil {
		return err
	}

	message := tx.SigningMessage()
	valid := 0
	for name, sig := range entries {
		pubkey, ok := l.signers[name]
		if !ok {
			continue
		}
		if len(sig) == ed25519.SignatureSize && ed25519.Verify(pubkey, message, sig) {
			valid++
		}
	}
	if valid < l.threshold {
		return ErrInsufficientSignatures
	}
	return nil
}

// Serialize ...
func (l MultisigLock) Serialize() map[string]interface{} {
	signers := make(map[string]interface{}, len(l.signers))
	for name, pubkey := range l.signers {
		signers[name] = hex.EncodeToString(pubkey)
	}
	return map[string]interface{}{
		"type":      LockTypeMultisig,
		"threshold": l.threshold,
		"signers":   signers,
	}
}

func deserializeMultisigLock(
	data map[string]interface{}, _ *LockRegistry,
) (Lock, error) {
	threshold, ok := intFromSerialized(data["threshold"])
	if !ok {
		return nil, ErrInvalidThreshold
	}
	rawSigners, ok := data["signers"].(map[string]interface{})
	if !ok {
		return nil, ErrInvalidPublicKey
	}
	signers := make(map[string]ed25519.PublicKey, len(rawSigners))
	for name, v := range rawSigners {
		encoded, ok := v.(string)
		if !ok {
			return nil, ErrInvalidPublicKey
		}
		pubkey, err := hex.DecodeString(encoded)
		if err != nil {
			return nil, ErrInvalidPublicKey
		}
		signers[name] = pubkey
	}
	return NewMultisigLock(int(threshold), signers)
}

// SignTx returns the ed25519 signature over the transaction's canonical
// signing message, suitable as the proof for an input guarded by a
// PublicKeyLock.
func SignTx(privkey ed25519.PrivateKey, tx *Tx) []byte {
	return ed25519.Sign(privkey, tx.SigningMessage())
}

// EncodeMultisigProof packs per-signer signatures into a single proof blob
// for an input guarded by a MultisigLock. Entries are sorted by signer name
// so the encoding is deterministic.
func EncodeMultisigProof(signatures map[string][]byte) []byte {
	names := make([]string, 0, len(signatures))
	for name := range signatures {
		names = append(names, name)
	}
	sort.Strings(names)

	entries := make([]string, 0, len(names))
	for _, name := range names {
		entries = append(entries, name+"="+hex.EncodeToString(signatures[name]))
	}
	return []byte(strings.Join(entries, ";"))
}

// DecodeMultisigProof unpacks a proof blob produced by EncodeMultisigProof.
func DecodeMultisigProof(proof []byte) (map[string][]byte, error) {
	entries := strings.Split(string(proof), ";")
	signatures := make(map[string][]byte, len(entries))
	for _, entry := range entries {
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("%w: malformed multisig proof", ErrInvalidSignature)
		}
		sig, err := hex.DecodeString(parts[1])
		if err != nil {
			return nil, fmt.Errorf("%w: malformed multisig proof", ErrInvalidSignature)
		}
		signatures[parts[0]] = sig
	}
	return signatures, nil
}
