package domain

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"regexp"
	"time"

	"github.com/thanhpk/randstr"
)

const maxIdentifierLength = 64

var identifierRegexp = regexp.MustCompile(`^[A-Za-z0-9._:-]+$`)

// OutputID identifies a single output. It is an opaque validated string,
// compared by value.
type OutputID string

// TxID identifies a transaction or a coinbase.
type TxID string

// NewOutputID validates the given string and returns it as an OutputID.
func NewOutputID(s string) (OutputID, error) {
	if err := validateIdentifier(s); err != nil {
		return "", err
	}
	return OutputID(s), nil
}

func (id OutputID) String() string {
	return string(id)
}

// NewTxID validates the given string and returns it as a TxID.
func NewTxID(s string) (TxID, error) {
	if err := validateIdentifier(s); err != nil {
		return "", err
	}
	return TxID(s), nil
}

func (id TxID) String() string {
	return string(id)
}

func validateIdentifier(s string) error {
	if len(s) == 0 || len(s) > maxIdentifierLength {
		return ErrInvalidIdentifier
	}
	if !identifierRegexp.MatchString(s) {
		return ErrInvalidIdentifier
	}
	return nil
}

// IDGenerator derives effectively unique identifiers by hashing an amount
// together with the current nanosecond clock and a random salt. Uniqueness
// is probabilistic, callers needing strong guarantees must supply explicit
// ids instead.
type IDGenerator struct{}

// NewIDGenerator ...
func NewIDGenerator() *IDGenerator {
	return &IDGenerator{}
}

// OutputID returns a fresh 32 hex character output id bound to the amount.
func (g *IDGenerator) OutputID(amount uint64) OutputID {
	return OutputID(g.digest(amount))
}

// TxID returns a fresh 32 hex character transaction id.
func (g *IDGenerator) TxID() TxID {
	return TxID(g.digest(0))
}

func (g *IDGenerator) digest(amount uint64) string {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, amount)

	h := sha256.New()
	h.Write(buf)
	binary.BigEndian.PutUint64(buf, uint64(time.Now().UnixNano()))
	h.Write(buf)
	h.Write(randstr.Bytes(16))

	return hex.EncodeToString(h.Sum(nil))[:32]
}
