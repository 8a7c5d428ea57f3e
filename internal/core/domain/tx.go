package domain

import (
	"crypto/sha256"
	"strconv"
	"strings"
)

// signingMessagePrefix versions the canonical signing message so future
// encodings can coexist with already signed transactions.
const signingMessagePrefix = "tally/v1"

// Tx is a proposed spending transition: it references the outputs it
// consumes by id and carries the outputs it creates. It validates its own
// structure only, everything requiring ledger state (do the spends exist,
// are the locks satisfied, is the amount balanced) is checked by
// Ledger.Apply.
type Tx struct {
	ID       TxID
	Spends   []OutputID
	Outputs  []Output
	SignedBy string
	Proofs   [][]byte
}

// NewTx returns a new transaction after validating its structure: spends
// must be non-empty and free of duplicates, output ids must not collide
// with each other. An empty signedBy means the transaction is unsigned.
func NewTx(
	id TxID, spends []OutputID, outputs []Output, signedBy string,
) (*Tx, error) {
	if err := validateIdentifier(string(id)); err != nil {
		return nil, err
	}
	if len(spends) == 0 {
		return nil, ErrEmptySpends
	}
	seenSpends := make(map[OutputID]struct{}, len(spends))
	for _, spend := range spends {
		if _, ok := seenSpends[spend]; ok {
			return nil, ErrDuplicateSpend
		}
		seenSpends[spend] = struct{}{}
	}
	if err := checkUniqueOutputIDs(outputs); err != nil {
		return nil, err
	}

	return &Tx{
		ID:       id,
		Spends:   append([]OutputID(nil), spends...),
		Outputs:  append([]Output(nil), outputs...),
		SignedBy: signedBy,
		Proofs:   make([][]byte, len(spends)),
	}, nil
}

// WithProof returns a copy of the transaction with the proof attached at
// the given spend position. The receiver is left untouched.
func (t *Tx) WithProof(inputIndex int, proof []byte) *Tx {
	next := *t
	next.Proofs = make([][]byte, len(t.Spends))
	copy(next.Proofs, t.Proofs)
	if inputIndex >= 0 && inputIndex < len(next.Proofs) {
		next.Proofs[inputIndex] = proof
	}
	return &next
}

// ProofAt returns the proof attached at the given spend position, or nil.
func (t *Tx) ProofAt(inputIndex int) []byte {
	if inputIndex < 0 || inputIndex >= len(t.Proofs) {
		return nil
	}
	return t.Proofs[inputIndex]
}

// TotalOutputAmount sums the amounts of the created outputs.
func (t *Tx) TotalOutputAmount() uint64 {
	var total uint64
	for _, out := range t.Outputs {
		total += out.Amount
	}
	return total
}

// SigningMessage returns the canonical message cryptographic locks verify
// signatures against: a sha256 digest over the versioned encoding of the
// transaction id, its spends and its outputs. Proofs and the signer name
// are deliberately excluded so attaching a proof does not invalidate
// signatures already made.
func (t *Tx) SigningMessage() []byte {
	spends := make([]string, len(t.Spends))
	for i, spend := range t.Spends {
		spends[i] = string(spend)
	}
	outputs := make([]string, len(t.Outputs))
	for i, out := range t.Outputs {
		outputs[i] = string(out.ID) + ":" + strconv.FormatUint(out.Amount, 10)
	}

	encoded := strings.Join([]string{
		signingMessagePrefix,
		string(t.ID),
		strings.Join(spends, ","),
		strings.Join(outputs, ","),
	}, "|")

	digest := sha256.Sum256([]byte(encoded))
	return digest[:]
}

// CoinbaseTx is a minting transition: it creates outputs out of nothing,
// with no spends. Whether a caller may mint at all is decided by whoever
// holds the ledger, not by the transaction itself.
type CoinbaseTx struct {
	ID      TxID
	Outputs []Output
}

// NewCoinbaseTx returns a new coinbase after validating its structure:
// outputs must be non-empty and free of id collisions.
func NewCoinbaseTx(id TxID, outputs []Output) (*CoinbaseTx, error) {
	if err := validateIdentifier(string(id)); err != nil {
		return nil, err
	}
	if len(outputs) == 0 {
		return nil, ErrEmptyOutputs
	}
	if err := checkUniqueOutputIDs(outputs); err != nil {
		return nil, err
	}
	return &CoinbaseTx{
		ID:      id,
		Outputs: append([]Output(nil), outputs...),
	}, nil
}

// TotalOutputAmount sums the amounts of the minted outputs.
func (cb *CoinbaseTx) TotalOutputAmount() uint64 {
	var total uint64
	for _, out := range cb.Outputs {
		total += out.Amount
	}
	return total
}

func checkUniqueOutputIDs(outputs []Output) error {
	seen := make(map[OutputID]struct{}, len(outputs))
	for _, out := range outputs {
		if _, ok := seen[out.ID]; ok {
			return ErrDuplicateOutputID
		}
		seen[out.ID] = struct{}{}
	}
	return nil
}
