package domain

import "encoding/json"

// SnapshotOutput is the serializable shape of an output, with the lock in
// its {type, ...} map form.
type SnapshotOutput struct {
	ID     string                 `json:"id"`
	Amount uint64                 `json:"amount"`
	Lock   map[string]interface{} `json:"lock"`
}

// LedgerSnapshot is the serializable shape of a ledger, the only thing the
// persistence layer ever sees. Round-tripping a ledger through its
// snapshot, including the JSON encoding, is lossless for every lock
// variant and nesting.
type LedgerSnapshot struct {
	Unspents        []SnapshotOutput  `json:"unspents"`
	TxFees          map[string]uint64 `json:"tx_fees"`
	CoinbaseAmounts map[string]uint64 `json:"coinbase_amounts"`
	SeenOutputIDs   []string          `json:"seen_output_ids"`
	TotalMinted     uint64            `json:"total_minted"`
	Version         uint64            `json:"version"`
}

// Snapshot returns the serializable state of the ledger. The snapshot's
// version is left at zero, the persistence layer stamps it.
func (l *Ledger) Snapshot() *LedgerSnapshot {
	unspents := make([]SnapshotOutput, 0, l.unspent.Count())
	for _, out := range l.unspent.Outputs() {
		unspents = append(unspents, SnapshotOutput{
			ID:     string(out.ID),
			Amount: out.Amount,
			Lock:   out.Lock.Serialize(),
		})
	}

	txFees := make(map[string]uint64, len(l.txFees))
	for id, fee := range l.txFees {
		txFees[string(id)] = fee
	}
	coinbaseAmounts := make(map[string]uint64, len(l.coinbaseAmounts))
	for id, amount := range l.coinbaseAmounts {
		coinbaseAmounts[string(id)] = amount
	}
	seen := make([]string, 0, len(l.seenOutputs))
	for id := range l.seenOutputs {
		seen = append(seen, string(id))
	}

	return &LedgerSnapshot{
		Unspents:        unspents,
		TxFees:          txFees,
		CoinbaseAmounts: coinbaseAmounts,
		SeenOutputIDs:   seen,
		TotalMinted:     l.totalMinted,
		Version:         0,
	}
}

// LedgerFromSnapshot rebuilds a ledger from its snapshot, deserializing
// locks through the given registry and wiring the given history
// repository.
func LedgerFromSnapshot(
	snapshot *LedgerSnapshot, registry *LockRegistry, history HistoryRepository,
) (*Ledger, error) {
	if snapshot == nil || registry == nil {
		return nil, ErrMalformedSnapshot
	}

	outputs := make([]Output, 0, len(snapshot.Unspents))
	for _, serialized := range snapshot.Unspents {
		lock, err := registry.Deserialize(serialized.Lock)
		if err != nil {
			return nil, err
		}
		out, err := NewOutput(OutputID(serialized.ID), serialized.Amount, lock)
		if err != nil {
			return nil, err
		}
		outputs = append(outputs, out)
	}
	unspent, err := NewUnspentSet(outputs...)
	if err != nil {
		return nil, err
	}

	ledger := NewLedger(history)
	ledger.unspent = unspent
	for id, fee := range snapshot.TxFees {
		ledger.txFees[TxID(id)] = fee
	}
	for id, amount := range snapshot.CoinbaseAmounts {
		ledger.coinbaseAmounts[TxID(id)] = amount
	}
	for _, id := range snapshot.SeenOutputIDs {
		ledger.seenOutputs[OutputID(id)] = struct{}{}
	}
	for _, out := range outputs {
		ledger.seenOutputs[out.ID] = struct{}{}
	}
	ledger.totalMinted = snapshot.TotalMinted
	return ledger, nil
}

// JSON encodes the snapshot.
func (s *LedgerSnapshot) JSON() ([]byte, error) {
	return json.Marshal(s)
}

// SnapshotFromJSON decodes a snapshot previously encoded with JSON.
func SnapshotFromJSON(data []byte) (*LedgerSnapshot, error) {
	snapshot := &LedgerSnapshot{}
	if err := json.Unmarshal(data, snapshot); err != nil {
		return nil, ErrMalformedSnapshot
	}
	return snapshot, nil
}
