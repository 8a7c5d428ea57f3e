package application

import (
	"context"

	"github.com/tally-network/tally-daemon/internal/core/domain"
)

// BalanceInfo is the spendable balance of a single owner.
type BalanceInfo struct {
	Owner       string `json:"owner"`
	TotalAmount uint64 `json:"total_amount"`
	NumOutputs  int    `json:"num_outputs"`
}

// UnspentInfo is the queryable shape of a single unspent output.
type UnspentInfo struct {
	ID     string `json:"id"`
	Amount uint64 `json:"amount"`
	Owner  string `json:"owner,omitempty"`
	Lock   string `json:"lock"`
}

// LedgerInfo aggregates the ledger-wide accumulators.
type LedgerInfo struct {
	TotalUnspentAmount uint64            `json:"total_unspent_amount"`
	TotalMinted        uint64            `json:"total_minted"`
	TotalFeesCollected uint64            `json:"total_fees_collected"`
	NumUnspents        int               `json:"num_unspents"`
	TxFees             map[string]uint64 `json:"tx_fees"`
}

// GetBalance returns the spendable balance of the given owner.
func (s *LedgerService) GetBalance(ctx context.Context, owner string) (*BalanceInfo, error) {
	ledger, _, err := s.loadLedger(ctx)
	if err != nil {
		return nil, err
	}
	owned := ledger.UnspentByOwner(owner)
	return &BalanceInfo{
		Owner:       owner,
		TotalAmount: owned.TotalAmount(),
		NumOutputs:  owned.Count(),
	}, nil
}

// ListUnspents returns all currently unspent outputs, in insertion order.
func (s *LedgerService) ListUnspents(ctx context.Context) ([]UnspentInfo, error) {
	ledger, _, err := s.loadLedger(ctx)
	if err != nil {
		return nil, err
	}

	outputs := ledger.Unspents().Outputs()
	infos := make([]UnspentInfo, 0, len(outputs))
	for _, out := range outputs {
		infos = append(infos, UnspentInfo{
			ID:     out.ID.String(),
			Amount: out.Amount,
			Owner:  out.Owner(),
			Lock:   out.Lock.Type(),
		})
	}
	return infos, nil
}

// GetLedgerInfo returns the ledger-wide accumulators.
func (s *LedgerService) GetLedgerInfo(ctx context.Context) (*LedgerInfo, error) {
	ledger, _, err := s.loadLedger(ctx)
	if err != nil {
		return nil, err
	}

	fees := make(map[string]uint64)
	for id, fee := range ledger.AllTxFees() {
		fees[id.String()] = fee
	}
	return &LedgerInfo{
		TotalUnspentAmount: ledger.TotalUnspentAmount(),
		TotalMinted:        ledger.TotalMinted(),
		TotalFeesCollected: ledger.TotalFeesCollected(),
		NumUnspents:        ledger.Unspents().Count(),
		TxFees:             fees,
	}, nil
}

// GetOutputHistory returns the recorded provenance of an output.
func (s *LedgerService) GetOutputHistory(
	ctx context.Context, outputID string,
) (*domain.OutputProvenance, error) {
	id, err := domain.NewOutputID(outputID)
	if err != nil {
		return nil, err
	}
	return s.repoManager.HistoryRepository().GetOutputHistory(ctx, id)
}

// CheckTransaction probes whether the transaction would apply against the
// current ledger state, without committing anything.
func (s *LedgerService) CheckTransaction(ctx context.Context, tx *domain.Tx) error {
	ledger, _, err := s.loadLedger(ctx)
	if err != nil {
		return err
	}
	return ledger.CanApply(tx)
}
