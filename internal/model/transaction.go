package model

import (
	"github.com/ethereum/go-ethereum/core/types"
)

// TransactRequest represents request for POST /eth/deposit and /eth/withdraw.
// Amount is passed to the contract as typed.
type TransactRequest struct {
	Amount string `json:"amount"`
}

// TransactResponse represents response for POST /eth/deposit and /eth/withdraw
type TransactResponse struct {
	Outcome string          `json:"outcome"`
	Phase   string          `json:"phase"`
	Balance string          `json:"balance"`
	Receipt *ReceiptSummary `json:"receipt,omitempty"`
}

// ReceiptSummary is the part of a transaction receipt the panel shows
type ReceiptSummary struct {
	TxHash      string `json:"txHash"`
	BlockNumber uint64 `json:"blockNumber"`
	GasUsed     uint64 `json:"gasUsed"`
	Status      string `json:"status"` // "success" or "failed"
}

// NewReceiptSummary summarizes r. Nil in, nil out.
func NewReceiptSummary(r *types.Receipt) *ReceiptSummary {
	if r == nil {
		return nil
	}

	s := &ReceiptSummary{
		TxHash:  r.TxHash.Hex(),
		GasUsed: r.GasUsed,
		Status:  "success",
	}
	if r.BlockNumber != nil {
		s.BlockNumber = r.BlockNumber.Uint64()
	}
	if r.Status == types.ReceiptStatusFailed {
		s.Status = "failed"
	}
	return s
}
