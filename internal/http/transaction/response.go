package transaction

import (
	"github.com/MrJamesThe3rd/tally/internal/ledger"
)

type transactionResponse struct {
	ID       string        `json:"id"`
	Amount   ledger.Amount `json:"amount"`
	Category string        `json:"category"`
	Date     string        `json:"date"`
	Kind     ledger.Kind   `json:"kind"`
	Note     string        `json:"note"`
}

func toResponse(tx ledger.Transaction) transactionResponse {
	return transactionResponse{
		ID:       tx.ID,
		Amount:   tx.Amount,
		Category: tx.Category,
		Date:     tx.Date,
		Kind:     tx.Kind,
		Note:     tx.Note,
	}
}

func toResponseList(txs []ledger.Transaction) []transactionResponse {
	resp := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = toResponse(tx)
	}

	return resp
}
