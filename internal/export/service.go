package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/MrJamesThe3rd/tally/internal/ledger"
)

// Header is the column row written by WriteCSV. The importer reads it back.
var Header = []string{"date", "kind", "category", "amount", "note"}

type Lister interface {
	List(c ledger.Criteria) []ledger.Transaction
}

// Service exports transactions as CSV or as a plain-text summary.
type Service struct {
	transactions Lister
}

func NewService(transactions Lister) *Service {
	return &Service{transactions: transactions}
}

// WriteCSV writes the transactions matching c and returns how many rows were
// written.
func (s *Service) WriteCSV(w io.Writer, c ledger.Criteria) (int, error) {
	txs := s.transactions.List(c)

	cw := csv.NewWriter(w)

	if err := cw.Write(Header); err != nil {
		return 0, fmt.Errorf("writing header: %w", err)
	}

	for _, tx := range txs {
		row := []string{tx.Date, string(tx.Kind), tx.Category, tx.Amount.String(), tx.Note}
		if err := cw.Write(row); err != nil {
			return 0, fmt.Errorf("writing transaction %s: %w", tx.ID, err)
		}
	}

	cw.Flush()

	if err := cw.Error(); err != nil {
		return 0, fmt.Errorf("flushing csv: %w", err)
	}

	return len(txs), nil
}

// GenerateSummary renders one line per transaction, suitable for pasting into
// a message.
func (s *Service) GenerateSummary(txs []ledger.Transaction) string {
	var sb strings.Builder

	for _, tx := range txs {
		sign := "-"
		if tx.Kind == ledger.KindIncome {
			sign = "+"
		}

		amount := tx.Amount.String()
		if d, ok := tx.Amount.Decimal(); ok {
			amount = d.StringFixed(2)
		}

		note := tx.Note
		if note == "" {
			note = "-"
		}

		sb.WriteString(fmt.Sprintf("* %s | %s | %s%s | %s\n", tx.Date, tx.Category, sign, amount, note))
	}

	return sb.String()
}
