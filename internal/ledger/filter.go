package ledger

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Field restricts where a search term is looked for.
type Field string

const (
	FieldAny      Field = ""
	FieldDate     Field = "date"
	FieldKind     Field = "kind"
	FieldCategory Field = "category"
	FieldAmount   Field = "amount"
	FieldNote     Field = "note"
)

// SearchFields lists the selectable fields in display order.
var SearchFields = []Field{FieldAny, FieldDate, FieldKind, FieldCategory, FieldAmount, FieldNote}

func (f Field) String() string {
	if f == FieldAny {
		return "all"
	}

	return string(f)
}

// Criteria selects transactions. Zero-valued criteria match everything.
// Amount bounds and date bounds are inclusive; dates compare as YYYY-MM-DD text.
type Criteria struct {
	Term      string
	Field     Field
	Kind      Kind
	Category  string
	MinAmount *decimal.Decimal
	MaxAmount *decimal.Decimal
	StartDate string
	EndDate   string
}

// Filter returns the transactions matching c, in their original order.
func Filter(txs []Transaction, c Criteria) []Transaction {
	out := make([]Transaction, 0, len(txs))

	for _, tx := range txs {
		if c.Match(tx) {
			out = append(out, tx)
		}
	}

	return out
}

func (c Criteria) Match(tx Transaction) bool {
	return c.matchTerm(tx) &&
		(c.Kind == "" || tx.Kind == c.Kind) &&
		(c.Category == "" || tx.Category == c.Category) &&
		c.matchAmount(tx) &&
		(c.StartDate == "" || tx.Date >= c.StartDate) &&
		(c.EndDate == "" || tx.Date <= c.EndDate)
}

func (c Criteria) matchTerm(tx Transaction) bool {
	if c.Term == "" {
		return true
	}

	term := strings.ToLower(c.Term)

	if c.Field != FieldAny {
		return strings.Contains(fieldText(tx, c.Field), term)
	}

	for _, f := range SearchFields[1:] {
		if strings.Contains(fieldText(tx, f), term) {
			return true
		}
	}

	return false
}

func fieldText(tx Transaction, f Field) string {
	switch f {
	case FieldDate:
		return strings.ToLower(tx.Date)
	case FieldKind:
		return strings.ToLower(string(tx.Kind))
	case FieldCategory:
		return strings.ToLower(tx.Category)
	case FieldAmount:
		return strings.ToLower(tx.Amount.String())
	case FieldNote:
		return strings.ToLower(tx.Note)
	}

	return ""
}

func (c Criteria) matchAmount(tx Transaction) bool {
	if c.MinAmount == nil && c.MaxAmount == nil {
		return true
	}

	d, ok := tx.Amount.Decimal()
	if !ok {
		return false
	}

	if c.MinAmount != nil && d.LessThan(*c.MinAmount) {
		return false
	}

	if c.MaxAmount != nil && d.GreaterThan(*c.MaxAmount) {
		return false
	}

	return true
}
