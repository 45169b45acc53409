package ledger

import (
	"github.com/google/uuid"
)

// Kind tells an expense apart from an income.
type Kind string

const (
	KindExpense Kind = "expense"
	KindIncome  Kind = "income"
)

func (k Kind) Valid() bool {
	return k == KindExpense || k == KindIncome
}

// Transaction is one income or expense event.
//
// Date is kept as the ISO YYYY-MM-DD text it was entered with; the store does
// not parse it.
type Transaction struct {
	ID       string
	Amount   Amount
	Category string
	Date     string
	Kind     Kind
	Note     string
}

// NewTransaction builds a transaction with a fresh id.
func NewTransaction(amount Amount, category, date string, kind Kind, note string) Transaction {
	return Transaction{
		ID:       NewTransactionID(),
		Amount:   amount,
		Category: category,
		Date:     date,
		Kind:     kind,
		Note:     note,
	}
}

// NewTransactionID returns "txn_" followed by a UUIDv7. The leading bits are a
// millisecond timestamp, so ids sort by creation time, and the random tail
// keeps ids created within the same millisecond apart.
func NewTransactionID() string {
	return "txn_" + uuid.Must(uuid.NewV7()).String()
}

// ToMap returns the persisted fields keyed by name.
func (t Transaction) ToMap() map[string]any {
	return map[string]any{
		"id":       t.ID,
		"amount":   t.Amount,
		"category": t.Category,
		"date":     t.Date,
		"kind":     string(t.Kind),
		"note":     t.Note,
	}
}

// TransactionFromMap is the inverse of ToMap. Field values are not validated;
// only the presence of the required keys is checked.
func TransactionFromMap(m map[string]any) (Transaction, error) {
	f := fields(m)

	id, err := f.text("id", "transaction_id")
	if err != nil {
		return Transaction{}, err
	}

	amountVal, err := f.value("amount")
	if err != nil {
		return Transaction{}, err
	}

	amount, err := AmountOf(amountVal)
	if err != nil {
		return Transaction{}, err
	}

	category, err := f.text("category")
	if err != nil {
		return Transaction{}, err
	}

	date, err := f.text("date")
	if err != nil {
		return Transaction{}, err
	}

	kind, err := f.text("kind", "type")
	if err != nil {
		return Transaction{}, err
	}

	return Transaction{
		ID:       id,
		Amount:   amount,
		Category: category,
		Date:     date,
		Kind:     Kind(kind),
		Note:     f.textOr("", "note"),
	}, nil
}
