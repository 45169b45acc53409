package ledger

import "github.com/shopspring/decimal"

const (
	DefaultBudgetID     = "budget_1"
	DefaultBudgetPeriod = "monthly"
)

// DefaultBudgetAmount is used when no budget has been configured or persisted.
var DefaultBudgetAmount = decimal.NewFromInt(5000)

// Budget is the monthly spending ceiling.
type Budget struct {
	ID     string
	Amount Amount
	Period string
}

func NewBudget(amount Amount) Budget {
	return Budget{
		ID:     DefaultBudgetID,
		Amount: amount,
		Period: DefaultBudgetPeriod,
	}
}

func (b Budget) ToMap() map[string]any {
	return map[string]any{
		"id":     b.ID,
		"amount": b.Amount,
		"period": b.Period,
	}
}

// BudgetFromMap is the inverse of ToMap. A missing period means monthly.
func BudgetFromMap(m map[string]any) (Budget, error) {
	f := fields(m)

	id, err := f.text("id", "budget_id")
	if err != nil {
		return Budget{}, err
	}

	amountVal, err := f.value("amount")
	if err != nil {
		return Budget{}, err
	}

	amount, err := AmountOf(amountVal)
	if err != nil {
		return Budget{}, err
	}

	return Budget{
		ID:     id,
		Amount: amount,
		Period: f.textOr(DefaultBudgetPeriod, "period"),
	}, nil
}
