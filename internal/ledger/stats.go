package ledger

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Granularity selects how transactions are grouped into periods.
type Granularity string

const (
	Daily   Granularity = "daily"
	Monthly Granularity = "monthly"
)

func (g Granularity) Valid() bool {
	return g == Daily || g == Monthly
}

// Totals maps a period key or a category to a sum.
type Totals map[string]decimal.Decimal

func (t Totals) add(key string, d decimal.Decimal) {
	t[key] = t[key].Add(d)
}

// Keys returns the keys in ascending order.
func (t Totals) Keys() []string {
	return slices.Sorted(maps.Keys(t))
}

// Statistics holds per-period expense and income sums and all-time expense
// sums per category.
type Statistics struct {
	Granularity Granularity
	Expense     Totals
	Income      Totals
	ByCategory  Totals
}

// Periods returns every period key present in either map, ascending.
func (s Statistics) Periods() []string {
	keys := maps.Clone(s.Expense)
	if keys == nil {
		keys = Totals{}
	}

	for k := range s.Income {
		keys[k] = decimal.Zero
	}

	return keys.Keys()
}

// Aggregate groups the transactions by period. ByCategory ignores the period
// and sums every expense.
func Aggregate(txs []Transaction, g Granularity) Statistics {
	stats := Statistics{
		Granularity: g,
		Expense:     Totals{},
		Income:      Totals{},
		ByCategory:  Totals{},
	}

	for _, tx := range txs {
		d, ok := tx.Amount.Decimal()
		if !ok {
			continue
		}

		key := periodKey(tx.Date, g)

		switch tx.Kind {
		case KindExpense:
			stats.Expense.add(key, d)
			stats.ByCategory.add(tx.Category, d)
		case KindIncome:
			stats.Income.add(key, d)
		}
	}

	return stats
}

func periodKey(date string, g Granularity) string {
	if g != Monthly {
		return date
	}

	if key, ok := monthKey(date); ok {
		return key
	}

	return date
}

// monthKey returns YYYY-MM for a calendar date written as YYYY-M-D, with or
// without zero padding on month and day.
func monthKey(date string) (string, bool) {
	parts := strings.Split(date, "-")
	if len(parts) != 3 || len(parts[0]) != 4 || len(parts[1]) > 2 || len(parts[2]) > 2 {
		return "", false
	}

	var n [3]int

	for i, p := range parts {
		if p == "" || strings.ContainsFunc(p, func(r rune) bool { return r < '0' || r > '9' }) {
			return "", false
		}

		n[i], _ = strconv.Atoi(p)
	}

	year, month, day := n[0], n[1], n[2]

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Month() != time.Month(month) || t.Day() != day {
		return "", false
	}

	return fmt.Sprintf("%04d-%02d", year, month), true
}

// MonthSummary compares a month's spending against the budget.
type MonthSummary struct {
	Month   string
	Budget  decimal.Decimal
	Expense decimal.Decimal
	Income  decimal.Decimal
	Balance decimal.Decimal
}

func (s MonthSummary) Overspent() bool {
	return s.Balance.IsNegative()
}

// MonthTotals sums expenses and incomes whose date starts with month (YYYY-MM).
func MonthTotals(txs []Transaction, month string) (expense, income decimal.Decimal) {
	for _, tx := range txs {
		if len(tx.Date) < len(month) || tx.Date[:len(month)] != month {
			continue
		}

		d, ok := tx.Amount.Decimal()
		if !ok {
			continue
		}

		switch tx.Kind {
		case KindExpense:
			expense = expense.Add(d)
		case KindIncome:
			income = income.Add(d)
		}
	}

	return expense, income
}

// Summarize reports the calendar month containing now. A non-numeric budget
// amount counts as zero.
func Summarize(txs []Transaction, budget Budget, now time.Time) MonthSummary {
	month := now.Format("2006-01")
	expense, income := MonthTotals(txs, month)

	amount, _ := budget.Amount.Decimal()

	return MonthSummary{
		Month:   month,
		Budget:  amount,
		Expense: expense,
		Income:  income,
		Balance: amount.Sub(expense),
	}
}
