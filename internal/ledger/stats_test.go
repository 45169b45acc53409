package ledger_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tally/internal/ledger"
)

func assertTotals(t *testing.T, want map[string]int64, got ledger.Totals) {
	t.Helper()

	require.Len(t, got, len(want))

	for k, v := range want {
		assert.True(t, got[k].Equal(decimal.NewFromInt(v)), "%s: want %d, got %s", k, v, got[k])
	}
}

func TestAggregate(t *testing.T) {
	type testCase struct {
		name         string
		granularity  ledger.Granularity
		wantExpense  map[string]int64
		wantIncome   map[string]int64
		wantCategory map[string]int64
		wantPeriods  []string
	}

	category := map[string]int64{"Food": 150, "Transport": 200}

	tests := []testCase{
		{
			name:         "Daily",
			granularity:  ledger.Daily,
			wantExpense:  map[string]int64{"2023-10-01": 300, "2023-10-02": 50},
			wantIncome:   map[string]int64{"2023-10-01": 500},
			wantCategory: category,
			wantPeriods:  []string{"2023-10-01", "2023-10-02"},
		},
		{
			name:         "Monthly",
			granularity:  ledger.Monthly,
			wantExpense:  map[string]int64{"2023-10": 350},
			wantIncome:   map[string]int64{"2023-10": 500},
			wantCategory: category,
			wantPeriods:  []string{"2023-10"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// The fifth fixture entry has a non-numeric amount and is skipped.
			stats := ledger.Aggregate(fixture(), tt.granularity)

			assert.Equal(t, tt.granularity, stats.Granularity)
			assertTotals(t, tt.wantExpense, stats.Expense)
			assertTotals(t, tt.wantIncome, stats.Income)
			assertTotals(t, tt.wantCategory, stats.ByCategory)
			assert.Equal(t, tt.wantPeriods, stats.Periods())
		})
	}
}

func TestAggregate_Edges(t *testing.T) {
	txs := []ledger.Transaction{
		{Amount: ledger.AmountFromInt(10), Category: "Food", Date: "2023/10/01", Kind: ledger.KindExpense},
		{Amount: ledger.AmountFromInt(99), Category: "Food", Date: "2023-10-01", Kind: ledger.Kind("refund")},
	}

	stats := ledger.Aggregate(txs, ledger.Monthly)

	assertTotals(t, map[string]int64{"2023/10/01": 10}, stats.Expense)
	assert.Empty(t, stats.Income)

	empty := ledger.Aggregate(nil, ledger.Daily)
	assert.Empty(t, empty.Periods())
}

func TestAggregate_MonthlyKeys(t *testing.T) {
	tests := []struct {
		date string
		want string
	}{
		{date: "2023-10-01", want: "2023-10"},
		{date: "2023-10-1", want: "2023-10"},
		{date: "2023-1-5", want: "2023-01"},
		{date: "2024-2-29", want: "2024-02"},
		{date: "2023-2-29", want: "2023-2-29"},
		{date: "2023-13-01", want: "2023-13-01"},
		{date: "23-10-01", want: "23-10-01"},
		{date: "2023-+1-01", want: "2023-+1-01"},
		{date: "2023-10-01T00:00", want: "2023-10-01T00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			txs := []ledger.Transaction{
				{Amount: ledger.AmountFromInt(7), Category: "Food", Date: tt.date, Kind: ledger.KindExpense},
			}

			assertTotals(t, map[string]int64{tt.want: 7}, ledger.Aggregate(txs, ledger.Monthly).Expense)
			assertTotals(t, map[string]int64{tt.date: 7}, ledger.Aggregate(txs, ledger.Daily).Expense)
		})
	}
}

func TestSummarize(t *testing.T) {
	txs := []ledger.Transaction{
		{Amount: ledger.AmountFromInt(1000), Category: "Food", Date: "2023-10-05", Kind: ledger.KindExpense},
		{Amount: ledger.AmountFromInt(2000), Category: "Other", Date: "2023-10-06", Kind: ledger.KindIncome},
		{Amount: ledger.AmountFromInt(700), Category: "Food", Date: "2023-09-30", Kind: ledger.KindExpense},
	}

	now := time.Date(2023, 10, 20, 9, 0, 0, 0, time.Local)

	type testCase struct {
		name          string
		budget        int64
		wantBalance   int64
		wantOverspent bool
	}

	tests := []testCase{
		{name: "UnderBudget", budget: 5000, wantBalance: 4000},
		{name: "Overspent", budget: 500, wantBalance: -500, wantOverspent: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := ledger.Summarize(txs, ledger.NewBudget(ledger.AmountFromInt(tt.budget)), now)

			assert.Equal(t, "2023-10", s.Month)
			assert.True(t, s.Expense.Equal(decimal.NewFromInt(1000)))
			assert.True(t, s.Income.Equal(decimal.NewFromInt(2000)))
			assert.True(t, s.Balance.Equal(decimal.NewFromInt(tt.wantBalance)), "balance %s", s.Balance)
			assert.Equal(t, tt.wantOverspent, s.Overspent())
		})
	}
}

func TestGranularity_Valid(t *testing.T) {
	assert.True(t, ledger.Daily.Valid())
	assert.True(t, ledger.Monthly.Valid())
	assert.False(t, ledger.Granularity("weekly").Valid())
}
