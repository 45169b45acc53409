package store_test

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tally/internal/encoding"
	"github.com/MrJamesThe3rd/tally/internal/ledger"
	"github.com/MrJamesThe3rd/tally/internal/ledger/store"
)

func newStore(t *testing.T, opts ...store.Option) (*store.Store, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "accounting_data.json")
	opts = append([]store.Option{store.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))}, opts...)

	return store.New(path, opts...), path
}

func writeData(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func readDoc(t *testing.T, path string) map[string][]map[string]any {
	t.Helper()

	b, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc map[string][]map[string]any
	require.NoError(t, json.Unmarshal(b, &doc))

	return doc
}

func budgetAmount(t *testing.T, s *store.Store) decimal.Decimal {
	t.Helper()

	d, ok := s.ActiveBudget().Amount.Decimal()
	require.True(t, ok)

	return d
}

func TestNew_Defaults(t *testing.T) {
	s, path := newStore(t)

	assert.Empty(t, s.Transactions())
	assert.Equal(t, []ledger.User{ledger.DefaultAdmin()}, s.Users())
	assert.Equal(t, ledger.Categories, s.Categories())
	assert.Equal(t, path, s.Path())

	b := s.ActiveBudget()
	assert.Equal(t, ledger.DefaultBudgetID, b.ID)
	assert.Equal(t, ledger.DefaultBudgetPeriod, b.Period)
	assert.True(t, budgetAmount(t, s).Equal(decimal.NewFromInt(5000)))

	_, err := os.Stat(path)
	assert.ErrorIs(t, err, os.ErrNotExist, "constructor must not touch the file")
}

func TestNew_Options(t *testing.T) {
	admin := ledger.User{Username: "root", Password: "secret", Role: ledger.RoleAdministrator}
	s, _ := newStore(t, store.WithDefaultBudget(ledger.AmountFromInt(1200)), store.WithAdmin(admin))

	assert.Equal(t, []ledger.User{admin}, s.Users())
	assert.True(t, budgetAmount(t, s).Equal(decimal.NewFromInt(1200)))
}

func TestLoad(t *testing.T) {
	type testCase struct {
		name        string
		content     *string
		wantOutcome store.LoadOutcome
		wantTxs     int
		wantBudget  decimal.Decimal
	}

	tests := []testCase{
		{
			name:        "MissingFileIsCreated",
			wantOutcome: store.LoadCreated,
			wantBudget:  decimal.NewFromInt(5000),
		},
		{
			name:        "InvalidJSON",
			content:     new("{not json"),
			wantOutcome: store.LoadFallback,
			wantBudget:  decimal.NewFromInt(5000),
		},
		{
			name:        "MissingBudgetsKey",
			content:     new(`{"transactions": []}`),
			wantOutcome: store.LoadFallback,
			wantBudget:  decimal.NewFromInt(5000),
		},
		{
			name:        "MissingTransactionsKey",
			content:     new(`{"budgets": []}`),
			wantOutcome: store.LoadFallback,
			wantBudget:  decimal.NewFromInt(5000),
		},
		{
			name:        "TrailingData",
			content:     new(`{"transactions": [], "budgets": []} {}`),
			wantOutcome: store.LoadFallback,
			wantBudget:  decimal.NewFromInt(5000),
		},
		{
			name:        "RecordMissingField",
			content:     new(`{"transactions": [{"id": "t1", "amount": 5}], "budgets": []}`),
			wantOutcome: store.LoadFallback,
			wantBudget:  decimal.NewFromInt(5000),
		},
		{
			name:        "InvalidUTF8",
			content:     new("{\"transactions\": [{\"id\": \"t1\", \"amount\": 1, \"category\": \"Food\", \"date\": \"2023-10-01\", \"kind\": \"expense\", \"note\": \"x\xff\"}], \"budgets\": []}"),
			wantOutcome: store.LoadFallback,
			wantBudget:  decimal.NewFromInt(5000),
		},
		{
			name:        "UTF8BOM",
			content:     new("\xef\xbb\xbf{\"transactions\": [], \"budgets\": [{\"id\": \"b1\", \"amount\": 700}]}"),
			wantOutcome: store.LoadOK,
			wantBudget:  decimal.NewFromInt(700),
		},
		{
			name:        "EmptyBudgetsAreSeeded",
			content:     new(`{"transactions": [], "budgets": []}`),
			wantOutcome: store.LoadOK,
			wantBudget:  decimal.NewFromInt(5000),
		},
		{
			name: "Valid",
			content: new(`{
				"transactions": [
					{"id": "t1", "amount": 12.5, "category": "Food", "date": "2023-10-01", "kind": "expense", "note": "lunch"},
					{"id": "t2", "amount": 100, "category": "Other", "date": "2023-10-02", "kind": "income"}
				],
				"budgets": [{"id": "budget_1", "amount": 3000, "period": "monthly"}]
			}`),
			wantOutcome: store.LoadOK,
			wantTxs:     2,
			wantBudget:  decimal.NewFromInt(3000),
		},
		{
			name: "LegacyKeys",
			content: new(`{
				"transactions": [
					{"transaction_id": "t1", "amount": 10, "category": "Food", "date": "2023-10-01", "type": "expense"}
				],
				"budgets": [{"budget_id": "b1", "amount": 800}]
			}`),
			wantOutcome: store.LoadOK,
			wantTxs:     1,
			wantBudget:  decimal.NewFromInt(800),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, path := newStore(t)
			if tt.content != nil {
				writeData(t, path, *tt.content)
			}

			res := s.Load()

			assert.Equal(t, tt.wantOutcome, res.Outcome)
			assert.Len(t, s.Transactions(), tt.wantTxs)
			assert.Equal(t, tt.wantTxs, res.Transactions)
			assert.Equal(t, 1, res.Budgets)
			assert.True(t, budgetAmount(t, s).Equal(tt.wantBudget), "budget %s", budgetAmount(t, s))

			if tt.wantOutcome == store.LoadFallback {
				assert.Error(t, res.Err)
			} else {
				assert.NoError(t, res.Err)
			}

			if tt.wantOutcome == store.LoadCreated {
				doc := readDoc(t, path)
				assert.Empty(t, doc["transactions"])
				assert.Len(t, doc["budgets"], 1)
			}
		})
	}
}

func TestLoad_FallbackKeepsData(t *testing.T) {
	s, path := newStore(t)
	s.Load()

	tx := ledger.NewTransaction(ledger.AmountFromInt(10), "Food", "2023-10-01", ledger.KindExpense, "")
	s.AddTransaction(tx)

	writeData(t, path, "garbage")

	res := s.Load()
	require.Equal(t, store.LoadFallback, res.Outcome)
	assert.Equal(t, []ledger.Transaction{tx}, s.Transactions())
}

func TestLoad_InvalidUTF8KeepsData(t *testing.T) {
	s, path := newStore(t)
	s.Load()

	tx := ledger.NewTransaction(ledger.AmountFromInt(10), "餐饮", "2023-10-01", ledger.KindExpense, "午饭")
	s.AddTransaction(tx)

	// Valid UTF-8 text next to a single stray byte, placed both inside and
	// past the first 4 KB of the file.
	for _, pad := range []int{0, 8192} {
		content := fmt.Sprintf(`{"transactions": [{"id": "a", "amount": 1, "category": "餐饮", "date": "2023-10-02", "kind": "expense", "note": "%s"}], "budgets": []}`,
			strings.Repeat("a", pad)+"x\xff")
		writeData(t, path, content)

		res := s.Load()
		require.Equal(t, store.LoadFallback, res.Outcome, "pad %d", pad)
		assert.ErrorIs(t, res.Err, encoding.ErrInvalidUTF8)
		assert.Equal(t, []ledger.Transaction{tx}, s.Transactions())

		b, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, content, string(b), "a failed load must not rewrite the file")
	}
}

func TestLoad_LegacyKeysAreRewritten(t *testing.T) {
	s, path := newStore(t)
	writeData(t, path, `{
		"transactions": [{"transaction_id": "t1", "amount": 10, "category": "Food", "date": "2023-10-01", "type": "expense"}],
		"budgets": [{"budget_id": "b1", "amount": 800}]
	}`)

	require.Equal(t, store.LoadOK, s.Load().Outcome)
	require.NoError(t, s.Save())

	doc := readDoc(t, path)
	assert.Equal(t, "t1", doc["transactions"][0]["id"])
	assert.Equal(t, "expense", doc["transactions"][0]["kind"])
	assert.Equal(t, "", doc["transactions"][0]["note"])
	assert.Equal(t, "b1", doc["budgets"][0]["id"])
	assert.Equal(t, "monthly", doc["budgets"][0]["period"])
}

func TestPersistence_RoundTrip(t *testing.T) {
	s, path := newStore(t)
	s.Load()

	txs := []ledger.Transaction{
		ledger.NewTransaction(ledger.NewAmount(decimal.RequireFromString("12.34")), "Food", "2023-10-01", ledger.KindExpense, "café ☕ 午饭"),
		ledger.NewTransaction(ledger.AmountFromInt(2000), "Other", "2023-10-05", ledger.KindIncome, ""),
	}
	for _, tx := range txs {
		s.AddTransaction(tx)
	}

	s.UpdateBudget(ledger.AmountFromInt(4200))

	first, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(first), "café ☕ 午饭", "non-ASCII text is written unescaped")

	reloaded := store.New(path, store.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	require.Equal(t, store.LoadOK, reloaded.Load().Outcome)

	assert.Equal(t, s.Transactions(), reloaded.Transactions())
	assert.Equal(t, s.Budgets(), reloaded.Budgets())

	require.NoError(t, reloaded.Save())

	second, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second), "load then save must not change the file")
}

func TestPersistence_NonNumericAmount(t *testing.T) {
	s, path := newStore(t)
	writeData(t, path, `{"transactions": [{"id": "t1", "amount": "abc", "category": "Food", "date": "2023-10-01", "kind": "expense"}], "budgets": [{"id": "budget_1", "amount": 5000, "period": "monthly"}]}`)

	require.Equal(t, store.LoadOK, s.Load().Outcome)

	txs := s.Transactions()
	require.Len(t, txs, 1)
	assert.False(t, txs[0].Amount.IsNumeric())
	assert.Equal(t, "abc", txs[0].Amount.String())

	require.NoError(t, s.Save())
	assert.Equal(t, "abc", readDoc(t, path)["transactions"][0]["amount"])
}

func TestDeleteTransactions(t *testing.T) {
	s, path := newStore(t)
	s.Load()

	a := ledger.NewTransaction(ledger.AmountFromInt(1), "Food", "2023-10-01", ledger.KindExpense, "a")
	b := ledger.NewTransaction(ledger.AmountFromInt(2), "Food", "2023-10-02", ledger.KindExpense, "b")
	c := ledger.NewTransaction(ledger.AmountFromInt(3), "Food", "2023-10-03", ledger.KindExpense, "c")

	for _, tx := range []ledger.Transaction{a, b, c} {
		s.AddTransaction(tx)
	}

	removed := s.DeleteTransactions(a.ID, c.ID, "txn_unknown")

	assert.Equal(t, 2, removed)
	assert.Equal(t, []ledger.Transaction{b}, s.Transactions())
	assert.Len(t, readDoc(t, path)["transactions"], 1)

	assert.Zero(t, s.DeleteTransactions("txn_unknown"))
	assert.Len(t, s.Transactions(), 1)
}

func TestGetTransaction(t *testing.T) {
	s, _ := newStore(t)

	tx := ledger.NewTransaction(ledger.AmountFromInt(7), "Transport", "2023-10-01", ledger.KindExpense, "")
	s.AddTransaction(tx)

	got, ok := s.GetTransaction(tx.ID)
	require.True(t, ok)
	assert.Equal(t, tx, got)

	_, ok = s.GetTransaction("missing")
	assert.False(t, ok)
}

func TestSave_FailureKeepsMemory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "data.json")
	s := store.New(path, store.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))

	res := s.Load()
	assert.Equal(t, store.LoadCreated, res.Outcome)
	assert.Error(t, res.Err)

	tx := ledger.NewTransaction(ledger.AmountFromInt(5), "Food", "2023-10-01", ledger.KindExpense, "")

	assert.NotPanics(t, func() { s.AddTransaction(tx) })
	assert.Equal(t, []ledger.Transaction{tx}, s.Transactions())
	assert.Error(t, s.Save())
}

func TestUpdateBudget_AcceptsAnyAmount(t *testing.T) {
	s, _ := newStore(t)

	s.UpdateBudget(ledger.AmountFromInt(-10))

	d, ok := s.ActiveBudget().Amount.Decimal()
	require.True(t, ok)
	assert.True(t, d.Equal(decimal.NewFromInt(-10)))
}

func TestInitializeDefaultData(t *testing.T) {
	s, _ := newStore(t)
	s.UpdateBudget(ledger.AmountFromInt(10))

	s.InitializeDefaultData()

	assert.Equal(t, []ledger.User{ledger.DefaultAdmin()}, s.Users())
	assert.True(t, budgetAmount(t, s).Equal(decimal.NewFromInt(10)), "an existing budget is kept")
}

func FuzzLoad(f *testing.F) {
	f.Add([]byte(`{"transactions": [], "budgets": []}`))
	f.Add([]byte(`{"transactions": [{"id": "t", "amount": 1, "category": "c", "date": "d", "kind": "expense"}], "budgets": []}`))
	f.Add([]byte(`{"transactions": null, "budgets": [{"id": "b", "amount": "x"}]}`))
	f.Add([]byte("\xff\xfe{\x00}\x00"))
	f.Add([]byte(""))

	f.Fuzz(func(t *testing.T, data []byte) {
		s, path := newStore(t)
		writeData(t, path, string(data))

		res := s.Load()

		assert.Contains(t, []store.LoadOutcome{store.LoadOK, store.LoadFallback}, res.Outcome)
		assert.NotEmpty(t, s.Budgets(), "a budget always exists after load")
		assert.Equal(t, []ledger.User{ledger.DefaultAdmin()}, s.Users())
	})
}
