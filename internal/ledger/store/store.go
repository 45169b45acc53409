// Package store keeps the ledger in memory and mirrors it to a single JSON
// file. Every mutation rewrites the whole file.
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/MrJamesThe3rd/tally/internal/encoding"
	"github.com/MrJamesThe3rd/tally/internal/ledger"
)

type Store struct {
	mu     sync.Mutex
	path   string
	logger *slog.Logger

	defaultBudget ledger.Amount
	admin         ledger.User

	users        []ledger.User
	transactions []ledger.Transaction
	budgets      []ledger.Budget
	categories   []string
}

type Option func(*Store)

func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		s.logger = l
	}
}

// WithDefaultBudget sets the amount seeded when no budget exists.
func WithDefaultBudget(a ledger.Amount) Option {
	return func(s *Store) {
		s.defaultBudget = a
	}
}

// WithAdmin replaces the seeded administrator account.
func WithAdmin(u ledger.User) Option {
	return func(s *Store) {
		s.admin = u
	}
}

// New returns a store backed by the file at path, seeded with default data.
// Nothing is read until Load is called.
func New(path string, opts ...Option) *Store {
	s := &Store{
		path:          path,
		logger:        slog.Default(),
		defaultBudget: ledger.NewAmount(ledger.DefaultBudgetAmount),
		admin:         ledger.DefaultAdmin(),
		transactions:  []ledger.Transaction{},
		categories:    slices.Clone(ledger.Categories),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.InitializeDefaultData()

	return s
}

// InitializeDefaultData resets the users to the seeded administrator and seeds
// the default budget if there is none. It does not touch the file.
func (s *Store) InitializeDefaultData() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users = []ledger.User{s.admin}
	s.ensureBudgetLocked()
}

func (s *Store) ensureBudgetLocked() {
	if len(s.budgets) == 0 {
		s.budgets = []ledger.Budget{ledger.NewBudget(s.defaultBudget)}
	}
}

type LoadOutcome int

const (
	// LoadOK means the file was read and replaced the in-memory data.
	LoadOK LoadOutcome = iota
	// LoadCreated means the file did not exist and was written from the
	// current in-memory data.
	LoadCreated
	// LoadFallback means the file could not be used; the in-memory data was
	// kept as it was.
	LoadFallback
)

func (o LoadOutcome) String() string {
	switch o {
	case LoadOK:
		return "ok"
	case LoadCreated:
		return "created"
	case LoadFallback:
		return "fallback"
	}

	return "unknown"
}

// LoadResult reports what Load did. Err is set for LoadFallback, and for
// LoadCreated when the new file could not be written.
type LoadResult struct {
	Outcome      LoadOutcome
	Transactions int
	Budgets      int
	Err          error
}

// Load replaces the in-memory transactions and budgets with the file's
// content. It never fails: problems are reported in the result and the store
// keeps the data it already had.
func (s *Store) Load() LoadResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := s.loadLocked()
	s.ensureBudgetLocked()

	res.Transactions = len(s.transactions)
	res.Budgets = len(s.budgets)

	switch res.Outcome {
	case LoadFallback:
		s.logger.Error("failed to load data file, keeping current data", "path", s.path, "error", res.Err)
	default:
		s.logger.Info("data loaded", "path", s.path, "outcome", res.Outcome,
			"transactions", res.Transactions, "budgets", res.Budgets)
	}

	return res
}

func (s *Store) loadLocked() LoadResult {
	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.ensureBudgetLocked()
		return LoadResult{Outcome: LoadCreated, Err: s.saveLocked()}
	}

	if err != nil {
		return LoadResult{Outcome: LoadFallback, Err: fmt.Errorf("open data file: %w", err)}
	}
	defer f.Close()

	txs, budgets, err := decode(f)
	if err != nil {
		return LoadResult{Outcome: LoadFallback, Err: err}
	}

	s.transactions = txs
	s.budgets = budgets

	return LoadResult{Outcome: LoadOK}
}

// document is the on-disk layout. Both keys must be present.
type document struct {
	Transactions []map[string]any `json:"transactions"`
	Budgets      []map[string]any `json:"budgets"`
}

func decode(r io.Reader) ([]ledger.Transaction, []ledger.Budget, error) {
	b, err := encoding.ReadUTF8(r)
	if err != nil {
		return nil, nil, fmt.Errorf("read data file: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	var raw map[string]json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return nil, nil, fmt.Errorf("parse data file: %w", err)
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, nil, errors.New("parse data file: trailing data after document")
	}

	for _, key := range []string{"transactions", "budgets"} {
		if _, ok := raw[key]; !ok {
			return nil, nil, fmt.Errorf("parse data file: %w: %s", ledger.ErrMissingField, key)
		}
	}

	var doc document
	if err := unmarshalNumbers(raw["transactions"], &doc.Transactions); err != nil {
		return nil, nil, fmt.Errorf("parse transactions: %w", err)
	}

	if err := unmarshalNumbers(raw["budgets"], &doc.Budgets); err != nil {
		return nil, nil, fmt.Errorf("parse budgets: %w", err)
	}

	txs := make([]ledger.Transaction, 0, len(doc.Transactions))

	for i, m := range doc.Transactions {
		tx, err := ledger.TransactionFromMap(m)
		if err != nil {
			return nil, nil, fmt.Errorf("transaction %d: %w", i, err)
		}

		txs = append(txs, tx)
	}

	budgets := make([]ledger.Budget, 0, len(doc.Budgets))

	for i, m := range doc.Budgets {
		b, err := ledger.BudgetFromMap(m)
		if err != nil {
			return nil, nil, fmt.Errorf("budget %d: %w", i, err)
		}

		budgets = append(budgets, b)
	}

	return txs, budgets, nil
}

func unmarshalNumbers(data json.RawMessage, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	return dec.Decode(v)
}

// Save writes the transactions and budgets to the data file. A failure is
// logged and returned for information only; the in-memory data stays
// authoritative either way.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.saveLocked()
}

func (s *Store) saveLocked() error {
	doc := document{
		Transactions: make([]map[string]any, len(s.transactions)),
		Budgets:      make([]map[string]any, len(s.budgets)),
	}

	for i, tx := range s.transactions {
		doc.Transactions[i] = tx.ToMap()
	}

	for i, b := range s.budgets {
		doc.Budgets[i] = b.ToMap()
	}

	if err := writeFile(s.path, doc); err != nil {
		s.logger.Error("failed to save data file", "path", s.path, "error", err)
		return err
	}

	return nil
}

func writeFile(path string, doc document) error {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")

	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode data: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("write data: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace data file: %w", err)
	}

	return nil
}

// AddTransaction appends tx and persists.
func (s *Store) AddTransaction(tx ledger.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.transactions = append(s.transactions, tx)
	_ = s.saveLocked()
}

// DeleteTransactions removes every transaction whose id is given, persists,
// and returns how many were removed. Unknown ids are ignored.
func (s *Store) DeleteTransactions(ids ...string) int {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	before := len(s.transactions)
	s.transactions = slices.DeleteFunc(s.transactions, func(tx ledger.Transaction) bool {
		_, ok := set[tx.ID]
		return ok
	})

	_ = s.saveLocked()

	return before - len(s.transactions)
}

func (s *Store) GetTransaction(id string) (ledger.Transaction, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, tx := range s.transactions {
		if tx.ID == id {
			return tx, true
		}
	}

	return ledger.Transaction{}, false
}

// UpdateBudget overwrites the active budget's amount and persists. Any amount
// is accepted.
func (s *Store) UpdateBudget(amount ledger.Amount) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ensureBudgetLocked()
	s.budgets[0].Amount = amount
	_ = s.saveLocked()
}

func (s *Store) Transactions() []ledger.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.transactions)
}

func (s *Store) Budgets() []ledger.Budget {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.budgets)
}

// ActiveBudget returns the first budget, the only one the application uses.
func (s *Store) ActiveBudget() ledger.Budget {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ensureBudgetLocked()

	return s.budgets[0]
}

func (s *Store) Categories() []string {
	return slices.Clone(s.categories)
}

func (s *Store) Users() []ledger.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.users)
}

func (s *Store) Path() string {
	return s.path
}
