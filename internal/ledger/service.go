package ledger

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/dateutil"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=ledger
type Repository interface {
	Transactions() []Transaction
	AddTransaction(tx Transaction)
	DeleteTransactions(ids ...string) int
	GetTransaction(id string) (Transaction, bool)

	ActiveBudget() Budget
	UpdateBudget(amount Amount)

	Categories() []string
	Users() []User
}

type Service struct {
	repo Repository
	now  func() time.Time
}

type ServiceOption func(*Service)

// WithClock replaces time.Now for date validation and the monthly summary.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(repo Repository, opts ...ServiceOption) *Service {
	s := &Service{repo: repo, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Authenticate checks the credentials against the seeded users.
func (s *Service) Authenticate(username, password string) (User, error) {
	for _, u := range s.repo.Users() {
		if u.Username == username && u.Password == password {
			return u, nil
		}
	}

	return User{}, ErrInvalidCredentials
}

// CreateParams is what a user types into the add form. The date arrives as
// three separate fields.
type CreateParams struct {
	Amount   decimal.Decimal
	Kind     Kind
	Category string
	Year     string
	Month    string
	Day      string
	Note     string
}

func (s *Service) Create(params CreateParams) (Transaction, error) {
	if ok, msg := dateutil.ValidateAt(s.now(), params.Year, params.Month, params.Day); !ok {
		return Transaction{}, fmt.Errorf("%w: %s", ErrInvalidDate, msg)
	}

	if strings.TrimSpace(params.Category) == "" {
		return Transaction{}, ErrMissingCategory
	}

	if !params.Amount.IsPositive() {
		return Transaction{}, ErrInvalidAmount
	}

	if !params.Kind.Valid() {
		return Transaction{}, ErrInvalidKind
	}

	// ValidateAt has already proven these parse.
	y, _ := strconv.Atoi(strings.TrimSpace(params.Year))
	m, _ := strconv.Atoi(strings.TrimSpace(params.Month))
	d, _ := strconv.Atoi(strings.TrimSpace(params.Day))

	tx := NewTransaction(NewAmount(params.Amount), params.Category, dateutil.FormatDate(y, m, d), params.Kind, params.Note)
	s.repo.AddTransaction(tx)

	return tx, nil
}

// Import adds transactions that were built elsewhere, such as by the CSV
// importer, and returns how many were added.
func (s *Service) Import(txs []Transaction) int {
	for _, tx := range txs {
		s.repo.AddTransaction(tx)
	}

	return len(txs)
}

func (s *Service) List(c Criteria) []Transaction {
	return Filter(s.repo.Transactions(), c)
}

// Recent is List with the newest entries first.
func (s *Service) Recent(c Criteria) []Transaction {
	txs := s.List(c)
	slices.Reverse(txs)

	return txs
}

func (s *Service) Get(id string) (Transaction, error) {
	tx, ok := s.repo.GetTransaction(id)
	if !ok {
		return Transaction{}, ErrNotFound
	}

	return tx, nil
}

func (s *Service) Delete(ids ...string) int {
	if len(ids) == 0 {
		return 0
	}

	return s.repo.DeleteTransactions(ids...)
}

func (s *Service) Statistics(g Granularity) (Statistics, error) {
	if !g.Valid() {
		return Statistics{}, fmt.Errorf("%w: %q", ErrInvalidGranularity, g)
	}

	return Aggregate(s.repo.Transactions(), g), nil
}

func (s *Service) MonthSummary() MonthSummary {
	return Summarize(s.repo.Transactions(), s.repo.ActiveBudget(), s.now())
}

func (s *Service) Budget() Budget {
	return s.repo.ActiveBudget()
}

func (s *Service) SetBudget(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return ErrNegativeBudget
	}

	s.repo.UpdateBudget(NewAmount(amount))

	return nil
}

func (s *Service) Categories() []string {
	return s.repo.Categories()
}
