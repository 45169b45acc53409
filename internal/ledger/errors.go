package ledger

import "errors"

var (
	ErrNotFound           = errors.New("transaction not found")
	ErrMissingField       = errors.New("missing field")
	ErrInvalidCredentials = errors.New("invalid username or password")

	// Input rules enforced at the service boundary. The store accepts anything.
	ErrInvalidAmount      = errors.New("amount must be greater than zero")
	ErrMissingCategory    = errors.New("category is required")
	ErrInvalidKind        = errors.New("kind must be expense or income")
	ErrInvalidDate        = errors.New("invalid date")
	ErrNegativeBudget     = errors.New("budget cannot be negative")
	ErrInvalidGranularity = errors.New("granularity must be daily or monthly")
)
