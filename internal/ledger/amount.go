package ledger

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is a monetary value as it appears in the data file.
//
// Numbers are kept in their decimal text form. Anything else a file may hold
// (a quoted string, a bool, null) is carried verbatim so that it survives a
// load/save cycle unchanged; such amounts never take part in arithmetic.
type Amount struct {
	raw json.RawMessage
}

// NewAmount returns a numeric Amount.
func NewAmount(d decimal.Decimal) Amount {
	return Amount{raw: json.RawMessage(d.String())}
}

// AmountFromInt is a shorthand for NewAmount(decimal.NewFromInt(v)).
func AmountFromInt(v int64) Amount {
	return NewAmount(decimal.NewFromInt(v))
}

// ParseAmount parses user input such as "12.50" or "1.234,56".
func ParseAmount(s string) (decimal.Decimal, error) {
	clean := strings.TrimSpace(s)
	if strings.Contains(clean, ",") {
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.ReplaceAll(clean, ",", ".")
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse amount %q: %w", s, err)
	}

	return d, nil
}

// AmountOf converts an arbitrary decoded value into an Amount without
// validating it.
func AmountOf(v any) (Amount, error) {
	switch val := v.(type) {
	case Amount:
		return val, nil
	case decimal.Decimal:
		return NewAmount(val), nil
	case json.Number:
		return Amount{raw: json.RawMessage(val.String())}, nil
	case int:
		return AmountFromInt(int64(val)), nil
	case int64:
		return AmountFromInt(val), nil
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return rawAmount(fmt.Sprint(val))
		}

		return NewAmount(decimal.NewFromFloat(val)), nil
	}

	return rawAmount(v)
}

func rawAmount(v any) (Amount, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return Amount{}, fmt.Errorf("encode amount: %w", err)
	}

	return Amount{raw: b}, nil
}

// Decimal returns the numeric value. ok is false for non-numeric amounts.
// The zero Amount is numeric zero.
func (a Amount) Decimal() (d decimal.Decimal, ok bool) {
	if len(a.raw) == 0 {
		return decimal.Zero, true
	}

	if !isJSONNumber(a.raw) {
		return decimal.Zero, false
	}

	d, err := decimal.NewFromString(string(a.raw))
	if err != nil {
		return decimal.Zero, false
	}

	return d, true
}

// IsNumeric reports whether the amount holds a number.
func (a Amount) IsNumeric() bool {
	_, ok := a.Decimal()
	return ok
}

// String renders the amount the way it is matched by free-text search.
func (a Amount) String() string {
	if len(a.raw) == 0 {
		return "0"
	}

	var s string
	if a.raw[0] == '"' && json.Unmarshal(a.raw, &s) == nil {
		return s
	}

	return string(a.raw)
}

func (a Amount) MarshalJSON() ([]byte, error) {
	if len(a.raw) == 0 {
		return []byte("0"), nil
	}

	return a.raw, nil
}

func (a *Amount) UnmarshalJSON(b []byte) error {
	trimmed := bytes.TrimSpace(b)
	if !json.Valid(trimmed) {
		return fmt.Errorf("invalid amount %q", b)
	}

	a.raw = append(json.RawMessage(nil), trimmed...)

	return nil
}

func isJSONNumber(b []byte) bool {
	return b[0] == '-' || (b[0] >= '0' && b[0] <= '9')
}
