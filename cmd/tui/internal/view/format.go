package view

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/ledger"
)

// FormatAmount renders numeric amounts with two decimals and anything else
// as stored.
func FormatAmount(a ledger.Amount) string {
	if d, ok := a.Decimal(); ok {
		return d.StringFixed(2)
	}

	return a.String()
}

func FormatDecimal(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// FormatKind renders the kind with its sign colour.
func FormatKind(k ledger.Kind) string {
	switch k {
	case ledger.KindIncome:
		return okText(string(k))
	case ledger.KindExpense:
		return errorText(string(k))
	}

	return string(k)
}

// bar draws a share bar of width cells filled to ratio.
func bar(ratio float64, width int) string {
	if ratio < 0 {
		ratio = 0
	}

	if ratio > 1 {
		ratio = 1
	}

	filled := int(ratio*float64(width) + 0.5)

	return activeStyle(strings.Repeat("█", filled)) + strings.Repeat("░", width-filled)
}
