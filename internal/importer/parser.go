package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/encoding"
	"github.com/MrJamesThe3rd/tally/internal/ledger"
)

const defaultCategory = "Other"

// Parser reads CSV files into transactions. It finds the header row by
// matching column names against the known profiles, so preamble lines before
// the header are ignored, and it accepts both ';' and ',' as delimiter.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]ledger.Transaction, error) {
	data, err := encoding.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	for _, comma := range []rune{';', ','} {
		rows, err := readRows(data, comma)
		if err != nil {
			continue
		}

		l, headerIdx, ok := detectLayout(rows)
		if !ok {
			continue
		}

		return parseRows(l, rows[headerIdx+1:]), nil
	}

	return nil, ErrNoHeader
}

func readRows(data []byte, comma rune) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	return rows, nil
}

// detectLayout scans rows for a header that matches a known profile.
func detectLayout(rows [][]string) (layout, int, bool) {
	for rowIdx, row := range rows {
		cols := newColIndex(row)

		for i := range profiles {
			if l, ok := profiles[i].resolve(cols); ok {
				return l, rowIdx, true
			}
		}
	}

	return layout{}, 0, false
}

// parseRows skips rows it cannot read (footers, blank lines, bad dates or
// amounts) instead of failing the whole file.
func parseRows(l layout, rows [][]string) []ledger.Transaction {
	txs := make([]ledger.Transaction, 0, len(rows))

	for _, row := range rows {
		date, ok := parseDate(cellValue(row, l.date))
		if !ok {
			continue
		}

		amount, kind, ok := parseAmount(l, row)
		if !ok {
			continue
		}

		category := cellValue(row, l.category)
		if category == "" {
			category = defaultCategory
		}

		txs = append(txs, ledger.NewTransaction(ledger.NewAmount(amount), category, date, kind, cellValue(row, l.note)))
	}

	return txs
}

// parseDate accepts only YYYY-MM-DD and returns it unchanged.
func parseDate(s string) (string, bool) {
	if _, err := time.Parse(time.DateOnly, s); err != nil {
		return "", false
	}

	return s, true
}

func parseAmount(l layout, row []string) (decimal.Decimal, ledger.Kind, bool) {
	switch l.profile.amountMode {
	case amountSingle:
		return parseSingleAmount(row, l.amount, l.kind)
	case amountSplit:
		return parseSplitAmount(row, l.debit, l.credit)
	}

	return decimal.Zero, "", false
}

// parseSingleAmount uses the kind column when it holds a known kind and infers
// the kind from the sign otherwise. Stored amounts are always positive.
func parseSingleAmount(row []string, amountIdx, kindIdx int) (decimal.Decimal, ledger.Kind, bool) {
	d, ok := parseCell(row, amountIdx)
	if !ok {
		return decimal.Zero, "", false
	}

	kind := ledger.Kind(strings.ToLower(cellValue(row, kindIdx)))

	switch {
	case kind.Valid():
	case kind != "":
		return decimal.Zero, "", false
	case d.IsNegative():
		kind = ledger.KindExpense
	default:
		kind = ledger.KindIncome
	}

	return d.Abs(), kind, true
}

func parseSplitAmount(row []string, debitIdx, creditIdx int) (decimal.Decimal, ledger.Kind, bool) {
	if d, ok := parseCell(row, debitIdx); ok {
		return d.Abs(), ledger.KindExpense, true
	}

	if d, ok := parseCell(row, creditIdx); ok {
		return d.Abs(), ledger.KindIncome, true
	}

	return decimal.Zero, "", false
}

// parseCell returns false for empty, unparsable and zero values.
func parseCell(row []string, idx int) (decimal.Decimal, bool) {
	s := cellValue(row, idx)
	if s == "" {
		return decimal.Zero, false
	}

	d, err := ledger.ParseAmount(s)
	if err != nil || d.IsZero() {
		return decimal.Zero, false
	}

	return d, true
}

// cellValue safely gets a trimmed cell value from a row.
func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
