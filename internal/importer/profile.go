package importer

import "strings"

// amountMode determines how amounts are extracted from a row.
type amountMode int

const (
	// amountSingle means one amount column, signed when no kind column exists.
	amountSingle amountMode = iota
	// amountSplit means separate debit and credit columns, as bank statements use.
	amountSplit
)

// profile describes one accepted column layout. Column names are compared
// lower-cased; each entry lists the accepted spellings.
type profile struct {
	name       string
	amountMode amountMode
	date       []string
	amount     []string
	debit      []string
	credit     []string
	kind       []string
	category   []string
	note       []string
}

// profiles are tried in order; the first whose required columns are all
// present wins. The split layout comes first so that a statement carrying both
// a balance-like "amount" column and debit/credit columns is read correctly.
var profiles = []profile{
	{
		name:       "statement",
		amountMode: amountSplit,
		date:       []string{"date"},
		debit:      []string{"debit"},
		credit:     []string{"credit"},
		category:   []string{"category"},
		note:       []string{"note", "description"},
	},
	{
		name:       "ledger",
		amountMode: amountSingle,
		date:       []string{"date"},
		amount:     []string{"amount"},
		kind:       []string{"kind", "type"},
		category:   []string{"category"},
		note:       []string{"note", "description"},
	},
}

// colIndex maps lower-cased column names to their index in the header row.
type colIndex map[string]int

func newColIndex(row []string) colIndex {
	cols := make(colIndex, len(row))

	for i, cell := range row {
		name := strings.ToLower(strings.TrimSpace(cell))
		if _, seen := cols[name]; name != "" && !seen {
			cols[name] = i
		}
	}

	return cols
}

// find returns the index of the first present spelling, or -1.
func (c colIndex) find(names []string) int {
	for _, n := range names {
		if i, ok := c[n]; ok {
			return i
		}
	}

	return -1
}

// layout is a profile resolved against a concrete header row.
type layout struct {
	profile  *profile
	date     int
	amount   int
	debit    int
	credit   int
	kind     int
	category int
	note     int
}

func (p *profile) resolve(cols colIndex) (layout, bool) {
	l := layout{
		profile:  p,
		date:     cols.find(p.date),
		amount:   cols.find(p.amount),
		debit:    cols.find(p.debit),
		credit:   cols.find(p.credit),
		kind:     cols.find(p.kind),
		category: cols.find(p.category),
		note:     cols.find(p.note),
	}

	if l.date < 0 {
		return layout{}, false
	}

	switch p.amountMode {
	case amountSingle:
		return l, l.amount >= 0
	case amountSplit:
		return l, l.debit >= 0 && l.credit >= 0
	}

	return layout{}, false
}
