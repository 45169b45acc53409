package transaction

import (
	"fmt"
	"net/url"

	"github.com/MrJamesThe3rd/tally/internal/ledger"
)

// CriteriaFromQuery reads q, field, kind, category, min, max, start and end.
// The export handler shares it.
func CriteriaFromQuery(q url.Values) (ledger.Criteria, error) {
	c := ledger.Criteria{
		Term:      q.Get("q"),
		Field:     ledger.Field(q.Get("field")),
		Kind:      ledger.Kind(q.Get("kind")),
		Category:  q.Get("category"),
		StartDate: q.Get("start"),
		EndDate:   q.Get("end"),
	}

	if c.Field == "all" {
		c.Field = ledger.FieldAny
	}

	if s := q.Get("min"); s != "" {
		d, err := ledger.ParseAmount(s)
		if err != nil {
			return ledger.Criteria{}, fmt.Errorf("invalid min: %w", err)
		}

		c.MinAmount = &d
	}

	if s := q.Get("max"); s != "" {
		d, err := ledger.ParseAmount(s)
		if err != nil {
			return ledger.Criteria{}, fmt.Errorf("invalid max: %w", err)
		}

		c.MaxAmount = &d
	}

	return c, nil
}
