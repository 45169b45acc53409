package importer

import (
	"errors"
	"io"

	"github.com/MrJamesThe3rd/tally/internal/ledger"
)

var ErrNoHeader = errors.New("no recognizable header: expected at least date and amount columns")

type Importer interface {
	Parse(r io.Reader) ([]ledger.Transaction, error)
}
