package ledger

import (
	"encoding/json"
	"fmt"
)

// fields reads record values out of a decoded mapping. Keys are tried in the
// order given; later keys are the names older data files used.
type fields map[string]any

func (f fields) value(keys ...string) (any, error) {
	for _, k := range keys {
		if v, ok := f[k]; ok {
			return v, nil
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrMissingField, keys[0])
}

func (f fields) text(keys ...string) (string, error) {
	v, err := f.value(keys...)
	if err != nil {
		return "", err
	}

	return textOf(v), nil
}

func (f fields) textOr(def string, keys ...string) string {
	s, err := f.text(keys...)
	if err != nil {
		return def
	}

	return s
}

func textOf(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case Kind:
		return string(val)
	case json.Number:
		return val.String()
	case fmt.Stringer:
		return val.String()
	}

	if b, err := json.Marshal(v); err == nil {
		return string(b)
	}

	return fmt.Sprint(v)
}
