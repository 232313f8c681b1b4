package preview

import (
	"encoding/json"
	"errors"
	"io"
	"strings"
)

// ParseData decodes template data text. The text must be a single strict
// JSON object; blank text is an empty object. Numbers are kept as
// json.Number so integers survive unchanged.
func ParseData(text string) (map[string]any, error) {
	if strings.TrimSpace(text) == "" {
		return map[string]any{}, nil
	}

	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			err = errors.New("unexpected end of JSON input")
		}
		return nil, &DataError{Err: err}
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, &DataError{Err: errors.New("unexpected data after top-level value")}
	}

	obj, ok := v.(map[string]any)
	if !ok {
		return nil, &DataError{Err: errors.New("template data must be a JSON object")}
	}
	return obj, nil
}
