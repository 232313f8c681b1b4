package ejs

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/flosch/pongo2/v6"
)

// Normalize converts decoded data into a pongo2 context.
//
// Top-level keys that are not valid identifiers are dropped since pongo2
// refuses them and templates cannot reference them anyway. Integral numbers
// become int64; other numbers become their shortest decimal string so they
// print the same way a browser would.
func Normalize(data map[string]any) pongo2.Context {
	ctx := make(pongo2.Context, len(data))
	for k, v := range data {
		if !isIdentifier(k) {
			continue
		}
		ctx[k] = normalizeValue(v)
	}
	return ctx
}

func normalizeValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = normalizeValue(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = normalizeValue(item)
		}
		return out
	case json.Number:
		if n, err := val.Int64(); err == nil {
			return n
		}
		f, err := val.Float64()
		if err != nil {
			return val.String()
		}
		return normalizeFloat(f)
	case float64:
		return normalizeFloat(val)
	case float32:
		return normalizeFloat(float64(val))
	case int:
		return int64(val)
	default:
		return v
	}
}

func normalizeFloat(f float64) any {
	if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
		return int64(f)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
