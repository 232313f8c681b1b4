package objlit

import (
	"fmt"
	"strings"
)

// Eval parses src as a single value expression and resolves identifiers
// against bindings. The result is one of map[string]any, []any, string,
// int64, float64, bool, nil, or a value taken from bindings.
func Eval(src string, bindings map[string]any) (any, error) {
	if strings.TrimSpace(src) == "" {
		return nil, syntaxErr(0, "empty expression")
	}

	tokens, err := tokenize(src)
	if err != nil {
		return nil, err
	}

	p := &parser{tokens: tokens, bindings: bindings}
	v, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokenEOF {
		return nil, syntaxErr(t.pos, "unexpected %s after value", describe(t))
	}
	return v, nil
}

// EvalObject is like Eval but requires the result to be an object.
// A binding that holds a map[string]any is accepted as well.
func EvalObject(src string, bindings map[string]any) (map[string]any, error) {
	v, err := Eval(src, bindings)
	if err != nil {
		return nil, err
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: got %T", ErrNotObject, v)
	}
	return obj, nil
}

// Merge returns a new map holding base overlaid with override (shallow).
func Merge(base, override map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(override))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range override {
		out[k] = v
	}
	return out
}
