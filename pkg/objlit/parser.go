package objlit

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

type parser struct {
	tokens   []token
	pos      int
	bindings map[string]any
}

func (p *parser) peek() token {
	return p.tokens[p.pos]
}

func (p *parser) next() token {
	t := p.tokens[p.pos]
	if t.kind != tokenEOF {
		p.pos++
	}
	return t
}

func (p *parser) match(kind tokenKind) bool {
	if p.peek().kind == kind {
		p.pos++
		return true
	}
	return false
}

func (p *parser) expect(kind tokenKind, what string) (token, error) {
	t := p.next()
	if t.kind != kind {
		return t, syntaxErr(t.pos, "expected %s, got %s", what, describe(t))
	}
	return t, nil
}

func (p *parser) parseValue() (any, error) {
	t := p.peek()
	switch t.kind {
	case tokenLBrace:
		return p.parseObject()
	case tokenLBracket:
		return p.parseArray()
	case tokenString:
		p.next()
		return t.raw, nil
	case tokenNumber:
		p.next()
		return parseNumber(t)
	case tokenIdent:
		p.next()
		switch t.raw {
		case "true":
			return true, nil
		case "false":
			return false, nil
		case "null", "undefined":
			return nil, nil
		}
		return p.parseReference(t)
	default:
		return nil, syntaxErr(t.pos, "unexpected %s", describe(t))
	}
}

func (p *parser) parseObject() (map[string]any, error) {
	if _, err := p.expect(tokenLBrace, "'{'"); err != nil {
		return nil, err
	}

	obj := make(map[string]any)
	for {
		if p.match(tokenRBrace) {
			return obj, nil
		}

		keyTok := p.next()
		var key string
		switch keyTok.kind {
		case tokenIdent, tokenString:
			key = keyTok.raw
		case tokenNumber:
			n, err := parseNumber(keyTok)
			if err != nil {
				return nil, err
			}
			key = fmt.Sprint(n)
		default:
			return nil, syntaxErr(keyTok.pos, "expected property name, got %s", describe(keyTok))
		}

		switch {
		case p.match(tokenColon):
			v, err := p.parseValue()
			if err != nil {
				return nil, err
			}
			obj[key] = v
		case keyTok.kind == tokenIdent && (p.peek().kind == tokenComma || p.peek().kind == tokenRBrace):
			// shorthand property: { name } == { name: name }
			v, err := p.parseReference(keyTok)
			if err != nil {
				return nil, err
			}
			obj[key] = v
		default:
			t := p.peek()
			return nil, syntaxErr(t.pos, "expected ':' after property %q, got %s", key, describe(t))
		}

		if p.match(tokenComma) {
			continue
		}
		if p.match(tokenRBrace) {
			return obj, nil
		}
		t := p.peek()
		return nil, syntaxErr(t.pos, "expected ',' or '}', got %s", describe(t))
	}
}

func (p *parser) parseArray() ([]any, error) {
	if _, err := p.expect(tokenLBracket, "'['"); err != nil {
		return nil, err
	}

	arr := make([]any, 0)
	for {
		if p.match(tokenRBracket) {
			return arr, nil
		}
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)

		if p.match(tokenComma) {
			continue
		}
		if p.match(tokenRBracket) {
			return arr, nil
		}
		t := p.peek()
		return nil, syntaxErr(t.pos, "expected ',' or ']', got %s", describe(t))
	}
}

// parseReference resolves an identifier followed by any number of .name or
// [key] accessors against the bindings.
func (p *parser) parseReference(root token) (any, error) {
	value, ok := p.bindings[root.raw]
	if !ok {
		return nil, fmt.Errorf("%w: %s is not defined", ErrUnknownIdentifier, root.raw)
	}
	path := root.raw

	for {
		var key string
		switch {
		case p.match(tokenDot):
			t, err := p.expect(tokenIdent, "property name")
			if err != nil {
				return nil, err
			}
			key = t.raw
		case p.match(tokenLBracket):
			t := p.next()
			switch t.kind {
			case tokenString, tokenNumber:
				key = t.raw
			default:
				return nil, syntaxErr(t.pos, "expected string or number index, got %s", describe(t))
			}
			if _, err := p.expect(tokenRBracket, "']'"); err != nil {
				return nil, err
			}
		default:
			return value, nil
		}

		if value == nil {
			return nil, fmt.Errorf("%w: cannot read property %q of %s", ErrUnknownIdentifier, key, path)
		}
		value = property(value, key)
		path += "." + key
	}
}

// property returns the named member of a map, slice or struct value, or nil.
func property(v any, key string) any {
	switch val := v.(type) {
	case map[string]any:
		return val[key]
	case []any:
		if key == "length" {
			return int64(len(val))
		}
		i, err := strconv.Atoi(key)
		if err != nil || i < 0 || i >= len(val) {
			return nil
		}
		return val[i]
	case string:
		if key == "length" {
			return int64(len(val))
		}
		return nil
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil
		}
		mv := rv.MapIndex(reflect.ValueOf(key).Convert(rv.Type().Key()))
		if !mv.IsValid() {
			return nil
		}
		return mv.Interface()
	case reflect.Slice, reflect.Array:
		if key == "length" {
			return int64(rv.Len())
		}
		i, err := strconv.Atoi(key)
		if err != nil || i < 0 || i >= rv.Len() {
			return nil
		}
		return rv.Index(i).Interface()
	case reflect.Struct:
		f := rv.FieldByName(key)
		if !f.IsValid() || !f.CanInterface() {
			return nil
		}
		return f.Interface()
	}
	return nil
}

func parseNumber(t token) (any, error) {
	raw := t.raw
	if !strings.ContainsAny(raw, ".eE") || strings.ContainsAny(raw, "xX") {
		if n, err := strconv.ParseInt(raw, 0, 64); err == nil {
			return n, nil
		}
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, syntaxErr(t.pos, "invalid number %q", raw)
	}
	return f, nil
}

func describe(t token) string {
	switch t.kind {
	case tokenEOF:
		return "end of input"
	case tokenString:
		return strconv.Quote(t.raw)
	default:
		return "'" + t.raw + "'"
	}
}
