package ejs

import (
	"strconv"
	"strings"
)

// methodFilters maps zero-argument string/array methods to pongo2 filters.
var methodFilters = map[string]string{
	"toUpperCase": "upper",
	"toLowerCase": "lower",
	"trim":        "trim",
}

// binaryOps maps EJS operators to their pongo2 spelling.
var binaryOps = map[string]string{
	"===": "==",
	"==":  "==",
	"!==": "!=",
	"!=":  "!=",
	"<":   "<",
	"<=":  "<=",
	">":   ">",
	">=":  ">=",
	"+":   "+",
	"-":   "-",
	"*":   "*",
	"/":   "/",
	"%":   "%",
	"&&":  "and",
	"||":  "or",
}

// expression is a translated EJS expression.
type expression struct {
	src   string   // pongo2 expression source
	roots []string // identifiers the expression reads from the scope
}

// translateExpr converts a token slice (without the trailing EOF) into a
// pongo2 expression.
func translateExpr(toks []token, line int) (expression, error) {
	for len(toks) > 0 && toks[len(toks)-1].punct(";") {
		toks = toks[:len(toks)-1]
	}
	if len(toks) == 0 {
		return expression{}, syntaxError(line, "empty expression")
	}

	var (
		parts []string
		roots []string
		depth int
	)

	for i := 0; i < len(toks); i++ {
		t := toks[i]
		switch t.kind {
		case tokString:
			parts = append(parts, strconv.Quote(t.text))

		case tokNumber:
			if strings.Count(t.text, ".") > 1 {
				return expression{}, syntaxError(line, "invalid number %q", t.text)
			}
			parts = append(parts, t.text)

		case tokIdent:
			switch t.text {
			case "true", "false":
				parts = append(parts, t.text)
				continue
			case "null", "undefined", "typeof", "new", "function", "this", "void", "delete", "instanceof", "in":
				return expression{}, syntaxError(line, "unsupported keyword %q", t.text)
			}
			if !isIdentifier(t.text) {
				return expression{}, syntaxError(line, "unsupported identifier %q", t.text)
			}
			if i+1 < len(toks) && toks[i+1].punct("(") {
				if t.text == "include" && i+2 < len(toks) && toks[i+2].kind == tokString {
					return expression{}, syntaxError(line, "include %q could not be resolved", toks[i+2].text)
				}
				return expression{}, syntaxError(line, "function calls are not supported: %s()", t.text)
			}

			ref, next, err := translateReference(toks, i, line)
			if err != nil {
				return expression{}, err
			}
			roots = append(roots, t.text)
			parts = append(parts, ref)
			i = next - 1

		case tokPunct:
			switch t.text {
			case "(":
				depth++
				parts = append(parts, "(")
			case ")":
				depth--
				if depth < 0 {
					return expression{}, syntaxError(line, "unbalanced ')'")
				}
				parts = append(parts, ")")
			case "!":
				parts = append(parts, "not")
			default:
				op, ok := binaryOps[t.text]
				if !ok {
					return expression{}, syntaxError(line, "unsupported token %q", t.text)
				}
				parts = append(parts, op)
			}
		}
	}
	if depth != 0 {
		return expression{}, syntaxError(line, "unbalanced '('")
	}

	return expression{src: joinParts(parts), roots: roots}, nil
}

// translateReference reads identifier[.member|[index]]* starting at toks[i]
// and returns the pongo2 form plus the index of the first unconsumed token.
func translateReference(toks []token, i, line int) (string, int, error) {
	var sb strings.Builder
	sb.WriteString(toks[i].text)
	i++

	filtered := false
	for i < len(toks) {
		switch {
		case toks[i].punct("."):
			if i+1 >= len(toks) || toks[i+1].kind != tokIdent {
				return "", 0, syntaxError(line, "expected property name after '.'")
			}
			name := toks[i+1].text
			call := i+2 < len(toks) && toks[i+2].punct("(")

			switch {
			case name == "length" && !call:
				sb.WriteString("|length")
				filtered = true
				i += 2
			case call && methodFilters[name] != "":
				if i+3 >= len(toks) || !toks[i+3].punct(")") {
					return "", 0, syntaxError(line, "%s() takes no arguments", name)
				}
				sb.WriteString("|" + methodFilters[name])
				filtered = true
				i += 4
			case call && name == "join":
				if i+4 >= len(toks) || toks[i+3].kind != tokString || !toks[i+4].punct(")") {
					return "", 0, syntaxError(line, "join() expects a string separator")
				}
				sb.WriteString("|join:" + strconv.Quote(toks[i+3].text))
				filtered = true
				i += 5
			case call:
				return "", 0, syntaxError(line, "unsupported method call .%s()", name)
			default:
				if filtered {
					return "", 0, syntaxError(line, "property access after .%s is not supported", name)
				}
				sb.WriteString("." + name)
				i += 2
			}

		case toks[i].punct("["):
			if filtered {
				return "", 0, syntaxError(line, "index access after a method call is not supported")
			}
			if i+2 >= len(toks) || !toks[i+2].punct("]") {
				return "", 0, syntaxError(line, "computed member access is not supported")
			}
			key := toks[i+1]
			switch {
			case key.kind == tokNumber && !strings.Contains(key.text, "."):
				sb.WriteString("." + key.text)
			case key.kind == tokString && isIdentifier(key.text):
				sb.WriteString("." + key.text)
			default:
				return "", 0, syntaxError(line, "unsupported index %q", key.text)
			}
			i += 3

		default:
			return sb.String(), i, nil
		}
	}
	return sb.String(), i, nil
}

func joinParts(parts []string) string {
	var sb strings.Builder
	for i, p := range parts {
		if i > 0 && p != ")" && parts[i-1] != "(" {
			sb.WriteByte(' ')
		}
		sb.WriteString(p)
	}
	return sb.String()
}

// isIdentifier reports whether s is usable as a pongo2 identifier.
func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
