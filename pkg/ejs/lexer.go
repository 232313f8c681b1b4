package ejs

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokString
	tokNumber
	tokPunct
)

type token struct {
	kind tokenKind
	text string // identifier, decoded string, number or punctuator
}

func (t token) is(kind tokenKind, text string) bool {
	return t.kind == kind && t.text == text
}

func (t token) punct(text string) bool {
	return t.is(tokPunct, text)
}

func (t token) ident(text string) bool {
	return t.is(tokIdent, text)
}

// punctuators ordered longest first so the lexer is greedy.
var punctuators = []string{
	"===", "!==",
	"==", "!=", "<=", ">=", "&&", "||", "=>",
	"{", "}", "(", ")", "[", "]", ".", ",", ";", ":", "?",
	"<", ">", "+", "-", "*", "/", "%", "!", "=",
}

func lex(code string, line int) ([]token, error) {
	var tokens []token
	i := 0

outer:
	for i < len(code) {
		c := code[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
			continue
		case c == '/' && strings.HasPrefix(code[i:], "//"):
			end := strings.IndexByte(code[i:], '\n')
			if end < 0 {
				break outer
			}
			i += end + 1
			continue
		case c == '/' && strings.HasPrefix(code[i:], "/*"):
			end := strings.Index(code[i+2:], "*/")
			if end < 0 {
				return nil, syntaxError(line, "unterminated comment")
			}
			i += end + 4
			continue
		case c == '"' || c == '\'' || c == '`':
			s, n, err := lexString(code, i, line)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, token{kind: tokString, text: s})
			i = n
			continue
		case c >= '0' && c <= '9':
			start := i
			for i < len(code) && (isDigit(code[i]) || code[i] == '.') {
				i++
			}
			tokens = append(tokens, token{kind: tokNumber, text: code[start:i]})
			continue
		}

		r, size := utf8.DecodeRuneInString(code[i:])
		if r == '_' || r == '$' || unicode.IsLetter(r) {
			start := i
			i += size
			for i < len(code) {
				r, size = utf8.DecodeRuneInString(code[i:])
				if r != '_' && r != '$' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
					break
				}
				i += size
			}
			tokens = append(tokens, token{kind: tokIdent, text: code[start:i]})
			continue
		}

		for _, p := range punctuators {
			if strings.HasPrefix(code[i:], p) {
				tokens = append(tokens, token{kind: tokPunct, text: p})
				i += len(p)
				continue outer
			}
		}
		return nil, syntaxError(line, "unexpected character %q", r)
	}

	tokens = append(tokens, token{kind: tokEOF})
	return tokens, nil
}

func lexString(code string, start, line int) (string, int, error) {
	quote := code[start]
	var sb strings.Builder
	i := start + 1
	for i < len(code) {
		c := code[i]
		switch {
		case c == quote:
			return sb.String(), i + 1, nil
		case quote == '`' && c == '$' && i+1 < len(code) && code[i+1] == '{':
			return "", 0, syntaxError(line, "template literal interpolation is not supported")
		case c == '\\' && i+1 < len(code):
			i++
			switch code[i] {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case 'r':
				sb.WriteByte('\r')
			default:
				sb.WriteByte(code[i])
			}
			i++
		default:
			sb.WriteByte(c)
			i++
		}
	}
	return "", 0, syntaxError(line, "unterminated string literal")
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
