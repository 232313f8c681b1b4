package objlit

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

type tokenKind int

const (
	tokenEOF tokenKind = iota
	tokenIdent
	tokenString
	tokenNumber
	tokenLBrace
	tokenRBrace
	tokenLBracket
	tokenRBracket
	tokenColon
	tokenComma
	tokenDot
)

type token struct {
	kind tokenKind
	raw  string // identifier name, decoded string or number text
	pos  int
}

func tokenize(input string) ([]token, error) {
	var tokens []token
	i := 0

	for i < len(input) {
		ch := input[i]

		switch {
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r':
			i++
			continue
		case ch == '/' && i+1 < len(input) && input[i+1] == '/':
			end := strings.IndexByte(input[i:], '\n')
			if end < 0 {
				i = len(input)
			} else {
				i += end + 1
			}
			continue
		case ch == '/' && i+1 < len(input) && input[i+1] == '*':
			end := strings.Index(input[i+2:], "*/")
			if end < 0 {
				return nil, syntaxErr(i, "unterminated comment")
			}
			i += end + 4
			continue
		}

		start := i
		switch ch {
		case '{':
			tokens = append(tokens, token{kind: tokenLBrace, raw: "{", pos: start})
			i++
		case '}':
			tokens = append(tokens, token{kind: tokenRBrace, raw: "}", pos: start})
			i++
		case '[':
			tokens = append(tokens, token{kind: tokenLBracket, raw: "[", pos: start})
			i++
		case ']':
			tokens = append(tokens, token{kind: tokenRBracket, raw: "]", pos: start})
			i++
		case ':':
			tokens = append(tokens, token{kind: tokenColon, raw: ":", pos: start})
			i++
		case ',':
			tokens = append(tokens, token{kind: tokenComma, raw: ",", pos: start})
			i++
		case '.':
			if i+1 < len(input) && isDigit(input[i+1]) {
				n, err := scanNumber(input, i)
				if err != nil {
					return nil, err
				}
				tokens = append(tokens, token{kind: tokenNumber, raw: input[i:n], pos: start})
				i = n
				continue
			}
			tokens = append(tokens, token{kind: tokenDot, raw: ".", pos: start})
			i++
		case '"', '\'':
			s, n, err := scanString(input, i)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, token{kind: tokenString, raw: s, pos: start})
			i = n
		default:
			if isDigit(ch) || ch == '-' || ch == '+' {
				n, err := scanNumber(input, i)
				if err != nil {
					return nil, err
				}
				tokens = append(tokens, token{kind: tokenNumber, raw: input[i:n], pos: start})
				i = n
				continue
			}
			r, size := utf8.DecodeRuneInString(input[i:])
			if !isIdentStart(r) {
				return nil, syntaxErr(i, "unexpected character %q", r)
			}
			i += size
			for i < len(input) {
				r, size = utf8.DecodeRuneInString(input[i:])
				if !isIdentPart(r) {
					break
				}
				i += size
			}
			tokens = append(tokens, token{kind: tokenIdent, raw: input[start:i], pos: start})
		}
	}

	tokens = append(tokens, token{kind: tokenEOF, pos: len(input)})
	return tokens, nil
}

// scanString reads a quoted literal starting at input[start] and returns the
// decoded value and the offset after the closing quote.
func scanString(input string, start int) (string, int, error) {
	quote := input[start]
	var sb strings.Builder
	i := start + 1
	for i < len(input) {
		c := input[i]
		switch {
		case c == quote:
			return sb.String(), i + 1, nil
		case c == '\n':
			return "", 0, syntaxErr(i, "newline in string literal")
		case c == '\\':
			if i+1 >= len(input) {
				return "", 0, syntaxErr(i, "unterminated string literal")
			}
			i++
			switch e := input[i]; e {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case 'r':
				sb.WriteByte('\r')
			case 'b':
				sb.WriteByte('\b')
			case 'f':
				sb.WriteByte('\f')
			case 'v':
				sb.WriteByte('\v')
			case '0':
				sb.WriteByte(0)
			case 'u':
				if i+4 >= len(input) {
					return "", 0, syntaxErr(i, "invalid unicode escape")
				}
				code, err := strconv.ParseUint(input[i+1:i+5], 16, 32)
				if err != nil {
					return "", 0, syntaxErr(i, "invalid unicode escape")
				}
				sb.WriteRune(rune(code))
				i += 4
			case 'x':
				if i+2 >= len(input) {
					return "", 0, syntaxErr(i, "invalid hex escape")
				}
				code, err := strconv.ParseUint(input[i+1:i+3], 16, 8)
				if err != nil {
					return "", 0, syntaxErr(i, "invalid hex escape")
				}
				sb.WriteRune(rune(code))
				i += 2
			case '\n':
				// line continuation
			default:
				sb.WriteByte(e)
			}
			i++
		default:
			sb.WriteByte(c)
			i++
		}
	}
	return "", 0, syntaxErr(start, "unterminated string literal")
}

// scanNumber returns the offset after the numeric literal starting at start.
func scanNumber(input string, start int) (int, error) {
	i := start
	if input[i] == '-' || input[i] == '+' {
		i++
	}
	if i+1 < len(input) && input[i] == '0' && (input[i+1] == 'x' || input[i+1] == 'X') {
		i += 2
		digits := i
		for i < len(input) && isHexDigit(input[i]) {
			i++
		}
		if i == digits {
			return 0, syntaxErr(start, "invalid hex literal")
		}
		return i, nil
	}
	digits := 0
	for i < len(input) && isDigit(input[i]) {
		i++
		digits++
	}
	if i < len(input) && input[i] == '.' {
		i++
		for i < len(input) && isDigit(input[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return 0, syntaxErr(start, "invalid number literal")
	}
	if i < len(input) && (input[i] == 'e' || input[i] == 'E') {
		i++
		if i < len(input) && (input[i] == '-' || input[i] == '+') {
			i++
		}
		exp := i
		for i < len(input) && isDigit(input[i]) {
			i++
		}
		if i == exp {
			return 0, syntaxErr(start, "invalid exponent")
		}
	}
	return i, nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isIdentStart(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}
