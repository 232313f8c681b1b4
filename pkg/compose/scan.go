package compose

import "strings"

// Partial names one of the two recognized include targets.
type Partial string

const (
	Header Partial = "header"
	Footer Partial = "footer"
)

// Include paths recognized by the scanner.
const (
	HeaderPath = "./components/header"
	FooterPath = "./components/footer"
)

// Directive is an include directive found in a body template.
type Directive struct {
	Partial Partial
	Path    string
	Params  string // raw object-literal argument, empty when absent
	Start   int    // offset of the opening "<%"
	End     int    // offset just past the closing "%>"
	Quote   byte
}

// HasParams reports whether the directive carries a parameter argument.
func (d Directive) HasParams() bool {
	return d.Params != ""
}

// Scan returns the header and footer include directives of body in source
// order. Includes of any other path are not returned.
//
// Recognized grammar:
//
//	"<%" ("-"|"=") ws "include" ws "(" ws QUOTED_PATH ws ["," ws [ARG] ws] ")" ws [";"] ws ["-"|"_"] "%>"
//
// ARG may span lines and contain nested brackets and string literals.
func Scan(body string) []Directive {
	var out []Directive
	for i := 0; i < len(body); {
		idx := strings.Index(body[i:], "<%")
		if idx < 0 {
			break
		}
		start := i + idx
		if d, ok := scanDirective(body, start); ok {
			out = append(out, d)
			i = d.End
			continue
		}
		i = start + 2
	}
	return out
}

type cursor struct {
	s   string
	pos int
}

func (c *cursor) eof() bool {
	return c.pos >= len(c.s)
}

func (c *cursor) peek() byte {
	if c.eof() {
		return 0
	}
	return c.s[c.pos]
}

func (c *cursor) skipSpace() {
	for !c.eof() {
		switch c.s[c.pos] {
		case ' ', '\t', '\n', '\r':
			c.pos++
		default:
			return
		}
	}
}

func (c *cursor) consume(lit string) bool {
	if strings.HasPrefix(c.s[c.pos:], lit) {
		c.pos += len(lit)
		return true
	}
	return false
}

func scanDirective(s string, start int) (Directive, bool) {
	c := &cursor{s: s, pos: start}
	if !c.consume("<%") {
		return Directive{}, false
	}
	if b := c.peek(); b != '-' && b != '=' {
		return Directive{}, false
	}
	c.pos++

	c.skipSpace()
	if !c.consume("include") {
		return Directive{}, false
	}
	c.skipSpace()
	if !c.consume("(") {
		return Directive{}, false
	}
	c.skipSpace()

	quote := c.peek()
	if quote != '\'' && quote != '"' {
		return Directive{}, false
	}
	c.pos++
	end := strings.IndexByte(s[c.pos:], quote)
	if end < 0 {
		return Directive{}, false
	}
	path := s[c.pos : c.pos+end]
	c.pos += end + 1

	d := Directive{Path: path, Quote: quote, Start: start}
	switch path {
	case HeaderPath:
		d.Partial = Header
	case FooterPath:
		d.Partial = Footer
	default:
		return Directive{}, false
	}

	c.skipSpace()
	if c.consume(",") {
		c.skipSpace()
		if c.peek() != ')' {
			argStart := c.pos
			argEnd, ok := scanArg(s, c.pos)
			if !ok {
				return Directive{}, false
			}
			d.Params = strings.TrimSpace(s[argStart:argEnd])
			c.pos = argEnd
		}
	}
	if !c.consume(")") {
		return Directive{}, false
	}
	c.skipSpace()
	c.consume(";")
	c.skipSpace()
	if b := c.peek(); b == '-' || b == '_' {
		c.pos++
	}
	if !c.consume("%>") {
		return Directive{}, false
	}

	d.End = c.pos
	return d, true
}

// scanArg returns the offset of the ")" that closes the include call, skipping
// nested brackets, string literals and comments.
func scanArg(s string, pos int) (int, bool) {
	var stack []byte
	for i := pos; i < len(s); i++ {
		switch ch := s[i]; ch {
		case '\'', '"', '`':
			for i++; i < len(s) && s[i] != ch; i++ {
				if s[i] == '\\' {
					i++
				}
			}
			if i >= len(s) {
				return 0, false
			}
		case '/':
			switch {
			case strings.HasPrefix(s[i:], "//"):
				nl := strings.IndexByte(s[i:], '\n')
				if nl < 0 {
					return 0, false
				}
				i += nl
			case strings.HasPrefix(s[i:], "/*"):
				end := strings.Index(s[i+2:], "*/")
				if end < 0 {
					return 0, false
				}
				i += end + 3
			}
		case '(', '[', '{':
			stack = append(stack, ch)
		case ')', ']', '}':
			if len(stack) == 0 {
				if ch == ')' {
					return i, true
				}
				return 0, false
			}
			if stack[len(stack)-1] != opener(ch) {
				return 0, false
			}
			stack = stack[:len(stack)-1]
		case '%':
			if i+1 < len(s) && s[i+1] == '>' {
				return 0, false
			}
		}
	}
	return 0, false
}

func opener(closer byte) byte {
	switch closer {
	case ')':
		return '('
	case ']':
		return '['
	default:
		return '{'
	}
}
