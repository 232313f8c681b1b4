package compose

import (
	"fmt"
	"strings"
)

// ParsePartial maps "header" or "footer" to a Partial.
func ParsePartial(s string) (Partial, bool) {
	switch Partial(strings.ToLower(s)) {
	case Header:
		return Header, true
	case Footer:
		return Footer, true
	}
	return "", false
}

// Path returns the include path for p.
func (p Partial) Path() string {
	if p == Footer {
		return FooterPath
	}
	return HeaderPath
}

// Directive returns the raw include tag for p.
func (p Partial) Directive() string {
	return fmt.Sprintf("<%%- include('%s') %%>", p.Path())
}

// Insert adds an include of p to body: a header goes on the first line and
// a footer on the last. A body that already includes p is returned as is.
func Insert(body string, p Partial) string {
	for _, d := range Scan(body) {
		if d.Partial == p {
			return body
		}
	}

	tag := p.Directive()
	if strings.TrimSpace(body) == "" {
		return tag + "\n"
	}
	if p == Header {
		return tag + "\n\n" + strings.TrimLeft(body, "\r\n")
	}
	return strings.TrimRight(body, "\r\n") + "\n\n" + tag + "\n"
}
