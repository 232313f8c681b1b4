package ejs

import (
	"strings"
)

type trimMode int

const (
	trimNone trimMode = iota
	trimNewline
	trimWhitespace
)

type frameKind int

const (
	frameIf frameKind = iota
	frameFor
)

func (k frameKind) String() string {
	if k == frameIf {
		return "if"
	}
	return "loop"
}

// frame is an open block statement.
type frame struct {
	closer   string
	bindings []string
	kind     frameKind
	line     int
}

type translator struct {
	scope  map[string]any
	out    strings.Builder
	frames []frame
	strict bool
}

// Translate converts an EJS template into pongo2 source. Identifiers are
// checked against scope when strict is true.
func Translate(src string, scope map[string]any, strict bool) (string, error) {
	t := &translator{scope: scope, strict: strict}
	if err := t.run(src); err != nil {
		return "", err
	}
	return t.out.String(), nil
}

func (t *translator) run(src string) error {
	pos, line := 0, 1
	trim := trimNone

	for {
		idx := strings.Index(src[pos:], "<%")
		if idx < 0 {
			t.text(trimAfter(src[pos:], trim))
			break
		}

		start := pos + idx
		text := trimAfter(src[pos:start], trim)
		trim = trimNone
		line += strings.Count(src[pos:start], "\n")

		if strings.HasPrefix(src[start:], "<%%") {
			t.text(text)
			t.out.WriteString("<%")
			pos = start + 3
			continue
		}

		rest := start + 2
		var mod byte
		if rest < len(src) {
			switch src[rest] {
			case '=', '-', '#', '_':
				mod = src[rest]
				rest++
			}
		}
		if mod == '_' {
			text = strings.TrimRight(text, " \t")
		}
		t.text(text)

		closeIdx, err := findClose(src, rest, mod == '#')
		if err != nil {
			return syntaxError(line, "could not find matching close tag for \"<%%%s\"", modString(mod))
		}
		code := src[rest:closeIdx]
		switch {
		case strings.HasSuffix(code, "-"):
			trim = trimNewline
			code = code[:len(code)-1]
		case strings.HasSuffix(code, "_"):
			trim = trimWhitespace
			code = code[:len(code)-1]
		}

		if err := t.tag(mod, code, line); err != nil {
			return err
		}

		line += strings.Count(src[start:closeIdx+2], "\n")
		pos = closeIdx + 2
	}

	if n := len(t.frames); n > 0 {
		f := t.frames[n-1]
		return syntaxError(f.line, "missing closing brace for %s block", f.kind)
	}
	return nil
}

func (t *translator) tag(mod byte, code string, line int) error {
	switch mod {
	case '#':
		return nil
	case '=', '-':
		toks, err := lex(code, line)
		if err != nil {
			return err
		}
		expr, err := translateExpr(toks[:len(toks)-1], line)
		if err != nil {
			return err
		}
		if err := t.checkRoots(expr, line); err != nil {
			return err
		}
		if mod == '-' {
			t.out.WriteString("{% autoescape off %}{{ " + expr.src + " }}{% endautoescape %}")
		} else {
			t.out.WriteString("{{ " + expr.src + " }}")
		}
		return nil
	default:
		toks, err := lex(code, line)
		if err != nil {
			return err
		}
		return t.statement(toks[:len(toks)-1], line)
	}
}

func (t *translator) statement(toks []token, line int) error {
	for len(toks) > 0 && toks[len(toks)-1].punct(";") {
		toks = toks[:len(toks)-1]
	}
	if len(toks) == 0 {
		return nil
	}

	switch {
	case toks[0].punct("}"):
		return t.closeOrElse(toks[1:], line)
	case toks[0].ident("if"):
		cond, err := t.condition(toks[1:], line)
		if err != nil {
			return err
		}
		t.push(frame{kind: frameIf, closer: "{% endif %}", line: line})
		t.out.WriteString("{% if " + cond + " %}")
		return nil
	case toks[0].ident("for"):
		return t.forOf(toks[1:], line)
	default:
		return t.forEach(toks, line)
	}
}

func (t *translator) closeOrElse(rest []token, line int) error {
	if len(rest) > 0 && rest[0].ident("else") {
		top, ok := t.top()
		if !ok || top.kind != frameIf {
			return syntaxError(line, "else without matching if")
		}
		rest = rest[1:]
		if len(rest) > 0 && rest[0].ident("if") {
			cond, err := t.condition(rest[1:], line)
			if err != nil {
				return err
			}
			t.out.WriteString("{% elif " + cond + " %}")
			return nil
		}
		if len(rest) != 1 || !rest[0].punct("{") {
			return syntaxError(line, "expected '{' after else")
		}
		t.out.WriteString("{% else %}")
		return nil
	}

	for _, tok := range rest {
		if !tok.punct(")") && !tok.punct(";") {
			return syntaxError(line, "unexpected %q after closing brace", tok.text)
		}
	}
	f, ok := t.pop()
	if !ok {
		return syntaxError(line, "unexpected closing brace")
	}
	t.out.WriteString(f.closer)
	return nil
}

// condition parses "( expr ) {" and returns the translated expression.
func (t *translator) condition(toks []token, line int) (string, error) {
	if len(toks) < 3 || !toks[0].punct("(") || !toks[len(toks)-1].punct("{") || !toks[len(toks)-2].punct(")") {
		return "", syntaxError(line, "expected \"(condition) {\"")
	}
	expr, err := translateExpr(toks[1:len(toks)-2], line)
	if err != nil {
		return "", err
	}
	if err := t.checkRoots(expr, line); err != nil {
		return "", err
	}
	return expr.src, nil
}

// forOf handles "for ([const|let|var] item of expr) {".
func (t *translator) forOf(toks []token, line int) error {
	if len(toks) < 5 || !toks[0].punct("(") || !toks[len(toks)-1].punct("{") || !toks[len(toks)-2].punct(")") {
		return syntaxError(line, "expected \"for (item of list) {\"")
	}
	body := toks[1 : len(toks)-2]
	if len(body) > 0 && (body[0].ident("const") || body[0].ident("let") || body[0].ident("var")) {
		body = body[1:]
	}
	if len(body) < 3 || body[0].kind != tokIdent || !body[1].ident("of") {
		return syntaxError(line, "only for...of loops are supported")
	}
	return t.openLoop(body[0].text, "", body[2:], line)
}

// forEach handles "list.forEach(function (item, i) {", "list.forEach((item) => {"
// and "list.forEach(item => {".
func (t *translator) forEach(toks []token, line int) error {
	at := -1
	for i := 0; i+2 < len(toks); i++ {
		if toks[i].punct(".") && toks[i+1].ident("forEach") && toks[i+2].punct("(") {
			at = i
			break
		}
	}
	if at <= 0 {
		return syntaxError(line, "unsupported statement %q", joinTokens(toks))
	}

	cb := toks[at+3:]
	if len(cb) == 0 || !cb[len(cb)-1].punct("{") {
		return syntaxError(line, "expected '{' to open forEach callback")
	}
	cb = cb[:len(cb)-1]

	var params []token
	switch {
	case len(cb) > 0 && cb[0].ident("function"):
		cb = cb[1:]
		if len(cb) > 0 && cb[0].kind == tokIdent {
			cb = cb[1:]
		}
		if len(cb) < 2 || !cb[0].punct("(") || !cb[len(cb)-1].punct(")") {
			return syntaxError(line, "malformed forEach callback")
		}
		params = cb[1 : len(cb)-1]
	case len(cb) >= 3 && cb[0].punct("(") && cb[len(cb)-1].punct("=>") && cb[len(cb)-2].punct(")"):
		params = cb[1 : len(cb)-2]
	case len(cb) == 2 && cb[0].kind == tokIdent && cb[1].punct("=>"):
		params = cb[:1]
	default:
		return syntaxError(line, "malformed forEach callback")
	}

	var names []string
	for i, p := range params {
		if i%2 == 1 {
			if !p.punct(",") {
				return syntaxError(line, "malformed forEach parameters")
			}
			continue
		}
		if p.kind != tokIdent || !isIdentifier(p.text) {
			return syntaxError(line, "malformed forEach parameters")
		}
		names = append(names, p.text)
	}
	switch len(names) {
	case 1:
		return t.openLoop(names[0], "", toks[:at], line)
	case 2:
		return t.openLoop(names[0], names[1], toks[:at], line)
	default:
		return syntaxError(line, "forEach callback takes one or two parameters")
	}
}

func (t *translator) openLoop(item, index string, coll []token, line int) error {
	if !isIdentifier(item) {
		return syntaxError(line, "unsupported loop variable %q", item)
	}
	expr, err := translateExpr(coll, line)
	if err != nil {
		return err
	}
	if err := t.checkRoots(expr, line); err != nil {
		return err
	}

	f := frame{kind: frameFor, bindings: []string{item}, closer: "{% endfor %}", line: line}
	t.out.WriteString("{% for " + item + " in " + expr.src + " %}")
	if index != "" {
		f.bindings = append(f.bindings, index)
		f.closer = "{% endwith %}{% endfor %}"
		t.out.WriteString("{% with " + index + "=forloop.Counter0 %}")
	}
	t.push(f)
	return nil
}

func (t *translator) checkRoots(expr expression, line int) error {
	if !t.strict {
		return nil
	}
	for _, name := range expr.roots {
		if !t.bound(name) {
			return runtimeError(line, "%s is not defined", name)
		}
	}
	return nil
}

func (t *translator) bound(name string) bool {
	for _, f := range t.frames {
		for _, b := range f.bindings {
			if b == name {
				return true
			}
		}
	}
	_, ok := t.scope[name]
	return ok
}

func (t *translator) push(f frame) {
	t.frames = append(t.frames, f)
}

func (t *translator) top() (frame, bool) {
	if len(t.frames) == 0 {
		return frame{}, false
	}
	return t.frames[len(t.frames)-1], true
}

func (t *translator) pop() (frame, bool) {
	f, ok := t.top()
	if ok {
		t.frames = t.frames[:len(t.frames)-1]
	}
	return f, ok
}

// text writes literal template text, escaping sequences pongo2 would treat
// as tag openers. A trailing '{' is escaped too since the next write may
// start with '{'.
func (t *translator) text(s string) {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '{' && (i+1 == len(s) || s[i+1] == '{' || s[i+1] == '%' || s[i+1] == '#') {
			t.out.WriteString(`{{ "{" }}`)
			continue
		}
		t.out.WriteByte(c)
	}
}

// findClose returns the index of the "%>" that ends the tag body starting at
// from. String literals are skipped unless raw is set.
func findClose(src string, from int, raw bool) (int, error) {
	if raw {
		idx := strings.Index(src[from:], "%>")
		if idx < 0 {
			return 0, ErrSyntax
		}
		return from + idx, nil
	}

	for i := from; i < len(src); i++ {
		switch c := src[i]; c {
		case '"', '\'', '`':
			for i++; i < len(src) && src[i] != c; i++ {
				if src[i] == '\\' {
					i++
				}
			}
		case '%':
			if i+1 < len(src) && src[i+1] == '>' {
				return i, nil
			}
		}
	}
	return 0, ErrSyntax
}

func trimAfter(s string, mode trimMode) string {
	switch mode {
	case trimNewline:
		if strings.HasPrefix(s, "\r\n") {
			return s[2:]
		}
		return strings.TrimPrefix(s, "\n")
	case trimWhitespace:
		return strings.TrimLeft(s, " \t\r\n")
	default:
		return s
	}
}

func modString(mod byte) string {
	if mod == 0 {
		return ""
	}
	return string(mod)
}

func joinTokens(toks []token) string {
	parts := make([]string, len(toks))
	for i, t := range toks {
		parts[i] = t.text
	}
	return strings.Join(parts, " ")
}
