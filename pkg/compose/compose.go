package compose

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dmitrymomot/mailpreview/pkg/ejs"
	"github.com/dmitrymomot/mailpreview/pkg/objlit"
)

// Composer flattens include directives into a single template.
type Composer struct {
	engine *ejs.Engine
	logger *slog.Logger
}

// Option configures a Composer.
type Option func(*Composer)

// WithEngine sets the engine used to pre-render parameterized partials.
func WithEngine(e *ejs.Engine) Option {
	return func(c *Composer) {
		if e != nil {
			c.engine = e
		}
	}
}

// WithLogger sets the logger used to report parameter evaluation failures.
func WithLogger(l *slog.Logger) Option {
	return func(c *Composer) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a Composer.
func New(opts ...Option) *Composer {
	c := &Composer{
		engine: ejs.New(),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var defaultComposer = New()

// Compose flattens body using the default composer.
func Compose(ctx context.Context, body, header, footer string, data map[string]any) (string, error) {
	return defaultComposer.Compose(ctx, body, header, footer, data)
}

// Compose replaces every header and footer include in body.
//
// An include without arguments is replaced by the raw partial, so its tags
// are evaluated later with the outer data. An include with an object-literal
// argument gets a scope of its own: the argument is evaluated against data,
// merged over it, and the partial is rendered with the merged scope. The
// rendered output has its "<%" sequences escaped so a later render pass
// emits them literally.
//
// An argument that fails to evaluate is treated as an empty object.
// A partial that fails to render aborts the composition.
func (c *Composer) Compose(ctx context.Context, body, header, footer string, data map[string]any) (string, error) {
	directives := Scan(body)
	if len(directives) == 0 {
		return body, nil
	}

	var sb strings.Builder
	sb.Grow(len(body) + len(directives)*(len(header)+len(footer)))

	last := 0
	for _, d := range directives {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		partial := header
		if d.Partial == Footer {
			partial = footer
		}

		repl, err := c.resolve(ctx, d, partial, data)
		if err != nil {
			return "", err
		}

		sb.WriteString(body[last:d.Start])
		sb.WriteString(repl)
		last = d.End
	}
	sb.WriteString(body[last:])

	return sb.String(), nil
}

func (c *Composer) resolve(ctx context.Context, d Directive, partial string, data map[string]any) (string, error) {
	if !d.HasParams() {
		return partial, nil
	}

	params, err := objlit.EvalObject(d.Params, data)
	if err != nil {
		c.logger.WarnContext(ctx, "include parameters ignored",
			slog.String("partial", string(d.Partial)),
			slog.String("params", d.Params),
			slog.Any("error", err),
		)
		params = map[string]any{}
	}

	out, err := c.engine.Render(partial, objlit.Merge(data, params))
	if err != nil {
		return "", fmt.Errorf("compose: render %s: %w", d.Partial, err)
	}
	return EscapeTags(out), nil
}

// EscapeTags escapes every "<%" so the template engine emits it verbatim.
func EscapeTags(s string) string {
	return strings.ReplaceAll(s, "<%", "<%%")
}
