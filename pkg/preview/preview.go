package preview

import (
	"context"
	"html"
	"log/slog"
	"strings"
	"time"

	"github.com/dmitrymomot/mailpreview/pkg/compose"
	"github.com/dmitrymomot/mailpreview/pkg/ejs"
	"github.com/dmitrymomot/mailpreview/pkg/mailer"
	"github.com/dmitrymomot/mailpreview/pkg/sanitizer"
)

// DefaultSubject is used when the body has no subject frontmatter.
const DefaultSubject = "Email from EJS Template"

// Input holds the editable parts of an email.
type Input struct {
	Body   string // body template, may start with YAML frontmatter
	Header string // header partial
	Footer string // footer partial
	Data   string // JSON object text
}

// Result is the outcome of a render. A failed render carries a Message
// and never any HTML.
type Result struct {
	Err     error  `json:"-"`
	HTML    string `json:"html,omitempty"`
	Message string `json:"message,omitempty"`
	Subject string `json:"subject,omitempty"`
}

// OK reports whether the render succeeded.
func (r Result) OK() bool {
	return r.Err == nil
}

func failure(err error) Result {
	return Result{Err: err, Message: err.Error()}
}

// Renderer runs the compose and render pipeline.
type Renderer struct {
	composer *compose.Composer
	engine   *ejs.Engine
	logger   *slog.Logger
	subject  string
	sanitize bool
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithEngine sets the template engine for partials and the final pass.
func WithEngine(e *ejs.Engine) Option {
	return func(r *Renderer) {
		if e != nil {
			r.engine = e
		}
	}
}

// WithLogger sets the renderer logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithSanitize runs successful output through the email HTML policy.
func WithSanitize(enabled bool) Option {
	return func(r *Renderer) {
		r.sanitize = enabled
	}
}

// WithDefaultSubject overrides DefaultSubject.
func WithDefaultSubject(subject string) Option {
	return func(r *Renderer) {
		if subject != "" {
			r.subject = subject
		}
	}
}

// New creates a Renderer.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		engine:  ejs.New(),
		logger:  slog.New(slog.DiscardHandler),
		subject: DefaultSubject,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.composer = compose.New(compose.WithEngine(r.engine), compose.WithLogger(r.logger))
	return r
}

var defaultRenderer = New()

// Render renders body, header and footer templates with the given JSON data
// text using the default renderer.
func Render(body, header, footer, dataText string) Result {
	return defaultRenderer.Render(context.Background(), Input{
		Body:   body,
		Header: header,
		Footer: footer,
		Data:   dataText,
	})
}

// Render parses the data, composes the includes and renders the result.
func (r *Renderer) Render(ctx context.Context, in Input) Result {
	start := time.Now()

	tmpl, err := mailer.ParseTemplate([]byte(in.Body))
	if err != nil {
		return r.fail(ctx, "frontmatter", err)
	}

	data, err := ParseData(in.Data)
	if err != nil {
		return r.fail(ctx, "data", err)
	}

	r.logger.DebugContext(ctx, "preview: composing", slog.Int("includes", len(compose.Scan(tmpl.Body))))
	flat, err := r.composer.Compose(ctx, tmpl.Body, in.Header, in.Footer, data)
	if err != nil {
		return r.fail(ctx, "compose", err)
	}

	r.logger.DebugContext(ctx, "preview: rendering", slog.Int("size", len(flat)))
	out, err := r.engine.Render(flat, data)
	if err != nil {
		return r.fail(ctx, "render", err)
	}

	subject, err := r.renderSubject(tmpl.Subject(), data)
	if err != nil {
		return r.fail(ctx, "subject", err)
	}

	if r.sanitize {
		out = sanitizer.SanitizeHTML(out)
	}

	r.logger.DebugContext(ctx, "preview: success",
		slog.Int("html_size", len(out)),
		slog.Duration("took", time.Since(start)),
	)
	return Result{HTML: out, Subject: subject}
}

func (r *Renderer) renderSubject(src string, data map[string]any) (string, error) {
	if src == "" {
		return r.subject, nil
	}
	out, err := r.engine.Render(src, data)
	if err != nil {
		return "", err
	}
	out = strings.TrimSpace(html.UnescapeString(out))
	if out == "" {
		return r.subject, nil
	}
	return out, nil
}

func (r *Renderer) fail(ctx context.Context, stage string, err error) Result {
	r.logger.DebugContext(ctx, "preview: failure",
		slog.String("stage", stage),
		slog.Any("error", err),
	)
	return failure(err)
}
