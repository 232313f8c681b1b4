package ejs

import (
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/flosch/pongo2/v6"
)

// bannedTags are pongo2 tags that touch the filesystem or template loader.
var bannedTags = []string{"include", "import", "extends", "ssi"}

func init() {
	if !pongo2.FilterExists("trim") {
		pongo2.RegisterFilter("trim", filterTrim)
	}
}

func filterTrim(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	return pongo2.AsValue(strings.TrimSpace(in.String())), nil
}

// Engine renders EJS templates. It is safe for concurrent use.
type Engine struct {
	set    *pongo2.TemplateSet
	logger *slog.Logger
	strict bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithStrict toggles the undefined-variable check. Enabled by default.
func WithStrict(strict bool) Option {
	return func(e *Engine) {
		e.strict = strict
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// New creates an engine backed by an isolated pongo2 template set.
func New(opts ...Option) *Engine {
	e := &Engine{
		strict: true,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}

	e.set = pongo2.NewSet("ejs", denyLoader{})
	for _, tag := range bannedTags {
		// BanTag only fails for unknown tags or after first use.
		_ = e.set.BanTag(tag)
	}
	return e
}

var defaultEngine = New()

// Render renders src with data using the default strict engine.
func Render(src string, data map[string]any) (string, error) {
	return defaultEngine.Render(src, data)
}

// Render translates src and executes it against data.
// Returned errors wrap ErrSyntax or ErrRuntime.
func (e *Engine) Render(src string, data map[string]any) (string, error) {
	ctx := Normalize(data)

	code, err := Translate(src, ctx, e.strict)
	if err != nil {
		return "", err
	}

	tpl, err := e.set.FromString(code)
	if err != nil {
		e.logger.Debug("pongo2 rejected translated template", slog.String("source", code), slog.Any("error", err))
		return "", wrapEngineError(ErrSyntax, err)
	}

	out, err := tpl.Execute(ctx)
	if err != nil {
		return "", wrapEngineError(ErrRuntime, err)
	}
	return out, nil
}

func wrapEngineError(kind, err error) error {
	var perr *pongo2.Error
	if errors.As(err, &perr) && perr.OrigError != nil {
		return &Error{Kind: kind, Msg: perr.OrigError.Error()}
	}
	return &Error{Kind: kind, Msg: err.Error()}
}

// denyLoader refuses every lookup so templates stay self-contained.
type denyLoader struct{}

func (denyLoader) Abs(_, name string) string {
	return name
}

func (denyLoader) Get(string) (io.Reader, error) {
	return nil, ErrNoPartials
}
