package logger

import (
	"context"
	"errors"
	"log/slog"
)

// ContextExtractor pulls a request-scoped attribute out of a context.
type ContextExtractor func(ctx context.Context) (slog.Attr, bool)

type decorator struct {
	next       slog.Handler
	extractors []ContextExtractor
}

// Decorate wraps h so every record gets the attributes produced by the
// extractors at log time. Nil extractors are skipped.
func Decorate(h slog.Handler, extractors ...ContextExtractor) slog.Handler {
	clean := make([]ContextExtractor, 0, len(extractors))
	for _, ex := range extractors {
		if ex != nil {
			clean = append(clean, ex)
		}
	}
	if len(clean) == 0 {
		return h
	}
	return &decorator{next: h, extractors: clean}
}

func (d *decorator) Enabled(ctx context.Context, level slog.Level) bool {
	return d.next.Enabled(ctx, level)
}

func (d *decorator) Handle(ctx context.Context, rec slog.Record) error {
	for _, ex := range d.extractors {
		if attr, ok := ex(ctx); ok {
			rec.AddAttrs(attr)
		}
	}
	return d.next.Handle(ctx, rec)
}

func (d *decorator) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &decorator{next: d.next.WithAttrs(attrs), extractors: d.extractors}
}

func (d *decorator) WithGroup(name string) slog.Handler {
	return &decorator{next: d.next.WithGroup(name), extractors: d.extractors}
}

// fanout sends each record to every handler that accepts its level.
type fanout []slog.Handler

func (f fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f fanout) Handle(ctx context.Context, rec slog.Record) error {
	var errs []error
	for _, h := range f {
		if h.Enabled(ctx, rec.Level) {
			if err := h.Handle(ctx, rec.Clone()); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

func (f fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (f fanout) WithGroup(name string) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithGroup(name)
	}
	return out
}
