package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
)

// Config holds logger settings loaded from the environment.
type Config struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
	Sentry SentryConfig
}

// New builds a logger writing to w (stdout when nil) in the configured
// format. When a Sentry DSN is set, warnings and errors are also sent to
// Sentry. Extractors run on every record, for both destinations.
func New(cfg Config, w io.Writer, extractors ...ContextExtractor) *slog.Logger {
	if w == nil {
		w = os.Stdout
	}
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}

	var h slog.Handler
	if strings.EqualFold(cfg.Format, "text") {
		h = slog.NewTextHandler(w, opts)
	} else {
		h = slog.NewJSONHandler(w, opts)
	}

	if sh := newSentryHandler(cfg.Sentry, h); sh != nil {
		h = fanout{h, sh}
	}
	return slog.New(Decorate(h, extractors...))
}

// NewNope returns a logger that drops everything.
func NewNope() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// ParseLevel maps debug, info, warn and error (case-insensitive) to slog
// levels. Anything else is info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Flush waits for buffered Sentry events. Safe to call when Sentry is off.
func Flush(timeout time.Duration) {
	sentry.Flush(timeout)
}
