package middlewares

import (
	"log/slog"
	"strings"
	"time"

	"github.com/dmitrymomot/mailpreview/internal"
)

// AccessLogOption configures AccessLog.
type AccessLogOption func(*accessLogConfig)

type accessLogConfig struct {
	skip []string
}

// WithAccessLogSkipPrefix drops requests whose path starts with prefix,
// such as "/health/" probes or "/static/".
func WithAccessLogSkipPrefix(prefix ...string) AccessLogOption {
	return func(cfg *accessLogConfig) {
		cfg.skip = append(cfg.skip, prefix...)
	}
}

// AccessLog logs one line per request with method, path, status, size and
// duration. 5xx responses log at error level, 4xx at warn.
func AccessLog(opts ...AccessLogOption) internal.Middleware {
	cfg := &accessLogConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			path := c.Request().URL.Path
			for _, p := range cfg.skip {
				if strings.HasPrefix(path, p) {
					return next(c)
				}
			}

			start := time.Now()
			err := next(c)

			rw := c.ResponseWriter()
			status := rw.Status()
			if err != nil && !rw.Written() {
				status = ToHTTPError(err).Code
			}

			level := slog.LevelInfo
			switch {
			case status >= 500:
				level = slog.LevelError
			case status >= 400:
				level = slog.LevelWarn
			}

			c.Logger().Log(c, level, "request",
				slog.String("method", c.Request().Method),
				slog.String("path", path),
				slog.Int("status", status),
				slog.Int64("size", rw.Size()),
				slog.Duration("duration", time.Since(start)),
				slog.Bool("htmx", c.IsHTMX()),
			)
			return err
		}
	}
}
