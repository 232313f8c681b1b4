package middlewares

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/mailpreview/internal"
	"github.com/dmitrymomot/mailpreview/pkg/id"
	"github.com/dmitrymomot/mailpreview/pkg/logger"
)

type requestIDKey struct{}

// MaxRequestIDLength caps incoming ids; longer ones are replaced.
const MaxRequestIDLength = 128

// DefaultRequestIDHeaders are checked in order for an upstream request id.
var DefaultRequestIDHeaders = []string{"X-Request-ID", "X-Correlation-ID"}

// RequestIDConfig configures the request id middleware.
type RequestIDConfig struct {
	Generator      func() string
	ResponseHeader string
	Headers        []string
}

// RequestIDOption configures RequestIDConfig.
type RequestIDOption func(*RequestIDConfig)

// WithRequestIDHeaders sets the headers checked for an upstream id.
func WithRequestIDHeaders(headers ...string) RequestIDOption {
	return func(cfg *RequestIDConfig) {
		cfg.Headers = headers
	}
}

// WithRequestIDGenerator replaces the ULID generator.
func WithRequestIDGenerator(gen func() string) RequestIDOption {
	return func(cfg *RequestIDConfig) {
		if gen != nil {
			cfg.Generator = gen
		}
	}
}

// RequestID assigns every request an id, reusing a sane upstream one.
// The id is stored in the request context and echoed in X-Request-ID.
func RequestID(opts ...RequestIDOption) internal.Middleware {
	cfg := &RequestIDConfig{
		Headers:        DefaultRequestIDHeaders,
		Generator:      id.NewULID,
		ResponseHeader: "X-Request-ID",
	}
	for _, opt := range opts {
		opt(cfg)
	}

	sources := make([]internal.ExtractorSource, len(cfg.Headers))
	for i, h := range cfg.Headers {
		sources[i] = internal.FromHeader(h)
	}
	upstream := internal.NewExtractor(sources...)

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			reqID, ok := upstream.Extract(c)
			if !ok || !validRequestID(reqID) {
				reqID = cfg.Generator()
			}

			c.Set(requestIDKey{}, reqID)
			c.SetHeader(cfg.ResponseHeader, reqID)
			return next(c)
		}
	}
}

// validRequestID accepts printable ASCII up to MaxRequestIDLength.
func validRequestID(s string) bool {
	if len(s) > MaxRequestIDLength {
		return false
	}
	for i := range len(s) {
		if s[i] < 0x21 || s[i] > 0x7e {
			return false
		}
	}
	return true
}

// GetRequestID returns the request id, or "" when the middleware did not run.
func GetRequestID(c internal.Context) string {
	return RequestIDFromContext(c)
}

// RequestIDFromContext reads the request id from a plain context.
func RequestIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey{}).(string); ok {
		return v
	}
	return ""
}

// RequestIDExtractor adds "request_id" to log records.
//
//	log := logger.New(cfg.Log, os.Stdout, middlewares.RequestIDExtractor())
func RequestIDExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if v := RequestIDFromContext(ctx); v != "" {
			return slog.String("request_id", v), true
		}
		return slog.Attr{}, false
	}
}
