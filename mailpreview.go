package mailpreview

import (
	"context"
	"io/fs"
	"log/slog"
	"net"
	"time"

	"github.com/dmitrymomot/mailpreview/internal"
	"github.com/dmitrymomot/mailpreview/pkg/cookie"
	"github.com/dmitrymomot/mailpreview/pkg/health"
	"github.com/dmitrymomot/mailpreview/pkg/logger"
)

// Type aliases - public API
type (
	// App owns the router, middleware and server lifecycle.
	App = internal.App

	// Router is the interface handlers use to declare routes.
	Router = internal.Router

	// Context provides request/response access and helper methods.
	Context = internal.Context

	// Handler declares routes on a router.
	Handler = internal.Handler

	// HandlerFunc is the signature for route handlers.
	HandlerFunc = internal.HandlerFunc

	// Middleware wraps a HandlerFunc.
	Middleware = internal.Middleware

	// ErrorHandler handles errors returned from handlers.
	ErrorHandler = internal.ErrorHandler

	// Option configures the application.
	Option = internal.Option

	// RunOption configures the server runtime.
	RunOption = internal.RunOption

	// HealthOption configures health check endpoints.
	HealthOption = internal.HealthOption

	// Component is anything that renders HTML.
	Component = internal.Component

	// ResponseWriter wraps http.ResponseWriter with status tracking and htmx support.
	ResponseWriter = internal.ResponseWriter

	// HTTPError is an error with an HTTP status, rendered as {"error": "..."}.
	HTTPError = internal.HTTPError

	// HTTPErrorOption configures an HTTPError.
	HTTPErrorOption = internal.HTTPErrorOption

	// ContextExtractor extracts a slog attribute from context.
	ContextExtractor = logger.ContextExtractor

	// CookieManager reads and writes plain and signed cookies.
	CookieManager = cookie.Manager
)

// New creates an application. The App is immutable after creation.
//
// Example:
//
//	app := mailpreview.New(
//	    mailpreview.WithLogger(log),
//	    mailpreview.WithMiddleware(middlewares.RequestID(), middlewares.Recover()),
//	    mailpreview.WithHandlers(handlers.NewEditor(drafts, renderer)),
//	)
//
//	err := app.Run(":8080", mailpreview.Logger(log))
func New(opts ...Option) *App {
	return internal.New(opts...)
}

// App options

// WithMiddleware adds global middleware, applied in the order given.
func WithMiddleware(mw ...Middleware) Option {
	return internal.WithMiddleware(mw...)
}

// WithHandlers registers handlers that declare routes.
func WithHandlers(h ...Handler) Option {
	return internal.WithHandlers(h...)
}

// WithStaticFiles mounts fsys/subDir at pattern. Directory listings are disabled.
//
//	//go:embed static
//	var assets embed.FS
//
//	mailpreview.WithStaticFiles("/static/", assets, "static")
func WithStaticFiles(pattern string, fsys fs.FS, subDir string) Option {
	return internal.WithStaticFiles(pattern, fsys, subDir)
}

// WithErrorHandler replaces the default JSON error handler.
func WithErrorHandler(h ErrorHandler) Option {
	return internal.WithErrorHandler(h)
}

// WithNotFoundHandler sets a custom 404 handler.
func WithNotFoundHandler(h HandlerFunc) Option {
	return internal.WithNotFoundHandler(h)
}

// WithMethodNotAllowedHandler sets a custom 405 handler.
func WithMethodNotAllowedHandler(h HandlerFunc) Option {
	return internal.WithMethodNotAllowedHandler(h)
}

// WithHealthChecks enables /health/live and /health/ready.
//
//	mailpreview.WithHealthChecks(
//	    mailpreview.WithReadinessCheck("redis", redis.Healthcheck(client)),
//	)
func WithHealthChecks(opts ...HealthOption) Option {
	return internal.WithHealthChecks(opts...)
}

// WithLogger sets the application logger.
func WithLogger(l *slog.Logger) Option {
	return internal.WithLogger(l)
}

// WithCookieManager sets the cookie manager used by c.Cookie* helpers.
func WithCookieManager(m *CookieManager) Option {
	return internal.WithCookieManager(m)
}

// WithMaxBodyBytes caps request bodies read by Bind. Defaults to 4MB.
func WithMaxBodyBytes(n int64) Option {
	return internal.WithMaxBodyBytes(n)
}

// Health check options

// WithLivenessPath sets the liveness path. Defaults to "/health/live".
func WithLivenessPath(path string) HealthOption {
	return internal.WithLivenessPath(path)
}

// WithReadinessPath sets the readiness path. Defaults to "/health/ready".
func WithReadinessPath(path string) HealthOption {
	return internal.WithReadinessPath(path)
}

// WithReadinessCheck adds a named readiness check.
func WithReadinessCheck(name string, fn health.CheckFunc) HealthOption {
	return internal.WithReadinessCheck(name, fn)
}

// Run options

// Logger sets the server logger. If nil, logging is disabled.
func Logger(l *slog.Logger) RunOption {
	return internal.Logger(l)
}

// ShutdownTimeout bounds graceful shutdown, hooks included. Defaults to 30s.
func ShutdownTimeout(d time.Duration) RunOption {
	return internal.ShutdownTimeout(d)
}

// ShutdownHook registers a cleanup function run after the server stops.
//
//	mailpreview.ShutdownHook(redis.Shutdown(client))
func ShutdownHook(fn func(context.Context) error) RunOption {
	return internal.ShutdownHook(fn)
}

// WithContext sets the base context; cancelling it stops the server.
func WithContext(ctx context.Context) RunOption {
	return internal.WithContext(ctx)
}

// OnReady is called with the bound address once the listener is open.
func OnReady(fn func(net.Addr)) RunOption {
	return internal.OnReady(fn)
}

// Errors

// NewHTTPError creates an HTTPError with the given status and message.
func NewHTTPError(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.NewHTTPError(code, message, opts...)
}

// WithErrorCause attaches the underlying error. It is logged, never sent.
func WithErrorCause(err error) HTTPErrorOption {
	return internal.WithError(err)
}

// WithErrorDetail adds a detail string to the response body.
func WithErrorDetail(detail string) HTTPErrorOption {
	return internal.WithDetail(detail)
}

// WithErrorRequestID adds the request id to the response body.
func WithErrorRequestID(id string) HTTPErrorOption {
	return internal.WithRequestID(id)
}

// IsHTTPError reports whether err wraps an HTTPError.
func IsHTTPError(err error) bool {
	return internal.IsHTTPError(err)
}

// AsHTTPError extracts an HTTPError from err, or returns nil.
func AsHTTPError(err error) *HTTPError {
	return internal.AsHTTPError(err)
}

// Context helpers

// ContextValue retrieves a typed value stored with c.Set.
// Returns the zero value of T if the key is missing or the type differs.
func ContextValue[T any](c Context, key any) T {
	return internal.ContextValue[T](c, key)
}

// Param returns a typed URL parameter.
func Param[T ~string | ~int | ~int64 | ~float64 | ~bool](c Context, name string) T {
	return internal.Param[T](c, name)
}

// Query returns a typed query parameter.
func Query[T ~string | ~int | ~int64 | ~float64 | ~bool](c Context, name string) T {
	return internal.Query[T](c, name)
}

// Cookie errors for checking return values.
var (
	ErrCookieNotFound  = cookie.ErrNotFound
	ErrCookieNoSecret  = cookie.ErrNoSecret
	ErrCookieBadSecret = cookie.ErrBadSecret
	ErrCookieBadSig    = cookie.ErrBadSig
)
