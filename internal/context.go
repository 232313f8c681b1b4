package internal

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/mailpreview/pkg/cookie"
	"github.com/dmitrymomot/mailpreview/pkg/htmx"
	"github.com/dmitrymomot/mailpreview/pkg/theme"
)

// Component is anything that renders HTML into a writer.
// templ components and the views package both satisfy it.
type Component = htmx.Renderable

// Context is the request context handed to handlers and middleware.
// It embeds context.Context, so it can be passed to any call that takes one.
type Context interface {
	context.Context

	// Request returns the underlying *http.Request.
	Request() *http.Request

	// Response returns the response writer.
	Response() http.ResponseWriter

	// ResponseWriter returns the wrapper with status tracking and hooks.
	ResponseWriter() *ResponseWriter

	// Param returns a URL path parameter.
	Param(name string) string

	// Query returns a query string parameter.
	Query(name string) string

	// QueryDefault returns a query parameter or defaultValue when empty.
	QueryDefault(name, defaultValue string) string

	// Form returns a form value from the request body or query.
	Form(name string) string

	// Header returns a request header.
	Header(name string) string

	// SetHeader sets a response header.
	SetHeader(name, value string)

	// JSON writes v as JSON with the given status.
	JSON(code int, v any) error

	// String writes a plain text response.
	String(code int, s string) error

	// NoContent writes only a status line.
	NoContent(code int) error

	// Redirect redirects the client. htmx requests get HX-Redirect.
	Redirect(code int, url string) error

	// Error builds an HTTPError for returning from a handler.
	Error(code int, message string, opts ...HTTPErrorOption) *HTTPError

	// IsHTMX reports whether the request came from htmx.
	IsHTMX() bool

	// Render writes component with the given status. For htmx requests
	// the options set HX-* headers and out-of-band fragments.
	Render(code int, component Component, opts ...htmx.RenderOption) error

	// RenderPartial renders partial for htmx requests and fullPage otherwise.
	RenderPartial(code int, fullPage, partial Component, opts ...htmx.RenderOption) error

	// Bind decodes a JSON or form body into v.
	Bind(v any) error

	// BindJSON decodes a JSON body into v.
	BindJSON(v any) error

	// Written reports whether the response has been started.
	Written() bool

	Logger() *slog.Logger
	LogDebug(msg string, attrs ...any)
	LogInfo(msg string, attrs ...any)
	LogWarn(msg string, attrs ...any)
	LogError(msg string, attrs ...any)

	// Set stores a request-scoped value; Get reads it back.
	Set(key, value any)
	Get(key any) any

	Cookie(name string) (string, error)
	SetCookie(name, value string, maxAge int)
	DeleteCookie(name string)

	// CookieSigned reads an HMAC-signed cookie.
	CookieSigned(name string) (string, error)

	// SetCookieSigned writes an HMAC-signed cookie.
	SetCookieSigned(name, value string, maxAge int) error

	// Theme returns the resolved theme preference for this request.
	Theme() theme.Preference
}

type requestContext struct {
	request       *http.Request
	response      *ResponseWriter
	logger        *slog.Logger
	cookieManager *cookie.Manager
	maxBodyBytes  int64
	bodyLimited   bool
}

func newContext(w http.ResponseWriter, r *http.Request, app *App) *requestContext {
	return &requestContext{
		request:       r,
		response:      NewResponseWriter(w, htmx.IsHTMX(r)),
		logger:        app.logger,
		cookieManager: app.cookieManager,
		maxBodyBytes:  app.maxBodyBytes,
	}
}

func (c *requestContext) Request() *http.Request {
	return c.request
}

func (c *requestContext) Response() http.ResponseWriter {
	return c.response
}

func (c *requestContext) ResponseWriter() *ResponseWriter {
	return c.response
}

func (c *requestContext) Deadline() (time.Time, bool) {
	return c.request.Context().Deadline()
}

func (c *requestContext) Done() <-chan struct{} {
	return c.request.Context().Done()
}

func (c *requestContext) Err() error {
	return c.request.Context().Err()
}

func (c *requestContext) Value(key any) any {
	return c.request.Context().Value(key)
}

func (c *requestContext) Param(name string) string {
	return chi.URLParam(c.request, name)
}

func (c *requestContext) Query(name string) string {
	return c.request.URL.Query().Get(name)
}

func (c *requestContext) QueryDefault(name, defaultValue string) string {
	if v := c.Query(name); v != "" {
		return v
	}
	return defaultValue
}

func (c *requestContext) Form(name string) string {
	c.limitBody()
	return c.request.FormValue(name)
}

func (c *requestContext) Header(name string) string {
	return c.request.Header.Get(name)
}

func (c *requestContext) SetHeader(name, value string) {
	c.response.Header().Set(name, value)
}

func (c *requestContext) JSON(code int, v any) error {
	c.response.Header().Set("Content-Type", "application/json; charset=utf-8")
	c.response.WriteHeader(code)
	return json.NewEncoder(c.response).Encode(v)
}

func (c *requestContext) String(code int, s string) error {
	c.response.Header().Set("Content-Type", "text/plain; charset=utf-8")
	c.response.WriteHeader(code)
	_, err := c.response.Write([]byte(s))
	return err
}

func (c *requestContext) NoContent(code int) error {
	c.response.WriteHeader(code)
	return nil
}

func (c *requestContext) Redirect(code int, url string) error {
	htmx.Redirect(c.response, c.request, url, code)
	return nil
}

func (c *requestContext) Error(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(code, message, opts...)
}

func (c *requestContext) IsHTMX() bool {
	return htmx.IsHTMX(c.request)
}

func (c *requestContext) Render(code int, component Component, opts ...htmx.RenderOption) error {
	c.response.Header().Set("Content-Type", "text/html; charset=utf-8")

	var cfg *htmx.Config
	if len(opts) > 0 && c.IsHTMX() {
		cfg = htmx.NewConfig(opts...)
		cfg.ApplyHeaders(c.response)
	}

	c.response.WriteHeader(code)

	if err := component.Render(c.request.Context(), c.response); err != nil {
		return err
	}
	if cfg == nil {
		return nil
	}
	for _, oob := range cfg.OOB {
		if err := oob.Render(c.request.Context(), c.response); err != nil {
			return err
		}
	}
	return nil
}

func (c *requestContext) RenderPartial(code int, fullPage, partial Component, opts ...htmx.RenderOption) error {
	if c.IsHTMX() {
		return c.Render(code, partial, opts...)
	}
	return c.Render(code, fullPage)
}

func (c *requestContext) Written() bool {
	return c.response.Written()
}

func (c *requestContext) Logger() *slog.Logger {
	return c.logger
}

func (c *requestContext) LogDebug(msg string, attrs ...any) {
	c.logger.DebugContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogInfo(msg string, attrs ...any) {
	c.logger.InfoContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogWarn(msg string, attrs ...any) {
	c.logger.WarnContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogError(msg string, attrs ...any) {
	c.logger.ErrorContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) Set(key, value any) {
	ctx := context.WithValue(c.request.Context(), key, value)
	c.request = c.request.WithContext(ctx)
}

func (c *requestContext) Get(key any) any {
	return c.request.Context().Value(key)
}

func (c *requestContext) Cookie(name string) (string, error) {
	return c.cookieManager.Get(c.request, name)
}

func (c *requestContext) SetCookie(name, value string, maxAge int) {
	c.cookieManager.Set(c.response, name, value, maxAge)
}

func (c *requestContext) DeleteCookie(name string) {
	c.cookieManager.Delete(c.response, name)
}

func (c *requestContext) CookieSigned(name string) (string, error) {
	return c.cookieManager.GetSigned(c.request, name)
}

func (c *requestContext) SetCookieSigned(name, value string, maxAge int) error {
	return c.cookieManager.SetSigned(c.response, name, value, maxAge)
}

func (c *requestContext) Theme() theme.Preference {
	return theme.FromContext(c.request.Context())
}
