package middlewares_test

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/mailpreview/internal"
	"github.com/dmitrymomot/mailpreview/pkg/htmx"
	"github.com/dmitrymomot/mailpreview/pkg/theme"
)

// testContext is a minimal internal.Context for exercising middleware
// without an App.
type testContext struct {
	rw      *internal.ResponseWriter
	request *http.Request
	logger  *slog.Logger
	logs    *bytes.Buffer
}

func newTestContext(w http.ResponseWriter, r *http.Request) *testContext {
	logs := &bytes.Buffer{}
	return &testContext{
		rw:      internal.NewResponseWriter(w, htmx.IsHTMX(r)),
		request: r,
		logger:  slog.New(slog.NewJSONHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug})),
		logs:    logs,
	}
}

func (c *testContext) Request() *http.Request                   { return c.request }
func (c *testContext) Response() http.ResponseWriter            { return c.rw }
func (c *testContext) ResponseWriter() *internal.ResponseWriter { return c.rw }
func (c *testContext) Deadline() (time.Time, bool)              { return c.request.Context().Deadline() }
func (c *testContext) Done() <-chan struct{}                    { return c.request.Context().Done() }
func (c *testContext) Err() error                               { return c.request.Context().Err() }
func (c *testContext) Value(key any) any                        { return c.request.Context().Value(key) }
func (c *testContext) Param(string) string                      { return "" }
func (c *testContext) Query(name string) string                 { return c.request.URL.Query().Get(name) }
func (c *testContext) Form(name string) string                  { return c.request.FormValue(name) }
func (c *testContext) Header(name string) string                { return c.request.Header.Get(name) }
func (c *testContext) SetHeader(name, value string)             { c.rw.Header().Set(name, value) }
func (c *testContext) IsHTMX() bool                             { return htmx.IsHTMX(c.request) }
func (c *testContext) Written() bool                            { return c.rw.Written() }
func (c *testContext) Logger() *slog.Logger                     { return c.logger }
func (c *testContext) Theme() theme.Preference                  { return theme.FromContext(c.request.Context()) }

func (c *testContext) QueryDefault(name, defaultValue string) string {
	if v := c.Query(name); v != "" {
		return v
	}
	return defaultValue
}

func (c *testContext) JSON(code int, _ any) error { c.rw.WriteHeader(code); return nil }

func (c *testContext) String(code int, s string) error {
	c.rw.WriteHeader(code)
	_, err := c.rw.Write([]byte(s))
	return err
}

func (c *testContext) NoContent(code int) error { c.rw.WriteHeader(code); return nil }

func (c *testContext) Redirect(code int, url string) error {
	htmx.Redirect(c.rw, c.request, url, code)
	return nil
}

func (c *testContext) Error(code int, message string, opts ...internal.HTTPErrorOption) *internal.HTTPError {
	return internal.NewHTTPError(code, message, opts...)
}

func (c *testContext) Render(code int, component internal.Component, _ ...htmx.RenderOption) error {
	c.rw.WriteHeader(code)
	return component.Render(c.request.Context(), c.rw)
}

func (c *testContext) RenderPartial(code int, fullPage, partial internal.Component, opts ...htmx.RenderOption) error {
	if c.IsHTMX() {
		return c.Render(code, partial, opts...)
	}
	return c.Render(code, fullPage)
}

func (c *testContext) Bind(any) error     { return nil }
func (c *testContext) BindJSON(any) error { return nil }

func (c *testContext) LogDebug(msg string, attrs ...any) { c.logger.DebugContext(c, msg, attrs...) }
func (c *testContext) LogInfo(msg string, attrs ...any)  { c.logger.InfoContext(c, msg, attrs...) }
func (c *testContext) LogWarn(msg string, attrs ...any)  { c.logger.WarnContext(c, msg, attrs...) }
func (c *testContext) LogError(msg string, attrs ...any) { c.logger.ErrorContext(c, msg, attrs...) }

func (c *testContext) Set(key, value any) {
	c.request = c.request.WithContext(context.WithValue(c.request.Context(), key, value))
}

func (c *testContext) Get(key any) any { return c.request.Context().Value(key) }

func (c *testContext) Cookie(name string) (string, error) {
	ck, err := c.request.Cookie(name)
	if err != nil {
		return "", err
	}
	return ck.Value, nil
}

func (c *testContext) SetCookie(name, value string, maxAge int) {
	http.SetCookie(c.rw, &http.Cookie{Name: name, Value: value, MaxAge: maxAge})
}

func (c *testContext) DeleteCookie(name string) {
	http.SetCookie(c.rw, &http.Cookie{Name: name, MaxAge: -1})
}

func (c *testContext) CookieSigned(string) (string, error)         { return "", http.ErrNoCookie }
func (c *testContext) SetCookieSigned(string, string, int) error { return nil }
