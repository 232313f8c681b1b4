package internal_test

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailpreview/internal"
	"github.com/dmitrymomot/mailpreview/pkg/htmx"
)

func TestApp_DefaultErrorHandler(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		htmx     bool
		wantCode int
		wantBody string
	}{
		{
			name:     "http error",
			err:      internal.ErrConflict("a send to this recipient is already in progress"),
			wantCode: http.StatusConflict,
			wantBody: `{"error":"a send to this recipient is already in progress"}`,
		},
		{
			name:     "wrapped http error",
			err:      fmt.Errorf("handler: %w", internal.ErrBadRequest("bad")),
			wantCode: http.StatusBadRequest,
			wantBody: `{"error":"bad"}`,
		},
		{
			name:     "plain error hides the cause",
			err:      errors.New("dial tcp: refused"),
			wantCode: http.StatusInternalServerError,
			wantBody: `{"error":"Internal Server Error"}`,
		},
		{
			name:     "htmx request gets 200 on the wire",
			err:      internal.ErrBadRequest("bad"),
			htmx:     true,
			wantCode: http.StatusOK,
			wantBody: `{"error":"bad"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodPost, "/send-email", nil)
			if tt.htmx {
				req.Header.Set(htmx.HeaderRequest, "true")
			}
			w := serve(t, req, "/send-email", func(internal.Context) error { return tt.err })

			assert.Equal(t, tt.wantCode, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}

func TestApp_CustomErrorHandler(t *testing.T) {
	t.Parallel()

	var got error
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := serve(t, req, "/", func(internal.Context) error {
		return internal.ErrNotFound("draft not found")
	}, internal.WithErrorHandler(func(c internal.Context, err error) error {
		got = err
		return c.String(http.StatusTeapot, "custom")
	}))

	assert.Equal(t, http.StatusTeapot, w.Code)
	assert.Equal(t, "custom", w.Body.String())
	require.True(t, internal.IsHTTPError(got))
}

func TestApp_ErrorAfterWriteIsIgnored(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := serve(t, req, "/", func(c internal.Context) error {
		_ = c.String(http.StatusOK, "partial")
		return errors.New("late failure")
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "partial", w.Body.String())
}

func TestApp_MiddlewareOrderAndValues(t *testing.T) {
	t.Parallel()

	type key struct{}
	var order []string
	tag := func(name string) internal.Middleware {
		return func(next internal.HandlerFunc) internal.HandlerFunc {
			return func(c internal.Context) error {
				order = append(order, name)
				return next(c)
			}
		}
	}
	setValue := func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			c.Set(key{}, "from-middleware")
			return next(c)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	serve(t, req, "/", func(c internal.Context) error {
		order = append(order, "handler")
		assert.Equal(t, "from-middleware", c.Get(key{}))
		return nil
	}, internal.WithMiddleware(tag("first"), setValue, tag("second")))

	assert.Equal(t, []string{"first", "second", "handler"}, order)
}

type groupedRoutes struct{}

func (groupedRoutes) Routes(r internal.Router) {
	r.Route("/drafts", func(r internal.Router) {
		r.Use(func(next internal.HandlerFunc) internal.HandlerFunc {
			return func(c internal.Context) error {
				c.SetHeader("X-Group", "drafts")
				return next(c)
			}
		})
		r.POST("/", func(c internal.Context) error { return c.String(http.StatusOK, "saved") })
		r.DELETE("/", func(c internal.Context) error { return c.NoContent(http.StatusNoContent) })
	})
	r.GET("/route-mw", func(c internal.Context) error {
		return c.String(http.StatusOK, c.Header("X-Seen"))
	}, func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			c.Request().Header.Set("X-Seen", "yes")
			return next(c)
		}
	})
}

func TestApp_RouteGroups(t *testing.T) {
	t.Parallel()

	app := internal.New(internal.WithHandlers(groupedRoutes{}))

	w := httptest.NewRecorder()
	app.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/drafts/", nil))
	assert.Equal(t, "saved", w.Body.String())
	assert.Equal(t, "drafts", w.Header().Get("X-Group"))

	w = httptest.NewRecorder()
	app.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/drafts/", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/route-mw", nil))
	assert.Equal(t, "yes", w.Body.String())
}

func TestApp_NotFoundAndMethodNotAllowed(t *testing.T) {
	t.Parallel()

	app := internal.New(
		internal.WithHandlers(groupedRoutes{}),
		internal.WithNotFoundHandler(func(c internal.Context) error {
			return internal.ErrNotFound("page not found")
		}),
		internal.WithMethodNotAllowedHandler(func(c internal.Context) error {
			return internal.ErrMethodNotAllowed("method not allowed")
		}),
	)

	w := httptest.NewRecorder()
	app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"page not found"}`, w.Body.String())

	w = httptest.NewRecorder()
	app.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/route-mw", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestApp_HealthChecks(t *testing.T) {
	t.Parallel()

	app := internal.New(internal.WithHealthChecks(
		internal.WithReadinessCheck("redis", func(context.Context) error { return errors.New("down") }),
	))

	w := httptest.NewRecorder()
	app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestApp_StaticFiles(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"assets/editor.js": {Data: []byte("console.log('editor')")},
	}
	app := internal.New(internal.WithStaticFiles("/static/", fsys, "assets"))

	w := httptest.NewRecorder()
	app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/static/editor.js", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "console.log('editor')", w.Body.String())
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))

	w = httptest.NewRecorder()
	app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/static/", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestApp_Run(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	addrCh := make(chan net.Addr, 1)
	hookRan := make(chan struct{})

	app := internal.New(internal.WithHandlers(routeHandler{
		method:  http.MethodGet,
		pattern: "/",
		fn:      func(c internal.Context) error { return c.String(http.StatusOK, "up") },
	}))

	done := make(chan error, 1)
	go func() {
		done <- app.Run("127.0.0.1:0",
			internal.WithContext(ctx),
			internal.OnReady(func(a net.Addr) { addrCh <- a }),
			internal.ShutdownTimeout(time.Second),
			internal.ShutdownHook(func(context.Context) error {
				close(hookRan)
				return nil
			}),
		)
	}()

	var addr net.Addr
	select {
	case addr = <-addrCh:
	case <-time.After(5 * time.Second):
		t.Fatal("server did not start")
	}

	resp, err := http.Get("http://" + addr.String() + "/")
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
	<-hookRan
}
