package internal_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailpreview/internal"
	"github.com/dmitrymomot/mailpreview/pkg/cookie"
)

func TestExtractor(t *testing.T) {
	t.Parallel()

	ext := internal.NewExtractor(
		internal.FromQuery("theme"),
		internal.FromCookie("theme"),
		internal.FromHeader("Sec-CH-Prefers-Color-Scheme"),
	)

	tests := []struct {
		name   string
		setup  func(r *http.Request)
		want   string
		wantOK bool
	}{
		{
			name:   "query wins",
			setup:  func(r *http.Request) { r.URL.RawQuery = "theme=dark"; r.AddCookie(&http.Cookie{Name: "theme", Value: "light"}) },
			want:   "dark",
			wantOK: true,
		},
		{
			name:   "cookie before header",
			setup:  func(r *http.Request) { r.AddCookie(&http.Cookie{Name: "theme", Value: "light"}); r.Header.Set("Sec-CH-Prefers-Color-Scheme", "dark") },
			want:   "light",
			wantOK: true,
		},
		{
			name:   "header last",
			setup:  func(r *http.Request) { r.Header.Set("Sec-CH-Prefers-Color-Scheme", "dark") },
			want:   "dark",
			wantOK: true,
		},
		{
			name:  "nothing",
			setup: func(*http.Request) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			tt.setup(req)
			serve(t, req, "/", func(c internal.Context) error {
				got, ok := ext.Extract(c)
				assert.Equal(t, tt.wantOK, ok)
				assert.Equal(t, tt.want, got)
				return nil
			})
		})
	}
}

func TestFromParamAndForm(t *testing.T) {
	t.Parallel()

	form := url.Values{"partial": {"footer"}}
	req := httptest.NewRequest(http.MethodPost, "/drafts/insert/header", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	serve(t, req, "/drafts/insert/{partial}", func(c internal.Context) error {
		v, ok := internal.NewExtractor(internal.FromParam("partial"), internal.FromForm("partial")).Extract(c)
		assert.True(t, ok)
		assert.Equal(t, "header", v)

		v, ok = internal.NewExtractor(internal.FromParam("missing"), internal.FromForm("partial")).Extract(c)
		assert.True(t, ok)
		assert.Equal(t, "footer", v)
		return nil
	})
}

func TestFromCookieSigned(t *testing.T) {
	t.Parallel()

	cm, err := cookie.New(cookie.Config{Secret: testSecret})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	require.NoError(t, cm.SetSigned(w, "draft", "draft-id", 60))

	t.Run("valid signature", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		for _, ck := range w.Result().Cookies() {
			req.AddCookie(ck)
		}
		serve(t, req, "/", func(c internal.Context) error {
			v, ok := internal.NewExtractor(internal.FromCookieSigned("draft")).Extract(c)
			assert.True(t, ok)
			assert.Equal(t, "draft-id", v)
			return nil
		}, internal.WithCookieManager(cm))
	})

	t.Run("tampered value", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "draft", Value: "ZHJhZnQ.bogus"})
		serve(t, req, "/", func(c internal.Context) error {
			_, ok := internal.NewExtractor(internal.FromCookieSigned("draft")).Extract(c)
			assert.False(t, ok)
			return nil
		}, internal.WithCookieManager(cm))
	})
}
