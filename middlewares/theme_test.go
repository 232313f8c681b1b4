package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailpreview/internal"
	"github.com/dmitrymomot/mailpreview/middlewares"
	"github.com/dmitrymomot/mailpreview/pkg/theme"
)

func TestTheme(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		url      string
		cookies  map[string]string
		hint     string
		wantSite theme.Mode
		wantCode theme.Mode
	}{
		{
			name:     "no signal defaults to light",
			url:      "/",
			wantSite: theme.Light,
			wantCode: theme.Light,
		},
		{
			name:     "client hint drives system",
			url:      "/",
			hint:     "dark",
			wantSite: theme.Dark,
			wantCode: theme.Dark,
		},
		{
			name:     "cookie beats hint",
			url:      "/",
			cookies:  map[string]string{theme.ThemeKey: "light"},
			hint:     "dark",
			wantSite: theme.Light,
			wantCode: theme.Light,
		},
		{
			name:     "query beats cookie",
			url:      "/?theme=dark",
			cookies:  map[string]string{theme.ThemeKey: "light"},
			wantSite: theme.Dark,
			wantCode: theme.Dark,
		},
		{
			name:     "explicit code theme",
			url:      "/",
			cookies:  map[string]string{theme.ThemeKey: "dark", theme.CodeThemeKey: "light"},
			wantSite: theme.Dark,
			wantCode: theme.Light,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			for k, v := range tt.cookies {
				req.AddCookie(&http.Cookie{Name: k, Value: v})
			}
			if tt.hint != "" {
				req.Header.Set(theme.HeaderPrefersColorScheme, tt.hint)
			}
			rec := httptest.NewRecorder()

			var got theme.Preference
			handler := middlewares.Theme()(func(c internal.Context) error {
				got = c.Theme()
				return nil
			})
			require.NoError(t, handler(newTestContext(rec, req)))

			require.Equal(t, tt.wantSite, got.Site)
			require.Equal(t, tt.wantCode, got.Code)
			require.Equal(t, theme.HeaderPrefersColorScheme, rec.Header().Get("Accept-CH"))
		})
	}
}
