package theme_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/mailpreview/pkg/theme"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want theme.Mode
		ok   bool
	}{
		{"light", theme.Light, true},
		{"Dark", theme.Dark, true},
		{" system ", theme.System, true},
		{"", "", false},
		{"sepia", "", false},
	}
	for _, tt := range tests {
		got, ok := theme.Parse(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
	}
}

func TestResolve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		site     theme.Mode
		code     theme.Mode
		hint     string
		wantSite theme.Mode
		wantCode theme.Mode
	}{
		{name: "defaults to light", wantSite: theme.Light, wantCode: theme.Light},
		{name: "system follows dark hint", site: theme.System, hint: "dark", wantSite: theme.Dark, wantCode: theme.Dark},
		{name: "system ignores unknown hint", site: theme.System, hint: "no-preference", wantSite: theme.Light, wantCode: theme.Light},
		{name: "explicit beats hint", site: theme.Light, hint: "dark", wantSite: theme.Light, wantCode: theme.Light},
		{name: "code theme independent", site: theme.Dark, code: theme.Light, wantSite: theme.Dark, wantCode: theme.Light},
		{name: "system code follows site", site: theme.Dark, code: theme.System, wantSite: theme.Dark, wantCode: theme.Dark},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := theme.Resolve(tt.site, tt.code, tt.hint)
			assert.Equal(t, tt.wantSite, p.Site)
			assert.Equal(t, tt.wantCode, p.Code)
		})
	}
}

func TestFromRequest(t *testing.T) {
	t.Parallel()

	t.Run("query beats cookie", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodGet, "/?theme=dark", nil)
		r.AddCookie(&http.Cookie{Name: theme.ThemeKey, Value: "light"})
		p := theme.FromRequest(r)
		assert.Equal(t, theme.Dark, p.Theme)
		assert.True(t, p.IsDark())
	})

	t.Run("cookie beats client hint", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: theme.ThemeKey, Value: "light"})
		r.AddCookie(&http.Cookie{Name: theme.CodeThemeKey, Value: "dark"})
		r.Header.Set(theme.HeaderPrefersColorScheme, "dark")
		p := theme.FromRequest(r)
		assert.Equal(t, theme.Light, p.Site)
		assert.Equal(t, theme.Dark, p.Code)
	})

	t.Run("invalid cookie falls back to hint", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodGet, "/?theme=neon", nil)
		r.AddCookie(&http.Cookie{Name: theme.ThemeKey, Value: "neon"})
		r.Header.Set(theme.HeaderPrefersColorScheme, "dark")
		p := theme.FromRequest(r)
		assert.Equal(t, theme.System, p.Theme)
		assert.Equal(t, theme.Dark, p.Site)
	})
}

func TestContext(t *testing.T) {
	t.Parallel()

	def := theme.FromContext(context.Background())
	assert.Equal(t, theme.System, def.Theme)
	assert.Equal(t, theme.Light, def.Site)

	want := theme.Resolve(theme.Dark, theme.Light, "")
	ctx := theme.WithContext(context.Background(), want)
	assert.Equal(t, want, theme.FromContext(ctx))
}
