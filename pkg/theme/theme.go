package theme

import (
	"context"
	"net/http"
	"strings"
)

// Mode is a theme choice. Light and Dark are concrete; System defers to
// the visitor's OS preference.
type Mode string

const (
	Light  Mode = "light"
	Dark   Mode = "dark"
	System Mode = "system"
)

// Cookie and query parameter names.
const (
	ThemeKey     = "theme"
	CodeThemeKey = "codeTheme"
)

// HeaderPrefersColorScheme is the client hint carrying the OS preference.
// Browsers only send it after the server lists it in Accept-CH.
const HeaderPrefersColorScheme = "Sec-CH-Prefers-Color-Scheme"

// Modes lists the choices in display order.
var Modes = []Mode{Light, Dark, System}

// Parse returns the Mode named by s (case-insensitive) and whether it was
// recognized.
func Parse(s string) (Mode, bool) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case Light:
		return Light, true
	case Dark:
		return Dark, true
	case System:
		return System, true
	}
	return "", false
}

// Preference is the visitor's theme state for one request.
type Preference struct {
	Theme     Mode // stored choice for the site
	CodeTheme Mode // stored choice for the code editors
	Site      Mode // resolved site theme, Light or Dark
	Code      Mode // resolved editor theme, Light or Dark
}

// IsDark reports whether the site renders dark.
func (p Preference) IsDark() bool {
	return p.Site == Dark
}

// Resolve turns stored choices into concrete themes. A System site theme
// follows the OS hint and falls back to Light; a System code theme follows
// the resolved site theme.
func Resolve(siteChoice, codeChoice Mode, hint string) Preference {
	if siteChoice == "" {
		siteChoice = System
	}
	if codeChoice == "" {
		codeChoice = System
	}

	p := Preference{Theme: siteChoice, CodeTheme: codeChoice, Site: siteChoice, Code: codeChoice}
	if p.Site == System {
		p.Site = Light
		if m, ok := Parse(hint); ok && m == Dark {
			p.Site = Dark
		}
	}
	if p.Code == System {
		p.Code = p.Site
	}
	return p
}

// FromRequest resolves the preference with this precedence: query
// parameter, then cookie, then the color scheme client hint, then Light.
func FromRequest(r *http.Request) Preference {
	return Resolve(
		choice(r, ThemeKey),
		choice(r, CodeThemeKey),
		r.Header.Get(HeaderPrefersColorScheme),
	)
}

func choice(r *http.Request, key string) Mode {
	if m, ok := Parse(r.URL.Query().Get(key)); ok {
		return m
	}
	if c, err := r.Cookie(key); err == nil {
		if m, ok := Parse(c.Value); ok {
			return m
		}
	}
	return ""
}

// ContextKey is the request context key holding a Preference. Middleware
// built on a request-scoped setter can store the value under it directly.
type ContextKey struct{}

// WithContext stores p in ctx.
func WithContext(ctx context.Context, p Preference) context.Context {
	return context.WithValue(ctx, ContextKey{}, p)
}

// FromContext returns the stored preference, or the default (System
// resolved to Light) when none is set.
func FromContext(ctx context.Context) Preference {
	if p, ok := ctx.Value(ContextKey{}).(Preference); ok {
		return p
	}
	return Resolve(System, System, "")
}
