package middlewares

import (
	"github.com/dmitrymomot/mailpreview/internal"
	"github.com/dmitrymomot/mailpreview/pkg/theme"
)

// Theme resolves the visitor's site and code theme and stores the
// preference in the request context, where c.Theme() and the views read it.
//
// Choices come from the query string, then cookies; a "system" or missing
// choice follows the Sec-CH-Prefers-Color-Scheme client hint, which the
// response asks browsers to send through Accept-CH.
func Theme() internal.Middleware {
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			c.Set(theme.ContextKey{}, theme.FromRequest(c.Request()))

			h := c.Response().Header()
			h.Set("Accept-CH", theme.HeaderPrefersColorScheme)
			h.Add("Vary", theme.HeaderPrefersColorScheme)
			return next(c)
		}
	}
}
