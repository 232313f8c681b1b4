// Package theme resolves the editor's light or dark appearance on the
// server so the first paint already uses the right colors.
//
// The site theme and the code editor theme are each light, dark or system.
// An explicit choice comes from the query string or a cookie; "system"
// follows the Sec-CH-Prefers-Color-Scheme client hint, and light is used
// when the hint is missing. A "system" code theme follows the resolved
// site theme. The resolved [Preference] travels in the request context:
//
//	ctx = theme.WithContext(ctx, theme.FromRequest(r))
//	...
//	if theme.FromContext(ctx).IsDark() { ... }
package theme
