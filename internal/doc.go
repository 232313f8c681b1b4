// Package internal holds the HTTP application core behind the mailpreview
// package: App, Context, Router and the server runtime.
//
// Import "github.com/dmitrymomot/mailpreview" instead; it re-exports this API.
//
// # Application
//
//	app := internal.New(
//	    internal.WithMiddleware(middlewares.RequestID(), middlewares.Theme()),
//	    internal.WithHandlers(editor, relay),
//	    internal.WithHealthChecks(internal.WithReadinessCheck("redis", check)),
//	)
//	err := app.Run(":8080", internal.Logger(log))
//
// Run listens, serves and shuts down gracefully on SIGINT or SIGTERM,
// running shutdown hooks after the HTTP server stops.
//
// # Handlers
//
// Handlers implement Handler and declare routes on a Router:
//
//	func (h *Editor) Routes(r internal.Router) {
//	    r.GET("/", h.page)
//	    r.POST("/preview", h.preview)
//	}
//
// A HandlerFunc returns an error instead of writing one. The app passes it
// to the error handler, which by default writes {"error": message} with
// the HTTPError status, or a 500 for any other error.
//
// # Context
//
// Context embeds context.Context and wraps the request and response with
// helpers for params, binding, JSON, htmx rendering, cookies and logging.
// Theme returns the preference resolved by the theme middleware.
//
// # htmx
//
// For htmx requests the ResponseWriter rewrites 4xx and 5xx statuses to
// 200, so error fragments are swapped in. Render applies HX-* headers and
// appends out-of-band fragments only for htmx requests.
package internal
