// Package middlewares provides HTTP middleware for mailpreview applications.
//
// # Request ID
//
// RequestID assigns a ULID to each request, or reuses a sane upstream
// X-Request-ID / X-Correlation-ID. Pair it with RequestIDExtractor so every
// log line carries request_id:
//
//	log := logger.New(cfg.Logger, os.Stdout, middlewares.RequestIDExtractor())
//	app := mailpreview.New(
//	    mailpreview.WithLogger(log),
//	    mailpreview.WithMiddleware(middlewares.RequestID()),
//	)
//
// # Recover
//
// Recover turns panics into *PanicError so the error handler can answer
// with a generic 500 instead of dropping the connection.
//
// # Timeout
//
// Timeout bounds a handler and returns *TimeoutError when the deadline
// passes. The handler goroutine keeps running; long operations such as
// sending mail should watch TimeoutContext(c).Done().
//
// # CORS
//
// CORS lets other origins call POST /send-email:
//
//	middlewares.CORS(
//	    middlewares.WithAllowOrigins("http://localhost:5173"),
//	    middlewares.WithAllowCredentials(),
//	)
//
// # Theme
//
// Theme resolves the light/dark preference from the query string, cookies
// and the Sec-CH-Prefers-Color-Scheme client hint, and stores it for
// c.Theme().
//
// # AccessLog
//
// AccessLog writes one structured line per request.
//
// # Errors
//
// ToHTTPError maps any handler error to the *HTTPError sent to clients.
// Install it in the error handler so panics and transport failures never
// leak internals:
//
//	mailpreview.WithErrorHandler(func(c mailpreview.Context, err error) error {
//	    httpErr := middlewares.ToHTTPError(err)
//	    return c.JSON(httpErr.StatusCode(), httpErr)
//	})
//
// # Order
//
//	mailpreview.WithMiddleware(
//	    middlewares.CORS(),
//	    middlewares.RequestID(),
//	    middlewares.AccessLog(middlewares.WithAccessLogSkipPrefix("/health/", "/static/")),
//	    middlewares.Recover(),
//	    middlewares.Timeout(30*time.Second),
//	    middlewares.Theme(),
//	)
package middlewares
