// Package logger builds the application's slog logger.
//
// Output is JSON (or text with LOG_FORMAT=text) at LOG_LEVEL. Context
// extractors add request-scoped attributes such as the request id to every
// record logged with a context:
//
//	log := logger.New(cfg, nil, middlewares.RequestIDExtractor())
//	log.InfoContext(r.Context(), "preview rendered") // includes request_id
//
// With SENTRY_DSN set, error records become Sentry issues and warnings are
// kept as Sentry logs. Without it the logger writes to stdout only, so the
// same setup works locally. Call Flush before exit to deliver pending
// events.
//
// Library packages take a *slog.Logger option and default to a discard
// logger; [NewNope] returns one for callers that need it explicitly.
package logger
