package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/mailpreview"
	"github.com/dmitrymomot/mailpreview/middlewares"
	"github.com/dmitrymomot/mailpreview/pkg/drafts"
	"github.com/dmitrymomot/mailpreview/pkg/mailer"
	"github.com/dmitrymomot/mailpreview/pkg/relay"
	"github.com/dmitrymomot/mailpreview/views"
)

// ToHTTPError maps domain errors to client-facing HTTP errors. Anything
// unknown falls through to middlewares.ToHTTPError.
func ToHTTPError(err error) *mailpreview.HTTPError {
	switch {
	case errors.Is(err, relay.ErrMissingFields):
		return mailpreview.NewHTTPError(http.StatusBadRequest,
			"Missing required fields: html, recipientEmail", mailpreview.WithErrorCause(err))
	case errors.Is(err, relay.ErrSendInProgress):
		return mailpreview.NewHTTPError(http.StatusConflict,
			"A send to this recipient is already in progress", mailpreview.WithErrorCause(err))
	case errors.Is(err, mailer.ErrSendFailed):
		return mailpreview.NewHTTPError(http.StatusInternalServerError,
			"Failed to send email", mailpreview.WithErrorCause(err))
	case errors.Is(err, drafts.ErrInvalidID):
		return mailpreview.NewHTTPError(http.StatusBadRequest, "Invalid draft", mailpreview.WithErrorCause(err))
	}
	return middlewares.ToHTTPError(err)
}

// ErrorHandler writes {"error": "..."} for API clients and an inline error
// fragment for htmx requests.
func ErrorHandler(c mailpreview.Context, err error) error {
	httpErr := ToHTTPError(err)
	if httpErr.Code >= http.StatusInternalServerError {
		c.LogError("request failed", slog.Any("error", err))
	}
	if rid := middlewares.GetRequestID(c); rid != "" {
		httpErr.RequestID = rid
	}

	if c.IsHTMX() {
		return c.Render(httpErr.Code, views.ErrorContent(httpErr.Code, httpErr.Message))
	}
	return c.JSON(httpErr.Code, httpErr)
}

// NotFound renders a 404 page, or JSON for API clients.
func NotFound(c mailpreview.Context) error {
	return statusPage(c, http.StatusNotFound, "The page you're looking for doesn't exist.")
}

// MethodNotAllowed renders a 405 page, or JSON for API clients.
func MethodNotAllowed(c mailpreview.Context) error {
	return statusPage(c, http.StatusMethodNotAllowed, "This HTTP method is not allowed for this resource.")
}

func statusPage(c mailpreview.Context, code int, msg string) error {
	switch {
	case c.IsHTMX():
		return c.Render(code, views.ErrorContent(code, msg))
	case wantsJSON(c) || c.Request().Method != http.MethodGet:
		return c.JSON(code, mailpreview.NewHTTPError(code, msg))
	}
	return c.Render(code, views.ErrorPage(code, msg))
}
