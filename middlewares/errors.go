package middlewares

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dmitrymomot/mailpreview/internal"
)

// PanicError is a recovered panic.
type PanicError struct {
	Value any
	Stack []byte // nil when stack capture is disabled
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// TimeoutError is returned when a request exceeds its deadline.
type TimeoutError struct {
	Duration time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("request timeout after %s", e.Duration)
}

// IsPanicError reports whether err wraps a PanicError.
func IsPanicError(err error) bool {
	_, ok := AsPanicError(err)
	return ok
}

// IsTimeoutError reports whether err wraps a TimeoutError.
func IsTimeoutError(err error) bool {
	_, ok := AsTimeoutError(err)
	return ok
}

// AsPanicError extracts a PanicError from err.
func AsPanicError(err error) (*PanicError, bool) {
	var pe *PanicError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

// AsTimeoutError extracts a TimeoutError from err.
func AsTimeoutError(err error) (*TimeoutError, bool) {
	var te *TimeoutError
	if errors.As(err, &te) {
		return te, true
	}
	return nil, false
}

// ToHTTPError maps any handler error to the HTTPError sent to the client.
// Panics and unknown errors become a generic 500 so internals never leak;
// timeouts become 503.
func ToHTTPError(err error) *internal.HTTPError {
	if httpErr := internal.AsHTTPError(err); httpErr != nil {
		return httpErr
	}
	if IsTimeoutError(err) {
		return internal.ErrServiceUnavailable("Request timed out", internal.WithError(err))
	}
	return internal.ErrInternal(http.StatusText(http.StatusInternalServerError), internal.WithError(err))
}
