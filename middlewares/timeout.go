package middlewares

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrymomot/mailpreview/internal"
)

// DefaultTimeout is used when Timeout is given a non-positive duration.
const DefaultTimeout = 30 * time.Second

type timeoutContextKey struct{}

// Timeout returns a TimeoutError when next has not returned within d.
// The handler keeps running in the background; long operations should
// watch TimeoutContext(c).Done() and stop early. Relay sends pass this
// context to the transport.
func Timeout(d time.Duration) internal.Middleware {
	if d <= 0 {
		d = DefaultTimeout
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			ctx, cancel := context.WithTimeout(c.Request().Context(), d)
			defer cancel()

			c.Set(timeoutContextKey{}, ctx)

			done := make(chan error, 1)
			go func() {
				done <- next(c)
			}()

			select {
			case err := <-done:
				return err
			case <-ctx.Done():
				if errors.Is(ctx.Err(), context.DeadlineExceeded) {
					c.LogWarn("request timeout", "timeout", d.String())
					return &TimeoutError{Duration: d}
				}
				return ctx.Err()
			}
		}
	}
}

// TimeoutContext returns the deadline-bound context set by Timeout, or c
// itself when the middleware did not run.
func TimeoutContext(c internal.Context) context.Context {
	if v, ok := c.Get(timeoutContextKey{}).(context.Context); ok {
		return v
	}
	return c
}
