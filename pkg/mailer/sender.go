package mailer

import "context"

// Sender is implemented by mail transports.
type Sender interface {
	// Send delivers email and returns the transport's message id.
	// The Email must have To, Subject and HTML set.
	Send(ctx context.Context, email *Email) (string, error)
}

// SenderFunc adapts a function to the Sender interface.
type SenderFunc func(ctx context.Context, email *Email) (string, error)

// Send calls f(ctx, email).
func (f SenderFunc) Send(ctx context.Context, email *Email) (string, error) {
	return f(ctx, email)
}
