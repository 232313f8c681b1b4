package mailer

import "errors"

var (
	// ErrNoRecipient indicates no recipient was specified.
	ErrNoRecipient = errors.New("email must have at least one recipient")

	// ErrNoSubject indicates no subject was provided.
	ErrNoSubject = errors.New("email must have a subject")

	// ErrNoContent indicates no HTML content was provided.
	ErrNoContent = errors.New("email must have HTML content")

	// ErrSendFailed indicates the transport failed to deliver the email.
	ErrSendFailed = errors.New("failed to send email")

	// ErrInvalidFrontmatter indicates invalid YAML frontmatter.
	ErrInvalidFrontmatter = errors.New("invalid frontmatter")

	// ErrInvalidConfig indicates a transport was configured without required settings.
	ErrInvalidConfig = errors.New("invalid mailer configuration")

	// ErrUnknownTransport indicates an unsupported transport name.
	ErrUnknownTransport = errors.New("unknown mail transport")
)
