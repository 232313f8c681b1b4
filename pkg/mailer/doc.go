// Package mailer sends rendered email HTML through pluggable transports.
//
// Rendering happens elsewhere (see packages preview and ejs); this package
// only validates the message, derives the plain text alternative and hands
// the result to a Sender.
//
// # Architecture
//
//   - Sender: interface that transports implement, returning a message id
//   - Mailer: validation, subject fallback and error wrapping around a Sender
//   - ParseTemplate: YAML frontmatter (subject) on top of an email body
//
// Transports live in subpackages:
//
//   - smtp: any SMTP server via github.com/wneessen/go-mail (Mailtrap by default)
//   - resend: the Resend API
//   - postmark: the Postmark API
//   - file: writes .html and .json files for local development
//
// # Usage
//
//	sender, err := smtp.New(smtp.Config{
//		Host:     "sandbox.smtp.mailtrap.io",
//		Port:     2525,
//		Username: os.Getenv("MAILTRAP_USER"),
//		Password: os.Getenv("MAILTRAP_PASS"),
//		From:     "noreply@yourdomain.com",
//	})
//	if err != nil {
//		return err
//	}
//
//	m := mailer.New(sender, mailer.Config{FallbackSubject: "Email from EJS Template"})
//
//	id, err := m.SendHTML(ctx, mailer.Message{
//		To:   "user@example.com",
//		HTML: html,
//	})
//
// # Frontmatter
//
// Email bodies may start with YAML frontmatter:
//
//	---
//	subject: Welcome, <%= name %>
//	---
//	<h1>Hello</h1>
//
// # Errors
//
//   - ErrNoRecipient, ErrNoSubject, ErrNoContent: invalid message
//   - ErrSendFailed: transport failure, joined with the transport error
//   - ErrInvalidFrontmatter: malformed frontmatter
//   - ErrInvalidConfig: transport created without required settings
package mailer
