package mailer

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrymomot/mailpreview/pkg/sanitizer"
)

// Mailer sends rendered HTML through a Sender.
type Mailer struct {
	sender Sender
	config Config
}

// New creates a new Mailer with the given sender.
func New(sender Sender, cfg Config) *Mailer {
	return &Mailer{
		sender: sender,
		config: cfg,
	}
}

// Message is a rendered email addressed to a single recipient.
type Message struct {
	Tags    Tags
	To      string
	Subject string // Falls back to Config.FallbackSubject
	HTML    string
	From    string
	ReplyTo string
}

// SendHTML sends already rendered HTML. The plain text part is derived
// from the HTML. Returns the transport's message id.
func (m *Mailer) SendHTML(ctx context.Context, msg Message) (string, error) {
	if strings.TrimSpace(msg.To) == "" {
		return "", ErrNoRecipient
	}
	if strings.TrimSpace(msg.HTML) == "" {
		return "", ErrNoContent
	}

	subject := strings.TrimSpace(msg.Subject)
	if subject == "" {
		subject = m.config.FallbackSubject
	}

	return m.SendRaw(ctx, &Email{
		To:      []string{strings.TrimSpace(msg.To)},
		Subject: subject,
		HTML:    msg.HTML,
		Text:    sanitizer.PlainText(msg.HTML),
		From:    msg.From,
		ReplyTo: msg.ReplyTo,
		Tags:    msg.Tags,
	})
}

// SendRaw sends a pre-built email.
func (m *Mailer) SendRaw(ctx context.Context, email *Email) (string, error) {
	if len(email.To) == 0 {
		return "", ErrNoRecipient
	}
	if email.Subject == "" {
		return "", ErrNoSubject
	}
	if email.HTML == "" {
		return "", ErrNoContent
	}

	id, err := m.sender.Send(ctx, email)
	if err != nil {
		return "", errors.Join(ErrSendFailed, err)
	}

	return id, nil
}
