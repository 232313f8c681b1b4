package postmark

import (
	"context"
	"fmt"
	"strings"

	"github.com/mrz1836/postmark"

	"github.com/dmitrymomot/mailpreview/pkg/mailer"
)

// Sender implements mailer.Sender using Postmark's transactional API.
type Sender struct {
	client *postmark.Client
	config Config
}

// New creates a Postmark sender.
func New(cfg Config) (*Sender, error) {
	if cfg.ServerToken == "" {
		return nil, fmt.Errorf("%w: postmark server token is required", mailer.ErrInvalidConfig)
	}
	if cfg.SenderEmail == "" {
		return nil, fmt.Errorf("%w: postmark sender email is required", mailer.ErrInvalidConfig)
	}
	return &Sender{
		client: postmark.NewClient(cfg.ServerToken, cfg.AccountToken),
		config: cfg,
	}, nil
}

// Send implements mailer.Sender.
func (s *Sender) Send(ctx context.Context, email *mailer.Email) (string, error) {
	resp, err := s.client.SendEmail(ctx, s.convert(email))
	if err != nil {
		return "", fmt.Errorf("postmark: failed to send email: %w", err)
	}
	if resp.ErrorCode > 0 {
		return "", fmt.Errorf("postmark: error %d: %s", resp.ErrorCode, resp.Message)
	}
	return resp.MessageID, nil
}

func (s *Sender) convert(email *mailer.Email) postmark.Email {
	from := email.From
	if from == "" {
		from = mailer.Recipient(s.config.SenderName, s.config.SenderEmail)
	}

	return postmark.Email{
		From:       from,
		To:         strings.Join(email.To, ", "),
		ReplyTo:    email.ReplyTo,
		Subject:    email.Subject,
		Tag:        email.Tags.First(),
		HTMLBody:   email.HTML,
		TextBody:   email.Text,
		Headers:    convertHeaders(email.Headers),
		TrackOpens: s.config.TrackOpens,
	}
}

func convertHeaders(headers map[string]string) []postmark.Header {
	if len(headers) == 0 {
		return nil
	}
	out := make([]postmark.Header, 0, len(headers))
	for name, value := range headers {
		out = append(out, postmark.Header{Name: name, Value: value})
	}
	return out
}
