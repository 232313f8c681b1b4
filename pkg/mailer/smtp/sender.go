package smtp

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/wneessen/go-mail"

	"github.com/dmitrymomot/mailpreview/pkg/mailer"
)

// Sender implements mailer.Sender over SMTP using go-mail.
type Sender struct {
	config Config
	logger *slog.Logger
}

// Option configures a Sender.
type Option func(*Sender)

// WithLogger sets the sender logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Sender) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates an SMTP sender.
func New(cfg Config, opts ...Option) (*Sender, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("%w: smtp host is required", mailer.ErrInvalidConfig)
	}
	if cfg.Port <= 0 {
		return nil, fmt.Errorf("%w: smtp port must be positive", mailer.ErrInvalidConfig)
	}
	if cfg.From == "" {
		return nil, fmt.Errorf("%w: sender address is required", mailer.ErrInvalidConfig)
	}

	s := &Sender{
		config: cfg,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Send implements mailer.Sender. The returned id is the Message-ID header
// generated for the message.
func (s *Sender) Send(ctx context.Context, email *mailer.Email) (string, error) {
	msg, err := s.buildMessage(email)
	if err != nil {
		return "", err
	}

	client, err := mail.NewClient(s.config.Host, s.clientOptions()...)
	if err != nil {
		return "", fmt.Errorf("smtp: failed to create client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		s.logger.ErrorContext(ctx, "smtp: failed to send email",
			slog.String("host", s.config.Host),
			slog.Int("port", s.config.Port),
			slog.Any("error", err),
		)
		return "", fmt.Errorf("smtp: failed to send email: %w", err)
	}

	id := strings.Trim(msg.GetMessageID(), "<>")
	s.logger.InfoContext(ctx, "smtp: email sent",
		slog.Any("to", email.To),
		slog.String("message_id", id),
	)
	return id, nil
}

func (s *Sender) buildMessage(email *mailer.Email) (*mail.Msg, error) {
	msg := mail.NewMsg()

	if email.From != "" {
		if err := msg.From(email.From); err != nil {
			return nil, fmt.Errorf("smtp: invalid from address: %w", err)
		}
	} else if err := msg.FromFormat(s.config.FromName, s.config.From); err != nil {
		return nil, fmt.Errorf("smtp: invalid from address: %w", err)
	}

	if err := msg.To(email.To...); err != nil {
		return nil, fmt.Errorf("smtp: invalid to address: %w", err)
	}
	if email.ReplyTo != "" {
		if err := msg.ReplyTo(email.ReplyTo); err != nil {
			return nil, fmt.Errorf("smtp: invalid reply-to address: %w", err)
		}
	}

	msg.Subject(email.Subject)
	msg.SetMessageID()

	if email.Text != "" {
		msg.SetBodyString(mail.TypeTextPlain, email.Text)
		msg.AddAlternativeString(mail.TypeTextHTML, email.HTML)
	} else {
		msg.SetBodyString(mail.TypeTextHTML, email.HTML)
	}

	for key, value := range email.Headers {
		msg.SetGenHeader(mail.Header(key), value)
	}

	return msg, nil
}

// clientOptions picks the TLS mode from the port: 465 is implicit TLS, 587
// requires STARTTLS and anything else tries STARTTLS opportunistically.
func (s *Sender) clientOptions() []mail.Option {
	opts := []mail.Option{
		mail.WithPort(s.config.Port),
	}
	if s.config.Timeout > 0 {
		opts = append(opts, mail.WithTimeout(s.config.Timeout))
	}

	switch s.config.Port {
	case 465:
		opts = append(opts, mail.WithSSL())
	case 587:
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
	default:
		opts = append(opts, mail.WithTLSPolicy(mail.TLSOpportunistic))
	}

	if s.config.Username != "" && s.config.Password != "" {
		opts = append(opts,
			mail.WithUsername(s.config.Username),
			mail.WithPassword(s.config.Password),
			mail.WithSMTPAuth(mail.SMTPAuthAutoDiscover),
		)
	}

	return opts
}
