package relay

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/dmitrymomot/mailpreview/pkg/mailer"
)

// Request is a rendered email to relay.
type Request struct {
	HTML      string
	Recipient string
	Subject   string // optional
	Sender    string // optional From override
}

// Outcome is the result of a successful send.
type Outcome struct {
	MessageID string
}

// Service relays rendered HTML through a mailer. Sends to the same
// recipient never run concurrently: while one is in flight, others fail
// with ErrSendInProgress.
type Service struct {
	mailer *mailer.Mailer
	logger *slog.Logger
	tags   mailer.Tags

	mu       sync.Mutex
	inflight map[string]struct{}
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithTags sets tags attached to every relayed message.
func WithTags(tags mailer.Tags) Option {
	return func(s *Service) {
		s.tags = tags
	}
}

// New creates a relay service.
func New(m *mailer.Mailer, opts ...Option) *Service {
	s := &Service{
		mailer:   m,
		logger:   slog.New(slog.DiscardHandler),
		inflight: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Send delivers req with a single attempt. Transport failures wrap
// mailer.ErrSendFailed.
func (s *Service) Send(ctx context.Context, req Request) (Outcome, error) {
	recipient := strings.TrimSpace(req.Recipient)
	if strings.TrimSpace(req.HTML) == "" || recipient == "" {
		return Outcome{}, ErrMissingFields
	}

	key := strings.ToLower(recipient)
	if !s.acquire(key) {
		s.logger.WarnContext(ctx, "relay: duplicate send rejected", slog.String("recipient", recipient))
		return Outcome{}, ErrSendInProgress
	}
	defer s.release(key)

	id, err := s.mailer.SendHTML(ctx, mailer.Message{
		To:      recipient,
		Subject: req.Subject,
		HTML:    req.HTML,
		From:    req.Sender,
		Tags:    s.tags,
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "relay: send failed",
			slog.String("recipient", recipient),
			slog.Any("error", err),
		)
		return Outcome{}, err
	}

	s.logger.InfoContext(ctx, "relay: email sent",
		slog.String("recipient", recipient),
		slog.String("message_id", id),
	)
	return Outcome{MessageID: id}, nil
}

// InFlight reports how many sends are running.
func (s *Service) InFlight() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.inflight)
}

func (s *Service) acquire(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, busy := s.inflight[key]; busy {
		return false
	}
	s.inflight[key] = struct{}{}
	return true
}

func (s *Service) release(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inflight, key)
}
