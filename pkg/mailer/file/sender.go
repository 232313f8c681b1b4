package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/mailpreview/pkg/mailer"
)

// Config holds the development transport settings.
type Config struct {
	Dir string `env:"MAIL_OUTBOX_DIR" envDefault:"./tmp/outbox"`
}

// Sender implements mailer.Sender by writing every message to disk as an
// .html file plus a .json metadata file.
type Sender struct {
	dir string
	now func() time.Time
}

// New creates a file sender. The directory is created on first send.
func New(cfg Config) (*Sender, error) {
	if cfg.Dir == "" {
		return nil, fmt.Errorf("%w: outbox directory is required", mailer.ErrInvalidConfig)
	}
	return &Sender{dir: cfg.Dir, now: time.Now}, nil
}

// metadata is the JSON sidecar written next to the HTML file.
type metadata struct {
	MessageID string            `json:"message_id"`
	Timestamp string            `json:"timestamp"`
	From      string            `json:"from,omitempty"`
	To        []string          `json:"to"`
	ReplyTo   string            `json:"reply_to,omitempty"`
	Subject   string            `json:"subject"`
	Text      string            `json:"text,omitempty"`
	Headers   map[string]string `json:"headers,omitempty"`
}

// Send implements mailer.Sender.
func (s *Sender) Send(ctx context.Context, email *mailer.Email) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("file: failed to create outbox: %w", err)
	}

	id := uuid.NewString()
	now := s.now()
	base := fmt.Sprintf("%s_%s_%s", now.Format("2006_01_02_150405"), sanitizeFilename(email.Subject), id[:8])

	if err := os.WriteFile(filepath.Join(s.dir, base+".html"), []byte(email.HTML), 0o644); err != nil {
		return "", fmt.Errorf("file: failed to write html: %w", err)
	}

	meta, err := json.MarshalIndent(metadata{
		MessageID: id,
		Timestamp: now.Format(time.RFC3339),
		From:      email.From,
		To:        email.To,
		ReplyTo:   email.ReplyTo,
		Subject:   email.Subject,
		Text:      email.Text,
		Headers:   email.Headers,
	}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("file: failed to encode metadata: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, base+".json"), meta, 0o644); err != nil {
		return "", fmt.Errorf("file: failed to write metadata: %w", err)
	}

	return id, nil
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9\-_.]`)

// sanitizeFilename turns a subject into a short lowercase file name part.
func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = unsafeChars.ReplaceAllString(s, "")

	const maxLength = 60
	if len(s) > maxLength {
		s = s[:maxLength]
	}
	if s == "" {
		s = "email"
	}
	return strings.ToLower(s)
}
