package drafts

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/mailpreview/pkg/cache"
	"github.com/dmitrymomot/mailpreview/pkg/id"
)

// ErrInvalidID is returned for draft ids that are not ULIDs.
var ErrInvalidID = errors.New("drafts: invalid draft id")

// Field names, used as key suffixes in the store.
const (
	FieldHeader    = "header"
	FieldFooter    = "footer"
	FieldBody      = "body"
	FieldData      = "data"
	FieldRecipient = "recipient"
	FieldTheme     = "theme"
	FieldCodeTheme = "codeTheme"
)

var fields = []string{FieldHeader, FieldFooter, FieldBody, FieldData, FieldRecipient, FieldTheme, FieldCodeTheme}

// Draft is everything the editor keeps for one visitor.
type Draft struct {
	Header    string `json:"header"`
	Footer    string `json:"footer"`
	Body      string `json:"body"`
	Data      string `json:"data"`
	Recipient string `json:"recipient"`
	Theme     string `json:"theme"`
	CodeTheme string `json:"codeTheme"`
}

func (d *Draft) field(name string) *string {
	switch name {
	case FieldHeader:
		return &d.Header
	case FieldFooter:
		return &d.Footer
	case FieldBody:
		return &d.Body
	case FieldData:
		return &d.Data
	case FieldRecipient:
		return &d.Recipient
	case FieldTheme:
		return &d.Theme
	case FieldCodeTheme:
		return &d.CodeTheme
	}
	return nil
}

// Store keeps drafts in a string cache, one key per field.
type Store struct {
	cache    cache.Cache[string]
	ttl      time.Duration
	logger   *slog.Logger
	defaults Draft
}

// Option configures a Store.
type Option func(*Store)

// WithTTL sets how long an untouched draft is kept. Zero uses the cache
// default; negative keeps drafts forever.
func WithTTL(d time.Duration) Option {
	return func(s *Store) {
		s.ttl = d
	}
}

// WithLogger sets the store logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithDefaults replaces the draft used to fill missing fields.
func WithDefaults(d Draft) Option {
	return func(s *Store) {
		s.defaults = d
	}
}

// New creates a Store over c.
func New(c cache.Cache[string], opts ...Option) *Store {
	s := &Store{
		cache:    c,
		logger:   slog.New(slog.DiscardHandler),
		defaults: Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewID returns a fresh draft id.
func NewID() string {
	return id.NewULID()
}

// Load returns the draft with missing fields filled from the defaults.
// Fields are fetched concurrently.
func (s *Store) Load(ctx context.Context, draftID string) (Draft, error) {
	if !id.Valid(draftID) {
		return Draft{}, ErrInvalidID
	}

	out := s.defaults
	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	for _, name := range fields {
		g.Go(func() error {
			def := *s.defaults.field(name)
			v, err := cache.Lookup(gctx, s.cache, key(draftID, name), def)
			if err != nil {
				return fmt.Errorf("drafts: load %s: %w", name, err)
			}
			mu.Lock()
			*out.field(name) = v
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Draft{}, err
	}
	return out, nil
}

// Save stores the template fields (header, footer, body, data) of d.
// Recipient and theme are saved separately.
func (s *Store) Save(ctx context.Context, draftID string, d Draft) error {
	return s.set(ctx, draftID, map[string]string{
		FieldHeader: d.Header,
		FieldFooter: d.Footer,
		FieldBody:   d.Body,
		FieldData:   d.Data,
	})
}

// SaveRecipient stores the last used recipient address.
func (s *Store) SaveRecipient(ctx context.Context, draftID, recipient string) error {
	return s.set(ctx, draftID, map[string]string{FieldRecipient: recipient})
}

// SaveTheme stores the site and code theme choices.
func (s *Store) SaveTheme(ctx context.Context, draftID, siteTheme, codeTheme string) error {
	return s.set(ctx, draftID, map[string]string{
		FieldTheme:     siteTheme,
		FieldCodeTheme: codeTheme,
	})
}

// Clear removes every stored field, so the next Load returns the defaults.
func (s *Store) Clear(ctx context.Context, draftID string) error {
	if !id.Valid(draftID) {
		return ErrInvalidID
	}
	keys := make([]string, len(fields))
	for i, name := range fields {
		keys[i] = key(draftID, name)
	}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		return fmt.Errorf("drafts: clear: %w", err)
	}
	s.logger.DebugContext(ctx, "draft cleared", slog.String("draft_id", draftID))
	return nil
}

func (s *Store) set(ctx context.Context, draftID string, values map[string]string) error {
	if !id.Valid(draftID) {
		return ErrInvalidID
	}
	for name, v := range values {
		if err := s.cache.Set(ctx, key(draftID, name), v, s.ttl); err != nil {
			return fmt.Errorf("drafts: save %s: %w", name, err)
		}
	}
	s.logger.DebugContext(ctx, "draft saved",
		slog.String("draft_id", draftID),
		slog.Int("fields", len(values)),
	)
	return nil
}

func key(draftID, field string) string {
	return "draft:" + draftID + ":" + field
}
