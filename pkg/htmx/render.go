package htmx

import (
	"context"
	"io"
	"net/http"
	"strings"
)

// Renderable is satisfied by templ components and the app's views.
type Renderable interface {
	Render(ctx context.Context, w io.Writer) error
}

// Config collects response headers and out-of-band fragments for one
// htmx response.
type Config struct {
	OOB      []Renderable
	Retarget string
	Reswap   Swap
	Triggers []string
	Refresh  bool
}

// RenderOption configures an htmx response.
type RenderOption func(*Config)

// NewConfig applies opts to an empty Config.
func NewConfig(opts ...RenderOption) *Config {
	cfg := &Config{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// ApplyHeaders writes the configured HX-* headers. It must run before the
// status line is written.
func (c *Config) ApplyHeaders(w http.ResponseWriter) {
	if c == nil {
		return
	}
	h := w.Header()
	if c.Retarget != "" {
		h.Set(HeaderRetarget, c.Retarget)
	}
	if c.Reswap != "" {
		h.Set(HeaderReswap, string(c.Reswap))
	}
	if len(c.Triggers) > 0 {
		h.Set(HeaderTrigger, strings.Join(c.Triggers, ", "))
	}
	if c.Refresh {
		h.Set(HeaderRefresh, "true")
	}
}

// WithOOB appends out-of-band fragments rendered after the main one.
// Each must carry an id and hx-swap-oob.
func WithOOB(components ...Renderable) RenderOption {
	return func(c *Config) {
		c.OOB = append(c.OOB, components...)
	}
}

// WithRetarget swaps the response into selector instead of the request target.
func WithRetarget(selector string) RenderOption {
	return func(c *Config) {
		c.Retarget = selector
	}
}

// WithReswap overrides the swap strategy.
func WithReswap(s Swap) RenderOption {
	return func(c *Config) {
		c.Reswap = s
	}
}

// WithTrigger fires client-side events once the response arrives.
func WithTrigger(events ...string) RenderOption {
	return func(c *Config) {
		c.Triggers = append(c.Triggers, events...)
	}
}

// WithRefresh makes htmx reload the whole page.
func WithRefresh() RenderOption {
	return func(c *Config) {
		c.Refresh = true
	}
}
