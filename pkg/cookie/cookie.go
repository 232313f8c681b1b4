package cookie

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
)

var (
	ErrNotFound  = errors.New("cookie: not found")
	ErrNoSecret  = errors.New("cookie: secret required")
	ErrBadSecret = errors.New("cookie: secret must be 32+ bytes")
	ErrBadSig    = errors.New("cookie: invalid signature")
)

// MinSecretLength is the shortest accepted signing secret.
const MinSecretLength = 32

// Config holds cookie attributes loaded from the environment.
type Config struct {
	Secret string `env:"COOKIE_SECRET"`
	Domain string `env:"COOKIE_DOMAIN"`
	Secure bool   `env:"COOKIE_SECURE" envDefault:"false"`
}

// Manager reads and writes cookies with shared attributes. Signed values
// carry an HMAC-SHA256 tag so clients can read but not forge them.
type Manager struct {
	secret   []byte
	domain   string
	path     string
	secure   bool
	httpOnly bool
	sameSite http.SameSite
}

// Option configures a Manager.
type Option func(*Manager)

// WithHTTPOnly toggles the HttpOnly attribute. Default: true.
func WithHTTPOnly(httpOnly bool) Option {
	return func(m *Manager) {
		m.httpOnly = httpOnly
	}
}

// WithSameSite sets the SameSite attribute. Default: Lax.
func WithSameSite(ss http.SameSite) Option {
	return func(m *Manager) {
		m.sameSite = ss
	}
}

// WithPath sets the cookie path. Default: "/".
func WithPath(path string) Option {
	return func(m *Manager) {
		if path != "" {
			m.path = path
		}
	}
}

// New creates a Manager from cfg. An empty secret is allowed and only
// disables signed cookies; a short one is rejected.
func New(cfg Config, opts ...Option) (*Manager, error) {
	if cfg.Secret != "" && len(cfg.Secret) < MinSecretLength {
		return nil, ErrBadSecret
	}
	m := &Manager{
		domain:   cfg.Domain,
		path:     "/",
		secure:   cfg.Secure,
		httpOnly: true,
		sameSite: http.SameSiteLaxMode,
	}
	if cfg.Secret != "" {
		m.secret = []byte(cfg.Secret)
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// CanSign reports whether signed cookies are available.
func (m *Manager) CanSign() bool {
	return m.secret != nil
}

// Get returns a plain cookie value.
func (m *Manager) Get(r *http.Request, name string) (string, error) {
	c, err := r.Cookie(name)
	if errors.Is(err, http.ErrNoCookie) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return c.Value, nil
}

// Set writes a plain cookie. maxAge follows http.Cookie semantics.
func (m *Manager) Set(w http.ResponseWriter, name, value string, maxAge int) {
	http.SetCookie(w, m.cookie(name, value, maxAge))
}

// Delete expires a cookie.
func (m *Manager) Delete(w http.ResponseWriter, name string) {
	http.SetCookie(w, m.cookie(name, "", -1))
}

// GetSigned returns the value of a signed cookie after verifying its tag.
func (m *Manager) GetSigned(r *http.Request, name string) (string, error) {
	if m.secret == nil {
		return "", ErrNoSecret
	}
	raw, err := m.Get(r, name)
	if err != nil {
		return "", err
	}

	encValue, encSig, ok := strings.Cut(raw, ".")
	if !ok {
		return "", ErrBadSig
	}
	value, err := base64.RawURLEncoding.DecodeString(encValue)
	if err != nil {
		return "", ErrBadSig
	}
	sig, err := base64.RawURLEncoding.DecodeString(encSig)
	if err != nil {
		return "", ErrBadSig
	}
	if !hmac.Equal(sig, m.sign(value)) {
		return "", ErrBadSig
	}
	return string(value), nil
}

// SetSigned writes value as base64(value).base64(hmac).
func (m *Manager) SetSigned(w http.ResponseWriter, name, value string, maxAge int) error {
	if m.secret == nil {
		return ErrNoSecret
	}
	encoded := base64.RawURLEncoding.EncodeToString([]byte(value)) +
		"." + base64.RawURLEncoding.EncodeToString(m.sign([]byte(value)))
	http.SetCookie(w, m.cookie(name, encoded, maxAge))
	return nil
}

func (m *Manager) sign(value []byte) []byte {
	mac := hmac.New(sha256.New, m.secret)
	mac.Write(value)
	return mac.Sum(nil)
}

func (m *Manager) cookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     m.path,
		Domain:   m.domain,
		MaxAge:   maxAge,
		Secure:   m.secure,
		HttpOnly: m.httpOnly,
		SameSite: m.sameSite,
	}
}
