package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/dmitrymomot/mailpreview/middlewares"
	"github.com/dmitrymomot/mailpreview/pkg/cache"
	"github.com/dmitrymomot/mailpreview/pkg/config"
	"github.com/dmitrymomot/mailpreview/pkg/cookie"
	"github.com/dmitrymomot/mailpreview/pkg/logger"
	"github.com/dmitrymomot/mailpreview/pkg/mailer"
	"github.com/dmitrymomot/mailpreview/pkg/mailer/file"
	"github.com/dmitrymomot/mailpreview/pkg/mailer/postmark"
	"github.com/dmitrymomot/mailpreview/pkg/mailer/resend"
	"github.com/dmitrymomot/mailpreview/pkg/mailer/smtp"
	"github.com/dmitrymomot/mailpreview/pkg/redis"
)

// Config is the application configuration, composed from the package
// configs and read from the environment.
type Config struct {
	Addr            string        `env:"ADDR" envDefault:":3001"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"15s"`
	CORSOrigins     []string      `env:"CORS_ORIGINS" envSeparator:"," envDefault:"*"`
	DraftTTL        time.Duration `env:"DRAFT_TTL" envDefault:"720h"`
	SanitizePreview bool          `env:"SANITIZE_PREVIEW" envDefault:"false"`

	Logger   logger.Config
	Redis    redis.Config
	Cache    cache.Config
	Cookie   cookie.Config
	Mailer   mailer.Config
	SMTP     smtp.Config
	Resend   resend.Config
	Postmark postmark.Config
	Outbox   file.Config
}

// loadConfig reads the dotenv files named by --env-file (or .env) and then
// the environment.
func loadConfig() (Config, error) {
	var cfg Config
	if err := config.LoadEnv(envFiles...); err != nil {
		return cfg, err
	}
	if err := config.Load(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func newLogger(cfg Config) *slog.Logger {
	return logger.New(cfg.Logger, os.Stderr, middlewares.RequestIDExtractor())
}

// newCookieManager builds the cookie manager. Without COOKIE_SECRET a
// random secret is generated, so draft cookies do not survive a restart.
func newCookieManager(cfg cookie.Config, log *slog.Logger) (*cookie.Manager, error) {
	if cfg.Secret == "" {
		b := make([]byte, cookie.MinSecretLength)
		if _, err := rand.Read(b); err != nil {
			return nil, fmt.Errorf("generate cookie secret: %w", err)
		}
		cfg.Secret = hex.EncodeToString(b)
		log.Warn("COOKIE_SECRET is not set, using a random secret; drafts are lost on restart")
	}
	return cookie.New(cfg)
}

// newSender builds the transport named by MAILER_TRANSPORT.
func newSender(cfg Config, log *slog.Logger) (mailer.Sender, error) {
	switch cfg.Mailer.Transport {
	case "", "smtp":
		return smtp.New(cfg.SMTP, smtp.WithLogger(log))
	case "resend":
		return resend.New(cfg.Resend)
	case "postmark":
		return postmark.New(cfg.Postmark)
	case "file":
		return file.New(cfg.Outbox)
	}
	return nil, fmt.Errorf("%w: %q", mailer.ErrUnknownTransport, cfg.Mailer.Transport)
}
