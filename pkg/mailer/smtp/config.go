package smtp

import "time"

// Config holds SMTP connection settings. The defaults target the Mailtrap
// sandbox.
type Config struct {
	Host     string        `env:"MAILTRAP_HOST" envDefault:"sandbox.smtp.mailtrap.io"`
	Port     int           `env:"MAILTRAP_PORT" envDefault:"2525"`
	Username string        `env:"MAILTRAP_USER"` // optional, some servers allow unauthenticated relay
	Password string        `env:"MAILTRAP_PASS"`
	From     string        `env:"MAIL_FROM" envDefault:"noreply@yourdomain.com"`
	FromName string        `env:"MAIL_FROM_NAME"`
	Timeout  time.Duration `env:"SMTP_TIMEOUT" envDefault:"30s"`
}
