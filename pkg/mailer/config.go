package mailer

// Config holds mailer configuration.
// Embed this in your app config for env parsing with caarlos0/env.
type Config struct {
	FallbackSubject string `env:"MAILER_FALLBACK_SUBJECT" envDefault:"Email from EJS Template"`
	Transport       string `env:"MAILER_TRANSPORT" envDefault:"smtp"` // smtp, resend, postmark or file
}
