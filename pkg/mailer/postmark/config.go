package postmark

// Config holds Postmark API settings.
type Config struct {
	ServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	AccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	SenderEmail  string `env:"POSTMARK_FROM_EMAIL"`
	SenderName   string `env:"POSTMARK_FROM_NAME"`
	TrackOpens   bool   `env:"POSTMARK_TRACK_OPENS" envDefault:"false"`
}
