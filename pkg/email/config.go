package email

// Config holds email service configuration.
// The Postmark tokens are optional to support development environments where
// outbound email is written to disk instead. SenderEmail establishes the
// sender identity for all outbound mail.
type Config struct {
	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	SenderEmail          string `env:"SENDER_EMAIL,required"`
	DevMailDir           string `env:"DEV_MAIL_DIR" envDefault:"./tmp/mail"` // Used by the dev sender when Postmark tokens are absent.
}
