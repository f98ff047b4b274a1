package contact

import "time"

// Config holds the contact module settings loaded from environment variables.
type Config struct {
	// AllowedOrigins is the CORS allow-list for the intake endpoint.
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"https://vvscodeweb.web.app,https://vvscodeweb.firebaseapp.com,http://localhost:5000,http://localhost:3000,http://127.0.0.1:5000,http://127.0.0.1:3000"` // comma-separated origins
	// FallbackOrigin is the Access-Control-Allow-Origin value for requests
	// whose Origin is absent or not on the allow-list.
	FallbackOrigin string `env:"CORS_FALLBACK_ORIGIN" envDefault:"https://vvscodeweb.web.app"`
	// IPSalt is the secret salt mixed into client IP hashes.
	IPSalt string `env:"IP_SALT,required"` // never logged
	// AlertEmailTo receives the notification email for each submission.
	AlertEmailTo string `env:"ALERT_EMAIL_TO,required"`

	RateLimit  int           `env:"CONTACT_RATE_LIMIT" envDefault:"5"` // submissions per window per client IP
	RateWindow time.Duration `env:"CONTACT_RATE_WINDOW" envDefault:"1m"`
}
