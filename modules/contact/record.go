package contact

import "time"

// StatusReceived is the only status this service ever writes. The field is a
// placeholder for future lifecycle states (read, archived) so the stored
// schema stays forward-compatible.
const StatusReceived = "received"

// Unknown is the placeholder for request metadata that could not be resolved.
const Unknown = "Unknown"

// Input is the untrusted submission payload as sent by the browser.
// Honeypot carries the hidden form field: humans never fill it, so any
// non-empty value marks the submission as automated.
type Input struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Subject  string `json:"subject"`
	Message  string `json:"message"`
	Honeypot string `json:"hp"`
}

// Meta holds best-effort request metadata captured at intake.
type Meta struct {
	UserAgent string `json:"ua" bson:"ua"`
	Referer   string `json:"referer" bson:"referer"`
}

// Record is a persisted contact submission. All four content fields are
// trimmed and non-empty by the time a record is appended. IPHash is the
// salted one-way digest of the client address; the raw IP is never stored.
type Record struct {
	Name        string    `json:"name" bson:"name"`
	Email       string    `json:"email" bson:"email"`
	Subject     string    `json:"subject" bson:"subject"`
	Message     string    `json:"message" bson:"message"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	Status      string    `json:"status" bson:"status"`
	Meta        Meta      `json:"meta" bson:"meta"`
	IPHash      string    `json:"ip_hash" bson:"ip_hash"`
	HoneypotHit bool      `json:"honeypot_hit" bson:"honeypot_hit"`
}
