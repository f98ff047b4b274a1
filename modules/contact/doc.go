// Package contact implements the contact form intake pipeline: an HTTP
// endpoint that validates and persists submissions, and an asynchronous
// dispatcher that emails an alert for every stored record.
//
// The pipeline splits into two stages connected by a persistent event.
// Intake (Handler) validates the submission, hashes the client IP with a
// server-held salt, appends a Record to the Store and publishes
// EventRecordCreated. Notification (Dispatcher) consumes that event and
// sends a single alert email, relying on the event layer's redelivery for
// at-least-once behavior.
//
// Anti-abuse is a hidden honeypot field: submissions that fill it receive
// the same success response as real ones but are never persisted.
package contact
