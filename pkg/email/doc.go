// Package email provides a provider-agnostic interface for sending
// transactional emails with built-in support for Postmark.
//
// The package is built around the EmailSender interface, allowing providers
// to be swapped without changing application code:
//   - PostmarkClient for production delivery
//   - DevSender for local development (saves emails to disk)
//
// All implementations validate email parameters before sending and report
// failures through the package sentinel errors.
package email
