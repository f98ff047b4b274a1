// Package events provides persistent, at-least-once delivery of domain
// events to registered handlers.
//
// A Publisher appends named events to storage; a background Consumer claims
// them under a time-bounded lock and invokes the matching handler. Handler
// errors reschedule the event with linear backoff until its attempt budget
// is exhausted, after which the event moves to a dead letter store for
// manual inspection. Locks left behind by a crashed consumer expire and the
// event becomes claimable again.
//
// Delivery is at-least-once by design: a handler that succeeded right before
// a crash may run again on redelivery, so handlers must tolerate duplicates
// or their side effects must be acceptable to repeat.
package events
