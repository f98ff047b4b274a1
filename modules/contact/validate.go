package contact

import "strings"

// Outcome is the result of validating a submission.
type Outcome int

const (
	// OutcomeAccept means the submission is complete and should be persisted.
	OutcomeAccept Outcome = iota
	// OutcomeDrop means the honeypot was triggered: respond with success but
	// persist nothing, so the bot cannot tell it was detected.
	OutcomeDrop
	// OutcomeReject means one or more required fields are empty or missing.
	OutcomeReject
)

// Validate checks an inbound submission. The honeypot check runs first and
// takes precedence over field-presence validation: a bot that filled the
// hidden field gets the same masked success whether or not it also left
// required fields blank.
func Validate(in Input) Outcome {
	if in.Honeypot != "" {
		return OutcomeDrop
	}
	if strings.TrimSpace(in.Name) == "" ||
		strings.TrimSpace(in.Email) == "" ||
		strings.TrimSpace(in.Subject) == "" ||
		strings.TrimSpace(in.Message) == "" {
		return OutcomeReject
	}
	return OutcomeAccept
}
