package contact

import (
	"context"
	"errors"
	"log/slog"

	"github.com/vvsCodeDev/vvsCodeWebDev/pkg/email"
	"github.com/vvsCodeDev/vvsCodeWebDev/pkg/events"
	"github.com/vvsCodeDev/vvsCodeWebDev/pkg/logger"
)

// Dispatcher turns record-created events into notification emails. Delivery
// runs under at-least-once semantics: a returned error schedules redelivery,
// so a retried event may send a duplicate email. That trade is deliberate; a
// duplicate alert is harmless, a lost one is not.
type Dispatcher struct {
	sender  email.EmailSender
	alertTo string
	log     *slog.Logger
}

// NewDispatcher creates a Dispatcher sending alerts to alertTo.
func NewDispatcher(sender email.EmailSender, alertTo string, log *slog.Logger) *Dispatcher {
	if sender == nil {
		panic("contact: email sender is required")
	}
	if alertTo == "" {
		panic("contact: alert recipient is required")
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Dispatcher{
		sender:  sender,
		alertTo: alertTo,
		log:     log.With(logger.Component("contact.dispatcher")),
	}
}

// EventHandler returns the typed event handler to register with a consumer.
func (d *Dispatcher) EventHandler() events.Handler {
	return events.NewHandler(EventRecordCreated, d.HandleRecordCreated)
}

// HandleRecordCreated sends the notification email for one stored record.
// Honeypot-flagged records are acknowledged without sending anything; such
// events should not exist, but an older writer may still produce them.
func (d *Dispatcher) HandleRecordCreated(ctx context.Context, ev RecordCreated) error {
	if ev.Record.HoneypotHit {
		d.log.InfoContext(ctx, "skipping alert for honeypot record", logger.MessageID(ev.ID))
		return nil
	}

	msg := Compose(ev.Record)
	err := d.sender.SendEmail(ctx, email.SendEmailParams{
		SendTo:   d.alertTo,
		Subject:  msg.Subject,
		BodyText: msg.Text,
		BodyHTML: msg.HTML,
		Tag:      "contact-alert",
	})
	if err != nil {
		d.log.ErrorContext(ctx, "failed to send contact alert",
			logger.MessageID(ev.ID), logger.Error(err))
		return errors.Join(ErrFailedToSendAlert, err)
	}

	d.log.InfoContext(ctx, "contact alert sent", logger.MessageID(ev.ID))
	return nil
}
