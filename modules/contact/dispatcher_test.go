package contact_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvsCodeDev/vvsCodeWebDev/modules/contact"
	"github.com/vvsCodeDev/vvsCodeWebDev/pkg/email"
)

type capturingSender struct {
	mu   sync.Mutex
	sent []email.SendEmailParams
	err  error
}

func (s *capturingSender) SendEmail(_ context.Context, params email.SendEmailParams) error {
	if s.err != nil {
		return s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, params)
	return nil
}

func (s *capturingSender) emails() []email.SendEmailParams {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]email.SendEmailParams(nil), s.sent...)
}

func adaEvent() contact.RecordCreated {
	return contact.RecordCreated{
		ID: "msg-1",
		Record: contact.Record{
			Name:      "Ada",
			Email:     "ada@example.com",
			Subject:   "Collaboration",
			Message:   "I would like to discuss a project.",
			CreatedAt: time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC),
			Status:    contact.StatusReceived,
			Meta:      contact.Meta{UserAgent: "TestUA/1.0", Referer: "https://site.example"},
			IPHash:    "abc123",
		},
	}
}

func TestDispatcher_SendsAlert(t *testing.T) {
	t.Parallel()

	sender := &capturingSender{}
	d := contact.NewDispatcher(sender, "owner@example.com", nil)

	require.NoError(t, d.HandleRecordCreated(context.Background(), adaEvent()))

	sent := sender.emails()
	require.Len(t, sent, 1)
	assert.Equal(t, "owner@example.com", sent[0].SendTo)
	assert.Contains(t, sent[0].Subject, "Collaboration")
	assert.Contains(t, sent[0].Subject, "Ada")
	assert.Contains(t, sent[0].BodyText, "I would like to discuss a project.")
	assert.Contains(t, sent[0].BodyHTML, "ada@example.com")
	assert.Equal(t, "contact-alert", sent[0].Tag)
	assert.NoError(t, sent[0].Validate())
}

func TestDispatcher_SkipsHoneypotRecords(t *testing.T) {
	t.Parallel()

	sender := &capturingSender{}
	d := contact.NewDispatcher(sender, "owner@example.com", nil)

	ev := adaEvent()
	ev.Record.HoneypotHit = true

	require.NoError(t, d.HandleRecordCreated(context.Background(), ev))
	assert.Empty(t, sender.emails())
}

func TestDispatcher_PropagatesSendFailure(t *testing.T) {
	t.Parallel()

	sendErr := errors.New("provider unavailable")
	d := contact.NewDispatcher(&capturingSender{err: sendErr}, "owner@example.com", nil)

	err := d.HandleRecordCreated(context.Background(), adaEvent())
	require.Error(t, err)
	assert.ErrorIs(t, err, contact.ErrFailedToSendAlert)
	assert.ErrorIs(t, err, sendErr)
}

func TestDispatcher_EventHandlerName(t *testing.T) {
	t.Parallel()

	d := contact.NewDispatcher(&capturingSender{}, "owner@example.com", nil)
	assert.Equal(t, contact.EventRecordCreated, d.EventHandler().Name())
}

func TestNewDispatcher_Panics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { contact.NewDispatcher(nil, "owner@example.com", nil) })
	assert.Panics(t, func() { contact.NewDispatcher(&capturingSender{}, "", nil) })
}
