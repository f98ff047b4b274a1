package contact_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvsCodeDev/vvsCodeWebDev/modules/contact"
	"github.com/vvsCodeDev/vvsCodeWebDev/pkg/events"
)

// Exercises the full intake-to-alert path: HTTP submission, persisted
// record, published event, and the dispatcher consuming the stored payload.
func TestPipeline_SubmissionToAlert(t *testing.T) {
	t.Parallel()

	eventStore := events.NewMemoryStorage()
	pub, err := events.NewPublisher(eventStore)
	require.NoError(t, err)

	store := contact.NewMemoryStore()
	h := contact.NewHandler(store, contact.NewEventPublisher(pub), testConfig(), nil)

	r := postJSON(`{"name":"Ada","email":"ada@example.com","subject":"Collaboration","message":"Line one.\nLine two."}`)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	require.Equal(t, http.StatusOK, w.Code)

	stored := eventStore.Events()
	require.Len(t, stored, 1)
	assert.Equal(t, contact.EventRecordCreated, stored[0].Name)
	assert.Equal(t, events.EventStatusPending, stored[0].Status)

	sender := &capturingSender{}
	d := contact.NewDispatcher(sender, "owner@example.com", nil)

	require.NoError(t, d.EventHandler().Handle(context.Background(), stored[0].Payload))

	sent := sender.emails()
	require.Len(t, sent, 1)
	assert.Equal(t, "owner@example.com", sent[0].SendTo)
	assert.Contains(t, sent[0].BodyText, "Line one.\nLine two.")
	assert.Contains(t, sent[0].BodyHTML, "Line one.<br>Line two.")
}
