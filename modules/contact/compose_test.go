package contact_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/vvsCodeDev/vvsCodeWebDev/modules/contact"
)

func TestCompose(t *testing.T) {
	t.Parallel()

	rec := contact.Record{
		Name:      "Ada",
		Email:     "ada@example.com",
		Subject:   "Collaboration",
		Message:   "First line.\nSecond line.",
		CreatedAt: time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC),
		Status:    contact.StatusReceived,
		Meta:      contact.Meta{UserAgent: "TestUA/1.0", Referer: "https://example.com/about"},
		IPHash:    "abc123",
	}

	t.Run("subject includes form subject and sender name", func(t *testing.T) {
		t.Parallel()

		msg := contact.Compose(rec)
		assert.Contains(t, msg.Subject, "Collaboration")
		assert.Contains(t, msg.Subject, "Ada")
	})

	t.Run("text body keeps newlines verbatim", func(t *testing.T) {
		t.Parallel()

		msg := contact.Compose(rec)
		assert.Contains(t, msg.Text, "First line.\nSecond line.")
		assert.Contains(t, msg.Text, "ada@example.com")
		assert.Contains(t, msg.Text, "abc123")
		assert.Contains(t, msg.Text, "TestUA/1.0")
	})

	t.Run("html body converts newlines to br", func(t *testing.T) {
		t.Parallel()

		msg := contact.Compose(rec)
		assert.Contains(t, msg.HTML, "First line.<br>Second line.")
		assert.NotContains(t, msg.HTML, "First line.\nSecond line.")
	})

	t.Run("html body does not escape user content", func(t *testing.T) {
		t.Parallel()

		r := rec
		r.Message = `a < b & "quotes"`
		msg := contact.Compose(r)
		assert.Contains(t, msg.HTML, `a < b & "quotes"`)
	})

	t.Run("missing metadata falls back to Unknown", func(t *testing.T) {
		t.Parallel()

		r := rec
		r.Meta = contact.Meta{}
		msg := contact.Compose(r)
		assert.Contains(t, msg.Text, "User Agent: Unknown")
		assert.Contains(t, msg.Text, "Referer: Unknown")
	})

	t.Run("pure function of the record", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, contact.Compose(rec), contact.Compose(rec))
	})
}
