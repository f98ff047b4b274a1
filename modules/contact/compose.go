package contact

import (
	"fmt"
	"strings"
	"time"
)

// Message is a rendered notification email.
type Message struct {
	Subject string
	Text    string
	HTML    string
}

// Compose renders the notification email for a stored record. It is a pure
// function of the record. User-provided values are inserted verbatim; the
// only transformation is newline to <br> in the HTML message body, so that
// multi-paragraph messages keep their shape in HTML clients.
func Compose(rec Record) Message {
	ua := orUnknown(rec.Meta.UserAgent)
	referer := orUnknown(rec.Meta.Referer)
	sentAt := rec.CreatedAt.Format(time.RFC3339)

	text := fmt.Sprintf(`New contact message received.

Name: %s
Email: %s
Subject: %s

Message:
%s

---
Sent at: %s
User Agent: %s
Referer: %s
IP Hash: %s
`, rec.Name, rec.Email, rec.Subject, rec.Message, sentAt, ua, referer, rec.IPHash)

	htmlMessage := strings.ReplaceAll(rec.Message, "\n", "<br>")
	html := fmt.Sprintf(`<h2>New contact message</h2>
<p><strong>Name:</strong> %s</p>
<p><strong>Email:</strong> %s</p>
<p><strong>Subject:</strong> %s</p>
<p><strong>Message:</strong><br>%s</p>
<hr>
<p><small>Sent at: %s<br>User Agent: %s<br>Referer: %s<br>IP Hash: %s</small></p>
`, rec.Name, rec.Email, rec.Subject, htmlMessage, sentAt, ua, referer, rec.IPHash)

	return Message{
		Subject: fmt.Sprintf("📨 Contact: %s — %s", rec.Subject, rec.Name),
		Text:    text,
		HTML:    html,
	}
}

func orUnknown(v string) string {
	if v == "" {
		return Unknown
	}
	return v
}
