package email

import (
	"context"
	"errors"
	"time"
)

// ErrNoRecipients is returned when a message has nobody to go to.
var ErrNoRecipients = errors.New("email has no recipients")

// Message is an outgoing email. Text is the plain-text alternative to HTML.
type Message struct {
	To      []string
	Subject string
	HTML    string
	Text    string
}

// Receipt identifies an accepted message.
type Receipt struct {
	MessageID string
	SentAt    time.Time
}

// Sender delivers email through an external provider.
type Sender interface {
	Send(ctx context.Context, msg Message) (Receipt, error)
}

// Validate checks a message before it is handed to a provider.
func (m Message) Validate() error {
	if len(m.To) == 0 {
		return ErrNoRecipients
	}
	if m.Subject == "" || (m.HTML == "" && m.Text == "") {
		return errors.New("email needs a subject and a body")
	}
	return nil
}
