// Package notify delivers projection reports by email. Delivery is
// simulated: messages are composed in full, logged and recorded, but
// never handed to a mail server.
package notify

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/mail"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// SuccessMessage is shown to the user after a send completes.
const SuccessMessage = "Analysis sent to your email!"

// DefaultDelay matches the latency of the hosted calculator's send.
const DefaultDelay = 1500 * time.Millisecond

// ErrInvalidRecipient is returned when the email address is missing or malformed.
var ErrInvalidRecipient = errors.New("notify: invalid recipient")

// Request is what a user fills in to receive a report.
type Request struct {
	Email   string `json:"email" binding:"required,email"`
	Name    string `json:"name,omitempty"`
	Company string `json:"company,omitempty"`
}

// Validate checks the recipient address.
func (r Request) Validate() error {
	email := strings.TrimSpace(r.Email)
	if email == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidRecipient)
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fmt.Errorf("%w: %q is not an email address", ErrInvalidRecipient, r.Email)
	}
	return nil
}

// Attachment is a file carried by a Message.
type Attachment struct {
	FileName    string
	ContentType string
	Content     []byte
}

// Message is a fully composed email.
type Message struct {
	From        string
	To          string
	Subject     string
	HTML        string
	Attachments []Attachment
}

// Receipt records a completed send.
type Receipt struct {
	ID          string    `json:"id"`
	To          string    `json:"to"`
	Subject     string    `json:"subject"`
	Attachments int       `json:"attachments"`
	SentAt      time.Time `json:"sentAt"`
	Simulated   bool      `json:"simulated"`
}

// Mailer sends composed messages.
type Mailer interface {
	Send(ctx context.Context, msg Message) (Receipt, error)
}

// Simulated is a Mailer that waits, logs and records instead of sending.
type Simulated struct {
	Delay time.Duration

	mu   sync.Mutex
	sent []Receipt
	now  func() time.Time
}

// NewSimulated returns a simulated mailer with the given send latency.
func NewSimulated(delay time.Duration) *Simulated {
	return &Simulated{Delay: delay, now: time.Now}
}

// Send validates the recipient, waits out the delay and records a receipt.
// A cancelled ctx aborts the wait.
func (s *Simulated) Send(ctx context.Context, msg Message) (Receipt, error) {
	if err := (Request{Email: msg.To}).Validate(); err != nil {
		return Receipt{}, err
	}

	if s.Delay > 0 {
		timer := time.NewTimer(s.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return Receipt{}, fmt.Errorf("sending to %s: %w", msg.To, ctx.Err())
		case <-timer.C:
		}
	}

	now := time.Now
	if s.now != nil {
		now = s.now
	}
	rc := Receipt{
		ID:          uuid.NewString(),
		To:          msg.To,
		Subject:     msg.Subject,
		Attachments: len(msg.Attachments),
		SentAt:      now().UTC(),
		Simulated:   true,
	}

	s.mu.Lock()
	s.sent = append(s.sent, rc)
	s.mu.Unlock()

	log.Printf("[notify] simulated send %s to %s (%d attachments)", rc.ID, rc.To, rc.Attachments)
	return rc, nil
}

// Sent returns a copy of every receipt recorded so far.
func (s *Simulated) Sent() []Receipt {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Receipt, len(s.sent))
	copy(out, s.sent)
	return out
}
