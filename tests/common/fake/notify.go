//go:build unit || e2e

package fake

import (
	"context"
	"fmt"
	"sync"
	"time"

	"amenity-booking/internal/usecase/notify"

	"github.com/google/uuid"
)

type SentMessage struct {
	To       notify.Recipient
	Template notify.Template
	Data     map[string]any
}

// Sink records every message. Templates listed in FailFor report a failure.
type Sink struct {
	mu      sync.Mutex
	sent    []SentMessage
	FailFor map[notify.Template]error
}

func NewSink() *Sink {
	return &Sink{FailFor: map[notify.Template]error{}}
}

func (s *Sink) Send(_ context.Context, to notify.Recipient, tmpl notify.Template, data map[string]any) notify.SendResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err, ok := s.FailFor[tmpl]; ok {
		return notify.SendResult{Error: err}
	}
	s.sent = append(s.sent, SentMessage{To: to, Template: tmpl, Data: data})
	return notify.SendResult{Success: true, MessageID: uuid.NewString()}
}

func (s *Sink) Sent() []SentMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]SentMessage(nil), s.sent...)
}

// ByTemplate returns the messages of one template in send order.
func (s *Sink) ByTemplate(tmpl notify.Template) []SentMessage {
	var out []SentMessage
	for _, m := range s.Sent() {
		if m.Template == tmpl {
			out = append(out, m)
		}
	}
	return out
}

func (s *Sink) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = nil
}

// Links issues predictable confirmation URLs.
type Links struct{}

func (Links) OfferLinks(bookingID, userID uuid.UUID, deadline time.Time) (string, string, error) {
	base := fmt.Sprintf("https://example.test/bookings/confirm/%s?user=%s&until=%d", bookingID, userID, deadline.Unix())
	return base + "&action=confirm", base + "&action=decline", nil
}
