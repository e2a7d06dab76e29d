package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"amenity-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

type Template string

const (
	TemplateBookingConfirmation  Template = "booking_confirmation"
	TemplateBookingReminder      Template = "booking_reminder"
	TemplateBookingCancellation  Template = "booking_cancellation"
	TemplateWaitlistJoined       Template = "waitlist_joined"
	TemplateWaitlistPromoted     Template = "waitlist_promoted"
	TemplateConfirmationReminder Template = "confirmation_reminder"
)

func (t Template) String() string {
	return string(t)
}

var (
	// ErrPermanentDelivery is not retried (bad address, rejected payload).
	ErrPermanentDelivery = errors.New("permanent notification delivery failure")
	ErrTransientDelivery = errors.New("transient notification delivery failure")
)

type Recipient struct {
	UserID uuid.UUID
	Email  string
}

type SendResult struct {
	Success   bool
	MessageID string
	Error     error
}

// Sink delivers one templated message. Failures are reported in the result,
// never as a rollback of the state change that produced the message.
type Sink interface {
	Send(ctx context.Context, to Recipient, tmpl Template, data map[string]any) SendResult
}

type Message struct {
	To       Recipient
	Template Template
	Data     map[string]any
}

// Batch collects messages staged inside a transaction. Reset it at the start
// of every attempt so a retried transaction does not duplicate messages.
type Batch struct {
	messages []Message
}

func NewBatch() *Batch {
	return &Batch{}
}

func (b *Batch) Add(to Recipient, tmpl Template, data map[string]any) {
	b.messages = append(b.messages, Message{To: to, Template: tmpl, Data: data})
}

func (b *Batch) Reset() {
	b.messages = b.messages[:0]
}

func (b *Batch) Messages() []Message {
	return append([]Message(nil), b.messages...)
}

func (b *Batch) Len() int {
	return len(b.messages)
}

// Flush sends every staged message and returns one warning per failure.
// It keeps going after a failure.
func Flush(ctx context.Context, sink Sink, logger *slog.Logger, batch *Batch) []string {
	var warnings []string
	for _, m := range batch.Messages() {
		res := sink.Send(ctx, m.To, m.Template, m.Data)
		if res.Success {
			continue
		}
		err := res.Error
		if err == nil {
			err = ErrTransientDelivery
		}
		logger.WarnContext(ctx, "notification delivery failed",
			"template", m.Template,
			"user_id", m.To.UserID,
			"error", err.Error(),
			"permanent", errs.Is(err, ErrPermanentDelivery))
		warnings = append(warnings, fmt.Sprintf("%s notification to %s failed: %v", m.Template, m.To.Email, err))
	}
	return warnings
}
