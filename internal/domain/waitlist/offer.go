package waitlist

import (
	"errors"
	"time"

	"amenity-booking/internal/domain/slot"
	"amenity-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrOfferExpired    = errs.Mark(errors.New("offer expired"), errs.ErrExpiredOffer)
	ErrOfferNotPending = errs.Mark(errors.New("offer has already been resolved"), errs.ErrConflict)
)

type OfferStatus string

const (
	OfferPending   OfferStatus = "pending"
	OfferConfirmed OfferStatus = "confirmed"
	OfferDeclined  OfferStatus = "declined"
	OfferExpired   OfferStatus = "expired"
)

func (s OfferStatus) String() string {
	return string(s)
}

func (s OfferStatus) IsValid() bool {
	switch s {
	case OfferPending, OfferConfirmed, OfferDeclined, OfferExpired:
		return true
	default:
		return false
	}
}

// Offer is keyed by the pending booking it holds.
type Offer struct {
	bookingID       uuid.UUID
	waitlistEntryID uuid.UUID
	amenityID       uuid.UUID
	window          slot.Window
	userID          uuid.UUID
	userEmail       string
	deadline        time.Time
	status          OfferStatus
	reminderSentAt  *time.Time
	createdAt       time.Time
	updatedAt       time.Time
}

func NewOffer(entry *Entry, bookingID uuid.UUID, now time.Time, ttl time.Duration) *Offer {
	return &Offer{
		bookingID:       bookingID,
		waitlistEntryID: entry.ID(),
		amenityID:       entry.AmenityID(),
		window:          entry.Window(),
		userID:          entry.UserID(),
		userEmail:       entry.UserEmail(),
		deadline:        now.Add(ttl),
		status:          OfferPending,
		createdAt:       now,
		updatedAt:       now,
	}
}

func ReconstructOffer(
	bookingID, waitlistEntryID, amenityID uuid.UUID,
	window slot.Window,
	userID uuid.UUID,
	userEmail string,
	deadline time.Time,
	status OfferStatus,
	reminderSentAt *time.Time,
	createdAt, updatedAt time.Time,
) *Offer {
	return &Offer{
		bookingID:       bookingID,
		waitlistEntryID: waitlistEntryID,
		amenityID:       amenityID,
		window:          window,
		userID:          userID,
		userEmail:       userEmail,
		deadline:        deadline,
		status:          status,
		reminderSentAt:  reminderSentAt,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

func (o *Offer) BookingID() uuid.UUID       { return o.bookingID }
func (o *Offer) WaitlistEntryID() uuid.UUID { return o.waitlistEntryID }
func (o *Offer) AmenityID() uuid.UUID       { return o.amenityID }
func (o *Offer) Window() slot.Window        { return o.window }
func (o *Offer) UserID() uuid.UUID          { return o.userID }
func (o *Offer) UserEmail() string          { return o.userEmail }
func (o *Offer) Deadline() time.Time        { return o.deadline }
func (o *Offer) Status() OfferStatus        { return o.status }
func (o *Offer) ReminderSentAt() *time.Time { return o.reminderSentAt }
func (o *Offer) CreatedAt() time.Time       { return o.createdAt }
func (o *Offer) UpdatedAt() time.Time       { return o.updatedAt }

func (o *Offer) IsPending() bool {
	return o.status == OfferPending
}

// IsOverdue is true once the deadline is reached while still pending.
func (o *Offer) IsOverdue(now time.Time) bool {
	return o.IsPending() && !now.Before(o.deadline)
}

func (o *Offer) Confirm(now time.Time) error {
	if !o.IsPending() {
		return ErrOfferNotPending
	}
	if o.IsOverdue(now) {
		return ErrOfferExpired
	}
	o.resolve(OfferConfirmed, now)
	return nil
}

func (o *Offer) Decline(now time.Time) error {
	if !o.IsPending() {
		return ErrOfferNotPending
	}
	if o.IsOverdue(now) {
		return ErrOfferExpired
	}
	o.resolve(OfferDeclined, now)
	return nil
}

func (o *Offer) Expire(now time.Time) error {
	if !o.IsPending() {
		return ErrOfferNotPending
	}
	o.resolve(OfferExpired, now)
	return nil
}

// Withdraw resolves the offer when its booking is cancelled outright.
func (o *Offer) Withdraw(now time.Time) error {
	if !o.IsPending() {
		return ErrOfferNotPending
	}
	o.resolve(OfferDeclined, now)
	return nil
}

func (o *Offer) MarkReminderSent(now time.Time) {
	o.reminderSentAt = &now
	o.updatedAt = now
}

func (o *Offer) resolve(status OfferStatus, now time.Time) {
	o.status = status
	o.updatedAt = now
}
