package shared

import (
	"context"
	"time"

	"amenity-booking/internal/domain/amenity"
	"amenity-booking/internal/domain/booking"
	"amenity-booking/internal/domain/slot"
	"amenity-booking/internal/domain/waitlist"
	"amenity-booking/internal/pkg/caldate"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: all-or-nothing read-modify-write, retried on serialization conflicts.
	// fn may run more than once and must not have side effects outside tx.
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: consistent multi-record reads; write methods fail
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Amenities() AmenityRepository
	Bookings() BookingRepository
	Waitlist() WaitlistRepository
	Offers() OfferRepository
	// LockSlot serializes enqueue, booking and promotion for one window until the tx ends.
	LockSlot(ctx context.Context, amenityID uuid.UUID, w slot.Window) error
}

// LockBooking loads a booking for modification. The row is re-read after the
// slot lock is held, so the caller sees the last committed state and every
// writer of the slot queues behind the same lock. The first read only supplies
// the lock key; amenity and window never change after creation.
func LockBooking(ctx context.Context, tx Tx, id uuid.UUID) (*booking.Booking, error) {
	b, err := tx.Bookings().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := tx.LockSlot(ctx, b.AmenityID(), b.Window()); err != nil {
		return nil, err
	}
	return tx.Bookings().FindByID(ctx, id)
}

// AmenityFields is a field-level partial update. Nil fields are not written.
type AmenityFields struct {
	Name         *string
	MaxPeople    *int
	SlotDuration *time.Duration
	WeekdayHours *amenity.OperatingHours
	WeekendHours *amenity.OperatingHours
	IsBlocked    *bool
	// BlockReason "" clears the stored reason
	BlockReason *string
	UpdatedAt   time.Time
}

type AmenityRepository interface {
	Create(ctx context.Context, a *amenity.Amenity) error
	FindByID(ctx context.Context, id uuid.UUID) (*amenity.Amenity, error)
	List(ctx context.Context, communityID *uuid.UUID) ([]*amenity.Amenity, error)
	UpdateFields(ctx context.Context, id uuid.UUID, fields AmenityFields) error
	AddBlackoutDate(ctx context.Context, id uuid.UUID, b amenity.BlackoutDate) error
	RemoveBlackoutDate(ctx context.Context, id uuid.UUID, d caldate.Date) error
}

type BookingRepository interface {
	amenity.OccupancyReader

	Create(ctx context.Context, b *booking.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	// Update writes the mutable lifecycle fields.
	Update(ctx context.Context, b *booking.Booking) error
	// FindActiveOverlap returns the slot-holding booking overlapping w, or nil.
	FindActiveOverlap(ctx context.Context, amenityID uuid.UUID, w slot.Window) (*booking.Booking, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*booking.Booking, error)
	ListByAmenityRange(ctx context.Context, amenityID uuid.UUID, from, to time.Time) ([]*booking.Booking, error)
	// ListReminderDue returns confirmed bookings starting in (from, to] with no reminder sent yet.
	ListReminderDue(ctx context.Context, from, to time.Time) ([]*booking.Booking, error)
}

type WaitlistRepository interface {
	// Enqueue appends e and assigns its sequence number.
	Enqueue(ctx context.Context, e *waitlist.Entry) error
	FindByID(ctx context.Context, id uuid.UUID) (*waitlist.Entry, error)
	// Head returns the earliest entry for the exact window, or nil.
	Head(ctx context.Context, amenityID uuid.UUID, w slot.Window) (*waitlist.Entry, error)
	Count(ctx context.Context, amenityID uuid.UUID, w slot.Window) (int, error)
	// Position is the 1-based queue position of e.
	Position(ctx context.Context, e *waitlist.Entry) (int, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*waitlist.Entry, error)
	Remove(ctx context.Context, id uuid.UUID) error
	RemoveSlot(ctx context.Context, amenityID uuid.UUID, w slot.Window) (int, error)
	// RemoveStartedBefore drops entries whose slot began at or before t.
	RemoveStartedBefore(ctx context.Context, t time.Time) (int, error)
}

type OfferRepository interface {
	Create(ctx context.Context, o *waitlist.Offer) error
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*waitlist.Offer, error)
	Update(ctx context.Context, o *waitlist.Offer) error
	// ListOverdue returns pending offers whose deadline is at or before now.
	ListOverdue(ctx context.Context, now time.Time) ([]*waitlist.Offer, error)
	// ListReminderDue returns pending offers with deadline in (now, before] and no reminder sent yet.
	ListReminderDue(ctx context.Context, now, before time.Time) ([]*waitlist.Offer, error)
}
