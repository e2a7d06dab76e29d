package booking

import (
	"errors"
	"strings"
	"time"

	"amenity-booking/internal/domain/slot"
	"amenity-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrTooManyAttendees     = errs.Mark(errors.New("attendees exceed the amenity's max people"), errs.ErrValidation)
	ErrDuplicateAttendee    = errs.Mark(errors.New("attendee listed more than once"), errs.ErrValidation)
	ErrInvalidTransition    = errs.Mark(errors.New("invalid booking status transition"), errs.ErrConflict)
	ErrOutsideCheckInWindow = errs.Mark(errors.New("check-in is only possible around the booked time"), errs.ErrConflict)
	ErrStillInProgress      = errs.Mark(errors.New("booking is still upcoming or active"), errs.ErrConflict)
)

type Booking struct {
	id                 uuid.UUID
	amenityID          uuid.UUID
	communityID        uuid.UUID
	userID             uuid.UUID
	userEmail          string
	window             slot.Window
	attendees          []uuid.UUID
	status             Status
	accessCode         *string
	checkedInAt        *time.Time
	cancelledBy        *uuid.UUID
	cancellationReason *string
	reminderSentAt     *time.Time
	createdAt          time.Time
	updatedAt          time.Time
}

type NewBookingParams struct {
	AmenityID   uuid.UUID
	CommunityID uuid.UUID
	UserID      uuid.UUID
	UserEmail   string
	Window      slot.Window
	Attendees   []uuid.UUID
	MaxPeople   int
}

// NewConfirmedBooking is a direct booking against a free slot.
func NewConfirmedBooking(p NewBookingParams, accessCode string, now time.Time) (*Booking, error) {
	b, err := newBooking(p, StatusConfirmed, now)
	if err != nil {
		return nil, err
	}
	b.accessCode = &accessCode
	return b, nil
}

// NewPendingBooking holds a vacated slot for a promoted waitlist user.
func NewPendingBooking(p NewBookingParams, now time.Time) (*Booking, error) {
	p.Attendees = []uuid.UUID{p.UserID}
	return newBooking(p, StatusPendingConfirmation, now)
}

func newBooking(p NewBookingParams, status Status, now time.Time) (*Booking, error) {
	attendees, err := normalizeAttendees(p.UserID, p.Attendees, p.MaxPeople)
	if err != nil {
		return nil, err
	}
	return &Booking{
		id:          uuid.New(),
		amenityID:   p.AmenityID,
		communityID: p.CommunityID,
		userID:      p.UserID,
		userEmail:   strings.TrimSpace(p.UserEmail),
		window:      p.Window,
		attendees:   attendees,
		status:      status,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// ValidateAttendees checks an attendee list before any slot is reserved.
func ValidateAttendees(owner uuid.UUID, attendees []uuid.UUID, maxPeople int) error {
	_, err := normalizeAttendees(owner, attendees, maxPeople)
	return err
}

func normalizeAttendees(owner uuid.UUID, attendees []uuid.UUID, maxPeople int) ([]uuid.UUID, error) {
	if len(attendees) == 0 {
		attendees = []uuid.UUID{owner}
	}
	if maxPeople > 0 && len(attendees) > maxPeople {
		return nil, ErrTooManyAttendees
	}
	seen := make(map[uuid.UUID]struct{}, len(attendees))
	for _, a := range attendees {
		if _, dup := seen[a]; dup {
			return nil, ErrDuplicateAttendee
		}
		seen[a] = struct{}{}
	}
	return append([]uuid.UUID(nil), attendees...), nil
}

func ReconstructBooking(
	id, amenityID, communityID, userID uuid.UUID,
	userEmail string,
	window slot.Window,
	attendees []uuid.UUID,
	status Status,
	accessCode *string,
	checkedInAt *time.Time,
	cancelledBy *uuid.UUID,
	cancellationReason *string,
	reminderSentAt *time.Time,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:                 id,
		amenityID:          amenityID,
		communityID:        communityID,
		userID:             userID,
		userEmail:          userEmail,
		window:             window,
		attendees:          attendees,
		status:             status,
		accessCode:         accessCode,
		checkedInAt:        checkedInAt,
		cancelledBy:        cancelledBy,
		cancellationReason: cancellationReason,
		reminderSentAt:     reminderSentAt,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
	}
}

func (b *Booking) ID() uuid.UUID               { return b.id }
func (b *Booking) AmenityID() uuid.UUID        { return b.amenityID }
func (b *Booking) CommunityID() uuid.UUID      { return b.communityID }
func (b *Booking) UserID() uuid.UUID           { return b.userID }
func (b *Booking) UserEmail() string           { return b.userEmail }
func (b *Booking) Window() slot.Window         { return b.window }
func (b *Booking) StartTime() time.Time        { return b.window.Start() }
func (b *Booking) EndTime() time.Time          { return b.window.End() }
func (b *Booking) Attendees() []uuid.UUID      { return append([]uuid.UUID(nil), b.attendees...) }
func (b *Booking) Status() Status              { return b.status }
func (b *Booking) AccessCode() *string         { return b.accessCode }
func (b *Booking) CheckedInAt() *time.Time     { return b.checkedInAt }
func (b *Booking) CancelledBy() *uuid.UUID     { return b.cancelledBy }
func (b *Booking) CancellationReason() *string { return b.cancellationReason }
func (b *Booking) ReminderSentAt() *time.Time  { return b.reminderSentAt }
func (b *Booking) CreatedAt() time.Time        { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time        { return b.updatedAt }

func (b *Booking) DisplayStatus(now time.Time) DisplayStatus {
	return DeriveStatus(b.status, b.window.Start(), b.window.End(), now)
}

func (b *Booking) IsCheckedIn() bool {
	return b.checkedInAt != nil
}

// Cancel frees the slot. Only slot-holding bookings can be cancelled.
func (b *Booking) Cancel(by uuid.UUID, reason *string, now time.Time) error {
	if !b.status.HoldsSlot() {
		return ErrInvalidTransition
	}
	b.status = StatusCancelled
	b.cancelledBy = &by
	if reason != nil {
		if r := strings.TrimSpace(*reason); r != "" {
			b.cancellationReason = &r
		}
	}
	b.updatedAt = now
	return nil
}

// Confirm accepts a promotion offer and issues the access credential.
func (b *Booking) Confirm(accessCode string, now time.Time) error {
	if b.status != StatusPendingConfirmation {
		return ErrInvalidTransition
	}
	b.status = StatusConfirmed
	b.accessCode = &accessCode
	b.updatedAt = now
	return nil
}

// ExpireOffer records that the confirmation deadline passed unanswered.
func (b *Booking) ExpireOffer(now time.Time) error {
	if b.status != StatusPendingConfirmation {
		return ErrInvalidTransition
	}
	b.status = StatusExpired
	b.updatedAt = now
	return nil
}

// CheckIn marks attendance inside [start-grace, end+grace]. Repeating it is a no-op.
func (b *Booking) CheckIn(now time.Time, grace time.Duration) error {
	if b.status != StatusConfirmed {
		return ErrInvalidTransition
	}
	if now.Before(b.window.Start().Add(-grace)) || now.After(b.window.End().Add(grace)) {
		return ErrOutsideCheckInWindow
	}
	if b.checkedInAt != nil {
		return nil
	}
	b.checkedInAt = &now
	b.updatedAt = now
	return nil
}

// Complete closes a confirmed booking once its window has started. Before
// that the slot is still owed to the waitlist, so the owner has to cancel.
func (b *Booking) Complete(now time.Time) error {
	switch b.status {
	case StatusCompleted:
		return nil
	case StatusConfirmed:
		if b.DisplayStatus(now) == DisplayUpcoming {
			return ErrStillInProgress
		}
		b.status = StatusCompleted
		b.updatedAt = now
		return nil
	default:
		return ErrInvalidTransition
	}
}

// Archive removes the booking from the owner's list. It never frees a slot,
// so a confirmed booking must already be in the past.
func (b *Booking) Archive(now time.Time) error {
	switch {
	case b.status == StatusArchived:
		return nil
	case b.status.IsTerminal():
	case b.status == StatusConfirmed && b.DisplayStatus(now) == DisplayExpired:
	case b.status.HoldsSlot():
		return ErrStillInProgress
	default:
		return ErrInvalidTransition
	}
	b.status = StatusArchived
	b.updatedAt = now
	return nil
}

func (b *Booking) MarkReminderSent(now time.Time) {
	b.reminderSentAt = &now
	b.updatedAt = now
}
