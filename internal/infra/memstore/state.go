package memstore

import (
	"maps"
	"time"

	"amenity-booking/internal/domain/amenity"
	"amenity-booking/internal/domain/booking"
	"amenity-booking/internal/domain/slot"
	"amenity-booking/internal/domain/waitlist"

	"github.com/google/uuid"
)

type state struct {
	amenities map[uuid.UUID]amenityRecord
	bookings  map[uuid.UUID]bookingRecord
	entries   map[uuid.UUID]entryRecord
	offers    map[uuid.UUID]offerRecord
	seq       int64
}

func newState() *state {
	return &state{
		amenities: map[uuid.UUID]amenityRecord{},
		bookings:  map[uuid.UUID]bookingRecord{},
		entries:   map[uuid.UUID]entryRecord{},
		offers:    map[uuid.UUID]offerRecord{},
	}
}

// clone is shallow per record; records are values and never mutated in place.
func (s *state) clone() *state {
	return &state{
		amenities: maps.Clone(s.amenities),
		bookings:  maps.Clone(s.bookings),
		entries:   maps.Clone(s.entries),
		offers:    maps.Clone(s.offers),
		seq:       s.seq,
	}
}

type amenityRecord struct {
	id           uuid.UUID
	communityID  uuid.UUID
	name         string
	maxPeople    int
	slotDuration time.Duration
	weekdayHours amenity.OperatingHours
	weekendHours amenity.OperatingHours
	isBlocked    bool
	blockReason  *string
	blackouts    []amenity.BlackoutDate
	createdAt    time.Time
	updatedAt    time.Time
}

func amenityToRecord(a *amenity.Amenity) amenityRecord {
	return amenityRecord{
		id:           a.ID(),
		communityID:  a.CommunityID(),
		name:         a.Name(),
		maxPeople:    a.MaxPeople(),
		slotDuration: a.SlotDuration(),
		weekdayHours: a.WeekdayHours(),
		weekendHours: a.WeekendHours(),
		isBlocked:    a.IsBlocked(),
		blockReason:  copyPtr(a.BlockReason()),
		blackouts:    a.BlackoutDates(),
		createdAt:    a.CreatedAt(),
		updatedAt:    a.UpdatedAt(),
	}
}

func (r amenityRecord) toDomain() *amenity.Amenity {
	return amenity.ReconstructAmenity(
		r.id, r.communityID, r.name, r.maxPeople, r.slotDuration,
		r.weekdayHours, r.weekendHours, r.isBlocked, copyPtr(r.blockReason),
		append([]amenity.BlackoutDate(nil), r.blackouts...),
		r.createdAt, r.updatedAt,
	)
}

type bookingRecord struct {
	id                 uuid.UUID
	amenityID          uuid.UUID
	communityID        uuid.UUID
	userID             uuid.UUID
	userEmail          string
	window             slot.Window
	attendees          []uuid.UUID
	status             booking.Status
	accessCode         *string
	checkedInAt        *time.Time
	cancelledBy        *uuid.UUID
	cancellationReason *string
	reminderSentAt     *time.Time
	createdAt          time.Time
	updatedAt          time.Time
}

func bookingToRecord(b *booking.Booking) bookingRecord {
	return bookingRecord{
		id:                 b.ID(),
		amenityID:          b.AmenityID(),
		communityID:        b.CommunityID(),
		userID:             b.UserID(),
		userEmail:          b.UserEmail(),
		window:             b.Window(),
		attendees:          b.Attendees(),
		status:             b.Status(),
		accessCode:         copyPtr(b.AccessCode()),
		checkedInAt:        copyPtr(b.CheckedInAt()),
		cancelledBy:        copyPtr(b.CancelledBy()),
		cancellationReason: copyPtr(b.CancellationReason()),
		reminderSentAt:     copyPtr(b.ReminderSentAt()),
		createdAt:          b.CreatedAt(),
		updatedAt:          b.UpdatedAt(),
	}
}

func (r bookingRecord) toDomain() *booking.Booking {
	return booking.ReconstructBooking(
		r.id, r.amenityID, r.communityID, r.userID, r.userEmail, r.window,
		append([]uuid.UUID(nil), r.attendees...), r.status,
		copyPtr(r.accessCode), copyPtr(r.checkedInAt), copyPtr(r.cancelledBy),
		copyPtr(r.cancellationReason), copyPtr(r.reminderSentAt),
		r.createdAt, r.updatedAt,
	)
}

type entryRecord struct {
	id        uuid.UUID
	amenityID uuid.UUID
	window    slot.Window
	userID    uuid.UUID
	userEmail string
	joinedAt  time.Time
	seq       int64
}

func (r entryRecord) toDomain() *waitlist.Entry {
	return waitlist.ReconstructEntry(r.id, r.amenityID, r.window, r.userID, r.userEmail, r.joinedAt, r.seq)
}

func (r entryRecord) sameSlot(amenityID uuid.UUID, w slot.Window) bool {
	return r.amenityID == amenityID && r.window.Equal(w)
}

type offerRecord struct {
	bookingID       uuid.UUID
	waitlistEntryID uuid.UUID
	amenityID       uuid.UUID
	window          slot.Window
	userID          uuid.UUID
	userEmail       string
	deadline        time.Time
	status          waitlist.OfferStatus
	reminderSentAt  *time.Time
	createdAt       time.Time
	updatedAt       time.Time
}

func offerToRecord(o *waitlist.Offer) offerRecord {
	return offerRecord{
		bookingID:       o.BookingID(),
		waitlistEntryID: o.WaitlistEntryID(),
		amenityID:       o.AmenityID(),
		window:          o.Window(),
		userID:          o.UserID(),
		userEmail:       o.UserEmail(),
		deadline:        o.Deadline(),
		status:          o.Status(),
		reminderSentAt:  copyPtr(o.ReminderSentAt()),
		createdAt:       o.CreatedAt(),
		updatedAt:       o.UpdatedAt(),
	}
}

func (r offerRecord) toDomain() *waitlist.Offer {
	return waitlist.ReconstructOffer(
		r.bookingID, r.waitlistEntryID, r.amenityID, r.window, r.userID, r.userEmail,
		r.deadline, r.status, copyPtr(r.reminderSentAt), r.createdAt, r.updatedAt,
	)
}

func copyPtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
