//go:build unit || e2e

package builder

import (
	"time"

	"amenity-booking/internal/domain/booking"
	"amenity-booking/internal/domain/slot"
	reqdto "amenity-booking/internal/handler/dto/request"
	"amenity-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	AmenityID   uuid.UUID
	AmenityName string
	CommunityID uuid.UUID
	UserID      uuid.UUID
	UserEmail   string
	Start       time.Time
	End         time.Time
	Attendees   []uuid.UUID
	MaxPeople   int
	AccessCode  string
	CreatedAt   time.Time
}

// NewBookingBuilder books Tuesday 2030-01-08 10:00-12:00 UTC.
func NewBookingBuilder() *BookingBuilder {
	start := time.Date(2030, 1, 8, 10, 0, 0, 0, time.UTC)
	return &BookingBuilder{
		AmenityID:   uuid.New(),
		AmenityName: "Tennis Court",
		CommunityID: uuid.New(),
		UserID:      uuid.New(),
		UserEmail:   "resident@example.com",
		Start:       start,
		End:         start.Add(2 * time.Hour),
		MaxPeople:   4,
		AccessCode:  "ABCD2345",
		CreatedAt:   start.Add(-72 * time.Hour),
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) params() booking.NewBookingParams {
	return booking.NewBookingParams{
		AmenityID:   b.AmenityID,
		CommunityID: b.CommunityID,
		UserID:      b.UserID,
		UserEmail:   b.UserEmail,
		Window:      slot.MustWindow(b.Start, b.End),
		Attendees:   b.Attendees,
		MaxPeople:   b.MaxPeople,
	}
}

// Build methods
func (b *BookingBuilder) BuildConfirmed() (*booking.Booking, error) {
	return booking.NewConfirmedBooking(b.params(), b.AccessCode, b.CreatedAt)
}

func (b *BookingBuilder) BuildPending() (*booking.Booking, error) {
	return booking.NewPendingBooking(b.params(), b.CreatedAt)
}

func (b *BookingBuilder) MustBuildConfirmed() *booking.Booking {
	bk, err := b.BuildConfirmed()
	if err != nil {
		panic(err)
	}
	return bk
}

func (b *BookingBuilder) BuildView(now time.Time) *queries.BookingView {
	return queries.NewBookingView(b.MustBuildConfirmed(), b.AmenityName, nil, now)
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		AmenityID: b.AmenityID,
		StartTime: b.Start,
		EndTime:   b.End,
		Attendees: b.Attendees,
	}
}
