package queries

import (
	"time"

	"amenity-booking/internal/domain/amenity"
	"amenity-booking/internal/domain/booking"
	"amenity-booking/internal/domain/waitlist"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type BookingView struct {
	ID                 uuid.UUID
	AmenityID          uuid.UUID
	AmenityName        string
	CommunityID        uuid.UUID
	UserID             uuid.UUID
	UserEmail          string
	StartTime          time.Time
	EndTime            time.Time
	Attendees          []uuid.UUID
	Status             string
	DisplayStatus      string
	AccessCode         *string
	CheckedInAt        *time.Time
	CancelledBy        *uuid.UUID
	CancellationReason *string
	OfferDeadline      *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// NewBookingView derives the display status at now. offer may be nil.
func NewBookingView(b *booking.Booking, amenityName string, offer *waitlist.Offer, now time.Time) *BookingView {
	v := &BookingView{
		ID:                 b.ID(),
		AmenityID:          b.AmenityID(),
		AmenityName:        amenityName,
		CommunityID:        b.CommunityID(),
		UserID:             b.UserID(),
		UserEmail:          b.UserEmail(),
		StartTime:          b.StartTime(),
		EndTime:            b.EndTime(),
		Attendees:          b.Attendees(),
		Status:             b.Status().String(),
		DisplayStatus:      b.DisplayStatus(now).String(),
		AccessCode:         b.AccessCode(),
		CheckedInAt:        b.CheckedInAt(),
		CancelledBy:        b.CancelledBy(),
		CancellationReason: b.CancellationReason(),
		CreatedAt:          b.CreatedAt(),
		UpdatedAt:          b.UpdatedAt(),
	}
	if offer != nil && offer.IsPending() {
		deadline := offer.Deadline()
		v.OfferDeadline = &deadline
	}
	return v
}

type WaitlistEntryView struct {
	ID          uuid.UUID
	AmenityID   uuid.UUID
	AmenityName string
	StartTime   time.Time
	EndTime     time.Time
	Position    int
	JoinedAt    time.Time
}

type BlackoutDateView struct {
	Date    string
	Reason  string
	AddedAt time.Time
	AddedBy uuid.UUID
}

type AmenityView struct {
	ID                  uuid.UUID
	CommunityID         uuid.UUID
	Name                string
	MaxPeople           int
	SlotDurationMinutes int
	WeekdayStart        string
	WeekdayEnd          string
	WeekendStart        string
	WeekendEnd          string
	IsBlocked           bool
	BlockReason         *string
	BlackoutDates       []BlackoutDateView
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func NewAmenityView(a *amenity.Amenity) *AmenityView {
	v := &AmenityView{
		ID:                  a.ID(),
		CommunityID:         a.CommunityID(),
		Name:                a.Name(),
		MaxPeople:           a.MaxPeople(),
		SlotDurationMinutes: int(a.SlotDuration() / time.Minute),
		WeekdayStart:        a.WeekdayHours().Start().String(),
		WeekdayEnd:          a.WeekdayHours().End().String(),
		WeekendStart:        a.WeekendHours().Start().String(),
		WeekendEnd:          a.WeekendHours().End().String(),
		IsBlocked:           a.IsBlocked(),
		BlockReason:         a.BlockReason(),
		BlackoutDates:       []BlackoutDateView{},
		CreatedAt:           a.CreatedAt(),
		UpdatedAt:           a.UpdatedAt(),
	}
	for _, b := range a.BlackoutDates() {
		v.BlackoutDates = append(v.BlackoutDates, BlackoutDateView{
			Date:    b.Date.String(),
			Reason:  b.Reason,
			AddedAt: b.AddedAt,
			AddedBy: b.AddedBy,
		})
	}
	return v
}

type SlotView struct {
	StartTime      time.Time
	EndTime        time.Time
	Available      bool
	Kind           string
	Reason         string
	WaitlistLength int
}

type SlotsView struct {
	AmenityID uuid.UUID
	Date      string
	Slots     []SlotView
}
