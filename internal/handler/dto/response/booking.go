package response

import (
	"time"

	"amenity-booking/internal/domain/booking"
	"amenity-booking/internal/pkg/errs"
	"amenity-booking/internal/usecase/commands"
	"amenity-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type BookingResponse struct {
	ID                 uuid.UUID   `json:"id"`
	AmenityID          uuid.UUID   `json:"amenityId"`
	AmenityName        string      `json:"amenityName,omitempty"`
	CommunityID        uuid.UUID   `json:"communityId"`
	UserID             uuid.UUID   `json:"userId"`
	UserEmail          string      `json:"userEmail"`
	StartTime          time.Time   `json:"startTime"`
	EndTime            time.Time   `json:"endTime"`
	Attendees          []uuid.UUID `json:"attendees"`
	Status             string      `json:"status"`
	DisplayStatus      string      `json:"displayStatus"`
	AccessCode         *string     `json:"accessCode,omitempty"`
	CheckedInAt        *time.Time  `json:"checkedInAt,omitempty"`
	CancelledBy        *uuid.UUID  `json:"cancelledBy,omitempty"`
	CancellationReason *string     `json:"cancellationReason,omitempty"`
	OfferDeadline      *time.Time  `json:"offerDeadline,omitempty"`
	CreatedAt          time.Time   `json:"createdAt"`
	UpdatedAt          time.Time   `json:"updatedAt"`
}

func FromBookingView(v *queries.BookingView) (*BookingResponse, error) {
	var res BookingResponse
	if err := copier.Copy(&res, v); err != nil {
		return nil, errs.Wrap(err, "failed to map booking response")
	}
	return &res, nil
}

func FromBookingViews(vs []*queries.BookingView) ([]*BookingResponse, error) {
	res := make([]*BookingResponse, len(vs))
	for i, v := range vs {
		r, err := FromBookingView(v)
		if err != nil {
			return nil, err
		}
		res[i] = r
	}
	return res, nil
}

func fromBooking(b *booking.Booking, now time.Time) (*BookingResponse, error) {
	return FromBookingView(queries.NewBookingView(b, "", nil, now))
}

type WaitlistedResponse struct {
	EntryID   uuid.UUID `json:"entryId"`
	AmenityID uuid.UUID `json:"amenityId"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Position  int       `json:"position"`
}

type CreateBookingResponse struct {
	Status   string              `json:"status"`
	Booking  *BookingResponse    `json:"booking,omitempty"`
	Waitlist *WaitlistedResponse `json:"waitlist,omitempty"`
	Warnings []string            `json:"warnings,omitempty"`
}

func FromCreateBookingResult(r *commands.CreateBookingResult, now time.Time) (*CreateBookingResponse, error) {
	res := &CreateBookingResponse{
		Status:   string(r.Status),
		Warnings: r.Warnings,
	}
	if r.Booking != nil {
		b, err := fromBooking(r.Booking, now)
		if err != nil {
			return nil, err
		}
		res.Booking = b
	}
	if r.Entry != nil {
		res.Waitlist = &WaitlistedResponse{
			EntryID:   r.Entry.ID(),
			AmenityID: r.Entry.AmenityID(),
			StartTime: r.Entry.Window().Start(),
			EndTime:   r.Entry.Window().End(),
			Position:  r.Position,
		}
	}
	return res, nil
}

type RecipientResponse struct {
	UserID uuid.UUID `json:"userId"`
	Email  string    `json:"email"`
}

type CancelBookingResponse struct {
	Success          bool               `json:"success"`
	WaitlistPromoted bool               `json:"waitlistPromoted"`
	PromotedUser     *RecipientResponse `json:"promotedUser,omitempty"`
	Booking          *BookingResponse   `json:"booking"`
	Warnings         []string           `json:"warnings,omitempty"`
}

func FromCancelBookingResult(r *commands.CancelBookingResult, now time.Time) (*CancelBookingResponse, error) {
	b, err := fromBooking(r.Booking, now)
	if err != nil {
		return nil, err
	}
	res := &CancelBookingResponse{
		Success:          true,
		WaitlistPromoted: r.WaitlistPromoted,
		Booking:          b,
		Warnings:         r.Warnings,
	}
	if r.PromotedUser != nil {
		res.PromotedUser = &RecipientResponse{UserID: r.PromotedUser.UserID, Email: r.PromotedUser.Email}
	}
	return res, nil
}

type OfferResponse struct {
	Booking  *BookingResponse `json:"booking,omitempty"`
	Warnings []string         `json:"warnings,omitempty"`
}

func FromOfferResult(r *commands.OfferResult, now time.Time) (*OfferResponse, error) {
	if r == nil {
		return &OfferResponse{}, nil
	}
	res := &OfferResponse{Warnings: r.Warnings}
	if r.Booking != nil {
		b, err := fromBooking(r.Booking, now)
		if err != nil {
			return nil, err
		}
		res.Booking = b
	}
	return res, nil
}

type WaitlistEntryResponse struct {
	ID          uuid.UUID `json:"id"`
	AmenityID   uuid.UUID `json:"amenityId"`
	AmenityName string    `json:"amenityName"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
	Position    int       `json:"position"`
	JoinedAt    time.Time `json:"joinedAt"`
}

func FromWaitlistEntryViews(vs []*queries.WaitlistEntryView) ([]*WaitlistEntryResponse, error) {
	res := make([]*WaitlistEntryResponse, 0, len(vs))
	if err := copier.Copy(&res, vs); err != nil {
		return nil, errs.Wrap(err, "failed to map waitlist response")
	}
	return res, nil
}
