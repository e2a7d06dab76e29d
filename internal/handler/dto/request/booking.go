package request

import (
	"strings"
	"time"

	"amenity-booking/internal/pkg/ptr"
	"amenity-booking/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	AmenityID uuid.UUID   `json:"amenityId" binding:"required"`
	StartTime time.Time   `json:"startTime" binding:"required"`
	EndTime   time.Time   `json:"endTime" binding:"required"`
	Attendees []uuid.UUID `json:"attendees" binding:"omitempty,max=100"`
}

func (r CreateBookingRequest) ToInput() commands.CreateBookingInput {
	return commands.CreateBookingInput{
		AmenityID: r.AmenityID,
		Start:     r.StartTime,
		End:       r.EndTime,
		Attendees: r.Attendees,
	}
}

type CancelBookingRequest struct {
	Reason *string `json:"reason" binding:"omitempty,max=500"`
}

func (r CancelBookingRequest) GetReason() *string {
	if r.Reason == nil {
		return nil
	}
	return ptr.NonEmpty(strings.TrimSpace(*r.Reason))
}
