package request

import (
	"encoding/json"

	"amenity-booking/internal/usecase/commands"

	"github.com/google/uuid"
)

type HoursRequest struct {
	Start string `json:"start" binding:"required"`
	End   string `json:"end" binding:"required"`
}

func (h HoursRequest) toInput() commands.HoursInput {
	return commands.HoursInput{Start: h.Start, End: h.End}
}

type CreateAmenityRequest struct {
	CommunityID         uuid.UUID    `json:"communityId"`
	Name                string       `json:"name" binding:"required,max=100"`
	MaxPeople           int          `json:"maxPeople" binding:"required,min=1"`
	SlotDurationMinutes int          `json:"slotDurationMinutes" binding:"required,min=30,max=480"`
	WeekdayHours        HoursRequest `json:"weekdayHours" binding:"required"`
	WeekendHours        HoursRequest `json:"weekendHours" binding:"required"`
}

func (r CreateAmenityRequest) ToInput() commands.CreateAmenityInput {
	return commands.CreateAmenityInput{
		CommunityID:         r.CommunityID,
		Name:                r.Name,
		MaxPeople:           r.MaxPeople,
		SlotDurationMinutes: r.SlotDurationMinutes,
		WeekdayHours:        r.WeekdayHours.toInput(),
		WeekendHours:        r.WeekendHours.toInput(),
	}
}

// UpdateAmenityRequest leaves omitted fields unchanged.
type UpdateAmenityRequest struct {
	Name                *string       `json:"name" binding:"omitempty,max=100"`
	MaxPeople           *int          `json:"maxPeople" binding:"omitempty,min=1"`
	SlotDurationMinutes *int          `json:"slotDurationMinutes" binding:"omitempty,min=30,max=480"`
	WeekdayHours        *HoursRequest `json:"weekdayHours"`
	WeekendHours        *HoursRequest `json:"weekendHours"`
}

func (r UpdateAmenityRequest) ToInput() commands.UpdateAmenityInput {
	in := commands.UpdateAmenityInput{
		Name:                r.Name,
		MaxPeople:           r.MaxPeople,
		SlotDurationMinutes: r.SlotDurationMinutes,
	}
	if r.WeekdayHours != nil {
		h := r.WeekdayHours.toInput()
		in.WeekdayHours = &h
	}
	if r.WeekendHours != nil {
		h := r.WeekendHours.toInput()
		in.WeekendHours = &h
	}
	return in
}

type BlockAmenityRequest struct {
	IsBlocked *bool  `json:"isBlocked" binding:"required"`
	Reason    string `json:"reason" binding:"max=500"`
}

// AddBlackoutDateRequest accepts the date as "YYYY-MM-DD", an RFC 3339
// timestamp or a {seconds, nanoseconds} object.
type AddBlackoutDateRequest struct {
	Date   json.RawMessage `json:"date" binding:"required" swaggertype:"string"`
	Reason string          `json:"reason" binding:"max=500"`
}
