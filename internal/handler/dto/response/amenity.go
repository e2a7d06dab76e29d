package response

import (
	"time"

	"amenity-booking/internal/pkg/errs"
	"amenity-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type HoursResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type BlackoutDateResponse struct {
	Date    string    `json:"date"`
	Reason  string    `json:"reason"`
	AddedAt time.Time `json:"addedAt"`
	AddedBy uuid.UUID `json:"addedBy"`
}

type AmenityResponse struct {
	ID                  uuid.UUID              `json:"id"`
	CommunityID         uuid.UUID              `json:"communityId"`
	Name                string                 `json:"name"`
	MaxPeople           int                    `json:"maxPeople"`
	SlotDurationMinutes int                    `json:"slotDurationMinutes"`
	WeekdayHours        HoursResponse          `json:"weekdayHours" copier:"-"`
	WeekendHours        HoursResponse          `json:"weekendHours" copier:"-"`
	IsBlocked           bool                   `json:"isBlocked"`
	BlockReason         *string                `json:"blockReason,omitempty"`
	BlackoutDates       []BlackoutDateResponse `json:"blackoutDates"`
	CreatedAt           time.Time              `json:"createdAt"`
	UpdatedAt           time.Time              `json:"updatedAt"`
}

func FromAmenityView(v *queries.AmenityView) (*AmenityResponse, error) {
	var res AmenityResponse
	if err := copier.Copy(&res, v); err != nil {
		return nil, errs.Wrap(err, "failed to map amenity response")
	}
	res.WeekdayHours = HoursResponse{Start: v.WeekdayStart, End: v.WeekdayEnd}
	res.WeekendHours = HoursResponse{Start: v.WeekendStart, End: v.WeekendEnd}
	if res.BlackoutDates == nil {
		res.BlackoutDates = []BlackoutDateResponse{}
	}
	return &res, nil
}

func FromAmenityViews(vs []*queries.AmenityView) ([]*AmenityResponse, error) {
	res := make([]*AmenityResponse, len(vs))
	for i, v := range vs {
		r, err := FromAmenityView(v)
		if err != nil {
			return nil, err
		}
		res[i] = r
	}
	return res, nil
}

type SlotResponse struct {
	StartTime      time.Time `json:"startTime"`
	EndTime        time.Time `json:"endTime"`
	Available      bool      `json:"available"`
	Kind           string    `json:"kind,omitempty"`
	Reason         string    `json:"reason,omitempty"`
	WaitlistLength int       `json:"waitlistLength"`
}

type SlotsResponse struct {
	AmenityID uuid.UUID      `json:"amenityId"`
	Date      string         `json:"date"`
	Slots     []SlotResponse `json:"slots"`
}

func FromSlotsView(v *queries.SlotsView) (*SlotsResponse, error) {
	res := SlotsResponse{Slots: []SlotResponse{}}
	if err := copier.Copy(&res, v); err != nil {
		return nil, errs.Wrap(err, "failed to map slots response")
	}
	return &res, nil
}
