//go:build unit || e2e

package builder

import (
	"time"

	"amenity-booking/internal/domain/amenity"
	reqdto "amenity-booking/internal/handler/dto/request"

	"github.com/google/uuid"
)

type AmenityBuilder struct {
	CommunityID         uuid.UUID
	Name                string
	MaxPeople           int
	SlotDurationMinutes int
	WeekdayStart        string
	WeekdayEnd          string
	WeekendStart        string
	WeekendEnd          string
	CreatedAt           time.Time
}

// NewAmenityBuilder describes a tennis court open 08:00-22:00 with 2h slots.
func NewAmenityBuilder() *AmenityBuilder {
	return &AmenityBuilder{
		CommunityID:         uuid.New(),
		Name:                "Tennis Court",
		MaxPeople:           4,
		SlotDurationMinutes: 120,
		WeekdayStart:        "08:00",
		WeekdayEnd:          "22:00",
		WeekendStart:        "08:00",
		WeekendEnd:          "22:00",
		CreatedAt:           time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (b *AmenityBuilder) With(mutate func(*AmenityBuilder)) *AmenityBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *AmenityBuilder) BuildDomain() (*amenity.Amenity, error) {
	weekday, err := amenity.ParseOperatingHours(b.WeekdayStart, b.WeekdayEnd)
	if err != nil {
		return nil, err
	}
	weekend, err := amenity.ParseOperatingHours(b.WeekendStart, b.WeekendEnd)
	if err != nil {
		return nil, err
	}
	return amenity.NewAmenity(amenity.NewAmenityParams{
		CommunityID:  b.CommunityID,
		Name:         b.Name,
		MaxPeople:    b.MaxPeople,
		SlotDuration: time.Duration(b.SlotDurationMinutes) * time.Minute,
		WeekdayHours: weekday,
		WeekendHours: weekend,
	}, b.CreatedAt)
}

func (b *AmenityBuilder) MustBuildDomain() *amenity.Amenity {
	a, err := b.BuildDomain()
	if err != nil {
		panic(err)
	}
	return a
}

func (b *AmenityBuilder) BuildCreateRequestDTO() reqdto.CreateAmenityRequest {
	return reqdto.CreateAmenityRequest{
		CommunityID:         b.CommunityID,
		Name:                b.Name,
		MaxPeople:           b.MaxPeople,
		SlotDurationMinutes: b.SlotDurationMinutes,
		WeekdayHours:        reqdto.HoursRequest{Start: b.WeekdayStart, End: b.WeekdayEnd},
		WeekendHours:        reqdto.HoursRequest{Start: b.WeekendStart, End: b.WeekendEnd},
	}
}
