package shared

import (
	"time"

	"amenity-booking/internal/pkg/config"
)

// Settings are the community-wide booking rules.
type Settings struct {
	Location                 *time.Location
	OfferTTL                 time.Duration
	CheckInGrace             time.Duration
	ReminderBefore           time.Duration
	ConfirmationReminderLead time.Duration
}

func NewSettings(cfg config.Config) (Settings, error) {
	loc, err := cfg.Booking.Location()
	if err != nil {
		return Settings{}, err
	}
	return Settings{
		Location:                 loc,
		OfferTTL:                 cfg.Booking.OfferTTL,
		CheckInGrace:             cfg.Booking.CheckInGrace,
		ReminderBefore:           cfg.Booking.ReminderBefore,
		ConfirmationReminderLead: cfg.Booking.ConfirmationReminderLead,
	}, nil
}

func DefaultSettings() Settings {
	return Settings{
		Location:                 time.UTC,
		OfferTTL:                 48 * time.Hour,
		CheckInGrace:             15 * time.Minute,
		ReminderBefore:           24 * time.Hour,
		ConfirmationReminderLead: 12 * time.Hour,
	}
}
