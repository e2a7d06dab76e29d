package amenity

import (
	"errors"
	"fmt"
	"time"

	"amenity-booking/internal/pkg/caldate"
	"amenity-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

const minutesPerDay = 24 * 60

var (
	ErrInvalidClockTime      = errs.Mark(errors.New("time of day must be HH:MM between 00:00 and 24:00"), errs.ErrValidation)
	ErrInvalidOperatingHours = errs.Mark(errors.New("operating hours must start before they end"), errs.ErrValidation)
)

// ClockTime is a local time of day in minutes since midnight. 24:00 is allowed
// as a closing time.
type ClockTime struct {
	minutes int
}

func NewClockTime(hour, minute int) (ClockTime, error) {
	m := hour*60 + minute
	if hour < 0 || minute < 0 || minute > 59 || m > minutesPerDay {
		return ClockTime{}, ErrInvalidClockTime
	}
	return ClockTime{minutes: m}, nil
}

func ParseClockTime(s string) (ClockTime, error) {
	var h, m int
	if len(s) != 5 || s[2] != ':' {
		return ClockTime{}, ErrInvalidClockTime
	}
	if _, err := fmt.Sscanf(s, "%02d:%02d", &h, &m); err != nil {
		return ClockTime{}, ErrInvalidClockTime
	}
	return NewClockTime(h, m)
}

func ClockTimeFromMinutes(m int) (ClockTime, error) {
	if m < 0 || m > minutesPerDay {
		return ClockTime{}, ErrInvalidClockTime
	}
	return ClockTime{minutes: m}, nil
}

func (c ClockTime) Minutes() int {
	return c.minutes
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.minutes/60, c.minutes%60)
}

// On places the time of day on a calendar date in loc.
func (c ClockTime) On(d caldate.Date, loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, c.minutes/60, c.minutes%60, 0, 0, loc)
}

type OperatingHours struct {
	start ClockTime
	end   ClockTime
}

func NewOperatingHours(start, end ClockTime) (OperatingHours, error) {
	if start.minutes >= end.minutes {
		return OperatingHours{}, ErrInvalidOperatingHours
	}
	return OperatingHours{start: start, end: end}, nil
}

func ParseOperatingHours(start, end string) (OperatingHours, error) {
	s, err := ParseClockTime(start)
	if err != nil {
		return OperatingHours{}, err
	}
	e, err := ParseClockTime(end)
	if err != nil {
		return OperatingHours{}, err
	}
	return NewOperatingHours(s, e)
}

func (h OperatingHours) Start() ClockTime {
	return h.start
}

func (h OperatingHours) End() ClockTime {
	return h.end
}

func (h OperatingHours) Length() time.Duration {
	return time.Duration(h.end.minutes-h.start.minutes) * time.Minute
}

// Bounds returns the opening and closing instants for a date.
func (h OperatingHours) Bounds(d caldate.Date, loc *time.Location) (time.Time, time.Time) {
	return h.start.On(d, loc), h.end.On(d, loc)
}

type BlackoutDate struct {
	Date    caldate.Date
	Reason  string
	AddedAt time.Time
	AddedBy uuid.UUID
}
