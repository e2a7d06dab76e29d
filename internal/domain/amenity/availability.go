package amenity

import (
	"context"
	"time"

	"amenity-booking/internal/domain/slot"
	"amenity-booking/internal/pkg/caldate"

	"github.com/google/uuid"
)

type RejectionKind string

const (
	RejectionNone            RejectionKind = ""
	RejectionBlocked         RejectionKind = "blocked"
	RejectionBlackout        RejectionKind = "blackout"
	RejectionOutsideHours    RejectionKind = "outside_hours"
	RejectionInvalidDuration RejectionKind = "invalid_duration"
	RejectionMisaligned      RejectionKind = "misaligned"
	RejectionSlotFull        RejectionKind = "slot_full"
)

const (
	ReasonBlocked         = "administrative block"
	ReasonBlackoutPrefix  = "blackout date"
	ReasonOutsideHours    = "outside operating hours"
	ReasonInvalidDuration = "invalid slot duration"
	ReasonMisaligned      = "slot not aligned to schedule"
	ReasonSlotFull        = "slot full"
)

type Availability struct {
	Available bool
	Kind      RejectionKind
	Reason    string
}

func available() Availability {
	return Availability{Available: true}
}

func rejected(kind RejectionKind, reason string) Availability {
	return Availability{Kind: kind, Reason: reason}
}

// OccupancyReader answers whether a slot-holding booking overlaps the window.
// Implementations read inside the caller's transaction.
type OccupancyReader interface {
	HasActiveOverlap(ctx context.Context, amenityID uuid.UUID, w slot.Window) (bool, error)
}

type AvailabilityCalculator struct {
	loc *time.Location
}

func NewAvailabilityCalculator(loc *time.Location) *AvailabilityCalculator {
	if loc == nil {
		loc = time.UTC
	}
	return &AvailabilityCalculator{loc: loc}
}

func (c *AvailabilityCalculator) Location() *time.Location {
	return c.loc
}

// Check runs the schedule rules and then the occupancy lookup. It never writes.
func (c *AvailabilityCalculator) Check(ctx context.Context, a *Amenity, w slot.Window, occ OccupancyReader) (Availability, error) {
	if res := c.CheckSchedule(a, w); !res.Available {
		return res, nil
	}

	taken, err := occ.HasActiveOverlap(ctx, a.ID(), w)
	if err != nil {
		return Availability{}, err
	}
	if taken {
		return rejected(RejectionSlotFull, ReasonSlotFull), nil
	}
	return available(), nil
}

// CheckSchedule applies every rule that depends on the amenity alone, in order:
// block, blackout, operating hours, duration, grid alignment.
func (c *AvailabilityCalculator) CheckSchedule(a *Amenity, w slot.Window) Availability {
	if a.IsBlocked() {
		return rejected(RejectionBlocked, ReasonBlocked)
	}

	day := caldate.Of(w.Start(), c.loc)
	if b, ok := a.BlackoutOn(day); ok {
		reason := ReasonBlackoutPrefix
		if b.Reason != "" {
			reason += ": " + b.Reason
		}
		return rejected(RejectionBlackout, reason)
	}

	open, closing := a.HoursOn(day).Bounds(day, c.loc)
	if w.Start().Before(open) || w.End().After(closing) {
		return rejected(RejectionOutsideHours, ReasonOutsideHours)
	}

	if w.Duration() != a.SlotDuration() {
		return rejected(RejectionInvalidDuration, ReasonInvalidDuration)
	}

	if w.Start().Sub(open)%a.SlotDuration() != 0 {
		return rejected(RejectionMisaligned, ReasonMisaligned)
	}

	return available()
}

// GenerateSlots lays the slot grid for a date, starting at opening time.
// The grid ignores blocks and blackouts; callers check those per slot.
func (c *AvailabilityCalculator) GenerateSlots(a *Amenity, d caldate.Date) []slot.Window {
	open, closing := a.HoursOn(d).Bounds(d, c.loc)
	step := a.SlotDuration()

	var slots []slot.Window
	for start := open; !start.Add(step).After(closing); start = start.Add(step) {
		slots = append(slots, slot.MustWindow(start, start.Add(step)))
	}
	return slots
}
