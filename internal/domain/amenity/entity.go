package amenity

import (
	"errors"
	"strings"
	"time"

	"amenity-booking/internal/pkg/caldate"
	"amenity-booking/internal/pkg/errs"
	"amenity-booking/internal/pkg/patch"

	"github.com/google/uuid"
)

const (
	MinSlotDuration = 30 * time.Minute
	MaxSlotDuration = 8 * time.Hour
)

var (
	ErrInvalidName         = errs.Mark(errors.New("amenity name is required"), errs.ErrValidation)
	ErrInvalidMaxPeople    = errs.Mark(errors.New("max people must be at least 1"), errs.ErrValidation)
	ErrInvalidSlotDuration = errs.Mark(errors.New("slot duration must be whole minutes between 0.5 and 8 hours"), errs.ErrValidation)
	ErrSlotDoesNotDivide   = errs.Mark(errors.New("slot duration must divide the operating hours"), errs.ErrValidation)
	ErrDuplicateBlackout   = errs.Mark(errors.New("blackout date already exists"), errs.ErrConflict)
	ErrBlackoutNotFound    = errs.Mark(errors.New("blackout date not found"), errs.ErrNotFound)
)

type Amenity struct {
	id            uuid.UUID
	communityID   uuid.UUID
	name          string
	maxPeople     int
	slotDuration  time.Duration
	weekdayHours  OperatingHours
	weekendHours  OperatingHours
	isBlocked     bool
	blockReason   *string
	blackoutDates []BlackoutDate
	createdAt     time.Time
	updatedAt     time.Time
}

type NewAmenityParams struct {
	CommunityID  uuid.UUID
	Name         string
	MaxPeople    int
	SlotDuration time.Duration
	WeekdayHours OperatingHours
	WeekendHours OperatingHours
}

func NewAmenity(p NewAmenityParams, now time.Time) (*Amenity, error) {
	a := &Amenity{
		id:           uuid.New(),
		communityID:  p.CommunityID,
		name:         strings.TrimSpace(p.Name),
		maxPeople:    p.MaxPeople,
		slotDuration: p.SlotDuration,
		weekdayHours: p.WeekdayHours,
		weekendHours: p.WeekendHours,
		createdAt:    now,
		updatedAt:    now,
	}
	if err := a.validate(); err != nil {
		return nil, err
	}
	return a, nil
}

func ReconstructAmenity(
	id, communityID uuid.UUID,
	name string,
	maxPeople int,
	slotDuration time.Duration,
	weekdayHours, weekendHours OperatingHours,
	isBlocked bool,
	blockReason *string,
	blackoutDates []BlackoutDate,
	createdAt, updatedAt time.Time,
) *Amenity {
	return &Amenity{
		id:            id,
		communityID:   communityID,
		name:          name,
		maxPeople:     maxPeople,
		slotDuration:  slotDuration,
		weekdayHours:  weekdayHours,
		weekendHours:  weekendHours,
		isBlocked:     isBlocked,
		blockReason:   blockReason,
		blackoutDates: blackoutDates,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

func (a *Amenity) validate() error {
	if a.name == "" {
		return ErrInvalidName
	}
	if a.maxPeople < 1 {
		return ErrInvalidMaxPeople
	}
	if a.slotDuration < MinSlotDuration || a.slotDuration > MaxSlotDuration || a.slotDuration%time.Minute != 0 {
		return ErrInvalidSlotDuration
	}
	for _, h := range []OperatingHours{a.weekdayHours, a.weekendHours} {
		if h.start.minutes >= h.end.minutes {
			return ErrInvalidOperatingHours
		}
		if h.Length()%a.slotDuration != 0 {
			return ErrSlotDoesNotDivide
		}
	}
	return nil
}

func (a *Amenity) ID() uuid.UUID                 { return a.id }
func (a *Amenity) CommunityID() uuid.UUID        { return a.communityID }
func (a *Amenity) Name() string                  { return a.name }
func (a *Amenity) MaxPeople() int                { return a.maxPeople }
func (a *Amenity) SlotDuration() time.Duration   { return a.slotDuration }
func (a *Amenity) WeekdayHours() OperatingHours  { return a.weekdayHours }
func (a *Amenity) WeekendHours() OperatingHours  { return a.weekendHours }
func (a *Amenity) IsBlocked() bool               { return a.isBlocked }
func (a *Amenity) BlockReason() *string          { return a.blockReason }
func (a *Amenity) CreatedAt() time.Time          { return a.createdAt }
func (a *Amenity) UpdatedAt() time.Time          { return a.updatedAt }
func (a *Amenity) BlackoutDates() []BlackoutDate { return append([]BlackoutDate(nil), a.blackoutDates...) }

// Change carries an admin edit. Nil fields are left untouched.
type Change struct {
	Name         *string
	MaxPeople    *int
	SlotDuration *time.Duration
	WeekdayHours *OperatingHours
	WeekendHours *OperatingHours
}

// Apply validates the edited amenity as a whole and reports whether the slot
// grid changed, which invalidates any cached slot generation.
func (a *Amenity) Apply(c Change, now time.Time) (bool, error) {
	next := *a
	if c.Name != nil {
		next.name = strings.TrimSpace(*c.Name)
	}
	next.maxPeople = patch.Coalesce(c.MaxPeople, a.maxPeople)
	next.slotDuration = patch.Coalesce(c.SlotDuration, a.slotDuration)
	next.weekdayHours = patch.Coalesce(c.WeekdayHours, a.weekdayHours)
	next.weekendHours = patch.Coalesce(c.WeekendHours, a.weekendHours)

	if err := next.validate(); err != nil {
		return false, err
	}

	scheduleChanged := patch.Changed(c.SlotDuration, a.slotDuration) ||
		patch.Changed(c.WeekdayHours, a.weekdayHours) ||
		patch.Changed(c.WeekendHours, a.weekendHours)

	next.updatedAt = now
	*a = next
	return scheduleChanged, nil
}

func (a *Amenity) Block(reason string, now time.Time) {
	a.isBlocked = true
	a.blockReason = nil
	if r := strings.TrimSpace(reason); r != "" {
		a.blockReason = &r
	}
	a.updatedAt = now
}

func (a *Amenity) Unblock(now time.Time) {
	a.isBlocked = false
	a.blockReason = nil
	a.updatedAt = now
}

func (a *Amenity) AddBlackoutDate(b BlackoutDate) error {
	if b.Date.IsZero() {
		return caldate.ErrInvalidDate
	}
	if _, exists := a.BlackoutOn(b.Date); exists {
		return ErrDuplicateBlackout
	}
	b.Reason = strings.TrimSpace(b.Reason)
	a.blackoutDates = append(a.blackoutDates, b)
	a.updatedAt = b.AddedAt
	return nil
}

func (a *Amenity) RemoveBlackoutDate(d caldate.Date, now time.Time) error {
	for i, b := range a.blackoutDates {
		if b.Date == d {
			a.blackoutDates = append(a.blackoutDates[:i], a.blackoutDates[i+1:]...)
			a.updatedAt = now
			return nil
		}
	}
	return ErrBlackoutNotFound
}

func (a *Amenity) BlackoutOn(d caldate.Date) (BlackoutDate, bool) {
	for _, b := range a.blackoutDates {
		if b.Date == d {
			return b, true
		}
	}
	return BlackoutDate{}, false
}

// HoursOn selects the weekday or weekend window for a date.
func (a *Amenity) HoursOn(d caldate.Date) OperatingHours {
	if IsWeekend(d) {
		return a.weekendHours
	}
	return a.weekdayHours
}

func IsWeekend(d caldate.Date) bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
