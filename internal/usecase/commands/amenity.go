package commands

import (
	"context"
	"log/slog"
	"time"

	"amenity-booking/internal/domain/amenity"
	"amenity-booking/internal/domain/user"
	"amenity-booking/internal/pkg/caldate"
	"amenity-booking/internal/pkg/clock"
	"amenity-booking/internal/pkg/errs"
	"amenity-booking/internal/pkg/ptr"
	"amenity-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type HoursInput struct {
	Start string
	End   string
}

type CreateAmenityInput struct {
	CommunityID         uuid.UUID
	Name                string
	MaxPeople           int
	SlotDurationMinutes int
	WeekdayHours        HoursInput
	WeekendHours        HoursInput
}

type UpdateAmenityInput struct {
	Name                *string
	MaxPeople           *int
	SlotDurationMinutes *int
	WeekdayHours        *HoursInput
	WeekendHours        *HoursInput
}

type AmenityCommands interface {
	CreateAmenity(ctx context.Context, actor user.Actor, in CreateAmenityInput) (*amenity.Amenity, error)
	UpdateAmenity(ctx context.Context, actor user.Actor, id uuid.UUID, in UpdateAmenityInput) (*amenity.Amenity, error)
	SetBlocked(ctx context.Context, actor user.Actor, id uuid.UUID, blocked bool, reason string) (*amenity.Amenity, error)
	// AddBlackoutDate accepts any supported date representation for date.
	AddBlackoutDate(ctx context.Context, actor user.Actor, id uuid.UUID, date any, reason string) (*amenity.Amenity, error)
	RemoveBlackoutDate(ctx context.Context, actor user.Actor, id uuid.UUID, date string) (*amenity.Amenity, error)
}

type amenityCommandsImpl struct {
	uow      shared.UnitOfWork
	cache    shared.SlotCache
	settings shared.Settings
	clock    clock.Clock
	logger   *slog.Logger
}

func NewAmenityCommands(uow shared.UnitOfWork, cache shared.SlotCache, settings shared.Settings, clock clock.Clock, logger *slog.Logger) AmenityCommands {
	return &amenityCommandsImpl{
		uow:      uow,
		cache:    cache,
		settings: settings,
		clock:    clock,
		logger:   logger,
	}
}

func (c *amenityCommandsImpl) CreateAmenity(ctx context.Context, actor user.Actor, in CreateAmenityInput) (*amenity.Amenity, error) {
	if !actor.IsAdmin() {
		return nil, ErrAdminRequired
	}
	weekday, err := amenity.ParseOperatingHours(in.WeekdayHours.Start, in.WeekdayHours.End)
	if err != nil {
		return nil, err
	}
	weekend, err := amenity.ParseOperatingHours(in.WeekendHours.Start, in.WeekendHours.End)
	if err != nil {
		return nil, err
	}
	communityID := in.CommunityID
	if communityID == uuid.Nil {
		communityID = actor.CommunityID
	}

	a, err := amenity.NewAmenity(amenity.NewAmenityParams{
		CommunityID:  communityID,
		Name:         in.Name,
		MaxPeople:    in.MaxPeople,
		SlotDuration: time.Duration(in.SlotDurationMinutes) * time.Minute,
		WeekdayHours: weekday,
		WeekendHours: weekend,
	}, c.clock.Now())
	if err != nil {
		return nil, err
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Amenities().Create(ctx, a)
	})
	if err != nil {
		return nil, err
	}
	c.logger.InfoContext(ctx, "amenity created", "amenity_id", a.ID(), "community_id", communityID)
	return a, nil
}

func (c *amenityCommandsImpl) UpdateAmenity(ctx context.Context, actor user.Actor, id uuid.UUID, in UpdateAmenityInput) (*amenity.Amenity, error) {
	if !actor.IsAdmin() {
		return nil, ErrAdminRequired
	}
	change, err := toChange(in)
	if err != nil {
		return nil, err
	}

	var (
		out             *amenity.Amenity
		scheduleChanged bool
	)
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		a, err := tx.Amenities().FindByID(ctx, id)
		if err != nil {
			return notFound(err, ErrAmenityNotFound)
		}
		now := c.clock.Now()
		scheduleChanged, err = a.Apply(change, now)
		if err != nil {
			return err
		}
		err = tx.Amenities().UpdateFields(ctx, id, shared.AmenityFields{
			Name:         change.Name,
			MaxPeople:    change.MaxPeople,
			SlotDuration: change.SlotDuration,
			WeekdayHours: change.WeekdayHours,
			WeekendHours: change.WeekendHours,
			UpdatedAt:    now,
		})
		if err != nil {
			return err
		}
		out = a
		return nil
	})
	if err != nil {
		return nil, err
	}

	if scheduleChanged {
		c.invalidate(ctx, id)
	}
	return out, nil
}

func toChange(in UpdateAmenityInput) (amenity.Change, error) {
	change := amenity.Change{
		Name:      in.Name,
		MaxPeople: in.MaxPeople,
	}
	if in.SlotDurationMinutes != nil {
		change.SlotDuration = ptr.To(time.Duration(*in.SlotDurationMinutes) * time.Minute)
	}
	if in.WeekdayHours != nil {
		h, err := amenity.ParseOperatingHours(in.WeekdayHours.Start, in.WeekdayHours.End)
		if err != nil {
			return amenity.Change{}, err
		}
		change.WeekdayHours = &h
	}
	if in.WeekendHours != nil {
		h, err := amenity.ParseOperatingHours(in.WeekendHours.Start, in.WeekendHours.End)
		if err != nil {
			return amenity.Change{}, err
		}
		change.WeekendHours = &h
	}
	return change, nil
}

func (c *amenityCommandsImpl) SetBlocked(ctx context.Context, actor user.Actor, id uuid.UUID, blocked bool, reason string) (*amenity.Amenity, error) {
	if !actor.IsAdmin() {
		return nil, ErrAdminRequired
	}
	return c.modify(ctx, id, func(ctx context.Context, tx shared.Tx, a *amenity.Amenity, now time.Time) error {
		if blocked {
			a.Block(reason, now)
		} else {
			a.Unblock(now)
		}
		return tx.Amenities().UpdateFields(ctx, id, shared.AmenityFields{
			IsBlocked:   ptr.To(a.IsBlocked()),
			BlockReason: ptr.To(ptr.Deref(a.BlockReason())),
			UpdatedAt:   now,
		})
	})
}

func (c *amenityCommandsImpl) AddBlackoutDate(ctx context.Context, actor user.Actor, id uuid.UUID, date any, reason string) (*amenity.Amenity, error) {
	if !actor.IsAdmin() {
		return nil, ErrAdminRequired
	}
	d, err := caldate.Normalize(date, c.settings.Location)
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, ErrInvalidDate.Error()), errs.ErrValidation)
	}
	return c.modify(ctx, id, func(ctx context.Context, tx shared.Tx, a *amenity.Amenity, now time.Time) error {
		b := amenity.BlackoutDate{Date: d, Reason: reason, AddedAt: now, AddedBy: actor.UserID}
		if err := a.AddBlackoutDate(b); err != nil {
			return err
		}
		stored, _ := a.BlackoutOn(d)
		if err := tx.Amenities().AddBlackoutDate(ctx, id, stored); err != nil {
			return err
		}
		return tx.Amenities().UpdateFields(ctx, id, shared.AmenityFields{UpdatedAt: now})
	})
}

func (c *amenityCommandsImpl) RemoveBlackoutDate(ctx context.Context, actor user.Actor, id uuid.UUID, date string) (*amenity.Amenity, error) {
	if !actor.IsAdmin() {
		return nil, ErrAdminRequired
	}
	d, err := caldate.Parse(date)
	if err != nil {
		return nil, ErrInvalidDate
	}
	return c.modify(ctx, id, func(ctx context.Context, tx shared.Tx, a *amenity.Amenity, now time.Time) error {
		if err := a.RemoveBlackoutDate(d, now); err != nil {
			return err
		}
		if err := tx.Amenities().RemoveBlackoutDate(ctx, id, d); err != nil {
			return err
		}
		return tx.Amenities().UpdateFields(ctx, id, shared.AmenityFields{UpdatedAt: now})
	})
}

func (c *amenityCommandsImpl) modify(
	ctx context.Context,
	id uuid.UUID,
	apply func(ctx context.Context, tx shared.Tx, a *amenity.Amenity, now time.Time) error,
) (*amenity.Amenity, error) {
	var out *amenity.Amenity
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		a, err := tx.Amenities().FindByID(ctx, id)
		if err != nil {
			return notFound(err, ErrAmenityNotFound)
		}
		if err := apply(ctx, tx, a, c.clock.Now()); err != nil {
			return err
		}
		out = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *amenityCommandsImpl) invalidate(ctx context.Context, id uuid.UUID) {
	if err := c.cache.Invalidate(ctx, id); err != nil {
		c.logger.WarnContext(ctx, "failed to invalidate slot cache", "amenity_id", id, "error", err.Error())
	}
}
