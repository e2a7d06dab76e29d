package queries

import (
	"context"
	"log/slog"
	"time"

	"amenity-booking/internal/domain/amenity"
	"amenity-booking/internal/domain/slot"
	"amenity-booking/internal/pkg/caldate"
	"amenity-booking/internal/pkg/clock"
	"amenity-booking/internal/pkg/errs"
	"amenity-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

const reasonStarted = "slot already started"

var ErrInvalidDate = errs.Mark(caldate.ErrInvalidDate, errs.ErrValidation)

type AmenityQueries interface {
	GetAmenity(ctx context.Context, id uuid.UUID) (*AmenityView, error)
	ListAmenities(ctx context.Context, communityID *uuid.UUID) ([]*AmenityView, error)
	ListSlots(ctx context.Context, id uuid.UUID, date string) (*SlotsView, error)
}

type amenityQueriesImpl struct {
	uow        shared.UnitOfWork
	cache      shared.SlotCache
	calculator *amenity.AvailabilityCalculator
	clock      clock.Clock
	logger     *slog.Logger
}

func NewAmenityQueries(uow shared.UnitOfWork, cache shared.SlotCache, settings shared.Settings, clock clock.Clock, logger *slog.Logger) AmenityQueries {
	return &amenityQueriesImpl{
		uow:        uow,
		cache:      cache,
		calculator: amenity.NewAvailabilityCalculator(settings.Location),
		clock:      clock,
		logger:     logger,
	}
}

func (q *amenityQueriesImpl) GetAmenity(ctx context.Context, id uuid.UUID) (*AmenityView, error) {
	var view *AmenityView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		a, err := q.find(ctx, tx, id)
		if err != nil {
			return err
		}
		view = NewAmenityView(a)
		return nil
	})
	return view, err
}

func (q *amenityQueriesImpl) ListAmenities(ctx context.Context, communityID *uuid.UUID) ([]*AmenityView, error) {
	var views []*AmenityView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		list, err := tx.Amenities().List(ctx, communityID)
		if err != nil {
			return err
		}
		views = make([]*AmenityView, 0, len(list))
		for _, a := range list {
			views = append(views, NewAmenityView(a))
		}
		return nil
	})
	return views, err
}

// ListSlots returns the slot grid for a date with live availability per slot.
func (q *amenityQueriesImpl) ListSlots(ctx context.Context, id uuid.UUID, date string) (*SlotsView, error) {
	d, err := caldate.Normalize(date, q.calculator.Location())
	if err != nil {
		return nil, ErrInvalidDate
	}

	var view *SlotsView
	err = q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		a, err := q.find(ctx, tx, id)
		if err != nil {
			return err
		}
		grid := q.grid(ctx, a, d)
		now := q.clock.Now()

		view = &SlotsView{AmenityID: id, Date: d.String(), Slots: make([]SlotView, 0, len(grid))}
		for _, w := range grid {
			sv, err := q.slotView(ctx, tx, a, w, now)
			if err != nil {
				return err
			}
			view.Slots = append(view.Slots, sv)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (q *amenityQueriesImpl) slotView(ctx context.Context, tx shared.Tx, a *amenity.Amenity, w slot.Window, now time.Time) (SlotView, error) {
	sv := SlotView{StartTime: w.Start(), EndTime: w.End()}

	avail, err := q.calculator.Check(ctx, a, w, tx.Bookings())
	if err != nil {
		return SlotView{}, err
	}
	sv.Available = avail.Available
	sv.Kind = string(avail.Kind)
	sv.Reason = avail.Reason
	if sv.Available && !now.Before(w.Start()) {
		sv.Available = false
		sv.Reason = reasonStarted
	}

	if avail.Kind == amenity.RejectionSlotFull {
		n, err := tx.Waitlist().Count(ctx, a.ID(), w)
		if err != nil {
			return SlotView{}, err
		}
		sv.WaitlistLength = n
	}
	return sv, nil
}

// grid serves the generated slots from cache. Cache failures fall back to generation.
func (q *amenityQueriesImpl) grid(ctx context.Context, a *amenity.Amenity, d caldate.Date) []slot.Window {
	cached, ok, err := q.cache.Get(ctx, a.ID(), d)
	if err != nil {
		q.logger.WarnContext(ctx, "slot cache read failed", "amenity_id", a.ID(), "date", d.String(), "error", err.Error())
	}
	if ok {
		return cached
	}

	grid := q.calculator.GenerateSlots(a, d)
	if err := q.cache.Set(ctx, a.ID(), d, grid); err != nil {
		q.logger.WarnContext(ctx, "slot cache write failed", "amenity_id", a.ID(), "date", d.String(), "error", err.Error())
	}
	return grid
}

func (q *amenityQueriesImpl) find(ctx context.Context, tx shared.Tx, id uuid.UUID) (*amenity.Amenity, error) {
	a, err := tx.Amenities().FindByID(ctx, id)
	if err != nil {
		if errs.Is(err, errs.ErrNotFound) {
			return nil, ErrAmenityNotFound
		}
		return nil, err
	}
	return a, nil
}
