package queries

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"time"

	"amenity-booking/internal/domain/booking"
	"amenity-booking/internal/domain/user"
	"amenity-booking/internal/domain/waitlist"
	"amenity-booking/internal/pkg/clock"
	"amenity-booking/internal/pkg/errs"
	"amenity-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrBookingNotFound = errs.Mark(errors.New("booking not found"), errs.ErrNotFound)
	ErrAmenityNotFound = errs.Mark(errors.New("amenity not found"), errs.ErrNotFound)
	ErrForbidden       = errs.Mark(errors.New("not allowed to view this record"), errs.ErrAuthorization)
	ErrInvalidRange    = errs.Mark(errors.New("from must be before to"), errs.ErrValidation)
)

// OfferExpirer resolves an overdue offer in its own transaction.
type OfferExpirer interface {
	ExpireOverdueOffer(ctx context.Context, bookingID uuid.UUID) error
}

type BookingQueries interface {
	GetBooking(ctx context.Context, actor user.Actor, id uuid.UUID) (*BookingView, error)
	ListMyBookings(ctx context.Context, actor user.Actor) ([]*BookingView, error)
	ListAmenityBookings(ctx context.Context, actor user.Actor, amenityID uuid.UUID, from, to time.Time) ([]*BookingView, error)
	ListMyWaitlist(ctx context.Context, actor user.Actor) ([]*WaitlistEntryView, error)
}

type bookingQueriesImpl struct {
	uow     shared.UnitOfWork
	expirer OfferExpirer
	clock   clock.Clock
	logger  *slog.Logger
}

func NewBookingQueries(uow shared.UnitOfWork, expirer OfferExpirer, clock clock.Clock, logger *slog.Logger) BookingQueries {
	return &bookingQueriesImpl{
		uow:     uow,
		expirer: expirer,
		clock:   clock,
		logger:  logger,
	}
}

type bookingRow struct {
	booking *booking.Booking
	offer   *waitlist.Offer
}

func (q *bookingQueriesImpl) GetBooking(ctx context.Context, actor user.Actor, id uuid.UUID) (*BookingView, error) {
	read := func() (*BookingView, bool, error) {
		var (
			view    *BookingView
			overdue bool
		)
		err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
			b, err := tx.Bookings().FindByID(ctx, id)
			if err != nil {
				if errs.Is(err, errs.ErrNotFound) {
					return ErrBookingNotFound
				}
				return err
			}
			if !actor.CanManage(b.UserID()) {
				return ErrForbidden
			}
			rows, err := q.attachOffers(ctx, tx, []*booking.Booking{b})
			if err != nil {
				return err
			}
			views, err := q.toViews(ctx, tx, rows)
			if err != nil {
				return err
			}
			view = views[0]
			overdue = rows[0].offer != nil && rows[0].offer.IsOverdue(q.clock.Now())
			return nil
		})
		return view, overdue, err
	}

	view, overdue, err := read()
	if err != nil || !overdue {
		return view, err
	}
	if err := q.expirer.ExpireOverdueOffer(ctx, id); err != nil {
		return nil, err
	}
	view, _, err = read()
	return view, err
}

func (q *bookingQueriesImpl) ListMyBookings(ctx context.Context, actor user.Actor) ([]*BookingView, error) {
	return q.listWithExpiry(ctx, func(ctx context.Context, tx shared.Tx) ([]*booking.Booking, error) {
		bookings, err := tx.Bookings().ListByUser(ctx, actor.UserID)
		if err != nil {
			return nil, err
		}
		visible := bookings[:0]
		for _, b := range bookings {
			if b.Status() != booking.StatusArchived {
				visible = append(visible, b)
			}
		}
		return visible, nil
	})
}

func (q *bookingQueriesImpl) ListAmenityBookings(ctx context.Context, actor user.Actor, amenityID uuid.UUID, from, to time.Time) ([]*BookingView, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	if !from.Before(to) {
		return nil, ErrInvalidRange
	}
	return q.listWithExpiry(ctx, func(ctx context.Context, tx shared.Tx) ([]*booking.Booking, error) {
		if _, err := tx.Amenities().FindByID(ctx, amenityID); err != nil {
			if errs.Is(err, errs.ErrNotFound) {
				return nil, ErrAmenityNotFound
			}
			return nil, err
		}
		return tx.Bookings().ListByAmenityRange(ctx, amenityID, from, to)
	})
}

// listWithExpiry reads, expires any overdue offers it saw, and reads again.
func (q *bookingQueriesImpl) listWithExpiry(
	ctx context.Context,
	load func(ctx context.Context, tx shared.Tx) ([]*booking.Booking, error),
) ([]*BookingView, error) {
	read := func() ([]*BookingView, []uuid.UUID, error) {
		var (
			views   []*BookingView
			overdue []uuid.UUID
		)
		err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
			bookings, err := load(ctx, tx)
			if err != nil {
				return err
			}
			rows, err := q.attachOffers(ctx, tx, bookings)
			if err != nil {
				return err
			}
			now := q.clock.Now()
			overdue = overdue[:0]
			for _, r := range rows {
				if r.offer != nil && r.offer.IsOverdue(now) {
					overdue = append(overdue, r.booking.ID())
				}
			}
			views, err = q.toViews(ctx, tx, rows)
			return err
		})
		return views, overdue, err
	}

	views, overdue, err := read()
	if err != nil || len(overdue) == 0 {
		return views, err
	}
	for _, id := range overdue {
		if err := q.expirer.ExpireOverdueOffer(ctx, id); err != nil {
			q.logger.WarnContext(ctx, "lazy offer expiry failed", "booking_id", id, "error", err.Error())
		}
	}
	views, _, err = read()
	return views, err
}

func (q *bookingQueriesImpl) attachOffers(ctx context.Context, tx shared.Tx, bookings []*booking.Booking) ([]bookingRow, error) {
	rows := make([]bookingRow, 0, len(bookings))
	for _, b := range bookings {
		row := bookingRow{booking: b}
		if b.Status() == booking.StatusPendingConfirmation {
			offer, err := tx.Offers().FindByBookingID(ctx, b.ID())
			if err != nil && !errs.Is(err, errs.ErrNotFound) {
				return nil, err
			}
			row.offer = offer
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (q *bookingQueriesImpl) toViews(ctx context.Context, tx shared.Tx, rows []bookingRow) ([]*BookingView, error) {
	names := map[uuid.UUID]string{}
	now := q.clock.Now()
	views := make([]*BookingView, 0, len(rows))
	for _, r := range rows {
		name, ok := names[r.booking.AmenityID()]
		if !ok {
			a, err := tx.Amenities().FindByID(ctx, r.booking.AmenityID())
			if err != nil {
				return nil, err
			}
			name = a.Name()
			names[a.ID()] = name
		}
		views = append(views, NewBookingView(r.booking, name, r.offer, now))
	}
	sort.SliceStable(views, func(i, j int) bool {
		return views[i].StartTime.Before(views[j].StartTime)
	})
	return views, nil
}

func (q *bookingQueriesImpl) ListMyWaitlist(ctx context.Context, actor user.Actor) ([]*WaitlistEntryView, error) {
	var views []*WaitlistEntryView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		entries, err := tx.Waitlist().ListByUser(ctx, actor.UserID)
		if err != nil {
			return err
		}
		views = make([]*WaitlistEntryView, 0, len(entries))
		for _, e := range entries {
			a, err := tx.Amenities().FindByID(ctx, e.AmenityID())
			if err != nil {
				return err
			}
			pos, err := tx.Waitlist().Position(ctx, e)
			if err != nil {
				return err
			}
			views = append(views, &WaitlistEntryView{
				ID:          e.ID(),
				AmenityID:   e.AmenityID(),
				AmenityName: a.Name(),
				StartTime:   e.Window().Start(),
				EndTime:     e.Window().End(),
				Position:    pos,
				JoinedAt:    e.JoinedAt(),
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(views, func(i, j int) bool {
		return views[i].StartTime.Before(views[j].StartTime)
	})
	return views, nil
}
