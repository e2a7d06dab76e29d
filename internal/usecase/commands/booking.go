package commands

import (
	"context"
	"log/slog"
	"time"

	"amenity-booking/internal/domain/amenity"
	"amenity-booking/internal/domain/booking"
	"amenity-booking/internal/domain/slot"
	"amenity-booking/internal/domain/user"
	"amenity-booking/internal/domain/waitlist"
	"amenity-booking/internal/pkg/clock"
	"amenity-booking/internal/pkg/errs"
	"amenity-booking/internal/pkg/metrics"
	"amenity-booking/internal/usecase/notify"
	"amenity-booking/internal/usecase/promotion"
	"amenity-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateStatus string

const (
	CreateConfirmed  CreateStatus = "confirmed"
	CreateWaitlisted CreateStatus = "waitlisted"
)

type CreateBookingInput struct {
	AmenityID uuid.UUID
	Start     time.Time
	End       time.Time
	Attendees []uuid.UUID
}

type CreateBookingResult struct {
	Status   CreateStatus
	Booking  *booking.Booking
	Entry    *waitlist.Entry
	Position int
	Warnings []string
}

type CancelBookingResult struct {
	Booking          *booking.Booking
	WaitlistPromoted bool
	PromotedUser     *notify.Recipient
	Warnings         []string
}

type OfferResult struct {
	Booking  *booking.Booking
	Warnings []string
}

type BookingCommands interface {
	CreateBooking(ctx context.Context, actor user.Actor, in CreateBookingInput) (*CreateBookingResult, error)
	CancelBooking(ctx context.Context, actor user.Actor, bookingID uuid.UUID, reason *string) (*CancelBookingResult, error)
	CheckIn(ctx context.Context, actor user.Actor, bookingID uuid.UUID) (*booking.Booking, error)
	CompleteBooking(ctx context.Context, actor user.Actor, bookingID uuid.UUID) (*booking.Booking, error)
	ClearBooking(ctx context.Context, actor user.Actor, bookingID uuid.UUID) (*booking.Booking, error)
	// ConfirmOffer and DeclineOffer return the committed result together with
	// waitlist.ErrOfferExpired when the deadline had already passed.
	ConfirmOffer(ctx context.Context, userID, bookingID uuid.UUID) (*OfferResult, error)
	DeclineOffer(ctx context.Context, userID, bookingID uuid.UUID) (*OfferResult, error)
	LeaveWaitlist(ctx context.Context, actor user.Actor, entryID uuid.UUID) error
}

type bookingCommandsImpl struct {
	uow        shared.UnitOfWork
	scheduler  *promotion.Scheduler
	calculator *amenity.AvailabilityCalculator
	sink       notify.Sink
	settings   shared.Settings
	clock      clock.Clock
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

func NewBookingCommands(
	uow shared.UnitOfWork,
	scheduler *promotion.Scheduler,
	sink notify.Sink,
	settings shared.Settings,
	clock clock.Clock,
	m *metrics.Metrics,
	logger *slog.Logger,
) BookingCommands {
	return &bookingCommandsImpl{
		uow:        uow,
		scheduler:  scheduler,
		calculator: amenity.NewAvailabilityCalculator(settings.Location),
		sink:       sink,
		settings:   settings,
		clock:      clock,
		metrics:    m,
		logger:     logger,
	}
}

func (c *bookingCommandsImpl) CreateBooking(ctx context.Context, actor user.Actor, in CreateBookingInput) (*CreateBookingResult, error) {
	w, err := slot.NewWindow(in.Start, in.End)
	if err != nil {
		return nil, ErrInvalidTimeSlot
	}
	now := c.clock.Now()
	if !now.Before(w.Start()) {
		return nil, ErrSlotInPast
	}

	batch := notify.NewBatch()
	var result *CreateBookingResult
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		batch.Reset()
		a, err := tx.Amenities().FindByID(ctx, in.AmenityID)
		if err != nil {
			return notFound(err, ErrAmenityNotFound)
		}
		if !actor.IsAdmin() && actor.CommunityID != uuid.Nil && actor.CommunityID != a.CommunityID() {
			return ErrForbidden
		}
		if err := booking.ValidateAttendees(actor.UserID, in.Attendees, a.MaxPeople()); err != nil {
			return err
		}
		if err := tx.LockSlot(ctx, a.ID(), w); err != nil {
			return err
		}

		avail, err := c.calculator.Check(ctx, a, w, tx.Bookings())
		if err != nil {
			return err
		}
		switch {
		case avail.Available:
			result, err = c.createConfirmed(ctx, tx, actor, a, w, in.Attendees, now, batch)
		case avail.Kind == amenity.RejectionSlotFull:
			result, err = c.joinWaitlist(ctx, tx, actor, a, w, now, batch)
		default:
			err = &UnavailableError{Kind: avail.Kind, Reason: avail.Reason}
		}
		return err
	})
	if err != nil {
		c.metrics.BookingOutcome("rejected")
		return nil, err
	}

	c.metrics.BookingOutcome(string(result.Status))
	result.Warnings = notify.Flush(ctx, c.sink, c.logger, batch)
	return result, nil
}

func (c *bookingCommandsImpl) createConfirmed(
	ctx context.Context,
	tx shared.Tx,
	actor user.Actor,
	a *amenity.Amenity,
	w slot.Window,
	attendees []uuid.UUID,
	now time.Time,
	batch *notify.Batch,
) (*CreateBookingResult, error) {
	code, err := booking.NewAccessCode()
	if err != nil {
		return nil, err
	}
	b, err := booking.NewConfirmedBooking(booking.NewBookingParams{
		AmenityID:   a.ID(),
		CommunityID: a.CommunityID(),
		UserID:      actor.UserID,
		UserEmail:   actor.Email,
		Window:      w,
		Attendees:   attendees,
		MaxPeople:   a.MaxPeople(),
	}, code, now)
	if err != nil {
		return nil, err
	}
	if err := tx.Bookings().Create(ctx, b); err != nil {
		return nil, err
	}

	data := promotion.SlotData(a, w, c.settings.Location)
	data["bookingId"] = b.ID().String()
	data["accessCode"] = code
	batch.Add(notify.Recipient{UserID: actor.UserID, Email: actor.Email}, notify.TemplateBookingConfirmation, data)

	c.logger.InfoContext(ctx, "booking confirmed",
		"booking_id", b.ID(), "amenity_id", a.ID(), "user_id", actor.UserID, "slot", w.String())
	return &CreateBookingResult{Status: CreateConfirmed, Booking: b}, nil
}

func (c *bookingCommandsImpl) joinWaitlist(
	ctx context.Context,
	tx shared.Tx,
	actor user.Actor,
	a *amenity.Amenity,
	w slot.Window,
	now time.Time,
	batch *notify.Batch,
) (*CreateBookingResult, error) {
	holder, err := tx.Bookings().FindActiveOverlap(ctx, a.ID(), w)
	if err != nil {
		return nil, err
	}
	if holder != nil && holder.UserID() == actor.UserID {
		return nil, ErrDuplicateBooking
	}

	ahead, err := tx.Waitlist().Count(ctx, a.ID(), w)
	if err != nil {
		return nil, err
	}
	entry := waitlist.NewEntry(a.ID(), w, actor.UserID, actor.Email, now)
	if err := tx.Waitlist().Enqueue(ctx, entry); err != nil {
		return nil, err
	}
	position := ahead + 1

	data := promotion.SlotData(a, w, c.settings.Location)
	data["waitlistEntryId"] = entry.ID().String()
	data["position"] = position
	batch.Add(notify.Recipient{UserID: actor.UserID, Email: actor.Email}, notify.TemplateWaitlistJoined, data)

	c.logger.InfoContext(ctx, "joined waitlist",
		"entry_id", entry.ID(), "amenity_id", a.ID(), "user_id", actor.UserID, "slot", w.String(), "position", position)
	return &CreateBookingResult{Status: CreateWaitlisted, Entry: entry, Position: position}, nil
}

func (c *bookingCommandsImpl) CancelBooking(ctx context.Context, actor user.Actor, bookingID uuid.UUID, reason *string) (*CancelBookingResult, error) {
	batch := notify.NewBatch()
	var result *CancelBookingResult
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		batch.Reset()
		b, err := c.loadManaged(ctx, tx, actor, bookingID)
		if err != nil {
			return err
		}

		now := c.clock.Now()
		wasPending := b.Status() == booking.StatusPendingConfirmation
		if err := b.Cancel(actor.UserID, reason, now); err != nil {
			return err
		}
		if err := tx.Bookings().Update(ctx, b); err != nil {
			return err
		}
		if wasPending {
			if err := c.withdrawOffer(ctx, tx, b.ID(), now); err != nil {
				return err
			}
		}

		promo, err := c.scheduler.OnVacancy(ctx, tx, b.AmenityID(), b.Window(), batch)
		if err != nil {
			return err
		}

		a, err := tx.Amenities().FindByID(ctx, b.AmenityID())
		if err != nil {
			return err
		}
		data := promotion.SlotData(a, b.Window(), c.settings.Location)
		data["bookingId"] = b.ID().String()
		if actor.UserID != b.UserID() {
			data["cancelledBy"] = actor.UserID.String()
			data["cancelledByAdmin"] = actor.IsAdmin()
			if r := b.CancellationReason(); r != nil {
				data["reason"] = *r
			}
		}
		batch.Add(notify.Recipient{UserID: b.UserID(), Email: b.UserEmail()}, notify.TemplateBookingCancellation, data)

		result = &CancelBookingResult{Booking: b}
		if promo != nil {
			result.WaitlistPromoted = true
			result.PromotedUser = &notify.Recipient{UserID: promo.Booking.UserID(), Email: promo.Booking.UserEmail()}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.logger.InfoContext(ctx, "booking cancelled",
		"booking_id", bookingID, "cancelled_by", actor.UserID, "waitlist_promoted", result.WaitlistPromoted)
	result.Warnings = notify.Flush(ctx, c.sink, c.logger, batch)
	return result, nil
}

func (c *bookingCommandsImpl) withdrawOffer(ctx context.Context, tx shared.Tx, bookingID uuid.UUID, now time.Time) error {
	offer, err := tx.Offers().FindByBookingID(ctx, bookingID)
	if err != nil {
		if errs.Is(err, errs.ErrNotFound) {
			return nil
		}
		return err
	}
	if !offer.IsPending() {
		return nil
	}
	if err := offer.Withdraw(now); err != nil {
		return err
	}
	return tx.Offers().Update(ctx, offer)
}

func (c *bookingCommandsImpl) CheckIn(ctx context.Context, actor user.Actor, bookingID uuid.UUID) (*booking.Booking, error) {
	return c.transition(ctx, actor, bookingID, func(b *booking.Booking, now time.Time) error {
		return b.CheckIn(now, c.settings.CheckInGrace)
	})
}

func (c *bookingCommandsImpl) CompleteBooking(ctx context.Context, actor user.Actor, bookingID uuid.UUID) (*booking.Booking, error) {
	return c.transition(ctx, actor, bookingID, func(b *booking.Booking, now time.Time) error {
		return b.Complete(now)
	})
}

func (c *bookingCommandsImpl) ClearBooking(ctx context.Context, actor user.Actor, bookingID uuid.UUID) (*booking.Booking, error) {
	return c.transition(ctx, actor, bookingID, func(b *booking.Booking, now time.Time) error {
		return b.Archive(now)
	})
}

func (c *bookingCommandsImpl) transition(
	ctx context.Context,
	actor user.Actor,
	bookingID uuid.UUID,
	apply func(b *booking.Booking, now time.Time) error,
) (*booking.Booking, error) {
	var out *booking.Booking
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := c.loadManaged(ctx, tx, actor, bookingID)
		if err != nil {
			return err
		}
		if err := apply(b, c.clock.Now()); err != nil {
			return err
		}
		if err := tx.Bookings().Update(ctx, b); err != nil {
			return err
		}
		out = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *bookingCommandsImpl) ConfirmOffer(ctx context.Context, userID, bookingID uuid.UUID) (*OfferResult, error) {
	return c.resolveOffer(ctx, userID, bookingID, c.scheduler.Confirm)
}

func (c *bookingCommandsImpl) DeclineOffer(ctx context.Context, userID, bookingID uuid.UUID) (*OfferResult, error) {
	return c.resolveOffer(ctx, userID, bookingID, c.scheduler.Decline)
}

type offerAction func(ctx context.Context, tx shared.Tx, bookingID, userID uuid.UUID, batch *notify.Batch) (*promotion.Resolution, error)

func (c *bookingCommandsImpl) resolveOffer(ctx context.Context, userID, bookingID uuid.UUID, action offerAction) (*OfferResult, error) {
	batch := notify.NewBatch()
	var res *promotion.Resolution
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		batch.Reset()
		var err error
		res, err = action(ctx, tx, bookingID, userID, batch)
		return err
	})
	if err != nil {
		return nil, err
	}

	result := &OfferResult{
		Booking:  res.Booking,
		Warnings: notify.Flush(ctx, c.sink, c.logger, batch),
	}
	if res.Expired {
		return result, waitlist.ErrOfferExpired
	}
	return result, nil
}

func (c *bookingCommandsImpl) LeaveWaitlist(ctx context.Context, actor user.Actor, entryID uuid.UUID) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		e, err := tx.Waitlist().FindByID(ctx, entryID)
		if err != nil {
			return notFound(err, ErrWaitlistEntryNotFound)
		}
		if !actor.CanManage(e.UserID()) {
			return ErrForbidden
		}
		if err := tx.LockSlot(ctx, e.AmenityID(), e.Window()); err != nil {
			return err
		}
		return tx.Waitlist().Remove(ctx, e.ID())
	})
}

// loadManaged locks the booking's slot and returns its current state.
func (c *bookingCommandsImpl) loadManaged(ctx context.Context, tx shared.Tx, actor user.Actor, bookingID uuid.UUID) (*booking.Booking, error) {
	b, err := shared.LockBooking(ctx, tx, bookingID)
	if err != nil {
		return nil, notFound(err, ErrBookingNotFound)
	}
	if !actor.CanManage(b.UserID()) {
		return nil, ErrForbidden
	}
	return b, nil
}
