package promotion

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"amenity-booking/internal/domain/amenity"
	"amenity-booking/internal/domain/booking"
	"amenity-booking/internal/domain/slot"
	"amenity-booking/internal/domain/waitlist"
	"amenity-booking/internal/pkg/clock"
	"amenity-booking/internal/pkg/errs"
	"amenity-booking/internal/pkg/metrics"
	"amenity-booking/internal/usecase/notify"
	"amenity-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrOfferNotFound = errs.Mark(errors.New("promotion offer not found"), errs.ErrNotFound)
	ErrNotOfferee    = errs.Mark(errors.New("offer belongs to another user"), errs.ErrAuthorization)
)

// LinkIssuer builds the signed confirm and decline URLs sent with an offer.
type LinkIssuer interface {
	OfferLinks(bookingID, userID uuid.UUID, deadline time.Time) (confirmURL, declineURL string, err error)
}

// Promotion is the pending booking and offer created for the head of a waitlist.
type Promotion struct {
	Booking *booking.Booking
	Offer   *waitlist.Offer
}

// Resolution describes what a confirm, decline or expiry did to an offer.
type Resolution struct {
	Booking *booking.Booking
	Offer   *waitlist.Offer
	// Expired is set when the deadline had passed. The expiry and its cascade
	// are staged in the transaction and must be committed by the caller.
	Expired bool
	// Next is the follow-up promotion after a decline or expiry, if any.
	Next *Promotion
}

type Scheduler struct {
	settings shared.Settings
	links    LinkIssuer
	clock    clock.Clock
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

func NewScheduler(settings shared.Settings, links LinkIssuer, clock clock.Clock, m *metrics.Metrics, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		settings: settings,
		links:    links,
		clock:    clock,
		metrics:  m,
		logger:   logger,
	}
}

// OnVacancy offers a freed window to the head of its waitlist. It is a no-op when
// the window has started (the queue is purged), when the window is held again,
// or when the queue is empty.
func (s *Scheduler) OnVacancy(ctx context.Context, tx shared.Tx, amenityID uuid.UUID, w slot.Window, batch *notify.Batch) (*Promotion, error) {
	if err := tx.LockSlot(ctx, amenityID, w); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	if !now.Before(w.Start()) {
		purged, err := tx.Waitlist().RemoveSlot(ctx, amenityID, w)
		if err != nil {
			return nil, err
		}
		if purged > 0 {
			s.logger.InfoContext(ctx, "purged waitlist for started slot",
				"amenity_id", amenityID, "slot", w.String(), "purged", purged)
		}
		return nil, nil
	}

	occupied, err := tx.Bookings().HasActiveOverlap(ctx, amenityID, w)
	if err != nil {
		return nil, err
	}
	if occupied {
		return nil, nil
	}

	head, err := tx.Waitlist().Head(ctx, amenityID, w)
	if err != nil {
		return nil, err
	}
	if head == nil {
		return nil, nil
	}

	a, err := tx.Amenities().FindByID(ctx, amenityID)
	if err != nil {
		return nil, err
	}
	pending, err := booking.NewPendingBooking(booking.NewBookingParams{
		AmenityID:   amenityID,
		CommunityID: a.CommunityID(),
		UserID:      head.UserID(),
		UserEmail:   head.UserEmail(),
		Window:      w,
		MaxPeople:   a.MaxPeople(),
	}, now)
	if err != nil {
		return nil, err
	}
	offer := waitlist.NewOffer(head, pending.ID(), now, s.settings.OfferTTL)

	if err := tx.Bookings().Create(ctx, pending); err != nil {
		return nil, err
	}
	if err := tx.Offers().Create(ctx, offer); err != nil {
		return nil, err
	}
	if err := tx.Waitlist().Remove(ctx, head.ID()); err != nil {
		return nil, err
	}

	confirmURL, declineURL, err := s.links.OfferLinks(pending.ID(), head.UserID(), offer.Deadline())
	if err != nil {
		return nil, errs.Wrap(err, "failed to issue offer links")
	}
	data := s.slotData(a, w)
	data["bookingId"] = pending.ID().String()
	data["deadline"] = offer.Deadline().In(s.settings.Location).Format(time.RFC3339)
	data["confirmUrl"] = confirmURL
	data["declineUrl"] = declineURL
	batch.Add(notify.Recipient{UserID: head.UserID(), Email: head.UserEmail()}, notify.TemplateWaitlistPromoted, data)

	s.metrics.Promotion("offered")
	s.logger.InfoContext(ctx, "waitlist entry promoted",
		"amenity_id", amenityID, "slot", w.String(), "user_id", head.UserID(), "booking_id", pending.ID())

	return &Promotion{Booking: pending, Offer: offer}, nil
}

// Confirm accepts the offer held by bookingID on behalf of userID.
func (s *Scheduler) Confirm(ctx context.Context, tx shared.Tx, bookingID, userID uuid.UUID, batch *notify.Batch) (*Resolution, error) {
	offer, b, err := s.load(ctx, tx, bookingID, userID)
	if err != nil {
		return nil, err
	}

	switch {
	case offer.Status() == waitlist.OfferConfirmed:
		return &Resolution{Booking: b, Offer: offer}, nil
	case offer.Status() == waitlist.OfferExpired:
		return &Resolution{Booking: b, Offer: offer, Expired: true}, nil
	case offer.IsOverdue(s.clock.Now()):
		return s.expire(ctx, tx, offer, b, batch)
	}

	now := s.clock.Now()
	if err := offer.Confirm(now); err != nil {
		return nil, err
	}
	code, err := booking.NewAccessCode()
	if err != nil {
		return nil, err
	}
	if err := b.Confirm(code, now); err != nil {
		return nil, err
	}
	if err := tx.Bookings().Update(ctx, b); err != nil {
		return nil, err
	}
	if err := tx.Offers().Update(ctx, offer); err != nil {
		return nil, err
	}

	a, err := tx.Amenities().FindByID(ctx, b.AmenityID())
	if err != nil {
		return nil, err
	}
	data := s.slotData(a, b.Window())
	data["bookingId"] = b.ID().String()
	data["accessCode"] = code
	batch.Add(notify.Recipient{UserID: b.UserID(), Email: b.UserEmail()}, notify.TemplateBookingConfirmation, data)

	s.metrics.Promotion("confirmed")
	return &Resolution{Booking: b, Offer: offer}, nil
}

// Decline gives up the offer and cascades to the next waitlist entry.
func (s *Scheduler) Decline(ctx context.Context, tx shared.Tx, bookingID, userID uuid.UUID, batch *notify.Batch) (*Resolution, error) {
	offer, b, err := s.load(ctx, tx, bookingID, userID)
	if err != nil {
		return nil, err
	}

	switch {
	case offer.Status() == waitlist.OfferDeclined:
		return &Resolution{Booking: b, Offer: offer}, nil
	case offer.Status() == waitlist.OfferExpired:
		return &Resolution{Booking: b, Offer: offer, Expired: true}, nil
	case offer.IsOverdue(s.clock.Now()):
		return s.expire(ctx, tx, offer, b, batch)
	}

	now := s.clock.Now()
	if err := offer.Decline(now); err != nil {
		return nil, err
	}
	reason := "promotion declined"
	if err := b.Cancel(userID, &reason, now); err != nil {
		return nil, err
	}
	if err := tx.Bookings().Update(ctx, b); err != nil {
		return nil, err
	}
	if err := tx.Offers().Update(ctx, offer); err != nil {
		return nil, err
	}
	s.metrics.Promotion("declined")

	next, err := s.OnVacancy(ctx, tx, b.AmenityID(), b.Window(), batch)
	if err != nil {
		return nil, err
	}
	return &Resolution{Booking: b, Offer: offer, Next: next}, nil
}

// ExpireIfOverdue expires the offer held by bookingID when its deadline passed.
// It returns nil when the offer is missing, resolved, or still open.
func (s *Scheduler) ExpireIfOverdue(ctx context.Context, tx shared.Tx, bookingID uuid.UUID, batch *notify.Batch) (*Resolution, error) {
	offer, err := tx.Offers().FindByBookingID(ctx, bookingID)
	if err != nil {
		if errs.Is(err, errs.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if !offer.IsOverdue(s.clock.Now()) {
		return nil, nil
	}
	b, err := shared.LockBooking(ctx, tx, bookingID)
	if err != nil {
		return nil, err
	}
	// a concurrent confirm or decline may have resolved it while we waited
	if offer, err = tx.Offers().FindByBookingID(ctx, bookingID); err != nil {
		return nil, err
	}
	if !offer.IsOverdue(s.clock.Now()) {
		return nil, nil
	}
	return s.expire(ctx, tx, offer, b, batch)
}

func (s *Scheduler) expire(ctx context.Context, tx shared.Tx, offer *waitlist.Offer, b *booking.Booking, batch *notify.Batch) (*Resolution, error) {
	now := s.clock.Now()
	if err := offer.Expire(now); err != nil {
		return nil, err
	}
	if err := b.ExpireOffer(now); err != nil {
		return nil, err
	}
	if err := tx.Bookings().Update(ctx, b); err != nil {
		return nil, err
	}
	if err := tx.Offers().Update(ctx, offer); err != nil {
		return nil, err
	}
	s.metrics.Promotion("expired")
	s.logger.InfoContext(ctx, "promotion offer expired",
		"booking_id", b.ID(), "user_id", b.UserID(), "deadline", offer.Deadline())

	next, err := s.OnVacancy(ctx, tx, b.AmenityID(), b.Window(), batch)
	if err != nil {
		return nil, err
	}
	return &Resolution{Booking: b, Offer: offer, Expired: true, Next: next}, nil
}

// load reads the offer and its booking under the slot lock.
func (s *Scheduler) load(ctx context.Context, tx shared.Tx, bookingID, userID uuid.UUID) (*waitlist.Offer, *booking.Booking, error) {
	b, err := shared.LockBooking(ctx, tx, bookingID)
	if err != nil {
		if errs.Is(err, errs.ErrNotFound) {
			return nil, nil, ErrOfferNotFound
		}
		return nil, nil, err
	}
	offer, err := tx.Offers().FindByBookingID(ctx, bookingID)
	if err != nil {
		if errs.Is(err, errs.ErrNotFound) {
			return nil, nil, ErrOfferNotFound
		}
		return nil, nil, err
	}
	if offer.UserID() != userID {
		return nil, nil, ErrNotOfferee
	}
	return offer, b, nil
}

func (s *Scheduler) slotData(a *amenity.Amenity, w slot.Window) map[string]any {
	return SlotData(a, w, s.settings.Location)
}

// SlotData is the common notification payload describing a booked window.
func SlotData(a *amenity.Amenity, w slot.Window, loc *time.Location) map[string]any {
	return map[string]any{
		"amenityId":   a.ID().String(),
		"amenityName": a.Name(),
		"startTime":   w.Start().In(loc).Format(time.RFC3339),
		"endTime":     w.End().In(loc).Format(time.RFC3339),
	}
}
