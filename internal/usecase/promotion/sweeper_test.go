//go:build unit

package promotion_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"amenity-booking/internal/domain/amenity"
	"amenity-booking/internal/domain/booking"
	"amenity-booking/internal/domain/user"
	"amenity-booking/internal/infra/memstore"
	"amenity-booking/internal/pkg/clock"
	"amenity-booking/internal/usecase/commands"
	"amenity-booking/internal/usecase/notify"
	"amenity-booking/internal/usecase/promotion"
	"amenity-booking/internal/usecase/queries"
	"amenity-booking/internal/usecase/shared"
	"amenity-booking/tests/common/builder"
	"amenity-booking/tests/common/fake"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

var (
	sweepStart = time.Date(2030, 1, 5, 9, 0, 0, 0, time.UTC)
	slotStart  = time.Date(2030, 1, 8, 10, 0, 0, 0, time.UTC)
)

type sweeperSuite struct {
	suite.Suite

	ctx      context.Context
	store    *memstore.Store
	clock    *clock.MockClock
	sink     *fake.Sink
	settings shared.Settings
	sweeper  *promotion.Sweeper
	bookings commands.BookingCommands
	queries  queries.BookingQueries
	court    *amenity.Amenity
}

func TestSweeperSuite(t *testing.T) {
	suite.Run(t, new(sweeperSuite))
}

func (s *sweeperSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = memstore.New()
	s.clock = clock.NewMockClock(sweepStart)
	s.sink = fake.NewSink()
	s.settings = shared.DefaultSettings()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	scheduler := promotion.NewScheduler(s.settings, fake.Links{}, s.clock, nil, logger)
	s.sweeper = promotion.NewSweeper(s.store, scheduler, s.sink, s.settings, s.clock, nil, logger)
	s.bookings = commands.NewBookingCommands(s.store, scheduler, s.sink, s.settings, s.clock, nil, logger)
	s.queries = queries.NewBookingQueries(s.store, s.sweeper, s.clock, logger)

	s.court = builder.NewAmenityBuilder().MustBuildDomain()
	s.Require().NoError(s.store.Within(s.ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Amenities().Create(ctx, s.court)
	}))
}

func (s *sweeperSuite) actor() user.Actor {
	return builder.NewActorBuilder().InCommunity(s.court.CommunityID()).Build()
}

func (s *sweeperSuite) book(a user.Actor) *commands.CreateBookingResult {
	s.T().Helper()
	res, err := s.bookings.CreateBooking(s.ctx, a, commands.CreateBookingInput{
		AmenityID: s.court.ID(),
		Start:     slotStart,
		End:       slotStart.Add(2 * time.Hour),
	})
	s.Require().NoError(err)
	s.clock.Add(time.Minute)
	return res
}

func (s *sweeperSuite) run() promotion.SweepReport {
	s.T().Helper()
	report, err := s.sweeper.Run(s.ctx)
	s.Require().NoError(err)
	return report
}

func (s *sweeperSuite) pendingFor(a user.Actor) *queries.BookingView {
	s.T().Helper()
	mine, err := s.queries.ListMyBookings(s.ctx, a)
	s.Require().NoError(err)
	for _, v := range mine {
		if v.Status == booking.StatusPendingConfirmation.String() {
			return v
		}
	}
	s.FailNow("no pending booking")
	return nil
}

func (s *sweeperSuite) TestEmptyStore() {
	report := s.run()
	s.Equal(promotion.SweepReport{}, report)
}

func (s *sweeperSuite) TestOfferLifecycle() {
	holder, b, c := s.actor(), s.actor(), s.actor()
	held := s.book(holder).Booking
	s.book(b)
	s.book(c)

	_, err := s.bookings.CancelBooking(s.ctx, holder, held.ID(), nil)
	s.Require().NoError(err)
	offer := s.pendingFor(b)
	deadline := *offer.OfferDeadline

	s.Run("confirmation reminder is sent once 12 hours before the deadline", func() {
		s.clock.Set(deadline.Add(-s.settings.ConfirmationReminderLead + time.Minute))
		report := s.run()
		s.Equal(1, report.ConfirmationReminders)
		s.Zero(report.ExpiredOffers)

		reminded := s.sink.ByTemplate(notify.TemplateConfirmationReminder)
		s.Require().Len(reminded, 1)
		s.Equal(b.UserID, reminded[0].To.UserID)

		s.Zero(s.run().ConfirmationReminders)
	})

	s.Run("deadline expiry promotes the next entry", func() {
		s.clock.Set(deadline)
		report := s.run()
		s.Equal(1, report.ExpiredOffers)
		s.Equal(1, report.Promotions)

		promoted := s.sink.ByTemplate(notify.TemplateWaitlistPromoted)
		s.Require().Len(promoted, 2)
		s.Equal(c.UserID, promoted[1].To.UserID)

		mine, err := s.queries.ListMyBookings(s.ctx, b)
		s.Require().NoError(err)
		s.Require().Len(mine, 1)
		s.Equal(booking.StatusExpired.String(), mine[0].Status)
	})

	s.Run("booking reminder before the slot", func() {
		next := s.pendingFor(c)
		_, err := s.bookings.ConfirmOffer(s.ctx, c.UserID, next.ID)
		s.Require().NoError(err)

		s.clock.Set(slotStart.Add(-s.settings.ReminderBefore + time.Hour))
		report := s.run()
		s.Equal(1, report.BookingReminders)

		reminders := s.sink.ByTemplate(notify.TemplateBookingReminder)
		s.Require().Len(reminders, 1)
		s.Equal(c.UserID, reminders[0].To.UserID)
		s.NotEmpty(reminders[0].Data["accessCode"])

		s.Zero(s.run().BookingReminders)
	})
}

func (s *sweeperSuite) TestPurgesStartedSlots() {
	holder, waiter := s.actor(), s.actor()
	s.book(holder)
	s.book(waiter)

	s.clock.Set(slotStart)
	report := s.run()
	s.Equal(1, report.PurgedEntries)

	waiting, err := s.queries.ListMyWaitlist(s.ctx, waiter)
	s.Require().NoError(err)
	s.Empty(waiting)
}

func (s *sweeperSuite) TestReminderFailuresBecomeWarnings() {
	holder := s.actor()
	s.book(holder)
	s.sink.FailFor[notify.TemplateBookingReminder] = notify.ErrTransientDelivery

	s.clock.Set(slotStart.Add(-time.Hour))
	report := s.run()
	s.Equal(1, report.BookingReminders)
	s.Require().Len(report.Warnings, 1)

	// the reminder is marked sent regardless, so it is not retried every sweep
	s.Zero(s.run().BookingReminders)
}

func (s *sweeperSuite) TestExpireOverdueOfferIgnoresMissingOffer() {
	s.NoError(s.sweeper.ExpireOverdueOffer(s.ctx, uuid.New()))
}
