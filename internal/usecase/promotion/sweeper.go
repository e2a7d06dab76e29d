package promotion

import (
	"context"
	"log/slog"
	"time"

	"amenity-booking/internal/domain/booking"
	"amenity-booking/internal/pkg/clock"
	"amenity-booking/internal/pkg/metrics"
	"amenity-booking/internal/usecase/notify"
	"amenity-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type SweepReport struct {
	ExpiredOffers         int
	Promotions            int
	PurgedEntries         int
	ConfirmationReminders int
	BookingReminders      int
	Warnings              []string
}

// Sweeper runs the time-driven half of the promotion engine: offer expiry,
// stale waitlist cleanup and reminders.
type Sweeper struct {
	uow       shared.UnitOfWork
	scheduler *Scheduler
	sink      notify.Sink
	settings  shared.Settings
	clock     clock.Clock
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

func NewSweeper(
	uow shared.UnitOfWork,
	scheduler *Scheduler,
	sink notify.Sink,
	settings shared.Settings,
	clock clock.Clock,
	m *metrics.Metrics,
	logger *slog.Logger,
) *Sweeper {
	return &Sweeper{
		uow:       uow,
		scheduler: scheduler,
		sink:      sink,
		settings:  settings,
		clock:     clock,
		metrics:   m,
		logger:    logger,
	}
}

// Run performs one sweep. A failing offer is logged and skipped so the rest
// of the sweep still runs.
func (s *Sweeper) Run(ctx context.Context) (SweepReport, error) {
	var report SweepReport
	now := s.clock.Now()

	var overdue []uuid.UUID
	err := s.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		offers, err := tx.Offers().ListOverdue(ctx, now)
		if err != nil {
			return err
		}
		overdue = overdue[:0]
		for _, o := range offers {
			overdue = append(overdue, o.BookingID())
		}
		return nil
	})
	if err != nil {
		s.metrics.Sweep("error")
		return report, err
	}

	for _, bookingID := range overdue {
		res, warnings, err := s.expireOne(ctx, bookingID)
		if err != nil {
			s.logger.ErrorContext(ctx, "failed to expire offer", "booking_id", bookingID, "error", err.Error())
			continue
		}
		report.Warnings = append(report.Warnings, warnings...)
		if res == nil {
			continue
		}
		report.ExpiredOffers++
		if res.Next != nil {
			report.Promotions++
		}
	}

	err = s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		n, err := tx.Waitlist().RemoveStartedBefore(ctx, now)
		report.PurgedEntries = n
		return err
	})
	if err != nil {
		s.metrics.Sweep("error")
		return report, err
	}

	sent, warnings, err := s.confirmationReminders(ctx, now)
	if err != nil {
		s.metrics.Sweep("error")
		return report, err
	}
	report.ConfirmationReminders = sent
	report.Warnings = append(report.Warnings, warnings...)

	sent, warnings, err = s.bookingReminders(ctx, now)
	if err != nil {
		s.metrics.Sweep("error")
		return report, err
	}
	report.BookingReminders = sent
	report.Warnings = append(report.Warnings, warnings...)

	s.metrics.Sweep("ok")
	s.logger.InfoContext(ctx, "sweep completed",
		"expired_offers", report.ExpiredOffers,
		"promotions", report.Promotions,
		"purged_entries", report.PurgedEntries,
		"confirmation_reminders", report.ConfirmationReminders,
		"booking_reminders", report.BookingReminders,
		"warnings", len(report.Warnings))
	return report, nil
}

// ExpireOverdueOffer is the lazy expiry path used by reads.
func (s *Sweeper) ExpireOverdueOffer(ctx context.Context, bookingID uuid.UUID) error {
	_, _, err := s.expireOne(ctx, bookingID)
	return err
}

func (s *Sweeper) expireOne(ctx context.Context, bookingID uuid.UUID) (*Resolution, []string, error) {
	batch := notify.NewBatch()
	var res *Resolution
	err := s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		batch.Reset()
		var err error
		res, err = s.scheduler.ExpireIfOverdue(ctx, tx, bookingID, batch)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return res, notify.Flush(ctx, s.sink, s.logger, batch), nil
}

func (s *Sweeper) confirmationReminders(ctx context.Context, now time.Time) (int, []string, error) {
	batch := notify.NewBatch()
	err := s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		batch.Reset()
		offers, err := tx.Offers().ListReminderDue(ctx, now, now.Add(s.settings.ConfirmationReminderLead))
		if err != nil {
			return err
		}
		for _, listed := range offers {
			if _, err := shared.LockBooking(ctx, tx, listed.BookingID()); err != nil {
				return err
			}
			o, err := tx.Offers().FindByBookingID(ctx, listed.BookingID())
			if err != nil {
				return err
			}
			if !o.IsPending() || o.ReminderSentAt() != nil {
				continue
			}
			a, err := tx.Amenities().FindByID(ctx, o.AmenityID())
			if err != nil {
				return err
			}
			o.MarkReminderSent(now)
			if err := tx.Offers().Update(ctx, o); err != nil {
				return err
			}
			data := SlotData(a, o.Window(), s.settings.Location)
			data["bookingId"] = o.BookingID().String()
			data["deadline"] = o.Deadline().In(s.settings.Location).Format(time.RFC3339)
			batch.Add(notify.Recipient{UserID: o.UserID(), Email: o.UserEmail()}, notify.TemplateConfirmationReminder, data)
		}
		return nil
	})
	if err != nil {
		return 0, nil, err
	}
	return batch.Len(), notify.Flush(ctx, s.sink, s.logger, batch), nil
}

func (s *Sweeper) bookingReminders(ctx context.Context, now time.Time) (int, []string, error) {
	batch := notify.NewBatch()
	err := s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		batch.Reset()
		bookings, err := tx.Bookings().ListReminderDue(ctx, now, now.Add(s.settings.ReminderBefore))
		if err != nil {
			return err
		}
		for _, listed := range bookings {
			b, err := shared.LockBooking(ctx, tx, listed.ID())
			if err != nil {
				return err
			}
			if b.Status() != booking.StatusConfirmed || b.ReminderSentAt() != nil {
				continue
			}
			a, err := tx.Amenities().FindByID(ctx, b.AmenityID())
			if err != nil {
				return err
			}
			b.MarkReminderSent(now)
			if err := tx.Bookings().Update(ctx, b); err != nil {
				return err
			}
			data := SlotData(a, b.Window(), s.settings.Location)
			data["bookingId"] = b.ID().String()
			if code := b.AccessCode(); code != nil {
				data["accessCode"] = *code
			}
			batch.Add(notify.Recipient{UserID: b.UserID(), Email: b.UserEmail()}, notify.TemplateBookingReminder, data)
		}
		return nil
	})
	if err != nil {
		return 0, nil, err
	}
	return batch.Len(), notify.Flush(ctx, s.sink, s.logger, batch), nil
}
