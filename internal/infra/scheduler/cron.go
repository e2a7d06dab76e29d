package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"amenity-booking/internal/pkg/errs"
	"amenity-booking/internal/usecase/promotion"

	"github.com/robfig/cron/v3"
)

// SweepRunner is the job executed on every tick.
type SweepRunner interface {
	Run(ctx context.Context) (promotion.SweepReport, error)
}

// Cron runs the sweep on a cron schedule. Ticks that arrive while a sweep is
// still running are skipped.
type Cron struct {
	cron    *cron.Cron
	runner  SweepRunner
	timeout time.Duration
	logger  *slog.Logger

	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc
}

func NewCron(runner SweepRunner, timeout time.Duration, logger *slog.Logger) *Cron {
	return &Cron{
		cron:    cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		runner:  runner,
		timeout: timeout,
		logger:  logger,
	}
}

func (c *Cron) Start(schedule string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.ctx, c.cancel = context.WithCancel(context.Background())
	if _, err := c.cron.AddFunc(schedule, c.tick); err != nil {
		c.cancel()
		return errs.Wrapf(err, "invalid sweep schedule %q", schedule)
	}
	c.cron.Start()
	c.logger.Info("sweep scheduler started", "schedule", schedule)
	return nil
}

// Stop cancels an in-flight sweep and waits for it to return or ctx to end.
func (c *Cron) Stop(ctx context.Context) error {
	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	c.mu.Unlock()

	select {
	case <-c.cron.Stop().Done():
		c.logger.Info("sweep scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Cron) tick() {
	ctx, cancel := context.WithTimeout(c.ctx, c.timeout)
	defer cancel()

	start := time.Now()
	report, err := c.runner.Run(ctx)
	if err != nil {
		c.logger.Error("sweep failed", "error", err.Error(), "duration", time.Since(start))
		return
	}
	for _, w := range report.Warnings {
		c.logger.Warn("sweep warning", "warning", w)
	}
	c.logger.Info("sweep completed",
		"expired_offers", report.ExpiredOffers,
		"promotions", report.Promotions,
		"purged_entries", report.PurgedEntries,
		"confirmation_reminders", report.ConfirmationReminders,
		"booking_reminders", report.BookingReminders,
		"duration", time.Since(start))
}
