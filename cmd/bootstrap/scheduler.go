package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"amenity-booking/internal/infra/scheduler"
	"amenity-booking/internal/pkg/config"
	"amenity-booking/internal/usecase/promotion"

	"go.uber.org/fx"
)

const sweepTimeout = time.Minute

var SchedulerModule = fx.Module("scheduler",
	fx.Invoke(StartSweep),
)

func StartSweep(lc fx.Lifecycle, cfg config.Config, sweeper *promotion.Sweeper, logger *slog.Logger) {
	if !cfg.Sweep.Enabled {
		logger.Info("sweep scheduler disabled")
		return
	}
	c := scheduler.NewCron(sweeper, sweepTimeout, logger)
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			return c.Start(cfg.Sweep.Schedule)
		},
		OnStop: func(ctx context.Context) error {
			return c.Stop(ctx)
		},
	})
}
