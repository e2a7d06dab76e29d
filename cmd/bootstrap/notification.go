package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"amenity-booking/internal/infra/notification"
	"amenity-booking/internal/pkg/clock"
	"amenity-booking/internal/pkg/config"
	"amenity-booking/internal/pkg/metrics"
	"amenity-booking/internal/usecase/notify"

	"go.uber.org/fx"
)

var NotificationModule = fx.Module("notification",
	fx.Provide(
		NewTransport,
		NewNotificationSink,
	),
)

func NewNotificationSink(t notification.Transport, cfg config.Config, clock clock.Clock, m *metrics.Metrics, logger *slog.Logger) notify.Sink {
	return notification.NewDispatcher(t, cfg.Notify, clock, m, logger)
}

// NewTransport selects the delivery channel named by NOTIFY_TRANSPORT.
func NewTransport(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (notification.Transport, error) {
	switch cfg.Notify.Transport {
	case "log", "":
		return notification.NewLogTransport(logger), nil
	case "amqp":
		t := notification.NewAMQPTransport(cfg.AMQP.URL, cfg.AMQP.Queue, logger)
		lc.Append(fx.Hook{
			OnStop: func(_ context.Context) error {
				return t.Close()
			},
		})
		return t, nil
	default:
		return nil, fmt.Errorf("unknown NOTIFY_TRANSPORT %q", cfg.Notify.Transport)
	}
}
