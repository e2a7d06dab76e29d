package notification

import (
	"context"
	"log/slog"
	"time"

	"amenity-booking/internal/domain/user"
	"amenity-booking/internal/pkg/clock"
	"amenity-booking/internal/pkg/config"
	"amenity-booking/internal/pkg/errs"
	"amenity-booking/internal/pkg/metrics"
	"amenity-booking/internal/usecase/notify"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
)

// EmailJob is the message handed to the external mailer.
type EmailJob struct {
	MessageID string         `json:"messageId"`
	UserID    string         `json:"userId"`
	To        string         `json:"to"`
	Template  string         `json:"template"`
	Data      map[string]any `json:"data"`
	CreatedAt time.Time      `json:"createdAt"`
}

// Transport hands a job to a delivery channel. Errors marked with
// notify.ErrPermanentDelivery are not retried.
type Transport interface {
	Deliver(ctx context.Context, job EmailJob) error
}

type Dispatcher struct {
	transport Transport
	cfg       config.NotifyConfig
	clock     clock.Clock
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

func NewDispatcher(transport Transport, cfg config.NotifyConfig, clock clock.Clock, m *metrics.Metrics, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		transport: transport,
		cfg:       cfg,
		clock:     clock,
		metrics:   m,
		logger:    logger,
	}
}

func (d *Dispatcher) Send(ctx context.Context, to notify.Recipient, tmpl notify.Template, data map[string]any) notify.SendResult {
	email, err := user.NewEmail(to.Email)
	if err != nil {
		d.metrics.Notification(tmpl.String(), "rejected")
		return notify.SendResult{Error: errs.Mark(errs.Wrapf(err, "recipient %s", to.UserID), notify.ErrPermanentDelivery)}
	}

	job := EmailJob{
		MessageID: uuid.NewString(),
		UserID:    to.UserID.String(),
		To:        email.Value(),
		Template:  tmpl.String(),
		Data:      data,
		CreatedAt: d.clock.Now().UTC(),
	}

	attempts := 0
	op := func() error {
		attempts++
		err := d.transport.Deliver(ctx, job)
		if err != nil && errs.Is(err, notify.ErrPermanentDelivery) {
			return backoff.Permanent(err)
		}
		return err
	}
	if err := backoff.Retry(op, d.policy(ctx)); err != nil {
		d.metrics.Notification(tmpl.String(), "failed")
		d.logger.WarnContext(ctx, "notification not delivered",
			"template", tmpl, "message_id", job.MessageID, "attempts", attempts, "error", err.Error())
		if !errs.Is(err, notify.ErrPermanentDelivery) {
			err = errs.Mark(err, notify.ErrTransientDelivery)
		}
		return notify.SendResult{MessageID: job.MessageID, Error: err}
	}

	d.metrics.Notification(tmpl.String(), "sent")
	return notify.SendResult{Success: true, MessageID: job.MessageID}
}

// policy allows MaxRetries retries after the first attempt.
func (d *Dispatcher) policy(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = d.cfg.InitialInterval
	b.MaxInterval = d.cfg.MaxInterval
	b.MaxElapsedTime = 0
	b.Reset()
	return backoff.WithContext(backoff.WithMaxRetries(b, d.cfg.MaxRetries), ctx)
}
