package notification

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"amenity-booking/internal/pkg/errs"
	"amenity-booking/internal/usecase/notify"

	amqp "github.com/rabbitmq/amqp091-go"
)

// AMQPTransport publishes jobs to a durable queue on the default exchange.
// The connection is opened lazily and reopened after a failed publish.
type AMQPTransport struct {
	mu     sync.Mutex
	url    string
	queue  string
	conn   *amqp.Connection
	ch     *amqp.Channel
	logger *slog.Logger
}

func NewAMQPTransport(url, queue string, logger *slog.Logger) *AMQPTransport {
	return &AMQPTransport{url: url, queue: queue, logger: logger}
}

func (t *AMQPTransport) Deliver(ctx context.Context, job EmailJob) error {
	body, err := json.Marshal(job)
	if err != nil {
		return errs.Mark(errs.Wrap(err, "failed to encode email job"), notify.ErrPermanentDelivery)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	ch, err := t.channel()
	if err != nil {
		return errs.Mark(err, notify.ErrTransientDelivery)
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    job.MessageID,
		Type:         job.Template,
		Timestamp:    job.CreatedAt,
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", t.queue, false, false, pub); err != nil {
		t.reset()
		return errs.Mark(errs.Wrap(err, "failed to publish email job"), notify.ErrTransientDelivery)
	}
	return nil
}

func (t *AMQPTransport) channel() (*amqp.Channel, error) {
	if t.ch != nil && !t.ch.IsClosed() {
		return t.ch, nil
	}
	t.reset()

	conn, err := amqp.Dial(t.url)
	if err != nil {
		return nil, errs.Wrap(err, "rabbitmq dial failed")
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, errs.Wrap(err, "rabbitmq channel open failed")
	}
	if _, err := ch.QueueDeclare(t.queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, errs.Wrap(err, "rabbitmq queue declare failed")
	}

	t.conn, t.ch = conn, ch
	return ch, nil
}

func (t *AMQPTransport) reset() {
	if t.ch != nil {
		_ = t.ch.Close()
		t.ch = nil
	}
	if t.conn != nil {
		_ = t.conn.Close()
		t.conn = nil
	}
}

func (t *AMQPTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.reset()
	t.logger.Info("rabbitmq transport closed", "queue", t.queue)
	return nil
}
