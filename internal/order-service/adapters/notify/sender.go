package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/jcmexdev/order-taking/internal/order-service/domain"
)

// Channel is the part of *amqp.Channel the sender uses.
type Channel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// AcknowledgmentMessage is the body queued for the mailer.
type AcknowledgmentMessage struct {
	EmailAddress string `json:"emailAddress"`
	Letter       string `json:"letter"`
}

// RabbitSender queues acknowledgments for the mailer on a durable queue.
type RabbitSender struct {
	ch       Channel
	exchange string
	queue    string
}

// NewRabbitSender declares queue once at startup. With an empty exchange the
// default exchange routes by queue name.
func NewRabbitSender(ch Channel, exchange, queue string) (*RabbitSender, error) {
	if _, err := ch.QueueDeclare(
		queue,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	); err != nil {
		return nil, fmt.Errorf("notify: declare queue %s: %w", queue, err)
	}
	return &RabbitSender{ch: ch, exchange: exchange, queue: queue}, nil
}

func (s *RabbitSender) SendOrderAcknowledgment(ctx context.Context, ack domain.OrderAcknowledgment) error {
	body, err := json.Marshal(AcknowledgmentMessage{
		EmailAddress: ack.EmailAddress.String(),
		Letter:       ack.Letter.String(),
	})
	if err != nil {
		return fmt.Errorf("notify: marshal acknowledgment: %w", err)
	}

	if err := s.ch.PublishWithContext(ctx, s.exchange, s.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	}); err != nil {
		return fmt.Errorf("notify: publish acknowledgment: %w", err)
	}
	return nil
}

// LogSender writes acknowledgments to the log. It is used when no broker is
// configured.
type LogSender struct{}

func (LogSender) SendOrderAcknowledgment(ctx context.Context, ack domain.OrderAcknowledgment) error {
	slog.InfoContext(ctx, "order acknowledgment",
		"email", ack.EmailAddress.String(),
		"letter_bytes", len(ack.Letter.String()),
	)
	return nil
}
