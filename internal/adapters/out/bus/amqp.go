package bus

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"orderhub/internal/core/ports"

	amqp "github.com/rabbitmq/amqp091-go"
)

// AMQPPublisher bridges events onto a RabbitMQ topic exchange for
// out-of-process consumers (reporting, branch displays). Routing keys are
// "<entity>.<action>", e.g. "order.update".
//
// Publish is fire-and-forget like the in-process hub: broker errors are
// logged and swallowed, never surfaced to the mutating caller.
type AMQPPublisher struct {
	log      *slog.Logger
	exchange string

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

// NewAMQPPublisher connects to the broker and declares the exchange.
func NewAMQPPublisher(url string, exchange string, log *slog.Logger) (*AMQPPublisher, error) {
	if log == nil {
		log = slog.Default()
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connect to amqp broker: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open amqp channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		exchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange %q: %w", exchange, err)
	}

	return &AMQPPublisher{
		log:      log.With("component", "amqp-publisher"),
		exchange: exchange,
		conn:     conn,
		ch:       ch,
	}, nil
}

// Publish sends the event to the exchange. Failures are logged, not
// returned.
func (p *AMQPPublisher) Publish(ctx context.Context, event ports.Event) {
	body, err := json.Marshal(event)
	if err != nil {
		p.log.Error("failed to marshal event", "entity", event.Entity, "action", event.Action, "error", err)
		return
	}

	routingKey := event.Entity + "." + event.Action

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.ch.PublishWithContext(ctx,
		p.exchange,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
	if err != nil {
		p.log.Error("failed to publish event", "routing_key", routingKey, "error", err)
	}
}

// Close releases the channel and connection.
func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ch.Close(); err != nil {
		_ = p.conn.Close()
		return err
	}
	return p.conn.Close()
}
