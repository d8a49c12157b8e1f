package publisher

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"

	"campaign_sync/internal/domain"
)

// RabbitMQ publishes sync job events to a topic exchange. The routing key is
// the event channel: sync:{jobId} for progress, sync:{jobId}:done for the
// terminal event.
type RabbitMQ struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	logger   *slog.Logger
}

// Config configures the publisher. QueueName is optional; when set, a
// durable queue is declared and bound with BindingKey ("#" if empty).
type Config struct {
	URL        string
	Exchange   string
	QueueName  string
	BindingKey string
}

func NewRabbitMQ(cfg Config, logger *slog.Logger) (*RabbitMQ, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		cfg.Exchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	if cfg.QueueName != "" {
		bindingKey := cfg.BindingKey
		if bindingKey == "" {
			bindingKey = "#"
		}

		q, err := ch.QueueDeclare(
			cfg.QueueName,
			true,
			false,
			false,
			false,
			nil,
		)
		if err != nil {
			ch.Close()
			conn.Close()
			return nil, fmt.Errorf("declare queue: %w", err)
		}

		if err := ch.QueueBind(q.Name, bindingKey, cfg.Exchange, false, nil); err != nil {
			ch.Close()
			conn.Close()
			return nil, fmt.Errorf("bind queue: %w", err)
		}
	}

	logger.Info("connected to rabbitmq",
		"exchange", cfg.Exchange,
		"queue", cfg.QueueName,
	)

	return &RabbitMQ{
		conn:     conn,
		channel:  ch,
		exchange: cfg.Exchange,
		logger:   logger,
	}, nil
}

// PublishSyncEvent sends one event. Terminal events are persistent,
// progress ticks are not.
func (r *RabbitMQ) PublishSyncEvent(ctx context.Context, event domain.SyncEvent) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	mode := amqp.Transient
	if event.Terminal() {
		mode = amqp.Persistent
	}

	r.mu.Lock()
	err = r.channel.PublishWithContext(
		ctx,
		r.exchange,
		event.Channel(),
		false,
		false,
		amqp.Publishing{
			DeliveryMode:  mode,
			ContentType:   "application/json",
			Type:          string(event.Type),
			CorrelationId: event.JobID,
			Body:          body,
			Timestamp:     event.Timestamp,
		},
	)
	r.mu.Unlock()
	if err != nil {
		return fmt.Errorf("publish event: %w", err)
	}

	r.logger.Debug("published sync event",
		"job_id", event.JobID,
		"type", event.Type,
		"routing_key", event.Channel(),
	)

	return nil
}

func (r *RabbitMQ) Close() error {
	if r.channel != nil {
		r.channel.Close()
	}
	if r.conn != nil {
		return r.conn.Close()
	}
	return nil
}
