package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	amqp "github.com/rabbitmq/amqp091-go"
)

type ConsumerConfig struct {
	URL      string
	Queue    string
	Prefetch int
}

// Consumer reads job envelopes from a durable queue. It implements
// suture.Service: a lost connection ends Serve with an error and the
// supervisor restarts it.
type Consumer struct {
	cfg        ConsumerConfig
	dispatcher *Dispatcher
	logger     *slog.Logger
}

func NewConsumer(cfg ConsumerConfig, dispatcher *Dispatcher, logger *slog.Logger) *Consumer {
	if cfg.Prefetch <= 0 {
		cfg.Prefetch = 1
	}
	return &Consumer{
		cfg:        cfg,
		dispatcher: dispatcher,
		logger:     logger.With("component", "job_consumer", "queue", cfg.Queue),
	}
}

func (c *Consumer) Serve(ctx context.Context) error {
	conn, err := amqp.Dial(c.cfg.URL)
	if err != nil {
		return fmt.Errorf("connect to rabbitmq: %w", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}
	defer ch.Close()

	if _, err := ch.QueueDeclare(c.cfg.Queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}
	if err := ch.Qos(c.cfg.Prefetch, 0, false); err != nil {
		return fmt.Errorf("set qos: %w", err)
	}

	deliveries, err := ch.ConsumeWithContext(ctx, c.cfg.Queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume: %w", err)
	}

	c.logger.Info("job consumer started")

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("job consumer stopped")
			return ctx.Err()
		case d, ok := <-deliveries:
			if !ok {
				return errors.New("delivery channel closed")
			}
			c.handle(ctx, d)
		}
	}
}

func (c *Consumer) String() string {
	return "job-consumer"
}

// handle acks processed jobs. Failed jobs are dropped, not requeued: the
// retry job owns re-execution of failed campaigns.
func (c *Consumer) handle(ctx context.Context, d amqp.Delivery) {
	if err := c.dispatcher.Dispatch(ctx, d.Body); err != nil {
		c.logger.Error("job failed", "error", err, "message_id", d.MessageId)
		if nerr := d.Nack(false, false); nerr != nil {
			c.logger.Error("nack job", "error", nerr)
		}
		return
	}
	if err := d.Ack(false); err != nil {
		c.logger.Error("ack job", "error", err)
	}
}
