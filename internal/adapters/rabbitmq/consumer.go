package rabbitmq

import (
	"context"
	"log/slog"

	amqp "github.com/rabbitmq/amqp091-go"

	"ordermgmt/internal/core/application/contracts"
	"ordermgmt/internal/core/application/usecases/commands"
	"ordermgmt/internal/pkg/metrics"
)

// verdict is the consumer's decision for one delivery.
type verdict int

const (
	// ackVerdict removes the delivery from the queue.
	ackVerdict verdict = iota

	// requeueVerdict returns the delivery for another attempt.
	requeueVerdict

	// dropVerdict rejects without requeue, dead-lettering the delivery.
	dropVerdict
)

// fulfillmentHandler is the slice of the command handler the consumer needs.
type fulfillmentHandler interface {
	Handle(ctx context.Context, cmd commands.FulfillOrderCommand) (commands.FulfillmentResult, error)
}

// Consumer subscribes to the fulfillment queue and drives envelope
// processing through the fulfillment command handler. Deliveries are
// acknowledged manually: terminal outcomes ack, transient failures requeue
// and malformed payloads are dead-lettered.
type Consumer struct {
	client   *Client
	handler  fulfillmentHandler
	logger   *slog.Logger
	prefetch int
	pool     *WorkerPool
}

// NewConsumer creates a consumer reading from the fulfillment queue.
// Prefetch bounds unacknowledged deliveries per channel; workers bounds
// concurrent processing.
func NewConsumer(
	client *Client,
	handler fulfillmentHandler,
	prefetch, workers int,
	logger *slog.Logger,
) *Consumer {
	return &Consumer{
		client:   client,
		handler:  handler,
		logger:   logger.With(slog.String("component", "consumer")),
		prefetch: prefetch,
		pool:     NewWorkerPool(workers),
	}
}

// Start consumes deliveries until the context is cancelled, then drains the
// worker pool before returning. Unacknowledged deliveries held at shutdown
// are redelivered by the broker.
func (c *Consumer) Start(ctx context.Context) error {
	ch, err := c.client.NewConsumerChannel(c.prefetch)
	if err != nil {
		return err
	}
	defer func() { _ = ch.Close() }()

	deliveries, err := ch.Consume(
		Queue,
		"",    // consumer tag
		false, // manual ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return err
	}

	c.logger.InfoContext(ctx, "consuming fulfillment envelopes",
		slog.String("queue", Queue),
		slog.Int("prefetch", c.prefetch),
	)

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("stopping consumer, draining workers")
			c.pool.Stop()
			return nil
		case delivery, ok := <-deliveries:
			if !ok {
				// Channel closed underneath us; let the caller restart
				// consumption once the client has reconnected.
				c.pool.Stop()
				return ctx.Err()
			}

			c.pool.Submit(func() {
				c.settle(delivery, c.process(ctx, delivery.Body))
			})
		}
	}
}

// process runs one delivery through decode, command construction and the
// fulfillment handler, and maps the outcome to a verdict.
func (c *Consumer) process(ctx context.Context, body []byte) verdict {
	envelope, err := contracts.DecodeFulfillmentEnvelope(body)
	if err != nil {
		c.logger.Error("dropping malformed envelope", slog.Any("error", err))
		return dropVerdict
	}

	cmd, err := commands.NewFulfillOrderCommand(envelope)
	if err != nil {
		c.logger.Error("dropping invalid envelope",
			slog.String("order_id", envelope.OrderID.String()),
			slog.Any("error", err),
		)
		return dropVerdict
	}

	result, err := c.handler.Handle(ctx, cmd)
	if err != nil {
		c.logger.Warn("fulfillment failed, requeueing",
			slog.String("order_id", envelope.OrderID.String()),
			slog.Any("error", err),
		)
		return requeueVerdict
	}

	c.logger.InfoContext(ctx, "envelope processed",
		slog.String("order_id", envelope.OrderID.String()),
		slog.String("result", result.String()),
	)
	return ackVerdict
}

// settle applies the verdict to the broker delivery.
func (c *Consumer) settle(delivery amqp.Delivery, v verdict) {
	switch v {
	case ackVerdict:
		if err := delivery.Ack(false); err != nil {
			c.logger.Error("failed to ack delivery", slog.Any("error", err))
		}
	case requeueVerdict:
		metrics.DeliveriesRequeued.Inc()
		if err := delivery.Nack(false, true); err != nil {
			c.logger.Error("failed to requeue delivery", slog.Any("error", err))
		}
	case dropVerdict:
		metrics.DeliveriesDropped.Inc()
		if err := delivery.Nack(false, false); err != nil {
			c.logger.Error("failed to drop delivery", slog.Any("error", err))
		}
	}
}
