package rabbitmq

import (
	"context"
	"log/slog"

	"ordermgmt/internal/core/application/contracts"
)

// EnvelopePublisher implements ports.EnvelopePublisher on the shared client.
type EnvelopePublisher struct {
	client *Client
	logger *slog.Logger
}

// NewEnvelopePublisher creates a publisher for fulfillment envelopes.
func NewEnvelopePublisher(client *Client, logger *slog.Logger) *EnvelopePublisher {
	return &EnvelopePublisher{
		client: client,
		logger: logger.With(slog.String("component", "publisher")),
	}
}

// Publish encodes the envelope and sends it to the fulfillment queue as a
// persistent, confirm-acknowledged message.
func (p *EnvelopePublisher) Publish(ctx context.Context, envelope contracts.FulfillmentEnvelope) error {
	body, err := contracts.EncodeFulfillmentEnvelope(envelope)
	if err != nil {
		return err
	}

	if err = p.client.PublishPersistent(ctx, RoutingKey, body); err != nil {
		return err
	}

	p.logger.InfoContext(ctx, "published fulfillment envelope",
		slog.String("order_id", envelope.OrderID.String()),
	)
	return nil
}
