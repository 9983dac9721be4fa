package ports

import (
	"context"

	"ordermgmt/internal/core/application/contracts"
)

// EnvelopePublisher sends fulfillment envelopes to the message bus.
//
// Delivery is at-least-once: a successful return means the broker accepted
// the message, not that it was processed. Callers must treat a publish
// failure as fatal for the operation in progress; the persisted order is
// left in place for the reconciliation path to pick up.
type EnvelopePublisher interface {
	// Publish sends the envelope to the fulfillment queue.
	Publish(ctx context.Context, envelope contracts.FulfillmentEnvelope) error
}
