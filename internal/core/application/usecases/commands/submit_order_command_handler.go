package commands

import (
	"context"

	"ordermgmt/internal/core/application/contracts"
	"ordermgmt/internal/core/domain/model/kernel"
	"ordermgmt/internal/core/domain/model/order"
	"ordermgmt/internal/core/ports"
	"ordermgmt/internal/pkg/metrics"
)

// SubmitOrderCommandHandler handles the business logic for order submission.
// Persists a new order in Submitted status and publishes its fulfillment
// envelope to the message bus. Persistence happens strictly before
// publication, so a consumer can never observe an envelope for an order that
// is not yet readable from the store.
//
// A publish failure after a successful persist surfaces as an error to the
// caller; the stored order is left in place and is later picked up by the
// orphan reconciliation job.
//
// Example:
//
//	handler := NewSubmitOrderCommandHandler(repo, publisher)
//	cmd, _ := NewSubmitOrderCommand("ACME Corp", "Widget", decimal.NewFromFloat(19.99))
//
//	orderID, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("order submission failed: %w", err)
//	}
//	// Order is persisted and queued for asynchronous fulfillment
type SubmitOrderCommandHandler struct {
	orderRepository ports.OrderRepository
	publisher       ports.EnvelopePublisher
}

// NewSubmitOrderCommandHandler creates a handler for order submission.
// Requires an OrderRepository for persistence and an EnvelopePublisher for
// queueing the fulfillment work item.
func NewSubmitOrderCommandHandler(
	orderRepository ports.OrderRepository,
	publisher ports.EnvelopePublisher,
) SubmitOrderCommandHandler {
	return SubmitOrderCommandHandler{
		orderRepository: orderRepository,
		publisher:       publisher,
	}
}

// Handle processes the order submission command.
// Creates the aggregate in Submitted status, persists it, then publishes the
// fulfillment envelope. Returns the identifier of the created order.
func (h *SubmitOrderCommandHandler) Handle(ctx context.Context, cmd SubmitOrderCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	aggregate, err := order.NewOrder(cmd.Customer(), cmd.Product(), cmd.Amount())
	if err != nil {
		return kernel.UUID{}, err
	}

	if err = h.orderRepository.Add(ctx, aggregate); err != nil {
		return kernel.UUID{}, err
	}
	metrics.OrdersSubmitted.Inc()

	envelope := contracts.NewFulfillmentEnvelope(aggregate)
	if err = h.publisher.Publish(ctx, envelope); err != nil {
		// The order stays persisted; the reconciliation job republishes it.
		metrics.PublishFailures.Inc()
		return kernel.UUID{}, err
	}
	metrics.EnvelopesPublished.WithLabelValues(metrics.PublishSourceAPI).Inc()

	return aggregate.ID(), nil
}
