package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"ordermgmt/internal/core/application/contracts"
	"ordermgmt/internal/core/ports"
	"ordermgmt/internal/pkg/metrics"
)

// RepublishOrphansCommandHandler closes the gap between persisting an order
// and publishing its envelope. When the API process dies between the two
// writes, the order stays Submitted with no envelope on the bus; this handler
// re-emits envelopes for such orders. Duplicate envelopes are harmless
// because fulfillment processing is idempotent.
type RepublishOrphansCommandHandler struct {
	orderRepository ports.OrderRepository
	publisher       ports.EnvelopePublisher
	logger          *slog.Logger
}

// NewRepublishOrphansCommandHandler creates a reconciliation handler.
func NewRepublishOrphansCommandHandler(
	orderRepository ports.OrderRepository,
	publisher ports.EnvelopePublisher,
	logger *slog.Logger,
) RepublishOrphansCommandHandler {
	return RepublishOrphansCommandHandler{
		orderRepository: orderRepository,
		publisher:       publisher,
		logger:          logger.With(slog.String("component", "reconciler")),
	}
}

// Handle republishes envelopes for Submitted orders older than the command's
// min age. Publish failures do not stop the sweep; the failed orders remain
// Submitted and are retried on the next run. Returns the number of envelopes
// republished and the joined publish errors, if any.
func (h *RepublishOrphansCommandHandler) Handle(
	ctx context.Context,
	cmd RepublishOrphansCommand,
) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	cutoff := time.Now().UTC().Add(-cmd.MinAge())
	orphans, err := h.orderRepository.GetSubmittedBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	var (
		republished int
		errsJoined  error
	)
	for _, aggregate := range orphans {
		envelope := contracts.NewFulfillmentEnvelope(aggregate)
		if err = h.publisher.Publish(ctx, envelope); err != nil {
			h.logger.Error("failed to republish orphan envelope",
				slog.String("order_id", aggregate.ID().String()),
				slog.Any("error", err),
			)
			errsJoined = errors.Join(errsJoined, err)
			continue
		}

		h.logger.Info("republished orphan envelope",
			slog.String("order_id", aggregate.ID().String()),
		)
		metrics.EnvelopesPublished.WithLabelValues(metrics.PublishSourceReconciler).Inc()
		metrics.OrphansRepublished.Inc()
		republished++
	}

	return republished, errsJoined
}
