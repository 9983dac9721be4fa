package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"ordermgmt/internal/core/domain/model/kernel"
	"ordermgmt/internal/core/domain/model/order"
	"ordermgmt/internal/core/ports"
	"ordermgmt/internal/pkg/errs"
	"ordermgmt/internal/pkg/metrics"
)

// Sleeper suspends processing for the given duration, honoring context
// cancellation. Injected so tests run without real delays.
type Sleeper func(ctx context.Context, d time.Duration) error

// SleepWithContext is the production Sleeper. It returns the context error
// when cancelled before the duration elapses.
func SleepWithContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// FulfillOrderCommandHandler processes fulfillment envelopes delivered from
// the message bus. Processing is idempotent against broker redeliveries:
// every status write is a conditional update, so an envelope processed twice
// or raced by a concurrent worker converges on a single Finalized order.
//
// The handler classifies terminal outcomes in the FulfillmentResult return
// and reserves the error return for transient failures (store or bus
// unavailable, context cancelled) that warrant redelivery.
type FulfillOrderCommandHandler struct {
	orderRepository ports.OrderRepository
	processedStore  ports.ProcessedEnvelopeStore
	sleeper         Sleeper
	processingDelay time.Duration
	logger          *slog.Logger
}

// NewFulfillOrderCommandHandler creates a handler for fulfillment processing.
// The processingDelay simulates the external fulfillment work performed
// between the InFulfillment and Finalized transitions.
func NewFulfillOrderCommandHandler(
	orderRepository ports.OrderRepository,
	processedStore ports.ProcessedEnvelopeStore,
	sleeper Sleeper,
	processingDelay time.Duration,
	logger *slog.Logger,
) FulfillOrderCommandHandler {
	return FulfillOrderCommandHandler{
		orderRepository: orderRepository,
		processedStore:  processedStore,
		sleeper:         sleeper,
		processingDelay: processingDelay,
		logger:          logger.With(slog.String("component", "fulfillment")),
	}
}

// Handle processes one fulfillment envelope.
//
// The flow re-reads the order from the store, claims it with a conditional
// Submitted to InFulfillment update, suspends for the processing delay and
// finalizes with a conditional InFulfillment to Finalized update. Losing
// either conditional update means another delivery of the same envelope is
// ahead, which is reported as FulfillmentAlreadySatisfied.
func (h *FulfillOrderCommandHandler) Handle(
	ctx context.Context,
	cmd FulfillOrderCommand,
) (FulfillmentResult, error) {
	if err := cmd.Validate(); err != nil {
		return FulfillmentUnknown, err
	}

	envelope := cmd.Envelope()
	orderID, err := kernel.UUIDFromString(envelope.OrderID.String())
	if err != nil {
		return FulfillmentUnknown, err
	}

	log := h.logger.With(slog.String("order_id", orderID.String()))

	// Fast-path redelivery skip. The store may lose entries; correctness
	// rests on the conditional updates below, so errors only log.
	processed, err := h.processedStore.IsProcessed(ctx, orderID)
	if err != nil {
		log.Warn("processed-envelope lookup failed, falling through", slog.Any("error", err))
	} else if processed {
		log.Info("envelope already processed, skipping")
		return h.done(FulfillmentAlreadySatisfied), nil
	}

	aggregate, err := h.orderRepository.Get(ctx, orderID)
	if err != nil {
		var notFound *errs.ObjectNotFoundError
		if errors.As(err, &notFound) {
			log.Warn("envelope references unknown order")
			return h.done(FulfillmentOrderMissing), nil
		}
		return FulfillmentUnknown, err
	}

	if aggregate.Status().HasReached(order.InFulfillment) {
		log.Info("order already past Submitted", slog.String("status", aggregate.Status().String()))
		h.markProcessed(ctx, log, orderID)
		return h.done(FulfillmentAlreadySatisfied), nil
	}

	claimed, err := h.orderRepository.UpdateStatusIf(ctx, orderID, order.Submitted, order.InFulfillment)
	if err != nil {
		var notFound *errs.ObjectNotFoundError
		if errors.As(err, &notFound) {
			return h.done(FulfillmentOrderMissing), nil
		}
		return FulfillmentUnknown, err
	}
	if !claimed {
		log.Info("lost fulfillment claim to a concurrent delivery")
		return h.done(FulfillmentAlreadySatisfied), nil
	}

	if err = h.sleeper(ctx, h.processingDelay); err != nil {
		// The order stays InFulfillment; the redelivered envelope acks as
		// already satisfied once this write is visible.
		return FulfillmentUnknown, err
	}

	finalized, err := h.orderRepository.UpdateStatusIf(ctx, orderID, order.InFulfillment, order.Finalized)
	if err != nil {
		var notFound *errs.ObjectNotFoundError
		if errors.As(err, &notFound) {
			return h.done(FulfillmentOrderMissing), nil
		}
		return FulfillmentUnknown, err
	}
	if !finalized {
		log.Info("order finalized by a concurrent delivery")
		h.markProcessed(ctx, log, orderID)
		return h.done(FulfillmentAlreadySatisfied), nil
	}

	log.Info("order finalized")
	h.markProcessed(ctx, log, orderID)
	return h.done(FulfillmentCompleted), nil
}

func (h *FulfillOrderCommandHandler) done(result FulfillmentResult) FulfillmentResult {
	metrics.FulfillmentOutcomes.WithLabelValues(result.String()).Inc()
	return result
}

func (h *FulfillOrderCommandHandler) markProcessed(ctx context.Context, log *slog.Logger, id kernel.UUID) {
	if err := h.processedStore.MarkProcessed(ctx, id); err != nil {
		log.Warn("failed to mark envelope processed", slog.Any("error", err))
	}
}
