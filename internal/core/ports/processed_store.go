package ports

import (
	"context"

	"ordermgmt/internal/core/domain/model/kernel"
)

// ProcessedEnvelopeStore tracks fulfillment envelopes that have already been
// processed to completion. It is a fast-path deduplication cache for broker
// redeliveries; the conditional status update remains the correctness
// mechanism, so the store may lose entries without breaking the pipeline.
type ProcessedEnvelopeStore interface {
	// IsProcessed reports whether the envelope for the given order was
	// already processed. Implementations should fail open: on a store error
	// return (false, err) and let the caller fall through to the conditional
	// update.
	IsProcessed(ctx context.Context, orderID kernel.UUID) (bool, error)

	// MarkProcessed records that the envelope for the given order has been
	// processed to completion.
	MarkProcessed(ctx context.Context, orderID kernel.UUID) error
}
