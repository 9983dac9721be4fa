package ports

import (
	"context"
	"time"

	"ordermgmt/internal/core/domain/model/kernel"
	"ordermgmt/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// The store is the sole source of truth for order state; no component caches
// order state across calls.
//
// The repository performs no business-rule validation beyond field
// constraints. Enforcing the status-transition invariant is the caller's
// responsibility, exercised through UpdateStatusIf.
type OrderRepository interface {
	// Add persists a new order aggregate.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns errs.ObjectNotFoundError when no such order exists.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAll retrieves all stored orders. Iteration order is unspecified.
	GetAll(ctx context.Context) ([]*order.Order, error)

	// Update persists changes to an existing order aggregate.
	// Returns errs.ObjectNotFoundError when the order does not exist.
	Update(ctx context.Context, aggregate *order.Order) error

	// UpdateStatusIf performs a conditional status write: the stored status is
	// set to next only if it still equals expected at write time.
	//
	// Returns (true, nil) when the transition was applied, (false, nil) when
	// the stored status no longer matches expected (a concurrent writer won
	// the race), and errs.ObjectNotFoundError when the order does not exist.
	// This is the only mechanism coordinating concurrent writers, which may
	// run in separate processes.
	UpdateStatusIf(ctx context.Context, id kernel.UUID, expected, next order.Status) (bool, error)

	// Delete removes an order by its identifier.
	// Returns errs.ObjectNotFoundError when the order does not exist.
	Delete(ctx context.Context, id kernel.UUID) error

	// GetSubmittedBefore retrieves orders still in Submitted status created
	// before the cutoff. Used by the orphan reconciliation path to find orders
	// whose fulfillment envelope may never have been published.
	GetSubmittedBefore(ctx context.Context, cutoff time.Time) ([]*order.Order, error)
}
