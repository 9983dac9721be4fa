package commands

import (
	"context"

	"ordermgmt/internal/core/ports"
)

// DeleteOrderCommandHandler handles order removal.
// Deleting an order does not recall its fulfillment envelope; a later
// delivery for the removed order resolves as order-missing and is dropped.
type DeleteOrderCommandHandler struct {
	orderRepository ports.OrderRepository
}

// NewDeleteOrderCommandHandler creates a handler for order removal.
func NewDeleteOrderCommandHandler(orderRepository ports.OrderRepository) DeleteOrderCommandHandler {
	return DeleteOrderCommandHandler{
		orderRepository: orderRepository,
	}
}

// Handle removes the order identified by the command.
// Returns errs.ObjectNotFoundError when the order does not exist.
func (h *DeleteOrderCommandHandler) Handle(ctx context.Context, cmd DeleteOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.orderRepository.Delete(ctx, cmd.OrderID())
}
