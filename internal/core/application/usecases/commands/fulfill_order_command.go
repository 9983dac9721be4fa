package commands

import (
	"errors"

	"github.com/google/uuid"

	"ordermgmt/internal/core/application/contracts"
	"ordermgmt/internal/pkg/guard"
)

var (
	ErrFulfillOrderCommandIsNotConstructed = errors.New(
		"FulfillOrderCommand must be created via NewFulfillOrderCommand constructor",
	)
	ErrEnvelopeOrderIDIsRequired = errors.New("envelope order id is required")
)

// FulfillmentResult classifies the outcome of processing one fulfillment
// envelope. Every value except FulfillmentUnknown means the delivery was
// handled and must be acknowledged; transient failures are reported through
// the error return instead.
type FulfillmentResult int

const (
	// FulfillmentUnknown means processing did not reach a terminal outcome.
	// Only returned alongside a non-nil error.
	FulfillmentUnknown FulfillmentResult = iota

	// FulfillmentCompleted means this delivery moved the order to Finalized.
	FulfillmentCompleted

	// FulfillmentAlreadySatisfied means the order had already progressed past
	// Submitted, typically because the envelope is a broker redelivery.
	FulfillmentAlreadySatisfied

	// FulfillmentOrderMissing means no order exists for the envelope.
	// The delivery is acknowledged; retrying cannot make the order appear.
	FulfillmentOrderMissing
)

// String returns the metric label for the result.
func (r FulfillmentResult) String() string {
	switch r {
	case FulfillmentCompleted:
		return "completed"
	case FulfillmentAlreadySatisfied:
		return "already_satisfied"
	case FulfillmentOrderMissing:
		return "order_missing"
	default:
		return "unknown"
	}
}

// FulfillOrderCommand represents one fulfillment envelope delivered from the
// message bus. The envelope is treated as a work notification only; the
// authoritative order state is always re-read from the store.
type FulfillOrderCommand struct { //nolint:recvcheck //using for validation
	envelope contracts.FulfillmentEnvelope

	guard guard.ConstructorGuard
}

// NewFulfillOrderCommand creates a command from a decoded envelope.
// Returns an error if the envelope carries no order identifier.
func NewFulfillOrderCommand(envelope contracts.FulfillmentEnvelope) (FulfillOrderCommand, error) {
	if envelope.OrderID == uuid.Nil {
		return FulfillOrderCommand{}, ErrEnvelopeOrderIDIsRequired
	}

	return FulfillOrderCommand{
		envelope: envelope,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrFulfillOrderCommandIsNotConstructed if validation fails.
func (c FulfillOrderCommand) Validate() error {
	return c.guard.Validate(ErrFulfillOrderCommandIsNotConstructed)
}

// Envelope returns the delivered fulfillment envelope.
func (c FulfillOrderCommand) Envelope() contracts.FulfillmentEnvelope {
	return c.envelope
}
