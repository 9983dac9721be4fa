package order

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"ordermgmt/internal/core/domain/model/kernel"
	"ordermgmt/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

const (
	// MaxCustomerLength is the maximum length of the customer name.
	MaxCustomerLength = 100

	// MaxProductLength is the maximum length of the product name.
	MaxProductLength = 200
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through NewOrder or RestoreOrder. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")
)

// Order represents a customer order in the system. It is the aggregate root
// that manages the order lifecycle from submission through fulfillment to
// finalization.
//
// Order follows these invariants:
//   - Must have a valid unique identifier, assigned at creation and immutable
//   - Customer name must be non-empty and at most 100 characters
//   - Product name must be non-empty and at most 200 characters
//   - Amount must be strictly positive with at most two fractional digits
//   - Status only advances Submitted -> InFulfillment -> Finalized
//   - Creation timestamp is a UTC instant, assigned at creation and immutable
//
// The Order struct uses private fields to ensure encapsulation and maintains
// its invariants through validated methods.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// customer is the name of the ordering customer
	customer string

	// product is the name of the ordered product
	product string

	// amount is the order total (two fractional digits of precision)
	amount decimal.Decimal

	// status represents the current state in the order lifecycle
	status Status

	// createdAt is the UTC instant the order was created
	createdAt time.Time

	// isConstructed ensures the order was created via NewOrder or RestoreOrder
	isConstructed bool
}

// NewOrder creates a new Order in Submitted status, assigning a fresh
// identifier and the current UTC time as the creation timestamp. This is the
// only way to create a brand-new order, ensuring all invariants hold.
//
// Example:
//
//	amount := decimal.RequireFromString("9.99")
//	ord, err := order.NewOrder("Ana", "Widget", amount)
//	if err != nil {
//	    // Handle validation error
//	}
func NewOrder(customer, product string, amount decimal.Decimal) (*Order, error) {
	newOrder := &Order{
		id:            kernel.NewUUID(),
		status:        Submitted,
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		newOrder.setCustomer(customer),
		newOrder.setProduct(product),
		newOrder.setAmount(amount),
	); err != nil {
		return nil, err
	}

	return newOrder, nil
}

// RestoreOrder reconstructs an Order from persistence. It validates every
// field, including the status, so a row that was corrupted outside the
// application cannot re-enter the domain unnoticed.
func RestoreOrder(
	id kernel.UUID,
	customer, product string,
	amount decimal.Decimal,
	status Status,
	createdAt time.Time,
) (*Order, error) {
	restored := &Order{
		isConstructed: true,
	}

	if err := errors.Join(
		restored.setID(id),
		restored.setCustomer(customer),
		restored.setProduct(product),
		restored.setAmount(amount),
		restored.setStatus(status),
		restored.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	return restored, nil
}

// Validate ensures the Order instance was properly constructed through
// NewOrder or RestoreOrder. This prevents bypassing validation by directly
// instantiating the struct.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Customer returns the customer name.
func (o *Order) Customer() string {
	return o.customer
}

// Product returns the product name.
func (o *Order) Product() string {
	return o.product
}

// Amount returns the order total.
func (o *Order) Amount() decimal.Decimal {
	return o.amount
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// CreatedAt returns the UTC instant the order was created.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// StartFulfillment advances the order from Submitted to InFulfillment.
//
// Returns an error if the order is not in Submitted status; the order is left
// unchanged in that case.
func (o *Order) StartFulfillment() error {
	newStatus, err := o.status.StartFulfillment()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// Finalize advances the order from InFulfillment to Finalized, the terminal
// state of the lifecycle.
//
// Returns an error if the order is not in InFulfillment status; the order is
// left unchanged in that case.
func (o *Order) Finalize() error {
	newStatus, err := o.status.Finalize()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// setID validates and sets the order's unique identifier.
// This is a private method used only during reconstruction.
func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

// setCustomer validates and sets the customer name.
func (o *Order) setCustomer(customer string) error {
	if customer == "" {
		return errs.NewValueIsRequiredError("customer")
	}
	if length := utf8.RuneCountInString(customer); length > MaxCustomerLength {
		return errs.NewValueIsOutOfRangeError("customer length", length, 1, MaxCustomerLength)
	}
	o.customer = customer
	return nil
}

// setProduct validates and sets the product name.
func (o *Order) setProduct(product string) error {
	if product == "" {
		return errs.NewValueIsRequiredError("product")
	}
	if length := utf8.RuneCountInString(product); length > MaxProductLength {
		return errs.NewValueIsOutOfRangeError("product length", length, 1, MaxProductLength)
	}
	o.product = product
	return nil
}

// setAmount validates and sets the order total.
// The amount must be strictly positive and carry at most two fractional digits.
func (o *Order) setAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("amount is invalid",
			fmt.Errorf("%s is not greater than 0", amount))
	}
	if !amount.Equal(amount.Round(2)) {
		return errs.NewValueIsInvalidErrorWithCause("amount is invalid",
			fmt.Errorf("%s has more than 2 fractional digits", amount))
	}
	o.amount = amount
	return nil
}

// setStatus validates and sets the status.
// This is a private method used only during reconstruction.
func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

// setCreatedAt validates and sets the creation timestamp, normalized to UTC.
// This is a private method used only during reconstruction.
func (o *Order) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	o.createdAt = createdAt.UTC()
	return nil
}
