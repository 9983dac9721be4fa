package commands

import (
	"errors"

	"github.com/shopspring/decimal"

	"ordermgmt/internal/pkg/guard"
)

var (
	ErrSubmitOrderCommandIsNotConstructed = errors.New(
		"SubmitOrderCommand must be created via NewSubmitOrderCommand constructor",
	)
	ErrCustomerIsRequired = errors.New("customer is required")
	ErrProductIsRequired  = errors.New("product is required")
	ErrAmountIsInvalid    = errors.New("amount must be greater than 0")
)

// SubmitOrderCommand represents a request to submit a new order into the
// fulfillment pipeline. Encapsulates the customer, product and monetary
// amount of the purchase.
//
// Example:
//
//	cmd, err := NewSubmitOrderCommand("ACME Corp", "Widget", decimal.NewFromFloat(19.99))
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewSubmitOrderCommandHandler(repo, publisher)
//	orderID, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("failed to submit order: %w", err)
//	}
//	fmt.Printf("Order %s submitted and queued for fulfillment", orderID)
type SubmitOrderCommand struct { //nolint:recvcheck //using for validation
	customer string
	product  string
	amount   decimal.Decimal

	guard guard.ConstructorGuard
}

// NewSubmitOrderCommand creates a command to submit a new order.
// Validates that customer and product are not empty and amount is positive.
// Returns an error if any validation fails.
func NewSubmitOrderCommand(customer, product string, amount decimal.Decimal) (SubmitOrderCommand, error) {
	orderCommand := SubmitOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setCustomer(customer),
		orderCommand.setProduct(product),
		orderCommand.setAmount(amount),
	); err != nil {
		return SubmitOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrSubmitOrderCommandIsNotConstructed if validation fails.
func (c SubmitOrderCommand) Validate() error {
	return c.guard.Validate(ErrSubmitOrderCommandIsNotConstructed)
}

// Customer returns the name of the ordering customer.
func (c SubmitOrderCommand) Customer() string {
	return c.customer
}

// Product returns the ordered product description.
func (c SubmitOrderCommand) Product() string {
	return c.product
}

// Amount returns the monetary amount of the order.
func (c SubmitOrderCommand) Amount() decimal.Decimal {
	return c.amount
}

func (c *SubmitOrderCommand) setCustomer(customer string) error {
	if customer == "" {
		return ErrCustomerIsRequired
	}

	c.customer = customer
	return nil
}

func (c *SubmitOrderCommand) setProduct(product string) error {
	if product == "" {
		return ErrProductIsRequired
	}

	c.product = product
	return nil
}

func (c *SubmitOrderCommand) setAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrAmountIsInvalid
	}

	c.amount = amount
	return nil
}
