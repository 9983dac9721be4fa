// Package http exposes the order management REST API.
// It coordinates between HTTP handlers and application use cases.
package http

import (
	"time"

	"github.com/shopspring/decimal"

	"ordermgmt/internal/core/application/usecases/queries"
)

// SubmitOrderRequest is the payload for creating an order.
type SubmitOrderRequest struct {
	Customer string          `json:"customer" example:"ACME Corp"`
	Product  string          `json:"product" example:"Widget"`
	Amount   decimal.Decimal `json:"amount" swaggertype:"string" example:"19.99"`
}

// SubmitOrderResponse carries the identifier of the created order.
type SubmitOrderResponse struct {
	ID string `json:"id" example:"123e4567-e89b-12d3-a456-426614174000"`
}

// OrderResponse is the API representation of an order.
type OrderResponse struct {
	ID        string          `json:"id" example:"123e4567-e89b-12d3-a456-426614174000"`
	Customer  string          `json:"customer" example:"ACME Corp"`
	Product   string          `json:"product" example:"Widget"`
	Amount    decimal.Decimal `json:"amount" swaggertype:"string" example:"19.99"`
	Status    string          `json:"status" example:"Submitted"`
	CreatedAt time.Time       `json:"createdAt"`
}

// ErrorResponse is the API error body.
type ErrorResponse struct {
	Code    int    `json:"code" example:"404"`
	Message string `json:"message" example:"Order not found"`
}

func toOrderResponse(resp queries.OrderResponse) OrderResponse {
	return OrderResponse{
		ID:        resp.ID.String(),
		Customer:  resp.Customer,
		Product:   resp.Product,
		Amount:    resp.Amount,
		Status:    resp.Status,
		CreatedAt: resp.CreatedAt,
	}
}
