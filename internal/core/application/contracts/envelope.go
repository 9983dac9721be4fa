// Package contracts defines the message payloads exchanged over the broker.
//
// Each queue carries exactly one payload schema, encoded and decoded by the
// codec functions in this package, so the shape of every message is statically
// known at both ends of the pipeline.
package contracts

import (
	"encoding/json"
	"fmt"
	"time"

	"ordermgmt/internal/core/domain/model/order"
	"ordermgmt/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FulfillmentEnvelope is the immutable snapshot of an order published to the
// fulfillment queue at creation time. It references the order by identifier
// and carries a verbatim copy of the fields as observed at publish time; later
// mutations of the order never produce a new envelope.
type FulfillmentEnvelope struct {
	OrderID   uuid.UUID       `json:"orderId"`
	Customer  string          `json:"customer"`
	Product   string          `json:"product"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"createdAt"`
}

// NewFulfillmentEnvelope snapshots a persisted order into an envelope.
func NewFulfillmentEnvelope(ord *order.Order) FulfillmentEnvelope {
	return FulfillmentEnvelope{
		OrderID:   ord.ID().Bytes(),
		Customer:  ord.Customer(),
		Product:   ord.Product(),
		Amount:    ord.Amount(),
		CreatedAt: ord.CreatedAt(),
	}
}

// EncodeFulfillmentEnvelope serializes an envelope to its wire form, a flat
// JSON object.
func EncodeFulfillmentEnvelope(env FulfillmentEnvelope) ([]byte, error) {
	body, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("encode fulfillment envelope: %w", err)
	}
	return body, nil
}

// DecodeFulfillmentEnvelope parses an envelope from its wire form.
//
// A payload that does not parse, or that carries a nil order identifier, is
// malformed: no redelivery can ever repair it, so consumers should drop such
// messages rather than abandon them.
func DecodeFulfillmentEnvelope(body []byte) (FulfillmentEnvelope, error) {
	var env FulfillmentEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return FulfillmentEnvelope{}, fmt.Errorf("decode fulfillment envelope: %w", err)
	}
	if env.OrderID == uuid.Nil {
		return FulfillmentEnvelope{}, errs.NewValueIsRequiredError("orderId")
	}
	return env, nil
}
