// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"ordermgmt/internal/core/domain/model/kernel"
	"ordermgmt/internal/core/domain/model/order"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Status and created_at are indexed because the reconciliation sweep filters
// on both.
type OrderDTO struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Customer  string          `gorm:"type:varchar(100);not null"`
	Product   string          `gorm:"type:varchar(200);not null"`
	Amount    decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	Status    int             `gorm:"index"`
	CreatedAt time.Time       `gorm:"index"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	return OrderDTO{
		ID:        aggregate.ID().Bytes(),
		Customer:  aggregate.Customer(),
		Product:   aggregate.Product(),
		Amount:    aggregate.Amount(),
		Status:    int(aggregate.Status()),
		CreatedAt: aggregate.CreatedAt(),
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate using RestoreOrder, which re-validates
// every field.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		dto.Customer,
		dto.Product,
		dto.Amount,
		order.Status(dto.Status),
		dto.CreatedAt.UTC(),
	)
}
