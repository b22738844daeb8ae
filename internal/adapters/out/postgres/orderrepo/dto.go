// Package orderrepo persists order aggregates with GORM. It owns the mapping
// between the aggregate and its relational shape, the assignment of
// store-managed fields on insert, and the optimistic-concurrency check on
// update.
package orderrepo

import (
	"time"

	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is the database row for an order aggregate. Book name and price
// are nullable because rejected orders never obtained a catalog snapshot.
type OrderDTO struct {
	ID         uuid.UUID        `gorm:"type:uuid;primaryKey"`
	BookISBN   string           `gorm:"type:varchar(32);not null"`
	BookName   *string          `gorm:"type:varchar(255)"`
	BookPrice  *decimal.Decimal `gorm:"type:numeric(10,2)"`
	Quantity   int              `gorm:"not null"`
	Status     int              `gorm:"not null;index"`
	CreatedAt  time.Time        `gorm:"not null"`
	ModifiedAt time.Time        `gorm:"not null"`
	Version    int64            `gorm:"not null"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order aggregate to its database representation.
// Store-managed fields are copied as-is; Save adjusts them around the write.
func fromDomain(o *order.Order) OrderDTO {
	return OrderDTO{
		ID:         o.ID().Bytes(),
		BookISBN:   o.BookISBN(),
		BookName:   o.BookName(),
		BookPrice:  o.BookPrice(),
		Quantity:   o.Quantity(),
		Status:     int(o.Status()),
		CreatedAt:  o.CreatedAt(),
		ModifiedAt: o.ModifiedAt(),
		Version:    o.Version(),
	}
}

// toDomain converts a database row back to an order aggregate.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return order.Restore(
		id,
		dto.BookISBN,
		dto.BookName,
		dto.BookPrice,
		dto.Quantity,
		order.Status(dto.Status),
		dto.CreatedAt.UTC(),
		dto.ModifiedAt.UTC(),
		dto.Version,
	)
}
