package ports

import (
	"context"

	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// The store owns identifiers, audit timestamps, and the optimistic-concurrency
// version; callers never set those fields themselves.
type OrderRepository interface {
	// Save persists the aggregate. An order without an identifier is
	// inserted: the store assigns the identifier, both timestamps, and
	// version 0. An order with an identifier is updated with its version
	// as the optimistic-concurrency guard: the store bumps the version and
	// the modification timestamp, or fails with an error unwrapping to
	// errs.ErrVersionIsInvalid when the supplied version is stale.
	// On success the store-managed fields on the aggregate are refreshed.
	Save(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by its identifier. Returns an error unwrapping
	// to errs.ErrObjectNotFound when the order is unknown to this store.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAll retrieves every known order. Iteration order carries no
	// semantic meaning to callers.
	GetAll(ctx context.Context) ([]*order.Order, error)
}
