package orderrepo

import (
	"context"
	"errors"
	"time"

	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/core/domain/model/order"
	"orderservice/internal/pkg/errs"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Save persists the aggregate. Unpersisted orders are inserted with a fresh
// identifier, both timestamps, and version 0. Persisted orders are updated
// with the aggregate's version as the optimistic-concurrency guard.
// On success the store-managed fields on the aggregate are refreshed.
func (r *GormOrderRepository) Save(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	if !aggregate.IsPersisted() {
		return r.insert(ctx, aggregate)
	}
	return r.update(ctx, aggregate)
}

func (r *GormOrderRepository) insert(ctx context.Context, aggregate *order.Order) error {
	dto := fromDomain(aggregate)
	dto.ID = kernel.NewUUID().Bytes()
	now := time.Now().UTC()
	dto.CreatedAt = now
	dto.ModifiedAt = now
	dto.Version = 0

	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
			return errs.NewValueIsInvalidErrorWithCause("order id", err)
		}
		return err
	}

	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return err
	}
	return aggregate.MarkPersisted(id, dto.CreatedAt, dto.ModifiedAt, dto.Version)
}

func (r *GormOrderRepository) update(ctx context.Context, aggregate *order.Order) error {
	dto := fromDomain(aggregate)
	dto.ModifiedAt = time.Now().UTC()
	dto.Version = aggregate.Version() + 1

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, aggregate.Version()).
		Updates(map[string]any{
			"book_isbn":   dto.BookISBN,
			"book_name":   dto.BookName,
			"book_price":  dto.BookPrice,
			"quantity":    dto.Quantity,
			"status":      dto.Status,
			"modified_at": dto.ModifiedAt,
			"version":     dto.Version,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		// Zero rows means either the row is gone or someone else bumped
		// the version. Distinguish the two so callers can react.
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&OrderDTO{}).
			Where("id = ?", dto.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("order", aggregate.ID().String())
		}
		return errs.NewVersionIsInvalidError("order")
	}

	return aggregate.MarkPersisted(aggregate.ID(), aggregate.CreatedAt(), dto.ModifiedAt, dto.Version)
}

// Get retrieves an order by its identifier.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAll retrieves every known order.
func (r *GormOrderRepository) GetAll(ctx context.Context) ([]*order.Order, error) {
	var dtos []OrderDTO
	if err := r.db.WithContext(ctx).Find(&dtos).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}
