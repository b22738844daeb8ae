package queries

import (
	"context"
	"database/sql"
	"time"

	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetAllOrdersQueryHandler reads orders straight from the database,
// bypassing the aggregate. Read models never mutate state, so the write
// side's construction and validation machinery would only add cost here.
type GetAllOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetAllOrdersQueryHandler creates a handler for order listing queries.
// Requires a GORM database connection for query execution.
func NewGetAllOrdersQueryHandler(db *gorm.DB) GetAllOrdersQueryHandler {
	return GetAllOrdersQueryHandler{db: db}
}

// Handle executes the query and returns every order sorted by creation
// time, oldest first, so repeated polls see a stable prefix.
func (h GetAllOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetAllOrdersQuery,
) ([]GetAllOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetAllOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			book_isbn,
			book_name,
			book_price,
			quantity,
			status,
			created_at,
			modified_at,
			version
		FROM orders
		ORDER BY created_at, id
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetAllOrdersQueryResponse
		var id uuid.UUID
		var bookName sql.NullString
		var bookPrice decimal.NullDecimal
		var status int
		var createdAt, modifiedAt time.Time

		err = rows.Scan(
			&id,
			&resp.BookISBN,
			&bookName,
			&bookPrice,
			&resp.Quantity,
			&status,
			&createdAt,
			&modifiedAt,
			&resp.Version,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = orderID

		if bookName.Valid {
			name := bookName.String
			resp.BookName = &name
		}
		if bookPrice.Valid {
			price := bookPrice.Decimal
			resp.BookPrice = &price
		}

		resp.Status = order.Status(status).String()
		resp.CreatedAt = createdAt.UTC()
		resp.ModifiedAt = modifiedAt.UTC()

		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
