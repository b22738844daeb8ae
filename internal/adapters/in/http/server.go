// Package http exposes the order service over a REST-ish API.
package http

import (
	"net/http"
	"time"

	"orderservice/internal/core/application/usecases/commands"
	"orderservice/internal/core/application/usecases/queries"
	"orderservice/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

const (
	minQuantity = 1
	maxQuantity = 5
)

// SubmitOrderRequest is the body of POST /orders.
type SubmitOrderRequest struct {
	ISBN     string `json:"isbn"`
	Quantity int    `json:"quantity"`
}

// OrderResponse is the wire representation of an order. Book name and price
// are null for rejected orders.
type OrderResponse struct {
	ID               string           `json:"id"`
	BookISBN         string           `json:"bookIsbn"`
	BookName         *string          `json:"bookName"`
	BookPrice        *decimal.Decimal `json:"bookPrice"`
	Quantity         int              `json:"quantity"`
	Status           string           `json:"status"`
	CreatedDate      time.Time        `json:"createdDate"`
	LastModifiedDate time.Time        `json:"lastModifiedDate"`
	Version          int64            `json:"version"`
}

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	submitOrderHandler  commands.SubmitOrderCommandHandler
	getAllOrdersHandler queries.GetAllOrdersQueryHandler
}

// NewServer creates an HTTP server with the required command and query handlers.
func NewServer(
	submitOrderHandler commands.SubmitOrderCommandHandler,
	getAllOrdersHandler queries.GetAllOrdersQueryHandler,
) *Server {
	return &Server{
		submitOrderHandler:  submitOrderHandler,
		getAllOrdersHandler: getAllOrdersHandler,
	}
}

// RegisterRoutes attaches the server's endpoints to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.POST("/orders", s.SubmitOrder)
	e.GET("/orders", s.GetOrders)
	e.GET("/health", s.Health)
}

// SubmitOrder handles POST /orders. The reply is always a terminal order,
// accepted or rejected; only a store failure produces an error status.
func (s *Server) SubmitOrder(ctx echo.Context) error {
	var req SubmitOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	if req.Quantity < minQuantity || req.Quantity > maxQuantity {
		return ctx.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Code:    http.StatusUnprocessableEntity,
			Message: "Quantity must be between 1 and 5",
		})
	}

	cmd, err := commands.NewSubmitOrderCommand(req.ISBN, req.Quantity)
	if err != nil {
		return ctx.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Code:    http.StatusUnprocessableEntity,
			Message: "Invalid order data: " + err.Error(),
		})
	}

	o, err := s.submitOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to submit order",
		})
	}

	return ctx.JSON(http.StatusOK, orderToResponse(o))
}

// GetOrders handles GET /orders.
func (s *Server) GetOrders(ctx echo.Context) error {
	query := queries.NewGetAllOrdersQuery()

	orders, err := s.getAllOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve orders",
		})
	}

	response := make([]OrderResponse, len(orders))
	for i, o := range orders {
		response[i] = OrderResponse{
			ID:               o.ID.String(),
			BookISBN:         o.BookISBN,
			BookName:         o.BookName,
			BookPrice:        o.BookPrice,
			Quantity:         o.Quantity,
			Status:           o.Status,
			CreatedDate:      o.CreatedAt,
			LastModifiedDate: o.ModifiedAt,
			Version:          o.Version,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "UP"})
}

func orderToResponse(o *order.Order) OrderResponse {
	return OrderResponse{
		ID:               o.ID().String(),
		BookISBN:         o.BookISBN(),
		BookName:         o.BookName(),
		BookPrice:        o.BookPrice(),
		Quantity:         o.Quantity(),
		Status:           o.Status().String(),
		CreatedDate:      o.CreatedAt(),
		LastModifiedDate: o.ModifiedAt(),
		Version:          o.Version(),
	}
}
