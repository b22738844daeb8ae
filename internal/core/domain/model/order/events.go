package order

import "orderservice/internal/core/domain/model/kernel"

// Event payloads carried on the event channel. They are pure values: nothing
// here is persisted, and consumers must tolerate redelivery because the
// channel guarantees at-least-once delivery.

// AcceptedEvent is published on the order-accepted channel after an accepted
// order has been persisted.
type AcceptedEvent struct {
	OrderID string `json:"orderId"`
}

// NewAcceptedEvent builds the payload for a persisted accepted order.
func NewAcceptedEvent(orderID kernel.UUID) AcceptedEvent {
	return AcceptedEvent{OrderID: orderID.String()}
}

// DispatchedEvent is consumed from the order-dispatched channel when the
// fulfillment process reports an order as shipped.
type DispatchedEvent struct {
	OrderID string `json:"orderId"`
}

// NewDispatchedEvent builds the payload referencing a dispatched order.
func NewDispatchedEvent(orderID kernel.UUID) DispatchedEvent {
	return DispatchedEvent{OrderID: orderID.String()}
}
