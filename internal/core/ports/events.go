package ports

import (
	"context"

	"orderservice/internal/core/domain/model/order"
)

// Channel names shared with the fulfillment process. The transport guarantees
// at-least-once delivery on both, so consumers must tolerate duplicates.
const (
	ChannelOrderAccepted   = "order-accepted"
	ChannelOrderDispatched = "order-dispatched"
)

// OrderEventPublisher publishes order lifecycle events to the event channel.
type OrderEventPublisher interface {
	// PublishOrderAccepted emits the payload on the order-accepted channel.
	// The channel itself is responsible for redelivery; callers log a
	// failure and move on.
	PublishOrderAccepted(ctx context.Context, event order.AcceptedEvent) error
}

// Message is a raw payload fetched from an event channel subscription.
type Message struct {
	// Value is the raw message payload.
	Value []byte

	// Handle carries transport-specific metadata needed to commit the
	// message. Consumers pass it back unchanged.
	Handle any
}

// OrderEventSubscriber is a long-lived subscription to the order-dispatched
// channel. Fetch blocks until a message arrives or the context is cancelled;
// Commit acknowledges a fetched message. A message fetched but never
// committed is redelivered, which is how at-least-once semantics surface
// in this contract.
type OrderEventSubscriber interface {
	Fetch(ctx context.Context) (Message, error)
	Commit(ctx context.Context, msg Message) error
	Close() error
}
