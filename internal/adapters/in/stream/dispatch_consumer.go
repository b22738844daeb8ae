// Package stream consumes order-dispatched notifications from the event
// channel and applies them to stored orders.
package stream

import (
	"context"
	"encoding/json"
	"log/slog"

	"orderservice/internal/core/application/usecases/commands"
	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/core/domain/model/order"
	"orderservice/internal/core/ports"

	"golang.org/x/sync/errgroup"
)

// DispatchHandler is the slice of the command layer the consumer needs.
type DispatchHandler interface {
	Handle(ctx context.Context, cmd commands.DispatchOrderCommand) error
}

// DispatchConsumer runs the per-message handler over a subscription to the
// order-dispatched channel.
//
// Commit discipline drives the delivery semantics: a message is committed
// after successful handling and after any permanent per-message defect
// (malformed payload, invalid identifier), but not after a transient
// handler failure, so the channel redelivers it. Handling is idempotent
// downstream, so redelivered duplicates are harmless.
type DispatchConsumer struct {
	subscriber  ports.OrderEventSubscriber
	handler     DispatchHandler
	logger      *slog.Logger
	maxInFlight int
}

// NewDispatchConsumer creates a consumer processing at most maxInFlight
// messages concurrently. A non-positive maxInFlight means one at a time.
func NewDispatchConsumer(
	subscriber ports.OrderEventSubscriber,
	handler DispatchHandler,
	maxInFlight int,
	logger *slog.Logger,
) *DispatchConsumer {
	if maxInFlight <= 0 {
		maxInFlight = 1
	}

	return &DispatchConsumer{
		subscriber:  subscriber,
		handler:     handler,
		logger:      logger.With("component", "dispatch_consumer"),
		maxInFlight: maxInFlight,
	}
}

// Run fetches and processes messages until ctx is cancelled or the
// subscription fails. It returns nil on cancellation after draining
// in-flight work.
func (c *DispatchConsumer) Run(ctx context.Context) error {
	g := &errgroup.Group{}
	g.SetLimit(c.maxInFlight)

	for {
		msg, err := c.subscriber.Fetch(ctx)
		if err != nil {
			waitErr := g.Wait()
			if ctx.Err() != nil {
				return waitErr
			}
			return err
		}

		g.Go(func() error {
			c.process(ctx, msg)
			return nil
		})
	}
}

func (c *DispatchConsumer) process(ctx context.Context, msg ports.Message) {
	var event order.DispatchedEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		c.logger.WarnContext(ctx, "Dropping malformed dispatch notification", "error", err)
		c.commit(ctx, msg)
		return
	}

	orderID, err := kernel.UUIDFromString(event.OrderID)
	if err != nil {
		c.logger.WarnContext(ctx, "Dropping dispatch notification with invalid order id",
			"order_id", event.OrderID, "error", err)
		c.commit(ctx, msg)
		return
	}

	cmd, err := commands.NewDispatchOrderCommand(orderID)
	if err != nil {
		c.logger.WarnContext(ctx, "Dropping dispatch notification", "error", err)
		c.commit(ctx, msg)
		return
	}

	if err = c.handler.Handle(ctx, cmd); err != nil {
		// Left uncommitted on purpose, the channel will redeliver.
		c.logger.ErrorContext(ctx, "Failed to handle dispatch notification",
			"order_id", event.OrderID, "error", err)
		return
	}

	c.commit(ctx, msg)
}

func (c *DispatchConsumer) commit(ctx context.Context, msg ports.Message) {
	if err := c.subscriber.Commit(ctx, msg); err != nil {
		c.logger.ErrorContext(ctx, "Failed to commit dispatch notification", "error", err)
	}
}
