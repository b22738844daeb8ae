package commands

import (
	"context"
	"log/slog"

	"orderservice/internal/core/domain/model/book"
	"orderservice/internal/core/domain/model/order"
	"orderservice/internal/core/ports"
)

// SubmitOrderCommandHandler orchestrates the order-submission pipeline:
// catalog lookup, accept/reject decision, persistence, and the asynchronous
// order-accepted notification.
//
// The handler guarantees a deterministic outcome for the caller. Catalog
// unavailability never fails a submission: an unresolved lookup produces a
// rejected order. The save is the only fatal step. The event publish happens
// strictly after a successful commit and its failure is logged, never
// propagated and never rolled back.
type SubmitOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	bookClient ports.BookClient
	publisher  ports.OrderEventPublisher
	logger     *slog.Logger
}

// NewSubmitOrderCommandHandler creates a handler for order submissions.
func NewSubmitOrderCommandHandler(
	uowFactory OrderUoWFactory,
	bookClient ports.BookClient,
	publisher ports.OrderEventPublisher,
	logger *slog.Logger,
) SubmitOrderCommandHandler {
	return SubmitOrderCommandHandler{
		uowFactory: uowFactory,
		bookClient: bookClient,
		publisher:  publisher,
		logger:     logger.With("component", "submit_order_command_handler"),
	}
}

// Handle processes the submission and returns the persisted order, which is
// always in a terminal decision state: Accepted when the catalog resolved the
// book, Rejected otherwise.
func (h *SubmitOrderCommandHandler) Handle(ctx context.Context, cmd SubmitOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	snapshot, err := h.bookClient.Lookup(ctx, cmd.ISBN())
	if err != nil {
		// The client degrades every lookup failure to absence; an error
		// here means the context was cancelled.
		return nil, err
	}

	o, err := h.buildOrder(snapshot, cmd)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Save(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.publishOrderAccepted(ctx, o)

	return o, nil
}

func (h *SubmitOrderCommandHandler) buildOrder(snapshot *book.Book, cmd SubmitOrderCommand) (*order.Order, error) {
	if snapshot == nil {
		h.logger.Info("Book not resolved in catalog, rejecting order", "isbn", cmd.ISBN())
		return order.NewRejected(cmd.ISBN(), cmd.Quantity())
	}
	return order.NewAccepted(*snapshot, cmd.Quantity())
}

// publishOrderAccepted emits the order-accepted event for accepted orders.
// The publish is a post-commit side effect: a failure is logged and the
// already-persisted order is returned unchanged. Redelivery is the channel's
// responsibility, and downstream consumers tolerate duplicates.
func (h *SubmitOrderCommandHandler) publishOrderAccepted(ctx context.Context, o *order.Order) {
	if o.Status() != order.Accepted {
		return
	}

	event := order.NewAcceptedEvent(o.ID())
	h.logger.InfoContext(ctx, "Sending order accepted event", "order_id", o.ID().String())

	if err := h.publisher.PublishOrderAccepted(ctx, event); err != nil {
		h.logger.ErrorContext(ctx, "Failed to publish order accepted event",
			"order_id", o.ID().String(), "error", err)
	}
}
