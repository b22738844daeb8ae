package commands

import (
	"context"
	"errors"
	"log/slog"

	"orderservice/internal/pkg/errs"
)

// DispatchOrderCommandHandler applies a dispatch notification to the stored
// order: read, transition to Dispatched, save.
//
// The handler is idempotent by construction. The channel delivers
// at-least-once, so the same notification may arrive repeatedly; dispatching
// an already-dispatched order is a domain-level no-op, and the only
// observable cost of a redundant save is a version bump. A notification for
// an order unknown to this store is dropped silently — the order may belong
// to another deployment or have been purged — and only logged for
// observability.
type DispatchOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	logger     *slog.Logger
}

// NewDispatchOrderCommandHandler creates a handler for dispatch notifications.
func NewDispatchOrderCommandHandler(uowFactory OrderUoWFactory, logger *slog.Logger) DispatchOrderCommandHandler {
	return DispatchOrderCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "dispatch_order_command_handler"),
	}
}

// Handle processes the dispatch notification. A stale-version save conflict
// propagates to the caller; the baseline design does not auto-retry, the
// channel redelivers instead.
func (h *DispatchOrderCommandHandler) Handle(ctx context.Context, cmd DispatchOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()

	o, err := repo.Get(ctx, cmd.OrderID())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			h.logger.InfoContext(ctx, "Dropping dispatch notification for unknown order",
				"order_id", cmd.OrderID().String())
			return nil
		}
		return err
	}

	if err = o.Dispatch(); err != nil {
		return err
	}

	if err = repo.Save(ctx, o); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.logger.InfoContext(ctx, "Order dispatched", "order_id", o.ID().String())
	return nil
}
