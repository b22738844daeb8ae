package commands_test

import (
	"testing"
	"time"

	"orderservice/internal/core/application/usecases/commands"
	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/core/domain/model/order"
	"orderservice/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func acceptedOrder(t *testing.T, id kernel.UUID, version int64) *order.Order {
	t.Helper()
	name := "Title - Author"
	price := decimal.RequireFromString("9.90")
	now := time.Now().UTC()
	o, err := order.Restore(id, "1234567893", &name, &price, 1, order.Accepted, now, now, version)
	require.NoError(t, err)
	return o
}

func dispatchedOrder(t *testing.T, id kernel.UUID, version int64) *order.Order {
	t.Helper()
	name := "Title - Author"
	price := decimal.RequireFromString("9.90")
	now := time.Now().UTC()
	o, err := order.Restore(id, "1234567893", &name, &price, 1, order.Dispatched, now, now, version)
	require.NoError(t, err)
	return o
}

func TestDispatchOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd, err := commands.NewDispatchOrderCommand(id)
	require.NoError(t, err)

	existing := acceptedOrder(t, id, 0)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", ctx, id).Return(existing, nil).Once(),
		repo.On("Save", ctx, existing).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewDispatchOrderCommandHandler(factory, testLogger())
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Dispatched, existing.Status())
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestDispatchOrderCommandHandler_Handle_UnknownOrderIsDropped(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd, err := commands.NewDispatchOrderCommand(id)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", ctx, id).Return(nil, errs.NewObjectNotFoundError("order", id.String())).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewDispatchOrderCommandHandler(factory, testLogger())
	err = h.Handle(ctx, cmd)

	// Not an error: the order may belong to another deployment or have
	// been purged.
	require.NoError(t, err)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestDispatchOrderCommandHandler_Handle_RedeliveryIsIdempotent(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd, err := commands.NewDispatchOrderCommand(id)
	require.NoError(t, err)

	existing := dispatchedOrder(t, id, 1)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", ctx, id).Return(existing, nil).Once(),
		repo.On("Save", ctx, existing).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewDispatchOrderCommandHandler(factory, testLogger())
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Dispatched, existing.Status())
	repo.AssertExpectations(t)
}

func TestDispatchOrderCommandHandler_Handle_VersionConflictPropagates(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd, err := commands.NewDispatchOrderCommand(id)
	require.NoError(t, err)

	existing := acceptedOrder(t, id, 2)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", ctx, id).Return(existing, nil).Once(),
		repo.On("Save", ctx, existing).Return(errs.NewVersionIsInvalidError("order")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewDispatchOrderCommandHandler(factory, testLogger())
	err = h.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrVersionIsInvalid)
}

func TestDispatchOrderCommandHandler_Handle_RejectedOrderCannotDispatch(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd, err := commands.NewDispatchOrderCommand(id)
	require.NoError(t, err)

	now := time.Now().UTC()
	rejected, err := order.Restore(id, "1234567894", nil, nil, 1, order.Rejected, now, now, 0)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", ctx, id).Return(rejected, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewDispatchOrderCommandHandler(factory, testLogger())
	err = h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.Equal(t, order.Rejected, rejected.Status())
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestDispatchOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.DispatchOrderCommand{} // not constructed properly

	factory := new(MockOrderUoWFactory)
	h := commands.NewDispatchOrderCommandHandler(factory, testLogger())

	err := h.Handle(ctx, cmd)
	require.Error(t, err)
}
