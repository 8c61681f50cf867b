package commands_test

import (
	"testing"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/application/events"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCancelOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	aggregate := testAggregate(t)
	cmd, err := commands.NewCancelOrderCommand(aggregate.ID())
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		repo.On("Update", mock.Anything, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	var published events.OrderStatusUpdated
	publisher := new(MockEventPublisher)
	publisher.On("Publish", mock.Anything, "order_status_updated", mock.Anything).
		Run(func(args mock.Arguments) {
			published = args.Get(2).(events.OrderStatusUpdated)
		}).Return(nil).Once()

	h := commands.NewCancelOrderCommandHandler(factory, publisher, testLogger())
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, order.Cancelled, aggregate.Status())
	assert.Equal(t, "CANCELLED", published.Status)
	publisher.AssertExpectations(t)
}

func TestCancelOrderCommandHandler_Handle_BypassesTransitionTable(t *testing.T) {
	ctx := t.Context()
	aggregate := testAggregate(t)
	// PREPARING has no CANCELLED edge, yet cancellation still applies
	advanceTo(t, aggregate, order.Confirmed, order.Preparing)
	cmd, err := commands.NewCancelOrderCommand(aggregate.ID())
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		repo.On("Update", mock.Anything, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)
	publisher.On("Publish", mock.Anything, "order_status_updated", mock.Anything).Return(nil).Once()

	h := commands.NewCancelOrderCommandHandler(factory, publisher, testLogger())
	require.NoError(t, h.Handle(ctx, cmd))
	assert.Equal(t, order.Cancelled, aggregate.Status())
}

func TestCancelOrderCommandHandler_Handle_OrderNotFound(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd, err := commands.NewCancelOrderCommand(id)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, id).
			Return(nil, errs.NewObjectNotFoundError("order", id.String())).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)
	h := commands.NewCancelOrderCommandHandler(factory, publisher, testLogger())
	err = h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}
