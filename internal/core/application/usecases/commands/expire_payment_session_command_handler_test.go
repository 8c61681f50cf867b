package commands_test

import (
	"testing"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestExpirePaymentSessionCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	aggregate := testAggregate(t)
	cmd, err := commands.NewExpirePaymentSessionCommand(aggregate.ID())
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

	h := commands.NewExpirePaymentSessionCommandHandler(factory, publisher, testLogger())
	require.NoError(t, h.Handle(ctx, cmd))
	assert.Equal(t, order.Failed, aggregate.Status())
	publisher.AssertExpectations(t)
}

func TestExpirePaymentSessionCommandHandler_Handle_OverridesAnyStatus(t *testing.T) {
	ctx := t.Context()
	aggregate := testAggregate(t)
	// a late timeout can land on an order that already moved on
	advanceTo(t, aggregate, order.Confirmed, order.Preparing)
	cmd, err := commands.NewExpirePaymentSessionCommand(aggregate.ID())
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

	h := commands.NewExpirePaymentSessionCommandHandler(factory, publisher, testLogger())
	require.NoError(t, h.Handle(ctx, cmd))
	assert.Equal(t, order.Failed, aggregate.Status())
}

func TestExpirePaymentSessionCommandHandler_Handle_UnknownOrderIsSwallowed(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd, err := commands.NewExpirePaymentSessionCommand(id)
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
	h := commands.NewExpirePaymentSessionCommandHandler(factory, publisher, testLogger())
	require.NoError(t, h.Handle(ctx, cmd))
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}
