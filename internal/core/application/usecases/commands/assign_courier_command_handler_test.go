package commands_test

import (
	"regexp"
	"testing"

	"fooddelivery/internal/core/application/events"
	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAssignCourierCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	aggregate := testAggregate(t)
	advanceTo(t, aggregate, order.Confirmed, order.Preparing, order.ReadyForDelivery)
	cmd, err := commands.NewAssignCourierCommand(aggregate.ID(), "courier-7")
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

	var published events.CourierAssigned
	publisher := new(MockEventPublisher)
	publisher.On("Publish", mock.Anything, "courier_assigned", mock.Anything).
		Run(func(args mock.Arguments) {
			published = args.Get(2).(events.CourierAssigned)
		}).Return(nil).Once()

	h := commands.NewAssignCourierCommandHandler(factory, publisher, testLogger())
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, "courier-7", aggregate.CourierID())
	assert.Regexp(t, regexp.MustCompile(`^\d{4}$`), aggregate.PinCode().String())

	// the PIN reaches the courier only through the assignment event
	assert.Equal(t, "courier-7", published.AssignedCourierID)
	assert.Equal(t, aggregate.PinCode().String(), published.PinCode)
	publisher.AssertExpectations(t)
}

func TestAssignCourierCommandHandler_Handle_UnknownOrderIsSwallowed(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd, err := commands.NewAssignCourierCommand(id, "courier-7")
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
	h := commands.NewAssignCourierCommandHandler(factory, publisher, testLogger())
	require.NoError(t, h.Handle(ctx, cmd))

	uow.AssertNotCalled(t, "Commit", mock.Anything)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestAssignCourierCommandHandler_Handle_ReassignmentRejected(t *testing.T) {
	ctx := t.Context()
	aggregate := testAggregate(t)
	require.NoError(t, aggregate.AssignCourier("courier-7", order.NewRandomPinCode()))
	originalPin := aggregate.PinCode().String()

	cmd, err := commands.NewAssignCourierCommand(aggregate.ID(), "courier-8")
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)
	h := commands.NewAssignCourierCommandHandler(factory, publisher, testLogger())
	err = h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, order.ErrCourierAlreadyAssigned)

	// the original assignment and PIN survive the rejected attempt
	assert.Equal(t, "courier-7", aggregate.CourierID())
	assert.Equal(t, originalPin, aggregate.PinCode().String())
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestNewAssignCourierCommand_EmptyCourierID(t *testing.T) {
	_, err := commands.NewAssignCourierCommand(kernel.NewUUID(), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrCourierIDIsRequired)
}
