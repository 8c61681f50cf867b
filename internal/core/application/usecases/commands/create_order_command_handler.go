package commands

import (
	"context"
	"log/slog"

	"fooddelivery/internal/core/application/events"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"
)

// CreateOrderCommandHandler handles the business logic for order creation.
// Persists the order with its items atomically in PENDING status and emits
// order_created after the transaction commits.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger.With("component", "create_order_handler"),
	}
}

// Handle processes the order creation command and returns the new order id.
// The total amount is fixed here, inside the aggregate constructor, and never
// recomputed by later transitions.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	newOrder, err := order.NewOrder(
		kernel.NewUUID(),
		cmd.CustomerID(),
		cmd.RestaurantID(),
		cmd.RestaurantName(),
		cmd.Items(),
		cmd.DeliveryFee(),
		cmd.UseLoyaltyPoints(),
	)
	if err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	publishEvent(ctx, h.publisher, h.logger, events.OrderCreatedName,
		events.OrderCreated{OrderPayload: events.NewOrderPayload(newOrder)})

	return newOrder.ID(), nil
}
