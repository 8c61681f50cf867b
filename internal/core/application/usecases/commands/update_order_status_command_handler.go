package commands

import (
	"context"
	"log/slog"

	"fooddelivery/internal/core/application/events"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"
)

// UpdateOrderStatusCommandHandler applies a requested status transition to an
// order. The aggregate enforces the transition table; the store's atomic
// update of the single order row is the serialization point between
// concurrent requests.
//
// On success the handler emits order_status_updated, and additionally
// order_ready_for_delivery when the resulting status is READY_FOR_DELIVERY
// so downstream dispatch and routing can react. No other status triggers
// extra events.
type UpdateOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewUpdateOrderStatusCommandHandler creates a handler for status transition requests.
func NewUpdateOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger.With("component", "update_order_status_handler"),
	}
}

// Handle processes the transition request.
//
// Fails with an error unwrapping to errs.ErrObjectNotFound when the order
// does not exist, and to order.ErrInvalidTransition when the requested status
// is not reachable from the current one; in both cases no event is emitted.
// A retry after a prior success lands on the second case: callers should
// treat it as "already applied" where appropriate, not as a system failure.
func (h UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) error {
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
	aggregate, err := repo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = aggregate.TransitionTo(cmd.TargetStatus()); err != nil {
		return err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if cmd.Location() != "" {
		h.logger.InfoContext(ctx, "status update reported with location",
			"order_id", aggregate.ID().String(), "location", cmd.Location())
	}

	publishEvent(ctx, h.publisher, h.logger, events.OrderStatusUpdatedName,
		events.OrderStatusUpdated{
			OrderID:      aggregate.ID().String(),
			RestaurantID: aggregate.RestaurantID(),
			Status:       aggregate.Status().String(),
		})

	if aggregate.Status() == order.ReadyForDelivery {
		publishEvent(ctx, h.publisher, h.logger, events.OrderReadyForDeliveryName,
			events.OrderReadyForDelivery{
				OrderID:        aggregate.ID().String(),
				RestaurantID:   aggregate.RestaurantID(),
				RestaurantName: aggregate.RestaurantName(),
				CustomerID:     aggregate.CustomerID(),
				Items:          events.NewItemPayloads(aggregate.Items()),
			})
	}

	return nil
}
