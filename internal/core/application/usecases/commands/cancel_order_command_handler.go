package commands

import (
	"context"
	"log/slog"

	"fooddelivery/internal/core/application/events"
	"fooddelivery/internal/core/ports"
)

// CancelOrderCommandHandler cancels an order. Cancellation does not consult
// the transition table: it is an unconditional override. A missing order is
// surfaced as NotFound, since cancellation is a caller action, not a racing
// external notification.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger.With("component", "cancel_order_handler"),
	}
}

// Handle processes the cancellation and emits order_status_updated.
func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
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

	aggregate.Cancel()

	if err = repo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishEvent(ctx, h.publisher, h.logger, events.OrderStatusUpdatedName,
		events.OrderStatusUpdated{
			OrderID:      aggregate.ID().String(),
			RestaurantID: aggregate.RestaurantID(),
			Status:       aggregate.Status().String(),
		})

	return nil
}
