package commands

import (
	"context"
	"errors"
	"log/slog"

	"fooddelivery/internal/core/application/events"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"
)

// ExpirePaymentSessionCommandHandler fails an order whose payment session
// timed out or was abandoned. This is a direct state override, not a
// validated edge transition: a timeout can arrive for an order in any status.
// Like payment confirmation, a notification for an unknown order is logged
// and swallowed.
type ExpirePaymentSessionCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewExpirePaymentSessionCommandHandler creates a handler for payment session expiry.
func NewExpirePaymentSessionCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) ExpirePaymentSessionCommandHandler {
	return ExpirePaymentSessionCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger.With("component", "expire_payment_session_handler"),
	}
}

// Handle processes the expiry notification, routing the status change through
// the same persistence path as explicit transitions so the generic
// order_status_updated notification still fires.
func (h ExpirePaymentSessionCommandHandler) Handle(ctx context.Context, cmd ExpirePaymentSessionCommand) error {
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
	if errors.Is(err, errs.ErrObjectNotFound) {
		h.logger.WarnContext(ctx, "payment session expired for unknown order",
			"order_id", cmd.OrderID().String())
		return nil
	}
	if err != nil {
		return err
	}

	aggregate.MarkFailed()

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
