package commands

import (
	"context"
	"log/slog"

	"fooddelivery/internal/core/application/events"
	"fooddelivery/internal/core/ports"
)

// ExpireStalePaymentsCommandHandler fails every unpaid pending order older
// than the cutoff in a single transaction. Run periodically, it cleans up
// orders whose payment-session notifications never arrived.
type ExpireStalePaymentsCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewExpireStalePaymentsCommandHandler creates a handler for the stale
// payment sweep.
func NewExpireStalePaymentsCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) ExpireStalePaymentsCommandHandler {
	return ExpireStalePaymentsCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger.With("component", "expire_stale_payments_handler"),
	}
}

// Handle fails all stale unpaid orders and emits an order_status_updated
// notification per affected order after the transaction commits.
func (h ExpireStalePaymentsCommandHandler) Handle(ctx context.Context, cmd ExpireStalePaymentsCommand) error {
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
	stale, err := repo.GetAllPendingUnpaidBefore(ctx, cmd.Cutoff())
	if err != nil {
		return err
	}

	if len(stale) == 0 {
		return nil
	}

	for _, aggregate := range stale {
		aggregate.MarkFailed()

		if err = repo.Update(ctx, aggregate); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.logger.InfoContext(ctx, "stale unpaid orders failed", "count", len(stale))

	for _, aggregate := range stale {
		publishEvent(ctx, h.publisher, h.logger, events.OrderStatusUpdatedName,
			events.OrderStatusUpdated{
				OrderID:      aggregate.ID().String(),
				RestaurantID: aggregate.RestaurantID(),
				Status:       aggregate.Status().String(),
			})
	}

	return nil
}
