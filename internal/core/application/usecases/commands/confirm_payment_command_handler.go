package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"fooddelivery/internal/core/application/events"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"
)

// ConfirmPaymentCommandHandler records a confirmed payment on an order:
// status becomes CONFIRMED, the paid flag and charge reference are set, and
// the one-and-only receipt is created, all in one transaction. Emits
// order_paid with the full updated order after commit.
//
// Payment notifications may race order visibility, so a missing order is
// logged and swallowed rather than surfaced: the provider's retry will find
// the order once it propagates. A repeated confirmation is an idempotent
// no-op that keeps the first-applied charge reference and receipt.
type ConfirmPaymentCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewConfirmPaymentCommandHandler creates a handler for payment confirmations.
func NewConfirmPaymentCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) ConfirmPaymentCommandHandler {
	return ConfirmPaymentCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger.With("component", "confirm_payment_handler"),
	}
}

// Handle processes the payment confirmation.
func (h ConfirmPaymentCommandHandler) Handle(ctx context.Context, cmd ConfirmPaymentCommand) error {
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
		h.logger.WarnContext(ctx, "payment confirmed for unknown order",
			"order_id", cmd.OrderID().String(), "charge_reference", cmd.ChargeReference())
		return nil
	}
	if err != nil {
		return err
	}

	err = aggregate.ConfirmPayment(cmd.ChargeReference(), cmd.ReceiptURL(), time.Now().UTC())
	if errors.Is(err, order.ErrPaymentAlreadyConfirmed) {
		h.logger.InfoContext(ctx, "payment already confirmed, keeping first-applied values",
			"order_id", aggregate.ID().String())
		return nil
	}
	if err != nil {
		return err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishEvent(ctx, h.publisher, h.logger, events.OrderPaidName,
		events.OrderPaid{OrderPayload: events.NewOrderPayload(aggregate)})

	return nil
}
