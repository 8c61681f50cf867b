// Package redis provides the inbound Redis pub/sub adapter for payment
// provider notifications. The payment integration pushes session outcomes
// onto well-known channels; this consumer translates them into commands.
package redis

import (
	"context"
	"encoding/json"
	"log/slog"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/model/kernel"

	goredis "github.com/redis/go-redis/v9"
)

// Payment notification channels.
const (
	PaymentSucceededChannel        = "payment_succeeded"
	PaymentSessionExpiredChannel   = "payment_session_expired"
	PaymentSessionAbandonedChannel = "payment_session_abandoned"
)

// paymentSucceededMessage is the wire form of a successful payment notification.
type paymentSucceededMessage struct {
	OrderID         string `json:"order_id"`
	ChargeReference string `json:"charge_reference"`
	ReceiptURL      string `json:"receipt_url"`
}

// paymentSessionMessage is the wire form of an expiry or abandonment
// notification. Both carry only the order id.
type paymentSessionMessage struct {
	OrderID string `json:"order_id"`
}

// PaymentConsumer subscribes to payment notification channels and dispatches
// each message to the matching command handler. Processing failures are
// logged and never crash the consumer: a malformed or unprocessable message
// is dropped, the provider's retry (or the expiry sweep) covers the gap.
type PaymentConsumer struct {
	client         *goredis.Client
	confirmPayment commands.ConfirmPaymentCommandHandler
	expireSession  commands.ExpirePaymentSessionCommandHandler
	logger         *slog.Logger
}

// NewPaymentConsumer creates a consumer over an established Redis client.
func NewPaymentConsumer(
	client *goredis.Client,
	confirmPayment commands.ConfirmPaymentCommandHandler,
	expireSession commands.ExpirePaymentSessionCommandHandler,
	logger *slog.Logger,
) *PaymentConsumer {
	return &PaymentConsumer{
		client:         client,
		confirmPayment: confirmPayment,
		expireSession:  expireSession,
		logger:         logger.With("component", "payment_consumer"),
	}
}

// Run subscribes and processes messages until the context is cancelled.
// It blocks; run it on its own goroutine.
func (c *PaymentConsumer) Run(ctx context.Context) error {
	sub := c.client.Subscribe(ctx,
		PaymentSucceededChannel,
		PaymentSessionExpiredChannel,
		PaymentSessionAbandonedChannel,
	)
	defer sub.Close()

	c.logger.InfoContext(ctx, "payment consumer started")

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			c.dispatch(ctx, msg)
		}
	}
}

func (c *PaymentConsumer) dispatch(ctx context.Context, msg *goredis.Message) {
	var err error
	switch msg.Channel {
	case PaymentSucceededChannel:
		err = c.handleSucceeded(ctx, msg.Payload)
	case PaymentSessionExpiredChannel, PaymentSessionAbandonedChannel:
		// an abandoned session and an expired one end the same way:
		// the payment will never complete
		err = c.handleSessionEnded(ctx, msg.Payload)
	default:
		return
	}

	if err != nil {
		c.logger.ErrorContext(ctx, "payment notification failed",
			"channel", msg.Channel, "error", err)
	}
}

func (c *PaymentConsumer) handleSucceeded(ctx context.Context, payload string) error {
	var msg paymentSucceededMessage
	if err := json.Unmarshal([]byte(payload), &msg); err != nil {
		return err
	}

	orderID, err := kernel.UUIDFromString(msg.OrderID)
	if err != nil {
		return err
	}

	cmd, err := commands.NewConfirmPaymentCommand(orderID, msg.ChargeReference, msg.ReceiptURL)
	if err != nil {
		return err
	}

	return c.confirmPayment.Handle(ctx, cmd)
}

func (c *PaymentConsumer) handleSessionEnded(ctx context.Context, payload string) error {
	var msg paymentSessionMessage
	if err := json.Unmarshal([]byte(payload), &msg); err != nil {
		return err
	}

	orderID, err := kernel.UUIDFromString(msg.OrderID)
	if err != nil {
		return err
	}

	cmd, err := commands.NewExpirePaymentSessionCommand(orderID)
	if err != nil {
		return err
	}

	return c.expireSession.Handle(ctx, cmd)
}
