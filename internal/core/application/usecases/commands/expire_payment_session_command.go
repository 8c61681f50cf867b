package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"
)

var ErrExpirePaymentSessionCommandIsNotConstructed = errors.New(
	"ExpirePaymentSessionCommand must be created via NewExpirePaymentSessionCommand constructor",
)

// ExpirePaymentSessionCommand carries a payment-session timeout or
// abandonment notification: the order's payment will never complete.
type ExpirePaymentSessionCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewExpirePaymentSessionCommand creates a command to fail an order whose
// payment session expired or was abandoned.
func NewExpirePaymentSessionCommand(orderID kernel.UUID) (ExpirePaymentSessionCommand, error) {
	if err := orderID.Validate(); err != nil {
		return ExpirePaymentSessionCommand{}, err
	}

	return ExpirePaymentSessionCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ExpirePaymentSessionCommand) Validate() error {
	return c.guard.Validate(ErrExpirePaymentSessionCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to fail.
func (c ExpirePaymentSessionCommand) OrderID() kernel.UUID {
	return c.orderID
}
