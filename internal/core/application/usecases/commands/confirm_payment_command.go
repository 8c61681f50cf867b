package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"
)

var (
	ErrConfirmPaymentCommandIsNotConstructed = errors.New(
		"ConfirmPaymentCommand must be created via NewConfirmPaymentCommand constructor",
	)
	ErrChargeReferenceIsRequired = errors.New("charge reference is required")
	ErrReceiptURLIsRequired      = errors.New("receipt url is required")
)

// ConfirmPaymentCommand carries a payment-succeeded notification from the
// payment provider: the order it applies to, the provider's charge reference,
// and the hosted receipt URL.
type ConfirmPaymentCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	chargeReference string
	receiptURL      string

	guard guard.ConstructorGuard
}

// NewConfirmPaymentCommand creates a command to record a confirmed payment.
func NewConfirmPaymentCommand(orderID kernel.UUID, chargeReference, receiptURL string) (ConfirmPaymentCommand, error) {
	cmd := ConfirmPaymentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setChargeReference(chargeReference),
		cmd.setReceiptURL(receiptURL),
	); err != nil {
		return ConfirmPaymentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfirmPaymentCommand) Validate() error {
	return c.guard.Validate(ErrConfirmPaymentCommandIsNotConstructed)
}

// OrderID returns the identifier of the paid order.
func (c ConfirmPaymentCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ChargeReference returns the payment-provider charge reference.
func (c ConfirmPaymentCommand) ChargeReference() string {
	return c.chargeReference
}

// ReceiptURL returns the URL of the hosted receipt document.
func (c ConfirmPaymentCommand) ReceiptURL() string {
	return c.receiptURL
}

func (c *ConfirmPaymentCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *ConfirmPaymentCommand) setChargeReference(chargeReference string) error {
	if chargeReference == "" {
		return ErrChargeReferenceIsRequired
	}
	c.chargeReference = chargeReference
	return nil
}

func (c *ConfirmPaymentCommand) setReceiptURL(receiptURL string) error {
	if receiptURL == "" {
		return ErrReceiptURLIsRequired
	}
	c.receiptURL = receiptURL
	return nil
}
