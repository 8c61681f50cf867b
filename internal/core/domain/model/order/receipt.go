package order

import (
	"time"

	"fooddelivery/internal/pkg/errs"
)

// Receipt is the payment receipt attached to an order. An order owns at most
// one receipt, created exactly once when payment is confirmed.
type Receipt struct {
	receiptURL string
	createdAt  time.Time
	updatedAt  time.Time
}

// NewReceipt creates a receipt with the given URL and timestamps.
func NewReceipt(receiptURL string, createdAt, updatedAt time.Time) (Receipt, error) {
	if receiptURL == "" {
		return Receipt{}, errs.NewValueIsRequiredError("receipt url")
	}

	return Receipt{
		receiptURL: receiptURL,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}, nil
}

// ReceiptURL returns the URL of the hosted receipt document.
func (r Receipt) ReceiptURL() string {
	return r.receiptURL
}

// CreatedAt returns when the receipt was created.
func (r Receipt) CreatedAt() time.Time {
	return r.createdAt
}

// UpdatedAt returns when the receipt was last updated.
func (r Receipt) UpdatedAt() time.Time {
	return r.updatedAt
}
