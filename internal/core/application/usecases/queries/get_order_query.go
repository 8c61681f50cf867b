package queries

import (
	"errors"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves a single order with its items and receipt.
//
// Example:
//
//	query, err := NewGetOrderQuery(orderID)
//	if err != nil {
//	    return err
//	}
//
//	handler := NewGetOrderQueryHandler(db)
//	resp, err := handler.Handle(ctx, query)
type GetOrderQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for a single order by id.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the identifier of the order to fetch.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// OrderItemResponse is a single line item in a read-side order view.
type OrderItemResponse struct {
	DishID   string
	Name     string
	Quantity int
	Price    decimal.Decimal
}

// GetOrderQueryResponse is the full read-side view of an order.
// The delivery PIN is deliberately absent: it travels only on the courier
// assignment notification, never on read endpoints.
type GetOrderQueryResponse struct {
	ID                kernel.UUID
	CustomerID        string
	RestaurantID      string
	RestaurantName    string
	Status            string
	TotalAmount       decimal.Decimal
	Paid              bool
	CourierID         string
	EstimatedDelivery time.Duration
	CreatedAt         time.Time
	Items             []OrderItemResponse
	ReceiptURL        string
}
