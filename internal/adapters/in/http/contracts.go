package http

import (
	"time"

	"fooddelivery/internal/core/application/usecases/queries"

	"github.com/shopspring/decimal"
)

// Error is the common error body for all endpoints.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewOrderItem is one line item in an order creation request.
type NewOrderItem struct {
	DishID   string          `json:"dish_id"`
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// NewOrder is the request body for POST /orders.
type NewOrder struct {
	CustomerID       string          `json:"customer_id"`
	RestaurantID     string          `json:"restaurant_id"`
	RestaurantName   string          `json:"restaurant_name"`
	Items            []NewOrderItem  `json:"items"`
	DeliveryFee      decimal.Decimal `json:"delivery_fee"`
	UseLoyaltyPoints bool            `json:"use_loyalty_points"`
}

// OrderCreated is the response body for POST /orders.
type OrderCreated struct {
	OrderID string `json:"order_id"`
}

// StatusUpdate is the request body for PATCH /orders/:id/status.
// Location is the optional reporter position, informational only.
type StatusUpdate struct {
	Status   string `json:"status"`
	Location string `json:"location,omitempty"`
}

// CourierAssignment is the request body for POST /orders/:id/courier.
type CourierAssignment struct {
	CourierID string `json:"courier_id"`
}

// PinVerification is the request body for POST /orders/:id/verify-pin.
type PinVerification struct {
	Pin string `json:"pin"`
}

// PinVerificationResult is the response body for POST /orders/:id/verify-pin.
// A wrong PIN is a negative result with status 200, not an error.
type PinVerificationResult struct {
	Verified bool `json:"verified"`
}

// PaymentSucceeded is the request body for POST /payments/succeeded.
type PaymentSucceeded struct {
	OrderID         string `json:"order_id"`
	ChargeReference string `json:"charge_reference"`
	ReceiptURL      string `json:"receipt_url"`
}

// PaymentSessionEnded is the request body for POST /payments/expired and
// POST /payments/abandoned.
type PaymentSessionEnded struct {
	OrderID string `json:"order_id"`
}

// OrderItem is one line item in an order view.
type OrderItem struct {
	DishID   string          `json:"dish_id"`
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// Order is the full order view returned by GET /orders/:id.
// The delivery PIN never appears here.
type Order struct {
	ID                string          `json:"id"`
	CustomerID        string          `json:"customer_id"`
	RestaurantID      string          `json:"restaurant_id"`
	RestaurantName    string          `json:"restaurant_name"`
	Status            string          `json:"status"`
	TotalAmount       decimal.Decimal `json:"total_amount"`
	Paid              bool            `json:"paid"`
	CourierID         string          `json:"courier_id,omitempty"`
	EstimatedDelivery string          `json:"estimated_delivery"`
	CreatedAt         time.Time       `json:"created_at"`
	Items             []OrderItem     `json:"items"`
	ReceiptURL        string          `json:"receipt_url,omitempty"`
}

// OrderSummary is one row of the GET /orders/active listing.
type OrderSummary struct {
	ID             string          `json:"id"`
	CustomerID     string          `json:"customer_id"`
	RestaurantID   string          `json:"restaurant_id"`
	RestaurantName string          `json:"restaurant_name"`
	Status         string          `json:"status"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	CreatedAt      time.Time       `json:"created_at"`
}

func orderFromQuery(resp queries.GetOrderQueryResponse) Order {
	items := make([]OrderItem, len(resp.Items))
	for i, item := range resp.Items {
		items[i] = OrderItem{
			DishID:   item.DishID,
			Name:     item.Name,
			Quantity: item.Quantity,
			Price:    item.Price,
		}
	}

	return Order{
		ID:                resp.ID.String(),
		CustomerID:        resp.CustomerID,
		RestaurantID:      resp.RestaurantID,
		RestaurantName:    resp.RestaurantName,
		Status:            resp.Status,
		TotalAmount:       resp.TotalAmount,
		Paid:              resp.Paid,
		CourierID:         resp.CourierID,
		EstimatedDelivery: resp.EstimatedDelivery.String(),
		CreatedAt:         resp.CreatedAt,
		Items:             items,
		ReceiptURL:        resp.ReceiptURL,
	}
}

func orderSummariesFromQuery(resps []queries.GetActiveOrdersQueryResponse) []OrderSummary {
	summaries := make([]OrderSummary, len(resps))
	for i, resp := range resps {
		summaries[i] = OrderSummary{
			ID:             resp.ID.String(),
			CustomerID:     resp.CustomerID,
			RestaurantID:   resp.RestaurantID,
			RestaurantName: resp.RestaurantName,
			Status:         resp.Status,
			TotalAmount:    resp.TotalAmount,
			CreatedAt:      resp.CreatedAt,
		}
	}
	return summaries
}
