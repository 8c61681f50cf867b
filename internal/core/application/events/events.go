// Package events defines the outbound event contract of the order lifecycle:
// the event names and their payload schemas. Keeping the contract in plain
// structs makes it reproducible independent of the publishing transport.
package events

import (
	"time"

	"fooddelivery/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// Event names published to downstream consumers.
const (
	OrderCreatedName          = "order_created"
	OrderStatusUpdatedName    = "order_status_updated"
	OrderReadyForDeliveryName = "order_ready_for_delivery"
	OrderPaidName             = "order_paid"
	CourierAssignedName       = "courier_assigned"
	OrderDeliveredName        = "order_delivered"
)

// ItemPayload is the wire form of one order line.
type ItemPayload struct {
	DishID   string          `json:"dish_id"`
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// OrderPayload is the wire form of a full order aggregate, used by events
// that carry the whole order (order_created, order_paid, courier_assigned).
type OrderPayload struct {
	OrderID           string          `json:"order_id"`
	CreatedAt         time.Time       `json:"created_at"`
	TotalAmount       decimal.Decimal `json:"total_amount"`
	Status            string          `json:"status"`
	EstimatedDelivery string          `json:"estimated_delivery"`
	Paid              bool            `json:"paid"`
	StripeChargeID    string          `json:"stripe_charge_id,omitempty"`
	RestaurantID      string          `json:"restaurant_id"`
	RestaurantName    string          `json:"restaurant_name"`
	CustomerID        string          `json:"customer_id"`
	CourierID         string          `json:"courier_id,omitempty"`
	ReceiptURL        string          `json:"receipt_url,omitempty"`
	Items             []ItemPayload   `json:"items"`
}

// OrderCreated is published once per createOrder, after the order and its
// items have been persisted.
type OrderCreated struct {
	OrderPayload
}

// OrderStatusUpdated is published on every persisted status change.
type OrderStatusUpdated struct {
	OrderID      string `json:"order_id"`
	RestaurantID string `json:"restaurant_id"`
	Status       string `json:"status"`
}

// OrderReadyForDelivery is published in addition to OrderStatusUpdated when
// an order reaches READY_FOR_DELIVERY, so downstream dispatch and routing can
// react without re-reading the order.
type OrderReadyForDelivery struct {
	OrderID        string        `json:"order_id"`
	RestaurantID   string        `json:"restaurant_id"`
	RestaurantName string        `json:"restaurant_name"`
	CustomerID     string        `json:"customer_id"`
	Items          []ItemPayload `json:"items"`
}

// OrderPaid is published once per order when payment is confirmed.
type OrderPaid struct {
	OrderPayload
}

// CourierAssigned is published when a courier is assigned to an order.
// The PIN is transmitted in-band to the courier channel; it is the
// customer-facing code the courier must request at delivery.
type CourierAssigned struct {
	OrderPayload
	AssignedCourierID string `json:"assigned_courier_id"`
	PinCode           string `json:"pin_code"`
}

// OrderDelivered is published when PIN verification succeeds.
type OrderDelivered struct {
	OrderID      string          `json:"order_id"`
	CourierID    string          `json:"courier_id"`
	RestaurantID string          `json:"restaurant_id"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	CustomerID   string          `json:"customer_id"`
}

// NewItemPayloads maps order lines to their wire form.
func NewItemPayloads(items []order.Item) []ItemPayload {
	payloads := make([]ItemPayload, len(items))
	for i, item := range items {
		payloads[i] = ItemPayload{
			DishID:   item.DishID(),
			Name:     item.Name(),
			Quantity: item.Quantity(),
			Price:    item.Price(),
		}
	}
	return payloads
}

// NewOrderPayload maps a full order aggregate to its wire form.
func NewOrderPayload(o *order.Order) OrderPayload {
	payload := OrderPayload{
		OrderID:           o.ID().String(),
		CreatedAt:         o.CreatedAt(),
		TotalAmount:       o.TotalAmount(),
		Status:            o.Status().String(),
		EstimatedDelivery: o.EstimatedDelivery().String(),
		Paid:              o.IsPaid(),
		StripeChargeID:    o.StripeChargeID(),
		RestaurantID:      o.RestaurantID(),
		RestaurantName:    o.RestaurantName(),
		CustomerID:        o.CustomerID(),
		CourierID:         o.CourierID(),
		Items:             NewItemPayloads(o.Items()),
	}
	if receipt := o.Receipt(); receipt != nil {
		payload.ReceiptURL = receipt.ReceiptURL()
	}
	return payload
}
