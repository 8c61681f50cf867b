// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The status column holds the wire name (e.g. "PENDING") rather than the
// internal enum value, so rows stay readable and stable across enum changes.
type OrderDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerID        string    `gorm:"index"`
	RestaurantID      string    `gorm:"index"`
	RestaurantName    string
	Status            string          `gorm:"type:varchar(32);index"`
	TotalAmount       decimal.Decimal `gorm:"type:numeric(12,2)"`
	Paid              bool            `gorm:"index"`
	StripeChargeID    string
	CourierID         *string `gorm:"index"`
	PinCode           string
	EstimatedDelivery int64
	CreatedAt         time.Time

	Items   []OrderItemDTO   `gorm:"foreignKey:OrderID"`
	Receipt *OrderReceiptDTO `gorm:"foreignKey:OrderID"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO represents a persisted order line item. Items are written once
// at order creation and never updated afterwards.
type OrderItemDTO struct {
	ID       uint      `gorm:"primaryKey;autoIncrement"`
	OrderID  uuid.UUID `gorm:"type:uuid;index"`
	DishID   string
	Name     string
	Quantity int
	Price    decimal.Decimal `gorm:"type:numeric(12,2)"`
}

// TableName specifies the database table name for order items.
func (OrderItemDTO) TableName() string {
	return "order_items"
}

// OrderReceiptDTO represents the persisted payment receipt. The order id is
// the primary key, so the database enforces at most one receipt per order.
type OrderReceiptDTO struct {
	OrderID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	ReceiptURL string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName specifies the database table name for order receipts.
func (OrderReceiptDTO) TableName() string {
	return "order_receipts"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	var courierID *string
	if id := aggregate.CourierID(); id != "" {
		courierID = &id
	}

	items := make([]OrderItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, OrderItemDTO{
			OrderID:  aggregate.ID().Bytes(),
			DishID:   item.DishID(),
			Name:     item.Name(),
			Quantity: item.Quantity(),
			Price:    item.Price(),
		})
	}

	var receipt *OrderReceiptDTO
	if r := aggregate.Receipt(); r != nil {
		receipt = &OrderReceiptDTO{
			OrderID:    aggregate.ID().Bytes(),
			ReceiptURL: r.ReceiptURL(),
			CreatedAt:  r.CreatedAt(),
			UpdatedAt:  r.UpdatedAt(),
		}
	}

	return OrderDTO{
		ID:                aggregate.ID().Bytes(),
		CustomerID:        aggregate.CustomerID(),
		RestaurantID:      aggregate.RestaurantID(),
		RestaurantName:    aggregate.RestaurantName(),
		Status:            aggregate.Status().String(),
		TotalAmount:       aggregate.TotalAmount(),
		Paid:              aggregate.IsPaid(),
		StripeChargeID:    aggregate.StripeChargeID(),
		CourierID:         courierID,
		PinCode:           aggregate.PinCode().String(),
		EstimatedDelivery: int64(aggregate.EstimatedDelivery()),
		CreatedAt:         aggregate.CreatedAt(),
		Items:             items,
		Receipt:           receipt,
	}
}

// toDomain converts a database DTO to an order domain aggregate using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	pin, err := order.PinCodeFromString(dto.PinCode)
	if err != nil {
		return nil, err
	}

	var courierID string
	if dto.CourierID != nil {
		courierID = *dto.CourierID
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := order.NewItem(itemDTO.DishID, itemDTO.Name, itemDTO.Quantity, itemDTO.Price)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	var receipt *order.Receipt
	if dto.Receipt != nil {
		r, receiptErr := order.NewReceipt(dto.Receipt.ReceiptURL, dto.Receipt.CreatedAt, dto.Receipt.UpdatedAt)
		if receiptErr != nil {
			return nil, receiptErr
		}
		receipt = &r
	}

	return order.RestoreOrder(
		id,
		dto.CreatedAt,
		dto.TotalAmount,
		status,
		time.Duration(dto.EstimatedDelivery),
		dto.Paid,
		dto.StripeChargeID,
		dto.RestaurantID,
		dto.RestaurantName,
		dto.CustomerID,
		pin,
		courierID,
		items,
		receipt,
	)
}
