package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetOrderQueryHandler reads a single order directly from the database,
// bypassing the domain layer. Read models do not need aggregate invariants.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single-order reads.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle fetches the order row, its items, and the receipt if one exists.
// Returns an error unwrapping to errs.ErrObjectNotFound for unknown ids.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQuery,
) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	var resp GetOrderQueryResponse
	var id uuid.UUID
	var courierID sql.NullString
	var receiptURL sql.NullString
	var estimatedDelivery int64

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.customer_id,
			o.restaurant_id,
			o.restaurant_name,
			o.status,
			o.total_amount,
			o.paid,
			o.courier_id,
			o.estimated_delivery,
			o.created_at,
			r.receipt_url
		FROM orders o
		LEFT JOIN order_receipts r ON r.order_id = o.id
		WHERE o.id = ?
	`, query.OrderID().Bytes()).Row()

	err := row.Scan(
		&id,
		&resp.CustomerID,
		&resp.RestaurantID,
		&resp.RestaurantName,
		&resp.Status,
		&resp.TotalAmount,
		&resp.Paid,
		&courierID,
		&estimatedDelivery,
		&resp.CreatedAt,
		&receiptURL,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	resp.ID = orderID
	resp.CourierID = courierID.String
	resp.ReceiptURL = receiptURL.String
	resp.EstimatedDelivery = time.Duration(estimatedDelivery)

	items, err := h.loadItems(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	resp.Items = items

	return resp, nil
}

func (h GetOrderQueryHandler) loadItems(ctx context.Context, orderID kernel.UUID) ([]OrderItemResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			dish_id,
			name,
			quantity,
			price
		FROM order_items
		WHERE order_id = ?
		ORDER BY id
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]OrderItemResponse, 0)
	for rows.Next() {
		var item OrderItemResponse
		var price decimal.Decimal

		if err = rows.Scan(&item.DishID, &item.Name, &item.Quantity, &price); err != nil {
			return nil, err
		}
		item.Price = price
		items = append(items, item)
	}

	return items, rows.Err()
}
