package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrCustomerIDIsRequired   = errors.New("customer id is required")
	ErrRestaurantIDIsRequired = errors.New("restaurant id is required")
)

// CreateOrderCommand represents a request to create a new food-delivery order.
// Encapsulates the customer, the restaurant, the ordered items, and the
// pricing inputs used to fix the total amount at creation.
//
// Example:
//
//	items := []order.Item{margherita, tiramisu}
//	cmd, err := NewCreateOrderCommand("customer-1", "restaurant-1", "Pizza Palace",
//	    items, decimal.NewFromInt(3), false)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory, publisher, logger)
//	orderID, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	customerID       string
	restaurantID     string
	restaurantName   string
	items            []order.Item
	deliveryFee      decimal.Decimal
	useLoyaltyPoints bool

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new order.
// Item-level validation (quantity, price) happens when those items are
// constructed; here only the identifying fields are checked.
func NewCreateOrderCommand(
	customerID string,
	restaurantID string,
	restaurantName string,
	items []order.Item,
	deliveryFee decimal.Decimal,
	useLoyaltyPoints bool,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		restaurantName:   restaurantName,
		deliveryFee:      deliveryFee,
		useLoyaltyPoints: useLoyaltyPoints,
		guard:            guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomerID(customerID),
		cmd.setRestaurantID(restaurantID),
		cmd.setItems(items),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// CustomerID returns the identifier of the ordering customer.
func (c CreateOrderCommand) CustomerID() string {
	return c.customerID
}

// RestaurantID returns the identifier of the restaurant.
func (c CreateOrderCommand) RestaurantID() string {
	return c.restaurantID
}

// RestaurantName returns the denormalized restaurant display name.
func (c CreateOrderCommand) RestaurantName() string {
	return c.restaurantName
}

// Items returns the ordered line items.
func (c CreateOrderCommand) Items() []order.Item {
	return c.items
}

// DeliveryFee returns the delivery fee for the order.
func (c CreateOrderCommand) DeliveryFee() decimal.Decimal {
	return c.deliveryFee
}

// UseLoyaltyPoints reports whether the customer spends loyalty points,
// deducting the delivery fee from the total.
func (c CreateOrderCommand) UseLoyaltyPoints() bool {
	return c.useLoyaltyPoints
}

func (c *CreateOrderCommand) setCustomerID(customerID string) error {
	if customerID == "" {
		return ErrCustomerIDIsRequired
	}
	c.customerID = customerID
	return nil
}

func (c *CreateOrderCommand) setRestaurantID(restaurantID string) error {
	if restaurantID == "" {
		return ErrRestaurantIDIsRequired
	}
	c.restaurantID = restaurantID
	return nil
}

func (c *CreateOrderCommand) setItems(items []order.Item) error {
	if len(items) == 0 {
		return order.ErrItemsAreRequired
	}
	c.items = items
	return nil
}
