package order

import (
	"errors"
	"fmt"

	"fooddelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Item is a value object describing one line of an order: a dish, how many of
// it, and the unit price at the time of ordering. Items are created atomically
// with their order and never mutated afterward.
type Item struct {
	dishID   string
	name     string
	quantity int
	price    decimal.Decimal
}

// NewItem creates an order line with validation.
// Quantity must be at least 1 and the unit price must be non-negative.
func NewItem(dishID, name string, quantity int, price decimal.Decimal) (Item, error) {
	item := Item{}

	if err := errors.Join(
		item.setDishID(dishID),
		item.setName(name),
		item.setQuantity(quantity),
		item.setPrice(price),
	); err != nil {
		return Item{}, err
	}

	return item, nil
}

// DishID returns the identifier of the ordered dish.
func (i Item) DishID() string {
	return i.dishID
}

// Name returns the display name of the dish.
func (i Item) Name() string {
	return i.name
}

// Quantity returns how many units of the dish were ordered.
func (i Item) Quantity() int {
	return i.quantity
}

// Price returns the unit price of the dish.
func (i Item) Price() decimal.Decimal {
	return i.price
}

// Subtotal returns price multiplied by quantity.
func (i Item) Subtotal() decimal.Decimal {
	return i.price.Mul(decimal.NewFromInt(int64(i.quantity)))
}

func (i *Item) setDishID(dishID string) error {
	if dishID == "" {
		return errs.NewValueIsRequiredError("dish id")
	}
	i.dishID = dishID
	return nil
}

func (i *Item) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("item name")
	}
	i.name = name
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsInvalidErrorWithCause("quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	i.quantity = quantity
	return nil
}

func (i *Item) setPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("price is invalid",
			fmt.Errorf("%s is negative", price))
	}
	i.price = price
	return nil
}
