package order

import (
	"errors"
	"fmt"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// DefaultEstimatedDeliveryTime is assigned to every order at creation.
// Refining the estimate from restaurant load and courier distance is a
// downstream concern.
const DefaultEstimatedDeliveryTime = 45 * time.Minute

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

	// ErrItemsAreRequired is returned when an order is created without line items.
	ErrItemsAreRequired = errors.New("order must contain at least one item")

	// ErrPaymentAlreadyConfirmed is returned when payment confirmation is applied
	// to an order that is already paid. The first-applied charge reference and
	// receipt are kept.
	ErrPaymentAlreadyConfirmed = errors.New("payment has already been confirmed for this order")

	// ErrCourierAlreadyAssigned is returned when courier assignment is applied to
	// an order that already has a courier and delivery PIN.
	ErrCourierAlreadyAssigned = errors.New("a courier has already been assigned to this order")
)

// Order is the aggregate root representing one customer purchase from one
// restaurant. It owns the lifecycle state machine, the delivery PIN, the line
// items, and the optional payment receipt.
//
// Invariants:
//   - status only moves forward along the transition table edges, except for
//     the documented overrides (payment confirmation, cancellation, failure)
//   - paid and the charge reference are set together, exactly once, along
//     with the one-and-only receipt
//   - the PIN is non-empty only while a courier is assigned; both are set
//     together and never regenerated
//   - totalAmount is fixed at creation and never recomputed
//   - items exactly mirror the input at creation and never change
type Order struct {
	id                kernel.UUID
	createdAt         time.Time
	totalAmount       decimal.Decimal
	status            Status
	estimatedDelivery time.Duration
	paid              bool
	stripeChargeID    string
	restaurantID      string
	restaurantName    string
	customerID        string
	pinCode           PinCode
	courierID         string
	items             []Item
	receipt           *Receipt

	isConstructed bool
}

// NewOrder creates a new pending order.
//
// The total amount is computed once, here, as the sum of item subtotals.
// Spending loyalty points deducts the delivery fee from the total as a
// discount, floored at zero. The order starts in PENDING status, unpaid,
// with no courier and no PIN.
func NewOrder(
	id kernel.UUID,
	customerID string,
	restaurantID string,
	restaurantName string,
	items []Item,
	deliveryFee decimal.Decimal,
	useLoyaltyPoints bool,
) (*Order, error) {
	o := &Order{
		status:            Pending,
		createdAt:         time.Now().UTC(),
		estimatedDelivery: DefaultEstimatedDeliveryTime,
		isConstructed:     true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setRestaurant(restaurantID, restaurantName),
		o.setItems(items),
		validateDeliveryFee(deliveryFee),
	); err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, item := range o.items {
		total = total.Add(item.Subtotal())
	}
	if useLoyaltyPoints {
		total = total.Sub(deliveryFee)
		if total.IsNegative() {
			total = decimal.Zero
		}
	}
	o.totalAmount = total

	return o, nil
}

// RestoreOrder reconstructs an order aggregate from persistence.
// It revalidates the cross-field invariants without re-running creation logic:
// the total is taken as stored, never recomputed.
func RestoreOrder(
	id kernel.UUID,
	createdAt time.Time,
	totalAmount decimal.Decimal,
	status Status,
	estimatedDelivery time.Duration,
	paid bool,
	stripeChargeID string,
	restaurantID string,
	restaurantName string,
	customerID string,
	pinCode PinCode,
	courierID string,
	items []Item,
	receipt *Receipt,
) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		status.Validate(),
		validatePinConsistency(pinCode, courierID),
	); err != nil {
		return nil, err
	}

	return &Order{
		id:                id,
		createdAt:         createdAt,
		totalAmount:       totalAmount,
		status:            status,
		estimatedDelivery: estimatedDelivery,
		paid:              paid,
		stripeChargeID:    stripeChargeID,
		restaurantID:      restaurantID,
		restaurantName:    restaurantName,
		customerID:        customerID,
		pinCode:           pinCode,
		courierID:         courierID,
		items:             items,
		receipt:           receipt,
		isConstructed:     true,
	}, nil
}

// Validate ensures the Order instance was properly constructed through a factory.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CreatedAt returns the creation timestamp of the order.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// TotalAmount returns the total monetary amount fixed at creation.
func (o *Order) TotalAmount() decimal.Decimal {
	return o.totalAmount
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// EstimatedDelivery returns the estimated delivery duration.
func (o *Order) EstimatedDelivery() time.Duration {
	return o.estimatedDelivery
}

// IsPaid reports whether payment has been confirmed.
func (o *Order) IsPaid() bool {
	return o.paid
}

// StripeChargeID returns the payment-provider charge reference,
// empty until payment is confirmed.
func (o *Order) StripeChargeID() string {
	return o.stripeChargeID
}

// RestaurantID returns the owning restaurant identifier.
func (o *Order) RestaurantID() string {
	return o.restaurantID
}

// RestaurantName returns the denormalized restaurant name.
func (o *Order) RestaurantName() string {
	return o.restaurantName
}

// CustomerID returns the owning customer identifier.
func (o *Order) CustomerID() string {
	return o.customerID
}

// PinCode returns the delivery PIN, zero until a courier is assigned.
func (o *Order) PinCode() PinCode {
	return o.pinCode
}

// CourierID returns the assigned courier identifier, empty until assignment.
func (o *Order) CourierID() string {
	return o.courierID
}

// Items returns a copy of the order's line items.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

// Receipt returns the payment receipt, or nil before payment confirmation.
func (o *Order) Receipt() *Receipt {
	return o.receipt
}

// TransitionTo moves the order to target along a transition-table edge.
// Returns *InvalidTransitionError, naming both statuses, when the edge does
// not exist; the order is left unchanged in that case.
func (o *Order) TransitionTo(target Status) error {
	newStatus, err := o.status.TransitionTo(target)
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// ConfirmPayment records a confirmed payment: status becomes CONFIRMED, the
// paid flag and charge reference are set together, and the one-and-only
// receipt is created. Payment confirmation is an external event and does not
// consult the transition table, but it is applied at most once: a repeated
// call returns ErrPaymentAlreadyConfirmed and keeps the first-applied values.
func (o *Order) ConfirmPayment(chargeID, receiptURL string, now time.Time) error {
	if o.paid {
		return ErrPaymentAlreadyConfirmed
	}
	if chargeID == "" {
		return errs.NewValueIsRequiredError("charge reference")
	}

	receipt, err := NewReceipt(receiptURL, now, now)
	if err != nil {
		return err
	}

	o.status = Confirmed
	o.paid = true
	o.stripeChargeID = chargeID
	o.receipt = &receipt
	return nil
}

// MarkFailed unconditionally sets the order status to FAILED, regardless of
// the current status. Payment timeouts can arrive for any order, so this is a
// direct state override, not a validated edge transition.
func (o *Order) MarkFailed() {
	o.status = Failed
}

// Cancel unconditionally sets the order status to CANCELLED. Like MarkFailed
// this bypasses the transition table: cancellation is an escape hatch, not a
// table-driven actor action.
func (o *Order) Cancel() {
	o.status = Cancelled
}

// AssignCourier records the courier and the delivery PIN together. The PIN is
// never regenerated for the same order: assigning a courier twice returns
// ErrCourierAlreadyAssigned and leaves the original assignment in place.
func (o *Order) AssignCourier(courierID string, pin PinCode) error {
	if courierID == "" {
		return errs.NewValueIsRequiredError("courier id")
	}
	if pin.IsZero() {
		return errs.NewValueIsRequiredError("pin code")
	}
	if o.courierID != "" {
		return ErrCourierAlreadyAssigned
	}

	o.courierID = courierID
	o.pinCode = pin
	return nil
}

// VerifyPin compares the supplied code against the delivery PIN using exact
// string equality. On a match the order moves to DELIVERED and true is
// returned. On a mismatch nothing changes and false is returned; a wrong
// guess is a valid negative result, not an error. An order already in a
// terminal status cannot be delivered again: retrying the correct PIN after
// a successful handoff is a negative result too, so order_delivered fires at
// most once per order.
func (o *Order) VerifyPin(supplied string) bool {
	if o.status.IsTerminal() {
		return false
	}
	if !o.pinCode.Matches(supplied) {
		return false
	}

	o.status = Delivered
	return true
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(customerID string) error {
	if customerID == "" {
		return errs.NewValueIsRequiredError("customer id")
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setRestaurant(restaurantID, restaurantName string) error {
	if restaurantID == "" {
		return errs.NewValueIsRequiredError("restaurant id")
	}
	if restaurantName == "" {
		return errs.NewValueIsRequiredError("restaurant name")
	}
	o.restaurantID = restaurantID
	o.restaurantName = restaurantName
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}
	o.items = make([]Item, len(items))
	copy(o.items, items)
	return nil
}

func validateDeliveryFee(fee decimal.Decimal) error {
	if fee.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("delivery fee is invalid",
			fmt.Errorf("%s is negative", fee))
	}
	return nil
}

func validatePinConsistency(pin PinCode, courierID string) error {
	if !pin.IsZero() && courierID == "" {
		return errs.NewValueIsInvalidError("pin code is set without an assigned courier")
	}
	if pin.IsZero() && courierID != "" {
		return errs.NewValueIsInvalidError("courier is assigned without a pin code")
	}
	return nil
}
