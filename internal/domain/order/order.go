package order

import (
	"fmt"
	"time"

	"github.com/freshline/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status represents the delivery status of an order
type Status string

const (
	StatusPending        Status = "PENDING"
	StatusOutForDelivery Status = "OUT_FOR_DELIVERY"
	StatusDelivered      Status = "DELIVERED"
	StatusCancelled      Status = "CANCELLED"
)

// IsValid checks if the status is a valid Status
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusOutForDelivery, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// IsTerminal returns true for states with no outgoing transitions
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransitionTo checks if the status can transition to the target status
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusPending:
		return target == StatusOutForDelivery || target == StatusCancelled
	case StatusOutForDelivery:
		return target == StatusDelivered || target == StatusCancelled
	case StatusDelivered, StatusCancelled:
		return false // Terminal states
	}
	return false
}

// PaymentStatus represents whether the order has been paid.
// It is orthogonal to Status except for the explicit cash-on-delivery
// side effect of MarkDelivered.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "PENDING"
	PaymentPaid    PaymentStatus = "PAID"
)

// IsValid checks if the payment status is valid
func (p PaymentStatus) IsValid() bool {
	return p == PaymentPending || p == PaymentPaid
}

// String returns the string representation of PaymentStatus
func (p PaymentStatus) String() string {
	return string(p)
}

// Item represents one product line of an order.
// Items are created together with their order and never updated
// independently afterwards.
type Item struct {
	ID          uuid.UUID
	OrderID     uuid.UUID
	ProductType string
	Quantity    int64
	WeightKg    decimal.Decimal // Quantity x per-unit weight at order time
	UnitPrice   decimal.Decimal // Price per unit at order time
	Amount      decimal.Decimal // Quantity x UnitPrice
	CreatedAt   time.Time
}

// newItem creates a new order item
func newItem(orderID uuid.UUID, productType string, quantity int64, weightKg, unitPrice decimal.Decimal) (*Item, error) {
	if productType == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_TYPE", "Product type cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if weightKg.IsNegative() {
		return nil, shared.NewDomainError("INVALID_WEIGHT", "Weight cannot be negative")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	return &Item{
		ID:          uuid.New(),
		OrderID:     orderID,
		ProductType: productType,
		Quantity:    quantity,
		WeightKg:    weightKg,
		UnitPrice:   unitPrice,
		Amount:      unitPrice.Mul(decimal.NewFromInt(quantity)),
		CreatedAt:   time.Now(),
	}, nil
}

// Order represents one customer sale transaction, the aggregate root
// for the order lifecycle: PENDING -> OUT_FOR_DELIVERY -> DELIVERED,
// with CANCELLED reachable from any non-terminal state.
type Order struct {
	shared.BaseAggregateRoot
	CustomerName       string
	CustomerAddress    string
	CustomerPhone      string
	DistanceKm         decimal.Decimal // Road distance context for delivery costing
	Salesperson        string
	DeliveryDate       time.Time
	Items              []Item
	TotalWeightKg      decimal.Decimal // Snapshot at creation, never recomputed
	TotalAmount        decimal.Decimal // Snapshot at creation, never recomputed
	Status             Status
	PaymentStatus      PaymentStatus
	PaymentReceivedBy  *string // Only meaningful when PaymentStatus is PAID
	DeliveryBoy        *string // Set when dispatched; reassignment overwrites
	RecoveryAssignedTo *string // Set while DELIVERED and unpaid; kept after collection
	Notes              string
	CreatedBy          string // Actor who placed the order
	DispatchedAt       *time.Time
	DeliveredAt        *time.Time
	CancelledAt        *time.Time
	CancelReason       string
}

// NewOrder creates a new order in PENDING/PENDING state.
// The delivery date must not lie in the past (date precision).
func NewOrder(customerName, customerAddress, customerPhone string, distanceKm decimal.Decimal, salesperson string, deliveryDate time.Time, notes, actor string) (*Order, error) {
	if customerName == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Customer name is required")
	}
	if customerAddress == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Delivery address is required")
	}
	if salesperson == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Salesperson is required")
	}
	if deliveryDate.IsZero() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Delivery date is required")
	}
	if beforeToday(deliveryDate) {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Delivery date cannot be in the past")
	}
	if distanceKm.IsNegative() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Distance cannot be negative")
	}

	o := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CustomerName:      customerName,
		CustomerAddress:   customerAddress,
		CustomerPhone:     customerPhone,
		DistanceKm:        distanceKm,
		Salesperson:       salesperson,
		DeliveryDate:      deliveryDate,
		Items:             make([]Item, 0),
		TotalWeightKg:     decimal.Zero,
		TotalAmount:       decimal.Zero,
		Status:            StatusPending,
		PaymentStatus:     PaymentPending,
		Notes:             notes,
		CreatedBy:         actor,
	}

	o.AddDomainEvent(NewOrderPlacedEvent(o))

	return o, nil
}

// AddItem appends a product line and folds it into the order totals.
// Lines may only be added before the order leaves PENDING; after that
// the totals are a frozen snapshot.
func (o *Order) AddItem(productType string, quantity int64, weightKg, unitPrice decimal.Decimal) (*Item, error) {
	if o.Status != StatusPending {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot add items to a dispatched order")
	}

	item, err := newItem(o.ID, productType, quantity, weightKg, unitPrice)
	if err != nil {
		return nil, err
	}

	o.Items = append(o.Items, *item)
	o.TotalWeightKg = o.TotalWeightKg.Add(item.WeightKg)
	o.TotalAmount = o.TotalAmount.Add(item.Amount)
	o.Touch()

	return item, nil
}

// AssignDelivery sets the delivery driver and moves the order out for
// delivery. Valid from any non-terminal status; assigning a different
// driver mid-flight simply overwrites.
func (o *Order) AssignDelivery(driver string) error {
	if driver == "" {
		return shared.NewDomainError("VALIDATION_ERROR", "Driver name is required")
	}
	if o.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot dispatch order in %s status", o.Status))
	}
	if len(o.Items) == 0 {
		return shared.NewDomainError("NO_ITEMS", "Cannot dispatch an order without items")
	}

	now := time.Now()
	o.DeliveryBoy = &driver
	if o.Status == StatusPending {
		o.Status = StatusOutForDelivery
		o.DispatchedAt = &now
	}
	o.UpdatedAt = now

	o.AddDomainEvent(NewOrderDispatchedEvent(o, driver))

	return nil
}

// MarkDelivered transitions the order to DELIVERED. The cash-on-delivery
// side effect is an explicit choice: alsoMarkPaid additionally settles
// the payment and attributes it to the delivering driver.
func (o *Order) MarkDelivered(alsoMarkPaid bool) error {
	if !o.Status.CanTransitionTo(StatusDelivered) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot deliver order in %s status", o.Status))
	}

	now := time.Now()
	o.Status = StatusDelivered
	o.DeliveredAt = &now
	o.UpdatedAt = now

	if alsoMarkPaid {
		o.PaymentStatus = PaymentPaid
		o.PaymentReceivedBy = o.DeliveryBoy
		o.AddDomainEvent(NewOrderPaymentReceivedEvent(o))
	}

	o.AddDomainEvent(NewOrderDeliveredEvent(o, alsoMarkPaid))

	return nil
}

// Cancel cancels the order. Valid from any non-terminal status. The
// reason is optional; it is recorded when supplied.
func (o *Order) Cancel(reason string) error {
	if !o.Status.CanTransitionTo(StatusCancelled) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel order in %s status", o.Status))
	}

	now := time.Now()
	o.Status = StatusCancelled
	o.CancelledAt = &now
	o.CancelReason = reason
	o.UpdatedAt = now

	o.AddDomainEvent(NewOrderCancelledEvent(o))

	return nil
}

// SetPaymentStatus changes the payment flag independently of delivery
// status. receivedBy is recorded only when settling to PAID; moving
// back to PENDING clears the attribution.
func (o *Order) SetPaymentStatus(status PaymentStatus, receivedBy string) error {
	if !status.IsValid() {
		return shared.NewDomainError("VALIDATION_ERROR", "Invalid payment status")
	}

	switch status {
	case PaymentPaid:
		o.PaymentStatus = PaymentPaid
		if receivedBy != "" {
			o.PaymentReceivedBy = &receivedBy
		}
		o.AddDomainEvent(NewOrderPaymentReceivedEvent(o))
	case PaymentPending:
		o.PaymentStatus = PaymentPending
		o.PaymentReceivedBy = nil
	}
	o.Touch()

	return nil
}

// AssignRecovery assigns a collector to a delivered-but-unpaid order
func (o *Order) AssignRecovery(person string) error {
	if person == "" {
		return shared.NewDomainError("VALIDATION_ERROR", "Collector name is required")
	}
	if !o.IsAwaitingRecovery() {
		return shared.NewDomainError("INVALID_STATE", "Order is not awaiting payment recovery")
	}

	o.RecoveryAssignedTo = &person
	o.Touch()

	return nil
}

// MarkCollected settles payment for an order in recovery. The recovery
// assignment is kept so the books show who collected.
func (o *Order) MarkCollected() error {
	if !o.IsAwaitingRecovery() {
		return shared.NewDomainError("INVALID_STATE", "Order is not awaiting payment recovery")
	}

	o.PaymentStatus = PaymentPaid
	if o.RecoveryAssignedTo != nil {
		o.PaymentReceivedBy = o.RecoveryAssignedTo
	}
	o.Touch()

	o.AddDomainEvent(NewOrderPaymentReceivedEvent(o))

	return nil
}

// IsAwaitingRecovery reports whether the order is delivered but unpaid
func (o *Order) IsAwaitingRecovery() bool {
	return o.Status == StatusDelivered && o.PaymentStatus == PaymentPending
}

// IsOpen reports whether the order still needs to be supplied
// (neither delivered nor cancelled)
func (o *Order) IsOpen() bool {
	return o.Status == StatusPending || o.Status == StatusOutForDelivery
}

// ItemCount returns the number of product lines on the order
func (o *Order) ItemCount() int {
	return len(o.Items)
}

// beforeToday reports whether d falls on a calendar day before today
// in local time
func beforeToday(d time.Time) bool {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dd := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
	return dd.Before(today)
}
