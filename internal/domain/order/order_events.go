package order

import (
	"github.com/freshline/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeOrder = "Order"

// Event type constants
const (
	EventTypeOrderPlaced          = "OrderPlaced"
	EventTypeOrderDispatched      = "OrderDispatched"
	EventTypeOrderDelivered       = "OrderDelivered"
	EventTypeOrderCancelled       = "OrderCancelled"
	EventTypeOrderPaymentReceived = "OrderPaymentReceived"
)

// OrderPlacedEvent is raised when a new order is placed
type OrderPlacedEvent struct {
	shared.BaseDomainEvent
	OrderID      uuid.UUID       `json:"order_id"`
	CustomerName string          `json:"customer_name"`
	Salesperson  string          `json:"salesperson"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	PlacedBy     string          `json:"placed_by"`
}

// NewOrderPlacedEvent creates a new OrderPlacedEvent
func NewOrderPlacedEvent(o *Order) *OrderPlacedEvent {
	return &OrderPlacedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderPlaced, AggregateTypeOrder, o.ID),
		OrderID:         o.ID,
		CustomerName:    o.CustomerName,
		Salesperson:     o.Salesperson,
		TotalAmount:     o.TotalAmount,
		PlacedBy:        o.CreatedBy,
	}
}

// OrderDispatchedEvent is raised when a driver is assigned and the
// order goes out for delivery
type OrderDispatchedEvent struct {
	shared.BaseDomainEvent
	OrderID uuid.UUID `json:"order_id"`
	Driver  string    `json:"driver"`
}

// NewOrderDispatchedEvent creates a new OrderDispatchedEvent
func NewOrderDispatchedEvent(o *Order, driver string) *OrderDispatchedEvent {
	return &OrderDispatchedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderDispatched, AggregateTypeOrder, o.ID),
		OrderID:         o.ID,
		Driver:          driver,
	}
}

// OrderDeliveredEvent is raised when an order reaches the customer
type OrderDeliveredEvent struct {
	shared.BaseDomainEvent
	OrderID      uuid.UUID `json:"order_id"`
	PaidOnSpot   bool      `json:"paid_on_spot"`
	CustomerName string    `json:"customer_name"`
}

// NewOrderDeliveredEvent creates a new OrderDeliveredEvent
func NewOrderDeliveredEvent(o *Order, paidOnSpot bool) *OrderDeliveredEvent {
	return &OrderDeliveredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderDelivered, AggregateTypeOrder, o.ID),
		OrderID:         o.ID,
		PaidOnSpot:      paidOnSpot,
		CustomerName:    o.CustomerName,
	}
}

// OrderCancelledEvent is raised when an order is cancelled
type OrderCancelledEvent struct {
	shared.BaseDomainEvent
	OrderID uuid.UUID `json:"order_id"`
	Reason  string    `json:"reason"`
}

// NewOrderCancelledEvent creates a new OrderCancelledEvent
func NewOrderCancelledEvent(o *Order) *OrderCancelledEvent {
	return &OrderCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCancelled, AggregateTypeOrder, o.ID),
		OrderID:         o.ID,
		Reason:          o.CancelReason,
	}
}

// OrderPaymentReceivedEvent is raised whenever an order's payment is
// settled, regardless of which path settled it
type OrderPaymentReceivedEvent struct {
	shared.BaseDomainEvent
	OrderID    uuid.UUID       `json:"order_id"`
	Amount     decimal.Decimal `json:"amount"`
	ReceivedBy string          `json:"received_by,omitempty"`
}

// NewOrderPaymentReceivedEvent creates a new OrderPaymentReceivedEvent
func NewOrderPaymentReceivedEvent(o *Order) *OrderPaymentReceivedEvent {
	receivedBy := ""
	if o.PaymentReceivedBy != nil {
		receivedBy = *o.PaymentReceivedBy
	}
	return &OrderPaymentReceivedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderPaymentReceived, AggregateTypeOrder, o.ID),
		OrderID:         o.ID,
		Amount:          o.TotalAmount,
		ReceivedBy:      receivedBy,
	}
}
