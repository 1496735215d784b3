package order

import (
	"time"

	"github.com/freshline/backend/internal/domain/order"
	"github.com/shopspring/decimal"
)

// PlaceOrderItemInput is one entered line of a new order. A nil unit
// price falls back to the catalog's default price for the product.
type PlaceOrderItemInput struct {
	ProductType string
	Quantity    int64
	UnitPrice   *decimal.Decimal
}

// PlaceOrderRequest carries everything needed to place an order
type PlaceOrderRequest struct {
	CustomerName    string
	CustomerAddress string
	CustomerPhone   string
	DistanceKm      decimal.Decimal
	Salesperson     string
	DeliveryDate    time.Time
	Notes           string
	Items           []PlaceOrderItemInput
}

// ListFilter narrows the order list view
type ListFilter struct {
	Page          int
	PageSize      int
	OrderBy       string
	OrderDir      string
	Status        *order.Status
	PaymentStatus *order.PaymentStatus
	Salesperson   *string
	StartDate     *time.Time
	EndDate       *time.Time
	Search        string
}

// ItemResponse is one order line in responses
type ItemResponse struct {
	ID          string          `json:"id"`
	ProductType string          `json:"product_type"`
	Quantity    int64           `json:"quantity"`
	WeightKg    decimal.Decimal `json:"weight_kg"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
}

// Response is a full order in responses
type Response struct {
	ID                 string          `json:"id"`
	CustomerName       string          `json:"customer_name"`
	CustomerAddress    string          `json:"customer_address"`
	CustomerPhone      string          `json:"customer_phone,omitempty"`
	DistanceKm         decimal.Decimal `json:"distance_km"`
	Salesperson        string          `json:"salesperson"`
	DeliveryDate       time.Time       `json:"delivery_date"`
	Items              []ItemResponse  `json:"items"`
	TotalWeightKg      decimal.Decimal `json:"total_weight_kg"`
	TotalAmount        decimal.Decimal `json:"total_amount"`
	Status             string          `json:"status"`
	PaymentStatus      string          `json:"payment_status"`
	PaymentReceivedBy  *string         `json:"payment_received_by,omitempty"`
	DeliveryBoy        *string         `json:"delivery_boy,omitempty"`
	RecoveryAssignedTo *string         `json:"recovery_assigned_to,omitempty"`
	Notes              string          `json:"notes,omitempty"`
	CreatedBy          string          `json:"created_by"`
	DispatchedAt       *time.Time      `json:"dispatched_at,omitempty"`
	DeliveredAt        *time.Time      `json:"delivered_at,omitempty"`
	CancelledAt        *time.Time      `json:"cancelled_at,omitempty"`
	CancelReason       string          `json:"cancel_reason,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// ToResponse maps a domain order to its response representation
func ToResponse(o *order.Order) Response {
	items := make([]ItemResponse, len(o.Items))
	for i, item := range o.Items {
		items[i] = ItemResponse{
			ID:          item.ID.String(),
			ProductType: item.ProductType,
			Quantity:    item.Quantity,
			WeightKg:    item.WeightKg,
			UnitPrice:   item.UnitPrice,
			Amount:      item.Amount,
		}
	}

	return Response{
		ID:                 o.ID.String(),
		CustomerName:       o.CustomerName,
		CustomerAddress:    o.CustomerAddress,
		CustomerPhone:      o.CustomerPhone,
		DistanceKm:         o.DistanceKm,
		Salesperson:        o.Salesperson,
		DeliveryDate:       o.DeliveryDate,
		Items:              items,
		TotalWeightKg:      o.TotalWeightKg,
		TotalAmount:        o.TotalAmount,
		Status:             o.Status.String(),
		PaymentStatus:      o.PaymentStatus.String(),
		PaymentReceivedBy:  o.PaymentReceivedBy,
		DeliveryBoy:        o.DeliveryBoy,
		RecoveryAssignedTo: o.RecoveryAssignedTo,
		Notes:              o.Notes,
		CreatedBy:          o.CreatedBy,
		DispatchedAt:       o.DispatchedAt,
		DeliveredAt:        o.DeliveredAt,
		CancelledAt:        o.CancelledAt,
		CancelReason:       o.CancelReason,
		CreatedAt:          o.CreatedAt,
		UpdatedAt:          o.UpdatedAt,
	}
}
