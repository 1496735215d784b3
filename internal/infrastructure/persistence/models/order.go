package models

import (
	"time"

	"github.com/freshline/backend/internal/domain/order"
	"github.com/freshline/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderModel is the persistence model for the Order aggregate root.
type OrderModel struct {
	AggregateModel
	CustomerName       string           `gorm:"type:varchar(200);not null;index"`
	CustomerAddress    string           `gorm:"type:varchar(500);not null"`
	CustomerPhone      string           `gorm:"type:varchar(20)"`
	DistanceKm         decimal.Decimal  `gorm:"type:decimal(10,2);not null;default:0"`
	Salesperson        string           `gorm:"type:varchar(100);not null;index"`
	DeliveryDate       time.Time        `gorm:"not null;index"`
	Items              []OrderItemModel `gorm:"foreignKey:OrderID;references:ID"`
	TotalWeightKg      decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	TotalAmount        decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	Status             order.Status     `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	PaymentStatus      order.PaymentStatus `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	PaymentReceivedBy  *string          `gorm:"type:varchar(100)"`
	DeliveryBoy        *string          `gorm:"type:varchar(100);index"`
	RecoveryAssignedTo *string          `gorm:"type:varchar(100);index"`
	Notes              string           `gorm:"type:text"`
	CreatedBy          string           `gorm:"type:varchar(100);not null"`
	DispatchedAt       *time.Time       `gorm:"index"`
	DeliveredAt        *time.Time       `gorm:"index"`
	CancelledAt        *time.Time
	CancelReason       string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the persistence model to a domain Order entity.
func (m *OrderModel) ToDomain() *order.Order {
	o := &order.Order{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			Version: m.Version,
		},
		CustomerName:       m.CustomerName,
		CustomerAddress:    m.CustomerAddress,
		CustomerPhone:      m.CustomerPhone,
		DistanceKm:         m.DistanceKm,
		Salesperson:        m.Salesperson,
		DeliveryDate:       m.DeliveryDate,
		TotalWeightKg:      m.TotalWeightKg,
		TotalAmount:        m.TotalAmount,
		Status:             m.Status,
		PaymentStatus:      m.PaymentStatus,
		PaymentReceivedBy:  m.PaymentReceivedBy,
		DeliveryBoy:        m.DeliveryBoy,
		RecoveryAssignedTo: m.RecoveryAssignedTo,
		Notes:              m.Notes,
		CreatedBy:          m.CreatedBy,
		DispatchedAt:       m.DispatchedAt,
		DeliveredAt:        m.DeliveredAt,
		CancelledAt:        m.CancelledAt,
		CancelReason:       m.CancelReason,
		Items:              make([]order.Item, len(m.Items)),
	}
	for i, item := range m.Items {
		o.Items[i] = *item.ToDomain()
	}
	return o
}

// FromDomain populates the persistence model from a domain Order entity.
func (m *OrderModel) FromDomain(o *order.Order) {
	m.FromDomainAggregateRoot(o.BaseAggregateRoot)
	m.CustomerName = o.CustomerName
	m.CustomerAddress = o.CustomerAddress
	m.CustomerPhone = o.CustomerPhone
	m.DistanceKm = o.DistanceKm
	m.Salesperson = o.Salesperson
	m.DeliveryDate = o.DeliveryDate
	m.TotalWeightKg = o.TotalWeightKg
	m.TotalAmount = o.TotalAmount
	m.Status = o.Status
	m.PaymentStatus = o.PaymentStatus
	m.PaymentReceivedBy = o.PaymentReceivedBy
	m.DeliveryBoy = o.DeliveryBoy
	m.RecoveryAssignedTo = o.RecoveryAssignedTo
	m.Notes = o.Notes
	m.CreatedBy = o.CreatedBy
	m.DispatchedAt = o.DispatchedAt
	m.DeliveredAt = o.DeliveredAt
	m.CancelledAt = o.CancelledAt
	m.CancelReason = o.CancelReason
	m.Items = make([]OrderItemModel, len(o.Items))
	for i, item := range o.Items {
		m.Items[i] = *OrderItemModelFromDomain(&item)
	}
}

// OrderModelFromDomain creates a new persistence model from a domain Order entity.
func OrderModelFromDomain(o *order.Order) *OrderModel {
	m := &OrderModel{}
	m.FromDomain(o)
	return m
}

// OrderItemModel is the persistence model for the order Item entity.
type OrderItemModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductType string          `gorm:"type:varchar(50);not null;index"`
	Quantity    int64           `gorm:"not null"`
	WeightKg    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OrderItemModel) TableName() string {
	return "order_items"
}

// ToDomain converts the persistence model to a domain Item entity.
func (m *OrderItemModel) ToDomain() *order.Item {
	return &order.Item{
		ID:          m.ID,
		OrderID:     m.OrderID,
		ProductType: m.ProductType,
		Quantity:    m.Quantity,
		WeightKg:    m.WeightKg,
		UnitPrice:   m.UnitPrice,
		Amount:      m.Amount,
		CreatedAt:   m.CreatedAt,
	}
}

// OrderItemModelFromDomain creates a new persistence model from a domain Item entity.
func OrderItemModelFromDomain(item *order.Item) *OrderItemModel {
	return &OrderItemModel{
		ID:          item.ID,
		OrderID:     item.OrderID,
		ProductType: item.ProductType,
		Quantity:    item.Quantity,
		WeightKg:    item.WeightKg,
		UnitPrice:   item.UnitPrice,
		Amount:      item.Amount,
		CreatedAt:   item.CreatedAt,
	}
}
