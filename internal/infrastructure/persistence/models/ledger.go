package models

import (
	"time"

	"github.com/freshline/backend/internal/domain/ledger"
	"github.com/shopspring/decimal"
)

// SupplierTransactionModel is the persistence model for the
// SupplierTransaction aggregate root.
type SupplierTransactionModel struct {
	AggregateModel
	Date         time.Time              `gorm:"not null;index"`
	Type         ledger.TransactionType `gorm:"type:varchar(20);not null;index"`
	QuantityKg   decimal.Decimal        `gorm:"type:decimal(18,4);not null;default:0"`
	DeliveredQty decimal.Decimal        `gorm:"type:decimal(18,4);not null;default:0"`
	Amount       decimal.Decimal        `gorm:"type:decimal(18,4);not null;default:0"`
	IsSample     bool                   `gorm:"not null;default:false"`
	IsWaived     bool                   `gorm:"not null;default:false"`
	Spender      string                 `gorm:"type:varchar(100);index"`
	Notes        string                 `gorm:"type:text"`
	CreatedBy    string                 `gorm:"type:varchar(100);not null"`
}

// TableName returns the table name for GORM
func (SupplierTransactionModel) TableName() string {
	return "supplier_transactions"
}

// ToDomain converts the persistence model to a domain SupplierTransaction entity.
func (m *SupplierTransactionModel) ToDomain() *ledger.SupplierTransaction {
	txn := &ledger.SupplierTransaction{
		Date:         m.Date,
		Type:         m.Type,
		QuantityKg:   m.QuantityKg,
		DeliveredQty: m.DeliveredQty,
		Amount:       m.Amount,
		IsSample:     m.IsSample,
		IsWaived:     m.IsWaived,
		Spender:      m.Spender,
		Notes:        m.Notes,
		CreatedBy:    m.CreatedBy,
	}
	m.PopulateAggregateRoot(&txn.BaseAggregateRoot)
	return txn
}

// FromDomain populates the persistence model from a domain SupplierTransaction entity.
func (m *SupplierTransactionModel) FromDomain(txn *ledger.SupplierTransaction) {
	m.FromDomainAggregateRoot(txn.BaseAggregateRoot)
	m.Date = txn.Date
	m.Type = txn.Type
	m.QuantityKg = txn.QuantityKg
	m.DeliveredQty = txn.DeliveredQty
	m.Amount = txn.Amount
	m.IsSample = txn.IsSample
	m.IsWaived = txn.IsWaived
	m.Spender = txn.Spender
	m.Notes = txn.Notes
	m.CreatedBy = txn.CreatedBy
}

// SupplierTransactionModelFromDomain creates a new persistence model from
// a domain SupplierTransaction entity.
func SupplierTransactionModelFromDomain(txn *ledger.SupplierTransaction) *SupplierTransactionModel {
	m := &SupplierTransactionModel{}
	m.FromDomain(txn)
	return m
}

// ExpenseModel is the persistence model for the Expense aggregate root.
type ExpenseModel struct {
	AggregateModel
	Date        time.Time              `gorm:"not null;index"`
	Description string                 `gorm:"type:varchar(500);not null"`
	Amount      decimal.Decimal        `gorm:"type:decimal(18,4);not null;default:0"`
	Category    ledger.ExpenseCategory `gorm:"type:varchar(20);not null;index"`
	Spender     string                 `gorm:"type:varchar(100);index"`
	IsWaived    bool                   `gorm:"not null;default:false"`
	CreatedBy   string                 `gorm:"type:varchar(100);not null"`
}

// TableName returns the table name for GORM
func (ExpenseModel) TableName() string {
	return "expenses"
}

// ToDomain converts the persistence model to a domain Expense entity.
func (m *ExpenseModel) ToDomain() *ledger.Expense {
	e := &ledger.Expense{
		Date:        m.Date,
		Description: m.Description,
		Amount:      m.Amount,
		Category:    m.Category,
		Spender:     m.Spender,
		IsWaived:    m.IsWaived,
		CreatedBy:   m.CreatedBy,
	}
	m.PopulateAggregateRoot(&e.BaseAggregateRoot)
	return e
}

// FromDomain populates the persistence model from a domain Expense entity.
func (m *ExpenseModel) FromDomain(e *ledger.Expense) {
	m.FromDomainAggregateRoot(e.BaseAggregateRoot)
	m.Date = e.Date
	m.Description = e.Description
	m.Amount = e.Amount
	m.Category = e.Category
	m.Spender = e.Spender
	m.IsWaived = e.IsWaived
	m.CreatedBy = e.CreatedBy
}

// ExpenseModelFromDomain creates a new persistence model from a domain Expense entity.
func ExpenseModelFromDomain(e *ledger.Expense) *ExpenseModel {
	m := &ExpenseModel{}
	m.FromDomain(e)
	return m
}
