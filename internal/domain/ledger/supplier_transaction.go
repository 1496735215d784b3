package ledger

import (
	"time"

	"github.com/freshline/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// TransactionType distinguishes the two supplier-facing events
type TransactionType string

const (
	// TransactionOrder records stock received from the supplier, an
	// investment that increases what the shop owes
	TransactionOrder TransactionType = "ORDER"
	// TransactionPayment records cash paid to the supplier
	TransactionPayment TransactionType = "PAYMENT"
)

// IsValid checks if the type is a valid TransactionType
func (t TransactionType) IsValid() bool {
	return t == TransactionOrder || t == TransactionPayment
}

// String returns the string representation of TransactionType
func (t TransactionType) String() string {
	return string(t)
}

// SupplierTransaction is one event in the supplier relationship.
// It is an independent top-level record, never linked to a customer
// order. Sample and waived rows stay visible in history but are
// excluded from every ledger total.
type SupplierTransaction struct {
	shared.BaseAggregateRoot
	Date         time.Time
	Type         TransactionType
	QuantityKg   decimal.Decimal // Ordered quantity; meaningful for ORDER only
	DeliveredQty decimal.Decimal // Actually delivered; captures shrinkage
	Amount       decimal.Decimal
	IsSample     bool   // Free goods from the supplier
	IsWaived     bool   // Amount forgiven by the supplier
	Spender      string // Staff member who funded a PAYMENT
	Notes        string
	CreatedBy    string
}

// NewStockOrder records stock received from the supplier
func NewStockOrder(date time.Time, quantityKg, deliveredQty, amount decimal.Decimal, isSample bool, notes, actor string) (*SupplierTransaction, error) {
	if date.IsZero() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Transaction date is required")
	}
	if quantityKg.IsNegative() || deliveredQty.IsNegative() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Quantities cannot be negative")
	}
	if amount.IsNegative() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Amount cannot be negative")
	}

	return &SupplierTransaction{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Date:              date,
		Type:              TransactionOrder,
		QuantityKg:        quantityKg,
		DeliveredQty:      deliveredQty,
		Amount:            amount,
		IsSample:          isSample,
		Notes:             notes,
		CreatedBy:         actor,
	}, nil
}

// NewSupplierPayment records cash paid to the supplier, attributed to
// the staff member who fronted the money
func NewSupplierPayment(date time.Time, amount decimal.Decimal, spender, notes, actor string) (*SupplierTransaction, error) {
	if date.IsZero() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Transaction date is required")
	}
	if amount.IsNegative() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Amount cannot be negative")
	}
	if spender == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Spender is required for a payment")
	}

	return &SupplierTransaction{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Date:              date,
		Type:              TransactionPayment,
		QuantityKg:        decimal.Zero,
		DeliveredQty:      decimal.Zero,
		Amount:            amount,
		Spender:           spender,
		Notes:             notes,
		CreatedBy:         actor,
	}, nil
}

// Waive forgives the amount. The row stays in history with its
// original amount but no longer counts toward any total.
func (s *SupplierTransaction) Waive() error {
	if s.IsWaived {
		return shared.NewDomainError("INVALID_STATE", "Transaction is already waived")
	}
	s.IsWaived = true
	s.Touch()
	return nil
}

// CountsTowardLedger reports whether the row participates in totals
func (s *SupplierTransaction) CountsTowardLedger() bool {
	return !s.IsSample && !s.IsWaived
}

// Loss returns the shrinkage between ordered and delivered quantity.
// Only meaningful for ORDER rows.
func (s *SupplierTransaction) Loss() decimal.Decimal {
	return s.QuantityKg.Sub(s.DeliveredQty)
}

// LossPct returns the shrinkage as a percentage of the ordered
// quantity. A zero ordered quantity reports 0%, never a division error.
func (s *SupplierTransaction) LossPct() decimal.Decimal {
	if s.QuantityKg.IsZero() {
		return decimal.Zero
	}
	return s.Loss().Div(s.QuantityKg).Mul(decimal.NewFromInt(100))
}
