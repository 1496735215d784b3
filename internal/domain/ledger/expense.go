package ledger

import (
	"time"

	"github.com/freshline/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ExpenseCategory classifies an operating cost entry
type ExpenseCategory string

const (
	ExpenseCategoryFuel      ExpenseCategory = "FUEL"
	ExpenseCategoryPackaging ExpenseCategory = "PACKAGING"
	ExpenseCategoryTransport ExpenseCategory = "TRANSPORT"
	ExpenseCategoryMarketing ExpenseCategory = "MARKETING"
	ExpenseCategorySalary    ExpenseCategory = "SALARY"
	ExpenseCategoryOther     ExpenseCategory = "OTHER"
)

// IsValid checks if the category is a valid ExpenseCategory
func (c ExpenseCategory) IsValid() bool {
	switch c {
	case ExpenseCategoryFuel, ExpenseCategoryPackaging, ExpenseCategoryTransport,
		ExpenseCategoryMarketing, ExpenseCategorySalary, ExpenseCategoryOther:
		return true
	}
	return false
}

// String returns the string representation of ExpenseCategory
func (c ExpenseCategory) String() string {
	return string(c)
}

// Expense is one operating cost entry. A waived expense keeps its
// original amount for history display but contributes nothing to
// totals.
type Expense struct {
	shared.BaseAggregateRoot
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Category    ExpenseCategory
	Spender     string
	IsWaived    bool
	CreatedBy   string
}

// NewExpense creates a new expense entry
func NewExpense(date time.Time, description string, amount decimal.Decimal, category ExpenseCategory, spender, actor string) (*Expense, error) {
	if date.IsZero() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Expense date is required")
	}
	if description == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Description is required")
	}
	if amount.IsNegative() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Amount cannot be negative")
	}
	if !category.IsValid() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Invalid expense category")
	}

	return &Expense{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Date:              date,
		Description:       description,
		Amount:            amount,
		Category:          category,
		Spender:           spender,
		CreatedBy:         actor,
	}, nil
}

// Waive excludes the expense from totals while keeping the original
// amount visible in history
func (e *Expense) Waive() error {
	if e.IsWaived {
		return shared.NewDomainError("INVALID_STATE", "Expense is already waived")
	}
	e.IsWaived = true
	e.Touch()
	return nil
}

// EffectiveAmount returns the amount counted toward totals
func (e *Expense) EffectiveAmount() decimal.Decimal {
	if e.IsWaived {
		return decimal.Zero
	}
	return e.Amount
}
