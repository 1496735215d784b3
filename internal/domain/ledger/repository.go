package ledger

import (
	"context"

	"github.com/freshline/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// SupplierTransactionRepository defines supplier ledger persistence
type SupplierTransactionRepository interface {
	Create(ctx context.Context, txn *SupplierTransaction) error
	FindByID(ctx context.Context, id uuid.UUID) (*SupplierTransaction, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]SupplierTransaction, error)
	Save(ctx context.Context, txn *SupplierTransaction) error
}

// ExpenseRepository defines expense history persistence
type ExpenseRepository interface {
	Create(ctx context.Context, expense *Expense) error
	FindByID(ctx context.Context, id uuid.UUID) (*Expense, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Expense, error)
	Save(ctx context.Context, expense *Expense) error
}
