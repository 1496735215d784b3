package finance

import (
	"context"
	"time"

	"github.com/freshline/backend/internal/domain/ledger"
	"github.com/freshline/backend/internal/domain/order"
	"github.com/freshline/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service handles the supplier ledger, expense history and the derived
// financial summary. Every figure is recomputed from history on demand;
// nothing financial is cached or stored denormalized.
type Service struct {
	txns      ledger.SupplierTransactionRepository
	expenses  ledger.ExpenseRepository
	orders    order.Repository
	publisher shared.EventPublisher
}

// NewService creates a new finance service
func NewService(txns ledger.SupplierTransactionRepository, expenses ledger.ExpenseRepository, orders order.Repository) *Service {
	return &Service{
		txns:     txns,
		expenses: expenses,
		orders:   orders,
	}
}

// SetEventPublisher sets the event publisher
func (s *Service) SetEventPublisher(publisher shared.EventPublisher) {
	s.publisher = publisher
}

// ============================================================================
// Supplier ledger
// ============================================================================

// RecordStockOrder records stock received from the supplier
func (s *Service) RecordStockOrder(ctx context.Context, actor string, req RecordStockOrderRequest) (*TransactionResponse, error) {
	if actor == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Actor is required")
	}

	txn, err := ledger.NewStockOrder(req.Date, req.QuantityKg, req.DeliveredQty, req.Amount, req.IsSample, req.Notes, actor)
	if err != nil {
		return nil, err
	}

	if err := s.txns.Create(ctx, txn); err != nil {
		return nil, err
	}

	resp := ToTransactionResponse(txn)
	return &resp, nil
}

// RecordPayment records cash paid to the supplier, attributed to the
// staff member who fronted the money
func (s *Service) RecordPayment(ctx context.Context, actor string, req RecordPaymentRequest) (*TransactionResponse, error) {
	if actor == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Actor is required")
	}

	txn, err := ledger.NewSupplierPayment(req.Date, req.Amount, req.Spender, req.Notes, actor)
	if err != nil {
		return nil, err
	}

	if err := s.txns.Create(ctx, txn); err != nil {
		return nil, err
	}

	resp := ToTransactionResponse(txn)
	return &resp, nil
}

// WaiveTransaction forgives a supplier transaction. The row stays in
// history with its original amount but stops counting toward totals.
func (s *Service) WaiveTransaction(ctx context.Context, id uuid.UUID) (*TransactionResponse, error) {
	txn, err := s.txns.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := txn.Waive(); err != nil {
		return nil, err
	}

	if err := s.txns.Save(ctx, txn); err != nil {
		return nil, err
	}

	resp := ToTransactionResponse(txn)
	return &resp, nil
}

// ListTransactions returns supplier ledger history, newest first, with
// per-row loss figures for stock orders
func (s *Service) ListTransactions(ctx context.Context, filter shared.Filter) ([]TransactionResponse, error) {
	if filter.OrderBy == "" {
		filter.OrderBy = "date"
		filter.OrderDir = "desc"
	}

	txns, err := s.txns.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]TransactionResponse, len(txns))
	for i := range txns {
		responses[i] = ToTransactionResponse(&txns[i])
	}
	return responses, nil
}

// LedgerSummary derives the supplier balance and per-spender investment
// returns from the full transaction history
func (s *Service) LedgerSummary(ctx context.Context) (*LedgerSummaryResponse, error) {
	txns, err := s.txns.FindAll(ctx, shared.Filter{})
	if err != nil {
		return nil, err
	}

	summary := ledger.Summarize(txns)
	return &LedgerSummaryResponse{
		TotalPayable:      summary.TotalPayable,
		TotalPaid:         summary.TotalPaid,
		PendingBalance:    summary.PendingBalance,
		InvestmentReturns: summary.InvestmentReturns,
	}, nil
}

// ============================================================================
// Expenses
// ============================================================================

// RecordExpense records one operating cost entry
func (s *Service) RecordExpense(ctx context.Context, actor string, req RecordExpenseRequest) (*ExpenseResponse, error) {
	if actor == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Actor is required")
	}

	expense, err := ledger.NewExpense(req.Date, req.Description, req.Amount, req.Category, req.Spender, actor)
	if err != nil {
		return nil, err
	}

	if err := s.expenses.Create(ctx, expense); err != nil {
		return nil, err
	}

	resp := ToExpenseResponse(expense)
	return &resp, nil
}

// WaiveExpense excludes an expense from totals while keeping it visible
// in history
func (s *Service) WaiveExpense(ctx context.Context, id uuid.UUID) (*ExpenseResponse, error) {
	expense, err := s.expenses.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := expense.Waive(); err != nil {
		return nil, err
	}

	if err := s.expenses.Save(ctx, expense); err != nil {
		return nil, err
	}

	resp := ToExpenseResponse(expense)
	return &resp, nil
}

// ListExpenses returns expense history, newest first
func (s *Service) ListExpenses(ctx context.Context, filter shared.Filter) ([]ExpenseResponse, error) {
	if filter.OrderBy == "" {
		filter.OrderBy = "date"
		filter.OrderDir = "desc"
	}

	expenses, err := s.expenses.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]ExpenseResponse, len(expenses))
	for i := range expenses {
		responses[i] = ToExpenseResponse(&expenses[i])
	}
	return responses, nil
}

// ============================================================================
// Financial summary
// ============================================================================

// FinancialSummary computes the net profit snapshot:
// revenue over all non-cancelled orders, minus supplier cost, minus
// effective expenses. Cancelled orders never contribute revenue.
func (s *Service) FinancialSummary(ctx context.Context) (*FinancialSummaryResponse, error) {
	orders, err := s.orders.FindNotCancelled(ctx)
	if err != nil {
		return nil, err
	}

	revenue := decimal.Zero
	for i := range orders {
		revenue = revenue.Add(orders[i].TotalAmount)
	}

	txns, err := s.txns.FindAll(ctx, shared.Filter{})
	if err != nil {
		return nil, err
	}
	supplierCost := ledger.Summarize(txns).TotalPayable

	expenses, err := s.expenses.FindAll(ctx, shared.Filter{})
	if err != nil {
		return nil, err
	}
	totalExpenses := ledger.TotalExpenses(expenses)

	return &FinancialSummaryResponse{
		TotalRevenue:      revenue,
		TotalSupplierCost: supplierCost,
		TotalExpenses:     totalExpenses,
		NetProfit:         revenue.Sub(supplierCost).Sub(totalExpenses),
		ComputedAt:        time.Now(),
	}, nil
}
