package finance

import (
	"time"

	"github.com/freshline/backend/internal/domain/ledger"
	"github.com/shopspring/decimal"
)

// RecordStockOrderRequest records stock received from the supplier
type RecordStockOrderRequest struct {
	Date         time.Time
	QuantityKg   decimal.Decimal
	DeliveredQty decimal.Decimal
	Amount       decimal.Decimal
	IsSample     bool
	Notes        string
}

// RecordPaymentRequest records cash paid to the supplier
type RecordPaymentRequest struct {
	Date    time.Time
	Amount  decimal.Decimal
	Spender string
	Notes   string
}

// RecordExpenseRequest records one operating cost entry
type RecordExpenseRequest struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Category    ledger.ExpenseCategory
	Spender     string
}

// TransactionResponse is one supplier ledger row, with the derived
// shrinkage figures for ORDER rows
type TransactionResponse struct {
	ID           string          `json:"id"`
	Date         time.Time       `json:"date"`
	Type         string          `json:"type"`
	QuantityKg   decimal.Decimal `json:"quantity_kg"`
	DeliveredQty decimal.Decimal `json:"delivered_qty"`
	Amount       decimal.Decimal `json:"amount"`
	Loss         decimal.Decimal `json:"loss"`
	LossPct      decimal.Decimal `json:"loss_pct"`
	IsSample     bool            `json:"is_sample"`
	IsWaived     bool            `json:"is_waived"`
	Spender      string          `json:"spender,omitempty"`
	Notes        string          `json:"notes,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// ToTransactionResponse maps a supplier transaction to its response
func ToTransactionResponse(txn *ledger.SupplierTransaction) TransactionResponse {
	return TransactionResponse{
		ID:           txn.ID.String(),
		Date:         txn.Date,
		Type:         txn.Type.String(),
		QuantityKg:   txn.QuantityKg,
		DeliveredQty: txn.DeliveredQty,
		Amount:       txn.Amount,
		Loss:         txn.Loss(),
		LossPct:      txn.LossPct(),
		IsSample:     txn.IsSample,
		IsWaived:     txn.IsWaived,
		Spender:      txn.Spender,
		Notes:        txn.Notes,
		CreatedAt:    txn.CreatedAt,
	}
}

// ExpenseResponse is one expense row. Waived rows keep their original
// amount so history can display it struck through.
type ExpenseResponse struct {
	ID              string          `json:"id"`
	Date            time.Time       `json:"date"`
	Description     string          `json:"description"`
	Amount          decimal.Decimal `json:"amount"`
	EffectiveAmount decimal.Decimal `json:"effective_amount"`
	Category        string          `json:"category"`
	Spender         string          `json:"spender,omitempty"`
	IsWaived        bool            `json:"is_waived"`
	CreatedAt       time.Time       `json:"created_at"`
}

// ToExpenseResponse maps an expense to its response representation
func ToExpenseResponse(e *ledger.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:              e.ID.String(),
		Date:            e.Date,
		Description:     e.Description,
		Amount:          e.Amount,
		EffectiveAmount: e.EffectiveAmount(),
		Category:        e.Category.String(),
		Spender:         e.Spender,
		IsWaived:        e.IsWaived,
		CreatedAt:       e.CreatedAt,
	}
}

// LedgerSummaryResponse is the derived supplier ledger state
type LedgerSummaryResponse struct {
	TotalPayable      decimal.Decimal            `json:"total_payable"`
	TotalPaid         decimal.Decimal            `json:"total_paid"`
	PendingBalance    decimal.Decimal            `json:"pending_balance"`
	InvestmentReturns map[string]decimal.Decimal `json:"investment_returns"`
}

// FinancialSummaryResponse is the point-in-time net profit snapshot
type FinancialSummaryResponse struct {
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	TotalSupplierCost decimal.Decimal `json:"total_supplier_cost"`
	TotalExpenses     decimal.Decimal `json:"total_expenses"`
	NetProfit         decimal.Decimal `json:"net_profit"`
	ComputedAt        time.Time       `json:"computed_at"`
}
