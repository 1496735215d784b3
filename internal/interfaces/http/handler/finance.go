package handler

import (
	"time"

	"github.com/freshline/backend/internal/application/finance"
	"github.com/freshline/backend/internal/domain/ledger"
	"github.com/freshline/backend/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FinanceHandler handles the supplier ledger, expenses and the
// financial summary
type FinanceHandler struct {
	BaseHandler
	financeService *finance.Service
}

// NewFinanceHandler creates a new FinanceHandler
func NewFinanceHandler(financeService *finance.Service) *FinanceHandler {
	return &FinanceHandler{financeService: financeService}
}

// RecordStockOrderRequest records stock received from the supplier
type RecordStockOrderRequest struct {
	Date         string  `json:"date" binding:"required"`
	QuantityKg   float64 `json:"quantity_kg" binding:"required,gt=0"`
	DeliveredQty float64 `json:"delivered_qty" binding:"gte=0"`
	Amount       float64 `json:"amount" binding:"gte=0"`
	IsSample     bool    `json:"is_sample"`
	Notes        string  `json:"notes" binding:"omitempty,max=1000"`
}

// RecordPaymentRequest records cash paid to the supplier
type RecordPaymentRequest struct {
	Date    string  `json:"date" binding:"required"`
	Amount  float64 `json:"amount" binding:"required,gt=0"`
	Spender string  `json:"spender" binding:"required"`
	Notes   string  `json:"notes" binding:"omitempty,max=1000"`
}

// RecordExpenseRequest records one operating cost
type RecordExpenseRequest struct {
	Date        string  `json:"date" binding:"required"`
	Description string  `json:"description" binding:"required,min=1,max=500"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Category    string  `json:"category" binding:"required,oneof=FUEL PACKAGING TRANSPORT MARKETING SALARY OTHER"`
	Spender     string  `json:"spender"`
}

// ListLedgerRequest holds the transaction list query parameters
type ListLedgerRequest struct {
	Page      int    `form:"page" binding:"omitempty,min=1"`
	PageSize  int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy   string `form:"order_by"`
	OrderDir  string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
	Type      string `form:"type" binding:"omitempty,oneof=ORDER PAYMENT"`
	Spender   string `form:"spender"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
}

// ListExpensesRequest holds the expense list query parameters
type ListExpensesRequest struct {
	Page      int    `form:"page" binding:"omitempty,min=1"`
	PageSize  int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy   string `form:"order_by"`
	OrderDir  string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
	Category  string `form:"category" binding:"omitempty,oneof=FUEL PACKAGING TRANSPORT MARKETING SALARY OTHER"`
	Spender   string `form:"spender"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
}

// RecordStockOrder records a supplier stock delivery
func (h *FinanceHandler) RecordStockOrder(c *gin.Context) {
	var req RecordStockOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		h.BadRequest(c, "date must be YYYY-MM-DD")
		return
	}

	resp, err := h.financeService.RecordStockOrder(c.Request.Context(), getActor(c), finance.RecordStockOrderRequest{
		Date:         date,
		QuantityKg:   decimal.NewFromFloat(req.QuantityKg),
		DeliveredQty: decimal.NewFromFloat(req.DeliveredQty),
		Amount:       decimal.NewFromFloat(req.Amount),
		IsSample:     req.IsSample,
		Notes:        req.Notes,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// RecordPayment records cash paid to the supplier
func (h *FinanceHandler) RecordPayment(c *gin.Context) {
	var req RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		h.BadRequest(c, "date must be YYYY-MM-DD")
		return
	}

	resp, err := h.financeService.RecordPayment(c.Request.Context(), getActor(c), finance.RecordPaymentRequest{
		Date:    date,
		Amount:  decimal.NewFromFloat(req.Amount),
		Spender: req.Spender,
		Notes:   req.Notes,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// WaiveTransaction forgives a ledger entry, keeping it visible
func (h *FinanceHandler) WaiveTransaction(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid transaction ID format")
		return
	}

	resp, err := h.financeService.WaiveTransaction(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// ListTransactions retrieves the supplier ledger history
func (h *FinanceHandler) ListTransactions(c *gin.Context) {
	var req ListLedgerRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := shared.Filter{
		Page:     req.Page,
		PageSize: req.PageSize,
		OrderBy:  req.OrderBy,
		OrderDir: req.OrderDir,
		Filters:  make(map[string]interface{}),
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if req.Type != "" {
		filter.Filters["type"] = req.Type
	}
	if req.Spender != "" {
		filter.Filters["spender"] = req.Spender
	}
	if !h.bindDateRange(c, req.StartDate, req.EndDate, &filter) {
		return
	}

	txns, err := h.financeService.ListTransactions(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, txns)
}

// LedgerSummary returns the derived supplier ledger state
func (h *FinanceHandler) LedgerSummary(c *gin.Context) {
	summary, err := h.financeService.LedgerSummary(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, summary)
}

// RecordExpense records one operating cost
func (h *FinanceHandler) RecordExpense(c *gin.Context) {
	var req RecordExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		h.BadRequest(c, "date must be YYYY-MM-DD")
		return
	}

	resp, err := h.financeService.RecordExpense(c.Request.Context(), getActor(c), finance.RecordExpenseRequest{
		Date:        date,
		Description: req.Description,
		Amount:      decimal.NewFromFloat(req.Amount),
		Category:    ledger.ExpenseCategory(req.Category),
		Spender:     req.Spender,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// WaiveExpense excludes an expense from totals, keeping it visible
func (h *FinanceHandler) WaiveExpense(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid expense ID format")
		return
	}

	resp, err := h.financeService.WaiveExpense(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// ListExpenses retrieves the expense history
func (h *FinanceHandler) ListExpenses(c *gin.Context) {
	var req ListExpensesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := shared.Filter{
		Page:     req.Page,
		PageSize: req.PageSize,
		OrderBy:  req.OrderBy,
		OrderDir: req.OrderDir,
		Filters:  make(map[string]interface{}),
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if req.Category != "" {
		filter.Filters["category"] = req.Category
	}
	if req.Spender != "" {
		filter.Filters["spender"] = req.Spender
	}
	if !h.bindDateRange(c, req.StartDate, req.EndDate, &filter) {
		return
	}

	expenses, err := h.financeService.ListExpenses(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, expenses)
}

// FinancialSummary returns the point-in-time net profit snapshot
func (h *FinanceHandler) FinancialSummary(c *gin.Context) {
	summary, err := h.financeService.FinancialSummary(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, summary)
}

// bindDateRange parses optional date bounds into the filter, sending a
// 400 and returning false on a malformed value
func (h *FinanceHandler) bindDateRange(c *gin.Context, start, end string, filter *shared.Filter) bool {
	if start != "" {
		parsed, err := time.Parse(dateLayout, start)
		if err != nil {
			h.BadRequest(c, "start_date must be YYYY-MM-DD")
			return false
		}
		filter.Filters["start_date"] = parsed
	}
	if end != "" {
		parsed, err := time.Parse(dateLayout, end)
		if err != nil {
			h.BadRequest(c, "end_date must be YYYY-MM-DD")
			return false
		}
		filter.Filters["end_date"] = parsed
	}
	return true
}

// RegisterRoutes registers finance routes
func (h *FinanceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	ledgerGroup := rg.Group("/ledger")
	{
		ledgerGroup.GET("/transactions", h.ListTransactions)
		ledgerGroup.POST("/stock-orders", h.RecordStockOrder)
		ledgerGroup.POST("/payments", h.RecordPayment)
		ledgerGroup.POST("/transactions/:id/waive", h.WaiveTransaction)
		ledgerGroup.GET("/summary", h.LedgerSummary)
	}

	expenses := rg.Group("/expenses")
	{
		expenses.GET("", h.ListExpenses)
		expenses.POST("", h.RecordExpense)
		expenses.POST("/:id/waive", h.WaiveExpense)
	}

	rg.GET("/finance/summary", h.FinancialSummary)
}
