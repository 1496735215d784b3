package handler

import (
	"fmt"
	"time"

	"github.com/freshline/backend/internal/domain/ledger"
	"github.com/freshline/backend/internal/domain/order"
	"github.com/freshline/backend/internal/domain/shared"
	"github.com/freshline/backend/internal/infrastructure/export"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler streams back-office workbooks
type ExportHandler struct {
	BaseHandler
	txns     ledger.SupplierTransactionRepository
	expenses ledger.ExpenseRepository
	orders   order.Repository
	exporter *export.ExcelExporter
}

// NewExportHandler creates a new ExportHandler
func NewExportHandler(
	txns ledger.SupplierTransactionRepository,
	expenses ledger.ExpenseRepository,
	orders order.Repository,
	exporter *export.ExcelExporter,
) *ExportHandler {
	return &ExportHandler{
		txns:     txns,
		expenses: expenses,
		orders:   orders,
		exporter: exporter,
	}
}

// Ledger exports the full supplier ledger and expense history
func (h *ExportHandler) Ledger(c *gin.Context) {
	ctx := c.Request.Context()

	txns, err := h.txns.FindAll(ctx, fullHistoryFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	expenses, err := h.expenses.FindAll(ctx, fullHistoryFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.streamWorkbook(c, "supplier_ledger", func(c *gin.Context) error {
		return h.exporter.WriteLedgerWorkbook(c.Writer, txns, expenses)
	})
}

// Orders exports all non-cancelled orders
func (h *ExportHandler) Orders(c *gin.Context) {
	orders, err := h.orders.FindNotCancelled(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.streamWorkbook(c, "orders", func(c *gin.Context) error {
		return h.exporter.WriteOrderWorkbook(c.Writer, orders)
	})
}

func (h *ExportHandler) streamWorkbook(c *gin.Context, name string, write func(*gin.Context) error) {
	c.Header("Content-Type", xlsxContentType)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q",
		fmt.Sprintf("%s_%s.xlsx", name, time.Now().Format("20060102"))))

	if err := write(c); err != nil {
		// Headers are already out; all we can do is drop the connection
		c.Abort()
	}
}

// fullHistoryFilter is an unpaged, unfiltered query
func fullHistoryFilter() shared.Filter {
	return shared.Filter{}
}

// RegisterRoutes registers export routes
func (h *ExportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	exports := rg.Group("/exports")
	{
		exports.GET("/ledger", h.Ledger)
		exports.GET("/orders", h.Orders)
	}
}
