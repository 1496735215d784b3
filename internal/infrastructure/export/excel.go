package export

import (
	"fmt"
	"io"

	"github.com/freshline/backend/internal/domain/ledger"
	"github.com/freshline/backend/internal/domain/order"
	"github.com/xuri/excelize/v2"
)

const dateFormat = "2006-01-02"

// ExcelExporter renders back-office workbooks from domain records
type ExcelExporter struct{}

// NewExcelExporter creates an Excel exporter
func NewExcelExporter() *ExcelExporter {
	return &ExcelExporter{}
}

// WriteLedgerWorkbook writes a workbook with one sheet of supplier
// transactions and one of expenses. Waived rows keep their values but
// are struck through, matching the on-screen history.
func (e *ExcelExporter) WriteLedgerWorkbook(w io.Writer, txns []ledger.SupplierTransaction, expenses []ledger.Expense) error {
	f := excelize.NewFile()
	defer f.Close()

	waivedStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Strikethrough: true}})
	if err != nil {
		return fmt.Errorf("create style: %w", err)
	}

	const txnSheet = "Supplier Ledger"
	index, err := f.NewSheet(txnSheet)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	writeHeader(f, txnSheet, []string{"Date", "Type", "Ordered (kg)", "Delivered (kg)", "Amount", "Sample", "Waived", "Spender", "Notes"})
	for i, t := range txns {
		row := i + 2
		setRow(f, txnSheet, row,
			t.Date.Format(dateFormat),
			string(t.Type),
			t.QuantityKg.String(),
			t.DeliveredQty.String(),
			t.Amount.String(),
			yesNo(t.IsSample),
			yesNo(t.IsWaived),
			t.Spender,
			t.Notes,
		)
		if t.IsWaived {
			strikeRow(f, txnSheet, row, 9, waivedStyle)
		}
	}
	f.SetColWidth(txnSheet, "A", "A", 12)
	f.SetColWidth(txnSheet, "I", "I", 30)

	const expSheet = "Expenses"
	if _, err := f.NewSheet(expSheet); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	writeHeader(f, expSheet, []string{"Date", "Category", "Description", "Amount", "Waived", "Spender"})
	for i, x := range expenses {
		row := i + 2
		setRow(f, expSheet, row,
			x.Date.Format(dateFormat),
			string(x.Category),
			x.Description,
			x.Amount.String(),
			yesNo(x.IsWaived),
			x.Spender,
		)
		if x.IsWaived {
			strikeRow(f, expSheet, row, 6, waivedStyle)
		}
	}
	f.SetColWidth(expSheet, "C", "C", 30)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// WriteOrderWorkbook writes the order book with one row per order
func (e *ExcelExporter) WriteOrderWorkbook(w io.Writer, orders []order.Order) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Orders"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	writeHeader(f, sheet, []string{"Date", "Customer", "Phone", "Salesperson", "Status", "Payment", "Weight (kg)", "Amount", "Driver"})
	for i, o := range orders {
		row := i + 2
		driver := ""
		if o.DeliveryBoy != nil {
			driver = *o.DeliveryBoy
		}
		setRow(f, sheet, row,
			o.DeliveryDate.Format(dateFormat),
			o.CustomerName,
			o.CustomerPhone,
			o.Salesperson,
			string(o.Status),
			string(o.PaymentStatus),
			o.TotalWeightKg.String(),
			o.TotalAmount.String(),
			driver,
		)
	}
	f.SetColWidth(sheet, "B", "B", 20)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeHeader(f *excelize.File, sheet string, headers []string) {
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
}

func setRow(f *excelize.File, sheet string, row int, values ...string) {
	for i, v := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		f.SetCellValue(sheet, cell, v)
	}
}

func strikeRow(f *excelize.File, sheet string, row, cols, style int) {
	start, _ := excelize.CoordinatesToCellName(1, row)
	end, _ := excelize.CoordinatesToCellName(cols, row)
	f.SetCellStyle(sheet, start, end, style)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return ""
}
