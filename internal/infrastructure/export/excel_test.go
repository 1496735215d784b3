package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/freshline/backend/internal/domain/ledger"
	"github.com/freshline/backend/internal/domain/order"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExcelExporter_WriteLedgerWorkbook(t *testing.T) {
	txn, err := ledger.NewStockOrder(time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		decimal.NewFromInt(50), decimal.NewFromInt(48), decimal.NewFromInt(9000), false, "weekly stock", "admin")
	require.NoError(t, err)

	exp, err := ledger.NewExpense(time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC),
		"diesel top-up", decimal.NewFromInt(500), ledger.ExpenseCategoryFuel, "Ravi", "admin")
	require.NoError(t, err)
	require.NoError(t, exp.Waive())

	var buf bytes.Buffer
	require.NoError(t, NewExcelExporter().WriteLedgerWorkbook(&buf,
		[]ledger.SupplierTransaction{*txn}, []ledger.Expense{*exp}))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	date, err := f.GetCellValue("Supplier Ledger", "A2")
	require.NoError(t, err)
	assert.Equal(t, "2025-06-02", date)

	amount, err := f.GetCellValue("Supplier Ledger", "E2")
	require.NoError(t, err)
	assert.Equal(t, "9000", amount)

	waived, err := f.GetCellValue("Expenses", "E2")
	require.NoError(t, err)
	assert.Equal(t, "yes", waived)

	// The waived expense row is struck through; the live transaction row is not.
	expStyleID, err := f.GetCellStyle("Expenses", "A2")
	require.NoError(t, err)
	expStyle, err := f.GetStyle(expStyleID)
	require.NoError(t, err)
	require.NotNil(t, expStyle.Font)
	assert.True(t, expStyle.Font.Strikethrough)

	txnStyleID, err := f.GetCellStyle("Supplier Ledger", "A2")
	require.NoError(t, err)
	txnStyle, err := f.GetStyle(txnStyleID)
	require.NoError(t, err)
	if txnStyle.Font != nil {
		assert.False(t, txnStyle.Font.Strikethrough)
	}
}

func TestExcelExporter_WriteOrderWorkbook(t *testing.T) {
	o, err := order.NewOrder("Ramesh Kumar", "14 MG Road", "9876500001",
		decimal.NewFromInt(3), "Suraj", time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC), "", "admin")
	require.NoError(t, err)
	_, err = o.AddItem("1kg", 2, decimal.NewFromInt(2), decimal.NewFromInt(350))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, NewExcelExporter().WriteOrderWorkbook(&buf, []order.Order{*o}))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	customer, err := f.GetCellValue("Orders", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Ramesh Kumar", customer)

	amount, err := f.GetCellValue("Orders", "H2")
	require.NoError(t, err)
	assert.Equal(t, "700", amount)
}
