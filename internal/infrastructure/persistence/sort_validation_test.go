package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSortOrder(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty string returns DESC", "", "DESC"},
		{"ASC uppercase", "ASC", "ASC"},
		{"asc lowercase", "asc", "ASC"},
		{"DESC uppercase", "DESC", "DESC"},
		{"invalid value returns DESC", "INVALID", "DESC"},
		{"injection attempt returns DESC", "ASC; DROP TABLE orders;--", "DESC"},
		{"whitespace only returns DESC", "   ", "DESC"},
		{"whitespace around ASC", "  asc  ", "ASC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidateSortOrder(tt.input))
		})
	}
}

func TestValidateSortField(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		defaultField string
		expected     string
	}{
		{"empty string returns default", "", "created_at", "created_at"},
		{"valid field passes", "delivery_date", "created_at", "delivery_date"},
		{"invalid field returns default", "shoe_size", "created_at", "created_at"},
		{"injection attempt returns default", "id; DROP TABLE orders;--", "created_at", "created_at"},
		{"case sensitive", "DELIVERY_DATE", "created_at", "created_at"},
		{"whitespace around valid field", "  status  ", "created_at", "status"},
		{"field with trailing quote", "status'--", "created_at", "created_at"},
		{"empty default with invalid field", "invalid", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidateSortField(tt.input, OrderSortFields, tt.defaultField))
		})
	}
}

func TestSortFieldWhitelists(t *testing.T) {
	whitelists := map[string]map[string]bool{
		"OrderSortFields":               OrderSortFields,
		"SupplierTransactionSortFields": SupplierTransactionSortFields,
		"ExpenseSortFields":             ExpenseSortFields,
	}

	for name, whitelist := range whitelists {
		t.Run(name, func(t *testing.T) {
			for _, field := range []string{"id", "created_at", "updated_at"} {
				assert.True(t, whitelist[field], "%s should allow %q", name, field)
			}
			assert.Greater(t, len(whitelist), 3)
		})
	}

	t.Run("domain fields", func(t *testing.T) {
		assert.True(t, OrderSortFields["delivery_date"])
		assert.True(t, OrderSortFields["payment_status"])
		assert.True(t, SupplierTransactionSortFields["spender"])
		assert.True(t, ExpenseSortFields["category"])
	})
}

func TestSortValidation_InjectionPayloads(t *testing.T) {
	payloads := []string{
		"id; DROP TABLE orders;--",
		"id' OR '1'='1",
		"id UNION SELECT * FROM orders",
		"id, (SELECT spender FROM expenses)",
		"id/**/;DROP TABLE orders",
		"id\n; DROP TABLE orders",
		"' OR ''='",
	}

	for _, payload := range payloads {
		t.Run(payload, func(t *testing.T) {
			assert.Equal(t, "created_at", ValidateSortField(payload, OrderSortFields, "created_at"))
			assert.Equal(t, "DESC", ValidateSortOrder(payload))
		})
	}
}
