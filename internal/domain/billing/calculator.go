package billing

import (
	"github.com/freshline/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Line is one entered order line before the order exists
type Line struct {
	ProductType string
	Quantity    int64
	UnitPrice   decimal.Decimal
}

// Totals is the derived weight and money for a set of lines
type Totals struct {
	WeightKg decimal.Decimal
	Amount   decimal.Decimal
}

// Calculator derives order totals from entered quantities and prices.
// It is a pure function over the catalog: no side effects, no store access.
type Calculator struct {
	catalog *Catalog
}

// NewCalculator creates a calculator over a catalog
func NewCalculator(catalog *Catalog) *Calculator {
	return &Calculator{catalog: catalog}
}

// LineWeight returns quantity x unit weight for one line
func (c *Calculator) LineWeight(line Line) (decimal.Decimal, error) {
	if line.Quantity < 0 {
		return decimal.Zero, shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be negative")
	}
	product, err := c.catalog.Lookup(line.ProductType)
	if err != nil {
		return decimal.Zero, err
	}
	return product.UnitWeightKg.Mul(decimal.NewFromInt(line.Quantity)), nil
}

// Compute derives the total weight and amount for the given lines.
// The result is the creation-time snapshot stored on the order; it is
// never recomputed after the order exists.
func (c *Calculator) Compute(lines []Line) (Totals, error) {
	weight := decimal.Zero
	amount := decimal.Zero
	for _, line := range lines {
		if line.Quantity < 0 {
			return Totals{}, shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be negative")
		}
		if line.UnitPrice.IsNegative() {
			return Totals{}, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
		}
		product, err := c.catalog.Lookup(line.ProductType)
		if err != nil {
			return Totals{}, err
		}
		qty := decimal.NewFromInt(line.Quantity)
		weight = weight.Add(product.UnitWeightKg.Mul(qty))
		amount = amount.Add(line.UnitPrice.Mul(qty))
	}
	return Totals{WeightKg: weight, Amount: amount}, nil
}

// DefaultPrice returns the configured default unit price for a product type
func (c *Calculator) DefaultPrice(productType string) (decimal.Decimal, error) {
	product, err := c.catalog.Lookup(productType)
	if err != nil {
		return decimal.Zero, err
	}
	return product.DefaultPrice, nil
}
