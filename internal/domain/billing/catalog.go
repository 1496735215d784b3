package billing

import (
	"github.com/freshline/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Product describes one packaging unit sold by the shop.
// Unit weights and default prices are reference data supplied through
// configuration, not compiled-in constants.
type Product struct {
	Type         string          `json:"type"`
	UnitWeightKg decimal.Decimal `json:"unit_weight_kg"`
	DefaultPrice decimal.Decimal `json:"default_price"`
}

// Catalog is the set of products that may appear on an order line
type Catalog struct {
	products map[string]Product
}

// NewCatalog creates a catalog from a product list
func NewCatalog(products []Product) (*Catalog, error) {
	if len(products) == 0 {
		return nil, shared.NewDomainError("EMPTY_CATALOG", "Catalog must contain at least one product")
	}
	m := make(map[string]Product, len(products))
	for _, p := range products {
		if p.Type == "" {
			return nil, shared.NewDomainError("INVALID_PRODUCT_TYPE", "Product type cannot be empty")
		}
		if p.UnitWeightKg.IsNegative() {
			return nil, shared.NewDomainError("INVALID_UNIT_WEIGHT", "Unit weight cannot be negative")
		}
		if p.DefaultPrice.IsNegative() {
			return nil, shared.NewDomainError("INVALID_PRICE", "Default price cannot be negative")
		}
		if _, ok := m[p.Type]; ok {
			return nil, shared.NewDomainError("DUPLICATE_PRODUCT_TYPE", "Product type already in catalog: "+p.Type)
		}
		m[p.Type] = p
	}
	return &Catalog{products: m}, nil
}

// Lookup returns the product for a type, or ErrUnknownProduct
func (c *Catalog) Lookup(productType string) (Product, error) {
	p, ok := c.products[productType]
	if !ok {
		return Product{}, shared.ErrUnknownProduct
	}
	return p, nil
}

// Contains reports whether the catalog has the given product type
func (c *Catalog) Contains(productType string) bool {
	_, ok := c.products[productType]
	return ok
}

// Types returns all product types in the catalog
func (c *Catalog) Types() []string {
	types := make([]string, 0, len(c.products))
	for t := range c.products {
		types = append(types, t)
	}
	return types
}
