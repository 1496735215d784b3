package procurement

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/freshline/backend/internal/domain/order"
	"github.com/shopspring/decimal"
)

// ProductDemand is the outstanding requirement for one product type
type ProductDemand struct {
	ProductType string          `json:"product_type"`
	Quantity    int64           `json:"quantity"`
	WeightKg    decimal.Decimal `json:"weight_kg"`
}

// Demand is the full "what must still be supplied" view
type Demand struct {
	Products      []ProductDemand `json:"products"`
	TotalWeightKg decimal.Decimal `json:"total_weight_kg"`
	OrderCount    int             `json:"order_count"`
}

// Service aggregates outstanding order demand for the supplier.
// The view is recomputed from scratch on every call; the order
// population is small and there is no incremental maintenance.
type Service struct {
	orders order.Repository
}

// NewService creates a new procurement Service
func NewService(orders order.Repository) *Service {
	return &Service{orders: orders}
}

// ComputeDemand groups items of open orders (PENDING or
// OUT_FOR_DELIVERY) by product type. Cancelled orders are excluded:
// they no longer need supplying.
func (s *Service) ComputeDemand(ctx context.Context) (*Demand, error) {
	open, err := s.orders.FindOpen(ctx)
	if err != nil {
		return nil, err
	}

	byType := make(map[string]*ProductDemand)
	for _, o := range open {
		for _, item := range o.Items {
			d, ok := byType[item.ProductType]
			if !ok {
				d = &ProductDemand{ProductType: item.ProductType, WeightKg: decimal.Zero}
				byType[item.ProductType] = d
			}
			d.Quantity += item.Quantity
			d.WeightKg = d.WeightKg.Add(item.WeightKg)
		}
	}

	products := make([]ProductDemand, 0, len(byType))
	total := decimal.Zero
	for _, d := range byType {
		products = append(products, *d)
		total = total.Add(d.WeightKg)
	}
	sort.Slice(products, func(i, j int) bool {
		return products[i].ProductType < products[j].ProductType
	})

	return &Demand{
		Products:      products,
		TotalWeightKg: total,
		OrderCount:    len(open),
	}, nil
}

// FormatShareText renders the demand as the text block handed to the
// sharing channel: one bullet per product and a computed total line.
func (s *Service) FormatShareText(d *Demand) string {
	var b strings.Builder
	b.WriteString("Supply requirement\n")
	for _, p := range d.Products {
		fmt.Fprintf(&b, "• %s × %d (%s kg)\n", p.ProductType, p.Quantity, p.WeightKg.String())
	}
	fmt.Fprintf(&b, "Total: %s kg across %d orders", d.TotalWeightKg.String(), d.OrderCount)
	return b.String()
}
