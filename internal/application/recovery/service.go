package recovery

import (
	"context"
	"fmt"
	"sort"
	"strings"

	orderapp "github.com/freshline/backend/internal/application/order"
	"github.com/freshline/backend/internal/domain/billing"
	"github.com/freshline/backend/internal/domain/order"
	"github.com/freshline/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UnassignedBucket groups orders nobody is chasing yet
const UnassignedBucket = "unassigned"

// CollectorGroup is one collector's worklist with the total owed
type CollectorGroup struct {
	Collector  string              `json:"collector"`
	Orders     []orderapp.Response `json:"orders"`
	TotalOwed  decimal.Decimal     `json:"total_owed"`
	OrderCount int                 `json:"order_count"`
}

// Worklist is the full recovery view grouped by collector
type Worklist struct {
	Groups    []CollectorGroup `json:"groups"`
	TotalOwed decimal.Decimal  `json:"total_owed"`
}

// Service tracks orders that were delivered without payment being
// settled and their assignment to a collector
type Service struct {
	orders order.Repository
	roster *billing.Roster
}

// NewService creates a new recovery Service
func NewService(orders order.Repository, roster *billing.Roster) *Service {
	return &Service{orders: orders, roster: roster}
}

// Assign puts a collector on a delivered-but-unpaid order
func (s *Service) Assign(ctx context.Context, actor string, orderID uuid.UUID, person string) (*orderapp.Response, error) {
	if actor == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Acting user is required")
	}
	if err := s.roster.Validate(billing.RoleCollector, person); err != nil {
		return nil, err
	}

	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := o.AssignRecovery(person); err != nil {
		return nil, err
	}
	if err := s.orders.Save(ctx, o); err != nil {
		return nil, err
	}

	resp := orderapp.ToResponse(o)
	return &resp, nil
}

// MarkCollected settles payment for an order in recovery and drops it
// from the tracked set. The assignment survives so the books show who
// collected.
func (s *Service) MarkCollected(ctx context.Context, actor string, orderID uuid.UUID) (*orderapp.Response, error) {
	if actor == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Acting user is required")
	}

	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := o.MarkCollected(); err != nil {
		return nil, err
	}
	if err := s.orders.Save(ctx, o); err != nil {
		return nil, err
	}

	resp := orderapp.ToResponse(o)
	return &resp, nil
}

// Worklist groups outstanding orders by collector, including an
// "unassigned" bucket, with a per-collector total owed
func (s *Service) Worklist(ctx context.Context) (*Worklist, error) {
	outstanding, err := s.orders.FindAwaitingRecovery(ctx)
	if err != nil {
		return nil, err
	}

	byCollector := make(map[string]*CollectorGroup)
	for i := range outstanding {
		o := &outstanding[i]
		key := UnassignedBucket
		if o.RecoveryAssignedTo != nil && *o.RecoveryAssignedTo != "" {
			key = *o.RecoveryAssignedTo
		}
		g, ok := byCollector[key]
		if !ok {
			g = &CollectorGroup{Collector: key, TotalOwed: decimal.Zero}
			byCollector[key] = g
		}
		g.Orders = append(g.Orders, orderapp.ToResponse(o))
		g.TotalOwed = g.TotalOwed.Add(o.TotalAmount)
		g.OrderCount++
	}

	groups := make([]CollectorGroup, 0, len(byCollector))
	total := decimal.Zero
	for _, g := range byCollector {
		groups = append(groups, *g)
		total = total.Add(g.TotalOwed)
	}
	// Unassigned bucket first, then collectors alphabetically
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Collector == UnassignedBucket {
			return true
		}
		if groups[j].Collector == UnassignedBucket {
			return false
		}
		return groups[i].Collector < groups[j].Collector
	})

	return &Worklist{Groups: groups, TotalOwed: total}, nil
}

// FormatShareText renders a collector's worklist as the text block
// handed to the sharing channel
func (s *Service) FormatShareText(g *CollectorGroup) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Pending collections: %s\n", g.Collector)
	for _, o := range g.Orders {
		fmt.Fprintf(&b, "• %s, %s: ₹%s\n", o.CustomerName, o.CustomerAddress, o.TotalAmount.StringFixed(2))
	}
	fmt.Fprintf(&b, "Total: ₹%s (%d orders)", g.TotalOwed.StringFixed(2), g.OrderCount)
	return b.String()
}
