package sales

import (
	"context"
	"sort"
	"time"

	"github.com/freshline/backend/internal/domain/order"
	"github.com/shopspring/decimal"
)

// Entry is one salesperson's rolling weekly performance
type Entry struct {
	Salesperson   string          `json:"salesperson"`
	OrderCount    int             `json:"order_count"`
	TotalWeightKg decimal.Decimal `json:"total_weight_kg"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
}

// Leaderboard is the weekly per-salesperson summary
type Leaderboard struct {
	WeekStart time.Time `json:"week_start"`
	WeekEnd   time.Time `json:"week_end"`
	Entries   []Entry   `json:"entries"`
}

// Service computes the weekly sales leaderboard
type Service struct {
	orders order.Repository
}

// NewService creates a new sales Service
func NewService(orders order.Repository) *Service {
	return &Service{orders: orders}
}

// WeekStart returns the Monday 00:00 local time on or before t
func WeekStart(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	// time.Weekday has Sunday = 0; shift so Monday = 0
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// WeeklyLeaderboard summarizes orders created in [weekStart,
// weekStart+7d): per salesperson, order count, summed item weight and
// summed order amount. Salespersons not on the roster are admitted as
// their own groups. Entries are sorted descending by weight; ties keep
// encounter order (the sort is stable, no secondary key).
func (s *Service) WeeklyLeaderboard(ctx context.Context, weekStart time.Time) (*Leaderboard, error) {
	weekEnd := weekStart.AddDate(0, 0, 7)

	orders, err := s.orders.FindCreatedBetween(ctx, weekStart, weekEnd)
	if err != nil {
		return nil, err
	}

	byPerson := make(map[string]*Entry)
	encounter := make([]string, 0)
	for _, o := range orders {
		e, ok := byPerson[o.Salesperson]
		if !ok {
			e = &Entry{
				Salesperson:   o.Salesperson,
				TotalWeightKg: decimal.Zero,
				TotalAmount:   decimal.Zero,
			}
			byPerson[o.Salesperson] = e
			encounter = append(encounter, o.Salesperson)
		}
		e.OrderCount++
		e.TotalAmount = e.TotalAmount.Add(o.TotalAmount)
		for _, item := range o.Items {
			e.TotalWeightKg = e.TotalWeightKg.Add(item.WeightKg)
		}
	}

	entries := make([]Entry, 0, len(encounter))
	for _, name := range encounter {
		entries = append(entries, *byPerson[name])
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].TotalWeightKg.GreaterThan(entries[j].TotalWeightKg)
	})

	return &Leaderboard{
		WeekStart: weekStart,
		WeekEnd:   weekEnd,
		Entries:   entries,
	}, nil
}
