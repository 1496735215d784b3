package order

import (
	"context"
	"time"

	"github.com/freshline/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Repository defines the interface for order persistence.
// Create persists the order and its items as a single logical unit; a
// failure between the two writes must surface as a partial-write error
// rather than pretending atomicity where the store has none.
type Repository interface {
	// Create persists a new order together with its items
	Create(ctx context.Context, o *Order) error

	// FindByID finds an order by ID, items included
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindAll finds orders matching the filter, items included
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, error)

	// Count counts orders matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// FindOpen finds orders that still need supplying
	// (status PENDING or OUT_FOR_DELIVERY), items included
	FindOpen(ctx context.Context) ([]Order, error)

	// FindAwaitingRecovery finds delivered-but-unpaid orders
	FindAwaitingRecovery(ctx context.Context) ([]Order, error)

	// FindCreatedBetween finds orders with created_at in [start, end),
	// items included
	FindCreatedBetween(ctx context.Context, start, end time.Time) ([]Order, error)

	// FindNotCancelled finds all orders except cancelled ones
	FindNotCancelled(ctx context.Context) ([]Order, error)

	// Save updates an existing order (point update, last write wins)
	Save(ctx context.Context, o *Order) error
}
