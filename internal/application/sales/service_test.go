package sales

import (
	"context"
	"testing"
	"time"

	"github.com/freshline/backend/internal/domain/order"
	"github.com/freshline/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRepository is a mock implementation of order.Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockRepository) FindAll(ctx context.Context, filter shared.Filter) ([]order.Order, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) FindOpen(ctx context.Context) ([]order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockRepository) FindAwaitingRecovery(ctx context.Context) ([]order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockRepository) FindCreatedBetween(ctx context.Context, start, end time.Time) ([]order.Order, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockRepository) FindNotCancelled(ctx context.Context) ([]order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockRepository) Save(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func salesOrder(t *testing.T, salesperson string, weightKg, amount string) order.Order {
	t.Helper()
	o, err := order.NewOrder("Ramesh Kumar", "14 MG Road, Indore", "",
		decimal.Zero, salesperson, time.Now().Add(24*time.Hour), "", "admin")
	require.NoError(t, err)
	_, err = o.AddItem("1kg", 1, decimal.RequireFromString(weightKg), decimal.RequireFromString(amount))
	require.NoError(t, err)
	return *o
}

func TestWeekStart(t *testing.T) {
	loc := time.UTC
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			name: "mid-week wednesday",
			in:   time.Date(2025, 6, 11, 15, 30, 0, 0, loc),
			want: time.Date(2025, 6, 9, 0, 0, 0, 0, loc),
		},
		{
			name: "monday maps to itself at midnight",
			in:   time.Date(2025, 6, 9, 23, 59, 59, 0, loc),
			want: time.Date(2025, 6, 9, 0, 0, 0, 0, loc),
		},
		{
			name: "sunday belongs to the week started six days earlier",
			in:   time.Date(2025, 6, 15, 1, 0, 0, 0, loc),
			want: time.Date(2025, 6, 9, 0, 0, 0, 0, loc),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WeekStart(tt.in))
		})
	}
}

func TestService_WeeklyLeaderboard(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	weekStart := time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)
	orders := []order.Order{
		salesOrder(t, "Suraj", "3.0", "1100"),
		salesOrder(t, "Amit", "5.5", "900"),
		salesOrder(t, "Suraj", "1.0", "350"),
	}
	repo.On("FindCreatedBetween", mock.Anything, weekStart, weekStart.AddDate(0, 0, 7)).
		Return(orders, nil)

	board, err := svc.WeeklyLeaderboard(context.Background(), weekStart)
	require.NoError(t, err)

	assert.Equal(t, weekStart, board.WeekStart)
	assert.Equal(t, weekStart.AddDate(0, 0, 7), board.WeekEnd)

	require.Len(t, board.Entries, 2)
	// Amit leads on weight despite lower revenue
	assert.Equal(t, "Amit", board.Entries[0].Salesperson)
	assert.Equal(t, 1, board.Entries[0].OrderCount)
	assert.True(t, board.Entries[0].TotalWeightKg.Equal(decimal.RequireFromString("5.5")))
	assert.True(t, board.Entries[0].TotalAmount.Equal(decimal.NewFromInt(900)))

	assert.Equal(t, "Suraj", board.Entries[1].Salesperson)
	assert.Equal(t, 2, board.Entries[1].OrderCount)
	assert.True(t, board.Entries[1].TotalWeightKg.Equal(decimal.NewFromInt(4)))
	assert.True(t, board.Entries[1].TotalAmount.Equal(decimal.NewFromInt(1450)))
	repo.AssertExpectations(t)
}

func TestService_WeeklyLeaderboard_TiesKeepEncounterOrder(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	weekStart := time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)
	orders := []order.Order{
		salesOrder(t, "Mohan", "2.0", "700"),
		salesOrder(t, "Amit", "2.0", "700"),
	}
	repo.On("FindCreatedBetween", mock.Anything, weekStart, weekStart.AddDate(0, 0, 7)).
		Return(orders, nil)

	board, err := svc.WeeklyLeaderboard(context.Background(), weekStart)
	require.NoError(t, err)

	require.Len(t, board.Entries, 2)
	assert.Equal(t, "Mohan", board.Entries[0].Salesperson)
	assert.Equal(t, "Amit", board.Entries[1].Salesperson)
}

func TestService_WeeklyLeaderboard_EmptyWeek(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	weekStart := time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)
	repo.On("FindCreatedBetween", mock.Anything, weekStart, weekStart.AddDate(0, 0, 7)).
		Return([]order.Order{}, nil)

	board, err := svc.WeeklyLeaderboard(context.Background(), weekStart)
	require.NoError(t, err)
	assert.Empty(t, board.Entries)
}
