package order

import (
	"context"
	"testing"
	"time"

	"github.com/freshline/backend/internal/domain/billing"
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

func newTestService(t *testing.T, repo order.Repository) *Service {
	t.Helper()
	catalog, err := billing.NewCatalog([]billing.Product{
		{Type: "250g", UnitWeightKg: decimal.RequireFromString("0.25"), DefaultPrice: decimal.NewFromInt(100)},
		{Type: "1kg", UnitWeightKg: decimal.NewFromInt(1), DefaultPrice: decimal.NewFromInt(350)},
	})
	require.NoError(t, err)
	roster, err := billing.NewRoster([]string{"Suraj", "Amit"}, []string{"Ravi"}, []string{"Suraj"})
	require.NoError(t, err)
	return NewService(repo, billing.NewCalculator(catalog), roster)
}

func validPlaceRequest() PlaceOrderRequest {
	return PlaceOrderRequest{
		CustomerName:    "Ramesh Kumar",
		CustomerAddress: "14 MG Road, Indore",
		DistanceKm:      decimal.RequireFromString("4.2"),
		Salesperson:     "Suraj",
		DeliveryDate:    time.Now().Add(24 * time.Hour),
		Items: []PlaceOrderItemInput{
			{ProductType: "250g", Quantity: 4},
			{ProductType: "1kg", Quantity: 2},
		},
	}
}

func TestService_Place(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(t, repo)

	repo.On("Create", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil)

	resp, err := svc.Place(context.Background(), "admin", validPlaceRequest())
	require.NoError(t, err)

	// 4 x 250g @ 100 + 2 x 1kg @ 350 = 3.0 kg, 1100
	assert.True(t, resp.TotalWeightKg.Equal(decimal.NewFromInt(3)), "weight = %s", resp.TotalWeightKg)
	assert.True(t, resp.TotalAmount.Equal(decimal.NewFromInt(1100)), "amount = %s", resp.TotalAmount)
	assert.Equal(t, order.StatusPending.String(), resp.Status)
	assert.Equal(t, order.PaymentPending.String(), resp.PaymentStatus)
	assert.Len(t, resp.Items, 2)
	repo.AssertExpectations(t)
}

func TestService_Place_ExplicitPriceOverridesDefault(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(t, repo)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	price := decimal.NewFromInt(90)
	req := validPlaceRequest()
	req.Items = []PlaceOrderItemInput{{ProductType: "250g", Quantity: 2, UnitPrice: &price}}

	resp, err := svc.Place(context.Background(), "admin", req)
	require.NoError(t, err)
	assert.True(t, resp.TotalAmount.Equal(decimal.NewFromInt(180)))
}

func TestService_Place_Rejections(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(t, repo)

	t.Run("missing actor", func(t *testing.T) {
		_, err := svc.Place(context.Background(), "", validPlaceRequest())
		assert.Error(t, err)
	})

	t.Run("no items", func(t *testing.T) {
		req := validPlaceRequest()
		req.Items = nil
		_, err := svc.Place(context.Background(), "admin", req)
		assert.Error(t, err)
	})

	t.Run("salesperson not on roster", func(t *testing.T) {
		req := validPlaceRequest()
		req.Salesperson = "Ghost"
		_, err := svc.Place(context.Background(), "admin", req)
		assert.ErrorIs(t, err, shared.ErrUnknownStaff)
	})

	t.Run("unknown product", func(t *testing.T) {
		req := validPlaceRequest()
		req.Items = []PlaceOrderItemInput{{ProductType: "5kg", Quantity: 1}}
		_, err := svc.Place(context.Background(), "admin", req)
		assert.ErrorIs(t, err, shared.ErrUnknownProduct)
	})

	// Store failure surfaces to the caller, never silently retried
	t.Run("store failure", func(t *testing.T) {
		failing := new(MockRepository)
		failingSvc := newTestService(t, failing)
		failing.On("Create", mock.Anything, mock.Anything).Return(shared.ErrPartialWrite)

		_, err := failingSvc.Place(context.Background(), "admin", validPlaceRequest())
		assert.ErrorIs(t, err, shared.ErrPartialWrite)
	})
}

func placedOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder("Ramesh", "14 MG Road", "", decimal.NewFromInt(4), "Suraj", time.Now().Add(24*time.Hour), "", "admin")
	require.NoError(t, err)
	_, err = o.AddItem("1kg", 2, decimal.NewFromInt(2), decimal.NewFromInt(350))
	require.NoError(t, err)
	o.ClearDomainEvents()
	return o
}

func TestService_AssignDelivery(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(t, repo)
	o := placedOrder(t)

	repo.On("FindByID", mock.Anything, o.ID).Return(o, nil)
	repo.On("Save", mock.Anything, o).Return(nil)

	resp, err := svc.AssignDelivery(context.Background(), "admin", o.ID, "Ravi")
	require.NoError(t, err)

	assert.Equal(t, order.StatusOutForDelivery.String(), resp.Status)
	require.NotNil(t, resp.DeliveryBoy)
	assert.Equal(t, "Ravi", *resp.DeliveryBoy)
	repo.AssertExpectations(t)
}

func TestService_AssignDelivery_DriverNotOnRoster(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(t, repo)

	_, err := svc.AssignDelivery(context.Background(), "admin", uuid.New(), "Ghost")
	assert.ErrorIs(t, err, shared.ErrUnknownStaff)
	repo.AssertNotCalled(t, "FindByID")
}

func TestService_MarkDelivered_DispatchPath(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(t, repo)
	o := placedOrder(t)
	require.NoError(t, o.AssignDelivery("Ravi"))
	o.ClearDomainEvents()

	repo.On("FindByID", mock.Anything, o.ID).Return(o, nil)
	repo.On("Save", mock.Anything, o).Return(nil)

	resp, err := svc.MarkDelivered(context.Background(), "admin", o.ID, true)
	require.NoError(t, err)

	assert.Equal(t, order.StatusDelivered.String(), resp.Status)
	assert.Equal(t, order.PaymentPaid.String(), resp.PaymentStatus)
}

func TestService_MarkDelivered_NotFound(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(t, repo)
	id := uuid.New()

	repo.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

	_, err := svc.MarkDelivered(context.Background(), "admin", id, false)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestService_Cancel_TerminalRejected(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(t, repo)
	o := placedOrder(t)
	require.NoError(t, o.Cancel("first"))
	o.ClearDomainEvents()

	repo.On("FindByID", mock.Anything, o.ID).Return(o, nil)

	_, err := svc.Cancel(context.Background(), "admin", o.ID, "second")
	assert.Error(t, err)
	repo.AssertNotCalled(t, "Save")
}

func TestService_Cancel_NoReason(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(t, repo)
	o := placedOrder(t)

	repo.On("FindByID", mock.Anything, o.ID).Return(o, nil)
	repo.On("Save", mock.Anything, o).Return(nil)

	resp, err := svc.Cancel(context.Background(), "admin", o.ID, "")
	require.NoError(t, err)

	assert.Equal(t, order.StatusCancelled.String(), resp.Status)
	assert.Empty(t, resp.CancelReason)
}

func TestService_SetPaymentStatus(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(t, repo)
	o := placedOrder(t)

	repo.On("FindByID", mock.Anything, o.ID).Return(o, nil)
	repo.On("Save", mock.Anything, o).Return(nil)

	resp, err := svc.SetPaymentStatus(context.Background(), "admin", o.ID, order.PaymentPaid, "Suraj")
	require.NoError(t, err)

	assert.Equal(t, order.PaymentPaid.String(), resp.PaymentStatus)
	require.NotNil(t, resp.PaymentReceivedBy)
	assert.Equal(t, "Suraj", *resp.PaymentReceivedBy)
}

func TestService_List_Defaults(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(t, repo)

	var captured shared.Filter
	repo.On("FindAll", mock.Anything, mock.AnythingOfType("shared.Filter")).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).(shared.Filter)
		}).
		Return([]order.Order{}, nil)
	repo.On("Count", mock.Anything, mock.Anything).Return(int64(0), nil)

	_, _, err := svc.List(context.Background(), ListFilter{})
	require.NoError(t, err)

	assert.Equal(t, 1, captured.Page)
	assert.Equal(t, 20, captured.PageSize)
	assert.Equal(t, "created_at", captured.OrderBy)
	assert.Equal(t, "desc", captured.OrderDir)
}
