package order

import (
	"context"

	"github.com/freshline/backend/internal/domain/billing"
	"github.com/freshline/backend/internal/domain/order"
	"github.com/freshline/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Service handles order lifecycle commands. Every mutating command
// takes an explicit actor identity for attribution; there is no
// ambient "current user".
type Service struct {
	repo      order.Repository
	calc      *billing.Calculator
	roster    *billing.Roster
	publisher shared.EventPublisher
}

// NewService creates a new order Service
func NewService(repo order.Repository, calc *billing.Calculator, roster *billing.Roster) *Service {
	return &Service{
		repo:   repo,
		calc:   calc,
		roster: roster,
	}
}

// SetEventPublisher sets the publisher for domain events
func (s *Service) SetEventPublisher(publisher shared.EventPublisher) {
	s.publisher = publisher
}

// Place validates and persists a new order with its items as a single
// logical unit. The total amount is computed by the billing calculator
// at creation time and never recomputed afterwards.
func (s *Service) Place(ctx context.Context, actor string, req PlaceOrderRequest) (*Response, error) {
	if actor == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Acting user is required")
	}
	if len(req.Items) == 0 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Order must have at least one item")
	}
	if err := s.roster.Validate(billing.RoleSalesperson, req.Salesperson); err != nil {
		return nil, err
	}

	o, err := order.NewOrder(
		req.CustomerName,
		req.CustomerAddress,
		req.CustomerPhone,
		req.DistanceKm,
		req.Salesperson,
		req.DeliveryDate,
		req.Notes,
		actor,
	)
	if err != nil {
		return nil, err
	}

	for _, input := range req.Items {
		unitPrice := input.UnitPrice
		if unitPrice == nil {
			p, err := s.calc.DefaultPrice(input.ProductType)
			if err != nil {
				return nil, err
			}
			unitPrice = &p
		}
		weight, err := s.calc.LineWeight(billing.Line{
			ProductType: input.ProductType,
			Quantity:    input.Quantity,
			UnitPrice:   *unitPrice,
		})
		if err != nil {
			return nil, err
		}
		if _, err := o.AddItem(input.ProductType, input.Quantity, weight, *unitPrice); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Create(ctx, o); err != nil {
		return nil, err
	}

	s.publish(o)

	resp := ToResponse(o)
	return &resp, nil
}

// AssignDelivery dispatches an order to a driver. Reassigning a
// different driver mid-flight overwrites the previous one.
func (s *Service) AssignDelivery(ctx context.Context, actor string, orderID uuid.UUID, driver string) (*Response, error) {
	if actor == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Acting user is required")
	}
	if err := s.roster.Validate(billing.RoleDriver, driver); err != nil {
		return nil, err
	}

	o, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := o.AssignDelivery(driver); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, o); err != nil {
		return nil, err
	}

	s.publish(o)

	resp := ToResponse(o)
	return &resp, nil
}

// MarkDelivered completes delivery. The cash-on-delivery payment side
// effect is an explicit caller decision, never implied.
func (s *Service) MarkDelivered(ctx context.Context, actor string, orderID uuid.UUID, alsoMarkPaid bool) (*Response, error) {
	if actor == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Acting user is required")
	}

	o, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := o.MarkDelivered(alsoMarkPaid); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, o); err != nil {
		return nil, err
	}

	s.publish(o)

	resp := ToResponse(o)
	return &resp, nil
}

// Cancel cancels an order from any non-terminal status
func (s *Service) Cancel(ctx context.Context, actor string, orderID uuid.UUID, reason string) (*Response, error) {
	if actor == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Acting user is required")
	}

	o, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := o.Cancel(reason); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, o); err != nil {
		return nil, err
	}

	s.publish(o)

	resp := ToResponse(o)
	return &resp, nil
}

// SetPaymentStatus changes the payment flag independently of delivery
// status
func (s *Service) SetPaymentStatus(ctx context.Context, actor string, orderID uuid.UUID, status order.PaymentStatus, receivedBy string) (*Response, error) {
	if actor == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Acting user is required")
	}

	o, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := o.SetPaymentStatus(status, receivedBy); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, o); err != nil {
		return nil, err
	}

	s.publish(o)

	resp := ToResponse(o)
	return &resp, nil
}

// GetByID retrieves one order
func (s *Service) GetByID(ctx context.Context, orderID uuid.UUID) (*Response, error) {
	o, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	resp := ToResponse(o)
	return &resp, nil
}

// List retrieves orders matching the filter with pagination
func (s *Service) List(ctx context.Context, filter ListFilter) ([]Response, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "created_at"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}
	if filter.Status != nil {
		domainFilter.Filters["status"] = string(*filter.Status)
	}
	if filter.PaymentStatus != nil {
		domainFilter.Filters["payment_status"] = string(*filter.PaymentStatus)
	}
	if filter.Salesperson != nil {
		domainFilter.Filters["salesperson"] = *filter.Salesperson
	}
	if filter.StartDate != nil {
		domainFilter.Filters["start_date"] = *filter.StartDate
	}
	if filter.EndDate != nil {
		domainFilter.Filters["end_date"] = *filter.EndDate
	}

	orders, err := s.repo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]Response, len(orders))
	for i := range orders {
		responses[i] = ToResponse(&orders[i])
	}
	return responses, total, nil
}

// publish flushes pending domain events to the publisher, if any
func (s *Service) publish(o *order.Order) {
	if s.publisher == nil {
		return
	}
	s.publisher.Publish(o.GetDomainEvents()...)
	o.ClearDomainEvents()
}
