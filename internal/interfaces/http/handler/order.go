package handler

import (
	"time"

	orderapp "github.com/freshline/backend/internal/application/order"
	"github.com/freshline/backend/internal/domain/order"
	"github.com/freshline/backend/internal/infrastructure/geo"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// OrderHandler handles customer order endpoints
type OrderHandler struct {
	BaseHandler
	orderService *orderapp.Service
	estimator    *geo.Estimator
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *orderapp.Service, estimator *geo.Estimator) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		estimator:    estimator,
	}
}

// PlaceOrderItemInput is one entered order line
type PlaceOrderItemInput struct {
	ProductType string   `json:"product_type" binding:"required"`
	Quantity    int64    `json:"quantity" binding:"required,gt=0"`
	UnitPrice   *float64 `json:"unit_price" binding:"omitempty,gte=0"`
}

// PlaceOrderRequest is the order creation payload
type PlaceOrderRequest struct {
	CustomerName    string                `json:"customer_name" binding:"required,min=1,max=200"`
	CustomerAddress string                `json:"customer_address" binding:"required,min=1,max=500"`
	CustomerPhone   string                `json:"customer_phone" binding:"omitempty,max=20"`
	DistanceKm      *float64              `json:"distance_km" binding:"omitempty,gte=0"`
	Salesperson     string                `json:"salesperson" binding:"required"`
	DeliveryDate    string                `json:"delivery_date" binding:"required"`
	Notes           string                `json:"notes" binding:"omitempty,max=1000"`
	Items           []PlaceOrderItemInput `json:"items" binding:"required,min=1,dive"`
}

// AssignDeliveryRequest names the driver taking the order out
type AssignDeliveryRequest struct {
	Driver string `json:"driver" binding:"required"`
}

// MarkDeliveredRequest completes a delivery
type MarkDeliveredRequest struct {
	AlsoMarkPaid bool `json:"also_mark_paid"`
}

// CancelOrderRequest cancels an order
type CancelOrderRequest struct {
	Reason string `json:"reason" binding:"omitempty,max=500"`
}

// SetPaymentRequest changes the payment flag
type SetPaymentRequest struct {
	Status     string `json:"status" binding:"required,oneof=PENDING PAID"`
	ReceivedBy string `json:"received_by"`
}

// EstimateDistanceRequest asks for a delivery distance
type EstimateDistanceRequest struct {
	Address string `json:"address" binding:"required"`
}

// EstimateDistanceResponse carries the estimate
type EstimateDistanceResponse struct {
	Address    string          `json:"address"`
	DistanceKm decimal.Decimal `json:"distance_km"`
}

// ListOrdersRequest holds the order list query parameters
type ListOrdersRequest struct {
	Page          int    `form:"page" binding:"omitempty,min=1"`
	PageSize      int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy       string `form:"order_by"`
	OrderDir      string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
	Status        string `form:"status" binding:"omitempty,oneof=PENDING OUT_FOR_DELIVERY DELIVERED CANCELLED"`
	PaymentStatus string `form:"payment_status" binding:"omitempty,oneof=PENDING PAID"`
	Salesperson   string `form:"salesperson"`
	StartDate     string `form:"start_date"`
	EndDate       string `form:"end_date"`
	Search        string `form:"search"`
}

// Place creates a new order
func (h *OrderHandler) Place(c *gin.Context) {
	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	deliveryDate, err := time.Parse(dateLayout, req.DeliveryDate)
	if err != nil {
		h.BadRequest(c, "delivery_date must be YYYY-MM-DD")
		return
	}

	appReq := orderapp.PlaceOrderRequest{
		CustomerName:    req.CustomerName,
		CustomerAddress: req.CustomerAddress,
		CustomerPhone:   req.CustomerPhone,
		Salesperson:     req.Salesperson,
		DeliveryDate:    deliveryDate,
		Notes:           req.Notes,
	}
	if req.DistanceKm != nil {
		appReq.DistanceKm = decimal.NewFromFloat(*req.DistanceKm)
	}
	for _, item := range req.Items {
		input := orderapp.PlaceOrderItemInput{
			ProductType: item.ProductType,
			Quantity:    item.Quantity,
		}
		if item.UnitPrice != nil {
			p := decimal.NewFromFloat(*item.UnitPrice)
			input.UnitPrice = &p
		}
		appReq.Items = append(appReq.Items, input)
	}

	resp, err := h.orderService.Place(c.Request.Context(), getActor(c), appReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// GetByID retrieves one order
func (h *OrderHandler) GetByID(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	resp, err := h.orderService.GetByID(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List retrieves orders matching the filters
func (h *OrderHandler) List(c *gin.Context) {
	var req ListOrdersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := orderapp.ListFilter{
		Page:     req.Page,
		PageSize: req.PageSize,
		OrderBy:  req.OrderBy,
		OrderDir: req.OrderDir,
		Search:   req.Search,
	}
	if req.Status != "" {
		s := order.Status(req.Status)
		filter.Status = &s
	}
	if req.PaymentStatus != "" {
		p := order.PaymentStatus(req.PaymentStatus)
		filter.PaymentStatus = &p
	}
	if req.Salesperson != "" {
		filter.Salesperson = &req.Salesperson
	}
	if req.StartDate != "" {
		start, err := time.Parse(dateLayout, req.StartDate)
		if err != nil {
			h.BadRequest(c, "start_date must be YYYY-MM-DD")
			return
		}
		filter.StartDate = &start
	}
	if req.EndDate != "" {
		end, err := time.Parse(dateLayout, req.EndDate)
		if err != nil {
			h.BadRequest(c, "end_date must be YYYY-MM-DD")
			return
		}
		filter.EndDate = &end
	}

	orders, total, err := h.orderService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page := filter.Page
	if page <= 0 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}
	h.SuccessWithMeta(c, orders, total, page, pageSize)
}

// AssignDelivery dispatches an order to a driver
func (h *OrderHandler) AssignDelivery(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	var req AssignDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.orderService.AssignDelivery(c.Request.Context(), getActor(c), orderID, req.Driver)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// MarkDelivered completes a delivery
func (h *OrderHandler) MarkDelivered(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	var req MarkDeliveredRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.orderService.MarkDelivered(c.Request.Context(), getActor(c), orderID, req.AlsoMarkPaid)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Cancel cancels an order
func (h *OrderHandler) Cancel(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	var req CancelOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.orderService.Cancel(c.Request.Context(), getActor(c), orderID, req.Reason)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// SetPayment changes the payment flag independently of delivery
func (h *OrderHandler) SetPayment(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	var req SetPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.orderService.SetPaymentStatus(c.Request.Context(), getActor(c), orderID,
		order.PaymentStatus(req.Status), req.ReceivedBy)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// EstimateDistance geocodes an address and returns the approximate
// delivery distance
func (h *OrderHandler) EstimateDistance(c *gin.Context) {
	var req EstimateDistanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	km, err := h.estimator.EstimateKm(c.Request.Context(), req.Address)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, EstimateDistanceResponse{Address: req.Address, DistanceKm: km})
}

// RegisterRoutes registers order routes
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders")
	{
		orders.GET("", h.List)
		orders.GET("/:id", h.GetByID)
		orders.POST("", h.Place)
		orders.POST("/estimate-distance", h.EstimateDistance)
		orders.POST("/:id/assign-delivery", h.AssignDelivery)
		orders.POST("/:id/deliver", h.MarkDelivered)
		orders.POST("/:id/cancel", h.Cancel)
		orders.POST("/:id/payment", h.SetPayment)
	}
}
