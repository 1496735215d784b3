package handler

import (
	"time"

	"github.com/freshline/backend/internal/application/sales"
	"github.com/gin-gonic/gin"
)

// SalesHandler handles the weekly leaderboard
type SalesHandler struct {
	BaseHandler
	salesService *sales.Service
}

// NewSalesHandler creates a new SalesHandler
func NewSalesHandler(salesService *sales.Service) *SalesHandler {
	return &SalesHandler{salesService: salesService}
}

// Leaderboard returns per-salesperson totals for one week. The week
// query parameter accepts any date inside the wanted week; it defaults
// to the current week.
func (h *SalesHandler) Leaderboard(c *gin.Context) {
	ref := time.Now()
	if week := c.Query("week"); week != "" {
		parsed, err := time.Parse(dateLayout, week)
		if err != nil {
			h.BadRequest(c, "week must be YYYY-MM-DD")
			return
		}
		ref = parsed
	}

	board, err := h.salesService.WeeklyLeaderboard(c.Request.Context(), sales.WeekStart(ref))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, board)
}

// RegisterRoutes registers sales routes
func (h *SalesHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/sales/leaderboard", h.Leaderboard)
}
