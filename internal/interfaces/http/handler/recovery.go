package handler

import (
	"github.com/freshline/backend/internal/application/recovery"
	"github.com/freshline/backend/internal/infrastructure/share"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RecoveryHandler handles payment recovery endpoints
type RecoveryHandler struct {
	BaseHandler
	recoveryService *recovery.Service
	shareChannel    *share.Channel
}

// NewRecoveryHandler creates a new RecoveryHandler
func NewRecoveryHandler(recoveryService *recovery.Service, shareChannel *share.Channel) *RecoveryHandler {
	return &RecoveryHandler{
		recoveryService: recoveryService,
		shareChannel:    shareChannel,
	}
}

// AssignCollectorRequest names the person chasing an outstanding payment
type AssignCollectorRequest struct {
	Collector string `json:"collector" binding:"required"`
}

// Worklist returns outstanding orders grouped by collector
func (h *RecoveryHandler) Worklist(c *gin.Context) {
	worklist, err := h.recoveryService.Worklist(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, worklist)
}

// Assign puts an outstanding order on a collector's list
func (h *RecoveryHandler) Assign(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	var req AssignCollectorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.recoveryService.Assign(c.Request.Context(), getActor(c), orderID, req.Collector)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// MarkCollected settles an outstanding payment, crediting the assignee
func (h *RecoveryHandler) MarkCollected(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	resp, err := h.recoveryService.MarkCollected(c.Request.Context(), getActor(c), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// ShareWorklist formats one collector's outstanding list for messaging.
// The collector query parameter selects the group; empty selects the
// unassigned bucket.
func (h *RecoveryHandler) ShareWorklist(c *gin.Context) {
	worklist, err := h.recoveryService.Worklist(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	collector := c.Query("collector")
	if collector == "" {
		collector = recovery.UnassignedBucket
	}
	var group *recovery.CollectorGroup
	for i := range worklist.Groups {
		if worklist.Groups[i].Collector == collector {
			group = &worklist.Groups[i]
			break
		}
	}
	if group == nil {
		h.BadRequest(c, "No outstanding orders for that collector")
		return
	}

	text := h.recoveryService.FormatShareText(group)
	link, err := h.shareChannel.DeepLink(text, c.Query("phone"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, ShareResponse{Text: text, Link: link})
}

// RegisterRoutes registers recovery routes
func (h *RecoveryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	recoveryGroup := rg.Group("/recovery")
	{
		recoveryGroup.GET("/worklist", h.Worklist)
		recoveryGroup.GET("/worklist/share", h.ShareWorklist)
		recoveryGroup.POST("/orders/:id/assign", h.Assign)
		recoveryGroup.POST("/orders/:id/collect", h.MarkCollected)
	}
}
