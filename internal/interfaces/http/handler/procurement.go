package handler

import (
	"github.com/freshline/backend/internal/application/procurement"
	"github.com/freshline/backend/internal/infrastructure/share"
	"github.com/gin-gonic/gin"
)

// ProcurementHandler handles supplier demand endpoints
type ProcurementHandler struct {
	BaseHandler
	procurementService *procurement.Service
	shareChannel       *share.Channel
}

// NewProcurementHandler creates a new ProcurementHandler
func NewProcurementHandler(procurementService *procurement.Service, shareChannel *share.Channel) *ProcurementHandler {
	return &ProcurementHandler{
		procurementService: procurementService,
		shareChannel:       shareChannel,
	}
}

// ShareResponse carries formatted share text and its deep link
type ShareResponse struct {
	Text string `json:"text"`
	Link string `json:"link"`
}

// Demand aggregates open order quantities per product type
func (h *ProcurementHandler) Demand(c *gin.Context) {
	demand, err := h.procurementService.ComputeDemand(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, demand)
}

// ShareDemand formats the demand for messaging and builds a deep link.
// The optional phone query parameter addresses a specific recipient.
func (h *ProcurementHandler) ShareDemand(c *gin.Context) {
	demand, err := h.procurementService.ComputeDemand(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	text := h.procurementService.FormatShareText(demand)
	link, err := h.shareChannel.DeepLink(text, c.Query("phone"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, ShareResponse{Text: text, Link: link})
}

// RegisterRoutes registers procurement routes
func (h *ProcurementHandler) RegisterRoutes(rg *gin.RouterGroup) {
	procurement := rg.Group("/procurement")
	{
		procurement.GET("/demand", h.Demand)
		procurement.GET("/demand/share", h.ShareDemand)
	}
}
