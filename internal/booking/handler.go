package booking

import (
	"lsers_hub_backend/internal/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler serves the booking workflow.
type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// PendingResponse is what the device currently has in flight.
type PendingResponse struct {
	Choice       *Choice       `json:"choice,omitempty"`
	Confirmation *Confirmation `json:"confirmation,omitempty"`
}

func (h *Handler) RegisterRoutes(router *gin.RouterGroup, unlockedMW gin.HandlerFunc) {
	bookings := router.Group("/bookings", unlockedMW)
	{
		bookings.POST("", h.submit)
		bookings.GET("/pending", h.pending)
		bookings.POST("/whatsapp", h.chooseWhatsApp)
		bookings.POST("/in-app", h.chooseInApp)
		bookings.POST("/cancel", h.cancel)
		bookings.POST("/confirm", h.confirm)
		bookings.GET("/history", h.history)
	}
}

func (h *Handler) submit(c *gin.Context) {
	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Submit booking: invalid request body", zap.Error(err))
		common.RespondWithError(c, common.BindingError(err))
		return
	}
	choice, err := h.service.Submit(c.Request.Context(), common.GetSessionFromContext(c), req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "Choose how to contact the provider.", choice)
}

func (h *Handler) pending(c *gin.Context) {
	choice, conf := h.service.Pending(common.GetDeviceIDFromContext(c))
	common.RespondOK(c, "", PendingResponse{Choice: choice, Confirmation: conf})
}

func (h *Handler) chooseWhatsApp(c *gin.Context) {
	conf, err := h.service.ChooseWhatsApp(c.Request.Context(), common.GetSessionFromContext(c))
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "", conf)
}

func (h *Handler) chooseInApp(c *gin.Context) {
	res, err := h.service.ChooseInApp(c.Request.Context(), common.GetSessionFromContext(c))
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "", res)
}

func (h *Handler) cancel(c *gin.Context) {
	h.service.Cancel(common.GetDeviceIDFromContext(c))
	common.RespondNoContent(c)
}

func (h *Handler) confirm(c *gin.Context) {
	res, err := h.service.Confirm(c.Request.Context(), common.GetDeviceIDFromContext(c))
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Moving to WhatsApp Secure Chat...", res)
}

func (h *Handler) history(c *gin.Context) {
	common.RespondOK(c, "", h.service.History(c.Request.Context(), common.GetDeviceIDFromContext(c)))
}
