package ai

import (
	"lsers_hub_backend/internal/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler exposes the AI helpers.
type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes mounts /ai behind the given middlewares (rate limiting, typically).
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, mws ...gin.HandlerFunc) {
	group := router.Group("/ai", mws...)
	{
		group.POST("/recommend", h.recommend)
		group.POST("/transcribe", h.transcribe)
		group.POST("/assistant", h.assistant)
	}
}

func (h *Handler) recommend(c *gin.Context) {
	var req RecommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondWithError(c, common.BindingError(err))
		return
	}
	result := h.service.Search(c.Request.Context(), req.Query)
	common.RespondOK(c, result.Message, result)
}

func (h *Handler) transcribe(c *gin.Context) {
	var req TranscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondWithError(c, common.BindingError(err))
		return
	}
	common.RespondOK(c, "", h.service.Transcribe(c.Request.Context(), req))
}

func (h *Handler) assistant(c *gin.Context) {
	var req AssistantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondWithError(c, common.BindingError(err))
		return
	}
	common.RespondOK(c, "", h.service.Ask(c.Request.Context(), common.GetDeviceIDFromContext(c), req))
}
