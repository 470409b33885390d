package rewards

import (
	"lsers_hub_backend/internal/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/points", h.balance)
}

// BalanceResponse is the body of GET /points.
type BalanceResponse struct {
	Points int `json:"points"`
}

func (h *Handler) balance(c *gin.Context) {
	points := h.service.Balance(c.Request.Context(), common.GetDeviceIDFromContext(c))
	common.RespondOK(c, "", BalanceResponse{Points: points})
}
