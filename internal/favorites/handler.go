package favorites

import (
	"lsers_hub_backend/internal/common"
	"lsers_hub_backend/internal/domain"

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

// RegisterRoutes mounts /favorites. Favorites belong to a user, so the whole group needs an unlocked session.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, unlockedMW gin.HandlerFunc) {
	group := router.Group("/favorites", unlockedMW)
	{
		group.GET("", h.list)
		group.POST("/toggle", h.toggle)
	}
}

func (h *Handler) list(c *gin.Context) {
	session := common.GetSessionFromContext(c)
	common.RespondOK(c, "", h.service.Resolve(c.Request.Context(), session.DeviceID, session.UserID))
}

func (h *Handler) toggle(c *gin.Context) {
	var req ToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondWithError(c, common.BindingError(err))
		return
	}
	session := common.GetSessionFromContext(c)
	added, items, err := h.service.Toggle(c.Request.Context(), session.DeviceID, session.UserID,
		domain.FavoriteItem{Type: req.Type, ID: req.ID})
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	msg := "Removed from favorites."
	if added {
		msg = "Added to favorites."
	}
	common.RespondOK(c, msg, ToggleResponse{Favorited: added, Items: items})
}
