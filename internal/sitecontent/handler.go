package sitecontent

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

// ThemeResponse is the body of the theme endpoints.
type ThemeResponse struct {
	Theme domain.Theme `json:"theme"`
}

func (h *Handler) RegisterRoutes(router *gin.RouterGroup, adminMW gin.HandlerFunc) {
	router.GET("/site-content", h.get)
	router.PUT("/admin/site-content", adminMW, h.update)
	router.GET("/theme", h.theme)
	router.POST("/theme/toggle", h.toggleTheme)
}

func (h *Handler) get(c *gin.Context) {
	common.RespondOK(c, "", h.service.Get(c.Request.Context(), common.GetDeviceIDFromContext(c)))
}

func (h *Handler) update(c *gin.Context) {
	var req domain.SiteContent
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondWithError(c, common.BindingError(err))
		return
	}
	content, err := h.service.Update(c.Request.Context(), common.GetDeviceIDFromContext(c), req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Site content updated.", content)
}

func (h *Handler) theme(c *gin.Context) {
	common.RespondOK(c, "", ThemeResponse{Theme: h.service.Theme(c.Request.Context(), common.GetDeviceIDFromContext(c))})
}

func (h *Handler) toggleTheme(c *gin.Context) {
	common.RespondOK(c, "", ThemeResponse{Theme: h.service.ToggleTheme(c.Request.Context(), common.GetDeviceIDFromContext(c))})
}
