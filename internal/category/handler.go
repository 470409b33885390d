package category

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

// NormalizeResponse reports the catalog id free text maps to.
type NormalizeResponse struct {
	Input string `json:"input"`
	ID    string `json:"id"`
	Known bool   `json:"known"`
}

// RegisterRoutes mounts the read-only catalog. Nothing here needs an unlocked session.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	categories := router.Group("/categories")
	{
		categories.GET("", h.list)
		categories.GET("/normalize", h.normalize)
		categories.GET("/:idOrSlug", h.get)
	}
}

func (h *Handler) list(c *gin.Context) {
	var query ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		common.RespondWithError(c, common.BindingError(err))
		return
	}
	common.RespondOK(c, "", h.service.GetAll(c.Request.Context(), query))
}

func (h *Handler) normalize(c *gin.Context) {
	raw := c.Query("q")
	if raw == "" {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Query parameter q is required."))
		return
	}
	id, known := h.service.Normalize(c.Request.Context(), raw)
	common.RespondOK(c, "", NormalizeResponse{Input: raw, ID: id, Known: known})
}

func (h *Handler) get(c *gin.Context) {
	cat, err := h.service.Get(c.Request.Context(), c.Param("idOrSlug"))
	if err != nil {
		h.logger.Debug("Category lookup missed", zap.String("input", c.Param("idOrSlug")))
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "", cat)
}
