package product

import (
	"strconv"

	"lsers_hub_backend/internal/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler serves the marketplace.
type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes mounts marketplace routes; listing an item requires an unlocked session.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, unlockedMW gin.HandlerFunc) {
	products := router.Group("/products")
	{
		products.GET("", h.list)
		products.GET("/:id", h.get)
		products.GET("/:id/whatsapp", h.whatsapp)
		products.GET("/:id/chat", h.chat)
		products.POST("", unlockedMW, h.create)
	}
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid product ID format."))
		return 0, false
	}
	return id, true
}

func (h *Handler) list(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		common.RespondWithError(c, common.BindingError(err))
		return
	}
	items := h.service.List(c.Request.Context(), common.GetDeviceIDFromContext(c), q)
	page, pageSize := common.GetPaginationParams(c)
	data, pagination := common.Paginate(items, page, pageSize)
	common.RespondPaginated(c, "Products retrieved successfully.", data, pagination)
}

func (h *Handler) get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	p, err := h.service.Get(c.Request.Context(), common.GetDeviceIDFromContext(c), id)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Product retrieved successfully.", p)
}

func (h *Handler) whatsapp(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	inq, err := h.service.WhatsAppInquiry(c.Request.Context(), common.GetDeviceIDFromContext(c), id)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "", inq)
}

func (h *Handler) chat(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	target, err := h.service.ChatTarget(c.Request.Context(), common.GetDeviceIDFromContext(c), id)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, target.Notice, target)
}

func (h *Handler) create(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Create product: invalid request body", zap.Error(err))
		common.RespondWithError(c, common.BindingError(err))
		return
	}
	session := common.GetSessionFromContext(c)
	p, err := h.service.Add(c.Request.Context(), session.DeviceID, session, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "Product listed successfully.", p)
}
