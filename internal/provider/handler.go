package provider

import (
	"strconv"

	"lsers_hub_backend/internal/common"
	"lsers_hub_backend/internal/platform/geo"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler serves providers, the admin provider table and the device location.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new provider handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes mounts public, unlocked-only and admin routes.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, unlockedMW, adminMW gin.HandlerFunc) {
	providers := router.Group("/providers")
	{
		providers.GET("", h.list)
		providers.GET("/:id", h.get)
		providers.GET("/:id/contact", h.contact)
		providers.POST("", unlockedMW, h.create)
		providers.PUT("/:id", unlockedMW, h.update)
	}

	admin := router.Group("/admin/providers")
	admin.Use(adminMW)
	{
		admin.GET("", h.adminList)
		admin.DELETE("/:id", h.delete)
		admin.POST("/bulk-delete", h.bulkDelete)
		admin.POST("/bulk-status", h.bulkStatus)
	}

	router.GET("/location", h.getLocation)
	router.PUT("/location", h.setLocation)
	router.DELETE("/location", h.clearLocation)
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid provider ID format."))
		return 0, false
	}
	return id, true
}

func (h *Handler) list(c *gin.Context) {
	var f ListFilter
	if err := c.ShouldBindQuery(&f); err != nil {
		common.RespondWithError(c, common.BindingError(err))
		return
	}
	views, err := h.service.List(c.Request.Context(), common.GetDeviceIDFromContext(c), f)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	page, pageSize := common.GetPaginationParams(c)
	items, pagination := common.Paginate(views, page, pageSize)
	common.RespondPaginated(c, "Providers retrieved successfully.", items, pagination)
}

func (h *Handler) get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	v, err := h.service.Get(c.Request.Context(), common.GetDeviceIDFromContext(c), id)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Provider retrieved successfully.", v)
}

func (h *Handler) contact(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	link, err := h.service.ContactLink(c.Request.Context(), common.GetDeviceIDFromContext(c), id)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "", link)
}

func (h *Handler) create(c *gin.Context) {
	var req CreateProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Create provider: invalid request body", zap.Error(err))
		common.RespondWithError(c, common.BindingError(err))
		return
	}
	p, err := h.service.Add(c.Request.Context(), common.GetDeviceIDFromContext(c), req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "Provider created successfully.", p)
}

func (h *Handler) update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req UpdateProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Update provider: invalid request body", zap.Int64("provider_id", id), zap.Error(err))
		common.RespondWithError(c, common.BindingError(err))
		return
	}
	p, err := h.service.Update(c.Request.Context(), common.GetDeviceIDFromContext(c), id, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Provider updated successfully.", p)
}

func (h *Handler) adminList(c *gin.Context) {
	var q AdminListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		common.RespondWithError(c, common.BindingError(err))
		return
	}
	common.RespondOK(c, "", h.service.AdminList(c.Request.Context(), common.GetDeviceIDFromContext(c), q))
}

func (h *Handler) delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), common.GetDeviceIDFromContext(c), id); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondNoContent(c)
}

func (h *Handler) bulkDelete(c *gin.Context) {
	var req BulkIDsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondWithError(c, common.BindingError(err))
		return
	}
	n := h.service.BulkDelete(c.Request.Context(), common.GetDeviceIDFromContext(c), req.IDs)
	common.RespondOK(c, "Providers deleted.", gin.H{"deleted": n})
}

func (h *Handler) bulkStatus(c *gin.Context) {
	var req BulkStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondWithError(c, common.BindingError(err))
		return
	}
	n := h.service.BulkSetStatus(c.Request.Context(), common.GetDeviceIDFromContext(c), req.IDs, req.Status)
	common.RespondOK(c, "Provider status updated.", gin.H{"updated": n})
}

func (h *Handler) getLocation(c *gin.Context) {
	p, fallback := h.service.UserLocation(c.Request.Context(), common.GetDeviceIDFromContext(c))
	common.RespondOK(c, "", LocationResponse{Latitude: p.Lat, Longitude: p.Lon, Fallback: fallback})
}

func (h *Handler) setLocation(c *gin.Context) {
	var p geo.Point
	if err := c.ShouldBindJSON(&p); err != nil {
		common.RespondWithError(c, common.BindingError(err))
		return
	}
	h.service.SetLocation(c.Request.Context(), common.GetDeviceIDFromContext(c), p)
	common.RespondOK(c, "Location updated.", LocationResponse{Latitude: p.Lat, Longitude: p.Lon})
}

func (h *Handler) clearLocation(c *gin.Context) {
	ctx := c.Request.Context()
	deviceID := common.GetDeviceIDFromContext(c)
	h.service.ClearLocation(ctx, deviceID)
	p, _ := h.service.UserLocation(ctx, deviceID)
	common.RespondOK(c, "Location unavailable, using the default area.", LocationResponse{Latitude: p.Lat, Longitude: p.Lon, Fallback: true})
}
