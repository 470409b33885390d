package review

import (
	"strconv"

	"lsers_hub_backend/internal/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler serves provider reviews.
type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes mounts the review routes. Posting requires an unlocked session.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, unlockedMW gin.HandlerFunc) {
	router.GET("/providers/:id/reviews", h.list)
	router.POST("/providers/:id/reviews", unlockedMW, h.create)
}

func providerID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid provider ID format."))
		return 0, false
	}
	return id, true
}

func (h *Handler) list(c *gin.Context) {
	id, ok := providerID(c)
	if !ok {
		return
	}
	deviceID := common.GetDeviceIDFromContext(c)
	ctx := c.Request.Context()
	common.RespondOK(c, "Reviews retrieved successfully.", ReviewsResponse{
		Reviews:   h.service.ForProvider(ctx, deviceID, id),
		Aggregate: h.service.Aggregate(ctx, deviceID, id),
	})
}

func (h *Handler) create(c *gin.Context) {
	id, ok := providerID(c)
	if !ok {
		return
	}
	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Create review: invalid request body", zap.Error(err))
		common.RespondWithError(c, common.BindingError(err))
		return
	}

	session := common.GetSessionFromContext(c)
	r, err := h.service.Add(c.Request.Context(), session.DeviceID, session, id, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "Review added successfully.", r)
}
