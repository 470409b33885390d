package user

import (
	"context"

	"lsers_hub_backend/internal/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Credentials resets the PIN and display name stored for a device.
type Credentials interface {
	ResetCredentials(ctx context.Context, deviceID, name, pin string) error
}

// Handler struct holds dependencies for user handlers.
type Handler struct {
	service     Service
	credentials Credentials
	logger      *zap.Logger
}

// NewHandler creates a new user handler.
func NewHandler(service Service, credentials Credentials, logger *zap.Logger) *Handler {
	return &Handler{service: service, credentials: credentials, logger: logger}
}

// RegisterRoutes sets up the routes for the current user. unlockedMW guards every route.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, unlockedMW gin.HandlerFunc) {
	me := router.Group("/me")
	me.Use(unlockedMW)
	{
		me.GET("", h.getMe)
		me.PUT("", h.updateMe)
	}
}

func (h *Handler) getMe(c *gin.Context) {
	session := common.GetSessionFromContext(c)
	usr, err := h.service.GetUserByID(c.Request.Context(), session.DeviceID, session.UserID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "User profile retrieved successfully.", ToUserResponse(usr))
}

func (h *Handler) updateMe(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Update profile: invalid request body", zap.Error(err))
		common.RespondWithError(c, common.BindingError(err))
		return
	}

	session := common.GetSessionFromContext(c)
	ctx := c.Request.Context()
	usr, err := h.service.UpdateProfile(ctx, session.DeviceID, session.UserID, req.Name)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	if err := h.credentials.ResetCredentials(ctx, session.DeviceID, usr.Name, req.Pin); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Profile updated successfully.", ToUserResponse(usr))
}
