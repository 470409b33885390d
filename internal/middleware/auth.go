package middleware

import (
	"regexp"

	"lsers_hub_backend/internal/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var deviceIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{8,64}$`)

// SessionSource reports the unlock state of a device.
type SessionSource interface {
	Session(deviceID string) common.Session
}

// DeviceMiddleware requires an X-Device-ID header and attaches the device's session snapshot.
func DeviceMiddleware(sessions SessionSource, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		deviceID := c.GetHeader(common.DeviceIDHeader)
		if deviceID == "" {
			logger.Debug("Device id header missing", zap.String("path", c.Request.URL.Path))
			common.RespondWithError(c, common.ErrBadRequest.WithDetails(common.DeviceIDHeader+" header is required."))
			return
		}
		if !deviceIDPattern.MatchString(deviceID) {
			logger.Debug("Device id header malformed", zap.String("device_id", deviceID))
			common.RespondWithError(c, common.ErrBadRequest.WithDetails(common.DeviceIDHeader+" must be 8-64 letters, digits, '-' or '_'."))
			return
		}

		c.Set(common.DeviceIDKey, deviceID)
		c.Set(common.SessionKey, sessions.Session(deviceID))
		c.Next()
	}
}

// RequireUnlocked rejects requests from devices that have not passed the PIN gate.
func RequireUnlocked(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := common.GetSessionFromContext(c)
		if !session.Unlocked {
			logger.Debug("Locked device attempted a protected route",
				zap.String("device_id", session.DeviceID),
				zap.String("path", c.Request.URL.Path),
			)
			common.RespondWithError(c, common.ErrUnauthorized.WithDetails("Unlock the app with your PIN first."))
			return
		}
		c.Next()
	}
}

// RequireAdmin allows only unlocked sessions holding the admin role.
func RequireAdmin(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := common.GetSessionFromContext(c)
		if !session.Unlocked {
			common.RespondWithError(c, common.ErrUnauthorized.WithDetails("Unlock the app with your PIN first."))
			return
		}
		if !session.IsAdmin() {
			logger.Warn("Non-admin session attempted an admin route",
				zap.String("device_id", session.DeviceID),
				zap.Int64("user_id", session.UserID),
				zap.String("path", c.Request.URL.Path),
			)
			common.RespondWithError(c, common.ErrForbidden)
			return
		}
		c.Next()
	}
}
