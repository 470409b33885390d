package common

import (
	"lsers_hub_backend/internal/domain"

	"github.com/gin-gonic/gin"
)

// Session is the unlock state of one device.
type Session struct {
	DeviceID string      `json:"-"`
	Unlocked bool        `json:"unlocked"`
	UserID   int64       `json:"userId,omitempty"`
	UserName string      `json:"userName,omitempty"`
	Role     domain.Role `json:"role,omitempty"`
}

func (s Session) IsAdmin() bool { return s.Unlocked && s.Role == domain.RoleAdmin }

// GetDeviceIDFromContext retrieves the device id set by the device middleware.
func GetDeviceIDFromContext(c *gin.Context) string {
	return c.GetString(DeviceIDKey)
}

// GetSessionFromContext retrieves the session snapshot set by the device middleware.
// A device that never unlocked gets a zero, locked session.
func GetSessionFromContext(c *gin.Context) Session {
	val, exists := c.Get(SessionKey)
	if !exists {
		return Session{DeviceID: GetDeviceIDFromContext(c)}
	}
	s, ok := val.(Session)
	if !ok {
		return Session{DeviceID: GetDeviceIDFromContext(c)}
	}
	return s
}
