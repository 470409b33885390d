package middleware

import (
	"net/http"

	"lsers_hub_backend/internal/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var (
	errNoRoute  = common.ErrNotFound.WithDetails("The requested endpoint does not exist.")
	errNoMethod = common.NewAPIError(http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "The method is not allowed for the requested URL.")
)

// ErrorHandler turns errors attached with c.Error into the JSON error envelope and gives
// unmatched routes the same shape. Responses a handler already wrote are left alone.
func ErrorHandler(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		if ginErr := c.Errors.Last(); ginErr != nil {
			if apiErr, ok := common.IsAPIError(ginErr.Err); ok {
				c.AbortWithStatusJSON(apiErr.StatusCode, apiErr)
				return
			}
			logger.Error("Unhandled application error",
				zap.Error(ginErr.Err),
				zap.String("path", c.Request.URL.Path),
				zap.String("device_id", common.GetDeviceIDFromContext(c)),
				zap.String("request_id", c.GetString(RequestIDContextKey)),
			)
			generic := common.ErrInternalServer.WithDetails("An unexpected error occurred.")
			if gin.Mode() == gin.DebugMode {
				generic.Details = ginErr.Err.Error()
			}
			c.AbortWithStatusJSON(generic.StatusCode, generic)
			return
		}

		switch c.Writer.Status() {
		case http.StatusNotFound:
			c.AbortWithStatusJSON(errNoRoute.StatusCode, errNoRoute)
		case http.StatusMethodNotAllowed:
			c.AbortWithStatusJSON(errNoMethod.StatusCode, errNoMethod)
		}
	}
}
