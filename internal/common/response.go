package common

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Envelope is the body of every successful response. Pagination is only set by list endpoints.
type Envelope struct {
	Status     string      `json:"status"`
	Message    string      `json:"message,omitempty"`
	Data       interface{} `json:"data,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// requestLogger returns the request-scoped logger installed by the logging middleware, if any.
func requestLogger(c *gin.Context) *zap.Logger {
	if l, ok := c.Get(LoggerKey); ok {
		if logger, ok := l.(*zap.Logger); ok {
			return logger
		}
	}
	return zap.NewNop()
}

// RespondWithError aborts with the JSON form of err. Anything that is not an *APIError
// is logged with the device id and reported as a 500.
func RespondWithError(c *gin.Context, err error) {
	apiErr, ok := IsAPIError(err)
	if !ok {
		requestLogger(c).Error("Unhandled internal error being wrapped",
			zap.String("device_id", GetDeviceIDFromContext(c)),
			zap.Error(err),
		)
		apiErr = ErrInternalServer
	}
	c.AbortWithStatusJSON(apiErr.StatusCode, apiErr)
}

func respond(c *gin.Context, statusCode int, env Envelope) {
	env.Status = "success"
	c.JSON(statusCode, env)
}

// RespondSuccess sends data under the success envelope.
func RespondSuccess(c *gin.Context, statusCode int, message string, data interface{}) {
	respond(c, statusCode, Envelope{Message: message, Data: data})
}

func RespondOK(c *gin.Context, message string, data interface{}) {
	RespondSuccess(c, http.StatusOK, message, data)
}

func RespondCreated(c *gin.Context, message string, data interface{}) {
	RespondSuccess(c, http.StatusCreated, message, data)
}

// RespondNoContent is used for silent no-ops, such as a chat whose provider no longer exists.
func RespondNoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// RespondPaginated sends one page. Data is always present, as [] for an empty page.
func RespondPaginated(c *gin.Context, message string, data interface{}, pagination *Pagination) {
	if data == nil {
		data = []struct{}{}
	}
	respond(c, http.StatusOK, Envelope{Message: message, Data: data, Pagination: pagination})
}
