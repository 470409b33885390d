package middleware

import (
	"sync"
	"time"

	"lsers_hub_backend/internal/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// DeviceRateLimiter hands out one token bucket per device.
type DeviceRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

// NewDeviceRateLimiter allows perMinute requests per device, with bursts of up to burst.
func NewDeviceRateLimiter(perMinute, burst int) *DeviceRateLimiter {
	if perMinute <= 0 {
		perMinute = 30
	}
	if burst <= 0 {
		burst = 1
	}
	return &DeviceRateLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Every(time.Minute / time.Duration(perMinute)),
		burst:    burst,
	}
}

func (l *DeviceRateLimiter) limiter(deviceID string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	lim, ok := l.limiters[deviceID]
	if !ok {
		lim = rate.NewLimiter(l.limit, l.burst)
		l.limiters[deviceID] = lim
	}
	return lim
}

// RateLimit rejects requests with 429 once a device exhausts its bucket.
func RateLimit(limiter *DeviceRateLimiter, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		deviceID := common.GetDeviceIDFromContext(c)
		if deviceID == "" {
			deviceID = c.ClientIP()
		}
		if !limiter.limiter(deviceID).Allow() {
			logger.Warn("Rate limit exceeded", zap.String("device_id", deviceID), zap.String("path", c.Request.URL.Path))
			common.RespondWithError(c, common.ErrTooManyRequests)
			return
		}
		c.Next()
	}
}
