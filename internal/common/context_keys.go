package common

const (
	// DeviceIDHeader names the browser/device whose state a request reads and writes.
	DeviceIDHeader = "X-Device-ID"
	// DeviceIDKey is the context key for the validated device id
	DeviceIDKey = "deviceID"
	// SessionKey is the context key for the device's *Session
	SessionKey = "session"
	// LoggerKey is the context key for a request-scoped *zap.Logger
	LoggerKey = "logger"
)
