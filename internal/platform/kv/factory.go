package kv

import (
	"context"
	"fmt"
	"strings"
	"time"

	"lsers_hub_backend/internal/config"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// NewBackend builds the backend selected by STORAGE_DRIVER, wrapped with the slot quota.
// The returned cleanup releases driver resources the database cleanup does not own.
func NewBackend(cfg *config.Config, db *gorm.DB, logger *zap.Logger) (Backend, func(), error) {
	var (
		backend Backend
		cleanup = func() {}
	)

	switch strings.ToLower(cfg.StorageDriver) {
	case "gorm":
		b, err := NewGORMBackend(db)
		if err != nil {
			return nil, nil, err
		}
		backend = b
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("failed to reach redis at %s: %w", cfg.RedisAddr, err)
		}
		backend = NewRedisBackend(client)
		cleanup = func() {
			if err := client.Close(); err != nil {
				logger.Error("Error closing redis client", zap.Error(err))
			}
		}
	case "memory":
		logger.Warn("Using in-memory slot storage; state will not survive a restart")
		backend = NewMemoryBackend()
	default:
		return nil, nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}

	logger.Info("Slot storage ready",
		zap.String("driver", cfg.StorageDriver),
		zap.Int("quota_bytes", cfg.StorageQuotaBytes),
	)
	return WithQuota(backend, cfg.StorageQuotaBytes), cleanup, nil
}
