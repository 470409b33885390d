// Package rewards keeps the device's loyalty points balance.
package rewards

import (
	"context"

	"lsers_hub_backend/internal/common"
	"lsers_hub_backend/internal/store"

	"go.uber.org/zap"
)

// Service reads and credits points. The balance never decreases.
type Service interface {
	Balance(ctx context.Context, deviceID string) int
	Credit(ctx context.Context, deviceID string, n int) (int, error)
}

type service struct {
	stores *store.Manager
	logger *zap.Logger
}

func NewService(stores *store.Manager, logger *zap.Logger) Service {
	return &service{stores: stores, logger: logger.Named("rewards")}
}

func (s *service) Balance(ctx context.Context, deviceID string) int {
	return s.stores.For(deviceID).Points.Get(ctx)
}

func (s *service) Credit(ctx context.Context, deviceID string, n int) (int, error) {
	if n <= 0 {
		return 0, common.ErrBadRequest.WithDetails("Points to credit must be positive.")
	}
	balance, err := s.stores.For(deviceID).Points.Update(ctx, func(cur int) (int, error) {
		return cur + n, nil
	})
	if err != nil {
		return 0, err
	}
	s.logger.Info("Points credited", zap.String("device_id", deviceID), zap.Int("points", n), zap.Int("balance", balance))
	return balance, nil
}
