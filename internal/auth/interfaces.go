package auth

import (
	"context"

	"lsers_hub_backend/internal/domain"
)

// UserAttacher is the user operation the gate needs once a name is unlocked.
// It is implemented by user.Service.
type UserAttacher interface {
	AttachOnUnlock(ctx context.Context, deviceID, name string) (*domain.User, error)
}
