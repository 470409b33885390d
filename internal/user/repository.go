package user

import (
	"context"

	"lsers_hub_backend/internal/common"
	"lsers_hub_backend/internal/domain"
	"lsers_hub_backend/internal/store"
)

// Repository defines the storage operations for users of one device.
type Repository interface {
	FindByID(ctx context.Context, deviceID string, id int64) (*domain.User, error)
	// FindByName matches the name exactly.
	FindByName(ctx context.Context, deviceID, name string) (*domain.User, error)
	Create(ctx context.Context, deviceID string, u domain.User) error
	Rename(ctx context.Context, deviceID string, id int64, name string) (*domain.User, error)
	NextID(deviceID string) int64
}

type storeRepository struct {
	stores *store.Manager
}

// NewStoreRepository creates a Repository over the device slot store.
func NewStoreRepository(stores *store.Manager) Repository {
	return &storeRepository{stores: stores}
}

func (r *storeRepository) find(ctx context.Context, deviceID string, pred func(domain.User) bool) (*domain.User, error) {
	u, ok := r.stores.For(deviceID).Users.Find(ctx, pred)
	if !ok {
		return nil, common.ErrNotFound.WithDetails("User not found.")
	}
	return &u, nil
}

func (r *storeRepository) FindByID(ctx context.Context, deviceID string, id int64) (*domain.User, error) {
	return r.find(ctx, deviceID, func(u domain.User) bool { return u.ID == id })
}

func (r *storeRepository) FindByName(ctx context.Context, deviceID, name string) (*domain.User, error) {
	return r.find(ctx, deviceID, func(u domain.User) bool { return u.Name == name })
}

func (r *storeRepository) Create(ctx context.Context, deviceID string, u domain.User) error {
	r.stores.For(deviceID).Users.Append(ctx, u)
	return nil
}

func (r *storeRepository) Rename(ctx context.Context, deviceID string, id int64, name string) (*domain.User, error) {
	var renamed *domain.User
	_, err := r.stores.For(deviceID).Users.Update(ctx, func(users []domain.User) ([]domain.User, error) {
		for i := range users {
			if users[i].ID == id {
				users[i].Name = name
				u := users[i]
				renamed = &u
				return users, nil
			}
		}
		return nil, common.ErrNotFound.WithDetails("User not found.")
	})
	if err != nil {
		return nil, err
	}
	return renamed, nil
}

func (r *storeRepository) NextID(deviceID string) int64 {
	return r.stores.For(deviceID).NextID()
}
