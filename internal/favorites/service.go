// Package favorites manages each user's saved providers and products.
package favorites

import (
	"context"
	"slices"

	"lsers_hub_backend/internal/common"
	"lsers_hub_backend/internal/domain"
	"lsers_hub_backend/internal/store"

	"go.uber.org/zap"
)

// Service operates on a per-user set of favorites.
type Service interface {
	// Toggle adds the item when absent and removes it when present, reporting the new membership.
	Toggle(ctx context.Context, deviceID string, userID int64, item domain.FavoriteItem) (bool, []domain.FavoriteItem, error)
	List(ctx context.Context, deviceID string, userID int64) []domain.FavoriteItem
	Resolve(ctx context.Context, deviceID string, userID int64) Resolved
}

type service struct {
	stores *store.Manager
	logger *zap.Logger
}

func NewService(stores *store.Manager, logger *zap.Logger) Service {
	return &service{stores: stores, logger: logger.Named("favorites")}
}

func (s *service) Toggle(ctx context.Context, deviceID string, userID int64, item domain.FavoriteItem) (bool, []domain.FavoriteItem, error) {
	if !item.Type.Valid() {
		return false, nil, common.ErrBadRequest.WithDetails("Unknown favorite type.")
	}
	var added bool
	items, err := s.stores.For(deviceID).Favorites(userID).Update(ctx, func(items []domain.FavoriteItem) ([]domain.FavoriteItem, error) {
		if i := slices.Index(items, item); i >= 0 {
			added = false
			return slices.Delete(items, i, i+1), nil
		}
		added = true
		return append(items, item), nil
	})
	if err != nil {
		return false, nil, err
	}
	s.logger.Debug("Favorite toggled",
		zap.Int64("user_id", userID),
		zap.String("type", string(item.Type)),
		zap.Int64("id", item.ID),
		zap.Bool("favorited", added),
	)
	return added, items, nil
}

func (s *service) List(ctx context.Context, deviceID string, userID int64) []domain.FavoriteItem {
	return s.stores.For(deviceID).Favorites(userID).All(ctx)
}

func (s *service) Resolve(ctx context.Context, deviceID string, userID int64) Resolved {
	st := s.stores.For(deviceID)
	items := st.Favorites(userID).All(ctx)
	out := Resolved{Items: items, Providers: []domain.Provider{}, Products: []domain.Product{}}

	var providers []domain.Provider
	var products []domain.Product
	for _, it := range items {
		switch it.Type {
		case domain.FavoriteProvider:
			if providers == nil {
				providers = st.Providers.All(ctx)
			}
			if i := slices.IndexFunc(providers, func(p domain.Provider) bool { return p.ID == it.ID }); i >= 0 {
				out.Providers = append(out.Providers, providers[i])
			}
		case domain.FavoriteProduct:
			if products == nil {
				products = st.Products.All(ctx)
			}
			if i := slices.IndexFunc(products, func(p domain.Product) bool { return p.ID == it.ID }); i >= 0 {
				out.Products = append(out.Products, products[i])
			}
		}
	}
	return out
}
