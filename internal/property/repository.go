// Package property serves the read-only short-term rental catalog.
package property

import (
	"context"
	"slices"

	"lsers_hub_backend/internal/common"
	"lsers_hub_backend/internal/domain"
	"lsers_hub_backend/internal/store"
)

// Repository reads rental listings.
type Repository interface {
	FindAll(ctx context.Context) []domain.Property
	FindByID(ctx context.Context, id int64) (*domain.Property, error)
}

type staticRepository struct {
	items []domain.Property
}

// NewStaticRepository serves the bundled listings.
func NewStaticRepository() Repository {
	return &staticRepository{items: store.DefaultProperties()}
}

func (r *staticRepository) FindAll(_ context.Context) []domain.Property {
	return slices.Clone(r.items)
}

func (r *staticRepository) FindByID(_ context.Context, id int64) (*domain.Property, error) {
	i := slices.IndexFunc(r.items, func(p domain.Property) bool { return p.ID == id })
	if i < 0 {
		return nil, common.ErrNotFound.WithDetails("Property not found.")
	}
	p := r.items[i]
	return &p, nil
}
