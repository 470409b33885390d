package category

import (
	"context"

	"lsers_hub_backend/internal/common"
)

// Repository reads the service catalog.
type Repository interface {
	FindAll(ctx context.Context) []ServiceCategory
	FindByID(ctx context.Context, id string) (*ServiceCategory, error)
}

type staticRepository struct {
	byID  map[string]int
	items []ServiceCategory
}

// NewStaticRepository serves the compiled-in catalog.
func NewStaticRepository() Repository {
	byID := make(map[string]int, len(catalog))
	for i, c := range catalog {
		byID[c.ID] = i
	}
	return &staticRepository{byID: byID, items: catalog}
}

func (r *staticRepository) FindAll(_ context.Context) []ServiceCategory {
	out := make([]ServiceCategory, len(r.items))
	copy(out, r.items)
	return out
}

func (r *staticRepository) FindByID(_ context.Context, id string) (*ServiceCategory, error) {
	i, ok := r.byID[id]
	if !ok {
		return nil, common.ErrNotFound.WithDetails("Category not found.")
	}
	c := r.items[i]
	return &c, nil
}
