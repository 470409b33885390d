package favorites

import "lsers_hub_backend/internal/domain"

// ToggleRequest names the entity to add or remove.
type ToggleRequest struct {
	Type domain.FavoriteType `json:"type" binding:"required,oneof=provider product"`
	ID   int64               `json:"id" binding:"required"`
}

// ToggleResponse reports the new membership.
type ToggleResponse struct {
	Favorited bool                  `json:"favorited"`
	Items     []domain.FavoriteItem `json:"items"`
}

// Resolved is a favorites set expanded into entities. Dangling items are skipped.
type Resolved struct {
	Items     []domain.FavoriteItem `json:"items"`
	Providers []domain.Provider     `json:"providers"`
	Products  []domain.Product      `json:"products"`
}
