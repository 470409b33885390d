package provider

import (
	"lsers_hub_backend/internal/domain"
	"lsers_hub_backend/internal/review"
)

// Price brackets.
const (
	PriceAll     = "all"
	PriceUnder50 = "under50"
	Price50To100 = "50-100"
	PriceOver100 = "over100"
)

// Sort keys for the public list.
const (
	SortDefault  = "default"
	SortRating   = "rating"
	SortPrice    = "price"
	SortDistance = "distance"
)

// ListFilter is the provider list query. Category is required and matched exactly.
type ListFilter struct {
	Category     string  `form:"category" binding:"required"`
	MinRating    float64 `form:"minRating" binding:"omitempty,gte=0,lte=5"`
	Price        string  `form:"price" binding:"omitempty,oneof=all under50 50-100 over100"`
	Distance     string  `form:"distance" binding:"omitempty,oneof=all 1 2 5"`
	Availability string  `form:"availability" binding:"omitempty,oneof=all now today tomorrow"`
	Search       string  `form:"search" binding:"max=100"`
	Sort         string  `form:"sort" binding:"omitempty,oneof=default rating price distance"`
}

// View is a provider with its derived, never stored, fields.
type View struct {
	domain.Provider
	// Distance is in miles and absent when the provider has no coordinate.
	Distance *float64        `json:"distance,omitempty"`
	Rating   review.Aggregate `json:"rating"`
}

// AdminListQuery orders the admin table.
type AdminListQuery struct {
	SortBy string `form:"sortBy" binding:"omitempty,oneof=name category rating completedJobs status"`
	Order  string `form:"order" binding:"omitempty,oneof=asc desc"`
}

// CreateProviderRequest is the payload for a new provider. Photo may be an inline data URL.
type CreateProviderRequest struct {
	Name           string   `json:"name" binding:"required,max=120"`
	Category       string   `json:"category" binding:"required"`
	Phone          string   `json:"phone" binding:"required,max=32"`
	WhatsApp       string   `json:"whatsapp" binding:"max=32"`
	PriceValue     float64  `json:"priceValue" binding:"gte=0"`
	Bio            string   `json:"bio" binding:"max=2000"`
	Experience     string   `json:"experience" binding:"max=60"`
	Specialties    []string `json:"specialties"`
	Certifications []string `json:"certifications"`
	Latitude       *float64 `json:"latitude" binding:"omitempty,latitude"`
	Longitude      *float64 `json:"longitude" binding:"omitempty,longitude"`
	Photo          string   `json:"photo" binding:"required"`
	Status         string   `json:"status" binding:"omitempty,oneof=active inactive pending"`
}

// UpdateProviderRequest replaces the editable fields of a provider.
type UpdateProviderRequest struct {
	Name           string                 `json:"name" binding:"required,max=120"`
	Category       string                 `json:"category" binding:"required"`
	Phone          string                 `json:"phone" binding:"required,max=32"`
	WhatsApp       string                 `json:"whatsapp" binding:"max=32"`
	PriceValue     float64                `json:"priceValue" binding:"gte=0"`
	Bio            string                 `json:"bio" binding:"max=2000"`
	Experience     string                 `json:"experience" binding:"max=60"`
	Specialties    []string               `json:"specialties"`
	Certifications []string               `json:"certifications"`
	Languages      []string               `json:"languages"`
	CompletedJobs  int                    `json:"completedJobs" binding:"gte=0"`
	ResponseTime   string                 `json:"responseTime" binding:"max=40"`
	Status         domain.ProviderStatus  `json:"status" binding:"required,oneof=active inactive pending"`
	Availability   domain.Availability    `json:"availability" binding:"required,oneof=now today tomorrow"`
	Latitude       *float64               `json:"latitude" binding:"omitempty,latitude"`
	Longitude      *float64               `json:"longitude" binding:"omitempty,longitude"`
	Photo          domain.Photo           `json:"photo"`
	Portfolio      []domain.PortfolioItem `json:"portfolio"`
}

// BulkIDsRequest selects providers for a bulk action.
type BulkIDsRequest struct {
	IDs []int64 `json:"ids" binding:"required,min=1"`
}

// BulkStatusRequest sets one status on many providers.
type BulkStatusRequest struct {
	IDs    []int64               `json:"ids" binding:"required,min=1"`
	Status domain.ProviderStatus `json:"status" binding:"required,oneof=active inactive pending"`
}

// ContactLink is a WhatsApp deep link to a provider.
type ContactLink struct {
	URL     string `json:"url"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// LocationResponse reports the coordinate used for distances.
type LocationResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Fallback  bool    `json:"fallback"`
}
