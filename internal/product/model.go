package product

import "lsers_hub_backend/internal/domain"

// CreateProductRequest is a new marketplace listing. Photos may be inline data URLs.
type CreateProductRequest struct {
	Title       string                  `json:"title" binding:"required,max=120"`
	Price       float64                 `json:"price" binding:"gte=0"`
	Description string                  `json:"description" binding:"max=4000"`
	SellerPhone string                  `json:"sellerPhone" binding:"required,max=32"`
	Photos      []string                `json:"photos" binding:"required,min=1,max=8"`
	Location    string                  `json:"location" binding:"required,max=120"`
	Condition   domain.ProductCondition `json:"condition" binding:"required,oneof=New 'Used - Like New' 'Used - Good' 'Used - Fair'"`
}

// ListQuery filters the marketplace.
type ListQuery struct {
	Search    string `form:"search" binding:"max=100"`
	Condition string `form:"condition"`
}

// Inquiry is a WhatsApp deep link to a seller.
type Inquiry struct {
	URL     string `json:"url"`
	Message string `json:"message"`
}

// ChatTarget tells the client whether a seller can be chatted with in-app.
type ChatTarget struct {
	Available bool             `json:"available"`
	Provider  *domain.Provider `json:"provider,omitempty"`
	Notice    string           `json:"notice,omitempty"`
}
