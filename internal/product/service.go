package product

import (
	"context"
	"fmt"
	"strings"

	"lsers_hub_backend/internal/assets"
	"lsers_hub_backend/internal/common"
	"lsers_hub_backend/internal/domain"
	"lsers_hub_backend/internal/provider"
	"lsers_hub_backend/internal/store"

	"go.uber.org/zap"
)

// Service defines marketplace operations.
type Service interface {
	// Add lists an item for seller. Seller id and name are copied onto the product.
	Add(ctx context.Context, deviceID string, seller common.Session, req CreateProductRequest) (*domain.Product, error)
	List(ctx context.Context, deviceID string, q ListQuery) []domain.Product
	Get(ctx context.Context, deviceID string, id int64) (*domain.Product, error)
	WhatsAppInquiry(ctx context.Context, deviceID string, id int64) (*Inquiry, error)
	ChatTarget(ctx context.Context, deviceID string, id int64) (*ChatTarget, error)
}

type service struct {
	stores *store.Manager
	assets assets.Service
	logger *zap.Logger
}

// NewService creates a new marketplace service.
func NewService(stores *store.Manager, assetService assets.Service, logger *zap.Logger) Service {
	return &service{stores: stores, assets: assetService, logger: logger.Named("product")}
}

func (s *service) Add(ctx context.Context, deviceID string, seller common.Session, req CreateProductRequest) (*domain.Product, error) {
	if !req.Condition.Valid() {
		return nil, common.NewValidationAPIError(map[string]string{"Condition": "The condition field is not a known condition."})
	}
	st := s.stores.For(deviceID)
	p := domain.Product{
		ID:          st.NextID(),
		Title:       strings.TrimSpace(req.Title),
		Price:       req.Price,
		Description: req.Description,
		SellerID:    seller.UserID,
		SellerName:  seller.UserName,
		SellerPhone: req.SellerPhone,
		Photos:      domain.ParsePhotos(req.Photos),
		Location:    req.Location,
		Condition:   req.Condition,
	}
	p = s.assets.MigrateProduct(ctx, deviceID, p)

	st.Products.Prepend(ctx, p)
	s.logger.Info("Product listed", zap.String("device_id", deviceID), zap.Int64("product_id", p.ID), zap.Int64("seller_id", p.SellerID))
	return &p, nil
}

func (s *service) List(ctx context.Context, deviceID string, q ListQuery) []domain.Product {
	query := strings.ToLower(strings.TrimSpace(q.Search))
	out := []domain.Product{}
	for _, p := range s.stores.For(deviceID).Products.All(ctx) {
		if q.Condition != "" && string(p.Condition) != q.Condition {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(p.Title), query) &&
			!strings.Contains(strings.ToLower(p.Description), query) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func (s *service) Get(ctx context.Context, deviceID string, id int64) (*domain.Product, error) {
	p, ok := s.stores.For(deviceID).Products.Find(ctx, func(p domain.Product) bool { return p.ID == id })
	if !ok {
		return nil, common.ErrNotFound.WithDetails("Product not found.")
	}
	return &p, nil
}

func (s *service) WhatsAppInquiry(ctx context.Context, deviceID string, id int64) (*Inquiry, error) {
	p, err := s.Get(ctx, deviceID, id)
	if err != nil {
		return nil, err
	}
	msg := fmt.Sprintf("Hi %s, I'm interested in your item \"%s\" on LSERS Marketplace.", p.SellerName, p.Title)
	return &Inquiry{URL: provider.WhatsAppLink(p.SellerPhone, msg), Message: msg}, nil
}

func (s *service) ChatTarget(ctx context.Context, deviceID string, id int64) (*ChatTarget, error) {
	p, err := s.Get(ctx, deviceID, id)
	if err != nil {
		return nil, err
	}
	prov, ok := s.stores.For(deviceID).Providers.Find(ctx, func(pr domain.Provider) bool { return pr.ID == p.SellerID })
	if !ok {
		return &ChatTarget{Notice: fmt.Sprintf("Direct chat with %s is limited. Use WhatsApp.", p.SellerName)}, nil
	}
	return &ChatTarget{Available: true, Provider: &prov}, nil
}
