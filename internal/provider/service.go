package provider

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"slices"
	"strings"

	"lsers_hub_backend/internal/assets"
	"lsers_hub_backend/internal/category"
	"lsers_hub_backend/internal/common"
	"lsers_hub_backend/internal/config"
	"lsers_hub_backend/internal/domain"
	"lsers_hub_backend/internal/platform/geo"
	"lsers_hub_backend/internal/review"
	"lsers_hub_backend/internal/store"

	"go.uber.org/zap"
)

var nonDigits = regexp.MustCompile(`\D`)

// DigitsOnly strips every non-digit from a phone number.
func DigitsOnly(phone string) string {
	return nonDigits.ReplaceAllString(phone, "")
}

// WhatsAppLink builds a wa.me deep link with a pre-filled message.
func WhatsAppLink(phone, message string) string {
	// Spaces go out as %20 rather than '+', matching what browsers send.
	text := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
	return fmt.Sprintf("https://wa.me/%s?text=%s", DigitsOnly(phone), text)
}

// Service defines provider operations.
type Service interface {
	List(ctx context.Context, deviceID string, f ListFilter) ([]View, error)
	Get(ctx context.Context, deviceID string, id int64) (*View, error)
	Add(ctx context.Context, deviceID string, req CreateProviderRequest) (*domain.Provider, error)
	Update(ctx context.Context, deviceID string, id int64, req UpdateProviderRequest) (*domain.Provider, error)
	Delete(ctx context.Context, deviceID string, id int64) error
	BulkDelete(ctx context.Context, deviceID string, ids []int64) int
	BulkSetStatus(ctx context.Context, deviceID string, ids []int64, status domain.ProviderStatus) int
	AdminList(ctx context.Context, deviceID string, q AdminListQuery) []View
	ContactLink(ctx context.Context, deviceID string, id int64) (*ContactLink, error)

	// UserLocation returns the reported coordinate, or the fallback and true.
	UserLocation(ctx context.Context, deviceID string) (geo.Point, bool)
	SetLocation(ctx context.Context, deviceID string, p geo.Point)
	ClearLocation(ctx context.Context, deviceID string)
}

type service struct {
	stores     *store.Manager
	assets     assets.Service
	categories category.Service
	reviews    review.Service
	fallback   geo.Point
	logger     *zap.Logger
}

// NewService creates a new provider service.
func NewService(
	stores *store.Manager,
	assetService assets.Service,
	categories category.Service,
	reviews review.Service,
	cfg *config.Config,
	logger *zap.Logger,
) Service {
	return &service{
		stores:     stores,
		assets:     assetService,
		categories: categories,
		reviews:    reviews,
		fallback:   geo.Point{Lat: cfg.DefaultLatitude, Lon: cfg.DefaultLongitude},
		logger:     logger.Named("provider"),
	}
}

func (s *service) views(ctx context.Context, deviceID string) []View {
	user, _ := s.UserLocation(ctx, deviceID)
	return BuildViews(
		s.stores.For(deviceID).Providers.All(ctx),
		s.reviews.Aggregates(ctx, deviceID),
		user,
	)
}

func (s *service) List(ctx context.Context, deviceID string, f ListFilter) ([]View, error) {
	id, ok := s.categories.Normalize(ctx, f.Category)
	if !ok {
		return nil, common.ErrNotFound.WithDetails("Category not found.")
	}
	f.Category = id

	views := Filter(s.views(ctx, deviceID), f)
	Sort(views, f.Sort)
	return views, nil
}

func (s *service) Get(ctx context.Context, deviceID string, id int64) (*View, error) {
	for _, v := range s.views(ctx, deviceID) {
		if v.ID == id {
			return &v, nil
		}
	}
	return nil, common.ErrNotFound.WithDetails("Provider not found.")
}

func (s *service) Add(ctx context.Context, deviceID string, req CreateProviderRequest) (*domain.Provider, error) {
	categoryID, ok := s.categories.Normalize(ctx, req.Category)
	if !ok {
		return nil, common.NewValidationAPIError(map[string]string{"Category": "The category field must be a known service category."})
	}
	status := domain.ProviderStatus(req.Status)
	if status == "" {
		status = domain.ProviderActive
	}

	st := s.stores.For(deviceID)
	p := domain.Provider{
		ID:             st.NextID(),
		Name:           strings.TrimSpace(req.Name),
		Category:       categoryID,
		Phone:          req.Phone,
		WhatsApp:       req.WhatsApp,
		PriceValue:     req.PriceValue,
		Bio:            req.Bio,
		Experience:     req.Experience,
		Specialties:    nonNil(req.Specialties),
		Certifications: nonNil(req.Certifications),
		Languages:      []string{"English"},
		CompletedJobs:  0,
		ResponseTime:   "Quick",
		Status:         status,
		Availability:   domain.AvailableNow,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		Portfolio:      []domain.PortfolioItem{},
	}
	// A new provider's photo always goes to the asset folder, even a hosted URL.
	photo := domain.ParsePhoto(req.Photo)
	p.Photo = domain.RefPhoto(s.assets.Store(ctx, deviceID, photo.Value))

	st.Providers.Prepend(ctx, p)
	s.logger.Info("Provider added", zap.String("device_id", deviceID), zap.Int64("provider_id", p.ID), zap.String("category", p.Category))
	return &p, nil
}

func (s *service) Update(ctx context.Context, deviceID string, id int64, req UpdateProviderRequest) (*domain.Provider, error) {
	categoryID, ok := s.categories.Normalize(ctx, req.Category)
	if !ok {
		return nil, common.NewValidationAPIError(map[string]string{"Category": "The category field must be a known service category."})
	}

	next := domain.Provider{
		ID:             id,
		Name:           strings.TrimSpace(req.Name),
		Category:       categoryID,
		Phone:          req.Phone,
		WhatsApp:       req.WhatsApp,
		PriceValue:     req.PriceValue,
		Bio:            req.Bio,
		Experience:     req.Experience,
		Specialties:    nonNil(req.Specialties),
		Certifications: nonNil(req.Certifications),
		Languages:      nonNil(req.Languages),
		CompletedJobs:  req.CompletedJobs,
		ResponseTime:   req.ResponseTime,
		Status:         req.Status,
		Availability:   req.Availability,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		Photo:          req.Photo,
		Portfolio:      req.Portfolio,
	}
	if next.Portfolio == nil {
		next.Portfolio = []domain.PortfolioItem{}
	}

	st := s.stores.For(deviceID)
	if _, found := st.Providers.Find(ctx, func(p domain.Provider) bool { return p.ID == id }); !found {
		return nil, common.ErrNotFound.WithDetails("Provider not found.")
	}
	next = s.assets.MigrateProvider(ctx, deviceID, next)

	_, err := st.Providers.Update(ctx, func(all []domain.Provider) ([]domain.Provider, error) {
		for i := range all {
			if all[i].ID == id {
				all[i] = next
				return all, nil
			}
		}
		return nil, common.ErrNotFound.WithDetails("Provider not found.")
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("Provider updated", zap.String("device_id", deviceID), zap.Int64("provider_id", id))
	return &next, nil
}

func (s *service) Delete(ctx context.Context, deviceID string, id int64) error {
	if s.BulkDelete(ctx, deviceID, []int64{id}) == 0 {
		return common.ErrNotFound.WithDetails("Provider not found.")
	}
	return nil
}

func (s *service) BulkDelete(ctx context.Context, deviceID string, ids []int64) int {
	removed := 0
	_, _ = s.stores.For(deviceID).Providers.Update(ctx, func(all []domain.Provider) ([]domain.Provider, error) {
		kept := all[:0]
		for _, p := range all {
			if slices.Contains(ids, p.ID) {
				removed++
				continue
			}
			kept = append(kept, p)
		}
		return kept, nil
	})
	if removed > 0 {
		s.logger.Info("Providers deleted", zap.String("device_id", deviceID), zap.Int("count", removed))
	}
	return removed
}

func (s *service) BulkSetStatus(ctx context.Context, deviceID string, ids []int64, status domain.ProviderStatus) int {
	changed := 0
	_, _ = s.stores.For(deviceID).Providers.Update(ctx, func(all []domain.Provider) ([]domain.Provider, error) {
		for i := range all {
			if slices.Contains(ids, all[i].ID) {
				all[i].Status = status
				changed++
			}
		}
		return all, nil
	})
	return changed
}

func (s *service) AdminList(ctx context.Context, deviceID string, q AdminListQuery) []View {
	views := s.views(ctx, deviceID)
	SortAdmin(views, q.SortBy, q.Order)
	return views
}

func (s *service) ContactLink(ctx context.Context, deviceID string, id int64) (*ContactLink, error) {
	p, ok := s.stores.For(deviceID).Providers.Find(ctx, func(p domain.Provider) bool { return p.ID == id })
	if !ok {
		return nil, common.ErrNotFound.WithDetails("Provider not found.")
	}
	phone := p.WhatsApp
	if phone == "" {
		phone = p.Phone
	}
	msg := fmt.Sprintf("Hi %s, I found your profile on LSERS Professional Services and I'm interested in your services. Are you available?", p.Name)
	return &ContactLink{URL: WhatsAppLink(phone, msg), Phone: DigitsOnly(phone), Message: msg}, nil
}

func (s *service) UserLocation(ctx context.Context, deviceID string) (geo.Point, bool) {
	if p := s.stores.For(deviceID).UserLocation.Get(ctx); p != nil {
		return *p, false
	}
	return s.fallback, true
}

func (s *service) SetLocation(ctx context.Context, deviceID string, p geo.Point) {
	s.stores.For(deviceID).UserLocation.Save(ctx, &p)
}

func (s *service) ClearLocation(ctx context.Context, deviceID string) {
	s.stores.For(deviceID).UserLocation.Save(ctx, nil)
	s.logger.Debug("Location permission denied, using fallback", zap.String("device_id", deviceID))
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
