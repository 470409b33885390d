package property

import (
	"context"
	"fmt"
	"strings"

	"lsers_hub_backend/internal/domain"
	"lsers_hub_backend/internal/provider"

	"go.uber.org/zap"
)

// ListQuery filters the rental catalog.
type ListQuery struct {
	Search   string  `form:"search"`
	MaxPrice float64 `form:"maxPrice" binding:"omitempty,gte=0"`
}

// View is a listing with its display photo and host contact link.
type View struct {
	domain.Property
	PhotoURL    string `json:"photoUrl"`
	ContactLink string `json:"contactLink"`
}

type Service interface {
	List(ctx context.Context, q ListQuery) []View
	Get(ctx context.Context, id int64) (*View, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger *zap.Logger) Service {
	return &service{repo: repo, logger: logger.Named("property")}
}

func toView(p domain.Property) View {
	msg := fmt.Sprintf("Hi %s, I'm interested in booking your Stay \"%s\" on LSERS.", p.HostName, p.Title)
	return View{
		Property:    p,
		PhotoURL:    fmt.Sprintf("https://images.unsplash.com/photo-%s?w=800&h=600&fit=crop", p.PhotoID),
		ContactLink: provider.WhatsAppLink(p.HostPhone, msg),
	}
}

func (s *service) List(ctx context.Context, q ListQuery) []View {
	needle := strings.ToLower(strings.TrimSpace(q.Search))
	out := []View{}
	for _, p := range s.repo.FindAll(ctx) {
		if q.MaxPrice > 0 && p.PricePerNight > q.MaxPrice {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(p.Title), needle) && !strings.Contains(strings.ToLower(p.Location), needle) {
			continue
		}
		out = append(out, toView(p))
	}
	return out
}

func (s *service) Get(ctx context.Context, id int64) (*View, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	v := toView(*p)
	return &v, nil
}
