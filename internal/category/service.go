package category

import (
	"context"
	"strings"

	"github.com/gosimple/slug"
	"go.uber.org/zap"
)

// Service exposes the service catalog.
type Service interface {
	GetAll(ctx context.Context, query ListQuery) []ServiceCategory
	// Get accepts a catalog id or any free-text spelling of one ("Computer Repair", "computer_repair").
	Get(ctx context.Context, idOrName string) (*ServiceCategory, error)
	// Normalize maps free text onto a catalog id, reporting whether it exists.
	Normalize(ctx context.Context, raw string) (string, bool)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates a new category service.
func NewService(repo Repository, logger *zap.Logger) Service {
	return &service{repo: repo, logger: logger.Named("category")}
}

func (s *service) GetAll(ctx context.Context, query ListQuery) []ServiceCategory {
	all := s.repo.FindAll(ctx)
	if query.Group == "" {
		return all
	}
	filtered := all[:0]
	for _, c := range all {
		if c.Group == query.Group {
			filtered = append(filtered, c)
		}
	}
	return filtered
}

func (s *service) Get(ctx context.Context, idOrName string) (*ServiceCategory, error) {
	if c, err := s.repo.FindByID(ctx, idOrName); err == nil {
		return c, nil
	}
	return s.repo.FindByID(ctx, toSlug(idOrName))
}

func (s *service) Normalize(ctx context.Context, raw string) (string, bool) {
	id := toSlug(raw)
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		s.logger.Debug("Unknown category", zap.String("input", raw), zap.String("slug", id))
		return id, false
	}
	return id, true
}

func toSlug(raw string) string {
	// slug keeps underscores; catalog ids only use dashes.
	return slug.Make(strings.ReplaceAll(strings.TrimSpace(raw), "_", " "))
}
