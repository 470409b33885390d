package review

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"lsers_hub_backend/internal/common"
	"lsers_hub_backend/internal/domain"
	"lsers_hub_backend/internal/store"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Service manages provider reviews.
type Service interface {
	// Add stores a review by author. Each author may review a provider once.
	Add(ctx context.Context, deviceID string, author common.Session, providerID int64, req CreateReviewRequest) (*domain.Review, error)
	// ForProvider returns the provider's reviews, newest first.
	ForProvider(ctx context.Context, deviceID string, providerID int64) []domain.Review
	Aggregate(ctx context.Context, deviceID string, providerID int64) Aggregate
	// Aggregates computes every provider's aggregate in one pass.
	Aggregates(ctx context.Context, deviceID string) map[int64]Aggregate
}

type service struct {
	stores   *store.Manager
	validate *validator.Validate
	logger   *zap.Logger
	now      func() time.Time
}

// NewService creates a new review service.
func NewService(stores *store.Manager, logger *zap.Logger) Service {
	return &service{
		stores:   stores,
		validate: validator.New(),
		logger:   logger.Named("review"),
		now:      time.Now,
	}
}

func (s *service) Add(ctx context.Context, deviceID string, author common.Session, providerID int64, req CreateReviewRequest) (*domain.Review, error) {
	req.Comment = strings.TrimSpace(req.Comment)
	if err := s.validate.Struct(req); err != nil {
		if ve, ok := err.(validator.ValidationErrors); ok {
			return nil, common.NewValidationAPIError(common.FormatValidationErrors(ve))
		}
		return nil, common.ErrBadRequest.WithDetails(err.Error())
	}

	st := s.stores.For(deviceID)
	if _, ok := st.Providers.Find(ctx, func(p domain.Provider) bool { return p.ID == providerID }); !ok {
		return nil, common.ErrNotFound.WithDetails("Provider not found.")
	}

	r := domain.Review{
		ID:         st.NextID(),
		ProviderID: providerID,
		AuthorID:   author.UserID,
		AuthorName: author.UserName,
		Rating:     req.Rating,
		Comment:    req.Comment,
		Timestamp:  s.now().UnixMilli(),
	}
	_, err := st.Reviews.Update(ctx, func(all []domain.Review) ([]domain.Review, error) {
		for _, existing := range all {
			if existing.AuthorID == r.AuthorID && existing.ProviderID == r.ProviderID {
				return nil, common.ErrConflict.WithDetails("You have already reviewed this provider.")
			}
		}
		return append(all, r), nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Review added",
		zap.String("device_id", deviceID),
		zap.Int64("provider_id", providerID),
		zap.Int64("author_id", author.UserID),
		zap.Int("rating", r.Rating),
	)
	return &r, nil
}

func (s *service) ForProvider(ctx context.Context, deviceID string, providerID int64) []domain.Review {
	out := []domain.Review{}
	for _, r := range s.stores.For(deviceID).Reviews.All(ctx) {
		if r.ProviderID == providerID {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp > out[j].Timestamp })
	return out
}

func (s *service) Aggregate(ctx context.Context, deviceID string, providerID int64) Aggregate {
	return s.Aggregates(ctx, deviceID)[providerID]
}

func (s *service) Aggregates(ctx context.Context, deviceID string) map[int64]Aggregate {
	return Compute(s.stores.For(deviceID).Reviews.All(ctx))
}

// Compute averages ratings per provider. Providers without reviews are absent (zero Aggregate).
func Compute(reviews []domain.Review) map[int64]Aggregate {
	sums := make(map[int64]int)
	out := make(map[int64]Aggregate)
	for _, r := range reviews {
		sums[r.ProviderID] += r.Rating
		a := out[r.ProviderID]
		a.Count++
		out[r.ProviderID] = a
	}
	for id, a := range out {
		a.Average = float64(sums[id]) / float64(a.Count)
		out[id] = a
	}
	return out
}

func (a Aggregate) String() string {
	return fmt.Sprintf("%.1f (%d)", a.Average, a.Count)
}
