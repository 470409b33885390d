package user

import (
	"context"
	"strings"
	"unicode"

	"lsers_hub_backend/internal/config"
	"lsers_hub_backend/internal/domain"

	"go.uber.org/zap"
)

const emailDomain = "@lsers.pro"

// Service defines the user operations.
type Service interface {
	// AttachOnUnlock finds the user with exactly this name or creates one, and resolves its role.
	AttachOnUnlock(ctx context.Context, deviceID, name string) (*domain.User, error)
	GetUserByID(ctx context.Context, deviceID string, id int64) (*domain.User, error)
	// UpdateProfile renames a user. Names copied onto reviews and products are left as they were.
	UpdateProfile(ctx context.Context, deviceID string, id int64, name string) (*domain.User, error)
}

type service struct {
	repo        Repository
	legacyAdmin bool
	logger      *zap.Logger
}

// NewService creates a new user service.
func NewService(repo Repository, cfg *config.Config, logger *zap.Logger) Service {
	return &service{repo: repo, legacyAdmin: cfg.LegacyAdminNameMatch, logger: logger.Named("user")}
}

func (s *service) AttachOnUnlock(ctx context.Context, deviceID, name string) (*domain.User, error) {
	u, err := s.repo.FindByName(ctx, deviceID, name)
	if err != nil {
		created := domain.User{
			ID:    s.repo.NextID(deviceID),
			Name:  name,
			Email: emailFromName(name),
			Role:  domain.RoleUser,
		}
		if err := s.repo.Create(ctx, deviceID, created); err != nil {
			return nil, err
		}
		s.logger.Info("User created on unlock", zap.String("device_id", deviceID), zap.Int64("user_id", created.ID))
		u = &created
	}

	u.Role = s.effectiveRole(*u)
	return u, nil
}

// effectiveRole honors the stored role, elevated by the name convention while it is enabled.
func (s *service) effectiveRole(u domain.User) domain.Role {
	if u.Role == domain.RoleAdmin {
		return domain.RoleAdmin
	}
	if s.legacyAdmin && strings.Contains(strings.ToLower(u.Name), "admin") {
		return domain.RoleAdmin
	}
	return domain.RoleUser
}

func (s *service) GetUserByID(ctx context.Context, deviceID string, id int64) (*domain.User, error) {
	u, err := s.repo.FindByID(ctx, deviceID, id)
	if err != nil {
		return nil, err
	}
	u.Role = s.effectiveRole(*u)
	return u, nil
}

func (s *service) UpdateProfile(ctx context.Context, deviceID string, id int64, name string) (*domain.User, error) {
	u, err := s.repo.Rename(ctx, deviceID, id, strings.TrimSpace(name))
	if err != nil {
		return nil, err
	}
	u.Role = s.effectiveRole(*u)
	s.logger.Info("Profile updated", zap.String("device_id", deviceID), zap.Int64("user_id", id))
	return u, nil
}

func emailFromName(name string) string {
	compact := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToLower(r)
	}, name)
	return compact + emailDomain
}
