// Package sitecontent serves the admin-editable landing copy and the theme preference.
package sitecontent

import (
	"context"

	"lsers_hub_backend/internal/common"
	"lsers_hub_backend/internal/domain"
	"lsers_hub_backend/internal/store"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type Service interface {
	Get(ctx context.Context, deviceID string) domain.SiteContent
	Update(ctx context.Context, deviceID string, content domain.SiteContent) (domain.SiteContent, error)
	Theme(ctx context.Context, deviceID string) domain.Theme
	ToggleTheme(ctx context.Context, deviceID string) domain.Theme
}

type service struct {
	stores   *store.Manager
	validate *validator.Validate
	logger   *zap.Logger
}

func NewService(stores *store.Manager, logger *zap.Logger) Service {
	return &service{stores: stores, validate: validator.New(), logger: logger.Named("sitecontent")}
}

func (s *service) Get(ctx context.Context, deviceID string) domain.SiteContent {
	return s.stores.For(deviceID).SiteContent.Get(ctx)
}

// contentRules are the fields the landing page cannot render without.
type contentRules struct {
	Tagline       string `validate:"required,max=500"`
	CopyrightYear string `validate:"required,numeric,len=4"`
	ProsValue     string `validate:"required"`
	ClientsValue  string `validate:"required"`
}

func (s *service) Update(ctx context.Context, deviceID string, content domain.SiteContent) (domain.SiteContent, error) {
	rules := contentRules{
		Tagline:       content.Tagline,
		CopyrightYear: content.CopyrightYear,
		ProsValue:     content.Stats.Pros.Value,
		ClientsValue:  content.Stats.Clients.Value,
	}
	if err := s.validate.Struct(rules); err != nil {
		if ve, ok := err.(validator.ValidationErrors); ok {
			return domain.SiteContent{}, common.NewValidationAPIError(common.FormatValidationErrors(ve))
		}
		return domain.SiteContent{}, common.ErrBadRequest.WithDetails(err.Error())
	}
	s.stores.For(deviceID).SiteContent.Save(ctx, content)
	s.logger.Info("Site content updated", zap.String("device_id", deviceID))
	return content, nil
}

func (s *service) Theme(ctx context.Context, deviceID string) domain.Theme {
	t := s.stores.For(deviceID).Theme.Get(ctx)
	if t != domain.ThemeDark {
		return domain.ThemeLight
	}
	return t
}

func (s *service) ToggleTheme(ctx context.Context, deviceID string) domain.Theme {
	next, _ := s.stores.For(deviceID).Theme.Update(ctx, func(cur domain.Theme) (domain.Theme, error) {
		if cur == domain.ThemeDark {
			return domain.ThemeLight, nil
		}
		return domain.ThemeDark, nil
	})
	return next
}
