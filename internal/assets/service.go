// Package assets moves inline image payloads out of entity records into the
// per-device asset folder and resolves references back to displayable data.
package assets

import (
	"context"
	"strings"
	"time"

	"lsers_hub_backend/internal/common"
	"lsers_hub_backend/internal/domain"
	"lsers_hub_backend/internal/store"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

// IDPrefix marks an asset folder reference.
const IDPrefix = "asset_"

// Service manages the asset folder of each device.
type Service interface {
	// Store saves payload and returns its new asset id.
	Store(ctx context.Context, deviceID, payload string) string
	// Resolve returns the payload for a known asset id and echoes anything else unchanged.
	Resolve(ctx context.Context, deviceID, ref string) string
	// Get returns the payload of an asset id, or ErrNotFound.
	Get(ctx context.Context, deviceID, id string) (string, error)
	MigratePhoto(ctx context.Context, deviceID string, p domain.Photo) domain.Photo
	MigrateProvider(ctx context.Context, deviceID string, p domain.Provider) domain.Provider
	MigrateProduct(ctx context.Context, deviceID string, p domain.Product) domain.Product
	// Sweep deletes assets no provider, portfolio item or product refers to.
	// Assets younger than grace are kept so that fresh uploads survive until they are attached.
	Sweep(ctx context.Context, deviceID string, grace time.Duration) int
}

type service struct {
	stores *store.Manager
	logger *zap.Logger
	now    func() time.Time
}

// NewService creates a new asset folder service.
func NewService(stores *store.Manager, logger *zap.Logger) Service {
	return &service{stores: stores, logger: logger.Named("assets"), now: time.Now}
}

func (s *service) Store(ctx context.Context, deviceID, payload string) string {
	id := IDPrefix + ulid.MustNew(ulid.Timestamp(s.now()), ulid.DefaultEntropy()).String()
	_, _ = s.stores.For(deviceID).AssetFolder.Update(ctx, func(f store.AssetFolder) (store.AssetFolder, error) {
		f[id] = payload
		return f, nil
	})
	s.logger.Debug("Asset stored", zap.String("device_id", deviceID), zap.String("asset_id", id), zap.Int("bytes", len(payload)))
	return id
}

func (s *service) Resolve(ctx context.Context, deviceID, ref string) string {
	if !strings.HasPrefix(ref, IDPrefix) {
		return ref
	}
	if payload, ok := s.stores.For(deviceID).AssetFolder.Get(ctx)[ref]; ok {
		return payload
	}
	return ref
}

func (s *service) Get(ctx context.Context, deviceID, id string) (string, error) {
	payload, ok := s.stores.For(deviceID).AssetFolder.Get(ctx)[id]
	if !ok {
		return "", common.ErrNotFound.WithDetails("Asset not found.")
	}
	return payload, nil
}

func (s *service) MigratePhoto(ctx context.Context, deviceID string, p domain.Photo) domain.Photo {
	if !p.IsInline() {
		return p
	}
	return domain.RefPhoto(s.Store(ctx, deviceID, p.Value))
}

func (s *service) MigrateProvider(ctx context.Context, deviceID string, p domain.Provider) domain.Provider {
	p.Photo = s.MigratePhoto(ctx, deviceID, p.Photo)
	for i := range p.Portfolio {
		p.Portfolio[i].Photo = s.MigratePhoto(ctx, deviceID, p.Portfolio[i].Photo)
	}
	return p
}

func (s *service) MigrateProduct(ctx context.Context, deviceID string, p domain.Product) domain.Product {
	for i := range p.Photos {
		p.Photos[i] = s.MigratePhoto(ctx, deviceID, p.Photos[i])
	}
	return p
}

func (s *service) Sweep(ctx context.Context, deviceID string, grace time.Duration) int {
	st := s.stores.For(deviceID)

	referenced := make(map[string]struct{})
	for _, p := range st.Providers.All(ctx) {
		referenced[p.Photo.Value] = struct{}{}
		for _, item := range p.Portfolio {
			referenced[item.Photo.Value] = struct{}{}
		}
	}
	for _, p := range st.Products.All(ctx) {
		for _, photo := range p.Photos {
			referenced[photo.Value] = struct{}{}
		}
	}

	cutoff := s.now().Add(-grace)
	removed := 0
	_, _ = st.AssetFolder.Update(ctx, func(f store.AssetFolder) (store.AssetFolder, error) {
		for id := range f {
			if _, ok := referenced[id]; ok {
				continue
			}
			if created, ok := createdAt(id); ok && created.After(cutoff) {
				continue
			}
			delete(f, id)
			removed++
		}
		return f, nil
	})
	if removed > 0 {
		s.logger.Info("Swept orphan assets", zap.String("device_id", deviceID), zap.Int("removed", removed))
	}
	return removed
}

// createdAt reads the timestamp embedded in an asset id.
func createdAt(id string) (time.Time, bool) {
	u, err := ulid.Parse(strings.TrimPrefix(id, IDPrefix))
	if err != nil {
		return time.Time{}, false
	}
	return ulid.Time(u.Time()), true
}
