package store

import (
	"context"
	"fmt"
	"maps"
	"sync"
	"time"

	"lsers_hub_backend/internal/domain"
	"lsers_hub_backend/internal/platform/geo"
	"lsers_hub_backend/internal/platform/kv"

	"go.uber.org/zap"
)

// Durable slot names within a device namespace.
const (
	KeyProviders      = "providers"
	KeyReviews        = "reviews"
	KeyProducts       = "products"
	KeyUsers          = "users"
	KeyPoints         = "points"
	KeyChatHistories  = "chat-histories"
	KeyAssetFolder    = "asset-folder"
	KeySiteContent    = "site-content"
	KeyTheme          = "theme"
	KeyPin            = "pin"
	KeyUserName       = "user-name"
	KeyUserRegistry   = "user-registry"
	KeyBookingHistory = "booking-history"
	KeyUserLocation   = "user-location"
	favoritesPrefix   = "favorites-u"
)

// ChatHistories maps a chat id to its thread.
type ChatHistories map[string][]domain.ChatMessage

// AssetFolder maps an asset id to its data URL payload.
type AssetFolder map[string]string

// Store is the complete persisted state of one device.
type Store struct {
	backend kv.Backend
	logger  *zap.Logger
	ids     *IDGenerator

	Providers      *Collection[domain.Provider]
	Reviews        *Collection[domain.Review]
	Products       *Collection[domain.Product]
	Users          *Collection[domain.User]
	BookingHistory *Collection[domain.BookingHistoryItem]

	Points        *Slot[int]
	ChatHistories *Slot[ChatHistories]
	AssetFolder   *Slot[AssetFolder]
	SiteContent   *Slot[domain.SiteContent]
	Theme         *Slot[domain.Theme]
	// Pin holds the bcrypt hash of the device PIN; empty means none is set.
	Pin          *Slot[string]
	UserName     *Slot[string]
	UserRegistry *Collection[domain.RegisteredUser]
	UserLocation *Slot[*geo.Point]

	favMu     sync.Mutex
	favorites map[int64]*Collection[domain.FavoriteItem]
}

// New wires every slot of a device namespace. Nothing is read until first use.
func New(backend kv.Backend, ids *IDGenerator, now func() time.Time, logger *zap.Logger) *Store {
	if now == nil {
		now = time.Now
	}
	s := &Store{
		backend:   backend,
		logger:    logger,
		ids:       ids,
		favorites: make(map[int64]*Collection[domain.FavoriteItem]),
	}

	s.Providers = NewCollection(backend, KeyProviders, DefaultProviders, logger)
	s.Reviews = NewCollection(backend, KeyReviews, func() []domain.Review { return DefaultReviews(now()) }, logger)
	s.Products = NewCollection(backend, KeyProducts, DefaultProducts, logger)
	s.Users = NewCollection(backend, KeyUsers, DefaultUsers, logger)
	s.BookingHistory = NewCollection(backend, KeyBookingHistory, DefaultBookingHistory, logger)
	s.UserRegistry = NewCollection(backend, KeyUserRegistry, func() []domain.RegisteredUser { return []domain.RegisteredUser{} }, logger)

	s.Points = NewSlot(backend, KeyPoints, func() int { return DefaultPoints }, logger)
	s.ChatHistories = NewSlot(backend, KeyChatHistories, func() ChatHistories { return ChatHistories{} }, logger)
	s.AssetFolder = NewSlot(backend, KeyAssetFolder, func() AssetFolder { return AssetFolder{} }, logger,
		WithCloner(func(f AssetFolder) AssetFolder {
			if f == nil {
				return AssetFolder{}
			}
			return maps.Clone(f)
		}))
	s.SiteContent = NewSlot(backend, KeySiteContent, DefaultSiteContent, logger)
	s.Theme = NewSlot(backend, KeyTheme, func() domain.Theme { return domain.ThemeLight }, logger)

	s.Pin = NewSlot(backend, KeyPin, func() string { return "" }, logger, WithoutSeedWriteBack[string]())
	s.UserName = NewSlot(backend, KeyUserName, func() string { return "" }, logger, WithoutSeedWriteBack[string]())
	s.UserLocation = NewSlot(backend, KeyUserLocation, func() *geo.Point { return nil }, logger, WithoutSeedWriteBack[*geo.Point]())
	return s
}

// NextID returns a fresh entity id.
func (s *Store) NextID() int64 { return s.ids.Next() }

// Favorites returns the favorites set of one user, creating its slot handle on first use.
func (s *Store) Favorites(userID int64) *Collection[domain.FavoriteItem] {
	s.favMu.Lock()
	defer s.favMu.Unlock()

	c, ok := s.favorites[userID]
	if !ok {
		c = NewCollection(s.backend, fmt.Sprintf("%s%d", favoritesPrefix, userID),
			func() []domain.FavoriteItem { return []domain.FavoriteItem{} }, s.logger)
		s.favorites[userID] = c
	}
	return c
}

// ClearCredentials removes the stored PIN and user name.
func (s *Store) ClearCredentials(ctx context.Context) {
	s.Pin.Save(ctx, "")
	s.UserName.Save(ctx, "")
}
