package product

import (
	"context"
	"strings"
	"testing"

	"lsers_hub_backend/internal/assets"
	"lsers_hub_backend/internal/common"
	"lsers_hub_backend/internal/domain"
	"lsers_hub_backend/internal/platform/kv"
	"lsers_hub_backend/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService() (Service, *store.Manager) {
	stores := store.NewManager(kv.NewMemoryBackend(), zap.NewNop())
	return NewService(stores, assets.NewService(stores, zap.NewNop()), zap.NewNop()), stores
}

func TestAddCopiesSellerAndMigratesPhotos(t *testing.T) {
	ctx := context.Background()
	svc, stores := newTestService()
	seller := common.Session{DeviceID: "d", Unlocked: true, UserID: 1, UserName: "Test User"}

	p, err := svc.Add(ctx, "d", seller, CreateProductRequest{
		Title: "Generator", Price: 300, SellerPhone: "+231 77 000 0000", Location: "Sinkor",
		Condition: domain.ConditionUsedFair,
		Photos:    []string{"data:image/png;base64,AAAA", "https://images.example.com/g.jpg"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.SellerID)
	assert.Equal(t, "Test User", p.SellerName)
	assert.True(t, strings.HasPrefix(p.Photos[0].Value, assets.IDPrefix))
	assert.Equal(t, "https://images.example.com/g.jpg", p.Photos[1].Value)

	all := stores.For("d").Products.All(ctx)
	assert.Equal(t, p.ID, all[0].ID)
	assert.Len(t, all, 5)
}

func TestAddRejectsUnknownCondition(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.Add(context.Background(), "d", common.Session{}, CreateProductRequest{Title: "x", Condition: "Broken"})
	assert.Error(t, err)
}

func TestWhatsAppInquiry(t *testing.T) {
	svc, _ := newTestService()
	inq, err := svc.WhatsAppInquiry(context.Background(), "d", 1)
	require.NoError(t, err)
	assert.Equal(t, `Hi John Doe, I'm interested in your item "Slightly Used iPhone 13 Pro" on LSERS Marketplace.`, inq.Message)
	assert.True(t, strings.HasPrefix(inq.URL, "https://wa.me/231776966080?text="))
}

func TestChatTarget(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	// Seller 2 is also provider 2 in the seeded data.
	target, err := svc.ChatTarget(ctx, "d", 1)
	require.NoError(t, err)
	assert.True(t, target.Available)
	assert.Equal(t, int64(2), target.Provider.ID)

	_, err = svc.ChatTarget(ctx, "d", 12345)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestChatTargetLimitedWhenSellerIsNotAProvider(t *testing.T) {
	ctx := context.Background()
	svc, stores := newTestService()
	_, err := stores.For("d").Products.Update(ctx, func(ps []domain.Product) ([]domain.Product, error) {
		ps[0].SellerID = 424242
		return ps, nil
	})
	require.NoError(t, err)

	target, err := svc.ChatTarget(ctx, "d", 1)
	require.NoError(t, err)
	assert.False(t, target.Available)
	assert.Equal(t, "Direct chat with John Doe is limited. Use WhatsApp.", target.Notice)
}

func TestListFilters(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	assert.Len(t, svc.List(ctx, "d", ListQuery{}), 4)
	assert.Len(t, svc.List(ctx, "d", ListQuery{Condition: "New"}), 2)
	got := svc.List(ctx, "d", ListQuery{Search: "toyota"})
	require.Len(t, got, 1)
	assert.Equal(t, int64(3), got[0].ID)
}
