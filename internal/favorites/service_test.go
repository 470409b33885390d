package favorites

import (
	"context"
	"testing"

	"lsers_hub_backend/internal/domain"
	"lsers_hub_backend/internal/platform/kv"
	"lsers_hub_backend/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestToggleHasSetSemantics(t *testing.T) {
	ctx := context.Background()
	svc := NewService(store.NewManager(kv.NewMemoryBackend(), zap.NewNop()), zap.NewNop())
	item := domain.FavoriteItem{Type: domain.FavoriteProvider, ID: 1}

	added, items, err := svc.Toggle(ctx, "d", 7, item)
	require.NoError(t, err)
	assert.True(t, added)
	assert.Equal(t, []domain.FavoriteItem{item}, items)

	// The same id under another type is a different member.
	_, items, err = svc.Toggle(ctx, "d", 7, domain.FavoriteItem{Type: domain.FavoriteProduct, ID: 1})
	require.NoError(t, err)
	assert.Len(t, items, 2)

	added, items, err = svc.Toggle(ctx, "d", 7, item)
	require.NoError(t, err)
	assert.False(t, added)
	assert.Len(t, items, 1)

	assert.Empty(t, svc.List(ctx, "d", 8))

	_, _, err = svc.Toggle(ctx, "d", 7, domain.FavoriteItem{Type: "property", ID: 1})
	assert.Error(t, err)
}

func TestResolveSkipsMissing(t *testing.T) {
	ctx := context.Background()
	svc := NewService(store.NewManager(kv.NewMemoryBackend(), zap.NewNop()), zap.NewNop())

	for _, it := range []domain.FavoriteItem{
		{Type: domain.FavoriteProvider, ID: 2},
		{Type: domain.FavoriteProvider, ID: 99999},
		{Type: domain.FavoriteProduct, ID: 3},
	} {
		_, _, err := svc.Toggle(ctx, "d", 1, it)
		require.NoError(t, err)
	}

	res := svc.Resolve(ctx, "d", 1)
	assert.Len(t, res.Items, 3)
	require.Len(t, res.Providers, 1)
	assert.Equal(t, int64(2), res.Providers[0].ID)
	require.Len(t, res.Products, 1)
	assert.Equal(t, int64(3), res.Products[0].ID)
}
