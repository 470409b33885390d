package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"lsers_hub_backend/internal/assets"
	"lsers_hub_backend/internal/config"
	"lsers_hub_backend/internal/domain"
	"lsers_hub_backend/internal/platform/kv"
	"lsers_hub_backend/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type failingLister struct{}

func (failingLister) Devices(context.Context) ([]string, error) { return nil, errors.New("backend down") }

func TestRunOnceSweepsEveryDevice(t *testing.T) {
	ctx := context.Background()
	stores := store.NewManager(kv.NewMemoryBackend(), zap.NewNop())
	a := assets.NewService(stores, zap.NewNop())

	cfg := config.Default()
	cfg.AssetSweepGrace = -time.Hour

	for _, device := range []string{"device-a", "device-b"} {
		a.Store(ctx, device, "data:image/png;base64,AAAA")
	}
	keep := a.Store(ctx, "device-a", "data:image/png;base64,BBBB")
	_, err := stores.For("device-a").Products.Update(ctx, func(ps []domain.Product) ([]domain.Product, error) {
		ps[0].Photos = append(ps[0].Photos, domain.RefPhoto(keep))
		return ps, nil
	})
	require.NoError(t, err)

	job := NewAssetSweepJob(stores, a, zap.NewNop(), cfg)
	removed, err := job.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	_, err = a.Get(ctx, "device-a", keep)
	assert.NoError(t, err)
}

func TestRunOnceReportsListingFailure(t *testing.T) {
	job := NewAssetSweepJob(failingLister{}, nil, zap.NewNop(), config.Default())
	_, err := job.RunOnce(context.Background())
	assert.ErrorContains(t, err, "backend down")
}

func TestCronLogger(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := NewCronLogger(zap.New(core))

	l.Info("schedule", "entry", 1, "dangling")
	l.Error(errors.New("boom"), "job panicked", "entry", 2)

	entries := logs.AllUntimed()
	require.Len(t, entries, 2)
	assert.Equal(t, "MISSING_VALUE", entries[0].ContextMap()["dangling"])
	assert.Equal(t, "boom", entries[1].ContextMap()["error"])
}
