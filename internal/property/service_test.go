package property

import (
	"context"
	"strings"
	"testing"

	"lsers_hub_backend/internal/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestList(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewStaticRepository(), zap.NewNop())

	assert.Len(t, svc.List(ctx, ListQuery{}), 4)

	cheap := svc.List(ctx, ListQuery{MaxPrice: 90})
	require.Len(t, cheap, 2)
	for _, v := range cheap {
		assert.LessOrEqual(t, v.PricePerNight, 90.0)
	}

	sinkor := svc.List(ctx, ListQuery{Search: "SINKOR"})
	require.Len(t, sinkor, 1)
	assert.Equal(t, "Modern City Apartment", sinkor[0].Title)
}

func TestGet(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewStaticRepository(), zap.NewNop())

	v, err := svc.Get(ctx, 1)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(v.ContactLink, "https://wa.me/231776966080?text="))
	assert.Contains(t, v.PhotoURL, v.PhotoID)

	_, err = svc.Get(ctx, 42)
	assert.ErrorIs(t, err, common.ErrNotFound)
}
