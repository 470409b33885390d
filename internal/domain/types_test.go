package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePhoto(t *testing.T) {
	assert.Equal(t, Photo{}, ParsePhoto(""))
	assert.Equal(t, InlinePhoto("data:image/png;base64,AAAA"), ParsePhoto("data:image/png;base64,AAAA"))
	assert.Equal(t, RefPhoto("asset_01H"), ParsePhoto("asset_01H"))
	assert.Equal(t, RefPhoto("https://images.example.com/a.jpg"), ParsePhoto("https://images.example.com/a.jpg"))
}

func TestPhotoJSON(t *testing.T) {
	p := Provider{ID: 7, Photo: InlinePhoto("data:image/png;base64,AAAA"), Portfolio: []PortfolioItem{
		{Photo: RefPhoto("asset_1"), Title: "Kitchen"},
	}}

	raw, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"photo":"data:image/png;base64,AAAA"`)
	assert.Contains(t, string(raw), `"photo":"asset_1"`)
	assert.NotContains(t, string(raw), `"ref"`)

	var back Provider
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.True(t, back.Photo.IsInline())
	assert.Equal(t, PhotoRef, back.Portfolio[0].Photo.Kind)
	assert.Equal(t, "asset_1", back.Portfolio[0].Photo.Value)
}

func TestChatID(t *testing.T) {
	id := ChatID(1721000000000, 13)
	assert.Equal(t, "u1721000000000-p13", id)

	u, p, ok := ParseChatID(id)
	require.True(t, ok)
	assert.Equal(t, int64(1721000000000), u)
	assert.Equal(t, int64(13), p)

	for _, bad := range []string{"", "u1-p", "x1-p2", "u1-p2-extra", "u-1-p2"} {
		_, _, ok := ParseChatID(bad)
		assert.False(t, ok, bad)
	}
}

func TestProviderLocation(t *testing.T) {
	lat, lon := 6.3, -10.8
	_, ok := Provider{Latitude: &lat}.Location()
	assert.False(t, ok)

	pt, ok := Provider{Latitude: &lat, Longitude: &lon}.Location()
	require.True(t, ok)
	assert.Equal(t, 6.3, pt.Lat)
	assert.Equal(t, -10.8, pt.Lon)
}
