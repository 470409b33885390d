package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversine(t *testing.T) {
	monrovia := Point{Lat: 6.315, Lon: -10.804}
	paynesville := Point{Lat: 6.28, Lon: -10.70}
	london := Point{Lat: 51.5074, Lon: -0.1278}

	t.Run("zero for identical points", func(t *testing.T) {
		assert.Equal(t, 0.0, Haversine(monrovia, monrovia))
	})

	t.Run("symmetric", func(t *testing.T) {
		assert.InDelta(t, Haversine(monrovia, paynesville), Haversine(paynesville, monrovia), 1e-9)
		assert.InDelta(t, Haversine(monrovia, london), Haversine(london, monrovia), 1e-9)
	})

	t.Run("known distances", func(t *testing.T) {
		assert.InDelta(t, 7.54, Haversine(monrovia, paynesville), 0.05)
		assert.InDelta(t, 3182, Haversine(monrovia, london), 1)
	})

	t.Run("antipodal points stay finite", func(t *testing.T) {
		d := Haversine(Point{Lat: 0, Lon: 0}, Point{Lat: 0, Lon: 180})
		assert.InDelta(t, EarthRadiusMiles*3.141592653589793, d, 1e-6)
	})
}
