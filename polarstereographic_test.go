package geoconvert

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPolarStereographicPole(t *testing.T) {
	x, y := upsProj.forward(true, 90, 45)
	assert.Equal(t, 0.0, x)
	assert.Equal(t, 0.0, -y)

	x, y = upsProj.forward(false, -90, 45)
	assert.Equal(t, 0.0, x)
	assert.Equal(t, 0.0, y)

	lat, _ := upsProj.reverse(true, 0, 0)
	assert.InDelta(t, 90, lat, 1e-12)
	lat, _ = upsProj.reverse(false, 0, 0)
	assert.InDelta(t, -90, lat, 1e-12)
}

func TestPolarStereographicRoundTrip(t *testing.T) {
	for lat := 70.0; lat < 90.0; lat += 1.25 {
		for lon := -180.0; lon < 180.0; lon += 22.5 {
			x, y := upsProj.forward(true, lat, lon)
			glat, glon := upsProj.reverse(true, x, y)
			assert.InDelta(t, lat, glat, 1e-9, "lat %v lon %v", lat, lon)
			assert.InDelta(t, lon, glon, 1e-9, "lat %v lon %v", lat, lon)

			x, y = upsProj.forward(false, -lat, lon)
			glat, glon = upsProj.reverse(false, x, y)
			assert.InDelta(t, -lat, glat, 1e-9, "lat %v lon %v", -lat, lon)
			assert.InDelta(t, lon, glon, 1e-9, "lat %v lon %v", -lat, lon)
		}
	}
}

func TestPolarStereographicSouthMirrorsNorth(t *testing.T) {
	xn, yn := upsProj.forward(true, 80, 30)
	xs, ys := upsProj.forward(false, -80, 30)
	assert.Equal(t, xn, xs)
	assert.Equal(t, yn, -ys)
}
