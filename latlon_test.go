package geoconvert_test

import (
	"math"
	"testing"

	"github.com/golang/geo/s2"
	"github.com/stretchr/testify/assert"
	"github.com/tzneal/geoconvert"
)

func TestHaversine(t *testing.T) {
	a := s2.LatLngFromDegrees(0, 0)
	assert.Equal(t, 0.0, geoconvert.Haversine(a, a))

	// A quarter of a great circle.
	b := s2.LatLngFromDegrees(0, 90)
	want := 6371008.8 * math.Pi / 2
	assert.InDelta(t, want, geoconvert.Haversine(a, b), 1e-6)

	// Symmetric.
	c := s2.LatLngFromDegrees(40.748333, -73.985278)
	d := s2.LatLngFromDegrees(48.858222, 2.2945)
	assert.InDelta(t, geoconvert.Haversine(c, d), geoconvert.Haversine(d, c), 1e-9)
	// New York to Paris is about 5837km.
	assert.InDelta(t, 5837e3, geoconvert.Haversine(c, d), 5e3)
}
