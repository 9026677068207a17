package geoconvert_test

import (
	"testing"

	"github.com/golang/geo/s2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tzneal/geoconvert"
)

func TestToUtmUpsNewYork(t *testing.T) {
	ll := s2.LatLngFromDegrees(40.748333, -73.985278)
	u, err := geoconvert.ToUtmUps(ll)
	require.NoError(t, err)

	assert.Equal(t, 18, u.Zone())
	assert.True(t, u.IsNorth())
	assert.InDelta(t, 585664.121, u.Easting(), 1e-3)
	assert.InDelta(t, 4511315.422, u.Northing(), 1e-3)
}

func TestToUtmUpsCentralMeridian(t *testing.T) {
	// The equator on a zone's central meridian maps exactly to the false
	// easting.
	u, err := geoconvert.ToUtmUps(s2.LatLngFromDegrees(0, -75))
	require.NoError(t, err)
	assert.Equal(t, 18, u.Zone())
	assert.True(t, u.IsNorth())
	assert.InDelta(t, 500000, u.Easting(), 1e-9)
	assert.InDelta(t, 0, u.Northing(), 1e-9)
}

func TestToUtmUpsPoles(t *testing.T) {
	u, err := geoconvert.ToUtmUps(s2.LatLngFromDegrees(90, 0))
	require.NoError(t, err)
	assert.Equal(t, 0, u.Zone())
	assert.True(t, u.IsNorth())
	assert.InDelta(t, 2000000, u.Easting(), 1e-9)
	assert.InDelta(t, 2000000, u.Northing(), 1e-9)

	u, err = geoconvert.ToUtmUps(s2.LatLngFromDegrees(-90, 0))
	require.NoError(t, err)
	assert.Equal(t, 0, u.Zone())
	assert.False(t, u.IsNorth())
	assert.InDelta(t, 2000000, u.Easting(), 1e-9)
	assert.InDelta(t, 2000000, u.Northing(), 1e-9)
}

func TestStandardZoneSelection(t *testing.T) {
	cases := []struct {
		name     string
		lat, lon float64
		zone     int
	}{
		{"greenwich", 51.5, 0, 31},
		{"west of greenwich", 51.5, -0.1, 30},
		{"norway exception", 61, 5, 32},
		{"norway exception west edge", 61, 3, 32},
		{"below norway exception", 59, 5, 31},
		{"svalbard zone 31", 78, 8, 31},
		{"svalbard zone 33", 78, 10, 33},
		{"svalbard zone 35", 78, 22, 35},
		{"svalbard zone 37", 78, 35, 37},
		{"utm north limit", 83.9, 0, 31},
		{"ups north", 84, 0, 0},
		{"utm south limit", -80, 0, 31},
		{"ups south", -80.1, 0, 0},
		{"date line west", 70, -180, 1},
		{"date line east", 70, 179.9, 60},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			u, err := geoconvert.ToUtmUps(s2.LatLngFromDegrees(c.lat, c.lon))
			require.NoError(t, err)
			assert.Equal(t, c.zone, u.Zone())
		})
	}
}

func TestUtmUpsBoundaryLatitudes(t *testing.T) {
	// Exactly 84N is UPS; converting back reproduces the latitude.
	u, err := geoconvert.ToUtmUps(s2.LatLngFromDegrees(84, 10))
	require.NoError(t, err)
	assert.Equal(t, 0, u.Zone())
	back := u.LatLng()
	assert.InDelta(t, 84, back.Lat.Degrees(), 1e-9)
	assert.InDelta(t, 10, back.Lng.Degrees(), 1e-9)

	// Exactly 80S is still UTM.
	u, err = geoconvert.ToUtmUps(s2.LatLngFromDegrees(-80, 10))
	require.NoError(t, err)
	assert.Equal(t, 32, u.Zone())
	assert.False(t, u.IsNorth())
	back = u.LatLng()
	assert.InDelta(t, -80, back.Lat.Degrees(), 1e-9)
	assert.InDelta(t, 10, back.Lng.Degrees(), 1e-9)
}

func TestNewUtmUpsValidation(t *testing.T) {
	_, err := geoconvert.NewUtmUps(61, true, 500000, 0)
	assert.ErrorIs(t, err, geoconvert.ErrInvalidZone)

	_, err = geoconvert.NewUtmUps(-1, true, 500000, 0)
	assert.ErrorIs(t, err, geoconvert.ErrInvalidZone)

	// Easting beyond the window plus the one-tile slop.
	_, err = geoconvert.NewUtmUps(18, true, 1100000, 4500000)
	assert.ErrorIs(t, err, geoconvert.ErrInvalidUtmUps)

	// Northing beyond the window plus the one-tile slop.
	_, err = geoconvert.NewUtmUps(18, true, 500000, 9700000)
	assert.ErrorIs(t, err, geoconvert.ErrInvalidUtmUps)

	// Within slop of the window is accepted.
	_, err = geoconvert.NewUtmUps(18, true, 950000, 4500000)
	assert.NoError(t, err)
}

func TestToUtmUpsRejectsBadLatLng(t *testing.T) {
	_, err := geoconvert.ToUtmUps(s2.LatLngFromDegrees(91, 0))
	assert.ErrorIs(t, err, geoconvert.ErrInvalidCoord)

	_, err = geoconvert.ToUtmUps(s2.LatLngFromDegrees(0, 180))
	assert.ErrorIs(t, err, geoconvert.ErrInvalidCoord)

	_, err = geoconvert.ToUtmUps(s2.LatLngFromDegrees(0, -180.5))
	assert.ErrorIs(t, err, geoconvert.ErrInvalidCoord)
}

func TestUtmUpsRoundTrip(t *testing.T) {
	for lat := -89.5; lat <= 89.5; lat += 3.7 {
		for lon := -179.5; lon < 180; lon += 7.3 {
			ll := s2.LatLngFromDegrees(lat, lon)
			u, err := geoconvert.ToUtmUps(ll)
			require.NoError(t, err, "lat %v lon %v", lat, lon)
			back := u.LatLng()
			assert.Less(t, geoconvert.Haversine(ll, back), 1e-3,
				"lat %v lon %v zone %d", lat, lon, u.Zone())
		}
	}
}

func TestUtmUpsString(t *testing.T) {
	u, err := geoconvert.NewUtmUps(18, true, 585664.12, 4511315.42)
	require.NoError(t, err)
	assert.Equal(t, "18n 585664.1 4511315.4", u.String())

	u, err = geoconvert.NewUtmUps(0, false, 2000000, 2000000)
	require.NoError(t, err)
	assert.Equal(t, "0s 2000000.0 2000000.0", u.String())
}
