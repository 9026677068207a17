package geoconvert

import (
	"fmt"

	"github.com/golang/geo/s2"
)

// earthMeanRadius is the IUGG mean radius of the Earth in meters.
const earthMeanRadius = 6371008.8

func checkLatLng(ll s2.LatLng) error {
	lat := ll.Lat.Degrees()
	lon := ll.Lng.Degrees()
	if !(lat >= -quarterTurn && lat <= quarterTurn) {
		return fmt.Errorf("%w: latitude %v not in [-90, 90]", ErrInvalidCoord, lat)
	}
	if !(lon >= -halfTurn && lon < halfTurn) {
		return fmt.Errorf("%w: longitude %v not in [-180, 180)", ErrInvalidCoord, lon)
	}
	return nil
}

// Haversine returns the great-circle distance in meters between two points
// on a sphere of the Earth's mean radius.
func Haversine(a, b s2.LatLng) float64 {
	return earthMeanRadius * a.Distance(b).Radians()
}
