package geoconvert

import (
	"fmt"
	"math"

	"github.com/golang/geo/s2"
)

// Zone numbers. Zone 0 is the UPS sentinel; 1-60 are UTM zones.
const (
	zoneUPS    = 0
	minZone    = 0
	minUTMZone = 1
	maxUTMZone = 60
	maxZone    = 60
)

// False easting/northing and legal coordinate windows in meters, indexed by
// windowIndex: UPS south, UPS north, UTM south, UTM north.
var (
	falseEasting = [4]float64{
		upsEastingInd * tile, upsEastingInd * tile,
		utmEastingInd * tile, utmEastingInd * tile,
	}
	falseNorthing = [4]float64{
		upsEastingInd * tile, upsEastingInd * tile,
		maxUTMSouthRow * tile, minUTMNorthRow * tile,
	}
	minEasting = [4]float64{
		minUPSSouthInd * tile, minUPSNorthInd * tile,
		minUTMCol * tile, minUTMCol * tile,
	}
	maxEasting = [4]float64{
		maxUPSSouthInd * tile, maxUPSNorthInd * tile,
		maxUTMCol * tile, maxUTMCol * tile,
	}
	minNorthing = [4]float64{
		minUPSSouthInd * tile, minUPSNorthInd * tile,
		minUTMSouthRow * tile,
		(minUTMNorthRow + minUTMSouthRow - maxUTMSouthRow) * tile,
	}
	maxNorthing = [4]float64{
		maxUPSSouthInd * tile, maxUPSNorthInd * tile,
		(maxUTMSouthRow + maxUTMNorthRow - minUTMNorthRow) * tile,
		maxUTMNorthRow * tile,
	}
)

func windowIndex(utmp, northp bool) int {
	i := 0
	if utmp {
		i = 2
	}
	if northp {
		i++
	}
	return i
}

func boolIdx(b bool) int {
	if b {
		return 1
	}
	return 0
}

func zoneTag(utmp bool) string {
	if utmp {
		return "UTM"
	}
	return "UPS"
}

func hemisphereTag(northp bool) string {
	if northp {
		return "N"
	}
	return "S"
}

// UtmUps is a UTM or UPS coordinate on the WGS84 ellipsoid. A zone of 0
// designates UPS; 1-60 are the UTM zones. Values built by this package are
// always inside the legal easting/northing window for their zone type and
// hemisphere.
type UtmUps struct {
	zone     int
	northp   bool
	easting  float64
	northing float64
}

// NewUtmUps constructs a validated UTM/UPS coordinate. Zone 0 designates
// UPS. The easting and northing must lie within the legal window for the
// zone type and hemisphere (with one grid tile of slop).
func NewUtmUps(zone int, northp bool, easting, northing float64) (UtmUps, error) {
	if zone < minZone || zone > maxZone {
		return UtmUps{}, fmt.Errorf("%w: zone %d", ErrInvalidZone, zone)
	}
	if err := checkCoords(zone != zoneUPS, northp, easting, northing, false); err != nil {
		return UtmUps{}, err
	}
	return UtmUps{zone: zone, northp: northp, easting: easting, northing: northing}, nil
}

// Zone returns the UTM zone number, or 0 for UPS.
func (u UtmUps) Zone() int { return u.zone }

// IsNorth reports whether the coordinate is in the northern hemisphere.
func (u UtmUps) IsNorth() bool { return u.northp }

// Easting returns the easting in meters.
func (u UtmUps) Easting() float64 { return u.easting }

// Northing returns the northing in meters.
func (u UtmUps) Northing() float64 { return u.northing }

// ToUtmUps converts a geodetic coordinate to UTM or UPS, selecting the
// standard zone for the position: UPS below 80S and at or above 84N, the
// 6-degree UTM zone otherwise, with the Norway and Svalbard exceptions.
func ToUtmUps(ll s2.LatLng) (UtmUps, error) {
	if err := checkLatLng(ll); err != nil {
		return UtmUps{}, err
	}
	lat := ll.Lat.Degrees()
	lon := ll.Lng.Degrees()

	northp := !math.Signbit(lat)
	zone := standardZone(lat, lon)
	utmp := zone != zoneUPS

	var x, y float64
	if utmp {
		x, y = utmProj.forward(centralMeridian(zone), lat, lon)
	} else {
		x, y = upsProj.forward(northp, lat, lon)
	}

	ind := windowIndex(utmp, northp)
	x += falseEasting[ind]
	y += falseNorthing[ind]

	return UtmUps{zone: zone, northp: northp, easting: x, northing: y}, nil
}

// LatLng converts the coordinate back to geodetic latitude/longitude.
func (u UtmUps) LatLng() s2.LatLng {
	utmp := u.zone != zoneUPS
	ind := windowIndex(utmp, u.northp)

	x := u.easting - falseEasting[ind]
	y := u.northing - falseNorthing[ind]

	var lat, lon float64
	if utmp {
		lat, lon = utmProj.reverse(centralMeridian(u.zone), x, y)
	} else {
		lat, lon = upsProj.reverse(u.northp, x, y)
	}
	return s2.LatLngFromDegrees(lat, lon)
}

// String formats the coordinate as "<zone><hemisphere> <easting> <northing>",
// e.g. "18n 585664.1 4511315.4".
func (u UtmUps) String() string {
	h := "s"
	if u.northp {
		h = "n"
	}
	return fmt.Sprintf("%d%s %.1f %.1f", u.zone, h, u.easting, u.northing)
}

// centralMeridian returns the central meridian of a UTM zone in degrees.
func centralMeridian(zone int) float64 {
	return 6*float64(zone) - 183
}

// standardZone maps a position to its UTM zone number or the UPS sentinel.
func standardZone(lat, lon float64) int {
	if !(lat >= -80 && lat < 84) {
		return zoneUPS
	}
	lonInt := int(math.Floor(angNormalize(lon)))
	if lonInt == halfTurn {
		lonInt = -halfTurn
	}
	zone := (lonInt + 186) / 6
	band := toLatitudeBand(lat)
	if band == 7 && zone == 31 && lonInt >= 3 {
		// The Norway exception: zone 32 extends west over band V.
		zone = 32
	} else if band == 9 && lonInt >= 0 && lonInt < 42 {
		// The Svalbard exception: band X uses the odd zones 31-37 only.
		zone = 2*((lonInt+183)/12) + 1
	}
	return zone
}

// toLatitudeBand maps a latitude to its band index, -10 (band C) through
// 9 (band X).
func toLatitudeBand(lat float64) int {
	latInt := int(math.Floor(lat))
	return max(-10, min(9, (latInt+80)/8-10))
}

// checkCoords verifies an easting/northing pair against the legal window for
// the zone type and hemisphere, allowing one tile of slop on each side.
func checkCoords(utmp, northp bool, x, y float64, mgrsLimits bool) error {
	const slop = float64(tile)
	limitTag := ""
	if mgrsLimits {
		limitTag = "MGRS/"
	}

	ind := windowIndex(utmp, northp)
	if x < minEasting[ind]-slop || x > maxEasting[ind]+slop {
		return fmt.Errorf(
			"%w: easting %.2fkm not in %s%s range for %s hemisphere [%.2fkm, %.2fkm]",
			ErrInvalidUtmUps, x/1000, limitTag, zoneTag(utmp), hemisphereTag(northp),
			(minEasting[ind]-slop)/1000, (maxEasting[ind]+slop)/1000)
	}
	if y < minNorthing[ind]-slop || y > maxNorthing[ind]+slop {
		return fmt.Errorf(
			"%w: northing %.2fkm not in %s%s range for %s hemisphere [%.2fkm, %.2fkm]",
			ErrInvalidUtmUps, y/1000, limitTag, zoneTag(utmp), hemisphereTag(northp),
			(minNorthing[ind]-slop)/1000, (maxNorthing[ind]+slop)/1000)
	}
	return nil
}
