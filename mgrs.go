package geoconvert

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/golang/geo/s2"
)

// Grid letter alphabets. The letters I and O are never used.
const (
	hemispheres    = "SN"
	utmRowLetters  = "ABCDEFGHJKLMNPQRSTUV"
	latBandLetters = "CDEFGHJKLMNPQRSTUVWX"
	upsBandLetters = "ABYZ"
	digitLetters   = "0123456789"
)

var (
	// Column alphabets cycle with the zone number modulo 3.
	utmColLetters = [3]string{"ABCDEFGH", "JKLMNPQR", "STUVWXYZ"}
	// UPS column alphabets, one per polar band A, B, Y, Z.
	upsColLetters = [4]string{"JKLPQRSTUXYZ", "ABCFGHJKLPQR", "RSTUXYZ", "ABCFGHJ"}
	upsRowLetters = [2]string{"ABCDEFGHJKLMNPQRSTUVWXYZ", "ABCDEFGHJKLMNP"}
)

// Grid tile geometry. Eastings and northings are measured in 100km tiles;
// the min/max values below are tile indices.
const (
	tile = 100000

	minUTMCol      = 1
	maxUTMCol      = 9
	minUTMSouthRow = 10
	maxUTMSouthRow = 100
	minUTMNorthRow = 0
	maxUTMNorthRow = 95
	minUPSSouthInd = 8
	maxUPSSouthInd = 32
	minUPSNorthInd = 13
	maxUPSNorthInd = 27
	upsEastingInd  = 20
	utmEastingInd  = 5

	utmNorthShift = (maxUTMSouthRow - minUTMNorthRow) * tile

	base            = 10
	utmRowPeriod    = 20
	utmEvenRowShift = 5
	maxPrecision    = 5 + 6
	mult            = 1000000
)

// Strict MGRS coordinate windows in tile units, indexed like the meter
// windows in utmups.go. The checks are half open: [min, max).
var (
	mgrsMinEasting = [4]int{
		minUPSSouthInd, minUPSNorthInd, minUTMCol, minUTMCol,
	}
	mgrsMaxEasting = [4]int{
		maxUPSSouthInd, maxUPSNorthInd, maxUTMCol, maxUTMCol,
	}
	mgrsMinNorthing = [4]int{
		minUPSSouthInd, minUPSNorthInd, minUTMSouthRow,
		minUTMSouthRow - maxUTMSouthRow - minUTMNorthRow,
	}
	mgrsMaxNorthing = [4]int{
		maxUPSSouthInd, maxUPSNorthInd,
		maxUTMNorthRow + maxUTMSouthRow - minUTMNorthRow,
		maxUTMNorthRow,
	}
)

// Mgrs is a Military Grid Reference System position, stored as a UTM/UPS
// coordinate plus an output precision. Precision n means n digits each for
// easting and northing, so precision 5 is a 1m square and precision 11 a
// micrometer square. Precision -1 denotes a bare grid zone designator.
type Mgrs struct {
	utm       UtmUps
	precision int
}

// NewMgrs constructs a validated MGRS position from its parts. Most callers
// want ParseMgrs or UtmUps.ToMgrs instead.
func NewMgrs(zone int, northp bool, easting, northing float64, precision int) (Mgrs, error) {
	if zone < minZone || zone > maxZone {
		return Mgrs{}, fmt.Errorf("%w: zone %d", ErrInvalidZone, zone)
	}
	if err := checkPrecision(precision); err != nil {
		return Mgrs{}, err
	}
	if _, _, _, err := mgrsCheckCoords(zone != zoneUPS, northp, easting, northing); err != nil {
		return Mgrs{}, err
	}
	return Mgrs{
		utm:       UtmUps{zone: zone, northp: northp, easting: easting, northing: northing},
		precision: precision,
	}, nil
}

// MgrsFromLatLng converts a geodetic coordinate to MGRS at the given
// precision.
func MgrsFromLatLng(ll s2.LatLng, precision int) (Mgrs, error) {
	if err := checkPrecision(precision); err != nil {
		return Mgrs{}, err
	}
	u, err := ToUtmUps(ll)
	if err != nil {
		return Mgrs{}, err
	}
	return Mgrs{utm: u, precision: precision}, nil
}

// ToMgrs attaches an output precision to the coordinate. The easting and
// northing must lie within the strict MGRS window, which is one tile
// narrower than the window NewUtmUps accepts.
func (u UtmUps) ToMgrs(precision int) (Mgrs, error) {
	if err := checkPrecision(precision); err != nil {
		return Mgrs{}, err
	}
	if _, _, _, err := mgrsCheckCoords(u.zone != zoneUPS, u.northp, u.easting, u.northing); err != nil {
		return Mgrs{}, err
	}
	return Mgrs{utm: u, precision: precision}, nil
}

// IsUTM reports whether the position is stored as UTM rather than UPS.
func (m Mgrs) IsUTM() bool { return m.utm.zone != zoneUPS }

// Zone returns the UTM zone number, or 0 for UPS.
func (m Mgrs) Zone() int { return m.utm.zone }

// IsNorth reports whether the position is in the northern hemisphere.
func (m Mgrs) IsNorth() bool { return m.utm.northp }

// Easting returns the easting in meters.
func (m Mgrs) Easting() float64 { return m.utm.easting }

// Northing returns the northing in meters.
func (m Mgrs) Northing() float64 { return m.utm.northing }

// Precision returns the output precision.
func (m Mgrs) Precision() int { return m.precision }

// WithPrecision returns a copy of the position with a new output precision.
func (m Mgrs) WithPrecision(precision int) (Mgrs, error) {
	if err := checkPrecision(precision); err != nil {
		return Mgrs{}, err
	}
	m.precision = precision
	return m, nil
}

// UtmUps returns the underlying UTM/UPS coordinate.
func (m Mgrs) UtmUps() UtmUps { return m.utm }

// LatLng converts the position to geodetic latitude/longitude.
func (m Mgrs) LatLng() s2.LatLng { return m.utm.LatLng() }

func checkPrecision(precision int) error {
	if precision < -1 || precision > maxPrecision {
		return fmt.Errorf("%w: precision %d not in [-1, 11]", ErrInvalidPrecision, precision)
	}
	return nil
}

// utmRow disambiguates a row letter, which repeats every 2000km, using the
// latitude band. The returned row is the multiple of utmRowPeriod closest to
// the center of the band; maxUTMSouthRow flags an impossible letter pair.
func utmRow(bandIdx, colIdx, rowIdx int) int {
	c := 100 * (8*float64(bandIdx) + 4) / quarterTurn
	northp := bandIdx >= 0
	northAdj := 0.0
	if northp {
		northAdj = 0.1
	}

	minRow := -90
	if bandIdx > -10 {
		minRow = int(math.Floor(c - 4.3 - northAdj))
	}
	maxRow := 94
	if bandIdx < 9 {
		maxRow = int(math.Floor(c + 4.4 - northAdj))
	}

	baseRow := (minRow+maxRow)/2 - utmRowPeriod/2
	rowIdx = (rowIdx-baseRow+maxUTMSouthRow)%utmRowPeriod + baseRow

	if !(rowIdx >= minRow && rowIdx <= maxRow) {
		// Northings 71e5 and 80e5 intersect band boundaries, so a few
		// letter pairs just outside the safe rows are still legal. Fold
		// the southern hemisphere and western columns onto the
		// northeastern quadrant and test the four special blocks.
		safeBand := bandIdx
		if bandIdx < 0 {
			safeBand = -bandIdx - 1
		}
		safeRow := rowIdx
		if rowIdx < 0 {
			safeRow = -rowIdx - 1
		}
		safeCol := colIdx
		if colIdx >= 4 {
			safeCol = -colIdx + 7
		}
		if !((safeRow == 70 && safeBand == 8 && safeCol >= 2) ||
			(safeRow == 71 && safeBand == 7 && safeCol <= 2) ||
			(safeRow == 79 && safeBand == 9 && safeCol >= 1) ||
			(safeRow == 80 && safeBand == 8 && safeCol <= 1)) {
			rowIdx = maxUTMSouthRow
		}
	}
	return rowIdx
}

func isDigitByte(c byte) bool { return c >= '0' && c <= '9' }

// ParseMgrs parses an MGRS string such as "18TWL856641113154" or
// "YXL6143481146". The string must contain only the coordinate, with no
// whitespace. The decoded position is the center of the precision square.
// A bare grid zone designator such as "18T" decodes to the center of the
// zone at precision -1.
func ParseMgrs(s string) (Mgrs, error) {
	value := strings.ToUpper(s)
	for i := 0; i < len(value); i++ {
		if value[i] >= utf8.RuneSelf {
			return Mgrs{}, fmt.Errorf("%w: string contains unicode characters", ErrInvalidMgrs)
		}
	}
	n := len(value)
	p := 0

	if strings.HasPrefix(value, "INV") {
		return Mgrs{}, fmt.Errorf("%w: starts with 'INV'", ErrInvalidMgrs)
	}

	zone := 0
	for p < n && isDigitByte(value[p]) {
		zone = base*zone + int(value[p]-'0')
		p++
	}
	if p > 0 && (zone < minUTMZone || zone > maxUTMZone) {
		return Mgrs{}, fmt.Errorf("%w: zone %d not in [1,60]", ErrInvalidMgrs, zone)
	}
	if p > 2 {
		return Mgrs{}, fmt.Errorf("%w: more than 2 digits at start of MGRS %s", ErrInvalidMgrs, value[:p])
	}
	if n-p < 1 {
		return Mgrs{}, fmt.Errorf("%w: too short: %s", ErrInvalidMgrs, value)
	}

	utmp := zone != zoneUPS
	zonem := zone - 1

	bandSet := upsBandLetters
	if utmp {
		bandSet = latBandLetters
	}
	bandIdx := strings.IndexByte(bandSet, value[p])
	if bandIdx < 0 {
		return Mgrs{}, fmt.Errorf("%w: band letter %c not in %s set %s",
			ErrInvalidMgrs, value[p], zoneTag(utmp), bandSet)
	}
	p++

	minNorthBand := 2
	if utmp {
		minNorthBand = 10
	}
	northp := bandIdx >= minNorthBand

	if p == n {
		// Grid zone designator only; decode the center of the zone.
		// deg approximates the length of a degree of meridian arc in
		// tile units.
		deg := float64(utmNorthShift) / float64(quarterTurn*tile)
		var x, y float64
		if utmp {
			// Central meridian, except zone 31V which is half width.
			xTile := 5.0
			if zone == 31 && bandIdx == 17 {
				xTile = 4
			}
			x = tile * xTile
			y = math.Floor(8*(float64(bandIdx)-9.5)*deg+0.5) * tile
			if !northp {
				y += utmNorthShift
			}
		} else {
			xSign := -1.0
			if bandIdx%2 == 1 {
				xSign = 1
			}
			x = (xSign*math.Floor(4*deg+0.5) + upsEastingInd) * tile
			y = upsEastingInd * tile
		}
		return Mgrs{
			utm:       UtmUps{zone: zone, northp: northp, easting: x, northing: y},
			precision: -1,
		}, nil
	}
	if n-p < 2 {
		return Mgrs{}, fmt.Errorf("%w: missing row letter in %s", ErrInvalidMgrs, value)
	}

	var colSet, rowSet string
	if utmp {
		colSet = utmColLetters[zonem%3]
		rowSet = utmRowLetters
	} else {
		colSet = upsColLetters[bandIdx]
		rowSet = upsRowLetters[boolIdx(northp)]
	}

	colIdx := strings.IndexByte(colSet, value[p])
	if colIdx < 0 {
		label := fmt.Sprintf("UPS band %s", value[p-1:p])
		if utmp {
			label = fmt.Sprintf("zone %s", value[:p-1])
		}
		return Mgrs{}, fmt.Errorf("%w: column letter %c not in %s set %s",
			ErrInvalidMgrs, value[p], label, colSet)
	}
	p++

	rowIdx := strings.IndexByte(rowSet, value[p])
	if rowIdx < 0 {
		label := "UTM"
		if !utmp {
			h := boolIdx(northp)
			label = fmt.Sprintf("UPS %s", hemispheres[h:h+1])
		}
		return Mgrs{}, fmt.Errorf("%w: row letter %c not in %s set %s",
			ErrInvalidMgrs, value[p], label, rowSet)
	}
	p++

	if utmp {
		if zonem%2 == 1 {
			rowIdx = (rowIdx + utmRowPeriod - utmEvenRowShift) % utmRowPeriod
		}
		bandIdx -= 10
		rowIdx = utmRow(bandIdx, colIdx, rowIdx)
		if rowIdx == maxUTMSouthRow {
			return Mgrs{}, fmt.Errorf("%w: block %s not in zone/band %s",
				ErrInvalidMgrs, value[p-2:p], value[:p-2])
		}
		if !northp {
			rowIdx += maxUTMSouthRow
		}
		colIdx += minUTMCol
	} else {
		switch {
		case bandIdx%2 == 1:
			colIdx += upsEastingInd
		case northp:
			colIdx += minUPSNorthInd
		default:
			colIdx += minUPSSouthInd
		}
		if northp {
			rowIdx += minUPSNorthInd
		} else {
			rowIdx += minUPSSouthInd
		}
	}

	precision := (n - p) / 2
	unit := 1
	x := colIdx
	y := rowIdx
	for i := 0; i < precision; i++ {
		unit *= base
		if !isDigitByte(value[p+i]) || !isDigitByte(value[p+i+precision]) {
			return Mgrs{}, fmt.Errorf("%w: encountered a non-digit in %s", ErrInvalidMgrs, value[p:])
		}
		x = base*x + int(value[p+i]-'0')
		y = base*y + int(value[p+i+precision]-'0')
	}
	if (n-p)%2 == 1 {
		if !isDigitByte(value[n-1]) {
			return Mgrs{}, fmt.Errorf("%w: encountered a non-digit in %s", ErrInvalidMgrs, value[p:])
		}
		return Mgrs{}, fmt.Errorf("%w: not an even number of digits in %s", ErrInvalidMgrs, value[p:])
	}
	if precision > maxPrecision {
		return Mgrs{}, fmt.Errorf("%w: more than %d digits in %s", ErrInvalidMgrs, 2*maxPrecision, value[p:])
	}

	// The decoded coordinate is the center of the precision square.
	unit *= 2
	x = 2*x + 1
	y = 2*y + 1

	return Mgrs{
		utm: UtmUps{
			zone:     zone,
			northp:   northp,
			easting:  tile * float64(x) / float64(unit),
			northing: tile * float64(y) / float64(unit),
		},
		precision: precision,
	}, nil
}

// mgrsCheckCoords verifies an easting/northing pair against the strict MGRS
// window for the zone type. Values sitting exactly on the upper edge are
// nudged just inside. For UTM the hemisphere is normalized so the northing
// tile index lands in the hemisphere's own row range.
func mgrsCheckCoords(utmp, northp bool, x, y float64) (bool, float64, float64, error) {
	xInt := int(math.Floor(x / tile))
	yInt := int(math.Floor(y / tile))
	ind := windowIndex(utmp, northp)

	if xInt < mgrsMinEasting[ind] || xInt >= mgrsMaxEasting[ind] {
		if xInt == mgrsMaxEasting[ind] && epsEq(x, float64(mgrsMaxEasting[ind]*tile)) {
			x -= mgrsEps
		} else {
			return northp, x, y, fmt.Errorf(
				"%w: easting %.2fkm not in MGRS/%s range for %s hemisphere [%.2fkm, %.2fkm]",
				ErrInvalidMgrs, x/1000, zoneTag(utmp), hemisphereTag(northp),
				float64(mgrsMinEasting[ind]*(tile/1000)),
				float64(mgrsMaxEasting[ind]*(tile/1000)))
		}
	}
	if yInt < mgrsMinNorthing[ind] || yInt >= mgrsMaxNorthing[ind] {
		if yInt == mgrsMaxNorthing[ind] && epsEq(y, float64(mgrsMaxNorthing[ind]*tile)) {
			y -= mgrsEps
		} else {
			return northp, x, y, fmt.Errorf(
				"%w: northing %.2fkm not in MGRS/%s range for %s hemisphere [%.2fkm, %.2fkm]",
				ErrInvalidMgrs, y/1000, zoneTag(utmp), hemisphereTag(northp),
				float64(mgrsMinNorthing[ind]*(tile/1000)),
				float64(mgrsMaxNorthing[ind]*(tile/1000)))
		}
	}

	if utmp {
		if northp && yInt < minUTMSouthRow {
			northp = false
			y += utmNorthShift
		} else if !northp && yInt >= maxUTMSouthRow {
			if epsEq(y, maxUTMSouthRow*tile) {
				y -= mgrsEps
			} else {
				northp = true
				y -= utmNorthShift
			}
		}
	}
	return northp, x, y, nil
}

// String formats the position as an MGRS string. At precision -1 only the
// grid zone designator is emitted.
func (m Mgrs) String() string {
	s, _ := m.format()
	return s
}

func (m Mgrs) format() (string, error) {
	utmp := m.utm.zone != zoneUPS

	// Estimate the latitude well enough to determine the band letter,
	// falling back to the full inverse projection when the cheap
	// estimates straddle a band boundary.
	lat := 0.0
	if m.utm.zone > 0 {
		yEst := m.utm.northing
		if !m.utm.northp {
			yEst -= utmNorthShift
		}
		yEst /= tile
		if math.Abs(yEst) < 1 {
			lat = 0.9 * yEst
		} else {
			poleAdd := -1.0
			if yEst > 0 {
				poleAdd = 1
			}
			latPoleward := 0.901*yEst + poleAdd*0.135
			latEastward := 0.902 * yEst * (1 - 1.85e-6*yEst*yEst)
			if toLatitudeBand(latPoleward) == toLatitudeBand(latEastward) {
				lat = latPoleward
			} else {
				lat = m.utm.LatLng().Lat.Degrees()
			}
		}
	}

	northp, easting, northing, err := mgrsCheckCoords(utmp, m.utm.northp, m.utm.easting, m.utm.northing)
	if err != nil {
		return "", err
	}

	buf := make([]byte, 0, 2+3+2*maxPrecision)
	if utmp {
		buf = append(buf, digitLetters[m.utm.zone/base], digitLetters[m.utm.zone%base])
	}

	ix := int64(math.Floor(easting * mult))
	iy := int64(math.Floor(northing * mult))
	shift := int64(mult) * int64(tile)
	xh := int(ix / shift)
	yh := int(iy / shift)

	if utmp {
		bandIdx := toLatitudeBand(lat)
		if math.Abs(lat) < angEps {
			// Correct fuzziness in latitude near the equator.
			bandIdx = -1
			if northp {
				bandIdx = 0
			}
		}
		colIdx := xh - minUTMCol
		rowIdx := utmRow(bandIdx, colIdx, yh%utmRowPeriod)
		expect := yh - minUTMNorthRow
		if !northp {
			expect = yh - maxUTMSouthRow
		}
		if rowIdx != expect {
			return "", fmt.Errorf("%w: latitude %g is inconsistent with UTM northing %g",
				ErrInvalidMgrs, lat, m.utm.northing)
		}
		buf = append(buf, latBandLetters[10+bandIdx])
		if m.precision >= 0 {
			buf = append(buf, utmColLetters[(m.utm.zone-1)%3][colIdx])
			rowShift := 0
			if (m.utm.zone-1)%2 == 1 {
				rowShift = utmEvenRowShift
			}
			buf = append(buf, utmRowLetters[(yh+rowShift)%utmRowPeriod])
		}
	} else {
		eastp := xh >= upsEastingInd
		bandIdx := boolIdx(northp)*2 + boolIdx(eastp)
		buf = append(buf, upsBandLetters[bandIdx])
		if m.precision >= 0 {
			colOff := minUPSSouthInd
			switch {
			case eastp:
				colOff = upsEastingInd
			case northp:
				colOff = minUPSNorthInd
			}
			buf = append(buf, upsColLetters[bandIdx][xh-colOff])
			rowOff := minUPSSouthInd
			if northp {
				rowOff = minUPSNorthInd
			}
			buf = append(buf, upsRowLetters[boolIdx(northp)][yh-rowOff])
		}
	}

	if m.precision > 0 {
		ixr := ix - shift*int64(xh)
		iyr := iy - shift*int64(yh)
		d := int64(1)
		for i := 0; i < maxPrecision-m.precision; i++ {
			d *= base
		}
		ixr /= d
		iyr /= d
		start := len(buf)
		buf = append(buf, make([]byte, 2*m.precision)...)
		for c := m.precision - 1; c >= 0; c-- {
			buf[start+c] = digitLetters[ixr%base]
			ixr /= base
			buf[start+c+m.precision] = digitLetters[iyr%base]
			iyr /= base
		}
	}
	return string(buf), nil
}
