package geoconvert

import "math"

// polarStereographic is the polar stereographic projection used for the UPS
// caps. Like transverseMercator it is immutable after construction.
type polarStereographic struct {
	a  float64
	k0 float64
	es float64
	c  float64
}

func newPolarStereographic(a, f, k0 float64) *polarStereographic {
	e2 := f * (2 - f)
	es := math.Sqrt(math.Abs(e2))
	if f < 0 {
		es = -es
	}
	return &polarStereographic{
		a:  a,
		k0: k0,
		es: es,
		c:  (1 - f) * math.Exp(eatanhe(1, es)),
	}
}

// forward projects (lat, lon) in degrees to easting/northing offsets in
// meters centered on the pole. The southern cap folds onto the northern
// formula by negating the latitude.
func (p *polarStereographic) forward(northp bool, lat, lon float64) (x, y float64) {
	if !northp {
		lat = -lat
	}

	tau := math.Tan(lat * math.Pi / 180)
	taup := taupf(tau, p.es)
	rho := math.Hypot(1, taup) + math.Abs(taup)
	if taup >= 0 {
		if epsEq(lat, quarterTurn) {
			rho = 0
		} else {
			rho = 1 / rho
		}
	}
	rho *= 2 * p.k0 * p.a / p.c

	sinLam, cosLam := math.Sincos(lon * math.Pi / 180)
	x = sinLam * rho
	y = cosLam * rho
	if northp {
		y = -y
	}
	return x, y
}

// reverse projects easting/northing offsets back to (lat, lon) in degrees.
func (p *polarStereographic) reverse(northp bool, x, y float64) (lat, lon float64) {
	rho := math.Hypot(x, y)
	t := epsilon * epsilon
	if rho != 0 {
		t = rho / (2 * p.k0 * p.a / p.c)
	}
	taup := (1/t - t) / 2
	tau := tauf(taup, p.es)

	lat = math.Atan(tau) * 180 / math.Pi
	if !northp {
		lat = -lat
	}
	yy := y
	if northp {
		yy = -y
	}
	lon = math.Atan2(x, yy) * 180 / math.Pi
	return lat, lon
}
