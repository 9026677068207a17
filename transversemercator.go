package geoconvert

import "math"

// maxpow is the order of the Krüger series.
const maxpow = 6

// Coefficients for the 6th-order Krüger series, as rational polynomials in
// the third flattening n. Each group is the numerator polynomial (highest
// degree first) followed by the common denominator.
var (
	// b1*(n+1), polynomial in n^2 of order 3
	b1Coeff = [5]float64{1, 4, 64, 256, 256}

	alpCoeff = [27]float64{
		// alp[1]/n^1, polynomial in n of order 5
		31564, -66675, 34440, 47250, -100800, 75600, 151200,
		// alp[2]/n^2, polynomial in n of order 4
		-1983433, 863232, 748608, -1161216, 524160, 1935360,
		// alp[3]/n^3, polynomial in n of order 3
		670412, 406647, -533952, 184464, 725760,
		// alp[4]/n^4, polynomial in n of order 2
		6601661, -7732800, 2230245, 7257600,
		// alp[5]/n^5, polynomial in n of order 1
		-13675556, 3438171, 7983360,
		// alp[6]/n^6, polynomial in n of order 0
		212378941, 319334400,
	}

	betCoeff = [27]float64{
		// bet[1]/n^1, polynomial in n of order 5
		384796, -382725, -6720, 932400, -1612800, 1209600, 2419200,
		// bet[2]/n^2, polynomial in n of order 4
		-1118711, 1695744, -1174656, 258048, 80640, 3870720,
		// bet[3]/n^3, polynomial in n of order 3
		22276, -16929, -15984, 12852, 362880,
		// bet[4]/n^4, polynomial in n of order 2
		-830251, -158400, 197865, 7257600,
		// bet[5]/n^5, polynomial in n of order 1
		-435388, 453717, 15966720,
		// bet[6]/n^6, polynomial in n of order 0
		20648693, 638668800,
	}
)

// transverseMercator is the Krüger-series transverse Mercator projection.
// The coefficient tables are derived from the flattening at construction and
// read-only afterwards, so a single instance may be shared freely.
type transverseMercator struct {
	k0  float64
	es  float64
	a1  float64 // equivalent rectifying radius
	alp [maxpow + 1]float64
	bet [maxpow + 1]float64
}

func newTransverseMercator(a, f, k0 float64) *transverseMercator {
	n := f / (2 - f)
	e2 := f * (2 - f)
	es := math.Sqrt(math.Abs(e2))
	if f < 0 {
		es = -es
	}

	t := &transverseMercator{k0: k0, es: es}

	const m = maxpow / 2
	b1 := polyval(b1Coeff[:m+1], n*n) / (b1Coeff[m+1] * (1 + n))
	// a1 is the equivalent radius for computing the circumference of the
	// ellipse.
	t.a1 = b1 * a

	o := 0
	d := n
	for l := 1; l <= maxpow; l++ {
		deg := maxpow - l
		t.alp[l] = d * polyval(alpCoeff[o:o+deg+1], n) / alpCoeff[o+deg+1]
		t.bet[l] = d * polyval(betCoeff[o:o+deg+1], n) / betCoeff[o+deg+1]
		o += deg + 2
		d *= n
	}
	return t
}

// forward projects (lat, lon) in degrees to easting/northing offsets in
// meters relative to the central meridian lon0. The false easting/northing
// offsets are applied by the caller.
func (t *transverseMercator) forward(lon0, lat, lon float64) (x, y float64) {
	lon = angDiff(lon0, lon)

	latSign := 1.0
	if math.Signbit(lat) {
		latSign = -1
	}
	lonSign := 1.0
	if math.Signbit(lon) {
		lonSign = -1
	}
	lat *= latSign
	lon *= lonSign

	// More than 90 degrees from the central meridian maps to the back side
	// of the projection cylinder; reflect into the front side and restore
	// the sign below.
	backside := lon > quarterTurn
	if backside {
		if isZero(lat) {
			latSign = -1
		}
		lon = halfTurn - lon
	}

	sinPhi, cosPhi := math.Sincos(lat * math.Pi / 180)
	sinLam, cosLam := math.Sincos(lon * math.Pi / 180)

	var etap, xip float64
	if epsEq(lat, quarterTurn) {
		// tan is undefined at the pole
		etap = 0
		xip = math.Pi / 2
	} else {
		tau := sinPhi / cosPhi
		taup := taupf(tau, t.es)
		xip = math.Atan2(taup, cosLam)
		etap = math.Asinh(sinLam / math.Hypot(taup, cosLam))
	}

	c0 := math.Cos(2 * xip)
	ch0 := math.Cosh(2 * etap)
	s0 := math.Sin(2 * xip)
	sh0 := math.Sinh(2 * etap)

	// Clenshaw summation of the alpha series in the complex plane.
	a := complex(2*c0*ch0, -2*s0*sh0)
	n := maxpow
	var y0, y1 complex128
	if n%2 == 1 {
		y0 = complex(t.alp[n], 0)
		n--
	}
	for n > 0 {
		y1 = a*y0 - y1 + complex(t.alp[n], 0)
		n--
		y0 = a*y1 - y0 + complex(t.alp[n], 0)
		n--
	}
	a = complex(s0*ch0, c0*sh0)
	y1 = complex(xip, etap) + a*y0

	xi := real(y1)
	eta := imag(y1)
	if backside {
		xi = math.Pi - xi
	}
	y = t.a1 * t.k0 * xi * latSign
	x = t.a1 * t.k0 * eta * lonSign
	return x, y
}

// reverse projects easting/northing offsets back to (lat, lon) in degrees,
// normalizing the longitude relative to the central meridian lon0.
func (t *transverseMercator) reverse(lon0, x, y float64) (lat, lon float64) {
	xi := y / (t.a1 * t.k0)
	eta := x / (t.a1 * t.k0)

	xiSign := 1.0
	if math.Signbit(xi) {
		xiSign = -1
	}
	etaSign := 1.0
	if math.Signbit(eta) {
		etaSign = -1
	}
	xi *= xiSign
	eta *= etaSign

	backside := xi > math.Pi/2
	if backside {
		xi = math.Pi - xi
	}

	c0 := math.Cos(2 * xi)
	ch0 := math.Cosh(2 * eta)
	s0 := math.Sin(2 * xi)
	sh0 := math.Sinh(2 * eta)

	// Clenshaw summation of the beta series.
	a := complex(2*c0*ch0, -2*s0*sh0)
	n := maxpow
	var y0, y1 complex128
	if n%2 == 1 {
		y0 = complex(-t.bet[n], 0)
		n--
	}
	for n > 0 {
		y1 = a*y0 - y1 - complex(t.bet[n], 0)
		n--
		y0 = a*y1 - y0 - complex(t.bet[n], 0)
		n--
	}
	a = complex(s0*ch0, c0*sh0)
	y1 = complex(xi, eta) + a*y0

	xip := real(y1)
	etap := imag(y1)
	s := math.Sinh(etap)
	c := math.Max(0, math.Cos(xip))
	r := math.Hypot(s, c)

	if isZero(r) {
		lat = quarterTurn
		lon = 0
	} else {
		lon = math.Atan2(s, c) * 180 / math.Pi
		tau := tauf(math.Sin(xip)/r, t.es)
		lat = math.Atan(tau) * 180 / math.Pi
	}

	lat *= xiSign
	if backside {
		lon = halfTurn - lon
	}
	lon *= etaSign
	lon = angNormalize(lon + lon0)
	return lat, lon
}
