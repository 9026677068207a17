package geoconvert

import "math"

// Angle unit constants (degrees).
const (
	quarterTurn = 90
	halfTurn    = 2 * quarterTurn
	fullTurn    = 2 * halfTurn
)

// Floating point tolerances. All are fixed functions of the float64 machine
// epsilon; keeping them as untyped constants avoids any runtime
// initialization.
const (
	// epsilon is the float64 machine epsilon, 2^-52.
	epsilon = 0x1p-52
	// angEps is the latitude fuzz used when picking a band letter during
	// MGRS formatting, 2^-(53-7).
	angEps = 0x1p-46
	// mgrsEps is the nudge applied to coordinates sitting exactly on the
	// upper edge of the MGRS window, 2^-(53-25).
	mgrsEps = 0x1p-28
)

func isZero(x float64) bool {
	return math.Abs(x) < epsilon
}

func epsEq(x, y float64) bool {
	return math.Abs(x-y) < epsilon
}

// sumErr computes s = u + v exactly, returning the sum and the error term t
// such that s + t == u + v in exact arithmetic.
func sumErr(u, v float64) (s, t float64) {
	s = u + v
	up := s - v
	vpp := s - up
	up -= u
	vpp -= v
	if isZero(s) {
		t = s
	} else {
		t = -(up + vpp)
	}
	return s, t
}

// angNormalize reduces an angle in degrees to (-180, 180], keeping the sign
// of the input when the magnitude is exactly 180.
func angNormalize(x float64) float64 {
	y := math.Remainder(x, fullTurn)
	if epsEq(math.Abs(y), halfTurn) {
		return math.Copysign(halfTurn, x)
	}
	return y
}

// angDiff computes y - x reduced to (-180, 180]. The two-term sum keeps
// sub-ULP accuracy across the branch cut; at the +/-180 boundary the sign
// follows the raw difference rather than the reduced one.
func angDiff(x, y float64) float64 {
	// Use remainder instead of angNormalize so the boundary cases can be
	// resolved with the error term afterwards.
	d, e := sumErr(math.Remainder(-x, fullTurn), math.Remainder(y, fullTurn))
	// This second sum can only change d if |d| < 128, so remainder need not
	// be applied again.
	d, e = sumErr(math.Remainder(d, fullTurn), e)
	if isZero(d) || epsEq(math.Abs(d), halfTurn) {
		// If e == 0, take the sign from y - x; otherwise d = +/-180 and d
		// and e must have opposite signs.
		if isZero(e) {
			return math.Copysign(d, y-x)
		}
		return math.Copysign(d, -e)
	}
	return d
}

// eatanhe returns es*atanh(es*x) for es >= 0, and -es*atanh(-es*x) for a
// prolate ellipsoid where es < 0.
func eatanhe(x, es float64) float64 {
	if math.Signbit(es) {
		return -es * math.Atanh(-es*x)
	}
	return es * math.Atanh(es*x)
}

// taupf maps tau = tan(phi) to tau' = tan(chi), the tangent of the conformal
// latitude.
func taupf(tau, es float64) float64 {
	tau1 := math.Hypot(1, tau)
	sig := math.Sinh(eatanhe(tau/tau1, es))
	return math.Hypot(1, sig)*tau - sig*tau1
}

// tauf inverts taupf by Newton iteration seeded from a closed-form
// approximation. The iteration count and tolerance are part of the numeric
// contract: exactly 5 steps, stopping early once the update falls below
// sqrt(eps)/10 relative to the input.
func tauf(taup, es float64) float64 {
	const numit = 5
	tol := math.Sqrt(epsilon) / 10

	e2m := 1 - es*es
	var tau float64
	if math.Abs(taup) > 70 {
		// tan(chi) is large; overflow-safe seed via the exponential of the
		// correction term.
		tau = taup * math.Exp(eatanhe(1, es))
	} else {
		tau = taup / e2m
	}

	stol := tol * math.Max(math.Abs(taup), 1)
	for i := 0; i < numit; i++ {
		taupa := taupf(tau, es)
		dtau := (taup - taupa) * (1 + e2m*tau*tau) /
			(e2m * math.Hypot(1, tau) * math.Hypot(1, taupa))
		tau += dtau
		if math.Abs(dtau) < stol {
			break
		}
	}
	return tau
}

// polyval evaluates a polynomial with coefficients p (highest degree first)
// at x by Horner's method.
func polyval(p []float64, x float64) float64 {
	y := 0.0
	for _, c := range p {
		y = y*x + c
	}
	return y
}
