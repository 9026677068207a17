package geoconvert

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAngNormalize(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{90, 90},
		{180, 180},
		{-180, -180},
		{181, -179},
		{-181, 179},
		{360, 0},
		{540, 180},
		{-540, -180},
		{720, 0},
	}
	for _, c := range cases {
		assert.InDelta(t, c.want, angNormalize(c.in), 1e-12, "angNormalize(%v)", c.in)
	}
}

func TestAngDiff(t *testing.T) {
	assert.InDelta(t, 1, angDiff(90, 91), 1e-12)
	assert.InDelta(t, -1, angDiff(91, 90), 1e-12)
	assert.InDelta(t, -2, angDiff(-179, 179), 1e-12)
	assert.InDelta(t, 2, angDiff(179, -179), 1e-12)
	assert.InDelta(t, 0, angDiff(0, 360), 1e-12)
}

func TestTaupfTaufRoundTrip(t *testing.T) {
	es := wgs84Es(t)
	for lat := -85.0; lat <= 85.0; lat += 2.5 {
		tau := math.Tan(lat * math.Pi / halfTurn)
		taup := taupf(tau, es)
		got := tauf(taup, es)
		assert.InDelta(t, tau, got, 1e-12*(1+math.Abs(tau)), "lat %v", lat)
	}
}

func TestEatanhe(t *testing.T) {
	es := wgs84Es(t)
	want := es * math.Atanh(es*0.5)
	assert.InDelta(t, want, eatanhe(0.5, es), 1e-15)
	assert.InDelta(t, 0, eatanhe(0, es), 0)
}

func TestPolyval(t *testing.T) {
	assert.Equal(t, 18.0, polyval([]float64{2, 3, 4}, 2))
	assert.Equal(t, 4.0, polyval([]float64{4}, 7))
	assert.Equal(t, 0.0, polyval(nil, 7))
}

func wgs84Es(t *testing.T) float64 {
	t.Helper()
	f := wgs84F
	return math.Sqrt(f * (2 - f))
}
