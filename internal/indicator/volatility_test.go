package indicator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVolatilityStdFlatSeriesIsZero(t *testing.T) {
	bars := mkBars(12, func(i int) float64 { return 100 })

	vol := Volatility(bars, 5, MethodStd, DailyBarsPerYear)
	require.Len(t, vol, 12)

	for i := 0; i < 5; i++ {
		assert.False(t, vol[i].Valid, "index %d should have no full return window", i)
	}
	for i := 5; i < 12; i++ {
		require.True(t, vol[i].Valid)
		assert.Zero(t, vol[i].Value)
	}
}

func TestVolatilityStdAnnualizes(t *testing.T) {
	// Alternating +1%/-1% style moves give a known return spread.
	bars := mkBars(10, func(i int) float64 {
		if i%2 == 0 {
			return 100
		}
		return 101
	})

	vol := Volatility(bars, 4, MethodStd, DailyBarsPerYear)
	require.True(t, vol[4].Valid)

	// Returns over bars 1..4: +0.01, -1/101, +0.01, -1/101.
	r1, r2 := 0.01, -1.0/101.0
	mean := (2*r1 + 2*r2) / 4
	var ss float64
	for _, r := range []float64{r1, r2, r1, r2} {
		ss += (r - mean) * (r - mean)
	}
	want := math.Sqrt(ss/3) * math.Sqrt(DailyBarsPerYear)
	assert.InDelta(t, want, vol[4].Value, 1e-9)
}

func TestVolatilityParkinsonFlatRangeIsZero(t *testing.T) {
	bars := mkBars(8, func(i int) float64 { return 100 })
	for i := range bars {
		bars[i].Open, bars[i].High, bars[i].Low = 100, 100, 100
	}

	vol := Volatility(bars, 4, MethodParkinson, DailyBarsPerYear)
	assert.False(t, vol[2].Valid)
	for i := 3; i < 8; i++ {
		require.True(t, vol[i].Valid)
		assert.Zero(t, vol[i].Value)
	}
}

func TestVolatilityGarmanKlassNonNegative(t *testing.T) {
	bars := mkBars(30, func(i int) float64 { return 100 + 5*math.Sin(float64(i)) })

	vol := Volatility(bars, 10, MethodGarmanKlass, DailyBarsPerYear)
	for i, p := range vol {
		if p.Valid {
			assert.GreaterOrEqual(t, p.Value, 0.0, "index %d", i)
		}
	}
	assert.True(t, vol[len(vol)-1].Valid)
}

func TestVolatilityWindowLargerThanSeries(t *testing.T) {
	bars := mkBars(3, func(i int) float64 { return 100 })

	for _, method := range []string{MethodStd, MethodGarmanKlass, MethodParkinson} {
		vol := Volatility(bars, 5, method, DailyBarsPerYear)
		require.Len(t, vol, 3)
		for _, p := range vol {
			assert.False(t, p.Valid)
		}
	}
}
