package indicator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRSIMonotonicGainsIsHundred(t *testing.T) {
	bars := mkBars(30, func(i int) float64 { return 100 + float64(i) })

	rsi := RSI(bars, 14)
	require.Len(t, rsi, 30)

	for i := 0; i < 14; i++ {
		assert.False(t, rsi[i].Valid, "index %d should be before the seed window", i)
	}
	for i := 14; i < 30; i++ {
		require.True(t, rsi[i].Valid)
		assert.Equal(t, 100.0, rsi[i].Value)
	}
}

func TestRSIMonotonicLossesIsZero(t *testing.T) {
	bars := mkBars(30, func(i int) float64 { return 200 - float64(i) })

	rsi := RSI(bars, 14)
	for i := 14; i < 30; i++ {
		require.True(t, rsi[i].Valid)
		assert.Zero(t, rsi[i].Value)
	}
}

func TestRSIBounded(t *testing.T) {
	bars := mkBars(80, func(i int) float64 { return 100 + 10*math.Sin(0.7*float64(i)) })

	rsi := RSI(bars, 14)
	for i, p := range rsi {
		if !p.Valid {
			continue
		}
		assert.GreaterOrEqual(t, p.Value, 0.0, "index %d", i)
		assert.LessOrEqual(t, p.Value, 100.0, "index %d", i)
	}
}

func TestStochRSIBounded(t *testing.T) {
	bars := mkBars(80, func(i int) float64 { return 100 + 10*math.Sin(0.7*float64(i)) })

	stoch := StochRSI(bars, 14, 14, 3, 3)
	require.Len(t, stoch, 80)

	var seenValid bool
	for i, p := range stoch {
		if !p.Valid {
			continue
		}
		seenValid = true
		assert.GreaterOrEqual(t, p.K, 0.0, "index %d", i)
		assert.LessOrEqual(t, p.K, 100.0, "index %d", i)
		assert.GreaterOrEqual(t, p.D, 0.0, "index %d", i)
		assert.LessOrEqual(t, p.D, 100.0, "index %d", i)
	}
	assert.True(t, seenValid, "an 80 bar oscillating series should produce defined points")
}

func TestStochRSIFlatRSIWindowIsUndefined(t *testing.T) {
	// Strictly rising closes pin RSI at 100, so every stochastic window
	// is flat and no point is defined.
	bars := mkBars(60, func(i int) float64 { return 100 + float64(i) })

	stoch := StochRSI(bars, 14, 14, 3, 3)
	for i, p := range stoch {
		assert.False(t, p.Valid, "index %d", i)
	}
}

func TestStochRSILookback(t *testing.T) {
	bars := mkBars(80, func(i int) float64 { return 100 + 10*math.Sin(0.7*float64(i)) })

	stoch := StochRSI(bars, 14, 14, 3, 3)
	// RSI starts at 14, raw %K needs 14 RSI points, %K smoothing 3 and
	// %D smoothing 3 add two bars each.
	firstPossible := 14 + 14 - 1 + 2 + 2
	for i := 0; i < firstPossible; i++ {
		assert.False(t, stoch[i].Valid, "index %d", i)
	}
}
