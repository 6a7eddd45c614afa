package indicator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBollingerFlatSeriesCollapses(t *testing.T) {
	bars := mkBars(10, func(i int) float64 { return 100 })

	bands := Bollinger(bars, 4, 2)
	require.Len(t, bands, 10)

	for i := 0; i < 3; i++ {
		assert.False(t, bands[i].Valid, "index %d", i)
	}
	for i := 3; i < 10; i++ {
		require.True(t, bands[i].Valid)
		assert.Equal(t, 100.0, bands[i].Middle)
		assert.Equal(t, 100.0, bands[i].Upper)
		assert.Equal(t, 100.0, bands[i].Lower)
	}
}

func TestBollingerBandOrdering(t *testing.T) {
	bars := mkBars(50, func(i int) float64 { return 100 + 8*math.Sin(0.5*float64(i)) })

	bands := Bollinger(bars, 20, 2)
	for i, b := range bands {
		if !b.Valid {
			continue
		}
		assert.GreaterOrEqual(t, b.Upper, b.Middle, "index %d", i)
		assert.GreaterOrEqual(t, b.Middle, b.Lower, "index %d", i)
	}
	assert.True(t, bands[len(bands)-1].Valid)
}

func TestBollingerKnownWindow(t *testing.T) {
	bars := mkBars(4, func(i int) float64 { return []float64{10, 12, 14, 16}[i] })

	bands := Bollinger(bars, 4, 2)
	require.True(t, bands[3].Valid)

	mid := 13.0
	var ss float64
	for _, c := range []float64{10, 12, 14, 16} {
		ss += (c - mid) * (c - mid)
	}
	sd := math.Sqrt(ss / 3)
	assert.InDelta(t, mid, bands[3].Middle, 1e-9)
	assert.InDelta(t, mid+2*sd, bands[3].Upper, 1e-9)
	assert.InDelta(t, mid-2*sd, bands[3].Lower, 1e-9)
}

func TestBollingerSeriesShorterThanWindow(t *testing.T) {
	bars := mkBars(5, func(i int) float64 { return 100 })

	bands := Bollinger(bars, 20, 2)
	require.Len(t, bands, 5)
	for _, b := range bands {
		assert.False(t, b.Valid)
	}
}
