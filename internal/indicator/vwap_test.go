package indicator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVWAPConstantTypicalPrice(t *testing.T) {
	bars := mkBars(10, func(i int) float64 { return 100 })
	for i := range bars {
		bars[i].Open, bars[i].High, bars[i].Low, bars[i].Close = 100, 100, 100, 100
	}

	vwap := VWAP(bars, 0)
	require.Len(t, vwap, 10)
	for i, p := range vwap {
		require.True(t, p.Valid, "index %d", i)
		assert.InDelta(t, 100.0, p.Value, 1e-9)
	}
}

func TestVWAPCumulativeWeighting(t *testing.T) {
	bars := mkBars(2, func(i int) float64 { return 100 })
	bars[0].High, bars[0].Low, bars[0].Close, bars[0].Volume = 100, 100, 100, 100
	bars[1].High, bars[1].Low, bars[1].Close, bars[1].Volume = 200, 200, 200, 300

	vwap := VWAP(bars, 0)
	require.True(t, vwap[1].Valid)
	// (100*100 + 200*300) / 400
	assert.InDelta(t, 175.0, vwap[1].Value, 1e-9)
}

func TestVWAPZeroVolumeIsUndefined(t *testing.T) {
	bars := mkBars(6, func(i int) float64 { return 100 })
	for i := 0; i < 3; i++ {
		bars[i].Volume = 0
	}

	vwap := VWAP(bars, 0)
	for i := 0; i < 3; i++ {
		assert.False(t, vwap[i].Valid, "index %d has zero cumulative volume", i)
	}
	for i := 3; i < 6; i++ {
		assert.True(t, vwap[i].Valid, "index %d", i)
	}
}

func TestVWAPTrailingWindow(t *testing.T) {
	bars := mkBars(5, func(i int) float64 { return 100 })
	for i := range bars {
		bars[i].Open, bars[i].High, bars[i].Low = 100, 100, 100
		bars[i].Volume = 10
	}
	bars[4].High, bars[4].Low, bars[4].Close = 130, 130, 130

	vwap := VWAP(bars, 2)
	assert.False(t, vwap[0].Valid)
	require.True(t, vwap[4].Valid)
	// Window covers bars 3 and 4 only: (100*10 + 130*10) / 20.
	assert.InDelta(t, 115.0, vwap[4].Value, 1e-9)
}

func TestVWAPDeviation(t *testing.T) {
	bars := mkBars(3, func(i int) float64 { return 100 })
	vwap := []Point{{Value: 100, Valid: true}, {}, {Value: 80, Valid: true}}
	bars[2].Close = 100

	dev := VWAPDeviation(bars, vwap)
	require.True(t, dev[0].Valid)
	assert.InDelta(t, 0.0, dev[0].Value, 1e-9)
	assert.False(t, dev[1].Valid)
	require.True(t, dev[2].Valid)
	assert.InDelta(t, 25.0, dev[2].Value, 1e-9)
}
