package indicator

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TrendSight/internal/domain/models"
)

func TestBuildAlignsAllSeriesToDailyAxis(t *testing.T) {
	bars := mkBars(60, func(i int) float64 { return 100 + 10*math.Sin(0.7*float64(i)) })

	set, err := Build("AAPL", bars, DefaultParams())
	require.NoError(t, err)

	assert.Equal(t, "AAPL", set.Symbol)
	n := len(bars)
	assert.Len(t, set.Dates, n)
	assert.Len(t, set.DailyVolatility, n)
	assert.Len(t, set.WeeklyVolatility, n)
	assert.Len(t, set.DailyStochRSI, n)
	assert.Len(t, set.WeeklyStochRSI, n)
	assert.Len(t, set.DailyBollinger, n)
	assert.Len(t, set.WeeklyBollinger, n)
	assert.Len(t, set.DailyVWAP, n)
	assert.Len(t, set.WeeklyVWAP, n)
	assert.Len(t, set.SMAFast, n)
	assert.Len(t, set.SMASlow, n)
	assert.Len(t, set.DailyVWAPDev, n)
}

func TestBuildCopiesInputBars(t *testing.T) {
	bars := mkBars(10, func(i int) float64 { return 100 + float64(i) })

	set, err := Build("GOOG", bars, DefaultParams())
	require.NoError(t, err)

	orig := set.Bars[0].Close
	bars[0].Close = -1
	assert.Equal(t, orig, set.Bars[0].Close)
}

func TestBuildForwardFillsWeeklyValues(t *testing.T) {
	// 23 daily bars: skip = 3, four complete weeks.
	bars := mkBars(23, func(i int) float64 { return 100 + float64(i) })

	p := DefaultParams()
	set, err := Build("MSFT", bars, p)
	require.NoError(t, err)

	// Days belonging to no complete week carry no weekly value.
	for i := 0; i < 3; i++ {
		assert.False(t, set.WeeklyVWAP[i].Valid, "index %d", i)
	}

	// Each completed week's VWAP repeats across its five daily dates.
	for j := 0; j < 4; j++ {
		start := 3 + j*TradingDaysPerWeek
		first := set.WeeklyVWAP[start]
		require.True(t, first.Valid, "week %d", j)
		for d := start + 1; d < start+TradingDaysPerWeek; d++ {
			assert.Equal(t, first, set.WeeklyVWAP[d], "week %d day %d", j, d)
		}
	}

	// Weekly Bollinger needs 4 weekly bars, so only the last week's
	// daily dates carry a value.
	assert.False(t, set.WeeklyBollinger[17].Valid)
	for d := 18; d < 23; d++ {
		assert.True(t, set.WeeklyBollinger[d].Valid, "index %d", d)
	}
}

func TestBuildWeeklyValueChangesAtWeekBoundary(t *testing.T) {
	bars := mkBars(20, func(i int) float64 { return 100 + float64(i) })

	set, err := Build("NVDA", bars, DefaultParams())
	require.NoError(t, err)

	// skip == 0 here; week 0 covers days 0..4, week 1 days 5..9.
	require.True(t, set.WeeklyVWAP[4].Valid)
	require.True(t, set.WeeklyVWAP[5].Valid)
	assert.NotEqual(t, set.WeeklyVWAP[4].Value, set.WeeklyVWAP[5].Value)
}

func TestBuildRequiresFullWeek(t *testing.T) {
	bars := mkBars(4, func(i int) float64 { return 100 })

	_, err := Build("TSLA", bars, DefaultParams())
	var insufficientErr *models.InsufficientDataError
	require.True(t, errors.As(err, &insufficientErr))
}

func TestBuildRejectsBadParams(t *testing.T) {
	bars := mkBars(30, func(i int) float64 { return 100 })

	p := DefaultParams()
	p.VolatilityMethod = "ewma"
	_, err := Build("AMD", bars, p)
	require.Error(t, err)
}
