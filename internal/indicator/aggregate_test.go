package indicator

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TrendSight/internal/domain/models"
)

func mkBars(n int, closeAt func(i int) float64) []models.Bar {
	t0 := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	bars := make([]models.Bar, n)
	for i := range bars {
		c := closeAt(i)
		o := c
		if i > 0 {
			o = closeAt(i - 1)
		}
		hi, lo := c, c
		if o > hi {
			hi = o
		}
		if o < lo {
			lo = o
		}
		bars[i] = models.Bar{
			Date:   t0.AddDate(0, 0, i),
			Open:   o,
			High:   hi + 1,
			Low:    lo - 1,
			Close:  c,
			Volume: int64(1000 + i),
		}
	}
	return bars
}

func TestAggregateWeeklyDropsPartialOldestWeek(t *testing.T) {
	daily := mkBars(12, func(i int) float64 { return 100 + float64(i) })

	weekly, err := AggregateWeekly(daily)
	require.NoError(t, err)
	require.Len(t, weekly, 2)

	// 12 % 5 == 2, so the first week is daily[2:7].
	first := weekly[0]
	assert.Equal(t, daily[6].Date, first.Date)
	assert.Equal(t, daily[2].Open, first.Open)
	assert.Equal(t, daily[6].Close, first.Close)

	var wantHigh, wantVol = daily[2].High, int64(0)
	wantLow := daily[2].Low
	for _, b := range daily[2:7] {
		if b.High > wantHigh {
			wantHigh = b.High
		}
		if b.Low < wantLow {
			wantLow = b.Low
		}
		wantVol += b.Volume
	}
	assert.Equal(t, wantHigh, first.High)
	assert.Equal(t, wantLow, first.Low)
	assert.Equal(t, wantVol, first.Volume)
}

func TestAggregateWeeklyExactWeek(t *testing.T) {
	daily := mkBars(5, func(i int) float64 { return 50 })

	weekly, err := AggregateWeekly(daily)
	require.NoError(t, err)
	require.Len(t, weekly, 1)
	assert.Equal(t, daily[4].Date, weekly[0].Date)
}

func TestAggregateWeeklyTooFewBars(t *testing.T) {
	daily := mkBars(4, func(i int) float64 { return 50 })

	_, err := AggregateWeekly(daily)
	var insufficientErr *models.InsufficientDataError
	require.True(t, errors.As(err, &insufficientErr))
	assert.Equal(t, 5, insufficientErr.Need)
	assert.Equal(t, 4, insufficientErr.Have)
}

func TestAggregateWeeklyDoesNotAliasInput(t *testing.T) {
	daily := mkBars(10, func(i int) float64 { return 100 + float64(i) })

	weekly, err := AggregateWeekly(daily)
	require.NoError(t, err)

	daily[0].Close = -1
	daily[9].Volume = -1
	assert.Equal(t, daily[4].Date, weekly[0].Date)
	assert.Positive(t, weekly[1].Volume)
}
