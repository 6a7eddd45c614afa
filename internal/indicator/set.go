package indicator

import (
	"time"

	"TrendSight/internal/domain/models"
)

// Moving average windows reported alongside the scored indicators.
const (
	SMAFastWindow = 10
	SMASlowWindow = 20
)

// Set is the full multi-timeframe indicator set for one symbol, with
// every series aligned to the daily date axis. Weekly values are
// forward-filled: a completed week's value is repeated across each of
// that week's daily dates, so the oldest len(daily)%5 days (which
// belong to no complete week) stay undefined on the weekly series.
type Set struct {
	Symbol string
	Bars   []models.Bar
	Dates  []time.Time

	DailyVolatility  []Point
	WeeklyVolatility []Point

	DailyStochRSI  []StochRSIPoint
	WeeklyStochRSI []StochRSIPoint

	DailyBollinger  []BandsPoint
	WeeklyBollinger []BandsPoint

	DailyVWAP  []Point
	WeeklyVWAP []Point

	// DailyVWAPDev is the percent deviation of close from daily VWAP,
	// a diagnostic series that is never scored.
	DailyVWAPDev []Point

	SMAFast []Point
	SMASlow []Point
}

// Build computes the complete indicator set from a validated daily bar
// sequence. At least one full trading week of bars is required.
func Build(symbol string, daily []models.Bar, p Params) (*Set, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	weekly, err := AggregateWeekly(daily)
	if err != nil {
		return nil, err
	}

	// The set owns its bars; later mutation of the caller's slice must
	// not change already-computed series.
	bars := make([]models.Bar, len(daily))
	copy(bars, daily)
	daily = bars

	dates := make([]time.Time, len(daily))
	for i, b := range daily {
		dates[i] = b.Date
	}

	s := &Set{
		Symbol: symbol,
		Bars:   daily,
		Dates:  dates,

		DailyVolatility: Volatility(daily, p.VolatilityWindow, p.VolatilityMethod, DailyBarsPerYear),
		DailyStochRSI:   StochRSI(daily, p.RSIWindow, p.StochWindow, p.KSmooth, p.DSmooth),
		DailyBollinger:  Bollinger(daily, p.BollingerWindow, p.BollingerK),
		DailyVWAP:       VWAP(daily, p.VWAPWindow),

		SMAFast: SMA(daily, SMAFastWindow),
		SMASlow: SMA(daily, SMASlowWindow),
	}
	s.DailyVWAPDev = VWAPDeviation(daily, s.DailyVWAP)

	skip := len(daily) % TradingDaysPerWeek
	s.WeeklyVolatility = fillDaily(Volatility(weekly, p.WeeklyVolatilityWindow, p.VolatilityMethod, WeeklyBarsPerYear), len(daily), skip)
	s.WeeklyStochRSI = fillDaily(StochRSI(weekly, p.RSIWindow, p.StochWindow, p.KSmooth, p.DSmooth), len(daily), skip)
	s.WeeklyBollinger = fillDaily(Bollinger(weekly, p.WeeklyBollingerWindow, p.BollingerK), len(daily), skip)
	s.WeeklyVWAP = fillDaily(VWAP(weekly, p.VWAPWindow), len(daily), skip)

	return s, nil
}

// fillDaily expands a weekly series onto the daily axis. Week j covers
// daily indices skip+5j .. skip+5j+4; indices before skip have no
// completed week and keep the zero (invalid) value.
func fillDaily[T any](weekly []T, dailyLen, skip int) []T {
	out := make([]T, dailyLen)
	for j := range weekly {
		start := skip + j*TradingDaysPerWeek
		for d := start; d < start+TradingDaysPerWeek && d < dailyLen; d++ {
			out[d] = weekly[j]
		}
	}
	return out
}
