package signal

import (
	"iter"

	"TrendSight/internal/domain/models"
	"TrendSight/internal/indicator"
)

// Generator walks an indicator set and scores each daily bar. It is a
// pure view over the set: iterating never mutates state, so the same
// generator can be replayed any number of times with identical output.
type Generator struct {
	set    *indicator.Set
	params Params
}

// NewGenerator builds a generator over a computed indicator set.
func NewGenerator(set *indicator.Set, p Params) (*Generator, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &Generator{set: set, params: p}, nil
}

// Signals returns a lazy sequence of signals in chronological order.
// Bars are scored one at a time as the consumer pulls; breaking out of
// the range stops all work. The sequence is finite and restartable.
func (g *Generator) Signals() iter.Seq[models.Signal] {
	return func(yield func(models.Signal) bool) {
		for i := range g.set.Bars {
			s, ok := g.scoreBar(i)
			if !ok {
				continue
			}
			if !yield(s) {
				return
			}
		}
	}
}

// All collects the full sequence into a slice.
func (g *Generator) All() []models.Signal {
	var out []models.Signal
	for s := range g.Signals() {
		out = append(out, s)
	}
	return out
}

// scoreBar evaluates one daily bar. A bar is scorable only when every
// indicator on both timeframes is defined there; warmup bars and bars
// with undefined VWAP produce nothing.
func (g *Generator) scoreBar(i int) (models.Signal, bool) {
	set := g.set
	if !set.DailyVolatility[i].Valid || !set.WeeklyVolatility[i].Valid ||
		!set.DailyStochRSI[i].Valid || !set.WeeklyStochRSI[i].Valid ||
		!set.DailyBollinger[i].Valid || !set.WeeklyBollinger[i].Valid ||
		!set.DailyVWAP[i].Valid || !set.WeeklyVWAP[i].Valid {
		return models.Signal{}, false
	}

	bar := set.Bars[i]
	score := 0
	score += g.stochScore(set.DailyStochRSI, i)
	score += g.stochScore(set.WeeklyStochRSI, i)
	score += bollingerScore(bar.Close, set.DailyBollinger[i])
	score += bollingerScore(bar.Close, set.WeeklyBollinger[i])
	score += vwapScore(bar.Close, set.DailyVWAP[i])
	score += vwapScore(bar.Close, set.WeeklyVWAP[i])

	// Elevated daily volatility halves conviction, truncating toward
	// zero, so a borderline score drops below the firing threshold.
	if set.DailyVolatility[i].Value > g.params.HighVolatility {
		score /= 2
	}

	var dir models.Direction
	var target, stop float64
	switch {
	case score >= g.params.StrengthThreshold:
		dir = models.Buy
		target = bar.Close * (1 + g.params.TargetPct)
		stop = bar.Close * (1 - g.params.StopLossPct)
	case score <= -g.params.StrengthThreshold:
		dir = models.Sell
		target = bar.Close * (1 - g.params.TargetPct)
		stop = bar.Close * (1 + g.params.StopLossPct)
	default:
		return models.Signal{}, false
	}

	return models.Signal{
		Date:          bar.Date,
		Symbol:        set.Symbol,
		Direction:     dir,
		CurrentPrice:  bar.Close,
		TargetPrice:   target,
		StopLossPrice: stop,
		Strength:      score,

		DailyVolatility:  set.DailyVolatility[i].Value,
		WeeklyVolatility: set.WeeklyVolatility[i].Value,
		DailyStochK:      set.DailyStochRSI[i].K,
		DailyStochD:      set.DailyStochRSI[i].D,
		WeeklyStochK:     set.WeeklyStochRSI[i].K,
		WeeklyStochD:     set.WeeklyStochRSI[i].D,
		DailyVWAP:        set.DailyVWAP[i].Value,
		WeeklyVWAP:       set.WeeklyVWAP[i].Value,
	}, true
}

// stochScore detects a %K/%D crossover between the previous bar and
// this one, gated by the oversold/overbought bands. No defined previous
// point means no crossover to detect.
func (g *Generator) stochScore(series []indicator.StochRSIPoint, i int) int {
	if i == 0 || !series[i-1].Valid {
		return 0
	}
	cur, prev := series[i], series[i-1]
	switch {
	case cur.K > cur.D && prev.K <= prev.D && cur.K < g.params.Oversold:
		return 1
	case cur.K < cur.D && prev.K >= prev.D && cur.K > g.params.Overbought:
		return -1
	}
	return 0
}

// bollingerScore rewards a close beyond the bands: below the lower band
// is a reversion buy, above the upper a reversion sell.
func bollingerScore(close float64, b indicator.BandsPoint) int {
	switch {
	case close < b.Lower:
		return 1
	case close > b.Upper:
		return -1
	}
	return 0
}

// vwapScore reads trade bias from the close relative to VWAP.
func vwapScore(close float64, v indicator.Point) int {
	switch {
	case close > v.Value:
		return 1
	case close < v.Value:
		return -1
	}
	return 0
}
