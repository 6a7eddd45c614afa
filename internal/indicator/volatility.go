package indicator

import (
	"math"

	"github.com/montanaflynn/stats"

	"TrendSight/internal/domain/models"
)

// Annualization factors by bar resolution.
const (
	DailyBarsPerYear  = 252
	WeeklyBarsPerYear = 52
)

// Volatility computes a rolling volatility series aligned to bars.
// Points are invalid until `window` lookback bars are available.
//
// Methods:
//   - std: sample standard deviation of simple returns, annualized.
//   - garman_klass: OHLC range estimator, rolling mean of per-bar terms.
//   - parkinson: high/low range estimator, rolling mean of per-bar terms.
func Volatility(bars []models.Bar, window int, method string, barsPerYear float64) []Point {
	out := make([]Point, len(bars))
	if window < 2 || len(bars) == 0 {
		return out
	}
	ann := math.Sqrt(barsPerYear)

	switch method {
	case MethodGarmanKlass, MethodParkinson:
		terms := make([]float64, len(bars))
		for i, b := range bars {
			hl := math.Log(b.High / b.Low)
			if method == MethodParkinson {
				terms[i] = hl * hl / (4 * math.Ln2)
			} else {
				co := math.Log(b.Close / b.Open)
				terms[i] = 0.5*hl*hl - (2*math.Ln2-1)*co*co
			}
		}
		for i := window - 1; i < len(bars); i++ {
			m, err := stats.Mean(terms[i-window+1 : i+1])
			if err != nil {
				continue
			}
			// The rolling mean is a per-bar variance; it can go slightly
			// negative on pathological bars, and the series is defined
			// as non-negative.
			out[i] = Point{Value: math.Sqrt(math.Max(0, m) * barsPerYear), Valid: true}
		}
	default: // MethodStd
		returns := make([]float64, len(bars)) // returns[0] unused
		for i := 1; i < len(bars); i++ {
			returns[i] = (bars[i].Close - bars[i-1].Close) / bars[i-1].Close
		}
		// A point needs `window` returns, the first of which exists at
		// index 1, so the series starts at index `window`.
		for i := window; i < len(bars); i++ {
			sd, err := stats.StandardDeviationSample(returns[i-window+1 : i+1])
			if err != nil {
				continue
			}
			out[i] = Point{Value: sd * ann, Valid: true}
		}
	}
	return out
}
