package indicator

import (
	"math"

	"github.com/montanaflynn/stats"

	"TrendSight/internal/domain/models"
)

// SMA computes a simple moving average of closes over the given window.
func SMA(bars []models.Bar, window int) []Point {
	out := make([]Point, len(bars))
	if window < 1 || len(bars) < window {
		return out
	}
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	for i := window - 1; i < len(bars); i++ {
		m, err := stats.Mean(closes[i-window+1 : i+1])
		if err != nil {
			continue
		}
		out[i] = Point{Value: m, Valid: true}
	}
	return out
}

// MAsClose reports whether two moving averages are within thresholdPct
// of each other (relative to the slower one) at index i. Used as a
// consolidation diagnostic, not scored.
func MAsClose(fast, slow []Point, i int, thresholdPct float64) bool {
	if i >= len(fast) || i >= len(slow) || !fast[i].Valid || !slow[i].Valid || slow[i].Value == 0 {
		return false
	}
	return math.Abs(fast[i].Value-slow[i].Value)/slow[i].Value <= thresholdPct
}
