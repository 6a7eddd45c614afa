package indicator

import (
	"github.com/montanaflynn/stats"

	"TrendSight/internal/domain/models"
)

// Bollinger computes Bollinger Bands on closes: an SMA middle band with
// upper/lower at middle +/- k sample standard deviations over the same
// window. Upper >= Middle >= Lower holds for every valid point when
// k >= 0.
func Bollinger(bars []models.Bar, window int, k float64) []BandsPoint {
	out := make([]BandsPoint, len(bars))
	if window < 2 || len(bars) < window {
		return out
	}

	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}

	for i := window - 1; i < len(bars); i++ {
		win := closes[i-window+1 : i+1]
		mid, err := stats.Mean(win)
		if err != nil {
			continue
		}
		sd, err := stats.StandardDeviationSample(win)
		if err != nil {
			continue
		}
		out[i] = BandsPoint{
			Upper:  mid + k*sd,
			Middle: mid,
			Lower:  mid - k*sd,
			Valid:  true,
		}
	}
	return out
}
