package indicator

import (
	"github.com/montanaflynn/stats"

	"TrendSight/internal/domain/models"
)

// RSI computes the Relative Strength Index on closes using Wilder's
// smoothing: an SMA seed over the first `window` deltas, then
// avg = (avg*(window-1) + x) / window per bar. A zero average loss is a
// steady-state condition, not an error: RSI is defined as exactly 100.
func RSI(bars []models.Bar, window int) []Point {
	out := make([]Point, len(bars))
	if window < 2 || len(bars) <= window {
		return out
	}

	var avgGain, avgLoss float64
	for i := 1; i <= window; i++ {
		delta := bars[i].Close - bars[i-1].Close
		if delta > 0 {
			avgGain += delta
		} else {
			avgLoss -= delta
		}
	}
	avgGain /= float64(window)
	avgLoss /= float64(window)
	out[window] = Point{Value: rsiFromAverages(avgGain, avgLoss), Valid: true}

	w := float64(window)
	for i := window + 1; i < len(bars); i++ {
		delta := bars[i].Close - bars[i-1].Close
		gain, loss := 0.0, 0.0
		if delta > 0 {
			gain = delta
		} else {
			loss = -delta
		}
		avgGain = (avgGain*(w-1) + gain) / w
		avgLoss = (avgLoss*(w-1) + loss) / w
		out[i] = Point{Value: rsiFromAverages(avgGain, avgLoss), Valid: true}
	}
	return out
}

func rsiFromAverages(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100
	}
	rs := avgGain / avgLoss
	return 100 - 100/(1+rs)
}

// StochRSI applies a stochastic oscillator transform to the RSI series:
// raw %K from the rolling min/max of RSI over stochWindow, smoothed by
// kSmooth into the reported %K, smoothed again by dSmooth into %D.
// Both outputs are bounded to [0, 100]. A flat RSI window (max == min)
// leaves the point undefined rather than dividing by zero.
func StochRSI(bars []models.Bar, rsiWindow, stochWindow, kSmooth, dSmooth int) []StochRSIPoint {
	rsi := RSI(bars, rsiWindow)

	rawK := make([]Point, len(bars))
	for i := range bars {
		lo, hi, ok := windowMinMax(rsi, i, stochWindow)
		if !ok || hi == lo {
			continue
		}
		rawK[i] = Point{Value: 100 * (rsi[i].Value - lo) / (hi - lo), Valid: true}
	}

	k := smooth(rawK, kSmooth)
	d := smooth(k, dSmooth)

	out := make([]StochRSIPoint, len(bars))
	for i := range out {
		if !k[i].Valid || !d[i].Valid {
			continue
		}
		out[i] = StochRSIPoint{K: clamp(k[i].Value, 0, 100), D: clamp(d[i].Value, 0, 100), Valid: true}
	}
	return out
}

// windowMinMax returns min and max of the `window` points ending at i,
// requiring every point in the window to be valid.
func windowMinMax(pts []Point, i, window int) (lo, hi float64, ok bool) {
	if window < 1 || i-window+1 < 0 {
		return 0, 0, false
	}
	vals := make([]float64, 0, window)
	for j := i - window + 1; j <= i; j++ {
		if !pts[j].Valid {
			return 0, 0, false
		}
		vals = append(vals, pts[j].Value)
	}
	lo, _ = stats.Min(vals)
	hi, _ = stats.Max(vals)
	return lo, hi, true
}

// smooth is a simple moving average over points; the result at i is
// valid only when all `window` inputs ending at i are valid.
func smooth(pts []Point, window int) []Point {
	out := make([]Point, len(pts))
	if window < 1 {
		return out
	}
	vals := make([]float64, 0, window)
	for i := range pts {
		if i-window+1 < 0 {
			continue
		}
		vals = vals[:0]
		allValid := true
		for j := i - window + 1; j <= i; j++ {
			if !pts[j].Valid {
				allValid = false
				break
			}
			vals = append(vals, pts[j].Value)
		}
		if !allValid {
			continue
		}
		m, err := stats.Mean(vals)
		if err != nil {
			continue
		}
		out[i] = Point{Value: m, Valid: true}
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
