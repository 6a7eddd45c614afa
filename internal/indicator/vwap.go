package indicator

import "TrendSight/internal/domain/models"

// VWAP computes the volume-weighted average of typical price
// (high+low+close)/3. With window == 0 it is cumulative from the start
// of the sequence, matching conventional period-VWAP semantics; a
// positive window makes it trailing. Zero (cumulative) volume never
// divides: the point simply stays undefined.
func VWAP(bars []models.Bar, window int) []Point {
	out := make([]Point, len(bars))

	if window <= 0 {
		var cumPV, cumVol float64
		for i, b := range bars {
			cumPV += b.TypicalPrice() * float64(b.Volume)
			cumVol += float64(b.Volume)
			if cumVol > 0 {
				out[i] = Point{Value: cumPV / cumVol, Valid: true}
			}
		}
		return out
	}

	for i := range bars {
		if i-window+1 < 0 {
			continue
		}
		var pv, vol float64
		for j := i - window + 1; j <= i; j++ {
			pv += bars[j].TypicalPrice() * float64(bars[j].Volume)
			vol += float64(bars[j].Volume)
		}
		if vol > 0 {
			out[i] = Point{Value: pv / vol, Valid: true}
		}
	}
	return out
}

// VWAPDeviation returns the percent deviation of close from VWAP for
// each valid point.
func VWAPDeviation(bars []models.Bar, vwap []Point) []Point {
	out := make([]Point, len(bars))
	for i := range bars {
		if i >= len(vwap) || !vwap[i].Valid || vwap[i].Value == 0 {
			continue
		}
		out[i] = Point{Value: (bars[i].Close - vwap[i].Value) / vwap[i].Value * 100, Valid: true}
	}
	return out
}
