package indicator

import (
	"TrendSight/internal/domain/models"
)

// TradingDaysPerWeek is the group size for daily-to-weekly aggregation.
const TradingDaysPerWeek = 5

// AggregateWeekly partitions a daily bar sequence into consecutive
// 5-trading-day groups and rolls each group up into one weekly bar:
// open of the first day, max high, min low, close of the last day,
// summed volume, dated by the week-ending day. The oldest len(daily)%5
// days are dropped so every group is complete.
//
// Pure function: the result shares no memory with the input.
func AggregateWeekly(daily []models.Bar) ([]models.Bar, error) {
	if len(daily) < TradingDaysPerWeek {
		return nil, &models.InsufficientDataError{Op: "aggregate weekly", Need: TradingDaysPerWeek, Have: len(daily)}
	}

	skip := len(daily) % TradingDaysPerWeek
	trimmed := daily[skip:]

	weekly := make([]models.Bar, 0, len(trimmed)/TradingDaysPerWeek)
	for i := 0; i+TradingDaysPerWeek <= len(trimmed); i += TradingDaysPerWeek {
		group := trimmed[i : i+TradingDaysPerWeek]
		w := models.Bar{
			Date:  group[TradingDaysPerWeek-1].Date,
			Open:  group[0].Open,
			High:  group[0].High,
			Low:   group[0].Low,
			Close: group[TradingDaysPerWeek-1].Close,
		}
		for _, b := range group {
			if b.High > w.High {
				w.High = b.High
			}
			if b.Low < w.Low {
				w.Low = b.Low
			}
			w.Volume += b.Volume
		}
		weekly = append(weekly, w)
	}
	return weekly, nil
}
