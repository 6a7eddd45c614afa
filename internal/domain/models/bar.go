package models

import "time"

// Bar represents one OHLCV record for a single trading day (or, when
// derived by aggregation, a single trading week).
type Bar struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume int64
}

// TypicalPrice returns (high + low + close) / 3.
func (b Bar) TypicalPrice() float64 {
	return (b.High + b.Low + b.Close) / 3
}

// Validate checks the OHLC ordering invariant for a single bar:
// positive prices, non-negative volume, and
// high >= max(open, close) >= min(open, close) >= low.
func (b Bar) Validate() error {
	if b.Open <= 0 || b.High <= 0 || b.Low <= 0 || b.Close <= 0 {
		return &InvalidBarError{Date: b.Date, Reason: "non-positive price"}
	}
	if b.Volume < 0 {
		return &InvalidBarError{Date: b.Date, Reason: "negative volume"}
	}
	if b.High < b.Open || b.High < b.Close {
		return &InvalidBarError{Date: b.Date, Reason: "high below open/close"}
	}
	if b.Low > b.Open || b.Low > b.Close {
		return &InvalidBarError{Date: b.Date, Reason: "low above open/close"}
	}
	return nil
}

// ValidateBars checks every bar plus the sequence invariants: strictly
// increasing dates, no duplicates. The first violation is returned.
func ValidateBars(bars []Bar) error {
	for i, b := range bars {
		if err := b.Validate(); err != nil {
			return err
		}
		if i > 0 && !bars[i-1].Date.Before(b.Date) {
			return &InvalidBarError{Date: b.Date, Reason: "dates not strictly increasing"}
		}
	}
	return nil
}

// BarsSummary holds summary statistics over a bar sequence.
type BarsSummary struct {
	Periods     int       `json:"periods"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	MinClose    float64   `json:"min_close"`
	MaxClose    float64   `json:"max_close"`
	AvgClose    float64   `json:"avg_close"`
	TotalVolume int64     `json:"total_volume"`
}

// Summarize computes summary statistics for a non-empty bar sequence.
// Returns the zero value for an empty input.
func Summarize(bars []Bar) BarsSummary {
	if len(bars) == 0 {
		return BarsSummary{}
	}
	s := BarsSummary{
		Periods:  len(bars),
		Start:    bars[0].Date,
		End:      bars[len(bars)-1].Date,
		MinClose: bars[0].Close,
		MaxClose: bars[0].Close,
	}
	sum := 0.0
	for _, b := range bars {
		if b.Close < s.MinClose {
			s.MinClose = b.Close
		}
		if b.Close > s.MaxClose {
			s.MaxClose = b.Close
		}
		sum += b.Close
		s.TotalVolume += b.Volume
	}
	s.AvgClose = sum / float64(len(bars))
	return s
}
