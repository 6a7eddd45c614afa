package models

import "time"

// Direction of a trading signal.
type Direction string

const (
	Buy  Direction = "BUY"
	Sell Direction = "SELL"
)

// Signal is an immutable snapshot emitted by the signal generator for one
// qualifying daily bar. It carries the indicator values that produced it
// and holds no reference to any live series.
type Signal struct {
	Date          time.Time
	Symbol        string
	Direction     Direction
	CurrentPrice  float64
	TargetPrice   float64
	StopLossPrice float64
	Strength      int

	DailyVolatility  float64
	WeeklyVolatility float64
	DailyStochK      float64
	DailyStochD      float64
	WeeklyStochK     float64
	WeeklyStochD     float64
	DailyVWAP        float64
	WeeklyVWAP       float64
}

// SignalRecord is the canonical flattened export row. Field names and
// order are an external compatibility contract and must not change.
type SignalRecord struct {
	Date              string  `json:"Date"`
	StockName         string  `json:"Stock_Name"`
	Direction         string  `json:"Direction"`
	Target            float64 `json:"Target"`
	StopLoss          float64 `json:"Stop_Loss"`
	Time              string  `json:"Time"`
	CurrentPrice      float64 `json:"Current_Price"`
	SignalStrength    int     `json:"Signal_Strength"`
	DailyVolatility   float64 `json:"Daily_Volatility"`
	WeeklyVolatility  float64 `json:"Weekly_Volatility"`
	DailyStochasticK  float64 `json:"Daily_Stochastic_K"`
	DailyStochasticD  float64 `json:"Daily_Stochastic_D"`
	WeeklyStochasticK float64 `json:"Weekly_Stochastic_K"`
	WeeklyStochasticD float64 `json:"Weekly_Stochastic_D"`
	DailyVWAP         float64 `json:"Daily_VWAP"`
	WeeklyVWAP        float64 `json:"Weekly_VWAP"`
}

// RecordHeader lists the export columns in contract order.
func RecordHeader() []string {
	return []string{
		"Date", "Stock_Name", "Direction", "Target", "Stop_Loss", "Time",
		"Current_Price", "Signal_Strength", "Daily_Volatility",
		"Weekly_Volatility", "Daily_Stochastic_K", "Daily_Stochastic_D",
		"Weekly_Stochastic_K", "Weekly_Stochastic_D", "Daily_VWAP",
		"Weekly_VWAP",
	}
}

// NewSignalRecord flattens a signal into the export row. The Time column
// is the wall-clock generation timestamp supplied by the caller; the
// engine itself never reads the clock.
func NewSignalRecord(s Signal, at time.Time) SignalRecord {
	return SignalRecord{
		Date:              s.Date.Format("2006-01-02"),
		StockName:         s.Symbol,
		Direction:         string(s.Direction),
		Target:            s.TargetPrice,
		StopLoss:          s.StopLossPrice,
		Time:              at.Format(time.RFC3339),
		CurrentPrice:      s.CurrentPrice,
		SignalStrength:    s.Strength,
		DailyVolatility:   s.DailyVolatility,
		WeeklyVolatility:  s.WeeklyVolatility,
		DailyStochasticK:  s.DailyStochK,
		DailyStochasticD:  s.DailyStochD,
		WeeklyStochasticK: s.WeeklyStochK,
		WeeklyStochasticD: s.WeeklyStochD,
		DailyVWAP:         s.DailyVWAP,
		WeeklyVWAP:        s.WeeklyVWAP,
	}
}
