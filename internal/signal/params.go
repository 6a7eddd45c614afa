package signal

import (
	"fmt"

	"github.com/creasty/defaults"
)

// Params configures signal scoring and risk levels.
type Params struct {
	// Oversold and Overbought gate stochastic crossovers: a bullish
	// cross only scores below Oversold, a bearish cross above Overbought.
	Oversold   float64 `yaml:"oversold" default:"20"`
	Overbought float64 `yaml:"overbought" default:"80"`

	// HighVolatility is the annualized daily volatility above which the
	// strength score is halved.
	HighVolatility float64 `yaml:"high_volatility" default:"0.30"`

	TargetPct   float64 `yaml:"target_pct" default:"0.05"`
	StopLossPct float64 `yaml:"stop_loss_pct" default:"0.03"`

	// StrengthThreshold is the absolute score at which a signal fires.
	StrengthThreshold int `yaml:"strength_threshold" default:"2"`
}

// DefaultParams returns the documented default configuration.
func DefaultParams() Params {
	var p Params
	_ = defaults.Set(&p)
	return p
}

// Validate checks threshold sanity.
func (p Params) Validate() error {
	if p.Oversold < 0 || p.Overbought > 100 || p.Oversold >= p.Overbought {
		return fmt.Errorf("stochastic gates must satisfy 0 <= oversold < overbought <= 100")
	}
	if p.HighVolatility < 0 {
		return fmt.Errorf("high volatility threshold must be >= 0")
	}
	if p.TargetPct <= 0 || p.StopLossPct <= 0 {
		return fmt.Errorf("target and stop loss percentages must be positive")
	}
	if p.StrengthThreshold < 1 {
		return fmt.Errorf("strength threshold must be >= 1")
	}
	return nil
}
