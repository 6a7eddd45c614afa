package indicator

import (
	"fmt"

	"github.com/creasty/defaults"
)

// Volatility estimation methods.
const (
	MethodStd         = "std"
	MethodGarmanKlass = "garman_klass"
	MethodParkinson   = "parkinson"
)

// Params configures the indicator library. The zero value is not usable;
// build one with DefaultParams or apply defaults.Set before use.
type Params struct {
	RSIWindow   int `yaml:"rsi_window" default:"14"`
	StochWindow int `yaml:"stoch_window" default:"14"`
	KSmooth     int `yaml:"k_smooth" default:"3"`
	DSmooth     int `yaml:"d_smooth" default:"3"`

	BollingerWindow       int     `yaml:"bollinger_window" default:"20"`
	WeeklyBollingerWindow int     `yaml:"weekly_bollinger_window" default:"4"`
	BollingerK            float64 `yaml:"bollinger_k" default:"2"`

	VolatilityWindow       int    `yaml:"volatility_window" default:"20"`
	WeeklyVolatilityWindow int    `yaml:"weekly_volatility_window" default:"4"`
	VolatilityMethod       string `yaml:"volatility_method" default:"std"`

	// VWAPWindow selects a trailing window; 0 keeps the conventional
	// cumulative VWAP reset at the start of the sequence.
	VWAPWindow int `yaml:"vwap_window" default:"0"`
}

// DefaultParams returns the documented default configuration.
func DefaultParams() Params {
	var p Params
	_ = defaults.Set(&p)
	return p
}

// Validate checks window sizes and the volatility method name.
func (p Params) Validate() error {
	if p.RSIWindow < 2 || p.StochWindow < 1 || p.KSmooth < 1 || p.DSmooth < 1 {
		return fmt.Errorf("stochastic rsi windows must be positive (rsi >= 2)")
	}
	if p.BollingerWindow < 2 || p.WeeklyBollingerWindow < 2 {
		return fmt.Errorf("bollinger windows must be >= 2")
	}
	if p.VolatilityWindow < 2 || p.WeeklyVolatilityWindow < 2 {
		return fmt.Errorf("volatility windows must be >= 2")
	}
	if p.VWAPWindow < 0 {
		return fmt.Errorf("vwap window must be >= 0")
	}
	switch p.VolatilityMethod {
	case MethodStd, MethodGarmanKlass, MethodParkinson:
	default:
		return fmt.Errorf("volatility method must be %q, %q or %q", MethodStd, MethodGarmanKlass, MethodParkinson)
	}
	return nil
}

// Point is an optional scalar indicator value. Valid is false until the
// minimum lookback is satisfied; an invalid point is "not yet available",
// which is distinct from zero.
type Point struct {
	Value float64
	Valid bool
}

// StochRSIPoint is an optional (%K, %D) pair, each bounded to [0, 100]
// when valid.
type StochRSIPoint struct {
	K     float64
	D     float64
	Valid bool
}

// BandsPoint is an optional Bollinger triple. Upper >= Middle >= Lower
// always holds when valid.
type BandsPoint struct {
	Upper  float64
	Middle float64
	Lower  float64
	Valid  bool
}
