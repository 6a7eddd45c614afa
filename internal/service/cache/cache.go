package cache

import (
	"strings"
	"time"
)

// BytesCache is a minimal cache API storing raw bytes with TTL.
type BytesCache interface {
	GetBytes(key string) (b []byte, ok bool, err error)
	SetBytes(key string, value []byte, ttl time.Duration) error
}

// Key builds a namespaced cache key from parts.
func Key(parts ...string) string {
	return "trendsight:" + strings.Join(parts, ":")
}

// IndicatorsKey keys a cached indicator-set response.
func IndicatorsKey(symbol, from, to, timeframe string) string {
	return Key("indicators", symbol, from, to, timeframe)
}

// AnalyzeKey keys a cached single-symbol analysis response.
func AnalyzeKey(symbol, from, to string) string {
	return Key("analyze", symbol, from, to)
}
