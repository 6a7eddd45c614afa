package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	scansTotal   *prometheus.CounterVec
	signalsTotal *prometheus.CounterVec
	barsLoaded   *prometheus.CounterVec
	errorsTotal  *prometheus.CounterVec
	latency      *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		scansTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "trendsight_scans_total",
				Help: "Total number of symbol analyses run",
			},
			[]string{"symbol"},
		),
		signalsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "trendsight_signals_total",
				Help: "Total number of signals generated",
			},
			[]string{"symbol", "direction"},
		),
		barsLoaded: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "trendsight_bars_loaded_total",
				Help: "Total number of daily bars loaded from storage",
			},
			[]string{"symbol"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "trendsight_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "trendsight_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordScan counts one completed analysis for a symbol.
func (r *Recorder) RecordScan(symbol string) {
	r.scansTotal.WithLabelValues(symbol).Inc()
}

// RecordSignal counts one generated signal.
func (r *Recorder) RecordSignal(symbol, direction string) {
	r.signalsTotal.WithLabelValues(symbol, direction).Inc()
}

// RecordBarsLoaded counts bars fetched from the source.
func (r *Recorder) RecordBarsLoaded(symbol string, n int) {
	r.barsLoaded.WithLabelValues(symbol).Add(float64(n))
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
