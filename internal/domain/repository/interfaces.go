package repository

import (
	"context"
	"time"

	"TrendSight/internal/domain/models"
)

// BarSource provides read access to validated, chronologically sorted
// daily bars for one instrument.
type BarSource interface {
	GetDailyBars(ctx context.Context, symbol string, from, to time.Time) ([]models.Bar, error)
}

// BarStore extends BarSource with write access and persistence of
// emitted signal rows.
type BarStore interface {
	BarSource
	StoreDailyBars(ctx context.Context, symbol string, bars []models.Bar) error
	InsertSignals(ctx context.Context, records []models.SignalRecord) error
	Health(ctx context.Context) error
	Close() error
}

// SignalPublisher delivers flattened signal records to an external sink.
type SignalPublisher interface {
	PublishRecords(ctx context.Context, records []models.SignalRecord) error
	Close() error
}

// Metrics abstracts the engine's operational counters.
type Metrics interface {
	RecordScan(symbol string)
	RecordSignal(symbol, direction string)
	RecordBarsLoaded(symbol string, n int)
	RecordError(kind string)
	RecordLatency(op string, seconds float64)
}
