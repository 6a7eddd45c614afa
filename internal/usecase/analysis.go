package usecase

import (
	"context"
	"fmt"
	"time"

	"TrendSight/internal/domain/models"
	domrepo "TrendSight/internal/domain/repository"
	"TrendSight/internal/indicator"
	"TrendSight/internal/signal"
)

// AnalysisUseCase runs the indicator and signal pipeline for a single
// symbol on top of a bar source.
type AnalysisUseCase struct {
	source  domrepo.BarSource
	metrics domrepo.Metrics
	ind     indicator.Params
	sig     signal.Params
	now     func() time.Time
}

func NewAnalysisUseCase(source domrepo.BarSource, metrics domrepo.Metrics, ind indicator.Params, sig signal.Params) *AnalysisUseCase {
	return &AnalysisUseCase{source: source, metrics: metrics, ind: ind, sig: sig, now: time.Now}
}

type GetIndicatorsParams struct {
	Symbol string
	From   time.Time
	To     time.Time
}

// GetIndicators loads daily bars and computes the full multi-timeframe
// indicator set.
func (uc *AnalysisUseCase) GetIndicators(ctx context.Context, p GetIndicatorsParams) (*indicator.Set, error) {
	bars, err := uc.loadBars(ctx, p.Symbol, p.From, p.To)
	if err != nil {
		return nil, err
	}
	set, err := indicator.Build(p.Symbol, bars, uc.ind)
	if err != nil {
		return nil, fmt.Errorf("build indicators: %w", err)
	}
	return set, nil
}

type AnalyzeParams struct {
	Symbol string
	From   time.Time
	To     time.Time
	Limit  int
}

type AnalyzeResult struct {
	Symbol  string                `json:"symbol"`
	From    time.Time             `json:"from"`
	To      time.Time             `json:"to"`
	Bars    models.BarsSummary    `json:"bars"`
	Count   int                   `json:"count"`
	Signals []models.SignalRecord `json:"signals"`
}

// Analyze runs the full pipeline and returns flattened export rows in
// chronological order. The Time column is stamped here, once per run.
func (uc *AnalysisUseCase) Analyze(ctx context.Context, p AnalyzeParams) (*AnalyzeResult, error) {
	if p.Limit <= 0 {
		p.Limit = 10000
	}
	if p.Limit > 50000 {
		p.Limit = 50000
	}

	start := uc.now()
	bars, err := uc.loadBars(ctx, p.Symbol, p.From, p.To)
	if err != nil {
		return nil, err
	}
	set, err := indicator.Build(p.Symbol, bars, uc.ind)
	if err != nil {
		return nil, fmt.Errorf("build indicators: %w", err)
	}
	gen, err := signal.NewGenerator(set, uc.sig)
	if err != nil {
		return nil, fmt.Errorf("signal generator: %w", err)
	}

	at := uc.now()
	records := make([]models.SignalRecord, 0)
	for s := range gen.Signals() {
		if len(records) >= p.Limit {
			break
		}
		records = append(records, models.NewSignalRecord(s, at))
		uc.metrics.RecordSignal(s.Symbol, string(s.Direction))
	}

	uc.metrics.RecordScan(p.Symbol)
	uc.metrics.RecordLatency("analyze_seconds", uc.now().Sub(start).Seconds())

	return &AnalyzeResult{
		Symbol:  p.Symbol,
		From:    p.From,
		To:      p.To,
		Bars:    models.Summarize(bars),
		Count:   len(records),
		Signals: records,
	}, nil
}

func (uc *AnalysisUseCase) loadBars(ctx context.Context, symbol string, from, to time.Time) ([]models.Bar, error) {
	if symbol == "" {
		return nil, fmt.Errorf("symbol required")
	}
	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return nil, fmt.Errorf("from must be <= to")
	}

	bars, err := uc.source.GetDailyBars(ctx, symbol, from, to)
	if err != nil {
		uc.metrics.RecordError("bars_load")
		return nil, fmt.Errorf("load bars: %w", err)
	}
	if err := models.ValidateBars(bars); err != nil {
		uc.metrics.RecordError("bars_validate")
		return nil, fmt.Errorf("validate bars: %w", err)
	}
	uc.metrics.RecordBarsLoaded(symbol, len(bars))
	return bars, nil
}
