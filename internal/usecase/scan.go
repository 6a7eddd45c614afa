package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"TrendSight/internal/domain/models"
	domrepo "TrendSight/internal/domain/repository"
)

const defaultScanWorkers = 8

// ScanUseCase fans the analysis pipeline out over a symbol universe
// with a bounded worker pool, collecting per-symbol failures without
// aborting the batch.
type ScanUseCase struct {
	analysis  *AnalysisUseCase
	store     domrepo.BarStore        // nil when running on a read-only source
	publisher domrepo.SignalPublisher // nil when publishing is disabled
	metrics   domrepo.Metrics
	workers   int
	timeout   time.Duration
}

func NewScanUseCase(analysis *AnalysisUseCase, store domrepo.BarStore, publisher domrepo.SignalPublisher, metrics domrepo.Metrics) *ScanUseCase {
	return &ScanUseCase{
		analysis:  analysis,
		store:     store,
		publisher: publisher,
		metrics:   metrics,
		workers:   defaultScanWorkers,
		timeout:   2 * time.Minute,
	}
}

type ScanParams struct {
	Symbols []string
	From    time.Time
	To      time.Time
	Publish bool
}

type ScanResult struct {
	Timestamp time.Time             `json:"timestamp"`
	Requested int                   `json:"requested"`
	Scanned   int                   `json:"scanned"`
	Count     int                   `json:"count"`
	Signals   []models.SignalRecord `json:"signals"`
	Errors    map[string]string     `json:"errors,omitempty"`
}

// Scan analyzes every symbol and merges the results, sorted by symbol
// then date. A failing symbol lands in Errors; the rest still complete.
func (uc *ScanUseCase) Scan(ctx context.Context, p ScanParams) (*ScanResult, error) {
	if len(p.Symbols) == 0 {
		return nil, fmt.Errorf("symbols required")
	}

	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	res := &ScanResult{
		Timestamp: time.Now(),
		Requested: len(p.Symbols),
		Errors:    map[string]string{},
	}

	type item struct {
		symbol  string
		records []models.SignalRecord
		err     error
	}
	jobs := make(chan string)
	out := make(chan item, len(p.Symbols))

	var wg sync.WaitGroup
	workers := uc.workers
	if workers > len(p.Symbols) {
		workers = len(p.Symbols)
	}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for symbol := range jobs {
				r, err := uc.analysis.Analyze(ctx, AnalyzeParams{Symbol: symbol, From: p.From, To: p.To})
				if err != nil {
					out <- item{symbol: symbol, err: err}
					continue
				}
				out <- item{symbol: symbol, records: r.Signals}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, s := range p.Symbols {
			select {
			case jobs <- s:
			case <-ctx.Done():
				return
			}
		}
	}()
	go func() { wg.Wait(); close(out) }()

	for it := range out {
		if it.err != nil {
			uc.metrics.RecordError("scan_symbol")
			res.Errors[it.symbol] = it.err.Error()
			continue
		}
		res.Scanned++
		res.Signals = append(res.Signals, it.records...)
	}

	sortRecords(res.Signals)
	res.Count = len(res.Signals)
	if len(res.Errors) == 0 {
		res.Errors = nil
	}

	if len(res.Signals) > 0 {
		if uc.store != nil {
			if err := uc.store.InsertSignals(ctx, res.Signals); err != nil {
				uc.metrics.RecordError("signals_insert")
				return nil, fmt.Errorf("insert signals: %w", err)
			}
		}
		if p.Publish && uc.publisher != nil {
			if err := uc.publisher.PublishRecords(ctx, res.Signals); err != nil {
				uc.metrics.RecordError("signals_publish")
				return nil, fmt.Errorf("publish signals: %w", err)
			}
		}
	}
	return res, nil
}

// sortRecords orders export rows by symbol, then date. Dates are ISO
// formatted so the lexical order is chronological.
func sortRecords(records []models.SignalRecord) {
	sort.Slice(records, func(i, j int) bool {
		if records[i].StockName != records[j].StockName {
			return records[i].StockName < records[j].StockName
		}
		return records[i].Date < records[j].Date
	})
}
