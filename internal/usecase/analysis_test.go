package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TrendSight/internal/domain/models"
	"TrendSight/internal/indicator"
	"TrendSight/internal/signal"
)

type fakeSource struct {
	bars map[string][]models.Bar
	err  error
}

func (f *fakeSource) GetDailyBars(_ context.Context, symbol string, _, _ time.Time) ([]models.Bar, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.bars[symbol], nil
}

type nopMetrics struct{}

func (nopMetrics) RecordScan(string)               {}
func (nopMetrics) RecordSignal(string, string)     {}
func (nopMetrics) RecordBarsLoaded(string, int)    {}
func (nopMetrics) RecordError(string)              {}
func (nopMetrics) RecordLatency(string, float64)   {}

func trendBars(n int) []models.Bar {
	t0 := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	bars := make([]models.Bar, n)
	for i := range bars {
		c := 100 + float64(i)
		bars[i] = models.Bar{
			Date: t0.AddDate(0, 0, i), Open: c - 1, High: c + 1, Low: c - 2,
			Close: c, Volume: 1000,
		}
	}
	return bars
}

func newAnalysis(src *fakeSource) *AnalysisUseCase {
	return NewAnalysisUseCase(src, nopMetrics{}, indicator.DefaultParams(), signal.DefaultParams())
}

func TestAnalyzeRequiresSymbol(t *testing.T) {
	uc := newAnalysis(&fakeSource{})
	_, err := uc.Analyze(context.Background(), AnalyzeParams{})
	require.Error(t, err)
}

func TestAnalyzeRejectsInvertedRange(t *testing.T) {
	uc := newAnalysis(&fakeSource{})
	_, err := uc.Analyze(context.Background(), AnalyzeParams{
		Symbol: "AAPL",
		From:   time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		To:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.Error(t, err)
}

func TestAnalyzeTrendingSeries(t *testing.T) {
	src := &fakeSource{bars: map[string][]models.Bar{"AAPL": trendBars(60)}}
	uc := newAnalysis(src)

	res, err := uc.Analyze(context.Background(), AnalyzeParams{Symbol: "AAPL"})
	require.NoError(t, err)
	assert.Equal(t, "AAPL", res.Symbol)
	assert.Equal(t, 60, res.Bars.Periods)
	assert.Zero(t, res.Count)
	assert.Empty(t, res.Signals)
}

func TestAnalyzePropagatesSourceError(t *testing.T) {
	uc := newAnalysis(&fakeSource{err: fmt.Errorf("connection refused")})
	_, err := uc.Analyze(context.Background(), AnalyzeParams{Symbol: "AAPL"})
	require.ErrorContains(t, err, "connection refused")
}

func TestAnalyzeRejectsUnsortedBars(t *testing.T) {
	bars := trendBars(10)
	bars[5].Date = bars[4].Date
	uc := newAnalysis(&fakeSource{bars: map[string][]models.Bar{"AAPL": bars}})

	_, err := uc.Analyze(context.Background(), AnalyzeParams{Symbol: "AAPL"})
	require.ErrorContains(t, err, "validate bars")
}

func TestAnalyzeTooFewBars(t *testing.T) {
	uc := newAnalysis(&fakeSource{bars: map[string][]models.Bar{"AAPL": trendBars(4)}})
	_, err := uc.Analyze(context.Background(), AnalyzeParams{Symbol: "AAPL"})
	require.Error(t, err)
}

func TestGetIndicatorsBuildsFullSet(t *testing.T) {
	src := &fakeSource{bars: map[string][]models.Bar{"MSFT": trendBars(60)}}
	uc := newAnalysis(src)

	set, err := uc.GetIndicators(context.Background(), GetIndicatorsParams{Symbol: "MSFT"})
	require.NoError(t, err)
	assert.Equal(t, "MSFT", set.Symbol)
	assert.Len(t, set.DailyVWAP, 60)
	assert.Len(t, set.WeeklyVWAP, 60)
}
