package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TrendSight/internal/domain/models"
)

type fakeStore struct {
	fakeSource
	stored   map[string][]models.Bar
	inserted []models.SignalRecord
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		fakeSource: fakeSource{bars: map[string][]models.Bar{}},
		stored:     map[string][]models.Bar{},
	}
}

func (f *fakeStore) StoreDailyBars(_ context.Context, symbol string, bars []models.Bar) error {
	f.stored[symbol] = append(f.stored[symbol], bars...)
	return nil
}

func (f *fakeStore) InsertSignals(_ context.Context, records []models.SignalRecord) error {
	f.inserted = append(f.inserted, records...)
	return nil
}

func (f *fakeStore) Health(context.Context) error { return nil }
func (f *fakeStore) Close() error                 { return nil }

type fakePublisher struct {
	published []models.SignalRecord
}

func (f *fakePublisher) PublishRecords(_ context.Context, records []models.SignalRecord) error {
	f.published = append(f.published, records...)
	return nil
}

func (f *fakePublisher) Close() error { return nil }

func TestScanRequiresSymbols(t *testing.T) {
	uc := NewScanUseCase(newAnalysis(&fakeSource{}), nil, nil, nopMetrics{})
	_, err := uc.Scan(context.Background(), ScanParams{})
	require.Error(t, err)
}

func TestScanCollectsPerSymbolErrors(t *testing.T) {
	src := &fakeSource{bars: map[string][]models.Bar{
		"AAPL": trendBars(60),
		// MSFT has too few bars for a single week; NVDA is absent.
		"MSFT": trendBars(3),
	}}
	uc := NewScanUseCase(newAnalysis(src), nil, nil, nopMetrics{})

	res, err := uc.Scan(context.Background(), ScanParams{Symbols: []string{"AAPL", "MSFT", "NVDA"}})
	require.NoError(t, err)

	assert.Equal(t, 3, res.Requested)
	assert.Equal(t, 1, res.Scanned)
	assert.Contains(t, res.Errors, "MSFT")
	assert.Contains(t, res.Errors, "NVDA")
	assert.NotContains(t, res.Errors, "AAPL")
}

func TestScanManySymbols(t *testing.T) {
	src := &fakeSource{bars: map[string][]models.Bar{}}
	symbols := make([]string, 30)
	for i := range symbols {
		symbols[i] = string(rune('A'+i%26)) + "X"
		src.bars[symbols[i]] = trendBars(40)
	}
	uc := NewScanUseCase(newAnalysis(src), nil, nil, nopMetrics{})

	res, err := uc.Scan(context.Background(), ScanParams{Symbols: symbols})
	require.NoError(t, err)
	assert.Equal(t, len(symbols), res.Requested)
	assert.Equal(t, res.Requested-len(res.Errors), res.Scanned)
	assert.NotZero(t, res.Timestamp)
}

func TestScanPublishIsOptIn(t *testing.T) {
	store := newFakeStore()
	store.bars["AAPL"] = trendBars(60)
	pub := &fakePublisher{}
	uc := NewScanUseCase(newAnalysis(&store.fakeSource), store, pub, nopMetrics{})

	// Trending bars produce no signals, so neither sink is touched
	// regardless of the flag.
	res, err := uc.Scan(context.Background(), ScanParams{Symbols: []string{"AAPL"}, Publish: true})
	require.NoError(t, err)
	assert.Zero(t, res.Count)
	assert.Empty(t, store.inserted)
	assert.Empty(t, pub.published)
}

func TestScanSortsMergedSignals(t *testing.T) {
	records := []models.SignalRecord{
		{StockName: "MSFT", Date: "2024-02-01"},
		{StockName: "AAPL", Date: "2024-03-01"},
		{StockName: "AAPL", Date: "2024-01-01"},
	}
	sortRecords(records)

	assert.Equal(t, "AAPL", records[0].StockName)
	assert.Equal(t, "2024-01-01", records[0].Date)
	assert.Equal(t, "AAPL", records[1].StockName)
	assert.Equal(t, "MSFT", records[2].StockName)
}

func TestScanSurvivesCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := &fakeSource{bars: map[string][]models.Bar{"AAPL": trendBars(60)}}
	uc := NewScanUseCase(newAnalysis(src), nil, nil, nopMetrics{})

	_, err := uc.Scan(ctx, ScanParams{Symbols: []string{"AAPL"}})
	require.NoError(t, err)
}
