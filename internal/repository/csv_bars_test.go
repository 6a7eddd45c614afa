package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, dir, symbol, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, symbol+".csv"), []byte(body), 0o644))
}

func TestCSVBarSourceReadsBars(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "AAPL", `Date,Open,High,Low,Close,Volume
2024-05-06,182.3,184.1,181.9,183.4,51230000
2024-05-07,183.5,185.0,183.0,184.2,48200000
`)

	src := NewCSVBarSource(dir)
	bars, err := src.GetDailyBars(context.Background(), "AAPL", time.Time{}, time.Time{})
	require.NoError(t, err)
	require.Len(t, bars, 2)

	assert.Equal(t, time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC), bars[0].Date)
	assert.Equal(t, 183.4, bars[0].Close)
	assert.Equal(t, int64(48200000), bars[1].Volume)
}

func TestCSVBarSourceFiltersRange(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "AAPL", `Date,Open,High,Low,Close,Volume
2024-05-06,100,101,99,100,10
2024-05-07,100,101,99,100,10
2024-05-08,100,101,99,100,10
`)

	src := NewCSVBarSource(dir)
	from := time.Date(2024, 5, 7, 0, 0, 0, 0, time.UTC)
	bars, err := src.GetDailyBars(context.Background(), "AAPL", from, from)
	require.NoError(t, err)
	require.Len(t, bars, 1)
	assert.Equal(t, from, bars[0].Date)
}

func TestCSVBarSourceUnknownSymbol(t *testing.T) {
	src := NewCSVBarSource(t.TempDir())
	_, err := src.GetDailyBars(context.Background(), "NOPE", time.Time{}, time.Time{})
	require.Error(t, err)
}

func TestCSVBarSourceRejectsPathTraversal(t *testing.T) {
	src := NewCSVBarSource(t.TempDir())
	_, err := src.GetDailyBars(context.Background(), "../etc/passwd", time.Time{}, time.Time{})
	require.Error(t, err)
}

func TestCSVBarSourceRejectsMalformedRow(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "AAPL", `Date,Open,High,Low,Close,Volume
2024-05-06,abc,184.1,181.9,183.4,51230000
`)

	src := NewCSVBarSource(dir)
	_, err := src.GetDailyBars(context.Background(), "AAPL", time.Time{}, time.Time{})
	require.Error(t, err)
}
