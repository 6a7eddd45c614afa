package repository

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"TrendSight/internal/domain/models"
	domrepo "TrendSight/internal/domain/repository"
)

// CSVBarSource reads daily bars from <dir>/<symbol>.csv files with a
// Date,Open,High,Low,Close,Volume header. Useful for backtests and
// local runs without ClickHouse.
type CSVBarSource struct {
	dir string
}

func NewCSVBarSource(dir string) *CSVBarSource {
	return &CSVBarSource{dir: dir}
}

func (s *CSVBarSource) GetDailyBars(ctx context.Context, symbol string, from, to time.Time) ([]models.Bar, error) {
	if strings.ContainsAny(symbol, `/\.`) {
		return nil, fmt.Errorf("invalid symbol %q", symbol)
	}
	path := filepath.Join(s.dir, symbol+".csv")
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open bars file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = 6
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if !strings.EqualFold(header[0], "Date") {
		return nil, fmt.Errorf("unexpected header in %s: %v", path, header)
	}

	var bars []models.Bar
	for line := 2; ; line++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("%s line %d: %w", path, line, err)
		}
		bar, err := parseBarRow(rec)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, line, err)
		}
		if !from.IsZero() && bar.Date.Before(from) {
			continue
		}
		if !to.IsZero() && bar.Date.After(to) {
			continue
		}
		bars = append(bars, bar)
	}
	return bars, nil
}

func parseBarRow(rec []string) (models.Bar, error) {
	date, err := time.Parse("2006-01-02", strings.TrimSpace(rec[0]))
	if err != nil {
		return models.Bar{}, fmt.Errorf("date %q: %w", rec[0], err)
	}
	prices := make([]float64, 4)
	for i := 0; i < 4; i++ {
		v, err := strconv.ParseFloat(strings.TrimSpace(rec[i+1]), 64)
		if err != nil {
			return models.Bar{}, fmt.Errorf("price column %d: %w", i+1, err)
		}
		prices[i] = v
	}
	volume, err := strconv.ParseInt(strings.TrimSpace(rec[5]), 10, 64)
	if err != nil {
		return models.Bar{}, fmt.Errorf("volume %q: %w", rec[5], err)
	}
	return models.Bar{
		Date: date, Open: prices[0], High: prices[1], Low: prices[2],
		Close: prices[3], Volume: volume,
	}, nil
}

var _ domrepo.BarSource = (*CSVBarSource)(nil)
