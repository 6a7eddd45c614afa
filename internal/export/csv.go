package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"TrendSight/internal/domain/models"
)

// WriteCSV writes signal records to w with the canonical header row.
// Column names and order follow the export contract exactly.
func WriteCSV(w io.Writer, records []models.SignalRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(models.RecordHeader()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range records {
		if err := cw.Write(recordRow(r)); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSVFile writes records to path, creating or truncating it.
func WriteCSVFile(path string, records []models.SignalRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	if err := WriteCSV(f, records); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func recordRow(r models.SignalRecord) []string {
	return []string{
		r.Date,
		r.StockName,
		r.Direction,
		ffloat(r.Target),
		ffloat(r.StopLoss),
		r.Time,
		ffloat(r.CurrentPrice),
		strconv.Itoa(r.SignalStrength),
		ffloat(r.DailyVolatility),
		ffloat(r.WeeklyVolatility),
		ffloat(r.DailyStochasticK),
		ffloat(r.DailyStochasticD),
		ffloat(r.WeeklyStochasticK),
		ffloat(r.WeeklyStochasticD),
		ffloat(r.DailyVWAP),
		ffloat(r.WeeklyVWAP),
	}
}

func ffloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
