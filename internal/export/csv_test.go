package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TrendSight/internal/domain/models"
)

func TestWriteCSVHeaderOrder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{
		"Date", "Stock_Name", "Direction", "Target", "Stop_Loss", "Time",
		"Current_Price", "Signal_Strength", "Daily_Volatility",
		"Weekly_Volatility", "Daily_Stochastic_K", "Daily_Stochastic_D",
		"Weekly_Stochastic_K", "Weekly_Stochastic_D", "Daily_VWAP",
		"Weekly_VWAP",
	}, rows[0])
}

func TestWriteCSVRecordValues(t *testing.T) {
	rec := models.SignalRecord{
		Date:           "2024-05-06",
		StockName:      "AAPL",
		Direction:      "BUY",
		Target:         192.57,
		StopLoss:       177.898,
		Time:           "2024-05-06T21:00:00Z",
		CurrentPrice:   183.4,
		SignalStrength: 2,
		DailyVWAP:      182.11,
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, []models.SignalRecord{rec}))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	row := rows[1]
	assert.Equal(t, "2024-05-06", row[0])
	assert.Equal(t, "AAPL", row[1])
	assert.Equal(t, "BUY", row[2])
	assert.Equal(t, "192.57", row[3])
	assert.Equal(t, "177.898", row[4])
	assert.Equal(t, "2", row[7])
	assert.Equal(t, "182.11", row[14])
}
