package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKafkaBarsHandlerStoresValidBar(t *testing.T) {
	store := newFakeStore()
	h := NewKafkaBarsHandler("bars.daily", store, nopMetrics{})
	assert.Equal(t, "bars.daily", h.Topic())

	msg := []byte(`{"symbol":"AAPL","date":"2024-05-06","o":182.3,"h":184.1,"l":181.9,"c":183.4,"v":51230000}`)
	require.NoError(t, h.Handle(context.Background(), msg))

	require.Len(t, store.stored["AAPL"], 1)
	bar := store.stored["AAPL"][0]
	assert.Equal(t, time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC), bar.Date)
	assert.Equal(t, 183.4, bar.Close)
	assert.Equal(t, int64(51230000), bar.Volume)
}

func TestKafkaBarsHandlerRejectsMalformedJSON(t *testing.T) {
	store := newFakeStore()
	h := NewKafkaBarsHandler("bars.daily", store, nopMetrics{})

	require.Error(t, h.Handle(context.Background(), []byte("{not json")))
	assert.Empty(t, store.stored)
}

func TestKafkaBarsHandlerRejectsMissingSymbol(t *testing.T) {
	store := newFakeStore()
	h := NewKafkaBarsHandler("bars.daily", store, nopMetrics{})

	msg := []byte(`{"date":"2024-05-06","o":1,"h":2,"l":1,"c":1.5,"v":10}`)
	require.Error(t, h.Handle(context.Background(), msg))
}

func TestKafkaBarsHandlerRejectsInvalidBar(t *testing.T) {
	store := newFakeStore()
	h := NewKafkaBarsHandler("bars.daily", store, nopMetrics{})

	// High below close.
	msg := []byte(`{"symbol":"AAPL","date":"2024-05-06","o":100,"h":90,"l":80,"c":95,"v":10}`)
	require.Error(t, h.Handle(context.Background(), msg))
	assert.Empty(t, store.stored)
}
