package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"TrendSight/internal/domain/models"
	domrepo "TrendSight/internal/domain/repository"
	pkgkafka "TrendSight/pkg/kafka"
)

// KafkaBarsHandler consumes end-of-day bar messages and writes them to
// storage.
type KafkaBarsHandler struct {
	topic   string
	store   domrepo.BarStore
	metrics domrepo.Metrics
}

func NewKafkaBarsHandler(topic string, store domrepo.BarStore, metrics domrepo.Metrics) *KafkaBarsHandler {
	return &KafkaBarsHandler{topic: topic, store: store, metrics: metrics}
}

func (h *KafkaBarsHandler) Topic() string { return h.topic }

// incoming message schema: {symbol, date, o, h, l, c, v}
func (h *KafkaBarsHandler) Handle(ctx context.Context, b []byte) error {
	var m struct {
		Symbol string  `json:"symbol"`
		Date   string  `json:"date"`
		O      float64 `json:"o"`
		H      float64 `json:"h"`
		L      float64 `json:"l"`
		C      float64 `json:"c"`
		V      int64   `json:"v"`
	}
	if err := json.Unmarshal(b, &m); err != nil {
		h.metrics.RecordError("consumer_unmarshal")
		return err
	}
	if m.Symbol == "" {
		h.metrics.RecordError("consumer_no_symbol")
		return fmt.Errorf("bar message without symbol")
	}
	date, err := time.Parse("2006-01-02", m.Date)
	if err != nil {
		h.metrics.RecordError("consumer_bad_date")
		return fmt.Errorf("bar date %q: %w", m.Date, err)
	}

	bar := models.Bar{Date: date, Open: m.O, High: m.H, Low: m.L, Close: m.C, Volume: m.V}
	if err := bar.Validate(); err != nil {
		h.metrics.RecordError("consumer_invalid_bar")
		return err
	}

	start := time.Now()
	err = h.store.StoreDailyBars(ctx, m.Symbol, []models.Bar{bar})
	h.metrics.RecordLatency("bar_insert_seconds", time.Since(start).Seconds())
	if err != nil {
		h.metrics.RecordError("consumer_store")
		return err
	}
	return nil
}

var _ pkgkafka.MessageHandler = (*KafkaBarsHandler)(nil)
