package repository

import (
	"context"
	"fmt"

	"TrendSight/internal/domain/models"
	domrepo "TrendSight/internal/domain/repository"
	pkgkafka "TrendSight/pkg/kafka"
	applogger "TrendSight/pkg/logger"
)

// KafkaSignalPublisher emits flattened signal records to a Kafka topic,
// keyed by symbol so downstream consumers see per-symbol ordering.
type KafkaSignalPublisher struct {
	producer *pkgkafka.Producer
	topic    string
	l        *applogger.Logger
}

func NewKafkaSignalPublisher(producer *pkgkafka.Producer, topic string) *KafkaSignalPublisher {
	return &KafkaSignalPublisher{producer: producer, topic: topic}
}

// SetLogger injects a structured logger.
func (p *KafkaSignalPublisher) SetLogger(l *applogger.Logger) { p.l = l }

func (p *KafkaSignalPublisher) PublishRecords(ctx context.Context, records []models.SignalRecord) error {
	if len(records) == 0 {
		return nil
	}
	msgs := make([]pkgkafka.Message, 0, len(records))
	for _, r := range records {
		msgs = append(msgs, pkgkafka.Message{Key: []byte(r.StockName), Value: r})
	}
	if err := p.producer.PublishBatch(ctx, p.topic, msgs); err != nil {
		if p.l != nil {
			p.l.Error("kafka publish signals error",
				applogger.String("topic", p.topic),
				applogger.Int("count", len(records)),
				applogger.Error(err),
			)
		}
		return fmt.Errorf("publish signals: %w", err)
	}
	if p.l != nil {
		p.l.Debug("kafka publish signals ok",
			applogger.String("topic", p.topic),
			applogger.Int("count", len(records)),
		)
	}
	return nil
}

func (p *KafkaSignalPublisher) Close() error {
	return p.producer.Close()
}

var _ domrepo.SignalPublisher = (*KafkaSignalPublisher)(nil)
