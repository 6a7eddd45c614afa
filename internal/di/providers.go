package di

import (
	"context"
	"fmt"
	"time"

	"TrendSight/internal/domain/repository"
	"TrendSight/internal/handler/api"
	internalrepo "TrendSight/internal/repository"
	icache "TrendSight/internal/service/cache"
	"TrendSight/internal/usecase"
	pkgch "TrendSight/pkg/clickhouse"
	"TrendSight/pkg/config"
	xhttp "TrendSight/pkg/http"
	pkgkafka "TrendSight/pkg/kafka"
	applogger "TrendSight/pkg/logger"
	"TrendSight/pkg/metrics"
	"TrendSight/pkg/server"

	"github.com/labstack/echo/v4"
)

// Storage bundles the configured bar source with its optional write
// side. Store is nil when the source is read-only (csv).
type Storage struct {
	Source repository.BarSource
	Store  repository.BarStore
}

// ProvideLogger creates the structured logger from config.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	return applogger.New(&applogger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideStorage creates the bar source selected by config. The
// clickhouse source also initializes the schema.
func ProvideStorage(cfg *config.Config, logger *applogger.Logger) (*Storage, error) {
	switch cfg.Source.Type {
	case "csv":
		return &Storage{Source: internalrepo.NewCSVBarSource(cfg.Source.CSVDir)}, nil

	case "clickhouse":
		client, err := pkgch.NewClient(
			pkgch.WithHost(cfg.ClickHouse.Host),
			pkgch.WithPort(cfg.ClickHouse.Port),
			pkgch.WithDatabase(cfg.ClickHouse.Database),
			pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
			pkgch.WithMaxConnections(10, 5),
			pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
			pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitForAsync),
			pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
			pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
		)
		if err != nil {
			return nil, fmt.Errorf("clickhouse client: %w", err)
		}

		store := internalrepo.NewCHBarStore(client)
		store.SetLogger(logger)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := store.InitSchema(ctx); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("clickhouse schema: %w", err)
		}

		return &Storage{Source: store, Store: store}, nil

	default:
		return nil, fmt.Errorf("unknown source type %q", cfg.Source.Type)
	}
}

// ProvidePublisher creates the Kafka signal publisher, or nil when
// Kafka is disabled.
func ProvidePublisher(cfg *config.Config, logger *applogger.Logger) (repository.SignalPublisher, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.Producer.BatchBytes),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.BatchTimeout),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	publisher := internalrepo.NewKafkaSignalPublisher(producer, cfg.Kafka.SignalsTopic)
	publisher.SetLogger(logger)
	return publisher, nil
}

// ProvideKafkaConsumer creates the bar-ingest consumer, or nil when
// Kafka or the bars topic is not configured.
func ProvideKafkaConsumer(cfg *config.Config) (*pkgkafka.Consumer, error) {
	if !cfg.Kafka.Enabled || cfg.Kafka.BarsTopic == "" {
		return nil, nil
	}
	consumer, err := pkgkafka.NewConsumer(
		pkgkafka.WithConsumerBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithConsumerGroupID(cfg.Kafka.Consumer.GroupID),
		pkgkafka.WithConsumerWorkers(cfg.Kafka.Consumer.Workers),
		pkgkafka.WithConsumerBufferSize(cfg.Kafka.Consumer.BufferSize),
		pkgkafka.WithConsumerRetry(cfg.Kafka.Consumer.RetryMax, cfg.Kafka.Consumer.BackoffMin, cfg.Kafka.Consumer.BackoffMax),
		pkgkafka.WithConsumerDLQ(cfg.Kafka.Consumer.DLQTopic),
		pkgkafka.WithConsumerFetch(cfg.Kafka.Consumer.MinBytes, cfg.Kafka.Consumer.MaxBytes),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka consumer: %w", err)
	}
	return consumer, nil
}

// ProvideBarsHandler creates the bar-ingest message handler. Ingest
// needs a writable store; with a read-only source it stays nil.
func ProvideBarsHandler(cfg *config.Config, storage *Storage, m repository.Metrics) pkgkafka.MessageHandler {
	if storage.Store == nil || cfg.Kafka.BarsTopic == "" {
		return nil
	}
	return usecase.NewKafkaBarsHandler(cfg.Kafka.BarsTopic, storage.Store, m)
}

// ProvideCache creates the response cache: Redis when configured,
// otherwise in-process.
func ProvideCache(cfg *config.Config) icache.BytesCache {
	if cfg.Redis.Enabled {
		return icache.NewRedisCache(icache.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}
	return icache.NewTTLCache()
}

// ProvideAnalysisUseCase creates the single-symbol analysis use case.
func ProvideAnalysisUseCase(storage *Storage, m repository.Metrics, cfg *config.Config) *usecase.AnalysisUseCase {
	return usecase.NewAnalysisUseCase(storage.Source, m, cfg.Indicators, cfg.Signals)
}

// ProvideScanUseCase creates the multi-symbol scan use case.
func ProvideScanUseCase(analysis *usecase.AnalysisUseCase, storage *Storage, publisher repository.SignalPublisher, m repository.Metrics) *usecase.ScanUseCase {
	return usecase.NewScanUseCase(analysis, storage.Store, publisher, m)
}

// ProvideHTTPHandler assembles the API handler with cache and health
// probe attached.
func ProvideHTTPHandler(
	logger *applogger.Logger,
	analysis *usecase.AnalysisUseCase,
	scan *usecase.ScanUseCase,
	cache icache.BytesCache,
	storage *Storage,
) xhttp.Handler {
	h := api.NewAnalysisHandler(logger, analysis, scan)
	h.SetCache(cache)
	if storage.Store != nil {
		store := storage.Store
		h.SetHealthCheck(func(c echo.Context) error {
			return store.Health(c.Request().Context())
		})
	}
	return h
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	logger *applogger.Logger,
	handler xhttp.Handler,
	consumer *pkgkafka.Consumer,
	barsHandler pkgkafka.MessageHandler,
	storage *Storage,
	publisher repository.SignalPublisher,
) *server.App {
	return server.New(cfg, logger, handler, consumer, barsHandler, storage.Store, publisher)
}
