//go:build wireinject
// +build wireinject

package di

import (
	"TrendSight/pkg/config"
	"TrendSight/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure
		ProvideStorage,
		ProvidePublisher,
		ProvideKafkaConsumer,
		ProvideCache,

		// Use cases
		ProvideAnalysisUseCase,
		ProvideScanUseCase,
		ProvideBarsHandler,

		// HTTP and application server
		ProvideHTTPHandler,
		ProvideApp,
	)
	return &server.App{}, nil
}
