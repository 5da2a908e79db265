//go:build wireinject
// +build wireinject

package di

import (
	"PriceSampler/pkg/config"
	"PriceSampler/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Observability
		ProvideLogger,
		ProvideRegisterer,
		ProvideGatherer,
		ProvideMetrics,

		// Infrastructure clients
		ProvideKafkaProducer,
		ProvideRedisCache,

		// Repositories
		ProvideGroups,
		ProvideSourceCatalog,
		ProvideSourceReader,
		ProvideArtifactWriter,
		ProvideForecastPublisher,

		// Use cases
		ProvideSampler,
		ProvideForecastPipeline,

		// Transport
		ProvideLimiter,
		ProvideHandler,
		ProvideHTTPServer,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
