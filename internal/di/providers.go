package di

import (
	"fmt"

	"PriceSampler/internal/domain/models"
	"PriceSampler/internal/domain/repository"
	"PriceSampler/internal/handler/api"
	internalrepo "PriceSampler/internal/repository"
	"PriceSampler/internal/service/ratelimit"
	"PriceSampler/internal/usecase"
	"PriceSampler/pkg/cache"
	"PriceSampler/pkg/config"
	xhttp "PriceSampler/pkg/http"
	"PriceSampler/pkg/http/middleware"
	pkgkafka "PriceSampler/pkg/kafka"
	applogger "PriceSampler/pkg/logger"
	"PriceSampler/pkg/metrics"
	"PriceSampler/pkg/server"

	"github.com/prometheus/client_golang/prometheus"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
		Compress:   cfg.Log.Compress,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l.With(applogger.String("env", cfg.Environment)), nil
}

// ProvideRegisterer returns the process-wide Prometheus registerer.
func ProvideRegisterer() prometheus.Registerer {
	return prometheus.DefaultRegisterer
}

// ProvideGatherer returns the process-wide Prometheus gatherer.
func ProvideGatherer() prometheus.Gatherer {
	return prometheus.DefaultGatherer
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics(reg prometheus.Registerer) repository.Metrics {
	return metrics.New(reg)
}

// ProvideGroups resolves the configured group names to directories.
func ProvideGroups(cfg *config.Config) []models.Group {
	groups := make([]models.Group, 0, len(cfg.Sampling.Groups))
	for _, name := range cfg.Sampling.Groups {
		groups = append(groups, models.Group{Name: name, Dir: cfg.GroupDir(name)})
	}
	return groups
}

func ProvideSourceCatalog(cfg *config.Config) repository.SourceCatalog {
	return internalrepo.NewFSCatalog(cfg.Sampling.Extension)
}

func ProvideSourceReader() repository.SourceReader {
	return internalrepo.NewCSVSourceReader()
}

// ProvideArtifactWriter picks the writer for the configured output format.
func ProvideArtifactWriter(cfg *config.Config) repository.ArtifactWriter {
	if cfg.Output.Format == "xlsx" {
		return internalrepo.NewXLSXArtifactWriter(cfg.Output.Dir)
	}
	return internalrepo.NewCSVArtifactWriter(cfg.Output.Dir)
}

// ProvideKafkaProducer creates a Kafka producer, or nil when Kafka is disabled.
func ProvideKafkaProducer(cfg *config.Config, reg prometheus.Registerer) (*pkgkafka.Producer, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.Producer.BatchBytes),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
		pkgkafka.WithRegisterer(reg),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideForecastPublisher creates the Kafka forecast publisher, or nil.
func ProvideForecastPublisher(producer *pkgkafka.Producer, cfg *config.Config) repository.ForecastPublisher {
	if producer == nil {
		return nil
	}
	return internalrepo.NewKafkaForecastPublisher(producer, cfg.Kafka.Topic)
}

// ProvideRedisCache connects to Redis when the redis rate limit backend is
// selected, and returns nil otherwise.
func ProvideRedisCache(cfg *config.Config) (*cache.RedisCache, error) {
	if !cfg.RateLimit.Enabled || cfg.RateLimit.Backend != "redis" {
		return nil, nil
	}
	rc, err := cache.NewRedisCache(
		cache.WithRedisHost(cfg.Redis.Host),
		cache.WithRedisPort(cfg.Redis.Port),
		cache.WithRedisPassword(cfg.Redis.Password),
		cache.WithRedisDB(cfg.Redis.DB),
		cache.WithRedisPool(cfg.Redis.PoolSize, cfg.Redis.MinIdleConns, cfg.Redis.PoolTimeout),
		cache.WithRedisPrefix(cfg.Redis.Prefix),
	)
	if err != nil {
		return nil, fmt.Errorf("redis: %w", err)
	}
	return rc, nil
}

// ProvideLimiter builds the configured rate limiter, or nil when disabled.
func ProvideLimiter(cfg *config.Config, rc *cache.RedisCache) middleware.Limiter {
	rl := cfg.RateLimit
	switch {
	case !rl.Enabled:
		return nil
	case rl.Backend == "redis" && rc != nil:
		return ratelimit.NewRedisLimiter(rc, int64(rl.Capacity), rl.Window)
	default:
		return ratelimit.NewTokenBucket(rl.Capacity, rl.RefillPerSec)
	}
}

// ProvideSampler creates the sampling engine.
func ProvideSampler(
	cfg *config.Config,
	groups []models.Group,
	catalog repository.SourceCatalog,
	reader repository.SourceReader,
	m repository.Metrics,
	l *applogger.Logger,
) *usecase.Sampler {
	l.Info("sampler configured",
		applogger.Strings("groups", cfg.Sampling.Groups),
		applogger.String("base_dir", cfg.Sampling.BaseDir),
		applogger.Int("window_size", cfg.Sampling.WindowSize),
		applogger.Int("max_concurrency", cfg.Sampling.MaxConcurrency),
	)
	return usecase.NewSampler(groups, catalog, reader, cfg.Sampling.WindowSize,
		usecase.WithMaxConcurrency(cfg.Sampling.MaxConcurrency),
		usecase.WithSamplerMetrics(m),
		usecase.WithSamplerLogger(l.With(applogger.String("component", "sampler"))),
	)
}

// ProvideForecastPipeline creates the forecast pipeline.
func ProvideForecastPipeline(
	cfg *config.Config,
	writer repository.ArtifactWriter,
	pub repository.ForecastPublisher,
	m repository.Metrics,
	l *applogger.Logger,
) *usecase.ForecastPipeline {
	opts := []usecase.PipelineOption{
		usecase.WithPipelineConcurrency(cfg.Sampling.MaxConcurrency),
		usecase.WithPipelineMetrics(m),
		usecase.WithPipelineLogger(l.With(applogger.String("component", "forecast"))),
	}
	if pub != nil {
		opts = append(opts, usecase.WithPublisher(pub))
	}
	return usecase.NewForecastPipeline(writer, cfg.ArtifactExt(), opts...)
}

// ProvideHandler creates the HTTP handler.
func ProvideHandler(l *applogger.Logger, sampler *usecase.Sampler, pipeline *usecase.ForecastPipeline) xhttp.Handler {
	return api.NewSamplingEchoHandler(l, sampler, pipeline)
}

// ProvideHTTPServer creates the Echo server.
func ProvideHTTPServer(
	cfg *config.Config,
	handler xhttp.Handler,
	limiter middleware.Limiter,
	reg prometheus.Registerer,
	gatherer prometheus.Gatherer,
	l *applogger.Logger,
) *xhttp.Server {
	metricsPath := ""
	if cfg.Metrics.Enabled {
		metricsPath = cfg.Metrics.Path
	}
	return xhttp.NewServer(handler,
		xhttp.WithHost(cfg.Server.Host),
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithCORS(cfg.Server.CORS),
		xhttp.WithMetrics(metricsPath, reg, gatherer),
		xhttp.WithRateLimit(limiter),
		xhttp.WithLogger(l),
	)
}

// ProvideApp creates the application and registers resources to release on
// shutdown.
func ProvideApp(
	srv *xhttp.Server,
	l *applogger.Logger,
	pub repository.ForecastPublisher,
	rc *cache.RedisCache,
) *server.App {
	app := server.New(srv, l)
	if pub != nil {
		app.OnShutdown("kafka", pub)
	}
	if rc != nil {
		app.OnShutdown("redis", rc)
	}
	return app
}
