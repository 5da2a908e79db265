package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"PriceSampler/internal/domain/models"
	drepo "PriceSampler/internal/domain/repository"
	"PriceSampler/internal/services/forecast"
	"PriceSampler/pkg/logger"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const artifactSuffix = "_predictions"

// ForecastPipeline turns the successes of a SampleSet into one artifact each.
type ForecastPipeline struct {
	writer    drepo.ArtifactWriter
	publisher drepo.ForecastPublisher
	ext       string
	limit     int
	log       *logger.Logger
	metrics   drepo.Metrics
	now       func() time.Time
}

type PipelineOption func(*ForecastPipeline)

// WithPublisher announces every written artifact. Publish errors never fail
// the batch.
func WithPublisher(p drepo.ForecastPublisher) PipelineOption {
	return func(fp *ForecastPipeline) { fp.publisher = p }
}

func WithPipelineConcurrency(n int) PipelineOption {
	return func(fp *ForecastPipeline) { fp.limit = n }
}

func WithPipelineLogger(l *logger.Logger) PipelineOption {
	return func(fp *ForecastPipeline) { fp.log = l }
}

func WithPipelineMetrics(m drepo.Metrics) PipelineOption {
	return func(fp *ForecastPipeline) { fp.metrics = m }
}

func NewForecastPipeline(writer drepo.ArtifactWriter, ext string, opts ...PipelineOption) *ForecastPipeline {
	fp := &ForecastPipeline{
		writer:  writer,
		ext:     ext,
		log:     logger.Nop(),
		metrics: nopMetrics{},
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(fp)
	}
	return fp
}

// ArtifactName is the output file name for a source id.
func (fp *ForecastPipeline) ArtifactName(sourceID string) string {
	return sourceID + artifactSuffix + fp.ext
}

// BuildForecasts writes one artifact per successful sample and returns their
// names in SampleSet order. Diagnostics are skipped. The first write failure
// cancels the remaining writes and is returned wrapping
// models.ErrArtifactWrite.
func (fp *ForecastPipeline) BuildForecasts(ctx context.Context, set models.SampleSet) ([]string, error) {
	start := time.Now()
	defer func() { fp.metrics.RecordLatency("build_forecasts", time.Since(start).Seconds()) }()

	successes := set.Successes()
	names := make([]string, len(successes))
	written := make([]bool, len(successes))
	skipped := make([]bool, len(successes))

	g, gctx := errgroup.WithContext(ctx)
	if fp.limit > 0 {
		g.SetLimit(fp.limit)
	}
	for i, sm := range successes {
		g.Go(func() error {
			name, err := fp.buildOne(gctx, sm)
			if errors.Is(err, models.ErrInvalidPrice) {
				fp.metrics.RecordError("invalid_price")
				fp.log.Warn("skipping sample with invalid price",
					logger.String("stock_id", sm.SourceID),
					logger.String("exchange", sm.Group),
					logger.Error(err),
				)
				skipped[i] = true
				return nil
			}
			if err != nil {
				return err
			}
			names[i], written[i] = name, true
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		fp.log.Error("forecast batch failed", logger.Error(err))
		return nil, err
	}

	out := make([]string, 0, len(names))
	var skippedIDs []string
	for i, name := range names {
		switch {
		case written[i]:
			out = append(out, name)
		case skipped[i]:
			skippedIDs = append(skippedIDs, successes[i].SourceID)
		}
	}
	fp.log.Info("forecasts written",
		logger.Int("samples", len(successes)),
		logger.Int("artifacts", len(out)),
		logger.Strings("skipped", skippedIDs),
		logger.Duration("duration", time.Since(start)),
	)
	return out, nil
}

func (fp *ForecastPipeline) buildOne(ctx context.Context, sm models.Sample) (string, error) {
	prices, err := forecast.Prices(sm.Window)
	if err != nil {
		return "", err
	}
	f, err := forecast.Calculate(prices)
	if err != nil {
		return "", fmt.Errorf("%w: %v", models.ErrInvalidPrice, err)
	}

	name := fp.ArtifactName(sm.SourceID)
	if err := fp.writer.Write(ctx, name, models.PredictionColumns, f.Records()); err != nil {
		fp.metrics.RecordArtifact("error")
		fp.metrics.RecordError("artifact_write")
		return "", fmt.Errorf("%w: %s: %v", models.ErrArtifactWrite, name, err)
	}
	fp.metrics.RecordArtifact("written")

	fp.publish(ctx, sm, name, f)
	return name, nil
}

func (fp *ForecastPipeline) publish(ctx context.Context, sm models.Sample, name string, f models.Forecast) {
	if fp.publisher == nil {
		return
	}
	ev := &models.ForecastEvent{
		ID:          uuid.NewString(),
		StockID:     sm.SourceID,
		Exchange:    sm.Group,
		Artifact:    name,
		Predictions: f.Predictions(),
		GeneratedAt: fp.now().UTC(),
	}
	if err := fp.publisher.Publish(ctx, ev); err != nil {
		fp.metrics.RecordEvent("error")
		fp.log.Warn("publish forecast event failed",
			logger.String("artifact", name),
			logger.Error(err),
		)
		return
	}
	fp.metrics.RecordEvent("published")
}
