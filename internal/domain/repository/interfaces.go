package repository

import (
	"context"

	"PriceSampler/internal/domain/models"
)

// SourceCatalog enumerates the eligible sources of a group. It returns
// models.ErrGroupUnavailable or models.ErrGroupEmpty instead of an empty list.
type SourceCatalog interface {
	List(ctx context.Context, group models.Group) ([]models.Source, error)
}

// RowStream yields rows until io.EOF; any other error is a parse failure.
type RowStream interface {
	Next() (models.Row, error)
	Close() error
}

// SourceReader opens one source for streaming.
type SourceReader interface {
	Open(ctx context.Context, src models.Source) (RowStream, error)
}

// ArtifactWriter emits one named tabular artifact. A successful return means
// the artifact is complete on disk.
type ArtifactWriter interface {
	Write(ctx context.Context, name string, columns []models.Column, records []models.Record) error
}

// ForecastPublisher announces written artifacts to downstream consumers.
type ForecastPublisher interface {
	Publish(ctx context.Context, ev *models.ForecastEvent) error
	Close() error
}

type Metrics interface {
	RecordSample(group, outcome string)
	RecordArtifact(result string)
	RecordEvent(result string)
	RecordError(kind string)
	RecordLatency(op string, seconds float64)
}
