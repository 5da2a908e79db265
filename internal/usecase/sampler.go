package usecase

import (
	"context"
	"errors"
	"io"
	"math/rand/v2"
	"sync"
	"time"

	"PriceSampler/internal/domain/models"
	drepo "PriceSampler/internal/domain/repository"
	"PriceSampler/internal/services/forecast"
	"PriceSampler/pkg/logger"

	"golang.org/x/sync/errgroup"
)

// Sample outcome labels used for metrics.
const (
	OutcomeSuccess     = "success"
	OutcomeTooShort    = "too_short"
	OutcomeParseError  = "parse_error"
	OutcomeUnavailable = "unavailable"
	OutcomeEmpty       = "empty"
)

// Sampler draws random windows from a random subset of sources per group.
type Sampler struct {
	groups     []models.Group
	catalog    drepo.SourceCatalog
	reader     drepo.SourceReader
	windowSize int
	limit      int
	intn       func(n int) int
	mu         sync.Mutex
	log        *logger.Logger
	metrics    drepo.Metrics
}

type SamplerOption func(*Sampler)

// WithRand replaces the random source. intn must return a value in [0, n).
func WithRand(intn func(n int) int) SamplerOption {
	return func(s *Sampler) { s.intn = intn }
}

// WithMaxConcurrency caps concurrent source reads; n <= 0 means unbounded.
func WithMaxConcurrency(n int) SamplerOption {
	return func(s *Sampler) { s.limit = n }
}

func WithSamplerLogger(l *logger.Logger) SamplerOption {
	return func(s *Sampler) { s.log = l }
}

func WithSamplerMetrics(m drepo.Metrics) SamplerOption {
	return func(s *Sampler) { s.metrics = m }
}

// NewSampler creates a Sampler over a fixed set of groups.
func NewSampler(
	groups []models.Group,
	catalog drepo.SourceCatalog,
	reader drepo.SourceReader,
	windowSize int,
	opts ...SamplerOption,
) *Sampler {
	s := &Sampler{
		groups:     groups,
		catalog:    catalog,
		reader:     reader,
		windowSize: windowSize,
		intn:       rand.IntN,
		log:        logger.Nop(),
		metrics:    nopMetrics{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type groupListing struct {
	sources []models.Source
	err     error
}

// Sample returns one entry per group placeholder or selected source. It only
// returns after every launched read has reported.
func (s *Sampler) Sample(ctx context.Context, k int) models.SampleSet {
	start := time.Now()
	defer func() { s.metrics.RecordLatency("sample", time.Since(start).Seconds()) }()

	listings := s.listGroups(ctx)

	set := make(models.SampleSet, 0, len(s.groups))
	var tasks []models.Source
	for i, g := range s.groups {
		l := listings[i]
		if l.err != nil {
			set = append(set, models.NewGroupFailure(g.Name, l.err))
			s.observe(set[len(set)-1])
			continue
		}
		tasks = append(tasks, s.choose(l.sources, k)...)
	}

	if len(tasks) > 0 {
		set = append(set, s.readAll(ctx, tasks)...)
	}

	s.log.Info("sample set ready",
		logger.Int("requested", k),
		logger.Int("groups", len(s.groups)),
		logger.Int("target", len(tasks)),
		logger.Int("successes", len(set.Successes())),
		logger.Int("diagnostics", len(set.Diagnostics())),
		logger.Duration("duration", time.Since(start)),
	)
	return set
}

func (s *Sampler) listGroups(ctx context.Context) []groupListing {
	listings := make([]groupListing, len(s.groups))
	var wg sync.WaitGroup
	for i, g := range s.groups {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sources, err := s.catalog.List(ctx, g)
			listings[i] = groupListing{sources: sources, err: err}
		}()
	}
	wg.Wait()
	return listings
}

// choose picks min(k, len(sources)) sources uniformly without replacement.
func (s *Sampler) choose(sources []models.Source, k int) []models.Source {
	n := min(k, len(sources))
	pool := make([]models.Source, len(sources))
	copy(pool, sources)
	for i := 0; i < n; i++ {
		j := i + s.randN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:n]
}

func (s *Sampler) readAll(ctx context.Context, tasks []models.Source) []models.Sample {
	results := make([]models.Sample, len(tasks))
	var g errgroup.Group
	if s.limit > 0 {
		g.SetLimit(s.limit)
	}
	for i, src := range tasks {
		g.Go(func() error {
			results[i] = s.readOne(ctx, src)
			s.observe(results[i])
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func (s *Sampler) readOne(ctx context.Context, src models.Source) models.Sample {
	rows, err := s.readRows(ctx, src)
	if err != nil {
		return models.NewSourceFailure(src, err)
	}
	window, _, err := forecast.ExtractWindow(rows, s.windowSize, s.randN)
	if err != nil {
		return models.NewSourceFailure(src, err)
	}
	return models.NewSuccess(src, window)
}

func (s *Sampler) readRows(ctx context.Context, src models.Source) ([]models.Row, error) {
	stream, err := s.reader.Open(ctx, src)
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	var rows []models.Row
	for {
		row, err := stream.Next()
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
}

func (s *Sampler) randN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.intn(n)
}

func (s *Sampler) observe(sm models.Sample) {
	outcome := outcomeOf(sm.Err)
	s.metrics.RecordSample(sm.Group, outcome)
	if sm.OK() {
		return
	}
	s.metrics.RecordError(outcome)
	s.log.Debug("sample diagnostic",
		logger.String("group", sm.Group),
		logger.String("subject", sm.Subject),
		logger.String("outcome", outcome),
		logger.Error(sm.Err),
	)
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, models.ErrGroupUnavailable):
		return OutcomeUnavailable
	case errors.Is(err, models.ErrGroupEmpty):
		return OutcomeEmpty
	case errors.Is(err, models.ErrSourceTooShort):
		return OutcomeTooShort
	default:
		return OutcomeParseError
	}
}

type nopMetrics struct{}

func (nopMetrics) RecordSample(string, string)   {}
func (nopMetrics) RecordArtifact(string)         {}
func (nopMetrics) RecordEvent(string)            {}
func (nopMetrics) RecordError(string)            {}
func (nopMetrics) RecordLatency(string, float64) {}
