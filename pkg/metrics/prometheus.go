package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	samples   *prometheus.CounterVec
	artifacts *prometheus.CounterVec
	events    *prometheus.CounterVec
	errors    *prometheus.CounterVec
	latency   *prometheus.HistogramVec
}

// New creates a Prometheus metrics recorder registered on reg.
func New(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		samples: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sampler_samples_total",
				Help: "Sampling outcomes by group",
			},
			[]string{"group", "outcome"},
		),
		artifacts: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sampler_artifacts_total",
				Help: "Forecast artifacts by write result",
			},
			[]string{"result"},
		),
		events: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sampler_events_published_total",
				Help: "Forecast events by publish result",
			},
			[]string{"result"},
		),
		errors: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sampler_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		latency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sampler_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordSample records the outcome of one source or group.
func (r *Recorder) RecordSample(group, outcome string) {
	r.samples.WithLabelValues(group, outcome).Inc()
}

// RecordArtifact records an artifact write result.
func (r *Recorder) RecordArtifact(result string) {
	r.artifacts.WithLabelValues(result).Inc()
}

// RecordEvent records a forecast event publish result.
func (r *Recorder) RecordEvent(result string) {
	r.events.WithLabelValues(result).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errors.WithLabelValues(kind).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
