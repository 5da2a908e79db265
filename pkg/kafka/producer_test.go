package kafka

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.msgs = append(w.msgs, msgs...)
	return w.err
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestNewProducerRequiresBrokers(t *testing.T) {
	_, err := NewProducer()
	assert.Error(t, err)
}

func TestNewProducerAppliesOptions(t *testing.T) {
	p, err := NewProducer(WithBrokers([]string{"localhost:9092"}), WithCompression("zstd"), WithHashByKey(true))
	require.NoError(t, err)
	defer p.Close()

	w, ok := p.writer.(*kafka.Writer)
	require.True(t, ok)
	assert.Equal(t, kafka.Zstd, w.Compression)
	assert.IsType(t, &kafka.Hash{}, w.Balancer)
}

func TestProducerPublishEncodesJSON(t *testing.T) {
	w := &fakeWriter{}
	p := newProducer(w, &ProducerConfig{Compression: "gzip"})

	err := p.Publish(context.Background(), "sampler.forecasts", []byte("ASH"), map[string]string{"stock_id": "ASH"})
	require.NoError(t, err)

	require.Len(t, w.msgs, 1)
	assert.Equal(t, "sampler.forecasts", w.msgs[0].Topic)
	assert.Equal(t, []byte("ASH"), w.msgs[0].Key)
	assert.JSONEq(t, `{"stock_id":"ASH"}`, string(w.msgs[0].Value))

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestProducerPassesRawPayloads(t *testing.T) {
	w := &fakeWriter{}
	p := newProducer(w, &ProducerConfig{})

	require.NoError(t, p.PublishBatch(context.Background(), "t", []Message{
		{Value: []byte("raw")},
		{Value: "text"},
	}))
	require.Len(t, w.msgs, 2)
	assert.Equal(t, "raw", string(w.msgs[0].Value))
	assert.Equal(t, "text", string(w.msgs[1].Value))
}

func TestProducerRecordsErrors(t *testing.T) {
	reg := prometheus.NewRegistry()
	w := &fakeWriter{err: errors.New("leader not available")}
	p := newProducer(w, &ProducerConfig{Compression: "gzip", Registerer: reg})

	err := p.Publish(context.Background(), "t", nil, "x")
	require.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(p.metrics.errs.WithLabelValues("t")))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.metrics.msgs.WithLabelValues("t", "gzip", "error")))
}

func TestParseCompressionDefaultsToGzip(t *testing.T) {
	assert.Equal(t, kafka.Gzip, parseCompression("unknown"))
	assert.Equal(t, kafka.Snappy, parseCompression("snappy"))
}
