package repository

import (
	"context"

	"PriceSampler/internal/domain/models"
	"PriceSampler/internal/domain/repository"
)

// messageProducer is the slice of pkg/kafka.Producer the publisher needs.
type messageProducer interface {
	Publish(ctx context.Context, topic string, key []byte, value interface{}) error
	Close() error
}

// KafkaForecastPublisher implements ForecastPublisher for Kafka.
type KafkaForecastPublisher struct {
	producer messageProducer
	topic    string
}

// NewKafkaForecastPublisher creates a publisher keyed by stock id.
func NewKafkaForecastPublisher(producer messageProducer, topic string) repository.ForecastPublisher {
	return &KafkaForecastPublisher{producer: producer, topic: topic}
}

func (p *KafkaForecastPublisher) Publish(ctx context.Context, ev *models.ForecastEvent) error {
	return p.producer.Publish(ctx, p.topic, []byte(ev.StockID), ev)
}

func (p *KafkaForecastPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
