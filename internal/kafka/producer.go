package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/IBM/sarama"
	"github.com/doafacil/doafacil/internal/config"
	"github.com/doafacil/doafacil/internal/models"
	"go.uber.org/fx"
)

// Publisher emits product lifecycle events for downstream consumers.
type Publisher interface {
	PublishProductEvent(ctx context.Context, event models.ProductEvent) error
}

type publisher struct {
	producer sarama.SyncProducer
	topic    string
}

// NewPublisher builds a Kafka publisher, or a noop one when no brokers are
// configured (local development, tests).
func NewPublisher(lc fx.Lifecycle, cfg *config.Config) (Publisher, error) {
	if len(cfg.Kafka.Brokers) == 0 {
		return &noopPublisher{}, nil
	}

	sc := sarama.NewConfig()
	sc.Producer.RequiredAcks = sarama.WaitForAll
	sc.Producer.Retry.Max = 3
	sc.Producer.Return.Successes = true

	producer, err := sarama.NewSyncProducer(cfg.Kafka.Brokers, sc)
	if err != nil {
		return nil, fmt.Errorf("init kafka producer: %w", err)
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return producer.Close()
		},
	})

	return &publisher{
		producer: producer,
		topic:    cfg.Kafka.Topic,
	}, nil
}

func (p *publisher) PublishProductEvent(_ context.Context, event models.ProductEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	// Keyed by product id so events for one product stay ordered.
	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(event.ProductID),
		Value: sarama.ByteEncoder(payload),
	}
	if _, _, err := p.producer.SendMessage(msg); err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}

type noopPublisher struct{}

func (*noopPublisher) PublishProductEvent(context.Context, models.ProductEvent) error {
	return nil
}
