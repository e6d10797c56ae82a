// Package messaging publishes tracking events to Kafka.
package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/rs/zerolog"

	"github.com/appzeto/food-admin/internal/core/domain"
)

// Producer publishes tracking events to a single topic. Messages are keyed
// by entity id so every change of one order lands on the same partition.
type Producer struct {
	producer sarama.SyncProducer
	topic    string
	log      zerolog.Logger
}

// NewProducer dials the brokers with a synchronous, fully acknowledged producer.
func NewProducer(brokers []string, topic string, log zerolog.Logger) (*Producer, error) {
	cfg := sarama.NewConfig()
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 3
	cfg.Producer.Return.Successes = true
	cfg.Producer.Compression = sarama.CompressionSnappy

	producer, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}

	log.Info().Strs("brokers", brokers).Str("topic", topic).Msg("kafka producer created")
	return NewProducerWith(producer, topic, log), nil
}

// NewProducerWith wraps an existing sarama producer.
func NewProducerWith(producer sarama.SyncProducer, topic string, log zerolog.Logger) *Producer {
	return &Producer{producer: producer, topic: topic, log: log}
}

func (p *Producer) Close() error {
	return p.producer.Close()
}

// Publish sends one event. The context is not consulted; sarama applies its
// own network timeouts.
func (p *Producer) Publish(_ context.Context, event domain.TrackingEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(event.Collection + "/" + event.EntityID),
		Value: sarama.ByteEncoder(data),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event_type"), Value: []byte(event.Type)},
			{Key: []byte("event_id"), Value: []byte(event.ID)},
			{Key: []byte("timestamp"), Value: []byte(event.OccurredAt.Format(time.RFC3339))},
		},
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("failed to send message to topic %s: %w", p.topic, err)
	}

	p.log.Debug().
		Str("topic", p.topic).
		Int32("partition", partition).
		Int64("offset", offset).
		Str("event_type", string(event.Type)).
		Str("event_id", event.ID).
		Msg("event published")
	return nil
}

// LogPublisher is the publisher used when no brokers are configured: events
// are only logged at debug level.
type LogPublisher struct {
	log zerolog.Logger
}

func NewLogPublisher(log zerolog.Logger) *LogPublisher {
	return &LogPublisher{log: log}
}

func (p *LogPublisher) Publish(_ context.Context, event domain.TrackingEvent) error {
	p.log.Debug().
		Str("event_type", string(event.Type)).
		Str("collection", event.Collection).
		Str("entity_id", event.EntityID).
		Msg("tracking event")
	return nil
}
