package events

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/segmentio/kafka-go"
)

// KafkaPublisher ships events to a Kafka topic for external consumers
// (notification workers, analytics pipelines). Events are keyed by topic
// name so one logical stream stays ordered per partition.
type KafkaPublisher struct {
	writer *kafka.Writer
}

// KafkaConfig holds broker and topic settings for the event stream.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// NewKafkaPublisher creates a publisher over the given brokers.
func NewKafkaPublisher(cfg KafkaConfig) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 50 * time.Millisecond,
		Async:        true,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				log.Printf("events: kafka delivery failed for %d message(s): %v", len(messages), err)
			}
		},
	}
	return &KafkaPublisher{writer: writer}
}

// Publish writes the event to Kafka. Failures are logged, never returned:
// event delivery must not fail the booking that produced it.
func (p *KafkaPublisher) Publish(ctx context.Context, event Event) {
	value, err := json.Marshal(event)
	if err != nil {
		log.Printf("events: failed to encode %s: %v", event.Topic, err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(event.Topic),
		Value: value,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		log.Printf("events: failed to publish %s: %v", event.Topic, err)
	}
}

// Close flushes and closes the underlying writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
