package kafka

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"
	interfaces "github.com/sheikh-saqib/payments-accounting-engine/internal/interfaces"
)

// Publisher writes engine events to Kafka. Topics are namespaced with an
// optional prefix so several environments can share a cluster.
type Publisher struct {
	writer *kafka.Writer
	prefix string
}

// NewPublisher creates a publisher connected to the given brokers.
func NewPublisher(brokers []string, topicPrefix string) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Balancer: &kafka.LeastBytes{}, // route each message to the least loaded partition
		},
		prefix: topicPrefix,
	}
}

// Publish serializes the event as JSON and writes it to the prefixed topic.
// Implements the EventPublisher interface.
func (p *Publisher) Publish(ctx context.Context, topic string, event any) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Topic: p.prefix + topic, // topic set per message so one writer serves both streams
		Value: data,
	})
}

// Close flushes pending messages and releases the writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}

var _ interfaces.EventPublisher = (*Publisher)(nil)
