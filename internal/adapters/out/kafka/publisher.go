// Package kafka adapts the order event channel ports to Kafka topics.
// The order-accepted and order-dispatched channels map one-to-one onto
// topics, and the consumer group commit protocol provides the channel's
// at-least-once delivery guarantee.
package kafka

import (
	"context"
	"encoding/json"
	"log/slog"

	"orderservice/internal/core/domain/model/order"
	"orderservice/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

// Publisher implements ports.OrderEventPublisher on top of a Kafka writer.
type Publisher struct {
	writer *kafka.Writer
	logger *slog.Logger
}

// NewPublisher creates a publisher for the order-accepted channel.
// The order identifier is used as the message key so events for one order
// stay within a single partition and preserve their relative order.
func NewPublisher(host string, logger *slog.Logger) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(host),
			Topic:    ports.ChannelOrderAccepted,
			Balancer: &kafka.Hash{},
		},
		logger: logger.With("component", "kafka_publisher"),
	}
}

// PublishOrderAccepted emits the event on the order-accepted channel.
func (p *Publisher) PublishOrderAccepted(ctx context.Context, event order.AcceptedEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.OrderID),
		Value: payload,
	})
}

// Close flushes pending messages and releases the writer's resources.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
