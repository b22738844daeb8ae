package kafka

import (
	"context"
	"fmt"

	"orderservice/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

// Subscriber implements ports.OrderEventSubscriber over a Kafka consumer
// group. Fetch hands out raw messages and Commit advances the group offset;
// a message fetched but never committed is redelivered after a rebalance or
// restart, which gives the channel its at-least-once semantics.
type Subscriber struct {
	reader *kafka.Reader
}

// NewSubscriber creates a consumer-group subscription to the
// order-dispatched channel.
func NewSubscriber(host, groupID string) *Subscriber {
	return &Subscriber{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers: []string{host},
			GroupID: groupID,
			Topic:   ports.ChannelOrderDispatched,
		}),
	}
}

// Fetch blocks until a message arrives or ctx is cancelled.
func (s *Subscriber) Fetch(ctx context.Context) (ports.Message, error) {
	msg, err := s.reader.FetchMessage(ctx)
	if err != nil {
		return ports.Message{}, err
	}

	return ports.Message{Value: msg.Value, Handle: msg}, nil
}

// Commit acknowledges a previously fetched message.
func (s *Subscriber) Commit(ctx context.Context, msg ports.Message) error {
	kafkaMsg, ok := msg.Handle.(kafka.Message)
	if !ok {
		return fmt.Errorf("message handle is %T, expected kafka.Message", msg.Handle)
	}

	return s.reader.CommitMessages(ctx, kafkaMsg)
}

// Close terminates the subscription and leaves the consumer group.
func (s *Subscriber) Close() error {
	return s.reader.Close()
}
