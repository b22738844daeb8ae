// Package inmemory provides a process-local event channel for local runs
// and tests where no broker is available. It honors the same contract as
// the Kafka adapter: a message fetched but not committed is redelivered.
package inmemory

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"orderservice/internal/core/domain/model/order"
	"orderservice/internal/core/ports"
)

// ErrChannelClosed is returned by operations on a closed channel.
var ErrChannelClosed = errors.New("channel is closed")

// Channel is a single named event channel. It implements both
// ports.OrderEventPublisher and ports.OrderEventSubscriber so one instance
// can stand in for a topic end to end.
type Channel struct {
	mu       sync.Mutex
	queue    chan queued
	inflight map[uint64][]byte
	nextSeq  uint64
	closed   bool
}

type queued struct {
	seq   uint64
	value []byte
}

// NewChannel creates a channel holding at most capacity undelivered messages.
func NewChannel(capacity int) *Channel {
	return &Channel{
		queue:    make(chan queued, capacity),
		inflight: make(map[uint64][]byte),
	}
}

// PublishOrderAccepted marshals the event and enqueues it.
func (c *Channel) PublishOrderAccepted(_ context.Context, event order.AcceptedEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return c.Enqueue(payload)
}

// Enqueue places a raw payload on the channel. Returns ErrChannelClosed
// after Close, and an error when the channel is full rather than blocking.
func (c *Channel) Enqueue(payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrChannelClosed
	}

	c.nextSeq++
	select {
	case c.queue <- queued{seq: c.nextSeq, value: payload}:
		return nil
	default:
		return errors.New("channel is full")
	}
}

// Fetch blocks until a message arrives or ctx is cancelled. The fetched
// message stays in flight until committed.
func (c *Channel) Fetch(ctx context.Context) (ports.Message, error) {
	select {
	case <-ctx.Done():
		return ports.Message{}, ctx.Err()
	case msg, ok := <-c.queue:
		if !ok {
			return ports.Message{}, ErrChannelClosed
		}

		c.mu.Lock()
		c.inflight[msg.seq] = msg.value
		c.mu.Unlock()

		return ports.Message{Value: msg.value, Handle: msg.seq}, nil
	}
}

// Commit acknowledges a fetched message, removing it from the in-flight set.
func (c *Channel) Commit(_ context.Context, msg ports.Message) error {
	seq, ok := msg.Handle.(uint64)
	if !ok {
		return errors.New("message handle is not from this channel")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.inflight, seq)
	return nil
}

// Redeliver returns every uncommitted message to the queue, simulating the
// redelivery a broker performs after a consumer restart.
func (c *Channel) Redeliver() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for seq, value := range c.inflight {
		select {
		case c.queue <- queued{seq: seq, value: value}:
			delete(c.inflight, seq)
		default:
			return
		}
	}
}

// Close marks the channel closed. Messages already queued can still be
// fetched and committed.
func (c *Channel) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	close(c.queue)
	return nil
}
