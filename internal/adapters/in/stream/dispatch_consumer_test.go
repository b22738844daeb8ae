package stream_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"orderservice/internal/adapters/in/stream"
	"orderservice/internal/adapters/out/inmemory"
	"orderservice/internal/core/application/usecases/commands"
	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDispatchHandler struct {
	mu      sync.Mutex
	handled []kernel.UUID
	err     error
	done    chan struct{}
}

func newFakeDispatchHandler(err error) *fakeDispatchHandler {
	return &fakeDispatchHandler{err: err, done: make(chan struct{}, 16)}
}

func (f *fakeDispatchHandler) Handle(_ context.Context, cmd commands.DispatchOrderCommand) error {
	f.mu.Lock()
	f.handled = append(f.handled, cmd.OrderID())
	f.mu.Unlock()
	f.done <- struct{}{}
	return f.err
}

func (f *fakeDispatchHandler) handledIDs() []kernel.UUID {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]kernel.UUID(nil), f.handled...)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func waitFor(t *testing.T, ch chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for the consumer")
	}
}

func TestDispatchConsumer_ProcessesAndCommitsValidNotification(t *testing.T) {
	channel := inmemory.NewChannel(8)
	handler := newFakeDispatchHandler(nil)
	consumer := stream.NewDispatchConsumer(channel, handler, 4, testLogger())

	id := kernel.NewUUID()
	err := channel.PublishOrderAccepted(context.Background(), order.NewAcceptedEvent(id))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	runDone := make(chan struct{})
	go func() {
		_ = consumer.Run(ctx)
		close(runDone)
	}()

	waitFor(t, handler.done)
	cancel()
	waitFor(t, runDone)

	require.Len(t, handler.handledIDs(), 1)
	assert.True(t, handler.handledIDs()[0].IsEqual(id))

	// Committed, so redelivery yields nothing.
	channel.Redeliver()
	fetchCtx, fetchCancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer fetchCancel()
	_, err = channel.Fetch(fetchCtx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestDispatchConsumer_DropsMalformedPayload(t *testing.T) {
	channel := inmemory.NewChannel(8)
	handler := newFakeDispatchHandler(nil)
	consumer := stream.NewDispatchConsumer(channel, handler, 1, testLogger())

	require.NoError(t, channel.Enqueue([]byte(`not json`)))
	require.NoError(t, channel.Enqueue([]byte(`{"orderId":"not-a-uuid"}`)))

	id := kernel.NewUUID()
	require.NoError(t, channel.PublishOrderAccepted(context.Background(), order.NewAcceptedEvent(id)))

	ctx, cancel := context.WithCancel(context.Background())
	runDone := make(chan struct{})
	go func() {
		_ = consumer.Run(ctx)
		close(runDone)
	}()

	// Only the valid third message reaches the handler.
	waitFor(t, handler.done)
	cancel()
	waitFor(t, runDone)

	require.Len(t, handler.handledIDs(), 1)
	assert.True(t, handler.handledIDs()[0].IsEqual(id))

	// The malformed messages were committed, nothing comes back.
	channel.Redeliver()
	fetchCtx, fetchCancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer fetchCancel()
	_, err := channel.Fetch(fetchCtx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestDispatchConsumer_TransientFailureLeavesMessageUncommitted(t *testing.T) {
	channel := inmemory.NewChannel(8)
	handler := newFakeDispatchHandler(errors.New("store unavailable"))
	consumer := stream.NewDispatchConsumer(channel, handler, 1, testLogger())

	id := kernel.NewUUID()
	require.NoError(t, channel.PublishOrderAccepted(context.Background(), order.NewAcceptedEvent(id)))

	ctx, cancel := context.WithCancel(context.Background())
	runDone := make(chan struct{})
	go func() {
		_ = consumer.Run(ctx)
		close(runDone)
	}()

	waitFor(t, handler.done)
	cancel()
	waitFor(t, runDone)

	// Uncommitted, so the channel redelivers it.
	channel.Redeliver()
	msg, err := channel.Fetch(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, `{"orderId":"`+id.String()+`"}`, string(msg.Value))
}
