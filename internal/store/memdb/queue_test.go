package memdb_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hedisam/ringqueue/internal/ringbuffer"
	"github.com/hedisam/ringqueue/internal/store"
	"github.com/hedisam/ringqueue/internal/store/memdb"
)

func TestQueue(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	q, err := memdb.NewQueue(2, memdb.WithClock(func() time.Time { return now }))
	require.NoError(t, err)

	_, err = q.Dequeue(ctx)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = q.Peek(ctx)
	assert.ErrorIs(t, err, store.ErrNotFound)

	first, err := q.Enqueue(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, store.Message{Seq: 1, Body: "a", EnqueuedAt: now}, first)

	second, err := q.Enqueue(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, uint64(2), second.Seq)

	_, err = q.Enqueue(ctx, "c")
	require.ErrorIs(t, err, store.ErrQueueFull)
	rejectedErr := &store.RejectedError{}
	require.True(t, errors.As(err, &rejectedErr))
	assert.Equal(t, "c", rejectedErr.Message.Body)
	assert.Equal(t, uint64(3), rejectedErr.Message.Seq)

	stats, err := q.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, store.Stats{Len: 2, Cap: 2, Full: true, Enqueued: 2, Rejected: 1}, stats)

	peeked, err := q.Peek(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, peeked)

	msg, err := q.Dequeue(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, msg)

	// the rejected message did not use up a sequence number
	third, err := q.Enqueue(ctx, "c")
	require.NoError(t, err)
	assert.Equal(t, uint64(3), third.Seq)

	msg, _ = q.Dequeue(ctx)
	assert.Equal(t, "b", msg.Body)
	msg, _ = q.Dequeue(ctx)
	assert.Equal(t, "c", msg.Body)
	_, err = q.Dequeue(ctx)
	assert.ErrorIs(t, err, store.ErrNotFound)

	stats, err = q.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, store.Stats{Len: 0, Cap: 2, Enqueued: 3, Dequeued: 3, Rejected: 1}, stats)
}

func TestNewQueueErrors(t *testing.T) {
	_, err := memdb.NewQueue(0)
	assert.ErrorIs(t, err, ringbuffer.ErrInitializationLayout)

	_, err = memdb.NewQueue(1024, memdb.WithMaxBytes(64))
	assert.ErrorIs(t, err, ringbuffer.ErrInitializationAllocation)
}

func TestQueueClose(t *testing.T) {
	ctx := context.Background()
	q, err := memdb.NewQueue(4)
	require.NoError(t, err)
	_, err = q.Enqueue(ctx, "a")
	require.NoError(t, err)

	require.NoError(t, q.Close())
	assert.ErrorIs(t, q.Close(), ringbuffer.ErrReleased)

	_, err = q.Enqueue(ctx, "b")
	assert.ErrorIs(t, err, ringbuffer.ErrReleased)
	_, err = q.Dequeue(ctx)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestQueueConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	const total = 10_000
	q, err := memdb.NewQueue(16)
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for sent := 0; sent < total; {
			_, err := q.Enqueue(ctx, "msg")
			if errors.Is(err, store.ErrQueueFull) {
				continue
			}
			if !assert.NoError(t, err) {
				return
			}
			sent++
		}
	}()

	var lastSeq uint64
	for received := 0; received < total; {
		msg, err := q.Dequeue(ctx)
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		require.NoError(t, err)
		require.Equal(t, lastSeq+1, msg.Seq)
		lastSeq = msg.Seq
		received++
	}
	wg.Wait()
}
