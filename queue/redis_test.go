package queue

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRedisQueue connects to REDIS_TEST_ADDR and skips the test when it is unset.
func newTestRedisQueue(t *testing.T) *RedisQueue {
	t.Helper()
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	require.NoError(t, client.Ping(context.Background()).Err())

	name := fmt.Sprintf("test:notifications:%s", uuid.NewString())
	q := NewRedisQueue(client, name, 2)
	t.Cleanup(func() {
		client.Del(context.Background(), q.pending, q.processing, q.delayed, q.results)
		_ = client.Close()
	})
	return q
}

func TestRedisQueueRoundTrip(t *testing.T) {
	q := newTestRedisQueue(t)
	ctx := context.Background()

	job := NewJob(testJobType, 5)
	require.NoError(t, q.Enqueue(ctx, job))

	got, err := q.Dequeue(ctx, time.Second)
	require.NoError(t, err)
	assert.Equal(t, job.ID, got.ID)
	assert.Equal(t, uint(5), got.BookingID)

	processing, err := q.client.LLen(ctx, q.processing).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), processing)

	require.NoError(t, q.Ack(ctx, got, Result{JobID: got.ID, State: StateSucceeded, Attempts: 1}))

	processing, err = q.client.LLen(ctx, q.processing).Result()
	require.NoError(t, err)
	assert.Zero(t, processing)

	results, err := q.Results(ctx, 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, StateSucceeded, results[0].State)
}

func TestRedisQueueDequeueTimesOut(t *testing.T) {
	q := newTestRedisQueue(t)
	_, err := q.Dequeue(context.Background(), 50*time.Millisecond)
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestRedisQueueRecoverRequeuesUnackedJobs(t *testing.T) {
	q := newTestRedisQueue(t)
	ctx := context.Background()

	require.NoError(t, q.Enqueue(ctx, NewJob(testJobType, 1)))
	_, err := q.Dequeue(ctx, time.Second)
	require.NoError(t, err)

	moved, err := q.Recover(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, moved)

	got, err := q.Dequeue(ctx, time.Second)
	require.NoError(t, err)
	assert.Equal(t, uint(1), got.BookingID)
}

func TestRedisQueueRetryParksJobUntilDue(t *testing.T) {
	q := newTestRedisQueue(t)
	ctx := context.Background()

	require.NoError(t, q.Enqueue(ctx, NewJob(testJobType, 8)))
	got, err := q.Dequeue(ctx, time.Second)
	require.NoError(t, err)

	got.Attempts = 1
	require.NoError(t, q.Retry(ctx, got, 300*time.Millisecond))

	processing, err := q.client.LLen(ctx, q.processing).Result()
	require.NoError(t, err)
	assert.Zero(t, processing)
	delayed, err := q.client.ZCard(ctx, q.delayed).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), delayed)

	_, err = q.Dequeue(ctx, 50*time.Millisecond)
	assert.ErrorIs(t, err, ErrEmpty)

	time.Sleep(300 * time.Millisecond)
	again, err := q.Dequeue(ctx, time.Second)
	require.NoError(t, err)
	assert.Equal(t, got.ID, again.ID)
	assert.Equal(t, 1, again.Attempts)

	moved, err := q.Recover(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, moved)
}

func TestRedisQueueResultHistoryIsTrimmed(t *testing.T) {
	q := newTestRedisQueue(t)
	ctx := context.Background()
	for i := 1; i <= 3; i++ {
		require.NoError(t, q.Ack(ctx, Job{}, Result{BookingID: uint(i), State: StateAbandoned}))
	}

	results, err := q.Results(ctx, 10)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, uint(3), results[0].BookingID)
}
