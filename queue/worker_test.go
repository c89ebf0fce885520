package queue

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJobType = "send_booking_notification"

func fastConfig() WorkerConfig {
	return WorkerConfig{
		Concurrency:   1,
		MaxRetries:    3,
		RetryDelay:    time.Millisecond,
		SoftTimeLimit: 50 * time.Millisecond,
		HardTimeLimit: 100 * time.Millisecond,
		PollInterval:  10 * time.Millisecond,
	}
}

func TestWorkerSucceedsFirstAttempt(t *testing.T) {
	w := NewWorker(NewMemoryQueue(1, 10), fastConfig())
	w.Register(testJobType, HandlerFunc(func(ctx context.Context, job Job) (interface{}, error) {
		return map[string]uint{"booking_id": job.BookingID}, nil
	}))

	result, step := w.Process(context.Background(), NewJob(testJobType, 7))
	require.Equal(t, StepAck, step)
	assert.Equal(t, StateSucceeded, result.State)
	assert.Equal(t, 1, result.Attempts)
	assert.Empty(t, result.Error)
	assert.JSONEq(t, `{"booking_id":7}`, string(result.Outcome))
}

func TestWorkerHandsTransientFailureBackUntilLastAttempt(t *testing.T) {
	w := NewWorker(NewMemoryQueue(1, 10), fastConfig())
	w.Register(testJobType, HandlerFunc(func(ctx context.Context, job Job) (interface{}, error) {
		return nil, errors.New("smtp connection refused")
	}))

	job := NewJob(testJobType, 1)
	result, step := w.Process(context.Background(), job)
	require.Equal(t, StepRetry, step)
	assert.Equal(t, 1, result.Attempts)
	assert.Empty(t, result.State)
	assert.Contains(t, result.Error, "connection refused")

	job.Attempts = 3
	result, step = w.Process(context.Background(), job)
	require.Equal(t, StepAck, step)
	assert.Equal(t, StateAbandoned, result.State)
	assert.Equal(t, 4, result.Attempts)
}

func TestWorkerRunRetriesTransientErrorsThenAbandons(t *testing.T) {
	q := NewMemoryQueue(10, 10)
	w := NewWorker(q, fastConfig())
	var calls int32
	w.Register(testJobType, HandlerFunc(func(ctx context.Context, job Job) (interface{}, error) {
		atomic.AddInt32(&calls, 1)
		return nil, errors.New("smtp connection refused")
	}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, q.Enqueue(ctx, NewJob(testJobType, 1)))
	go func() { _ = w.Run(ctx) }()

	var results []Result
	require.Eventually(t, func() bool {
		results, _ = q.Results(context.Background(), 10)
		return len(results) == 1
	}, 2*time.Second, 10*time.Millisecond)

	assert.Equal(t, StateAbandoned, results[0].State)
	assert.Equal(t, 4, results[0].Attempts)
	assert.Equal(t, int32(4), atomic.LoadInt32(&calls))
	assert.Contains(t, results[0].Error, "connection refused")
}

func TestWorkerRunRecoversAfterTransientError(t *testing.T) {
	q := NewMemoryQueue(10, 10)
	w := NewWorker(q, fastConfig())
	var calls int32
	w.Register(testJobType, HandlerFunc(func(ctx context.Context, job Job) (interface{}, error) {
		if atomic.AddInt32(&calls, 1) < 3 {
			return nil, errors.New("temporary")
		}
		return nil, nil
	}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, q.Enqueue(ctx, NewJob(testJobType, 1)))
	go func() { _ = w.Run(ctx) }()

	var results []Result
	require.Eventually(t, func() bool {
		results, _ = q.Results(context.Background(), 10)
		return len(results) == 1
	}, 2*time.Second, 10*time.Millisecond)

	assert.Equal(t, StateSucceeded, results[0].State)
	assert.Equal(t, 3, results[0].Attempts)
}

func TestWorkerRetryDelayDoesNotHoldUpOtherJobs(t *testing.T) {
	cfg := fastConfig()
	cfg.RetryDelay = 300 * time.Millisecond
	q := NewMemoryQueue(10, 10)
	w := NewWorker(q, cfg)

	handled := make(chan uint, 10)
	w.Register(testJobType, HandlerFunc(func(ctx context.Context, job Job) (interface{}, error) {
		handled <- job.BookingID
		if job.BookingID == 1 {
			return nil, errors.New("smtp connection refused")
		}
		return nil, nil
	}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, q.Enqueue(ctx, NewJob(testJobType, 1)))
	require.NoError(t, q.Enqueue(ctx, NewJob(testJobType, 2)))

	started := time.Now()
	go func() { _ = w.Run(ctx) }()

	var waited time.Duration
	for waited == 0 {
		select {
		case id := <-handled:
			if id == 2 {
				waited = time.Since(started)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("booking #2 was not handled")
		}
	}
	assert.Less(t, waited, cfg.RetryDelay, "booking #2 waited for the retry delay of booking #1")

	require.Eventually(t, func() bool {
		results, _ := q.Results(context.Background(), 10)
		return len(results) == 1 && results[0].BookingID == 2
	}, time.Second, 5*time.Millisecond)
}

func TestWorkerSlowJobDoesNotHoldUpOtherConsumers(t *testing.T) {
	cfg := fastConfig()
	cfg.Concurrency = 2
	cfg.SoftTimeLimit = time.Second
	cfg.HardTimeLimit = 2 * time.Second
	q := NewMemoryQueue(10, 10)
	w := NewWorker(q, cfg)

	release := make(chan struct{})
	w.Register(testJobType, HandlerFunc(func(ctx context.Context, job Job) (interface{}, error) {
		if job.BookingID == 1 {
			<-release
		}
		return nil, nil
	}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, q.Enqueue(ctx, NewJob(testJobType, 1)))
	require.NoError(t, q.Enqueue(ctx, NewJob(testJobType, 2)))
	go func() { _ = w.Run(ctx) }()

	require.Eventually(t, func() bool {
		results, _ := q.Results(context.Background(), 10)
		return len(results) == 1 && results[0].BookingID == 2
	}, time.Second, 5*time.Millisecond)

	close(release)
	require.Eventually(t, func() bool {
		results, _ := q.Results(context.Background(), 10)
		return len(results) == 2
	}, time.Second, 5*time.Millisecond)
}

func TestWorkerStopsOnPermanentError(t *testing.T) {
	var calls int32
	w := NewWorker(NewMemoryQueue(1, 10), fastConfig())
	w.Register(testJobType, HandlerFunc(func(ctx context.Context, job Job) (interface{}, error) {
		atomic.AddInt32(&calls, 1)
		return map[string]string{"status": "error"}, Permanent(errors.New("booking 99 not found"))
	}))

	result, step := w.Process(context.Background(), NewJob(testJobType, 99))
	require.Equal(t, StepAck, step)
	assert.Equal(t, StateFailed, result.State)
	assert.Equal(t, 1, result.Attempts)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.Equal(t, "booking 99 not found", result.Error)

	var outcome map[string]string
	require.NoError(t, json.Unmarshal(result.Outcome, &outcome))
	assert.Equal(t, "error", outcome["status"])
}

func TestWorkerHardTimeLimitCountsAsFailedAttempt(t *testing.T) {
	cfg := fastConfig()
	cfg.MaxRetries = 1
	w := NewWorker(NewMemoryQueue(1, 10), cfg)
	w.Register(testJobType, HandlerFunc(func(ctx context.Context, job Job) (interface{}, error) {
		// Ignores its context, so only the hard limit ends the attempt.
		time.Sleep(300 * time.Millisecond)
		return nil, nil
	}))

	job := NewJob(testJobType, 1)
	result, step := w.Process(context.Background(), job)
	require.Equal(t, StepRetry, step)
	assert.Equal(t, ErrHardTimeLimit.Error(), result.Error)

	job.Attempts = result.Attempts
	result, step = w.Process(context.Background(), job)
	require.Equal(t, StepAck, step)
	assert.Equal(t, StateAbandoned, result.State)
	assert.Equal(t, 2, result.Attempts)
	assert.Equal(t, ErrHardTimeLimit.Error(), result.Error)
}

func TestWorkerSoftTimeLimitCancelsHandlerContext(t *testing.T) {
	cfg := fastConfig()
	cfg.MaxRetries = 0
	w := NewWorker(NewMemoryQueue(1, 10), cfg)
	w.Register(testJobType, HandlerFunc(func(ctx context.Context, job Job) (interface{}, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}))

	result, step := w.Process(context.Background(), NewJob(testJobType, 1))
	require.Equal(t, StepAck, step)
	assert.Equal(t, StateAbandoned, result.State)
	assert.Contains(t, result.Error, context.DeadlineExceeded.Error())
}

func TestWorkerRecoversHandlerPanic(t *testing.T) {
	cfg := fastConfig()
	cfg.MaxRetries = 0
	w := NewWorker(NewMemoryQueue(1, 10), cfg)
	w.Register(testJobType, HandlerFunc(func(ctx context.Context, job Job) (interface{}, error) {
		panic("template exploded")
	}))

	result, step := w.Process(context.Background(), NewJob(testJobType, 1))
	require.Equal(t, StepAck, step)
	assert.Equal(t, StateAbandoned, result.State)
	assert.Contains(t, result.Error, "template exploded")
}

func TestWorkerUnknownJobTypeFails(t *testing.T) {
	w := NewWorker(NewMemoryQueue(1, 10), fastConfig())

	result, step := w.Process(context.Background(), NewJob("unknown", 1))
	require.Equal(t, StepAck, step)
	assert.Equal(t, StateFailed, result.State)
	assert.Equal(t, 0, result.Attempts)
}

func TestWorkerRunAcksResultsAndStopsOnCancel(t *testing.T) {
	q := NewMemoryQueue(10, 10)
	w := NewWorker(q, fastConfig())
	handled := make(chan uint, 2)
	w.Register(testJobType, HandlerFunc(func(ctx context.Context, job Job) (interface{}, error) {
		handled <- job.BookingID
		return nil, nil
	}))

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, q.Enqueue(ctx, NewJob(testJobType, 1)))
	require.NoError(t, q.Enqueue(ctx, NewJob(testJobType, 2)))

	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	for i := 0; i < 2; i++ {
		select {
		case <-handled:
		case <-time.After(2 * time.Second):
			t.Fatal("job was not handled")
		}
	}

	require.Eventually(t, func() bool {
		results, _ := q.Results(context.Background(), 10)
		return len(results) == 2
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop")
	}
}

func TestWorkerShutdownDuringAttemptLeavesJobUnacked(t *testing.T) {
	cfg := fastConfig()
	cfg.SoftTimeLimit = time.Hour
	cfg.HardTimeLimit = time.Hour
	w := NewWorker(NewMemoryQueue(1, 10), cfg)
	w.Register(testJobType, HandlerFunc(func(ctx context.Context, job Job) (interface{}, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}))

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	result, step := w.Process(ctx, NewJob(testJobType, 1))
	assert.Equal(t, StepAbort, step)
	assert.Equal(t, 1, result.Attempts)
	assert.Empty(t, result.State)
}
