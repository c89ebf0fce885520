package queue

import (
	"context"
	"errors"
	"sync"
	"time"

	"travel-agency/logger"
)

// MemoryQueue is an in-process queue. Jobs are lost when the process exits.
type MemoryQueue struct {
	jobs chan Job

	mu      sync.Mutex
	results []Result
	history int
	delayed map[string]*time.Timer
	closed  bool
}

func NewMemoryQueue(capacity, history int) *MemoryQueue {
	if capacity <= 0 {
		capacity = 1024
	}
	if history <= 0 {
		history = 1000
	}
	return &MemoryQueue{
		jobs:    make(chan Job, capacity),
		history: history,
		delayed: make(map[string]*time.Timer),
	}
}

func (q *MemoryQueue) Enqueue(ctx context.Context, job Job) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return ErrClosed
	}
	select {
	case q.jobs <- job:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return ErrFull
	}
}

func (q *MemoryQueue) Dequeue(ctx context.Context, wait time.Duration) (Job, error) {
	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case job, ok := <-q.jobs:
		if !ok {
			return Job{}, ErrClosed
		}
		return job, nil
	case <-timer.C:
		return Job{}, ErrEmpty
	case <-ctx.Done():
		return Job{}, ctx.Err()
	}
}

func (q *MemoryQueue) Ack(_ context.Context, _ Job, result Result) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.results = append([]Result{result}, q.results...)
	if len(q.results) > q.history {
		q.results = q.results[:q.history]
	}
	return nil
}

func (q *MemoryQueue) Retry(ctx context.Context, job Job, delay time.Duration) error {
	if delay <= 0 {
		return q.Enqueue(ctx, job)
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return ErrClosed
	}
	q.delayed[job.ID] = time.AfterFunc(delay, func() {
		q.mu.Lock()
		delete(q.delayed, job.ID)
		q.mu.Unlock()
		if err := q.Enqueue(context.Background(), job); err != nil && !errors.Is(err, ErrClosed) {
			logger.Error("Failed to requeue job "+job.ID, err)
		}
	})
	return nil
}

// Delayed returns the number of jobs waiting out a retry delay.
func (q *MemoryQueue) Delayed() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.delayed)
}

// Results returns up to limit terminal results, newest first.
func (q *MemoryQueue) Results(_ context.Context, limit int) ([]Result, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if limit <= 0 || limit > len(q.results) {
		limit = len(q.results)
	}
	out := make([]Result, limit)
	copy(out, q.results[:limit])
	return out, nil
}

// Len returns the number of jobs waiting.
func (q *MemoryQueue) Len() int {
	return len(q.jobs)
}

func (q *MemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if !q.closed {
		q.closed = true
		for id, timer := range q.delayed {
			timer.Stop()
			delete(q.delayed, id)
		}
		close(q.jobs)
	}
	return nil
}
