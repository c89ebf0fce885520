// Package queue carries background jobs from the API to the worker.
package queue

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrEmpty is returned by Dequeue when no job arrived within the wait time.
	ErrEmpty  = errors.New("queue: no job available")
	ErrFull   = errors.New("queue: full")
	ErrClosed = errors.New("queue: closed")
)

// Job is one unit of background work.
type Job struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	BookingID  uint      `json:"booking_id"`
	EnqueuedAt time.Time `json:"enqueued_at"`
	Attempts   int       `json:"attempts"`

	// payload is the exact encoding the job was dequeued from, needed to remove it from a Redis list.
	payload string
}

func NewJob(jobType string, bookingID uint) Job {
	return Job{
		ID:         uuid.NewString(),
		Type:       jobType,
		BookingID:  bookingID,
		EnqueuedAt: time.Now().UTC(),
	}
}

type State string

const (
	StateSucceeded State = "succeeded"
	StateFailed    State = "failed"
	StateAbandoned State = "abandoned"
)

// Result is the terminal record of a job, kept by the queue for inspection.
type Result struct {
	JobID      string          `json:"job_id"`
	Type       string          `json:"type"`
	BookingID  uint            `json:"booking_id"`
	State      State           `json:"state"`
	Attempts   int             `json:"attempts"`
	Error      string          `json:"error,omitempty"`
	Outcome    json.RawMessage `json:"outcome,omitempty"`
	FinishedAt time.Time       `json:"finished_at"`
}

// Enqueuer is the producer side of a queue.
type Enqueuer interface {
	Enqueue(ctx context.Context, job Job) error
}

// Queue is an at-least-once job queue. A dequeued job stays owned by the
// consumer until it is acked with its terminal result or handed back with Retry.
type Queue interface {
	Enqueuer
	Dequeue(ctx context.Context, wait time.Duration) (Job, error)
	Ack(ctx context.Context, job Job, result Result) error
	// Retry releases a dequeued job and delivers it again once delay has passed.
	Retry(ctx context.Context, job Job, delay time.Duration) error
	Results(ctx context.Context, limit int) ([]Result, error)
	Close() error
}

type permanentError struct {
	err error
}

func (e *permanentError) Error() string {
	return e.err.Error()
}

func (e *permanentError) Unwrap() error {
	return e.err
}

// Permanent marks err as not worth retrying.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

func IsPermanent(err error) bool {
	var p *permanentError
	return errors.As(err, &p)
}
