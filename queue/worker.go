package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"travel-agency/logger"
	"travel-agency/metrics"
)

// ErrHardTimeLimit is the attempt error when a handler outlives the hard limit.
var ErrHardTimeLimit = errors.New("job exceeded hard time limit")

// Handler runs one attempt of a job. The returned outcome is stored with the
// job's terminal result. Wrap an error with Permanent to stop retrying.
type Handler interface {
	Handle(ctx context.Context, job Job) (interface{}, error)
}

type HandlerFunc func(ctx context.Context, job Job) (interface{}, error)

func (f HandlerFunc) Handle(ctx context.Context, job Job) (interface{}, error) {
	return f(ctx, job)
}

type WorkerConfig struct {
	// Concurrency is the number of jobs processed at the same time.
	Concurrency   int
	MaxRetries    int
	RetryDelay    time.Duration
	SoftTimeLimit time.Duration
	HardTimeLimit time.Duration
	PollInterval  time.Duration
}

// Step tells the consumer what to do with a job after one attempt.
type Step int

const (
	// StepAck means the result is terminal and the job is done.
	StepAck Step = iota
	// StepRetry means the attempt failed and the job goes back to the queue after RetryDelay.
	StepRetry
	// StepAbort means shutdown interrupted the attempt. The job stays unacked.
	StepAbort
)

// Worker pulls jobs from a queue and runs one attempt per delivery. A failed
// attempt is handed back to the queue so other jobs are not held up by its
// retry delay.
type Worker struct {
	queue    Queue
	cfg      WorkerConfig
	handlers map[string]Handler
}

func NewWorker(q Queue, cfg WorkerConfig) *Worker {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 5 * time.Second
	}
	if cfg.SoftTimeLimit <= 0 {
		cfg.SoftTimeLimit = 60 * time.Second
	}
	if cfg.HardTimeLimit < cfg.SoftTimeLimit {
		cfg.HardTimeLimit = cfg.SoftTimeLimit
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	return &Worker{
		queue:    q,
		cfg:      cfg,
		handlers: make(map[string]Handler),
	}
}

func (w *Worker) Register(jobType string, h Handler) {
	w.handlers[jobType] = h
}

// Run processes jobs with cfg.Concurrency consumers until ctx is cancelled or
// the queue is closed.
func (w *Worker) Run(ctx context.Context) error {
	logger.Info(fmt.Sprintf("Worker started (%d consumers, max retries %d, retry delay %s)",
		w.cfg.Concurrency, w.cfg.MaxRetries, w.cfg.RetryDelay))

	var consumers sync.WaitGroup
	for i := 0; i < w.cfg.Concurrency; i++ {
		consumers.Add(1)
		go func() {
			defer consumers.Done()
			w.consume(ctx)
		}()
	}
	consumers.Wait()

	logger.Info("Worker stopped")
	return nil
}

func (w *Worker) consume(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}

		job, err := w.queue.Dequeue(ctx, w.cfg.PollInterval)
		switch {
		case err == nil:
		case errors.Is(err, ErrEmpty):
			continue
		case errors.Is(err, ErrClosed), ctx.Err() != nil:
			return
		default:
			logger.Error("Failed to dequeue job", err)
			if !sleep(ctx, w.cfg.PollInterval) {
				return
			}
			continue
		}

		result, step := w.Process(ctx, job)

		// The queue calls below must complete even while shutting down.
		queueCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		switch step {
		case StepAbort:
			logger.Warning(fmt.Sprintf("Job %s interrupted by shutdown on attempt %d", job.ID, result.Attempts))
		case StepRetry:
			job.Attempts = result.Attempts
			if err := w.queue.Retry(queueCtx, job, w.cfg.RetryDelay); err != nil {
				logger.Error("Failed to schedule retry of job "+job.ID, err)
			}
		default:
			if err := w.queue.Ack(queueCtx, job, result); err != nil {
				logger.Error("Failed to ack job "+job.ID, err)
			}
		}
		cancel()
	}
}

// Process runs the next attempt of job. job.Attempts is the number of
// attempts already made. The result is terminal only when step is StepAck.
func (w *Worker) Process(ctx context.Context, job Job) (result Result, step Step) {
	started := time.Now()
	result = Result{JobID: job.ID, Type: job.Type, BookingID: job.BookingID, Attempts: job.Attempts}

	handler, ok := w.handlers[job.Type]
	if !ok {
		logger.Error("No handler registered for job type "+job.Type, nil)
		return w.finish(result, StateFailed, fmt.Errorf("unknown job type %q", job.Type), nil, started), StepAck
	}

	attempt := job.Attempts + 1
	maxAttempts := 1 + w.cfg.MaxRetries
	job.Attempts = attempt
	result.Attempts = attempt

	outcome, err := w.attempt(ctx, handler, job)
	if ctx.Err() != nil {
		return result, StepAbort
	}

	switch {
	case err == nil:
		return w.finish(result, StateSucceeded, nil, outcome, started), StepAck
	case IsPermanent(err):
		logger.Error(fmt.Sprintf("Job %s (%s, booking #%d) failed permanently", job.ID, job.Type, job.BookingID), err)
		return w.finish(result, StateFailed, err, outcome, started), StepAck
	case attempt >= maxAttempts:
		logger.Error(fmt.Sprintf("Job %s (%s, booking #%d) abandoned after %d attempts", job.ID, job.Type, job.BookingID, attempt), err)
		return w.finish(result, StateAbandoned, err, outcome, started), StepAck
	}

	metrics.NotificationJobs.WithLabelValues("retried").Inc()
	logger.Warning(fmt.Sprintf("Job %s attempt %d/%d failed, retrying in %s: %v", job.ID, attempt, maxAttempts, w.cfg.RetryDelay, err))
	result.Error = err.Error()
	return result, StepRetry
}

type attemptResult struct {
	outcome interface{}
	err     error
}

// attempt runs the handler with the soft limit as its deadline and gives up
// waiting at the hard limit. A panic in the handler becomes an error.
func (w *Worker) attempt(ctx context.Context, h Handler, job Job) (interface{}, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, w.cfg.SoftTimeLimit)
	defer cancel()

	done := make(chan attemptResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- attemptResult{err: fmt.Errorf("handler panic: %v", r)}
			}
		}()
		outcome, err := h.Handle(attemptCtx, job)
		done <- attemptResult{outcome: outcome, err: err}
	}()

	hard := time.NewTimer(w.cfg.HardTimeLimit)
	defer hard.Stop()

	select {
	case r := <-done:
		return r.outcome, r.err
	case <-hard.C:
		return nil, ErrHardTimeLimit
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (w *Worker) finish(result Result, state State, err error, outcome interface{}, started time.Time) Result {
	result.State = state
	result.FinishedAt = time.Now().UTC()
	if err != nil {
		result.Error = err.Error()
	}
	if outcome != nil {
		if encoded, mErr := json.Marshal(outcome); mErr == nil {
			result.Outcome = encoded
		}
	}

	label := string(state)
	if state == StateFailed {
		label = "failed_permanent"
	}
	metrics.NotificationJobs.WithLabelValues(label).Inc()
	metrics.NotificationJobDuration.Observe(time.Since(started).Seconds())
	return result
}

// sleep waits d or until ctx is done, reporting whether the full wait elapsed.
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}
