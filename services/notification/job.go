package notification

import (
	"context"

	"travel-agency/queue"
)

// NewJobHandler runs the dispatcher for "send booking notification" jobs.
func NewJobHandler(d *Dispatcher) queue.Handler {
	return queue.HandlerFunc(func(ctx context.Context, job queue.Job) (interface{}, error) {
		return d.Dispatch(ctx, job.BookingID)
	})
}
