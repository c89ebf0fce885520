// Package metrics holds the Prometheus collectors for bookings and notification jobs.
package metrics

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	BookingsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "travel",
			Name:      "bookings_created_total",
			Help:      "Bookings created, by resolved language",
		},
		[]string{"language"},
	)

	// NotificationJobs counts job terminations and retries: succeeded, failed_permanent, retried, abandoned.
	NotificationJobs = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "travel",
			Subsystem: "notification",
			Name:      "jobs_total",
			Help:      "Notification job outcomes",
		},
		[]string{"outcome"},
	)

	NotificationEmails = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "travel",
			Subsystem: "notification",
			Name:      "emails_total",
			Help:      "Notification emails by recipient role and result",
		},
		[]string{"recipient", "result"},
	)

	NotificationJobDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "travel",
			Subsystem: "notification",
			Name:      "job_duration_seconds",
			Help:      "Wall-clock time from first attempt to terminal result",
			Buckets:   []float64{0.1, 0.5, 1, 5, 30, 60, 120, 300, 600},
		},
	)
)

// Handler exposes the default registry to fiber.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
