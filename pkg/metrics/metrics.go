package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Tasks created, by source (calendar, email, direct).
	TasksCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tasks_created_total",
			Help: "Total number of tasks created",
		},
		[]string{"source"},
	)

	// Reminders turned into notifications by the sweeper.
	RemindersSwept = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reminders_swept_total",
			Help: "Total number of reminders marked sent by the sweeper",
		},
	)

	// Rows pulled in from the Google providers, by kind.
	RecordsIngested = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "records_ingested_total",
			Help: "Total number of calendar events, emails and contacts stored",
		},
		[]string{"kind"},
	)

	// Periodic job failures, by job name.
	JobFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "job_failures_total",
			Help: "Total number of periodic job runs that returned an error",
		},
		[]string{"job"},
	)

	// Periodic job duration (seconds), by job name.
	JobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "job_duration_seconds",
			Help:    "Periodic job run duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"job"},
	)

	// Google API call duration (seconds), by provider.
	ProviderFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "provider_fetch_duration_seconds",
			Help:    "External provider fetch duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 10), // 10ms to ~5s
		},
		[]string{"provider"},
	)
)

// ObserveJob records a completed job run.
func ObserveJob(job string, start time.Time, err error) {
	JobDuration.WithLabelValues(job).Observe(time.Since(start).Seconds())
	if err != nil {
		JobFailures.WithLabelValues(job).Inc()
	}
}
