package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/chesthunt-go/internal/domain/job"
)

const (
	// Namespace for all metrics
	namespace = "chesthunt"
	// Subsystem for daemon metrics
	subsystem = "daemon"
)

// JobCollector records solve-job lifecycle metrics into Prometheus.
// Implements the application layer's MetricsRecorder.
type JobCollector struct {
	jobsStarted   *prometheus.CounterVec
	jobsTerminal  *prometheus.CounterVec
	solveDuration *prometheus.HistogramVec
	activeJobs    prometheus.Gauge
}

// NewJobCollector creates the collector and registers its metrics with
// the given registry
func NewJobCollector(registry *prometheus.Registry) *JobCollector {
	c := &JobCollector{
		jobsStarted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "jobs_started_total",
				Help:      "Total number of solve jobs started, by solver kind",
			},
			[]string{"solver"},
		),
		jobsTerminal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "jobs_terminal_total",
				Help:      "Total number of solve jobs reaching a terminal status",
			},
			[]string{"solver", "status"},
		),
		solveDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "solve_duration_seconds",
				Help:      "Wall-clock solve duration from start to terminal status",
				Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
			},
			[]string{"solver", "status"},
		),
		activeJobs: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "active_jobs",
				Help:      "Number of jobs currently pending or in progress",
			},
		),
	}

	registry.MustRegister(c.jobsStarted, c.jobsTerminal, c.solveDuration, c.activeJobs)
	return c
}

// RecordJobStarted counts a newly scheduled job
func (c *JobCollector) RecordJobStarted(solverKind string) {
	c.jobsStarted.WithLabelValues(solverKind).Inc()
}

// RecordJobTerminal counts a terminal outcome and observes its duration
func (c *JobCollector) RecordJobTerminal(solverKind string, status job.Status, durationSeconds float64) {
	c.jobsTerminal.WithLabelValues(solverKind, string(status)).Inc()
	c.solveDuration.WithLabelValues(solverKind, string(status)).Observe(durationSeconds)
}

// SetActiveJobs sets the active job gauge
func (c *JobCollector) SetActiveJobs(count int) {
	c.activeJobs.Set(float64(count))
}
