package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// JobMetrics records runs of the maintenance worker's scheduled jobs.
type JobMetrics struct {
	duration *prometheus.HistogramVec
	runs     *prometheus.CounterVec
	removed  *prometheus.CounterVec
}

// NewJobMetrics registers the job metrics on the provided registerer.
func NewJobMetrics(reg prometheus.Registerer) *JobMetrics {
	if reg == nil {
		return &JobMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "brewcart_job_duration_seconds",
		Help:    "Duration of scheduled jobs in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"job"})
	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "brewcart_job_runs_total",
		Help: "Scheduled job executions by outcome.",
	}, []string{"job", "outcome"})
	removed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "brewcart_job_rows_removed_total",
		Help: "Rows deleted by retention jobs.",
	}, []string{"job"})
	reg.MustRegister(duration, runs, removed)
	return &JobMetrics{duration: duration, runs: runs, removed: removed}
}

// ObserveDuration records the duration for the named job.
func (j *JobMetrics) ObserveDuration(job string, duration time.Duration) {
	if j == nil || j.duration == nil {
		return
	}
	j.duration.WithLabelValues(normalizeLabel(job)).Observe(duration.Seconds())
}

// IncRun counts one execution; err decides the outcome label.
func (j *JobMetrics) IncRun(job string, err error) {
	if j == nil || j.runs == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	j.runs.WithLabelValues(normalizeLabel(job), outcome).Inc()
}

// AddRemoved counts rows a retention job deleted.
func (j *JobMetrics) AddRemoved(job string, rows int64) {
	if j == nil || j.removed == nil || rows <= 0 {
		return
	}
	j.removed.WithLabelValues(normalizeLabel(job)).Add(float64(rows))
}
