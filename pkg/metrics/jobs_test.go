package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func TestJobMetricsExportsRuns(t *testing.T) {
	reg := prometheus.NewRegistry()
	jobs := NewJobMetrics(reg)

	jobs.IncRun("state-retention", nil)
	jobs.IncRun("state-retention", errors.New("boom"))
	jobs.ObserveDuration("state-retention", 2*time.Second)
	jobs.AddRemoved("state-retention", 5)
	jobs.AddRemoved("state-retention", 0)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	if got, err := fetchCounterValue(mfs, "brewcart_job_rows_removed_total", "job", "state-retention"); err != nil {
		t.Fatalf("fetch removed: %v", err)
	} else if got != 5 {
		t.Fatalf("expected removed=5, got %f", got)
	}
	if got, err := fetchCounterValue(mfs, "brewcart_job_runs_total", "outcome", "failure"); err != nil {
		t.Fatalf("fetch failures: %v", err)
	} else if got != 1 {
		t.Fatalf("expected failures=1, got %f", got)
	}
	if got, err := fetchHistogramSum(mfs, "brewcart_job_duration_seconds", "job", "state-retention"); err != nil {
		t.Fatalf("fetch duration: %v", err)
	} else if got != 2 {
		t.Fatalf("expected duration sum=2, got %f", got)
	}
}

func TestJobMetricsNilSafe(t *testing.T) {
	var jobs *JobMetrics
	jobs.IncRun("x", nil)
	jobs.ObserveDuration("x", time.Second)
	jobs.AddRemoved("x", 1)

	NewJobMetrics(nil).IncRun("x", nil)
}
