// Package metrics provides a small, backend-agnostic abstraction for recording
// operational metrics from a mart build.
//
// It exposes a narrow interface (Backend) for counters and timings and a
// global, pluggable backend that defaults to a no-op, so instrumentation is
// always safe to call even when nothing is configured. Concrete systems
// (Prometheus Pushgateway, Datadog) live in subpackages.
package metrics

import (
	"sync"
	"time"
)

// Metric names shared by every backend.
const (
	StepTotal           = "salesmart_step_total"
	StepDurationSeconds = "salesmart_step_duration_seconds"
	RowsTotal           = "salesmart_rows_total"
	RejectsTotal        = "salesmart_rejects_total"
	BatchesTotal        = "salesmart_batches_total"
)

// Labels are string key/value pairs attached to a metric.
type Labels map[string]string

// Backend is the minimal interface for metrics backends.
type Backend interface {
	// IncCounter increments a counter by delta.
	IncCounter(name string, delta float64, labels Labels)
	// ObserveHistogram records a value in a latency/duration style metric.
	ObserveHistogram(name string, value float64, labels Labels)
	// Flush pushes or flushes metrics, if the backend needs it (e.g. Pushgateway).
	Flush() error
}

// nopBackend is used by default so metrics are optional.
type nopBackend struct{}

func (nopBackend) IncCounter(name string, delta float64, labels Labels)       {}
func (nopBackend) ObserveHistogram(name string, value float64, labels Labels) {}
func (nopBackend) Flush() error                                               { return nil }

var (
	mu      sync.RWMutex
	backend Backend = nopBackend{}
)

// SetBackend installs a concrete backend and returns the previous one.
// Passing nil keeps the existing backend.
func SetBackend(b Backend) Backend {
	mu.Lock()
	defer mu.Unlock()
	prev := backend
	if b != nil {
		backend = b
	}
	return prev
}

func current() Backend {
	mu.RLock()
	defer mu.RUnlock()
	return backend
}

// Flush delegates to the current backend.
func Flush() error {
	return current().Flush()
}

// RecordStep measures latency and success/failure of one build step
// ("extract", "dimensions", "fact", "load").
func RecordStep(job, step string, err error, d time.Duration) {
	status := "success"
	if err != nil {
		status = "failure"
	}

	lbls := Labels{
		"job":    job,
		"step":   step,
		"status": status,
	}

	b := current()
	b.IncCounter(StepTotal, 1, lbls)
	b.ObserveHistogram(StepDurationSeconds, d.Seconds(), lbls)
}

// RecordRows counts rows of a table; stage is "built" or "loaded".
func RecordRows(job, table, stage string, delta int64) {
	if delta <= 0 {
		return
	}
	current().IncCounter(RowsTotal, float64(delta), Labels{
		"job":   job,
		"table": table,
		"stage": stage,
	})
}

// RecordRejects counts invoice lines left out of the fact for reason.
func RecordRejects(job, reason string, delta int64) {
	if delta <= 0 {
		return
	}
	current().IncCounter(RejectsTotal, float64(delta), Labels{
		"job":    job,
		"reason": reason,
	})
}

// RecordBatches counts bulk-copy batches flushed into table.
func RecordBatches(job, table string, delta int64) {
	if delta <= 0 {
		return
	}
	current().IncCounter(BatchesTotal, float64(delta), Labels{
		"job":   job,
		"table": table,
	})
}
