// Package metrics provides a small, backend-agnostic abstraction for
// recording operational metrics from the build pipeline.
//
// It exposes a narrow Backend interface focused on counters and durations,
// and a global pluggable backend that defaults to a no-op implementation, so
// instrumentation is always safe to call even when no real backend is
// configured. Concrete metric systems (Prometheus Pushgateway, Datadog) live
// in subpackages, mirroring the storage abstraction pattern.
package metrics

import "time"

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

var backend Backend = nopBackend{}

// SetBackend installs a concrete backend. Passing nil keeps the existing backend.
func SetBackend(b Backend) {
	if b == nil {
		return
	}
	backend = b
}

// Flush delegates to the current backend.
func Flush() error {
	return backend.Flush()
}

// RecordStep measures latency plus success/failure for one pipeline step.
// The job label is the country code for importer steps, or the command name
// for shared steps.
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

	backend.IncCounter("powerwatch_step_total", 1, lbls)
	backend.ObserveHistogram("powerwatch_step_duration_seconds", d.Seconds(), lbls)
}

// RecordRow increments a record-level counter for the given job and kind.
//
// Typical kinds mirror the importer diagnostics, e.g.:
//   - "plants"
//   - "skipped_rows"
//   - "parse_errors"
//   - "unmatched_fuels"
//   - "locations_not_found"
//   - "years_not_found"
//   - "inserted"
func RecordRow(job, kind string, delta int64) {
	if delta <= 0 {
		return
	}
	backend.IncCounter("powerwatch_records_total", float64(delta), Labels{
		"job":  job,
		"kind": kind,
	})
}
