// Package metrics counts what a build run did. Counters live on a private
// registry and can be dumped in the Prometheus text format for node_exporter's
// textfile collector.
package metrics

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Document outcomes.
const (
	DocumentProcessed = "processed"
	DocumentFailed    = "failed"
)

// File outcomes.
const (
	FileWritten = "written"
	FileFailed  = "failed"
)

// Recorder holds the run counters. A nil *Recorder records nothing.
type Recorder struct {
	registry *prometheus.Registry

	documents *prometheus.CounterVec
	files     *prometheus.CounterVec
	commands  *prometheus.CounterVec
	warnings  prometheus.Counter
	duration  prometheus.Histogram
}

// New registers the aio counters on a fresh registry.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Recorder{
		registry: reg,
		documents: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "aio_documents_total",
				Help: "Documents processed, by outcome",
			},
			[]string{"status"},
		),
		files: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "aio_files_total",
				Help: "File entries emitted, by outcome",
			},
			[]string{"status"},
		),
		commands: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "aio_commands_total",
				Help: "File commands executed, by verb and outcome",
			},
			[]string{"verb", "status"},
		),
		warnings: factory.NewCounter(prometheus.CounterOpts{
			Name: "aio_warnings_total",
			Help: "Warnings raised while resolving documents",
		}),
		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "aio_document_duration_seconds",
			Help:    "Time taken to process one document",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}),
	}
}

// RecordDocument counts a finished document.
func (r *Recorder) RecordDocument(status string, d time.Duration) {
	if r == nil {
		return
	}
	r.documents.WithLabelValues(status).Inc()
	r.duration.Observe(d.Seconds())
}

// RecordFile counts one emitted file entry.
func (r *Recorder) RecordFile(status string) {
	if r == nil {
		return
	}
	r.files.WithLabelValues(status).Inc()
}

// RecordCommand counts one command outcome.
func (r *Recorder) RecordCommand(verb, status string) {
	if r == nil {
		return
	}
	r.commands.WithLabelValues(verb, status).Inc()
}

// RecordWarnings adds n warnings.
func (r *Recorder) RecordWarnings(n int) {
	if r == nil || n <= 0 {
		return
	}
	r.warnings.Add(float64(n))
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// WriteTextfile writes every metric to path atomically.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return errors.Wrapf(err, "writing metrics to %s", path)
	}
	return nil
}
