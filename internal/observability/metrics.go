// Package observability provides Prometheus metrics for rsf-go analysis runs.
// Runs are one-shot batch jobs, so metrics are written to a textfile after
// the run instead of being scraped.
package observability

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds all the metric collectors for an analysis run.
type Metrics struct {
	registry *prometheus.Registry

	FitTotal    *prometheus.CounterVec   // fits attempted, by method label
	FitErrors   *prometheus.CounterVec   // failed fits, by method label
	FitDuration *prometheus.HistogramVec // per-fit wall time, by method label
	RowsLoaded  *prometheus.GaugeVec     // observation rows, by table
	RunInfo     *prometheus.GaugeVec     // constant 1, carries the run id label
}

// NewMetrics creates a new instance of Metrics with its own registry.
// It returns an error if metric registration fails.
func NewMetrics() (*Metrics, error) {
	registry := prometheus.NewRegistry()
	m := &Metrics{registry: registry}

	m.FitTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rsf_fits_total",
			Help: "Total number of univariate model fits attempted, partitioned by estimation method.",
		},
		[]string{"method"},
	)
	m.FitErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rsf_fit_errors_total",
			Help: "Total number of failed model fits, partitioned by estimation method.",
		},
		[]string{"method"},
	)
	m.FitDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "rsf_fit_duration_seconds",
			Help:    "Time taken to fit one univariate model.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 12),
		},
		[]string{"method"},
	)
	m.RowsLoaded = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "rsf_observation_rows",
			Help: "Number of observation rows loaded, partitioned by source table.",
		},
		[]string{"table"},
	)
	m.RunInfo = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "rsf_run_info",
			Help: "Constant metric carrying the analysis run id.",
		},
		[]string{"run_id"},
	)

	collectors := []prometheus.Collector{
		m.FitTotal, m.FitErrors, m.FitDuration, m.RowsLoaded, m.RunInfo,
	}
	for _, c := range collectors {
		if err := registry.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register run metrics: %w", err)
		}
	}

	return m, nil
}

// SetRunID records the run identity as an info-style metric.
func (m *Metrics) SetRunID(runID string) {
	if m == nil {
		return
	}
	m.RunInfo.WithLabelValues(runID).Set(1)
}

// ObserveRows records the row count of a loaded table.
func (m *Metrics) ObserveRows(table string, rows int) {
	if m == nil {
		return
	}
	m.RowsLoaded.WithLabelValues(table).Set(float64(rows))
}

// ObserveFit records one fit attempt and its outcome.
func (m *Metrics) ObserveFit(method string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	m.FitTotal.WithLabelValues(method).Inc()
	m.FitDuration.WithLabelValues(method).Observe(duration.Seconds())
	if err != nil {
		m.FitErrors.WithLabelValues(method).Inc()
	}
}

// WriteTextfile writes the run metrics in the Prometheus text exposition
// format, the node exporter textfile collector convention for batch jobs.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil {
		return nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create metrics directory %s: %w", dir, err)
		}
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile %s: %w", path, err)
	}
	return nil
}
