package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for chart exports
type Metrics struct {
	// Export pipeline metrics
	Exports        *prometheus.CounterVec
	ExportErrors   *prometheus.CounterVec
	ExportDuration *prometheus.HistogramVec
	ExportRows     *prometheus.HistogramVec
	ArtifactBytes  *prometheus.HistogramVec

	// Date inference metrics
	InferredDates *prometheus.CounterVec
	ClampedSpans  *prometheus.CounterVec

	// HTTP surface metrics
	HTTPRequests *prometheus.CounterVec
}

// NewMetrics creates a new Metrics instance with all metrics registered
func NewMetrics(registry prometheus.Registerer) *Metrics {
	factory := promauto.With(registry)

	return &Metrics{
		Exports: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "boardchart_exports_total",
				Help: "Total number of chart exports",
			},
			[]string{"success"},
		),
		ExportErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "boardchart_export_errors_total",
				Help: "Total number of failed chart exports by error code",
			},
			[]string{"error_code"},
		),
		ExportDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "boardchart_export_duration_seconds",
				Help:    "Chart export pipeline duration in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
			},
			[]string{},
		),
		ExportRows: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "boardchart_export_rows",
				Help:    "Number of rows rendered per chart",
				Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500},
			},
			[]string{},
		),
		ArtifactBytes: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "boardchart_artifact_bytes",
				Help:    "Size of exported SVG artifacts in bytes",
				Buckets: prometheus.ExponentialBuckets(1024, 4, 8),
			},
			[]string{},
		),
		InferredDates: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "boardchart_inferred_dates_total",
				Help: "Total number of start or end dates synthesized for tasks without a schedule",
			},
			[]string{"field"},
		),
		ClampedSpans: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "boardchart_clamped_spans_total",
				Help: "Total number of intervals extended to the one-day minimum",
			},
			[]string{"level"},
		),
		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "boardchart_http_requests_total",
				Help: "Total number of HTTP export requests by status code",
			},
			[]string{"code"},
		),
	}
}

// RecordExport records the outcome of one export. errorCode is empty on success.
func (m *Metrics) RecordExport(duration time.Duration, rows, bytes int, errorCode string) {
	if m == nil {
		return
	}
	success := errorCode == ""
	m.Exports.WithLabelValues(strconv.FormatBool(success)).Inc()
	m.ExportDuration.WithLabelValues().Observe(duration.Seconds())
	if !success {
		m.ExportErrors.WithLabelValues(errorCode).Inc()
		return
	}
	m.ExportRows.WithLabelValues().Observe(float64(rows))
	m.ArtifactBytes.WithLabelValues().Observe(float64(bytes))
}

// RecordInference records how many dates were synthesized in one export.
func (m *Metrics) RecordInference(starts, ends int, clampedByLevel map[int]int) {
	if m == nil {
		return
	}
	m.InferredDates.WithLabelValues("start").Add(float64(starts))
	m.InferredDates.WithLabelValues("end").Add(float64(ends))
	for level, n := range clampedByLevel {
		m.ClampedSpans.WithLabelValues(strconv.Itoa(level)).Add(float64(n))
	}
}

// RecordHTTP records one HTTP export response.
func (m *Metrics) RecordHTTP(code int) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(strconv.Itoa(code)).Inc()
}
