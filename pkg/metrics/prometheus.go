// Package metrics provides Prometheus metrics for the medal histogram service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every Prometheus collector of the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	customLabels     map[string]string
	metricPrefix     string
	registry         prometheus.Registerer

	// Dataset ingestion
	datasetRowsRead    prometheus.Counter
	datasetRowsSkipped prometheus.Counter
	datasetLoadLatency prometheus.Histogram
	datasetLoadErrors  prometheus.Counter

	// Histogram snapshot
	filteredRecords        prometheus.Gauge
	distinctYears          prometheus.Gauge
	binCount               prometheus.Gauge
	maxBinCount            prometheus.Gauge
	meanPerYear            prometheus.Gauge
	snapshotComputeLatency prometheus.Histogram
	snapshotCount          prometheus.Counter
	snapshotLastUnix       prometheus.Gauge
	reloads                *prometheus.CounterVec

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error tracking
	errorRateByComponent *prometheus.CounterVec
	errorRateByType      *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec
	errorLatency         *prometheus.HistogramVec

	// System Performance Metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "medalhist",
		subsystem:        "histogram",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) name(n string) string {
	if m.metricPrefix == "" {
		return n
	}
	return m.metricPrefix + "_" + n
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name(name),
		Help:        help,
		ConstLabels: m.customLabels,
	}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name(name),
		Help:        help,
		ConstLabels: m.customLabels,
	}
}

func (m *Manager) histogramOpts(name, help string, buckets []float64) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name(name),
		Help:        help,
		Buckets:     buckets,
		ConstLabels: m.customLabels,
	}
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	reg := m.registry
	if !m.enabled {
		// Collectors still exist so callers never nil-check; nobody scrapes them.
		reg = prometheus.NewRegistry()
	}
	auto := promauto.With(reg)

	m.datasetRowsRead = auto.NewCounter(m.counterOpts(
		"dataset_rows_read_total", "Total number of CSV data rows read"))
	m.datasetRowsSkipped = auto.NewCounter(m.counterOpts(
		"dataset_rows_skipped_total", "Total number of malformed CSV rows skipped"))
	m.datasetLoadLatency = auto.NewHistogram(m.histogramOpts(
		"dataset_load_latency_milliseconds", "Dataset load latency in milliseconds", m.histogramBuckets))
	m.datasetLoadErrors = auto.NewCounter(m.counterOpts(
		"dataset_load_errors_total", "Total number of failed dataset loads"))

	m.filteredRecords = auto.NewGauge(m.gaugeOpts(
		"filtered_records", "Records matching the country and medal filter"))
	m.distinctYears = auto.NewGauge(m.gaugeOpts(
		"distinct_years", "Distinct years with at least one medal record"))
	m.binCount = auto.NewGauge(m.gaugeOpts(
		"bins", "Number of histogram bins in the current snapshot"))
	m.maxBinCount = auto.NewGauge(m.gaugeOpts(
		"max_bin_records", "Record count of the tallest bin"))
	m.meanPerYear = auto.NewGauge(m.gaugeOpts(
		"mean_records_per_year", "Mean medal records per active year"))
	m.snapshotComputeLatency = auto.NewHistogram(m.histogramOpts(
		"snapshot_compute_latency_milliseconds", "Filter, group and bin latency in milliseconds", m.histogramBuckets))
	m.snapshotCount = auto.NewCounter(m.counterOpts(
		"snapshot_count_total", "Total number of snapshots published"))
	m.snapshotLastUnix = auto.NewGauge(m.gaugeOpts(
		"snapshot_last_unix", "Unix timestamp of the last snapshot publish"))
	m.reloads = auto.NewCounterVec(m.counterOpts(
		"reloads_total", "Dataset reloads by result"), []string{"result"})

	m.httpRequests = auto.NewCounterVec(m.counterOpts(
		"http_requests_total", "Total number of HTTP requests by endpoint and method"),
		[]string{"endpoint", "method", "status_code"})
	m.httpRequestDuration = auto.NewHistogramVec(m.histogramOpts(
		"http_request_duration_milliseconds", "HTTP request duration in milliseconds", m.histogramBuckets),
		[]string{"endpoint", "method", "status_code"})

	m.errorRateByComponent = auto.NewCounterVec(m.counterOpts(
		"errors_by_component_total", "Total number of errors by component"),
		[]string{"component", "error_type"})
	m.errorRateByType = auto.NewCounterVec(m.counterOpts(
		"errors_by_type_total", "Total number of errors by type"),
		[]string{"error_type", "severity"})
	m.errorRateByEndpoint = auto.NewCounterVec(m.counterOpts(
		"errors_by_endpoint_total", "Total number of errors by endpoint"),
		[]string{"endpoint", "method", "error_type"})
	m.errorLatency = auto.NewHistogramVec(m.histogramOpts(
		"error_latency_milliseconds", "Latency of operations that resulted in errors", m.histogramBuckets),
		[]string{"component", "error_type"})

	m.systemMemoryUsage = auto.NewGauge(m.gaugeOpts(
		"system_memory_usage_bytes", "System memory usage in bytes"))
	m.systemGoroutineCount = auto.NewGauge(m.gaugeOpts(
		"system_goroutine_count", "Number of goroutines"))
	m.systemGCPauseTime = auto.NewHistogram(m.histogramOpts(
		"system_gc_pause_time_milliseconds", "GC pause time in milliseconds",
		[]float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000}))
}

// Gatherer returns the registry the manager registered on, when it can be scraped.
func (m *Manager) Gatherer() (prometheus.Gatherer, error) {
	if !m.enabled {
		return nil, ErrDisabled
	}
	g, ok := m.registry.(prometheus.Gatherer)
	if !ok {
		return prometheus.DefaultGatherer, nil
	}
	return g, nil
}

// RecordDatasetLoad records a finished dataset load.
func RecordDatasetLoad(rows, skipped int, latencyMs float64) {
	globalManager.datasetRowsRead.Add(float64(rows))
	globalManager.datasetRowsSkipped.Add(float64(skipped))
	globalManager.datasetLoadLatency.Observe(latencyMs)
}

// RecordDatasetLoadError increments the failed load counter.
func RecordDatasetLoadError() {
	globalManager.datasetLoadErrors.Inc()
}

// SnapshotStats carries the gauges published with each snapshot.
type SnapshotStats struct {
	FilteredRecords int
	DistinctYears   int
	Bins            int
	MaxBinRecords   int
	MeanPerYear     float64
}

// RecordSnapshot publishes the gauges of a freshly computed snapshot.
func RecordSnapshot(s SnapshotStats, computeMs float64, at time.Time) {
	globalManager.filteredRecords.Set(float64(s.FilteredRecords))
	globalManager.distinctYears.Set(float64(s.DistinctYears))
	globalManager.binCount.Set(float64(s.Bins))
	globalManager.maxBinCount.Set(float64(s.MaxBinRecords))
	globalManager.meanPerYear.Set(s.MeanPerYear)
	globalManager.snapshotComputeLatency.Observe(computeMs)
	globalManager.snapshotCount.Inc()
	globalManager.snapshotLastUnix.Set(float64(at.Unix()))
}

// RecordReload counts a reload attempt by result ("ok" or "error").
func RecordReload(result string) {
	globalManager.reloads.WithLabelValues(result).Inc()
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByType records an error with type and severity labels.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorLatency records the latency of an operation that resulted in an error.
func RecordErrorLatency(component, errorType string, latencyMs float64) {
	globalManager.errorLatency.WithLabelValues(component, errorType).Observe(latencyMs)
}

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
