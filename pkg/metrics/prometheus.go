// Package metrics provides Prometheus metrics for the board game explorer.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the explorer service.
type Manager struct {
	namespace      string
	subsystem      string
	latencyBuckets []float64
	rowBuckets     []float64
	constLabels    prometheus.Labels
	registry       prometheus.Registerer

	// Query metrics
	queries      *prometheus.CounterVec
	queryLatency *prometheus.HistogramVec
	queryRows    *prometheus.HistogramVec

	// Dataset metrics
	datasetRows         prometheus.Gauge
	datasetDistinctTags *prometheus.GaugeVec
	datasetDropped      *prometheus.CounterVec
	datasetLoads        *prometheus.CounterVec
	datasetLoadDuration prometheus.Histogram
	datasetLastLoadUnix prometheus.Gauge

	// Cache metrics
	cacheHits    *prometheus.CounterVec
	cacheMisses  *prometheus.CounterVec
	cacheEntries prometheus.Gauge

	// Chart metrics
	chartRenders       *prometheus.CounterVec
	chartRenderLatency *prometheus.HistogramVec

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error metrics
	errorRateByComponent *prometheus.CounterVec
	errorRateByType      *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec

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
		namespace:      "bgx",
		subsystem:      "explorer",
		latencyBuckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50, 100, 250, 500},
		rowBuckets:     []float64{0, 1, 5, 10, 50, 100, 500, 1000, 5000, 10000, 50000},
		registry:       prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) counterVec(name, help string, labels ...string) *prometheus.CounterVec {
	return promauto.With(m.registry).NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}, labels)
}

func (m *Manager) gauge(name, help string) prometheus.Gauge {
	return promauto.With(m.registry).NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	})
}

func (m *Manager) histogramVec(name, help string, buckets []float64, labels ...string) *prometheus.HistogramVec {
	return promauto.With(m.registry).NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		Buckets:     buckets,
		ConstLabels: m.constLabels,
	}, labels)
}

func (m *Manager) histogram(name, help string, buckets []float64) prometheus.Histogram {
	return promauto.With(m.registry).NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		Buckets:     buckets,
		ConstLabels: m.constLabels,
	})
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	m.queries = m.counterVec("queries_total",
		"Total number of wrangling queries by operation and outcome", "operation", "outcome")
	m.queryLatency = m.histogramVec("query_latency_milliseconds",
		"Wrangling query latency in milliseconds", m.latencyBuckets, "operation")
	m.queryRows = m.histogramVec("query_result_rows",
		"Number of rows returned by a wrangling query", m.rowBuckets, "operation")

	m.datasetRows = m.gauge("dataset_rows", "Number of games in the active dataset snapshot")
	m.datasetDistinctTags = promauto.With(m.registry).NewGaugeVec(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "dataset_distinct_tags",
		Help:        "Number of distinct tag values per dimension in the active snapshot",
		ConstLabels: m.constLabels,
	}, []string{"dimension"})
	m.datasetDropped = m.counterVec("dataset_dropped_rows_total",
		"Rows dropped during ingestion by reason", "reason")
	m.datasetLoads = m.counterVec("dataset_loads_total",
		"Dataset load attempts by source kind and outcome", "source", "outcome")
	m.datasetLoadDuration = m.histogram("dataset_load_duration_milliseconds",
		"Dataset load duration in milliseconds",
		[]float64{10, 50, 100, 250, 500, 1000, 2500, 5000, 10000, 30000})
	m.datasetLastLoadUnix = m.gauge("dataset_last_load_unix", "Unix time of the last successful dataset load")

	m.cacheHits = m.counterVec("cache_hits_total", "Query cache hits by operation", "operation")
	m.cacheMisses = m.counterVec("cache_misses_total", "Query cache misses by operation", "operation")
	m.cacheEntries = m.gauge("cache_entries", "Current number of cached query results")

	m.chartRenders = m.counterVec("chart_renders_total", "Chart renders by kind and outcome", "kind", "outcome")
	m.chartRenderLatency = m.histogramVec("chart_render_latency_milliseconds",
		"Chart render latency in milliseconds", m.latencyBuckets, "kind")

	m.httpRequests = m.counterVec("http_requests_total",
		"Total number of HTTP requests by endpoint and method", "endpoint", "method", "status_code")
	m.httpRequestDuration = m.histogramVec("http_request_duration_milliseconds",
		"HTTP request duration in milliseconds", m.latencyBuckets, "endpoint", "method", "status_code")

	m.errorRateByComponent = m.counterVec("errors_by_component_total",
		"Errors by component and error type", "component", "error_type")
	m.errorRateByType = m.counterVec("errors_by_type_total",
		"Errors by type and severity", "error_type", "severity")
	m.errorRateByEndpoint = m.counterVec("errors_by_endpoint_total",
		"Errors by endpoint, method and error type", "endpoint", "method", "error_type")

	m.systemMemoryUsage = m.gauge("system_memory_bytes", "Heap bytes allocated")
	m.systemGoroutineCount = m.gauge("system_goroutines", "Number of goroutines")
	m.systemGCPauseTime = m.histogram("system_gc_pause_milliseconds",
		"Average GC pause time in milliseconds", []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 50})
}

// RecordQuery records one wrangling query: outcome is "ok", "empty" or "error".
func (m *Manager) RecordQuery(operation, outcome string, latencyMs float64, rows int) {
	m.queries.WithLabelValues(operation, outcome).Inc()
	m.queryLatency.WithLabelValues(operation).Observe(latencyMs)
	if outcome != "error" {
		m.queryRows.WithLabelValues(operation).Observe(float64(rows))
	}
}

// RecordDatasetLoad records the outcome of a dataset load.
func (m *Manager) RecordDatasetLoad(source, outcome string, durationMs float64) {
	m.datasetLoads.WithLabelValues(source, outcome).Inc()
	if outcome == "ok" {
		m.datasetLoadDuration.Observe(durationMs)
	}
}

// Global helpers operating on the default manager.

// RecordQuery records a wrangling query on the global manager.
func RecordQuery(operation, outcome string, latencyMs float64, rows int) {
	globalManager.RecordQuery(operation, outcome, latencyMs, rows)
}

// RecordDatasetLoad records a dataset load attempt.
func RecordDatasetLoad(source, outcome string, durationMs float64) {
	globalManager.RecordDatasetLoad(source, outcome, durationMs)
}

// UpdateDatasetRows sets the number of games in the active snapshot.
func UpdateDatasetRows(rows int) {
	globalManager.datasetRows.Set(float64(rows))
}

// UpdateDatasetDistinctTags sets the distinct tag count for a dimension.
func UpdateDatasetDistinctTags(dimension string, count int) {
	globalManager.datasetDistinctTags.WithLabelValues(dimension).Set(float64(count))
}

// RecordDatasetDropped adds n dropped rows for reason.
func RecordDatasetDropped(reason string, n int) {
	if n > 0 {
		globalManager.datasetDropped.WithLabelValues(reason).Add(float64(n))
	}
}

// UpdateDatasetLastLoadUnix sets the time of the last successful load.
func UpdateDatasetLastLoadUnix(unix float64) {
	globalManager.datasetLastLoadUnix.Set(unix)
}

// RecordCacheHit increments the cache hit counter.
func RecordCacheHit(operation string) {
	globalManager.cacheHits.WithLabelValues(operation).Inc()
}

// RecordCacheMiss increments the cache miss counter.
func RecordCacheMiss(operation string) {
	globalManager.cacheMisses.WithLabelValues(operation).Inc()
}

// UpdateCacheEntries sets the current cache size.
func UpdateCacheEntries(n int) {
	globalManager.cacheEntries.Set(float64(n))
}

// RecordChartRender records a chart render.
func RecordChartRender(kind, outcome string, latencyMs float64) {
	globalManager.chartRenders.WithLabelValues(kind, outcome).Inc()
	globalManager.chartRenderLatency.WithLabelValues(kind).Observe(latencyMs)
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
