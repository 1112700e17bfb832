package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Fallback kinds recorded when a document field is missing or malformed and
// a documented default is used instead.
const (
	FallbackMissingVariant     = "missing_variant"
	FallbackMissingRates       = "missing_rates"
	FallbackMalformedNumber    = "malformed_number"
	FallbackMissingPotential   = "missing_potential"
	FallbackConflictingVariant = "conflicting_variant"
	FallbackEmptyCollection    = "empty_collection"
)

var fallbackKinds = []string{
	FallbackMissingVariant,
	FallbackMissingRates,
	FallbackMalformedNumber,
	FallbackMissingPotential,
	FallbackConflictingVariant,
	FallbackEmptyCollection,
}

// Manager manages all Prometheus metrics for the coachlens service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	customLabels     map[string]string
	registry         prometheus.Registerer

	// Ingestion
	documentsLoaded prometheus.Gauge
	loadDuration    prometheus.Histogram
	loadErrors      prometheus.Counter

	// Data quality
	resolutionFallbacks *prometheus.CounterVec
	qualityWarnings     prometheus.Counter

	// Dataset scale
	features    *prometheus.GaugeVec
	consultants *prometheus.GaugeVec

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorRateByEndpoint *prometheus.CounterVec

	// Animation
	animationFrames  prometheus.Counter
	activeAnimations prometheus.Gauge

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// Configure rebuilds the global manager with opts on a fresh registry, which
// GetRegistry returns from then on. Call it once at startup, before handlers
// are built or metrics are recorded.
func Configure(opts ...Option) *Manager {
	customRegistry = prometheus.NewRegistry()
	opts = append(opts, WithPrometheusRegistry(customRegistry))
	globalManager = NewManager(opts...)
	return globalManager
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "coachlens",
		subsystem:        "dashboard",
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

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.customLabels,
	}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.customLabels,
	}
}

func (m *Manager) histogramOpts(name, help string) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.customLabels,
		Buckets:     m.histogramBuckets,
	}
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	// Ensure metrics are registered on the configured registry (custom by default)
	auto := promauto.With(m.registry)

	m.documentsLoaded = auto.NewGauge(m.gaugeOpts(
		"documents_loaded", "Number of analysis documents currently loaded"))
	m.loadDuration = auto.NewHistogram(m.histogramOpts(
		"document_load_duration_milliseconds", "Time to decode and normalize one document"))
	m.loadErrors = auto.NewCounter(m.counterOpts(
		"document_load_errors_total", "Documents that could not be read or decoded"))

	m.resolutionFallbacks = auto.NewCounterVec(m.counterOpts(
		"resolution_fallbacks_total", "Fields resolved to a default because they were missing or malformed"),
		[]string{"kind"})
	m.qualityWarnings = auto.NewCounter(m.counterOpts(
		"quality_warnings_logged_total", "Distinct data-quality warnings written to the log"))

	m.features = auto.NewGaugeVec(m.gaugeOpts(
		"features", "Behavioral features per dataset view"), []string{"key"})
	m.consultants = auto.NewGaugeVec(m.gaugeOpts(
		"consultants", "Consultants per dataset view"), []string{"key"})

	m.httpRequests = auto.NewCounterVec(m.counterOpts(
		"http_requests_total", "Total number of HTTP requests by endpoint and method"),
		[]string{"endpoint", "method", "status_code"})
	m.httpRequestDuration = auto.NewHistogramVec(m.histogramOpts(
		"http_request_duration_milliseconds", "HTTP request duration in milliseconds"),
		[]string{"endpoint", "method", "status_code"})
	m.errorRateByEndpoint = auto.NewCounterVec(m.counterOpts(
		"errors_by_endpoint_total", "Total number of errors by API endpoint"),
		[]string{"endpoint", "method", "error_type"})

	m.animationFrames = auto.NewCounter(m.counterOpts(
		"animation_frames_total", "Radial progress frames computed"))
	m.activeAnimations = auto.NewGauge(m.gaugeOpts(
		"animations_active", "Radial progress animations currently running"))

	m.systemMemoryUsage = auto.NewGauge(m.gaugeOpts(
		"system_memory_usage_bytes", "Current memory usage in bytes"))
	m.systemGoroutineCount = auto.NewGauge(m.gaugeOpts(
		"system_goroutine_count", "Current number of goroutines"))

	for _, kind := range fallbackKinds {
		m.resolutionFallbacks.WithLabelValues(kind)
	}
}

// Enabled reports whether the manager records anything.
func (m *Manager) Enabled() bool { return m.enabled }

// RecordDocumentLoad records a successful load and its duration.
func (m *Manager) RecordDocumentLoad(durationMs float64) {
	if !m.enabled {
		return
	}
	m.loadDuration.Observe(durationMs)
}

// RecordDocumentLoadError counts a failed load.
func (m *Manager) RecordDocumentLoadError() {
	if !m.enabled {
		return
	}
	m.loadErrors.Inc()
}

// SetDocumentsLoaded sets the loaded document gauge.
func (m *Manager) SetDocumentsLoaded(n int) {
	if !m.enabled {
		return
	}
	m.documentsLoaded.Set(float64(n))
}

// RecordFallback counts one default substitution of the given kind.
func (m *Manager) RecordFallback(kind string) error {
	if !m.enabled {
		return nil
	}
	if !knownFallback(kind) {
		return fmt.Errorf("%w: %q", ErrUnknownFallback, kind)
	}
	m.resolutionFallbacks.WithLabelValues(kind).Inc()
	return nil
}

// RecordQualityWarning counts a warning that reached the log.
func (m *Manager) RecordQualityWarning() {
	if !m.enabled {
		return
	}
	m.qualityWarnings.Inc()
}

// SetDatasetSize sets the feature and consultant gauges for one key.
func (m *Manager) SetDatasetSize(key string, features, consultants int) {
	if !m.enabled {
		return
	}
	m.features.WithLabelValues(key).Set(float64(features))
	m.consultants.WithLabelValues(key).Set(float64(consultants))
}

// RecordHTTPRequest records an HTTP request.
func (m *Manager) RecordHTTPRequest(endpoint, method, statusCode string) {
	if !m.enabled {
		return
	}
	m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration in milliseconds.
func (m *Manager) RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	if !m.enabled {
		return
	}
	m.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByEndpoint records an error response by endpoint.
func (m *Manager) RecordErrorByEndpoint(endpoint, method, errorType string) {
	if !m.enabled {
		return
	}
	m.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordAnimationFrame counts one computed frame.
func (m *Manager) RecordAnimationFrame() {
	if !m.enabled {
		return
	}
	m.animationFrames.Inc()
}

// IncActiveAnimations marks an animation run as started.
func (m *Manager) IncActiveAnimations() {
	if !m.enabled {
		return
	}
	m.activeAnimations.Inc()
}

// DecActiveAnimations marks an animation run as finished.
func (m *Manager) DecActiveAnimations() {
	if !m.enabled {
		return
	}
	m.activeAnimations.Dec()
}

// UpdateSystemMemoryUsage sets the memory gauge.
func (m *Manager) UpdateSystemMemoryUsage(bytes uint64) {
	if !m.enabled {
		return
	}
	m.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the goroutine gauge.
func (m *Manager) UpdateSystemGoroutineCount(count int) {
	if !m.enabled {
		return
	}
	m.systemGoroutineCount.Set(float64(count))
}

func knownFallback(kind string) bool {
	for _, k := range fallbackKinds {
		if k == kind {
			return true
		}
	}
	return false
}

// Global metric functions backed by the default manager.

// RecordDocumentLoad records a successful load and its duration.
func RecordDocumentLoad(durationMs float64) { globalManager.RecordDocumentLoad(durationMs) }

// RecordDocumentLoadError counts a failed load.
func RecordDocumentLoadError() { globalManager.RecordDocumentLoadError() }

// SetDocumentsLoaded sets the loaded document gauge.
func SetDocumentsLoaded(n int) { globalManager.SetDocumentsLoaded(n) }

// RecordFallback counts one default substitution of the given kind.
func RecordFallback(kind string) error { return globalManager.RecordFallback(kind) }

// RecordQualityWarning counts a warning that reached the log.
func RecordQualityWarning() { globalManager.RecordQualityWarning() }

// SetDatasetSize sets the feature and consultant gauges for one key.
func SetDatasetSize(key string, features, consultants int) {
	globalManager.SetDatasetSize(key, features, consultants)
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.RecordHTTPRequest(endpoint, method, statusCode)
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.RecordHTTPRequestDuration(endpoint, method, statusCode, duration)
}

// RecordErrorByEndpoint records an error response by endpoint.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.RecordErrorByEndpoint(endpoint, method, errorType)
}

// RecordAnimationFrame counts one computed frame.
func RecordAnimationFrame() { globalManager.RecordAnimationFrame() }

// IncActiveAnimations marks an animation run as started.
func IncActiveAnimations() { globalManager.IncActiveAnimations() }

// DecActiveAnimations marks an animation run as finished.
func DecActiveAnimations() { globalManager.DecActiveAnimations() }

// UpdateSystemMemoryUsage sets the memory gauge.
func UpdateSystemMemoryUsage(bytes uint64) { globalManager.UpdateSystemMemoryUsage(bytes) }

// UpdateSystemGoroutineCount sets the goroutine gauge.
func UpdateSystemGoroutineCount(count int) { globalManager.UpdateSystemGoroutineCount(count) }

// GetRegistry returns the custom Prometheus registry for exposing metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
