// Package metrics provides Prometheus metrics for the compass guidance service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the compass service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// HTTP surface
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Engine signals
	recommendationsServed *prometheus.CounterVec
	scoringDuration       *prometheus.HistogramVec
	validationErrors      *prometheus.CounterVec

	// Catalog health
	catalogRoles        prometheus.Gauge
	catalogQuestions    prometheus.Gauge
	catalogReloads      prometheus.Counter
	catalogReloadErrors prometheus.Counter

	// Assessment sessions
	openSessions   prometheus.Gauge
	sessionsIssued prometheus.Counter

	// Collaborators
	advisorRequests prometheus.Counter
	advisorErrors   prometheus.Counter
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "compass",
		subsystem:        "engine",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.recommendationsServed = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "recommendations_served_total",
			Help:      "Total recommendation responses by scoring path",
		},
		[]string{"source"},
	)

	m.scoringDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "scoring_duration_milliseconds",
			Help:      "Engine scoring duration in milliseconds by operation",
			Buckets:   m.histogramBuckets,
		},
		[]string{"operation"},
	)

	m.validationErrors = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "validation_errors_total",
			Help:      "Total rejected requests by operation",
		},
		[]string{"operation"},
	)

	m.catalogRoles = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "catalog_roles",
		Help:      "Number of roles in the loaded catalog snapshot",
	})

	m.catalogQuestions = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "catalog_questions",
		Help:      "Number of questions in the loaded question bank",
	})

	m.catalogReloads = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "catalog_reloads_total",
		Help:      "Total successful catalog reloads",
	})

	m.catalogReloadErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "catalog_reload_errors_total",
		Help:      "Total failed catalog reloads",
	})

	m.openSessions = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "assessment_sessions_open",
		Help:      "Assessment sessions issued and not yet scored",
	})

	m.sessionsIssued = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "assessment_sessions_issued_total",
		Help:      "Total assessment sessions issued",
	})

	m.advisorRequests = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "advisor_requests_total",
		Help:      "Total requests forwarded to the advisor collaborator",
	})

	m.advisorErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "advisor_errors_total",
		Help:      "Total advisor collaborator failures",
	})
}

// GetRegistry returns the registry metrics are collected on.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// RecordHTTPRequest counts one HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration observes one HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordRecommendations counts one recommendation response for a scoring path.
func RecordRecommendations(source string) {
	globalManager.recommendationsServed.WithLabelValues(source).Inc()
}

// ObserveScoringDuration observes one engine scoring duration.
func ObserveScoringDuration(operation string, durationMs float64) {
	globalManager.scoringDuration.WithLabelValues(operation).Observe(durationMs)
}

// RecordValidationError counts one rejected request.
func RecordValidationError(operation string) {
	globalManager.validationErrors.WithLabelValues(operation).Inc()
}

// UpdateCatalogSize sets the catalog gauges after a reload.
func UpdateCatalogSize(roles, questions int) {
	globalManager.catalogRoles.Set(float64(roles))
	globalManager.catalogQuestions.Set(float64(questions))
}

// RecordCatalogReload counts one reload attempt.
func RecordCatalogReload(success bool) {
	if success {
		globalManager.catalogReloads.Inc()
		return
	}
	globalManager.catalogReloadErrors.Inc()
}

// UpdateOpenSessions sets the open-session gauge.
func UpdateOpenSessions(n int64) {
	globalManager.openSessions.Set(float64(n))
}

// RecordSessionIssued counts one issued assessment session.
func RecordSessionIssued() {
	globalManager.sessionsIssued.Inc()
}

// RecordAdvisorRequest counts one advisor round trip.
func RecordAdvisorRequest(success bool) {
	globalManager.advisorRequests.Inc()
	if !success {
		globalManager.advisorErrors.Inc()
	}
}
