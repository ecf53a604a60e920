package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// Metrics holds all Prometheus metrics for the API
type Metrics struct {
	// HTTP request metrics
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	httpRequestsInFlight *prometheus.GaugeVec

	// Codec operation metrics
	codecOperationsTotal   *prometheus.CounterVec
	codecOperationDuration *prometheus.HistogramVec
	codecBytesTotal        *prometheus.CounterVec

	// Archive operation metrics
	archiveOperationsTotal *prometheus.CounterVec

	// API key authentication metrics
	authRequestsTotal *prometheus.CounterVec

	// Health check metrics
	healthChecksTotal *prometheus.CounterVec
}

// NewMetrics creates and registers all Prometheus metrics
func NewMetrics() *Metrics {
	m := &Metrics{
		// HTTP request metrics
		httpRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rowbin_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status_code"},
		),

		httpRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "rowbin_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),

		httpRequestsInFlight: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "rowbin_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"method", "endpoint"},
		),

		// Codec operation metrics
		codecOperationsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rowbin_codec_operations_total",
				Help: "Total number of codec operations",
			},
			[]string{"operation", "status"},
		),

		codecOperationDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "rowbin_codec_operation_duration_seconds",
				Help:    "Codec operation duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),

		codecBytesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rowbin_codec_bytes_total",
				Help: "Total bytes flowing through codec operations",
			},
			[]string{"operation", "direction"},
		),

		// Archive operation metrics
		archiveOperationsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rowbin_archive_operations_total",
				Help: "Total number of archive operations",
			},
			[]string{"operation", "status"},
		),

		// Authentication metrics
		authRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rowbin_auth_requests_total",
				Help: "Total number of authentication requests",
			},
			[]string{"status"},
		),

		// Health check metrics
		healthChecksTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rowbin_health_checks_total",
				Help: "Total number of health checks",
			},
			[]string{"status"},
		),
	}

	return m
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, endpoint string, statusCode int, duration time.Duration) {
	statusCodeStr := strconv.Itoa(statusCode)

	m.httpRequestsTotal.WithLabelValues(method, endpoint, statusCodeStr).Inc()
	m.httpRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordCodecOperation records one pack/unpack/wrap/unwrap/inspect call
// together with the bytes that entered and left it.
func (m *Metrics) RecordCodecOperation(operation string, success bool, duration time.Duration, bytesIn, bytesOut int) {
	status := statusSuccess
	if !success {
		status = statusError
	}

	m.codecOperationsTotal.WithLabelValues(operation, status).Inc()
	m.codecOperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if bytesIn > 0 {
		m.codecBytesTotal.WithLabelValues(operation, "in").Add(float64(bytesIn))
	}
	if bytesOut > 0 {
		m.codecBytesTotal.WithLabelValues(operation, "out").Add(float64(bytesOut))
	}
}

// RecordArchiveOperation records an archive operation
func (m *Metrics) RecordArchiveOperation(operation string, success bool) {
	status := statusSuccess
	if !success {
		status = statusError
	}
	m.archiveOperationsTotal.WithLabelValues(operation, status).Inc()
}

// RecordAuthRequest records an authentication request
func (m *Metrics) RecordAuthRequest(success bool) {
	status := statusSuccess
	if !success {
		status = statusError
	}
	m.authRequestsTotal.WithLabelValues(status).Inc()
}

// RecordHealthCheck records a health check
func (m *Metrics) RecordHealthCheck(success bool) {
	status := statusSuccess
	if !success {
		status = statusError
	}
	m.healthChecksTotal.WithLabelValues(status).Inc()
}

// InstrumentHandler instruments an HTTP handler with metrics
func (m *Metrics) InstrumentHandler(method, endpoint string, handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Record request in flight
		gauge := m.httpRequestsInFlight.WithLabelValues(method, endpoint)
		gauge.Inc()
		defer gauge.Dec()

		// Create response writer wrapper to capture status code
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		// Call the original handler
		handler(rw, r)

		// Record metrics
		duration := time.Since(start)
		m.RecordHTTPRequest(method, endpoint, rw.statusCode, duration)
	}
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
