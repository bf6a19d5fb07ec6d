// Package prometheus exposes the engine's operational counters and
// latencies on a Prometheus registry.
package prometheus

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/voracio/sheetsense/internal/domain/attribute"
)

// Metrics implements the engine's observation hook and the HTTP middleware
// counters on a private registry, so multiple instances can coexist in
// tests without duplicate-registration panics.
type Metrics struct {
	registry *prometheus.Registry

	resolutions      *prometheus.CounterVec
	resolutionTime   *prometheus.HistogramVec
	fallbackFailures prometheus.Counter
	httpRequests     *prometheus.CounterVec
	httpRequestTime  *prometheus.HistogramVec
}

// New builds a Metrics instance backed by its own registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sheetsense",
			Name:      "resolutions_total",
			Help:      "Attribute resolutions by strategy and outcome.",
		}, []string{"strategy", "found"}),
		resolutionTime: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "sheetsense",
			Name:      "resolution_duration_seconds",
			Help:      "Time spent resolving a single attribute.",
			Buckets:   []float64{.001, .005, .01, .05, .1, .5, 1, 5, 15, 30},
		}, []string{"strategy"}),
		fallbackFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sheetsense",
			Name:      "fallback_failures_total",
			Help:      "Fallback requests that produced an inline error value.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sheetsense",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, path and status.",
		}, []string{"method", "path", "status"}),
		httpRequestTime: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "sheetsense",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and path.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),
	}
	m.registry.MustRegister(
		m.resolutions, m.resolutionTime, m.fallbackFailures,
		m.httpRequests, m.httpRequestTime)
	return m
}

// ObserveResolution records one resolved attribute.
func (m *Metrics) ObserveResolution(strategy attribute.Strategy, found bool, took time.Duration) {
	m.resolutions.WithLabelValues(string(strategy), strconv.FormatBool(found)).Inc()
	m.resolutionTime.WithLabelValues(string(strategy)).Observe(took.Seconds())
}

// ObserveFallbackFailure records a fallback request that failed and
// degraded to an inline error value.
func (m *Metrics) ObserveFallbackFailure() {
	m.fallbackFailures.Inc()
}

// ObserveHTTPRequest records one served HTTP request.
func (m *Metrics) ObserveHTTPRequest(method, path string, status int, took time.Duration) {
	m.httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.httpRequestTime.WithLabelValues(method, path).Observe(took.Seconds())
}

// Handler serves the metrics in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
