package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the service's Prometheus collectors behind one registry so
// tests can build isolated instances without global registration conflicts.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
	transitions     *prometheus.CounterVec
	relayPublished  prometheus.Counter
	relayFailed     prometheus.Counter
	realtimeClients prometheus.Gauge
}

// NewMetrics builds and registers all collectors on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "process_status_transitions_total",
				Help: "Total number of delivery process status transitions",
			},
			[]string{"from", "to"},
		),
		relayPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "relay_events_published_total",
			Help: "Total number of outbox events delivered by the relay",
		}),
		relayFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "relay_events_failed_total",
			Help: "Total number of outbox events the relay failed to deliver",
		}),
		realtimeClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "realtime_clients",
			Help: "Number of connected realtime clients",
		}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		m.httpRequests,
		m.httpDuration,
		m.transitions,
		m.relayPublished,
		m.relayFailed,
		m.realtimeClients,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveHTTP records one finished HTTP request.
func (m *Metrics) ObserveHTTP(method, path, status string, elapsed time.Duration) {
	m.httpRequests.WithLabelValues(method, path, status).Inc()
	m.httpDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}

// ObserveTransition records one process status transition.
func (m *Metrics) ObserveTransition(from, to string) {
	m.transitions.WithLabelValues(from, to).Inc()
}

// RelayPublished counts successfully relayed outbox events.
func (m *Metrics) RelayPublished() { m.relayPublished.Inc() }

// RelayFailed counts relay delivery failures.
func (m *Metrics) RelayFailed() { m.relayFailed.Inc() }

// ClientConnected tracks a realtime client attach.
func (m *Metrics) ClientConnected() { m.realtimeClients.Inc() }

// ClientDisconnected tracks a realtime client detach.
func (m *Metrics) ClientDisconnected() { m.realtimeClients.Dec() }
