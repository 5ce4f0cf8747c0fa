package observability

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestMetricsHandlerExposesCollectors(t *testing.T) {
	m := NewMetrics()
	m.ObserveHTTP("PATCH", "/api/orders/:id/status", "200", 42*time.Millisecond)
	m.ObserveTransition("CONFIRMED", "PAID")
	m.RelayPublished()
	m.RelayFailed()
	m.ClientConnected()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/metrics", nil)
	m.Handler().ServeHTTP(rec, req)

	body := rec.Body.String()
	for _, metric := range []string{
		"http_requests_total",
		"http_request_duration_seconds",
		"process_status_transitions_total",
		"relay_events_published_total",
		"relay_events_failed_total",
		"realtime_clients 1",
	} {
		if !strings.Contains(body, metric) {
			t.Fatalf("metrics output missing %q", metric)
		}
	}
}

func TestMetricsInstancesAreIsolated(t *testing.T) {
	a := NewMetrics()
	b := NewMetrics()
	a.ClientConnected()

	rec := httptest.NewRecorder()
	b.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	if strings.Contains(rec.Body.String(), "realtime_clients 1") {
		t.Fatal("registries must not share state")
	}
}
