package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// metrics holds the server's collectors, registered on a dedicated registry
// so several servers (and tests) can coexist in one process.
type metrics struct {
	registry *prometheus.Registry

	// requests counts HTTP requests.
	// Labels: route, method, code
	requests *prometheus.CounterVec

	// duration measures request latency.
	// Labels: route
	duration *prometheus.HistogramVec

	// lintRuns counts lint requests served.
	lintRuns prometheus.Counter

	// lints counts lints reported.
	// Labels: rule
	lints *prometheus.CounterVec
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "harper",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests by route, method and status code",
		}, []string{"route", "method", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "harper",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"route"}),
		lintRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "harper",
			Subsystem: "lint",
			Name:      "runs_total",
			Help:      "Total lint requests served",
		}),
		lints: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "harper",
			Subsystem: "lint",
			Name:      "lints_total",
			Help:      "Total lints reported by rule",
		}, []string{"rule"}),
	}
	m.registry.MustRegister(
		m.requests,
		m.duration,
		m.lintRuns,
		m.lints,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}
