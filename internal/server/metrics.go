package server

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Calculation outcomes recorded by the metrics.
const (
	outcomeOK      = "ok"
	outcomeCached  = "cached"
	outcomeInvalid = "invalid"
	outcomeError   = "error"
)

type metrics struct {
	registry     *prometheus.Registry
	calculations *prometheus.CounterVec
	duration     *prometheus.HistogramVec
}

// newMetrics uses a private registry so several handlers can coexist in one
// process, e.g. in tests.
func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		calculations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mortgage_calculations_total",
			Help: "Mortgage calculations served, by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mortgage_calculation_duration_seconds",
			Help:    "Time spent computing mortgage results.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 4, 8),
		}, []string{"endpoint"}),
	}
	m.registry.MustRegister(
		m.calculations,
		m.duration,
		collectors.NewGoCollector(),
	)
	return m
}

func (m *metrics) observe(endpoint, outcome string, start time.Time) {
	m.calculations.WithLabelValues(endpoint, outcome).Inc()
	m.duration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
