// Package metrics holds the Prometheus collectors of the service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups every collector exported by the service
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration   *prometheus.HistogramVec
	DBOpenConnections *prometheus.GaugeVec
	DBInUse           *prometheus.GaugeVec

	SessionWarningsTotal prometheus.Counter
}

// New creates and registers collectors on a dedicated registry
func New(serviceName string) *Metrics {
	labels := prometheus.Labels{"service": serviceName}
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: labels,
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			ConstLabels: labels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation", "status"}),
		DBOpenConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Open database connections",
			ConstLabels: labels,
		}, []string{"db"}),
		DBInUse: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Database connections currently in use",
			ConstLabels: labels,
		}, []string{"db"}),
		SessionWarningsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "studio_session_warnings_total",
			Help:        "Five-minute warnings fired for active sessions",
			ConstLabels: labels,
		}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBOpenConnections,
		m.DBInUse,
		m.SessionWarningsTotal,
	)

	return m
}

// RegisterGauge exposes a value computed on every scrape
func (m *Metrics) RegisterGauge(name, help string, fn func() float64) {
	m.registry.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: name,
		Help: help,
	}, fn))
}

// Handler returns the scrape endpoint for the registry
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Gatherer exposes the registry for tests
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}
