// Package metrics holds the Prometheus instrumentation for the referral
// network service. All metrics live on one Registry so tests and embedders
// can run isolated registries side by side.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds all metrics for the application.
type Registry struct {
	registry *prometheus.Registry

	// Build metrics
	BuildsTotal       *prometheus.CounterVec
	BuildDuration     prometheus.Histogram
	CyclesBrokenTotal prometheus.Counter

	// Last observed forest shape
	ForestNodes        prometheus.Gauge
	ForestVirtualNodes prometheus.Gauge

	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// NewRegistry creates a registry with all metrics registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	r := &Registry{registry: reg}

	r.BuildsTotal = promauto.With(reg).NewCounterVec(
		prometheus.CounterOpts{
			Name: "refnet_builds_total",
			Help: "Total number of forest builds",
		},
		[]string{"status"},
	)
	r.BuildDuration = promauto.With(reg).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "refnet_build_duration_seconds",
			Help:    "Forest build latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)
	r.CyclesBrokenTotal = promauto.With(reg).NewCounter(
		prometheus.CounterOpts{
			Name: "refnet_cycles_broken_total",
			Help: "Total number of referral cycles broken during builds",
		},
	)
	r.ForestNodes = promauto.With(reg).NewGauge(
		prometheus.GaugeOpts{
			Name: "refnet_forest_nodes",
			Help: "Node count of the most recently built forest",
		},
	)
	r.ForestVirtualNodes = promauto.With(reg).NewGauge(
		prometheus.GaugeOpts{
			Name: "refnet_forest_virtual_nodes",
			Help: "Virtual node count of the most recently built forest",
		},
	)
	r.HTTPRequestsTotal = promauto.With(reg).NewCounterVec(
		prometheus.CounterOpts{
			Name: "refnet_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)
	r.HTTPRequestDuration = promauto.With(reg).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "refnet_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	return r
}

// RecordBuild records one successful build and the shape of its forest.
func (r *Registry) RecordBuild(d time.Duration, totalNodes, virtualNodes, cyclesBroken int) {
	r.BuildsTotal.WithLabelValues("ok").Inc()
	r.BuildDuration.Observe(d.Seconds())
	r.CyclesBrokenTotal.Add(float64(cyclesBroken))
	r.ForestNodes.Set(float64(totalNodes))
	r.ForestVirtualNodes.Set(float64(virtualNodes))
}

// RecordBuildError records one failed build.
func (r *Registry) RecordBuildError(d time.Duration) {
	r.BuildsTotal.WithLabelValues("error").Inc()
	r.BuildDuration.Observe(d.Seconds())
}

// RecordHTTPRequest records an HTTP request with its duration.
func (r *Registry) RecordHTTPRequest(method, path, status string, d time.Duration) {
	r.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	r.HTTPRequestDuration.WithLabelValues(method, path).Observe(d.Seconds())
}

// Handler returns the scrape handler for this registry.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Gatherer exposes the underlying registry, mainly for tests.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}
