// Package metrics holds the Prometheus collectors of the service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "news_monitor"

// Fetch results reported by ObserveFetch.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// Metrics groups the collectors registered on one registry.
type Metrics struct {
	registry *prometheus.Registry

	Requests    *prometheus.CounterVec
	Duration    *prometheus.HistogramVec
	Fetches     *prometheus.CounterVec
	FeedItems   prometheus.Gauge
	ExportBytes prometheus.Histogram
}

// New creates the collectors on a private registry, together with the Go runtime collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests processed, by route and status.",
		}, []string{"method", "route", "status"}),
		Duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		Fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "feed_fetches_total",
			Help:      "News adapter calls, by result.",
		}, []string{"result"}),
		FeedItems: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "feed_items",
			Help:      "Items returned by the last successful fetch.",
		}),
		ExportBytes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "export_bytes",
			Help:      "Size of generated spreadsheets.",
			Buckets:   prometheus.ExponentialBuckets(4096, 2, 10),
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.Requests, m.Duration, m.Fetches, m.FeedItems, m.ExportBytes,
	)
	return m
}

// ObserveFetch records the outcome of one adapter call.
func (m *Metrics) ObserveFetch(items int, err error) {
	if err != nil {
		m.Fetches.WithLabelValues(ResultFailure).Inc()
		return
	}
	m.Fetches.WithLabelValues(ResultSuccess).Inc()
	m.FeedItems.Set(float64(items))
}

// ObserveExport records the size of a generated workbook.
func (m *Metrics) ObserveExport(size int) {
	m.ExportBytes.Observe(float64(size))
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
