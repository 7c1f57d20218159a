// Package metrics collects and exposes Prometheus metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "playground"

// Collector implements service.AuthMetrics and the HTTP request metrics.
type Collector struct {
	gatherer      prometheus.Gatherer
	signups       *prometheus.CounterVec
	logins        *prometheus.CounterVec
	refreshes     *prometheus.CounterVec
	purged        *prometheus.CounterVec
	httpRequests  *prometheus.CounterVec
	httpDurations *prometheus.HistogramVec
}

// NewRegistry returns a registry carrying the Go runtime and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return reg
}

// NewCollector creates a Collector and registers its metrics on reg.
func NewCollector(reg *prometheus.Registry) *Collector {
	c := &Collector{
		gatherer: reg,
		signups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "auth",
			Name:      "signup_total",
			Help:      "Signup attempts by provider and result.",
		}, []string{"provider", "result"}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "auth",
			Name:      "login_total",
			Help:      "Login attempts by provider and result.",
		}, []string{"provider", "result"}),
		refreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "auth",
			Name:      "token_refresh_total",
			Help:      "Access token refresh attempts by result.",
		}, []string{"result"}),
		purged: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "maintenance",
			Name:      "deleted_total",
			Help:      "Records removed by the cleanup worker.",
		}, []string{"kind"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP responses by method, route and status code.",
		}, []string{"method", "route", "status_code"}),
		httpDurations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	reg.MustRegister(
		c.signups,
		c.logins,
		c.refreshes,
		c.purged,
		c.httpRequests,
		c.httpDurations,
	)

	return c
}

func (c *Collector) RecordSignup(provider, result string) {
	c.signups.WithLabelValues(provider, result).Inc()
}

func (c *Collector) RecordLogin(provider, result string) {
	c.logins.WithLabelValues(provider, result).Inc()
}

func (c *Collector) RecordTokenRefresh(result string) {
	c.refreshes.WithLabelValues(result).Inc()
}

// RecordPurged adds count removed records of kind. Zero counts are ignored.
func (c *Collector) RecordPurged(kind string, count int64) {
	if count <= 0 {
		return
	}
	c.purged.WithLabelValues(kind).Add(float64(count))
}

// ObserveHTTPRequest records one served request. route is the registered path pattern.
func (c *Collector) ObserveHTTPRequest(method, route string, statusCode int, elapsed time.Duration) {
	c.httpRequests.WithLabelValues(method, route, strconv.Itoa(statusCode)).Inc()
	c.httpDurations.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Handler returns the Prometheus scrape handler.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{})
}
