package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	whoisRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "whois_api_requests_total",
		Help: "Total HTTP requests by method, path, and response status.",
	}, []string{"method", "path", "status"})

	whoisRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "whois_api_request_duration_seconds",
		Help:    "Request duration in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	whoisLookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "whois_api_domain_lookups_total",
		Help: "Total per-domain lookups by result.",
	}, []string{"result"})

	whoisLookupDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "whois_api_domain_lookup_duration_seconds",
		Help:    "Time taken by a single domain lookup, including fallbacks.",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
	})
)

// Prometheus returns a Gin middleware that records per-request metrics.
func Prometheus() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())
		method := c.Request.Method
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		whoisRequestsTotal.WithLabelValues(method, path, status).Inc()
		whoisRequestDuration.WithLabelValues(method, path).Observe(duration)
	}
}

// MetricsHandler returns a Gin handler that serves Prometheus metrics.
func MetricsHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}

// RecordLookup records one settled domain lookup.
func RecordLookup(success bool, elapsed time.Duration) {
	if success {
		whoisLookupsTotal.WithLabelValues("success").Inc()
	} else {
		whoisLookupsTotal.WithLabelValues("failure").Inc()
	}
	whoisLookupDuration.Observe(elapsed.Seconds())
}
