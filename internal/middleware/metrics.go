package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BookingsCreated   = promauto.NewCounter(prometheus.CounterOpts{Namespace: "ridebook", Name: "bookings_created_total", Help: "Total bookings created"})
	PaymentsSucceeded = promauto.NewCounter(prometheus.CounterOpts{Namespace: "ridebook", Name: "payments_succeeded_total", Help: "Total payments confirmed via webhook"})
	PaymentsFailed    = promauto.NewCounter(prometheus.CounterOpts{Namespace: "ridebook", Name: "payments_failed_total", Help: "Total failed payments"})

	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "ridebook", Name: "http_requests_total", Help: "Total HTTP requests handled"},
		[]string{"method", "path", "status"},
	)
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ridebook",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency distribution",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)

// Metrics records per-route request counts and latencies.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		httpRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
	}
}
