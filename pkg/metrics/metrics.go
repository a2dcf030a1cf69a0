package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "business_tracker"

var (
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
	// BusinessOperations counts record operations by outcome ("success" or an error kind).
	BusinessOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "business_operations_total", Help: "Business record operations by operation and outcome."},
		[]string{"operation", "outcome"},
	)
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Subsystem: "http", Name: "requests_total", Help: "HTTP requests by status code, method and route."},
		[]string{"code", "method", "route"},
	)
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Namespace: namespace, Subsystem: "http", Name: "request_duration_seconds", Help: "HTTP request latency by route.", Buckets: prometheus.DefBuckets},
		[]string{"method", "route"},
	)
	HTTPResponseSize = prometheus.NewHistogram(
		prometheus.HistogramOpts{Namespace: namespace, Subsystem: "http", Name: "response_size_bytes", Help: "HTTP response size.", Buckets: prometheus.ExponentialBuckets(64, 4, 8)},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
	reg.MustRegister(BusinessOperations)
	reg.MustRegister(HTTPRequests)
	reg.MustRegister(HTTPDuration)
	reg.MustRegister(HTTPResponseSize)
}
