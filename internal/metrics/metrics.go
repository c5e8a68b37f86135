package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RequestsTotal counts handled HTTP requests by route, method and status.
var RequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "trivia_http_requests_total",
		Help: "Total HTTP requests handled, by route, method and status code.",
	},
	[]string{"route", "method", "status"},
)

// RequestDuration tracks request latency by route and method.
var RequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "trivia_http_request_duration_seconds",
		Help:    "HTTP request latency, by route and method.",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"route", "method"},
)
