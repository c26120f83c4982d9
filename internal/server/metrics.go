package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "scout",
			Subsystem: "proxy",
			Name:      "requests_total",
			Help:      "HTTP requests served, by method, route and status code.",
		},
		[]string{"method", "route", "status"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "scout",
			Subsystem: "proxy",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	upstreamFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "scout",
			Subsystem: "proxy",
			Name:      "upstream_failures_total",
			Help:      "Upstream calls that produced a 500 response.",
		},
	)
)
