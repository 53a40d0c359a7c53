// Package metrics defines the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "postboard"

// HTTPRequestsTotal counts served requests.
// Labels: method, route (chi pattern), status.
var HTTPRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests served.",
	},
	[]string{"method", "route", "status"},
)

// HTTPRequestDuration measures handler latency.
var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "route"},
)

// AuthAttemptsTotal counts sign-up and sign-in outcomes.
// Labels:
//   - action: "signup" or "signin"
//   - result: "ok", "duplicate", "invalid", "error"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of sign-up and sign-in attempts by result.",
	},
	[]string{"action", "result"},
)

// PostWritesTotal counts post mutations.
// Labels:
//   - op: "create", "update", "delete"
//   - result: "ok", "forbidden", "error"
var PostWritesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "post_writes_total",
		Help:      "Total number of post writes by operation and result.",
	},
	[]string{"op", "result"},
)

// WeatherRequestsTotal counts weather lookups.
// Label result: "ok", "missing_coordinates", "invalid_coordinates", "upstream_error".
var WeatherRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "weather_requests_total",
		Help:      "Total number of weather lookups by result.",
	},
	[]string{"result"},
)
