// Package metrics holds the server's Prometheus collectors.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "citizenportal"

var (
	// Registry holds the portal's collectors.
	Registry = prometheus.NewRegistry()

	rpcRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "grpc",
			Name:      "requests_total",
			Help:      "Total number of gRPC requests handled.",
		},
		[]string{"method", "code"},
	)

	rpcDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "grpc",
			Name:      "request_duration_seconds",
			Help:      "Duration of gRPC requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method"},
	)

	rateLimited = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "grpc",
			Name:      "rate_limited_total",
			Help:      "Requests refused by the login rate limiter.",
		},
		[]string{"method"},
	)

	notificationsDelivered = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "notifications",
			Name:      "deliveries_total",
			Help:      "Notification delivery attempts by result.",
		},
		[]string{"result"},
	)

	jobRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "jobs",
			Name:      "runs_total",
			Help:      "Scheduled job runs.",
		},
		[]string{"job", "success"},
	)

	jobDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "jobs",
			Name:      "run_duration_seconds",
			Help:      "Duration of scheduled job runs.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 10),
		},
		[]string{"job"},
	)
)

func init() {
	Registry.MustRegister(
		rpcRequests,
		rpcDuration,
		rateLimited,
		notificationsDelivered,
		jobRuns,
		jobDuration,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler exposes the registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

func RecordRPC(method, code string, d time.Duration) {
	rpcRequests.WithLabelValues(method, code).Inc()
	rpcDuration.WithLabelValues(method).Observe(d.Seconds())
}

func RecordRateLimited(method string) {
	rateLimited.WithLabelValues(method).Inc()
}

// RecordDelivery counts a notification send; result is "sent" or "failed".
func RecordDelivery(result string) {
	notificationsDelivered.WithLabelValues(result).Inc()
}

func RecordJob(job string, success bool, d time.Duration) {
	s := "true"
	if !success {
		s = "false"
	}
	jobRuns.WithLabelValues(job, s).Inc()
	jobDuration.WithLabelValues(job).Observe(d.Seconds())
}
