// Package metrics provides Prometheus-based request timing for the REST endpoints.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder records per-endpoint request latency.
type Recorder struct {
	requestDuration *prometheus.HistogramVec
	requestsTotal   *prometheus.CounterVec
}

// NewRecorder registers the request metrics on reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)
	return &Recorder{
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_server_request_duration_seconds",
				Help:    "Duration of REST requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_server_requests_total",
				Help: "Total number of REST requests by route and status",
			},
			[]string{"method", "route", "status"},
		),
	}
}

// ObserveRequest records a completed request.
func (r *Recorder) ObserveRequest(method, route string, status int, duration time.Duration) {
	r.requestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
	r.requestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}
