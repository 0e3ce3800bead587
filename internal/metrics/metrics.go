package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTPRequests counts served requests by route pattern and status.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "videoshare_http_requests_total",
		Help: "Total HTTP requests by method, route and status code",
	}, []string{"method", "route", "status"})

	// HTTPDuration records request latency by route pattern.
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "videoshare_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	// LikeToggles counts toggle outcomes per target type.
	LikeToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "videoshare_like_toggles_total",
		Help: "Like toggle outcomes by target type",
	}, []string{"target_type", "outcome"})

	// WorkerEvents counts processed stream events by type and result.
	WorkerEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "videoshare_worker_events_total",
		Help: "Stream events handled by workers",
	}, []string{"event_type", "result"})
)

// Toggle outcomes
const (
	OutcomeLiked          = "liked"
	OutcomeUnliked        = "unliked"
	OutcomeAlreadyLiked   = "already_liked"
	OutcomeAlreadyUnliked = "already_unliked"
)

// ObserveRequest records one finished HTTP request.
func ObserveRequest(method, route string, status int, start time.Time) {
	HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
}

// RecordToggle increments the toggle counter for one outcome.
func RecordToggle(targetType, outcome string) {
	LikeToggles.WithLabelValues(targetType, outcome).Inc()
}

// RecordWorkerEvent increments the worker counter; result is "ok" or "error".
func RecordWorkerEvent(eventType string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	WorkerEvents.WithLabelValues(eventType, result).Inc()
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
