// Package metrics holds the process wide Prometheus collectors.
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
	// HTTP
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reviewsentry_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "route", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "reviewsentry_api_request_duration_seconds",
			Help:    "API request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "reviewsentry_api_active_requests",
			Help: "Requests currently being served",
		},
	)

	// Analytics engine
	EventsIngested = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reviewsentry_events_ingested_total",
			Help: "Classification events committed to the event store",
		},
		[]string{"label"},
	)

	EventsEvicted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reviewsentry_events_evicted_total",
			Help: "Events dropped by the retention cap",
		},
	)

	DevicesRegistered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reviewsentry_devices_registered_total",
			Help: "Device identifiers issued",
		},
	)

	// Classifier
	Predictions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reviewsentry_predictions_total",
			Help: "Classifier outcomes by result",
		},
		[]string{"result"}, // label name, or "error"
	)

	PredictionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "reviewsentry_prediction_duration_seconds",
			Help:    "Feature extraction plus inference latency",
			Buckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25},
		},
	)

	// Circuit breakers
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "reviewsentry_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reviewsentry_circuit_breaker_requests_total",
			Help: "Requests through a circuit breaker by outcome",
		},
		[]string{"name", "result"}, // success, failure, rejected
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reviewsentry_circuit_breaker_transitions_total",
			Help: "Circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)

	// Archive exporter
	ArchiveQueued = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reviewsentry_archive_records_total",
			Help: "Records handed to the archive exporter by outcome",
		},
		[]string{"kind", "result"}, // result: queued, dropped, written, failed
	)

	ArchiveFlushDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "reviewsentry_archive_flush_duration_seconds",
			Help:    "Archive batch flush latency by sink",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"sink"},
	)

	// Store
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "reviewsentry_db_query_duration_seconds",
			Help:    "Postgres statement latency by leading verb and outcome",
			Buckets: []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"verb", "outcome"},
	)
)

// RecordAPIRequest records one served request
func RecordAPIRequest(method, route string, status int, d time.Duration) {
	APIRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// TrackActiveRequest moves the in-flight gauge
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
		return
	}
	APIActiveRequests.Dec()
}

// RecordPrediction records one classifier call
func RecordPrediction(result string, d time.Duration) {
	Predictions.WithLabelValues(result).Inc()
	PredictionDuration.Observe(d.Seconds())
}

// ObserveDBQuery records one postgres statement
func ObserveDBQuery(verb string, d time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	DBQueryDuration.WithLabelValues(verb, outcome).Observe(d.Seconds())
}

// Handler serves the default registry
func Handler() http.Handler {
	return promhttp.Handler()
}
