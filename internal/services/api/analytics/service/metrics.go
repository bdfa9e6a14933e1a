package service

import (
	"reviewsentry/internal/core/analytics"
	"reviewsentry/internal/platform/metrics"
)

// MetricsSink exports engine writes as prometheus counters
type MetricsSink struct{}

var (
	_ analytics.Sink         = MetricsSink{}
	_ analytics.EvictionSink = MetricsSink{}
)

// DeviceRegistered implements analytics.Sink
func (MetricsSink) DeviceRegistered(analytics.Device) { metrics.DevicesRegistered.Inc() }

// EventIngested implements analytics.Sink
func (MetricsSink) EventIngested(ev analytics.Event) {
	metrics.EventsIngested.WithLabelValues(ev.Label).Inc()
}

// EventsEvicted implements analytics.EvictionSink
func (MetricsSink) EventsEvicted(n int) { metrics.EventsEvicted.Add(float64(n)) }
