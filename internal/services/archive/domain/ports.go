// Package domain defines the archive exporter records and ports.
package domain

import (
	"context"

	"reviewsentry/internal/core/analytics"
)

// Kind names the record type for metrics labels
type Kind string

// Record kinds
const (
	KindDevice Kind = "device"
	KindEvent  Kind = "event"
)

// Record is one committed engine write waiting to be exported
type Record struct {
	Kind   Kind
	Device analytics.Device
	Event  analytics.Event
}

// Split partitions records by kind, keeping commit order within each kind
func Split(rs []Record) (devices []analytics.Device, events []analytics.Event) {
	for _, r := range rs {
		switch r.Kind {
		case KindDevice:
			devices = append(devices, r.Device)
		case KindEvent:
			events = append(events, r.Event)
		}
	}
	return devices, events
}

// RowWriter persists batches into a relational archive
type RowWriter interface {
	WriteDevices(ctx context.Context, ds []analytics.Device) error
	WriteEvents(ctx context.Context, evs []analytics.Event) error
}

// ColumnWriter persists event batches into a columnar archive
type ColumnWriter interface {
	WriteEvents(ctx context.Context, evs []analytics.Event) error
}

// RunnerPort drives the exporter loop
type RunnerPort interface {
	Run(ctx context.Context) error
}
