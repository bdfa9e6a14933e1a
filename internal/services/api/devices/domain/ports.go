// Package domain holds the device ports and payloads.
package domain

import "reviewsentry/internal/core/analytics"

// Registry is the device side of the aggregation engine. *analytics.Engine satisfies it
type Registry interface {
	Register() analytics.Device
	DeviceStats(id string) (analytics.DeviceStats, error)
}

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	Register() RegisterResponse
	Stats(id string) (analytics.DeviceStats, error)
}
