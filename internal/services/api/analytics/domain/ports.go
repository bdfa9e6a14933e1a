// Package domain holds the analytics read ports and payloads.
package domain

import "reviewsentry/internal/core/analytics"

// Reader is the read side of the aggregation engine. *analytics.Engine satisfies it
type Reader interface {
	Summary() analytics.Summary
	TemporalPatterns() (analytics.TemporalPatterns, error)
}

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	Summary() analytics.Summary
	// TemporalPatterns returns ok=false when nothing has been ingested yet
	TemporalPatterns() (p analytics.TemporalPatterns, ok bool)
}
