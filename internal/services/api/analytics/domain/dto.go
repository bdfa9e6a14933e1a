package domain

import "reviewsentry/internal/core/analytics"

type (
	// SummaryResponse is the global counters report
	SummaryResponse = analytics.Summary

	// PatternsResponse is the hour of day and rolling window report
	PatternsResponse = analytics.TemporalPatterns
)

// NoDataMessage is returned in place of patterns before the first event
const NoDataMessage = "No data available"
