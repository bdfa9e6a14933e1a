// Package analytics is the in-memory event aggregation engine behind the review API.
//
// It owns four pieces of state behind a single lock: the device registry, the time bucket
// index, the append-only event log, and a per-device index over that log. Engine.Register and
// Engine.Ingest are the only writers; every query runs under the read lock so a reader never
// sees a counter that is out of step with the log.
package analytics

import (
	"errors"
	"time"

	"reviewsentry/internal/core/buckets"
)

// Classification labels stored on events
const (
	LabelMachine = "machine-generated"
	LabelHuman   = "human-written"
)

var (
	// ErrDeviceNotFound is returned by DeviceStats for ids the registry never issued
	ErrDeviceNotFound = errors.New("device not found")

	// ErrNoData is returned by TemporalPatterns when the event log is empty
	ErrNoData = errors.New("no data available")

	// ErrInvalidEvent is returned by Ingest when the classification result carries no label
	ErrInvalidEvent = errors.New("event has no label")
)

// Device is a client-asserted pseudo identity
type Device struct {
	ID          string    `json:"device_id"`
	CreatedAt   time.Time `json:"created_at"`
	LastSeen    time.Time `json:"last_seen"`
	TotalEvents int64     `json:"total_events"`
}

// Features is the temporal snapshot computed once at ingestion time
// device counts exclude the event they are stored on
type Features struct {
	buckets.Keys
	HourOfDay         int   `json:"hour_of_day"`
	IsWeekend         bool  `json:"is_weekend"`
	DeviceToday       int64 `json:"device_reviews_today"`
	DeviceThisWeek    int64 `json:"device_reviews_this_week"`
	DeviceThisMonth   int64 `json:"device_reviews_this_month"`
	DevicePriorEvents int64 `json:"device_prior_reviews"`
}

// Event is one recorded classification outcome
type Event struct {
	ID             string    `json:"id"`
	Seq            uint64    `json:"seq"`
	TextPreview    string    `json:"text_preview"`
	Label          string    `json:"label"`
	Confidence     float64   `json:"confidence"`
	Probabilities  []float64 `json:"probabilities,omitempty"`
	DeviceID       string    `json:"device_id,omitempty"`
	Rating         int       `json:"rating,omitempty"`
	Category       string    `json:"category,omitempty"`
	EventTimestamp time.Time `json:"event_timestamp"`
	IngestedAt     time.Time `json:"ingested_at"`
	Features       Features  `json:"temporal_features"`
}

// IsMachine reports whether the event was classified as machine generated
func (e Event) IsMachine() bool { return e.Label == LabelMachine }

// clone detaches the probability slice so callers cannot reach stored state
func (e Event) clone() Event {
	if e.Probabilities != nil {
		e.Probabilities = append([]float64(nil), e.Probabilities...)
	}
	return e
}

// IngestInput is a successful classification plus client supplied context
type IngestInput struct {
	Text          string
	Label         string
	Confidence    float64
	Probabilities []float64
	DeviceID      string
	Timestamp     time.Time // zero means now
	Rating        int       // zero means absent
	Category      string
}

// Sink observes committed writes. Calls happen after the engine lock is released,
// in commit order per goroutine, and must not block
type Sink interface {
	DeviceRegistered(d Device)
	EventIngested(ev Event)
}

// ActiveDevice names the device with the most events
type ActiveDevice struct {
	DeviceID    string `json:"device_id"`
	TotalEvents int64  `json:"total_reviews"`
}

// Summary is the global report
type Summary struct {
	TotalReviews     int64            `json:"total_reviews"`
	UniqueDevices    int              `json:"unique_devices"`
	ReviewsToday     int64            `json:"reviews_today"`
	DailyCounts      buckets.Counters `json:"daily_counts"`
	WeeklyCounts     buckets.Counters `json:"weekly_counts"`
	MonthlyCounts    buckets.Counters `json:"monthly_counts"`
	MostActiveDevice *ActiveDevice    `json:"most_active_device"`
}

// HourCount is one row of a posting-hour frequency table
type HourCount struct {
	Hour  int `json:"hour"`
	Count int `json:"count"`
}

// DayCount is one row of a weekday frequency table
type DayCount struct {
	Day     string `json:"day"`
	Weekday int    `json:"weekday"` // ISO 1 (Monday) .. 7 (Sunday)
	Count   int    `json:"count"`
}

// DeviceStats is the per-device posting pattern report
type DeviceStats struct {
	DeviceID         string      `json:"device_id"`
	TotalEvents      int64       `json:"total_events"`
	FirstSeen        time.Time   `json:"first_seen"`
	LastSeen         time.Time   `json:"last_seen"`
	CommonHours      []HourCount `json:"common_hours"`
	CommonDays       []DayCount  `json:"common_days"`
	ActiveDays       int         `json:"active_days"`
	AvgReviewsPerDay float64     `json:"avg_reviews_per_day"`
	RecentActivity   []Event     `json:"recent_activity"`
}

// HourPattern is the machine-generated share for one hour of day
type HourPattern struct {
	Hour           int     `json:"hour"`
	TotalReviews   int64   `json:"total_reviews"`
	FakeReviews    int64   `json:"fake_reviews"`
	FakePercentage float64 `json:"fake_percentage"`
}

// TemporalPatterns is the hour-of-day and rolling window report
type TemporalPatterns struct {
	HourlyPatterns []HourPattern `json:"hourly_patterns"`
	Last24Hours    int64         `json:"last_24_hours"`
	LastWeek       int64         `json:"last_week"`
	TotalReviews   int64         `json:"total_reviews"`
	GeneratedAt    time.Time     `json:"generated_at"`
}
