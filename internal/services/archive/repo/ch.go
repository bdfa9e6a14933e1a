package repo

import (
	"context"

	"reviewsentry/internal/core/analytics"
	"reviewsentry/internal/platform/store"
)

// EventsTable is the ClickHouse archive table
//
//	CREATE TABLE review_events (
//	  event_id UUID, seq UInt64, device_id String, label LowCardinality(String),
//	  confidence Float64, probabilities Array(Float64), text_preview String,
//	  rating UInt8, category String, event_timestamp DateTime64(3, 'UTC'),
//	  ingested_at DateTime64(3, 'UTC'), day_key String, week_key String, month_key String,
//	  hour_of_day UInt8, is_weekend Bool
//	) ENGINE = ReplacingMergeTree ORDER BY (event_timestamp, event_id)
const EventsTable = "review_events"

// CH writes event batches through the store ClickHouse seam
type CH struct {
	db store.Clickhouse
}

// NewCH wraps db
func NewCH(db store.Clickhouse) *CH { return &CH{db: db} }

// WriteEvents appends one row per event in column order
func (c *CH) WriteEvents(ctx context.Context, evs []analytics.Event) error {
	if len(evs) == 0 {
		return nil
	}
	rows := make([][]any, 0, len(evs))
	for _, ev := range evs {
		probs := ev.Probabilities
		if probs == nil {
			probs = []float64{}
		}
		rows = append(rows, []any{
			ev.ID, ev.Seq, ev.DeviceID, ev.Label,
			ev.Confidence, probs, ev.TextPreview,
			uint8(ev.Rating), ev.Category, ev.EventTimestamp,
			ev.IngestedAt, ev.Features.Day, ev.Features.Week, ev.Features.Month,
			uint8(ev.Features.HourOfDay), ev.Features.IsWeekend,
		})
	}
	return c.db.Insert(ctx, EventsTable, rows)
}
