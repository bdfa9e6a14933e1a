// Package repo provides the archive storage implementations.
package repo

import (
	"context"
	"fmt"
	"strings"

	"reviewsentry/internal/core/analytics"
	"reviewsentry/internal/modkit/repokit"
	"reviewsentry/internal/platform/store"
	str "reviewsentry/internal/platform/strings"
)

type pg struct{ q repokit.Queryer }

// Storage is the Postgres archive
type Storage interface {
	WriteDevices(ctx context.Context, ds []analytics.Device) error
	WriteEvents(ctx context.Context, evs []analytics.Event) error
	EnsureSchema(ctx context.Context) error
	Counts(ctx context.Context) (devices, events int64, err error)
}

// NewPG returns the binder for the Postgres archive
func NewPG() repokit.Binder[Storage] {
	return repokit.BindFunc[Storage](func(q repokit.Queryer) Storage { return &pg{q: q} })
}

// Schema is applied by EnsureSchema; every statement is idempotent
var Schema = []string{
	`CREATE TABLE IF NOT EXISTS devices (
		device_id   text PRIMARY KEY,
		created_at  timestamptz NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS review_events (
		event_id        uuid PRIMARY KEY,
		seq             bigint NOT NULL,
		device_id       text,
		label           text NOT NULL,
		confidence      double precision NOT NULL,
		probabilities   double precision[],
		text_preview    text NOT NULL,
		rating          smallint,
		category        text,
		event_timestamp timestamptz NOT NULL,
		ingested_at     timestamptz NOT NULL,
		day_key         text NOT NULL,
		week_key        text NOT NULL,
		month_key       text NOT NULL,
		hour_of_day     smallint NOT NULL,
		is_weekend      boolean NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS review_events_device_ts ON review_events (device_id, event_timestamp)`,
}

// EnsureSchema implements Storage
func (s *pg) EnsureSchema(ctx context.Context) error {
	for _, stmt := range Schema {
		if _, err := s.q.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("archive schema: %w", err)
		}
	}
	return nil
}

// WriteDevices implements Storage
func (s *pg) WriteDevices(ctx context.Context, ds []analytics.Device) error {
	if len(ds) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString(`INSERT INTO devices (device_id, created_at) VALUES `)

	args := make([]any, 0, len(ds)*2)
	for i, d := range ds {
		if i > 0 {
			sb.WriteByte(',')
		}
		base := i*2 + 1
		fmt.Fprintf(&sb, "($%d,$%d)", base, base+1)
		args = append(args, d.ID, d.CreatedAt)
	}
	sb.WriteString(` ON CONFLICT (device_id) DO NOTHING`)
	_, err := s.q.Exec(ctx, sb.String(), args...)
	return err
}

const eventCols = 16

// WriteEvents implements Storage
func (s *pg) WriteEvents(ctx context.Context, evs []analytics.Event) error {
	if len(evs) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString(`INSERT INTO review_events
		(event_id, seq, device_id, label, confidence, probabilities, text_preview, rating, category,
		event_timestamp, ingested_at, day_key, week_key, month_key, hour_of_day, is_weekend) VALUES `)

	args := make([]any, 0, len(evs)*eventCols)
	for i, ev := range evs {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteByte('(')
		for c := range eventCols {
			if c > 0 {
				sb.WriteByte(',')
			}
			fmt.Fprintf(&sb, "$%d", i*eventCols+c+1)
		}
		sb.WriteByte(')')

		args = append(args,
			ev.ID, int64(ev.Seq), str.SQLNull(ev.DeviceID), ev.Label, ev.Confidence, ev.Probabilities,
			ev.TextPreview, nullInt(ev.Rating), str.SQLNull(ev.Category),
			ev.EventTimestamp, ev.IngestedAt,
			ev.Features.Day, ev.Features.Week, ev.Features.Month,
			ev.Features.HourOfDay, ev.Features.IsWeekend,
		)
	}
	// replays of the same event are no-ops
	sb.WriteString(` ON CONFLICT (event_id) DO NOTHING`)
	_, err := s.q.Exec(ctx, sb.String(), args...)
	return err
}

// Counts implements Storage
func (s *pg) Counts(ctx context.Context) (int64, int64, error) {
	devices, err := store.Scalar[int64](ctx, s.q, `SELECT count(*) FROM devices`)
	if err != nil {
		return 0, 0, err
	}
	events, err := store.Scalar[int64](ctx, s.q, `SELECT count(*) FROM review_events`)
	if err != nil {
		return 0, 0, err
	}
	return devices, events, nil
}

// SyncCommitOff is a begin hook that disables synchronous commit for the transaction
func SyncCommitOff(ctx context.Context, q repokit.Queryer) error {
	_, err := q.Exec(ctx, `SET LOCAL synchronous_commit = off`)
	return err
}

func nullInt(n int) any {
	if n == 0 {
		return nil
	}
	return n
}
