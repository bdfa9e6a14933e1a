// Package service implements the archive exporter, a non blocking analytics.Sink that
// flushes committed engine writes to Postgres and ClickHouse in batches.
package service

import (
	"context"
	"errors"
	"time"

	"reviewsentry/internal/core/analytics"
	"reviewsentry/internal/modkit/repokit"
	perr "reviewsentry/internal/platform/errors"
	"reviewsentry/internal/platform/logger"
	"reviewsentry/internal/platform/metrics"

	dom "reviewsentry/internal/services/archive/domain"
	arepo "reviewsentry/internal/services/archive/repo"
)

// Config controls batching
type Config struct {
	QueueSize     int
	BatchSize     int
	FlushInterval time.Duration
	FlushTimeout  time.Duration
}

func (c Config) withDefaults() Config {
	if c.QueueSize <= 0 {
		c.QueueSize = 4096
	}
	if c.BatchSize <= 0 {
		c.BatchSize = 256
	}
	if c.FlushInterval <= 0 {
		c.FlushInterval = 2 * time.Second
	}
	if c.FlushTimeout <= 0 {
		c.FlushTimeout = 10 * time.Second
	}
	return c
}

// pgRetries bounds how often a batch is replayed after a transient postgres failure
const pgRetries = 2

// Exporter queues records from the engine and writes them from Run.
// Either backend may be nil
type Exporter struct {
	db     repokit.TxRunner
	binder repokit.Binder[arepo.Storage]
	col    dom.ColumnWriter

	queue chan dom.Record
	cfg   Config
}

var _ analytics.Sink = (*Exporter)(nil)

// New constructs the exporter. db and col may be nil but not both
func New(db repokit.TxRunner, binder repokit.Binder[arepo.Storage], col dom.ColumnWriter, cfg Config) *Exporter {
	if db == nil && col == nil {
		panic("archive: no backend configured")
	}
	if db != nil && binder == nil {
		panic("archive: nil binder")
	}
	cfg = cfg.withDefaults()
	if db != nil {
		db = repokit.WithBeginHooks(db, arepo.SyncCommitOff)
	}
	return &Exporter{
		db:     db,
		binder: binder,
		col:    col,
		queue:  make(chan dom.Record, cfg.QueueSize),
		cfg:    cfg,
	}
}

// DeviceRegistered implements analytics.Sink
func (e *Exporter) DeviceRegistered(d analytics.Device) {
	e.offer(dom.Record{Kind: dom.KindDevice, Device: d})
}

// EventIngested implements analytics.Sink
func (e *Exporter) EventIngested(ev analytics.Event) {
	e.offer(dom.Record{Kind: dom.KindEvent, Event: ev})
}

// offer never blocks the engine; a full queue drops the record
func (e *Exporter) offer(r dom.Record) {
	select {
	case e.queue <- r:
		metrics.ArchiveQueued.WithLabelValues(string(r.Kind), "queued").Inc()
	default:
		metrics.ArchiveQueued.WithLabelValues(string(r.Kind), "dropped").Inc()
	}
}

// Pending reports how many records wait in the queue
func (e *Exporter) Pending() int { return len(e.queue) }

// EnsureSchema creates the Postgres tables when a relational backend is configured
func (e *Exporter) EnsureSchema(ctx context.Context) error {
	if e.db == nil {
		return nil
	}
	return repokit.WithTx(ctx, e.db, func(q repokit.Queryer) error {
		return e.binder.Bind(q).EnsureSchema(ctx)
	})
}

// Run flushes whenever a batch fills or the interval elapses. On cancellation it drains
// what is already queued with a bounded timeout and returns ctx.Err()
func (e *Exporter) Run(ctx context.Context) error {
	log := logger.Named("archive")
	ticker := time.NewTicker(e.cfg.FlushInterval)
	defer ticker.Stop()

	batch := make([]dom.Record, 0, e.cfg.BatchSize)
	flush := func(ctx context.Context) {
		if len(batch) == 0 {
			return
		}
		if err := e.Flush(ctx, batch); err != nil {
			log.Error().Err(err).Int("records", len(batch)).Msg("archive flush failed")
		}
		batch = batch[:0]
	}

	for {
		select {
		case <-ctx.Done():
			log.Info().Int("pending", e.Pending()+len(batch)).Msg("archive draining")
			for drained := false; !drained; {
				select {
				case r := <-e.queue:
					batch = append(batch, r)
				default:
					drained = true
				}
			}
			fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), e.cfg.FlushTimeout)
			for len(batch) > 0 {
				n := min(len(batch), e.cfg.BatchSize)
				if err := e.Flush(fctx, batch[:n]); err != nil {
					log.Error().Err(err).Int("records", n).Msg("archive final flush failed")
				}
				batch = batch[n:]
			}
			cancel()
			return ctx.Err()
		case r := <-e.queue:
			batch = append(batch, r)
			if len(batch) >= e.cfg.BatchSize {
				fctx, cancel := context.WithTimeout(ctx, e.cfg.FlushTimeout)
				flush(fctx)
				cancel()
			}
		case <-ticker.C:
			fctx, cancel := context.WithTimeout(ctx, e.cfg.FlushTimeout)
			flush(fctx)
			cancel()
		}
	}
}

// Flush writes one batch to every configured backend. A failing backend does not
// stop the others; the joined error is returned
func (e *Exporter) Flush(ctx context.Context, rs []dom.Record) error {
	devices, events := dom.Split(rs)
	var errs []error

	if e.db != nil {
		start := time.Now()
		var err error
		for attempt := 0; ; attempt++ {
			err = repokit.WithTx(ctx, e.db, func(q repokit.Queryer) error {
				s := e.binder.Bind(q)
				if err := s.WriteDevices(ctx, devices); err != nil {
					return err
				}
				return s.WriteEvents(ctx, events)
			})
			if attempt >= pgRetries || !perr.IsRetryable(err) {
				break
			}
		}
		metrics.ArchiveFlushDuration.WithLabelValues("pg").Observe(time.Since(start).Seconds())
		count(dom.KindDevice, len(devices), err)
		count(dom.KindEvent, len(events), err)
		if err != nil {
			errs = append(errs, perr.FromPostgres(err, "archive pg flush"))
		}
	}

	if e.col != nil && len(events) > 0 {
		start := time.Now()
		err := e.col.WriteEvents(ctx, events)
		metrics.ArchiveFlushDuration.WithLabelValues("ch").Observe(time.Since(start).Seconds())
		count(dom.KindEvent, len(events), err)
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func count(k dom.Kind, n int, err error) {
	if n == 0 {
		return
	}
	result := "written"
	if err != nil {
		result = "failed"
	}
	metrics.ArchiveQueued.WithLabelValues(string(k), result).Add(float64(n))
}
