package store

import (
	"context"
	"errors"
	"time"

	"reviewsentry/internal/platform/metrics"
	"reviewsentry/internal/platform/store/pg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// observer times every statement into the query histogram and the optional tracer
type observer struct {
	tracer pg.QueryTracer
	slowUS int64
	inTx   bool
}

func (o observer) done(ctx context.Context, sql string, nargs int, start time.Time, err error) {
	elapsed := time.Since(start)
	verb := pg.Verb(sql)
	metrics.ObserveDBQuery(verb, elapsed, err)
	if o.tracer == nil {
		return
	}
	us := elapsed.Microseconds()
	o.tracer.OnQuery(ctx, pg.QueryEvent{
		SQL:     sql,
		NArgs:   nargs,
		Elapsed: us,
		Err:     err,
		Slow:    o.slowUS >= 0 && us >= o.slowUS,
		InTx:    o.inTx,
		Verb:    verb,
	})
}

// pgxQuerier is the part of pgxpool.Pool and pgx.Tx the adapter needs
type pgxQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// querier adapts pgx to RowQuerier for both the pool and open transactions
type querier struct {
	q   pgxQuerier
	obs observer
}

func (x querier) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	start := time.Now()
	ct, err := x.q.Exec(ctx, sql, args...)
	x.obs.done(ctx, sql, len(args), start, err)
	return tag{ct}, err
}

func (x querier) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	start := time.Now()
	rs, err := x.q.Query(ctx, sql, args...)
	x.obs.done(ctx, sql, len(args), start, err)
	if err != nil {
		return nil, err
	}
	return rows{r: rs}, nil
}

// QueryRow reports once Scan has run so scan errors are observed
func (x querier) QueryRow(ctx context.Context, sql string, args ...any) Row {
	start := time.Now()
	return row{r: x.q.QueryRow(ctx, sql, args...), after: func(err error) {
		x.obs.done(ctx, sql, len(args), start, err)
	}}
}

// pgAdapter is the TxRunner backed by a pgx pool
type pgAdapter struct {
	querier
	p *pg.PG
}

func newPGAdapter(p *pg.PG) *pgAdapter {
	obs := observer{tracer: p.Tracer, slowUS: int64(p.SlowMs) * 1000}
	return &pgAdapter{querier: querier{q: p.Pool, obs: obs}, p: p}
}

func (a *pgAdapter) Ping(ctx context.Context) error {
	if a == nil || a.p == nil {
		return errors.New("pg: nil adapter")
	}
	var one int
	return a.QueryRow(ctx, "SELECT 1").Scan(&one)
}

func (a *pgAdapter) Close() error { a.p.Close(); return nil }

func (a *pgAdapter) Tx(ctx context.Context, fn func(q RowQuerier) error) error {
	tx, err := a.p.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	obs := a.obs
	obs.inTx = true
	return runTx(ctx, tx, querier{q: tx, obs: obs}, fn)
}

// runTx commits when fn succeeds and rolls back otherwise
func runTx(ctx context.Context, tx pgx.Tx, q RowQuerier, fn func(q RowQuerier) error) error {
	if err := fn(q); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}

type row struct {
	r     pgx.Row
	after func(error)
}

func (x row) Scan(dst ...any) error {
	err := x.r.Scan(dst...)
	if x.after != nil {
		x.after(err)
	}
	return err
}

type rows struct{ r pgx.Rows }

func (x rows) Next() bool            { return x.r.Next() }
func (x rows) Scan(dst ...any) error { return x.r.Scan(dst...) }
func (x rows) Err() error            { return x.r.Err() }
func (x rows) Close()                { x.r.Close() }

type tag struct{ t pgconn.CommandTag }

func (t tag) String() string      { return t.t.String() }
func (t tag) RowsAffected() int64 { return t.t.RowsAffected() }
