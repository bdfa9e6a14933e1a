// Package pg opens the pgx pool behind the archive store.
package pg

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// idle archive connections are recycled quickly; the exporter writes in bursts
const maxConnIdle = 5 * time.Minute

// Config for Open. Tracer may be nil
type Config struct {
	URL      string
	AppName  string
	MaxConns int32
	SlowMs   int
	Tracer   QueryTracer
}

// PG is the pool plus the settings the sql adapter traces with
type PG struct {
	Pool   *pgxpool.Pool
	Tracer QueryTracer
	SlowMs int
}

var newPool = pgxpool.NewWithConfig

// Open builds the pool without waiting for the server
func Open(ctx context.Context, cfg Config) (*PG, error) {
	pc, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, err
	}
	pc.MaxConnIdleTime = maxConnIdle
	if cfg.MaxConns > 0 {
		pc.MaxConns = cfg.MaxConns
	}
	if cfg.AppName != "" {
		pc.ConnConfig.RuntimeParams["application_name"] = cfg.AppName
	}

	pool, err := newPool(ctx, pc)
	if err != nil {
		return nil, err
	}
	return &PG{Pool: pool, Tracer: cfg.Tracer, SlowMs: cfg.SlowMs}, nil
}

// Close is a no-op on a nil or poolless PG
func (p *PG) Close() {
	if p == nil || p.Pool == nil {
		return
	}
	p.Pool.Close()
}
