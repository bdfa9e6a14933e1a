// Package store opens the optional archive backends behind small seams.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"reviewsentry/internal/platform/logger"
)

// Config selects and configures the backends to open
type Config struct {
	// AppName is reported to both servers
	AppName string

	PG PGConfig
	CH CHConfig
}

// PGConfig configures the postgres pool
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int

	// ConnectRetries bounds the boot ping loop, default 20
	ConnectRetries int
	// PingTimeout bounds each boot ping, default 3s
	PingTimeout time.Duration
}

// CHConfig configures the clickhouse connection
type CHConfig struct {
	Enabled bool
	URL     string
	Role    string
}

// Store holds whichever backends were enabled; the rest stay nil
type Store struct {
	Log logger.Logger

	PG TxRunner
	CH Clickhouse
}

// Row is a single result row
type Row interface {
	Scan(dest ...any) error
}

// Rows is a result set
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
}

// CommandTag reports what a statement did
type CommandTag interface {
	String() string
	RowsAffected() int64
}

// RowQuerier is the sql surface repos write through
type RowQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

// TxRunner is a RowQuerier that can also run fn inside a transaction
type TxRunner interface {
	RowQuerier
	Tx(ctx context.Context, fn func(q RowQuerier) error) error
}

// Clickhouse takes batched columnar inserts, each row in table column order
type Clickhouse interface {
	Insert(ctx context.Context, table string, rows [][]any) error
	Close() error
}

// Pinger is any backend that can report readiness
type Pinger interface{ Ping(context.Context) error }

// Option adjusts the Store before backends open
type Option func(*Store) error

// WithLogger sets the logger backends report through
func WithLogger(l logger.Logger) Option {
	return func(s *Store) error {
		s.Log = l
		return nil
	}
}

// Open connects every enabled backend, failing on the first that cannot be reached
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s := &Store{}
	for _, o := range opts {
		if err := o(s); err != nil {
			return nil, err
		}
	}

	if cfg.PG.Enabled {
		db, err := openPG(ctx, cfg, s)
		if err != nil {
			return nil, err
		}
		s.PG = db
	}
	if cfg.CH.Enabled {
		db, err := openCH(ctx, cfg)
		if err != nil {
			if s.PG != nil {
				_ = s.Close(ctx)
			}
			return nil, err
		}
		s.CH = db
	}
	return s, nil
}

// Guard pings every open backend and joins the failures
func (s *Store) Guard(ctx context.Context) error {
	if s == nil {
		return errors.New("nil store")
	}
	var errs []error
	ping := func(name string, b any) {
		if p, ok := b.(Pinger); ok {
			if err := p.Ping(ctx); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", name, err))
			}
		}
	}
	if s.PG != nil {
		ping("pg", s.PG)
	}
	if s.CH != nil {
		ping("ch", s.CH)
	}
	return errors.Join(errs...)
}

// Close closes every open backend
func (s *Store) Close(context.Context) error {
	var errs []error
	if s.CH != nil {
		errs = append(errs, s.CH.Close())
	}
	if c, ok := s.PG.(interface{ Close() error }); ok {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}
