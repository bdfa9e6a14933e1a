// Package ch provides a clickhouse client on top of the native clickhouse-go driver.
package ch

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

// Config configures clickhouse client
type Config struct {
	URL         string
	Role        string // reported in client info, e.g. "api"
	Tag         string // build tag reported in client info
	DialTimeout time.Duration
}

// Batch is a pending columnar insert
type Batch interface {
	Append(v ...any) error
	Send() error
	Abort() error
}

// Conn is the slice of the driver the client needs. Tests substitute it
type Conn interface {
	PrepareBatch(ctx context.Context, query string) (Batch, error)
	Ping(ctx context.Context) error
	Close() error
}

// CH is a clickhouse client
type CH struct {
	conn Conn
}

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// ErrBadTable is returned for table names that are not plain identifiers
var ErrBadTable = errors.New("ch: invalid table name")

// Open parses the DSN, dials and pings
func Open(ctx context.Context, cfg Config) (*CH, error) {
	opts, err := clickhouse.ParseDSN(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("ch: parse dsn: %w", err)
	}
	opts.ClientInfo = BuildClientInfo(cfg.Role, cfg.Tag)
	if cfg.DialTimeout > 0 {
		opts.DialTimeout = cfg.DialTimeout
	}
	conn, err := clickhouse.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("ch: open: %w", err)
	}
	c := New(native{conn})
	if err := c.Ping(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ch: ping: %w", err)
	}
	return c, nil
}

// New wraps an existing connection
func New(conn Conn) *CH { return &CH{conn: conn} }

// Insert appends rows to table in one batch. Each row lists values in table column order
func (c *CH) Insert(ctx context.Context, table string, rows [][]any) error {
	if !tableName.MatchString(table) {
		return fmt.Errorf("%w: %q", ErrBadTable, table)
	}
	if len(rows) == 0 {
		return nil
	}
	b, err := c.conn.PrepareBatch(ctx, "INSERT INTO "+table)
	if err != nil {
		return fmt.Errorf("ch: prepare %s: %w", table, err)
	}
	for i, r := range rows {
		if err := b.Append(r...); err != nil {
			_ = b.Abort()
			return fmt.Errorf("ch: append row %d to %s: %w", i, table, err)
		}
	}
	if err := b.Send(); err != nil {
		return fmt.Errorf("ch: send %s: %w", table, err)
	}
	return nil
}

// Ping checks connectivity
func (c *CH) Ping(ctx context.Context) error { return c.conn.Ping(ctx) }

// Close closes resources
func (c *CH) Close() error { return c.conn.Close() }

// native adapts driver.Conn to Conn
type native struct{ c driver.Conn }

func (n native) PrepareBatch(ctx context.Context, query string) (Batch, error) {
	return n.c.PrepareBatch(ctx, query)
}

func (n native) Ping(ctx context.Context) error { return n.c.Ping(ctx) }
func (n native) Close() error                   { return n.c.Close() }
