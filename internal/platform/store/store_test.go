package store

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"reviewsentry/internal/platform/store/ch"
)

// nopTx is a TxRunner without Ping
type nopTx struct{ closed bool }

func (*nopTx) Tx(context.Context, func(RowQuerier) error) error         { return nil }
func (*nopTx) Exec(context.Context, string, ...any) (CommandTag, error) { return nil, nil }
func (*nopTx) Query(context.Context, string, ...any) (Rows, error)      { return nil, nil }
func (*nopTx) QueryRow(context.Context, string, ...any) Row             { return nil }
func (n *nopTx) Close() error                                           { n.closed = true; return nil }

type pingTx struct {
	nopTx
	err error
}

func (p *pingTx) Ping(context.Context) error { return p.err }

type fakeCH struct {
	err    error
	closed bool
}

func (*fakeCH) Insert(context.Context, string, [][]any) error { return nil }
func (f *fakeCH) Close() error                                { f.closed = true; return nil }
func (f *fakeCH) Ping(context.Context) error                  { return f.err }

func TestOpen_NoBackends(t *testing.T) {
	t.Parallel()
	var zl zerolog.Logger
	s, err := Open(context.Background(), Config{AppName: "reviewsentry-api"}, WithLogger(zl))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if s.PG != nil || s.CH != nil {
		t.Fatalf("backends should stay nil: %+v", s)
	}
	if err := s.Close(context.Background()); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestOpen_BadURLs(t *testing.T) {
	t.Parallel()
	for name, cfg := range map[string]Config{
		"pg": {PG: PGConfig{Enabled: true, URL: "://bad"}},
		"ch": {CH: CHConfig{Enabled: true, URL: "://bad"}},
	} {
		if s, err := Open(context.Background(), cfg); err == nil || s != nil {
			t.Fatalf("%s: store=%v err=%v", name, s, err)
		}
	}
}

func TestOpen_OptionError(t *testing.T) {
	t.Parallel()
	bad := func(*Store) error { return errors.New("bad option") }
	if _, err := Open(context.Background(), Config{}, bad); err == nil {
		t.Fatalf("expected option error")
	}
}

func TestGuard(t *testing.T) {
	t.Parallel()
	var nilStore *Store
	if nilStore.Guard(context.Background()) == nil {
		t.Fatalf("nil store should fail")
	}

	ok := &Store{PG: &pingTx{}, CH: &fakeCH{}}
	if err := ok.Guard(context.Background()); err != nil {
		t.Fatalf("guard: %v", err)
	}

	// a PG without Ping is skipped
	if err := (&Store{PG: &nopTx{}}).Guard(context.Background()); err != nil {
		t.Fatalf("guard: %v", err)
	}

	bad := &Store{PG: &pingTx{err: errors.New("refused")}, CH: &fakeCH{err: errors.New("timeout")}}
	err := bad.Guard(context.Background())
	if err == nil || !strings.Contains(err.Error(), "pg: refused") || !strings.Contains(err.Error(), "ch: timeout") {
		t.Fatalf("err = %v", err)
	}
}

func TestClose_ClosesBoth(t *testing.T) {
	t.Parallel()
	pgx, chx := &nopTx{}, &fakeCH{}
	if err := (&Store{PG: pgx, CH: chx}).Close(context.Background()); err != nil {
		t.Fatalf("close: %v", err)
	}
	if !pgx.closed || !chx.closed {
		t.Fatalf("pg closed=%v ch closed=%v", pgx.closed, chx.closed)
	}
}

func TestClickhouseClientSatisfiesSeam(t *testing.T) {
	t.Parallel()
	var _ Clickhouse = (*ch.CH)(nil)
	var _ Pinger = (*ch.CH)(nil)
}
