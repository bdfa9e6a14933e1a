package pg

import (
	"context"
	"strings"

	"reviewsentry/internal/platform/logger"

	"github.com/rs/zerolog"
)

// QueryEvent describes one finished statement
type QueryEvent struct {
	SQL     string
	NArgs   int
	Elapsed int64 // microseconds
	Err     error
	Slow    bool
	InTx    bool
	Verb    string
}

// QueryTracer receives every statement the store runs
type QueryTracer interface {
	OnQuery(ctx context.Context, ev QueryEvent)
}

// Tracer logs statements at debug, slow ones at warn
// the level is pinned so SQL logging works regardless of the root level
func Tracer(root logger.Logger) QueryTracer {
	return zlTracer{log: root.Level(zerolog.DebugLevel).With().Str("component", "pg").Logger()}
}

type zlTracer struct{ log logger.Logger }

// OnQuery never logs argument values; archive inserts carry review text
func (z zlTracer) OnQuery(_ context.Context, ev QueryEvent) {
	evt := z.log.Debug()
	if ev.Slow {
		evt = z.log.Warn()
	}
	evt.Float64("elapsed_ms", float64(ev.Elapsed)/1000).
		Bool("slow", ev.Slow).
		Bool("tx", ev.InTx).
		Int("args", ev.NArgs).
		Str("sql", Compact(ev.SQL)).
		Err(ev.Err).
		Msg("pg query")
}

// Compact folds runs of whitespace into single spaces and trims the ends
func Compact(sql string) string { return strings.Join(strings.Fields(sql), " ") }

// Verb returns the leading keyword of a statement in upper case
func Verb(sql string) string {
	f := strings.Fields(sql)
	if len(f) == 0 {
		return "UNKNOWN"
	}
	return strings.ToUpper(f[0])
}
