// Package buckets derives calendar bucket keys (day, ISO week, month) from event timestamps.
package buckets

import (
	"fmt"
	"time"
)

// Key layouts. All keys are zero padded so lexical order matches calendar order
const (
	DayLayout   = "2006-01-02"
	MonthLayout = "2006-01"
)

// Keys holds the three bucket keys derived from one timestamp
type Keys struct {
	Day   string `json:"day_key"`
	Week  string `json:"week_key"`
	Month string `json:"month_key"`
}

// For derives the bucket keys for t, evaluated in UTC
func For(t time.Time) Keys {
	t = t.UTC()
	return Keys{
		Day:   Day(t),
		Week:  Week(t),
		Month: Month(t),
	}
}

// Day returns the calendar date key, e.g. 2024-01-31
func Day(t time.Time) string { return t.UTC().Format(DayLayout) }

// Week returns the ISO year-week key, e.g. 2024-W05
// the ISO year can differ from the calendar year around new year
func Week(t time.Time) string {
	y, w := t.UTC().ISOWeek()
	return fmt.Sprintf("%04d-W%02d", y, w)
}

// Month returns the calendar month key, e.g. 2024-01
func Month(t time.Time) string { return t.UTC().Format(MonthLayout) }

// HourOfDay returns 0..23 in UTC
func HourOfDay(t time.Time) int { return t.UTC().Hour() }

// IsWeekend reports whether t falls on Saturday or Sunday in UTC
func IsWeekend(t time.Time) bool {
	switch t.UTC().Weekday() {
	case time.Saturday, time.Sunday:
		return true
	default:
		return false
	}
}

// ISOWeekday maps time.Weekday to 1 (Monday) .. 7 (Sunday)
func ISOWeekday(d time.Weekday) int {
	if d == time.Sunday {
		return 7
	}
	return int(d)
}

// Counters is a key -> count map for one granularity
type Counters map[string]int64

// Total sums every bucket
func (c Counters) Total() int64 {
	var n int64
	for _, v := range c {
		n += v
	}
	return n
}

// Clone returns an independent copy
func (c Counters) Clone() Counters {
	out := make(Counters, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// Set groups day, week and month counters that always move together
type Set struct {
	Day   Counters `json:"day"`
	Week  Counters `json:"week"`
	Month Counters `json:"month"`
}

// NewSet returns an empty Set
func NewSet() Set {
	return Set{Day: Counters{}, Week: Counters{}, Month: Counters{}}
}

// Add moves every granularity by delta for k
// buckets that reach zero are removed so snapshots never carry empty keys
func (s Set) Add(k Keys, delta int64) {
	bump(s.Day, k.Day, delta)
	bump(s.Week, k.Week, delta)
	bump(s.Month, k.Month, delta)
}

// Count returns the (day, week, month) counts for k
func (s Set) Count(k Keys) (day, week, month int64) {
	return s.Day[k.Day], s.Week[k.Week], s.Month[k.Month]
}

// Clone returns a deep copy
func (s Set) Clone() Set {
	return Set{Day: s.Day.Clone(), Week: s.Week.Clone(), Month: s.Month.Clone()}
}

func bump(c Counters, key string, delta int64) {
	n := c[key] + delta
	if n <= 0 {
		delete(c, key)
		return
	}
	c[key] = n
}
