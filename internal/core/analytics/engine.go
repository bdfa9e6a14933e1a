package analytics

import (
	"strings"
	"sync"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"

	"reviewsentry/internal/core/buckets"
)

const (
	// DefaultPreviewRunes bounds the stored text preview
	DefaultPreviewRunes = 100

	// MaxDeviceIDLen bounds accepted device ids; longer values are treated as absent
	MaxDeviceIDLen = 128
)

// Options configures an Engine. The zero value is usable
type Options struct {
	// MaxEvents caps the retained log; zero keeps everything
	MaxEvents int

	// PreviewRunes bounds TextPreview; zero means DefaultPreviewRunes
	PreviewRunes int

	Clock       func() time.Time
	NewDeviceID func() string
	NewEventID  func() string

	Sinks []Sink
}

// Engine is the aggregation engine. Safe for concurrent use
type Engine struct {
	mu      sync.RWMutex
	devices *registry
	index   buckets.Set
	log     *eventLog

	maxEvents    int
	previewRunes int
	clock        func() time.Time
	newDeviceID  func() string
	newEventID   func() string
	sinks        []Sink
}

// New returns an empty Engine
func New(opt Options) *Engine {
	e := &Engine{
		devices:      newRegistry(),
		index:        buckets.NewSet(),
		log:          newEventLog(),
		maxEvents:    opt.MaxEvents,
		previewRunes: opt.PreviewRunes,
		clock:        opt.Clock,
		newDeviceID:  opt.NewDeviceID,
		newEventID:   opt.NewEventID,
		sinks:        append([]Sink(nil), opt.Sinks...),
	}
	if e.maxEvents < 0 {
		e.maxEvents = 0
	}
	if e.previewRunes <= 0 {
		e.previewRunes = DefaultPreviewRunes
	}
	if e.clock == nil {
		e.clock = time.Now
	}
	if e.newDeviceID == nil {
		e.newDeviceID = uuid.NewString
	}
	if e.newEventID == nil {
		e.newEventID = func() string { return uuid.Must(uuid.NewV7()).String() }
	}
	return e
}

func (e *Engine) now() time.Time { return e.clock().UTC() }

// Register issues a new device id
func (e *Engine) Register() Device {
	e.mu.Lock()
	id := e.newDeviceID()
	for e.devices.has(id) {
		id = e.newDeviceID()
	}
	d := e.devices.register(id, e.now())
	e.mu.Unlock()

	for _, s := range e.sinks {
		s.DeviceRegistered(d)
	}
	return d
}

// Device returns a registry entry
func (e *Engine) Device(id string) (Device, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.devices.get(id)
}

// Ingest records one classification outcome. The log append, both indices and the
// registry touch commit together under the write lock, so readers observe all or none.
// The returned event carries the features computed against state prior to this event.
func (e *Engine) Ingest(in IngestInput) (Event, error) {
	if in.Label == "" {
		return Event{}, ErrInvalidEvent
	}

	now := e.now()
	ts := in.Timestamp.UTC()
	if in.Timestamp.IsZero() {
		ts = now
	}
	keys := buckets.For(ts)
	deviceID := NormalizeDeviceID(in.DeviceID)

	ev := Event{
		ID:             e.newEventID(),
		TextPreview:    Preview(in.Text, e.previewRunes),
		Label:          in.Label,
		Confidence:     in.Confidence,
		DeviceID:       deviceID,
		Rating:         in.Rating,
		Category:       strings.TrimSpace(in.Category),
		EventTimestamp: ts,
		IngestedAt:     now,
		Features: Features{
			Keys:      keys,
			HourOfDay: buckets.HourOfDay(ts),
			IsWeekend: buckets.IsWeekend(ts),
		},
	}
	if in.Probabilities != nil {
		ev.Probabilities = append([]float64(nil), in.Probabilities...)
	}

	var evicted int
	e.mu.Lock()
	if di := e.log.device(deviceID); deviceID != "" && di != nil {
		ev.Features.DeviceToday, ev.Features.DeviceThisWeek, ev.Features.DeviceThisMonth = di.counts.Count(keys)
		ev.Features.DevicePriorEvents = int64(len(di.seqs))
	}
	ev = e.log.append(ev)
	e.index.Add(keys, 1)
	if deviceID != "" {
		e.devices.touch(deviceID, ts)
	}
	for e.maxEvents > 0 && e.log.len() > e.maxEvents {
		old, ok := e.log.evictOldest()
		if !ok {
			break
		}
		e.index.Add(old.Features.Keys, -1)
		evicted++
	}
	e.mu.Unlock()

	out := ev.clone()
	for _, s := range e.sinks {
		s.EventIngested(out.clone())
		if es, ok := s.(EvictionSink); ok && evicted > 0 {
			es.EventsEvicted(evicted)
		}
	}
	return out, nil
}

// EvictionSink is an optional Sink extension told how many events retention dropped
type EvictionSink interface {
	EventsEvicted(n int)
}

// Len returns the number of retained events
func (e *Engine) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.log.len()
}

// Buckets returns a copy of the global time bucket index
func (e *Engine) Buckets() buckets.Set {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.index.Clone()
}

// NormalizeDeviceID trims s and returns "" for values that cannot be an issued id
func NormalizeDeviceID(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > MaxDeviceIDLen || !utf8.ValidString(s) {
		return ""
	}
	for _, r := range s {
		if !unicode.IsPrint(r) || unicode.IsSpace(r) {
			return ""
		}
	}
	return s
}

// Preview trims text and cuts it to n runes, marking the cut with "..."
func Preview(text string, n int) string {
	text = strings.TrimSpace(text)
	if n <= 0 || utf8.RuneCountInString(text) <= n {
		return text
	}
	i, count := 0, 0
	for i = range text {
		if count == n {
			break
		}
		count++
	}
	return strings.TrimRightFunc(text[:i], unicode.IsSpace) + "..."
}
