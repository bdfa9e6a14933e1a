package analytics

import (
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"
)

type fixedClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fixedClock) Set(t time.Time) {
	c.mu.Lock()
	c.t = t
	c.mu.Unlock()
}

func seqIDs(prefix string) func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("%s-%03d", prefix, n)
	}
}

func newTestEngine(t *testing.T, now time.Time, maxEvents int) (*Engine, *fixedClock) {
	t.Helper()
	clk := &fixedClock{t: now}
	e := New(Options{
		MaxEvents:   maxEvents,
		Clock:       clk.Now,
		NewDeviceID: seqIDs("dev"),
		NewEventID:  seqIDs("evt"),
	})
	return e, clk
}

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return ts
}

func mustIngest(t *testing.T, e *Engine, in IngestInput) Event {
	t.Helper()
	if in.Label == "" {
		in.Label = LabelHuman
	}
	if in.Text == "" {
		in.Text = "a perfectly ordinary review"
	}
	ev, err := e.Ingest(in)
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	return ev
}

func assertBucketSums(t *testing.T, e *Engine, want int64) {
	t.Helper()
	s := e.Buckets()
	if d, w, m := s.Day.Total(), s.Week.Total(), s.Month.Total(); d != want || w != want || m != want {
		t.Fatalf("bucket sums day=%d week=%d month=%d, want all %d", d, w, m, want)
	}
}

func TestRegister_FreshDevice(t *testing.T) {
	t.Parallel()
	now := mustTime(t, "2024-03-01T12:00:00Z")
	e, _ := newTestEngine(t, now, 0)

	d := e.Register()
	if d.ID != "dev-001" {
		t.Fatalf("id = %q", d.ID)
	}
	if !d.CreatedAt.Equal(now) || !d.LastSeen.Equal(now) || d.TotalEvents != 0 {
		t.Fatalf("unexpected device %+v", d)
	}
	if got, ok := e.Device(d.ID); !ok || got != d {
		t.Fatalf("Device lookup = %+v, %v", got, ok)
	}
}

func TestRegister_SkipsCollisions(t *testing.T) {
	t.Parallel()
	ids := []string{"same", "same", "other"}
	i := 0
	e := New(Options{NewDeviceID: func() string { id := ids[i]; i++; return id }})

	a := e.Register()
	b := e.Register()
	if a.ID != "same" || b.ID != "other" {
		t.Fatalf("got %q then %q", a.ID, b.ID)
	}
}

func TestIngest_RejectsMissingLabel(t *testing.T) {
	t.Parallel()
	e, _ := newTestEngine(t, time.Now(), 0)
	if _, err := e.Ingest(IngestInput{Text: "something"}); err != ErrInvalidEvent {
		t.Fatalf("err = %v", err)
	}
	if e.Len() != 0 {
		t.Fatalf("partial apply: len=%d", e.Len())
	}
	assertBucketSums(t, e, 0)
}

func TestIngest_FeaturesArePriorOnly(t *testing.T) {
	t.Parallel()
	e, _ := newTestEngine(t, mustTime(t, "2024-01-03T00:00:00Z"), 0)
	d := e.Register()

	first := mustIngest(t, e, IngestInput{DeviceID: d.ID, Timestamp: mustTime(t, "2024-01-01T10:00:00Z")})
	if f := first.Features; f.DeviceToday != 0 || f.DeviceThisWeek != 0 || f.DeviceThisMonth != 0 {
		t.Fatalf("first event should see no prior activity: %+v", f)
	}

	second := mustIngest(t, e, IngestInput{DeviceID: d.ID, Timestamp: mustTime(t, "2024-01-01T11:00:00Z")})
	if f := second.Features; f.DeviceToday != 1 || f.DeviceThisWeek != 1 || f.DeviceThisMonth != 1 || f.DevicePriorEvents != 1 {
		t.Fatalf("second event features: %+v", f)
	}

	// next day, same ISO week and month
	third := mustIngest(t, e, IngestInput{DeviceID: d.ID, Timestamp: mustTime(t, "2024-01-02T09:00:00Z")})
	if f := third.Features; f.DeviceToday != 0 || f.DeviceThisWeek != 2 || f.DeviceThisMonth != 2 {
		t.Fatalf("third event features: %+v", f)
	}
	if third.Features.Day != "2024-01-02" || third.Features.Week != "2024-W01" || third.Features.Month != "2024-01" {
		t.Fatalf("keys: %+v", third.Features.Keys)
	}
	if third.Features.HourOfDay != 9 || third.Features.IsWeekend {
		t.Fatalf("scalar features: %+v", third.Features)
	}
}

func TestIngest_StoredFeaturesAreNotRecomputed(t *testing.T) {
	t.Parallel()
	e, _ := newTestEngine(t, mustTime(t, "2024-01-05T00:00:00Z"), 0)
	d := e.Register()
	ts := mustTime(t, "2024-01-01T10:00:00Z")

	mustIngest(t, e, IngestInput{DeviceID: d.ID, Timestamp: ts})
	mustIngest(t, e, IngestInput{DeviceID: d.ID, Timestamp: ts})

	st, err := e.DeviceStats(d.ID)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if got := st.RecentActivity[0].Features.DeviceToday; got != 0 {
		t.Fatalf("first event snapshot changed to %d", got)
	}
	if got := st.RecentActivity[1].Features.DeviceToday; got != 1 {
		t.Fatalf("second event snapshot = %d", got)
	}
}

func TestIngest_UnknownDeviceNeverFails(t *testing.T) {
	t.Parallel()
	e, _ := newTestEngine(t, time.Now(), 0)

	ev := mustIngest(t, e, IngestInput{DeviceID: "unknown-xyz"})
	if ev.DeviceID != "unknown-xyz" {
		t.Fatalf("device id not kept: %q", ev.DeviceID)
	}
	if _, err := e.DeviceStats("unknown-xyz"); err != ErrDeviceNotFound {
		t.Fatalf("err = %v", err)
	}
	if e.Summary().UniqueDevices != 0 {
		t.Fatalf("unregistered device leaked into registry")
	}

	// a second event still sees the first through the per-device index
	again := mustIngest(t, e, IngestInput{DeviceID: "unknown-xyz"})
	if again.Features.DeviceToday != 1 {
		t.Fatalf("unregistered device counts: %+v", again.Features)
	}
}

func TestIngest_MalformedDeviceTreatedAsAbsent(t *testing.T) {
	t.Parallel()
	e, _ := newTestEngine(t, time.Now(), 0)

	for _, id := range []string{"   ", "bad\x00id", "has space", strings.Repeat("x", MaxDeviceIDLen+1)} {
		ev := mustIngest(t, e, IngestInput{DeviceID: id})
		if ev.DeviceID != "" {
			t.Fatalf("%q kept as %q", id, ev.DeviceID)
		}
	}
	if got := NormalizeDeviceID("  abc-123 "); got != "abc-123" {
		t.Fatalf("trim: %q", got)
	}
}

func TestIngest_TouchesRegisteredDevice(t *testing.T) {
	t.Parallel()
	now := mustTime(t, "2024-06-01T00:00:00Z")
	e, _ := newTestEngine(t, now, 0)
	d := e.Register()

	later := now.Add(2 * time.Hour)
	earlier := now.Add(-48 * time.Hour)
	mustIngest(t, e, IngestInput{DeviceID: d.ID, Timestamp: later})
	mustIngest(t, e, IngestInput{DeviceID: d.ID, Timestamp: earlier})

	got, _ := e.Device(d.ID)
	if got.TotalEvents != 2 {
		t.Fatalf("total = %d", got.TotalEvents)
	}
	if !got.LastSeen.Equal(later) {
		t.Fatalf("last_seen moved backwards: %v", got.LastSeen)
	}
}

func TestIngest_DefaultsAndPreview(t *testing.T) {
	t.Parallel()
	now := mustTime(t, "2024-06-01T08:30:00Z")
	e, _ := newTestEngine(t, now, 0)

	long := strings.Repeat("é", DefaultPreviewRunes+20)
	probs := []float64{0.2, 0.8}
	ev := mustIngest(t, e, IngestInput{Text: "  " + long, Probabilities: probs, Category: " Books "})

	if !ev.EventTimestamp.Equal(now) || !ev.IngestedAt.Equal(now) {
		t.Fatalf("timestamps: %v %v", ev.EventTimestamp, ev.IngestedAt)
	}
	if want := strings.Repeat("é", DefaultPreviewRunes) + "..."; ev.TextPreview != want {
		t.Fatalf("preview = %q", ev.TextPreview)
	}
	if ev.Category != "Books" || ev.Seq != 1 || ev.ID != "evt-001" {
		t.Fatalf("event = %+v", ev)
	}

	probs[0] = 9
	ev.Probabilities[1] = 9
	st, _ := e.TemporalPatterns()
	if st.TotalReviews != 1 {
		t.Fatalf("total = %d", st.TotalReviews)
	}
	e.log.each(func(stored Event) bool {
		if stored.Probabilities[0] != 0.2 || stored.Probabilities[1] != 0.8 {
			t.Fatalf("stored event mutated: %v", stored.Probabilities)
		}
		return true
	})
}

func TestPreview(t *testing.T) {
	t.Parallel()
	cases := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"exactly ten", 11, "exactly ten"},
		{"hello world again", 6, "hello..."},
		{"  padded  ", 100, "padded"},
		{"anything", 0, "anything"},
	}
	for _, c := range cases {
		if got := Preview(c.in, c.n); got != c.want {
			t.Fatalf("Preview(%q, %d) = %q, want %q", c.in, c.n, got, c.want)
		}
	}
}

func TestRetention_EvictsOldestAndKeepsCountersAligned(t *testing.T) {
	t.Parallel()
	base := mustTime(t, "2024-02-01T00:00:00Z")
	e, _ := newTestEngine(t, base, 3)
	d := e.Register()

	for i := range 5 {
		mustIngest(t, e, IngestInput{DeviceID: d.ID, Timestamp: base.Add(time.Duration(i) * 24 * time.Hour)})
	}
	if e.Len() != 3 {
		t.Fatalf("len = %d", e.Len())
	}
	assertBucketSums(t, e, 3)

	s := e.Buckets()
	if _, ok := s.Day["2024-02-01"]; ok {
		t.Fatalf("evicted day bucket still present: %v", s.Day)
	}

	st, err := e.DeviceStats(d.ID)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if st.TotalEvents != 5 {
		t.Fatalf("lifetime counter = %d, want 5", st.TotalEvents)
	}
	if len(st.RecentActivity) != 3 || st.RecentActivity[0].Seq != 3 {
		t.Fatalf("recent = %+v", st.RecentActivity)
	}
	if st.ActiveDays != 3 {
		t.Fatalf("active days = %d", st.ActiveDays)
	}
}

type recordingSink struct {
	mu      sync.Mutex
	devices []Device
	events  []Event
	evicted int
}

func (s *recordingSink) DeviceRegistered(d Device) {
	s.mu.Lock()
	s.devices = append(s.devices, d)
	s.mu.Unlock()
}

func (s *recordingSink) EventIngested(ev Event) {
	s.mu.Lock()
	s.events = append(s.events, ev)
	s.mu.Unlock()
}

func (s *recordingSink) EventsEvicted(n int) {
	s.mu.Lock()
	s.evicted += n
	s.mu.Unlock()
}

func TestSinks_SeeCommittedWrites(t *testing.T) {
	t.Parallel()
	sink := &recordingSink{}
	e := New(Options{MaxEvents: 1, Sinks: []Sink{sink}})

	d := e.Register()
	mustIngest(t, e, IngestInput{DeviceID: d.ID})
	mustIngest(t, e, IngestInput{DeviceID: d.ID})

	if len(sink.devices) != 1 || sink.devices[0].ID != d.ID {
		t.Fatalf("devices = %+v", sink.devices)
	}
	if len(sink.events) != 2 || sink.events[1].Seq != 2 {
		t.Fatalf("events = %+v", sink.events)
	}
	if sink.evicted != 1 {
		t.Fatalf("evicted = %d", sink.evicted)
	}
}

func TestIngest_ConcurrentWritersAndReaders(t *testing.T) {
	t.Parallel()
	e := New(Options{})
	devs := make([]Device, 4)
	for i := range devs {
		devs[i] = e.Register()
	}

	const perWriter = 200
	var wg sync.WaitGroup
	stop := make(chan struct{})

	// readers check the counters never run ahead of the log
	var readers sync.WaitGroup
	for range 4 {
		readers.Add(1)
		go func() {
			defer readers.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				s := e.Summary()
				if s.DailyCounts.Total() != s.TotalReviews || s.MonthlyCounts.Total() != s.TotalReviews {
					t.Errorf("torn read: total=%d day=%d month=%d", s.TotalReviews, s.DailyCounts.Total(), s.MonthlyCounts.Total())
					return
				}
			}
		}()
	}

	for i := range devs {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			for range perWriter {
				if _, err := e.Ingest(IngestInput{Text: "concurrent review", Label: LabelMachine, DeviceID: id}); err != nil {
					t.Errorf("ingest: %v", err)
					return
				}
			}
		}(devs[i].ID)
	}
	wg.Wait()
	close(stop)
	readers.Wait()

	want := int64(len(devs) * perWriter)
	assertBucketSums(t, e, want)
	for _, d := range devs {
		st, err := e.DeviceStats(d.ID)
		if err != nil {
			t.Fatalf("stats: %v", err)
		}
		if st.TotalEvents != perWriter {
			t.Fatalf("%s total = %d", d.ID, st.TotalEvents)
		}
	}

	// seqs are unique and dense
	seen := make(map[uint64]bool)
	e.log.each(func(ev Event) bool {
		if seen[ev.Seq] {
			t.Fatalf("duplicate seq %d", ev.Seq)
		}
		seen[ev.Seq] = true
		return true
	})
	if int64(len(seen)) != want {
		t.Fatalf("seqs = %d", len(seen))
	}
}
