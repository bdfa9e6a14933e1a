package analytics

import "reviewsentry/internal/core/buckets"

// deviceIndex tracks one device's retained events
type deviceIndex struct {
	seqs   []uint64 // ascending
	counts buckets.Set
}

// eventLog is the append-only event store plus its per-device index. Guarded by Engine.mu
//
// Seqs are contiguous: items[i].Seq == items[0].Seq + i, so a seq resolves to its slot
// in O(1) without a map. Eviction only ever drops the head, which keeps that true.
type eventLog struct {
	items    []Event
	nextSeq  uint64
	byDevice map[string]*deviceIndex
}

func newEventLog() *eventLog {
	return &eventLog{nextSeq: 1, byDevice: make(map[string]*deviceIndex)}
}

func (l *eventLog) len() int { return len(l.items) }

// device returns the index for id, or nil
func (l *eventLog) device(id string) *deviceIndex {
	return l.byDevice[id]
}

// append assigns the next seq and indexes ev under its device
func (l *eventLog) append(ev Event) Event {
	ev.Seq = l.nextSeq
	l.nextSeq++
	l.items = append(l.items, ev)

	if ev.DeviceID != "" {
		di := l.byDevice[ev.DeviceID]
		if di == nil {
			di = &deviceIndex{counts: buckets.NewSet()}
			l.byDevice[ev.DeviceID] = di
		}
		di.seqs = append(di.seqs, ev.Seq)
		di.counts.Add(ev.Features.Keys, 1)
	}
	return ev
}

// evictOldest drops the head event and unindexes it
func (l *eventLog) evictOldest() (Event, bool) {
	if len(l.items) == 0 {
		return Event{}, false
	}
	ev := l.items[0]
	l.items[0] = Event{}
	l.items = l.items[1:]

	if di := l.byDevice[ev.DeviceID]; di != nil {
		// the global head is always the device's oldest too
		di.seqs = di.seqs[1:]
		di.counts.Add(ev.Features.Keys, -1)
		if len(di.seqs) == 0 {
			delete(l.byDevice, ev.DeviceID)
		}
	}
	return ev, true
}

// at resolves a seq to its event
func (l *eventLog) at(seq uint64) (Event, bool) {
	if len(l.items) == 0 {
		return Event{}, false
	}
	first := l.items[0].Seq
	if seq < first || seq-first >= uint64(len(l.items)) {
		return Event{}, false
	}
	return l.items[seq-first], true
}

// each walks the log in insertion order until fn returns false
func (l *eventLog) each(fn func(Event) bool) {
	for i := range l.items {
		if !fn(l.items[i]) {
			return
		}
	}
}
