package analytics

import "time"

// registry holds issued device identities. Guarded by Engine.mu
type registry struct {
	byID map[string]*Device
}

func newRegistry() *registry {
	return &registry{byID: make(map[string]*Device)}
}

func (r *registry) has(id string) bool {
	_, ok := r.byID[id]
	return ok
}

func (r *registry) register(id string, now time.Time) Device {
	d := &Device{ID: id, CreatedAt: now, LastSeen: now}
	r.byID[id] = d
	return *d
}

// touch bumps the lifetime counter and moves last_seen forward, never back.
// Unknown ids are a no-op
func (r *registry) touch(id string, at time.Time) bool {
	d, ok := r.byID[id]
	if !ok {
		return false
	}
	d.TotalEvents++
	if at.After(d.LastSeen) {
		d.LastSeen = at
	}
	return true
}

func (r *registry) get(id string) (Device, bool) {
	d, ok := r.byID[id]
	if !ok {
		return Device{}, false
	}
	return *d, true
}

func (r *registry) len() int { return len(r.byID) }

// mostActive picks the highest lifetime count; ties go to the smallest id
func (r *registry) mostActive() *ActiveDevice {
	var best *Device
	for _, d := range r.byID {
		if d.TotalEvents == 0 {
			continue
		}
		if best == nil || d.TotalEvents > best.TotalEvents ||
			(d.TotalEvents == best.TotalEvents && d.ID < best.ID) {
			best = d
		}
	}
	if best == nil {
		return nil
	}
	return &ActiveDevice{DeviceID: best.ID, TotalEvents: best.TotalEvents}
}
