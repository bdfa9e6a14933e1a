package analytics

import (
	"math"
	"sort"
	"time"

	"reviewsentry/internal/core/buckets"
)

const (
	// RecentActivityLimit bounds DeviceStats.RecentActivity
	RecentActivityLimit = 10

	dayWindow  = 24 * time.Hour
	weekWindow = 7 * 24 * time.Hour
)

// Summary reports global totals. Reads only
func (e *Engine) Summary() Summary {
	e.mu.RLock()
	defer e.mu.RUnlock()

	today := buckets.Day(e.now())
	return Summary{
		TotalReviews:     int64(e.log.len()),
		UniqueDevices:    e.devices.len(),
		ReviewsToday:     e.index.Day[today],
		DailyCounts:      e.index.Day.Clone(),
		WeeklyCounts:     e.index.Week.Clone(),
		MonthlyCounts:    e.index.Month.Clone(),
		MostActiveDevice: e.devices.mostActive(),
	}
}

// DeviceStats reports posting patterns for a registered device
func (e *Engine) DeviceStats(id string) (DeviceStats, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	d, ok := e.devices.get(id)
	if !ok {
		return DeviceStats{}, ErrDeviceNotFound
	}

	out := DeviceStats{
		DeviceID:       d.ID,
		TotalEvents:    d.TotalEvents,
		FirstSeen:      d.CreatedAt,
		LastSeen:       d.LastSeen,
		CommonHours:    []HourCount{},
		CommonDays:     []DayCount{},
		RecentActivity: []Event{},
	}

	di := e.log.device(id)
	if di == nil {
		return out, nil
	}

	var hours [24]int
	var days [8]int // ISO weekday index
	for _, seq := range di.seqs {
		ev, ok := e.log.at(seq)
		if !ok {
			continue
		}
		hours[ev.Features.HourOfDay]++
		days[buckets.ISOWeekday(ev.EventTimestamp.Weekday())]++
	}

	for h, n := range hours {
		if n > 0 {
			out.CommonHours = append(out.CommonHours, HourCount{Hour: h, Count: n})
		}
	}
	sort.SliceStable(out.CommonHours, func(i, j int) bool {
		return out.CommonHours[i].Count > out.CommonHours[j].Count
	})

	for wd := 1; wd <= 7; wd++ {
		if days[wd] > 0 {
			out.CommonDays = append(out.CommonDays, DayCount{Day: weekdayName(wd), Weekday: wd, Count: days[wd]})
		}
	}
	sort.SliceStable(out.CommonDays, func(i, j int) bool {
		return out.CommonDays[i].Count > out.CommonDays[j].Count
	})

	out.ActiveDays = len(di.counts.Day)
	out.AvgReviewsPerDay = round2(float64(len(di.seqs)) / float64(max(out.ActiveDays, 1)))

	start := max(len(di.seqs)-RecentActivityLimit, 0)
	for _, seq := range di.seqs[start:] {
		if ev, ok := e.log.at(seq); ok {
			out.RecentActivity = append(out.RecentActivity, ev.clone())
		}
	}
	return out, nil
}

// TemporalPatterns reports hour-of-day label mix and rolling window counts
func (e *Engine) TemporalPatterns() (TemporalPatterns, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.log.len() == 0 {
		return TemporalPatterns{}, ErrNoData
	}

	now := e.now()
	var total, fake [24]int64
	out := TemporalPatterns{
		TotalReviews: int64(e.log.len()),
		GeneratedAt:  now,
	}

	e.log.each(func(ev Event) bool {
		h := ev.Features.HourOfDay
		total[h]++
		if ev.IsMachine() {
			fake[h]++
		}
		age := now.Sub(ev.EventTimestamp)
		if age < dayWindow {
			out.Last24Hours++
		}
		if age < weekWindow {
			out.LastWeek++
		}
		return true
	})

	out.HourlyPatterns = make([]HourPattern, 0, 24)
	for h := range total {
		if total[h] == 0 {
			continue
		}
		out.HourlyPatterns = append(out.HourlyPatterns, HourPattern{
			Hour:           h,
			TotalReviews:   total[h],
			FakeReviews:    fake[h],
			FakePercentage: round2(float64(fake[h]) * 100 / float64(total[h])),
		})
	}
	return out, nil
}

func weekdayName(iso int) string {
	return time.Weekday(iso % 7).String()
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
