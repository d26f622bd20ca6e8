package insights

import (
	"sort"
	"time"
)

// Insert records one task duration. The value is placed at the lower bound of
// its position in the ascending Values slice (binary search, O(n) shift),
// after which Median, Min and Max are recomputed. The task is also entered
// into TopSlowest; when that map grows past TopSlowestCapacity the entry with
// the smallest duration is evicted, so the map retains the slowest tasks
// observed so far.
//
// Negative durations are not rejected: they sort below every valid value and
// skew the statistics, but never cause a failure. The feed is trusted to
// deliver sane measurements.
func (d *DurationStats) Insert(taskID string, dur time.Duration) {
	i := sort.Search(len(d.Values), func(i int) bool { return d.Values[i] >= dur })
	d.Values = append(d.Values, 0)
	copy(d.Values[i+1:], d.Values[i:])
	d.Values[i] = dur

	d.Median = d.Values[len(d.Values)/2]
	if len(d.Values) == 1 {
		d.Min, d.Max = dur, dur
	} else {
		if dur < d.Min {
			d.Min = dur
		}
		if dur > d.Max {
			d.Max = dur
		}
	}

	if d.TopSlowest == nil {
		d.TopSlowest = make(map[string]time.Duration, TopSlowestCapacity+1)
	}
	d.TopSlowest[taskID] = dur
	if len(d.TopSlowest) > TopSlowestCapacity {
		d.evictFastest()
	}
}

// evictFastest removes the entry with the smallest duration, ties broken by
// whichever is found first.
func (d *DurationStats) evictFastest() {
	first := true
	var evictID string
	var evictDur time.Duration
	for id, v := range d.TopSlowest {
		if first || v < evictDur {
			evictID, evictDur = id, v
			first = false
		}
	}
	delete(d.TopSlowest, evictID)
}
