package insights

import (
	"NetInsights/internal/model"
	"time"
)

// TopSlowestCapacity bounds the number of entries kept in
// DurationStats.TopSlowest.
const TopSlowestCapacity = 10

// DurationStats keeps order statistics over every task duration recorded so
// far. Values is ascending-sorted and append-only for the lifetime of the
// accumulator. Min and Max are meaningful only while Count() > 0.
//
// Median is the element at index count/2 of the sorted values. For even
// counts that is the upper-middle element, not an interpolated average; the
// simple estimator is deliberate.
type DurationStats struct {
	Values     []time.Duration          `json:"values"`
	Median     time.Duration            `json:"median"`
	Min        time.Duration            `json:"min"`
	Max        time.Duration            `json:"max"`
	TopSlowest map[string]time.Duration `json:"top_slowest"`
}

// Count returns the number of recorded durations.
func (d *DurationStats) Count() int { return len(d.Values) }

// RedirectStats accumulates redirect activity across tasks. TaskIDs holds one
// entry per task that had at least one redirect, in order of first
// occurrence. TimeLost sums the duration of every transaction that answered
// with status 302; other redirect-class statuses do not contribute.
type RedirectStats struct {
	Count    int64         `json:"count"`
	TimeLost time.Duration `json:"time_lost"`
	TaskIDs  []string      `json:"task_ids"`
}

// FailureStats lists the tasks whose completion event carried an error, in
// arrival order.
type FailureStats struct {
	TaskIDs []string `json:"task_ids"`
}

// Count returns the number of failed tasks.
func (f *FailureStats) Count() int { return len(f.TaskIDs) }

// Snapshot is an immutable point-in-time copy of all aggregated statistics.
// It shares no memory with the working accumulator and is safe to read from
// any goroutine while ingestion continues.
type Snapshot struct {
	TransferSize model.TransferSizeInfo `json:"transfer_size"`
	Durations    DurationStats          `json:"durations"`
	Redirects    RedirectStats          `json:"redirects"`
	Failures     FailureStats           `json:"failures"`
}
