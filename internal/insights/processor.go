package insights

import (
	"NetInsights/internal/model"
	"time"
)

// Accumulator is the single mutable working state of the aggregator. It is
// owned exclusively by the aggregator's writer goroutine; everything else
// reads the published Snapshot instead.
type Accumulator struct {
	TransferSize model.TransferSizeInfo
	Durations    DurationStats
	Redirects    RedirectStats
	Failures     FailureStats
}

// Apply folds one completed-task event into the accumulator and reports
// whether any statistic changed. Events without a metrics payload are dropped
// without touching any field, including the failure list.
func (a *Accumulator) Apply(ev *model.TaskEvent) bool {
	m := ev.Metrics
	if m == nil {
		return false
	}

	a.TransferSize = a.TransferSize.Merge(m.TransferSize)
	a.Durations.Insert(ev.TaskID, m.Duration)

	if m.RedirectCount > 0 {
		a.Redirects.Count += m.RedirectCount
		a.Redirects.TaskIDs = append(a.Redirects.TaskIDs, ev.TaskID)
		for _, tx := range m.Transactions {
			if tx.StatusCode == 302 {
				a.Redirects.TimeLost += tx.Duration
			}
		}
	}

	if ev.Error != "" {
		a.Failures.TaskIDs = append(a.Failures.TaskIDs, ev.TaskID)
	}
	return true
}

// Reset returns the accumulator to its zero value.
func (a *Accumulator) Reset() {
	*a = Accumulator{}
}

// Snapshot deep-copies the accumulator's current content. The copy shares no
// slices or maps with the working state.
func (a *Accumulator) Snapshot() *Snapshot {
	s := &Snapshot{
		TransferSize: a.TransferSize,
		Durations: DurationStats{
			Values: append([]time.Duration(nil), a.Durations.Values...),
			Median: a.Durations.Median,
			Min:    a.Durations.Min,
			Max:    a.Durations.Max,
		},
		Redirects: RedirectStats{
			Count:    a.Redirects.Count,
			TimeLost: a.Redirects.TimeLost,
			TaskIDs:  append([]string(nil), a.Redirects.TaskIDs...),
		},
		Failures: FailureStats{
			TaskIDs: append([]string(nil), a.Failures.TaskIDs...),
		},
	}
	if a.Durations.TopSlowest != nil {
		s.Durations.TopSlowest = make(map[string]time.Duration, len(a.Durations.TopSlowest))
		for id, v := range a.Durations.TopSlowest {
			s.Durations.TopSlowest[id] = v
		}
	}
	return s
}
