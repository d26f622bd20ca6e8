package alerter

import (
	"NetInsights/internal/config"
	"NetInsights/internal/insights"
	"NetInsights/internal/model"
	"strings"
	"testing"
	"time"
)

type stubReader struct {
	snap *insights.Snapshot
}

func (r *stubReader) CurrentSnapshot() *insights.Snapshot { return r.snap }

type stubNotifier struct {
	subjects []string
	bodies   []string
}

func (n *stubNotifier) Send(subject, body string) error {
	n.subjects = append(n.subjects, subject)
	n.bodies = append(n.bodies, body)
	return nil
}

func newAlerter(t *testing.T, rules []config.AlerterRule, snap *insights.Snapshot, notifier model.Notifier) *Alerter {
	t.Helper()
	a, err := NewAlerter(&config.AlerterConfig{
		Enabled:       true,
		CheckInterval: "10ms",
		Rules:         rules,
	}, &stubReader{snap: snap}, notifier)
	if err != nil {
		t.Fatalf("NewAlerter failed: %v", err)
	}
	return a
}

func TestAlerter_InvalidInterval(t *testing.T) {
	_, err := NewAlerter(&config.AlerterConfig{CheckInterval: "often"}, &stubReader{}, nil)
	if err == nil {
		t.Fatalf("Expected an error for an invalid check_interval")
	}
}

func TestAlerter_TriggersOnThreshold(t *testing.T) {
	snap := &insights.Snapshot{
		Failures: insights.FailureStats{TaskIDs: []string{"a", "b", "c"}},
		Durations: insights.DurationStats{
			Values: []time.Duration{time.Second},
			Median: 2500 * time.Millisecond,
		},
	}
	notifier := &stubNotifier{}
	a := newAlerter(t, []config.AlerterRule{
		{Name: "failures", Metric: "failure_count", Operator: ">", Threshold: 2},
		{Name: "slow median", Metric: "median_duration_ms", Operator: ">=", Threshold: 2000},
		{Name: "bytes", Metric: "total_bytes", Operator: ">", Threshold: 1}, // not triggered
	}, snap, notifier)

	a.evaluate()

	if len(notifier.subjects) != 1 {
		t.Fatalf("Expected one consolidated notification, got %d", len(notifier.subjects))
	}
	if !strings.Contains(notifier.subjects[0], "2 Triggered") {
		t.Errorf("Expected 2 triggered rules in the subject, got %q", notifier.subjects[0])
	}
	body := notifier.bodies[0]
	if !strings.Contains(body, "failures") || !strings.Contains(body, "slow median") {
		t.Errorf("Expected both rule names in the body, got %q", body)
	}
	if strings.Contains(body, ">bytes<") {
		t.Errorf("Untriggered rule leaked into the body: %q", body)
	}
}

func TestAlerter_NoNotificationWhenNothingTriggers(t *testing.T) {
	notifier := &stubNotifier{}
	a := newAlerter(t, []config.AlerterRule{
		{Name: "failures", Metric: "failure_count", Operator: ">", Threshold: 10},
	}, &insights.Snapshot{}, notifier)

	a.evaluate()

	if len(notifier.subjects) != 0 {
		t.Errorf("Expected no notification, got %d", len(notifier.subjects))
	}
}

func TestAlerter_UnknownMetricSkipped(t *testing.T) {
	notifier := &stubNotifier{}
	a := newAlerter(t, []config.AlerterRule{
		{Name: "bogus", Metric: "p99_jitter", Operator: ">", Threshold: 0},
	}, &insights.Snapshot{}, notifier)

	a.evaluate()

	if len(notifier.subjects) != 0 {
		t.Errorf("Expected unknown metric to be skipped, got %d notifications", len(notifier.subjects))
	}
}

func TestAlerter_StartStop(t *testing.T) {
	notifier := &stubNotifier{}
	a := newAlerter(t, nil, &insights.Snapshot{}, notifier)

	go a.Start()
	time.Sleep(30 * time.Millisecond)
	a.Stop()
}
