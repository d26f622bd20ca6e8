package alerter

import (
	"NetInsights/internal/config"
	"NetInsights/internal/insights"
	"NetInsights/internal/model"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"
)

// SnapshotReader is the read-only view of the aggregator the alerter needs.
type SnapshotReader interface {
	CurrentSnapshot() *insights.Snapshot
}

// Alerter periodically evaluates the current snapshot against the configured
// threshold rules and sends a consolidated notification when any rule
// triggers. It only ever reads published snapshots and never touches the
// aggregator's working state.
type Alerter struct {
	reader        SnapshotReader
	rules         []config.AlerterRule
	notifier      model.Notifier
	checkInterval time.Duration
	stopChan      chan struct{}
	wg            sync.WaitGroup
}

// NewAlerter creates a new Alerter instance.
func NewAlerter(cfg *config.AlerterConfig, reader SnapshotReader, notifier model.Notifier) (*Alerter, error) {
	interval, err := time.ParseDuration(cfg.CheckInterval)
	if err != nil {
		return nil, fmt.Errorf("invalid check_interval for alerter: %w", err)
	}

	return &Alerter{
		reader:        reader,
		rules:         cfg.Rules,
		notifier:      notifier,
		checkInterval: interval,
		stopChan:      make(chan struct{}),
	}, nil
}

// Start begins the periodic evaluation of alert rules.
func (a *Alerter) Start() {
	log.Println("Alerter started")

	a.wg.Add(1)
	defer a.wg.Done()

	ticker := time.NewTicker(a.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.evaluate()
		case <-a.stopChan:
			return
		}
	}
}

// Stop gracefully stops the alerter's evaluation loop.
func (a *Alerter) Stop() {
	log.Println("Stopping Alerter...")
	close(a.stopChan)
	a.wg.Wait()
}

// evaluate checks every rule against the latest snapshot and sends one
// consolidated notification for all triggered rules.
func (a *Alerter) evaluate() {
	snap := a.reader.CurrentSnapshot()

	var triggered []string
	for _, rule := range a.rules {
		value, unit, ok := metricValue(snap, rule.Metric)
		if !ok {
			log.Printf("Warning: unknown metric '%s' in alerter rule '%s'", rule.Metric, rule.Name)
			continue
		}
		if !check(value, rule.Threshold, rule.Operator) {
			continue
		}
		msg := fmt.Sprintf("<h3>Alert: %s</h3>"+
			"<ul>"+
			"<li><b>Metric:</b> <code>%s</code></li>"+
			"<li><b>Condition:</b> <code>%s %.2f</code></li>"+
			"<li><b>Observed Value:</b> <code>%.2f %s</code></li>"+
			"</ul>",
			rule.Name, rule.Metric, rule.Operator, rule.Threshold, value, unit)
		triggered = append(triggered, msg)
	}

	if len(triggered) == 0 {
		return
	}

	log.Printf("Alerter evaluation completed. %d alert(s) triggered.", len(triggered))

	body := "<h1>NetInsights Alert Summary</h1>" +
		"<p>The following alerts were triggered during the last check:</p><hr>" +
		strings.Join(triggered, "<hr>")

	if a.notifier != nil {
		subject := fmt.Sprintf("NetInsights Alert Summary (%d Triggered)", len(triggered))
		if err := a.notifier.Send(subject, body); err != nil {
			log.Printf("ERROR: Failed to send consolidated alert notification: %v", err)
		} else {
			log.Printf("INFO: Consolidated alert notification sent successfully.")
		}
	}
}

// metricValue extracts the named metric from a snapshot.
func metricValue(snap *insights.Snapshot, metric string) (value float64, unit string, ok bool) {
	switch metric {
	case "failure_count":
		return float64(snap.Failures.Count()), "failures", true
	case "median_duration_ms":
		return float64(snap.Durations.Median) / float64(time.Millisecond), "ms", true
	case "redirect_count":
		return float64(snap.Redirects.Count), "redirects", true
	case "total_bytes":
		return float64(snap.TransferSize.Total), "bytes", true
	default:
		return 0, "", false
	}
}

// check compares a value against a threshold based on an operator.
func check(value, threshold float64, operator string) bool {
	switch operator {
	case ">":
		return value > threshold
	case "<":
		return value < threshold
	case "=":
		return value == threshold
	case ">=":
		return value >= threshold
	case "<=":
		return value <= threshold
	default:
		log.Printf("Warning: unknown operator '%s' in alerter rule", operator)
		return false
	}
}
