package main

import (
	"NetInsights/internal/config"
	"NetInsights/internal/feed"
	"NetInsights/internal/model"
	"flag"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// ni-probe publishes randomized task lifecycle events to the feed subject,
// for demos and soak testing of the insights engine.
func main() {
	natsURL := flag.String("nats", "nats://127.0.0.1:4222", "NATS server URL")
	subject := flag.String("subject", "netinsights.tasks", "feed subject to publish to")
	count := flag.Int("count", 100, "number of completed-task events to publish (0 = unlimited)")
	interval := flag.Duration("interval", 100*time.Millisecond, "delay between events")
	flag.Parse()

	publisher, err := feed.NewPublisher(config.FeedConfig{NATSURL: *natsURL, Subject: *subject})
	if err != nil {
		log.Fatalf("Failed to create publisher: %v", err)
	}
	defer publisher.Close()

	published := 0
	for *count == 0 || published < *count {
		taskID := uuid.NewString()

		// A created event precedes every completion, exercising the
		// engine's kind filtering.
		if err := publisher.Publish(&model.TaskEvent{
			Kind:   model.EventTaskCreated,
			TaskID: taskID,
		}); err != nil {
			log.Fatalf("Failed to publish event: %v", err)
		}

		if err := publisher.Publish(randomCompletion(taskID)); err != nil {
			log.Fatalf("Failed to publish event: %v", err)
		}
		published++

		time.Sleep(*interval)
	}
	log.Printf("Published %d completed-task events to '%s'.", published, *subject)
}

// randomCompletion builds a completed-task event with randomized metrics:
// most tasks succeed directly, some are redirected, a few fail.
func randomCompletion(taskID string) *model.TaskEvent {
	duration := time.Duration(50+rand.Intn(1950)) * time.Millisecond
	downloaded := int64(rand.Intn(1 << 20))
	uploaded := int64(rand.Intn(1 << 12))

	metrics := &model.TaskMetrics{
		TransferSize: model.TransferSizeInfo{
			Uploaded:   uploaded,
			Downloaded: downloaded,
			Total:      uploaded + downloaded,
		},
		Duration: duration,
		Transactions: []model.Transaction{
			{StatusCode: 200, Duration: duration},
		},
	}

	if rand.Intn(5) == 0 {
		redirectDur := time.Duration(10+rand.Intn(200)) * time.Millisecond
		metrics.RedirectCount = 1
		metrics.Transactions = append([]model.Transaction{
			{StatusCode: 302, Duration: redirectDur},
		}, metrics.Transactions...)
	}

	ev := &model.TaskEvent{
		Kind:    model.EventTaskCompleted,
		TaskID:  taskID,
		Metrics: metrics,
	}
	if rand.Intn(10) == 0 {
		ev.Error = "connection reset by peer"
	}
	return ev
}
