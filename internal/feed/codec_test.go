package feed

import (
	"NetInsights/internal/model"
	"testing"
	"time"
)

func TestCodec_RoundTrip(t *testing.T) {
	ev := &model.TaskEvent{
		Kind:   model.EventTaskCompleted,
		TaskID: "task-1",
		Metrics: &model.TaskMetrics{
			TransferSize:  model.TransferSizeInfo{Uploaded: 10, Downloaded: 90, Total: 100},
			Duration:      1500 * time.Millisecond,
			RedirectCount: 1,
			Transactions: []model.Transaction{
				{StatusCode: 302, Duration: 200 * time.Millisecond},
				{StatusCode: 200, Duration: 1300 * time.Millisecond},
			},
		},
		Error: "partial content",
	}

	data, err := EncodeEvent(ev)
	if err != nil {
		t.Fatalf("EncodeEvent failed: %v", err)
	}
	got, err := DecodeEvent(data)
	if err != nil {
		t.Fatalf("DecodeEvent failed: %v", err)
	}

	if got.Kind != ev.Kind || got.TaskID != ev.TaskID || got.Error != ev.Error {
		t.Errorf("Envelope mismatch: got %+v", got)
	}
	if got.Metrics == nil {
		t.Fatalf("Expected metrics to survive the round trip")
	}
	if got.Metrics.TransferSize != ev.Metrics.TransferSize {
		t.Errorf("TransferSize mismatch: got %+v", got.Metrics.TransferSize)
	}
	if len(got.Metrics.Transactions) != 2 || got.Metrics.Transactions[0].StatusCode != 302 {
		t.Errorf("Transactions mismatch: got %+v", got.Metrics.Transactions)
	}
}

func TestDecodeEvent_AbsentOptionalFields(t *testing.T) {
	raw := []byte(`{"kind":"task_completed","task_id":"task-2","metrics":{"transfer_size":{"total":42},"duration_ns":1000000,"transactions":[{"status_code":302}]}}`)

	ev, err := DecodeEvent(raw)
	if err != nil {
		t.Fatalf("DecodeEvent failed: %v", err)
	}
	if ev.Error != "" {
		t.Errorf("Expected absent error to decode as empty, got %q", ev.Error)
	}
	if ev.Metrics.RedirectCount != 0 {
		t.Errorf("Expected absent redirect count to decode as 0, got %d", ev.Metrics.RedirectCount)
	}
	if ev.Metrics.Transactions[0].Duration != 0 {
		t.Errorf("Expected untimed transaction to decode as 0, got %v", ev.Metrics.Transactions[0].Duration)
	}
}

func TestDecodeEvent_MissingKind(t *testing.T) {
	if _, err := DecodeEvent([]byte(`{"task_id":"task-3"}`)); err == nil {
		t.Errorf("Expected an error for an event without kind")
	}
}

func TestDecodeEvent_Garbage(t *testing.T) {
	if _, err := DecodeEvent([]byte(`{not json`)); err == nil {
		t.Errorf("Expected an error for malformed JSON")
	}
}
