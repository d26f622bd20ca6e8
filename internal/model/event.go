package model

import "time"

// EventKind discriminates the variants of the task lifecycle feed.
type EventKind string

const (
	EventTaskCreated   EventKind = "task_created"
	EventTaskProgress  EventKind = "task_progress"
	EventTaskCompleted EventKind = "task_completed"
	EventMessageStored EventKind = "message_stored"
)

// Transaction is one attempt within a task's lifecycle. A task that was
// redirected carries one transaction per hop.
type Transaction struct {
	// StatusCode is the HTTP response status of this attempt, 0 if no
	// response was received.
	StatusCode int `json:"status_code,omitempty"`
	// Duration is how long this attempt took, 0 if it was not timed.
	Duration time.Duration `json:"duration_ns,omitempty"`
}

// TaskMetrics is the measurement payload attached to a completed task.
type TaskMetrics struct {
	TransferSize  TransferSizeInfo `json:"transfer_size"`
	Duration      time.Duration    `json:"duration_ns"`
	RedirectCount int64            `json:"redirect_count"`
	Transactions  []Transaction    `json:"transactions,omitempty"`
}

// TaskEvent is a single entry of the task lifecycle feed. The task identifier
// is opaque, unique and stable for the task's lifetime. Metrics is nil for
// tasks that finished without producing measurements, and for all non-completed
// event kinds. Error is empty for tasks that succeeded.
//
// Events are owned by their producer and must not be mutated by consumers.
type TaskEvent struct {
	Kind    EventKind    `json:"kind"`
	TaskID  string       `json:"task_id"`
	Metrics *TaskMetrics `json:"metrics,omitempty"`
	Error   string       `json:"error,omitempty"`
}

// TransferSizeInfo accumulates the byte counts moved by one or more tasks.
type TransferSizeInfo struct {
	Uploaded   int64 `json:"uploaded"`
	Downloaded int64 `json:"downloaded"`
	Total      int64 `json:"total"`
}

// Merge returns the field-wise sum of t and other. Merge is commutative and
// associative, with the zero value as identity.
func (t TransferSizeInfo) Merge(other TransferSizeInfo) TransferSizeInfo {
	return TransferSizeInfo{
		Uploaded:   t.Uploaded + other.Uploaded,
		Downloaded: t.Downloaded + other.Downloaded,
		Total:      t.Total + other.Total,
	}
}
