package feed

import (
	"NetInsights/internal/model"
	"encoding/json"
	"fmt"
)

// EncodeEvent serializes a task event to the JSON wire form used on the feed
// subject.
func EncodeEvent(ev *model.TaskEvent) ([]byte, error) {
	data, err := json.Marshal(ev)
	if err != nil {
		return nil, fmt.Errorf("failed to encode task event: %w", err)
	}
	return data, nil
}

// DecodeEvent parses one feed message. Absent optional fields (metrics,
// error, transaction status or timing) decode to their zero values.
func DecodeEvent(data []byte) (*model.TaskEvent, error) {
	var ev model.TaskEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, fmt.Errorf("failed to decode task event: %w", err)
	}
	if ev.Kind == "" {
		return nil, fmt.Errorf("task event missing kind")
	}
	return &ev, nil
}
