package model

// EventSource is an ordered feed of task lifecycle events. Subscribe installs
// the handler that is invoked once per incoming event, in arrival order;
// Close stops delivery and releases the underlying transport.
type EventSource interface {
	Subscribe(handler func(ev *TaskEvent)) error
	Close()
}
