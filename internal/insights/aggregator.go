package insights

import (
	"NetInsights/internal/model"
	"errors"
	"log"
	"sync"
	"sync/atomic"
)

// ErrAlreadyRegistered is returned by Register when the aggregator is already
// bound to an event source.
var ErrAlreadyRegistered = errors.New("insights: event source already registered")

const defaultEventBuffer = 1024

// command is one unit of work for the writer goroutine: either an event to
// fold in, or a reset request whose done channel is closed once both the
// working state and the published snapshot have been cleared.
type command struct {
	event *model.TaskEvent
	done  chan struct{}
}

// Aggregator consumes a task event feed and maintains queryable running
// statistics. A single writer goroutine owns the working accumulator and
// processes commands strictly in arrival order; after every change it
// publishes an immutable Snapshot through an atomic pointer swap and fans out
// a unit signal to subscribers. Readers never block ingestion and never see a
// half-updated state.
type Aggregator struct {
	commands chan command
	snapshot atomic.Pointer[Snapshot]
	wg       sync.WaitGroup

	regMu  sync.Mutex
	source model.EventSource

	subMu       sync.RWMutex
	subIDCount  uint64
	subscribers map[uint64]chan struct{}
}

// New creates an Aggregator. bufferSize is the capacity of the internal
// command channel; values <= 0 select a default.
func New(bufferSize int) *Aggregator {
	if bufferSize <= 0 {
		bufferSize = defaultEventBuffer
	}
	ag := &Aggregator{
		commands:    make(chan command, bufferSize),
		subscribers: make(map[uint64]chan struct{}),
	}
	ag.snapshot.Store(&Snapshot{})
	return ag
}

// Start launches the writer goroutine.
func (ag *Aggregator) Start() {
	ag.wg.Add(1)
	go ag.run()
}

// Stop shuts the writer goroutine down after all queued commands have been
// processed. The event source must have been closed first; Push after Stop
// panics.
func (ag *Aggregator) Stop() {
	close(ag.commands)
	ag.wg.Wait()
}

// Register binds the aggregator to its upstream event feed. The binding lasts
// for the aggregator's lifetime; a second call returns ErrAlreadyRegistered.
func (ag *Aggregator) Register(source model.EventSource) error {
	ag.regMu.Lock()
	defer ag.regMu.Unlock()
	if ag.source != nil {
		return ErrAlreadyRegistered
	}
	if err := source.Subscribe(ag.Push); err != nil {
		return err
	}
	ag.source = source
	return nil
}

// Push enqueues one event for processing. Events are folded in strictly in
// the order they are pushed.
func (ag *Aggregator) Push(ev *model.TaskEvent) {
	ag.commands <- command{event: ev}
}

// Reset clears the working accumulator and then replaces the published
// snapshot with an empty one, notifying subscribers. Both steps have
// completed by the time Reset returns. The reset is serialized behind any
// event already queued, so no update is lost.
func (ag *Aggregator) Reset() {
	done := make(chan struct{})
	ag.commands <- command{done: done}
	<-done
}

// CurrentSnapshot returns the latest published snapshot. It never blocks on
// ingestion.
func (ag *Aggregator) CurrentSnapshot() *Snapshot {
	return ag.snapshot.Load()
}

// Subscribe registers a change listener and returns its id together with the
// signal channel. One signal is delivered after each snapshot replacement;
// signals may coalesce when the listener lags, but a listener woken by a
// signal always observes the snapshot that triggered it or a newer one.
func (ag *Aggregator) Subscribe() (subID uint64, signals <-chan struct{}) {
	ag.subMu.Lock()
	defer ag.subMu.Unlock()
	ag.subIDCount++
	ch := make(chan struct{}, 1)
	ag.subscribers[ag.subIDCount] = ch
	return ag.subIDCount, ch
}

// Unsubscribe removes the listener with the given id and closes its channel.
// Other listeners and the writer are unaffected.
func (ag *Aggregator) Unsubscribe(subID uint64) {
	ag.subMu.Lock()
	defer ag.subMu.Unlock()
	if ch, ok := ag.subscribers[subID]; ok {
		close(ch)
		delete(ag.subscribers, subID)
	}
}

// run is the single-writer loop. It is the only goroutine that ever touches
// the accumulator.
func (ag *Aggregator) run() {
	defer ag.wg.Done()
	var acc Accumulator
	for cmd := range ag.commands {
		if cmd.done != nil {
			acc.Reset()
			ag.publish(acc.Snapshot())
			close(cmd.done)
			continue
		}
		ev := cmd.event
		if ev.Kind != model.EventTaskCompleted {
			continue
		}
		if acc.Apply(ev) {
			ag.publish(acc.Snapshot())
		}
	}
	log.Println("Insights aggregator stopped.")
}

// publish makes s the current snapshot and signals all subscribers. The
// pointer swap happens before any signal is sent, so a reader woken by the
// signal cannot observe the previous snapshot.
func (ag *Aggregator) publish(s *Snapshot) {
	ag.snapshot.Store(s)
	ag.subMu.RLock()
	defer ag.subMu.RUnlock()
	for _, ch := range ag.subscribers {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
