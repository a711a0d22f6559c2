package testutil

import (
	"context"
	"sync"

	"github.com/roach88/ember/internal/engine"
)

// EventRecorder captures telemetry events in emission order for
// assertions and golden trace comparison.
//
// Thread-safety: safe for concurrent use via internal mutex, although
// the engine emits sequentially anyway.
type EventRecorder struct {
	mu     sync.Mutex
	events []engine.Event
}

// NewEventRecorder creates an empty recorder.
func NewEventRecorder() *EventRecorder {
	return &EventRecorder{}
}

// Emit implements engine.Emitter.
func (r *EventRecorder) Emit(_ context.Context, ev engine.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

// Events returns a copy of all recorded events in emission order.
func (r *EventRecorder) Events() []engine.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]engine.Event, len(r.events))
	copy(out, r.events)
	return out
}

// Last returns the most recent event, or a zero Event if none were
// emitted.
func (r *EventRecorder) Last() engine.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.events) == 0 {
		return engine.Event{}
	}
	return r.events[len(r.events)-1]
}

// Reset discards all recorded events.
func (r *EventRecorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}
