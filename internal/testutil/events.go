package testutil

import (
	"context"
	"sync"

	"kukkaro/internal/events"
)

// EventRecorder is an events.Publisher that keeps every published event.
// Set Err to make Publish fail.
type EventRecorder struct {
	mu     sync.Mutex
	events []events.Event
	Err    error
}

var _ events.Publisher = (*EventRecorder)(nil)

// Publish implements events.Publisher.
func (r *EventRecorder) Publish(_ context.Context, e events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.events = append(r.events, e)
	return nil
}

// Close implements events.Publisher.
func (r *EventRecorder) Close() error { return nil }

// Types returns the types of the recorded events in publish order.
func (r *EventRecorder) Types() []events.Type {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]events.Type, len(r.events))
	for i, e := range r.events {
		out[i] = e.Type
	}
	return out
}

// Last returns the most recent event, or false when none was published.
func (r *EventRecorder) Last() (events.Event, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.events) == 0 {
		return events.Event{}, false
	}
	return r.events[len(r.events)-1], true
}
