// Package eviction implements the selector core's pluggable
// full-cache policy: given the current cache and the incoming event,
// decide which cached index (if any) to evict to make room.
package eviction

import "github.com/coregx/suse/event"

// View is the read-only slice of selector state an eviction Strategy is
// allowed to see: the cached events in order. Strategies never see or
// mutate counters — only the cached events themselves, per spec.md §4.J.
type View interface {
	// Len returns the number of events currently cached.
	Len() int
	// EventAt returns the event cached at index i.
	EventAt(i int) event.Event
}

// Strategy answers "which cached index should be evicted to make room
// for incoming?" Returning ok=false means "drop incoming instead."
type Strategy interface {
	Select(view View, incoming event.Event) (idx int, ok bool)
}

// Func adapts a plain function to Strategy, the same callable-or-object
// dual-acceptance spec.md §4.J asks for (Go expresses "any callable" as
// a named function type implementing the single-method interface,
// rather than an untyped closure parameter).
type Func func(view View, incoming event.Event) (idx int, ok bool)

// Select implements Strategy.
func (f Func) Select(view View, incoming event.Event) (int, bool) {
	return f(view, incoming)
}

// FIFO evicts the oldest cached event (index 0) whenever the cache is
// full.
var FIFO Strategy = Func(func(view View, incoming event.Event) (int, bool) {
	if view.Len() == 0 {
		return 0, false
	}
	return 0, true
})

// Never evicts nothing: the incoming event is dropped instead. This is
// the default used when process_event is called with no explicit
// strategy.
var Never Strategy = Func(func(view View, incoming event.Event) (int, bool) {
	return 0, false
})
