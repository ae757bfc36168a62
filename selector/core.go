// Package selector implements the summary selector core: a bounded,
// incrementally-maintained cache of events that can report aggregate
// statistics of a compiled pattern over events currently held and
// within a sliding time window, supporting append, arbitrary-index
// removal, TTL-driven purge, and the replay algorithm that keeps
// per-event counters consistent across mutation (spec.md §4.H, §4.K).
package selector

import (
	"errors"
	"fmt"

	"github.com/coregx/suse/compiler"
	"github.com/coregx/suse/counter"
	"github.com/coregx/suse/eviction"
	"github.com/coregx/suse/event"
	"github.com/coregx/suse/nfa"
	"github.com/coregx/suse/ring"
)

// Sentinel errors, following coregex/nfa/error.go's plain sentinel-var
// idiom.
var (
	ErrInvalidCapacity = errors.New("selector: summary_size must be > 0")
	ErrIndexOutOfRange = errors.New("selector: index out of range")
	ErrNonMonotone     = errors.New("selector: event timestamp precedes current_time")
)

// core is the shared generic implementation behind CountSelector,
// SumSelector and ProductSelector — spec.md §9's "generic/parametric
// selector over a semiring trait" rather than inheritance.
type core[T any] struct {
	ops       counter.Arithmetic[T]
	automaton *nfa.NFA
	edges     *nfa.EdgeList
	final     []bool
	partial   []bool
	desc      descriptor[T]

	capacity   int
	windowSize uint64
	hasTTL     bool
	ttl        uint64

	currentTime uint64

	cache  []cacheEntry[T]
	window window[T]

	totalCounter       counter.Vector[T]
	totalDetected      counter.Vector[T]
	totalExtra         counter.Vector[T]
	totalDetectedExtra counter.Vector[T]
}

func newCore[T any](ops counter.Arithmetic[T], pattern string, capacity int, windowSize uint64, ttl *uint64, desc descriptor[T]) (*core[T], error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	automaton, err := compiler.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("selector: %w", err)
	}
	n := automaton.NumStates()
	c := &core[T]{
		ops:                ops,
		automaton:          automaton,
		edges:              nfa.ComputeEdges(automaton),
		final:              finalMask(automaton),
		partial:            partialMask(automaton),
		desc:               desc,
		capacity:           capacity,
		windowSize:         windowSize,
		totalCounter:       countTrackReset(ops, n, automaton.Initial),
		totalDetected:      countTrackReset(ops, n, automaton.Initial),
		totalExtra:         desc.resetExtra(ops, n, automaton.Initial),
		totalDetectedExtra: desc.resetExtra(ops, n, automaton.Initial),
	}
	if ttl != nil {
		c.hasTTL = true
		c.ttl = *ttl
	}
	c.window = c.rebuildWindow(0)
	return c, nil
}

func (c *core[T]) rebuildWindow(startIdx int) window[T] {
	n := c.automaton.NumStates()
	w := window[T]{
		totalCounter: countTrackReset(c.ops, n, c.automaton.Initial),
		totalExtra:   c.desc.resetExtra(c.ops, n, c.automaton.Initial),
		perCounter:   ring.New[counter.Vector[T]](c.capacity),
		perExtra:     ring.New[counter.Vector[T]](c.capacity),
		startIdx:     startIdx,
	}
	for i := startIdx; i < len(c.cache); i++ {
		if c.cache[i].purged {
			continue
		}
		c.foldEventIntoWindow(&w, c.cache[i].event)
	}
	return w
}

// inSharedWindow reports whether two timestamps lie within W of each
// other (spec.md GLOSSARY, "Window").
func (c *core[T]) inSharedWindow(t0, t1 uint64) bool {
	var d uint64
	if t0 >= t1 {
		d = t0 - t1
	} else {
		d = t1 - t0
	}
	return d <= c.windowSize
}

func (c *core[T]) computeDeltas(countBase, extraBase counter.Vector[T], e event.Event) delta[T] {
	return delta[T]{
		count: counter.Advance(c.ops, countBase, c.edges, e.Type),
		extra: c.desc.kernel(c.ops, countBase, extraBase, c.edges, e),
	}
}

// foldEventIntoWindow performs the window-local half of add_event's
// fold (spec.md §4.H): compute the global delta, age every still-live
// per-event counter by its own local delta, and push the global delta
// onto the ring buffers. It never touches the cache or the selector's
// global totals — callers that need the per-event cache entries kept
// in sync (add_event) use the returned locals themselves; replay passes
// that only rebuild a window's internal state ignore them.
func (c *core[T]) foldEventIntoWindow(w *window[T], e event.Event) (global delta[T], locals []delta[T]) {
	global = c.computeDeltas(w.totalCounter, w.totalExtra, e)

	n := w.perCounter.Len()
	locals = make([]delta[T], n)
	for i := 0; i < n; i++ {
		loc := c.computeDeltas(w.perCounter.At(i), w.perExtra.At(i), e)
		locals[i] = loc

		updatedCount := w.perCounter.At(i)
		updatedCount.AddInto(loc.count)
		w.perCounter.Set(i, updatedCount)

		updatedExtra := w.perExtra.At(i)
		c.desc.combineExtraInto(c.ops, &updatedExtra, loc.extra)
		w.perExtra.Set(i, updatedExtra)
	}

	w.totalCounter.AddInto(global.count)
	c.desc.combineExtraInto(c.ops, &w.totalExtra, global.extra)
	w.perCounter.PushBack(global.count.Clone())
	w.perExtra.PushBack(global.extra.Clone())
	return global, locals
}

// updateWindow is the window manager's per-event maintenance (spec.md
// §4.G): pop per-event counters that have aged out of W, and if any
// popped event could have fired an edge from the initial state, rebuild
// the window from scratch (popping alone cannot cancel the initial
// state's injected unit).
func (c *core[T]) updateWindow(t uint64) {
	removedInitiator := false
	for c.window.perCounter.Len() > 0 {
		frontIdx := c.window.startIdx
		frontEvent := c.cache[frontIdx].event
		if c.inSharedWindow(frontEvent.Timestamp, t) {
			break
		}
		c.window.perCounter.PopFront()
		c.window.perExtra.PopFront()
		c.window.startIdx++
		if firesFromInitial(c.automaton, c.edges, frontEvent.Type) {
			removedInitiator = true
		}
	}
	if removedInitiator {
		c.window = c.rebuildWindow(c.window.startIdx)
	}
}

// purgeExpired evicts the prefix of the cache older than the configured
// TTL. Implemented as repeated front removal through the same
// removeEventAt path removeEvent uses, since TTL purge and explicit
// removal share identical repair semantics (spec.md §8, P3).
func (c *core[T]) purgeExpired() {
	if !c.hasTTL {
		return
	}
	for len(c.cache) > 0 && c.currentTime-c.cache[0].event.Timestamp > c.ttl {
		c.removeEventAt(0)
	}
}

// addEvent folds e into the selector: global totals, window, and every
// still-live cache entry's per-event counter, then appends a new cache
// entry carrying the delta this event contributed (spec.md §4.H,
// add_event).
func (c *core[T]) addEvent(e event.Event) {
	global, locals := c.foldEventIntoWindow(&c.window, e)

	c.totalCounter.AddInto(global.count)
	c.totalDetected.AddInto(global.count)
	c.desc.combineExtraInto(c.ops, &c.totalExtra, global.extra)
	c.desc.combineExtraInto(c.ops, &c.totalDetectedExtra, global.extra)

	for i, loc := range locals {
		idx := c.window.startIdx + i
		c.cache[idx].stateCounter.AddInto(loc.count)
		c.desc.combineExtraInto(c.ops, &c.cache[idx].extraCounter, loc.extra)
	}

	c.cache = append(c.cache, cacheEntry[T]{
		event:        e,
		stateCounter: global.count.Clone(),
		extraCounter: global.extra.Clone(),
	})
}

// removeEventAt removes the cache entry at index k and repairs every
// cached counter that the removed event had contributed to (spec.md
// §4.H, remove_event).
func (c *core[T]) removeEventAt(k int) {
	entry := c.cache[k]
	c.totalCounter.SubInto(entry.stateCounter)
	c.desc.uncombineExtraInto(c.ops, &c.totalExtra, entry.extraCounter)

	removedTs := entry.event.Timestamp

	if k < c.window.startIdx {
		c.window.startIdx--
	}
	c.cache = append(c.cache[:k], c.cache[k+1:]...)

	if len(c.cache) == 0 {
		c.window = c.rebuildWindow(0)
		return
	}
	c.replayAffectedRange(k, removedTs)
	if c.inSharedWindow(removedTs, c.currentTime) {
		c.window = c.rebuildWindow(c.window.startIdx)
	}
}

// replayAffectedRange repairs the state_counter/extra_counter of every
// cached event whose sliding window overlapped the just-removed event,
// per spec.md §4.H's replay_affected_range. It runs after the removed
// entry has been erased from the cache; removedIdx is the index the
// removed entry occupied, which now holds the entry that followed it.
func (c *core[T]) replayAffectedRange(removedIdx int, removedTs uint64) {
	n := len(c.cache)

	lower := removedIdx - int(c.windowSize)
	if lower < 0 {
		lower = 0
	}
	replayStart := -1
	for i := lower; i < n; i++ {
		if c.cache[i].purged {
			continue
		}
		if c.inSharedWindow(c.cache[i].event.Timestamp, removedTs) {
			replayStart = i
			break
		}
	}
	if replayStart == -1 {
		return
	}

	anchorTs := c.cache[replayStart].event.Timestamp
	twStart := 0
	for i := 0; i < replayStart; i++ {
		if c.cache[i].purged {
			continue
		}
		if c.inSharedWindow(c.cache[i].event.Timestamp, anchorTs) {
			twStart = i
			break
		}
		twStart = i + 1
	}

	scratch := c.foldRange(twStart, replayStart)

	idx := replayStart
	for idx < n {
		entry := &c.cache[idx]
		if entry.purged {
			idx++
			continue
		}
		ts := entry.event.Timestamp
		selfShares := c.inSharedWindow(ts, removedTs)
		scratchStartShares := false
		if scratch.startIdx < n && !c.cache[scratch.startIdx].purged {
			scratchStartShares = c.inSharedWindow(c.cache[scratch.startIdx].event.Timestamp, removedTs)
		}
		if !selfShares && !scratchStartShares {
			break
		}

		c.ageScratchWindow(&scratch, ts)

		global, locals := c.foldEventIntoWindow(&scratch, entry.event)
		for i, loc := range locals {
			cacheIdx := scratch.startIdx + i
			if cacheIdx < replayStart || cacheIdx >= n || c.cache[cacheIdx].purged {
				continue
			}
			if c.inSharedWindow(c.cache[cacheIdx].event.Timestamp, removedTs) {
				c.cache[cacheIdx].stateCounter.AddInto(loc.count)
				c.desc.combineExtraInto(c.ops, &c.cache[cacheIdx].extraCounter, loc.extra)
			}
		}

		if selfShares {
			entry.stateCounter = global.count.Clone()
			entry.extraCounter = global.extra.Clone()
		}

		idx++
	}
}

// foldRange rebuilds a window over exactly [from, to) of the cache,
// ignoring purged entries, without touching anything past `to`.
func (c *core[T]) foldRange(from, to int) window[T] {
	n := c.automaton.NumStates()
	w := window[T]{
		totalCounter: countTrackReset(c.ops, n, c.automaton.Initial),
		totalExtra:   c.desc.resetExtra(c.ops, n, c.automaton.Initial),
		perCounter:   ring.New[counter.Vector[T]](c.capacity),
		perExtra:     ring.New[counter.Vector[T]](c.capacity),
		startIdx:     from,
	}
	for i := from; i < to; i++ {
		if c.cache[i].purged {
			continue
		}
		c.foldEventIntoWindow(&w, c.cache[i].event)
	}
	return w
}

// ageScratchWindow applies the same aging (pop-expired, maybe rebuild)
// logic updateWindow does, but against a scratch window instead of
// c.window, so replayAffectedRange can walk a window forward alongside
// the cache range it is repairing.
func (c *core[T]) ageScratchWindow(w *window[T], t uint64) {
	removedInitiator := false
	for w.perCounter.Len() > 0 {
		frontIdx := w.startIdx
		if frontIdx >= len(c.cache) {
			break
		}
		frontEvent := c.cache[frontIdx].event
		if c.inSharedWindow(frontEvent.Timestamp, t) {
			break
		}
		w.perCounter.PopFront()
		w.perExtra.PopFront()
		w.startIdx++
		if firesFromInitial(c.automaton, c.edges, frontEvent.Type) {
			removedInitiator = true
		}
	}
	if removedInitiator {
		*w = c.foldRange(w.startIdx, w.startIdx+w.perCounter.Len())
	}
}

// ProcessEvent advances the selector by one event: it updates the
// current time and window, purges TTL-expired events, and then either
// evicts (per strategy) to make room or appends the event — in that
// order, so timestamp/window advance even when the event is ultimately
// dropped (spec.md §9, Open Question resolution #3).
func (c *core[T]) ProcessEvent(e event.Event, strategy eviction.Strategy) error {
	if e.Timestamp < c.currentTime {
		return ErrNonMonotone
	}
	c.currentTime = e.Timestamp
	c.updateWindow(e.Timestamp)
	c.purgeExpired()

	if len(c.cache) == c.capacity {
		if idx, ok := strategy.Select(c, e); ok {
			c.removeEventAt(idx)
		}
	}
	if len(c.cache) < c.capacity {
		c.addEvent(e)
	}
	return nil
}

// RemoveEvent explicitly removes the cached event at index idx.
func (c *core[T]) RemoveEvent(idx int) error {
	if idx < 0 || idx >= len(c.cache) {
		return ErrIndexOutOfRange
	}
	c.removeEventAt(idx)
	return nil
}

// Len implements eviction.View.
func (c *core[T]) Len() int { return len(c.cache) }

// EventAt implements eviction.View.
func (c *core[T]) EventAt(i int) event.Event { return c.cache[i].event }

// CachedEvents returns the events currently retained, oldest first.
func (c *core[T]) CachedEvents() []event.Event {
	out := make([]event.Event, len(c.cache))
	for i, entry := range c.cache {
		out[i] = entry.event
	}
	return out
}

// CurrentTime returns the timestamp of the most recently processed
// event.
func (c *core[T]) CurrentTime() uint64 { return c.currentTime }

// TimeWindowSize returns W.
func (c *core[T]) TimeWindowSize() uint64 { return c.windowSize }

// Automaton returns the compiled pattern automaton.
func (c *core[T]) Automaton() *nfa.NFA { return c.automaton }
