package selector

import (
	"github.com/coregx/suse/counter"
	"github.com/coregx/suse/event"
	"github.com/coregx/suse/nfa"
	"github.com/coregx/suse/ring"
)

// cacheEntry is one retained event together with the weight
// contribution it made when appended (spec.md §3, "Cache entry").
// Both the count-track and the semiring's own track live in the same
// entry — the "unified" shape documented in SPEC_FULL.md's Supplemented
// Features section, grounded on
// original_source/src/summary_selector_impl.hpp rather than the
// separate-cache shape that leaves sum totals unrepaired on removal.
type cacheEntry[T any] struct {
	event        event.Event
	stateCounter counter.Vector[T]
	extraCounter counter.Vector[T]
	// purged marks an entry that every fold skips. removeEventAt erases
	// an entry before replaying, so it never sets this flag and no
	// cached entry is marked (DESIGN.md, Open Question resolution #2).
	purged bool
}

// window is the sliding-window manager (spec.md §3, "Window" and §4.G):
// the running totals over events still within W of the current time,
// plus the ring buffer of per-event counters needed to age them out.
type window[T any] struct {
	totalCounter counter.Vector[T]
	totalExtra   counter.Vector[T]
	perCounter   *ring.Buffer[counter.Vector[T]]
	perExtra     *ring.Buffer[counter.Vector[T]]
	startIdx     int
}

// delta is the pair of deltas (count track, semiring-extra track)
// produced by folding one event through the automaton.
type delta[T any] struct {
	count counter.Vector[T]
	extra counter.Vector[T]
}

// extraKernel computes the semiring-specific delta for one event, given
// the count-track and extra-track vectors to fold from. CountSelector
// uses a kernel that ignores extraC and mirrors the count kernel (its
// result is never exposed); SumSelector uses counter.AdvanceSum;
// ProductSelector uses counter.AdvanceProd.
type extraKernel[T any] func(ops counter.Arithmetic[T], countC, extraC counter.Vector[T], edges *nfa.EdgeList, e event.Event) counter.Vector[T]

// descriptor is the semiring trait spec.md §9 asks for in place of
// inheritance: "a semiring trait describing advance, element type,
// initial-unit value, combine-into-total operation." CountSelector,
// SumSelector and ProductSelector are three instantiations of the same
// generic core differing only by their descriptor.
type descriptor[T any] struct {
	kernel             extraKernel[T]
	combineExtraInto   func(ops counter.Arithmetic[T], target *counter.Vector[T], value counter.Vector[T])
	uncombineExtraInto func(ops counter.Arithmetic[T], target *counter.Vector[T], value counter.Vector[T])
	resetExtra         func(ops counter.Arithmetic[T], n int, initial nfa.StateID) counter.Vector[T]
}

func additiveDescriptor[T any](kernel extraKernel[T], reset func(ops counter.Arithmetic[T], n int, initial nfa.StateID) counter.Vector[T]) descriptor[T] {
	return descriptor[T]{
		kernel: kernel,
		combineExtraInto: func(ops counter.Arithmetic[T], target *counter.Vector[T], value counter.Vector[T]) {
			target.AddInto(value)
		},
		uncombineExtraInto: func(ops counter.Arithmetic[T], target *counter.Vector[T], value counter.Vector[T]) {
			target.SubInto(value)
		},
		resetExtra: reset,
	}
}

func multiplicativeDescriptor[T any](kernel extraKernel[T], reset func(ops counter.Arithmetic[T], n int, initial nfa.StateID) counter.Vector[T]) descriptor[T] {
	return descriptor[T]{
		kernel: kernel,
		combineExtraInto: func(ops counter.Arithmetic[T], target *counter.Vector[T], value counter.Vector[T]) {
			target.MulInto(value)
		},
		uncombineExtraInto: func(ops counter.Arithmetic[T], target *counter.Vector[T], value counter.Vector[T]) {
			target.DivInto(value)
		},
		resetExtra: reset,
	}
}

// countKernel is the extra-track kernel used by CountSelector: it
// mirrors the count-track advance exactly (the extra track is never
// exposed by CountSelector's facade, but kept uniform so the core has a
// single code path for all three semirings).
func countKernel[T any](ops counter.Arithmetic[T], countC, extraC counter.Vector[T], edges *nfa.EdgeList, e event.Event) counter.Vector[T] {
	return counter.Advance(ops, countC, edges, e.Type)
}

// countTrackReset is the reset value shared by every selector's
// count-track total: zero everywhere except a unit (1) at the initial
// state, matching spec.md §3's "total_counter is the pointwise sum of
// all such per-event counters plus an initial unit."
func countTrackReset[T any](ops counter.Arithmetic[T], n int, initial nfa.StateID) counter.Vector[T] {
	v := counter.NewVector(ops, n)
	v.Set(int(initial), ops.One())
	return v
}

// sumTrackReset implements the Open Question resolution pinned in
// spec.md §9 and DESIGN.md: the sum semiring's initial-state reset
// value is 0, not 1 — an empty path contributes no sum.
func sumTrackReset[T any](ops counter.Arithmetic[T], n int, _ nfa.StateID) counter.Vector[T] {
	return counter.NewVector(ops, n)
}

// productTrackReset resets every state to the multiplicative identity,
// matching original_source/src/summary_selector_prod.hpp's
// std::fill(..., 1) over the entire vector (not just the initial
// state — the product accumulator's unit is the all-ones vector).
func productTrackReset[T any](ops counter.Arithmetic[T], n int, _ nfa.StateID) counter.Vector[T] {
	return counter.NewVectorFilled(ops, n, ops.One())
}
