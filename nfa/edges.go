package nfa

import (
	"sort"

	"github.com/coregx/suse/event"
)

// Edge is a flattened (from, to) transition pair for one symbol.
type Edge struct {
	From StateID
	To   StateID
}

// EdgeList is the NFA flattened into per-symbol (from,to) arrays, tuned
// for the hot-path linear scans the advance kernels perform. The
// Wildcard symbol has its own entry alongside specific-symbol entries.
type EdgeList struct {
	bySymbol map[event.Symbol][]Edge
}

// ComputeEdges derives an EdgeList from an NFA.
func ComputeEdges(a *NFA) *EdgeList {
	el := &EdgeList{bySymbol: make(map[event.Symbol][]Edge)}
	for from, s := range a.States {
		for symbol, targets := range s.Transitions {
			for _, to := range targets {
				el.bySymbol[symbol] = append(el.bySymbol[symbol], Edge{From: StateID(from), To: to})
			}
		}
	}
	return el
}

// EdgesFor returns the edges labelled with the given symbol (nil if
// none). Callers needing "specific symbol plus wildcard" semantics
// should call this twice, once with the event's type and once with
// Wildcard.
func (el *EdgeList) EdgesFor(symbol event.Symbol) []Edge {
	return el.bySymbol[symbol]
}

// Symbols returns every symbol (including Wildcard, if present) that has
// at least one edge.
func (el *EdgeList) Symbols() []event.Symbol {
	out := make([]event.Symbol, 0, len(el.bySymbol))
	for s := range el.bySymbol {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Equal reports relation equality: same set of (symbol, from, to)
// triples, independent of order within a symbol.
func (el *EdgeList) Equal(other *EdgeList) bool {
	if len(el.bySymbol) != len(other.bySymbol) {
		return false
	}
	for symbol, edges := range el.bySymbol {
		o, ok := other.bySymbol[symbol]
		if !ok || !sameEdgeSet(edges, o) {
			return false
		}
	}
	return true
}

func sameEdgeSet(a, b []Edge) bool {
	if len(a) != len(b) {
		return false
	}
	ca := canonicalize(a)
	cb := canonicalize(b)
	for i := range ca {
		if ca[i] != cb[i] {
			return false
		}
	}
	return true
}

func canonicalize(edges []Edge) []Edge {
	out := make([]Edge, len(edges))
	copy(out, edges)
	sort.Slice(out, func(i, j int) bool {
		if out[i].From != out[j].From {
			return out[i].From < out[j].From
		}
		return out[i].To < out[j].To
	})
	return out
}
