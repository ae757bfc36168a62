package selector

import (
	"github.com/coregx/suse/event"
	"github.com/coregx/suse/nfa"
)

// finalMask and partialMask split an automaton's states into the
// "complete match" (final) and "partial match" (non-final) groups the
// semiring facades aggregate over (spec.md §4.I).
func finalMask(a *nfa.NFA) []bool {
	mask := make([]bool, a.NumStates())
	for i, s := range a.States {
		mask[i] = s.IsFinal
	}
	return mask
}

func partialMask(a *nfa.NFA) []bool {
	mask := finalMask(a)
	for i := range mask {
		mask[i] = !mask[i]
	}
	return mask
}

// firesFromInitial reports whether an event of the given symbol would
// fire a transition (specific or wildcard) out of the automaton's
// initial state — used by the window manager (spec.md §4.G) to decide
// whether popping an aged-out event requires a full window replay.
func firesFromInitial(a *nfa.NFA, edges *nfa.EdgeList, symbol event.Symbol) bool {
	for _, e := range edges.EdgesFor(symbol) {
		if e.From == a.Initial {
			return true
		}
	}
	for _, e := range edges.EdgesFor(event.Wildcard) {
		if e.From == a.Initial {
			return true
		}
	}
	return false
}
