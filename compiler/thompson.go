package compiler

import "github.com/coregx/suse/event"

// epsilon is the internal-only sentinel marking an epsilon transition.
// It is distinct from event.Wildcard so a literal wildcard edge and an
// epsilon edge are never confused during closure collapsing.
const epsilon event.Symbol = -2

type eTrans struct {
	symbol event.Symbol
	to     int
}

type eState struct {
	eps   []int
	trans []eTrans
}

// eBuilder accumulates the states of a Thompson-construction epsilon-NFA
// as fragments are combined, the way
// mabhi256-codecrafters-grep-go/app/nfa/nfa.go's NewState()/stateCounter
// pattern does, generalized from per-fragment pointer states to a dense
// builder slice so closure collapsing can walk by index.
type eBuilder struct {
	states []eState
}

func newBuilder() *eBuilder {
	return &eBuilder{}
}

func (b *eBuilder) newState() int {
	b.states = append(b.states, eState{})
	return len(b.states) - 1
}

func (b *eBuilder) addEps(from, to int) {
	b.states[from].eps = append(b.states[from].eps, to)
}

func (b *eBuilder) addTrans(from int, symbol event.Symbol, to int) {
	b.states[from].trans = append(b.states[from].trans, eTrans{symbol: symbol, to: to})
}

// fragment is a partially-built automaton piece with a single entry and
// a single exit state, per Thompson's construction.
type fragment struct {
	start, accept int
}

func (b *eBuilder) literal(symbol event.Symbol) fragment {
	s := b.newState()
	a := b.newState()
	b.addTrans(s, symbol, a)
	return fragment{start: s, accept: a}
}

func (b *eBuilder) concatenate(f1, f2 fragment) fragment {
	b.addEps(f1.accept, f2.start)
	return fragment{start: f1.start, accept: f2.accept}
}

func (b *eBuilder) alternate(f1, f2 fragment) fragment {
	//      ┌─ε─> f1.start ... f1.accept ─ε─┐
	// s ───┤                                ├──> a
	//      └─ε─> f2.start ... f2.accept ─ε─┘
	s := b.newState()
	a := b.newState()
	b.addEps(s, f1.start)
	b.addEps(s, f2.start)
	b.addEps(f1.accept, a)
	b.addEps(f2.accept, a)
	return fragment{start: s, accept: a}
}

func (b *eBuilder) star(f fragment) fragment {
	// s can skip straight to a, or loop through f any number of times.
	s := b.newState()
	a := b.newState()
	b.addEps(s, f.start)
	b.addEps(s, a)
	b.addEps(f.accept, f.start)
	b.addEps(f.accept, a)
	return fragment{start: s, accept: a}
}

func (b *eBuilder) plus(f fragment) fragment {
	// one mandatory pass through f, then the same optional loop as star.
	s := b.newState()
	a := b.newState()
	b.addEps(s, f.start)
	b.addEps(f.accept, f.start)
	b.addEps(f.accept, a)
	return fragment{start: s, accept: a}
}

func (b *eBuilder) optional(f fragment) fragment {
	s := b.newState()
	a := b.newState()
	b.addEps(s, f.start)
	b.addEps(s, a)
	b.addEps(f.accept, a)
	return fragment{start: s, accept: a}
}
