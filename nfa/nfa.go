// Package nfa models the non-deterministic automaton a pattern compiles
// to: dense integer state ids, transitions keyed by event symbol or a
// reserved wildcard, one initial state, one or more final states.
package nfa

import (
	"strconv"

	"github.com/coregx/suse/event"
)

// StateID identifies a state by its dense index in [0, N).
type StateID uint32

// InvalidState is the sentinel returned when no valid state applies.
const InvalidState StateID = ^StateID(0)

func (id StateID) String() string {
	if id == InvalidState {
		return "<invalid>"
	}
	return strconv.FormatUint(uint64(id), 10)
}

// Wildcard is the reserved symbol matching any event type, in addition
// to whatever specific-symbol edges a state has. It is the same value as
// event.Wildcard.
const Wildcard = event.Wildcard

// State is one node of the automaton: whether it accepts, and its
// symbol-keyed transition table. Wildcard transitions are stored under
// the Wildcard key like any other symbol.
type State struct {
	IsFinal     bool
	Transitions map[event.Symbol][]StateID
}

func newState() State {
	return State{Transitions: make(map[event.Symbol][]StateID)}
}

// NFA is the compiled automaton: a dense slice of States plus the
// distinguished initial state id.
type NFA struct {
	States  []State
	Initial StateID
}

// New returns an empty NFA with n states (all non-final, no
// transitions) and the given initial state.
func New(n int, initial StateID) *NFA {
	states := make([]State, n)
	for i := range states {
		states[i] = newState()
	}
	return &NFA{States: states, Initial: initial}
}

// NumStates reports the number of states.
func (a *NFA) NumStates() int { return len(a.States) }

// AddState appends a new, non-final state with no transitions and
// returns its id.
func (a *NFA) AddState() StateID {
	a.States = append(a.States, newState())
	return StateID(len(a.States) - 1)
}

// AddTransition adds an edge from→to on the given symbol (use Wildcard
// for the wildcard edge).
func (a *NFA) AddTransition(from StateID, symbol event.Symbol, to StateID) {
	s := &a.States[from]
	s.Transitions[symbol] = append(s.Transitions[symbol], to)
}

// SetFinal marks a state as a final (accepting) state.
func (a *NFA) SetFinal(id StateID) {
	a.States[id].IsFinal = true
}

// IsFinal reports whether id is a final state.
func (a *NFA) IsFinal(id StateID) bool {
	return a.States[id].IsFinal
}

// Validate checks well-formedness: a valid initial state, at least one
// final state, and every transition target in range. Ids are dense by
// construction (they index States), so no separate check is made.
func (a *NFA) Validate() error {
	n := StateID(len(a.States))
	if a.Initial == InvalidState || a.Initial >= n {
		return &ValidationError{Cause: ErrNoInitialState, StateID: a.Initial}
	}
	finals := 0
	for id, s := range a.States {
		if s.IsFinal {
			finals++
		}
		for _, targets := range s.Transitions {
			for _, to := range targets {
				if to >= n {
					return &ValidationError{Cause: ErrInvalidStateID, StateID: StateID(id)}
				}
			}
		}
	}
	if finals == 0 {
		return &ValidationError{Cause: ErrNoFinalStates, StateID: InvalidState}
	}
	return nil
}
