package compiler

import (
	"testing"

	"github.com/coregx/suse/event"
	"github.com/coregx/suse/nfa"
)

func symbolsOf(s string) []event.Symbol {
	out := make([]event.Symbol, len(s))
	for i, r := range s {
		out[i] = event.Symbol(r)
	}
	return out
}

func runNFA(t *testing.T, pattern string, symbols []event.Symbol) bool {
	t.Helper()
	a := MustCompile(pattern)
	current := map[nfa.StateID]bool{a.Initial: true}
	for _, sym := range symbols {
		next := map[nfa.StateID]bool{}
		for id := range current {
			for _, to := range a.States[id].Transitions[sym] {
				next[to] = true
			}
			for _, to := range a.States[id].Transitions[event.Wildcard] {
				next[to] = true
			}
		}
		current = next
		if len(current) == 0 {
			return false
		}
	}
	for id := range current {
		if a.IsFinal(id) {
			return true
		}
	}
	return false
}

func TestCompileSimpleConcat(t *testing.T) {
	if !runNFA(t, "abc", symbolsOf("abc")) {
		t.Fatal("expected abc to match abc")
	}
	if runNFA(t, "abc", symbolsOf("abd")) {
		t.Fatal("expected abd not to match abc")
	}
}

func TestCompileAlternation(t *testing.T) {
	a := MustCompile("a(b|c)d?e")
	if err := a.Validate(); err != nil {
		t.Fatalf("unexpected invalid NFA: %v", err)
	}
	if !runNFA(t, "a(b|c)d?e", symbolsOf("abde")) {
		t.Fatal("expected abde to match a(b|c)d?e")
	}
	if !runNFA(t, "a(b|c)d?e", symbolsOf("ace")) {
		t.Fatal("expected ace to match a(b|c)d?e")
	}
}

func TestCompilePlusAndOptional(t *testing.T) {
	a := MustCompile("a(b|c)+d?e")
	if err := a.Validate(); err != nil {
		t.Fatalf("unexpected invalid NFA: %v", err)
	}
	if !runNFA(t, "a(b|c)+d?e", symbolsOf("abce")) {
		t.Fatal("expected abce to match a(b|c)+d?e")
	}
}

func TestCompileWildcard(t *testing.T) {
	a := MustCompile("a.c")
	if err := a.Validate(); err != nil {
		t.Fatalf("unexpected invalid NFA: %v", err)
	}
	if !runNFA(t, "a.c", symbolsOf("abc")) {
		t.Fatal("expected a.c to match abc via wildcard")
	}
}

func TestCompileRejectsUnbalancedParen(t *testing.T) {
	if _, err := Compile("a(bc"); err == nil {
		t.Fatal("expected error for unbalanced parenthesis")
	}
}

func TestCompileRejectsEmptyPattern(t *testing.T) {
	if _, err := Compile(""); err == nil {
		t.Fatal("expected error for empty pattern")
	}
}
