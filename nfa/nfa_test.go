package nfa

import (
	"testing"

	"github.com/coregx/suse/event"
)

func TestValidateRejectsNoFinal(t *testing.T) {
	a := New(2, 0)
	if err := a.Validate(); err == nil {
		t.Fatal("expected error for NFA with no final states")
	}
}

func TestValidateRejectsInvalidTarget(t *testing.T) {
	a := New(2, 0)
	a.SetFinal(1)
	a.AddTransition(0, 'a', 5)
	if err := a.Validate(); err == nil {
		t.Fatal("expected error for out-of-range transition target")
	}
}

func TestValidateAccepts(t *testing.T) {
	a := New(2, 0)
	a.SetFinal(1)
	a.AddTransition(0, 'a', 1)
	if err := a.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestEdgeListEqualIgnoresOrder(t *testing.T) {
	a := New(3, 0)
	a.SetFinal(2)
	a.AddTransition(0, 'a', 1)
	a.AddTransition(0, 'a', 2)

	b := New(3, 0)
	b.SetFinal(2)
	b.AddTransition(0, 'a', 2)
	b.AddTransition(0, 'a', 1)

	ea := ComputeEdges(a)
	eb := ComputeEdges(b)
	if !ea.Equal(eb) {
		t.Fatal("expected edge lists to compare equal regardless of insertion order")
	}
}

func TestEdgesForWildcard(t *testing.T) {
	a := New(2, 0)
	a.SetFinal(1)
	a.AddTransition(0, event.Wildcard, 1)
	el := ComputeEdges(a)
	edges := el.EdgesFor(event.Wildcard)
	if len(edges) != 1 || edges[0].To != 1 {
		t.Fatalf("unexpected wildcard edges: %+v", edges)
	}
}
