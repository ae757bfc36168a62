package counter

import (
	"testing"

	"github.com/coregx/suse/event"
	"github.com/coregx/suse/nfa"
)

func TestVectorAddSub(t *testing.T) {
	ops := Int64Ops{}
	a := NewVector[int64](ops, 3)
	a.Set(0, 1)
	a.Set(1, 2)
	b := NewVector[int64](ops, 3)
	b.Set(0, 10)
	b.Set(2, 5)

	a.AddInto(b)
	if a.At(0) != 11 || a.At(1) != 2 || a.At(2) != 5 {
		t.Fatalf("unexpected result after AddInto: %v %v %v", a.At(0), a.At(1), a.At(2))
	}

	a.SubInto(b)
	if a.At(0) != 1 || a.At(1) != 2 || a.At(2) != 0 {
		t.Fatalf("unexpected result after SubInto: %v %v %v", a.At(0), a.At(1), a.At(2))
	}
}

func TestVectorLengthMismatchPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic on length mismatch")
		}
	}()
	ops := Int64Ops{}
	a := NewVector[int64](ops, 2)
	b := NewVector[int64](ops, 3)
	a.AddInto(b)
}

func TestAdvanceCountKernel(t *testing.T) {
	ops := Int64Ops{}
	a := nfa.New(2, 0)
	a.SetFinal(1)
	a.AddTransition(0, 'a', 1)
	edges := nfa.ComputeEdges(a)

	c := NewVector[int64](ops, 2)
	c.Set(0, 1)

	delta := Advance(ops, c, edges, 'a')
	if delta.At(1) != 1 {
		t.Fatalf("expected delta[1]==1, got %v", delta.At(1))
	}
}

func TestAdvanceSumKernel(t *testing.T) {
	ops := Int64Ops{}
	a := nfa.New(2, 0)
	a.SetFinal(1)
	a.AddTransition(0, 'a', 1)
	edges := nfa.ComputeEdges(a)

	count := NewVector[int64](ops, 2)
	count.Set(0, 2) // two prior paths ending at state 0
	sum := NewVector[int64](ops, 2)
	sum.Set(0, 7)

	delta := AdvanceSum(ops, count, sum, edges, event.New('a', 5, 0))
	// sum[0] + count[0]*value = 7 + 2*5 = 17
	if delta.At(1) != 17 {
		t.Fatalf("expected delta[1]==17, got %v", delta.At(1))
	}
}

func TestAdvanceProdKernel(t *testing.T) {
	ops := Int64Ops{}
	a := nfa.New(2, 0)
	a.SetFinal(1)
	a.AddTransition(0, 'a', 1)
	edges := nfa.ComputeEdges(a)

	count := NewVector[int64](ops, 2)
	count.Set(0, 2)
	prod := NewVector[int64](ops, 2)
	prod.Set(0, 3)

	delta := AdvanceProd(ops, count, prod, edges, event.New('a', 5, 0))
	// prod[0] * value^count[0] = 3 * 5^2 = 75
	if delta.At(1) != 75 {
		t.Fatalf("expected delta[1]==75, got %v", delta.At(1))
	}
}

func TestSumOverMaskAndProductOverMask(t *testing.T) {
	ops := Int64Ops{}
	v := NewVector[int64](ops, 3)
	v.Set(0, 2)
	v.Set(1, 3)
	v.Set(2, 4)
	mask := []bool{true, false, true}
	if got := v.SumOverMask(mask); got != 6 {
		t.Fatalf("SumOverMask: got %v, want 6", got)
	}
	if got := v.ProductOverMask(mask); got != 8 {
		t.Fatalf("ProductOverMask: got %v, want 8", got)
	}
}
