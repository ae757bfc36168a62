package counter

import (
	"github.com/coregx/suse/event"
	"github.com/coregx/suse/nfa"
)

// Advance is the count-semiring kernel. Given the "before" counter c,
// it returns the delta Δ such that c+Δ is the counter after stepping the
// automaton on symbol, walking edges.EdgesFor(symbol) and then
// edges.EdgesFor(event.Wildcard): Δ[v] += c[u] for every edge u→v.
//
// Grounded on original_source/src/execution_state_counter_impl.hpp's
// free function `advance`.
func Advance[T any](ops Arithmetic[T], c Vector[T], edges *nfa.EdgeList, symbol event.Symbol) Vector[T] {
	delta := NewVector(ops, c.Len())
	applyCount(ops, &delta, c, edges.EdgesFor(symbol))
	applyCount(ops, &delta, c, edges.EdgesFor(event.Wildcard))
	return delta
}

func applyCount[T any](ops Arithmetic[T], delta *Vector[T], c Vector[T], edges []nfa.Edge) {
	for _, e := range edges {
		delta.Set(int(e.To), ops.Add(delta.At(int(e.To)), c.At(int(e.From))))
	}
}

// AdvanceSum is the sum-semiring kernel: Δ[v] += sumC[u] + countC[u]*value,
// for every edge u→v on the event's symbol, then on the wildcard.
//
// Grounded on original_source/src/execution_state_counter_impl.hpp's
// `advance_sum`.
func AdvanceSum[T any](ops Arithmetic[T], countC, sumC Vector[T], edges *nfa.EdgeList, e event.Event) Vector[T] {
	delta := NewVector(ops, sumC.Len())
	applySum(ops, &delta, countC, sumC, edges.EdgesFor(e.Type), e.Value)
	applySum(ops, &delta, countC, sumC, edges.EdgesFor(event.Wildcard), e.Value)
	return delta
}

func applySum[T any](ops Arithmetic[T], delta *Vector[T], countC, sumC Vector[T], edges []nfa.Edge, value int64) {
	for _, e := range edges {
		contribution := ops.Add(sumC.At(int(e.From)), ops.MulScalarInt(countC.At(int(e.From)), value))
		delta.Set(int(e.To), ops.Add(delta.At(int(e.To)), contribution))
	}
}

// AdvanceProd is the product-semiring kernel: Δ starts all-ones, then
// Δ[v] *= prodC[u] * pow(value, countC[u]) for every edge u→v on the
// event's symbol, then on the wildcard.
//
// Grounded on spec.md §4.F (the call-site formula in
// original_source/src/summary_selector_prod.hpp's add_event does not
// survive with a standalone advance_prod body in the retrieved excerpt;
// this is the one kernel taken directly from spec.md rather than from
// source).
func AdvanceProd[T any](ops Arithmetic[T], countC, prodC Vector[T], edges *nfa.EdgeList, e event.Event) Vector[T] {
	delta := NewVectorFilled(ops, prodC.Len(), ops.One())
	applyProd(ops, &delta, countC, prodC, edges.EdgesFor(e.Type), e.Value)
	applyProd(ops, &delta, countC, prodC, edges.EdgesFor(event.Wildcard), e.Value)
	return delta
}

func applyProd[T any](ops Arithmetic[T], delta *Vector[T], countC, prodC Vector[T], edges []nfa.Edge, value int64) {
	for _, e := range edges {
		exponent := ops.ToInt64(countC.At(int(e.From)))
		var valuePow T
		if exponent == 0 {
			valuePow = ops.One()
		} else {
			valuePow = ops.Pow(ops.FromInt64(value), exponent)
		}
		contribution := ops.Mul(prodC.At(int(e.From)), valuePow)
		delta.Set(int(e.To), ops.Mul(delta.At(int(e.To)), contribution))
	}
}
