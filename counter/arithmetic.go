// Package counter implements the state-counter vector algebra and the
// advance kernels that fold one event into a delta over an NFA's edge
// list, for each of the three aggregation semirings (count, sum,
// product).
package counter

import "math/big"

// Arithmetic supplies the numeric operations a Vector[T] needs without
// requiring T to satisfy Go's built-in operators — spec.md §9 asks for
// "a semiring trait describing advance, element type, initial-unit
// value, combine-into-total operation" rather than inheritance; this
// interface is that trait, since a type constraint alone cannot express
// math/big.Int's method-based arithmetic.
type Arithmetic[T any] interface {
	Zero() T
	One() T
	Add(a, b T) T
	Sub(a, b T) T
	Mul(a, b T) T
	// Div is the product semiring's combine-inverse, used to undo a
	// removed event's exact multiplicative contribution from a running
	// total (spec.md §4.H's remove_event "subtract... the semiring
	// extras", generalized to each semiring's own inverse operation).
	// Callers only ever divide out a factor that was exactly multiplied
	// in, so exact (non-truncating) division is always expected here.
	Div(a, b T) T
	// MulScalarInt multiplies a by the integer scalar n (used by the sum
	// kernel's count[u]*value term; the product kernel's
	// pow(value, count[u]) term uses FromInt64 and Pow instead).
	MulScalarInt(a T, n int64) T
	// Pow raises base to a non-negative integer exponent.
	Pow(base T, exp int64) T
	// ToFloat converts to float64 for reporting (e.g. geometric mean);
	// precision loss here is a reporting concern only — the underlying
	// counters stay exact in T.
	ToFloat(a T) float64
	// ToInt64 extracts the exponent the product kernel raises an
	// event's value to (a path count). Path counts are expected to fit
	// machine width even when the aggregated weights themselves need
	// arbitrary precision.
	ToInt64(a T) int64
	// FromInt64 builds a T representing n, e.g. to lift an event's raw
	// integer value into the counter's numeric backend before Pow.
	FromInt64(n int64) T
}

// Int64Ops is the fixed-width Arithmetic[int64] implementation.
type Int64Ops struct{}

func (Int64Ops) Zero() int64                         { return 0 }
func (Int64Ops) One() int64                          { return 1 }
func (Int64Ops) Add(a, b int64) int64                { return a + b }
func (Int64Ops) Sub(a, b int64) int64                { return a - b }
func (Int64Ops) Mul(a, b int64) int64                { return a * b }
func (Int64Ops) Div(a, b int64) int64                { return a / b }
func (Int64Ops) MulScalarInt(a int64, n int64) int64 { return a * n }
func (Int64Ops) Pow(base int64, exp int64) int64 {
	result := int64(1)
	for i := int64(0); i < exp; i++ {
		result *= base
	}
	return result
}
func (Int64Ops) ToFloat(a int64) float64 { return float64(a) }
func (Int64Ops) ToInt64(a int64) int64   { return a }
func (Int64Ops) FromInt64(n int64) int64 { return n }

// BigIntOps is the arbitrary-precision Arithmetic[*big.Int]
// implementation, grounded on spec.md's treatment of the numeric
// backend as an abstract type (the original system used
// boost::multiprecision; math/big.Int is the standard library's direct
// analogue and the only arbitrary-precision option in the retrieved
// pack — see DESIGN.md).
type BigIntOps struct{}

func (BigIntOps) Zero() *big.Int { return big.NewInt(0) }
func (BigIntOps) One() *big.Int  { return big.NewInt(1) }
func (BigIntOps) Add(a, b *big.Int) *big.Int {
	return new(big.Int).Add(a, b)
}
func (BigIntOps) Sub(a, b *big.Int) *big.Int {
	return new(big.Int).Sub(a, b)
}
func (BigIntOps) Mul(a, b *big.Int) *big.Int {
	return new(big.Int).Mul(a, b)
}
func (BigIntOps) Div(a, b *big.Int) *big.Int {
	return new(big.Int).Quo(a, b)
}
func (BigIntOps) MulScalarInt(a *big.Int, n int64) *big.Int {
	return new(big.Int).Mul(a, big.NewInt(n))
}
func (BigIntOps) Pow(base *big.Int, exp int64) *big.Int {
	if exp < 0 {
		panic("counter: BigIntOps.Pow with negative exponent")
	}
	return new(big.Int).Exp(base, big.NewInt(exp), nil)
}
func (BigIntOps) ToFloat(a *big.Int) float64 {
	f := new(big.Float).SetInt(a)
	out, _ := f.Float64()
	return out
}
func (BigIntOps) ToInt64(a *big.Int) int64    { return a.Int64() }
func (BigIntOps) FromInt64(n int64) *big.Int { return big.NewInt(n) }
