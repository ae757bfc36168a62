package selector

import (
	"math"

	"github.com/coregx/suse/counter"
	"github.com/coregx/suse/eviction"
	"github.com/coregx/suse/event"
)

// ProductSelector aggregates the number of pattern matches and the
// product of the matched events' values, plus the derived geometric
// mean, over events currently retained (spec.md §4.I, product
// semiring).
type ProductSelector[T any] struct {
	*core[T]
}

// NewProductSelector compiles pattern and constructs a product-semiring
// selector.
func NewProductSelector[T any](ops counter.Arithmetic[T], pattern string, summarySize int, timeWindowSize uint64, ttl *uint64) (*ProductSelector[T], error) {
	desc := multiplicativeDescriptor(counter.AdvanceProd[T], productTrackReset[T])
	c, err := newCore(ops, pattern, summarySize, timeWindowSize, ttl, desc)
	if err != nil {
		return nil, err
	}
	return &ProductSelector[T]{core: c}, nil
}

func (s *ProductSelector[T]) ProcessEvent(e event.Event) error {
	return s.core.ProcessEvent(e, eviction.Never)
}

func (s *ProductSelector[T]) ProcessEventWith(e event.Event, strategy eviction.Strategy) error {
	return s.core.ProcessEvent(e, strategy)
}

func (s *ProductSelector[T]) NumberOfContainedCompleteMatches() T {
	return s.totalCounter.SumOverMask(s.final)
}

func (s *ProductSelector[T]) NumberOfContainedPartialMatches() T {
	return s.totalCounter.SumOverMask(s.partial)
}

func (s *ProductSelector[T]) NumberOfDetectedCompleteMatches() T {
	return s.totalDetected.SumOverMask(s.final)
}

func (s *ProductSelector[T]) NumberOfDetectedPartialMatches() T {
	return s.totalDetected.SumOverMask(s.partial)
}

// ProdOfContainedCompleteMatches is the product (not sum) of the
// value-weighted track over final states, for events still retained.
func (s *ProductSelector[T]) ProdOfContainedCompleteMatches() T {
	return s.totalExtra.ProductOverMask(s.final)
}

// ProdOfContainedPartialMatches is the product over non-final states,
// for events still retained.
func (s *ProductSelector[T]) ProdOfContainedPartialMatches() T {
	return s.totalExtra.ProductOverMask(s.partial)
}

// ProdOfDetectedCompleteMatches is the product over final states,
// accumulated over every event ever processed.
func (s *ProductSelector[T]) ProdOfDetectedCompleteMatches() T {
	return s.totalDetectedExtra.ProductOverMask(s.final)
}

// ProdOfDetectedPartialMatches is the product over non-final states,
// accumulated over every event ever processed.
func (s *ProductSelector[T]) ProdOfDetectedPartialMatches() T {
	return s.totalDetectedExtra.ProductOverMask(s.partial)
}

// GeometricMeanOfContainedCompleteMatches is
// prod_over_complete_matches ^ (1 / count_over_complete_matches),
// reported as a float64 approximation — see SPEC_FULL.md's
// Supplemented Features section on why the geometric mean is not kept
// exact in T the way the count/sum/product totals are.
func (s *ProductSelector[T]) GeometricMeanOfContainedCompleteMatches() float64 {
	return geometricMean(s.ops, s.ProdOfContainedCompleteMatches(), s.NumberOfContainedCompleteMatches())
}

// GeometricMeanOfContainedPartialMatches is the analogous ratio over
// non-final (partial) states.
func (s *ProductSelector[T]) GeometricMeanOfContainedPartialMatches() float64 {
	return geometricMean(s.ops, s.ProdOfContainedPartialMatches(), s.NumberOfContainedPartialMatches())
}

// GeometricMeanOfDetectedCompleteMatches is the detected-totals
// variant, accumulated over every event ever processed.
func (s *ProductSelector[T]) GeometricMeanOfDetectedCompleteMatches() float64 {
	return geometricMean(s.ops, s.ProdOfDetectedCompleteMatches(), s.NumberOfDetectedCompleteMatches())
}

// GeometricMeanOfDetectedPartialMatches is the detected-totals variant
// over non-final states.
func (s *ProductSelector[T]) GeometricMeanOfDetectedPartialMatches() float64 {
	return geometricMean(s.ops, s.ProdOfDetectedPartialMatches(), s.NumberOfDetectedPartialMatches())
}

func geometricMean[T any](ops counter.Arithmetic[T], product, count T) float64 {
	n := ops.ToFloat(count)
	if n == 0 {
		return 0
	}
	return math.Pow(ops.ToFloat(product), 1/n)
}

func (s *ProductSelector[T]) Equal(other *ProductSelector[T], eq func(a, b T) bool) bool {
	return coreEqual(s.core, other.core, eq)
}
