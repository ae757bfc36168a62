package selector

import (
	"github.com/coregx/suse/counter"
	"github.com/coregx/suse/eviction"
	"github.com/coregx/suse/event"
)

// SumSelector aggregates both the number of pattern matches and the
// sum of the matched events' values, over events currently retained
// (spec.md §4.I, sum semiring).
type SumSelector[T any] struct {
	*core[T]
}

// NewSumSelector compiles pattern and constructs a sum-semiring
// selector.
func NewSumSelector[T any](ops counter.Arithmetic[T], pattern string, summarySize int, timeWindowSize uint64, ttl *uint64) (*SumSelector[T], error) {
	desc := additiveDescriptor(counter.AdvanceSum[T], sumTrackReset[T])
	c, err := newCore(ops, pattern, summarySize, timeWindowSize, ttl, desc)
	if err != nil {
		return nil, err
	}
	return &SumSelector[T]{core: c}, nil
}

func (s *SumSelector[T]) ProcessEvent(e event.Event) error {
	return s.core.ProcessEvent(e, eviction.Never)
}

func (s *SumSelector[T]) ProcessEventWith(e event.Event, strategy eviction.Strategy) error {
	return s.core.ProcessEvent(e, strategy)
}

func (s *SumSelector[T]) NumberOfContainedCompleteMatches() T {
	return s.totalCounter.SumOverMask(s.final)
}

func (s *SumSelector[T]) NumberOfContainedPartialMatches() T {
	return s.totalCounter.SumOverMask(s.partial)
}

func (s *SumSelector[T]) NumberOfDetectedCompleteMatches() T {
	return s.totalDetected.SumOverMask(s.final)
}

func (s *SumSelector[T]) NumberOfDetectedPartialMatches() T {
	return s.totalDetected.SumOverMask(s.partial)
}

// SumOfContainedCompleteMatches sums the value-weighted track over
// final states, for events still retained.
func (s *SumSelector[T]) SumOfContainedCompleteMatches() T {
	return s.totalExtra.SumOverMask(s.final)
}

// SumOfContainedPartialMatches sums the value-weighted track over
// non-final states, for events still retained.
func (s *SumSelector[T]) SumOfContainedPartialMatches() T {
	return s.totalExtra.SumOverMask(s.partial)
}

// SumOfDetectedCompleteMatches sums the value-weighted track over final
// states, accumulated over every event ever processed.
func (s *SumSelector[T]) SumOfDetectedCompleteMatches() T {
	return s.totalDetectedExtra.SumOverMask(s.final)
}

// SumOfDetectedPartialMatches sums the value-weighted track over
// non-final states, accumulated over every event ever processed.
func (s *SumSelector[T]) SumOfDetectedPartialMatches() T {
	return s.totalDetectedExtra.SumOverMask(s.partial)
}

func (s *SumSelector[T]) Equal(other *SumSelector[T], eq func(a, b T) bool) bool {
	return coreEqual(s.core, other.core, eq)
}
