package selector

import (
	"github.com/coregx/suse/counter"
	"github.com/coregx/suse/eviction"
	"github.com/coregx/suse/event"
)

// CountSelector aggregates the number of pattern matches over the
// events currently retained (spec.md §4.I, count semiring).
type CountSelector[T any] struct {
	*core[T]
}

// NewCountSelector compiles pattern and constructs a count-semiring
// selector. ttl is nil for "unbounded" (spec.md §6).
func NewCountSelector[T any](ops counter.Arithmetic[T], pattern string, summarySize int, timeWindowSize uint64, ttl *uint64) (*CountSelector[T], error) {
	desc := additiveDescriptor(countKernel[T], countTrackReset[T])
	c, err := newCore(ops, pattern, summarySize, timeWindowSize, ttl, desc)
	if err != nil {
		return nil, err
	}
	return &CountSelector[T]{core: c}, nil
}

// ProcessEvent advances the selector with the default "never evict"
// strategy.
func (s *CountSelector[T]) ProcessEvent(e event.Event) error {
	return s.core.ProcessEvent(e, eviction.Never)
}

// ProcessEventWith advances the selector with an explicit eviction
// strategy.
func (s *CountSelector[T]) ProcessEventWith(e event.Event, strategy eviction.Strategy) error {
	return s.core.ProcessEvent(e, strategy)
}

// NumberOfContainedCompleteMatches sums the count track over final
// states, for events still retained.
func (s *CountSelector[T]) NumberOfContainedCompleteMatches() T {
	return s.totalCounter.SumOverMask(s.final)
}

// NumberOfContainedPartialMatches sums the count track over non-final
// states, for events still retained.
func (s *CountSelector[T]) NumberOfContainedPartialMatches() T {
	return s.totalCounter.SumOverMask(s.partial)
}

// NumberOfDetectedCompleteMatches sums the count track over final
// states, accumulated over every event ever processed.
func (s *CountSelector[T]) NumberOfDetectedCompleteMatches() T {
	return s.totalDetected.SumOverMask(s.final)
}

// NumberOfDetectedPartialMatches sums the count track over non-final
// states, accumulated over every event ever processed.
func (s *CountSelector[T]) NumberOfDetectedPartialMatches() T {
	return s.totalDetected.SumOverMask(s.partial)
}

// Equal reports structural equality per spec.md §6: same edge list,
// cache contents, active window, current time, and total counters.
func (s *CountSelector[T]) Equal(other *CountSelector[T], eq func(a, b T) bool) bool {
	return coreEqual(s.core, other.core, eq)
}

func coreEqual[T any](a, b *core[T], eq func(x, y T) bool) bool {
	if !a.edges.Equal(b.edges) {
		return false
	}
	if a.currentTime != b.currentTime {
		return false
	}
	if len(a.cache) != len(b.cache) {
		return false
	}
	for i := range a.cache {
		if !a.cache[i].event.Equal(b.cache[i].event) {
			return false
		}
		if !a.cache[i].stateCounter.Equal(b.cache[i].stateCounter, eq) {
			return false
		}
		if !a.cache[i].extraCounter.Equal(b.cache[i].extraCounter, eq) {
			return false
		}
	}
	if !a.totalCounter.Equal(b.totalCounter, eq) {
		return false
	}
	if !a.totalExtra.Equal(b.totalExtra, eq) {
		return false
	}
	if a.window.startIdx != b.window.startIdx {
		return false
	}
	if !a.window.totalCounter.Equal(b.window.totalCounter, eq) {
		return false
	}
	if !a.window.totalExtra.Equal(b.window.totalExtra, eq) {
		return false
	}
	return true
}
