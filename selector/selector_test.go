package selector

import (
	"testing"

	"github.com/coregx/suse/counter"
	"github.com/coregx/suse/eviction"
	"github.com/coregx/suse/event"
	"github.com/stretchr/testify/require"
)

func process(t *testing.T, s *CountSelector[int64], stream []event.Event) {
	t.Helper()
	for _, e := range stream {
		require.NoError(t, s.ProcessEvent(e))
	}
}

// Scenario 1 (spec.md §8): pattern a(b|c)d?e, window=10, capacity=10,
// stream abcde (timestamps 0..4) -> 4 contained complete matches.
func TestScenario1SimpleCompleteMatches(t *testing.T) {
	s, err := NewCountSelector[int64](counter.Int64Ops{}, "a(b|c)d?e", 10, 10, nil)
	require.NoError(t, err)

	stream := []event.Event{
		event.New('a', 0, 0),
		event.New('b', 0, 1),
		event.New('c', 0, 2),
		event.New('d', 0, 3),
		event.New('e', 0, 4),
	}
	process(t, s, stream)

	require.Equal(t, int64(4), s.NumberOfContainedCompleteMatches())
}

// Scenario 2: pattern a(b|c)+d?e, window=10, capacity=10, stream aabcde
// -> 12 contained complete matches.
func TestScenario2PlusQuantifier(t *testing.T) {
	s, err := NewCountSelector[int64](counter.Int64Ops{}, "a(b|c)+d?e", 10, 10, nil)
	require.NoError(t, err)

	stream := []event.Event{
		event.New('a', 0, 0),
		event.New('a', 0, 1),
		event.New('b', 0, 2),
		event.New('c', 0, 3),
		event.New('d', 0, 4),
		event.New('e', 0, 5),
	}
	process(t, s, stream)

	require.Equal(t, int64(12), s.NumberOfContainedCompleteMatches())
}

// Scenario 3: pattern abc, window=3, capacity=3, FIFO eviction, stream
// a..z (timestamps 0..25) must equal a fresh selector that only
// processed xyz (timestamps 23,24,25).
func TestScenario3FIFOEvictionMatchesTailOnly(t *testing.T) {
	streamFull := make([]event.Event, 26)
	for i := 0; i < 26; i++ {
		streamFull[i] = event.New(event.Symbol('a'+i), 0, uint64(i))
	}

	full, err := NewCountSelector[int64](counter.Int64Ops{}, "abc", 3, 3, nil)
	require.NoError(t, err)
	for _, e := range streamFull {
		require.NoError(t, full.ProcessEventWith(e, eviction.FIFO))
	}

	tail, err := NewCountSelector[int64](counter.Int64Ops{}, "abc", 3, 3, nil)
	require.NoError(t, err)
	for _, e := range streamFull[23:] {
		require.NoError(t, tail.ProcessEventWith(e, eviction.FIFO))
	}

	require.True(t, full.Equal(tail, func(a, b int64) bool { return a == b }))
}

// Scenario 4: pattern a(b*c)*d, sum semiring, stream
// (a,3,0),(b,4,1),(a,1,2),(b,2,3),(c,5,4),(d,6,5) ->
// 8 contained complete matches, sum 140.
func TestScenario4SumSemiring(t *testing.T) {
	s, err := NewSumSelector[int64](counter.Int64Ops{}, "a(b*c)*d", 10, 10, nil)
	require.NoError(t, err)

	stream := []event.Event{
		event.New('a', 3, 0),
		event.New('b', 4, 1),
		event.New('a', 1, 2),
		event.New('b', 2, 3),
		event.New('c', 5, 4),
		event.New('d', 6, 5),
	}
	for _, e := range stream {
		require.NoError(t, s.ProcessEvent(e))
	}

	require.Equal(t, int64(8), s.NumberOfContainedCompleteMatches())
	require.Equal(t, int64(140), s.SumOfContainedCompleteMatches())
}

// Scenario 5: same pattern, product semiring, values 3,5,2,4,2,5 ->
// 8 contained complete matches, product 77,760,000,000,000,
// geometric mean ~= 54.4934785300.
func TestScenario5ProductSemiring(t *testing.T) {
	s, err := NewProductSelector[int64](counter.Int64Ops{}, "a(b*c)*d", 10, 10, nil)
	require.NoError(t, err)

	values := []int64{3, 5, 2, 4, 2, 5}
	symbols := []event.Symbol{'a', 'b', 'a', 'b', 'c', 'd'}
	for i := range values {
		require.NoError(t, s.ProcessEvent(event.New(symbols[i], values[i], uint64(i))))
	}

	require.Equal(t, int64(8), s.NumberOfContainedCompleteMatches())
	require.Equal(t, int64(77760000000000), s.ProdOfContainedCompleteMatches())

	got := s.GeometricMeanOfContainedCompleteMatches()
	want := 54.4934785300
	if diff := got - want; diff > 1e-6 || diff < -1e-6 {
		t.Fatalf("geometric mean = %v, want ~%v", got, want)
	}
}

// P1 (spec.md §8): processing a stream with event k omitted equals
// processing the full stream then calling RemoveEvent(k), provided one
// further event follows the removal.
func TestSkipEqualsRemove(t *testing.T) {
	stream := []event.Event{
		event.New('a', 0, 0),
		event.New('b', 0, 1),
		event.New('b', 0, 2),
		event.New('c', 0, 3),
		event.New('d', 0, 4),
		event.New('e', 0, 5),
	}
	follower := event.New('e', 0, 6)

	for k := range stream {
		skip, err := NewCountSelector[int64](counter.Int64Ops{}, "a(b|c)+d?e", len(stream)+1, 42, nil)
		require.NoError(t, err)
		for i, e := range stream {
			if i == k {
				continue
			}
			require.NoError(t, skip.ProcessEvent(e))
		}
		require.NoError(t, skip.ProcessEvent(follower))

		removed, err := NewCountSelector[int64](counter.Int64Ops{}, "a(b|c)+d?e", len(stream)+1, 42, nil)
		require.NoError(t, err)
		for _, e := range stream {
			require.NoError(t, removed.ProcessEvent(e))
		}
		require.NoError(t, removed.RemoveEvent(k))
		require.NoError(t, removed.ProcessEvent(follower))

		require.Truef(t, skip.Equal(removed, func(a, b int64) bool { return a == b }),
			"skip-then-process and process-then-remove diverged for removal index %d", k)
	}
}

// P3 (spec.md §8): TTL-driven expiry equals explicit RemoveEvent of
// every entry whose age exceeds the TTL.
func TestTTLEquivalentToExplicitRemoval(t *testing.T) {
	ttl := uint64(5)

	stream := []event.Event{
		event.New('a', 0, 0),
		event.New('b', 0, 1),
		event.New('c', 0, 2),
		event.New('d', 0, 3),
	}
	dummy := event.New('z', 0, 3+ttl+1)

	ttlSel, err := NewCountSelector[int64](counter.Int64Ops{}, "a(b|c)d", 10, 10, &ttl)
	require.NoError(t, err)
	for _, e := range stream {
		require.NoError(t, ttlSel.ProcessEvent(e))
	}
	require.NoError(t, ttlSel.ProcessEvent(dummy))

	explicit, err := NewCountSelector[int64](counter.Int64Ops{}, "a(b|c)d", 10, 10, nil)
	require.NoError(t, err)
	for _, e := range stream {
		require.NoError(t, explicit.ProcessEvent(e))
	}
	// Remove every entry whose age at dummy's timestamp exceeds ttl,
	// from the front (indices shift as we remove).
	for explicit.Len() > 0 && dummy.Timestamp-explicit.EventAt(0).Timestamp > ttl {
		require.NoError(t, explicit.RemoveEvent(0))
	}
	require.NoError(t, explicit.ProcessEvent(dummy))

	require.True(t, ttlSel.Equal(explicit, func(a, b int64) bool { return a == b }))
}

// Open Question resolution: the sum semiring's window-reset value at
// the initial state is 0, not 1 (spec.md §9).
func TestSumInitialResetIsZero(t *testing.T) {
	s, err := NewSumSelector[int64](counter.Int64Ops{}, "a", 10, 10, nil)
	require.NoError(t, err)
	// Before any event, the sum total over final states must be 0: a
	// reset value of 1 at the initial state would leak into "a"'s
	// final-state aggregate as soon as the first event fires, which
	// would make the very first match's sum off by a spurious unit.
	require.NoError(t, s.ProcessEvent(event.New('a', 7, 0)))
	require.Equal(t, int64(7), s.SumOfContainedCompleteMatches())
}

// Open Question resolution: eviction with no strategy still advances
// current_time and slides the window before dropping the new event.
func TestNoStrategyStillAdvancesTime(t *testing.T) {
	s, err := NewCountSelector[int64](counter.Int64Ops{}, "a", 1, 100, nil)
	require.NoError(t, err)
	require.NoError(t, s.ProcessEvent(event.New('a', 0, 0)))
	// capacity is 1 and the default strategy never evicts, so this
	// second event is dropped — but current_time must still advance.
	require.NoError(t, s.ProcessEvent(event.New('a', 0, 5)))
	require.Equal(t, uint64(5), s.CurrentTime())
	require.Equal(t, 1, s.Len())
}
