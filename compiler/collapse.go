package compiler

import "github.com/coregx/suse/event"

// epsilonClosure returns every eState index reachable from start via
// zero or more epsilon transitions, start included — the same
// breadth-first closure mabhi256-codecrafters-grep-go/app/nfa/nfa.go
// computes at match time, run once here at compile time instead.
func epsilonClosure(states []eState, start int) map[int]bool {
	closure := map[int]bool{start: true}
	stack := []int{start}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, next := range states[s].eps {
			if !closure[next] {
				closure[next] = true
				stack = append(stack, next)
			}
		}
	}
	return closure
}

// collapsed is the intermediate dense, epsilon-free representation
// produced from an eBuilder + accept state. It keeps a 1:1 mapping with
// the builder's state indices (no state merging/minimization) so that
// every state that could carry distinguishable summary-selector history
// remains addressable; only epsilon edges are eliminated, by folding
// each state's symbol edges together with the symbol edges reachable
// through its own epsilon closure.
type collapsed struct {
	isFinal     []bool
	transitions []map[event.Symbol][]int
}

func collapse(b *eBuilder, accept int) *collapsed {
	n := len(b.states)
	c := &collapsed{
		isFinal:     make([]bool, n),
		transitions: make([]map[event.Symbol][]int, n),
	}
	for s := 0; s < n; s++ {
		c.transitions[s] = make(map[event.Symbol][]int)
		closure := epsilonClosure(b.states, s)
		for member := range closure {
			if member == accept {
				c.isFinal[s] = true
			}
			for _, tr := range b.states[member].trans {
				c.transitions[s][tr.symbol] = append(c.transitions[s][tr.symbol], tr.to)
			}
		}
	}
	return c
}
