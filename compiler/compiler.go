// Package compiler turns a pattern over the alphabet of event types plus
// the meta-symbols ()|*?.+ into a well-formed *nfa.NFA, via Thompson
// construction into an intermediate epsilon-NFA followed by an
// epsilon-elimination pass.
//
// # Supported syntax
//
//   - concatenation: "ab" matches events a then b
//   - union: "a|b"
//   - Kleene star: "a*"
//   - Kleene plus: "a+" (one mandatory occurrence, then any number more)
//   - optional: "a?"
//   - wildcard: "." matches any event type
//   - grouping: "(a|b)c"
//
// No backtracking features (backreferences, lookaround) are supported;
// the rest of the system only ever depends on the compiled NFA being
// well-formed, never on how it was produced (spec.md §4.A treats this
// package as an oracle).
//
// # Basic usage
//
//	automaton, err := compiler.Compile("a(b|c)d?e")
//	if err != nil {
//		// malformed pattern
//	}
package compiler

import "github.com/coregx/suse/nfa"

// Compile parses pattern and returns the equivalent well-formed NFA.
func Compile(pattern string) (*nfa.NFA, error) {
	p := newParser(pattern)
	f, err := p.parse()
	if err != nil {
		return nil, err
	}

	c := collapse(p.b, f.accept)

	a := nfa.New(len(c.transitions), nfa.StateID(f.start))
	for id, final := range c.isFinal {
		if final {
			a.SetFinal(nfa.StateID(id))
		}
	}
	for from, bySymbol := range c.transitions {
		for symbol, targets := range bySymbol {
			for _, to := range targets {
				a.AddTransition(nfa.StateID(from), symbol, nfa.StateID(to))
			}
		}
	}

	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

// MustCompile is like Compile but panics on error, for use in package
// initialisation and tests — mirroring coregex's Compile/MustCompile
// pairing.
func MustCompile(pattern string) *nfa.NFA {
	a, err := Compile(pattern)
	if err != nil {
		panic(err)
	}
	return a
}
