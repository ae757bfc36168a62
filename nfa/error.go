package nfa

import "errors"

// Sentinel errors for NFA validation. Validate returns
// ErrNoInitialState, ErrInvalidStateID or ErrNoFinalStates wrapped in a
// ValidationError; ErrNonDenseStateID is not returned, since state ids
// are indices into NFA.States and so are always dense. Edge-list
// construction cannot fail.
var (
	ErrNoInitialState  = errors.New("nfa: no initial state set")
	ErrNoFinalStates   = errors.New("nfa: no final states")
	ErrInvalidStateID  = errors.New("nfa: transition references an invalid state id")
	ErrNonDenseStateID = errors.New("nfa: state ids are not a dense [0,N) range")
)

// ValidationError wraps a sentinel error with the offending state or
// transition for diagnostics, the way coregex's CompileError wraps its
// own sentinels.
type ValidationError struct {
	Cause   error
	StateID StateID
}

func (e *ValidationError) Error() string {
	return "nfa: validation failed at state " + e.StateID.String() + ": " + e.Cause.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}
