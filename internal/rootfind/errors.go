package rootfind

import (
	"errors"
	"fmt"
)

// Sentinel failures. Every error returned by this package wraps one of
// these, so callers can classify outcomes with errors.Is.
var (
	// ErrNoSignChange reports that f(a) and f(b) share a sign, so the
	// bracket is not guaranteed to contain a root. No iterations are
	// performed.
	ErrNoSignChange = errors.New("rootfind: no sign change over the bracket")

	// ErrStalled reports that a denominator (the difference of two
	// function values) collapsed below the guard threshold.
	ErrStalled = errors.New("rootfind: iteration stalled on a collapsed denominator")

	// ErrDerivativeVanished reports that the derivative evaluated to
	// (near) zero at the current iterate.
	ErrDerivativeVanished = errors.New("rootfind: derivative vanished at iterate")

	// ErrOutOfBounds reports that an iterate left the validity
	// interval [a, b].
	ErrOutOfBounds = errors.New("rootfind: iterate left the interval")

	// ErrIterationLimit reports that the iteration cap was reached
	// before any convergence criterion was met.
	ErrIterationLimit = errors.New("rootfind: iteration limit reached")
)

// Error is a solve error carrying the method that produced it. It
// wraps one of the package sentinels, which Unwrap exposes.
type Error struct {
	// Method is the method name, e.g. "bisection".
	Method string
	// Err is the underlying sentinel failure.
	Err error
}

// Error returns the string representation of the error.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Method == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Method, e.Err)
}

// Unwrap returns the underlying sentinel, if any.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// methodError wraps a sentinel with the reporting method's name.
func methodError(method string, err error) *Error {
	return &Error{Method: method, Err: err}
}
