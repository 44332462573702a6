// Package rootfind implements iterative root-finding for continuous
// real-valued functions of one variable: two bracketing methods
// (Bisection, RegulaFalsi) and two open methods (NewtonRaphson,
// Secant). Each method is a stateless pure function; all state lives
// within a single call.
package rootfind

// Func is a caller-supplied evaluable mapping a real number to a real
// number. It must be deterministic and side-effect-free for the
// convergence reasoning to hold. A Func is invoked a finite number of
// times per call, bounded by the iteration cap.
type Func func(x float64) float64

const (
	// DefaultTolerance is the absolute convergence tolerance, applied
	// to the residual |f(x)|, the step size, or the bracket width
	// depending on the method.
	DefaultTolerance = 1e-6

	// DefaultMaxIterations caps the iterations of a single call. It is
	// a safety valve against non-converging inputs, not a derived
	// bound; the convergence rates of these methods reach the default
	// tolerance in far fewer steps on well-posed problems.
	DefaultMaxIterations = 1_000_000

	// epsDenominator is the threshold below which a denominator
	// (derivative, or difference of function values) is treated as
	// collapsed.
	epsDenominator = 1e-12
)

// ExhaustionPolicy selects what a method reports when it reaches the
// iteration cap without meeting a convergence criterion.
type ExhaustionPolicy int

const (
	// PolicyMethodDefault keeps each method's own exhaustion behavior:
	// Bisection reports its current midpoint as a best-effort success,
	// RegulaFalsi and NewtonRaphson fail, and Secant fails while still
	// populating the last iterate in the Result.
	PolicyMethodDefault ExhaustionPolicy = iota

	// PolicyBestEffort reports the current estimate with a nil error
	// for every method. Result.Converged stays false.
	PolicyBestEffort

	// PolicyFail reports ErrIterationLimit for every method. The
	// Result still carries the current estimate.
	PolicyFail
)

// Settings configures a single solve. A nil *Settings selects the
// defaults, so callers without special requirements can pass nil.
type Settings struct {
	// Tolerance is the absolute convergence tolerance. Zero or
	// negative selects DefaultTolerance.
	Tolerance float64

	// MaxIterations caps the iteration count. Zero or negative selects
	// DefaultMaxIterations.
	MaxIterations int

	// OnExhaustion controls what is reported when MaxIterations is
	// reached without convergence.
	OnExhaustion ExhaustionPolicy
}

func (s *Settings) tolerance() float64 {
	if s == nil || s.Tolerance <= 0 {
		return DefaultTolerance
	}
	return s.Tolerance
}

func (s *Settings) maxIterations() int {
	if s == nil || s.MaxIterations <= 0 {
		return DefaultMaxIterations
	}
	return s.MaxIterations
}

func (s *Settings) policy() ExhaustionPolicy {
	if s == nil {
		return PolicyMethodDefault
	}
	return s.OnExhaustion
}

// Result reports the outcome of a solve.
//
// Root is trustworthy when the returned error is nil. On failure it
// still carries the best current estimate where one exists (the last
// iterate, or the point where the failure was detected), so callers
// diagnosing a failed solve can see where the method stopped.
type Result struct {
	// Root is the converged root estimate, or the method's current
	// estimate when the solve did not converge.
	Root float64

	// Iterations is the number of loop iterations performed. A
	// precondition failure reports zero.
	Iterations int

	// FuncEvals counts evaluations of the caller's function(s),
	// including derivative evaluations for NewtonRaphson.
	FuncEvals int

	// Converged is true when a convergence criterion was met, as
	// opposed to a best-effort estimate reported on exhaustion.
	Converged bool
}

// counted wraps f so each invocation increments *n.
func counted(f Func, n *int) Func {
	return func(x float64) float64 {
		*n++
		return f(x)
	}
}
