package rootfind

import "math"

// RegulaFalsi locates a root of f inside the bracket [a, b] by the
// false-position method: each iteration probes the x-intercept of the
// secant line through the bracket endpoints instead of the midpoint.
//
// The precondition matches Bisection: an exact-zero endpoint returns
// immediately, and a bracket without a sign change fails with
// ErrNoSignChange. A collapsed endpoint difference |f(b)-f(a)| fails
// with ErrStalled. If the computed intercept falls outside the open
// interval (a, b) the bisection midpoint is substituted for that
// iteration only.
//
// One endpoint can stall while the other converges (the classic
// false-position pathology), so the method has no bracket-halving
// guarantee and fails with ErrIterationLimit on exhaustion by default.
func RegulaFalsi(f Func, a, b float64, s *Settings) (Result, error) {
	tol := s.tolerance()
	maxIter := s.maxIterations()

	var res Result
	eval := counted(f, &res.FuncEvals)

	fa := eval(a)
	if fa == 0 {
		res.Root = a
		res.Converged = true
		return res, nil
	}
	fb := eval(b)
	if fb == 0 {
		res.Root = b
		res.Converged = true
		return res, nil
	}
	if fa*fb >= 0 {
		return res, methodError("regula_falsi", ErrNoSignChange)
	}

	var c float64
	for i := 0; i < maxIter; i++ {
		res.Iterations = i + 1
		if math.Abs(fb-fa) < epsDenominator {
			res.Root = c
			return res, methodError("regula_falsi", ErrStalled)
		}
		c = a - fa*(b-a)/(fb-fa)
		if c <= a || c >= b {
			// Numerical pathology pushed the intercept out of the
			// open interval; fall back to the midpoint this round.
			c = (a + b) / 2
		}
		fc := eval(c)
		if math.Abs(fc) < tol || math.Abs(b-a) < tol {
			res.Root = c
			res.Converged = true
			return res, nil
		}
		if fc*fa < 0 {
			b = c
			fb = fc
		} else {
			a = c
			fa = fc
		}
	}

	res.Root = c
	if s.policy() == PolicyBestEffort {
		return res, nil
	}
	return res, methodError("regula_falsi", ErrIterationLimit)
}
