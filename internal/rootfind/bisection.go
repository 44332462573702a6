package rootfind

import "math"

// Bisection locates a root of f inside the bracket [a, b] by repeated
// interval halving.
//
// f(a) and f(b) must have opposite signs; if either endpoint is
// already an exact root it is returned immediately, and otherwise a
// bracket without a sign change fails with ErrNoSignChange before any
// iteration. Convergence is declared when the residual |f(c)| or the
// bracket width |b-a| drops below the tolerance.
//
// The bracket halves every iteration, so convergence is guaranteed for
// a valid bracket. Because of that guarantee the method defaults to
// reporting its current midpoint as a best-effort success if the
// iteration cap is somehow reached.
func Bisection(f Func, a, b float64, s *Settings) (Result, error) {
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
		return res, methodError("bisection", ErrNoSignChange)
	}

	c := a
	for i := 0; i < maxIter; i++ {
		res.Iterations = i + 1
		c = (a + b) / 2
		fc := eval(c)
		if math.Abs(fc) < tol || math.Abs(b-a) < tol {
			res.Root = c
			res.Converged = true
			return res, nil
		}
		// Keep the half whose endpoints still bound a sign change,
		// comparing against the cached f(a) rather than re-evaluating.
		if fc*fa < 0 {
			b = c
		} else {
			a = c
			fa = fc
		}
	}

	res.Root = c
	if s.policy() == PolicyFail {
		return res, methodError("bisection", ErrIterationLimit)
	}
	return res, nil
}
