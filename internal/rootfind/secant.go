package rootfind

import "math"

// Secant locates a root of f by iterating the secant formula over a
// trailing pair of points, seeded with a and the initial guess. It is
// the derivative-free counterpart of NewtonRaphson.
//
// [a, b] is a validity fence, not a bracket. Unlike NewtonRaphson,
// an update that leaves the fence does not fail: the midpoint of
// [a, b] is substituted as the next iterate and the solve continues.
// A collapsed difference |f(x_curr)-f(x_prev)| fails with ErrStalled.
// Convergence is declared on either the step size or the residual.
//
// On exhaustion the method fails with ErrIterationLimit by default,
// but the Result still reports the last iterate.
func Secant(f Func, a, b, guess float64, s *Settings) (Result, error) {
	tol := s.tolerance()
	maxIter := s.maxIterations()

	var res Result
	eval := counted(f, &res.FuncEvals)

	xPrev, xCurr := a, guess
	fPrev, fCurr := eval(xPrev), eval(xCurr)

	for i := 0; i < maxIter; i++ {
		res.Iterations = i + 1
		if math.Abs(fCurr-fPrev) < epsDenominator {
			res.Root = xCurr
			return res, methodError("secant", ErrStalled)
		}
		xNew := xCurr - fCurr*(xCurr-xPrev)/(fCurr-fPrev)
		if xNew < a || xNew > b {
			xNew = (a + b) / 2
		}
		fNew := eval(xNew)
		if math.Abs(xNew-xCurr) < tol || math.Abs(fNew) < tol {
			res.Root = xNew
			res.Converged = true
			return res, nil
		}
		xPrev, fPrev = xCurr, fCurr
		xCurr, fCurr = xNew, fNew
	}

	res.Root = xCurr
	if s.policy() == PolicyBestEffort {
		return res, nil
	}
	return res, methodError("secant", ErrIterationLimit)
}
