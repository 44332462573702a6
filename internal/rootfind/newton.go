package rootfind

import "math"

// NewtonRaphson locates a root of f by iterating c - f(c)/g(c) from
// the initial guess, where g is the derivative of f.
//
// [a, b] is a validity fence rather than a bracket: an iterate that
// steps outside it fails immediately with ErrOutOfBounds, with no
// clamping or fallback. A derivative below the guard threshold fails
// with ErrDerivativeVanished. Convergence is declared on the step
// size |c_next - c|, not the residual.
//
// Convergence is quadratic near a simple root but unguaranteed
// globally; the fence is the only safety net against runaway
// iterates, and exhaustion fails by default.
func NewtonRaphson(f, g Func, a, b, guess float64, s *Settings) (Result, error) {
	tol := s.tolerance()
	maxIter := s.maxIterations()

	var res Result
	evalF := counted(f, &res.FuncEvals)
	evalG := counted(g, &res.FuncEvals)

	c := guess
	for i := 0; i < maxIter; i++ {
		res.Iterations = i + 1
		fc := evalF(c)
		gc := evalG(c)
		if math.Abs(gc) < epsDenominator {
			res.Root = c
			return res, methodError("newton_raphson", ErrDerivativeVanished)
		}
		next := c - fc/gc
		if math.Abs(next-c) < tol {
			res.Root = next
			res.Converged = true
			return res, nil
		}
		if next < a || next > b {
			res.Root = c
			return res, methodError("newton_raphson", ErrOutOfBounds)
		}
		c = next
	}

	res.Root = c
	if s.policy() == PolicyBestEffort {
		return res, nil
	}
	return res, methodError("newton_raphson", ErrIterationLimit)
}
