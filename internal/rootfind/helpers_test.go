package rootfind

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

// Shared fixtures and assertion helpers for the method tests.

const (
	cubicRoot     = 1.5213797068045676 // root of x^3 - x - 2
	cosFixedPoint = 0.7390851332151607 // root of cos(x) - x
)

func quad(x float64) float64       { return x*x - 2 }
func quadPrime(x float64) float64  { return 2 * x }
func cubic(x float64) float64      { return x*x*x - x - 2 }
func cubicPrime(x float64) float64 { return 3*x*x - 1 }
func cosMinusX(x float64) float64  { return math.Cos(x) - x }
func noRealRoot(x float64) float64 { return x*x + 1 }

// recording wraps f so every probed abscissa is appended to *probes.
func recording(f Func, probes *[]float64) Func {
	return func(x float64) float64 {
		*probes = append(*probes, x)
		return f(x)
	}
}

// assertRoot fails the test unless res converged to want within tol.
func assertRoot(t *testing.T, res Result, want, tol float64) {
	t.Helper()

	if !res.Converged {
		t.Fatalf("expected convergence, got %+v", res)
	}
	if !scalar.EqualWithinAbs(res.Root, want, tol) {
		t.Fatalf("root = %v, want %v (tolerance %v)", res.Root, want, tol)
	}
}
