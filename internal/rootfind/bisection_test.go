package rootfind

import (
	"errors"
	"math"
	"testing"
)

func TestBisectionQuadratic(t *testing.T) {
	res, err := Bisection(quad, 0, 2, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertRoot(t, res, math.Sqrt2, DefaultTolerance)
	if res.FuncEvals != res.Iterations+2 {
		t.Errorf("one evaluation per midpoint expected, got %+v", res)
	}
}

func TestBisectionEndpointRoot(t *testing.T) {
	identity := func(x float64) float64 { return x }

	res, err := Bisection(identity, 0, 5, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Root != 0 || !res.Converged {
		t.Errorf("expected exact root at lower endpoint, got %+v", res)
	}
	if res.Iterations != 0 || res.FuncEvals != 1 {
		t.Errorf("endpoint root should short-circuit, got %+v", res)
	}

	shifted := func(x float64) float64 { return x - 1 }
	res, err = Bisection(shifted, -3, 1, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Root != 1 || res.FuncEvals != 2 {
		t.Errorf("expected exact root at upper endpoint, got %+v", res)
	}
}

func TestBisectionNoSignChange(t *testing.T) {
	res, err := Bisection(noRealRoot, -1, 1, nil)
	if !errors.Is(err, ErrNoSignChange) {
		t.Fatalf("expected ErrNoSignChange, got %v", err)
	}
	if res.FuncEvals != 2 {
		t.Errorf("precondition check must evaluate exactly twice, got %d", res.FuncEvals)
	}
	if res.Iterations != 0 {
		t.Errorf("no iterations may run on an invalid bracket, got %d", res.Iterations)
	}
}

// Consecutive midpoint probes must be exactly half as far apart each
// iteration: the bracket width is (b0-a0)/2^k after k halvings.
func TestBisectionHalving(t *testing.T) {
	var probes []float64
	res, err := Bisection(recording(quad, &probes), 0, 2, &Settings{Tolerance: 1e-9})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertRoot(t, res, math.Sqrt2, 1e-6)

	// probes[0], probes[1] are the endpoints; the rest are midpoints.
	mids := probes[2:]
	if len(mids) < 12 {
		t.Fatalf("expected at least 12 midpoint probes, got %d", len(mids))
	}
	for i := 2; i < 12; i++ {
		prev := math.Abs(mids[i-1] - mids[i-2])
		curr := math.Abs(mids[i] - mids[i-1])
		if curr != prev/2 {
			t.Fatalf("probe distance at step %d = %v, want exactly %v", i, curr, prev/2)
		}
	}
}

func TestBisectionExhaustion(t *testing.T) {
	// Best-effort success with the current midpoint is the method
	// default when the cap is reached.
	res, err := Bisection(quad, 0, 2, &Settings{MaxIterations: 3})
	if err != nil {
		t.Fatalf("method default should succeed best-effort, got %v", err)
	}
	if res.Converged {
		t.Error("three iterations cannot satisfy the default tolerance")
	}
	if res.Iterations != 3 {
		t.Errorf("iterations = %d, want 3", res.Iterations)
	}

	res, err = Bisection(quad, 0, 2, &Settings{MaxIterations: 3, OnExhaustion: PolicyFail})
	if !errors.Is(err, ErrIterationLimit) {
		t.Fatalf("expected ErrIterationLimit under PolicyFail, got %v", err)
	}
	if res.Root == 0 {
		t.Error("failed result should still carry the current midpoint")
	}
}
