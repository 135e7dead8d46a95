// SPDX-License-Identifier: MIT

package rootfind

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/diff/fd"
)

// Scalar finds a root of f starting from x0 using Newton's method with a
// central-difference derivative.
//
// When WithBracket is given and f changes sign over [lo, hi], the bracket is
// maintained and every Newton step that would leave it (or that meets a zero
// derivative) is replaced by bisection. Convergence is declared when the
// update satisfies |Δx| ≤ step tolerance or f(x) is exactly zero; the
// accepted point then gets one refining Newton step with the last derivative.
//
// Errors:
//   - ErrNonFinite     if f returns NaN or ±Inf.
//   - ErrSingular      if the derivative vanishes and no bracket is active.
//   - ErrNoConvergence when the iteration cap is reached.
//   - any error returned by f, wrapped.
func Scalar(f ScalarFunc, x0 float64, opts ...Option) (ScalarResult, error) {
	o := gatherOptions(opts...)
	settings := &fd.Settings{Formula: fd.Central}
	if o.stepSet {
		settings.Step = o.step
	}

	x := x0
	fx, err := evalScalar(f, x)
	if err != nil {
		return ScalarResult{X: x, Residual: fx}, err
	}

	// bracket state; active only when the ends straddle a root
	var a, b, fa float64
	bracket := false
	if o.bracketed {
		flo, errLo := evalScalar(f, o.lo)
		fhi, errHi := evalScalar(f, o.hi)
		if errLo == nil && errHi == nil && math.Signbit(flo) != math.Signbit(fhi) {
			a, b, fa = o.lo, o.hi, flo
			bracket = true
		}
	}

	for i := 0; i < o.maxIter; i++ {
		if fx == 0 {
			return ScalarResult{X: x, Residual: 0, Iterations: i, Converged: true, Message: "exact root"}, nil
		}

		var derr error
		d := fd.Derivative(func(t float64) float64 {
			v, err := f(t)
			if err != nil && derr == nil {
				derr = err
			}

			return v
		}, x, settings)
		if derr != nil {
			return ScalarResult{X: x, Residual: fx, Iterations: i}, fmt.Errorf("rootfind: iteration %d: %w", i, derr)
		}

		next := x - fx/d
		useNewton := d != 0 && !math.IsNaN(next) && !math.IsInf(next, 0)
		switch {
		case bracket && (!useNewton || next <= a || next >= b):
			next = a + (b-a)/2
		case !useNewton:
			return ScalarResult{X: x, Residual: fx, Iterations: i, Message: "zero derivative"},
				fmt.Errorf("%w: zero derivative at x=%g", ErrSingular, x)
		}

		fn, err := evalScalar(f, next)
		if err != nil {
			return ScalarResult{X: x, Residual: fx, Iterations: i + 1}, err
		}
		if bracket {
			if math.Signbit(fn) == math.Signbit(fa) {
				a, fa = next, fn
			} else {
				b = next
			}
		}

		dx := math.Abs(next - x)
		x, fx = next, fn
		if dx <= o.stepTol && fx != 0 && useNewton {
			x, fx = polish(f, x, fx, d)
		}
		if dx <= o.stepTol || fx == 0 {
			return ScalarResult{
				X:          x,
				Residual:   fx,
				Iterations: i + 1,
				Converged:  true,
				Message:    fmt.Sprintf("converged in %d iterations", i+1),
			}, nil
		}
	}

	msg := fmt.Sprintf("iteration limit %d reached at x=%g with residual %g", o.maxIter, x, fx)
	return ScalarResult{X: x, Residual: fx, Iterations: o.maxIter, Message: msg},
		fmt.Errorf("%w: %s", ErrNoConvergence, msg)
}

// polish applies one more Newton step reusing derivative d, so the returned
// root is not left a full step-tolerance away from the true one. The step is
// kept only if it reduces |f|.
func polish(f ScalarFunc, x, fx, d float64) (float64, float64) {
	next := x - fx/d
	fn, err := evalScalar(f, next)
	if err != nil || math.Abs(fn) > math.Abs(fx) {
		return x, fx
	}

	return next, fn
}

// evalScalar calls f and rejects non-finite values.
func evalScalar(f ScalarFunc, x float64) (float64, error) {
	v, err := f(x)
	if err != nil {
		return v, fmt.Errorf("rootfind: f(%g): %w", x, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v, fmt.Errorf("%w: f(%g) = %g", ErrNonFinite, x, v)
	}

	return v, nil
}
