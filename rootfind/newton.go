// SPDX-License-Identifier: MIT

package rootfind

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/mat"
)

// Solve finds x with F(x) ≈ 0 for a square system, starting from x0.
//
// Implementation:
//   - Stage 1: Evaluate F(x0); reject empty input and non-finite residuals.
//   - Stage 2: Central-difference Jacobian J (fd.Jacobian), LU with partial pivoting,
//     Newton direction Δx = −J⁻¹F.
//   - Stage 3: Backtracking line search: halve λ until ½‖F(x+λΔx)‖² shows
//     sufficient decrease or the backtrack budget runs out.
//   - Stage 4: Accept, notify the observer, test the tolerance and the stall guard.
//
// Returns:
//   - Result: always populated (X is the last accepted iterate).
//   - error : ErrNoConvergence, ErrSingular, ErrNonFinite, ErrBadShape, or the
//     residual function's own error wrapped with the iteration number.
//
// Complexity:
//   - Time O(k·(n·C_F + n³)) for k iterations and residual cost C_F, Space O(n²).
func Solve(f Func, x0 []float64, opts ...Option) (Result, error) {
	o := gatherOptions(opts...)
	n := len(x0)
	if n == 0 {
		return Result{}, fmt.Errorf("%w: empty starting vector", ErrBadShape)
	}

	s := &newton{f: f, n: n, opts: o}
	x := append([]float64(nil), x0...)
	fx := make([]float64, n)
	if err := s.eval(fx, x); err != nil {
		return s.result(x, fx, false, "residual failed at starting point"), err
	}
	if !allFinite(fx) {
		return s.result(x, fx, false, "non-finite residual at starting point"),
			fmt.Errorf("%w: at starting point", ErrNonFinite)
	}

	jac := mat.NewDense(n, n, nil)
	rhs := mat.NewVecDense(n, nil)
	var dx mat.VecDense
	var lu mat.LU
	trial := make([]float64, n)
	ftrial := make([]float64, n)

	for s.iter = 0; s.iter < o.maxIter; s.iter++ {
		if maxAbs(fx) <= o.tol {
			return s.finish(x, fx)
		}

		// Stage 2: Jacobian and Newton direction
		if err := s.jacobian(jac, x); err != nil {
			return s.result(x, fx, false, "residual failed while building the jacobian"), err
		}
		lu.Factorize(jac)
		if c := lu.Cond(); math.IsInf(c, 1) || math.IsNaN(c) || c > maxCondition {
			return s.result(x, fx, false, fmt.Sprintf("jacobian singular at iteration %d (cond=%g)", s.iter, c)),
				fmt.Errorf("%w: iteration %d", ErrSingular, s.iter)
		}
		for i := 0; i < n; i++ {
			rhs.SetVec(i, -fx[i])
		}
		if err := lu.SolveVecTo(&dx, false, rhs); err != nil {
			var cond mat.Condition
			if !errors.As(err, &cond) {
				return s.result(x, fx, false, err.Error()), fmt.Errorf("%w: %v", ErrSingular, err)
			}
		}
		if !vecFinite(&dx) {
			return s.result(x, fx, false, fmt.Sprintf("newton step not finite at iteration %d", s.iter)),
				fmt.Errorf("%w: iteration %d", ErrSingular, s.iter)
		}

		// Stage 3: backtracking line search on ½‖F‖²
		phi0 := sumSquares(fx)
		lambda := 1.0
		for bt := 0; ; bt++ {
			for i := range trial {
				trial[i] = x[i] + lambda*dx.AtVec(i)
			}
			if err := s.eval(ftrial, trial); err != nil {
				return s.result(x, fx, false, "residual failed during line search"), err
			}
			if allFinite(ftrial) && sumSquares(ftrial) <= (1-2*armijo*lambda)*phi0 {
				break
			}
			if bt >= o.maxBacktracks && allFinite(ftrial) {
				break
			}
			if bt >= o.maxBacktracks+maxNonFiniteRetries {
				return s.result(x, fx, false, fmt.Sprintf("line search produced non-finite residuals at iteration %d", s.iter)),
					fmt.Errorf("%w: line search at iteration %d", ErrNonFinite, s.iter)
			}
			lambda /= 2
		}

		// Stage 4: accept
		delta, rel := 0.0, 0.0
		for i := range x {
			d := trial[i] - x[i]
			delta = math.Max(delta, math.Abs(d))
			rel = math.Max(rel, math.Abs(d)/(math.Abs(x[i])+1))
		}
		copy(x, trial)
		copy(fx, ftrial)
		if o.observer != nil {
			o.observer(Iteration{Index: s.iter, Norm: maxAbs(fx), Step: lambda, Delta: delta})
		}
		if maxAbs(fx) <= o.tol {
			s.iter++
			return s.finish(x, fx)
		}
		if rel <= o.stepTol {
			s.iter++
			msg := fmt.Sprintf("step stalled at iteration %d with residual norm %g (tolerance %g)", s.iter, maxAbs(fx), o.tol)
			return s.result(x, fx, false, msg), fmt.Errorf("%w: %s", ErrNoConvergence, msg)
		}
	}

	msg := fmt.Sprintf("iteration limit %d reached with residual norm %g (tolerance %g)", o.maxIter, maxAbs(fx), o.tol)
	return s.result(x, fx, false, msg), fmt.Errorf("%w: %s", ErrNoConvergence, msg)
}

// maxNonFiniteRetries lets the line search keep halving past the budget while
// trial points are non-finite.
const maxNonFiniteRetries = 20

// newton carries the per-solve state shared by the helpers.
type newton struct {
	f     Func
	n     int
	opts  Options
	iter  int
	evals int
	last  []float64 // last point handed to f
}

// eval calls the residual function and remembers the point.
func (s *newton) eval(dst, x []float64) error {
	s.evals++
	s.last = append(s.last[:0], x...)
	if err := s.f(dst, x); err != nil {
		return fmt.Errorf("rootfind: iteration %d: %w", s.iter, err)
	}

	return nil
}

// jacobian fills jac with central differences around x.
// fd.Jacobian cannot propagate errors, so the first one is captured and
// the remaining evaluations are skipped.
func (s *newton) jacobian(jac *mat.Dense, x []float64) error {
	var firstErr error
	wrapped := func(y, xp []float64) {
		if firstErr != nil {
			return
		}
		firstErr = s.eval(y, xp)
	}
	fd.Jacobian(jac, wrapped, x, &fd.JacobianSettings{
		Formula: fd.Central,
		Step:    s.opts.step,
	})

	return firstErr
}

// finish re-evaluates at x if the last evaluation happened elsewhere, so that
// side effects of f reflect the accepted solution.
func (s *newton) finish(x, fx []float64) (Result, error) {
	if !equalVec(s.last, x) {
		if err := s.eval(fx, x); err != nil {
			return s.result(x, fx, false, "residual failed at the accepted point"), err
		}
	}
	msg := fmt.Sprintf("converged in %d iterations with residual norm %g", s.iter, maxAbs(fx))

	return s.result(x, fx, true, msg), nil
}

func (s *newton) result(x, fx []float64, ok bool, msg string) Result {
	return Result{
		X:           append([]float64(nil), x...),
		Norm:        maxAbs(fx),
		Iterations:  s.iter,
		Evaluations: s.evals,
		Converged:   ok,
		Message:     msg,
	}
}

func maxAbs(v []float64) float64 {
	m := 0.0
	for _, x := range v {
		if a := math.Abs(x); a > m || math.IsNaN(a) {
			m = a
		}
	}

	return m
}

func sumSquares(v []float64) float64 {
	s := 0.0
	for _, x := range v {
		s += x * x
	}

	return s
}

func allFinite(v []float64) bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}

	return true
}

func vecFinite(v *mat.VecDense) bool {
	for i := 0; i < v.Len(); i++ {
		x := v.AtVec(i)
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}

	return true
}

func equalVec(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}
