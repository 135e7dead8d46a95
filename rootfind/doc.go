// Package rootfind solves nonlinear equations F(x) = 0.
//
// What & Why:
//
//	Two solvers share one functional-options surface:
//
//	  - Solve: damped Newton–Raphson for square systems ℝⁿ → ℝⁿ. The Jacobian
//	    is built by central finite differences (gonum.org/v1/gonum/diff/fd) and
//	    each Newton step is solved with a partially pivoted LU factorization
//	    (gonum.org/v1/gonum/mat). A backtracking line search on ½‖F‖² keeps the
//	    iteration from diverging on strongly nonlinear residuals.
//
//	  - Scalar: Newton for f(x) = 0 in one variable with a numerical derivative
//	    (fd.Derivative). When a sign-changing bracket is supplied with
//	    WithBracket, any step that would leave the bracket is replaced by a
//	    bisection step.
//
// Residual functions return an error; the first error aborts the solve and is
// returned unchanged (wrapped), so domain failures raised inside the residual
// stay matchable with errors.Is.
//
// Evaluation order is sequential and the last residual evaluation always
// happens at the returned solution, so callers whose residual function writes
// the candidate into shared state can rely on that state holding the answer.
//
// Complexity:
//
//	Per Newton iteration: 2n residual evaluations for the Jacobian, O(n³) for
//	the LU factorization, plus one evaluation per line-search trial.
//
// Errors:
//
//	ErrNoConvergence - iteration budget exhausted or step stalled above tolerance.
//	ErrSingular      - the Jacobian (or derivative) is singular to working precision.
//	ErrNonFinite     - the residual produced NaN or ±Inf at the starting point.
//	ErrBadShape      - empty or mismatched vectors.
package rootfind
