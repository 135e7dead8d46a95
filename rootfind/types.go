// SPDX-License-Identifier: MIT

package rootfind

import "errors"

// Sentinel errors for root finding.
var (
	// ErrNoConvergence indicates the solver stopped without meeting the tolerance.
	ErrNoConvergence = errors.New("rootfind: did not converge")

	// ErrSingular indicates a singular Jacobian or a zero derivative.
	ErrSingular = errors.New("rootfind: singular jacobian")

	// ErrNonFinite indicates a NaN or ±Inf residual where a finite value is required.
	ErrNonFinite = errors.New("rootfind: non-finite residual")

	// ErrBadShape indicates an empty starting vector.
	ErrBadShape = errors.New("rootfind: invalid shape")
)

// Func evaluates the residual F(x) into dst. len(dst) == len(x).
// Implementations must not retain or modify x.
type Func func(dst, x []float64) error

// ScalarFunc evaluates f(x).
type ScalarFunc func(x float64) (float64, error)

// Result describes the outcome of Solve.
type Result struct {
	// X is the last accepted iterate (the solution when Converged).
	X []float64

	// Norm is the max-norm of F(X).
	Norm float64

	// Iterations counts Newton steps taken.
	Iterations int

	// Evaluations counts calls to the residual function.
	Evaluations int

	// Converged reports whether Norm met the tolerance.
	Converged bool

	// Message is a human-readable diagnostic, set on success and failure.
	Message string
}

// ScalarResult describes the outcome of Scalar.
type ScalarResult struct {
	X          float64
	Residual   float64
	Iterations int
	Converged  bool
	Message    string
}

// Iteration is passed to an observer after every accepted Newton step.
type Iteration struct {
	// Index is the zero-based iteration number.
	Index int

	// Norm is max|F| at the accepted point.
	Norm float64

	// Step is the damping factor λ ∈ (0,1] that was accepted.
	Step float64

	// Delta is the max-norm of the applied update λ·Δx.
	Delta float64
}
