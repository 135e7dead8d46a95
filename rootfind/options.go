// SPDX-License-Identifier: MIT

// Package rootfind: functional configuration shared by Solve and Scalar.
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors that panic on nonsensical values (programmer error).
package rootfind

import "math"

// Defaults (single source of truth).
const (
	// DefaultMaxIterations bounds the number of Newton steps.
	DefaultMaxIterations = 100

	// DefaultTolerance is the max-norm of F below which the system is solved.
	DefaultTolerance = 1e-6

	// DefaultStepTolerance stops Solve when the relative update stalls
	// below it without meeting DefaultTolerance. For Scalar it is the absolute
	// tolerance on |Δx| that declares convergence.
	DefaultStepTolerance = 1e-12

	// DefaultJacobianStep is the central-difference step for Solve.
	// Zero would select gonum's formula default, which is too small for
	// residuals that carry nested iterative solves.
	DefaultJacobianStep = 1e-4

	// DefaultMaxBacktracks bounds the step halvings of the line search.
	DefaultMaxBacktracks = 30

	// armijo is the sufficient-decrease constant of the line search.
	armijo = 1e-4

	// maxCondition treats a Jacobian as singular beyond this condition number.
	maxCondition = 1e15
)

const (
	panicMaxIterations = "rootfind: WithMaxIterations: n must be > 0"
	panicTolerance     = "rootfind: WithTolerance: tol must be finite and > 0"
	panicStepTolerance = "rootfind: WithStepTolerance: tol must be finite and >= 0"
	panicStep          = "rootfind: WithStep: h must be finite and >= 0"
	panicBacktracks    = "rootfind: WithMaxBacktracks: n must be >= 0"
	panicBracket       = "rootfind: WithBracket: bounds must be finite with lo < hi"
)

// Option mutates solver options.
type Option func(*Options)

// Options holds the effective configuration after applying Option setters.
type Options struct {
	maxIter       int
	tol           float64
	stepTol       float64
	step          float64 // 0 → gonum formula default
	stepSet       bool    // Scalar keeps gonum's default unless WithStep was given
	maxBacktracks int
	observer      func(Iteration)
	lo, hi        float64
	bracketed     bool
}

// WithMaxIterations caps the number of iterations.
func WithMaxIterations(n int) Option {
	if n <= 0 {
		panic(panicMaxIterations)
	}

	return func(o *Options) { o.maxIter = n }
}

// WithTolerance sets the residual max-norm target (Solve) or |f| target (Scalar).
func WithTolerance(tol float64) Option {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol <= 0 {
		panic(panicTolerance)
	}

	return func(o *Options) { o.tol = tol }
}

// WithStepTolerance sets the step stall threshold (Solve, relative) or the
// absolute |Δx| convergence threshold (Scalar).
func WithStepTolerance(tol float64) Option {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol < 0 {
		panic(panicStepTolerance)
	}

	return func(o *Options) { o.stepTol = tol }
}

// WithStep sets the finite-difference step; 0 selects gonum's default.
// Solve defaults to DefaultJacobianStep, Scalar to gonum's default.
func WithStep(h float64) Option {
	if math.IsNaN(h) || math.IsInf(h, 0) || h < 0 {
		panic(panicStep)
	}

	return func(o *Options) {
		o.step = h
		o.stepSet = true
	}
}

// WithMaxBacktracks bounds the number of step halvings per Newton iteration.
// Zero disables the line search (pure Newton).
func WithMaxBacktracks(n int) Option {
	if n < 0 {
		panic(panicBacktracks)
	}

	return func(o *Options) { o.maxBacktracks = n }
}

// WithObserver registers a callback invoked after each accepted Newton step of Solve.
func WithObserver(fn func(Iteration)) Option {
	return func(o *Options) { o.observer = fn }
}

// WithBracket supplies [lo, hi] for Scalar. When f(lo) and f(hi) have opposite
// signs the iteration is safeguarded by bisection; otherwise the bracket is ignored.
func WithBracket(lo, hi float64) Option {
	if math.IsNaN(lo) || math.IsNaN(hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) || lo >= hi {
		panic(panicBracket)
	}

	return func(o *Options) {
		o.lo, o.hi = lo, hi
		o.bracketed = true
	}
}

// defaultOptions returns the documented defaults.
func defaultOptions() Options {
	return Options{
		maxIter:       DefaultMaxIterations,
		tol:           DefaultTolerance,
		stepTol:       DefaultStepTolerance,
		step:          DefaultJacobianStep,
		maxBacktracks: DefaultMaxBacktracks,
	}
}

// gatherOptions applies user options left to right on top of the defaults.
func gatherOptions(opts ...Option) Options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}
