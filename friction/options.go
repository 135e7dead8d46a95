// SPDX-License-Identifier: MIT

package friction

import "math"

// Defaults.
const (
	// DefaultLaminarThreshold is the Reynolds number below which 64/Re applies.
	DefaultLaminarThreshold = 2100.0

	// DefaultTolerance is the absolute |Δf| that ends the Colebrook iteration.
	DefaultTolerance = 1e-5

	// DefaultSeed is the starting guess for the Colebrook iteration.
	DefaultSeed = 0.04

	// DefaultMaxIterations caps the Colebrook iteration.
	DefaultMaxIterations = 50

	// bracket for the Colebrook root; physical Darcy factors sit well inside it
	bracketLo = 1e-3
	bracketHi = 1.0
)

const (
	panicThreshold  = "friction: WithLaminarThreshold: re must be finite and > 0"
	panicTolerance  = "friction: WithTolerance: tol must be finite and > 0"
	panicSeed       = "friction: WithSeed: seed must be finite and > 0"
	panicIterations = "friction: WithMaxIterations: n must be > 0"
	panicTransition = "friction: WithTransition: upper must be finite and above the laminar threshold"
)

// Option configures a Correlation.
type Option func(*Correlation)

// WithLaminarThreshold moves the laminar/turbulent switch.
func WithLaminarThreshold(re float64) Option {
	if math.IsNaN(re) || math.IsInf(re, 0) || re <= 0 {
		panic(panicThreshold)
	}

	return func(c *Correlation) { c.threshold = re }
}

// WithTolerance sets the absolute |Δf| convergence tolerance.
func WithTolerance(tol float64) Option {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol <= 0 {
		panic(panicTolerance)
	}

	return func(c *Correlation) { c.tol = tol }
}

// WithSeed sets the initial Colebrook guess.
func WithSeed(f float64) Option {
	if math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		panic(panicSeed)
	}

	return func(c *Correlation) { c.seed = f }
}

// WithMaxIterations caps the Colebrook iteration.
func WithMaxIterations(n int) Option {
	if n <= 0 {
		panic(panicIterations)
	}

	return func(c *Correlation) { c.maxIter = n }
}

// WithTransition blends laminar and Colebrook factors between the laminar
// threshold and upper. Zero disables blending.
func WithTransition(upper float64) Option {
	if math.IsNaN(upper) || math.IsInf(upper, 0) || upper < 0 {
		panic(panicTransition)
	}

	return func(c *Correlation) { c.upper = upper }
}
