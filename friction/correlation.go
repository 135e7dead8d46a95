// SPDX-License-Identifier: MIT

package friction

import (
	"fmt"
	"math"

	"github.com/katalvlaran/pipenet/rootfind"
)

// Correlation selects and evaluates the friction-factor branch for a
// Reynolds number. The zero value uses the defaults.
type Correlation struct {
	threshold float64
	upper     float64 // 0 → no transition blend
	tol       float64
	seed      float64
	maxIter   int
}

// NewCorrelation applies opts on top of the defaults.
// It panics if a transition bound is not above the laminar threshold.
func NewCorrelation(opts ...Option) Correlation {
	c := Correlation{}.withDefaults()
	for _, opt := range opts {
		if opt != nil {
			opt(&c)
		}
	}
	if c.upper != 0 && c.upper <= c.threshold {
		panic(panicTransition)
	}

	return c
}

// withDefaults fills zero fields.
func (c Correlation) withDefaults() Correlation {
	if c.threshold == 0 {
		c.threshold = DefaultLaminarThreshold
	}
	if c.tol == 0 {
		c.tol = DefaultTolerance
	}
	if c.seed == 0 {
		c.seed = DefaultSeed
	}
	if c.maxIter == 0 {
		c.maxIter = DefaultMaxIterations
	}

	return c
}

// Threshold returns the laminar threshold in effect.
func (c Correlation) Threshold() float64 { return c.withDefaults().threshold }

// Transition returns the upper bound of the blend, or 0 if disabled.
func (c Correlation) Transition() float64 { return c.upper }

// Regime reports which branch Factor uses for re.
func (c Correlation) Regime(re float64) Regime {
	c = c.withDefaults()
	switch {
	case re < c.threshold:
		return RegimeLaminar
	case c.upper > 0 && re < c.upper:
		return RegimeTransitional
	default:
		return RegimeTurbulent
	}
}

// Factor returns the Darcy friction factor for relative roughness eps and
// Reynolds number re.
//
// Errors:
//   - ErrInvalidInput if re ≤ 0 or not finite, or eps < 0 or not finite.
//   - ErrCorrelation  if Colebrook–White does not converge.
func (c Correlation) Factor(eps, re float64) (float64, error) {
	if err := validate(eps, re); err != nil {
		return 0, err
	}
	c = c.withDefaults()

	switch c.Regime(re) {
	case RegimeLaminar:
		return Laminar(re), nil
	case RegimeTransitional:
		turb, err := c.colebrook(eps, re)
		if err != nil {
			return 0, err
		}
		t := (re - c.threshold) / (c.upper - c.threshold)
		s := t * t * (3 - 2*t)

		return (1-s)*Laminar(re) + s*turb, nil
	default:
		return c.colebrook(eps, re)
	}
}

// Colebrook solves Colebrook–White for re regardless of the regime.
func (c Correlation) Colebrook(eps, re float64) (float64, error) {
	if err := validate(eps, re); err != nil {
		return 0, err
	}

	return c.withDefaults().colebrook(eps, re)
}

func (c Correlation) colebrook(eps, re float64) (float64, error) {
	g := func(f float64) (float64, error) {
		sf := math.Sqrt(f)
		return 1/sf + 2*math.Log10(eps/3.7+2.51/(re*sf)), nil
	}
	res, err := rootfind.Scalar(g, c.seed,
		rootfind.WithBracket(bracketLo, bracketHi),
		rootfind.WithStepTolerance(c.tol),
		rootfind.WithMaxIterations(c.maxIter),
	)
	if err != nil {
		return 0, fmt.Errorf("%w: eps=%g re=%g: %w", ErrCorrelation, eps, re, err)
	}

	return math.Abs(res.X), nil
}

// Laminar returns 64/re.
func Laminar(re float64) float64 { return 64 / re }

// Factor evaluates the default Correlation.
func Factor(eps, re float64) (float64, error) { return Correlation{}.Factor(eps, re) }

// Colebrook evaluates Colebrook–White with the default settings.
func Colebrook(eps, re float64) (float64, error) { return Correlation{}.Colebrook(eps, re) }

func validate(eps, re float64) error {
	if math.IsNaN(re) || math.IsInf(re, 0) || re <= 0 {
		return fmt.Errorf("%w: reynolds number %g", ErrInvalidInput, re)
	}
	if math.IsNaN(eps) || math.IsInf(eps, 0) || eps < 0 {
		return fmt.Errorf("%w: relative roughness %g", ErrInvalidInput, eps)
	}

	return nil
}
