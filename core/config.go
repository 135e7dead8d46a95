// SPDX-License-Identifier: MIT

// File: config.go
// Role: declarative solver configuration decoded from YAML.
//
// Example:
//
//	solver:
//	  max_iterations: 50
//	  tolerance: 1e-8
//	  flow_seed: 5
//	friction:
//	  laminar_threshold: 2300
//	  transition: 4000
//	fluid:
//	  density:   {value: 62.3, unit: lb/ft3}
//	  viscosity: {value: 1.0,  unit: cP}
package core

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/pipenet/element"
	"github.com/katalvlaran/pipenet/friction"
	"github.com/katalvlaran/pipenet/rootfind"
	"github.com/katalvlaran/pipenet/units"
)

// Config mirrors the functional options. Zero fields keep the defaults.
type Config struct {
	Solver   SolverConfig   `yaml:"solver"`
	Friction FrictionConfig `yaml:"friction"`
	Fluid    FluidConfig    `yaml:"fluid"`
}

// SolverConfig configures rootfind.Solve and the starting point.
type SolverConfig struct {
	MaxIterations int     `yaml:"max_iterations"`
	Tolerance     float64 `yaml:"tolerance"`
	StepTolerance float64 `yaml:"step_tolerance"`
	JacobianStep  float64 `yaml:"jacobian_step"`
	MaxBacktracks *int    `yaml:"max_backtracks"` // 0 is meaningful (no line search)
	FlowSeed      float64 `yaml:"flow_seed"`
}

// FrictionConfig configures the friction correlation.
type FrictionConfig struct {
	LaminarThreshold float64 `yaml:"laminar_threshold"`
	Transition       float64 `yaml:"transition"`
	Tolerance        float64 `yaml:"tolerance"`
	MaxIterations    int     `yaml:"max_iterations"`
}

// FluidConfig sets the network fluid.
type FluidConfig struct {
	Density   *QuantityConfig `yaml:"density"`
	Viscosity *QuantityConfig `yaml:"viscosity"`
}

// QuantityConfig is a magnitude with a unit name.
type QuantityConfig struct {
	Value float64 `yaml:"value"`
	Unit  string  `yaml:"unit"`
}

// Quantity parses the unit.
func (q QuantityConfig) Quantity() (units.Quantity, error) {
	u, err := units.Parse(q.Unit)
	if err != nil {
		return units.Quantity{}, err
	}

	return units.New(q.Value, u), nil
}

// ParseConfig decodes YAML; unknown keys are rejected.
func ParseConfig(data []byte) (Config, error) { return LoadConfig(bytes.NewReader(data)) }

// LoadConfig decodes YAML from r; unknown keys are rejected. An empty
// document yields the zero Config.
func LoadConfig(r io.Reader) (Config, error) {
	var c Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}

	return c, nil
}

// Validate rejects values the option constructors would panic on.
func (c Config) Validate() error {
	bad := func(field string, v any) error {
		return fmt.Errorf("%w: %s = %v", ErrInvalidConfig, field, v)
	}
	s, f := c.Solver, c.Friction
	switch {
	case s.MaxIterations < 0:
		return bad("solver.max_iterations", s.MaxIterations)
	case !nonNegative(s.Tolerance):
		return bad("solver.tolerance", s.Tolerance)
	case !nonNegative(s.StepTolerance):
		return bad("solver.step_tolerance", s.StepTolerance)
	case !nonNegative(s.JacobianStep):
		return bad("solver.jacobian_step", s.JacobianStep)
	case s.MaxBacktracks != nil && *s.MaxBacktracks < 0:
		return bad("solver.max_backtracks", *s.MaxBacktracks)
	case math.IsNaN(s.FlowSeed) || math.IsInf(s.FlowSeed, 0):
		return bad("solver.flow_seed", s.FlowSeed)
	case !nonNegative(f.LaminarThreshold):
		return bad("friction.laminar_threshold", f.LaminarThreshold)
	case !nonNegative(f.Transition):
		return bad("friction.transition", f.Transition)
	case !nonNegative(f.Tolerance):
		return bad("friction.tolerance", f.Tolerance)
	case f.MaxIterations < 0:
		return bad("friction.max_iterations", f.MaxIterations)
	}
	threshold := f.LaminarThreshold
	if threshold == 0 {
		threshold = friction.DefaultLaminarThreshold
	}
	if f.Transition != 0 && f.Transition <= threshold {
		return bad("friction.transition", f.Transition)
	}
	if _, err := c.fluid(); err != nil {
		return err
	}

	return nil
}

// Options converts the configuration into Network options.
func (c Config) Options() ([]Option, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	var opts []Option

	var solver []rootfind.Option
	s := c.Solver
	if s.MaxIterations > 0 {
		solver = append(solver, rootfind.WithMaxIterations(s.MaxIterations))
	}
	if s.Tolerance > 0 {
		solver = append(solver, rootfind.WithTolerance(s.Tolerance))
	}
	if s.StepTolerance > 0 {
		solver = append(solver, rootfind.WithStepTolerance(s.StepTolerance))
	}
	if s.JacobianStep > 0 {
		solver = append(solver, rootfind.WithStep(s.JacobianStep))
	}
	if s.MaxBacktracks != nil {
		solver = append(solver, rootfind.WithMaxBacktracks(*s.MaxBacktracks))
	}
	if len(solver) > 0 {
		opts = append(opts, WithSolverOptions(solver...))
	}
	if s.FlowSeed != 0 {
		opts = append(opts, WithFlowSeed(s.FlowSeed))
	}

	var fr []friction.Option
	f := c.Friction
	if f.LaminarThreshold > 0 {
		fr = append(fr, friction.WithLaminarThreshold(f.LaminarThreshold))
	}
	if f.Transition > 0 {
		fr = append(fr, friction.WithTransition(f.Transition))
	}
	if f.Tolerance > 0 {
		fr = append(fr, friction.WithTolerance(f.Tolerance))
	}
	if f.MaxIterations > 0 {
		fr = append(fr, friction.WithMaxIterations(f.MaxIterations))
	}
	if len(fr) > 0 {
		opts = append(opts, WithCorrelation(friction.NewCorrelation(fr...)))
	}

	fluid, err := c.fluid()
	if err != nil {
		return nil, err
	}
	if fluid != nil {
		opts = append(opts, WithFluid(*fluid))
	}

	return opts, nil
}

// fluid resolves the configured fluid on top of water at 20 °C, or nil if
// none is configured.
func (c Config) fluid() (*element.Fluid, error) {
	if c.Fluid.Density == nil && c.Fluid.Viscosity == nil {
		return nil, nil
	}
	f := element.Water20C
	if c.Fluid.Density != nil {
		q, err := c.Fluid.Density.Quantity()
		if err != nil {
			return nil, fmt.Errorf("%w: fluid.density: %w", ErrInvalidConfig, err)
		}
		if !q.Is(units.KilogramsPerCubicMetre) || !(q.Magnitude() > 0) {
			return nil, fmt.Errorf("%w: fluid.density %s", ErrInvalidConfig, q)
		}
		f.Density = q
	}
	if c.Fluid.Viscosity != nil {
		q, err := c.Fluid.Viscosity.Quantity()
		if err != nil {
			return nil, fmt.Errorf("%w: fluid.viscosity: %w", ErrInvalidConfig, err)
		}
		if !q.Is(units.PascalSecond) || !(q.Magnitude() > 0) {
			return nil, fmt.Errorf("%w: fluid.viscosity %s", ErrInvalidConfig, q)
		}
		f.Viscosity = q
	}

	return &f, nil
}

func nonNegative(v float64) bool { return v >= 0 && !math.IsInf(v, 0) }
