// SPDX-License-Identifier: MIT

// File: options.go
// Role: functional options for New.
package core

import (
	"io"
	"log/slog"
	"math"

	"github.com/katalvlaran/pipenet/element"
	"github.com/katalvlaran/pipenet/friction"
	"github.com/katalvlaran/pipenet/pipedata"
	"github.com/katalvlaran/pipenet/rootfind"
	"github.com/katalvlaran/pipenet/units"
)

// DefaultFlowSeed is the starting flow, in FlowUnit, for every unknown flow.
// It must be non-zero: v·|v| has a zero derivative at rest.
const DefaultFlowSeed = 1.0

const (
	panicFlowSeed = "core: WithFlowSeed: seed must be finite and non-zero"
	panicFluid    = "core: WithFluid: density and viscosity must carry density and viscosity units"
)

// Option configures a Network.
type Option func(*Options)

// Options is the effective Network configuration.
type Options struct {
	logger      *slog.Logger
	metrics     *Metrics
	lookup      pipedata.Lookup
	correlation friction.Correlation
	solver      []rootfind.Option
	flowSeed    float64
	fluid       element.Fluid
}

// WithLogger sets the structured logger. nil keeps the discard logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMetrics records solve outcomes into m.
func WithMetrics(m *Metrics) Option {
	return func(o *Options) { o.metrics = m }
}

// WithLookup sets the schedule table used by AddElement.
func WithLookup(l pipedata.Lookup) Option {
	return func(o *Options) {
		if l != nil {
			o.lookup = l
		}
	}
}

// WithCorrelation sets the friction correlation for pipes built by AddElement.
func WithCorrelation(c friction.Correlation) Option {
	return func(o *Options) { o.correlation = c }
}

// WithSolverOptions forwards options to rootfind.Solve.
func WithSolverOptions(opts ...rootfind.Option) Option {
	return func(o *Options) { o.solver = append(o.solver, opts...) }
}

// WithFlowSeed sets the starting value of unknown flows, in FlowUnit.
func WithFlowSeed(q float64) Option {
	if q == 0 || math.IsNaN(q) || math.IsInf(q, 0) {
		panic(panicFlowSeed)
	}

	return func(o *Options) { o.flowSeed = q }
}

// WithFluid sets the initial fluid.
func WithFluid(f element.Fluid) Option {
	if !f.Density.Is(units.KilogramsPerCubicMetre) || !f.Viscosity.Is(units.PascalSecond) {
		panic(panicFluid)
	}

	return func(o *Options) { o.fluid = f }
}

func defaultOptions() Options {
	return Options{
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		lookup:   pipedata.Default(),
		flowSeed: DefaultFlowSeed,
		fluid:    element.Water20C,
	}
}

// gatherOptions applies opts left to right on top of the defaults.
func gatherOptions(opts ...Option) Options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}
