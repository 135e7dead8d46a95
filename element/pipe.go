// SPDX-License-Identifier: MIT

package element

import (
	"fmt"
	"math"

	"github.com/katalvlaran/pipenet/friction"
	"github.com/katalvlaran/pipenet/pipedata"
	"github.com/katalvlaran/pipenet/units"
)

// Pipe is a straight run of circular pipe.
type Pipe struct {
	Diameter    units.Quantity // internal
	Length      units.Quantity
	Roughness   units.Quantity // absolute
	Correlation friction.Correlation
}

// NewPipe resolves the internal diameter of nominal/schedule through lookup
// (pipedata.Default when nil) and returns a pipe with default roughness.
func NewPipe(length units.Quantity, nominal, schedule string, lookup pipedata.Lookup) (*Pipe, error) {
	if lookup == nil {
		lookup = pipedata.Default()
	}
	d, err := lookup.InternalDiameter(nominal, schedule)
	if err != nil {
		return nil, fmt.Errorf("element: pipe %s sch %s: %w", nominal, schedule, err)
	}
	p := &Pipe{Diameter: d, Length: length, Roughness: DefaultRoughness}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	return p, nil
}

// Validate checks dimensions and signs of the pipe's parameters.
func (p *Pipe) Validate() error {
	if _, err := positiveLength("diameter", p.Diameter); err != nil {
		return err
	}
	if _, err := positiveLength("length", p.Length); err != nil {
		return err
	}
	if p.Roughness.IsSet() {
		r, err := p.Roughness.In(units.Metre)
		if err != nil {
			return fmt.Errorf("%w: roughness: %w", ErrInvalidParams, err)
		}
		if r < 0 || math.IsNaN(r) || math.IsInf(r, 0) {
			return fmt.Errorf("%w: roughness must be >= 0, got %s", ErrInvalidParams, p.Roughness)
		}
	}

	return nil
}

// Loss implements Element.
//
// Steps: velocity from flow and bore area, Reynolds number from the fluid,
// relative roughness, Darcy factor, then Darcy–Weisbach.
func (p *Pipe) Loss(flow units.Quantity, fluid Fluid) (units.Quantity, error) {
	v, err := velocity(flow, p.Diameter)
	if err != nil {
		return units.Quantity{}, err
	}
	if v.Magnitude() == 0 {
		return zeroHead, nil
	}

	re, err := friction.Reynolds(fluid.Density, v.Abs(), p.Diameter, fluid.Viscosity)
	if err != nil {
		return units.Quantity{}, err
	}
	d, err := p.Diameter.In(units.Metre)
	if err != nil {
		return units.Quantity{}, err
	}
	l, err := p.Length.In(units.Metre)
	if err != nil {
		return units.Quantity{}, err
	}
	rough := DefaultRoughness
	if p.Roughness.IsSet() {
		rough = p.Roughness
	}
	e, err := rough.In(units.Metre)
	if err != nil {
		return units.Quantity{}, err
	}

	f, err := p.Correlation.Factor(e/d, re)
	if err != nil {
		return units.Quantity{}, err
	}

	return feet(f * (l / d) * velocityHead(v.Magnitude())), nil
}

// String implements fmt.Stringer.
func (p *Pipe) String() string {
	return fmt.Sprintf("pipe(D=%s L=%s)", p.Diameter, p.Length)
}
