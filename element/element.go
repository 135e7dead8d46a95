// SPDX-License-Identifier: MIT

package element

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/pipenet/units"
)

// Sentinel errors.
var (
	// ErrUnknownKind indicates an element kind with no registered constructor.
	ErrUnknownKind = errors.New("element: unknown kind")

	// ErrInvalidParams indicates missing or non-physical construction parameters.
	ErrInvalidParams = errors.New("element: invalid parameters")
)

// Fluid carries the properties a loss calculation needs.
type Fluid struct {
	Density   units.Quantity
	Viscosity units.Quantity
}

// Water20C is water at 20 °C.
var Water20C = Fluid{
	Density:   units.New(998.2, units.KilogramsPerCubicMetre),
	Viscosity: units.New(1.002, units.Centipoise),
}

// Element is anything that consumes head as a function of flow.
type Element interface {
	// Loss returns the head lost across the element, signed like flow.
	Loss(flow units.Quantity, fluid Fluid) (units.Quantity, error)
}

// DefaultRoughness is the absolute roughness of commercial steel.
var DefaultRoughness = units.New(0.0018, units.Inch)

// zeroHead is the loss returned at zero flow.
var zeroHead = units.New(0, units.Foot)

// velocity returns the mean velocity in m/s for flow through bore diameter d.
func velocity(flow, d units.Quantity) (units.Quantity, error) {
	if !flow.Is(units.CubicMetresPerSecond) {
		return units.Quantity{}, fmt.Errorf("element: flow %s: %w", flow, units.ErrDimensionality)
	}
	dm, err := d.In(units.Metre)
	if err != nil {
		return units.Quantity{}, err
	}
	area := units.New(math.Pi*dm*dm/4, units.SquareMetre)

	return units.From(flow.SI().Div(area.SI()), units.MetresPerSecond)
}

// velocityHead returns v·|v|/(2g) in metres.
func velocityHead(v float64) float64 {
	return v * math.Abs(v) / (2 * units.StandardGravity)
}

// feet converts a head in metres to feet.
func feet(m float64) units.Quantity {
	q, _ := units.New(m, units.Metre).To(units.Foot)
	return q
}

// positiveLength checks that q is a length > 0 and returns it in metres.
func positiveLength(name string, q units.Quantity) (float64, error) {
	if !q.IsSet() {
		return 0, fmt.Errorf("%w: %s is required", ErrInvalidParams, name)
	}
	m, err := q.In(units.Metre)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrInvalidParams, name, err)
	}
	if !(m > 0) || math.IsInf(m, 0) {
		return 0, fmt.Errorf("%w: %s must be > 0, got %s", ErrInvalidParams, name, q)
	}

	return m, nil
}
