// SPDX-License-Identifier: MIT

package units

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/unit"
)

// Quantity is a magnitude expressed in a Unit.
// The zero Quantity is unset (IsSet reports false).
type Quantity struct {
	mag  float64
	unit Unit
}

// New pairs a magnitude with a unit.
func New(magnitude float64, u Unit) Quantity {
	return Quantity{mag: magnitude, unit: u}
}

// Q builds a Quantity from a unit name. It panics on an unknown name and is
// meant for literals in tables and tests; input paths should use Parse.
func Q(magnitude float64, name string) Quantity {
	return New(magnitude, MustParse(name))
}

// Magnitude returns the raw number in the quantity's own unit.
func (q Quantity) Magnitude() float64 { return q.mag }

// Unit returns the quantity's unit.
func (q Quantity) Unit() Unit { return q.unit }

// IsSet reports whether q carries a unit.
func (q Quantity) IsSet() bool { return q.unit.IsSet() }

// Is reports whether q has the same dimensions as u.
func (q Quantity) Is(u Unit) bool { return q.unit.Compatible(u) }

// In converts q to the target unit and returns the magnitude.
//
// Errors:
//   - ErrDimensionality if q and target measure different things.
func (q Quantity) In(target Unit) (float64, error) {
	if !q.unit.Compatible(target) {
		return 0, fmt.Errorf("%w: cannot convert %s to %s", ErrDimensionality, q.unit, target)
	}

	return q.mag * q.unit.scale / target.scale, nil
}

// To converts q to the target unit.
func (q Quantity) To(target Unit) (Quantity, error) {
	v, err := q.In(target)
	if err != nil {
		return Quantity{}, err
	}

	return New(v, target), nil
}

// SI returns a fresh gonum unit value in SI base units.
// gonum's Mul and Div mutate their receiver, so callers get a new value each time.
func (q Quantity) SI() *unit.Unit {
	return unit.New(q.mag*q.unit.scale, copyDims(q.unit.dims))
}

// From converts a gonum unit value into a Quantity in the target unit.
//
// Errors:
//   - ErrDimensionality if u and target differ in dimensions.
func From(u unit.Uniter, target Unit) (Quantity, error) {
	su := u.Unit()
	if !sameDims(su.Dimensions(), target.dims) {
		return Quantity{}, fmt.Errorf("%w: %s is not %s", ErrDimensionality, formatDims(su.Dimensions()), target)
	}

	return New(su.Value()/target.scale, target), nil
}

// Add returns q+o expressed in q's unit.
//
// Errors:
//   - ErrDimensionality if the operands are incompatible.
func (q Quantity) Add(o Quantity) (Quantity, error) {
	v, err := o.In(q.unit)
	if err != nil {
		return Quantity{}, err
	}

	return New(q.mag+v, q.unit), nil
}

// Scale multiplies the magnitude by a pure number.
func (q Quantity) Scale(f float64) Quantity { return New(q.mag*f, q.unit) }

// Neg returns -q.
func (q Quantity) Neg() Quantity { return q.Scale(-1) }

// Abs returns |q|.
func (q Quantity) Abs() Quantity { return New(math.Abs(q.mag), q.unit) }

// String renders "magnitude unit", e.g. "10 gpm".
func (q Quantity) String() string {
	if !q.IsSet() {
		return "<unset>"
	}

	return fmt.Sprintf("%g %s", q.mag, q.unit)
}
