// SPDX-License-Identifier: MIT

// Package units provides the dimensioned quantities used by pipenet.
//
// A Quantity is a magnitude paired with a named Unit. Every Unit knows its
// scale to SI and its dimension vector, expressed with gonum's unit
// package (gonum.org/v1/gonum/unit). Arithmetic that changes dimensions
// (Reynolds number, velocity from flow and area) is done on gonum
// *unit.Unit values obtained from Quantity.SI, and reduced back either to a
// named Unit (From) or to a pure number (Dimensionless).
//
// Registered unit names:
//
//	length:         m, mm, cm, ft (foot, feet), in (inch, inches)
//	volumetric flow: gpm (gal/min, gallons/minute), L/s, L/min, m3/s, m3/h, cfs
//	density:        kg/m3, g/cm3, lb/ft3
//	viscosity:      Pa*s (Pa.s), P, cP, lb/(ft*s)
//	velocity:       m/s, ft/s
//	area:           m2, ft2, in2
//	dimensionless:  1 (dimensionless), exported as Unitless
//
// Errors:
//
//	ErrUnknownUnit     - unit name is not registered.
//	ErrDimensionality  - operands or conversion targets have different dimensions.
package units
