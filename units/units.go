// SPDX-License-Identifier: MIT

package units

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/unit"
)

// Sentinel errors for unit handling.
var (
	// ErrUnknownUnit indicates a unit name that is not in the registry.
	ErrUnknownUnit = errors.New("units: unknown unit")

	// ErrDimensionality indicates that two dimension vectors that must agree do not,
	// including a ratio that was expected to reduce to a pure number.
	ErrDimensionality = errors.New("units: dimensionality mismatch")
)

// Standard gravity in m/s².
const StandardGravity = 9.80665

// Unit is a named unit with a scale to SI and a dimension vector.
// The zero Unit is "unset" and is never returned by Parse.
type Unit struct {
	name  string
	scale float64         // SI magnitude of one of this unit
	dims  unit.Dimensions // read-only after construction
}

// Name returns the canonical registry name.
func (u Unit) Name() string { return u.name }

// Scale returns the SI magnitude of one of this unit.
func (u Unit) Scale() float64 { return u.scale }

// Dimensions returns a copy of the dimension vector.
func (u Unit) Dimensions() unit.Dimensions { return copyDims(u.dims) }

// IsSet reports whether u is a real unit (as opposed to the zero Unit).
func (u Unit) IsSet() bool { return u.name != "" }

// Compatible reports whether u and v measure the same physical dimension.
func (u Unit) Compatible(v Unit) bool { return sameDims(u.dims, v.dims) }

// String implements fmt.Stringer.
func (u Unit) String() string { return u.name }

// Dimension vectors for the quantities pipenet works with.
var (
	dimLength    = unit.Dimensions{unit.LengthDim: 1}
	dimArea      = unit.Dimensions{unit.LengthDim: 2}
	dimFlow      = unit.Dimensions{unit.LengthDim: 3, unit.TimeDim: -1}
	dimVelocity  = unit.Dimensions{unit.LengthDim: 1, unit.TimeDim: -1}
	dimDensity   = unit.Dimensions{unit.MassDim: 1, unit.LengthDim: -3}
	dimViscosity = unit.Dimensions{unit.MassDim: 1, unit.LengthDim: -1, unit.TimeDim: -1}
	dimNone      = unit.Dimensions{}
)

const (
	gallon   = 3.785411784e-3 // m³
	foot     = 0.3048         // m
	inch     = 0.0254         // m
	pound    = 0.45359237     // kg
	cubicFt  = foot * foot * foot
	minute   = 60.0
	hour     = 3600.0
	litre    = 1e-3
	centiP   = 1e-3
	poiseToS = 0.1
)

// Registered units. Vars rather than consts because Unit carries a map.
var (
	Metre       = define("m", 1, dimLength, "meter", "metre", "meters", "metres")
	Millimetre  = define("mm", 1e-3, dimLength, "millimeter", "millimetre")
	Centimetre  = define("cm", 1e-2, dimLength, "centimeter", "centimetre")
	Foot        = define("ft", foot, dimLength, "foot", "feet")
	Inch        = define("in", inch, dimLength, "inch", "inches")
	SquareMetre = define("m2", 1, dimArea, "m^2", "m**2")
	SquareFoot  = define("ft2", foot*foot, dimArea, "ft^2", "ft**2")
	SquareInch  = define("in2", inch*inch, dimArea, "in^2", "in**2")

	GallonsPerMinute     = define("gpm", gallon/minute, dimFlow, "gal/min", "gallons/minute", "gallon/minute", "gallons/min")
	LitresPerSecond      = define("L/s", litre, dimFlow, "l/s", "liter/second", "litre/second")
	LitresPerMinute      = define("L/min", litre/minute, dimFlow, "l/min", "lpm")
	CubicMetresPerSecond = define("m3/s", 1, dimFlow, "m^3/s", "m**3/s")
	CubicMetresPerHour   = define("m3/h", 1/hour, dimFlow, "m^3/h", "m**3/h", "m3/hr")
	CubicFeetPerSecond   = define("cfs", cubicFt, dimFlow, "ft3/s", "ft^3/s", "ft**3/s")

	MetresPerSecond = define("m/s", 1, dimVelocity, "meter/second", "metre/second")
	FeetPerSecond   = define("ft/s", foot, dimVelocity, "fps", "foot/second", "feet/second")

	KilogramsPerCubicMetre  = define("kg/m3", 1, dimDensity, "kg/m^3", "kg/m**3")
	GramsPerCubicCentimetre = define("g/cm3", 1000, dimDensity, "g/cm^3", "g/cc", "g/ml")
	PoundsPerCubicFoot      = define("lb/ft3", pound/cubicFt, dimDensity, "lb/ft^3", "lb/ft**3", "lbm/ft3", "pcf")

	PascalSecond       = define("Pa*s", 1, dimViscosity, "Pa.s", "pa*s", "pa.s", "kg/(m*s)")
	Poise              = define("P", poiseToS, dimViscosity, "poise")
	Centipoise         = define("cP", centiP, dimViscosity, "cp", "centipoise", "mPa*s", "mPa.s")
	PoundPerFootSecond = define("lb/(ft*s)", pound/foot, dimViscosity, "lb/ft/s", "lbm/(ft*s)")

	Unitless = define("1", 1, dimNone, "dimensionless")
)

// registry maps every accepted spelling to its Unit.
var registry map[string]Unit

// define registers a unit under its canonical name and aliases.
// Duplicate names are a programmer error and panic at init.
func define(name string, scale float64, dims unit.Dimensions, aliases ...string) Unit {
	if registry == nil {
		registry = make(map[string]Unit)
	}
	u := Unit{name: name, scale: scale, dims: dims}
	for _, key := range append([]string{name}, aliases...) {
		if _, dup := registry[key]; dup {
			panic("units: duplicate unit name " + key)
		}
		registry[key] = u
	}

	return u
}

// Parse resolves a unit name (canonical or alias, surrounding space ignored).
func Parse(name string) (Unit, error) {
	trimmed := strings.TrimSpace(name)
	if u, ok := registry[trimmed]; ok {
		return u, nil
	}
	// second chance: case-insensitive match, except where case is meaningful (P vs p)
	for key, u := range registry {
		if strings.EqualFold(key, trimmed) && len(key) > 1 {
			return u, nil
		}
	}

	return Unit{}, fmt.Errorf("%w: %q", ErrUnknownUnit, name)
}

// MustParse is Parse for package-level tables and tests; it panics on an unknown name.
func MustParse(name string) Unit {
	u, err := Parse(name)
	if err != nil {
		panic(err)
	}

	return u
}

// Names returns all accepted unit spellings in sorted order.
func Names() []string {
	out := make([]string, 0, len(registry))
	for key := range registry {
		out = append(out, key)
	}
	sort.Strings(out)

	return out
}

// Dimensionless reduces a gonum unit value to a plain number, failing with
// ErrDimensionality if any dimension exponent is non-zero.
func Dimensionless(u unit.Uniter) (float64, error) {
	su := u.Unit()
	if !sameDims(su.Dimensions(), dimNone) {
		return 0, fmt.Errorf("%w: expected dimensionless, got %s", ErrDimensionality, formatDims(su.Dimensions()))
	}

	return su.Value(), nil
}

// sameDims compares dimension vectors, treating missing and zero exponents alike.
func sameDims(a, b unit.Dimensions) bool {
	for d, p := range a {
		if p != b[d] {
			return false
		}
	}
	for d, p := range b {
		if p != a[d] {
			return false
		}
	}

	return true
}

func copyDims(d unit.Dimensions) unit.Dimensions {
	out := make(unit.Dimensions, len(d))
	for k, v := range d {
		if v != 0 {
			out[k] = v
		}
	}

	return out
}

// dimSymbols fixes the print order of base dimensions.
var dimSymbols = []struct {
	dim unit.Dimension
	sym string
}{
	{unit.MassDim, "kg"},
	{unit.LengthDim, "m"},
	{unit.TimeDim, "s"},
	{unit.TemperatureDim, "K"},
	{unit.CurrentDim, "A"},
	{unit.MoleDim, "mol"},
	{unit.LuminousIntensityDim, "cd"},
	{unit.AngleDim, "rad"},
}

// formatDims renders an SI dimension vector, e.g. "kg m^-1 s^-1".
func formatDims(d unit.Dimensions) string {
	parts := make([]string, 0, len(d))
	for _, ds := range dimSymbols {
		p := d[ds.dim]
		switch {
		case p == 0:
		case p == 1:
			parts = append(parts, ds.sym)
		default:
			parts = append(parts, fmt.Sprintf("%s^%d", ds.sym, p))
		}
	}
	if len(parts) == 0 {
		return "1"
	}

	return strings.Join(parts, " ")
}
