// SPDX-License-Identifier: MIT

package element_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pipenet/element"
	"github.com/katalvlaran/pipenet/friction"
	"github.com/katalvlaran/pipenet/pipedata"
	"github.com/katalvlaran/pipenet/units"
)

func halfInchPipe(t *testing.T, lengthFt float64) *element.Pipe {
	t.Helper()
	p, err := element.NewPipe(units.Q(lengthFt, "ft"), "1/2", "40", nil)
	require.NoError(t, err)
	return p
}

// 10 gpm of 20 °C water through 1 ft of 1/2" sch 40: v ≈ 3.218 m/s, Re ≈ 50650,
// f ≈ 0.02838, h ≈ 0.9486 ft.
func TestPipe_LossReference(t *testing.T) {
	p := halfInchPipe(t, 1)
	h, err := p.Loss(units.Q(10, "gpm"), element.Water20C)
	require.NoError(t, err)
	assert.Equal(t, units.Foot, h.Unit())
	assert.InEpsilon(t, 0.94856, h.Magnitude(), 1e-4)

	// same flow in another unit
	h2, err := p.Loss(units.Q(10*3.785411784/60, "L/s"), element.Water20C)
	require.NoError(t, err)
	assert.InEpsilon(t, h.Magnitude(), h2.Magnitude(), 1e-9)
}

func TestPipe_LossSignAndZero(t *testing.T) {
	p := halfInchPipe(t, 10)

	h, err := p.Loss(units.Q(0, "gpm"), element.Water20C)
	require.NoError(t, err)
	assert.Equal(t, 0.0, h.Magnitude())

	fwd, err := p.Loss(units.Q(5, "gpm"), element.Water20C)
	require.NoError(t, err)
	rev, err := p.Loss(units.Q(-5, "gpm"), element.Water20C)
	require.NoError(t, err)
	assert.Greater(t, fwd.Magnitude(), 0.0)
	assert.InDelta(t, -fwd.Magnitude(), rev.Magnitude(), 1e-12)
}

func TestPipe_LossMonotone(t *testing.T) {
	p := halfInchPipe(t, 10)
	prev := 0.0
	// crosses the laminar/turbulent switch near 0.4 gpm
	for q := 0.01; q <= 20; q *= 1.3 {
		h, err := p.Loss(units.Q(q, "gpm"), element.Water20C)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, h.Magnitude(), prev, "q=%g", q)
		prev = h.Magnitude()
	}
}

func TestPipe_Laminar(t *testing.T) {
	// very viscous fluid keeps the flow laminar: h = 64/Re · L/D · v²/2g = 32 μ L v /(ρ g D²)
	oil := element.Fluid{Density: units.Q(900, "kg/m3"), Viscosity: units.Q(100, "cP")}
	p := &element.Pipe{Diameter: units.Q(0.05, "m"), Length: units.Q(10, "m")}
	q := units.Q(1, "L/s")
	h, err := p.Loss(q, oil)
	require.NoError(t, err)

	v := 1e-3 / (math.Pi * 0.05 * 0.05 / 4)
	want := 32 * 0.1 * 10 * v / (900 * units.StandardGravity * 0.05 * 0.05) / 0.3048
	assert.InEpsilon(t, want, h.Magnitude(), 1e-9)
}

func TestPipe_CorrelationFailurePropagates(t *testing.T) {
	p := halfInchPipe(t, 1)
	p.Correlation = friction.NewCorrelation(friction.WithMaxIterations(1))
	_, err := p.Loss(units.Q(10, "gpm"), element.Water20C)
	require.ErrorIs(t, err, friction.ErrCorrelation)
}

func TestPipe_Dimensionality(t *testing.T) {
	p := halfInchPipe(t, 1)
	_, err := p.Loss(units.Q(10, "ft"), element.Water20C)
	require.ErrorIs(t, err, units.ErrDimensionality)

	bad := element.Fluid{Density: units.Q(1000, "kg/m3"), Viscosity: units.Q(1, "m/s")}
	_, err = p.Loss(units.Q(10, "gpm"), bad)
	require.ErrorIs(t, err, units.ErrDimensionality)
}

func TestNewPipe_Errors(t *testing.T) {
	_, err := element.NewPipe(units.Q(1, "ft"), "7", "40", nil)
	require.ErrorIs(t, err, pipedata.ErrUnknownSize)

	_, err = element.NewPipe(units.Q(-1, "ft"), "1", "40", nil)
	require.ErrorIs(t, err, element.ErrInvalidParams)

	_, err = element.NewPipe(units.Q(1, "gpm"), "1", "40", nil)
	require.ErrorIs(t, err, element.ErrInvalidParams)
	require.ErrorIs(t, err, units.ErrDimensionality)
}

func TestFitting_Loss(t *testing.T) {
	ft, err := element.NewFitting(0.5, units.Q(0.622, "in"))
	require.NoError(t, err)
	h, err := ft.Loss(units.Q(10, "gpm"), element.Water20C)
	require.NoError(t, err)
	assert.InEpsilon(t, 0.866267, h.Magnitude(), 1e-5)

	_, err = element.NewFitting(-1, units.Q(1, "in"))
	require.ErrorIs(t, err, element.ErrInvalidParams)
}

func TestNew_Registry(t *testing.T) {
	el, err := element.New("Pipe", element.Params{Length: units.Q(1, "ft"), Nominal: "1/2", Schedule: "40"}, nil)
	require.NoError(t, err)
	p, ok := el.(*element.Pipe)
	require.True(t, ok)
	assert.InDelta(t, 0.622, p.Diameter.Magnitude(), 1e-9)
	assert.Equal(t, element.DefaultRoughness, p.Roughness)

	el, err = element.New(element.KindPipe, element.Params{
		Length:    units.Q(3, "m"),
		Diameter:  units.Q(40, "mm"),
		Roughness: units.Q(0.0015, "mm"),
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, units.Q(0.0015, "mm"), el.(*element.Pipe).Roughness)

	el, err = element.New(element.KindFitting, element.Params{K: 0.9, Nominal: "2", Schedule: "40"}, pipedata.Default())
	require.NoError(t, err)
	assert.InDelta(t, 2.067, el.(*element.Fitting).Diameter.Magnitude(), 1e-9)

	_, err = element.New("pump", element.Params{}, nil)
	require.ErrorIs(t, err, element.ErrUnknownKind)

	_, err = element.New(element.KindPipe, element.Params{Length: units.Q(1, "ft")}, nil)
	require.ErrorIs(t, err, element.ErrInvalidParams)
}

type constantLoss struct{ head units.Quantity }

func (c constantLoss) Loss(units.Quantity, element.Fluid) (units.Quantity, error) { return c.head, nil }

func TestRegister_CustomKind(t *testing.T) {
	element.Register("strainer", func(p element.Params, _ pipedata.Lookup) (element.Element, error) {
		return constantLoss{head: units.New(p.K, units.Foot)}, nil
	})
	assert.Contains(t, element.Kinds(), "strainer")

	el, err := element.New("STRAINER", element.Params{K: 2}, nil)
	require.NoError(t, err)
	h, err := el.Loss(units.Q(1, "gpm"), element.Water20C)
	require.NoError(t, err)
	assert.Equal(t, 2.0, h.Magnitude())

	assert.Panics(t, func() { element.Register("", nil) })
}
