// SPDX-License-Identifier: MIT
// Package core_test contains fixtures shared by the core tests.
//
// Purpose:
//   - Build small, deterministic networks with known solutions.
//   - Provide custom elements for re-entrancy and error-propagation tests.

package core_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pipenet/core"
	"github.com/katalvlaran/pipenet/element"
	"github.com/katalvlaran/pipenet/units"
)

// Common IDs used across core tests.
const (
	NodeA = "A"
	NodeB = "B"
	NodeC = "C"
	NodeJ = "J"

	Seg1 = "S1"
	Seg2 = "S2"
	Seg3 = "S3"
)

// Scenario constants: 100 ft → 50 ft through 1/2" sch 40 sized for 10 gpm.
const (
	HeadHigh   = 100.0
	HeadLow    = 50.0
	TargetFlow = 10.0
	FlowRelTol = 1e-3
	ResidTol   = 1e-6
)

// scenarioLength returns the pipe length (ft) of 1/2" sch 40 that loses
// HeadHigh−HeadLow at TargetFlow.
func scenarioLength(t testing.TB) float64 {
	t.Helper()
	p, err := element.NewPipe(units.Q(1, "ft"), "1/2", "40", nil)
	require.NoError(t, err)
	h, err := p.Loss(units.Q(TargetFlow, "gpm"), element.Water20C)
	require.NoError(t, err)

	return (HeadHigh - HeadLow) / h.Magnitude()
}

// twoReservoirs builds A(100 ft) ──S1─► B(50 ft) with the flow unknown.
func twoReservoirs(t testing.TB, opts ...core.Option) *core.Network {
	t.Helper()
	n := core.New(opts...)
	require.NoError(t, n.Connect(Seg1, NodeA, NodeB))
	require.NoError(t, n.ApplyBoundary(NodeA, core.BoundaryHead, HeadHigh, "ft"))
	require.NoError(t, n.ApplyBoundary(NodeB, core.BoundaryHead, HeadLow, "ft"))
	require.NoError(t, n.AddElement(Seg1, element.KindPipe, element.Params{
		Length:   units.Q(scenarioLength(t), "ft"),
		Nominal:  "1/2",
		Schedule: "40",
	}))

	return n
}

// threeReservoirs builds A(100) ──S1─► J, J ──S2─► B(60), J ──S3─► C(40), each
// segment 100 ft of 1" sch 40.
func threeReservoirs(t testing.TB, opts ...core.Option) *core.Network {
	t.Helper()
	n := core.New(opts...)
	require.NoError(t, n.Connect(Seg1, NodeA, NodeJ))
	require.NoError(t, n.Connect(Seg2, NodeJ, NodeB))
	require.NoError(t, n.Connect(Seg3, NodeJ, NodeC))
	require.NoError(t, n.ApplyBoundary(NodeA, core.BoundaryHead, 100, "ft"))
	require.NoError(t, n.ApplyBoundary(NodeB, core.BoundaryHead, 60, "ft"))
	require.NoError(t, n.ApplyBoundary(NodeC, core.BoundaryHead, 40, "ft"))
	for _, id := range []string{Seg1, Seg2, Seg3} {
		require.NoError(t, n.AddElement(id, element.KindPipe, element.Params{
			Length:   units.Q(100, "ft"),
			Nominal:  "1",
			Schedule: "40",
		}))
	}

	return n
}

// flowOf returns a segment flow in gpm.
func flowOf(t testing.TB, n *core.Network, id string) (float64, core.State) {
	t.Helper()
	s, err := n.Segment(id)
	require.NoError(t, err)
	q, st := s.Flow()
	if st == core.Unset {
		return 0, st
	}
	v, err := q.In(units.GallonsPerMinute)
	require.NoError(t, err)

	return v, st
}

// headOf returns a node head in ft.
func headOf(t testing.TB, n *core.Network, id string) (float64, core.State) {
	t.Helper()
	nd, err := n.Node(id)
	require.NoError(t, err)
	q, st := nd.Head()
	if st == core.Unset {
		return 0, st
	}
	v, err := q.In(units.Foot)
	require.NoError(t, err)

	return v, st
}

// residualOf returns the residual of one equation.
func residualOf(t testing.TB, n *core.Network, k core.Key) float64 {
	t.Helper()
	rs, err := n.ResidualsByKey()
	require.NoError(t, err)
	for _, r := range rs {
		if r.Key == k {
			return r.Value
		}
	}
	t.Fatalf("no residual for %s", k)

	return 0
}

// linearLoss loses Slope ft per gpm.
type linearLoss struct {
	Slope float64
}

func (l linearLoss) Loss(flow units.Quantity, _ element.Fluid) (units.Quantity, error) {
	q, err := flow.In(units.GallonsPerMinute)
	if err != nil {
		return units.Quantity{}, err
	}

	return units.New(l.Slope*q, units.Foot), nil
}

// reentrant calls back into its network from inside Loss and records the errors.
type reentrant struct {
	net  *core.Network
	errs []error
}

func (r *reentrant) Loss(flow units.Quantity, fluid element.Fluid) (units.Quantity, error) {
	_, err := r.net.FindUnknowns()
	r.errs = append(r.errs, err, r.net.Solve())

	return linearLoss{Slope: 0.5}.Loss(flow, fluid)
}

// wrongUnit reports its loss as a flow.
type wrongUnit struct{}

func (wrongUnit) Loss(flow units.Quantity, _ element.Fluid) (units.Quantity, error) {
	return flow, nil
}
