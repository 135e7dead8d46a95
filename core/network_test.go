// SPDX-License-Identifier: MIT

package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/pipenet/core"
	"github.com/katalvlaran/pipenet/element"
	"github.com/katalvlaran/pipenet/units"
)

// TopologySuite covers node/segment construction and boundary conditions.
type TopologySuite struct {
	suite.Suite
	n *core.Network
}

func (s *TopologySuite) SetupTest() {
	s.n = core.New()
}

// TestConnectLinksBothEnds records the segment on both nodes.
func (s *TopologySuite) TestConnectLinksBothEnds() {
	require.NoError(s.T(), s.n.Connect(Seg1, NodeA, NodeB))

	seg, err := s.n.Segment(Seg1)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), NodeA, seg.Start())
	assert.Equal(s.T(), NodeB, seg.End())

	a, err := s.n.Node(NodeA)
	require.NoError(s.T(), err)
	b, err := s.n.Node(NodeB)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), []string{Seg1}, a.Outputs())
	assert.Empty(s.T(), a.Inputs())
	assert.Equal(s.T(), []string{Seg1}, b.Inputs())
	assert.Equal(s.T(), 2, s.n.NodeCount())
	assert.Equal(s.T(), 1, s.n.SegmentCount())
}

// TestRelinkDetaches moves the end from B to C.
func (s *TopologySuite) TestRelinkDetaches() {
	require.NoError(s.T(), s.n.Connect(Seg1, NodeA, NodeB))
	require.NoError(s.T(), s.n.AddStartEndLink(Seg1, NodeC, false))
	require.NoError(s.T(), s.n.AddStartEndLink(Seg1, NodeC, false))

	b, _ := s.n.Node(NodeB)
	c, _ := s.n.Node(NodeC)
	assert.Empty(s.T(), b.Inputs())
	assert.Equal(s.T(), []string{Seg1}, c.Inputs())
}

// TestInsertionOrder keeps nodes and segments in declaration order.
func (s *TopologySuite) TestInsertionOrder() {
	require.NoError(s.T(), s.n.AddNode(NodeC))
	require.NoError(s.T(), s.n.Connect(Seg2, NodeA, NodeB))
	require.NoError(s.T(), s.n.Connect(Seg1, NodeB, NodeC))
	require.NoError(s.T(), s.n.AddNode(NodeA))

	var nodes, segs []string
	for _, nd := range s.n.Nodes() {
		nodes = append(nodes, nd.ID())
	}
	for _, sg := range s.n.Segments() {
		segs = append(segs, sg.ID())
	}
	assert.Equal(s.T(), []string{NodeC, NodeA, NodeB}, nodes)
	assert.Equal(s.T(), []string{Seg2, Seg1}, segs)
}

// TestIDErrors covers empty, duplicate and missing IDs.
func (s *TopologySuite) TestIDErrors() {
	require.ErrorIs(s.T(), s.n.AddNode(""), core.ErrEmptyID)
	require.ErrorIs(s.T(), s.n.AddSegment(""), core.ErrEmptyID)
	require.NoError(s.T(), s.n.AddSegment(Seg1))
	require.ErrorIs(s.T(), s.n.AddSegment(Seg1), core.ErrDuplicateID)
	require.ErrorIs(s.T(), s.n.AddStartEndLink(Seg1, "", true), core.ErrEmptyID)
	require.ErrorIs(s.T(), s.n.AddStartEndLink("nope", NodeA, true), core.ErrSegmentNotFound)

	_, err := s.n.Node("nope")
	require.ErrorIs(s.T(), err, core.ErrNodeNotFound)
	_, err = s.n.Segment("nope")
	require.ErrorIs(s.T(), err, core.ErrSegmentNotFound)
}

// TestAddElement builds pipes and fittings through the registry.
func (s *TopologySuite) TestAddElement() {
	require.NoError(s.T(), s.n.Connect(Seg1, NodeA, NodeB))
	require.NoError(s.T(), s.n.AddElement(Seg1, element.KindPipe, element.Params{
		Length: units.Q(10, "ft"), Nominal: "1", Schedule: "40",
	}))
	require.NoError(s.T(), s.n.AddElement(Seg1, "FITTING", element.Params{
		K: 0.5, Nominal: "1", Schedule: "40",
	}))
	seg, _ := s.n.Segment(Seg1)
	require.Len(s.T(), seg.Elements(), 2)

	err := s.n.AddElement(Seg1, "valve", element.Params{})
	require.ErrorIs(s.T(), err, element.ErrUnknownKind)
	err = s.n.AddElement("nope", element.KindPipe, element.Params{})
	require.ErrorIs(s.T(), err, core.ErrSegmentNotFound)
	require.ErrorIs(s.T(), s.n.AppendElement(Seg1, nil), element.ErrInvalidParams)
}

// TestBoundaryOverwrite keeps the last declaration; inflow is negative outflow.
func (s *TopologySuite) TestBoundaryOverwrite() {
	require.NoError(s.T(), s.n.Connect(Seg1, NodeA, NodeB))
	require.NoError(s.T(), s.n.ApplyBoundary(NodeA, core.BoundaryHead, 10, "m"))
	require.NoError(s.T(), s.n.ApplyBoundary(NodeA, core.BoundaryHead, 20, "ft"))
	h, st := headOf(s.T(), s.n, NodeA)
	assert.Equal(s.T(), core.Declared, st)
	assert.InDelta(s.T(), 20.0, h, 1e-12)

	require.NoError(s.T(), s.n.ApplyBoundary(NodeB, core.BoundaryOutflow, 3, "gpm"))
	require.NoError(s.T(), s.n.ApplyBoundary(NodeB, "Inflow", 2, "gpm"))
	b, _ := s.n.Node(NodeB)
	out, err := b.Outflow().In(units.GallonsPerMinute)
	require.NoError(s.T(), err)
	assert.InDelta(s.T(), -2.0, out, 1e-12)

	require.NoError(s.T(), s.n.ApplyBoundary(Seg1, core.BoundaryFlow, 1, "L/s"))
	q, st := flowOf(s.T(), s.n, Seg1)
	assert.Equal(s.T(), core.Declared, st)
	assert.InDelta(s.T(), 15.850, q, 1e-3)
}

// TestFluidBoundary replaces density and viscosity on the network fluid.
func (s *TopologySuite) TestFluidBoundary() {
	require.NoError(s.T(), s.n.ApplyBoundary(core.FluidTarget, core.BoundaryDensity, 1000, "kg/m3"))
	require.NoError(s.T(), s.n.ApplyBoundary(core.FluidTarget, core.BoundaryViscosity, 2, "cP"))
	f := s.n.Fluid()
	assert.InDelta(s.T(), 1000.0, f.Density.Magnitude(), 1e-12)
	v, err := f.Viscosity.In(units.PascalSecond)
	require.NoError(s.T(), err)
	assert.InDelta(s.T(), 0.002, v, 1e-12)
}

// TestBoundaryErrors rejects wrong targets, units and dimensions.
func (s *TopologySuite) TestBoundaryErrors() {
	require.NoError(s.T(), s.n.Connect(Seg1, NodeA, NodeB))
	require.ErrorIs(s.T(), s.n.ApplyBoundary(NodeA, "pressure", 1, "ft"), core.ErrUnknownBoundary)
	require.ErrorIs(s.T(), s.n.ApplyBoundary(NodeA, core.BoundaryDensity, 1, "kg/m3"), core.ErrUnknownBoundary)
	require.ErrorIs(s.T(), s.n.ApplyBoundary(NodeA, core.BoundaryHead, 1, "furlong"), units.ErrUnknownUnit)
	require.ErrorIs(s.T(), s.n.ApplyBoundary(NodeA, core.BoundaryHead, 1, "gpm"), units.ErrDimensionality)
	require.ErrorIs(s.T(), s.n.ApplyBoundary(Seg1, core.BoundaryFlow, 1, "ft"), units.ErrDimensionality)
	require.ErrorIs(s.T(), s.n.ApplyBoundary(core.FluidTarget, core.BoundaryViscosity, 1, "ft"), units.ErrDimensionality)
	require.ErrorIs(s.T(), s.n.ApplyBoundary("nope", core.BoundaryHead, 1, "ft"), core.ErrNodeNotFound)
	require.ErrorIs(s.T(), s.n.ApplyBoundary("nope", core.BoundaryFlow, 1, "gpm"), core.ErrSegmentNotFound)

	_, st := headOf(s.T(), s.n, NodeA)
	assert.Equal(s.T(), core.Unset, st)
}

// TestTotalLoss sums elements and refuses an unset flow.
func (s *TopologySuite) TestTotalLoss() {
	require.NoError(s.T(), s.n.Connect(Seg1, NodeA, NodeB))
	seg, _ := s.n.Segment(Seg1)

	_, err := seg.TotalLoss()
	require.ErrorIs(s.T(), err, core.ErrUnsetFlow)

	require.NoError(s.T(), seg.DeclareFlow(units.Q(4, "gpm")))
	h, err := seg.TotalLoss()
	require.NoError(s.T(), err)
	assert.Zero(s.T(), h.Magnitude())

	require.NoError(s.T(), s.n.AppendElement(Seg1, linearLoss{Slope: 0.5}))
	require.NoError(s.T(), s.n.AppendElement(Seg1, linearLoss{Slope: 0.25}))
	h, err = seg.TotalLoss()
	require.NoError(s.T(), err)
	assert.InDelta(s.T(), 3.0, h.Magnitude(), 1e-12)

	require.NoError(s.T(), s.n.AppendElement(Seg1, wrongUnit{}))
	_, err = seg.TotalLoss()
	require.ErrorIs(s.T(), err, units.ErrDimensionality)
}

// TestResiduals evaluates both laws on fully declared values.
func (s *TopologySuite) TestResiduals() {
	require.NoError(s.T(), s.n.Connect(Seg1, NodeA, NodeB))
	require.NoError(s.T(), s.n.AppendElement(Seg1, linearLoss{Slope: 1}))

	_, err := s.n.Residuals()
	require.ErrorIs(s.T(), err, core.ErrUnresolvedReference)

	require.NoError(s.T(), s.n.ApplyBoundary(NodeA, core.BoundaryHead, 10, "ft"))
	require.NoError(s.T(), s.n.ApplyBoundary(NodeB, core.BoundaryHead, 4, "ft"))
	require.NoError(s.T(), s.n.ApplyBoundary(Seg1, core.BoundaryFlow, 5, "gpm"))
	require.NoError(s.T(), s.n.ApplyBoundary(NodeB, core.BoundaryOutflow, 2, "gpm"))

	rs, err := s.n.ResidualsByKey()
	require.NoError(s.T(), err)
	require.Len(s.T(), rs, 3)
	assert.Equal(s.T(), core.Key{Kind: core.KindSegment, ID: Seg1}, rs[0].Key)
	assert.InDelta(s.T(), 4+5-10.0, rs[0].Value, 1e-12)
	assert.InDelta(s.T(), -5.0, rs[1].Value, 1e-12) // A: only an output
	assert.InDelta(s.T(), 3.0, rs[2].Value, 1e-12)  // B: 5 in, 2 out

	vals, err := s.n.Residuals()
	require.NoError(s.T(), err)
	assert.Equal(s.T(), []float64{rs[0].Value, rs[1].Value, rs[2].Value}, vals)

	gain, err := s.n.HeadGain(Seg1)
	require.NoError(s.T(), err)
	assert.InDelta(s.T(), -1.0, gain.Magnitude(), 1e-12)
	sup, err := s.n.Supply(NodeA)
	require.NoError(s.T(), err)
	assert.InDelta(s.T(), 5.0, sup.Magnitude(), 1e-12)
}

// TestIncompleteSegment fails residuals and validation.
func (s *TopologySuite) TestIncompleteSegment() {
	require.NoError(s.T(), s.n.AddSegment(Seg1))
	require.NoError(s.T(), s.n.AddStartEndLink(Seg1, NodeA, true))
	require.NoError(s.T(), s.n.ApplyBoundary(Seg1, core.BoundaryFlow, 1, "gpm"))

	_, err := s.n.Residuals()
	require.ErrorIs(s.T(), err, core.ErrIncompleteSegment)
	require.ErrorIs(s.T(), s.n.Validate(), core.ErrIncompleteSegment)
	require.ErrorIs(s.T(), s.n.Solve(), core.ErrIncompleteSegment)
}

// TestFloatingComponent needs a declared head in every component with unknowns.
func (s *TopologySuite) TestFloatingComponent() {
	require.NoError(s.T(), s.n.Connect(Seg1, NodeA, NodeB))
	require.NoError(s.T(), s.n.Connect(Seg2, NodeC, NodeJ))
	require.NoError(s.T(), s.n.ApplyBoundary(NodeA, core.BoundaryHead, 1, "ft"))

	err := s.n.Validate()
	require.ErrorIs(s.T(), err, core.ErrFloatingComponent)
	assert.Contains(s.T(), err.Error(), `"C"`)

	require.NoError(s.T(), s.n.ApplyBoundary(NodeJ, core.BoundaryHead, 1, "ft"))
	require.NoError(s.T(), s.n.Validate())
}

func TestTopologySuite(t *testing.T) {
	suite.Run(t, new(TopologySuite))
}

func TestStateAndKeyStrings(t *testing.T) {
	assert.Equal(t, "unset", core.Unset.String())
	assert.Equal(t, "declared", core.Declared.String())
	assert.Equal(t, "bound", core.Bound.String())
	assert.Equal(t, "State(9)", core.State(9).String())
	assert.Equal(t, "segment:S1", core.Key{Kind: core.KindSegment, ID: Seg1}.String())
	assert.Equal(t, "node:A", core.Key{Kind: core.KindNode, ID: NodeA}.String())
}

func TestOptions_PanicOnNonsense(t *testing.T) {
	assert.Panics(t, func() { core.WithFlowSeed(0) })
	assert.Panics(t, func() {
		core.WithFluid(element.Fluid{Density: units.Q(1, "ft"), Viscosity: units.Q(1, "cP")})
	})
	assert.NotPanics(t, func() { core.WithFlowSeed(-2) })
}
