// SPDX-License-Identifier: MIT

// File: boundary.go
// Role: boundary conditions on nodes, segments and the fluid.
//
// Policy:
//   - Declaring the same kind twice overwrites the earlier value.
//   - inflow is stored as negated outflow.
package core

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/pipenet/element"
	"github.com/katalvlaran/pipenet/units"
)

// BoundaryKind names a boundary condition.
type BoundaryKind string

const (
	// BoundaryHead fixes a node head (length).
	BoundaryHead BoundaryKind = "head"

	// BoundaryOutflow sets a node's external demand (volumetric flow).
	BoundaryOutflow BoundaryKind = "outflow"

	// BoundaryInflow sets a node's external supply; stored as negative outflow.
	BoundaryInflow BoundaryKind = "inflow"

	// BoundaryFlow fixes a segment flow (volumetric flow).
	BoundaryFlow BoundaryKind = "flow"

	// BoundaryDensity sets the fluid density; the target must be FluidTarget.
	BoundaryDensity BoundaryKind = "density"

	// BoundaryViscosity sets the fluid dynamic viscosity; the target must be FluidTarget.
	BoundaryViscosity BoundaryKind = "viscosity"
)

// FluidTarget is the target ID for fluid boundaries.
const FluidTarget = "fluid"

// ApplyBoundary applies a node boundary: head, outflow or inflow.
//
// Errors:
//   - units.ErrUnknownUnit, units.ErrDimensionality, ErrUnknownBoundary.
func (nd *Node) ApplyBoundary(kind BoundaryKind, magnitude float64, unit string) error {
	u, err := units.Parse(unit)
	if err != nil {
		return fmt.Errorf("core: node %q: %w", nd.id, err)
	}
	q := units.New(magnitude, u)

	switch BoundaryKind(strings.ToLower(string(kind))) {
	case BoundaryHead:
		return nd.DeclareHead(q)
	case BoundaryOutflow:
		return nd.setOutflow(q)
	case BoundaryInflow:
		return nd.setOutflow(q.Neg())
	default:
		return fmt.Errorf("%w: %q on node %q", ErrUnknownBoundary, kind, nd.id)
	}
}

// ApplyBoundary routes a boundary to a node, a segment (flow) or the fluid
// (density, viscosity with targetID == FluidTarget).
//
// Errors:
//   - ErrNodeNotFound, ErrSegmentNotFound, ErrUnknownBoundary,
//     units.ErrUnknownUnit, units.ErrDimensionality.
func (n *Network) ApplyBoundary(targetID string, kind BoundaryKind, magnitude float64, unit string) error {
	k := BoundaryKind(strings.ToLower(string(kind)))
	switch k {
	case BoundaryFlow:
		s, err := n.Segment(targetID)
		if err != nil {
			return err
		}
		u, err := units.Parse(unit)
		if err != nil {
			return fmt.Errorf("core: segment %q: %w", targetID, err)
		}

		return s.DeclareFlow(units.New(magnitude, u))
	case BoundaryDensity, BoundaryViscosity:
		if targetID != FluidTarget {
			return fmt.Errorf("%w: %q on %q (fluid boundaries target %q)", ErrUnknownBoundary, kind, targetID, FluidTarget)
		}
		u, err := units.Parse(unit)
		if err != nil {
			return fmt.Errorf("core: fluid: %w", err)
		}
		f := n.fluid
		if k == BoundaryDensity {
			f.Density = units.New(magnitude, u)
		} else {
			f.Viscosity = units.New(magnitude, u)
		}

		return n.DeclareFluid(f)
	default:
		nd, err := n.Node(targetID)
		if err != nil {
			return err
		}

		return nd.ApplyBoundary(k, magnitude, unit)
	}
}

// DeclareFluid replaces the network fluid.
//
// Errors:
//   - units.ErrDimensionality if density or viscosity carry the wrong dimensions.
func (n *Network) DeclareFluid(f element.Fluid) error {
	if !f.Density.Is(units.KilogramsPerCubicMetre) {
		return fmt.Errorf("core: fluid density %s: %w", f.Density, units.ErrDimensionality)
	}
	if !f.Viscosity.Is(units.PascalSecond) {
		return fmt.Errorf("core: fluid viscosity %s: %w", f.Viscosity, units.ErrDimensionality)
	}
	n.fluid = f

	return nil
}
