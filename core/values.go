// SPDX-License-Identifier: MIT

// File: values.go
// Role: head and flow storage with provenance; segment head loss.
//
// Each value has two writers sharing one field: Declare* for boundary
// conditions and Bind* for the solver.
package core

import (
	"fmt"

	"github.com/katalvlaran/pipenet/units"
)

// Head returns the node head and its state. The quantity is unset when the
// state is Unset.
func (nd *Node) Head() (units.Quantity, State) {
	if nd.headState == Unset {
		return units.Quantity{}, Unset
	}

	return units.New(nd.head, HeadUnit), nd.headState
}

// DeclareHead fixes the node head as a boundary condition.
//
// Errors:
//   - units.ErrDimensionality if q is not a length.
func (nd *Node) DeclareHead(q units.Quantity) error {
	v, err := q.In(HeadUnit)
	if err != nil {
		return fmt.Errorf("core: node %q head: %w", nd.id, err)
	}
	nd.head, nd.headState = v, Declared

	return nil
}

// BindHead writes a solver value, in HeadUnit.
func (nd *Node) BindHead(magnitude float64) {
	nd.head, nd.headState = magnitude, Bound
}

// Outflow returns the net external demand leaving the node (negative for inflow).
func (nd *Node) Outflow() units.Quantity { return units.New(nd.outflow, FlowUnit) }

// setOutflow stores q in FlowUnit.
func (nd *Node) setOutflow(q units.Quantity) error {
	v, err := q.In(FlowUnit)
	if err != nil {
		return fmt.Errorf("core: node %q outflow: %w", nd.id, err)
	}
	nd.outflow = v

	return nil
}

// Flow returns the segment flow and its state. The quantity is unset when the
// state is Unset.
func (s *Segment) Flow() (units.Quantity, State) {
	if s.flowState == Unset {
		return units.Quantity{}, Unset
	}

	return units.New(s.flow, FlowUnit), s.flowState
}

// DeclareFlow fixes the segment flow as a boundary condition.
//
// Errors:
//   - units.ErrDimensionality if q is not a volumetric flow.
func (s *Segment) DeclareFlow(q units.Quantity) error {
	v, err := q.In(FlowUnit)
	if err != nil {
		return fmt.Errorf("core: segment %q flow: %w", s.id, err)
	}
	s.flow, s.flowState = v, Declared

	return nil
}

// BindFlow writes a solver value, in FlowUnit.
func (s *Segment) BindFlow(magnitude float64) {
	s.flow, s.flowState = magnitude, Bound
}

// TotalLoss sums the head loss of every element at the current flow using
// the network fluid. A segment without elements loses nothing.
//
// Errors:
//   - ErrUnsetFlow if the flow is unknown.
//   - any element error (friction.ErrCorrelation, units.ErrDimensionality, ...).
func (s *Segment) TotalLoss() (units.Quantity, error) {
	if s.flowState == Unset {
		return units.Quantity{}, keyError(ErrUnsetFlow, Key{KindSegment, s.id})
	}
	flow := units.New(s.flow, FlowUnit)
	fluid := s.net.fluid

	total := 0.0
	for i, el := range s.elements {
		h, err := el.Loss(flow, fluid)
		if err != nil {
			return units.Quantity{}, fmt.Errorf("core: segment %q element %d: %w", s.id, i, err)
		}
		v, err := h.In(HeadUnit)
		if err != nil {
			return units.Quantity{}, fmt.Errorf("core: segment %q element %d: %w", s.id, i, err)
		}
		total += v
	}

	return units.New(total, HeadUnit), nil
}
