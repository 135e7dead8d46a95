// SPDX-License-Identifier: MIT

// File: types.go
// Role: Network, Node, Segment, value provenance, keys, and the New constructor.
//
// Determinism:
//   - Nodes() and Segments() enumerate in insertion order.
//
// Concurrency:
//   - A Network is single-threaded; independent Networks may be solved in
//     parallel (see SolveAll).
package core

import (
	"fmt"
	"log/slog"

	"github.com/katalvlaran/pipenet/element"
	"github.com/katalvlaran/pipenet/units"
)

// Solver units. Every flow the solver binds is in gallons per minute and
// every head in feet.
var (
	FlowUnit = units.GallonsPerMinute
	HeadUnit = units.Foot
)

// State records where a head or flow value came from.
type State int

const (
	// Unset values are unknowns.
	Unset State = iota

	// Declared values are boundary conditions.
	Declared

	// Bound values were written by the solver.
	Bound
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case Unset:
		return "unset"
	case Declared:
		return "declared"
	case Bound:
		return "bound"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Kind tells segment keys from node keys.
type Kind int

const (
	// KindSegment keys a segment flow and its pressure-drop equation.
	KindSegment Kind = iota

	// KindNode keys a node head and its continuity equation.
	KindNode
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	if k == KindNode {
		return "node"
	}

	return "segment"
}

// Key identifies an unknown or an equation. An unknown and the equation it
// is paired with share the same Key.
type Key struct {
	Kind Kind
	ID   string
}

// String renders "segment:S1" or "node:A".
func (k Key) String() string { return k.Kind.String() + ":" + k.ID }

// Node is a junction where segments meet.
//
// head is stored in HeadUnit, outflow in FlowUnit. inputs and outputs hold
// segment IDs in link order.
type Node struct {
	id        string
	head      float64
	headState State
	outflow   float64
	inputs    []string
	outputs   []string
}

// Segment is a directed run of elements between two nodes.
// Positive flow moves from start to end.
type Segment struct {
	id        string
	elements  []element.Element
	start     string
	end       string
	flow      float64
	flowState State
	net       *Network // non-owning; supplies the fluid for TotalLoss
}

// Network owns every Node and Segment, the fluid, and the solver settings.
//
// Nodes and segments reference each other only by ID. A Network is not safe
// for concurrent use.
type Network struct {
	nodes     map[string]*Node
	nodeOrder []string
	segments  map[string]*Segment
	segOrder  []string
	fluid     element.Fluid

	opts    Options
	logger  *slog.Logger
	solving bool
	report  SolveReport
}

// New returns an empty Network with water at 20 °C and the given options.
// Complexity: O(1)
func New(opts ...Option) *Network {
	o := gatherOptions(opts...)
	n := &Network{
		nodes:    make(map[string]*Node),
		segments: make(map[string]*Segment),
		fluid:    o.fluid,
		opts:     o,
		logger:   o.logger,
	}

	return n
}

// ID returns the node identifier.
func (nd *Node) ID() string { return nd.id }

// Inputs returns the IDs of segments ending at the node, in link order.
func (nd *Node) Inputs() []string { return append([]string(nil), nd.inputs...) }

// Outputs returns the IDs of segments starting at the node, in link order.
func (nd *Node) Outputs() []string { return append([]string(nil), nd.outputs...) }

// ID returns the segment identifier.
func (s *Segment) ID() string { return s.id }

// Start returns the start node ID, or "" if not linked yet.
func (s *Segment) Start() string { return s.start }

// End returns the end node ID, or "" if not linked yet.
func (s *Segment) End() string { return s.end }

// Elements returns the segment's elements in declaration order.
func (s *Segment) Elements() []element.Element {
	return append([]element.Element(nil), s.elements...)
}
