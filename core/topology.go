// SPDX-License-Identifier: MIT

// File: topology.go
// Role: node and segment lifecycle, endpoint links, elements, read accessors.
//
// Determinism:
//   - Nodes(), Segments(), Inputs(), Outputs() follow insertion/link order.
package core

import (
	"fmt"

	"github.com/katalvlaran/pipenet/element"
)

// AddNode inserts a node if missing (idempotent).
//
// Errors:
//   - ErrEmptyID: if id == "".
//
// Complexity:
//   - Time O(1) amortized.
func (n *Network) AddNode(id string) error {
	if id == "" {
		return ErrEmptyID
	}
	n.ensureNode(id)

	return nil
}

// ensureNode returns the node, creating it on first reference.
func (n *Network) ensureNode(id string) *Node {
	if nd, ok := n.nodes[id]; ok {
		return nd
	}
	nd := &Node{id: id}
	n.nodes[id] = nd
	n.nodeOrder = append(n.nodeOrder, id)

	return nd
}

// AddSegment declares a new segment with no endpoints and no elements.
//
// Errors:
//   - ErrEmptyID, ErrDuplicateID.
func (n *Network) AddSegment(id string) error {
	if id == "" {
		return ErrEmptyID
	}
	if _, ok := n.segments[id]; ok {
		return fmt.Errorf("%w: segment %q", ErrDuplicateID, id)
	}
	n.segments[id] = &Segment{id: id, net: n}
	n.segOrder = append(n.segOrder, id)

	return nil
}

// AddStartEndLink sets the start (isStart) or end node of a segment,
// creating the node on first reference. Relinking an endpoint detaches the
// segment from the previous node.
//
// Implementation:
//   - Stage 1: Resolve the segment and validate nodeID.
//   - Stage 2: Detach from the previous endpoint, if any.
//   - Stage 3: Record the endpoint and append the segment to the node's
//     outputs (start) or inputs (end), at most once.
//
// Errors:
//   - ErrEmptyID, ErrSegmentNotFound.
func (n *Network) AddStartEndLink(segmentID, nodeID string, isStart bool) error {
	s, err := n.Segment(segmentID)
	if err != nil {
		return err
	}
	if nodeID == "" {
		return ErrEmptyID
	}

	// Stage 2: detach
	prev := s.end
	if isStart {
		prev = s.start
	}
	if prev == nodeID {
		return nil
	}
	if prev != "" {
		old := n.nodes[prev]
		if isStart {
			old.outputs = removeID(old.outputs, s.id)
		} else {
			old.inputs = removeID(old.inputs, s.id)
		}
	}

	// Stage 3: attach
	nd := n.ensureNode(nodeID)
	if isStart {
		s.start = nodeID
		nd.outputs = appendOnce(nd.outputs, s.id)
	} else {
		s.end = nodeID
		nd.inputs = appendOnce(nd.inputs, s.id)
	}

	return nil
}

// Connect declares segment id from start to end in one call.
func (n *Network) Connect(id, start, end string) error {
	if err := n.AddSegment(id); err != nil {
		return err
	}
	if err := n.AddStartEndLink(id, start, true); err != nil {
		return err
	}

	return n.AddStartEndLink(id, end, false)
}

// AppendElement adds el to the end of the segment's element list.
func (n *Network) AppendElement(segmentID string, el element.Element) error {
	s, err := n.Segment(segmentID)
	if err != nil {
		return err
	}
	if el == nil {
		return fmt.Errorf("core: segment %q: %w: nil element", segmentID, element.ErrInvalidParams)
	}
	s.elements = append(s.elements, el)

	return nil
}

// AddElement builds an element of the given kind through element.New, using
// the network's schedule lookup and friction correlation, and appends it.
//
// Errors:
//   - ErrSegmentNotFound, element.ErrUnknownKind, element.ErrInvalidParams,
//     pipedata and units errors.
func (n *Network) AddElement(segmentID, kind string, p element.Params) error {
	if _, err := n.Segment(segmentID); err != nil {
		return err
	}
	var zero element.Params
	if p.Correlation == zero.Correlation {
		p.Correlation = n.opts.correlation
	}
	el, err := element.New(kind, p, n.opts.lookup)
	if err != nil {
		return fmt.Errorf("core: segment %q: %w", segmentID, err)
	}

	return n.AppendElement(segmentID, el)
}

// Node returns the node with the given ID.
func (n *Network) Node(id string) (*Node, error) {
	nd, ok := n.nodes[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNodeNotFound, id)
	}

	return nd, nil
}

// Segment returns the segment with the given ID.
func (n *Network) Segment(id string) (*Segment, error) {
	s, ok := n.segments[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSegmentNotFound, id)
	}

	return s, nil
}

// Nodes returns all nodes in insertion order.
func (n *Network) Nodes() []*Node {
	out := make([]*Node, len(n.nodeOrder))
	for i, id := range n.nodeOrder {
		out[i] = n.nodes[id]
	}

	return out
}

// Segments returns all segments in insertion order.
func (n *Network) Segments() []*Segment {
	out := make([]*Segment, len(n.segOrder))
	for i, id := range n.segOrder {
		out[i] = n.segments[id]
	}

	return out
}

// NodeCount returns the number of nodes.
func (n *Network) NodeCount() int { return len(n.nodeOrder) }

// SegmentCount returns the number of segments.
func (n *Network) SegmentCount() int { return len(n.segOrder) }

// Fluid returns the network fluid.
func (n *Network) Fluid() element.Fluid { return n.fluid }

func appendOnce(ids []string, id string) []string {
	for _, x := range ids {
		if x == id {
			return ids
		}
	}

	return append(ids, id)
}

func removeID(ids []string, id string) []string {
	out := ids[:0]
	for _, x := range ids {
		if x != id {
			out = append(out, x)
		}
	}

	return out
}
