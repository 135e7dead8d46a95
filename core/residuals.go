// SPDX-License-Identifier: MIT

// File: residuals.go
// Role: residual assembly and derived boundary quantities.
//
//	segment: head(end) + TotalLoss() − head(start)       [HeadUnit]
//	node:    Σ inputs.flow − Σ outputs.flow − outflow    [FlowUnit]
package core

import (
	"fmt"

	"github.com/katalvlaran/pipenet/units"
)

// Residual is one keyed equation value.
type Residual struct {
	Key   Key
	Value float64
}

// Residuals returns one value per segment then one per node, each group in
// insertion order.
//
// Errors:
//   - ErrUnresolvedReference if a head or flow is still Unset.
//   - ErrIncompleteSegment if a segment lacks an endpoint.
//   - element errors from TotalLoss.
//
// Complexity:
//   - Time O(S·E + N·d) for E elements per segment and d links per node.
func (n *Network) Residuals() ([]float64, error) {
	rs, err := n.ResidualsByKey()
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(rs))
	for i, r := range rs {
		out[i] = r.Value
	}

	return out, nil
}

// ResidualsByKey is Residuals with each value tagged by its equation key.
func (n *Network) ResidualsByKey() ([]Residual, error) {
	out := make([]Residual, 0, len(n.segOrder)+len(n.nodeOrder))
	for _, id := range n.segOrder {
		k := Key{KindSegment, id}
		v, err := n.residualFor(k)
		if err != nil {
			return nil, err
		}
		out = append(out, Residual{Key: k, Value: v})
	}
	for _, id := range n.nodeOrder {
		k := Key{KindNode, id}
		v, err := n.residualFor(k)
		if err != nil {
			return nil, err
		}
		out = append(out, Residual{Key: k, Value: v})
	}

	return out, nil
}

// residualFor evaluates the equation named by k.
func (n *Network) residualFor(k Key) (float64, error) {
	if k.Kind == KindNode {
		return n.continuity(n.nodes[k.ID])
	}

	return n.pressureDrop(n.segments[k.ID])
}

func (n *Network) pressureDrop(s *Segment) (float64, error) {
	k := Key{KindSegment, s.id}
	if s.start == "" || s.end == "" {
		return 0, keyError(ErrIncompleteSegment, k)
	}
	if s.flowState == Unset {
		return 0, keyError(ErrUnresolvedReference, k)
	}
	start, end := n.nodes[s.start], n.nodes[s.end]
	if start.headState == Unset {
		return 0, keyError(ErrUnresolvedReference, Key{KindNode, start.id})
	}
	if end.headState == Unset {
		return 0, keyError(ErrUnresolvedReference, Key{KindNode, end.id})
	}
	loss, err := s.TotalLoss()
	if err != nil {
		return 0, err
	}

	return end.head + loss.Magnitude() - start.head, nil
}

func (n *Network) continuity(nd *Node) (float64, error) {
	sum := -nd.outflow
	for _, id := range nd.inputs {
		s := n.segments[id]
		if s.flowState == Unset {
			return 0, keyError(ErrUnresolvedReference, Key{KindSegment, id})
		}
		sum += s.flow
	}
	for _, id := range nd.outputs {
		s := n.segments[id]
		if s.flowState == Unset {
			return 0, keyError(ErrUnresolvedReference, Key{KindSegment, id})
		}
		sum -= s.flow
	}

	return sum, nil
}

// Supply returns the external flow a node must receive for continuity to
// hold: Σ outputs − Σ inputs + outflow. For a fixed-head node this is the
// reservoir's contribution; for a solved free node it is ≈ 0.
func (n *Network) Supply(nodeID string) (units.Quantity, error) {
	nd, err := n.Node(nodeID)
	if err != nil {
		return units.Quantity{}, err
	}
	v, err := n.continuity(nd)
	if err != nil {
		return units.Quantity{}, fmt.Errorf("core: supply: %w", err)
	}

	return units.New(-v, FlowUnit), nil
}

// HeadGain returns the head a segment must add for its head balance to hold:
// head(end) + loss − head(start). For a declared-flow segment this is the
// duty of whatever drives it (a pump); for a solved free segment it is ≈ 0.
func (n *Network) HeadGain(segmentID string) (units.Quantity, error) {
	s, err := n.Segment(segmentID)
	if err != nil {
		return units.Quantity{}, err
	}
	v, err := n.pressureDrop(s)
	if err != nil {
		return units.Quantity{}, fmt.Errorf("core: head gain: %w", err)
	}

	return units.New(v, HeadUnit), nil
}
