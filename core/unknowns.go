// SPDX-License-Identifier: MIT

// File: unknowns.go
// Role: unknown resolution and the pairing of unknowns with equations.
package core

import (
	"fmt"

	"github.com/katalvlaran/pipenet/units"
)

// Unknown is a value the solver drives.
type Unknown struct {
	// Key names the value. The equation with the same Key is the one
	// normally solved for it (see Equations).
	Key Key

	// Unit is the unit Bind interprets its argument in.
	Unit units.Unit

	// Bind writes a candidate value (state becomes Bound).
	Bind func(float64)
}

// FindUnknowns lists every segment with unset flow (insertion order), then
// every node with unset head (insertion order).
//
// Behavior highlights:
//   - Only Unset values are returned; Declared and Bound values never are, so
//     a resolved network yields an empty list.
//   - Calling it while Solve is running fails with ErrAlreadyResolved.
//
// Complexity:
//   - Time O(S+N), Space O(S+N).
func (n *Network) FindUnknowns() ([]Unknown, error) {
	if n.solving {
		return nil, ErrAlreadyResolved
	}

	return n.unknowns(), nil
}

func (n *Network) unknowns() []Unknown {
	var out []Unknown
	for _, id := range n.segOrder {
		s := n.segments[id]
		if s.flowState == Unset {
			out = append(out, Unknown{Key: Key{KindSegment, id}, Unit: FlowUnit, Bind: s.BindFlow})
		}
	}
	for _, id := range n.nodeOrder {
		nd := n.nodes[id]
		if nd.headState == Unset {
			out = append(out, Unknown{Key: Key{KindNode, id}, Unit: HeadUnit, Bind: nd.BindHead})
		}
	}

	return out
}

// Equations selects one equation per unknown and returns their keys in
// unknown order.
//
// Every unknown value has a same-keyed equation (a segment flow its
// pressure drop, a node head its continuity), and that set is used whenever
// it determines the unknowns. When it does not, for instance a free head
// whose node only touches declared-flow segments, a neighbouring equation
// that would otherwise be derived (the pressure drop of a declared-flow
// segment, the continuity of a fixed-head node) takes its place, and the
// displaced equation is reported through Supply or HeadGain instead.
//
// Implementation:
//   - Stage 1: For each unknown, list the equations that read it.
//   - Stage 2: Augmenting-path matching restricted to same-keyed equations.
//   - Stage 3: Augment the remaining unknowns over every equation; matched
//     equations stay matched, so Stage 2's choices are kept.
//
// Errors:
//   - ErrSystemShape if an unknown names nothing in the network or appears twice.
//   - ErrUndetermined if no equation is left for some unknown.
//
// Complexity:
//   - Time O(U·(U+L)) for U unknowns and L node/segment links.
func (n *Network) Equations(unknowns []Unknown) ([]Key, error) {
	// Stage 1
	own := make(map[Key]bool, len(unknowns))
	for _, u := range unknowns {
		if !n.hasKey(u.Key) {
			return nil, fmt.Errorf("%w: no equation for %s", ErrSystemShape, u.Key)
		}
		if own[u.Key] {
			return nil, fmt.Errorf("%w: %s listed twice", ErrSystemShape, u.Key)
		}
		own[u.Key] = true
	}
	cand := make([][]Key, len(unknowns))
	for i, u := range unknowns {
		cand[i] = n.readers(u.Key)
	}

	m := matcher{cand: cand, eq: make(map[Key]int, len(unknowns)), of: make([]Key, len(unknowns)), set: make([]bool, len(unknowns))}

	// Stage 2
	for i := range unknowns {
		m.augment(i, make(map[Key]bool), func(k Key) bool { return own[k] })
	}

	// Stage 3
	for i, u := range unknowns {
		if m.set[i] {
			continue
		}
		if !m.augment(i, make(map[Key]bool), func(Key) bool { return true }) {
			return nil, fmt.Errorf("%w: %s", ErrUndetermined, u.Key)
		}
	}

	return m.of, nil
}

// readers lists the equations that read the value named by k, own key first.
func (n *Network) readers(k Key) []Key {
	if k.Kind == KindSegment {
		s := n.segments[k.ID]
		out := []Key{k}
		for _, id := range [2]string{s.start, s.end} {
			if id != "" {
				out = append(out, Key{KindNode, id})
			}
		}

		return out
	}
	nd := n.nodes[k.ID]
	out := make([]Key, 0, len(nd.inputs)+len(nd.outputs))
	for _, group := range [2][]string{nd.inputs, nd.outputs} {
		for _, sid := range group {
			out = append(out, Key{KindSegment, sid})
		}
	}

	return out
}

// matcher pairs unknowns (by index) with equations.
type matcher struct {
	cand [][]Key
	eq   map[Key]int // equation → unknown
	of   []Key       // unknown → equation
	set  []bool
}

// augment looks for an augmenting path from unknown i through equations
// that pass allowed.
func (m *matcher) augment(i int, visited map[Key]bool, allowed func(Key) bool) bool {
	for _, k := range m.cand[i] {
		if visited[k] || !allowed(k) {
			continue
		}
		visited[k] = true
		j, taken := m.eq[k]
		if !taken || m.augment(j, visited, allowed) {
			m.eq[k] = i
			m.of[i], m.set[i] = k, true
			return true
		}
	}

	return false
}

func (n *Network) hasKey(k Key) bool {
	if k.Kind == KindNode {
		_, ok := n.nodes[k.ID]
		return ok
	}
	_, ok := n.segments[k.ID]

	return ok
}

// Reset returns every solver-bound head and flow to Unset. Declared values
// are kept.
func (n *Network) Reset() { n.release() }

// release returns every solver-bound value to Unset and reports what it held,
// keyed like the unknowns, for use as a starting point.
func (n *Network) release() map[Key]float64 {
	prev := make(map[Key]float64)
	for id, s := range n.segments {
		if s.flowState == Bound {
			prev[Key{KindSegment, id}] = s.flow
			s.flow, s.flowState = 0, Unset
		}
	}
	for id, nd := range n.nodes {
		if nd.headState == Bound {
			prev[Key{KindNode, id}] = nd.head
			nd.head, nd.headState = 0, Unset
		}
	}

	return prev
}

// unbind returns the given unknowns to Unset.
func (n *Network) unbind(unknowns []Unknown) {
	for _, u := range unknowns {
		if u.Key.Kind == KindNode {
			nd := n.nodes[u.Key.ID]
			nd.head, nd.headState = 0, Unset
			continue
		}
		s := n.segments[u.Key.ID]
		s.flow, s.flowState = 0, Unset
	}
}
