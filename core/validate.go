// SPDX-License-Identifier: MIT

// File: validate.go
// Role: topology checks run before every solve.
//
// Every segment needs both endpoints, and every connected component that
// contains an unknown needs at least one declared head; without one the
// heads in that component are only defined up to a constant. Finally every
// unknown must be claimed by an equation of its own (see Equations).
package core

import "fmt"

// Validate checks the topology.
//
// Implementation:
//   - Stage 1: Reject segments missing a start or end node.
//   - Stage 2: Breadth-first walk over the undirected node/segment graph,
//     starting from each unvisited node in insertion order.
//   - Stage 3: Per component, require a declared head if anything in it is Unset.
//   - Stage 4: Select one equation per unknown.
//
// Errors:
//   - ErrIncompleteSegment, ErrFloatingComponent (naming the first node of the component),
//     ErrUndetermined.
//
// Complexity:
//   - Time O(N+S) for Stages 1–3; Stage 4 as Equations.
func (n *Network) Validate() error {
	// Stage 1
	for _, id := range n.segOrder {
		s := n.segments[id]
		if s.start == "" || s.end == "" {
			return keyError(ErrIncompleteSegment, Key{KindSegment, id})
		}
	}

	// Stage 2 + 3
	visited := make(map[string]bool, len(n.nodes))
	for _, root := range n.nodeOrder {
		if visited[root] {
			continue
		}
		c := n.walk(root, visited)
		if c.unknown && !c.anchored {
			return fmt.Errorf("%w: component of node %q (%d nodes)", ErrFloatingComponent, root, c.size)
		}
	}

	// Stage 4
	if _, err := n.Equations(n.unknowns()); err != nil {
		return err
	}

	return nil
}

// component summarizes one connected part of the network.
type component struct {
	size     int
	unknown  bool // some head or flow is Unset
	anchored bool // some head is Declared
}

// walk visits every node reachable from root.
func (n *Network) walk(root string, visited map[string]bool) component {
	var c component
	queue := []string{root}
	visited[root] = true
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		nd := n.nodes[id]
		c.size++
		switch nd.headState {
		case Unset:
			c.unknown = true
		case Declared:
			c.anchored = true
		}

		for _, group := range [2][]string{nd.outputs, nd.inputs} {
			for _, sid := range group {
				s := n.segments[sid]
				if s.flowState == Unset {
					c.unknown = true
				}
				for _, nbr := range [2]string{s.start, s.end} {
					if !visited[nbr] {
						visited[nbr] = true
						queue = append(queue, nbr)
					}
				}
			}
		}
	}

	return c
}
