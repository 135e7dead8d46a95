// SPDX-License-Identifier: MIT

package core

import (
	"errors"
	"fmt"
)

// Sentinel errors for network construction and solving.
var (
	// ErrEmptyID indicates a node or segment ID is the empty string.
	ErrEmptyID = errors.New("core: empty ID")

	// ErrDuplicateID indicates a segment ID that is already in use.
	ErrDuplicateID = errors.New("core: duplicate ID")

	// ErrNodeNotFound indicates a reference to a node that does not exist.
	ErrNodeNotFound = errors.New("core: node not found")

	// ErrSegmentNotFound indicates a reference to a segment that does not exist.
	ErrSegmentNotFound = errors.New("core: segment not found")

	// ErrUnknownBoundary indicates a boundary kind that does not apply to the target.
	ErrUnknownBoundary = errors.New("core: unknown boundary kind")

	// ErrUnsetFlow indicates a segment loss was requested while its flow is unknown.
	ErrUnsetFlow = errors.New("core: segment flow is unset")

	// ErrUnresolvedReference indicates a residual read an unknown head or flow.
	ErrUnresolvedReference = errors.New("core: unresolved reference")

	// ErrAlreadyResolved indicates unknowns were requested while a solve is consuming them.
	ErrAlreadyResolved = errors.New("core: unknowns already resolved")

	// ErrConvergence indicates the network solve did not converge.
	ErrConvergence = errors.New("core: solve did not converge")

	// ErrIncompleteSegment indicates a segment without a start or end node.
	ErrIncompleteSegment = errors.New("core: segment is missing an endpoint")

	// ErrFloatingComponent indicates a connected part of the network with
	// unknowns but no declared head to anchor it.
	ErrFloatingComponent = errors.New("core: component has no declared head")

	// ErrSystemShape indicates an unknown list that does not describe this network.
	ErrSystemShape = errors.New("core: unknowns do not match the network")

	// ErrUndetermined indicates an unknown that no equation can determine.
	ErrUndetermined = errors.New("core: unknown is not determined by any equation")

	// ErrSharedNetwork indicates the same Network was passed twice to SolveAll.
	ErrSharedNetwork = errors.New("core: network passed more than once")

	// ErrInvalidConfig indicates a Config that failed to decode or validate.
	ErrInvalidConfig = errors.New("core: invalid config")
)

// ConvergenceError carries the root finder's diagnostic for a failed solve.
// errors.Is(err, ErrConvergence) holds; Unwrap yields the rootfind error.
type ConvergenceError struct {
	Message    string
	Iterations int
	Cause      error
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("core: solve did not converge after %d iterations: %s", e.Iterations, e.Message)
}

// Is matches ErrConvergence.
func (e *ConvergenceError) Is(target error) bool { return target == ErrConvergence }

// Unwrap returns the root finder's error.
func (e *ConvergenceError) Unwrap() error { return e.Cause }

// keyError tags err with the key it concerns.
func keyError(err error, k Key) error { return fmt.Errorf("%w: %s", err, k) }
