// Package core models a steady-state pipe network and solves it for the
// unknown flows and heads.
//
// A Network G = (N, S) holds junction Nodes and directed Segments. Each
// segment runs from a start node to an end node through an ordered list of
// loss elements (package element); positive flow moves start → end. Nodes
// and segments refer to each other by ID only; the Network owns both tables
// and a single Fluid.
//
// Two laws must hold everywhere:
//
//	pressure drop (per segment):  head(end) + Σ loss(flow) − head(start) = 0   [ft]
//	continuity    (per node):     Σ inputs.flow − Σ outputs.flow − outflow = 0 [gpm]
//
// Values and provenance:
//
//	Every head and flow is Unset, Declared (a boundary condition) or Bound
//	(written by the solver). Boundaries go through Declare*/ApplyBoundary,
//	the solver writes through Bind*. FindUnknowns returns only Unset values,
//	so it yields an empty list once a network is resolved.
//
// Pairing unknowns with equations:
//
//	An unknown segment flow normally pairs with that segment's pressure-drop
//	equation and an unknown node head with that node's continuity equation.
//
//	  - A node with a declared head is a reservoir. Its continuity equation is
//	    not solved; Supply reports the flow the reservoir delivers.
//	  - A segment with a declared flow is driven (a pump, a metering valve).
//	    Its pressure-drop equation is not solved; HeadGain reports the head
//	    it must add.
//
//	When those equations leave an unknown undetermined (a free node whose
//	segments all carry declared flows), Equations swaps in a neighbouring
//	derived equation by augmenting-path matching and the displaced one is
//	reported through Supply or HeadGain. If no swap exists, ErrUndetermined.
//
// Solve:
//
//	release earlier solver values → Validate → FindUnknowns → Equations →
//	seed (earlier values, else flows 1 gpm and heads the mean declared head)
//	→ rootfind.Solve (damped Newton). Re-declaring a boundary and calling
//	Solve again therefore re-solves everything that is not declared. On
//	failure every unknown is returned to Unset and a *ConvergenceError
//	carries the root finder's diagnostic. Element errors (friction, dimensionality) surface unchanged
//	and stay matchable with errors.Is.
//
// Configuration:
//
//	New(opts...) with WithLogger (log/slog), WithMetrics (Prometheus),
//	WithLookup, WithCorrelation, WithSolverOptions, WithFlowSeed, WithFluid;
//	or a YAML Config decoded by ParseConfig and turned into options by
//	Config.Options.
//
// Concurrency:
//
//	A Network is single-threaded. SolveAll solves independent networks in
//	parallel.
//
// Errors:
//
//	ErrEmptyID, ErrDuplicateID          - invalid IDs
//	ErrNodeNotFound, ErrSegmentNotFound - unknown references
//	ErrUnknownBoundary                  - boundary kind does not fit the target
//	ErrUnsetFlow                        - TotalLoss on an unknown flow
//	ErrUnresolvedReference              - residual read an Unset value
//	ErrAlreadyResolved                  - FindUnknowns or Solve during a solve
//	ErrConvergence                      - root finder gave up (*ConvergenceError)
//	ErrIncompleteSegment                - segment without start or end
//	ErrFloatingComponent                - component with unknowns but no declared head
//	ErrSystemShape                      - unknown list does not match the network
//	ErrUndetermined                     - no equation left for an unknown
//	ErrSharedNetwork                    - SolveAll given the same network twice
//	ErrInvalidConfig                    - Config failed to decode or validate
package core
