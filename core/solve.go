// SPDX-License-Identifier: MIT

// File: solve.go
// Role: the nonlinear solve loop.
package core

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/katalvlaran/pipenet/rootfind"
)

// SolveReport describes the most recent Solve.
type SolveReport struct {
	RunID        string
	Unknowns     int
	Iterations   int
	Evaluations  int
	ResidualNorm float64
	Duration     time.Duration
	Converged    bool
	Message      string
}

// Report returns the report of the most recent Solve.
func (n *Network) Report() SolveReport { return n.report }

// Solve resolves every head and flow that is not declared.
//
// Implementation:
//   - Stage 0: Return values bound by an earlier solve to Unset, keeping them
//     as starting values, so boundary changes since then are honoured.
//   - Stage 1: Validate the topology.
//   - Stage 2: FindUnknowns and select one equation per unknown.
//   - Stage 3: Seed each unknown with its earlier value, else flows with the
//     flow seed and heads with the mean declared head.
//   - Stage 4: rootfind.Solve on a residual function that binds the candidate
//     through the unknowns and evaluates the paired equations.
//   - Stage 5: On failure return every bound unknown to Unset, including
//     values an earlier solve had bound.
//
// Behavior highlights:
//   - On success the unknowns hold the accepted values; nothing else is written.
//   - A network with no unknowns still has its residuals evaluated, so element
//     errors surface; its residuals are all derived (Supply, HeadGain).
//
// Errors:
//   - ErrIncompleteSegment, ErrFloatingComponent, ErrUndetermined from Validate.
//   - *ConvergenceError (errors.Is(err, ErrConvergence)) if the root finder gives up.
//   - element errors (friction.ErrCorrelation, units.ErrDimensionality) raised
//     while evaluating residuals, wrapped.
//   - ErrAlreadyResolved when called from inside a running solve.
func (n *Network) Solve() error {
	if n.solving {
		return ErrAlreadyResolved
	}
	started := time.Now()
	report := SolveReport{RunID: uuid.New().String()}
	log := n.logger.With("run_id", report.RunID)

	finish := func(outcome string, err error) error {
		report.Duration = time.Since(started)
		n.report = report
		n.opts.metrics.observe(report, outcome)
		switch outcome {
		case OutcomeConverged:
			log.Info("solve converged",
				"unknowns", report.Unknowns,
				"iterations", report.Iterations,
				"residual_norm", report.ResidualNorm,
				"duration", report.Duration)
		default:
			log.Warn("solve failed", "outcome", outcome, "error", err)
		}

		return err
	}

	// Stage 0
	prev := n.release()

	// Stage 1
	if err := n.Validate(); err != nil {
		report.Message = err.Error()
		return finish(OutcomeError, err)
	}

	// Stage 2
	unknowns, err := n.FindUnknowns()
	if err != nil {
		return finish(OutcomeError, err)
	}
	report.Unknowns = len(unknowns)
	if len(unknowns) == 0 {
		if _, err := n.Residuals(); err != nil {
			report.Message = err.Error()
			return finish(OutcomeError, fmt.Errorf("core: solve: %w", err))
		}
		report.Converged = true
		report.Message = "no unknowns"
		return finish(OutcomeConverged, nil)
	}
	keys, err := n.Equations(unknowns)
	if err != nil {
		return finish(OutcomeError, err)
	}
	log.Info("solve started", "unknowns", len(unknowns), "segments", len(n.segOrder), "nodes", len(n.nodeOrder))

	// Stage 3
	x0 := n.seed(unknowns, prev)

	// Stage 4
	n.solving = true
	defer func() { n.solving = false }()

	var evalErr error
	residual := func(dst, x []float64) error {
		for i, u := range unknowns {
			u.Bind(x[i])
		}
		for i, k := range keys {
			v, err := n.residualFor(k)
			if err != nil {
				evalErr = err
				return err
			}
			dst[i] = v
		}

		return nil
	}
	opts := append([]rootfind.Option{
		rootfind.WithObserver(func(it rootfind.Iteration) {
			log.Debug("solve iteration", "iteration", it.Index, "residual_norm", it.Norm, "step", it.Step, "delta", it.Delta)
		}),
	}, n.opts.solver...)

	res, err := rootfind.Solve(residual, x0, opts...)
	report.Iterations = res.Iterations
	report.Evaluations = res.Evaluations
	report.ResidualNorm = res.Norm
	report.Message = res.Message

	// Stage 5
	if err != nil {
		n.unbind(unknowns)
		if evalErr != nil {
			return finish(OutcomeError, fmt.Errorf("core: solve: %w", evalErr))
		}

		return finish(OutcomeFailed, &ConvergenceError{Message: res.Message, Iterations: res.Iterations, Cause: err})
	}
	report.Converged = true

	return finish(OutcomeConverged, nil)
}

// seed builds the starting vector, preferring values from prev.
func (n *Network) seed(unknowns []Unknown, prev map[Key]float64) []float64 {
	var sum float64
	var count int
	for _, id := range n.nodeOrder {
		if nd := n.nodes[id]; nd.headState == Declared {
			sum += nd.head
			count++
		}
	}
	head := 0.0
	if count > 0 {
		head = sum / float64(count)
	}

	x0 := make([]float64, len(unknowns))
	for i, u := range unknowns {
		if v, ok := prev[u.Key]; ok && (u.Key.Kind == KindNode || v != 0) {
			x0[i] = v
			continue
		}
		if u.Key.Kind == KindNode {
			x0[i] = head
		} else {
			x0[i] = n.opts.flowSeed
		}
	}

	return x0
}
