// SPDX-License-Identifier: MIT

package core

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Solve outcomes used as the "outcome" label.
const (
	OutcomeConverged = "converged"
	OutcomeFailed    = "failed" // root finder gave up
	OutcomeError     = "error"  // validation or residual error
)

// Metrics holds the solver's Prometheus collectors.
// A nil *Metrics records nothing.
type Metrics struct {
	Solves       *prometheus.CounterVec
	Iterations   prometheus.Histogram
	Duration     prometheus.Histogram
	ResidualNorm prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg when non-nil.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Solves: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "pipenet",
				Subsystem: "solver",
				Name:      "solves_total",
				Help:      "Network solves by outcome",
			},
			[]string{"outcome"},
		),
		Iterations: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "pipenet",
				Subsystem: "solver",
				Name:      "iterations",
				Help:      "Newton iterations per solve",
				Buckets:   prometheus.ExponentialBuckets(1, 2, 8),
			},
		),
		Duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "pipenet",
				Subsystem: "solver",
				Name:      "duration_seconds",
				Help:      "Wall time per solve in seconds",
				Buckets:   prometheus.DefBuckets,
			},
		),
		ResidualNorm: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "pipenet",
				Subsystem: "solver",
				Name:      "residual_norm",
				Help:      "Max-norm of the residual at the end of the last solve",
			},
		),
	}
	if reg != nil {
		for _, c := range []prometheus.Collector{m.Solves, m.Iterations, m.Duration, m.ResidualNorm} {
			if err := reg.Register(c); err != nil {
				return nil, err
			}
		}
	}

	return m, nil
}

// observe records one solve.
func (m *Metrics) observe(r SolveReport, outcome string) {
	if m == nil {
		return
	}
	m.Solves.WithLabelValues(outcome).Inc()
	if outcome == OutcomeError {
		return
	}
	m.Iterations.Observe(float64(r.Iterations))
	m.Duration.Observe(r.Duration.Seconds())
	m.ResidualNorm.Set(r.ResidualNorm)
}
