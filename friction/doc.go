// Package friction computes Darcy friction factors for flow in circular pipes.
//
// What & Why:
//
//	Head loss along a pipe depends on a friction factor f that is a function
//	of the Reynolds number Re and the relative roughness ε/D. Two regimes are
//	modelled:
//
//	  - Laminar (Re below the laminar threshold, 2100 by default):
//	      f = 64 / Re
//	  - Turbulent: the implicit Colebrook–White equation
//	      1/√f = −2·log10( ε/(3.7·D) + 2.51/(Re·√f) )
//	    solved for f with rootfind.Scalar, seeded at 0.04 and bracketed on
//	    [1e-3, 1]. The iteration stops when |Δf| ≤ 1e-5.
//
//	All factors are Darcy (four times the Fanning factor).
//
// Regime boundary:
//
//	With the default Correlation the factor jumps at the threshold (for
//	ε/D = 0.001, from 64/2100 ≈ 0.0305 to ≈ 0.0495). WithTransition(upper)
//	blends the two branches with a smoothstep over [threshold, upper] so the
//	factor is continuous. Classify reports the conventional band
//	(laminar < 2100 ≤ transitional < 4000 ≤ turbulent) independent of any
//	Correlation.
//
// Errors:
//
//	ErrInvalidInput - Re not finite and positive, or ε/D negative or not finite.
//	ErrCorrelation  - Colebrook–White did not converge; wraps the rootfind error.
//
// Reynolds builds Re from dimensioned quantities and reports
// units.ErrDimensionality if the inputs do not cancel to a pure number.
package friction
