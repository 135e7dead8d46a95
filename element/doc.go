// Package element defines the head-loss elements that make up a pipe segment.
//
// An Element reports the head it consumes at a given volumetric flow for a
// given fluid. Loss carries the sign of the flow: positive flow (start → end)
// yields a positive loss, reverse flow a negative one, zero flow exactly
// zero. Loss magnitude never decreases as |flow| grows.
//
// Variants:
//
//	Pipe    - straight run: h = f·(L/D)·v·|v|/(2g), with f from package friction.
//	Fitting - minor loss through a reference bore: h = K·v·|v|/(2g).
//
// Heads are returned in feet. Inputs may use any registered unit; mismatched
// dimensions fail with units.ErrDimensionality.
//
// New builds an element from a kind name and Params; custom kinds can be
// added with Register.
package element
