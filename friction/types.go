// SPDX-License-Identifier: MIT

package friction

import "errors"

// Sentinel errors.
var (
	// ErrInvalidInput indicates a non-physical Reynolds number or roughness.
	ErrInvalidInput = errors.New("friction: invalid input")

	// ErrCorrelation indicates that the turbulent correlation failed to converge.
	ErrCorrelation = errors.New("friction: correlation failed")
)

// Regime names the flow regime.
type Regime int

const (
	RegimeLaminar Regime = iota
	RegimeTransitional
	RegimeTurbulent
)

// String implements fmt.Stringer.
func (r Regime) String() string {
	switch r {
	case RegimeLaminar:
		return "laminar"
	case RegimeTransitional:
		return "transitional"
	case RegimeTurbulent:
		return "turbulent"
	default:
		return "unknown"
	}
}

// Conventional regime bands used by Classify.
const (
	LaminarUpper   = 2100.0
	TurbulentLower = 4000.0
)

// Classify reports the conventional regime band of re.
func Classify(re float64) Regime {
	switch {
	case re < LaminarUpper:
		return RegimeLaminar
	case re < TurbulentLower:
		return RegimeTransitional
	default:
		return RegimeTurbulent
	}
}
