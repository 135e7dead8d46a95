// SPDX-License-Identifier: MIT

package friction

import (
	"fmt"

	"github.com/katalvlaran/pipenet/units"
)

// Reynolds returns ρ·v·D/μ.
//
// The product is formed on gonum unit values, so any combination of
// registered units works as long as it cancels to a pure number; otherwise
// the error matches units.ErrDimensionality.
func Reynolds(density, velocity, diameter, viscosity units.Quantity) (float64, error) {
	for _, q := range []units.Quantity{density, velocity, diameter, viscosity} {
		if !q.IsSet() {
			return 0, fmt.Errorf("friction: reynolds: %w: unset operand", units.ErrDimensionality)
		}
	}
	re := density.SI().Mul(velocity.SI()).Mul(diameter.SI()).Div(viscosity.SI())
	v, err := units.Dimensionless(re)
	if err != nil {
		return 0, fmt.Errorf("friction: reynolds: %w", err)
	}

	return v, nil
}
