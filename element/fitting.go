// SPDX-License-Identifier: MIT

package element

import (
	"fmt"
	"math"

	"github.com/katalvlaran/pipenet/units"
)

// Fitting is a minor loss (valve, elbow, tee) characterised by a resistance
// coefficient K referred to the velocity in Diameter.
type Fitting struct {
	K        float64
	Diameter units.Quantity
}

// NewFitting validates and returns a fitting.
func NewFitting(k float64, diameter units.Quantity) (*Fitting, error) {
	ft := &Fitting{K: k, Diameter: diameter}
	if err := ft.Validate(); err != nil {
		return nil, err
	}

	return ft, nil
}

// Validate checks K and the reference diameter.
func (ft *Fitting) Validate() error {
	if ft.K < 0 || math.IsNaN(ft.K) || math.IsInf(ft.K, 0) {
		return fmt.Errorf("%w: K must be finite and >= 0, got %g", ErrInvalidParams, ft.K)
	}
	_, err := positiveLength("diameter", ft.Diameter)

	return err
}

// Loss implements Element. The fluid does not enter a constant-K loss.
func (ft *Fitting) Loss(flow units.Quantity, _ Fluid) (units.Quantity, error) {
	v, err := velocity(flow, ft.Diameter)
	if err != nil {
		return units.Quantity{}, err
	}
	if v.Magnitude() == 0 {
		return zeroHead, nil
	}

	return feet(ft.K * velocityHead(v.Magnitude())), nil
}

// String implements fmt.Stringer.
func (ft *Fitting) String() string {
	return fmt.Sprintf("fitting(K=%g D=%s)", ft.K, ft.Diameter)
}
