package curve

import (
	"fmt"

	"sigmoidcalc/fixed"

	"github.com/holiman/uint256"
)

const (
	// SeriesMaxIterations bounds the number of Maclaurin terms summed by the
	// series estimator.
	SeriesMaxIterations = 8
	// SeriesNegligibleThreshold is the raw term magnitude below which the
	// series stops early (1e-15).
	SeriesNegligibleThreshold = 1000
	// PreciseOverflowThreshold is the floating result above which the
	// round-trip estimator saturates to PreciseSaturation.
	PreciseOverflowThreshold = 1e30
	// PreciseUnderflowThreshold is the floating result below which the
	// round-trip estimator returns the minimal raw unit.
	PreciseUnderflowThreshold = 1e-18
	// IntegrationSteps is the default number of left-rectangle slices.
	IntegrationSteps = 100
	// MaxIntegrationSteps caps caller supplied step counts.
	MaxIntegrationSteps = 100_000
)

var (
	// SeriesCap is the largest |x| fed into the series (5.0).
	SeriesCap = fixed.FromUint64(5)

	seriesNegligible = fixed.FromRaw(uint256.NewInt(SeriesNegligibleThreshold))
	minimalUnit      = fixed.FromRaw(uint256.NewInt(1))

	// PreciseSaturation is returned by the round-trip estimator when e^x is
	// too large to represent: (2^128-1)/1000 scaled by 10^18.
	PreciseSaturation = func() fixed.Value {
		limit := new(uint256.Int).Lsh(uint256.NewInt(1), 128)
		limit.Sub(limit, uint256.NewInt(1))
		limit.Div(limit, uint256.NewInt(1000))
		limit.Mul(limit, uint256.NewInt(fixed.Scale))
		return fixed.FromRaw(limit)
	}()
)

// Params shapes the bonding curve price A / (1 + e^(-K(supply-B))).
type Params struct {
	// A is the asymptotic maximum price.
	A fixed.Value
	// K is the steepness of the transition.
	K fixed.Value
	// B is the supply at the inflection point, where price equals A/2.
	B fixed.Value
}

// Validate ensures the curve is non-decreasing and prices are non-negative.
func (p Params) Validate() error {
	if p.A.IsNegative() {
		return fmt.Errorf("%w: A must not be negative", ErrInvalidParams)
	}
	if p.K.Sign() <= 0 {
		return fmt.Errorf("%w: K must be positive", ErrInvalidParams)
	}
	return nil
}

func validateSteps(steps int) error {
	if steps <= 0 || steps > MaxIntegrationSteps {
		return fmt.Errorf("%w: %d", ErrInvalidSteps, steps)
	}
	return nil
}
