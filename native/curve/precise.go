package curve

import (
	"math"
	"math/big"

	"sigmoidcalc/fixed"

	"github.com/holiman/uint256"
)

// Saturation bounds reported for round-trip estimates.
const (
	SaturationUpper = "upper"
	SaturationLower = "lower"
)

var rawScale = uint256.NewInt(fixed.Scale)

// PreciseEstimator converts the exponent to float64, evaluates math.Exp and
// converts the result back. It is considerably more accurate than the series
// near the inflection region but is only as reproducible as the platform's
// IEEE-754 double arithmetic; use SeriesEstimator where bit-exact results are
// required across machines.
//
// Results above PreciseOverflowThreshold saturate to PreciseSaturation and
// results below PreciseUnderflowThreshold return one raw unit. Neither case
// is reported as an error.
type PreciseEstimator struct{}

func (PreciseEstimator) Exp(x fixed.Value) (fixed.Value, error) {
	exponent := toFloat(x.Raw())
	if x.IsNegative() {
		exponent = -exponent
	}
	return fromFloat(math.Exp(exponent)), nil
}

func toFloat(raw *uint256.Int) float64 {
	var whole, frac uint256.Int
	whole.Div(raw, rawScale)
	frac.Mod(raw, rawScale)
	wholeF, _ := new(big.Float).SetInt(whole.ToBig()).Float64()
	return wholeF + float64(frac.Uint64())/float64(fixed.Scale)
}

func fromFloat(r float64) fixed.Value {
	switch {
	case math.IsInf(r, 1) || r > PreciseOverflowThreshold:
		return PreciseSaturation
	case r < PreciseUnderflowThreshold:
		return minimalUnit
	}
	whole, frac := math.Modf(r)
	wholeInt, _ := big.NewFloat(whole).Int(nil)
	raw, _ := uint256.FromBig(wholeInt)
	raw.Mul(raw, rawScale)
	raw.Add(raw, uint256.NewInt(uint64(frac*float64(fixed.Scale))))
	return fixed.FromRaw(raw)
}

// Saturated reports whether v is one of the round-trip estimator's saturation
// values and, if so, which bound it hit.
func Saturated(v fixed.Value) (string, bool) {
	switch {
	case v.Equal(PreciseSaturation):
		return SaturationUpper, true
	case v.Equal(minimalUnit):
		return SaturationLower, true
	default:
		return "", false
	}
}
