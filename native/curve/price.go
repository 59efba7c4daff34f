package curve

import "sigmoidcalc/fixed"

// Price returns A / (1 + e^(-K(supply-B))) for the given supply.
func Price(supply fixed.Value, params Params, est Estimator) (fixed.Value, error) {
	offset, err := fixed.Sub(supply, params.B)
	if err != nil {
		return fixed.Value{}, err
	}
	exponent, err := fixed.Mul(params.K, offset)
	if err != nil {
		return fixed.Value{}, err
	}
	sig, err := Sigmoid(exponent, est)
	if err != nil {
		return fixed.Value{}, err
	}
	return fixed.Mul(params.A, sig)
}
