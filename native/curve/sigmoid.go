package curve

import "sigmoidcalc/fixed"

// Sigmoid returns the logistic function 1 / (1 + e^(-x)). Only e^(-|x|) is
// ever evaluated, so the estimate stays within (0, 1] whatever the sign of x:
//
//	x >= 0: 1 / (1 + e^(-|x|))
//	x <  0: e^(-|x|) / (1 + e^(-|x|))
func Sigmoid(x fixed.Value, est Estimator) (fixed.Value, error) {
	expNeg, err := est.Exp(x.Abs().Neg())
	if err != nil {
		return fixed.Value{}, err
	}
	denominator, err := fixed.Add(fixed.One, expNeg)
	if err != nil {
		return fixed.Value{}, err
	}
	if x.IsNegative() {
		return fixed.Div(expNeg, denominator)
	}
	return fixed.Div(fixed.One, denominator)
}
