package curve

import "sigmoidcalc/fixed"

// Integral approximates the area under the price curve over [from, to) with
// IntegrationSteps left rectangles.
func Integral(from, to fixed.Value, params Params, est Estimator) (fixed.Value, error) {
	return IntegralN(from, to, params, est, IntegrationSteps)
}

// IntegralN is Integral with a caller chosen number of slices. An empty or
// reversed range integrates to zero. The slice width is the raw range
// divided by steps, truncated, so up to steps-1 raw units at the right edge
// are not covered.
func IntegralN(from, to fixed.Value, params Params, est Estimator, steps int) (fixed.Value, error) {
	if err := validateSteps(steps); err != nil {
		return fixed.Value{}, err
	}
	if to.Cmp(from) <= 0 {
		return fixed.Zero, nil
	}
	width, err := fixed.Sub(to, from)
	if err != nil {
		return fixed.Value{}, err
	}
	step, err := fixed.Quo(width, uint64(steps))
	if err != nil {
		return fixed.Value{}, err
	}

	sum := fixed.Zero
	current := from
	for i := 0; i < steps; i++ {
		price, err := Price(current, params, est)
		if err != nil {
			return fixed.Value{}, err
		}
		area, err := fixed.Mul(price, step)
		if err != nil {
			return fixed.Value{}, err
		}
		if sum, err = fixed.Add(sum, area); err != nil {
			return fixed.Value{}, err
		}
		if current, err = fixed.Add(current, step); err != nil {
			return fixed.Value{}, err
		}
	}
	return sum, nil
}

// BuyCost is the amount paid to move supply up by amount.
func BuyCost(supply, amount fixed.Value, params Params, est Estimator, steps int) (fixed.Value, error) {
	if amount.IsNegative() {
		return fixed.Value{}, ErrInvalidAmount
	}
	end, err := fixed.Add(supply, amount)
	if err != nil {
		return fixed.Value{}, err
	}
	return IntegralN(supply, end, params, est, steps)
}

// SellProceeds is the amount returned for moving supply down by amount.
// Supply can never be sold below zero.
func SellProceeds(supply, amount fixed.Value, params Params, est Estimator, steps int) (fixed.Value, error) {
	if amount.IsNegative() {
		return fixed.Value{}, ErrInvalidAmount
	}
	if amount.Cmp(supply) > 0 {
		return fixed.Value{}, ErrInsufficientSupply
	}
	start, err := fixed.Sub(supply, amount)
	if err != nil {
		return fixed.Value{}, err
	}
	return IntegralN(start, supply, params, est, steps)
}
