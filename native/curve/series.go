package curve

import "sigmoidcalc/fixed"

// SeriesEstimator evaluates e^x with at most SeriesMaxIterations Maclaurin
// terms using integer arithmetic only, so results are bit-exact everywhere.
// |x| is capped at SeriesCap; negative exponents return the reciprocal of
// the series for |x|.
type SeriesEstimator struct{}

func (SeriesEstimator) Exp(x fixed.Value) (fixed.Value, error) {
	capped := x.Abs()
	if capped.Cmp(SeriesCap) > 0 {
		capped = SeriesCap
	}

	sum := fixed.One
	term := fixed.One
	for i := uint64(1); i <= SeriesMaxIterations; i++ {
		product, err := fixed.Mul(term, capped)
		if err != nil {
			return fixed.Value{}, err
		}
		if term, err = fixed.Quo(product, i); err != nil {
			return fixed.Value{}, err
		}
		if sum, err = fixed.Add(sum, term); err != nil {
			return fixed.Value{}, err
		}
		if term.Cmp(seriesNegligible) < 0 {
			break
		}
	}

	if x.IsNegative() {
		return fixed.Div(fixed.One, sum)
	}
	return sum, nil
}
