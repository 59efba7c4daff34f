package curve

import (
	"fmt"
	"strings"

	"sigmoidcalc/fixed"
)

// Estimator approximates e^x for a signed fixed-point exponent.
type Estimator interface {
	Exp(x fixed.Value) (fixed.Value, error)
}

// EstimatorKind names an Estimator implementation.
type EstimatorKind string

const (
	// EstimatorSeries selects the pure-integer Maclaurin series.
	EstimatorSeries EstimatorKind = "series"
	// EstimatorPrecise selects the float64 round trip through math.Exp.
	EstimatorPrecise EstimatorKind = "precise"
)

// ParseEstimatorKind normalises a configured estimator name. An empty name
// selects the series estimator.
func ParseEstimatorKind(name string) (EstimatorKind, error) {
	switch kind := EstimatorKind(strings.ToLower(strings.TrimSpace(name))); kind {
	case "":
		return EstimatorSeries, nil
	case EstimatorSeries, EstimatorPrecise:
		return kind, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownEstimator, name)
	}
}

// NewEstimator returns the estimator registered under kind.
func NewEstimator(kind EstimatorKind) (Estimator, error) {
	switch kind {
	case EstimatorSeries:
		return SeriesEstimator{}, nil
	case EstimatorPrecise:
		return PreciseEstimator{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEstimator, string(kind))
	}
}
