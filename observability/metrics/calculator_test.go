package metrics

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"sigmoidcalc/fixed"
	"sigmoidcalc/native/curve"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func newTestMetrics(t *testing.T) (*CalculatorMetrics, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	m, err := NewCalculatorMetrics("test", reg)
	require.NoError(t, err)
	return m, reg
}

func TestObserveCallOutcomes(t *testing.T) {
	m, _ := newTestMetrics(t)

	m.ObserveCall("price", nil, time.Millisecond)
	m.ObserveCall("price", nil, time.Millisecond)
	m.ObserveCall("sell", fmt.Errorf("curve: sell: %w", curve.ErrInsufficientSupply), time.Millisecond)
	m.ObserveCall("add", fixed.ErrOverflow, 0)
	m.ObserveCall("", errors.New("boom"), 0)

	require.Equal(t, 2.0, testutil.ToFloat64(m.CallsVec().WithLabelValues("price", "ok")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.CallsVec().WithLabelValues("sell", "insufficient_supply")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.CallsVec().WithLabelValues("add", "overflow")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.CallsVec().WithLabelValues("unknown", "error")))
	require.Equal(t, 4, testutil.CollectAndCount(m.DurationVec()))
}

func TestObserveSaturation(t *testing.T) {
	m, _ := newTestMetrics(t)
	m.ObserveSaturation(curve.SaturationUpper)
	m.ObserveSaturation(curve.SaturationLower)
	m.ObserveSaturation(curve.SaturationLower)

	require.Equal(t, 1.0, testutil.ToFloat64(m.SaturationsVec().WithLabelValues("upper")))
	require.Equal(t, 2.0, testutil.ToFloat64(m.SaturationsVec().WithLabelValues("lower")))
}

func TestNilMetricsAreNoops(t *testing.T) {
	var m *CalculatorMetrics
	m.ObserveCall("price", nil, time.Second)
	m.ObserveSaturation("upper")
}

func TestDuplicateRegistrationFails(t *testing.T) {
	_, reg := newTestMetrics(t)
	_, err := NewCalculatorMetrics("test", reg)
	require.Error(t, err)
}

func TestOutcome(t *testing.T) {
	tests := map[string]error{
		"ok":                  nil,
		"division_by_zero":    fixed.ErrDivisionByZero,
		"invalid_argument":    curve.ErrInvalidSteps,
		"insufficient_supply": curve.ErrInsufficientSupply,
	}
	for want, err := range tests {
		require.Equal(t, want, Outcome(err))
	}
	require.Equal(t, "invalid_argument", Outcome(fmt.Errorf("wrap: %w", curve.ErrInvalidAmount)))
}

func TestCalculatorWiresObserver(t *testing.T) {
	m, reg := newTestMetrics(t)
	calc, err := curve.NewCalculator(curve.Params{
		A: fixed.FromUint64(1000),
		K: fixed.MustParse("0.01"),
		B: fixed.FromUint64(500),
	}, curve.WithEstimator(curve.PreciseEstimator{}), curve.WithObserver(m))
	require.NoError(t, err)

	_, err = calc.Price(fixed.FromUint64(500))
	require.NoError(t, err)
	_, err = calc.Exp(fixed.FromUint64(500))
	require.NoError(t, err)

	require.Equal(t, 1.0, testutil.ToFloat64(m.CallsVec().WithLabelValues("price", "ok")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.SaturationsVec().WithLabelValues("upper")))

	var buf bytes.Buffer
	require.NoError(t, Dump(&buf, reg))
	out := buf.String()
	require.Contains(t, out, `test_calculator_calls_total{method="exp",outcome="ok"} 1`)
	require.Contains(t, out, `test_calculator_saturations_total{bound="upper"} 1`)
	require.Contains(t, out, `test_calculator_call_duration_seconds_count{method="price"} 1`)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.True(t, len(lines) >= 4, out)
}
