package metrics

import (
	"errors"
	"time"

	"sigmoidcalc/fixed"
	"sigmoidcalc/native/curve"

	"github.com/prometheus/client_golang/prometheus"
)

// CalculatorMetrics records bonding curve calculator activity. It satisfies
// curve.Observer.
type CalculatorMetrics struct {
	calls       *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	saturations *prometheus.CounterVec
}

var _ curve.Observer = (*CalculatorMetrics)(nil)

// NewCalculatorMetrics builds and registers calculator metrics on reg.
func NewCalculatorMetrics(namespace string, reg prometheus.Registerer) (*CalculatorMetrics, error) {
	m := &CalculatorMetrics{
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "calculator",
			Name:      "calls_total",
			Help:      "Calculator calls segmented by method and outcome.",
		}, []string{"method", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "calculator",
			Name:      "call_duration_seconds",
			Help:      "Latency distribution for calculator calls.",
			Buckets:   []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
		}, []string{"method"}),
		saturations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "calculator",
			Name:      "saturations_total",
			Help:      "Round-trip exponential estimates clamped to a saturation bound.",
		}, []string{"bound"}),
	}
	if reg != nil {
		for _, c := range []prometheus.Collector{m.calls, m.duration, m.saturations} {
			if err := reg.Register(c); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

// ObserveCall records the outcome and latency of a calculator call.
func (m *CalculatorMetrics) ObserveCall(method string, err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	if method == "" {
		method = "unknown"
	}
	m.calls.WithLabelValues(method, Outcome(err)).Inc()
	m.duration.WithLabelValues(method).Observe(elapsed.Seconds())
}

// ObserveSaturation counts an estimate clamped to bound.
func (m *CalculatorMetrics) ObserveSaturation(bound string) {
	if m == nil {
		return
	}
	if bound == "" {
		bound = "unknown"
	}
	m.saturations.WithLabelValues(bound).Inc()
}

func (m *CalculatorMetrics) CallsVec() *prometheus.CounterVec       { return m.calls }
func (m *CalculatorMetrics) DurationVec() *prometheus.HistogramVec  { return m.duration }
func (m *CalculatorMetrics) SaturationsVec() *prometheus.CounterVec { return m.saturations }

// Outcome classifies a call error into a bounded label value.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, fixed.ErrOverflow):
		return "overflow"
	case errors.Is(err, fixed.ErrDivisionByZero):
		return "division_by_zero"
	case errors.Is(err, curve.ErrInsufficientSupply):
		return "insufficient_supply"
	case errors.Is(err, curve.ErrInvalidAmount),
		errors.Is(err, curve.ErrInvalidParams),
		errors.Is(err, curve.ErrInvalidSteps):
		return "invalid_argument"
	default:
		return "error"
	}
}
