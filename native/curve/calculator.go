package curve

import (
	"fmt"
	"log/slog"
	"time"

	"sigmoidcalc/fixed"

	"github.com/holiman/uint256"
)

const (
	pingResponse = 42
	// InterfaceVersion is reported by Calculator.Version.
	InterfaceVersion = 1
)

// Observer receives call outcomes and saturation events. Implementations
// must be safe for concurrent use.
type Observer interface {
	ObserveCall(method string, err error, elapsed time.Duration)
	ObserveSaturation(bound string)
}

// CalculatorOption customises a Calculator.
type CalculatorOption func(*Calculator)

// WithEstimator selects the exponential estimator. Defaults to SeriesEstimator.
func WithEstimator(est Estimator) CalculatorOption {
	return func(c *Calculator) { c.estimator = est }
}

// WithSteps overrides the integration step count.
func WithSteps(steps int) CalculatorOption {
	return func(c *Calculator) { c.steps = steps }
}

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) CalculatorOption {
	return func(c *Calculator) { c.logger = logger }
}

// WithObserver attaches a metrics observer.
func WithObserver(observer Observer) CalculatorOption {
	return func(c *Calculator) { c.observer = observer }
}

// WithClock sets the function used to time calls.
func WithClock(clock func() time.Time) CalculatorOption {
	return func(c *Calculator) { c.now = clock }
}

// Calculator is the in-process call surface consumed by the dispatch layer.
// Arguments arrive already decoded; results are returned for the caller to
// re-encode. A Calculator is immutable once constructed.
type Calculator struct {
	params    Params
	estimator Estimator
	steps     int
	logger    *slog.Logger
	observer  Observer
	now       func() time.Time
}

// NewCalculator validates params and builds a calculator.
func NewCalculator(params Params, opts ...CalculatorOption) (*Calculator, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	calc := &Calculator{
		params:    params,
		estimator: SeriesEstimator{},
		steps:     IntegrationSteps,
		now:       time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(calc)
		}
	}
	if calc.estimator == nil {
		return nil, fmt.Errorf("%w: nil estimator", ErrUnknownEstimator)
	}
	if err := validateSteps(calc.steps); err != nil {
		return nil, err
	}
	if calc.logger == nil {
		calc.logger = slog.Default()
	}
	calc.logger = calc.logger.With(slog.String("module", "curve"))
	if calc.now == nil {
		calc.now = time.Now
	}
	if calc.observer != nil {
		calc.estimator = observedEstimator{inner: calc.estimator, observer: calc.observer}
	}
	return calc, nil
}

// Params returns the curve parameters.
func (c *Calculator) Params() Params { return c.params }

// Steps returns the integration step count.
func (c *Calculator) Steps() int { return c.steps }

// Ping is a liveness probe and always answers 42.
func (c *Calculator) Ping() *uint256.Int {
	return uint256.NewInt(pingResponse)
}

// Version reports the interface version.
func (c *Calculator) Version() *uint256.Int {
	return uint256.NewInt(InterfaceVersion)
}

// Echo returns a copy of value, exercising argument passing end to end.
func (c *Calculator) Echo(value *uint256.Int) *uint256.Int {
	if value == nil {
		return new(uint256.Int)
	}
	return new(uint256.Int).Set(value)
}

// Add returns a + b, failing with fixed.ErrOverflow instead of wrapping.
func (c *Calculator) Add(a, b *uint256.Int) (*uint256.Int, error) {
	start := c.now()
	if a == nil {
		a = new(uint256.Int)
	}
	if b == nil {
		b = new(uint256.Int)
	}
	sum, overflow := new(uint256.Int).AddOverflow(a, b)
	var err error
	if overflow {
		sum, err = nil, fixed.ErrOverflow
	}
	c.finish("add", start, err)
	return sum, err
}

// Exp evaluates e^x with the configured estimator.
func (c *Calculator) Exp(x fixed.Value) (fixed.Value, error) {
	return c.call("exp", func() (fixed.Value, error) {
		return c.estimator.Exp(x)
	})
}

// Sigmoid evaluates 1 / (1 + e^(-x)).
func (c *Calculator) Sigmoid(x fixed.Value) (fixed.Value, error) {
	return c.call("sigmoid", func() (fixed.Value, error) {
		return Sigmoid(x, c.estimator)
	})
}

// Price returns the spot price at supply.
func (c *Calculator) Price(supply fixed.Value) (fixed.Value, error) {
	return c.call("price", func() (fixed.Value, error) {
		return Price(supply, c.params, c.estimator)
	})
}

// Integral returns the area under the curve over [from, to).
func (c *Calculator) Integral(from, to fixed.Value) (fixed.Value, error) {
	return c.call("integral", func() (fixed.Value, error) {
		return IntegralN(from, to, c.params, c.estimator, c.steps)
	})
}

// BuyCost returns the cost of minting amount on top of supply.
func (c *Calculator) BuyCost(supply, amount fixed.Value) (fixed.Value, error) {
	return c.call("buy", func() (fixed.Value, error) {
		return BuyCost(supply, amount, c.params, c.estimator, c.steps)
	})
}

// SellProceeds returns the proceeds of burning amount from supply.
func (c *Calculator) SellProceeds(supply, amount fixed.Value) (fixed.Value, error) {
	return c.call("sell", func() (fixed.Value, error) {
		return SellProceeds(supply, amount, c.params, c.estimator, c.steps)
	})
}

func (c *Calculator) call(method string, fn func() (fixed.Value, error)) (fixed.Value, error) {
	start := c.now()
	result, err := fn()
	if err != nil {
		c.finish(method, start, err)
		return fixed.Value{}, fmt.Errorf("curve: %s: %w", method, err)
	}
	c.finish(method, start, nil)
	c.logger.Debug("curve call", slog.String("method", method), slog.String("result", result.String()))
	return result, nil
}

func (c *Calculator) finish(method string, start time.Time, err error) {
	elapsed := c.now().Sub(start)
	if err != nil {
		c.logger.Warn("curve call failed", slog.String("method", method), slog.Any("error", err))
	}
	if c.observer != nil {
		c.observer.ObserveCall(method, err, elapsed)
	}
}

type observedEstimator struct {
	inner    Estimator
	observer Observer
}

func (o observedEstimator) Exp(x fixed.Value) (fixed.Value, error) {
	result, err := o.inner.Exp(x)
	if err != nil {
		return result, err
	}
	if _, precise := o.inner.(PreciseEstimator); precise {
		if bound, ok := Saturated(result); ok {
			o.observer.ObserveSaturation(bound)
		}
	}
	return result, nil
}
