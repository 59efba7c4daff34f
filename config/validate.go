package config

import (
	"fmt"

	"sigmoidcalc/native/curve"
)

var validLogLevels = map[string]struct{}{
	"debug": {},
	"info":  {},
	"warn":  {},
	"error": {},
}

// Validate checks the configuration for values the calculator would reject.
func (c *Config) Validate() error {
	if _, err := curve.ParseEstimatorKind(c.Estimator); err != nil {
		return err
	}
	if c.IntegrationSteps <= 0 || c.IntegrationSteps > curve.MaxIntegrationSteps {
		return fmt.Errorf("%w: IntegrationSteps must be within 1..%d, got %d", curve.ErrInvalidSteps, curve.MaxIntegrationSteps, c.IntegrationSteps)
	}
	if err := c.CurveParams().Validate(); err != nil {
		return err
	}
	if _, ok := validLogLevels[c.Log.Level]; !ok {
		return fmt.Errorf("log: unknown level %q", c.Log.Level)
	}
	return nil
}
