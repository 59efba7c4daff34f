package curve

import "errors"

var (
	ErrInvalidParams      = errors.New("curve: invalid parameters")
	ErrInvalidSteps       = errors.New("curve: invalid integration step count")
	ErrInvalidAmount      = errors.New("curve: invalid trade amount")
	ErrInsufficientSupply = errors.New("curve: amount exceeds supply")
	ErrUnknownEstimator   = errors.New("curve: unknown estimator")
)
