package fixed

import "errors"

var (
	// ErrOverflow indicates an intermediate or final magnitude exceeded 256 bits.
	ErrOverflow = errors.New("fixed: overflow")
	// ErrDivisionByZero indicates the divisor magnitude was zero.
	ErrDivisionByZero = errors.New("fixed: division by zero")
	// ErrInvalidNumber indicates a textual value could not be parsed.
	ErrInvalidNumber = errors.New("fixed: invalid number")
	// ErrNegative indicates a negative value was supplied where only magnitudes are accepted.
	ErrNegative = errors.New("fixed: negative value")
)
