package fixed

import (
	"math/big"

	"github.com/holiman/uint256"
)

// Add returns a + b.
func Add(a, b Value) (Value, error) {
	if a.neg == b.neg {
		var sum uint256.Int
		if _, overflow := sum.AddOverflow(&a.mag, &b.mag); overflow {
			return Value{}, ErrOverflow
		}
		return newValue(&sum, a.neg), nil
	}
	var diff uint256.Int
	if a.mag.Cmp(&b.mag) >= 0 {
		diff.Sub(&a.mag, &b.mag)
		return newValue(&diff, a.neg), nil
	}
	diff.Sub(&b.mag, &a.mag)
	return newValue(&diff, b.neg), nil
}

// Sub returns a - b.
func Sub(a, b Value) (Value, error) {
	return Add(a, b.Neg())
}

// Mul returns a * b / 10^18. The full 256-bit product must fit before the
// rescale; the quotient is truncated toward zero.
func Mul(a, b Value) (Value, error) {
	var product uint256.Int
	if _, overflow := product.MulOverflow(&a.mag, &b.mag); overflow {
		return Value{}, ErrOverflow
	}
	product.Div(&product, scale)
	return newValue(&product, a.neg != b.neg), nil
}

// Div returns a * 10^18 / b, truncated toward zero.
func Div(a, b Value) (Value, error) {
	if b.mag.IsZero() {
		return Value{}, ErrDivisionByZero
	}
	var numerator uint256.Int
	if _, overflow := numerator.MulOverflow(&a.mag, scale); overflow {
		return Value{}, ErrOverflow
	}
	numerator.Div(&numerator, &b.mag)
	return newValue(&numerator, a.neg != b.neg), nil
}

// Square returns Mul(a, a).
func Square(a Value) (Value, error) {
	return Mul(a, a)
}

// Quo divides the raw magnitude of a by the plain integer n.
func Quo(a Value, n uint64) (Value, error) {
	if n == 0 {
		return Value{}, ErrDivisionByZero
	}
	var q uint256.Int
	q.Div(&a.mag, uint256.NewInt(n))
	return newValue(&q, a.neg), nil
}

// ToBasisPoints returns a expressed in basis points (a * 10000 / 10^18),
// truncated toward zero. It is intended for display only.
func ToBasisPoints(a Value) (*big.Int, error) {
	var bps uint256.Int
	if _, overflow := bps.MulOverflow(&a.mag, basisPoints); overflow {
		return nil, ErrOverflow
	}
	bps.Div(&bps, scale)
	out := bps.ToBig()
	if a.neg {
		out.Neg(out)
	}
	return out, nil
}
