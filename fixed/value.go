// Package fixed implements signed 18-decimal fixed-point arithmetic over
// 256-bit magnitudes. Every operation truncates toward zero and reports
// overflow instead of wrapping.
package fixed

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	ethmath "github.com/ethereum/go-ethereum/common/math"
	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
)

const (
	// Decimals is the number of fractional decimal digits carried by a Value.
	Decimals = 18
	// Scale is the raw representation of 1.0.
	Scale uint64 = 1_000_000_000_000_000_000
)

var (
	scale       = uint256.NewInt(Scale)
	basisPoints = uint256.NewInt(10_000)

	// Zero is the additive identity.
	Zero = Value{}
	// One is the multiplicative identity.
	One = Value{mag: *uint256.NewInt(Scale)}
)

// Value is a signed fixed-point number. The zero value is 0.0. A Value
// represents mag / 10^18, negated when neg is set; zero is never negative.
type Value struct {
	mag uint256.Int
	neg bool
}

func newValue(mag *uint256.Int, negative bool) Value {
	v := Value{mag: *mag}
	v.neg = negative && !mag.IsZero()
	return v
}

// FromRaw wraps a non-negative raw magnitude already scaled by 10^18.
func FromRaw(raw *uint256.Int) Value {
	if raw == nil {
		return Zero
	}
	return newValue(raw, false)
}

// NewFromParts builds a value from a raw magnitude and an explicit sign.
func NewFromParts(raw *uint256.Int, negative bool) Value {
	if raw == nil {
		return Zero
	}
	return newValue(raw, negative)
}

// FromUint64 returns n as a fixed-point value. It cannot overflow.
func FromUint64(n uint64) Value {
	var mag uint256.Int
	mag.Mul(uint256.NewInt(n), scale)
	return newValue(&mag, false)
}

// FromInt64 returns n as a fixed-point value.
func FromInt64(n int64) Value {
	if n >= 0 {
		return FromUint64(uint64(n))
	}
	return FromUint64(uint64(-(n + 1)) + 1).Neg()
}

// FromInteger returns n * 10^18.
func FromInteger(n *uint256.Int) (Value, error) {
	if n == nil {
		return Zero, nil
	}
	var mag uint256.Int
	if _, overflow := mag.MulOverflow(n, scale); overflow {
		return Value{}, ErrOverflow
	}
	return newValue(&mag, false), nil
}

// FromBig converts a signed raw integer (already scaled by 10^18).
func FromBig(raw *big.Int) (Value, error) {
	if raw == nil {
		return Zero, nil
	}
	abs := new(big.Int).Abs(raw)
	mag, overflow := uint256.FromBig(abs)
	if overflow {
		return Value{}, ErrOverflow
	}
	return newValue(mag, raw.Sign() < 0), nil
}

// FromDecimal converts a decimal, truncating digits beyond 18 places.
func FromDecimal(d decimal.Decimal) (Value, error) {
	return FromBig(d.Shift(Decimals).BigInt())
}

// Parse reads a human readable decimal such as "1250.5" or "-0.25".
func Parse(s string) (Value, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return Value{}, fmt.Errorf("%w: %q", ErrInvalidNumber, s)
	}
	return FromDecimal(d)
}

// MustParse is Parse for package level constants and tests.
func MustParse(s string) Value {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// ParseRaw reads a raw scaled integer in decimal or 0x-prefixed hex form,
// optionally preceded by a minus sign.
func ParseRaw(s string) (Value, error) {
	trimmed := strings.TrimSpace(s)
	negative := strings.HasPrefix(trimmed, "-")
	trimmed = strings.TrimPrefix(trimmed, "-")
	if trimmed == "" || strings.HasPrefix(trimmed, "-") || strings.HasPrefix(trimmed, "+") {
		return Value{}, fmt.Errorf("%w: %q", ErrInvalidNumber, s)
	}
	raw, ok := ethmath.ParseBig256(trimmed)
	if !ok {
		return Value{}, fmt.Errorf("%w: %q", ErrInvalidNumber, s)
	}
	if negative {
		raw.Neg(raw)
	}
	return FromBig(raw)
}

// Raw returns a copy of the magnitude.
func (v Value) Raw() *uint256.Int {
	return new(uint256.Int).Set(&v.mag)
}

// Uint returns the magnitude of a non-negative value.
func (v Value) Uint() (*uint256.Int, error) {
	if v.neg {
		return nil, ErrNegative
	}
	return v.Raw(), nil
}

// BigInt returns the signed raw integer.
func (v Value) BigInt() *big.Int {
	b := v.mag.ToBig()
	if v.neg {
		b.Neg(b)
	}
	return b
}

// Decimal returns the value as a shopspring decimal for display.
func (v Value) Decimal() decimal.Decimal {
	return decimal.NewFromBigInt(v.BigInt(), -Decimals)
}

func (v Value) String() string {
	return v.Decimal().String()
}

// Hex renders the signed raw integer as 0x-prefixed hex.
func (v Value) Hex() string {
	return hexutil.EncodeBig(v.BigInt())
}

// MarshalText implements encoding.TextMarshaler.
func (v Value) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *Value) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

func (v Value) Sign() int {
	switch {
	case v.mag.IsZero():
		return 0
	case v.neg:
		return -1
	default:
		return 1
	}
}

func (v Value) IsZero() bool     { return v.mag.IsZero() }
func (v Value) IsNegative() bool { return v.neg }

// Neg returns -v.
func (v Value) Neg() Value {
	return newValue(&v.mag, !v.neg)
}

// Abs returns |v|.
func (v Value) Abs() Value {
	return newValue(&v.mag, false)
}

// Cmp compares v and o and returns -1, 0 or +1.
func (v Value) Cmp(o Value) int {
	switch {
	case v.neg && !o.neg:
		return -1
	case !v.neg && o.neg:
		return 1
	case v.neg:
		return o.mag.Cmp(&v.mag)
	default:
		return v.mag.Cmp(&o.mag)
	}
}

func (v Value) Equal(o Value) bool { return v.Cmp(o) == 0 }
