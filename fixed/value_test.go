package fixed

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/holiman/uint256"
)

func TestParseAndString(t *testing.T) {
	tests := []struct {
		in   string
		raw  string
		text string
	}{
		{"1", "1000000000000000000", "1"},
		{" 2.5 ", "2500000000000000000", "2.5"},
		{"0.000000000000000001", "1", "0.000000000000000001"},
		{"0.0000000000000000019", "1", "0.000000000000000001"},
		{"-3.75", "3750000000000000000", "-3.75"},
		{"-0", "0", "0"},
	}
	for _, tc := range tests {
		v, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tc.in, err)
		}
		if got := v.Raw().Dec(); got != tc.raw {
			t.Fatalf("Parse(%q) raw = %s, want %s", tc.in, got, tc.raw)
		}
		if got := v.String(); got != tc.text {
			t.Fatalf("Parse(%q).String() = %s, want %s", tc.in, got, tc.text)
		}
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "abc", "1.2.3", "0x10"} {
		if _, err := Parse(in); !errors.Is(err, ErrInvalidNumber) {
			t.Fatalf("Parse(%q) err = %v, want ErrInvalidNumber", in, err)
		}
	}
}

func TestParseRaw(t *testing.T) {
	v, err := ParseRaw("0xde0b6b3a7640000")
	if err != nil {
		t.Fatalf("ParseRaw hex: %v", err)
	}
	if !v.Equal(One) {
		t.Fatalf("ParseRaw hex = %s, want 1", v)
	}
	v, err = ParseRaw("-500000000000000000")
	if err != nil {
		t.Fatalf("ParseRaw decimal: %v", err)
	}
	if v.String() != "-0.5" {
		t.Fatalf("ParseRaw decimal = %s, want -0.5", v)
	}
	if got := v.Hex(); got != "-0x6f05b59d3b20000" {
		t.Fatalf("Hex = %s", got)
	}
	for _, in := range []string{"", "-", "--5", "-+5", "+5", "1e18", "0x1" + strings.Repeat("0", 64)} {
		if _, err := ParseRaw(in); !errors.Is(err, ErrInvalidNumber) {
			t.Fatalf("ParseRaw(%q) err = %v, want ErrInvalidNumber", in, err)
		}
	}
}

func TestTextRoundTrip(t *testing.T) {
	want := MustParse("-1234.000000000000000567")
	text, err := want.MarshalText()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got Value
	if err := got.UnmarshalText(text); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !got.Equal(want) {
		t.Fatalf("round trip = %s, want %s", got, want)
	}
}

func TestCmpOrdersSignedValues(t *testing.T) {
	ordered := []Value{
		FromInt64(math.MinInt64),
		FromInt64(-2),
		MustParse("-0.5"),
		Zero,
		FromRaw(uint256.NewInt(1)),
		One,
		FromUint64(math.MaxUint64),
	}
	for i := range ordered {
		for j := range ordered {
			got := ordered[i].Cmp(ordered[j])
			want := 0
			if i < j {
				want = -1
			} else if i > j {
				want = 1
			}
			if got != want {
				t.Fatalf("Cmp(%s, %s) = %d, want %d", ordered[i], ordered[j], got, want)
			}
		}
	}
}

func TestFromIntegerAndUint(t *testing.T) {
	v, err := FromInteger(uint256.NewInt(42))
	if err != nil {
		t.Fatalf("FromInteger: %v", err)
	}
	if !v.Equal(FromUint64(42)) {
		t.Fatalf("FromInteger(42) = %s", v)
	}
	if _, err := FromInt64(-1).Uint(); !errors.Is(err, ErrNegative) {
		t.Fatalf("Uint on negative err = %v", err)
	}
	if FromInt64(math.MinInt64).String() != "-9223372036854775808" {
		t.Fatalf("FromInt64(min) = %s", FromInt64(math.MinInt64))
	}
	if NewFromParts(uint256.NewInt(0), true).IsNegative() {
		t.Fatal("zero must not carry a sign")
	}
}
