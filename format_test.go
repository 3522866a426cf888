package mewa

import (
	"math"
	"testing"
)

func TestValueString(t *testing.T) {
	cases := []struct {
		v    Value
		want string
	}{
		{Int(14), "14"},
		{Int(-3), "-3"},
		{Int(math.MinInt64), "-9223372036854775808"},
		{Float(3.5), "3.500000"},
		{Float(0.5), "0.500000"},
		{Float(-1e-7), "-0.000000"},
		{Complex(-9), "-9.000000"},
		{Complex(2i), "2.000000i"},
		{Complex(1 + 2i), "1.000000 2.000000i"},
		{Complex(1 - 2i), "1.000000 -2.000000i"},
		{Complex(0), "0"},
		{Bool(true), "true"},
		{Bool(false), "false"},
		{Symbol(EncodeSymbol("abc")), "abc"},
		{Value{}, "<invalid value>"},
	}
	for _, c := range cases {
		if got := c.v.String(); got != c.want {
			t.Errorf("%#v: want %q, got %q", c.v, c.want, got)
		}
	}
}

func TestFormatGrouped(t *testing.T) {
	cases := []struct {
		v    Value
		want string
	}{
		{Int(1234567), "1,234,567"},
		{Int(-1000), "-1,000"},
		{Int(999), "999"},
		{Float(1234567.5), "1,234,567.5"},
		{Complex(1000 + 2000i), "1,000 2,000i"},
		{Bool(true), "true"},
	}
	for _, c := range cases {
		if got := FormatGrouped(c.v); got != c.want {
			t.Errorf("%v: want %q, got %q", c.v, c.want, got)
		}
	}
}

func TestSymbolEncoding(t *testing.T) {
	for _, s := range []string{"a", "z", "A", "Z", "x0", "_9", "Hello_w0rd"} {
		x := EncodeSymbol(s)
		if x == 0 {
			t.Errorf("%q encoded to 0", s)
		}
		if got := DecodeSymbol(x); got != s {
			t.Errorf("%q decoded as %q", s, got)
		}
	}
	if EncodeSymbol("a$") != 0 {
		t.Error("invalid byte encoded")
	}
	if EncodeSymbol("abcdefghijkl") != EncodeSymbol("abcdefghijkm") {
		t.Error("names differing past the eleventh character don't alias")
	}
	if got := DecodeSymbol(EncodeSymbol("abcdefghij")); got != "abcdefghij" {
		t.Errorf("ten characters decoded as %q", got)
	}
}

func TestValueAccessors(t *testing.T) {
	if Int(3).Int() != 3 || Float(2.5).Float() != 2.5 || Complex(1i).Complex() != 1i || !Bool(true).Bool() || Symbol(9).Symbol() != 9 {
		t.Error("accessor mismatch")
	}
	defer func() {
		if recover() == nil {
			t.Error("wrong accessor didn't panic")
		}
	}()
	Int(3).Float()
}

func TestPromote(t *testing.T) {
	cases := []struct {
		v    Value
		t    Type
		want Value
	}{
		{Int(2), TypeInt, Int(2)},
		{Int(2), TypeFloat, Float(2)},
		{Int(2), TypeComplex, Complex(2)},
		{Float(2.5), TypeComplex, Complex(2.5)},
		{Complex(1i), TypeComplex, Complex(1i)},
	}
	for _, c := range cases {
		if got := c.v.promote(c.t); got != c.want {
			t.Errorf("promote %v to %v: want %v, got %v", c.v, c.t, c.want, got)
		}
	}
}
