package mewa

import (
	"errors"
	"math"
	"testing"
)

func TestPowInt(t *testing.T) {
	cases := []struct {
		x, y, want int64
	}{
		{2, 0, 1},
		{0, 0, 1},
		{2, 10, 1024},
		{-3, 3, -27},
		{10, 18, 1000000000000000000},
		{1, 1 << 40, 1},
	}
	for _, c := range cases {
		if got := powInt(c.x, c.y); got != c.want {
			t.Errorf("%d^%d: want %d, got %d", c.x, c.y, c.want, got)
		}
	}
}

func TestFac(t *testing.T) {
	cases := []struct {
		n, k, want int64
	}{
		{0, 1, 1},
		{-5, 1, 1},
		{1, 1, 1},
		{5, 1, 120},
		{5, 2, 15},
		{6, 2, 48},
		{7, 3, 28},
		{20, 1, 2432902008176640000},
	}
	for _, c := range cases {
		if got := facInt(c.n, c.k); got != c.want {
			t.Errorf("facInt(%d, %d): want %d, got %d", c.n, c.k, c.want, got)
		}
		if c.n < 1 || c.n > 15 || (c.n-1)%c.k != 0 {
			continue
		}
		got := facFloat(float64(c.n), float64(c.k))
		if !almostEqual(got, float64(c.want), 1e-9) {
			t.Errorf("facFloat(%d, %d): want %d, got %g", c.n, c.k, c.want, got)
		}
	}
}

func TestFacLarge(t *testing.T) {
	// slow is the plain wrapped product.
	slow := func(n, k int64) int64 {
		r := int64(1)
		for ; n > 0; n -= k {
			r *= n
		}
		return r
	}
	cases := []struct {
		n, k int64
	}{
		{65, 1},
		{131, 2},
		{1001, 2},
		{1000, 2},
		{999, 4},
		{12345, 6},
		{777, 8},
		{100001, 10},
		{4097, 3},
	}
	for _, c := range cases {
		if got, want := facInt(c.n, c.k), slow(c.n, c.k); got != want {
			t.Errorf("facInt(%d, %d): want %d, got %d", c.n, c.k, want, got)
		}
	}
	// These must return without multiplying every factor.
	for _, n := range []int64{100000000000, 100000000001, math.MaxInt64} {
		for _, k := range []int64{1, 2, 3, 4, 1 << 20} {
			facInt(n, k)
		}
	}
	if got := facInt(100000000000, 1); got != 0 {
		t.Errorf("facInt(100000000000, 1): want 0, got %d", got)
	}
}

func TestAlmostEqual(t *testing.T) {
	cases := []struct {
		a, b float64
		want bool
	}{
		{0, 0, true},
		{0.1 + 0.2, 0.3, true},
		{1e-13, 0, true},
		{1e-11, 0, false},
		{1e20, 1e20 + 1e7, true},
		{1e20, 1.001e20, false},
		{math.Inf(1), math.Inf(1), true},
		{math.Inf(1), math.Inf(-1), false},
		{math.NaN(), math.NaN(), false},
		{math.NaN(), 0, false},
	}
	for _, c := range cases {
		if got := almostEqual(c.a, c.b, DefaultEpsilon); got != c.want {
			t.Errorf("almostEqual(%g, %g): want %t, got %t", c.a, c.b, c.want, got)
		}
	}
}

func TestEvalIllegal(t *testing.T) {
	cases := []struct {
		name string
		n    *node
		want EvalErrorKind
	}{
		{"none", &node{}, ErrIllegalNode},
		{"missing-left", &node{kind: nodeAdd, right: &node{kind: nodeInt, val: Int(1)}}, ErrIllegalNode},
		{"missing-arg", &node{kind: nodeNeg}, ErrIllegalNode},
		{"untyped-leaf", &node{kind: nodeAdd, left: &node{kind: nodeInt}, right: &node{kind: nodeInt, val: Int(1)}}, ErrIllegalNode},
		{"fac-step", &node{kind: nodeFac, left: &node{kind: nodeInt, val: Int(5)}, right: &node{kind: nodeInt, val: Int(0)}}, ErrIllegalNode},
		{"func", &node{kind: nodeFunc}, ErrNotImplemented},
		{"call", &node{kind: nodeCall}, ErrNotImplemented},
		{"call-anon", &node{kind: nodeCallAnon, left: &node{kind: nodeInt, val: Int(1)}}, ErrNotImplemented},
	}
	ctx := NewContext()
	for _, c := range cases {
		_, err := ctx.Eval(&Expr{n: c.n})
		if !errors.Is(err, c.want) {
			t.Errorf("%s: want %v, got %v", c.name, c.want, err)
		}
		if len(ctx.stack) != 0 {
			t.Errorf("%s: stack not cleared: %v", c.name, ctx.stack)
		}
	}
}
