package mewa

import (
	"math"
	"math/cmplx"
)

// DefaultEpsilon is the relative tolerance for float and complex equality.
const DefaultEpsilon = 1e-12

// binary applies a binary operator. Symbols are never operands. Booleans
// combine only with booleans; numbers are promoted to the higher-ranked of
// the two types.
func binary(op nodeKind, l, r Value, eps float64) (Value, error) {
	switch {
	case l.typ == typeNone || r.typ == typeNone:
		return Value{}, evalError(ErrIllegalNode, op, typeNone)
	case l.typ == TypeSymbol:
		return Value{}, evalError(ErrNumArgExpected, op, l.typ)
	case r.typ == TypeSymbol:
		return Value{}, evalError(ErrNumArgExpected, op, r.typ)
	case l.typ == TypeBool && r.typ == TypeBool:
		return boolop(op, l.b, r.b)
	case l.typ == TypeBool:
		return Value{}, evalError(ErrNotDefinedForType, op, r.typ)
	case r.typ == TypeBool:
		return Value{}, evalError(ErrNotDefinedForType, op, l.typ)
	}
	t := l.typ
	if r.typ.rank() > t.rank() {
		t = r.typ
	}
	l, r = l.promote(t), r.promote(t)
	switch t {
	case TypeInt:
		return intop(op, l.i, r.i)
	case TypeFloat:
		return floatop(op, l.f, r.f, eps)
	default:
		return complexop(op, l.c, r.c, eps)
	}
}

func boolop(op nodeKind, a, b bool) (Value, error) {
	switch op {
	case nodeAnd:
		return Bool(a && b), nil
	case nodeOr:
		return Bool(a || b), nil
	case nodeEq:
		return Bool(a == b), nil
	case nodeNeq:
		return Bool(a != b), nil
	default:
		return Value{}, evalError(ErrNotDefinedForType, op, TypeBool)
	}
}

// intop applies an operator to integers. Arithmetic wraps on overflow.
// Division that isn't exact produces a float, as does a negative power.
func intop(op nodeKind, a, b int64) (Value, error) {
	switch op {
	case nodeAdd:
		return Int(a + b), nil
	case nodeSub:
		return Int(a - b), nil
	case nodeMul:
		return Int(a * b), nil
	case nodeQuo:
		if b == 0 {
			return Value{}, evalError(ErrDivByZero, op, TypeInt)
		}
		if a%b == 0 {
			return Int(a / b), nil
		}
		return Float(float64(a) / float64(b)), nil
	case nodeMod:
		if b == 0 {
			return Value{}, evalError(ErrDivByZero, op, TypeInt)
		}
		return Int(a % b), nil
	case nodePow:
		if b < 0 {
			return Float(math.Pow(float64(a), float64(b))), nil
		}
		return Int(powInt(a, b)), nil
	case nodeFac:
		if b < 1 {
			return Value{}, evalError(ErrIllegalNode, op, TypeInt)
		}
		return Int(facInt(a, b)), nil
	case nodeGt:
		return Bool(a > b), nil
	case nodeLt:
		return Bool(a < b), nil
	case nodeGe:
		return Bool(a >= b), nil
	case nodeLe:
		return Bool(a <= b), nil
	case nodeEq:
		return Bool(a == b), nil
	case nodeNeq:
		return Bool(a != b), nil
	default:
		return Value{}, evalError(ErrNotDefinedForType, op, TypeInt)
	}
}

func floatop(op nodeKind, a, b, eps float64) (Value, error) {
	switch op {
	case nodeAdd:
		return Float(a + b), nil
	case nodeSub:
		return Float(a - b), nil
	case nodeMul:
		return Float(a * b), nil
	case nodeQuo:
		if b == 0 {
			return Value{}, evalError(ErrDivByZero, op, TypeFloat)
		}
		return Float(a / b), nil
	case nodeMod:
		if b == 0 {
			return Value{}, evalError(ErrDivByZero, op, TypeFloat)
		}
		return Float(math.Mod(a, b)), nil
	case nodePow:
		return Float(math.Pow(a, b)), nil
	case nodeFac:
		if b < 1 {
			return Value{}, evalError(ErrIllegalNode, op, TypeFloat)
		}
		return Float(facFloat(a, b)), nil
	case nodeGt:
		return Bool(a > b), nil
	case nodeLt:
		return Bool(a < b), nil
	case nodeGe:
		return Bool(a > b || almostEqual(a, b, eps)), nil
	case nodeLe:
		return Bool(a < b || almostEqual(a, b, eps)), nil
	case nodeEq:
		return Bool(almostEqual(a, b, eps)), nil
	case nodeNeq:
		return Bool(!almostEqual(a, b, eps)), nil
	default:
		return Value{}, evalError(ErrNotDefinedForType, op, TypeFloat)
	}
}

// complexop applies an operator to complex numbers. Complex numbers have no
// ordering, remainder, or factorial.
func complexop(op nodeKind, a, b complex128, eps float64) (Value, error) {
	switch op {
	case nodeAdd:
		return Complex(a + b), nil
	case nodeSub:
		return Complex(a - b), nil
	case nodeMul:
		return Complex(a * b), nil
	case nodeQuo:
		if b == 0 {
			return Value{}, evalError(ErrDivByZero, op, TypeComplex)
		}
		return Complex(a / b), nil
	case nodePow:
		return Complex(cmplx.Pow(a, b)), nil
	case nodeEq:
		return Bool(complexEqual(a, b, eps)), nil
	case nodeNeq:
		return Bool(!complexEqual(a, b, eps)), nil
	default:
		return Value{}, evalError(ErrNotDefinedForType, op, TypeComplex)
	}
}

// unary applies a prefix operator or absolute value.
func unary(op nodeKind, v Value) (Value, error) {
	switch v.typ {
	case typeNone:
		return Value{}, evalError(ErrIllegalNode, op, typeNone)
	case TypeSymbol:
		return Value{}, evalError(ErrNumArgExpected, op, v.typ)
	case TypeBool:
		if op == nodeNot {
			return Bool(!v.b), nil
		}
		return Value{}, evalError(ErrNotDefinedForType, op, v.typ)
	}
	switch op {
	case nodeNop:
		return v, nil
	case nodeNeg:
		switch v.typ {
		case TypeInt:
			return Int(-v.i), nil
		case TypeFloat:
			return Float(-v.f), nil
		default:
			return Complex(-v.c), nil
		}
	case nodeAbs:
		switch v.typ {
		case TypeInt:
			if v.i < 0 {
				return Int(-v.i), nil
			}
			return v, nil
		case TypeFloat:
			return Float(math.Abs(v.f)), nil
		default:
			return Float(cmplx.Abs(v.c)), nil
		}
	default:
		return Value{}, evalError(ErrNotDefinedForType, op, v.typ)
	}
}

// powInt computes x^y for y >= 0 by squaring. It wraps on overflow.
func powInt(x, y int64) int64 {
	r := int64(1)
	for y > 0 {
		if y&1 != 0 {
			r *= x
		}
		x *= x
		y >>= 1
	}
	return r
}

// facInt computes the multifactorial n(n-k)(n-2k)..., which is 1 for n <= 0.
// It wraps on overflow.
//
// With an odd step, every other factor is even, so the product wraps to 0
// within 128 factors. With an even step and many factors, the product is
// computed in O(log n) steps by facSteps.
func facInt(n, k int64) int64 {
	if n <= 0 {
		return 1
	}
	if m := (n-1)/k + 1; k&1 == 0 && m > facPolyLen {
		return int64(facSteps(uint64(n), uint64(k), uint64(m)))
	}
	r := int64(1)
	for ; n > 0; n -= k {
		r *= n
		if r == 0 {
			break
		}
	}
	return r
}

// facPolyLen bounds the degree of facPoly. A term of degree d carries a
// factor k^d, which is 0 mod 2^64 for even k once d reaches 64.
const facPolyLen = 64

// facPoly is a polynomial in t with coefficients mod 2^64, lowest degree
// first.
type facPoly [facPolyLen]uint64

// facBinom holds binomial coefficients below facPolyLen, all of which fit in
// a uint64.
var facBinom = func() (b [facPolyLen][facPolyLen]uint64) {
	for d := range b {
		b[d][0] = 1
		for e := 1; e <= d; e++ {
			b[d][e] = b[d-1][e-1] + b[d-1][e]
		}
	}
	return b
}()

func (g *facPoly) mul(h *facPoly) facPoly {
	var r facPoly
	for i, x := range g {
		if x == 0 {
			continue
		}
		for j := 0; i+j < facPolyLen; j++ {
			r[i+j] += x * h[j]
		}
	}
	return r
}

// shift returns g(t+s).
func (g *facPoly) shift(s uint64) facPoly {
	var pw [facPolyLen]uint64
	pw[0] = 1
	for i := 1; i < facPolyLen; i++ {
		pw[i] = pw[i-1] * s
	}
	var r facPoly
	for d, x := range g {
		if x == 0 {
			continue
		}
		for e := 0; e <= d; e++ {
			r[e] += x * facBinom[d][e] * pw[d-e]
		}
	}
	return r
}

// facSteps computes the product of a - kj for 0 <= j < m, mod 2^64, for
// even k. It builds g(t) = Π (a - k(t+j)) over j < size by doubling,
// g'(t) = g(t)g(t+size), and by appending single factors, then evaluates
// g(0).
func facSteps(a, k, m uint64) uint64 {
	g := facPoly{0: 1}
	var size uint64
	for bit := 63; bit >= 0; bit-- {
		if size > 0 {
			h := g.shift(size)
			g = g.mul(&h)
			size *= 2
		}
		if m>>uint(bit)&1 != 0 {
			f := facPoly{0: a - k*size, 1: -k}
			g = g.mul(&f)
			size++
		}
	}
	return g[0]
}

// facFloat extends the multifactorial to real z through the gamma function:
//
//	z!(k) = k^((z-1)/k) * Γ(z/k + 1) / Γ(1/k + 1)
//
// which agrees with facInt at positive integers z with z ≡ 1 (mod k).
func facFloat(z, k float64) float64 {
	return math.Pow(k, (z-1)/k) * math.Gamma(z/k+1) / math.Gamma(1/k+1)
}

// almostEqual reports whether a and b differ by no more than eps relative to
// the larger magnitude, or to 1 when both are small.
func almostEqual(a, b, eps float64) bool {
	if a == b {
		return true
	}
	if math.IsInf(a, 0) || math.IsInf(b, 0) {
		return false
	}
	d := math.Abs(a - b)
	scale := math.Max(math.Max(math.Abs(a), math.Abs(b)), 1)
	return d <= eps*scale
}

func complexEqual(a, b complex128, eps float64) bool {
	return almostEqual(real(a), real(b), eps) && almostEqual(imag(a), imag(b), eps)
}
