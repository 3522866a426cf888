package mewa

import "strconv"

// Type is the type tag of a Value.
type Type int8

const (
	typeNone Type = iota

	// TypeSymbol is a packed identifier. Symbols are not numbers; they
	// evaluate to themselves.
	TypeSymbol
	// TypeInt is a signed 64-bit integer.
	TypeInt
	// TypeFloat is a 64-bit IEEE-754 float.
	TypeFloat
	// TypeComplex is a pair of 64-bit floats.
	TypeComplex
	// TypeBool is a boolean.
	TypeBool
)

func (t Type) String() string {
	switch t {
	case typeNone:
		return "none"
	case TypeSymbol:
		return "symbol"
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeComplex:
		return "complex"
	case TypeBool:
		return "bool"
	default:
		return "Type(" + strconv.Itoa(int(t)) + ")"
	}
}

// rank is the position of t on the promotion lattice int < float < complex.
// Types off the lattice have rank -1.
func (t Type) rank() int {
	switch t {
	case TypeInt:
		return 0
	case TypeFloat:
		return 1
	case TypeComplex:
		return 2
	default:
		return -1
	}
}

// Value is the result of evaluating an expression, or the payload of a
// literal. Exactly one payload is meaningful, selected by the type tag.
type Value struct {
	typ Type
	b   bool
	i   int64
	f   float64
	c   complex128
	s   uint64
}

// Int creates an integer value.
func Int(x int64) Value { return Value{typ: TypeInt, i: x} }

// Float creates a float value.
func Float(x float64) Value { return Value{typ: TypeFloat, f: x} }

// Complex creates a complex value.
func Complex(x complex128) Value { return Value{typ: TypeComplex, c: x} }

// Bool creates a boolean value.
func Bool(x bool) Value { return Value{typ: TypeBool, b: x} }

// Symbol creates a symbol value from its packed encoding.
func Symbol(x uint64) Value { return Value{typ: TypeSymbol, s: x} }

// Type returns the type tag of v. The zero Value has no type.
func (v Value) Type() Type {
	return v.typ
}

func (v Value) must(t Type) {
	if v.typ != t {
		panic("mewa: " + t.String() + " accessor on " + v.typ.String() + " value")
	}
}

// Int returns the integer payload. Panics if v is not an int.
func (v Value) Int() int64 {
	v.must(TypeInt)
	return v.i
}

// Float returns the float payload. Panics if v is not a float.
func (v Value) Float() float64 {
	v.must(TypeFloat)
	return v.f
}

// Complex returns the complex payload. Panics if v is not complex.
func (v Value) Complex() complex128 {
	v.must(TypeComplex)
	return v.c
}

// Bool returns the boolean payload. Panics if v is not a bool.
func (v Value) Bool() bool {
	v.must(TypeBool)
	return v.b
}

// Symbol returns the packed symbol. Panics if v is not a symbol.
func (v Value) Symbol() uint64 {
	v.must(TypeSymbol)
	return v.s
}

// promote converts a numeric value to the representation of a higher-ranked
// type. Callers ensure that v is on the lattice and t.rank() >= v's rank.
func (v Value) promote(t Type) Value {
	switch {
	case v.typ == t:
		return v
	case t == TypeFloat:
		return Float(float64(v.i))
	case t == TypeComplex && v.typ == TypeInt:
		return Complex(complex(float64(v.i), 0))
	case t == TypeComplex && v.typ == TypeFloat:
		return Complex(complex(v.f, 0))
	default:
		panic("mewa: cannot promote " + v.typ.String() + " to " + t.String())
	}
}
