package mewa

import "strconv"

// EvalErrorKind identifies a class of evaluation error. Like ParseErrorKind,
// each kind is itself an error for use with errors.Is.
type EvalErrorKind int8

const (
	evalNoError EvalErrorKind = iota
	// ErrIllegalNode is a malformed tree, e.g. a node with a missing
	// operand.
	ErrIllegalNode
	// ErrNumArgExpected is a symbol used as an operand.
	ErrNumArgExpected
	// ErrDivByZero is division or remainder by zero.
	ErrDivByZero
	// ErrNotDefinedForType is an operator applied to a type it does not
	// support, including any mix of booleans and numbers.
	ErrNotDefinedForType
	// ErrNotImplemented is assignment or a function construct.
	ErrNotImplemented
)

var evalErrorStrs = [...]string{
	evalNoError:          "no error",
	ErrIllegalNode:       "illegal node",
	ErrNumArgExpected:    "numeric argument expected",
	ErrDivByZero:         "division by zero",
	ErrNotDefinedForType: "not defined for type",
	ErrNotImplemented:    "not implemented",
}

func (k EvalErrorKind) String() string {
	if 0 <= k && int(k) < len(evalErrorStrs) {
		return evalErrorStrs[k]
	}
	return "EvalErrorKind(" + strconv.Itoa(int(k)) + ")"
}

func (k EvalErrorKind) Error() string {
	return k.String()
}

// EvalError is an error that occurred while evaluating an expression.
// EvalError unwraps to its Kind.
type EvalError struct {
	// Kind is the class of error.
	Kind EvalErrorKind
	// Op is the operator that failed, e.g. "/" or "!".
	Op string
	// Type is the type of the offending operand, if any.
	Type Type
}

func (err *EvalError) Error() string {
	r := err.Kind.String()
	if err.Op != "" {
		r = err.Op + ": " + r
	}
	if err.Type != typeNone {
		r += " [type: " + err.Type.String() + "]"
	}
	return r
}

// Unwrap returns err.Kind.
func (err *EvalError) Unwrap() error {
	return err.Kind
}

func evalError(kind EvalErrorKind, op nodeKind, t Type) *EvalError {
	return &EvalError{Kind: kind, Op: op.op(), Type: t}
}
