package mewa

import "strconv"

// ParseErrorKind identifies a class of parse error. Each kind is itself an
// error, so errors.Is(err, ErrParenNotClosed) reports whether a parse failed
// that way.
type ParseErrorKind int8

const (
	parseNoError ParseErrorKind = iota
	// ErrIllegalToken is an illegal token where an operator was expected.
	ErrIllegalToken
	// ErrParenNotOpened is a ) with no matching (.
	ErrParenNotOpened
	// ErrParenNotClosed is a ( with no matching ).
	ErrParenNotClosed
	// ErrOperandIllegal is an illegal token where an operand was expected.
	ErrOperandIllegal
	// ErrOperandEOS is the end of input where an operand was expected.
	ErrOperandEOS
	// ErrOperandEOX is the end of an expression where an operand was
	// expected.
	ErrOperandEOX
	// ErrOperandRParen is a ) where an operand was expected.
	ErrOperandRParen
	// ErrOperandAbs is a | where an operand was expected. Absolute values
	// cannot nest.
	ErrOperandAbs
	// ErrTokenUnexpected is any other token that cannot appear where it is.
	ErrTokenUnexpected
)

var parseErrorStrs = [...]string{
	parseNoError:       "no error",
	ErrIllegalToken:    "illegal token",
	ErrParenNotOpened:  "paren not opened",
	ErrParenNotClosed:  "paren not closed",
	ErrOperandIllegal:  "operand expected, illegal token found",
	ErrOperandEOS:      "operand expected, end of input found",
	ErrOperandEOX:      "operand expected, end of expression found",
	ErrOperandRParen:   "operand expected, right paren found",
	ErrOperandAbs:      "operand expected, absolute value bar found",
	ErrTokenUnexpected: "unexpected token",
}

func (k ParseErrorKind) String() string {
	if 0 <= k && int(k) < len(parseErrorStrs) {
		return parseErrorStrs[k]
	}
	return "ParseErrorKind(" + strconv.Itoa(int(k)) + ")"
}

func (k ParseErrorKind) Error() string {
	return k.String()
}

// ParseError is an error in the syntax of an expression. It implements
// InputError.
type ParseError struct {
	// Kind is the class of error.
	Kind ParseErrorKind
	// Row and Col are the position of the offending token, counting from 0.
	Row, Col int
	// Token is the name of the offending token's kind.
	Token string
}

func (err *ParseError) Error() string {
	return errpos(err.Row, err.Col, err.Kind.String()+" [token: "+err.Token+"]")
}

// Pos returns the position of the offending token.
func (err *ParseError) Pos() Pos {
	return Pos{Row: err.Row, Col: err.Col}
}

// Unwrap returns err.Kind.
func (err *ParseError) Unwrap() error {
	return err.Kind
}

func parseError(kind ParseErrorKind, tok token) *ParseError {
	return &ParseError{Kind: kind, Row: tok.pos.Row, Col: tok.pos.Col, Token: tok.kind.String()}
}

// errpos is a shortcut to create an error message with a position.
func errpos(row, col int, msg string) string {
	return strconv.Itoa(row) + ":" + strconv.Itoa(col) + ": " + msg
}

// InputError is an error with position information. Every error resulting
// from invalid syntax implements InputError.
type InputError interface {
	error
	// Pos returns the position of the token that caused the error.
	Pos() Pos
}

var _ InputError = (*ParseError)(nil)
