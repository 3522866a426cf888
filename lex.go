package mewa

import (
	"math"
	"math/big"
	"strconv"

	"github.com/zephyrtronium/bigfloat"
)

type token struct {
	kind tokenKind
	val  Value
	pos  Pos
}

func (t token) String() string {
	s := t.kind.String()
	if t.val.typ != typeNone {
		s += ":" + t.val.String()
	}
	return s + "@" + strconv.Itoa(t.pos.Row) + ":" + strconv.Itoa(t.pos.Col)
}

type tokenKind int8

const (
	tokenIllegal tokenKind = iota
	// tokenEOS is the end of the input stream.
	tokenEOS

	tokenSym
	tokenInt
	tokenFloat
	tokenComplex
	tokenFalse
	tokenTrue

	tokenLet // =

	tokenAnd // &&
	tokenOr  // ||

	tokenGt  // >
	tokenLt  // <
	tokenGe  // >=
	tokenLe  // <=
	tokenEq  // ==
	tokenNeq // !=

	tokenAdd // +
	tokenSub // -
	tokenMul // *
	tokenQuo // /
	tokenMod // %
	tokenPow // ^

	// tokenNot is a single !, which is either logical negation or factorial
	// depending on where the parser finds it.
	tokenNot
	// tokenFac is a run of two or more !. Its value is the run length.
	tokenFac

	tokenLParen
	tokenRParen
	// tokenAbs is a | delimiting an absolute value.
	tokenAbs

	// tokenEOX ends an expression without ending the input.
	tokenEOX
)

var tokenNames = [...]string{
	tokenIllegal: "Illegal",
	tokenEOS:     "EOS",
	tokenSym:     "Sym",
	tokenInt:     "Int",
	tokenFloat:   "Float",
	tokenComplex: "Complex",
	tokenFalse:   "False",
	tokenTrue:    "True",
	tokenLet:     "Let",
	tokenAnd:     "And",
	tokenOr:      "Or",
	tokenGt:      "Gt",
	tokenLt:      "Lt",
	tokenGe:      "Ge",
	tokenLe:      "Le",
	tokenEq:      "Eq",
	tokenNeq:     "Neq",
	tokenAdd:     "Add",
	tokenSub:     "Sub",
	tokenMul:     "Mul",
	tokenQuo:     "Quo",
	tokenMod:     "Mod",
	tokenPow:     "Pow",
	tokenNot:     "Not",
	tokenFac:     "Fac",
	tokenLParen:  "LParen",
	tokenRParen:  "RParen",
	tokenAbs:     "Abs",
	tokenEOX:     "EOX",
}

func (k tokenKind) String() string {
	if 0 <= k && int(k) < len(tokenNames) {
		return tokenNames[k]
	}
	return "tokenKind(" + strconv.Itoa(int(k)) + ")"
}

// lexer scans tokens from a reader. It holds only the current token; each
// call to next replaces it.
type lexer struct {
	rd  reader
	tok token
	// stop contains whitespace bytes that end an expression.
	stop string
}

// next scans the next token into l.tok. The reader's current byte is always
// the last byte of the previous token, or a byte that was unread.
func (l *lexer) next() {
	rd := &l.rd
	rd.advance()
	rd.skipSpace(l.stop)
	rd.mark()
	l.tok = token{pos: rd.mrk}
	if rd.eos {
		l.tok.kind = tokenEOS
		return
	}
	switch c := rd.cc; c {
	case '+':
		l.tok.kind = tokenAdd
	case '-':
		l.tok.kind = tokenSub
	case '*':
		l.tok.kind = tokenMul
	case '/':
		l.tok.kind = tokenQuo
	case '%':
		l.tok.kind = tokenMod
	case '^':
		l.tok.kind = tokenPow
	case '(':
		l.tok.kind = tokenLParen
	case ')':
		l.tok.kind = tokenRParen
	case ';':
		l.tok.kind = tokenEOX
	case '!':
		l.bangs()
	case '&':
		l.pair(tokenIllegal, '&', tokenAnd)
	case '|':
		l.pair(tokenAbs, '|', tokenOr)
	case '>':
		l.pair(tokenGt, '=', tokenGe)
	case '<':
		l.pair(tokenLt, '=', tokenLe)
	case '=':
		l.pair(tokenLet, '=', tokenEq)
	case '\'':
		rd.advance()
		switch rd.cc {
		case 't':
			l.tok.kind = tokenTrue
			l.tok.val = Bool(true)
		case 'f':
			l.tok.kind = tokenFalse
			l.tok.val = Bool(false)
		default:
			rd.unread()
			l.tok.kind = tokenIllegal
		}
	default:
		switch {
		case stopsOn(l.stop, c):
			l.tok.kind = tokenEOX
		case isDigit(c), c == '.', c == 'i':
			l.number()
		case isLetter(c):
			l.symbol()
		default:
			l.tok.kind = tokenIllegal
		}
	}
}

// pair scans a token that is either one byte, giving kind one, or that byte
// followed by second, giving kind two.
func (l *lexer) pair(one tokenKind, second byte, two tokenKind) {
	l.rd.advance()
	if l.rd.cc == second && !l.rd.eos {
		l.tok.kind = two
		return
	}
	l.rd.unread()
	l.tok.kind = one
}

// bangs scans a run of !. A lone ! followed by = is !=.
func (l *lexer) bangs() {
	var n int64
	for l.rd.cc == '!' && !l.rd.eos {
		n++
		l.rd.advance()
	}
	if n == 1 && l.rd.cc == '=' && !l.rd.eos {
		l.tok.kind = tokenNeq
		return
	}
	l.rd.unread()
	l.tok.val = Int(n)
	if n == 1 {
		l.tok.kind = tokenNot
	} else {
		l.tok.kind = tokenFac
	}
}

// digits scans a run of decimal digits. Digits accumulate into mnt until
// another digit would overflow it; after that, each digit only increments
// exp. For a fraction, accumulation also stops once pow10 can't grow. pow10
// is 10 raised to the number of digits in mnt, and nd is the total number of
// digits scanned.
func (l *lexer) digits(frac bool) (mnt, pow10 int64, exp, nd int) {
	pow10 = 1
	full := false
	for isDigit(l.rd.cc) && !l.rd.eos {
		d := int64(l.rd.cc - '0')
		if !full {
			full = mnt > (math.MaxInt64-d)/10 || frac && pow10 > math.MaxInt64/10
		}
		if full {
			exp++
		} else {
			mnt = mnt*10 + d
			if pow10 <= math.MaxInt64/10 {
				pow10 *= 10
			}
		}
		nd++
		l.rd.advance()
	}
	return mnt, pow10, exp, nd
}

// number scans an integer, float, or imaginary literal.
func (l *lexer) number() {
	mnt, _, exp, nd := l.digits(false)
	switch {
	case l.rd.cc == '.' && !l.rd.eos:
		l.rd.advance()
		frac, pow10, _, _ := l.digits(true)
		l.tok.kind = tokenFloat
		l.tok.val = Float(decimal(mnt, exp, frac, pow10))
	case exp != 0:
		l.tok.kind = tokenFloat
		l.tok.val = Float(decimal(mnt, exp, 0, 1))
	case nd > 0:
		l.tok.kind = tokenInt
		l.tok.val = Int(mnt)
	}
	if l.rd.cc == 'i' && !l.rd.eos {
		// The i is part of this token, so it isn't unread.
		l.tok.kind = tokenComplex
		switch l.tok.val.typ {
		case TypeInt:
			l.tok.val = Complex(complex(0, float64(l.tok.val.i)))
		case TypeFloat:
			l.tok.val = Complex(complex(0, l.tok.val.f))
		default:
			// Bare i.
			l.tok.val = Complex(1i)
		}
		return
	}
	l.rd.unread()
}

// decimalPrec is the precision used to assemble float literals before
// rounding them once to float64.
const decimalPrec = 64

// decimal computes mnt * 10^exp + frac/pow10.
func decimal(mnt int64, exp int, frac, pow10 int64) float64 {
	r := new(big.Float).SetPrec(decimalPrec).SetInt64(mnt)
	if exp != 0 {
		var ten, e, p big.Float
		ten.SetPrec(decimalPrec).SetInt64(10)
		e.SetPrec(decimalPrec).SetInt64(int64(exp))
		p.SetPrec(decimalPrec)
		// Pow may return a new Float rather than setting p.
		r.Mul(r, bigfloat.Pow(&p, &ten, &e))
	}
	if frac != 0 {
		var f, d big.Float
		f.SetPrec(decimalPrec).SetInt64(frac)
		d.SetPrec(decimalPrec).SetInt64(pow10)
		r.Add(r, f.Quo(&f, &d))
	}
	x, _ := r.Float64()
	return x
}

// symbol scans an identifier into its packed encoding.
func (l *lexer) symbol() {
	var s uint64
	var off uint
	for (isLetter(l.rd.cc) || isDigit(l.rd.cc)) && !l.rd.eos {
		s |= encodeSymbolByte(l.rd.cc) << off
		off += symbolBits
		l.rd.advance()
	}
	l.rd.unread()
	l.tok.kind = tokenSym
	l.tok.val = Symbol(s)
}
