package mewa

import (
	"io"
)

// Expr   = Let
// Let    = Or [ '=' Let ]
// Or     = And { '||' And }
// And    = Cmp { '&&' Cmp }
// Cmp    = Sum { ('>' | '<' | '>=' | '<=' | '==' | '!=') Sum }
// Sum    = Term { ('+' | '-') Term }
// Term   = Unary { ('*' | '/' | '%') Unary }
// Unary  = [ '+' | '-' | '!' ] Pow
// Pow    = Fac [ '^' Unary ]
// Fac    = Primary [ '!' | '!!' | '!!!' ... ]
// Primary = sym | int | float | complex | bool | '(' Expr ')' | '|' Expr '|'

// Expr is a parsed expression that can be evaluated with a context. Its nodes
// belong to the arena it was parsed with; it must not be used after that
// arena is reset or released.
type Expr struct {
	// n is the root node of the expression.
	n *node
}

// String creates a string representation of the parsed expression, with
// alternating round and square brackets grouping each term.
func (e *Expr) String() string {
	return e.n.String()
}

// Parser parses a sequence of expressions from a single source. Expressions
// are separated by ; or by characters given to StopOn.
type Parser struct {
	lx    lexer
	arena *Arena
	// parens is the number of currently open parentheses.
	parens int
	// abs indicates that the parser is inside an absolute value.
	abs bool
	// seen indicates that Next has been called since the parser was created
	// or reset. done indicates that the source is exhausted.
	seen, done bool
}

func newParser(rd reader, a *Arena, p parsectx) *Parser {
	if a == nil {
		a = NewArena(0)
	}
	return &Parser{lx: lexer{rd: rd, stop: p.stop}, arena: a}
}

// NewParser creates a parser that reads src a page at a time. Nodes are
// allocated from a, or from a new arena if a is nil.
func NewParser(src io.Reader, a *Arena, opts ...ParseOption) *Parser {
	var p parsectx
	for _, opt := range opts {
		p = opt.parseOption(p)
	}
	return newParser(newStreamReader(src, p.page), a, p)
}

// NewStringParser creates a parser over an in-memory source.
func NewStringParser(src string, a *Arena, opts ...ParseOption) *Parser {
	var p parsectx
	for _, opt := range opts {
		p = opt.parseOption(p)
	}
	return newParser(newBufferReader([]byte(src)), a, p)
}

// Reset makes the parser read from an in-memory line, e.g. a line read by an
// interactive prompt. The parser keeps its arena and options. It does not
// copy line.
func (p *Parser) Reset(line []byte) {
	p.lx.rd.reset(line)
	p.lx.tok = token{}
	p.parens, p.abs = 0, false
	p.seen, p.done = false, false
}

// Arena returns the arena from which the parser allocates nodes.
func (p *Parser) Arena() *Arena {
	return p.arena
}

// Next parses the next expression from the source. At the end of the source,
// the result is nil, io.EOF, except that an entirely empty source is an
// ErrOperandEOS error. If reading the source fails, the error is returned
// as-is and the parser is done.
//
// After a parse error, the rest of the current line is discarded, so a
// subsequent call to Next resumes on the following line.
func (p *Parser) Next() (*Expr, error) {
	if p.done {
		return nil, io.EOF
	}
	seen := p.seen
	p.seen = true
	p.parens, p.abs = 0, false
	p.lx.next()
	for p.lx.tok.kind == tokenEOX {
		p.lx.next()
	}
	if p.lx.tok.kind == tokenEOS && (seen || p.lx.rd.err != nil) {
		p.done = true
		if p.lx.rd.err != nil {
			return nil, p.lx.rd.err
		}
		return nil, io.EOF
	}
	n, err := p.parselevel(levelLet)
	if err == nil {
		switch p.lx.tok.kind {
		case tokenEOS:
			p.done = true
		case tokenEOX:
			// Another expression may follow.
		default:
			err = p.unexpected()
		}
	}
	if p.lx.rd.err != nil {
		p.done = true
		return nil, p.lx.rd.err
	}
	if err != nil {
		p.recover()
		return nil, err
	}
	return &Expr{n: n}, nil
}

// recover discards the rest of the line after a parse error.
func (p *Parser) recover() {
	if p.lx.tok.kind == tokenEOS {
		p.done = true
		return
	}
	p.lx.rd.skipLine()
}

// Parse parses a single expression from src. The entire source must be one
// expression, optionally followed by ;.
func Parse(src io.Reader, a *Arena, opts ...ParseOption) (*Expr, error) {
	return parseone(NewParser(src, a, opts...))
}

// ParseString is a shortcut to parse a string expression.
func ParseString(src string, a *Arena, opts ...ParseOption) (*Expr, error) {
	return parseone(NewStringParser(src, a, opts...))
}

func parseone(p *Parser) (*Expr, error) {
	e, err := p.Next()
	if err != nil {
		return nil, err
	}
	if p.done {
		return e, nil
	}
	p.lx.next()
	for p.lx.tok.kind == tokenEOX {
		p.lx.next()
	}
	if p.lx.rd.err != nil {
		return nil, p.lx.rd.err
	}
	if p.lx.tok.kind != tokenEOS {
		return nil, parseError(ErrTokenUnexpected, p.lx.tok)
	}
	return e, nil
}

// level is a tier of the precedence ladder, from least to most binding.
type level int8

const (
	levelLet level = iota
	levelOr
	levelAnd
	levelCmp
	levelSum
	levelTerm
	levelUnary
	levelPow
	levelFac
	levelPrimary
)

// has returns whether a token is an operator at the level.
func (lv level) has(k tokenKind) bool {
	switch lv {
	case levelLet:
		return k == tokenLet
	case levelOr:
		return k == tokenOr
	case levelAnd:
		return k == tokenAnd
	case levelCmp:
		return tokenGt <= k && k <= tokenNeq
	case levelSum:
		return k == tokenAdd || k == tokenSub
	case levelTerm:
		return k == tokenMul || k == tokenQuo || k == tokenMod
	case levelUnary:
		return k == tokenAdd || k == tokenSub || k == tokenNot
	case levelPow:
		return k == tokenPow
	case levelFac:
		return k == tokenNot || k == tokenFac
	default:
		return false
	}
}

// rhs returns the level at which to parse the right operand of a binary
// operator at lv. Right-associative levels parse their right operands at the
// same level or lower.
func (lv level) rhs() level {
	switch lv {
	case levelLet:
		return levelLet
	case levelPow:
		// x^-y is x^(-y).
		return levelUnary
	default:
		return lv + 1
	}
}

// parselevel parses an expression at a level of the ladder. Binary levels
// all share the same loop; unary, factorial, and primary levels have their
// own functions.
func (p *Parser) parselevel(lv level) (*node, error) {
	switch lv {
	case levelUnary:
		return p.parseunary()
	case levelFac:
		return p.parsefac()
	case levelPrimary:
		return p.parseprimary()
	}
	n, err := p.parselevel(lv + 1)
	if err != nil {
		return nil, err
	}
	for lv.has(p.lx.tok.kind) {
		b := p.arena.alloc()
		b.kind = binop(p.lx.tok.kind)
		b.left = n
		p.lx.next()
		b.right, err = p.parselevel(lv.rhs())
		if err != nil {
			return nil, err
		}
		n = b
	}
	return n, nil
}

// parseunary parses at most one prefix operator applied to a power.
func (p *Parser) parseunary() (*node, error) {
	k := p.lx.tok.kind
	if !levelUnary.has(k) {
		return p.parselevel(levelPow)
	}
	u := p.arena.alloc()
	u.kind = unop(k)
	p.lx.next()
	arg, err := p.parselevel(levelPow)
	if err != nil {
		return nil, err
	}
	u.left = arg
	return u, nil
}

// parsefac parses a primary followed by an optional factorial. The step of
// the factorial becomes an integer leaf on the right.
func (p *Parser) parsefac() (*node, error) {
	n, err := p.parselevel(levelPrimary)
	if err != nil {
		return nil, err
	}
	if !levelFac.has(p.lx.tok.kind) {
		return n, nil
	}
	f := p.arena.alloc()
	f.kind = nodeFac
	f.left = n
	f.right = p.arena.alloc()
	f.right.kind = nodeInt
	f.right.val = p.lx.tok.val
	p.lx.next()
	return f, nil
}

// parseprimary parses a literal, a symbol, or a bracketed expression.
func (p *Parser) parseprimary() (*node, error) {
	tok := p.lx.tok
	switch tok.kind {
	case tokenSym, tokenInt, tokenFloat, tokenComplex, tokenTrue, tokenFalse:
		n := p.arena.alloc()
		n.kind = leafop(tok.kind)
		n.val = tok.val
		p.lx.next()
		return n, nil
	case tokenLParen:
		p.parens++
		p.lx.next()
		n, err := p.parselevel(levelLet)
		if err != nil {
			return nil, err
		}
		switch p.lx.tok.kind {
		case tokenRParen:
		case tokenEOS, tokenEOX:
			return nil, parseError(ErrParenNotClosed, p.lx.tok)
		default:
			return nil, p.unexpected()
		}
		p.parens--
		p.lx.next()
		return n, nil
	case tokenAbs:
		if p.abs {
			return nil, parseError(ErrOperandAbs, tok)
		}
		p.abs = true
		p.lx.next()
		arg, err := p.parselevel(levelLet)
		if err != nil {
			return nil, err
		}
		if p.lx.tok.kind != tokenAbs {
			return nil, p.unexpected()
		}
		p.abs = false
		p.lx.next()
		n := p.arena.alloc()
		n.kind = nodeAbs
		n.left = arg
		return n, nil
	case tokenRParen:
		if p.parens == 0 {
			return nil, parseError(ErrParenNotOpened, tok)
		}
		return nil, parseError(ErrOperandRParen, tok)
	case tokenIllegal:
		return nil, parseError(ErrOperandIllegal, tok)
	case tokenEOS, tokenEOX:
		if p.parens > 0 {
			return nil, parseError(ErrParenNotClosed, tok)
		}
		if tok.kind == tokenEOS {
			return nil, parseError(ErrOperandEOS, tok)
		}
		return nil, parseError(ErrOperandEOX, tok)
	default:
		return nil, parseError(ErrTokenUnexpected, tok)
	}
}

// unexpected creates an error for the current token where the parser
// expected an operator or the end of a subexpression.
func (p *Parser) unexpected() error {
	tok := p.lx.tok
	switch {
	case tok.kind == tokenIllegal:
		return parseError(ErrIllegalToken, tok)
	case tok.kind == tokenRParen && p.parens == 0:
		return parseError(ErrParenNotOpened, tok)
	default:
		return parseError(ErrTokenUnexpected, tok)
	}
}

// Vars returns the names of the symbols that appear in the expression, in
// order of first appearance. Names longer than ten characters are truncated
// the way the lexer packs them.
func (e *Expr) Vars() []string {
	var r []string
	seen := make(map[uint64]bool)
	var walk func(n *node)
	walk = func(n *node) {
		if n == nil {
			return
		}
		if n.kind == nodeSym && !seen[n.val.s] {
			seen[n.val.s] = true
			r = append(r, DecodeSymbol(n.val.s))
		}
		walk(n.left)
		walk(n.right)
	}
	walk(e.n)
	return r
}
