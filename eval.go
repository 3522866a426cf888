package mewa

import (
	"io"
	"strconv"
)

// Context is a context for evaluating expressions. It is not safe to use a
// Context concurrently.
type Context struct {
	stack []Value
	eps   float64
	res   Value
	err   error
	done  bool
}

// ContextOption is an option used when creating a context.
type ContextOption interface {
	ctxOption()
}

type epsopt float64

func (epsopt) ctxOption() {}

// Epsilon sets the relative tolerance used to compare floats and complex
// numbers for equality. Non-positive values select DefaultEpsilon.
func Epsilon(eps float64) ContextOption {
	return epsopt(eps)
}

// NewContext creates a new evaluation context.
func NewContext(opts ...ContextOption) *Context {
	ctx := Context{eps: DefaultEpsilon}
	return ctx.Clone(opts...)
}

// Eval evaluates an expression and returns the result. Operands are always
// evaluated left before right, and every operand is evaluated: && and || do
// not short-circuit, so an error anywhere in the tree is an error for the
// whole expression.
func (ctx *Context) Eval(e *Expr) (Value, error) {
	ctx.stack = ctx.stack[:0]
	ctx.res, ctx.err, ctx.done = Value{}, nil, true
	if e == nil || e.n == nil {
		ctx.err = evalError(ErrIllegalNode, nodeNone, typeNone)
		return Value{}, ctx.err
	}
	if err := e.n.eval(ctx); err != nil {
		ctx.stack = ctx.stack[:0]
		ctx.err = err
		return Value{}, err
	}
	if len(ctx.stack) != 1 {
		panic("mewa: inconsistent stack: " + strconv.Itoa(len(ctx.stack)) + " items (bad AST?)")
	}
	ctx.res = ctx.pop()
	return ctx.res, nil
}

// Result returns the result of the last expression evaluated with ctx. Panics
// if ctx has not been used to evaluate an expression. The result is the zero
// Value if an error occurred.
func (ctx *Context) Result() Value {
	if !ctx.done {
		panic("mewa: Context.Result called before evaluating any expression")
	}
	return ctx.res
}

// Err returns the error from the last expression evaluated with ctx, if any.
func (ctx *Context) Err() error {
	return ctx.err
}

// Epsilon returns the tolerance for float equality in the context.
func (ctx *Context) Epsilon() float64 {
	return ctx.eps
}

// Clone creates a copy of a context and applies options to it. The returned
// context has no result.
func (ctx *Context) Clone(opts ...ContextOption) *Context {
	n := Context{
		stack: make([]Value, 0, cap(ctx.stack)),
		eps:   ctx.eps,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		switch opt := opt.(type) {
		case epsopt:
			n.eps = float64(opt)
			if n.eps <= 0 {
				n.eps = DefaultEpsilon
			}
		default:
			panic("mewa: unknown option type")
		}
	}
	return &n
}

func (ctx *Context) push(v Value) {
	ctx.stack = append(ctx.stack, v)
}

func (ctx *Context) pop() Value {
	r := ctx.stack[len(ctx.stack)-1]
	ctx.stack = ctx.stack[:len(ctx.stack)-1]
	return r
}

// eval pushes the node's value to the context's stack.
func (n *node) eval(ctx *Context) error {
	switch {
	case n.kind.leaf():
		// Symbols evaluate to themselves.
		ctx.push(n.val)
	case n.kind == nodeLet, n.kind == nodeFunc, n.kind == nodeCall, n.kind == nodeCallAnon:
		return evalError(ErrNotImplemented, n.kind, typeNone)
	case n.kind.binary():
		if n.left == nil || n.right == nil {
			return evalError(ErrIllegalNode, n.kind, typeNone)
		}
		if err := n.left.eval(ctx); err != nil {
			return err
		}
		if err := n.right.eval(ctx); err != nil {
			return err
		}
		r := ctx.pop()
		l := &ctx.stack[len(ctx.stack)-1]
		v, err := binary(n.kind, *l, r, ctx.eps)
		if err != nil {
			return err
		}
		*l = v
	case n.kind.unary():
		if n.left == nil {
			return evalError(ErrIllegalNode, n.kind, typeNone)
		}
		if err := n.left.eval(ctx); err != nil {
			return err
		}
		l := &ctx.stack[len(ctx.stack)-1]
		v, err := unary(n.kind, *l)
		if err != nil {
			return err
		}
		*l = v
	default:
		return evalError(ErrIllegalNode, n.kind, typeNone)
	}
	return nil
}

// Eval is a shortcut to parse a single expression and return its result.
func Eval(src io.Reader, opts ...ContextOption) (Value, error) {
	e, err := Parse(src, nil)
	if err != nil {
		return Value{}, err
	}
	return NewContext(opts...).Eval(e)
}

// EvalString is a shortcut to parse and evaluate a string expression.
func EvalString(src string, opts ...ContextOption) (Value, error) {
	e, err := ParseString(src, nil)
	if err != nil {
		return Value{}, err
	}
	return NewContext(opts...).Eval(e)
}
