package mewa

import (
	"strconv"
	"strings"
)

// node is a node in the abstract syntax tree of an expression. Nodes are
// allocated from an Arena.
type node struct {
	kind nodeKind

	val Value

	left  *node
	right *node
}

type nodeKind int8

const (
	nodeNone nodeKind = iota

	// Leaves. val holds the value.
	nodeSym
	nodeInt
	nodeFloat
	nodeComplex
	nodeBool

	// Binary operators: evaluate left, then right, then combine.
	nodeLet
	nodeAnd
	nodeOr
	nodeGt
	nodeLt
	nodeGe
	nodeLe
	nodeEq
	nodeNeq
	nodeAdd
	nodeSub
	nodeMul
	nodeQuo
	nodeMod
	nodePow
	nodeFac // left is the base, right is the step

	// Unary operators: evaluate left, then apply.
	nodeAbs
	nodeNot
	nodeNop
	nodeNeg

	// Functions and calls are never produced by the parser.
	nodeFunc
	nodeCall
	nodeCallAnon
)

var nodeNames = [...]string{
	nodeNone:     "None",
	nodeSym:      "Sym",
	nodeInt:      "Int",
	nodeFloat:    "Float",
	nodeComplex:  "Complex",
	nodeBool:     "Bool",
	nodeLet:      "Let",
	nodeAnd:      "And",
	nodeOr:       "Or",
	nodeGt:       "Gt",
	nodeLt:       "Lt",
	nodeGe:       "Ge",
	nodeLe:       "Le",
	nodeEq:       "Eq",
	nodeNeq:      "Neq",
	nodeAdd:      "Add",
	nodeSub:      "Sub",
	nodeMul:      "Mul",
	nodeQuo:      "Quo",
	nodeMod:      "Mod",
	nodePow:      "Pow",
	nodeFac:      "Fac",
	nodeAbs:      "Abs",
	nodeNot:      "Not",
	nodeNop:      "Nop",
	nodeNeg:      "Neg",
	nodeFunc:     "Func",
	nodeCall:     "Call",
	nodeCallAnon: "CallAnon",
}

func (k nodeKind) String() string {
	if 0 <= k && int(k) < len(nodeNames) {
		return nodeNames[k]
	}
	return "nodeKind(" + strconv.Itoa(int(k)) + ")"
}

func (k nodeKind) leaf() bool {
	return nodeSym <= k && k <= nodeBool
}

func (k nodeKind) binary() bool {
	return nodeLet <= k && k <= nodeFac
}

func (k nodeKind) unary() bool {
	return nodeAbs <= k && k <= nodeNeg
}

// leafop maps a literal token to its leaf node kind. Tokens which are not
// literals map to nodeNone.
func leafop(k tokenKind) nodeKind {
	switch k {
	case tokenSym:
		return nodeSym
	case tokenInt:
		return nodeInt
	case tokenFloat:
		return nodeFloat
	case tokenComplex:
		return nodeComplex
	case tokenTrue, tokenFalse:
		return nodeBool
	default:
		return nodeNone
	}
}

// binop maps an operator token to the node kind it builds in binary
// position. Tokens which are not binary operators map to nodeNone.
func binop(k tokenKind) nodeKind {
	switch k {
	case tokenLet:
		return nodeLet
	case tokenAnd:
		return nodeAnd
	case tokenOr:
		return nodeOr
	case tokenGt:
		return nodeGt
	case tokenLt:
		return nodeLt
	case tokenGe:
		return nodeGe
	case tokenLe:
		return nodeLe
	case tokenEq:
		return nodeEq
	case tokenNeq:
		return nodeNeq
	case tokenAdd:
		return nodeAdd
	case tokenSub:
		return nodeSub
	case tokenMul:
		return nodeMul
	case tokenQuo:
		return nodeQuo
	case tokenMod:
		return nodeMod
	case tokenPow:
		return nodePow
	case tokenNot, tokenFac:
		return nodeFac
	default:
		return nodeNone
	}
}

// unop maps an operator token to the node kind it builds in prefix
// position. Tokens which are not prefix operators map to nodeNone.
func unop(k tokenKind) nodeKind {
	switch k {
	case tokenAdd:
		return nodeNop
	case tokenSub:
		return nodeNeg
	case tokenNot:
		return nodeNot
	case tokenAbs:
		return nodeAbs
	default:
		return nodeNone
	}
}

var opstrs = [...]string{
	nodeLet: " = ",
	nodeAnd: " && ",
	nodeOr:  " || ",
	nodeGt:  " > ",
	nodeLt:  " < ",
	nodeGe:  " >= ",
	nodeLe:  " <= ",
	nodeEq:  " == ",
	nodeNeq: " != ",
	nodeAdd: " + ",
	nodeSub: " - ",
	nodeMul: " * ",
	nodeQuo: " / ",
	nodeMod: " % ",
	nodePow: " ^ ",
}

// op returns the operator symbol for the node kind, or its name if it has
// none.
func (k nodeKind) op() string {
	switch k {
	case nodeNone:
		return ""
	case nodeFac, nodeNot:
		return "!"
	case nodeAbs:
		return "||"
	case nodeNop:
		return "+"
	case nodeNeg:
		return "-"
	}
	if int(k) < len(opstrs) && opstrs[k] != "" {
		return strings.TrimSpace(opstrs[k])
	}
	return k.String()
}

func (n *node) String() string {
	var b strings.Builder
	n.fmt(&b, false)
	return b.String()
}

// fmt writes the subtree, grouping each term in brackets that alternate
// between round and square.
func (n *node) fmt(b *strings.Builder, square bool) {
	var l, r byte = '(', ')'
	if square {
		l, r = '[', ']'
	}
	b.WriteByte(l)
	defer b.WriteByte(r)
	switch {
	case n.kind.leaf():
		switch n.kind {
		case nodeSym:
			b.WriteString(DecodeSymbol(n.val.s))
		case nodeInt:
			b.WriteString(strconv.FormatInt(n.val.i, 10))
		case nodeFloat:
			b.WriteString(strconv.FormatFloat(n.val.f, 'g', -1, 64))
		case nodeComplex:
			s := strconv.FormatComplex(n.val.c, 'g', -1, 128)
			b.WriteString(s[1 : len(s)-1])
		case nodeBool:
			if n.val.b {
				b.WriteString("'t")
			} else {
				b.WriteString("'f")
			}
		}
	case n.kind == nodeFac:
		n.left.fmt(b, !square)
		if n.right.kind == nodeInt {
			b.WriteString(strings.Repeat("!", int(n.right.val.i)))
		} else {
			b.WriteString("!")
			n.right.fmt(b, !square)
		}
	case n.kind.binary():
		n.left.fmt(b, !square)
		b.WriteString(opstrs[n.kind])
		n.right.fmt(b, !square)
	case n.kind == nodeAbs:
		b.WriteByte('|')
		n.left.fmt(b, !square)
		b.WriteByte('|')
	case n.kind == nodeNot:
		b.WriteByte('!')
		n.left.fmt(b, !square)
	case n.kind == nodeNop:
		b.WriteByte('+')
		n.left.fmt(b, !square)
	case n.kind == nodeNeg:
		b.WriteByte('-')
		n.left.fmt(b, !square)
	default:
		// Invalid nodes use invalid characters.
		b.WriteString("$" + n.kind.String() + "$")
	}
}
