package scaledexpr

import (
	"math/big"
	"strconv"
	"strings"
)

// node is a node in the abstract syntax tree of an expression.
type node struct {
	kind nodeKind
	// pos is the source offset of the token that produced the node: the
	// literal or name for leaves and the operator for everything else.
	pos int

	// val and scale are the value of nodeNum and nodeBound.
	val   *big.Int
	scale int
	// plain marks a nodeNum written as a bare integer, the only kind of
	// literal that adopts its sibling's scale in addition and subtraction.
	plain bool
	// text is the source text of a literal or the name of a nodeName.
	text string
	// typ is the integer type of a nodeBound.
	typ IntType
	// cmp is the operator of a nodeCmp.
	cmp TokenKind

	left  *node
	right *node
}

type nodeKind int8

const (
	nodeNone nodeKind = iota

	nodeNum   // literal value
	nodeBound // literal bound of typ
	nodeName  // lookup(text)

	nodeNeg // evaluate left, then negate
	nodeNop // evaluate left
	nodeAdd // evaluate left, add right
	nodeSub // evaluate left, sub right
	nodeMul // evaluate left, mul right
	nodeDiv // evaluate left, div by right
	nodePow // 10 ** right; left must be literal 10
	nodeCmp // compare left to right with cmp
)

var nodeNames = [...]string{
	nodeNone:  "None",
	nodeNum:   "Num",
	nodeBound: "Bound",
	nodeName:  "Name",
	nodeNeg:   "Neg",
	nodeNop:   "Nop",
	nodeAdd:   "Add",
	nodeSub:   "Sub",
	nodeMul:   "Mul",
	nodeDiv:   "Div",
	nodePow:   "Pow",
	nodeCmp:   "Cmp",
}

func (k nodeKind) String() string {
	if k < 0 || int(k) >= len(nodeNames) {
		return "nodeKind(" + strconv.Itoa(int(k)) + ")"
	}
	return nodeNames[k]
}

// cmpText gives the source form of comparison operators.
var cmpText = map[TokenKind]string{
	TokenEq: "==",
	TokenNe: "!=",
	TokenLt: "<",
	TokenLe: "<=",
	TokenGt: ">",
	TokenGe: ">=",
}

// isTen reports whether n is the literal integer 10. Exponentiation is only
// defined for this base.
func (n *node) isTen() bool {
	return n.kind == nodeNum && n.plain && n.scale == 0 && n.val.Cmp(big.NewInt(10)) == 0
}

// liftable reports whether n is a bare integer literal, possibly with a sign,
// so that it may take the scale of the other operand of + or -.
func (n *node) liftable() bool {
	switch n.kind {
	case nodeNum:
		return n.plain
	case nodeNeg, nodeNop:
		return n.left.liftable()
	default:
		return false
	}
}

// names appends the names of all variables in the tree to v.
func (n *node) names(v []string) []string {
	if n == nil {
		return v
	}
	if n.kind == nodeName {
		v = append(v, n.text)
	}
	v = n.left.names(v)
	return n.right.names(v)
}

// bounds appends the integer types of all bounds in the tree to v, in source
// order and without duplicates.
func (n *node) bounds(v []IntType) []IntType {
	if n == nil {
		return v
	}
	v = n.left.bounds(v)
	if n.kind == nodeBound {
		for _, t := range v {
			if t == n.typ {
				return n.right.bounds(v)
			}
		}
		v = append(v, n.typ)
	}
	return n.right.bounds(v)
}

func (n *node) String() string {
	var b strings.Builder
	n.fmt(&b, false)
	return b.String()
}

func (n *node) fmt(b *strings.Builder, square bool) {
	var l, r byte = '(', ')'
	if square {
		l, r = '[', ']'
	}
	b.WriteByte(l)
	defer b.WriteByte(r)
	switch n.kind {
	case nodeNone:
		// Invalid nodes use invalid characters.
		b.WriteByte('$')
		if n.left != nil {
			n.left.fmt(b, !square)
		}
		b.WriteByte('#')
		if n.right != nil {
			n.right.fmt(b, !square)
		}
		b.WriteByte('$')
	case nodeNum:
		if n.plain {
			b.WriteString(n.val.String())
			return
		}
		// Scale constants and absorbed decimals show their scale.
		b.WriteString(n.val.String())
		b.WriteString("@")
		b.WriteString(strconv.Itoa(n.scale))
	case nodeBound, nodeName:
		b.WriteString(n.text)
	case nodeNeg:
		b.WriteByte('-')
		n.left.fmt(b, !square)
	case nodeNop:
		b.WriteByte('+')
		n.left.fmt(b, !square)
	case nodeAdd:
		n.left.fmt(b, !square)
		b.WriteString(" + ")
		n.right.fmt(b, !square)
	case nodeSub:
		n.left.fmt(b, !square)
		b.WriteString(" - ")
		n.right.fmt(b, !square)
	case nodeMul:
		n.left.fmt(b, !square)
		b.WriteString(" * ")
		n.right.fmt(b, !square)
	case nodeDiv:
		n.left.fmt(b, !square)
		b.WriteString(" / ")
		n.right.fmt(b, !square)
	case nodePow:
		n.left.fmt(b, !square)
		b.WriteString(" ** ")
		n.right.fmt(b, !square)
	case nodeCmp:
		n.left.fmt(b, !square)
		b.WriteString(" " + cmpText[n.cmp] + " ")
		n.right.fmt(b, !square)
	default:
		panic("scaledexpr: invalid node kind " + n.kind.String() + " after writing " + b.String())
	}
}
