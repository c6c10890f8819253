package scaledexpr

import "strconv"

// ComparisonPolicy tells how comparisons treat operands with different
// scales.
type ComparisonPolicy int8

const (
	// NormalizeScales converts the operand with fewer decimals to the scale of
	// the other before comparing. It is the default.
	NormalizeScales ComparisonPolicy = iota
	// StrictScales rejects comparisons of operands with different scales with
	// a *ComparisonScaleMismatchError.
	StrictScales
)

func (p ComparisonPolicy) String() string {
	switch p {
	case NormalizeScales:
		return "normalize"
	case StrictScales:
		return "strict"
	default:
		return "ComparisonPolicy(" + strconv.Itoa(int(p)) + ")"
	}
}

// Comparison is the result of a comparison expression.
type Comparison struct {
	// Result is the truth of the comparison.
	Result bool `json:"result"`
	// Operator is the comparison operator, e.g. "<=".
	Operator string `json:"operator"`
	// Left and Right are the operands rendered as decimal numbers at their
	// own scales.
	Left  string `json:"left"`
	Right string `json:"right"`
	// Scale is the scale at which the operands were compared.
	Scale int `json:"scale"`
	// Overflow is the overflow warning of the left operand if it has one,
	// otherwise that of the right operand.
	Overflow *Overflow `json:"overflow,omitempty"`
}

func (*Comparison) outcome() {}

// Compare evaluates a comparison. Each operand is evaluated independently as
// a numeric expression. If e is not a comparison, the error is a *ParseError.
func (e *Expr) Compare(vars map[string]Variable, opts ...EvalOption) (*Comparison, error) {
	if e.n.kind != nodeCmp {
		return nil, &ParseError{Col: e.n.pos, Msg: "expression is not a comparison"}
	}
	c := configure(opts)
	return compare(e.n, vars, c)
}

func compare(n *node, vars map[string]Variable, c evalconfig) (*Comparison, error) {
	l, err := evalnum(n.left, vars, c.mode)
	if err != nil {
		return nil, err
	}
	r, err := evalnum(n.right, vars, c.mode)
	if err != nil {
		return nil, err
	}
	op := cmpText[n.cmp]
	a, b, scale := l.Value, r.Value, l.Scale
	switch {
	case l.Scale == r.Scale:
		// Nothing to do.
	case c.policy == StrictScales:
		return nil, &ComparisonScaleMismatchError{Op: op, Left: l.Scale, Right: r.Scale}
	case l.Scale < r.Scale:
		a, scale = rescale(a, l.Scale, r.Scale), r.Scale
	default:
		b = rescale(b, r.Scale, l.Scale)
	}
	k := a.Cmp(b)
	var t bool
	switch n.cmp {
	case TokenEq:
		t = k == 0
	case TokenNe:
		t = k != 0
	case TokenLt:
		t = k < 0
	case TokenLe:
		t = k <= 0
	case TokenGt:
		t = k > 0
	case TokenGe:
		t = k >= 0
	default:
		panic("scaledexpr: invalid comparison " + n.cmp.String())
	}
	ov := l.Overflow
	if ov == nil {
		ov = r.Overflow
	}
	return &Comparison{
		Result:   t,
		Operator: op,
		Left:     l.Human,
		Right:    r.Human,
		Scale:    scale,
		Overflow: ov,
	}, nil
}
