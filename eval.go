package scaledexpr

import (
	"math/big"
)

// maxExponent is the largest exponent allowed in 10**n and in scientific
// literals, the largest integer a double represents exactly.
const maxExponent = 1<<53 - 1

// Variable is a named input to an expression: an integer value with a number
// of decimals. A nil Value is zero.
type Variable struct {
	Value    *big.Int
	Decimals int
	// unscaled marks a variable whose decimals are unknown.
	unscaled bool
}

// Unscaled creates a variable whose decimals are not known. Evaluating an
// expression that uses it fails with a *MissingScaleError.
func Unscaled(v *big.Int) Variable {
	return Variable{Value: v, unscaled: true}
}

// HasDecimals reports whether the variable's decimals are set.
func (v Variable) HasDecimals() bool {
	return !v.unscaled
}

// EvalOption is an option used when evaluating an expression.
type EvalOption interface {
	evalOption()
}

type (
	roundopt  RoundingMode
	policyopt ComparisonPolicy
)

func (roundopt) evalOption()  {}
func (policyopt) evalOption() {}

// Rounding sets the rounding mode of divisions. The default is Floor.
func Rounding(mode RoundingMode) EvalOption {
	return roundopt(mode)
}

// CompareScales sets how comparisons treat operands with different scales.
// The default is NormalizeScales.
func CompareScales(policy ComparisonPolicy) EvalOption {
	return policyopt(policy)
}

// evalconfig holds the options of one evaluation.
type evalconfig struct {
	mode   RoundingMode
	policy ComparisonPolicy
}

func configure(opts []EvalOption) evalconfig {
	var c evalconfig
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		switch opt := opt.(type) {
		case roundopt:
			c.mode = RoundingMode(opt)
		case policyopt:
			c.policy = ComparisonPolicy(opt)
		default:
			panic("scaledexpr: unknown option type")
		}
	}
	return c
}

// Outcome is the result of evaluating an expression: a *Result for numeric
// expressions or a *Comparison for comparisons.
type Outcome interface {
	outcome()
}

// Result is the value of a numeric expression.
type Result struct {
	// Value is the raw integer result.
	Value *big.Int `json:"raw"`
	// Scale is the number of decimals of Value.
	Scale int `json:"scale"`
	// Human is Value rendered as a decimal number.
	Human string `json:"human"`
	// Rounded is Value converted to the requested target scale. Without a
	// target scale, it is equal to Value.
	Rounded *big.Int `json:"rounded"`
	// TargetScale is the requested target scale, or nil if there was none.
	TargetScale *int `json:"targetScale,omitempty"`
	// Loss is the exact amount discarded by rounding, as a decimal string.
	// Without a target scale, it is the remainder discarded by the outermost
	// division of the expression. It is "0" when nothing was discarded.
	Loss string `json:"loss"`
	// Overflow is non-nil if the expression refers to bounds of integer types
	// and its integer result is outside them.
	Overflow *Overflow `json:"overflow,omitempty"`
}

func (*Result) outcome() {}

// Scaled returns the raw result with its scale.
func (r *Result) Scaled() Scaled {
	return Scaled{Value: r.Value, Scale: r.Scale}
}

// divinfo is the remainder of a division, kept to report its loss.
type divinfo struct {
	rem, div *big.Int
	scale    int
}

// evaluator holds the state of one evaluation.
type evaluator struct {
	vars map[string]Variable
	mode RoundingMode
	// types is the set of integer types whose bounds were used, in the order
	// they were reached.
	types []IntType
}

// use records that the bounds of t were used.
func (ev *evaluator) use(t IntType) {
	for _, u := range ev.types {
		if u == t {
			return
		}
	}
	ev.types = append(ev.types, t)
}

// Eval evaluates a numeric expression. If e is a comparison, the error is a
// *ParseError; use Compare or Evaluate instead.
func (e *Expr) Eval(vars map[string]Variable, opts ...EvalOption) (*Result, error) {
	if e.n.kind == nodeCmp {
		return nil, &ParseError{Col: e.n.pos, Msg: "comparison has no numeric value"}
	}
	c := configure(opts)
	return evalnum(e.n, vars, c.mode)
}

// EvalTarget evaluates a numeric expression and converts the result to the
// target scale using the rounding mode. The result's Loss is the difference
// between the raw value and the converted one, at the raw value's scale.
func (e *Expr) EvalTarget(vars map[string]Variable, target int, opts ...EvalOption) (*Result, error) {
	r, err := e.Eval(vars, opts...)
	if err != nil {
		return nil, err
	}
	c := configure(opts)
	r.Rounded = ApplyRounding(r.Value, r.Scale, target, c.mode)
	r.TargetScale = &target
	r.Loss = "0"
	if target < r.Scale {
		back := rescale(r.Rounded, target, r.Scale)
		if d := back.Sub(r.Value, back); d.Sign() != 0 {
			r.Loss = FormatScaled(d, r.Scale)
		}
	}
	return r, nil
}

// evalnum evaluates a tree containing no comparisons.
func evalnum(n *node, vars map[string]Variable, mode RoundingMode) (*Result, error) {
	ev := evaluator{vars: vars, mode: mode}
	v, d, err := n.eval(&ev)
	if err != nil {
		return nil, err
	}
	r := Result{
		Value:   new(big.Int).Set(v.Value),
		Scale:   v.Scale,
		Human:   FormatScaled(v.Value, v.Scale),
		Rounded: new(big.Int).Set(v.Value),
		Loss:    "0",
	}
	if d != nil {
		r.Loss = roundingLoss(d.rem, d.div, mode, d.scale)
	}
	if v.Scale == 0 {
		r.Overflow = checkBounds(v.Value, ev.types)
	}
	return &r, nil
}

// eval computes the node's value. If the node is a division with a nonzero
// remainder, the remainder is returned as well.
func (n *node) eval(ev *evaluator) (Scaled, *divinfo, error) {
	switch n.kind {
	case nodeNum:
		return Scaled{Value: n.val, Scale: n.scale}, nil, nil
	case nodeBound:
		ev.use(n.typ)
		return Scaled{Value: n.val}, nil, nil
	case nodeName:
		v, err := ev.lookup(n)
		return v, nil, err
	case nodeNeg:
		x, _, err := n.left.eval(ev)
		if err != nil {
			return Scaled{}, nil, err
		}
		return Scaled{Value: new(big.Int).Neg(x.Value), Scale: x.Scale}, nil, nil
	case nodeNop:
		return n.left.eval(ev)
	case nodeAdd, nodeSub:
		l, r, err := n.operands(ev)
		if err != nil {
			return Scaled{}, nil, err
		}
		l, r = lift(l, r, n.left.liftable(), n.right.liftable())
		scale, ok := AddScale(l.Scale, r.Scale)
		if !ok {
			op := "+"
			if n.kind == nodeSub {
				op = "-"
			}
			return Scaled{}, nil, &ScaleMismatchError{Col: n.pos, Op: op, Left: l.Scale, Right: r.Scale}
		}
		v := new(big.Int)
		if n.kind == nodeAdd {
			v.Add(l.Value, r.Value)
		} else {
			v.Sub(l.Value, r.Value)
		}
		return Scaled{Value: v, Scale: scale}, nil, nil
	case nodeMul:
		l, r, err := n.operands(ev)
		if err != nil {
			return Scaled{}, nil, err
		}
		return Scaled{Value: new(big.Int).Mul(l.Value, r.Value), Scale: MulScale(l.Scale, r.Scale)}, nil, nil
	case nodeDiv:
		l, r, err := n.operands(ev)
		if err != nil {
			return Scaled{}, nil, err
		}
		if r.Value.Sign() == 0 {
			return Scaled{}, nil, &DivisionByZeroError{Col: n.pos}
		}
		q, rem := divide(l.Value, r.Value, ev.mode)
		v := Scaled{Value: q, Scale: DivScale(l.Scale, r.Scale)}
		if rem.Sign() == 0 {
			return v, nil, nil
		}
		return v, &divinfo{rem: rem, div: r.Value, scale: v.Scale}, nil
	case nodePow:
		return n.pow(ev)
	case nodeCmp:
		panic("scaledexpr: eval on comparison")
	default:
		panic("scaledexpr: invalid AST node " + n.kind.String())
	}
}

// operands evaluates the left and right children of a binary node.
func (n *node) operands(ev *evaluator) (l, r Scaled, err error) {
	l, _, err = n.left.eval(ev)
	if err != nil {
		return l, r, err
	}
	r, _, err = n.right.eval(ev)
	return l, r, err
}

// pow evaluates 10**n, which is one at n decimals.
func (n *node) pow(ev *evaluator) (Scaled, *divinfo, error) {
	if !n.left.isTen() {
		return Scaled{}, nil, &InvalidExponentiationError{Col: n.pos, Reason: ReasonBaseNotTen}
	}
	x, _, err := n.right.eval(ev)
	if err != nil {
		return Scaled{}, nil, err
	}
	switch {
	case x.Scale != 0:
		return Scaled{}, nil, &InvalidExponentiationError{Col: n.pos, Reason: ReasonDimensionful}
	case x.Value.Sign() < 0:
		return Scaled{}, nil, &InvalidExponentiationError{Col: n.pos, Reason: ReasonNegative}
	case x.Value.Cmp(big.NewInt(maxExponent)) > 0:
		return Scaled{}, nil, &InvalidExponentiationError{Col: n.pos, Reason: ReasonTooLarge}
	}
	k := int(x.Value.Int64())
	return Scaled{Value: pow10(k), Scale: k}, nil, nil
}

// lookup gets the value of a variable.
func (ev *evaluator) lookup(n *node) (Scaled, error) {
	v, ok := ev.vars[n.text]
	switch {
	case !ok:
		return Scaled{}, &UndefinedVariableError{Col: n.pos, Name: n.text}
	case v.unscaled:
		return Scaled{}, &MissingScaleError{Name: n.text}
	case v.Decimals < 0:
		return Scaled{}, &NegativeScaleError{Name: n.text, Scale: v.Decimals}
	}
	x := v.Value
	if x == nil {
		x = new(big.Int)
	}
	return Scaled{Value: x, Scale: v.Decimals}, nil
}
