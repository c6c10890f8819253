package scaledexpr

// Evaluate is a shortcut to parse an expression and evaluate it with the given
// variables. The result is a *Comparison if the expression is a comparison and
// a *Result otherwise.
func Evaluate(src string, vars map[string]Variable, opts ...EvalOption) (Outcome, error) {
	e, err := Parse(src)
	if err != nil {
		return nil, err
	}
	if e.IsComparison() {
		return e.Compare(vars, opts...)
	}
	return e.Eval(vars, opts...)
}

// EvaluateWithTarget is a shortcut to parse a numeric expression, evaluate it,
// and convert the result to the target scale with the given rounding mode.
func EvaluateWithTarget(src string, vars map[string]Variable, target int, mode RoundingMode, opts ...EvalOption) (*Result, error) {
	e, err := Parse(src)
	if err != nil {
		return nil, err
	}
	return e.EvalTarget(vars, target, append(opts[:len(opts):len(opts)], Rounding(mode))...)
}

// ExtractVariables returns the sorted names of the variables an expression
// uses. If the expression does not parse, the result is empty.
func ExtractVariables(src string) []string {
	e, err := Parse(src)
	if err != nil {
		return []string{}
	}
	if len(e.names) == 0 {
		return []string{}
	}
	return e.Vars()
}
