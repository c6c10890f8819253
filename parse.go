package scaledexpr

import (
	"math/big"
	"sort"
	"strconv"
	"strings"
)

// Expr = Sum | Sum Cmp Sum
// Cmp = '==' | '!=' | '<' | '<=' | '>' | '>='
// Sum = Term | Sum '+' Term | Sum '-' Term
// Term = Unary | Term '*' Unary | Term '/' Unary
// Unary = Pow | '-' Unary | '+' Unary
// Pow = Primary | Primary '**' Unary
// Primary = int | bound | name | decimal '*' scaleconst | '(' Sum ')'

// Expr is a parsed expression that can be evaluated with variables. An Expr is
// immutable and safe to evaluate concurrently.
type Expr struct {
	// n is the root node of the expression.
	n *node
	// names is the sorted list of variable names used in the expression.
	names []string
}

// Parse tokenizes and parses an expression. Errors are *LexError or
// *ParseError.
func Parse(src string) (*Expr, error) {
	toks, err := Tokenize(src)
	if err != nil {
		return nil, err
	}
	return ParseTokens(toks)
}

// ParseTokens parses an expression from tokens produced by Tokenize. If toks
// does not end with an EOF token, the end of the slice is treated as one.
func ParseTokens(toks []Token) (*Expr, error) {
	scan := &tokens{toks: toks}
	n, err := parseterm(scan, exprprec)
	if err != nil {
		return nil, err
	}
	tok := scan.next()
	if tok.Kind.isComparison() {
		rhs, err := parseterm(scan, exprprec)
		if err != nil {
			return nil, err
		}
		n = &node{kind: nodeCmp, pos: tok.Pos, cmp: tok.Kind, left: n, right: rhs}
		tok = scan.next()
		if tok.Kind.isComparison() {
			return nil, &ParseError{Col: tok.Pos, Msg: "comparisons cannot be chained"}
		}
	}
	if tok.Kind != TokenEOF {
		return nil, unexpected(tok, "after expression")
	}
	ex := Expr{n: n}
	ex.names = sortedUnique(n.names(nil))
	return &ex, nil
}

// sortedUnique sorts names and removes duplicates in place.
func sortedUnique(names []string) []string {
	if len(names) == 0 {
		return nil
	}
	sort.Strings(names)
	k := 1
	for _, s := range names[1:] {
		if s != names[k-1] {
			names[k] = s
			k++
		}
	}
	return names[:k]
}

// tokens is a stream of tokens for the parser.
type tokens struct {
	toks []Token
	k    int
}

// next scans the next token. Past the end of the slice, the result is an EOF
// token.
func (s *tokens) next() Token {
	if s.k >= len(s.toks) {
		s.k++
		pos := 0
		if len(s.toks) > 0 {
			last := s.toks[len(s.toks)-1]
			pos = last.Pos + len(last.Text)
		}
		return Token{Kind: TokenEOF, Pos: pos}
	}
	tok := s.toks[s.k]
	s.k++
	return tok
}

// push unreads the last token scanned.
func (s *tokens) push() {
	if s.k == 0 {
		panic("scaledexpr: push with no token")
	}
	s.k--
}

// parseterm parses operands joined by binary operators that bind more tightly
// than until. parseterm unreads the token that ends the term.
func parseterm(scan *tokens, until operator) (*node, error) {
	n, err := parselhs(scan, until)
	if err != nil {
		return nil, err
	}
	for {
		tok := scan.next()
		prec := binop(tok.Kind)
		if prec.op == nodeNone {
			// Comparison, close paren, EOF, or junk. The caller decides.
			scan.push()
			return n, nil
		}
		if !prec.moreBinding(until) {
			scan.push()
			return n, nil
		}
		rhs, err := parseterm(scan, prec)
		if err != nil {
			return nil, err
		}
		n = &node{kind: prec.op, pos: tok.Pos, left: n, right: rhs}
	}
}

// parselhs parses the first operand of a term, including any unary operators.
func parselhs(scan *tokens, until operator) (*node, error) {
	tok := scan.next()
	switch tok.Kind {
	case TokenInt:
		return parseint(tok)
	case TokenDecimal:
		return parsedecimal(scan, tok)
	case TokenIdent:
		return &node{kind: nodeName, pos: tok.Pos, text: tok.Text}, nil
	case TokenBound:
		return parsebound(tok)
	case TokenPlus, TokenMinus:
		prec := unop(tok.Kind)
		if !prec.moreBinding(until) {
			// 10**-x -> 10**(-x)
			// Just use the new operator's precedence to simplify.
			prec.prec, prec.right = until.prec, until.right
		}
		rhs, err := parseterm(scan, prec)
		if err != nil {
			return nil, err
		}
		return &node{kind: prec.op, pos: tok.Pos, left: rhs}, nil
	case TokenLParen:
		rhs, err := parseterm(scan, exprprec)
		if err != nil {
			return nil, err
		}
		end := scan.next()
		switch {
		case end.Kind == TokenRParen:
			return rhs, nil
		case end.Kind.isComparison():
			return nil, &ParseError{Col: end.Pos, Msg: "comparisons cannot be nested"}
		case end.Kind == TokenEOF:
			return nil, &ParseError{Col: end.Pos, Msg: "missing ) to close ( at " + strconv.Itoa(tok.Pos)}
		default:
			return nil, unexpected(end, "where ) was expected")
		}
	default:
		return nil, unexpected(tok, "where an operand was expected")
	}
}

// parseint creates a literal from an integer token. A token like 1e18 is a
// scale constant, one at 18 decimals. Other scientific literals like 5e3 are
// integers with no decimals.
func parseint(tok Token) (*node, error) {
	mant, exp, sci := strings.Cut(strings.ToLower(tok.Text), "e")
	v, ok := new(big.Int).SetString(mant, 10)
	if !ok {
		panic("scaledexpr: invalid integer token " + tok.String())
	}
	n := &node{kind: nodeNum, pos: tok.Pos, text: tok.Text, val: v}
	if !sci {
		n.plain = true
		return n, nil
	}
	e, err := parseexp(tok, exp)
	if err != nil {
		return nil, err
	}
	if mant == "1" {
		n.val = pow10(e)
		n.scale = e
		return n, nil
	}
	n.val.Mul(n.val, pow10(e))
	return n, nil
}

// isScaleConstant reports whether the text of an integer token is a scale
// constant, i.e. a scientific literal with mantissa exactly 1.
func isScaleConstant(text string) bool {
	mant, _, sci := strings.Cut(strings.ToLower(text), "e")
	return sci && mant == "1"
}

// parseexp parses the exponent of a scientific literal.
func parseexp(tok Token, exp string) (int, error) {
	if strings.HasPrefix(exp, "-") {
		return 0, &ParseError{Col: tok.Pos, Msg: "negative exponent in " + strconv.Quote(tok.Text) + "; use division instead"}
	}
	e, err := strconv.Atoi(strings.TrimPrefix(exp, "+"))
	if err != nil || e > maxExponent {
		return 0, &ParseError{Col: tok.Pos, Msg: "exponent too large in " + strconv.Quote(tok.Text)}
	}
	return e, nil
}

// parsedecimal parses a decimal literal, which must be followed by a
// multiplication by a scale constant with at least as many decimals as the
// literal has fractional digits. The pair becomes one literal.
func parsedecimal(scan *tokens, tok Token) (*node, error) {
	const need = "must be multiplied by a scale constant like 1e18"
	star := scan.next()
	if star.Kind != TokenStar {
		return nil, &ParseError{Col: tok.Pos, Msg: "decimal literal " + strconv.Quote(tok.Text) + " " + need}
	}
	sc := scan.next()
	if sc.Kind != TokenInt || !isScaleConstant(sc.Text) {
		return nil, &ParseError{Col: tok.Pos, Msg: "decimal literal " + strconv.Quote(tok.Text) + " " + need}
	}
	c, err := parseint(sc)
	if err != nil {
		return nil, err
	}
	whole, frac, _ := strings.Cut(tok.Text, ".")
	if len(frac) > c.scale {
		return nil, &ParseError{
			Col: sc.Pos,
			Msg: "scale constant " + strconv.Quote(sc.Text) + " has " + strconv.Itoa(c.scale) +
				" decimals, too few for the " + strconv.Itoa(len(frac)) + " decimal places of " + strconv.Quote(tok.Text),
		}
	}
	v, ok := new(big.Int).SetString(whole+frac, 10)
	if !ok {
		panic("scaledexpr: invalid decimal token " + tok.String())
	}
	v.Mul(v, pow10(c.scale-len(frac)))
	return &node{kind: nodeNum, pos: tok.Pos, text: tok.Text + " * " + sc.Text, val: v, scale: c.scale}, nil
}

// parsebound creates a literal from a bound token like type(uint8).max.
func parsebound(tok Token) (*node, error) {
	inner, bound, ok := strings.Cut(strings.TrimPrefix(tok.Text, "type("), ").")
	if !ok {
		panic("scaledexpr: invalid bound token " + tok.String())
	}
	t, err := ParseIntType(inner)
	if err != nil {
		// The lexer only produces supported types.
		panic("scaledexpr: invalid bound token " + tok.String() + ": " + err.Error())
	}
	n := &node{kind: nodeBound, pos: tok.Pos, text: tok.Text, typ: t}
	switch bound {
	case "max":
		n.val = t.Max()
	case "min":
		n.val = t.Min()
	default:
		panic("scaledexpr: invalid bound token " + tok.String())
	}
	return n, nil
}

// unexpected returns an error for a token that cannot appear where it did.
func unexpected(tok Token, where string) error {
	if tok.Kind == TokenEOF {
		return &ParseError{Col: tok.Pos, Msg: "unexpected end of input " + where}
	}
	return &ParseError{Col: tok.Pos, Msg: "unexpected " + strconv.Quote(tok.Text) + " " + where}
}

// Vars returns the sorted names of the variables used in the expression.
func (e *Expr) Vars() []string {
	return append(([]string)(nil), e.names...)
}

// Types returns the integer types whose bounds the expression uses, in the
// order evaluation reaches them.
func (e *Expr) Types() []IntType {
	return e.n.bounds(nil)
}

// IsComparison reports whether the expression is a comparison, so that
// evaluating it produces a boolean.
func (e *Expr) IsComparison() bool {
	return e.n.kind == nodeCmp
}

// String creates a string representation of the parsed expression, with
// alternating round and square brackets grouping each term.
func (e *Expr) String() string {
	return e.n.String()
}

type operator struct {
	// prec is the precedence value. Higher is more binding.
	prec int8
	// right indicates right-associativity.
	right bool
	// op is the node kind to use when this operator is selected.
	op nodeKind
}

func (p operator) moreBinding(than operator) bool {
	if p.prec != than.prec {
		return p.prec > than.prec
	}
	return p.right
}

// binop gets a binary operator for a token kind. If there is no such binary
// operator, then the result has an op of nodeNone.
func binop(k TokenKind) operator {
	switch k {
	case TokenPlus:
		return operator{1, false, nodeAdd}
	case TokenMinus:
		return operator{1, false, nodeSub}
	case TokenStar:
		return operator{5, false, nodeMul}
	case TokenSlash:
		return operator{5, false, nodeDiv}
	case TokenPow:
		return operator{15, true, nodePow}
	default:
		return operator{}
	}
}

// unop gets a unary operator for a token kind. If there is no such unary
// operator, then the result has an op of nodeNone.
func unop(k TokenKind) operator {
	switch k {
	case TokenPlus:
		return operator{10, true, nodeNop}
	case TokenMinus:
		return operator{10, true, nodeNeg}
	default:
		return operator{}
	}
}

// exprprec is the precedence required to parse an entire subexpression.
var exprprec = operator{-128, true, nodeNone}
