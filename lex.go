package scaledexpr

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// Token is a lexical token of an expression.
type Token struct {
	// Kind is the kind of token.
	Kind TokenKind
	// Text is the source text of the token. For bound tokens, it is the
	// normalized bound expression, e.g. type(uint256).max for type(uint).max.
	Text string
	// Pos is the byte offset of the start of the token in the source.
	Pos int
}

func (t Token) String() string {
	return t.Kind.String() + ":" + t.Text + "@" + strconv.Itoa(t.Pos)
}

// TokenKind is the kind of a lexical token.
type TokenKind int8

const (
	tokenNone TokenKind = iota
	// TokenEOF indicates the end of the input.
	TokenEOF
	// TokenInt is an integer literal, possibly in scientific notation.
	TokenInt
	// TokenDecimal is a literal with a decimal point, e.g. 8.5. The parser
	// only accepts it when a scale constant multiplication absorbs it.
	TokenDecimal
	// TokenIdent is a variable name.
	TokenIdent
	// TokenBound is the bound of a bounded integer type, e.g. type(uint8).max.
	TokenBound

	TokenPlus   // +
	TokenMinus  // -
	TokenStar   // *
	TokenSlash  // /
	TokenPow    // **
	TokenLParen // (
	TokenRParen // )

	TokenEq // ==
	TokenNe // !=
	TokenLt // <
	TokenLe // <=
	TokenGt // >
	TokenGe // >=
)

var tokenNames = [...]string{
	tokenNone:    "None",
	TokenEOF:     "EOF",
	TokenInt:     "Int",
	TokenDecimal: "Decimal",
	TokenIdent:   "Ident",
	TokenBound:   "Bound",
	TokenPlus:    "Plus",
	TokenMinus:   "Minus",
	TokenStar:    "Star",
	TokenSlash:   "Slash",
	TokenPow:     "Pow",
	TokenLParen:  "LParen",
	TokenRParen:  "RParen",
	TokenEq:      "Eq",
	TokenNe:      "Ne",
	TokenLt:      "Lt",
	TokenLe:      "Le",
	TokenGt:      "Gt",
	TokenGe:      "Ge",
}

func (k TokenKind) String() string {
	if k < 0 || int(k) >= len(tokenNames) {
		return "TokenKind(" + strconv.Itoa(int(k)) + ")"
	}
	return tokenNames[k]
}

// isComparison reports whether the token kind is a comparison operator.
func (k TokenKind) isComparison() bool {
	return TokenEq <= k && k <= TokenGe
}

type lexer struct {
	src string
	off int
	buf strings.Builder
}

func lex(src string) *lexer {
	return &lexer{src: src}
}

// Tokenize splits an expression into tokens. The last token always has kind
// TokenEOF. If the source contains an invalid token, the error is a
// *LexError.
func Tokenize(src string) ([]Token, error) {
	l := lex(src)
	var toks []Token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Kind == TokenEOF {
			return toks, nil
		}
	}
}

// peek returns the byte at offset k from the current position, or 0 past the
// end of the input.
func (l *lexer) peek(k int) byte {
	if l.off+k >= len(l.src) {
		return 0
	}
	return l.src[l.off+k]
}

// next scans the next token from the input. At the end of the input, next
// returns an EOF token every time it is called.
func (l *lexer) next() (Token, error) {
	defer l.buf.Reset()
	for l.off < len(l.src) {
		switch l.src[l.off] {
		case ' ', '\t', '\n', '\r':
			l.off++
			continue
		}
		break
	}
	tok := Token{Pos: l.off}
	if l.off >= len(l.src) {
		tok.Kind = TokenEOF
		return tok, nil
	}
	c := l.src[l.off]
	switch {
	case isDigit(c):
		kind, err := l.scanNum()
		if err != nil {
			return tok, err
		}
		tok.Kind = kind
		tok.Text = l.buf.String()
		return tok, nil
	case c == '_', isLetter(c):
		if c == 't' {
			text, ok, err := l.scanBound()
			if err != nil {
				return tok, err
			}
			if ok {
				tok.Kind = TokenBound
				tok.Text = text
				return tok, nil
			}
		}
		l.scanIdent()
		tok.Kind = TokenIdent
		tok.Text = l.buf.String()
		return tok, nil
	}
	// Operators. Two-character forms take precedence over their prefixes.
	two := l.src[l.off:min(l.off+2, len(l.src))]
	switch two {
	case "**":
		tok.Kind = TokenPow
	case "==":
		tok.Kind = TokenEq
	case "!=":
		tok.Kind = TokenNe
	case "<=":
		tok.Kind = TokenLe
	case ">=":
		tok.Kind = TokenGe
	}
	if tok.Kind != tokenNone {
		tok.Text = two
		l.off += 2
		return tok, nil
	}
	switch c {
	case '+':
		tok.Kind = TokenPlus
	case '-':
		tok.Kind = TokenMinus
	case '*':
		tok.Kind = TokenStar
	case '/':
		tok.Kind = TokenSlash
	case '(':
		tok.Kind = TokenLParen
	case ')':
		tok.Kind = TokenRParen
	case '<':
		tok.Kind = TokenLt
	case '>':
		tok.Kind = TokenGt
	default:
		// Write the whole rune so that it shows up in the error message.
		r, sz := utf8.DecodeRuneInString(l.src[l.off:])
		l.buf.WriteRune(r)
		err := l.error("", "unrecognized character "+strconv.QuoteRune(r))
		l.off += sz
		return tok, err
	}
	tok.Text = string(c)
	l.off++
	return tok, nil
}

// scanNum scans an integer, an integer in scientific notation, or a decimal
// literal, and returns the kind of token scanned.
func (l *lexer) scanNum() (TokenKind, error) {
	start := l.off
	for isDigit(l.peek(0)) {
		l.buf.WriteByte(l.src[l.off])
		l.off++
	}
	kind := TokenInt
	if l.peek(0) == '.' {
		l.buf.WriteByte('.')
		l.off++
		if !isDigit(l.peek(0)) {
			return tokenNone, l.errorAt(start, "number", "missing digits after decimal point")
		}
		for isDigit(l.peek(0)) {
			l.buf.WriteByte(l.src[l.off])
			l.off++
		}
		kind = TokenDecimal
	}
	if c := l.peek(0); c == 'e' || c == 'E' {
		if kind == TokenDecimal {
			return tokenNone, l.errorAt(start, "number", "decimal literal in scientific notation")
		}
		l.buf.WriteByte(c)
		l.off++
		if c := l.peek(0); c == '+' || c == '-' {
			l.buf.WriteByte(c)
			l.off++
		}
		if !isDigit(l.peek(0)) {
			return tokenNone, l.errorAt(start, "number", "missing exponent digits")
		}
		for isDigit(l.peek(0)) {
			l.buf.WriteByte(l.src[l.off])
			l.off++
		}
	}
	return kind, nil
}

func (l *lexer) scanIdent() {
	for {
		c := l.peek(0)
		if c != '_' && !isLetter(c) && !isDigit(c) {
			return
		}
		l.buf.WriteByte(c)
		l.off++
	}
}

// scanBound attempts to scan type(intN).max or type(intN).min. If the input
// does not have that shape, scanBound consumes nothing and returns false with
// no error. If it does but names an unsupported width, the error is a
// *LexError.
func (l *lexer) scanBound() (string, bool, error) {
	s := l.src[l.off:]
	if !strings.HasPrefix(s, "type(") {
		return "", false, nil
	}
	k := len("type(")
	signed := true
	if k < len(s) && s[k] == 'u' {
		signed = false
		k++
	}
	if !strings.HasPrefix(s[k:], "int") {
		return "", false, nil
	}
	k += len("int")
	d := k
	for k < len(s) && isDigit(s[k]) {
		k++
	}
	digits := s[d:k]
	if !strings.HasPrefix(s[k:], ").") {
		return "", false, nil
	}
	k += len(").")
	var bound string
	switch {
	case strings.HasPrefix(s[k:], "max"):
		bound = "max"
	case strings.HasPrefix(s[k:], "min"):
		bound = "min"
	default:
		return "", false, nil
	}
	k += len(bound)
	if k < len(s) && (s[k] == '_' || isLetter(s[k]) || isDigit(s[k])) {
		// e.g. type(uint8).maximum
		return "", false, nil
	}
	bits := 256
	if digits != "" {
		n, err := strconv.Atoi(digits)
		if err != nil || n < 8 || n > 256 || n%8 != 0 {
			l.buf.WriteString(s[:k])
			return "", false, l.error("bound", "unsupported bit width "+digits)
		}
		bits = n
	}
	l.off += k
	t := IntType{Signed: signed, Bits: bits}
	return "type(" + t.String() + ")." + bound, true, nil
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isLetter(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

func (l *lexer) error(scanning, reason string) error {
	return l.errorAt(l.off, scanning, reason)
}

func (l *lexer) errorAt(pos int, scanning, reason string) error {
	return &LexError{
		Text:     l.buf.String(),
		Scanning: scanning,
		Reason:   reason,
		Col:      pos,
	}
}
