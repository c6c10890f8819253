package scaledexpr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLex(t *testing.T) {
	tok := func(k TokenKind, text string, pos int) Token {
		return Token{Kind: k, Text: text, Pos: pos}
	}
	cases := []struct {
		src    string
		tokens []Token
	}{
		// spaces
		{"", []Token{tok(TokenEOF, "", 0)}},
		{" \t \r\n ", []Token{tok(TokenEOF, "", 6)}},
		// numbers
		{"0", []Token{tok(TokenInt, "0", 0), tok(TokenEOF, "", 1)}},
		{"9876543210", []Token{tok(TokenInt, "9876543210", 0), tok(TokenEOF, "", 10)}},
		{"1 0", []Token{tok(TokenInt, "1", 0), tok(TokenInt, "0", 2), tok(TokenEOF, "", 3)}},
		{"1e18", []Token{tok(TokenInt, "1e18", 0), tok(TokenEOF, "", 4)}},
		{"1E6", []Token{tok(TokenInt, "1E6", 0), tok(TokenEOF, "", 3)}},
		{"5e+3", []Token{tok(TokenInt, "5e+3", 0), tok(TokenEOF, "", 4)}},
		{"5e-3", []Token{tok(TokenInt, "5e-3", 0), tok(TokenEOF, "", 4)}},
		{"8.5", []Token{tok(TokenDecimal, "8.5", 0), tok(TokenEOF, "", 3)}},
		{"0.000001", []Token{tok(TokenDecimal, "0.000001", 0), tok(TokenEOF, "", 8)}},
		{"1-2", []Token{tok(TokenInt, "1", 0), tok(TokenMinus, "-", 1), tok(TokenInt, "2", 2), tok(TokenEOF, "", 3)}},
		// identifiers
		{"x", []Token{tok(TokenIdent, "x", 0), tok(TokenEOF, "", 1)}},
		{"_a1_B2", []Token{tok(TokenIdent, "_a1_B2", 0), tok(TokenEOF, "", 6)}},
		{"e1", []Token{tok(TokenIdent, "e1", 0), tok(TokenEOF, "", 2)}},
		{"type", []Token{tok(TokenIdent, "type", 0), tok(TokenEOF, "", 4)}},
		{"types", []Token{tok(TokenIdent, "types", 0), tok(TokenEOF, "", 5)}},
		{"type(x)", []Token{
			tok(TokenIdent, "type", 0), tok(TokenLParen, "(", 4), tok(TokenIdent, "x", 5), tok(TokenRParen, ")", 6), tok(TokenEOF, "", 7),
		}},
		// bounds
		{"type(uint8).max", []Token{tok(TokenBound, "type(uint8).max", 0), tok(TokenEOF, "", 15)}},
		{"type(int16).min", []Token{tok(TokenBound, "type(int16).min", 0), tok(TokenEOF, "", 15)}},
		{"type(uint).max", []Token{tok(TokenBound, "type(uint256).max", 0), tok(TokenEOF, "", 14)}},
		{"type(int).min", []Token{tok(TokenBound, "type(int256).min", 0), tok(TokenEOF, "", 13)}},
		{"1+type(uint8).max", []Token{tok(TokenInt, "1", 0), tok(TokenPlus, "+", 1), tok(TokenBound, "type(uint8).max", 2), tok(TokenEOF, "", 17)}},
		// operators
		{"+-*/", []Token{tok(TokenPlus, "+", 0), tok(TokenMinus, "-", 1), tok(TokenStar, "*", 2), tok(TokenSlash, "/", 3), tok(TokenEOF, "", 4)}},
		{"***", []Token{tok(TokenPow, "**", 0), tok(TokenStar, "*", 2), tok(TokenEOF, "", 3)}},
		{"()", []Token{tok(TokenLParen, "(", 0), tok(TokenRParen, ")", 1), tok(TokenEOF, "", 2)}},
		{"== != <= >= < >", []Token{
			tok(TokenEq, "==", 0), tok(TokenNe, "!=", 3), tok(TokenLe, "<=", 6), tok(TokenGe, ">=", 9),
			tok(TokenLt, "<", 12), tok(TokenGt, ">", 14), tok(TokenEOF, "", 15),
		}},
		{"a<=b", []Token{tok(TokenIdent, "a", 0), tok(TokenLe, "<=", 1), tok(TokenIdent, "b", 3), tok(TokenEOF, "", 4)}},
	}
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			toks, err := Tokenize(c.src)
			require.NoError(t, err)
			assert.Equal(t, c.tokens, toks)
		})
	}
}

func TestLexErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		pos  int
	}{
		{"dollar", "$", 0},
		{"after-ident", "a $", 2},
		{"lone-eq", "a = b", 2},
		{"lone-bang", "!a", 0},
		{"unicode", "1 × 2", 2},
		{"exp-no-digits", "1e", 0},
		{"exp-sign-no-digits", "1e+", 0},
		{"exp-letter", "12ex", 0},
		{"dot-no-digits", "8.", 0},
		{"leading-dot", ".5", 0},
		{"decimal-sci", "8.5e3", 0},
		{"bound-width", "type(uint7).max", 0},
		{"bound-zero", "type(int0).min", 0},
		{"bound-wide", "type(uint264).max", 0},
		{"bound-late", "2 * type(int300).max", 4},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			toks, err := Tokenize(c.src)
			require.Error(t, err)
			assert.Nil(t, toks)
			var lerr *LexError
			require.True(t, errors.As(err, &lerr), "%#v is not a *LexError", err)
			assert.Equal(t, c.pos, lerr.Pos())
			assert.Equal(t, KindLex, lerr.Kind())
		})
	}
}
