package scaledexpr

import (
	"math/big"
	"strings"
)

// Scaled is an integer with a decimal scale. The number it represents is
// Value / 10^Scale. Computed values may have negative scales.
type Scaled struct {
	Value *big.Int
	Scale int
}

func (s Scaled) String() string {
	return FormatScaled(s.Value, s.Scale)
}

// MulScale returns the scale of a product of values with scales l and r.
func MulScale(l, r int) int {
	return l + r
}

// DivScale returns the scale of a quotient of values with scales l and r. The
// result is negative when the divisor has more decimals than the dividend.
func DivScale(l, r int) int {
	return l - r
}

// AddScale returns the scale of a sum or difference of values with scales l
// and r. Values can only be added at the same scale, so ok is false if l != r.
func AddScale(l, r int) (scale int, ok bool) {
	return l, l == r
}

// lift raises the scale of a bare integer literal to match the other operand
// of + or -, so that x + 1 adds one unit at x's precision. Only literals with
// scale 0 are lifted, and only to positive scales.
func lift(l, r Scaled, lliteral, rliteral bool) (Scaled, Scaled) {
	switch {
	case lliteral && l.Scale == 0 && r.Scale > 0:
		l = Scaled{Value: new(big.Int).Mul(l.Value, pow10(r.Scale)), Scale: r.Scale}
	case rliteral && r.Scale == 0 && l.Scale > 0:
		r = Scaled{Value: new(big.Int).Mul(r.Value, pow10(l.Scale)), Scale: l.Scale}
	}
	return l, r
}

// pow10 returns 10^n for n >= 0.
func pow10(n int) *big.Int {
	if n < 0 {
		panic("scaledexpr: negative power of ten")
	}
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
}

// rescale returns v at scale to, given that it is at scale from and from <=
// to. The result is exact.
func rescale(v *big.Int, from, to int) *big.Int {
	return new(big.Int).Mul(v, pow10(to-from))
}

// FormatScaled renders v at the given scale as a decimal string. Positive
// scales insert a decimal point that many digits from the right, keeping
// trailing zeros. Negative scales render an integer with that many zeros
// appended.
func FormatScaled(v *big.Int, scale int) string {
	if scale <= 0 {
		return new(big.Int).Mul(v, pow10(-scale)).String()
	}
	digits := new(big.Int).Abs(v).String()
	if len(digits) <= scale {
		digits = strings.Repeat("0", scale-len(digits)+1) + digits
	}
	var b strings.Builder
	if v.Sign() < 0 {
		b.WriteByte('-')
	}
	k := len(digits) - scale
	b.WriteString(digits[:k])
	b.WriteByte('.')
	b.WriteString(digits[k:])
	return b.String()
}

// formatFrac renders num/den as a decimal string truncated toward zero after
// the given number of fractional digits, without trailing zeros.
func formatFrac(num, den *big.Int, digits int) string {
	if den.Sign() == 0 {
		panic("scaledexpr: zero denominator")
	}
	n := new(big.Int).Abs(num)
	d := new(big.Int).Abs(den)
	neg := num.Sign()*den.Sign() < 0
	whole, rem := new(big.Int).QuoRem(n, d, new(big.Int))
	frac := rem.Mul(rem, pow10(digits))
	frac.Quo(frac, d)
	var b strings.Builder
	if neg && (whole.Sign() != 0 || frac.Sign() != 0) {
		b.WriteByte('-')
	}
	b.WriteString(whole.String())
	if frac.Sign() != 0 {
		f := frac.String()
		f = strings.Repeat("0", digits-len(f)) + f
		b.WriteByte('.')
		b.WriteString(strings.TrimRight(f, "0"))
	}
	return b.String()
}
