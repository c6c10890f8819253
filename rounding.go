package scaledexpr

import (
	"errors"
	"math/big"
	"strconv"
)

// RoundingMode selects how division discards remainders.
type RoundingMode int8

const (
	// Floor rounds quotients toward negative infinity. It is the default.
	Floor RoundingMode = iota
	// Ceil rounds quotients toward positive infinity.
	Ceil
)

func (m RoundingMode) String() string {
	switch m {
	case Floor:
		return "floor"
	case Ceil:
		return "ceil"
	default:
		return "RoundingMode(" + strconv.Itoa(int(m)) + ")"
	}
}

// ParseRoundingMode parses "floor" or "ceil".
func ParseRoundingMode(s string) (RoundingMode, error) {
	switch s {
	case "floor":
		return Floor, nil
	case "ceil":
		return Ceil, nil
	default:
		return 0, errors.New("scaledexpr: unknown rounding mode " + strconv.Quote(s) + ", want floor or ceil")
	}
}

// lossDigits is the minimum number of fractional digits in precision loss
// strings.
const lossDigits = 50

// FloorDivide returns a/b rounded toward negative infinity. Panics if b is 0.
func FloorDivide(a, b *big.Int) *big.Int {
	q, r := new(big.Int).QuoRem(a, b, new(big.Int))
	if r.Sign() != 0 && (a.Sign() < 0) != (b.Sign() < 0) {
		q.Sub(q, big.NewInt(1))
	}
	return q
}

// CeilDivide returns a/b rounded toward positive infinity. Panics if b is 0.
func CeilDivide(a, b *big.Int) *big.Int {
	q, r := new(big.Int).QuoRem(a, b, new(big.Int))
	if r.Sign() != 0 && (a.Sign() < 0) == (b.Sign() < 0) {
		q.Add(q, big.NewInt(1))
	}
	return q
}

// divide returns a/b rounded according to mode, along with the remainder of
// floor division, a - floor(a/b)*b, which has the sign of b.
func divide(a, b *big.Int, mode RoundingMode) (q, rem *big.Int) {
	f := FloorDivide(a, b)
	rem = new(big.Int).Mul(f, b)
	rem.Sub(a, rem)
	if mode == Ceil {
		return CeilDivide(a, b), rem
	}
	return f, rem
}

// RoundingLoss returns the amount a division discards, as a fraction of one
// unit of the quotient. rem is the remainder of floor division, having the
// sign of div. Under Floor, the loss is rem/div, which is never negative;
// under Ceil, it is -(div-rem)/div, which is never positive. The loss is "0"
// exactly when rem is 0.
func RoundingLoss(rem, div *big.Int, mode RoundingMode) string {
	return roundingLoss(rem, div, mode, 0)
}

// roundingLoss is RoundingLoss for a quotient at the given scale, so that the
// loss is expressed in the same units as the quotient's value.
func roundingLoss(rem, div *big.Int, mode RoundingMode, scale int) string {
	if rem.Sign() == 0 {
		return "0"
	}
	num := new(big.Int).Set(rem)
	if mode == Ceil {
		num.Sub(num, div)
	}
	den := new(big.Int).Set(div)
	digits := lossDigits
	switch {
	case scale > 0:
		den.Mul(den, pow10(scale))
		digits += scale
	case scale < 0:
		num.Mul(num, pow10(-scale))
	}
	return formatFrac(num, den, digits)
}

// ApplyRounding converts v from one scale to another. Increasing the scale is
// exact; decreasing it divides by a power of ten rounding according to mode.
func ApplyRounding(v *big.Int, from, to int, mode RoundingMode) *big.Int {
	if to >= from {
		return rescale(v, from, to)
	}
	q, _ := divide(v, pow10(from-to), mode)
	return q
}
