package scaledexpr

import (
	"errors"
	"math/big"
	"strconv"
	"strings"
)

// IntType is a fixed-width integer type of the 256-bit machine, e.g. uint8 or
// int256. It is used only to check results against its bounds; values are
// never represented in it.
type IntType struct {
	// Signed is whether the type is two's-complement signed.
	Signed bool
	// Bits is the width of the type, a multiple of 8 from 8 through 256.
	Bits int
}

// ParseIntType parses a type name like uint8, int256, or uint. A name with no
// width has 256 bits.
func ParseIntType(name string) (IntType, error) {
	t := IntType{Signed: true, Bits: 256}
	s := name
	if strings.HasPrefix(s, "u") {
		t.Signed = false
		s = s[1:]
	}
	if !strings.HasPrefix(s, "int") {
		return IntType{}, errors.New("scaledexpr: invalid integer type " + strconv.Quote(name))
	}
	s = s[len("int"):]
	if s == "" {
		return t, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || s[0] == '+' || s[0] == '-' {
		return IntType{}, errors.New("scaledexpr: invalid integer type " + strconv.Quote(name))
	}
	t.Bits = n
	if !t.valid() {
		return IntType{}, errors.New("scaledexpr: unsupported width in integer type " + strconv.Quote(name))
	}
	return t, nil
}

func (t IntType) valid() bool {
	return 8 <= t.Bits && t.Bits <= 256 && t.Bits%8 == 0
}

func (t IntType) String() string {
	s := "int" + strconv.Itoa(t.Bits)
	if !t.Signed {
		s = "u" + s
	}
	return s
}

// MarshalText encodes the type as its name.
func (t IntType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText parses a type name.
func (t *IntType) UnmarshalText(text []byte) error {
	u, err := ParseIntType(string(text))
	if err != nil {
		return err
	}
	*t = u
	return nil
}

// modulus returns 2^Bits.
func (t IntType) modulus() *big.Int {
	return new(big.Int).Lsh(big.NewInt(1), uint(t.Bits))
}

// Max returns the largest value of the type.
func (t IntType) Max() *big.Int {
	bits := t.Bits
	if t.Signed {
		bits--
	}
	r := new(big.Int).Lsh(big.NewInt(1), uint(bits))
	return r.Sub(r, big.NewInt(1))
}

// Min returns the smallest value of the type.
func (t IntType) Min() *big.Int {
	if !t.Signed {
		return new(big.Int)
	}
	r := new(big.Int).Lsh(big.NewInt(1), uint(t.Bits-1))
	return r.Neg(r)
}

// Contains reports whether v is within the bounds of the type.
func (t IntType) Contains(v *big.Int) bool {
	return v.Cmp(t.Min()) >= 0 && v.Cmp(t.Max()) <= 0
}

// Wrap returns the value v takes when truncated to the type's width, as the
// machine does on overflow.
func (t IntType) Wrap(v *big.Int) *big.Int {
	m := t.modulus()
	// big.Int.Mod is Euclidean, so the result is already in [0, 2^Bits).
	r := new(big.Int).Mod(v, m)
	if t.Signed && r.Cmp(new(big.Int).Rsh(m, 1)) >= 0 {
		r.Sub(r, m)
	}
	return r
}

// OverflowKind describes which bound of a type a result exceeded.
type OverflowKind int8

const (
	// Overflowed means the result was greater than the type's maximum.
	Overflowed OverflowKind = iota + 1
	// Underflowed means the result was less than the type's minimum.
	Underflowed
)

func (k OverflowKind) String() string {
	switch k {
	case Overflowed:
		return "overflow"
	case Underflowed:
		return "underflow"
	default:
		return "OverflowKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// MarshalText encodes the kind as "overflow" or "underflow".
func (k OverflowKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Overflow is a warning that an integer result is outside the bounds of an
// integer type used in its expression.
type Overflow struct {
	// Type is the integer type whose bounds were exceeded.
	Type IntType `json:"type"`
	// Kind tells whether the result was above or below the bounds.
	Kind OverflowKind `json:"kind"`
	// Wrapped is the value the type would hold after wrapping.
	Wrapped *big.Int `json:"wrapped"`
}

func (o *Overflow) String() string {
	return o.Type.String() + " " + o.Kind.String() + " (wraps to " + o.Wrapped.String() + ")"
}

// checkBounds returns a warning for the first type in types whose bounds do
// not contain v, or nil if all do.
func checkBounds(v *big.Int, types []IntType) *Overflow {
	for _, t := range types {
		switch {
		case v.Cmp(t.Max()) > 0:
			return &Overflow{Type: t, Kind: Overflowed, Wrapped: t.Wrap(v)}
		case v.Cmp(t.Min()) < 0:
			return &Overflow{Type: t, Kind: Underflowed, Wrapped: t.Wrap(v)}
		}
	}
	return nil
}
