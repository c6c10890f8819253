package scaledexpr

import (
	"math/big"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

func TestFormatScaled(t *testing.T) {
	cases := []struct {
		v     int64
		scale int
		want  string
	}{
		{0, 0, "0"},
		{7, 0, "7"},
		{-7, 0, "-7"},
		{5, -3, "5000"},
		{-5, -2, "-500"},
		{0, -2, "0"},
		{1500000, 6, "1.500000"},
		{1, 6, "0.000001"},
		{-1, 6, "-0.000001"},
		{123, 3, "0.123"},
		{1000, 3, "1.000"},
		{0, 2, "0.00"},
		{-123456, 2, "-1234.56"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, FormatScaled(big.NewInt(c.v), c.scale), "FormatScaled(%d, %d)", c.v, c.scale)
		assert.Equal(t, c.want, Scaled{Value: big.NewInt(c.v), Scale: c.scale}.String())
	}
}

func TestLift(t *testing.T) {
	one := func(scale int) Scaled { return Scaled{Value: big.NewInt(1), Scale: scale} }
	cases := []struct {
		name   string
		l, r   Scaled
		ll, rl bool
		lv, rv int64
		ls, rs int
	}{
		{"right", one(3), one(0), false, true, 1, 1000, 3, 3},
		{"left", one(0), one(2), true, false, 100, 1, 2, 2},
		{"not-literal", one(3), one(0), false, false, 1, 1, 3, 0},
		{"both-zero", one(0), one(0), true, true, 1, 1, 0, 0},
		{"negative-scale", one(-2), one(0), false, true, 1, 1, -2, 0},
		{"scaled-literal", one(3), one(1), true, true, 1, 1, 3, 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			l, r := lift(c.l, c.r, c.ll, c.rl)
			assert.Equal(t, c.lv, l.Value.Int64())
			assert.Equal(t, c.rv, r.Value.Int64())
			assert.Equal(t, c.ls, l.Scale)
			assert.Equal(t, c.rs, r.Scale)
			// Operands are never modified in place.
			assert.Equal(t, int64(1), c.l.Value.Int64())
			assert.Equal(t, int64(1), c.r.Value.Int64())
		})
	}
}

func TestScaleProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	scales := gen.IntRange(-100, 100)

	properties.Property("division undoes multiplication", prop.ForAll(
		func(l, r int) bool {
			return DivScale(MulScale(l, r), r) == l
		},
		scales,
		scales,
	))

	properties.Property("addition requires equal scales", prop.ForAll(
		func(l, r int) bool {
			s, ok := AddScale(l, r)
			if l == r {
				return ok && s == l
			}
			return !ok
		},
		scales,
		scales,
	))

	properties.Property("formatting keeps every digit", prop.ForAll(
		func(v int64, scale int) bool {
			x := big.NewInt(v)
			s := FormatScaled(x, scale)
			if strings.Count(s, ".") != 1 || len(s)-strings.Index(s, ".")-1 != scale {
				return false
			}
			back, ok := new(big.Int).SetString(strings.Replace(s, ".", "", 1), 10)
			return ok && back.Cmp(x) == 0
		},
		gen.Int64(),
		gen.IntRange(1, 40),
	))

	properties.Property("rescaling is exact", prop.ForAll(
		func(v int64, from, by int) bool {
			x := big.NewInt(v)
			up := rescale(x, from, from+by)
			q, rem := divide(up, pow10(by), Floor)
			return rem.Sign() == 0 && q.Cmp(x) == 0
		},
		gen.Int64(),
		scales,
		gen.IntRange(0, 40),
	))

	properties.TestingRun(t)
}
