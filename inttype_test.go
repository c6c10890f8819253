package scaledexpr

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIntType(t *testing.T) {
	cases := []struct {
		name string
		want IntType
	}{
		{"uint8", IntType{Bits: 8}},
		{"int8", IntType{Signed: true, Bits: 8}},
		{"uint", IntType{Bits: 256}},
		{"int", IntType{Signed: true, Bits: 256}},
		{"uint128", IntType{Bits: 128}},
		{"int256", IntType{Signed: true, Bits: 256}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := ParseIntType(c.name)
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
			if c.name != "uint" && c.name != "int" {
				assert.Equal(t, c.name, got.String())
			}
		})
	}
	for _, bad := range []string{"", "u", "uint7", "int0", "uint264", "int-8", "int+8", "uint 8", "float64", "Uint8"} {
		_, err := ParseIntType(bad)
		assert.Error(t, err, "%q parsed", bad)
	}
}

func TestIntTypeBounds(t *testing.T) {
	cases := []struct {
		typ      IntType
		min, max string
	}{
		{IntType{Bits: 8}, "0", "255"},
		{IntType{Signed: true, Bits: 8}, "-128", "127"},
		{IntType{Bits: 64}, "0", "18446744073709551615"},
		{IntType{Signed: true, Bits: 256},
			"-57896044618658097711785492504343953926634992332820282019728792003956564819968",
			"57896044618658097711785492504343953926634992332820282019728792003956564819967"},
	}
	for _, c := range cases {
		t.Run(c.typ.String(), func(t *testing.T) {
			assert.Equal(t, c.min, c.typ.Min().String())
			assert.Equal(t, c.max, c.typ.Max().String())
			assert.True(t, c.typ.Contains(c.typ.Min()))
			assert.True(t, c.typ.Contains(c.typ.Max()))
			assert.False(t, c.typ.Contains(new(big.Int).Add(c.typ.Max(), big.NewInt(1))))
			assert.False(t, c.typ.Contains(new(big.Int).Sub(c.typ.Min(), big.NewInt(1))))
		})
	}
}

func TestWrap(t *testing.T) {
	u8 := IntType{Bits: 8}
	i8 := IntType{Signed: true, Bits: 8}
	cases := []struct {
		typ  IntType
		v    int64
		want int64
	}{
		{u8, 256, 0},
		{u8, 257, 1},
		{u8, -1, 255},
		{u8, 511, 255},
		{u8, 100, 100},
		{i8, 128, -128},
		{i8, 255, -1},
		{i8, -129, 127},
		{i8, -128, -128},
		{i8, 256, 0},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, c.typ.Wrap(big.NewInt(c.v)).Int64(), "%v wrap %d", c.typ, c.v)
	}
}

func TestWrapProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	widths := gen.IntRange(1, 32).Map(func(k int) int { return 8 * k })

	properties.Property("wrapped values are within bounds", prop.ForAll(
		func(v int64, bits int, signed bool) bool {
			typ := IntType{Signed: signed, Bits: bits}
			x := new(big.Int).Lsh(big.NewInt(v), uint(bits/2))
			return typ.Contains(typ.Wrap(x))
		},
		gen.Int64(),
		widths,
		gen.Bool(),
	))

	properties.Property("wrapping is congruent modulo the width", prop.ForAll(
		func(v int64, bits int, signed bool) bool {
			typ := IntType{Signed: signed, Bits: bits}
			x := new(big.Int).Lsh(big.NewInt(v), uint(bits/2))
			d := new(big.Int).Sub(x, typ.Wrap(x))
			return d.Mod(d, typ.modulus()).Sign() == 0
		},
		gen.Int64(),
		widths,
		gen.Bool(),
	))

	properties.Property("values in bounds are unchanged", prop.ForAll(
		func(v int64, bits int, signed bool) bool {
			typ := IntType{Signed: signed, Bits: bits}
			x := big.NewInt(v)
			if !typ.Contains(x) {
				return true
			}
			return typ.Wrap(x).Cmp(x) == 0 && checkBounds(x, []IntType{typ}) == nil
		},
		gen.Int64(),
		widths,
		gen.Bool(),
	))

	properties.TestingRun(t)
}

func TestCheckBounds(t *testing.T) {
	u8 := IntType{Bits: 8}
	i16 := IntType{Signed: true, Bits: 16}
	types := []IntType{u8, i16}

	assert.Nil(t, checkBounds(big.NewInt(200), types))
	assert.Nil(t, checkBounds(big.NewInt(1000), nil))

	o := checkBounds(big.NewInt(1000), types)
	require.NotNil(t, o)
	assert.Equal(t, u8, o.Type)
	assert.Equal(t, Overflowed, o.Kind)
	assert.Equal(t, int64(232), o.Wrapped.Int64())
	assert.Equal(t, "uint8 overflow (wraps to 232)", o.String())

	o = checkBounds(big.NewInt(-1), []IntType{i16, u8})
	require.NotNil(t, o)
	assert.Equal(t, u8, o.Type)
	assert.Equal(t, Underflowed, o.Kind)
	assert.Equal(t, int64(255), o.Wrapped.Int64())
}

func TestOverflowJSON(t *testing.T) {
	o := &Overflow{Type: IntType{Bits: 8}, Kind: Overflowed, Wrapped: big.NewInt(0)}
	b, err := json.Marshal(o)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"uint8","kind":"overflow","wrapped":0}`, string(b))

	var typ IntType
	require.NoError(t, json.Unmarshal([]byte(`"int24"`), &typ))
	assert.Equal(t, IntType{Signed: true, Bits: 24}, typ)
	assert.Error(t, json.Unmarshal([]byte(`"int25"`), &typ))
}
