package scaledexpr_test

import (
	"math/big"
	"regexp"
	"strings"
	"testing"

	"github.com/zephyrtronium/scaledexpr"
)

// huge matches inputs that ask for powers of ten too large to compute quickly.
var huge = regexp.MustCompile(`[eE][+-]?\d{4,}|\d{5,}`)

func FuzzEval(f *testing.F) {
	f.Add("x")
	f.Add("x * y / 1e18")
	f.Add("10 ** 77 / 3")
	f.Add("type(int8).min - x")
	f.Add("x >= y")
	f.Fuzz(func(t *testing.T, s string) {
		if huge.MatchString(s) || strings.Count(s, "**") > 1 {
			t.Skip()
		}
		vars := map[string]scaledexpr.Variable{
			"x": {Value: big.NewInt(1500000), Decimals: 6},
			"y": {Value: big.NewInt(-3), Decimals: 0},
		}
		r, err := scaledexpr.Evaluate(s, vars, scaledexpr.Rounding(scaledexpr.Ceil))
		if err != nil {
			if _, ok := err.(scaledexpr.Error); !ok {
				t.Errorf("%q gave error %#v without a kind", s, err)
			}
			return
		}
		if r == nil {
			t.Errorf("%q gave nil outcome", s)
		}
	})
}
