package main

import (
	"fmt"
	"math/big"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/zephyrtronium/scaledexpr"
)

// parseGiven parses a variable definition of the form name=value:decimals.
// Without :decimals, the variable is unscaled.
func parseGiven(s string) (string, scaledexpr.Variable, error) {
	d := strings.SplitN(s, "=", 2)
	if len(d) != 2 {
		return "", scaledexpr.Variable{}, fmt.Errorf(`variable definitions must be "name=value:decimals", not %q`, s)
	}
	name := strings.TrimSpace(d[0])
	if !isName(name) {
		return "", scaledexpr.Variable{}, fmt.Errorf("invalid variable name %q", name)
	}
	val, dec, scaled := strings.Cut(d[1], ":")
	v, err := parseValue(val)
	if err != nil {
		return "", scaledexpr.Variable{}, fmt.Errorf("setting %s: %w", name, err)
	}
	if !scaled {
		return name, scaledexpr.Unscaled(v), nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(dec))
	if err != nil {
		return "", scaledexpr.Variable{}, fmt.Errorf("setting %s: invalid decimals %q", name, dec)
	}
	return name, scaledexpr.Variable{Value: v, Decimals: n}, nil
}

func parseValue(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("invalid integer value %q", s)
	}
	return v, nil
}

// isName reports whether s is usable as an identifier in expressions.
func isName(s string) bool {
	toks, err := scaledexpr.Tokenize(s)
	return err == nil && len(toks) == 2 && toks[0].Kind == scaledexpr.TokenIdent
}

// yamlValue is an integer in a variables file, quoted or not.
type yamlValue struct {
	n *big.Int
}

func (v *yamlValue) UnmarshalYAML(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"'`)
	x, err := parseValue(s)
	if err != nil {
		return err
	}
	v.n = x
	return nil
}

// yamlVar is one entry of a variables file. A missing decimals field makes
// the variable unscaled.
type yamlVar struct {
	Value    yamlValue `yaml:"value"`
	Decimals *int      `yaml:"decimals"`
}

// loadVars reads a YAML variables file.
func loadVars(path string) (map[string]scaledexpr.Variable, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	vars, err := decodeVars(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return vars, nil
}

func decodeVars(b []byte) (map[string]scaledexpr.Variable, error) {
	var m map[string]yamlVar
	if err := yaml.UnmarshalWithOptions(b, &m, yaml.DisallowUnknownField()); err != nil {
		return nil, err
	}
	vars := make(map[string]scaledexpr.Variable, len(m))
	for name, v := range m {
		if !isName(name) {
			return nil, fmt.Errorf("invalid variable name %q", name)
		}
		if v.Value.n == nil {
			return nil, fmt.Errorf("variable %s has no value", name)
		}
		if v.Decimals == nil {
			vars[name] = scaledexpr.Unscaled(v.Value.n)
			continue
		}
		vars[name] = scaledexpr.Variable{Value: v.Value.n, Decimals: *v.Decimals}
	}
	return vars, nil
}

// formatVar renders a variable the way -given accepts it.
func formatVar(name string, v scaledexpr.Variable) string {
	if !v.HasDecimals() {
		return name + "=" + v.Value.String()
	}
	return name + "=" + v.Value.String() + ":" + strconv.Itoa(v.Decimals)
}

// sortedNames returns the names of vars in order.
func sortedNames(vars map[string]scaledexpr.Variable) []string {
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
