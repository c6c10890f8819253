package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/logrusorgru/aurora/v4"
	"github.com/rs/zerolog"

	"github.com/zephyrtronium/scaledexpr"
)

// session evaluates expressions against a set of variables and prints the
// outcomes.
type session struct {
	vars   map[string]scaledexpr.Variable
	opts   []scaledexpr.EvalOption
	target int
	out    io.Writer
	au     *aurora.Aurora
	log    zerolog.Logger
	echo   bool
	json   bool
}

// run evaluates src and prints its outcome or error. It reports whether
// evaluation succeeded.
func (s *session) run(src string) bool {
	out, err := s.eval(src)
	if err != nil {
		s.log.Debug().Err(err).Str("src", src).Msg("evaluation failed")
		fmt.Fprintln(s.out, s.paint(describe(err), aurora.RedFg|aurora.BrightFg|aurora.BoldFm))
		return false
	}
	if err := s.print(out); err != nil {
		s.log.Error().Err(err).Msg("failed to write result")
		return false
	}
	return true
}

func (s *session) eval(src string) (scaledexpr.Outcome, error) {
	e, err := scaledexpr.Parse(src)
	if err != nil {
		return nil, err
	}
	s.log.Debug().Str("tree", e.String()).Strs("vars", e.Vars()).Interface("types", e.Types()).Msg("parsed")
	if s.echo {
		fmt.Fprintf(s.out, "%v : ", e)
	}
	switch {
	case e.IsComparison():
		c, err := e.Compare(s.vars, s.opts...)
		if err != nil {
			return nil, err
		}
		return c, nil
	case s.target >= 0:
		r, err := e.EvalTarget(s.vars, s.target, s.opts...)
		if err != nil {
			return nil, err
		}
		return r, nil
	default:
		r, err := e.Eval(s.vars, s.opts...)
		if err != nil {
			return nil, err
		}
		return r, nil
	}
}

func (s *session) print(out scaledexpr.Outcome) error {
	if s.json {
		b, err := json.Marshal(out)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(s.out, "%s\n", b)
		return err
	}
	var b strings.Builder
	switch r := out.(type) {
	case *scaledexpr.Result:
		fmt.Fprintf(&b, "%s (raw=%v, scale=%d)\n", s.paint(r.Human, aurora.YellowFg|aurora.BrightFg), r.Value, r.Scale)
		if r.TargetScale != nil {
			t := *r.TargetScale
			fmt.Fprintf(&b, "  rounded: %s (raw=%v, scale=%d)\n", scaledexpr.FormatScaled(r.Rounded, t), r.Rounded, t)
		}
		if r.Loss != "0" {
			fmt.Fprintf(&b, "  loss: %s\n", r.Loss)
		}
		s.warn(&b, r.Overflow)
	case *scaledexpr.Comparison:
		fmt.Fprintf(&b, "%s (%s %s %s at scale %d)\n", s.paint(strconv.FormatBool(r.Result), aurora.YellowFg|aurora.BrightFg), r.Left, r.Operator, r.Right, r.Scale)
		s.warn(&b, r.Overflow)
	default:
		panic(fmt.Errorf("unknown outcome %#v", out))
	}
	_, err := io.WriteString(s.out, b.String())
	return err
}

func (s *session) warn(b *strings.Builder, o *scaledexpr.Overflow) {
	if o == nil {
		return
	}
	s.log.Warn().Stringer("type", o.Type).Stringer("kind", o.Kind).Msg("bounded integer result out of range")
	fmt.Fprintf(b, "  %s: %v\n", s.paint("warning", aurora.MagentaFg|aurora.BoldFm), o)
}

func (s *session) paint(text string, c aurora.Color) string {
	return s.au.Colorize(text, c).String()
}

// describe renders an error with its kind.
func describe(err error) string {
	if e, ok := err.(scaledexpr.Error); ok {
		return e.Kind().String() + ": " + err.Error()
	}
	return err.Error()
}
