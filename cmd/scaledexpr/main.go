package main

import (
	"flag"
	"os"

	"github.com/logrusorgru/aurora/v4"
	"github.com/rs/zerolog"

	"github.com/zephyrtronium/scaledexpr"
)

func main() {
	var (
		inname, varsname string
		round, logLevel  string
		given            = make(map[string]scaledexpr.Variable)
		target           int
		nl, echo, strict bool
		repl, color, js  bool
	)
	addgiven := func(s string) error {
		name, v, err := parseGiven(s)
		if err != nil {
			return err
		}
		given[name] = v
		return nil
	}
	flag.StringVar(&inname, "in", "", "input file (default stdin if no args given)")
	flag.StringVar(&varsname, "vars", os.Getenv("SCALEDEXPR_VARS"), "YAML variables file (default $SCALEDEXPR_VARS)")
	flag.Func("given", "name=value:decimals variable definition (any number of times); without :decimals the variable is unscaled", addgiven)
	flag.StringVar(&round, "round", "floor", "rounding mode of divisions, floor or ceil")
	flag.IntVar(&target, "target", -1, "scale to round numeric results to (-1 for none)")
	flag.BoolVar(&strict, "strict", false, "reject comparisons of values with different scales")
	flag.BoolVar(&nl, "n", false, "parse separate input lines as separate expressions")
	flag.BoolVar(&echo, "echo", false, "print parse trees")
	flag.BoolVar(&repl, "repl", false, "read expressions interactively")
	flag.BoolVar(&color, "color", false, "colorize output")
	flag.BoolVar(&js, "json", false, "print outcomes as JSON")
	flag.StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	flag.Parse()

	level, lerr := zerolog.ParseLevel(logLevel)
	if lerr != nil {
		level = zerolog.WarnLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Logger().
		Level(level)
	if lerr != nil {
		logger.Warn().Err(lerr).Msg("invalid -log-level, using warn")
	}

	mode, err := scaledexpr.ParseRoundingMode(round)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid -round")
	}
	opts := []scaledexpr.EvalOption{scaledexpr.Rounding(mode)}
	if strict {
		opts = append(opts, scaledexpr.CompareScales(scaledexpr.StrictScales))
	}

	vars := make(map[string]scaledexpr.Variable)
	if varsname != "" {
		fv, err := loadVars(varsname)
		if err != nil {
			logger.Fatal().Err(err).Str("file", varsname).Msg("failed to load variables")
		}
		for name, v := range fv {
			vars[name] = v
		}
		logger.Debug().Str("file", varsname).Int("count", len(fv)).Msg("loaded variables")
	}
	for name, v := range given {
		vars[name] = v
	}

	s := session{
		vars:   vars,
		opts:   opts,
		target: target,
		out:    os.Stdout,
		au:     aurora.New(aurora.WithColors(color)),
		log:    logger,
		echo:   echo,
		json:   js,
	}
	if repl {
		os.Exit(s.repl())
	}

	srcs, err := sources(inname, flag.Args(), nl)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to read input")
	}
	status := 0
	for _, src := range srcs {
		if !s.run(src) {
			status = 1
		}
	}
	os.Exit(status)
}
