package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
)

const historyFile = ".scaledexpr_history"

// repl reads expressions interactively until EOF or :quit.
func (s *session) repl() int {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	ln.SetCompleter(s.complete)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)
	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	for {
		line, err := ln.Prompt("> ")
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Fprintln(s.out)
			return 0
		}
		if err != nil {
			s.log.Error().Err(err).Msg("failed to read input")
			return 1
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		ln.AppendHistory(line)
		if strings.HasPrefix(line, ":") {
			if s.command(line) {
				return 0
			}
			continue
		}
		s.run(line)
	}
}

// command runs a REPL command. It reports whether the REPL should exit.
func (s *session) command(line string) bool {
	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)
	switch cmd {
	case ":quit", ":q":
		return true
	case ":vars":
		for _, name := range sortedNames(s.vars) {
			fmt.Fprintln(s.out, formatVar(name, s.vars[name]))
		}
	case ":set":
		name, v, err := parseGiven(arg)
		if err != nil {
			fmt.Fprintln(s.out, err)
			break
		}
		s.vars[name] = v
		s.log.Debug().Str("name", name).Msg("set variable")
	case ":unset":
		delete(s.vars, arg)
	default:
		fmt.Fprintln(s.out, "unknown command; commands are :set name=value:decimals, :unset name, :vars, :quit")
	}
	return false
}

// complete completes the variable name at the end of line.
func (s *session) complete(line string) []string {
	k := strings.LastIndexFunc(line, func(r rune) bool {
		return !(r == '_' || 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || '0' <= r && r <= '9')
	})
	head, word := line[:k+1], line[k+1:]
	if word == "" {
		return nil
	}
	var c []string
	for _, name := range sortedNames(s.vars) {
		if strings.HasPrefix(name, word) {
			c = append(c, head+name)
		}
	}
	return c
}
