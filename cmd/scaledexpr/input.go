package main

import (
	"bufio"
	"io"
	"os"
	"strings"
)

// sources collects the expressions to evaluate: those in the input file, if
// there is one, followed by each argument. With lines, each non-empty line of
// the input is a separate expression; otherwise the whole input is one.
func sources(inname string, args []string, lines bool) ([]string, error) {
	var srcs []string
	f, err := infile(inname, len(args) == 0)
	if err != nil {
		return nil, err
	}
	if f != nil {
		defer f.Close()
		in, err := readSources(f, lines)
		if err != nil {
			return nil, err
		}
		srcs = append(srcs, in...)
	}
	return append(srcs, args...), nil
}

// readSources splits input into expressions. Lines starting with # are
// comments when reading line by line.
func readSources(r io.Reader, lines bool) ([]string, error) {
	if !lines {
		b, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(string(b)) == "" {
			return nil, nil
		}
		return []string{string(b)}, nil
	}
	var srcs []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		srcs = append(srcs, line)
	}
	return srcs, sc.Err()
}

func infile(inname string, std bool) (io.ReadCloser, error) {
	switch {
	case inname != "" && inname != "-":
		return os.Open(inname)
	case inname == "-", std:
		return io.NopCloser(os.Stdin), nil
	}
	return nil, nil
}
