// SPDX-License-Identifier: MIT

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"golang.org/x/term"

	"github.com/katalvlaran/gsim/config"
	"github.com/katalvlaran/gsim/gsim"
	"github.com/katalvlaran/gsim/pauli"
)

var errQuit = errors.New("quit")

const replHelp = `circuit syntax: theta:gate pairs, e.g. "0.3:0 1.2:1" (theta may be "pi/4")
commands:
  /run <name>      evaluate a circuit from the problem file
  /obs <sum>       evaluate the last circuit against another observable, e.g. /obs 0.5*XZ
  /coords          final algebra coordinates of the last circuit
  /info            bundle summary
  /help, /quit`

// session is the REPL state: the problem, its bundle and the last circuit.
type session struct {
	cfg  *config.Config
	b    *gsim.Bundle
	last gsim.Circuit
}

func newSession(cfg *config.Config, b *gsim.Bundle) *session {
	return &session{cfg: cfg, b: b}
}

// handle evaluates one input line, writing results to w.
func (s *session) handle(line string, w io.Writer) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	if !strings.HasPrefix(line, "/") {
		c, err := parseCircuit(line)
		if err != nil {
			return err
		}
		return s.simulate(c, w)
	}

	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)
	switch cmd {
	case "/quit", "/exit":
		return errQuit
	case "/help":
		fmt.Fprintln(w, replHelp)
	case "/info":
		printInfo(w, s.cfg, s.b)
	case "/run":
		c, err := s.cfg.Circuit(arg)
		if err != nil {
			return err
		}
		return s.simulate(c, w)
	case "/obs":
		sum, err := pauli.Parse(arg)
		if err != nil {
			return err
		}
		op, err := sum.Operator()
		if err != nil {
			return err
		}
		val, err := s.b.ExpectationOf(op, s.last)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "⟨%s⟩ = %.12g\n", sum, val)
	case "/coords":
		v, err := s.b.Evolve(s.last)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, formatVec(v))
	default:
		return fmt.Errorf("unknown command %s (try /help)", cmd)
	}

	return nil
}

func (s *session) simulate(c gsim.Circuit, w io.Writer) error {
	val, err := s.b.Simulate(c)
	if err != nil {
		return err
	}
	s.last = c
	fmt.Fprintf(w, "%.12g\n", val)

	return nil
}

// parseCircuit reads whitespace- or comma-separated theta:gate pairs.
func parseCircuit(line string) (gsim.Circuit, error) {
	fields := strings.FieldsFunc(line, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' })
	c := make(gsim.Circuit, 0, len(fields))
	for _, f := range fields {
		th, g, ok := strings.Cut(f, ":")
		if !ok {
			return nil, fmt.Errorf("step %q: want theta:gate", f)
		}
		theta, err := parseAngle(th)
		if err != nil {
			return nil, fmt.Errorf("step %q: %w", f, err)
		}
		gate, err := strconv.Atoi(g)
		if err != nil {
			return nil, fmt.Errorf("step %q: %w", f, err)
		}
		c = append(c, gsim.Step{Theta: theta, Gate: gate})
	}

	return c, nil
}

// parseAngle accepts a float or a multiple/fraction of pi: "pi", "-pi/2", "3pi/4".
func parseAngle(s string) (float64, error) {
	num, den, hasDen := strings.Cut(s, "/")
	scale := 1.0
	if strings.HasSuffix(num, "pi") {
		scale = math.Pi
		num = strings.TrimSuffix(num, "pi")
		switch num {
		case "", "+":
			num = "1"
		case "-":
			num = "-1"
		}
	}
	v, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, err
	}
	v *= scale
	if hasDen {
		d, err := strconv.ParseFloat(den, 64)
		if err != nil {
			return 0, err
		}
		if d == 0 {
			return 0, errors.New("division by zero")
		}
		v /= d
	}

	return v, nil
}

func formatVec(v []float64) string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = strconv.FormatFloat(x, 'g', 6, 64)
	}

	return "[" + strings.Join(parts, " ") + "]"
}

// runREPL reads lines with readline on a terminal and a plain scanner otherwise.
func runREPL(in io.Reader, out io.Writer, s *session) error {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return runReadline(out, s)
	}
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		if err := s.handle(sc.Text(), out); err != nil {
			if err == errQuit {
				return nil
			}
			fmt.Fprintf(out, "error: %v\n", err)
		}
	}

	return sc.Err()
}

func runReadline(out io.Writer, s *session) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[32mgsim>\033[0m ",
		HistoryFile:     os.Getenv("GSIM_HISTORY"),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete: readline.NewPrefixCompleter(
			readline.PcItem("/run"),
			readline.PcItem("/obs"),
			readline.PcItem("/coords"),
			readline.PcItem("/info"),
			readline.PcItem("/help"),
			readline.PcItem("/quit"),
		),
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	fmt.Fprintln(out, "gsim repl (type /help)")
	for {
		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			if err == io.EOF {
				return nil
			}
			return err
		}
		if err := s.handle(line, out); err != nil {
			if err == errQuit {
				return nil
			}
			fmt.Fprintf(out, "error: %v\n", err)
		}
	}
}
