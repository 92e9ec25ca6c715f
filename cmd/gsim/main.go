// SPDX-License-Identifier: MIT

// Command gsim builds a Lie-algebraic simulator from a YAML problem file and
// evaluates circuits against it.
//
//	gsim init  [-config path]            write the default problem file
//	gsim info  [-config path] [-v]       algebra dimension, residuals, exactness
//	gsim run   [-config path] [-circuit name] [-v]
//	gsim repl  [-config path] [-v]       interactive circuits: "0.3:0 1.2:1"
//
// Environment (optionally from .env): GSIM_CONFIG, GSIM_WORKERS, GSIM_HISTORY.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/katalvlaran/gsim/config"
	"github.com/katalvlaran/gsim/gsim"
)

const defaultConfigPath = "gsim.yaml"

func main() {
	_ = godotenv.Load(".env")
	log.SetFlags(log.LstdFlags)

	if len(os.Args) < 2 {
		usage(os.Stderr)
		os.Exit(2)
	}
	if err := dispatch(os.Args[1], os.Args[2:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "gsim: %v\n", err)
		os.Exit(1)
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: gsim <init|info|run|repl> [-config path] [-circuit name] [-v]")
}

type options struct {
	configPath string
	circuit    string
	verbose    bool
}

func parseFlags(cmd string, args []string) (options, error) {
	var o options
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	fs.StringVar(&o.configPath, "config", envOr("GSIM_CONFIG", defaultConfigPath), "problem file")
	fs.StringVar(&o.circuit, "circuit", "", "circuit name (run: default all)")
	fs.BoolVar(&o.verbose, "v", false, "log closure progress")
	err := fs.Parse(args)

	return o, err
}

func dispatch(cmd string, args []string, in io.Reader, out io.Writer) error {
	o, err := parseFlags(cmd, args)
	if err != nil {
		return err
	}
	switch cmd {
	case "init":
		if err := config.InitConfig(o.configPath); err != nil {
			return err
		}
		log.Printf("[GSIM] problem file ready at %s", o.configPath)
		return nil
	case "info", "run", "repl":
	default:
		usage(out)
		return fmt.Errorf("unknown command %q", cmd)
	}

	cfg, err := loadConfig(o.configPath)
	if err != nil {
		return err
	}
	b, err := build(cfg, o.verbose)
	if err != nil {
		return err
	}
	switch cmd {
	case "info":
		printInfo(out, cfg, b)
		return nil
	case "run":
		return runCircuits(out, cfg, b, o.circuit)
	default:
		return runREPL(in, out, newSession(cfg, b))
	}
}

func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.LoadOrDefault(path)
	if err != nil {
		return nil, err
	}
	if w := os.Getenv("GSIM_WORKERS"); w != "" {
		n, err := strconv.Atoi(w)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("GSIM_WORKERS=%q: want a positive integer", w)
		}
		cfg.Solver.Workers = n
	}

	return cfg, nil
}

func build(cfg *config.Config, verbose bool) (*gsim.Bundle, error) {
	var logger *log.Logger
	if verbose {
		logger = log.New(os.Stderr, "[GSIM] ", log.LstdFlags)
	}
	b, err := cfg.Build(logger)
	if err != nil {
		return nil, err
	}
	log.Printf("[GSIM] bundle %s: qubits=%d m=%d generators=%d", b.ID(), cfg.Qubits(), b.Dim(), b.NumGenerators())
	if !b.Exact(cfg.Solver.Tolerance + 1e-12) {
		log.Printf("[GSIM] WARNING: observable residual %.3g and state residual %.3g; results are approximate",
			b.ObservableResidual(), b.StateResidual())
	}

	return b, nil
}

func printInfo(w io.Writer, cfg *config.Config, b *gsim.Bundle) {
	fmt.Fprintf(w, "bundle        %s\n", b.ID())
	fmt.Fprintf(w, "qubits        %d (d=%d)\n", cfg.Qubits(), b.HilbertDim())
	fmt.Fprintf(w, "generators    %d\n", b.NumGenerators())
	fmt.Fprintf(w, "algebra dim   %d\n", b.Dim())
	fmt.Fprintf(w, "state res.    %.3g\n", b.StateResidual())
	fmt.Fprintf(w, "obs res.      %.3g\n", b.ObservableResidual())
	fmt.Fprintf(w, "exact         %t\n", b.Exact(cfg.Solver.Tolerance+1e-12))
	fmt.Fprintf(w, "circuits      %v\n", cfg.CircuitNames())
}

func runCircuits(w io.Writer, cfg *config.Config, b *gsim.Bundle, only string) error {
	names := cfg.CircuitNames()
	if only != "" {
		names = []string{only}
	}
	for _, name := range names {
		c, err := cfg.Circuit(name)
		if err != nil {
			return err
		}
		val, err := b.Simulate(c)
		if err != nil {
			return fmt.Errorf("circuit %q: %w", name, err)
		}
		fmt.Fprintf(w, "%s\t%.12g\n", name, val)
	}

	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}
