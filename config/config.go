// SPDX-License-Identifier: MIT

// Package config loads gsim problem files: generators, initial state,
// observable, named circuits and solver settings, in YAML.
package config

import (
	"errors"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/gsim/cmatrix"
	"github.com/katalvlaran/gsim/dla"
	"github.com/katalvlaran/gsim/gsim"
	"github.com/katalvlaran/gsim/pauli"
)

var (
	// ErrInvalid is returned by Validate for an inconsistent problem file.
	ErrInvalid = errors.New("config: invalid problem")

	// ErrUnknownCircuit is returned by Circuit for a name not in the file.
	ErrUnknownCircuit = errors.New("config: unknown circuit")
)

// Config is the root of a problem file.
type Config struct {
	Problem  Problem                 `yaml:"problem"`
	Circuits map[string][]StepConfig `yaml:"circuits"`
	Solver   SolverConfig            `yaml:"solver"`
}

// Problem defines the physics: generators (gate Hamiltonians, indexed by
// position), the initial computational basis state and the observable.
type Problem struct {
	Generators []PauliSum `yaml:"generators"`
	State      string     `yaml:"state"`
	Observable PauliSum   `yaml:"observable"`
}

// StepConfig is one gate of a circuit.
type StepConfig struct {
	Theta float64 `yaml:"theta"`
	Gate  int     `yaml:"gate"`
}

// SolverConfig holds numerical settings. Zero values mean library defaults.
type SolverConfig struct {
	ExpMode      string  `yaml:"exp_mode"`
	ExpTolerance float64 `yaml:"exp_tolerance"`
	Tolerance    float64 `yaml:"tolerance"`
	Workers      int     `yaml:"workers"`
	MaxDimension int     `yaml:"max_dimension"`
}

// PauliSum is a pauli.Sum that reads either a string ("0.5*XZ + -1*ZZ") or a
// list of {coeff, label} mappings, and writes the string form.
type PauliSum struct {
	pauli.Sum
}

type termYAML struct {
	Coeff *float64 `yaml:"coeff"`
	Label string   `yaml:"label"`
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (p *PauliSum) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		sum, err := pauli.Parse(node.Value)
		if err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		p.Sum = sum
		return nil
	case yaml.SequenceNode:
		var terms []termYAML
		if err := node.Decode(&terms); err != nil {
			return err
		}
		sum := make(pauli.Sum, 0, len(terms))
		for _, t := range terms {
			c := 1.0
			if t.Coeff != nil {
				c = *t.Coeff
			}
			parsed, err := pauli.Parse(t.Label)
			if err != nil || len(parsed) != 1 {
				return fmt.Errorf("line %d: term %q: %w", node.Line, t.Label, pauli.ErrBadTerm)
			}
			sum = append(sum, pauli.Term{Coeff: c * parsed[0].Coeff, Label: parsed[0].Label})
		}
		if _, err := sum.Qubits(); err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		p.Sum = sum
		return nil
	default:
		return fmt.Errorf("line %d: pauli sum must be a string or a list of terms", node.Line)
	}
}

// MarshalYAML implements yaml.Marshaler.
func (p PauliSum) MarshalYAML() (interface{}, error) {
	return p.Sum.String(), nil
}

// MustSum parses s or panics; for literals in Default and tests.
func MustSum(s string) PauliSum {
	sum, err := pauli.Parse(s)
	if err != nil {
		panic(err)
	}

	return PauliSum{Sum: sum}
}

// Default returns a single-qubit X-rotation problem.
func Default() *Config {
	return &Config{
		Problem: Problem{
			Generators: []PauliSum{MustSum("X"), MustSum("Z")},
			State:      "0",
			Observable: MustSum("Z"),
		},
		Circuits: map[string][]StepConfig{
			"x-flip": {{Theta: 1.5707963267948966, Gate: 0}},
		},
		Solver: SolverConfig{
			ExpMode:   gsim.DefaultExpMode.String(),
			Tolerance: dla.DefaultTolerance,
		},
	}
}

// Load loads a problem file and validates it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return Parse(data)
}

// Parse decodes a problem document and validates it.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadOrDefault loads config from path, or returns Default if path is empty
// or does not exist.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}

	return Load(path)
}

// Save writes the configuration to path, creating the directory if needed.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// InitConfig writes Default to path unless a file already exists there.
func InitConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	return Default().Save(path)
}

// Qubits returns the qubit count implied by the state string.
func (c *Config) Qubits() int { return len(c.Problem.State) }

// Validate checks qubit counts, gate indices and solver settings, and that
// every coefficient, angle and tolerance is finite.
func (c *Config) Validate() error {
	n := c.Qubits()
	if n == 0 {
		return fmt.Errorf("%w: state is empty", ErrInvalid)
	}
	if len(c.Problem.Generators) == 0 {
		return fmt.Errorf("%w: no generators", ErrInvalid)
	}
	for k, g := range c.Problem.Generators {
		q, err := g.Qubits()
		if err != nil || q != n {
			return fmt.Errorf("%w: generator %d acts on %d qubits, state has %d", ErrInvalid, k, q, n)
		}
	}
	if q, err := c.Problem.Observable.Qubits(); err != nil || q != n {
		return fmt.Errorf("%w: observable acts on %d qubits, state has %d", ErrInvalid, q, n)
	}
	for k, g := range c.Problem.Generators {
		if !finiteSum(g.Sum) {
			return fmt.Errorf("%w: generator %d has a non-finite coefficient", ErrInvalid, k)
		}
	}
	if !finiteSum(c.Problem.Observable.Sum) {
		return fmt.Errorf("%w: observable has a non-finite coefficient", ErrInvalid)
	}
	for name, steps := range c.Circuits {
		for j, s := range steps {
			if s.Gate < 0 || s.Gate >= len(c.Problem.Generators) {
				return fmt.Errorf("%w: circuit %q step %d: gate %d", ErrInvalid, name, j, s.Gate)
			}
			if !finite(s.Theta) {
				return fmt.Errorf("%w: circuit %q step %d: theta %v", ErrInvalid, name, j, s.Theta)
			}
		}
	}
	if _, err := gsim.ParseExpMode(c.Solver.ExpMode); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	s := c.Solver
	if !finite(s.ExpTolerance) || !finite(s.Tolerance) {
		return fmt.Errorf("%w: non-finite solver tolerance", ErrInvalid)
	}
	if s.ExpTolerance < 0 || s.Tolerance < 0 || s.Workers < 0 || s.MaxDimension < 0 {
		return fmt.Errorf("%w: negative solver setting", ErrInvalid)
	}

	return nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func finiteSum(sum pauli.Sum) bool {
	for _, t := range sum {
		if !finite(t.Coeff) {
			return false
		}
	}

	return true
}

// CircuitNames returns the circuit names in sorted order.
func (c *Config) CircuitNames() []string {
	names := make([]string, 0, len(c.Circuits))
	for name := range c.Circuits {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// Circuit returns the named circuit.
func (c *Config) Circuit(name string) (gsim.Circuit, error) {
	steps, ok := c.Circuits[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCircuit, name)
	}

	return ToCircuit(steps), nil
}

// ToCircuit converts step configs to a gsim.Circuit.
func ToCircuit(steps []StepConfig) gsim.Circuit {
	out := make(gsim.Circuit, len(steps))
	for j, s := range steps {
		out[j] = gsim.Step{Theta: s.Theta, Gate: s.Gate}
	}

	return out
}

// Operators materializes the initial state, observable and generators.
func (c *Config) Operators() (rho, obs *cmatrix.Dense, gens []*cmatrix.Dense, err error) {
	if rho, err = pauli.BasisState(c.Problem.State); err != nil {
		return nil, nil, nil, err
	}
	if obs, err = c.Problem.Observable.Operator(); err != nil {
		return nil, nil, nil, err
	}
	gens = make([]*cmatrix.Dense, len(c.Problem.Generators))
	for k, g := range c.Problem.Generators {
		if gens[k], err = g.Operator(); err != nil {
			return nil, nil, nil, fmt.Errorf("generator %d: %w", k, err)
		}
	}

	return rho, obs, gens, nil
}

// Options translates the solver settings into gsim options. logger may be nil.
func (c *Config) Options(logger *log.Logger) []gsim.Option {
	s := c.Solver
	mode, _ := gsim.ParseExpMode(s.ExpMode)
	opts := []gsim.Option{gsim.WithExpMode(mode)}
	if s.ExpTolerance > 0 {
		opts = append(opts, gsim.WithExpTolerance(s.ExpTolerance))
	}
	alg := []dla.Option{dla.WithLogger(logger)}
	if s.Tolerance > 0 {
		alg = append(alg, dla.WithTolerance(s.Tolerance))
	}
	if s.Workers > 0 {
		alg = append(alg, dla.WithWorkers(s.Workers))
	}
	if s.MaxDimension > 0 {
		alg = append(alg, dla.WithMaxDimension(s.MaxDimension))
	}

	return append(opts, gsim.WithAlgebraOptions(alg...))
}

// Build materializes the operators and builds the simulation bundle.
func (c *Config) Build(logger *log.Logger) (*gsim.Bundle, error) {
	rho, obs, gens, err := c.Operators()
	if err != nil {
		return nil, err
	}

	return gsim.Build(rho, obs, gens, c.Options(logger)...)
}
