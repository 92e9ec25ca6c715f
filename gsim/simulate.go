// SPDX-License-Identifier: MIT
// Package gsim - the evolution engine over algebra coordinates.

package gsim

import (
	"fmt"
	"math"

	"github.com/katalvlaran/gsim/cmatrix"
	"github.com/katalvlaran/gsim/dla"
	"github.com/katalvlaran/gsim/matrix"
)

const (
	opSimulate      = "Simulate"
	opEvolve        = "Evolve"
	opFinalOperator = "FinalOperator"
	opExpectationOf = "ExpectationOf"
)

// Step is one gate: exp(−i·Theta·H_Gate) on the state, i.e. exp(Theta·R_Gate)
// on algebra coordinates.
type Step struct {
	Theta float64
	Gate  int
}

// Circuit is an ordered sequence of steps, applied first to last.
type Circuit []Step

// Simulate evolves eIn through the circuit with the given adjoint matrices and
// returns ⟨obs, v_final⟩.
// MAIN DESCRIPTION:
//   - v_0 = eIn; v_j = exp(θ_j·R_{k_j})·v_{j−1}; result Σ obs_i·v_n,i.
//   - An empty circuit returns ⟨obs, eIn⟩.
//
// Implementation:
//   - Stage 1: validate shapes (all adjoints m×m, len(obs) = len(eIn) = m).
//   - Stage 2: validate every step (index range, finite θ) before any work.
//   - Stage 3: sequential fold with ExpAction (matrix.ExpmVec) or ExpFull
//     (matrix.Expm then MatVec).
//
// Errors:
//   - ErrDimensionMismatch, ErrIndexOutOfRange, ErrNonFiniteParameter,
//     ErrNonFiniteResult, matrix.ErrScaleTooLarge (|θ|·‖R‖∞ > matrix.MaxExpScale).
//
// Determinism:
//   - Pure function of its inputs; inputs are never mutated.
//
// Complexity:
//   - ExpAction: O(Σ_j s_j·K·m²); ExpFull: O(n·m³) for n steps.
func Simulate(adjoints []*matrix.Dense, eIn, obs []float64, c Circuit, opts ...Option) (float64, error) {
	o := gatherOptions(opts...)
	v, err := evolve(adjoints, eIn, c, o)
	if err != nil {
		return 0, gsimErrorf(opSimulate, err)
	}
	if len(obs) != len(v) {
		return 0, gsimErrorf(opSimulate, ErrDimensionMismatch)
	}
	val, err := matrix.Dot(obs, v)
	if err != nil {
		return 0, gsimErrorf(opSimulate, err)
	}

	return val, nil
}

func evolve(adjoints []*matrix.Dense, eIn []float64, c Circuit, o Options) ([]float64, error) {
	m := len(eIn)
	if m == 0 {
		return nil, ErrDimensionMismatch
	}
	for _, r := range adjoints {
		if r == nil || r.Rows() != m || r.Cols() != m {
			return nil, ErrDimensionMismatch
		}
	}
	for j, s := range c {
		if s.Gate < 0 || s.Gate >= len(adjoints) {
			return nil, fmt.Errorf("step %d (gate %d of %d): %w", j, s.Gate, len(adjoints), ErrIndexOutOfRange)
		}
		if math.IsNaN(s.Theta) || math.IsInf(s.Theta, 0) {
			return nil, fmt.Errorf("step %d: %w", j, ErrNonFiniteParameter)
		}
	}

	v := make([]float64, m)
	copy(v, eIn)
	var err error
	for j, s := range c {
		if s.Theta == 0 {
			continue
		}
		r := adjoints[s.Gate]
		switch o.mode {
		case ExpFull:
			var u *matrix.Dense
			if u, err = matrix.Expm(r, s.Theta); err == nil {
				v, err = matrix.MatVec(u, v)
			}
		default:
			v, err = matrix.ExpmVec(r, s.Theta, v, o.expTol)
		}
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", j, err)
		}
	}
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil, ErrNonFiniteResult
		}
	}

	return v, nil
}

// Simulate runs the circuit on this bundle's coordinates and observable.
// Safe for concurrent use.
func (b *Bundle) Simulate(c Circuit) (float64, error) {
	if b == nil {
		return 0, gsimErrorf(opSimulate, ErrNilBundle)
	}

	return Simulate(b.adjoints, b.eIn, b.obsCoords, c, b.simOpts()...)
}

// Evolve returns the final coordinate vector v_n.
func (b *Bundle) Evolve(c Circuit) ([]float64, error) {
	if b == nil {
		return nil, gsimErrorf(opEvolve, ErrNilBundle)
	}
	v, err := evolve(b.adjoints, b.eIn, c, b.opts)
	if err != nil {
		return nil, gsimErrorf(opEvolve, err)
	}

	return v, nil
}

// FinalOperator returns Σ v_n,i·B_i, the algebra part of the evolved state.
func (b *Bundle) FinalOperator(c Circuit) (*cmatrix.Dense, error) {
	if b == nil {
		return nil, gsimErrorf(opFinalOperator, ErrNilBundle)
	}
	v, err := evolve(b.adjoints, b.eIn, c, b.opts)
	if err != nil {
		return nil, gsimErrorf(opFinalOperator, err)
	}
	op, err := dla.Reconstruct(b.basis, v)
	if err != nil {
		return nil, gsimErrorf(opFinalOperator, err)
	}

	return op, nil
}

// ExpectationOf runs the circuit against a different observable op, projected
// onto the algebra of this bundle.
// Errors: as Simulate, plus dla.ErrBasisMismatch / dla.ErrNotHermitian for op.
func (b *Bundle) ExpectationOf(op *cmatrix.Dense, c Circuit) (float64, error) {
	if b == nil {
		return 0, gsimErrorf(opExpectationOf, ErrNilBundle)
	}
	coords, err := dla.Project(b.basis, op, b.opts.dlaOpts...)
	if err != nil {
		return 0, gsimErrorf(opExpectationOf, err)
	}
	val, err := Simulate(b.adjoints, b.eIn, coords, c, b.simOpts()...)
	if err != nil {
		return 0, gsimErrorf(opExpectationOf, err)
	}

	return val, nil
}

func (b *Bundle) simOpts() []Option {
	return []Option{WithExpMode(b.opts.mode), WithExpTolerance(b.opts.expTol)}
}
