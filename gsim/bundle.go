// SPDX-License-Identifier: MIT
// Package gsim - Bundle: the precomputed, immutable simulation setup.

package gsim

import (
	"math"

	"github.com/google/uuid"

	"github.com/katalvlaran/gsim/cmatrix"
	"github.com/katalvlaran/gsim/dla"
	"github.com/katalvlaran/gsim/matrix"
)

const (
	opBuild    = "Build"
	opAssemble = "Assemble"

	// realTolerance bounds |Im| of adjoint entries accepted by Assemble.
	realTolerance = 1e-12
)

// Bundle holds everything a simulation needs: the algebra basis, the adjoint
// matrix of each generator (in generator order), the initial-state and
// observable coordinates, and the observable itself.
//
// A Bundle is immutable after Build/Assemble. All accessors return copies, so
// one Bundle may serve any number of concurrent Simulate calls without locks.
type Bundle struct {
	id        uuid.UUID
	basis     *dla.Basis
	adjoints  []*matrix.Dense
	eIn       []float64
	obs       *cmatrix.Dense
	obsCoords []float64
	stateRes  float64
	obsRes    float64
	opts      Options
}

// Build computes the Lie closure of generators, their adjoint matrices, and the
// coordinates of the initial state and the observable.
// Implementation:
//   - Stage 1: dla.Closure(generators).
//   - Stage 2: dla.AdjointAll on the worker pool.
//   - Stage 3: dla.Project of initial and observable, plus residual norms.
//
// Errors:
//   - dla.ErrDegenerateInput, dla.ErrNonSquare, dla.ErrBasisMismatch,
//     dla.ErrNotHermitian, dla.ErrDimensionLimit (all wrapped).
//
// Notes:
//   - Parts of the state or observable outside the algebra are discarded; the
//     result is exact whenever either residual is zero (see Exact).
func Build(initial, observable *cmatrix.Dense, generators []*cmatrix.Dense, opts ...Option) (*Bundle, error) {
	o := gatherOptions(opts...)
	basis, err := dla.Closure(generators, o.dlaOpts...)
	if err != nil {
		return nil, gsimErrorf(opBuild, err)
	}
	adjoints, err := dla.AdjointAll(basis, generators, o.dlaOpts...)
	if err != nil {
		return nil, gsimErrorf(opBuild, err)
	}
	eIn, err := dla.Project(basis, initial, o.dlaOpts...)
	if err != nil {
		return nil, gsimErrorf(opBuild, err)
	}
	stateRes, err := dla.Residual(basis, initial, o.dlaOpts...)
	if err != nil {
		return nil, gsimErrorf(opBuild, err)
	}
	b, err := newBundle(basis, adjoints, eIn, observable, o)
	if err != nil {
		return nil, gsimErrorf(opBuild, err)
	}
	b.stateRes = stateRes

	return b, nil
}

// Assemble rebuilds a Bundle from plain parts, for instance a bundle exported
// with Basis/EIn/AdjointGenerators/Observable. Every part is validated and copied.
// Errors:
//   - dla.ErrDegenerateInput, dla.ErrNotOrthonormal, dla.ErrNotHermitian,
//     dla.ErrBasisMismatch (basis or observable),
//   - ErrDimensionMismatch (len(eIn) ≠ m, adjoint not m×m), ErrNotReal.
//
// Notes:
//   - The initial state is not part of the record, so StateResidual is NaN.
func Assemble(basis []*cmatrix.Dense, eIn []float64, adjoints []*cmatrix.Dense, observable *cmatrix.Dense, opts ...Option) (*Bundle, error) {
	o := gatherOptions(opts...)
	b, err := dla.NewBasis(basis, o.dlaOpts...)
	if err != nil {
		return nil, gsimErrorf(opAssemble, err)
	}
	m := b.Len()
	if len(eIn) != m {
		return nil, gsimErrorf(opAssemble, ErrDimensionMismatch)
	}
	reals := make([]*matrix.Dense, len(adjoints))
	for k, a := range adjoints {
		if a == nil || a.Rows() != m || a.Cols() != m {
			return nil, gsimErrorf(opAssemble, ErrDimensionMismatch)
		}
		r, imagMax, err := cmatrix.RealPart(a)
		if err != nil {
			return nil, gsimErrorf(opAssemble, err)
		}
		if imagMax > realTolerance {
			return nil, gsimErrorf(opAssemble, ErrNotReal)
		}
		reals[k] = r
	}
	e := make([]float64, m)
	copy(e, eIn)
	out, err := newBundle(b, reals, e, observable, o)
	if err != nil {
		return nil, gsimErrorf(opAssemble, err)
	}
	out.stateRes = math.NaN()

	return out, nil
}

func newBundle(basis *dla.Basis, adjoints []*matrix.Dense, eIn []float64, observable *cmatrix.Dense, o Options) (*Bundle, error) {
	obsCoords, err := dla.Project(basis, observable, o.dlaOpts...)
	if err != nil {
		return nil, err
	}
	obsRes, err := dla.Residual(basis, observable, o.dlaOpts...)
	if err != nil {
		return nil, err
	}

	return &Bundle{
		id:        uuid.New(),
		basis:     basis,
		adjoints:  adjoints,
		eIn:       eIn,
		obs:       observable.Clone(),
		obsCoords: obsCoords,
		obsRes:    obsRes,
		opts:      o,
	}, nil
}

// ID identifies this bundle instance (random, assigned at Build/Assemble).
func (b *Bundle) ID() uuid.UUID { return b.id }

// Dim returns the algebra dimension m.
func (b *Bundle) Dim() int { return b.basis.Len() }

// HilbertDim returns the operator dimension d.
func (b *Bundle) HilbertDim() int { return b.basis.Dim() }

// NumGenerators returns the number of adjoint matrices (valid gate indices).
func (b *Bundle) NumGenerators() int { return len(b.adjoints) }

// Basis returns copies of the orthonormal basis elements.
func (b *Bundle) Basis() []*cmatrix.Dense { return b.basis.Operators() }

// Algebra returns the basis as a dla.Basis (immutable, safe to share).
func (b *Bundle) Algebra() *dla.Basis { return b.basis }

// EIn returns a copy of the initial-state coordinates.
func (b *Bundle) EIn() []float64 { return cloneVec(b.eIn) }

// ObservableCoords returns a copy of the observable coordinates.
func (b *Bundle) ObservableCoords() []float64 { return cloneVec(b.obsCoords) }

// Observable returns a copy of the observable operator.
func (b *Bundle) Observable() *cmatrix.Dense { return b.obs.Clone() }

// AdjointMatrices returns copies of the real adjoint matrices in generator order.
func (b *Bundle) AdjointMatrices() []*matrix.Dense {
	out := make([]*matrix.Dense, len(b.adjoints))
	for k, a := range b.adjoints {
		out[k] = a.Clone().(*matrix.Dense)
	}

	return out
}

// AdjointGenerators returns the adjoint matrices lifted to complex form, the
// shape Assemble accepts.
func (b *Bundle) AdjointGenerators() []*cmatrix.Dense {
	out := make([]*cmatrix.Dense, len(b.adjoints))
	for k, a := range b.adjoints {
		// a is a valid m×m *Dense, FromReal cannot fail.
		out[k], _ = cmatrix.FromReal(a)
	}

	return out
}

// StateResidual is ‖ρ − Σ e_i B_i‖_HS (NaN for assembled bundles).
func (b *Bundle) StateResidual() float64 { return b.stateRes }

// ObservableResidual is ‖O − Σ o_i B_i‖_HS.
func (b *Bundle) ObservableResidual() float64 { return b.obsRes }

// Exact reports whether Simulate reproduces the full expectation value: the
// cross term between out-of-algebra parts vanishes when either the state or
// the observable lies in the algebra.
func (b *Bundle) Exact(tol float64) bool {
	return b.obsRes <= tol || b.stateRes <= tol
}

func cloneVec(v []float64) []float64 {
	out := make([]float64, len(v))
	copy(out, v)

	return out
}
