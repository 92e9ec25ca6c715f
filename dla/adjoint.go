// SPDX-License-Identifier: MIT
// Package dla - adjoint representation of generators on the algebra basis.

package dla

import (
	"github.com/katalvlaran/gsim/cmatrix"
	"github.com/katalvlaran/gsim/matrix"
)

const (
	opAdjoint    = "Adjoint"
	opAdjointAll = "AdjointAll"
)

// Adjoint returns the real m×m matrix R of the map X ↦ −i[H, X] restricted
// to the basis: R[i,j] = ⟨B_i, −i[H, B_j]⟩ = Im⟨B_i, [H, B_j]⟩.
// MAIN DESCRIPTION:
//   - With U(θ) = exp(−iθH) acting as ρ ↦ UρU†, algebra coordinates obey
//     dv/dθ = R·v, so a gate acts on coordinates as v ↦ exp(θR)·v.
//
// Errors:
//   - ErrNonSquare, ErrBasisMismatch (H is not d×d), ErrNotHermitian.
//
// Complexity:
//   - Time O(m·d³ + m²·d²), Space O(m² + d²).
//
// Notes:
//   - For Hermitian H in (or normalizing) the algebra, R is antisymmetric and
//     exp(θR) is orthogonal.
func Adjoint(b *Basis, h *cmatrix.Dense, opts ...Option) (*matrix.Dense, error) {
	o := gatherOptions(opts...)

	return adjointOf(b, h, o)
}

func adjointOf(b *Basis, h *cmatrix.Dense, o Options) (*matrix.Dense, error) {
	if err := checkAgainstBasis(b, h, o.hermEps); err != nil {
		return nil, dlaErrorf(opAdjoint, err)
	}
	m := len(b.ops)
	r, err := matrix.NewDense(m, m)
	if err != nil {
		return nil, dlaErrorf(opAdjoint, err)
	}
	var (
		comm *cmatrix.Dense
		ip   complex128
		i, j int
	)
	for j = 0; j < m; j++ {
		if comm, err = cmatrix.Commutator(h, b.ops[j]); err != nil {
			return nil, dlaErrorf(opAdjoint, err)
		}
		for i = 0; i < m; i++ {
			if ip, err = cmatrix.Inner(b.ops[i], comm); err != nil {
				return nil, dlaErrorf(opAdjoint, err)
			}
			if err = r.Set(i, j, imag(ip)); err != nil {
				return nil, dlaErrorf(opAdjoint, err)
			}
		}
	}

	return r, nil
}

// AdjointAll computes Adjoint for every generator on the worker pool.
// The result is in generator order; duplicates keep their own entry.
func AdjointAll(b *Basis, generators []*cmatrix.Dense, opts ...Option) ([]*matrix.Dense, error) {
	o := gatherOptions(opts...)
	out := make([]*matrix.Dense, len(generators))
	err := parallelFor(len(generators), o.workers, func(k int) error {
		r, err := adjointOf(b, generators[k], o)
		out[k] = r
		return err
	})
	if err != nil {
		return nil, dlaErrorf(opAdjointAll, err)
	}
	o.logf("dla: adjoint generators=%d m=%d", len(generators), b.Len())

	return out, nil
}

func checkAgainstBasis(b *Basis, x *cmatrix.Dense, hermEps float64) error {
	if b == nil || len(b.ops) == 0 {
		return ErrDegenerateInput
	}
	if x == nil {
		return ErrBasisMismatch
	}
	if !x.IsSquare() {
		return ErrNonSquare
	}
	if x.Rows() != b.d {
		return ErrBasisMismatch
	}
	if !cmatrix.IsHermitian(x, hermEps) {
		return ErrNotHermitian
	}

	return nil
}
