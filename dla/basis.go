// SPDX-License-Identifier: MIT
// Package dla - Lie closure and the orthonormal algebra basis.

package dla

import (
	"math"

	"github.com/katalvlaran/gsim/cmatrix"
	"github.com/katalvlaran/gsim/matrix"
)

const (
	opClosure  = "Closure"
	opNewBasis = "NewBasis"
	opOrtho    = "Basis.Orthonormality"

	// orthoPasses is the number of Gram–Schmidt sweeps per candidate
	// (one classical pass plus one re-orthogonalization).
	orthoPasses = 2
)

// Basis is an orthonormal set of Hermitian d×d operators spanning a Lie
// algebra over the reals. It is immutable; accessors return copies.
type Basis struct {
	ops []*cmatrix.Dense
	d   int
}

// Len returns the algebra dimension m.
func (b *Basis) Len() int { return len(b.ops) }

// Dim returns the Hilbert-space dimension d of the operators.
func (b *Basis) Dim() int { return b.d }

// At returns a copy of the i-th basis element or ErrBasisMismatch for a bad index.
func (b *Basis) At(i int) (*cmatrix.Dense, error) {
	if i < 0 || i >= len(b.ops) {
		return nil, dlaErrorf("Basis.At", ErrBasisMismatch)
	}

	return b.ops[i].Clone(), nil
}

// Operators returns copies of all basis elements in discovery order.
func (b *Basis) Operators() []*cmatrix.Dense {
	out := make([]*cmatrix.Dense, len(b.ops))
	for i, op := range b.ops {
		out[i] = op.Clone()
	}

	return out
}

// Orthonormality returns max_i |λ_i − 1| over the eigenvalues λ of the real
// Gram matrix G_ij = Re⟨B_i, B_j⟩. A perfectly orthonormal basis gives 0.
// Errors: propagated matrix.ErrMatrixEigenFailed.
// Complexity: O(m²·d² + m³·sweeps).
func (b *Basis) Orthonormality() (float64, error) {
	m := len(b.ops)
	gram, err := matrix.NewDense(m, m)
	if err != nil {
		return 0, dlaErrorf(opOrtho, err)
	}
	for i := 0; i < m; i++ {
		for j := i; j < m; j++ {
			ip, err := cmatrix.Inner(b.ops[i], b.ops[j])
			if err != nil {
				return 0, dlaErrorf(opOrtho, err)
			}
			_ = gram.Set(i, j, real(ip))
			_ = gram.Set(j, i, real(ip))
		}
	}
	vals, _, err := matrix.EigenSym(gram)
	if err != nil {
		return 0, dlaErrorf(opOrtho, err)
	}
	var worst float64
	for _, v := range vals {
		worst = math.Max(worst, math.Abs(v-1))
	}

	return worst, nil
}

// NewBasis wraps already-orthonormal Hermitian operators (for instance a basis
// read back from storage) after validating them. The operators are copied.
// Errors: ErrDegenerateInput (empty), ErrNonSquare, ErrBasisMismatch,
// ErrNotHermitian, ErrNotOrthonormal.
func NewBasis(ops []*cmatrix.Dense, opts ...Option) (*Basis, error) {
	o := gatherOptions(opts...)
	d, err := validateOperators(ops, o.hermEps)
	if err != nil {
		return nil, dlaErrorf(opNewBasis, err)
	}
	b := &Basis{d: d, ops: make([]*cmatrix.Dense, len(ops))}
	for i, op := range ops {
		b.ops[i] = op.Clone()
	}
	gramTol := math.Sqrt(o.tol)
	for i := range b.ops {
		for j := i; j < len(b.ops); j++ {
			ip := innerReal(b.ops[i], b.ops[j])
			if i == j {
				ip -= 1
			}
			if math.Abs(ip) > gramTol {
				return nil, dlaErrorf(opNewBasis, ErrNotOrthonormal)
			}
		}
	}

	return b, nil
}

// Closure computes an orthonormal basis of the real Lie algebra generated by
// the Hermitian generators under the bracket (A, B) ↦ i[A, B].
// MAIN DESCRIPTION:
//   - Breadth-first closure: the basis is seeded with the orthonormalized
//     generators, then each pass brackets every element discovered by the
//     previous pass against every earlier element. Candidates that survive
//     Gram–Schmidt against the current basis are appended. A pass that adds
//     nothing is a fixed point and ends the closure.
//
// Implementation:
//   - Stage 1: validate generators (non-empty, square, equal d, Hermitian).
//   - Stage 2: seed with Gram–Schmidt; an empty seed is ErrDegenerateInput.
//   - Stage 3: per pass, enumerate pairs (j, k) with k in the previous
//     frontier and j < k. Commutators are evaluated in chunks on the worker
//     pool; acceptance inside a chunk is sequential in pair order.
//   - Stage 4: stop on an empty frontier; enforce WithMaxDimension.
//
// Errors:
//   - ErrDegenerateInput, ErrNonSquare, ErrBasisMismatch, ErrNotHermitian,
//     ErrDimensionLimit.
//
// Determinism:
//   - The basis (order and values) does not depend on the worker count.
//
// Complexity:
//   - Time O(m²·(d³ + m·d²)) overall, Space O(m·d² + chunk·d²).
//
// AI-Hints:
//   - Pauli strings of n qubits give m ≤ 4ⁿ − 1; set WithMaxDimension when the
//     generator set may be universal and only a bounded algebra is acceptable.
func Closure(generators []*cmatrix.Dense, opts ...Option) (*Basis, error) {
	o := gatherOptions(opts...)
	d, err := validateOperators(generators, o.hermEps)
	if err != nil {
		return nil, dlaErrorf(opClosure, err)
	}
	b := &Basis{d: d}
	limit := d * d
	if o.maxDim > 0 && o.maxDim < limit {
		limit = o.maxDim
	}

	// Stage 2: seed
	for _, g := range generators {
		accepted, err := b.tryAppend(g.Clone(), o.tol)
		if err != nil {
			return nil, dlaErrorf(opClosure, err)
		}
		if accepted && len(b.ops) > limit {
			return nil, dlaErrorf(opClosure, ErrDimensionLimit)
		}
	}
	if len(b.ops) == 0 {
		return nil, dlaErrorf(opClosure, ErrDegenerateInput)
	}
	o.logf("dla: seed d=%d generators=%d basis=%d", d, len(generators), len(b.ops))

	// Stage 3: passes
	type pair struct{ j, k int }
	chunk := chunkPerWorker * o.workers
	frontierStart, frontierEnd := 0, len(b.ops)
	for pass := 1; frontierStart < frontierEnd; pass++ {
		var pairs []pair
		for k := frontierStart; k < frontierEnd; k++ {
			for j := 0; j < k; j++ {
				pairs = append(pairs, pair{j, k})
			}
		}
		for lo := 0; lo < len(pairs); lo += chunk {
			hi := min(lo+chunk, len(pairs))
			cands := make([]*cmatrix.Dense, hi-lo)
			err = parallelFor(len(cands), o.workers, func(i int) error {
				p := pairs[lo+i]
				c, err := bracket(b.ops[p.j], b.ops[p.k])
				cands[i] = c
				return err
			})
			if err != nil {
				return nil, dlaErrorf(opClosure, err)
			}
			for _, c := range cands {
				accepted, err := b.tryAppend(c, o.tol)
				if err != nil {
					return nil, dlaErrorf(opClosure, err)
				}
				if accepted && len(b.ops) > limit {
					return nil, dlaErrorf(opClosure, ErrDimensionLimit)
				}
			}
		}
		o.logf("dla: pass %d pairs=%d added=%d basis=%d", pass, len(pairs), len(b.ops)-frontierEnd, len(b.ops))
		frontierStart, frontierEnd = frontierEnd, len(b.ops)
	}

	return b, nil
}

// bracket returns i[A, B], which is Hermitian for Hermitian A and B.
func bracket(a, c *cmatrix.Dense) (*cmatrix.Dense, error) {
	comm, err := cmatrix.Commutator(a, c)
	if err != nil {
		return nil, err
	}
	if err = cmatrix.ScaleInPlace(comm, 1i); err != nil {
		return nil, err
	}

	return comm, nil
}

// tryAppend normalizes cand, orthogonalizes it against b twice with real
// coefficients (keeping it Hermitian), and appends it when the residual norm
// exceeds tol. cand is consumed.
func (b *Basis) tryAppend(cand *cmatrix.Dense, tol float64) (bool, error) {
	norm := cmatrix.Norm(cand)
	if norm <= tol {
		return false, nil
	}
	if err := cmatrix.ScaleInPlace(cand, complex(1/norm, 0)); err != nil {
		return false, err
	}
	for pass := 0; pass < orthoPasses; pass++ {
		for _, e := range b.ops {
			if err := cmatrix.AddScaledInPlace(cand, complex(-innerReal(e, cand), 0), e); err != nil {
				return false, err
			}
		}
	}
	res := cmatrix.Norm(cand)
	if res <= tol {
		return false, nil
	}
	if err := cmatrix.ScaleInPlace(cand, complex(1/res, 0)); err != nil {
		return false, err
	}
	b.ops = append(b.ops, cand)

	return true, nil
}

// innerReal is Re⟨a, b⟩; both operands are same-shape by construction.
func innerReal(a, c *cmatrix.Dense) float64 {
	ip, _ := cmatrix.Inner(a, c)

	return real(ip)
}

// validateOperators checks a non-empty set of square Hermitian operators of a
// common dimension and returns that dimension.
func validateOperators(ops []*cmatrix.Dense, hermEps float64) (int, error) {
	if len(ops) == 0 {
		return 0, ErrDegenerateInput
	}
	d := -1
	for _, op := range ops {
		if err := cmatrix.ValidateNotNil(op); err != nil {
			return 0, ErrDegenerateInput
		}
		if !op.IsSquare() {
			return 0, ErrNonSquare
		}
		if d < 0 {
			d = op.Rows()
		} else if op.Rows() != d {
			return 0, ErrBasisMismatch
		}
		if !cmatrix.IsHermitian(op, hermEps) {
			return 0, ErrNotHermitian
		}
	}

	return d, nil
}
