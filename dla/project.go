// SPDX-License-Identifier: MIT

package dla

import "github.com/katalvlaran/gsim/cmatrix"

// Project returns the algebra coordinates v_i = ⟨B_i, X⟩ of a Hermitian X.
// Coordinates are real only when X is Hermitian, so a non-Hermitian X is
// rejected with ErrNotHermitian rather than silently truncated to Re⟨B_i, X⟩.
// The component of X orthogonal to the algebra is discarded; Residual reports
// its norm.
// Errors: ErrNonSquare, ErrBasisMismatch, ErrNotHermitian.
// Complexity: O(m·d²).
func Project(b *Basis, x *cmatrix.Dense, opts ...Option) ([]float64, error) {
	o := gatherOptions(opts...)
	if err := checkAgainstBasis(b, x, o.hermEps); err != nil {
		return nil, dlaErrorf("Project", err)
	}
	v := make([]float64, len(b.ops))
	for i, e := range b.ops {
		v[i] = innerReal(e, x)
	}

	return v, nil
}

// Reconstruct returns Σ v_i B_i.
// Errors: ErrDegenerateInput (nil/empty basis), ErrBasisMismatch (len(v) ≠ m).
func Reconstruct(b *Basis, v []float64) (*cmatrix.Dense, error) {
	if b == nil || len(b.ops) == 0 {
		return nil, dlaErrorf("Reconstruct", ErrDegenerateInput)
	}
	if len(v) != len(b.ops) {
		return nil, dlaErrorf("Reconstruct", ErrBasisMismatch)
	}
	out, err := cmatrix.NewDense(b.d, b.d)
	if err != nil {
		return nil, dlaErrorf("Reconstruct", err)
	}
	for i, e := range b.ops {
		if err = cmatrix.AddScaledInPlace(out, complex(v[i], 0), e); err != nil {
			return nil, dlaErrorf("Reconstruct", err)
		}
	}

	return out, nil
}

// Residual returns ‖X − Σ v_i B_i‖_HS, the part of X outside the algebra.
func Residual(b *Basis, x *cmatrix.Dense, opts ...Option) (float64, error) {
	v, err := Project(b, x, opts...)
	if err != nil {
		return 0, dlaErrorf("Residual", err)
	}
	rec, err := Reconstruct(b, v)
	if err != nil {
		return 0, dlaErrorf("Residual", err)
	}
	diff, err := cmatrix.Sub(x, rec)
	if err != nil {
		return 0, dlaErrorf("Residual", err)
	}

	return cmatrix.Norm(diff), nil
}
