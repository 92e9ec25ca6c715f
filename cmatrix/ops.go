// SPDX-License-Identifier: MIT
// Package cmatrix - algebra kernels over complex operators.
//
// Notes:
//   - All kernels validate via the helpers below and wrap with cmatrixErrorf(op, …).
//   - Inner follows the Hilbert–Schmidt convention ⟨A,B⟩ = Tr(A†B) = Σ conj(A_ij)·B_ij.

package cmatrix

import (
	"math"
	"math/cmplx"
)

const (
	opAdd       = "Add"
	opSub       = "Sub"
	opScale     = "Scale"
	opMul       = "Mul"
	opCommute   = "Commutator"
	opAdjoint   = "Adjoint"
	opInner     = "Inner"
	opKron      = "Kron"
	opTrace     = "Trace"
	opAxpy      = "AddScaledInPlace"
	opHermitian = "ValidateHermitian"
)

// ---------- validators ----------

// ValidateNotNil rejects a nil operator.
func ValidateNotNil(m *Dense) error {
	if m == nil {
		return cmatrixErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateSquare rejects nil and non-square operators.
func ValidateSquare(m *Dense) error {
	if err := ValidateNotNil(m); err != nil {
		return err
	}
	if m.r != m.c {
		return cmatrixErrorf("ValidateSquare", ErrBadShape)
	}

	return nil
}

// ValidateSameShape rejects nil operands and shape disagreement.
func ValidateSameShape(a, b *Dense) error {
	if err := ValidateNotNil(a); err != nil {
		return err
	}
	if err := ValidateNotNil(b); err != nil {
		return err
	}
	if a.r != b.r || a.c != b.c {
		return cmatrixErrorf("ValidateSameShape", ErrDimensionMismatch)
	}

	return nil
}

// ValidateHermitian checks square shape and |A_ij − conj(A_ji)| ≤ eps.
// Errors: ErrNilMatrix, ErrBadShape, ErrNotHermitian.
// Complexity: O(n²).
func ValidateHermitian(m *Dense, eps float64) error {
	if err := ValidateSquare(m); err != nil {
		return cmatrixErrorf(opHermitian, err)
	}
	n := m.r
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			if cmplx.Abs(m.data[i*n+j]-cmplx.Conj(m.data[j*n+i])) > eps {
				return cmatrixErrorf(opHermitian, ErrNotHermitian)
			}
		}
	}

	return nil
}

// IsHermitian is the boolean form of ValidateHermitian (false for nil/non-square).
func IsHermitian(m *Dense, eps float64) bool {
	return ValidateHermitian(m, eps) == nil
}

// ---------- element-wise ----------

func addSub(a, b *Dense, sign complex128, tag string) (*Dense, error) {
	if err := ValidateSameShape(a, b); err != nil {
		return nil, cmatrixErrorf(tag, err)
	}
	out := &Dense{r: a.r, c: a.c, data: make([]complex128, len(a.data))}
	for i := range out.data {
		out.data[i] = a.data[i] + sign*b.data[i]
	}

	return out, nil
}

// Add returns a + b.
func Add(a, b *Dense) (*Dense, error) { return addSub(a, b, 1, opAdd) }

// Sub returns a − b.
func Sub(a, b *Dense) (*Dense, error) { return addSub(a, b, -1, opSub) }

// Scale returns alpha·m.
// Errors: ErrNilMatrix, ErrNaNInf for a non-finite alpha.
func Scale(m *Dense, alpha complex128) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, cmatrixErrorf(opScale, err)
	}
	if isNonFinite(alpha) {
		return nil, cmatrixErrorf(opScale, ErrNaNInf)
	}
	out := m.Clone()
	for i := range out.data {
		out.data[i] *= alpha
	}

	return out, nil
}

// AddScaledInPlace performs dst += alpha·src. It is the only mutating kernel
// besides ScaleInPlace and exists for Gram–Schmidt projections.
// Errors: ErrNilMatrix, ErrDimensionMismatch.
func AddScaledInPlace(dst *Dense, alpha complex128, src *Dense) error {
	if err := ValidateSameShape(dst, src); err != nil {
		return cmatrixErrorf(opAxpy, err)
	}
	if alpha == 0 {
		return nil
	}
	for i := range dst.data {
		dst.data[i] += alpha * src.data[i]
	}

	return nil
}

// ScaleInPlace performs m *= alpha.
func ScaleInPlace(m *Dense, alpha complex128) error {
	if err := ValidateNotNil(m); err != nil {
		return cmatrixErrorf("ScaleInPlace", err)
	}
	for i := range m.data {
		m.data[i] *= alpha
	}

	return nil
}

// ---------- products ----------

// Mul returns the matrix product a × b (i→k→j order, zero a(i,k) skipped).
// Errors: ErrNilMatrix, ErrDimensionMismatch (a.Cols != b.Rows).
// Complexity: O(r*n*c).
func Mul(a, b *Dense) (*Dense, error) {
	if err := ValidateNotNil(a); err != nil {
		return nil, cmatrixErrorf(opMul, err)
	}
	if err := ValidateNotNil(b); err != nil {
		return nil, cmatrixErrorf(opMul, err)
	}
	if a.c != b.r {
		return nil, cmatrixErrorf(opMul, ErrDimensionMismatch)
	}
	out := &Dense{r: a.r, c: b.c, data: make([]complex128, a.r*b.c)}
	var (
		i, j, k    int
		av         complex128
		rowA, rowB int
		rowR       int
	)
	for i = 0; i < a.r; i++ {
		rowA = i * a.c
		rowR = i * b.c
		for k = 0; k < a.c; k++ {
			av = a.data[rowA+k]
			if av == 0 {
				continue
			}
			rowB = k * b.c
			for j = 0; j < b.c; j++ {
				out.data[rowR+j] += av * b.data[rowB+j]
			}
		}
	}

	return out, nil
}

// Commutator returns [a, b] = ab − ba.
// Errors: ErrNilMatrix, ErrBadShape (non-square), ErrDimensionMismatch.
// Complexity: O(n³).
func Commutator(a, b *Dense) (*Dense, error) {
	if err := ValidateSquare(a); err != nil {
		return nil, cmatrixErrorf(opCommute, err)
	}
	if err := ValidateSameShape(a, b); err != nil {
		return nil, cmatrixErrorf(opCommute, err)
	}
	ab, err := Mul(a, b)
	if err != nil {
		return nil, cmatrixErrorf(opCommute, err)
	}
	ba, err := Mul(b, a)
	if err != nil {
		return nil, cmatrixErrorf(opCommute, err)
	}
	for i := range ab.data {
		ab.data[i] -= ba.data[i]
	}

	return ab, nil
}

// Adjoint returns the conjugate transpose m†.
func Adjoint(m *Dense) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, cmatrixErrorf(opAdjoint, err)
	}
	out := &Dense{r: m.c, c: m.r, data: make([]complex128, len(m.data))}
	for i := 0; i < m.r; i++ {
		for j := 0; j < m.c; j++ {
			out.data[j*m.r+i] = cmplx.Conj(m.data[i*m.c+j])
		}
	}

	return out, nil
}

// Kron returns the Kronecker product a ⊗ b.
// Row index of the result is ia*b.r + ib (a is the most significant factor).
// Complexity: O(a.r·a.c·b.r·b.c).
func Kron(a, b *Dense) (*Dense, error) {
	if err := ValidateNotNil(a); err != nil {
		return nil, cmatrixErrorf(opKron, err)
	}
	if err := ValidateNotNil(b); err != nil {
		return nil, cmatrixErrorf(opKron, err)
	}
	rows, cols := a.r*b.r, a.c*b.c
	out := &Dense{r: rows, c: cols, data: make([]complex128, rows*cols)}
	var ia, ja, ib, jb int
	var av complex128
	for ia = 0; ia < a.r; ia++ {
		for ja = 0; ja < a.c; ja++ {
			av = a.data[ia*a.c+ja]
			if av == 0 {
				continue
			}
			for ib = 0; ib < b.r; ib++ {
				for jb = 0; jb < b.c; jb++ {
					out.data[(ia*b.r+ib)*cols+ja*b.c+jb] = av * b.data[ib*b.c+jb]
				}
			}
		}
	}

	return out, nil
}

// ---------- Hilbert–Schmidt geometry ----------

// Inner returns ⟨a,b⟩ = Tr(a†b) = Σ conj(a_ij)·b_ij.
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: O(r*c).
func Inner(a, b *Dense) (complex128, error) {
	if err := ValidateSameShape(a, b); err != nil {
		return 0, cmatrixErrorf(opInner, err)
	}

	return innerUnchecked(a, b), nil
}

func innerUnchecked(a, b *Dense) complex128 {
	var acc complex128
	for i := range a.data {
		acc += cmplx.Conj(a.data[i]) * b.data[i]
	}

	return acc
}

// Norm returns the Hilbert–Schmidt (Frobenius) norm √Tr(m†m); 0 for nil.
func Norm(m *Dense) float64 {
	if m == nil {
		return 0
	}
	var acc float64
	for _, z := range m.data {
		acc += real(z)*real(z) + imag(z)*imag(z)
	}

	return math.Sqrt(acc)
}

// Trace returns Σ m_ii for square m.
func Trace(m *Dense) (complex128, error) {
	if err := ValidateSquare(m); err != nil {
		return 0, cmatrixErrorf(opTrace, err)
	}
	var acc complex128
	for i := 0; i < m.r; i++ {
		acc += m.data[i*m.c+i]
	}

	return acc, nil
}

// IsZero reports Norm(m) ≤ eps.
func IsZero(m *Dense, eps float64) bool {
	return Norm(m) <= eps
}

// AllClose reports |a_ij − b_ij| ≤ atol + rtol·|b_ij| for every entry.
// Errors: ErrNilMatrix, ErrDimensionMismatch.
func AllClose(a, b *Dense, rtol, atol float64) (bool, error) {
	if err := ValidateSameShape(a, b); err != nil {
		return false, cmatrixErrorf("AllClose", err)
	}
	rtol, atol = math.Abs(rtol), math.Abs(atol)
	for i := range a.data {
		if cmplx.Abs(a.data[i]-b.data[i]) > atol+rtol*cmplx.Abs(b.data[i]) {
			return false, nil
		}
	}

	return true, nil
}
