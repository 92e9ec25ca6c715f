// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - Provide a single, canonical source of truth for common validation checks.
//  - Keep kernels minimal by delegating shape/nil/symmetry checks here.
//  - Return sentinel errors tagged with the validator name so call sites can wrap uniformly.
//
// Determinism & Performance:
//  - All checks are pure, deterministic and allocate nothing.
//  - Symmetry checks run O(n²) on the upper triangle only.
//
// Note:
//  - Each composite validator follows a fixed sequence (e.g. NotNil → Shape).

package matrix

import (
	"fmt"
	"math"
)

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil ensures the matrix reference is non-nil.
// A typed-nil *Dense inside the interface is rejected as well.
// Complexity: O(1).
func ValidateNotNil(m Matrix) error {
	if m == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}
	if d, ok := m.(*Dense); ok && d == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateSameShape ensures matrices a and b have equal dimensions.
// Assumes a and b are not nil (caller must ensure).
func ValidateSameShape(a, b Matrix) error {
	if a.Rows() != b.Rows() {
		return validatorErrorf("ValidateSameShape: Rows", ErrDimensionMismatch)
	}
	if a.Cols() != b.Cols() {
		return validatorErrorf("ValidateSameShape: Columns", ErrDimensionMismatch)
	}

	return nil
}

// ValidateSquare checks that m is square (Rows == Cols).
// Assumes m is not nil.
func ValidateSquare(m Matrix) error {
	if m.Rows() != m.Cols() {
		return validatorErrorf("ValidateSquare", ErrDimensionMismatch)
	}

	return nil
}

// ValidateVecLen ensures the vector length matches the required size n.
// Nil vectors are rejected with ErrNilMatrix (reused "nil argument" sentinel).
func ValidateVecLen(x []float64, n int) error {
	if x == nil {
		return validatorErrorf("ValidateVecLen", ErrNilMatrix)
	}
	if len(x) != n {
		return validatorErrorf("ValidateVecLen", ErrDimensionMismatch)
	}

	return nil
}

// ValidateBinarySameShape – Composite: NotNil(a) → NotNil(b) → SameShape.
func ValidateBinarySameShape(a, b Matrix) error {
	if err := ValidateNotNil(a); err != nil {
		return validatorErrorf("ValidateBinarySameShape", err)
	}
	if err := ValidateNotNil(b); err != nil {
		return validatorErrorf("ValidateBinarySameShape", err)
	}
	if err := ValidateSameShape(a, b); err != nil {
		return validatorErrorf("ValidateBinarySameShape", err)
	}

	return nil
}

// ValidateSquareNonNil – Composite: NotNil → Square.
func ValidateSquareNonNil(m Matrix) error {
	if err := ValidateNotNil(m); err != nil {
		return validatorErrorf("ValidateSquareNonNil", err)
	}
	if err := ValidateSquare(m); err != nil {
		return validatorErrorf("ValidateSquareNonNil", err)
	}

	return nil
}

// ValidateMulCompatible – Composite: NotNil(a) → NotNil(b) → a.Cols == b.Rows.
func ValidateMulCompatible(a, b Matrix) error {
	if err := ValidateNotNil(a); err != nil {
		return validatorErrorf("ValidateMulCompatible", err)
	}
	if err := ValidateNotNil(b); err != nil {
		return validatorErrorf("ValidateMulCompatible", err)
	}
	if a.Cols() != b.Rows() {
		return validatorErrorf("ValidateMulCompatible", ErrDimensionMismatch)
	}

	return nil
}

// ValidateSymmetric checks |m[i,j] − m[j,i]| ≤ tol over the upper triangle.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch (non-square), ErrAsymmetry.
// Complexity: O(n²).
// AI-Hints: Use before Eigen (Jacobi) to fail fast.
func ValidateSymmetric(m Matrix, tol float64) error {
	return validateSkew(m, tol, +1, "ValidateSymmetric")
}

// ValidateAntisymmetric checks |m[i,j] + m[j,i]| ≤ tol, including the diagonal.
// Adjoint-representation matrices of Hermitian generators must pass this.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch (non-square), ErrAsymmetry.
// Complexity: O(n²).
func ValidateAntisymmetric(m Matrix, tol float64) error {
	return validateSkew(m, tol, -1, "ValidateAntisymmetric")
}

// validateSkew is the shared loop of the (anti)symmetry validators:
// it compares m[i,j] against sign*m[j,i].
func validateSkew(m Matrix, tol, sign float64, tag string) error {
	if err := ValidateSquareNonNil(m); err != nil {
		return validatorErrorf(tag, err)
	}
	d, err := toDense(m)
	if err != nil {
		return validatorErrorf(tag, err)
	}
	n := d.r
	var i, j int
	for i = 0; i < n; i++ {
		// the diagonal matters only for antisymmetry (must be ~0).
		start := i + 1
		if sign < 0 {
			start = i
		}
		for j = start; j < n; j++ {
			if math.Abs(d.data[i*n+j]-sign*d.data[j*n+i]) > tol {
				return validatorErrorf(tag, ErrAsymmetry)
			}
		}
	}

	return nil
}
