// SPDX-License-Identifier: MIT
// Package matrix - public API facades and small vector helpers.
//
// Purpose:
//   - Provide thin, well-documented entry points for common tasks across the package.
//   - Avoid any logic duplication; each facade delegates to the canonical implementation.
//
// AI-Hints:
//   - Use NewIdentity/NewZeros to build matrices with explicit shape and neutral elements.
//   - Coordinate vectors are plain []float64; Dot/VecNorm2 cover the inner products the
//     evolution engine needs without wrapping them in a Matrix.

package matrix

import "math"

// ---------- Constructors & Utilities ----------

// NewZeros returns a new zero-initialized *Dense of size rows×cols.
// Thin alias of NewDense with an intention-revealing name.
func NewZeros(rows, cols int) (*Dense, error) {
	return NewDense(rows, cols)
}

// NewIdentity returns I_n (n×n identity; ones on the diagonal, zeros elsewhere).
// Complexity: O(n^2) zeroing + O(n) diagonal writes.
func NewIdentity(n int) (*Dense, error) {
	id, err := NewDense(n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		id.data[i*n+i] = 1.0
	}

	return id, nil
}

// IdentityLike returns I with dimension = Rows(m); requires square shape.
func IdentityLike(m Matrix) (*Dense, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return nil, matrixErrorf("IdentityLike", err)
	}

	return NewIdentity(m.Rows())
}

// EigenSym calls the Jacobi eigen-decomposition with the package defaults
// (DefaultEpsilon, DefaultEigenMaxIter) unless overridden via options.
func EigenSym(m Matrix, opts ...Option) ([]float64, *Dense, error) {
	o := gatherOptions(opts...)

	return Eigen(m, o.eps, o.maxIter)
}

// ---------- Vector helpers (coordinate vectors) ----------

// Dot returns Σ x_i y_i.
// Errors: ErrNilMatrix (nil operand), ErrDimensionMismatch (length differs).
func Dot(x, y []float64) (float64, error) {
	if err := ValidateVecLen(x, len(y)); err != nil {
		return 0, matrixErrorf("Dot", err)
	}
	if y == nil {
		return 0, matrixErrorf("Dot", ErrNilMatrix)
	}
	acc := ZeroSum
	for i := range x {
		acc += x[i] * y[i]
	}

	return acc, nil
}

// VecNorm2 returns the Euclidean norm of x.
func VecNorm2(x []float64) float64 {
	acc := ZeroSum
	for _, v := range x {
		acc += v * v
	}

	return math.Sqrt(acc)
}

// VecNormInf returns max_i |x_i| (0 for an empty vector).
func VecNormInf(x []float64) float64 {
	best := ZeroSum
	for _, v := range x {
		if a := math.Abs(v); a > best {
			best = a
		}
	}

	return best
}
