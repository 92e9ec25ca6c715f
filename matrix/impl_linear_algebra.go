// SPDX-License-Identifier: MIT
// Package matrix provides universal operations on any Matrix implementation,
// including element-wise addition, subtraction, matrix multiplication,
// transpose, scalar scaling, Jacobi eigen-decomposition and a non-pivoting
// LU solver. All functions perform strict fail-fast validation and return
// clear errors on dimension mismatches.
//
// Notes:
//   - Every kernel converts its operands once via toDense and then loops over
//     flat row-major slices; inputs are never mutated.
//   - All kernels use the central validators and wrap via matrixErrorf.

package matrix

import (
	"fmt"
	"math"
)

// ZeroSum is the initial sum value for accumulations and substitutions.
const ZeroSum = 0.0

// ZeroPivot is the sentinel for detecting a zero pivot in LU/Solve.
const ZeroPivot = 0.0

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opAdd       = "Add"
	opSub       = "Sub"
	opMul       = "Mul"
	opTranspose = "Transpose"
	opScale     = "Scale"
	opEigen     = "Eigen"
	opLU        = "LU"
	opSolve     = "Solve"
	opMatVec    = "MatVec"
	opCommute   = "Commutator"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// Use only when err != nil to avoid creating a non-nil wrapper around a nil cause.
//
// AI-Hints:
//   - Always gate calls with `if err != nil { return nil, matrixErrorf(tag, err) }`.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// addSub computes elementwise out = a + sign*b for sign ∈ {+1, -1}.
// Inputs must have identical shapes. A fresh Dense is allocated; operands are not mutated.
//
// Implementation:
//   - Stage 1: ValidateBinarySameShape(a, b). Materialize flat operands.
//   - Stage 2: single flat loop 0..n-1.
//
// Complexity:
//   - Time O(r*c), Space O(r*c) for the new result.
func addSub(a, b Matrix, sign float64, opTag string) (*Dense, error) {
	if err := ValidateBinarySameShape(a, b); err != nil {
		return nil, matrixErrorf(opTag, err)
	}
	da, err := toDense(a)
	if err != nil {
		return nil, matrixErrorf(opTag, err)
	}
	db, err := toDense(b)
	if err != nil {
		return nil, matrixErrorf(opTag, err)
	}
	res, err := NewDense(da.r, da.c)
	if err != nil {
		return nil, matrixErrorf(opTag, err)
	}
	for i := range res.data {
		res.data[i] = da.data[i] + sign*db.data[i]
	}

	return res, nil
}

// Add returns a + b (element-wise). Shapes must match.
// Complexity: O(r*c).
func Add(a, b Matrix) (*Dense, error) { return addSub(a, b, +1, opAdd) }

// Sub returns a − b (element-wise). Shapes must match.
// Complexity: O(r*c).
func Sub(a, b Matrix) (*Dense, error) { return addSub(a, b, -1, opSub) }

// Scale returns alpha*m in a fresh matrix.
// Errors: ErrNilMatrix, ErrNaNInf (non-finite alpha).
// Complexity: O(r*c).
func Scale(m Matrix, alpha float64) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	if isNonFinite(alpha) {
		return nil, matrixErrorf(opScale, ErrNaNInf)
	}
	d, err := toDense(m)
	if err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	res := d.cloneDense()
	for i := range res.data {
		res.data[i] *= alpha
	}

	return res, nil
}

// Mul returns the matrix product a × b.
// MAIN DESCRIPTION:
//   - Row-major i-k-j product; each a(i,k) is read once and streamed across row k of b.
//
// Implementation:
//   - Stage 1: ValidateMulCompatible(a, b). Allocate Dense(aRows, bCols).
//   - Stage 2: i→k→j accumulation on flat slices; zero a(i,k) is skipped.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (a.Cols != b.Rows).
//
// Determinism:
//   - Fixed loop order; identical inputs produce bitwise identical results.
//
// Complexity:
//   - Time O(r*n*c), Space O(r*c).
//
// AI-Hints:
//   - Adjoint matrices are dense and small (m×m); the i-k-j order keeps b's rows hot in cache.
func Mul(a, b Matrix) (*Dense, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	da, err := toDense(a)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	db, err := toDense(b)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	aRows, aCols, bCols := da.r, da.c, db.c
	res, err := NewDense(aRows, bCols)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	var (
		i, j, k                            int
		av                                 float64
		rowOffsetA, rowOffsetB, rowOffsetR int
	)
	for i = 0; i < aRows; i++ {
		rowOffsetA = i * aCols
		rowOffsetR = i * bCols
		for k = 0; k < aCols; k++ {
			av = da.data[rowOffsetA+k]
			if av == 0 {
				continue // skip zero for performance
			}
			rowOffsetB = k * bCols
			for j = 0; j < bCols; j++ {
				res.data[rowOffsetR+j] += av * db.data[rowOffsetB+j]
			}
		}
	}

	return res, nil
}

// Commutator returns [a, b] = ab − ba for square matrices of equal size.
// The adjoint matrices of a closed algebra satisfy [R_x, R_y] = R_[x,y]; tests
// and diagnostics use this to check whether two gates commute.
// Complexity: O(n^3).
func Commutator(a, b Matrix) (*Dense, error) {
	if err := ValidateSquareNonNil(a); err != nil {
		return nil, matrixErrorf(opCommute, err)
	}
	ab, err := Mul(a, b)
	if err != nil {
		return nil, matrixErrorf(opCommute, err)
	}
	ba, err := Mul(b, a)
	if err != nil {
		return nil, matrixErrorf(opCommute, err)
	}

	return Sub(ab, ba)
}

// Transpose returns a new matrix with rows and columns swapped (mᵀ).
// Errors: ErrNilMatrix.
// Complexity: O(r*c).
func Transpose(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	d, err := toDense(m)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	res, err := NewDense(d.c, d.r)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	var i, j int
	for i = 0; i < d.r; i++ {
		for j = 0; j < d.c; j++ {
			res.data[j*d.r+i] = d.data[i*d.c+j]
		}
	}

	return res, nil
}

// MatVec computes y = m·x.
// Implementation:
//   - Stage 1: ValidateNotNil(m), ValidateVecLen(x, m.Cols()).
//   - Stage 2: per-row flat dot products; zero x(j) is skipped.
//
// Errors:
//   - ErrNilMatrix (nil m or nil x), ErrDimensionMismatch (len(x) != Cols).
//
// Complexity:
//   - Time O(r*c), Space O(r).
//
// AI-Hints:
//   - The evolution loop calls MatVec in its innermost Taylor recursion; keep
//     operands *Dense so toDense is a no-op.
func MatVec(m Matrix, x []float64) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	if err := ValidateVecLen(x, m.Cols()); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	d, err := toDense(m)
	if err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	y := make([]float64, d.r)
	matVecInto(d, x, y)

	return y, nil
}

// matVecInto writes d·x into y without validation (caller guarantees shapes).
func matVecInto(d *Dense, x, y []float64) {
	var i, j, base int
	var acc, xv float64
	for i = 0; i < d.r; i++ {
		acc = ZeroSum
		base = i * d.c
		for j = 0; j < d.c; j++ {
			xv = x[j]
			if xv != 0 {
				acc += d.data[base+j] * xv
			}
		}
		y[i] = acc
	}
}

// Eigen computes eigenvalues and eigenvectors of a symmetric matrix via Jacobi rotations.
// Implementation:
//   - Stage 1: Validate symmetric square input within tol.
//   - Stage 2: Repeatedly pick (p,q) with the largest |A[p,q]| in i→j order and apply a Jacobi rotation.
//   - Stage 3: Verify convergence, read eigenvalues off the diagonal.
//
// Returns:
//   - []float64: eigenvalues (diagonal of the rotated matrix, unsorted).
//   - *Dense: Q whose columns are eigenvectors.
//
// Errors:
//   - ErrDimensionMismatch (non-square), ErrAsymmetry (not symmetric within tol),
//     ErrMatrixEigenFailed (max off-diagonal ≥ tol after maxIter).
//
// Determinism:
//   - Fixed i→j pivot search and fixed update order produce stable results.
//
// Complexity:
//   - Time O(maxIter * n^2) rotations of O(n) each, Space O(n^2).
//
// AI-Hints:
//   - Good defaults: tol≈1e-10, maxIter≈100..500 for n≤128.
//   - Gram matrices of an orthonormal basis should come back with every eigenvalue ≈ 1.
func Eigen(m Matrix, tol float64, maxIter int) ([]float64, *Dense, error) {
	if err := ValidateSymmetric(m, tol); err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}
	src, err := toDense(m)
	if err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}
	n := src.r
	a := src.cloneDense() // working copy; the input stays untouched
	q, err := NewIdentity(n)
	if err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}

	var (
		iter, i, p, qi int
		maxOff, off    float64
		app, aqq, apq  float64
		aip, aiq       float64
		theta, t, c, s float64
	)
	for iter = 0; iter < maxIter; iter++ {
		// J.1: pivot (p,q) maximizing |A[p,q]|
		maxOff, p, qi = maxOffDiagonal(a)
		// J.2: converged
		if maxOff < tol {
			break
		}
		// J.3: rotation parameters
		app = a.data[p*n+p]
		aqq = a.data[qi*n+qi]
		apq = a.data[p*n+qi]
		theta = (aqq - app) / (2 * apq)
		t = math.Copysign(1.0/(math.Abs(theta)+math.Hypot(theta, 1)), theta)
		c = 1.0 / math.Sqrt(t*t+1)
		s = t * c

		// J.4: rotate rows/cols p and q of A
		for i = 0; i < n; i++ {
			if i == p || i == qi {
				continue
			}
			aip = a.data[i*n+p]
			aiq = a.data[i*n+qi]
			a.data[i*n+p], a.data[p*n+i] = c*aip-s*aiq, c*aip-s*aiq
			a.data[i*n+qi], a.data[qi*n+i] = s*aip+c*aiq, s*aip+c*aiq
		}
		a.data[p*n+p] = c*c*app - 2*c*s*apq + s*s*aqq
		a.data[qi*n+qi] = s*s*app + 2*c*s*apq + c*c*aqq
		a.data[p*n+qi], a.data[qi*n+p] = 0, 0

		// J.5: accumulate rotation into Q
		for i = 0; i < n; i++ {
			aip = q.data[i*n+p]
			aiq = q.data[i*n+qi]
			q.data[i*n+p] = c*aip - s*aiq
			q.data[i*n+qi] = s*aip + c*aiq
		}
	}

	if off, _, _ = maxOffDiagonal(a); off >= tol {
		return nil, nil, matrixErrorf(opEigen, ErrMatrixEigenFailed)
	}
	eigs := make([]float64, n)
	for i = 0; i < n; i++ {
		eigs[i] = a.data[i*n+i]
	}

	return eigs, q, nil
}

// maxOffDiagonal scans the strict upper triangle in i→j order.
func maxOffDiagonal(a *Dense) (maxOff float64, p, q int) {
	n := a.r
	var off float64
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			off = math.Abs(a.data[i*n+j])
			if off > maxOff {
				maxOff, p, q = off, i, j
			}
		}
	}

	return maxOff, p, q
}

// LU factors m = L·U (Doolittle, unit lower L, no pivoting).
// Implementation:
//   - Stage 1: ValidateSquareNonNil(m). Allocate L (unit diagonal) and U.
//   - Stage 2: for each i compute U[i, i..] then L[i+1.., i]; fail on U[i,i] == 0.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, ErrSingular.
//
// Complexity:
//   - Time O(n^3), Space O(n^2).
//
// Notes:
//   - No pivoting. Callers in this module only factor
//     diagonally dominant Padé denominators, where pivoting is unnecessary.
func LU(m Matrix) (*Dense, *Dense, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return nil, nil, matrixErrorf(opLU, err)
	}
	src, err := toDense(m)
	if err != nil {
		return nil, nil, matrixErrorf(opLU, err)
	}
	n := src.r
	l, err := NewIdentity(n)
	if err != nil {
		return nil, nil, matrixErrorf(opLU, err)
	}
	u, err := NewDense(n, n)
	if err != nil {
		return nil, nil, matrixErrorf(opLU, err)
	}

	var i, j, k int
	var sum float64
	for i = 0; i < n; i++ {
		for j = i; j < n; j++ {
			sum = ZeroSum
			for k = 0; k < i; k++ {
				sum += l.data[i*n+k] * u.data[k*n+j]
			}
			u.data[i*n+j] = src.data[i*n+j] - sum
		}
		if u.data[i*n+i] == ZeroPivot {
			return nil, nil, matrixErrorf(opLU, ErrSingular)
		}
		for j = i + 1; j < n; j++ {
			sum = ZeroSum
			for k = 0; k < i; k++ {
				sum += l.data[j*n+k] * u.data[k*n+i]
			}
			l.data[j*n+i] = (src.data[j*n+i] - sum) / u.data[i*n+i]
		}
	}

	return l, u, nil
}

// Solve returns X with a·X = b using LU(a) and per-column triangular solves.
// Errors: ErrNilMatrix, ErrDimensionMismatch (a non-square or b.Rows != n), ErrSingular.
// Complexity: O(n^3 + n^2*c).
func Solve(a, b Matrix) (*Dense, error) {
	if err := ValidateNotNil(b); err != nil {
		return nil, matrixErrorf(opSolve, err)
	}
	l, u, err := LU(a)
	if err != nil {
		return nil, matrixErrorf(opSolve, err)
	}
	n := l.r
	if b.Rows() != n {
		return nil, matrixErrorf(opSolve, ErrDimensionMismatch)
	}
	rhs, err := toDense(b)
	if err != nil {
		return nil, matrixErrorf(opSolve, err)
	}
	cols := rhs.c
	x, err := NewDense(n, cols)
	if err != nil {
		return nil, matrixErrorf(opSolve, err)
	}

	var (
		col, i, k int
		sum       float64
		y         = make([]float64, n) // forward substitution workspace
	)
	for col = 0; col < cols; col++ {
		// forward: L*y = b[:,col]
		for i = 0; i < n; i++ {
			sum = ZeroSum
			for k = 0; k < i; k++ {
				sum += l.data[i*n+k] * y[k]
			}
			y[i] = rhs.data[i*cols+col] - sum
		}
		// backward: U*x = y
		for i = n - 1; i >= 0; i-- {
			sum = ZeroSum
			for k = i + 1; k < n; k++ {
				sum += u.data[i*n+k] * x.data[k*cols+col]
			}
			x.data[i*cols+col] = (y[i] - sum) / u.data[i*n+i]
		}
	}

	return x, nil
}
