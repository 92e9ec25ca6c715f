// SPDX-License-Identifier: MIT
// Package matrix - element-wise comparisons.
//
// Purpose:
//   - Numeric equality with tolerances for tests and diagnostics.
//
// Determinism:
//   - Fixed flat loop order; early exit on the first violation.

package matrix

import "math"

// AllClose checks element-wise |a-b| ≤ atol + rtol*|b| for identical shapes.
// Returns (true,nil) if all elements satisfy the relation; (false,nil) otherwise.
// NaN != anything; +Inf equals +Inf; -Inf equals -Inf.
// Time: O(r*c). Space: O(1) for *Dense operands.
//
// Policy:
//   - a and b must be non-nil and have identical shapes.
//   - rtol, atol are treated as |rtol|, |atol|; NaN/Inf tolerances are rejected.
//
// AI-Hints:
//   - AllClose with small atol/rtol is ideal for invariance tests in unit tests.
func AllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	if isNonFinite(rtol) || isNonFinite(atol) {
		return false, matrixErrorf("AllClose", ErrNaNInf)
	}
	rtol, atol = math.Abs(rtol), math.Abs(atol)
	if err := ValidateBinarySameShape(a, b); err != nil {
		return false, matrixErrorf("AllClose", err)
	}
	da, err := toDense(a)
	if err != nil {
		return false, matrixErrorf("AllClose", err)
	}
	db, err := toDense(b)
	if err != nil {
		return false, matrixErrorf("AllClose", err)
	}
	for i := range da.data {
		if !closeScalar(da.data[i], db.data[i], rtol, atol) {
			return false, nil
		}
	}

	return true, nil
}

// VecAllClose is AllClose for coordinate vectors.
// Errors: ErrDimensionMismatch when lengths differ, ErrNaNInf for bad tolerances.
func VecAllClose(x, y []float64, rtol, atol float64) (bool, error) {
	if isNonFinite(rtol) || isNonFinite(atol) {
		return false, matrixErrorf("VecAllClose", ErrNaNInf)
	}
	if len(x) != len(y) {
		return false, matrixErrorf("VecAllClose", ErrDimensionMismatch)
	}
	rtol, atol = math.Abs(rtol), math.Abs(atol)
	for i := range x {
		if !closeScalar(x[i], y[i], rtol, atol) {
			return false, nil
		}
	}

	return true, nil
}

func closeScalar(a, b, rtol, atol float64) bool {
	if math.IsInf(a, 0) || math.IsInf(b, 0) {
		return a == b
	}

	return math.Abs(a-b) <= atol+rtol*math.Abs(b)
}
