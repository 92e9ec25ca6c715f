// SPDX-License-Identifier: MIT

package cmatrix

import "math"

const (
	opExpm = "Expm"

	// expmTheta bounds the scaled norm before the Taylor series is summed.
	expmTheta = 0.25

	// expmTerms is the fixed Taylor degree; with ‖X‖ ≤ 0.25 the remainder
	// is below 1e-20.
	expmTerms = 18
)

// Expm returns exp(z·A) for square A by scaling & squaring a Taylor series.
// Implementation:
//   - Stage 1: X = z·A / 2^s with s chosen so ‖X‖_F ≤ 0.25.
//   - Stage 2: E = Σ_{k≤18} X^k / k! (incremental powers).
//   - Stage 3: square s times.
//
// Errors:
//   - ErrNilMatrix, ErrBadShape (non-square), ErrNaNInf (non-finite z).
//
// Complexity:
//   - Time O(n³·(18+s)), Space O(n²).
//
// AI-Hints:
//   - Unitaries of Hermitian H: Expm(H, complex(0, −θ)) = exp(−iθH).
func Expm(a *Dense, z complex128) (*Dense, error) {
	if err := ValidateSquare(a); err != nil {
		return nil, cmatrixErrorf(opExpm, err)
	}
	x, err := Scale(a, z)
	if err != nil {
		return nil, cmatrixErrorf(opExpm, err)
	}
	squarings := 0
	if norm := Norm(x); norm > expmTheta {
		squarings = int(math.Ceil(math.Log2(norm / expmTheta)))
		if err = ScaleInPlace(x, complex(math.Ldexp(1, -squarings), 0)); err != nil {
			return nil, cmatrixErrorf(opExpm, err)
		}
	}

	e, err := NewIdentity(a.r)
	if err != nil {
		return nil, cmatrixErrorf(opExpm, err)
	}
	term := e.Clone()
	for k := 1; k <= expmTerms; k++ {
		if term, err = Mul(term, x); err != nil {
			return nil, cmatrixErrorf(opExpm, err)
		}
		if err = ScaleInPlace(term, complex(1/float64(k), 0)); err != nil {
			return nil, cmatrixErrorf(opExpm, err)
		}
		if err = AddScaledInPlace(e, 1, term); err != nil {
			return nil, cmatrixErrorf(opExpm, err)
		}
	}
	for ; squarings > 0; squarings-- {
		if e, err = Mul(e, e); err != nil {
			return nil, cmatrixErrorf(opExpm, err)
		}
	}

	return e, nil
}
