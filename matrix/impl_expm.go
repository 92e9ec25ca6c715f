// SPDX-License-Identifier: MIT
// Package matrix - matrix exponential kernels.
//
// Purpose:
//   - Expm: full exponential exp(t·A) by Padé [6/6] approximation with scaling & squaring.
//   - ExpmVec: action exp(t·A)·v without forming exp(t·A), by a scaled truncated Taylor series.
//
// Determinism & Policy:
//   - Scaling exponents are derived from the infinity norm only; no randomness.
//   - Both kernels accept t == 0 and return the identity / a copy of v.
//
// AI-Hints:
//   - For a single vector, ExpmVec costs O(s·K·n²) with s≈‖tA‖∞ and K≲20 terms,
//     versus O(n³·(6+log‖tA‖)) for Expm; prefer it when n is large.
//   - For antisymmetric A (adjoint representations), exp(tA) is orthogonal:
//     ‖exp(tA)v‖₂ == ‖v‖₂ is a cheap sanity check.

package matrix

import "math"

const (
	opExpm    = "Expm"
	opExpmVec = "ExpmVec"
)

const (
	// padeOrder is q in the diagonal [q/q] Padé approximant.
	padeOrder = 6

	// padeThetaMax is the norm bound ‖A/2^s‖∞ ≤ θ after scaling.
	padeThetaMax = 0.5

	// taylorMaxTerms caps the Taylor recursion per sub-step of ExpmVec.
	taylorMaxTerms = 60
)

// MaxExpScale bounds |t|·‖A‖∞ accepted by Expm and ExpmVec (2^31). It keeps
// the ExpmVec sub-step count inside int range and Expm below ~32 squarings.
const MaxExpScale = 1 << 31

// checkExpScale rejects exponents whose scaled norm exceeds MaxExpScale.
func checkExpScale(d *Dense, t float64) error {
	if math.Abs(t)*normInf(d) > MaxExpScale {
		return ErrScaleTooLarge
	}

	return nil
}

// NormInf returns the induced infinity norm max_i Σ_j |m[i,j]|.
// Errors: ErrNilMatrix.
// Complexity: O(r*c).
func NormInf(m Matrix) (float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return 0, matrixErrorf("NormInf", err)
	}
	d, err := toDense(m)
	if err != nil {
		return 0, matrixErrorf("NormInf", err)
	}

	return normInf(d), nil
}

func normInf(d *Dense) float64 {
	var best, row float64
	for i := 0; i < d.r; i++ {
		row = ZeroSum
		for j := 0; j < d.c; j++ {
			row += math.Abs(d.data[i*d.c+j])
		}
		if row > best {
			best = row
		}
	}

	return best
}

// Expm returns exp(t·A) for square A.
// MAIN DESCRIPTION:
//   - Diagonal Padé [6/6] approximant r(X) = D(X)⁻¹N(X) of exp(X), with
//     X = t·A / 2^s chosen so ‖X‖∞ ≤ 0.5, followed by s squarings.
//
// Implementation:
//   - Stage 1: ValidateSquareNonNil(A); reject non-finite t.
//   - Stage 2: s = max(0, ⌈log2(‖tA‖∞ / 0.5)⌉); X = tA/2^s.
//   - Stage 3: accumulate N = Σ c_k X^k and D = Σ (−1)^k c_k X^k by Horner-free powers.
//   - Stage 4: E = Solve(D, N); square s times.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (non-square), ErrNaNInf (t non-finite),
//     ErrScaleTooLarge (‖tA‖∞ > MaxExpScale),
//     ErrSingular (only for pathological inputs; D is diagonally dominant when ‖X‖∞ ≤ 0.5).
//
// Complexity:
//   - Time O(n³·(q+s)), Space O(n²).
//
// Notes:
//   - c_0 = 1, c_k = c_{k−1}·(q−k+1) / (k·(2q−k+1)).
func Expm(a Matrix, t float64) (*Dense, error) {
	if err := ValidateSquareNonNil(a); err != nil {
		return nil, matrixErrorf(opExpm, err)
	}
	if isNonFinite(t) {
		return nil, matrixErrorf(opExpm, ErrNaNInf)
	}
	x, err := Scale(a, t)
	if err != nil {
		return nil, matrixErrorf(opExpm, err)
	}
	if err = checkExpScale(x, 1); err != nil {
		return nil, matrixErrorf(opExpm, err)
	}
	n := x.r

	// Stage 2: scaling
	squarings := 0
	if norm := normInf(x); norm > padeThetaMax {
		squarings = int(math.Ceil(math.Log2(norm / padeThetaMax)))
		scale := math.Ldexp(1, -squarings)
		for i := range x.data {
			x.data[i] *= scale
		}
	}

	// Stage 3: numerator/denominator
	num, err := NewIdentity(n)
	if err != nil {
		return nil, matrixErrorf(opExpm, err)
	}
	den := num.cloneDense()
	power := num.cloneDense()
	coef := 1.0
	sign := 1.0
	for k := 1; k <= padeOrder; k++ {
		coef *= float64(padeOrder-k+1) / float64(k*(2*padeOrder-k+1))
		sign = -sign
		if power, err = Mul(power, x); err != nil {
			return nil, matrixErrorf(opExpm, err)
		}
		for i := range power.data {
			num.data[i] += coef * power.data[i]
			den.data[i] += sign * coef * power.data[i]
		}
	}

	// Stage 4: solve and square
	e, err := Solve(den, num)
	if err != nil {
		return nil, matrixErrorf(opExpm, err)
	}
	for ; squarings > 0; squarings-- {
		if e, err = Mul(e, e); err != nil {
			return nil, matrixErrorf(opExpm, err)
		}
	}

	return e, nil
}

// ExpmVec returns exp(t·A)·v without forming the exponential.
// MAIN DESCRIPTION:
//   - Split t into s sub-steps h = t/s with ‖hA‖∞ ≤ 1 and apply a truncated
//     Taylor series per sub-step: w ← Σ_k (hA)^k w / k!.
//
// Implementation:
//   - Stage 1: ValidateSquareNonNil(A), ValidateVecLen(v, n); reject non-finite t or tol < 0.
//   - Stage 2: s = max(1, ⌈‖tA‖∞⌉).
//   - Stage 3: per sub-step, add terms until ‖term‖∞ ≤ tol·‖acc‖∞ (or taylorMaxTerms).
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, ErrNaNInf, ErrScaleTooLarge (‖tA‖∞ > MaxExpScale).
//
// Determinism:
//   - Fixed term order and stopping rule.
//
// Complexity:
//   - Time O(s·K·n²) with K the number of Taylor terms (typically < 20), Space O(n).
//
// AI-Hints:
//   - tol around 1e-14 matches Expm to near machine precision for ‖hA‖∞ ≤ 1.
func ExpmVec(a Matrix, t float64, v []float64, tol float64) ([]float64, error) {
	if err := ValidateSquareNonNil(a); err != nil {
		return nil, matrixErrorf(opExpmVec, err)
	}
	if err := ValidateVecLen(v, a.Cols()); err != nil {
		return nil, matrixErrorf(opExpmVec, err)
	}
	if isNonFinite(t) || isNonFinite(tol) || tol < 0 {
		return nil, matrixErrorf(opExpmVec, ErrNaNInf)
	}
	d, err := toDense(a)
	if err != nil {
		return nil, matrixErrorf(opExpmVec, err)
	}
	if err = checkExpScale(d, t); err != nil {
		return nil, matrixErrorf(opExpmVec, err)
	}
	n := d.r
	w := make([]float64, n)
	copy(w, v)
	if t == 0 {
		return w, nil
	}

	steps := int(math.Ceil(math.Abs(t) * normInf(d)))
	if steps < 1 {
		steps = 1
	}
	h := t / float64(steps)

	term := make([]float64, n)
	next := make([]float64, n)
	var s, k, i int
	for s = 0; s < steps; s++ {
		copy(term, w)
		for k = 1; k <= taylorMaxTerms; k++ {
			matVecInto(d, term, next)
			scale := h / float64(k)
			for i = 0; i < n; i++ {
				term[i] = scale * next[i]
				w[i] += term[i]
			}
			if VecNormInf(term) <= tol*VecNormInf(w) {
				break
			}
		}
	}

	return w, nil
}
